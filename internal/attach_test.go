package internal

import "testing"

func TestAttachFilePlaceholder(t *testing.T) {
	got, err := AttachFilePlaceholder("", "notes.txt", 1024)
	if err != nil {
		t.Fatalf("AttachFilePlaceholder() error = %v", err)
	}
	if got != "[File: notes.txt]" {
		t.Errorf("AttachFilePlaceholder() = %q", got)
	}

	got, err = AttachFilePlaceholder("see attached", "notes.txt", 1024)
	if err != nil {
		t.Fatalf("AttachFilePlaceholder() error = %v", err)
	}
	if got != "see attached\n[File: notes.txt]" {
		t.Errorf("AttachFilePlaceholder() = %q", got)
	}
}

func TestAttachFilePlaceholder_TooLarge(t *testing.T) {
	draft := "original"
	got, err := AttachFilePlaceholder(draft, "huge.bin", 11<<20)
	if err == nil {
		t.Fatal("AttachFilePlaceholder() should reject files over 10MB")
	}
	if got != draft {
		t.Errorf("draft should be unchanged on rejection, got %q", got)
	}
}

func TestAttachVoicePlaceholder(t *testing.T) {
	if got := AttachVoicePlaceholder(""); got != "[Voice message]" {
		t.Errorf("AttachVoicePlaceholder() = %q", got)
	}
	if got := AttachVoicePlaceholder("hello"); got != "hello\n[Voice message]" {
		t.Errorf("AttachVoicePlaceholder() = %q", got)
	}
}
