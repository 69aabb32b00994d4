package internal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// generatorFunc adapts a function to the Generator interface.
type generatorFunc func(ctx context.Context, prompt, apiKey string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt, apiKey string) (string, error) {
	return f(ctx, prompt, apiKey)
}

// countingGenerator records how often it was called.
type countingGenerator struct {
	mu     sync.Mutex
	calls  int
	reply  string
	err    error
	gate   chan struct{} // when non-nil, Generate blocks until closed
	prompt string
}

func (g *countingGenerator) Generate(ctx context.Context, prompt, apiKey string) (string, error) {
	g.mu.Lock()
	g.calls++
	g.prompt = prompt
	gate := g.gate
	g.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *countingGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func newTestPipeline(t *testing.T, gen Generator) (*Pipeline, *SessionStore) {
	t.Helper()
	store, kv := newTestStore(t)
	if err := SetCredential(kv, "test-key"); err != nil {
		t.Fatalf("SetCredential() error = %v", err)
	}
	return NewPipeline(store, gen, kv), store
}

func TestSend_Success(t *testing.T) {
	gen := &countingGenerator{reply: "Hi there"}
	pipeline, store := newTestPipeline(t, gen)

	result, err := pipeline.Send(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if result.User == nil || result.User.Content != "Hello" {
		t.Errorf("result.User.Content should be %q verbatim", "Hello")
	}
	if result.Assistant.Content != "Hi there" {
		t.Errorf("result.Assistant.Content = %q, want %q", result.Assistant.Content, "Hi there")
	}

	sessions := store.List()
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}
	messages := sessions[0].Messages
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if messages[0].Role != RoleUser || messages[0].Content != "Hello" {
		t.Errorf("messages[0] = {%s, %q}, want {user, Hello}", messages[0].Role, messages[0].Content)
	}
	if messages[1].Role != RoleAssistant || messages[1].Content != "Hi there" {
		t.Errorf("messages[1] = {%s, %q}, want {assistant, Hi there}", messages[1].Role, messages[1].Content)
	}
	if sessions[0].Preview != "Hello" {
		t.Errorf("Preview = %q, want %q", sessions[0].Preview, "Hello")
	}
	if pipeline.Busy() {
		t.Error("Busy() should be false after Send returns")
	}
}

func TestSend_BlankInput(t *testing.T) {
	gen := &countingGenerator{reply: "unused"}
	pipeline, store := newTestPipeline(t, gen)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := pipeline.Send(context.Background(), input)
		if !errors.Is(err, ErrBlankInput) {
			t.Errorf("Send(%q) error = %v, want ErrBlankInput", input, err)
		}
	}

	if gen.callCount() != 0 {
		t.Error("blank input must never reach the inference client")
	}
	if len(store.List()) != 0 {
		t.Error("blank input must never mutate the session store")
	}
}

func TestSend_MissingCredential(t *testing.T) {
	store, kv := newTestStore(t)
	gen := &countingGenerator{reply: "unused"}
	pipeline := NewPipeline(store, gen, kv)

	_, err := pipeline.Send(context.Background(), "Hello")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("Send() error = %v, want ErrMissingCredential", err)
	}
	if gen.callCount() != 0 {
		t.Error("missing credential must not dispatch a request")
	}
	if pipeline.Busy() {
		t.Error("missing credential must not consume the busy state")
	}
}

func TestSend_InferenceFailure(t *testing.T) {
	infErr := &InferenceError{Kind: KindUnreachable, Message: "connection refused"}
	gen := &countingGenerator{err: infErr}
	pipeline, store := newTestPipeline(t, gen)

	_, err := pipeline.Send(context.Background(), "Hi")

	var got *InferenceError
	if !errors.As(err, &got) {
		t.Fatalf("Send() error = %v, want InferenceError", err)
	}
	if got.Kind != KindUnreachable {
		t.Errorf("Kind = %q, want %q", got.Kind, KindUnreachable)
	}
	if len(store.List()) != 0 {
		t.Error("a failed call must not commit the user message to any session")
	}
	if pipeline.Busy() {
		t.Error("Busy() should return to false after a failure")
	}
}

func TestSend_RejectsConcurrentEntry(t *testing.T) {
	gate := make(chan struct{})
	gen := &countingGenerator{reply: "slow reply", gate: gate}
	pipeline, _ := newTestPipeline(t, gen)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := pipeline.Send(context.Background(), "first"); err != nil {
			t.Errorf("Send() error = %v", err)
		}
	}()

	// Wait until the first request is in flight.
	for gen.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	if !pipeline.Busy() {
		t.Error("Busy() should be true while a request is in flight")
	}

	_, err := pipeline.Send(context.Background(), "second")
	if !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent Send() error = %v, want ErrBusy", err)
	}

	close(gate)
	<-done

	if gen.callCount() != 1 {
		t.Errorf("client called %d times, want 1", gen.callCount())
	}
}

func TestSend_SendsRawTextOnly(t *testing.T) {
	gen := &countingGenerator{reply: "first"}
	pipeline, store := newTestPipeline(t, gen)

	if _, err := pipeline.Send(context.Background(), "one"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, err := pipeline.Send(context.Background(), "two"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	// No history threading: the second prompt is exactly the user text.
	if gen.prompt != "two" {
		t.Errorf("prompt = %q, want %q", gen.prompt, "two")
	}
	if len(store.List()) != 1 {
		t.Errorf("both turns should land in one session, got %d", len(store.List()))
	}
}

func TestSend_CommitsToSessionCapturedAtDispatch(t *testing.T) {
	gen := &countingGenerator{reply: "late reply"}
	pipeline, store := newTestPipeline(t, gen)

	commitPair(t, store, "", "existing", "reply")

	// The active session is switched away mid-flight. The reply must
	// still resolve against the session captured at dispatch.
	gen.mu.Lock()
	gen.gate = make(chan struct{})
	gen.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := pipeline.Send(context.Background(), "question"); err != nil {
			t.Errorf("Send() error = %v", err)
		}
	}()
	for gen.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	store.CreateDraft()
	close(gen.gate)
	<-done

	sessions := store.List()
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}
	if len(sessions[0].Messages) != 4 {
		t.Errorf("captured session has %d messages, want 4", len(sessions[0].Messages))
	}
}

func TestRegenerate(t *testing.T) {
	gen := &countingGenerator{reply: "better answer"}
	pipeline, store := newTestPipeline(t, gen)

	commitPair(t, store, "", "Question", "first answer")

	result, err := pipeline.Regenerate(context.Background())
	if err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if result == nil {
		t.Fatal("Regenerate() result = nil, want a turn")
	}
	if result.User != nil {
		t.Error("Regenerate() must not produce a new user turn")
	}
	if gen.prompt != "Question" {
		t.Errorf("replayed prompt = %q, want %q", gen.prompt, "Question")
	}

	messages := store.ActiveMessages()
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if messages[0].Role != RoleUser || messages[0].Content != "Question" {
		t.Error("the user turn must be retained, not re-appended")
	}
	if messages[1].Content != "better answer" {
		t.Errorf("messages[1].Content = %q, want %q", messages[1].Content, "better answer")
	}
}

func TestRegenerate_NoActiveSession(t *testing.T) {
	gen := &countingGenerator{reply: "unused"}
	pipeline, _ := newTestPipeline(t, gen)

	result, err := pipeline.Regenerate(context.Background())
	if err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if result != nil {
		t.Error("Regenerate() with no active session should be a no-op")
	}
	if gen.callCount() != 0 {
		t.Error("no-op Regenerate() must not dispatch a request")
	}
}

func TestClearActive(t *testing.T) {
	gen := &countingGenerator{reply: "Hi"}
	pipeline, store := newTestPipeline(t, gen)

	sess := commitPair(t, store, "", "Hello", "Hi")

	pipeline.ClearActive()

	if store.ActiveID() != "" {
		t.Error("ClearActive() should reset the active pointer")
	}
	for _, s := range store.List() {
		if s.ID == sess.ID {
			t.Error("ClearActive() should delete the active session")
		}
	}

	// With nothing active it only clears the draft.
	pipeline.ClearActive()
	if store.ActiveID() != "" {
		t.Error("ClearActive() with no active session should stay in draft state")
	}
}

func TestSnapshot(t *testing.T) {
	gen := &countingGenerator{reply: "Hi"}
	pipeline, store := newTestPipeline(t, gen)

	commitPair(t, store, "", "Hello", "Hi")

	snap := pipeline.Snapshot()
	if len(snap.Messages) != 2 {
		t.Errorf("Snapshot().Messages has %d entries, want 2", len(snap.Messages))
	}
	if snap.Busy {
		t.Error("Snapshot().Busy = true, want false")
	}
	if len(snap.Sessions) != 1 {
		t.Errorf("Snapshot().Sessions has %d entries, want 1", len(snap.Sessions))
	}
}

func TestOnUserMessage_FiresBeforeResponse(t *testing.T) {
	var seen []string
	gen := generatorFunc(func(ctx context.Context, prompt, apiKey string) (string, error) {
		seen = append(seen, "generate")
		return "reply", nil
	})
	pipeline, _ := newTestPipeline(t, gen)
	pipeline.OnUserMessage = func(msg Message) {
		seen = append(seen, "user:"+msg.Content)
	}

	if _, err := pipeline.Send(context.Background(), "Hello"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(seen) != 2 || seen[0] != "user:Hello" || seen[1] != "generate" {
		t.Errorf("event order = %v, want user message before the remote call", seen)
	}
}
