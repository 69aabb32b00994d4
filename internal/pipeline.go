package internal

import (
	"context"
	"strings"
	"sync"
)

// Pipeline turns one user input into a committed conversation turn. It
// runs a single state machine per turn (idle, sending, back to idle)
// and allows at most one in-flight generation request system-wide.
type Pipeline struct {
	store  *SessionStore
	client Generator
	kv     KV

	// OnUserMessage, when set, is invoked with the user's turn before
	// the remote call is dispatched, so presentation can show it
	// without waiting on the network.
	OnUserMessage func(Message)

	mu   sync.Mutex
	busy bool
}

// TurnResult is the outcome of a successful send or regenerate.
type TurnResult struct {
	Session   *ChatSession
	User      *Message // nil on regenerate
	Assistant Message
}

// NewPipeline wires a pipeline to its session store, inference client
// and credential store.
func NewPipeline(store *SessionStore, client Generator, kv KV) *Pipeline {
	return &Pipeline{store: store, client: client, kv: kv}
}

// Busy reports whether a generation request is in flight.
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

func (p *Pipeline) acquire() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy {
		return false
	}
	p.busy = true
	return true
}

func (p *Pipeline) release() {
	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()
}

// Send commits one conversation turn for userText. Blank input is
// refused without spending a request. A missing credential is rejected
// synchronously, before the busy state is consumed. On remote failure
// nothing is committed and the typed *InferenceError is returned.
func (p *Pipeline) Send(ctx context.Context, userText string) (*TurnResult, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, ErrBlankInput
	}

	apiKey, ok, err := Credential(p.kv)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMissingCredential
	}

	if !p.acquire() {
		return nil, ErrBusy
	}
	defer p.release()

	// Resolve against the session that was active at dispatch, not
	// whatever is active when the response arrives.
	targetID := p.store.ActiveID()

	user := NewUserMessage(userText)
	if p.OnUserMessage != nil {
		p.OnUserMessage(user)
	}

	reply, err := p.client.Generate(ctx, userText, apiKey)
	if err != nil {
		return nil, err
	}

	assistant := NewAssistantMessage(reply)
	sess, err := p.store.CommitTurn(targetID, user, assistant)
	if err != nil {
		LogWarn("discarding reply for session %s: %v", targetID, err)
		return nil, err
	}

	return &TurnResult{Session: sess, User: &user, Assistant: assistant}, nil
}

// Regenerate replays inference for the most recent user turn in the
// active session, replacing its trailing assistant turn. The prior user
// message is retained, not re-appended. With no active session or no
// user turn to replay it is a no-op.
func (p *Pipeline) Regenerate(ctx context.Context) (*TurnResult, error) {
	apiKey, ok, err := Credential(p.kv)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMissingCredential
	}

	if !p.acquire() {
		return nil, ErrBusy
	}
	defer p.release()

	targetID := p.store.ActiveID()
	if targetID == "" {
		return nil, nil
	}

	userText, found := p.store.PrepareRegenerate(targetID)
	if !found {
		return nil, nil
	}

	reply, err := p.client.Generate(ctx, userText, apiKey)
	if err != nil {
		return nil, err
	}

	assistant := NewAssistantMessage(reply)
	sess, err := p.store.CommitAssistant(targetID, assistant)
	if err != nil {
		LogWarn("discarding regenerated reply for session %s: %v", targetID, err)
		return nil, err
	}

	return &TurnResult{Session: sess, Assistant: assistant}, nil
}

// ClearActive deletes the current active session, if any, and returns
// to the fresh-draft state.
func (p *Pipeline) ClearActive() {
	if id := p.store.ActiveID(); id != "" {
		p.store.Delete(id)
		return
	}
	p.store.CreateDraft()
}

// Snapshot is everything presentation re-renders from.
type Snapshot struct {
	Messages []Message
	Busy     bool
	Sessions []*ChatSession
}

// Snapshot returns the current active message sequence, busy flag and
// full session list.
func (p *Pipeline) Snapshot() Snapshot {
	return Snapshot{
		Messages: p.store.ActiveMessages(),
		Busy:     p.Busy(),
		Sessions: p.store.List(),
	}
}
