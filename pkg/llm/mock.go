package llm

import (
	"context"
	"iter"
	"sync"
)

// MockCompleter is a configurable mock for testing completion consumers.
// Set the fields to control behavior in tests.
type MockCompleter struct {
	// StreamFunc is called when StreamCompletion is invoked.
	// If nil, Fragments and Err are replayed.
	StreamFunc func(ctx context.Context, system, user string) iter.Seq2[string, error]

	// Fragments are yielded in order when StreamFunc is nil.
	Fragments []string

	// Err is yielded after Fragments when StreamFunc is nil.
	Err error

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	mu         sync.Mutex
	calls      int
	lastSystem string
	lastUser   string
}

// NewMockCompleter creates a mock that replies with the given fragments.
func NewMockCompleter(fragments ...string) *MockCompleter {
	return &MockCompleter{
		Fragments: fragments,
		Model:     "mock-model",
	}
}

// StreamCompletion implements Completer.
func (m *MockCompleter) StreamCompletion(ctx context.Context, system, user string) iter.Seq2[string, error] {
	m.mu.Lock()
	m.calls++
	m.lastSystem = system
	m.lastUser = user
	m.mu.Unlock()

	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, system, user)
	}
	return Fragments(m.Fragments, m.Err)
}

// Provider implements Completer.
func (m *MockCompleter) Provider() string {
	return "mock"
}

// GetModel implements Completer.
func (m *MockCompleter) GetModel() string {
	return m.Model
}

// Calls returns how many completions were requested.
func (m *MockCompleter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the system prompt and user text of the latest request.
func (m *MockCompleter) LastPrompt() (system, user string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSystem, m.lastUser
}
