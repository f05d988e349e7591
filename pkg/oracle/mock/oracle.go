package mock

import (
	"context"
)

// Oracle is a mock implementation of oracle.Oracle for testing
type Oracle struct {
	// InvokeFunc allows tests to customize the behavior
	InvokeFunc func(ctx context.Context, prompt string) (string, error)

	// Simple fields for common test scenarios
	Replies []string // consumed in order, one per call
	Reply   string   // used when Replies is exhausted
	Err     error

	// Prompts records every prompt received, in call order
	Prompts []string

	calls int
}

// New creates a new mock oracle with default behavior
func New() *Oracle {
	return &Oracle{}
}

// Invoke returns the mocked reply for the next call
func (m *Oracle) Invoke(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.calls++

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Replies) > 0 {
		reply := m.Replies[0]
		m.Replies = m.Replies[1:]
		return reply, nil
	}

	return m.Reply, nil
}

// Calls returns how many times Invoke was called
func (m *Oracle) Calls() int {
	return m.calls
}

// WithReplies queues replies to return in order
func (m *Oracle) WithReplies(replies ...string) *Oracle {
	m.Replies = append(m.Replies, replies...)
	return m
}

// WithReply sets the fallback reply for every call
func (m *Oracle) WithReply(reply string) *Oracle {
	m.Reply = reply
	return m
}

// WithError sets an error to return
func (m *Oracle) WithError(err error) *Oracle {
	m.Err = err
	return m
}
