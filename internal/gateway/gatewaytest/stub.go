// Package gatewaytest provides a deterministic gateway stub for tests.
package gatewaytest

import (
	"context"
	"fmt"
	"sync"

	"github.com/hireplan-ai/hireplan/internal/gateway"
)

// Responder produces the stub's reply for one call. Calls are numbered from
// zero in arrival order.
type Responder func(call int, req *gateway.GenerateRequest) (string, error)

// Stub is a gateway.Client returning scripted responses. Safe for
// concurrent use; every call is recorded for assertions.
type Stub struct {
	mu        sync.Mutex
	name      string
	responder Responder
	calls     []gateway.GenerateRequest
	healthErr error
	closed    bool
}

// New creates a stub with the given responder.
func New(responder Responder) *Stub {
	return &Stub{
		name:      "stub",
		responder: responder,
	}
}

// NewSequence creates a stub replying with the given strings in order.
// Calls past the end of the sequence fail.
func NewSequence(replies ...string) *Stub {
	return New(func(call int, _ *gateway.GenerateRequest) (string, error) {
		if call >= len(replies) {
			return "", fmt.Errorf("unexpected gateway call %d", call)
		}
		return replies[call], nil
	})
}

// Name implements gateway.Client.
func (s *Stub) Name() string {
	return s.name
}

// Generate implements gateway.Client.
func (s *Stub) Generate(ctx context.Context, req *gateway.GenerateRequest) (*gateway.GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	call := len(s.calls)
	s.calls = append(s.calls, *req)
	responder := s.responder
	s.mu.Unlock()

	content, err := responder(call, req)
	if err != nil {
		return nil, err
	}

	return &gateway.GenerateResponse{
		Content: content,
		Model:   "stub-model",
	}, nil
}

// Health implements gateway.Client.
func (s *Stub) Health(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.healthErr
}

// SetHealthErr makes subsequent Health calls fail.
func (s *Stub) SetHealthErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthErr = err
}

// Close implements gateway.Client.
func (s *Stub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Stub) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Calls returns a copy of every request received so far.
func (s *Stub) Calls() []gateway.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := make([]gateway.GenerateRequest, len(s.calls))
	copy(calls, s.calls)
	return calls
}
