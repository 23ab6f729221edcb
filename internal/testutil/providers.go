package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
)

// StubProvider serves canned payloads per sport key and counts calls.
type StubProvider struct {
	mu       sync.Mutex
	Payloads map[string]odds.Payload
	Errs     map[string]error
	Default  odds.Payload
	calls    []string
}

// FetchOdds returns the configured error or payload for sportKey.
func (s *StubProvider) FetchOdds(ctx context.Context, sportKey string) (odds.Payload, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sportKey)
	if err, ok := s.Errs[sportKey]; ok {
		return nil, err
	}
	if p, ok := s.Payloads[sportKey]; ok {
		return p, nil
	}
	return s.Default, nil
}

// Calls returns the number of fetches issued.
func (s *StubProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// CallsFor returns the sport keys fetched, in order.
func (s *StubProvider) CallsFor() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchOdds(ctx context.Context, sportKey string) (odds.Payload, error) {
	_ = ctx
	_ = sportKey
	return nil, p.Err
}
