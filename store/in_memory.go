// Package store provides ContextStore implementations: a volatile in-memory
// store for tests and demos, and a SQLite-backed store for persistence across
// runs.
package store

import (
	"context"
	"sync"

	"github.com/finsight-ai/finsight/core"
)

// InMemory is a volatile, append-only ContextStore keeping entries in a
// process-local slice. It is safe for concurrent use and best suited for
// tests or ephemeral demo runs.
type InMemory struct {
	mu      sync.Mutex
	entries []core.Entry
}

// NewInMemory constructs an empty in-memory context store.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Save appends an entry.
func (s *InMemory) Save(_ context.Context, entry core.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// ByCorrelation returns a snapshot of the entries saved under the given
// correlation id, in insertion order.
func (s *InMemory) ByCorrelation(correlationID string) []core.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Entry
	for _, e := range s.entries {
		if e.CorrelationID == correlationID {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the total number of saved entries.
func (s *InMemory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
