package core

import (
	"context"
	"time"
)

// Entry is one persisted tool result. Entries belonging to the same batch of
// calls share a correlation id supplied by the caller.
type Entry struct {
	Capability    string         `json:"capability"`
	Args          map[string]any `json:"args"`
	Result        any            `json:"result,omitempty"`
	Err           string         `json:"error,omitempty"`
	CorrelationID string         `json:"correlation_id"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ContextStore persists fetched tool results for later analysis. The store is
// append-only from the executor's point of view and must tolerate concurrent
// Save calls for distinct entries under one correlation id. No atomicity is
// promised across different calls' writes.
type ContextStore interface {
	Save(ctx context.Context, entry Entry) error
}
