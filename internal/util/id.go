package util

import "github.com/google/uuid"

// NewID mints an opaque identifier for tasks and correlation scopes.
func NewID() string { return uuid.NewString() }
