// Package capability implements the data-retrieval capability subsystem:
// schema described, polymorphic operations (API fetchers, computations) that
// the engine can select and invoke with validated arguments and consistent
// error classification.
package capability

import (
	"context"
	"errors"
	"fmt"
)

// Capability is an external operation the engine can invoke.
//
// Implementations should:
//   - Provide clear, descriptive names (snake_case) and descriptions
//   - Define a JSON schema for their arguments
//   - Be thread-safe; the executor may invoke capabilities concurrently
//   - Return *InvocationError with an accurate Kind so the executor can
//     distinguish retryable throttling from permanent failures
type Capability interface {
	// Name returns the unique identifier for this capability.
	Name() string

	// Description returns a human-readable description provided to the
	// reasoning backend so it can decide when to use the capability.
	Description() string

	// Parameters returns a JSON schema subset describing the expected
	// arguments (type/properties/required, per-property descriptions).
	Parameters() map[string]any

	// Invoke executes the capability. The result can be any JSON-serializable
	// value. Failures should be *InvocationError; anything else is wrapped by
	// the caller as a permanent execution failure.
	Invoke(ctx context.Context, args map[string]any) (any, error)
}

// ErrorKind classifies an invocation failure. The executor consults the kind
// instead of inspecting error text, so capability implementations own the
// decision of what counts as transient.
type ErrorKind string

const (
	// KindThrottled marks rate-limit shaped failures (HTTP 429, provider
	// session renegotiation). These are retried with backoff.
	KindThrottled ErrorKind = "THROTTLED"
	// KindInvalidArgs marks argument validation failures.
	KindInvalidArgs ErrorKind = "INVALID_ARGS"
	// KindExecution marks any other failure during execution.
	KindExecution ErrorKind = "EXECUTION_ERROR"
)

// InvocationError represents a capability invocation failure.
type InvocationError struct {
	Capability string    `json:"capability"`
	Message    string    `json:"message"`
	Kind       ErrorKind `json:"kind"`
	Details    any       `json:"details,omitempty"`
}

func (e *InvocationError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("capability error [%s] in %s: %s", e.Kind, e.Capability, e.Message)
	}
	return fmt.Sprintf("capability error in %s: %s", e.Capability, e.Message)
}

// Transient reports whether the failure is worth retrying after a backoff.
func (e *InvocationError) Transient() bool { return e.Kind == KindThrottled }

// NewInvocationError creates an InvocationError with the given classification.
func NewInvocationError(capability, message string, kind ErrorKind) *InvocationError {
	return &InvocationError{Capability: capability, Message: message, Kind: kind}
}

// IsTransient reports whether err (anywhere in its chain) is a throttled
// invocation error. Errors without a classification are treated as permanent.
func IsTransient(err error) bool {
	var ie *InvocationError
	if errors.As(err, &ie) {
		return ie.Transient()
	}
	return false
}
