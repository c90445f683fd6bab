package engine

import "github.com/finsight-ai/finsight/core"

// Observer receives per-call lifecycle notifications from the Executor.
// Implementations back presentation layers (progress UIs, audit logs) and are
// strictly fire-and-forget: the executor isolates observer panics so a
// misbehaving observer can never abort a worker.
//
// Ordering: within one call, an update to running always precedes the
// terminal update, and a failed update always precedes its OnToolCallError.
// No ordering holds across different indices.
type Observer interface {
	// OnToolCallUpdate reports a status transition for the call at index.
	OnToolCallUpdate(taskID string, index int, status core.CallStatus)

	// OnToolCallError reports the terminal error for a failed call.
	OnToolCallError(taskID string, index int, capability string, args map[string]any, err error)
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil fields
// are skipped, so callers can subscribe to a subset of notifications.
type ObserverFuncs struct {
	Update func(taskID string, index int, status core.CallStatus)
	Error  func(taskID string, index int, capability string, args map[string]any, err error)
}

// OnToolCallUpdate implements Observer.
func (o ObserverFuncs) OnToolCallUpdate(taskID string, index int, status core.CallStatus) {
	if o.Update != nil {
		o.Update(taskID, index, status)
	}
}

// OnToolCallError implements Observer.
func (o ObserverFuncs) OnToolCallError(taskID string, index int, capability string, args map[string]any, err error) {
	if o.Error != nil {
		o.Error(taskID, index, capability, args, err)
	}
}
