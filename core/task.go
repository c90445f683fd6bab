package core

import "sync"

// CallStatus is the lifecycle state of a single proposed tool call.
//
// Transitions are monotonic: pending -> running -> (completed | failed).
// Completed and failed are terminal; a call never re-enters an earlier state.
type CallStatus string

const (
	// CallPending is the initial state assigned by the selector.
	CallPending CallStatus = "pending"
	// CallRunning means a worker has claimed the call and is invoking it.
	CallRunning CallStatus = "running"
	// CallCompleted means the capability returned a result that was persisted.
	CallCompleted CallStatus = "completed"
	// CallFailed means the call terminally failed (missing capability, exhausted
	// retries or a non-retryable invocation error).
	CallFailed CallStatus = "failed"
)

// String returns the status name.
func (s CallStatus) String() string { return string(s) }

// Terminal reports whether the status is completed or failed.
func (s CallStatus) Terminal() bool { return s == CallCompleted || s == CallFailed }

// ToolCallStatus records one proposed capability invocation: which capability,
// with which arguments, and where it is in its lifecycle. The call's position
// in the task's list is its identity; lists are never reordered once assigned.
type ToolCallStatus struct {
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args"`
	Status CallStatus     `json:"status"`
}

// Task is a unit of research work: an opaque id, a natural language
// description, and the ordered tool calls proposed for it. The call list is
// empty until a selector runs; after that its length and order are fixed and
// only per-call status fields mutate.
//
// Status mutation goes through SetCallStatus which is safe for concurrent use
// by executor workers operating on distinct indices.
type Task struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	ToolCalls   []ToolCallStatus `json:"tool_calls,omitempty"`

	mu sync.Mutex
}

// NewTask creates a task with an empty call list.
func NewTask(id, description string) *Task {
	return &Task{ID: id, Description: description}
}

// SetToolCalls assigns the ordered call list produced by selection.
func (t *Task) SetToolCalls(calls []ToolCallStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ToolCalls = calls
}

// SetCallStatus updates the status of the call at index i. Out-of-range
// indices and transitions out of a terminal state are ignored.
func (t *Task) SetCallStatus(i int, status CallStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(t.ToolCalls) {
		return
	}
	if t.ToolCalls[i].Status.Terminal() {
		return
	}
	t.ToolCalls[i].Status = status
}

// CallAt returns a copy of the call at index i.
func (t *Task) CallAt(i int) (ToolCallStatus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(t.ToolCalls) {
		return ToolCallStatus{}, false
	}
	return t.ToolCalls[i], true
}

// CallCount returns the number of proposed calls.
func (t *Task) CallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ToolCalls)
}
