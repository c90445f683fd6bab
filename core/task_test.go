package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatusTransitions(t *testing.T) {
	task := NewTask("t1", "test")
	task.SetToolCalls([]ToolCallStatus{
		{Tool: "a", Args: map[string]any{}, Status: CallPending},
		{Tool: "b", Args: map[string]any{}, Status: CallPending},
	})

	task.SetCallStatus(0, CallRunning)
	call, ok := task.CallAt(0)
	assert.True(t, ok)
	assert.Equal(t, CallRunning, call.Status)

	task.SetCallStatus(0, CallCompleted)
	call, _ = task.CallAt(0)
	assert.Equal(t, CallCompleted, call.Status)

	// Terminal states are sticky.
	task.SetCallStatus(0, CallRunning)
	call, _ = task.CallAt(0)
	assert.Equal(t, CallCompleted, call.Status)

	task.SetCallStatus(1, CallRunning)
	task.SetCallStatus(1, CallFailed)
	task.SetCallStatus(1, CallCompleted)
	call, _ = task.CallAt(1)
	assert.Equal(t, CallFailed, call.Status)
}

func TestTaskOutOfRange(t *testing.T) {
	task := NewTask("t1", "test")
	task.SetCallStatus(0, CallRunning) // no-op

	_, ok := task.CallAt(0)
	assert.False(t, ok)
	_, ok = task.CallAt(-1)
	assert.False(t, ok)
	assert.Zero(t, task.CallCount())
}

func TestCallStatusTerminal(t *testing.T) {
	assert.False(t, CallPending.Terminal())
	assert.False(t, CallRunning.Terminal())
	assert.True(t, CallCompleted.Terminal())
	assert.True(t, CallFailed.Terminal())
	assert.Equal(t, "running", CallRunning.String())
}

func TestFactsHelpers(t *testing.T) {
	facts := Facts{
		{Type: "ticker", Value: "AAPL"},
		{Type: "period", Value: "annual"},
		{Type: "ticker", Value: "MSFT"},
	}

	assert.Equal(t, []string{"AAPL", "MSFT"}, facts.Values("ticker"))
	assert.Nil(t, facts.Values("sector"))

	v, ok := facts.First("period")
	assert.True(t, ok)
	assert.Equal(t, "annual", v)

	_, ok = facts.First("sector")
	assert.False(t, ok)
}
