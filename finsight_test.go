package finsight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-ai/finsight/capability"
	"github.com/finsight-ai/finsight/core"
	"github.com/finsight-ai/finsight/model"
	"github.com/finsight-ai/finsight/store"
)

func quoteCapability() capability.Capability {
	return capability.NewFunctionCapability(
		"get_stock_quote",
		"Fetch the latest quote for a ticker.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"symbol": map[string]any{"type": "string"},
			},
			"required": []string{"symbol"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return map[string]any{"symbol": args["symbol"], "price": 231.5}, nil
		},
	)
}

func TestResearchExecutesSelectedCalls(t *testing.T) {
	backend := model.NewMockModel("test")
	backend.SetDefault(&model.Result{
		Calls: []model.ProposedCall{
			{Capability: "get_stock_quote", Args: map[string]any{"symbol": "AAPL"}},
		},
	})

	mem := store.NewInMemory()
	agent, err := New(backend, []capability.Capability{quoteCapability()}, func(o *Options) {
		o.Store = mem
	})
	require.NoError(t, err)

	result, err := agent.Research(context.Background(), "How is AAPL doing?", core.Facts{
		{Type: "ticker", Value: "AAPL"},
	})
	require.NoError(t, err)

	assert.True(t, result.Complete)
	assert.NotEmpty(t, result.CorrelationID)

	call, ok := result.Task.CallAt(0)
	require.True(t, ok)
	assert.Equal(t, core.CallCompleted, call.Status)

	entries := mem.ByCorrelation(result.CorrelationID)
	require.Len(t, entries, 1)
	assert.Equal(t, "get_stock_quote", entries[0].Capability)
}

func TestResearchWithoutToolsIsComplete(t *testing.T) {
	backend := model.NewMockModel("test")
	backend.SetDefault(&model.Result{Answer: "No data needed."})

	mem := store.NewInMemory()
	agent, err := New(backend, []capability.Capability{quoteCapability()}, func(o *Options) {
		o.Store = mem
	})
	require.NoError(t, err)

	result, err := agent.Research(context.Background(), "What is a P/E ratio?", nil)
	require.NoError(t, err)

	assert.True(t, result.Complete)
	assert.Zero(t, result.Task.CallCount())
	assert.Zero(t, mem.Len())
}

func TestResearchSelectionFailureAborts(t *testing.T) {
	backend := model.NewMockModel("test")
	backendErr := errors.New("backend unavailable")
	backend.FailWith(backendErr)

	agent, err := New(backend, []capability.Capability{quoteCapability()})
	require.NoError(t, err)

	result, err := agent.Research(context.Background(), "How is AAPL doing?", nil)
	assert.Nil(t, result)
	assert.Same(t, backendErr, err)
}

func TestResearchReportsPartialFailure(t *testing.T) {
	backend := model.NewMockModel("test")
	backend.SetDefault(&model.Result{
		Calls: []model.ProposedCall{
			{Capability: "get_stock_quote", Args: map[string]any{"symbol": "AAPL"}},
			{Capability: "get_stock_quote", Args: map[string]any{}},
		},
	})

	agent, err := New(backend, []capability.Capability{quoteCapability()})
	require.NoError(t, err)

	result, err := agent.Research(context.Background(), "How is AAPL doing?", nil)
	require.NoError(t, err)

	assert.False(t, result.Complete)
	first, _ := result.Task.CallAt(0)
	second, _ := result.Task.CallAt(1)
	assert.Equal(t, core.CallCompleted, first.Status)
	assert.Equal(t, core.CallFailed, second.Status)
}

func TestNewRejectsDuplicateCapabilities(t *testing.T) {
	backend := model.NewMockModel("test")

	_, err := New(backend, []capability.Capability{quoteCapability(), quoteCapability()})
	assert.Error(t, err)
}
