package capability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	c := NewFunctionCapability("get_quote", "Fetch a quote",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(context.Context, map[string]any) (any, error) { return "q", nil },
	)

	require.NoError(t, reg.Register(c))
	got, ok := reg.Get("get_quote")
	assert.True(t, ok)
	assert.Equal(t, "get_quote", got.Name())

	_, ok = reg.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	mk := func() Capability {
		return NewFunctionCapability("dup", "first",
			map[string]any{"type": "object", "properties": map[string]any{}},
			func(context.Context, map[string]any) (any, error) { return nil, nil },
		)
	}
	require.NoError(t, reg.Register(mk()))
	err := reg.Register(mk())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		reg.MustRegister(NewFunctionCapability(name, name,
			map[string]any{"type": "object", "properties": map[string]any{}},
			func(context.Context, map[string]any) (any, error) { return nil, nil },
		))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())

	all := reg.All()
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name())
}

func TestFunctionCapabilityValidation(t *testing.T) {
	c := NewFunctionCapability("get_quote", "Fetch a quote",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"ticker": map[string]any{"type": "string"},
			},
			"required": []string{"ticker"},
		},
		func(context.Context, map[string]any) (any, error) { return "ok", nil },
	)

	// Missing required argument.
	_, err := c.Invoke(context.Background(), map[string]any{})
	var ie *InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, KindInvalidArgs, ie.Kind)
	assert.False(t, ie.Transient())

	// Wrong type.
	_, err = c.Invoke(context.Background(), map[string]any{"ticker": 42})
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, KindInvalidArgs, ie.Kind)

	// Valid arguments pass through.
	result, err := c.Invoke(context.Background(), map[string]any{"ticker": "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestFunctionCapabilityErrorWrapping(t *testing.T) {
	schema := map[string]any{"type": "object", "properties": map[string]any{}}

	// Plain errors become execution errors.
	c := NewFunctionCapability("x", "x", schema,
		func(context.Context, map[string]any) (any, error) { return nil, errors.New("boom") },
	)
	_, err := c.Invoke(context.Background(), map[string]any{})
	var ie *InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, KindExecution, ie.Kind)
	assert.Equal(t, "boom", ie.Message)

	// Pre-classified errors are forwarded unchanged.
	throttle := NewInvocationError("x", "too many requests", KindThrottled)
	c2 := NewFunctionCapability("x", "x", schema,
		func(context.Context, map[string]any) (any, error) { return nil, throttle },
	)
	_, err = c2.Invoke(context.Background(), map[string]any{})
	assert.Same(t, throttle, err)
}

func TestFunctionCapabilityFromStruct(t *testing.T) {
	type args struct {
		Ticker string `json:"ticker" description:"Stock ticker symbol"`
		Limit  int    `json:"limit,omitempty" description:"Max rows"`
	}
	c := NewFunctionCapabilityFromStruct("fetch", "Fetch data", args{},
		func(_ context.Context, got map[string]any) (any, error) { return got["ticker"], nil },
	)

	props, _ := c.Parameters()["properties"].(map[string]any)
	assert.Contains(t, props, "ticker")
	assert.Contains(t, props, "limit")
	req, _ := c.Parameters()["required"].([]string)
	assert.Equal(t, []string{"ticker"}, req)

	result, err := c.Invoke(context.Background(), map[string]any{"ticker": "MSFT"})
	require.NoError(t, err)
	assert.Equal(t, "MSFT", result)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(NewInvocationError("x", "rate limited", KindThrottled)))
	assert.False(t, IsTransient(NewInvocationError("x", "bad args", KindInvalidArgs)))
	assert.False(t, IsTransient(NewInvocationError("x", "broken", KindExecution)))
	assert.False(t, IsTransient(errors.New("plain error")))
	assert.False(t, IsTransient(nil))

	// Classification survives wrapping.
	wrapped := fmt.Errorf("call failed: %w", NewInvocationError("x", "rate limited", KindThrottled))
	assert.True(t, IsTransient(wrapped))
}

func TestInvocationErrorMessage(t *testing.T) {
	err := NewInvocationError("get_quote", "too many requests", KindThrottled)
	assert.Equal(t, "capability error [THROTTLED] in get_quote: too many requests", err.Error())

	bare := &InvocationError{Capability: "get_quote", Message: "oops"}
	assert.Equal(t, "capability error in get_quote: oops", bare.Error())
}
