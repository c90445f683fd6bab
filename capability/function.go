package capability

import (
	"context"
	"fmt"

	"github.com/finsight-ai/finsight/internal/util"
)

// FunctionCapability is a generic adapter that exposes a plain Go function as
// a finsight capability.
//
// Responsibilities:
//   - Holds a lightweight JSON-Schema-like argument specification
//   - Validates supplied arguments against that schema before execution
//   - Normalizes error handling so callers receive *InvocationError with a
//     consistent Kind:
//     KindInvalidArgs -> schema / argument mismatch
//     KindExecution   -> underlying function returned a plain error
//     (classifications preserved if the function returns *InvocationError)
//
// A FunctionCapability has no mutable state after construction and is safe
// for concurrent use.
type FunctionCapability struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(ctx context.Context, args map[string]any) (any, error)
}

// NewFunctionCapability constructs a FunctionCapability from an explicit
// schema and function.
func NewFunctionCapability(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (any, error),
) *FunctionCapability {
	return &FunctionCapability{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// NewFunctionCapabilityFromStruct derives the argument schema from a struct
// via reflection, using `json` tags for names and `description` tags for the
// per-argument hints shown to the reasoning backend.
func NewFunctionCapabilityFromStruct(
	name, description string,
	argsType any,
	fn func(ctx context.Context, args map[string]any) (any, error),
) *FunctionCapability {
	return NewFunctionCapability(name, description, util.CreateSchema(argsType), fn)
}

// Name returns the unique capability name.
func (c *FunctionCapability) Name() string { return c.name }

// Description returns the description exposed to the reasoning backend.
func (c *FunctionCapability) Description() string { return c.description }

// Parameters returns the JSON schema describing expected arguments.
func (c *FunctionCapability) Parameters() map[string]any { return c.parameters }

// Invoke validates args against the declared schema then calls the wrapped
// function. Failures are surfaced as *InvocationError for uniform handling.
func (c *FunctionCapability) Invoke(ctx context.Context, args map[string]any) (any, error) {
	if err := util.ValidateParameters(args, c.parameters); err != nil {
		return nil, &InvocationError{
			Capability: c.name,
			Message:    fmt.Sprintf("argument validation failed: %v", err),
			Kind:       KindInvalidArgs,
			Details:    err,
		}
	}

	result, err := c.fn(ctx, args)
	if err != nil {
		if ie, ok := err.(*InvocationError); ok {
			return nil, ie
		}
		return nil, &InvocationError{
			Capability: c.name,
			Message:    err.Error(),
			Kind:       KindExecution,
		}
	}

	return result, nil
}
