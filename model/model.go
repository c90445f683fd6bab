// Package model defines the reasoning-backend abstraction used for capability
// selection, plus provider-neutral request/response types. Concrete adapters
// live in the anthropic and openai subpackages.
package model

import (
	"context"
	"fmt"
)

// ToolDefinition declaratively exposes a callable capability to the backend.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual capability exposed to the
// backend. Parameters is a JSON Schema object (minimal subset expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized backend input produced by the selector.
// A selection request is a single round trip: one system instruction, one
// task-specific prompt, the bound capability set.
type Request struct {
	Instructions string           `json:"instructions"`
	Prompt       string           `json:"prompt"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
}

// ProposedCall is one capability invocation proposed by the backend.
type ProposedCall struct {
	Capability string         `json:"capability"`
	Args       map[string]any `json:"args"`
}

// Result is the discriminated outcome of a selection round trip: either a
// direct textual answer, an ordered list of proposed calls, or both (some
// providers emit preamble text alongside tool calls). An empty Calls slice is
// a valid outcome meaning the task needs no tools.
type Result struct {
	Answer string         `json:"answer,omitempty"`
	Calls  []ProposedCall `json:"calls,omitempty"`
}

// HasCalls reports whether the backend proposed at least one call.
func (r *Result) HasCalls() bool { return len(r.Calls) > 0 }

// Info contains metadata about a backend implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "anthropic", "openai", "mock", ...
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface the selector needs from a reasoning backend.
type Model interface {
	// Complete performs one round trip and returns the discriminated result.
	Complete(ctx context.Context, req Request) (*Result, error)

	// Info returns information about the backend implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests and examples.
// Results are keyed by exact prompt, with an optional fallback for any other
// prompt; without either, unknown prompts produce a canned answer.
type MockModel struct {
	info     Info
	results  map[string]*Result
	fallback *Result
	err      error

	// Requests records every request seen, for assertions.
	Requests []Request
}

// NewMockModel constructs a MockModel with tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:    Info{Name: name, Provider: "mock", SupportsTools: true},
		results: make(map[string]*Result),
	}
}

// AddResult registers a deterministic result for an exact prompt.
func (m *MockModel) AddResult(prompt string, result *Result) { m.results[prompt] = result }

// SetDefault registers a result returned for any prompt without an exact
// match.
func (m *MockModel) SetDefault(result *Result) { m.fallback = result }

// FailWith makes every Complete call return err.
func (m *MockModel) FailWith(err error) { m.err = err }

// Complete implements Model.
func (m *MockModel) Complete(_ context.Context, req Request) (*Result, error) {
	m.Requests = append(m.Requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if r, ok := m.results[req.Prompt]; ok {
		return r, nil
	}
	if m.fallback != nil {
		return m.fallback, nil
	}
	return &Result{Answer: fmt.Sprintf("Mock response to: %s", req.Prompt)}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
