// Package finsight provides a high-level façade over the selection/execution
// engine, enabling rapid construction of data-driven research flows. Most
// applications interact with this package by:
//  1. Creating an Agent via New() with a reasoning backend and capabilities
//  2. Calling Research() with a question and extracted facts
//  3. Reading the fetched entries back from the context store
//
// The façade delegates orchestration to engine.Selector and engine.Executor
// while keeping setup ergonomics concise. Defaults (in-memory store, no-op
// logger) are safe for local development; production deployments supply a
// durable store and a structured logger.
package finsight

import (
	"context"

	"github.com/finsight-ai/finsight/capability"
	"github.com/finsight-ai/finsight/core"
	"github.com/finsight-ai/finsight/engine"
	"github.com/finsight-ai/finsight/internal/util"
	"github.com/finsight-ai/finsight/logging"
	"github.com/finsight-ai/finsight/model"
	"github.com/finsight-ai/finsight/store"
)

// Options configures the Agent façade.
type Options struct {
	// Store persists fetched tool results. Defaults to an in-memory store.
	Store core.ContextStore
	// Logger receives engine diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// MaxConcurrentToolCalls bounds the execution worker pool (default 3).
	MaxConcurrentToolCalls int
	// Instructions overrides the selection system instruction.
	Instructions string
	// Observer receives per-call lifecycle events. May be nil.
	Observer engine.Observer
}

// Agent bundles a capability registry, a reasoning backend, the selection/
// execution engine and a context store behind a single Research call.
type Agent struct {
	registry *capability.Registry
	selector *engine.Selector
	executor *engine.Executor
	store    core.ContextStore
	observer engine.Observer
}

// New constructs an Agent from a reasoning backend and a set of capabilities.
func New(backend model.Model, capabilities []capability.Capability, optFns ...func(o *Options)) (*Agent, error) {
	opts := Options{
		Store:  store.NewInMemory(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	registry := capability.NewRegistry()
	for _, c := range capabilities {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	selector := engine.NewSelector(backend, registry, func(o *engine.SelectorOptions) {
		if opts.Instructions != "" {
			o.Instructions = opts.Instructions
		}
		o.Logger = opts.Logger
	})
	executor := engine.NewExecutor(registry, opts.Store, func(o *engine.ExecutorOptions) {
		if opts.MaxConcurrentToolCalls > 0 {
			o.MaxConcurrentToolCalls = opts.MaxConcurrentToolCalls
		}
		o.Logger = opts.Logger
	})

	return &Agent{
		registry: registry,
		selector: selector,
		executor: executor,
		store:    opts.Store,
		observer: opts.Observer,
	}, nil
}

// Result is the outcome of one Research run.
type Result struct {
	// Task carries the final per-call statuses.
	Task *core.Task
	// CorrelationID scopes this run's entries in the context store.
	CorrelationID string
	// Complete is true iff every selected call completed.
	Complete bool
}

// Research selects the capability calls needed for the question and executes
// them. A question needing no tools returns a complete result with an empty
// call list. Selection failures abort the run; execution failures surface
// through the result's Complete flag and per-call statuses.
func (a *Agent) Research(ctx context.Context, question string, facts core.Facts) (*Result, error) {
	task := core.NewTask(util.NewID(), question)

	calls, err := a.selector.SelectTools(ctx, task, facts)
	if err != nil {
		return nil, err
	}

	correlationID := util.NewID()
	if len(calls) == 0 {
		return &Result{Task: task, CorrelationID: correlationID, Complete: true}, nil
	}

	complete := a.executor.ExecuteTools(ctx, task, correlationID, a.observer)
	return &Result{Task: task, CorrelationID: correlationID, Complete: complete}, nil
}

// Registry exposes the agent's capability registry.
func (a *Agent) Registry() *capability.Registry { return a.registry }

// Store exposes the agent's context store.
func (a *Agent) Store() core.ContextStore { return a.store }
