package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/finsight-ai/finsight/capability"
	"github.com/finsight-ai/finsight/core"
	"github.com/finsight-ai/finsight/logging"
)

const (
	defaultMaxConcurrentToolCalls = 3
	maxInvokeAttempts             = 3
	maxRetryJitter                = 500 * time.Millisecond
)

// ExecutorOptions configure NewExecutor.
type ExecutorOptions struct {
	// MaxConcurrentToolCalls bounds the worker pool. Defaults to 3 and is
	// clamped to at least 1.
	MaxConcurrentToolCalls int
	// Logger receives execution diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Executor drives a task's proposed call list to completion: a bounded pool
// of workers claims call indices through an atomic counter, invokes the
// matching capability with a 3-attempt budget (retrying only throttle-shaped
// failures, with exponential backoff plus jitter), persists successful
// results to the context store and reports lifecycle events to an optional
// observer.
//
// Per-call failures never escape ExecuteTools as errors; they surface through
// call statuses, the observer stream and the aggregate boolean. Cancellation
// of in-flight tasks is not supported: once started, every claimed call is
// driven to a terminal state. The context gates retry sleeps and is handed to
// capability invocations, nothing more.
type Executor struct {
	registry      *capability.Registry
	store         core.ContextStore
	maxConcurrent int
	logger        logging.Logger

	// sleep is swapped in tests to skip real backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewExecutor constructs an Executor bound to a capability registry and a
// context store.
func NewExecutor(registry *capability.Registry, store core.ContextStore, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{
		MaxConcurrentToolCalls: defaultMaxConcurrentToolCalls,
		Logger:                 logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxConcurrentToolCalls < 1 {
		opts.MaxConcurrentToolCalls = 1
	}
	return &Executor{
		registry:      registry,
		store:         store,
		maxConcurrent: opts.MaxConcurrentToolCalls,
		logger:        opts.Logger,
		sleep:         sleepContext,
	}
}

// ExecuteTools runs every call in the task's list and reports whether all of
// them completed. A task with no calls trivially succeeds. The observer may
// be nil.
func (e *Executor) ExecuteTools(ctx context.Context, task *core.Task, correlationID string, obs Observer) bool {
	n := task.CallCount()
	if n == 0 {
		return true
	}

	workers := e.maxConcurrent
	if workers > n {
		workers = n
	}

	// next hands out call indices; atomic increment guarantees every index is
	// claimed by exactly one worker.
	var next atomic.Int64
	var failed atomic.Bool
	var wg sync.WaitGroup

	start := time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx := int(next.Add(1)) - 1
				if idx >= n {
					return
				}
				e.runCall(ctx, task, idx, correlationID, obs, &failed)
			}
		}()
	}
	wg.Wait()

	e.logger.Debug("engine.execute.batch.complete",
		"task_id", task.ID,
		"correlation_id", correlationID,
		"count", n,
		"workers", workers,
		"duration_ms", time.Since(start).Milliseconds(),
		"success", !failed.Load(),
	)

	return !failed.Load()
}

// runCall drives the call at idx to a terminal state.
func (e *Executor) runCall(ctx context.Context, task *core.Task, idx int, correlationID string, obs Observer, failed *atomic.Bool) {
	call, ok := task.CallAt(idx)
	if !ok {
		return
	}

	task.SetCallStatus(idx, core.CallRunning)
	e.notifyUpdate(obs, task.ID, idx, core.CallRunning)

	result, err := e.invoke(ctx, call)
	if err == nil {
		err = e.store.Save(ctx, core.Entry{
			Capability:    call.Tool,
			Args:          call.Args,
			Result:        result,
			CorrelationID: correlationID,
			CreatedAt:     time.Now().UTC(),
		})
		if err != nil {
			err = fmt.Errorf("saving result for %s: %w", call.Tool, err)
		}
	}

	if err != nil {
		task.SetCallStatus(idx, core.CallFailed)
		failed.Store(true)
		e.logger.Error("engine.call.failed", "task_id", task.ID, "index", idx, "capability", call.Tool, "error", err.Error())
		e.notifyUpdate(obs, task.ID, idx, core.CallFailed)
		e.notifyError(obs, task.ID, idx, call.Tool, call.Args, err)
		return
	}

	task.SetCallStatus(idx, core.CallCompleted)
	e.logger.Info("engine.call.completed", "task_id", task.ID, "index", idx, "capability", call.Tool)
	e.notifyUpdate(obs, task.ID, idx, core.CallCompleted)
}

// invoke resolves and executes one capability with the retry budget. Only
// throttle-classified failures are retried; anything else, and the final
// attempt's failure, terminates immediately.
func (e *Executor) invoke(ctx context.Context, call core.ToolCallStatus) (any, error) {
	impl, ok := e.registry.Get(call.Tool)
	if !ok {
		return nil, fmt.Errorf("capability %q not found", call.Tool)
	}

	var lastErr error
	for attempt := 1; attempt <= maxInvokeAttempts; attempt++ {
		result, err := safeInvoke(ctx, impl, call.Args)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !capability.IsTransient(err) || attempt == maxInvokeAttempts {
			return nil, lastErr
		}

		// 2^attempt seconds plus jitter, so workers retrying at the same time
		// do not hammer the provider in lockstep.
		delay := time.Duration(1<<attempt)*time.Second + rand.N(maxRetryJitter)
		e.logger.Warn("engine.call.retry",
			"capability", call.Tool,
			"attempt", attempt,
			"backoff", delay,
			"error", err.Error(),
		)
		if err := e.sleep(ctx, delay); err != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// safeInvoke shields workers from panicking capabilities.
func safeInvoke(ctx context.Context, c capability.Capability, args map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("capability %s panicked: %v", c.Name(), r)
		}
	}()
	return c.Invoke(ctx, args)
}

// notifyUpdate dispatches a status notification, isolating observer panics.
func (e *Executor) notifyUpdate(obs Observer, taskID string, idx int, status core.CallStatus) {
	if obs == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("engine.observer.panic", "task_id", taskID, "index", idx, "recover", r)
		}
	}()
	obs.OnToolCallUpdate(taskID, idx, status)
}

// notifyError dispatches a terminal-error notification, isolating observer
// panics.
func (e *Executor) notifyError(obs Observer, taskID string, idx int, capName string, args map[string]any, callErr error) {
	if obs == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("engine.observer.panic", "task_id", taskID, "index", idx, "recover", r)
		}
	}()
	obs.OnToolCallError(taskID, idx, capName, args, callErr)
}

// sleepContext blocks for d or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
