package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/finsight-ai/finsight/capability"
	"github.com/finsight-ai/finsight/core"
	"github.com/finsight-ai/finsight/logging"
	"github.com/finsight-ai/finsight/model"
)

const defaultInstructions = `You are a financial research assistant. Given a research task, ` +
	`either answer directly from general knowledge or call the data-retrieval tools ` +
	`needed to answer it. Only call tools that are relevant to the task.`

// SelectorOptions configure NewSelector.
type SelectorOptions struct {
	// Instructions overrides the system instruction sent to the backend.
	Instructions string
	// Logger receives selection diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Selector turns a task description plus typed facts into an ordered list of
// proposed capability calls by delegating once to a reasoning backend bound
// to the registered capability set.
//
// The selector performs no retries: a backend failure is fatal for the task
// and propagates to the caller unmodified. Retries belong to individual
// capability invocations, not to the selection step.
type Selector struct {
	backend      model.Model
	registry     *capability.Registry
	instructions string
	logger       logging.Logger
}

// NewSelector constructs a Selector bound to a backend and capability registry.
func NewSelector(backend model.Model, registry *capability.Registry, optFns ...func(o *SelectorOptions)) *Selector {
	opts := SelectorOptions{
		Instructions: defaultInstructions,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Selector{
		backend:      backend,
		registry:     registry,
		instructions: opts.Instructions,
		logger:       opts.Logger,
	}
}

// SelectTools selects the capability calls needed for the task and assigns
// them, all pending and in backend-proposed order, to the task's call list.
// An empty list is a valid outcome: the task may not require any tool.
func (s *Selector) SelectTools(ctx context.Context, task *core.Task, facts core.Facts) ([]core.ToolCallStatus, error) {
	prompt := s.buildPrompt(task, facts)

	result, err := s.backend.Complete(ctx, model.Request{
		Instructions: s.instructions,
		Prompt:       prompt,
		Tools:        toolDefinitions(s.registry),
	})
	if err != nil {
		return nil, err
	}

	calls := make([]core.ToolCallStatus, 0, len(result.Calls))
	for _, pc := range result.Calls {
		args := pc.Args
		if args == nil {
			args = map[string]any{}
		}
		calls = append(calls, core.ToolCallStatus{
			Tool:   pc.Capability,
			Args:   args,
			Status: core.CallPending,
		})
	}

	task.SetToolCalls(calls)

	s.logger.Info("engine.select.complete",
		"task_id", task.ID,
		"backend", s.backend.Info().Name,
		"proposed_calls", len(calls),
	)

	return calls, nil
}

// buildPrompt folds the task description, the facts of interest and the
// capability catalogue into one task-specific prompt.
func (s *Selector) buildPrompt(task *core.Task, facts core.Facts) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Task: %s\n", task.Description)

	if tickers := facts.Values("ticker"); len(tickers) > 0 {
		fmt.Fprintf(&b, "Known tickers: %s\n", strings.Join(tickers, ", "))
	}
	if periods := facts.Values("period"); len(periods) > 0 {
		fmt.Fprintf(&b, "Requested periods: %s\n", strings.Join(periods, ", "))
	}

	b.WriteString("\nAvailable tools:\n")
	for _, c := range s.registry.All() {
		fmt.Fprintf(&b, "- %s: %s\n", c.Name(), c.Description())
		for _, line := range argumentHints(c.Parameters()) {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}

	return b.String()
}

// argumentHints renders one line per named argument with its description,
// sorted by argument name. Capabilities without named arguments produce no
// lines.
func argumentHints(schema map[string]any) []string {
	properties, _ := schema["properties"].(map[string]any)
	if len(properties) == 0 {
		return nil
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		prop, _ := properties[name].(map[string]any)
		argType, _ := prop["type"].(string)
		desc, _ := prop["description"].(string)
		line := name
		if argType != "" {
			line = fmt.Sprintf("%s (%s)", name, argType)
		}
		if desc != "" {
			line = fmt.Sprintf("%s: %s", line, desc)
		}
		lines = append(lines, line)
	}
	return lines
}

// toolDefinitions converts the registered capability set into the backend's
// tool binding format.
func toolDefinitions(registry *capability.Registry) []model.ToolDefinition {
	all := registry.All()
	defs := make([]model.ToolDefinition, 0, len(all))
	for _, c := range all {
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        c.Name(),
				Description: c.Description(),
				Parameters:  c.Parameters(),
			},
		})
	}
	return defs
}
