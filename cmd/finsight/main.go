// Command finsight answers equity research questions by selecting and running
// data-retrieval capabilities against a financial data provider, then scoring
// the fetched data with persona heuristics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/finsight-ai/finsight/capability"
	"github.com/finsight-ai/finsight/core"
	"github.com/finsight-ai/finsight/engine"
	"github.com/finsight-ai/finsight/feed"
	"github.com/finsight-ai/finsight/internal/util"
	"github.com/finsight-ai/finsight/logging"
	"github.com/finsight-ai/finsight/model"
	"github.com/finsight-ai/finsight/model/anthropic"
	"github.com/finsight-ai/finsight/model/openai"
	"github.com/finsight-ai/finsight/persona"
	"github.com/finsight-ai/finsight/store"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "finsight",
		Short: "finsight: LLM-driven equity research agent",
		Long:  "finsight selects and executes financial data-retrieval tools for a research question, persists the results and scores them with analyst personas.",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")
	root.AddCommand(analyzeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze \"question\"",
		Short: "Run a research question end to end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cfg, args[0])
		},
	}
}

func runAnalyze(ctx context.Context, cfg Config, question string) error {
	logger := logging.New(func(o *logging.Options) {
		o.Level = parseLevel(cfg.LogLevel)
		o.Format = "text"
	})

	registry := capability.NewRegistry()
	client := feed.NewClient(cfg.Feed.BaseURL, cfg.Feed.APIKey)
	registry.MustRegister(feed.NewIncomeStatement(client))
	registry.MustRegister(feed.NewBalanceSheet(client))
	registry.MustRegister(feed.NewStockQuote(client))
	registry.MustRegister(feed.NewNewsSearch(client))

	backend, err := buildModel(cfg.Model)
	if err != nil {
		return err
	}

	ctxStore, closeStore, err := buildStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	selector := engine.NewSelector(backend, registry, func(o *engine.SelectorOptions) {
		o.Logger = logger
	})
	executor := engine.NewExecutor(registry, ctxStore, func(o *engine.ExecutorOptions) {
		if cfg.MaxConcurrentToolCalls > 0 {
			o.MaxConcurrentToolCalls = cfg.MaxConcurrentToolCalls
		}
		o.Logger = logger
	})

	task := core.NewTask(util.NewID(), question)
	facts := extractFacts(question)

	calls, err := selector.SelectTools(ctx, task, facts)
	if err != nil {
		return fmt.Errorf("tool selection failed: %w", err)
	}
	if len(calls) == 0 {
		fmt.Println("No data retrieval needed for this question.")
		return nil
	}

	fmt.Printf("Running %d tool call(s):\n", len(calls))
	obs := engine.ObserverFuncs{
		Update: func(taskID string, index int, status core.CallStatus) {
			if call, ok := task.CallAt(index); ok {
				fmt.Printf("  [%d] %-22s %s\n", index, call.Tool, status)
			}
		},
		Error: func(taskID string, index int, capName string, args map[string]any, err error) {
			fmt.Printf("  [%d] %-22s error: %v\n", index, capName, err)
		},
	}

	correlationID := util.NewID()
	ok := executor.ExecuteTools(ctx, task, correlationID, obs)

	entries, err := loadEntries(ctx, ctxStore, correlationID)
	if err != nil {
		return fmt.Errorf("loading results: %w", err)
	}

	fmt.Println("\nPersona verdicts:")
	for _, analyzer := range []persona.Analyzer{persona.NewValueAnalyzer(), persona.NewMomentumAnalyzer()} {
		v := analyzer.Analyze(entries)
		fmt.Printf("  %-10s %-8s (confidence %.0f%%)\n", v.Persona, v.Signal, v.Confidence*100)
		for _, reason := range v.Reasons {
			fmt.Printf("    - %s\n", reason)
		}
	}

	if !ok {
		fmt.Println("\nSome tool calls failed; verdicts are based on partial data.")
	}
	return nil
}

func buildModel(cfg ModelConfig) (model.Model, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Name != "" {
				o.Model = anthropicsdk.Model(cfg.Name)
			}
			if cfg.APIKey != "" {
				o.APIKey = cfg.APIKey
			}
			if cfg.MaxTokens > 0 {
				o.MaxTokens = cfg.MaxTokens
			}
		}), nil
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Name != "" {
				o.Model = cfg.Name
			}
			if cfg.MaxTokens > 0 {
				o.MaxCompletionTokens = cfg.MaxTokens
			}
		}), nil
	}
	return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
}

func buildStore(cfg StoreConfig) (core.ContextStore, func(), error) {
	if cfg.Path == "" {
		return store.NewInMemory(), func() {}, nil
	}
	s, err := store.NewSQLite(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { s.Close() }, nil
}

func loadEntries(ctx context.Context, ctxStore core.ContextStore, correlationID string) ([]core.Entry, error) {
	switch s := ctxStore.(type) {
	case *store.InMemory:
		return s.ByCorrelation(correlationID), nil
	case *store.SQLite:
		return s.ByCorrelation(ctx, correlationID)
	}
	return nil, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
