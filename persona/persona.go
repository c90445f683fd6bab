// Package persona implements scoring heuristics over already-fetched data.
// Analyzers are pure functions: no I/O, no retries, deterministic output for
// a given batch of context entries.
package persona

import "github.com/finsight-ai/finsight/core"

// Signal is an analyzer's overall read on the data.
type Signal string

const (
	// SignalBullish indicates the heuristic views the data favorably.
	SignalBullish Signal = "bullish"
	// SignalBearish indicates the heuristic views the data unfavorably.
	SignalBearish Signal = "bearish"
	// SignalNeutral indicates mixed or insufficient data.
	SignalNeutral Signal = "neutral"
)

// Verdict is an analyzer's conclusion over one batch of entries.
type Verdict struct {
	Persona    string   `json:"persona"`
	Signal     Signal   `json:"signal"`
	Confidence float64  `json:"confidence"` // 0..1
	Reasons    []string `json:"reasons,omitempty"`
}

// Analyzer scores a batch of context entries fetched for one task.
type Analyzer interface {
	Name() string
	Analyze(entries []core.Entry) Verdict
}

// entriesFor returns the results of every entry produced by the named
// capability.
func entriesFor(entries []core.Entry, capability string) []any {
	var out []any
	for _, e := range entries {
		if e.Capability == capability && e.Result != nil {
			out = append(out, e.Result)
		}
	}
	return out
}

// records flattens a capability result into individual record maps. Feed
// results decode as []any of map[string]any after a JSON round trip; direct
// in-memory results may still be []map[string]any.
func records(result any) []map[string]any {
	var out []map[string]any
	switch rs := result.(type) {
	case []map[string]any:
		out = rs
	case []any:
		for _, r := range rs {
			if m, ok := r.(map[string]any); ok {
				out = append(out, m)
			}
		}
	case map[string]any:
		out = []map[string]any{rs}
	}
	return out
}

// number reads a numeric field from a record, tolerating int and float64.
func number(record map[string]any, key string) (float64, bool) {
	switch v := record[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
