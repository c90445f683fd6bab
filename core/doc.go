// Package core provides the foundational domain types shared across finsight:
//
//   - Tasks (a research question plus its ordered list of proposed tool calls)
//   - ToolCallStatus (the per-call lifecycle record)
//   - Facts (typed hints extracted from a task description, e.g. tickers)
//   - ContextStore (pluggable persistence for fetched tool results)
//
// The package intentionally keeps implementation concerns (selection, execution,
// persistence backends) out of scope, exposing small interfaces so custom
// backends can be plugged in.
package core
