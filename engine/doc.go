// Package engine implements the tool-call orchestration core: the Selector
// translates a task description and typed facts into an ordered list of
// proposed capability calls via a reasoning backend, and the Executor runs
// that list under bounded concurrency with per-call retry, status tracking
// and partial-failure aggregation.
//
// The engine treats capabilities, the reasoning backend and the context store
// as opaque collaborators; it owns only the selection/execution lifecycle and
// its state machine (pending -> running -> completed | failed).
package engine
