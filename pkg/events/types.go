// Package events defines the lifecycle notifications pkg/program
// optionally publishes on the "/cel" broker topic, and a nil-safe
// Publisher wrapping the broker so a façade built without one costs
// nothing.
package events

import "time"

// Topic is the broker topic every event in this package is published on.
const Topic = "/cel"

// CompileStarted is published right before a source string is parsed.
type CompileStarted struct {
	Source string
}

// CompileFinished is published after parsing, successful or not.
type CompileFinished struct {
	Source string
	Err    error
}

// EvalStarted is published right before a compiled Program is evaluated
// against an environment.
type EvalStarted struct {
	Source string
}

// EvalFinished is published after evaluation, successful or not.
type EvalFinished struct {
	Source   string
	Err      error
	Duration time.Duration
}
