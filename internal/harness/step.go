package harness

import (
	"context"
	"time"
)

// Step is one named action in a smoke plan.
type Step struct {
	Name string
	// Echo marks steps whose successful body is worth printing in
	// verbose runs.
	Echo bool
	Run  func(ctx context.Context) Outcome
}

// Outcome is what a step reports back. A nil Err passes the step; Body
// carries the raw response whenever one was received, pass or fail.
type Outcome struct {
	Detail string
	Body   []byte
	Err    error
}

// Result is one executed step, as the reporter sees it.
type Result struct {
	Index    int
	Name     string
	Passed   bool
	Detail   string
	Body     []byte
	Err      error
	Duration time.Duration
}
