package benchmark

import (
	"fmt"
	"time"

	"github.com/skoredin/crossdb-bench/internal/engine"
)

// Thunk is a deferred database call, already closed over its statement and
// bindings, handed to the Runner for timing.
type Thunk func() (*engine.Result, error)

// Runner times operation thunks and accumulates one Result per invocation
// in execution order. It carries no state beyond the accumulated sequence:
// it is a measurement decorator, not a driver.
type Runner struct {
	vendor  string
	results []Result
}

func NewRunner(vendor string) *Runner {
	return &Runner{vendor: vendor}
}

// Vendor returns the engine vendor tag stamped on every record.
func (r *Runner) Vendor() string { return r.vendor }

// Run invokes the thunk exactly once and records its outcome. Elapsed time
// is measured on the monotonic clock and recorded even on failure. Faults
// from the thunk — error returns and panics both — are fully absorbed into
// a failed record; nothing escapes Run, so one faulting operation cannot
// abort the rest of a pass.
func (r *Runner) Run(operation string, thunk Thunk) Result {
	record := r.measure(operation, thunk)
	r.results = append(r.results, record)

	return record
}

func (r *Runner) measure(operation string, thunk Thunk) (record Result) {
	record = Result{
		Operation: operation,
		Vendor:    r.vendor,
		Timestamp: time.Now(),
	}

	start := time.Now()

	defer func() {
		record.DurationMS = float64(time.Since(start)) / float64(time.Millisecond)

		if p := recover(); p != nil {
			record.Success = false
			record.RecordsAffected = 0
			record.Error = fmt.Sprintf("panic: %v", p)
		}
	}()

	result, err := thunk()
	if err != nil {
		record.Success = false
		record.Error = err.Error()

		return record
	}

	record.Success = true

	if result != nil {
		// Affected counts are meaningful for writes only; reads leave it
		// at zero rather than counting returned rows.
		record.RecordsAffected = result.Affected
	}

	return record
}

// GetResults returns a copy of the accumulated records in execution order.
func (r *Runner) GetResults() []Result {
	out := make([]Result, len(r.results))
	copy(out, r.results)

	return out
}

// ClearResults resets the accumulated sequence, for reusing a Runner
// across independently reported passes.
func (r *Runner) ClearResults() {
	r.results = nil
}
