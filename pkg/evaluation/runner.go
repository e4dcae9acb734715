package evaluation

import (
	"context"
	"sync"

	"github.com/xdanny/strands-eval/pkg/metric"
)

// defaultThreshold is the aggregate score a case must reach to pass when
// no explicit threshold is set.
const defaultThreshold = 0.7

// Runner evaluates a metric set over batches of test cases with a fixed
// worker pool. Every case is self-contained, so workers share nothing and
// need no locks; results land in per-case slots.
type Runner struct {
	workers   int
	threshold float64
	metrics   []metric.Metric
}

// NewRunner creates a runner with the given concurrency. Workers below 1
// are raised to 1.
func NewRunner(workers int, metrics ...metric.Metric) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{workers: workers, threshold: defaultThreshold, metrics: metrics}
}

// WithThreshold sets the aggregate score a case must reach to pass, in
// addition to every metric's own pass flag.
func (r *Runner) WithThreshold(threshold float64) *Runner {
	r.threshold = threshold
	return r
}

// Run evaluates all cases and returns the batch report. Case results keep
// input order regardless of which worker finished first.
//
// Cancelling the context stops the submission of remaining cases; cases
// already submitted still finish and appear in the report.
func (r *Runner) Run(ctx context.Context, cases []metric.TestCase) *Report {
	results := make([]CaseResult, len(cases))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				tc := cases[i]
				res := metric.Run(ctx, &tc, r.metrics...)
				results[i] = CaseResult{
					ID:         tc.ID,
					Difficulty: tc.Difficulty,
					Passed:     res.AllPassed && res.AggregateScore >= r.threshold,
					Result:     res,
				}
			}
		}()
	}

	submitted := 0
submit:
	for i := range cases {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break submit
		case jobs <- i:
			submitted++
		}
	}
	close(jobs)
	wg.Wait()

	return newReport(results[:submitted])
}
