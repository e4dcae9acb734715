package metric

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

// TestCase is one evaluated item: the agent's SQL and answer for a
// question, plus any pre-scored outcomes from external judges.
type TestCase struct {
	ID         string   `json:"id" yaml:"id"`
	Difficulty string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Question   string   `json:"question,omitempty" yaml:"question,omitempty"`
	SQL        string   `json:"sql" yaml:"sql"`
	Answer     string   `json:"answer,omitempty" yaml:"answer,omitempty"`
	Contexts   []string `json:"contexts,omitempty" yaml:"contexts,omitempty"`

	// External holds outcomes already scored elsewhere, typically by an
	// LLM judge. They join the aggregate as-is.
	External []Outcome `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Metric is an evaluator producing one scored outcome per test case.
type Metric interface {
	Name() string
	Polarity() Polarity
	// Evaluate scores the test case. An error marks this metric's
	// outcome as failed without affecting the other metrics.
	Evaluate(ctx context.Context, tc *TestCase) (score float64, passed bool, err error)
}

// Func adapts a plain function into a Metric.
type Func struct {
	MetricName     string
	MetricPolarity Polarity
	Fn             func(ctx context.Context, tc *TestCase) (float64, bool, error)
}

func (f Func) Name() string       { return f.MetricName }
func (f Func) Polarity() Polarity { return f.MetricPolarity }

func (f Func) Evaluate(ctx context.Context, tc *TestCase) (float64, bool, error) {
	return f.Fn(ctx, tc)
}

// Run evaluates every metric against the test case, appends the case's
// external outcomes, and combines the lot. Each metric is isolated: an
// error or panic inside one metric is captured as that metric's failed
// outcome and the rest still score.
func Run(ctx context.Context, tc *TestCase, metrics ...Metric) Result {
	outcomes := make([]Outcome, 0, len(metrics)+len(tc.External))
	for _, m := range metrics {
		outcomes = append(outcomes, evaluate(ctx, tc, m))
	}
	outcomes = append(outcomes, tc.External...)
	return Combine(outcomes...)
}

func evaluate(ctx context.Context, tc *TestCase, m Metric) (out Outcome) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			err, ok := panicErr.(error)
			if !ok {
				err = errors.Errorf("%v", panicErr)
			}
			slog.Error("metric evaluation PANIC RECOVER", "metric", m.Name(), "error", err)
			out = FailedOutcome(m.Name(), m.Polarity(), err)
		}
	}()

	score, passed, err := m.Evaluate(ctx, tc)
	if err != nil {
		return FailedOutcome(m.Name(), m.Polarity(), err)
	}
	return NewOutcome(m.Name(), m.Polarity(), score, passed)
}
