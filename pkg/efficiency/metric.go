package efficiency

import (
	"context"

	"github.com/xdanny/strands-eval/pkg/metric"
)

// MetricName is the name the efficiency check reports under when it joins
// a metric aggregation.
const MetricName = "query_efficiency"

type efficiencyMetric struct {
	evaluator *Evaluator
}

// Metric exposes the evaluator as a higher-is-better metric so it can be
// aggregated alongside externally judged metrics.
func (e *Evaluator) Metric() metric.Metric {
	return efficiencyMetric{evaluator: e}
}

func (efficiencyMetric) Name() string              { return MetricName }
func (efficiencyMetric) Polarity() metric.Polarity { return metric.HigherBetter }

func (m efficiencyMetric) Evaluate(_ context.Context, tc *metric.TestCase) (float64, bool, error) {
	report := m.evaluator.Evaluate(tc.SQL, nil)
	return report.Score, report.Passed, nil
}
