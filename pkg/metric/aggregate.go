package metric

import (
	"github.com/pkg/errors"
)

// Result is the combined verdict over one set of outcomes. It is computed
// fresh by every Combine call and never mutated afterwards.
type Result struct {
	// Outcomes maps metric name to its outcome, errored ones included.
	Outcomes map[string]Outcome `json:"metrics" yaml:"metrics"`

	// AggregateScore is the polarity-normalized mean over the outcomes
	// that carry a score, so higher is always better. 0.0 when no
	// outcome carries a score.
	AggregateScore float64 `json:"aggregate_score" yaml:"aggregate_score"`

	// AllPassed is the conjunction of Passed over the outcomes that
	// carry one. False when none do, never a vacuous true.
	AllPassed bool `json:"all_passed" yaml:"all_passed"`
}

// Combine folds the outcomes into a Result. Lower-is-better scores fold
// into the mean as 1-score. An outcome with an unspecified polarity is
// recorded as errored rather than guessed at, preserving the isolation
// guarantee for the rest of the set. Outcomes sharing a name collapse to
// the last one supplied before any averaging, so the aggregate always
// agrees with the visible outcome set.
func Combine(outcomes ...Outcome) Result {
	per := make(map[string]Outcome, len(outcomes))
	for _, o := range outcomes {
		if !o.Failed() && o.Polarity == PolarityUnspecified {
			o = FailedOutcome(o.Name, o.Polarity,
				errors.Errorf("metric %q did not declare a polarity", o.Name))
		}
		per[o.Name] = o
	}

	var sum float64
	scored := 0
	withVerdict := 0
	allPassed := true

	for _, o := range per {
		if o.Failed() {
			continue
		}

		score := clamp01(o.Score)
		if o.Polarity == LowerBetter {
			score = 1 - score
		}
		sum += score
		scored++

		withVerdict++
		allPassed = allPassed && o.Passed
	}

	res := Result{Outcomes: per}
	if scored > 0 {
		res.AggregateScore = sum / float64(scored)
	}
	res.AllPassed = withVerdict > 0 && allPassed
	return res
}

// Errored returns the names of outcomes that failed, in no particular
// order. Empty when every metric scored.
func (r Result) Errored() []string {
	var names []string
	for name, o := range r.Outcomes {
		if o.Failed() {
			names = append(names, name)
		}
	}
	return names
}
