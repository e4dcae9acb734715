package metric

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCombineMixedPolarities(t *testing.T) {
	// A 0.9 higher-is-better score and a 0.2 lower-is-better score fold
	// to (0.9 + 0.8) / 2 = 0.85.
	res := Combine(
		NewOutcome("faithfulness", HigherBetter, 0.9, true),
		NewOutcome("hallucination", LowerBetter, 0.2, true),
	)

	require.InDelta(t, 0.85, res.AggregateScore, 1e-9)
	require.True(t, res.AllPassed)
	require.Len(t, res.Outcomes, 2)
	require.Empty(t, res.Errored())
}

func TestCombineErroredExcluded(t *testing.T) {
	res := Combine(
		NewOutcome("a", HigherBetter, 1.0, true),
		FailedOutcome("b", HigherBetter, errors.New("judge timed out")),
	)

	// The errored metric stays visible but does not drag the mean down.
	require.InDelta(t, 1.0, res.AggregateScore, 1e-9)
	require.True(t, res.AllPassed)
	require.Equal(t, []string{"b"}, res.Errored())
	require.Equal(t, "judge timed out", res.Outcomes["b"].Error)
}

func TestCombineAllErrored(t *testing.T) {
	res := Combine(
		FailedOutcome("a", HigherBetter, errors.New("boom")),
		FailedOutcome("b", LowerBetter, errors.New("boom")),
	)

	require.Equal(t, 0.0, res.AggregateScore)
	require.False(t, res.AllPassed)
	require.Len(t, res.Errored(), 2)
}

func TestCombineNoOutcomes(t *testing.T) {
	res := Combine()

	require.Equal(t, 0.0, res.AggregateScore)
	require.False(t, res.AllPassed)
	require.Empty(t, res.Outcomes)
}

func TestCombineUnspecifiedPolarity(t *testing.T) {
	res := Combine(
		NewOutcome("a", HigherBetter, 0.5, true),
		Outcome{Name: "b", Score: 0.9, Passed: true},
	)

	// The undeclared metric errors out instead of being guessed at.
	require.Equal(t, []string{"b"}, res.Errored())
	require.Contains(t, res.Outcomes["b"].Error, "polarity")
	require.InDelta(t, 0.5, res.AggregateScore, 1e-9)
	require.True(t, res.AllPassed)
}

func TestCombineClampsScores(t *testing.T) {
	res := Combine(
		Outcome{Name: "a", Polarity: HigherBetter, Score: 1.7, Passed: true},
		Outcome{Name: "b", Polarity: LowerBetter, Score: -0.3, Passed: true},
	)

	// 1.7 clamps to 1.0; -0.3 clamps to 0.0 and folds to 1.0.
	require.InDelta(t, 1.0, res.AggregateScore, 1e-9)
}

func TestCombineFailedConjunction(t *testing.T) {
	res := Combine(
		NewOutcome("a", HigherBetter, 0.9, true),
		NewOutcome("b", HigherBetter, 0.4, false),
	)

	require.False(t, res.AllPassed)
	require.InDelta(t, 0.65, res.AggregateScore, 1e-9)
}

func TestCombineDuplicateNamesLastWins(t *testing.T) {
	res := Combine(
		NewOutcome("a", HigherBetter, 0.2, false),
		NewOutcome("a", HigherBetter, 0.8, true),
	)

	// Only the surviving outcome counts: the mean and the pass
	// conjunction match the visible outcome set.
	require.Len(t, res.Outcomes, 1)
	require.InDelta(t, 0.8, res.Outcomes["a"].Score, 1e-9)
	require.InDelta(t, 0.8, res.AggregateScore, 1e-9)
	require.True(t, res.AllPassed)
}
