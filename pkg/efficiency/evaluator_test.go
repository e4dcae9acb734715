package efficiency

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xdanny/strands-eval/pkg/rules"
)

func TestEvaluateEmptySQL(t *testing.T) {
	for _, sql := range []string{"", "   ", "\n\t"} {
		report := New().Evaluate(sql, nil)
		require.Equal(t, 1.0, report.Score)
		require.True(t, report.Passed)
		require.Empty(t, report.Issues)
		require.Empty(t, report.Warnings)
		require.Empty(t, report.Recommendations)
		require.NotNil(t, report.Issues)
		require.NotNil(t, report.Warnings)
		require.NotNil(t, report.Recommendations)
	}
}

func TestEvaluateSelectStar(t *testing.T) {
	// One issue (select-star) and two warnings (missing-filter,
	// missing-limit): 1.0 - 0.15 - 2*0.05 = 0.75, above the pass bar.
	report := New().Evaluate("SELECT * FROM orders", nil)

	require.InDelta(t, 0.75, report.Score, 1e-9)
	require.True(t, report.Passed)
	require.Len(t, report.Issues, 1)
	require.Equal(t, rules.SelectStar, report.Issues[0].Rule)
	require.Len(t, report.Warnings, 2)
	require.Equal(t, []string{
		"Specify only the columns you need instead of using SELECT *",
		"Consider adding WHERE clause to filter rows or LIMIT to restrict result size",
		"Add a LIMIT clause when exploring data to keep result sets small",
	}, report.Recommendations)
}

func TestEvaluateCartesianProduct(t *testing.T) {
	// One issue (cartesian-product) and one warning (missing-limit):
	// 1.0 - 0.15 - 0.05 = 0.80.
	report := New().Evaluate("SELECT a.id FROM a, b WHERE a.x = 1", nil)

	require.InDelta(t, 0.80, report.Score, 1e-9)
	require.True(t, report.Passed)
	require.Len(t, report.Issues, 1)
	require.Equal(t, rules.CartesianProduct, report.Issues[0].Rule)
}

func TestEvaluateCleanQuery(t *testing.T) {
	report := New().Evaluate("SELECT id, total FROM orders WHERE status = 'paid' LIMIT 100", nil)

	require.Equal(t, 1.0, report.Score)
	require.True(t, report.Passed)
	require.True(t, report.IsClean())
	require.Empty(t, report.Recommendations)
}

func TestEvaluateFunctionOnFilteredColumn(t *testing.T) {
	report := New().Evaluate("SELECT id FROM t WHERE YEAR(created_at) = 2024 LIMIT 10", nil)

	require.Empty(t, report.Issues)
	require.Len(t, report.Warnings, 1)
	require.Equal(t, rules.FunctionOnFilteredColumn, report.Warnings[0].Rule)
	require.Contains(t, report.Warnings[0].Message, "YEAR")
	require.InDelta(t, 0.95, report.Score, 1e-9)
}

func TestEvaluateScoreNeverNegative(t *testing.T) {
	// Pile on enough findings that raw deductions would go below zero.
	sql := "SELECT DISTINCT * FROM a, b WHERE x = 1 OR y = 2 OR id IN (SELECT x FROM u) OR YEAR(d) = 2024"
	report := New().Evaluate(sql, nil)

	require.GreaterOrEqual(t, report.Score, 0.0)
	require.LessOrEqual(t, report.Score, 1.0)
	require.False(t, report.Passed)
}

func TestEvaluateDegradedSQL(t *testing.T) {
	// Unparseable input still gets a report: the parse warning plus any
	// keyword-level findings.
	report := New().Evaluate("SELECT * FROM orders WHERE (((", nil)

	require.Less(t, report.Score, 1.0)
	var sawDegraded bool
	for _, w := range report.Warnings {
		if w.Rule == rules.ParseDegraded {
			sawDegraded = true
		}
	}
	require.True(t, sawDegraded)
}

func TestEvaluateIdempotent(t *testing.T) {
	e := New()
	sql := "SELECT * FROM orders"
	first := e.Evaluate(sql, nil)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, e.Evaluate(sql, nil))
	}
}

func TestEvaluateTableSizesIgnored(t *testing.T) {
	e := New()
	sql := "SELECT * FROM orders"
	with := e.Evaluate(sql, map[string]int64{"orders": 1_000_000})
	without := e.Evaluate(sql, nil)
	require.Equal(t, without, with)
}

func TestEvaluateWithCustomRules(t *testing.T) {
	e := NewWithRules(rules.DefaultExcept(rules.SelectStar)...)
	report := e.Evaluate("SELECT * FROM orders", nil)

	require.Empty(t, report.Issues)
	for _, rec := range report.Recommendations {
		require.NotContains(t, rec, "SELECT *")
	}
}

func TestRecommendationsDeduplicated(t *testing.T) {
	// Several OR predicates still yield one recommendation for the rule.
	report := New().Evaluate("SELECT id FROM t WHERE a = 1 OR b = 2 OR c = 3 LIMIT 5", nil)

	count := 0
	for _, rec := range report.Recommendations {
		if rec == "Consider using IN clause or UNION instead of multiple OR conditions" {
			count++
		}
	}
	require.Equal(t, 1, count)
}
