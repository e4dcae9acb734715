package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

func TestEngineEmptyStatement(t *testing.T) {
	eng := NewEngine()
	require.Nil(t, eng.Check(nil))
	require.Nil(t, eng.Check(sqlstmt.Parse("")))
	require.Nil(t, eng.Check(sqlstmt.Parse("   \n\t ")))
}

func TestEngineDegradedParse(t *testing.T) {
	st := sqlstmt.Parse("SELECT * FROM orders WHERE (((")
	require.False(t, st.Parsed)

	findings := NewEngine().Check(st)

	var degraded *Finding
	fired := make(map[ID]bool, len(findings))
	for i, f := range findings {
		fired[f.Rule] = true
		if f.Rule == ParseDegraded {
			degraded = &findings[i]
		}
	}

	require.NotNil(t, degraded)
	require.Equal(t, SeverityLow, degraded.Severity)
	require.Equal(t, CategoryWarning, degraded.Category)

	// Text-level rules still run on a degraded statement.
	require.True(t, fired[SelectStar])
	// Structural rules do not.
	require.False(t, fired[CartesianProduct])
	require.False(t, fired[FunctionOnFilteredColumn])
}

func TestEngineDegradedTextFallbacks(t *testing.T) {
	fired := firedRules(t, "SELECT id FROM t WHERE id IN (SELECT x FROM u WHERE (((")
	require.True(t, fired[ParseDegraded])
	require.True(t, fired[SubqueryInWhere])

	fired = firedRules(t, "SELECT id FROM t WHERE a = 1 OR b = 2 GROUP BY ((")
	require.True(t, fired[ParseDegraded])
	require.True(t, fired[OrPredicate])
}

func TestDefaultExcept(t *testing.T) {
	eng := NewEngine(DefaultExcept(SelectStar, MissingLimit)...)
	findings := eng.Check(sqlstmt.Parse("SELECT * FROM orders"))

	fired := make(map[ID]bool, len(findings))
	for _, f := range findings {
		fired[f.Rule] = true
	}
	require.False(t, fired[SelectStar])
	require.False(t, fired[MissingLimit])
	require.True(t, fired[MissingFilter])
}

func TestEngineDeterministicOrder(t *testing.T) {
	sql := "SELECT * FROM orders"
	first := NewEngine().Check(sqlstmt.Parse(sql))
	for i := 0; i < 5; i++ {
		require.Equal(t, first, NewEngine().Check(sqlstmt.Parse(sql)))
	}
}
