package rules

import (
	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

// MissingLimitRule flags SELECT statements with no LIMIT that are not
// aggregations. A statement counts as an aggregation when it has a
// GROUP BY or a COUNT/SUM/AVG result expression; other aggregates do not
// suppress the warning.
type MissingLimitRule struct{}

func (*MissingLimitRule) ID() ID { return MissingLimit }

func (*MissingLimitRule) Check(st *sqlstmt.Statement) []Finding {
	if !st.IsSelect || st.HasLimit || st.HasGroupBy {
		return nil
	}
	for _, agg := range st.Aggregates {
		switch agg {
		case "count", "sum", "avg":
			return nil
		}
	}
	return []Finding{warning(MissingLimit, SeverityLow,
		"Query might return large result set. Consider adding LIMIT for testing.")}
}
