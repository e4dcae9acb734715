package rules

import (
	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

// DistinctStarRule flags SELECT DISTINCT *, which deduplicates over every
// column and can be expensive.
type DistinctStarRule struct{}

func (*DistinctStarRule) ID() ID { return DistinctStar }

func (*DistinctStarRule) Check(st *sqlstmt.Statement) []Finding {
	if !st.Distinct || !st.SelectStar {
		return nil
	}
	return []Finding{warning(DistinctStar, SeverityMedium,
		"DISTINCT with * can be expensive. Consider if it's necessary.")}
}

// DistinctGroupByRule flags DISTINCT combined with GROUP BY; the grouping
// usually already deduplicates, making DISTINCT redundant.
type DistinctGroupByRule struct{}

func (*DistinctGroupByRule) ID() ID { return DistinctWithGroupBy }

func (*DistinctGroupByRule) Check(st *sqlstmt.Statement) []Finding {
	if !st.Distinct || !st.HasGroupBy {
		return nil
	}
	return []Finding{warning(DistinctWithGroupBy, SeverityLow,
		"DISTINCT with GROUP BY might be redundant. Review if both are needed.")}
}
