package rules

import (
	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

// MissingFilterRule flags statements with no WHERE clause, no LIMIT and no
// GROUP BY. Such queries can scan entire tables.
type MissingFilterRule struct{}

func (*MissingFilterRule) ID() ID { return MissingFilter }

func (*MissingFilterRule) Check(st *sqlstmt.Statement) []Finding {
	if st.HasWhere || st.HasLimit || st.HasGroupBy {
		return nil
	}
	return []Finding{warning(MissingFilter, SeverityLow,
		"Query has no WHERE clause or LIMIT. This might scan entire tables.")}
}
