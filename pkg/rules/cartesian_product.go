package rules

import (
	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

// CartesianProductRule flags comma joins with no join predicate: two or
// more FROM entries, no explicit JOIN keyword, and no ON/USING condition
// on any entry.
type CartesianProductRule struct{}

func (*CartesianProductRule) ID() ID { return CartesianProduct }

func (*CartesianProductRule) Check(st *sqlstmt.Statement) []Finding {
	if !st.Parsed || len(st.From) < 2 {
		return nil
	}
	// Comma joins and explicit JOINs parse to the same node type, so the
	// JOIN keyword is checked against the raw text.
	if st.HasJoinKeyword {
		return nil
	}
	for _, entry := range st.From {
		if entry.HasOnCond {
			return nil
		}
	}
	return []Finding{issue(CartesianProduct, SeverityHigh,
		"Potential cartesian product detected. Multiple tables without JOIN conditions.")}
}
