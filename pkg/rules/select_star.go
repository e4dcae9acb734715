package rules

import (
	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

// SelectStarRule flags SELECT * result lists.
type SelectStarRule struct{}

func (*SelectStarRule) ID() ID { return SelectStar }

func (*SelectStarRule) Check(st *sqlstmt.Statement) []Finding {
	if !st.IsSelect || !st.SelectStar {
		return nil
	}
	return []Finding{issue(SelectStar, SeverityMedium,
		"Using SELECT * retrieves all columns, which may be inefficient. Specify only needed columns.")}
}
