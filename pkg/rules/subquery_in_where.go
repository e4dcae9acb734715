package rules

import (
	"regexp"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

var inSelectRe = regexp.MustCompile(`\bIN\s*\(\s*SELECT\b`)

// SubqueryInWhereRule flags a nested SELECT inside an IN (...) construct
// in the WHERE clause; such subqueries can often be rewritten as JOINs.
type SubqueryInWhereRule struct{}

func (*SubqueryInWhereRule) ID() ID { return SubqueryInWhere }

func (*SubqueryInWhereRule) Check(st *sqlstmt.Statement) []Finding {
	found := false
	if st.Parsed {
		if st.Where == nil {
			return nil
		}
		v := &inSubqueryDetector{}
		st.Where.Accept(v)
		found = v.found
	} else {
		// Degraded statements fall back to scanning the raw text.
		found = st.HasWhere && inSelectRe.MatchString(st.Raw)
	}
	if !found {
		return nil
	}
	return []Finding{warning(SubqueryInWhere, SeverityLow,
		"Subquery in WHERE clause could potentially be rewritten as JOIN for better performance.")}
}

type inSubqueryDetector struct {
	found bool
}

func (v *inSubqueryDetector) Enter(n ast.Node) (ast.Node, bool) {
	if in, ok := n.(*ast.PatternInExpr); ok && in.Sel != nil {
		v.found = true
		return n, true
	}
	return n, v.found
}

func (v *inSubqueryDetector) Leave(n ast.Node) (ast.Node, bool) { return n, true }
