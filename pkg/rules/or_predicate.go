package rules

import (
	"strings"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/opcode"

	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

// OrPredicateRule flags OR combinators in the WHERE predicate tree. OR
// conditions frequently defeat index usage. Subqueries are not descended
// into; an OR confined to a nested SELECT is that query's concern.
type OrPredicateRule struct{}

func (*OrPredicateRule) ID() ID { return OrPredicate }

func (*OrPredicateRule) Check(st *sqlstmt.Statement) []Finding {
	found := false
	if st.Parsed {
		if st.Where == nil {
			return nil
		}
		v := &orDetector{}
		st.Where.Accept(v)
		found = v.found
	} else {
		found = strings.Contains(st.WhereText, " OR ")
	}
	if !found {
		return nil
	}
	return []Finding{warning(OrPredicate, SeverityLow,
		"OR conditions in WHERE clause may prevent index usage. Consider UNION or IN clause.")}
}

type orDetector struct {
	found bool
}

func (v *orDetector) Enter(n ast.Node) (ast.Node, bool) {
	switch e := n.(type) {
	case *ast.SubqueryExpr:
		return n, true
	case *ast.BinaryOperationExpr:
		if e.Op == opcode.LogicOr {
			v.found = true
			return n, true
		}
	}
	return n, v.found
}

func (v *orDetector) Leave(n ast.Node) (ast.Node, bool) { return n, true }
