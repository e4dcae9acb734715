package rules

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/opcode"

	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

// indexBreakingFuncs are the functions that, applied to a column in a
// filter comparison, keep the optimizer from using an index on it.
var indexBreakingFuncs = map[string]bool{
	"year":      true,
	"month":     true,
	"day":       true,
	"date":      true,
	"upper":     true,
	"lower":     true,
	"substring": true,
	"substr":    true,
}

// FunctionOnFilteredColumnRule flags comparisons in the WHERE clause whose
// left side applies a date/time extraction, case-folding or substring
// function directly to a column reference. Needs the predicate tree, so
// degraded statements are skipped.
type FunctionOnFilteredColumnRule struct{}

func (*FunctionOnFilteredColumnRule) ID() ID { return FunctionOnFilteredColumn }

func (*FunctionOnFilteredColumnRule) Check(st *sqlstmt.Statement) []Finding {
	if !st.Parsed || st.Where == nil {
		return nil
	}
	v := &funcOnColumnDetector{}
	st.Where.Accept(v)
	if v.fn == "" {
		return nil
	}
	return []Finding{warning(FunctionOnFilteredColumn, SeverityMedium,
		fmt.Sprintf("Function %s() applied to a column in WHERE clause may prevent index usage.",
			strings.ToUpper(v.fn)))}
}

type funcOnColumnDetector struct {
	fn string // first offending function, "" when none found
}

func (v *funcOnColumnDetector) Enter(n ast.Node) (ast.Node, bool) {
	if v.fn != "" {
		return n, true
	}
	switch e := n.(type) {
	case *ast.SubqueryExpr:
		return n, true
	case *ast.BinaryOperationExpr:
		if isComparison(e.Op) {
			if fn, ok := funcOnColumn(e.L); ok {
				v.fn = fn
				return n, true
			}
		}
	}
	return n, false
}

func (v *funcOnColumnDetector) Leave(n ast.Node) (ast.Node, bool) { return n, true }

func isComparison(op opcode.Op) bool {
	switch op {
	case opcode.EQ, opcode.NE, opcode.LT, opcode.LE, opcode.GT, opcode.GE:
		return true
	}
	return false
}

// funcOnColumn reports whether expr is an index-breaking function call
// whose first argument is a plain column reference.
func funcOnColumn(expr ast.ExprNode) (string, bool) {
	call, ok := expr.(*ast.FuncCallExpr)
	if !ok || !indexBreakingFuncs[call.FnName.L] || len(call.Args) == 0 {
		return "", false
	}
	if _, ok := call.Args[0].(*ast.ColumnNameExpr); !ok {
		return "", false
	}
	return call.FnName.L, true
}
