// Package sqlstmt turns raw SQL text into a normalized statement view that
// detection rules can query without touching the parser directly.
//
// Parsing is best-effort: when the SQL cannot be parsed, the returned
// Statement is marked degraded and clause presence is recovered by keyword
// scanning over the uppercased raw text. Parse never returns an error.
package sqlstmt

import (
	"regexp"
	"strings"

	"github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/format"
	_ "github.com/pingcap/tidb/parser/test_driver"
)

// JoinKind describes how a FROM entry connects to the entries before it.
type JoinKind string

const (
	// JoinNone marks the first entry in the FROM list.
	JoinNone JoinKind = ""
	// JoinCross covers comma-separated tables, CROSS JOIN and INNER JOIN
	// (the parser does not distinguish the three).
	JoinCross JoinKind = "cross"
	JoinLeft  JoinKind = "left"
	JoinRight JoinKind = "right"
)

// FromEntry is one table or subquery in the FROM list.
type FromEntry struct {
	// Name is the table name, alias, or "(subquery)" for derived tables.
	Name string
	// Join is how this entry connects to the previous entry.
	Join JoinKind
	// HasOnCond reports whether an ON or USING predicate is attached.
	HasOnCond bool
}

// Statement is the normalized view of one SQL statement.
//
// A Statement is immutable once built; Parse constructs a fresh value on
// every call, so Statements may be shared freely across goroutines.
type Statement struct {
	// Raw is the trimmed, uppercased statement text, kept for fallback
	// scanning when structure could not be recovered.
	Raw string

	// Parsed reports whether the statement was fully parsed. When false
	// the clause flags below are keyword-scan approximations and From and
	// Where are absent.
	Parsed bool

	IsSelect   bool
	SelectStar bool
	Distinct   bool
	HasWhere   bool
	HasGroupBy bool
	HasLimit   bool

	// HasJoinKeyword reports whether an explicit JOIN keyword appears in
	// the raw text. The parser maps comma joins and CROSS/INNER JOIN to
	// the same node type, so comma-join detection needs the raw text.
	HasJoinKeyword bool

	// Columns holds the restored text of each non-star result expression.
	Columns []string

	// Aggregates holds the lowercased aggregate function names appearing
	// in the result expressions (whole statement when degraded).
	Aggregates []string

	// From is the flattened FROM list. Nil when absent or degraded.
	From []FromEntry

	// Where is the WHERE predicate tree. Nil when absent or degraded.
	Where ast.ExprNode

	// WhereText is the restored WHERE predicate text, uppercased.
	WhereText string
}

var (
	selectRe   = regexp.MustCompile(`\bSELECT\b`)
	starRe     = regexp.MustCompile(`\bSELECT\s+(DISTINCT\s+)?\*`)
	distinctRe = regexp.MustCompile(`\bSELECT\s+DISTINCT\b`)
	whereRe    = regexp.MustCompile(`\bWHERE\b`)
	limitRe    = regexp.MustCompile(`\bLIMIT\b`)
	groupByRe  = regexp.MustCompile(`\bGROUP\s+BY\b`)
	joinRe     = regexp.MustCompile(`\bJOIN\b`)
	aggRe      = regexp.MustCompile(`\b(COUNT|SUM|AVG)\s*\(`)
)

// Parse builds a Statement from SQL text. It never fails: unparseable input
// yields a degraded Statement built by keyword scanning. When the input
// contains multiple statements only the first is modeled.
func Parse(sql string) *Statement {
	st := &Statement{Raw: strings.ToUpper(strings.TrimSpace(sql))}
	st.HasJoinKeyword = joinRe.MatchString(st.Raw)

	nodes, _, err := parser.New().Parse(sql, "", "")
	if err != nil || len(nodes) == 0 {
		st.scanRaw()
		return st
	}

	st.Parsed = true
	switch n := nodes[0].(type) {
	case *ast.SelectStmt:
		st.buildSelect(n)
	case *ast.UpdateStmt:
		st.setWhere(n.Where)
		st.HasLimit = n.Limit != nil
	case *ast.DeleteStmt:
		st.setWhere(n.Where)
		st.HasLimit = n.Limit != nil
	}
	return st
}

func (st *Statement) buildSelect(sel *ast.SelectStmt) {
	st.IsSelect = true
	st.Distinct = sel.Distinct
	if sel.Fields != nil {
		for _, field := range sel.Fields.Fields {
			if field.WildCard != nil {
				st.SelectStar = true
				continue
			}
			st.Columns = append(st.Columns, restore(field.Expr))
			st.Aggregates = append(st.Aggregates, collectAggregates(field.Expr)...)
		}
	}
	if sel.From != nil {
		st.From = flattenRefs(sel.From.TableRefs, nil)
	}
	st.setWhere(sel.Where)
	st.HasGroupBy = sel.GroupBy != nil && len(sel.GroupBy.Items) > 0
	st.HasLimit = sel.Limit != nil
}

func (st *Statement) setWhere(where ast.ExprNode) {
	if where == nil {
		return
	}
	st.HasWhere = true
	st.Where = where
	st.WhereText = strings.ToUpper(restore(where))
}

// scanRaw recovers clause presence from the raw text for statements the
// parser rejected.
func (st *Statement) scanRaw() {
	st.IsSelect = selectRe.MatchString(st.Raw)
	st.SelectStar = starRe.MatchString(st.Raw)
	st.Distinct = distinctRe.MatchString(st.Raw)
	st.HasWhere = whereRe.MatchString(st.Raw)
	st.HasLimit = limitRe.MatchString(st.Raw)
	st.HasGroupBy = groupByRe.MatchString(st.Raw)
	if loc := whereRe.FindStringIndex(st.Raw); loc != nil {
		st.WhereText = strings.TrimSpace(st.Raw[loc[1]:])
	}
	for _, m := range aggRe.FindAllStringSubmatch(st.Raw, -1) {
		st.Aggregates = append(st.Aggregates, strings.ToLower(m[1]))
	}
}

// flattenRefs walks the join tree left to right, recording for each entry
// the join kind and whether an ON/USING predicate is attached.
func flattenRefs(node ast.ResultSetNode, entries []FromEntry) []FromEntry {
	switch n := node.(type) {
	case *ast.Join:
		entries = flattenRefs(n.Left, entries)
		if n.Right != nil {
			start := len(entries)
			entries = flattenRefs(n.Right, entries)
			if start < len(entries) {
				entries[start].Join = joinKind(n.Tp)
				entries[start].HasOnCond = n.On != nil || len(n.Using) > 0
			}
		}
	case *ast.TableSource:
		name := n.AsName.O
		if tn, ok := n.Source.(*ast.TableName); ok && name == "" {
			name = tn.Name.O
		}
		if name == "" {
			name = "(subquery)"
		}
		entries = append(entries, FromEntry{Name: name})
	}
	return entries
}

func joinKind(tp ast.JoinType) JoinKind {
	switch tp {
	case ast.LeftJoin:
		return JoinLeft
	case ast.RightJoin:
		return JoinRight
	default:
		return JoinCross
	}
}

type aggCollector struct {
	names []string
}

func (c *aggCollector) Enter(n ast.Node) (ast.Node, bool) {
	if agg, ok := n.(*ast.AggregateFuncExpr); ok {
		c.names = append(c.names, strings.ToLower(agg.F))
	}
	return n, false
}

func (c *aggCollector) Leave(n ast.Node) (ast.Node, bool) { return n, true }

func collectAggregates(expr ast.ExprNode) []string {
	if expr == nil {
		return nil
	}
	c := &aggCollector{}
	expr.Accept(c)
	return c.names
}

// restore renders an AST node back to SQL text. Returns "" when the node
// cannot be restored; callers treat that as absent.
func restore(n ast.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := n.Restore(ctx); err != nil {
		return ""
	}
	return sb.String()
}
