// Package rules implements the SQL efficiency detection rules.
//
// Each rule is stateless and independent: it inspects a normalized
// statement view and returns zero or more findings. Rules never
// short-circuit each other; a statement can accumulate any combination
// of findings. The Engine only collects, it does not score.
package rules

import (
	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

// Rule is a single detection check over one statement.
type Rule interface {
	// ID returns the fixed identifier of the rule.
	ID() ID
	// Check inspects the statement and returns any findings. Rules that
	// need structure the statement model could not recover return nil
	// for degraded statements.
	Check(st *sqlstmt.Statement) []Finding
}

// Default returns the full rule set in report order.
func Default() []Rule {
	return []Rule{
		&SelectStarRule{},
		&MissingFilterRule{},
		&CartesianProductRule{},
		&SubqueryInWhereRule{},
		&MissingLimitRule{},
		&OrPredicateRule{},
		&FunctionOnFilteredColumnRule{},
		&DistinctStarRule{},
		&DistinctGroupByRule{},
	}
}

// DefaultExcept returns the default rule set minus the given rule ids.
// Unknown ids are ignored.
func DefaultExcept(disabled ...ID) []Rule {
	skip := make(map[ID]bool, len(disabled))
	for _, id := range disabled {
		skip[id] = true
	}
	var kept []Rule
	for _, r := range Default() {
		if !skip[r.ID()] {
			kept = append(kept, r)
		}
	}
	return kept
}

// Engine runs a rule set against statements. The zero rules case is
// replaced by the default set.
//
// Engine is stateless and safe for concurrent use.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over the given rules, or the default set
// when none are given.
func NewEngine(rs ...Rule) *Engine {
	if len(rs) == 0 {
		rs = Default()
	}
	return &Engine{rules: rs}
}

// Check runs every rule against the statement and collects the findings.
// Degraded statements additionally get a single low-severity warning for
// the reduced rule coverage.
func (e *Engine) Check(st *sqlstmt.Statement) []Finding {
	if st == nil || st.Raw == "" {
		return nil
	}
	var findings []Finding
	if !st.Parsed {
		findings = append(findings, warning(ParseDegraded, SeverityLow,
			"Could not fully parse query; structural checks were skipped."))
	}
	for _, r := range e.rules {
		findings = append(findings, r.Check(st)...)
	}
	return findings
}
