// Package efficiency scores SQL statements against the efficiency rule
// set and folds the findings into a single bounded report.
//
// # Quick Start
//
//	e := efficiency.New()
//	report := e.Evaluate("SELECT * FROM orders", nil)
//	fmt.Println(report.String())
//	for _, rec := range report.Recommendations {
//	    fmt.Println("  -", rec)
//	}
package efficiency

import (
	"strings"

	"github.com/xdanny/strands-eval/pkg/rules"
	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

const (
	issueDeduction   = 0.15
	warningDeduction = 0.05

	// passThreshold is fixed. Callers that need a different bar compose
	// their own outcome threshold at the aggregation layer.
	passThreshold = 0.7
)

// Evaluator scores SQL statements. It holds no per-call state and is safe
// for concurrent use; every Evaluate call builds a fresh report.
type Evaluator struct {
	engine *rules.Engine
}

// New creates an evaluator over the default rule set.
func New() *Evaluator {
	return &Evaluator{engine: rules.NewEngine()}
}

// NewWithRules creates an evaluator over a custom rule set.
func NewWithRules(rs ...rules.Rule) *Evaluator {
	return &Evaluator{engine: rules.NewEngine(rs...)}
}

// Evaluate analyzes one SQL statement and returns its efficiency report.
//
// The score starts at 1.0 and loses 0.15 per issue and 0.05 per warning,
// clamped to [0,1]. Empty or whitespace-only SQL is nothing to evaluate
// and yields a perfect trivial report, not an error.
//
// tableSizes maps table name to approximate row count. It is accepted for
// forward compatibility with size-aware severity and is currently unused.
func (e *Evaluator) Evaluate(sql string, tableSizes map[string]int64) *Report {
	_ = tableSizes

	report := &Report{
		Score:           1.0,
		Passed:          true,
		Issues:          []rules.Finding{},
		Warnings:        []rules.Finding{},
		Recommendations: []string{},
	}
	if strings.TrimSpace(sql) == "" {
		return report
	}

	findings := e.engine.Check(sqlstmt.Parse(sql))
	for _, f := range findings {
		switch f.Category {
		case rules.CategoryIssue:
			report.Issues = append(report.Issues, f)
		case rules.CategoryWarning:
			report.Warnings = append(report.Warnings, f)
		}
	}

	score := 1.0 -
		issueDeduction*float64(len(report.Issues)) -
		warningDeduction*float64(len(report.Warnings))
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	report.Score = score
	report.Passed = score >= passThreshold
	report.Recommendations = recommendationsFor(findings)
	return report
}
