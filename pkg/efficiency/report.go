package efficiency

import (
	"fmt"

	"github.com/xdanny/strands-eval/pkg/rules"
)

// Report is the efficiency verdict for one SQL statement.
//
// The field names are stable: they are the contract consumed by reporting
// layers and by CI gates that threshold on Passed.
type Report struct {
	// Score is the efficiency score in [0,1]; higher is better.
	Score float64 `json:"efficiency_score" yaml:"efficiency_score"`

	// Passed reports whether Score reached the fixed 0.7 bar.
	Passed bool `json:"passed" yaml:"passed"`

	// Issues are the higher-confidence defects found, in rule order.
	Issues []rules.Finding `json:"issues" yaml:"issues"`

	// Warnings are the advisory findings, in rule order.
	Warnings []rules.Finding `json:"warnings" yaml:"warnings"`

	// Recommendations holds one fixed suggestion per distinct rule that
	// fired, deduplicated and in deterministic order.
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// HasIssues returns true if any issue-category findings were detected.
func (r *Report) HasIssues() bool {
	return len(r.Issues) > 0
}

// HasWarnings returns true if any warning-category findings were detected.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// IsClean returns true if no findings of either category were detected.
func (r *Report) IsClean() bool {
	return len(r.Issues) == 0 && len(r.Warnings) == 0
}

// String returns a human-readable one-line summary.
//
// Example output:
//
//	efficiency 0.75 (passed): 1 issues, 2 warnings
func (r *Report) String() string {
	verdict := "failed"
	if r.Passed {
		verdict = "passed"
	}
	return fmt.Sprintf("efficiency %.2f (%s): %d issues, %d warnings",
		r.Score, verdict, len(r.Issues), len(r.Warnings))
}
