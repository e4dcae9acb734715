package evaluation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/xdanny/strands-eval/pkg/metric"
)

// CaseResult is the combined metric verdict for one test case.
type CaseResult struct {
	ID         string `json:"id" yaml:"id"`
	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`

	// Passed reports whether every metric passed and the aggregate score
	// reached the runner's threshold.
	Passed bool          `json:"passed" yaml:"passed"`
	Result metric.Result `json:"result" yaml:"result"`
}

// Tally counts passed cases within a group.
type Tally struct {
	Total  int `json:"total" yaml:"total"`
	Passed int `json:"passed" yaml:"passed"`
}

// Summary aggregates the batch outcome.
type Summary struct {
	Total        int               `json:"total" yaml:"total"`
	Passed       int               `json:"passed" yaml:"passed"`
	Failed       int               `json:"failed" yaml:"failed"`
	SuccessRate  float64           `json:"success_rate" yaml:"success_rate"`
	ByDifficulty map[string]*Tally `json:"by_difficulty,omitempty" yaml:"by_difficulty,omitempty"`
}

// Report is the result of one batch evaluation.
type Report struct {
	Cases   []CaseResult `json:"cases" yaml:"cases"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

func newReport(results []CaseResult) *Report {
	report := &Report{Cases: results}
	report.Summary = calculateSummary(results)
	return report
}

// calculateSummary computes aggregate statistics from case results.
func calculateSummary(results []CaseResult) Summary {
	summary := Summary{ByDifficulty: make(map[string]*Tally)}
	for _, cr := range results {
		summary.Total++
		tally := summary.ByDifficulty[cr.Difficulty]
		if tally == nil {
			tally = &Tally{}
			summary.ByDifficulty[cr.Difficulty] = tally
		}
		tally.Total++
		if cr.Passed {
			summary.Passed++
			tally.Passed++
		} else {
			summary.Failed++
		}
	}
	if summary.Total > 0 {
		summary.SuccessRate = float64(summary.Passed) / float64(summary.Total)
	}
	if len(summary.ByDifficulty) == 0 {
		summary.ByDifficulty = nil
	}
	return summary
}

// String returns a human-readable summary line.
//
// Example output:
//
//	Evaluation: 12 cases, 10 passed, 2 failed (83.3% success)
func (r *Report) String() string {
	return fmt.Sprintf("Evaluation: %d cases, %d passed, %d failed (%.1f%% success)",
		r.Summary.Total, r.Summary.Passed, r.Summary.Failed, r.Summary.SuccessRate*100)
}

// WriteJSON writes the report as indented JSON to the given path.
func (r *Report) WriteJSON(filename string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal report")
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write report to %s", filename)
	}
	return nil
}
