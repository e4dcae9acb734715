// Package evaluation runs metric sets over batches of test cases.
//
// Every test case is independent: cases are evaluated concurrently by a
// worker pool, and cancelling the context simply stops submitting the
// remaining cases. There is no shared state to roll back.
package evaluation

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xdanny/strands-eval/pkg/metric"
)

// CaseFile is the on-disk test case format.
type CaseFile struct {
	Cases []metric.TestCase `yaml:"cases" json:"cases"`
}

// LoadCases loads test cases from a YAML or JSON file.
func LoadCases(filename string) ([]metric.TestCase, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read test case file %s", filename)
	}

	var file CaseFile
	if yamlErr := yaml.Unmarshal(data, &file); yamlErr != nil {
		slog.Debug("YAML unmarshal failed, trying JSON", "error", yamlErr)
		if jsonErr := json.Unmarshal(data, &file); jsonErr != nil {
			return nil, errors.Wrapf(jsonErr, "test case file %s is neither valid YAML nor JSON", filename)
		}
	}
	if len(file.Cases) == 0 {
		return nil, errors.Errorf("test case file %s contains no cases", filename)
	}
	return file.Cases, nil
}

// FilterDifficulty keeps only cases with the given difficulty. An empty
// difficulty keeps everything.
func FilterDifficulty(cases []metric.TestCase, difficulty string) []metric.TestCase {
	if difficulty == "" {
		return cases
	}
	var kept []metric.TestCase
	for _, tc := range cases {
		if tc.Difficulty == difficulty {
			kept = append(kept, tc)
		}
	}
	return kept
}
