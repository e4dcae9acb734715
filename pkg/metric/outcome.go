// Package metric combines independently scored quality checks into a
// single verdict.
//
// Each named metric produces an Outcome: either a score with a pass/fail
// flag, or a failure message. Combine folds any number of outcomes into an
// aggregate score and an overall pass/fail, tolerating partial failure:
// an errored metric stays visible in the result but never blocks the
// scoring of the others.
package metric

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Polarity declares whether a higher or a lower raw score means better
// quality. There is no default: silently assuming higher-is-better for a
// lower-is-better metric would invert pass/fail, so every outcome must
// declare its polarity explicitly.
type Polarity int

const (
	PolarityUnspecified Polarity = iota
	HigherBetter
	LowerBetter
)

func (p Polarity) String() string {
	switch p {
	case HigherBetter:
		return "higher_better"
	case LowerBetter:
		return "lower_better"
	default:
		return "unspecified"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON output.
func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON input.
func (p *Polarity) UnmarshalText(text []byte) error {
	return p.parse(string(text))
}

// MarshalYAML implements yaml.Marshaler.
func (p Polarity) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Polarity) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return p.parse(s)
}

func (p *Polarity) parse(s string) error {
	switch s {
	case "higher_better":
		*p = HigherBetter
	case "lower_better":
		*p = LowerBetter
	default:
		return errors.Errorf("unknown polarity %q (want higher_better or lower_better)", s)
	}
	return nil
}

// Outcome is one named, pre-scored evaluation result. It is a result
// type: either Score and Passed are meaningful, or Error is set and the
// outcome is excluded from score averaging and the pass conjunction.
type Outcome struct {
	Name     string   `json:"name" yaml:"name"`
	Polarity Polarity `json:"polarity" yaml:"polarity"`
	Score    float64  `json:"score" yaml:"score"`
	Passed   bool     `json:"passed" yaml:"passed"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewOutcome builds a successful outcome. The score is clamped to [0,1].
func NewOutcome(name string, polarity Polarity, score float64, passed bool) Outcome {
	return Outcome{Name: name, Polarity: polarity, Score: clamp01(score), Passed: passed}
}

// FailedOutcome builds an errored outcome carrying the failure message.
func FailedOutcome(name string, polarity Polarity, err error) Outcome {
	msg := "evaluation failed"
	if err != nil {
		msg = err.Error()
	}
	return Outcome{Name: name, Polarity: polarity, Error: msg}
}

// Failed reports whether the outcome carries an error instead of a score.
func (o Outcome) Failed() bool { return o.Error != "" }

func (o Outcome) String() string {
	if o.Failed() {
		return fmt.Sprintf("%s: error: %s", o.Name, o.Error)
	}
	return fmt.Sprintf("%s: %.2f (%s, passed=%t)", o.Name, o.Score, o.Polarity, o.Passed)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
