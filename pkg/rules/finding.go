package rules

// ID identifies one detection rule. The set is fixed; adding a rule means
// adding an ID constant, its implementation, and its recommendation text.
type ID string

const (
	SelectStar               ID = "select-star"
	MissingFilter            ID = "missing-filter"
	CartesianProduct         ID = "cartesian-product"
	SubqueryInWhere          ID = "subquery-in-where"
	MissingLimit             ID = "missing-limit"
	OrPredicate              ID = "or-predicate"
	FunctionOnFilteredColumn ID = "function-on-filtered-column"
	DistinctStar             ID = "distinct-star"
	DistinctWithGroupBy      ID = "distinct-with-group-by"

	// ParseDegraded is emitted by the engine itself when the statement
	// could not be fully parsed and rule coverage is reduced.
	ParseDegraded ID = "parse-degraded"
)

// Severity grades how confident and how costly a finding is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Category splits findings into defects and advisories. Issues carry a
// larger score deduction than warnings.
type Category string

const (
	CategoryIssue   Category = "issue"
	CategoryWarning Category = "warning"
)

// Finding is one detected condition. It is a value type: produced by
// exactly one rule and never mutated after creation.
type Finding struct {
	Rule     ID       `json:"type" yaml:"type"`
	Severity Severity `json:"severity" yaml:"severity"`
	Category Category `json:"-" yaml:"-"`
	Message  string   `json:"message" yaml:"message"`
}

func issue(rule ID, severity Severity, message string) Finding {
	return Finding{Rule: rule, Severity: severity, Category: CategoryIssue, Message: message}
}

func warning(rule ID, severity Severity, message string) Finding {
	return Finding{Rule: rule, Severity: severity, Category: CategoryWarning, Message: message}
}
