package efficiency

import (
	"github.com/xdanny/strands-eval/pkg/rules"
)

// recommendationOrder fixes the output order of recommendations.
var recommendationOrder = []rules.ID{
	rules.SelectStar,
	rules.MissingFilter,
	rules.CartesianProduct,
	rules.SubqueryInWhere,
	rules.MissingLimit,
	rules.OrPredicate,
	rules.FunctionOnFilteredColumn,
	rules.DistinctStar,
	rules.DistinctWithGroupBy,
}

// recommendationText holds one fixed suggestion per rule. The parse
// degradation warning carries no recommendation: there is nothing to
// rewrite in the query itself.
var recommendationText = map[rules.ID]string{
	rules.SelectStar:               "Specify only the columns you need instead of using SELECT *",
	rules.MissingFilter:            "Consider adding WHERE clause to filter rows or LIMIT to restrict result size",
	rules.CartesianProduct:         "Add proper JOIN conditions to avoid cartesian products",
	rules.SubqueryInWhere:          "Consider rewriting subqueries as JOINs for better performance",
	rules.MissingLimit:             "Add a LIMIT clause when exploring data to keep result sets small",
	rules.OrPredicate:              "Consider using IN clause or UNION instead of multiple OR conditions",
	rules.FunctionOnFilteredColumn: "Avoid applying functions to columns in WHERE clause; consider computed columns or index expressions",
	rules.DistinctStar:             "Select a deduplicated set of explicit columns instead of DISTINCT *",
	rules.DistinctWithGroupBy:      "Drop DISTINCT when GROUP BY already deduplicates the result",
}

// recommendationsFor maps the set of distinct fired rules to their fixed
// suggestion strings, in deterministic order. A rule firing more than once
// still contributes a single recommendation.
func recommendationsFor(findings []rules.Finding) []string {
	fired := make(map[rules.ID]bool, len(findings))
	for _, f := range findings {
		fired[f.Rule] = true
	}

	recs := []string{}
	for _, id := range recommendationOrder {
		if fired[id] {
			recs = append(recs, recommendationText[id])
		}
	}
	return recs
}
