package sqlstmt

import (
	"strings"

	"github.com/pingcap/tidb/parser"
)

// Split breaks multi-statement SQL text into individual statements. When
// the text cannot be parsed it is returned as a single statement so the
// degraded analysis path still sees it.
func Split(sql string) []string {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	nodes, _, err := parser.New().Parse(sql, "", "")
	if err != nil || len(nodes) == 0 {
		return []string{sql}
	}
	stmts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		text := n.Text()
		if strings.TrimSpace(text) == "" {
			text = restore(n)
		}
		if strings.TrimSpace(text) != "" {
			stmts = append(stmts, text)
		}
	}
	if len(stmts) == 0 {
		return []string{sql}
	}
	return stmts
}
