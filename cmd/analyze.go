package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/xdanny/strands-eval/pkg/config"
	"github.com/xdanny/strands-eval/pkg/efficiency"
	"github.com/xdanny/strands-eval/pkg/logger"
	"github.com/xdanny/strands-eval/pkg/rules"
	"github.com/xdanny/strands-eval/pkg/sqlstmt"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <sql-file>",
	Short: "Score SQL statements against the efficiency rules",
	Long: `Analyze SQL statements in a file for efficiency problems.

Each statement gets an efficiency score in [0,1] starting from 1.0 and
losing points per finding, plus recommendations for every rule that
fired. A statement passes at score 0.7 or above.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	analyzeCmd.Flags().Bool("fail-on-issues", false, "exit with non-zero code if any issue-category finding is found")
	analyzeCmd.Flags().Bool("fail-on-failed", false, "exit with non-zero code if any statement scores below the pass bar")

	_ = viper.BindPFlag("output", analyzeCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("fail-on-issues", analyzeCmd.Flags().Lookup("fail-on-issues"))
	_ = viper.BindPFlag("fail-on-failed", analyzeCmd.Flags().Lookup("fail-on-failed"))
}

// statementReport pairs one analyzed statement with its report.
type statementReport struct {
	SQL    string             `json:"sql" yaml:"sql"`
	Report *efficiency.Report `json:"report" yaml:"report"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	initLogging()

	sqlFile := args[0]
	sqlContent, err := os.ReadFile(sqlFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read SQL file: %s", sqlFile)
	}

	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	evaluator := efficiency.NewWithRules(cfg.RuleSet()...)

	var reports []statementReport
	for _, stmt := range sqlstmt.Split(string(sqlContent)) {
		reports = append(reports, statementReport{
			SQL:    stmt,
			Report: evaluator.Evaluate(stmt, nil),
		})
	}

	if err := outputReports(reports, viper.GetString("output")); err != nil {
		return err
	}

	hasIssues := false
	hasFailed := false
	for _, sr := range reports {
		if sr.Report.HasIssues() {
			hasIssues = true
		}
		if !sr.Report.Passed {
			hasFailed = true
		}
	}
	if hasIssues && viper.GetBool("fail-on-issues") {
		os.Exit(1)
	}
	if hasFailed && viper.GetBool("fail-on-failed") {
		os.Exit(1)
	}
	return nil
}

func initLogging() {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}
	logger.NewWithLevel(logLevel).SetDefault()
}

func loadConfiguration() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.Default(), nil
}

func outputReports(reports []statementReport, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]interface{}{
			"statements": reports,
		})
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		return encoder.Encode(map[string]interface{}{
			"statements": reports,
		})
	case "text":
		return outputText(reports)
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func outputText(reports []statementReport) error {
	for i, sr := range reports {
		fmt.Printf("Statement %d: %s\n", i+1, color.CyanString(truncate(sr.SQL, 80)))

		for _, f := range sr.Report.Issues {
			fmt.Printf("  [%s] %s\n", severityColor(f.Severity).Sprint("ISSUE"), f.Message)
		}
		for _, f := range sr.Report.Warnings {
			fmt.Printf("  [%s] %s\n", severityColor(f.Severity).Sprint("WARNING"), f.Message)
		}
		for _, rec := range sr.Report.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}

		scoreLine := fmt.Sprintf("score %.2f", sr.Report.Score)
		if sr.Report.Passed {
			fmt.Printf("  %s %s\n\n", color.GreenString("✔ passed"), scoreLine)
		} else {
			fmt.Printf("  %s %s\n\n", color.RedString("✘ failed"), scoreLine)
		}
	}

	passed := 0
	for _, sr := range reports {
		if sr.Report.Passed {
			passed++
		}
	}
	fmt.Printf("Summary: %d statement(s), %d passed, %d failed\n",
		len(reports), passed, len(reports)-passed)
	return nil
}

func severityColor(severity rules.Severity) *color.Color {
	switch severity {
	case rules.SeverityHigh:
		return color.New(color.FgRed, color.Bold)
	case rules.SeverityMedium:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgBlue)
	}
}

// truncate shortens s to at most max runes, never splitting a multi-byte
// character.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
