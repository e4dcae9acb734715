package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xdanny/strands-eval/pkg/efficiency"
	"github.com/xdanny/strands-eval/pkg/evaluation"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [flags] <cases-file>",
	Short: "Run a batch evaluation over a test case file",
	Long: `Evaluate a batch of test cases. Each case carries the generated SQL
and, optionally, pre-scored outcomes from external judge metrics
(relevancy, faithfulness, hallucination and the like).

The efficiency check runs locally per case; external outcomes join the
aggregation as supplied. Cases are evaluated concurrently and the full
results are written as a JSON report.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("results", "r", "evaluation_results.json", "path of the JSON results file")
	evaluateCmd.Flags().StringP("difficulty", "d", "", "evaluate only cases of this difficulty")
	evaluateCmd.Flags().IntP("workers", "w", 0, "number of concurrent workers (0 uses the config value)")
	evaluateCmd.Flags().Float64P("threshold", "t", 0, "aggregate score a case must reach to pass (0 uses the config value)")
	evaluateCmd.Flags().Float64("min-success-rate", 0, "exit with non-zero code if the success rate falls below this value")

	_ = viper.BindPFlag("results", evaluateCmd.Flags().Lookup("results"))
	_ = viper.BindPFlag("difficulty", evaluateCmd.Flags().Lookup("difficulty"))
	_ = viper.BindPFlag("workers", evaluateCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("threshold", evaluateCmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("min-success-rate", evaluateCmd.Flags().Lookup("min-success-rate"))
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	cases, err := evaluation.LoadCases(args[0])
	if err != nil {
		return err
	}
	cases = evaluation.FilterDifficulty(cases, viper.GetString("difficulty"))
	if len(cases) == 0 {
		return fmt.Errorf("no test cases match the requested difficulty")
	}

	workers := viper.GetInt("workers")
	if workers == 0 {
		workers = cfg.Workers
	}
	threshold := viper.GetFloat64("threshold")
	if threshold == 0 {
		threshold = cfg.Threshold
	}

	evaluator := efficiency.NewWithRules(cfg.RuleSet()...)
	runner := evaluation.NewRunner(workers, evaluator.Metric()).WithThreshold(threshold)

	report := runner.Run(context.Background(), cases)

	resultsPath := viper.GetString("results")
	if err := report.WriteJSON(resultsPath); err != nil {
		return err
	}

	printCaseResults(report)
	fmt.Println(report.String())
	fmt.Printf("Results saved to: %s\n", resultsPath)

	if minRate := viper.GetFloat64("min-success-rate"); minRate > 0 && report.Summary.SuccessRate < minRate {
		os.Exit(1)
	}
	return nil
}

func printCaseResults(report *evaluation.Report) {
	for _, cr := range report.Cases {
		verdict := color.GreenString("✔")
		if !cr.Passed {
			verdict = color.RedString("✘")
		}
		fmt.Printf("%s %-20s aggregate %.2f\n", verdict, cr.ID, cr.Result.AggregateScore)
		for _, name := range cr.Result.Errored() {
			fmt.Printf("  %s metric %s: %s\n",
				color.YellowString("!"), name, cr.Result.Outcomes[name].Error)
		}
	}
}
