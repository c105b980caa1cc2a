package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/finsight/finsight/pkg/api"
	"github.com/finsight/finsight/pkg/format"
	"github.com/finsight/finsight/pkg/metrics"
	"github.com/spf13/cobra"
)

func newOverviewCommand(s *shell) *cobra.Command {
	var query api.SummaryQuery
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Totals, category ranking, and spending narrative",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.deps.Store.FetchSummary(cmd.Context(), query); err != nil {
				return err
			}
			summary := s.deps.Store.Summary()
			f := s.deps.Formatter

			fmt.Printf("Income:        %s\n", f.Currency(summary.Totals.Income))
			fmt.Printf("Expenses:      %s\n", f.Currency(summary.Totals.Expenses))
			fmt.Printf("Net cash flow: %s\n", f.Currency(summary.Totals.NetCashFlow))
			fmt.Printf("Savings rate:  %s%%\n", format.Percent(summary.SavingsRate))
			fmt.Printf("Avg daily:     %s\n\n", f.Currency(summary.AvgDailySpend))

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, entry := range metrics.RankCategories(summary.CategoryBreakdown) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Category, f.Currency(entry.Amount), bar(entry.BarWidth))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			// Behaviors are a secondary panel; a failure there should not
			// hide the summary that already rendered.
			if err := s.deps.Store.FetchBehaviors(cmd.Context(), api.DateRange{Start: query.Start, End: query.End}); err != nil {
				fmt.Printf("\n(behaviors unavailable: %s)\n", err)
				return nil
			}
			if report := s.deps.Store.Behaviors(); report != nil {
				fmt.Println()
				for _, sentence := range metrics.Narrative(*report, f) {
					fmt.Println(sentence)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&query.Period, "period", "month", "named period (week, month, year)")
	cmd.Flags().StringVar(&query.Start, "start", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&query.End, "end", "", "range end (YYYY-MM-DD)")
	return cmd
}

func newAlertsCommand(s *shell) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Overspending alerts for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.deps.Store.FetchAlerts(cmd.Context(), month); err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tMONTH\tSPENT\tBUDGET\tUSED\tSEVERITY")
			for _, alert := range s.deps.Store.Alerts() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%%\t%s\n",
					alert.Category, alert.Month,
					s.deps.Formatter.Currency(alert.Spent),
					s.deps.Formatter.Currency(alert.Budget),
					format.Percent(alert.UtilizationPct),
					alert.Severity)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month (YYYY-MM), defaults to current")
	return cmd
}

func newAdviceCommand(s *shell) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Savings advice with reduction suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.deps.Store.FetchSavingsAdvice(cmd.Context(), period); err != nil {
				return err
			}
			advice := s.deps.Store.SavingsAdvice()
			f := s.deps.Formatter

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tCURRENT\tCUT\tAFTER")
			for _, reduction := range advice.CategoryReductions {
				fmt.Fprintf(w, "%s\t%s\t%s%%\t%s\n",
					reduction.Category,
					f.Currency(reduction.Current),
					format.Percent(reduction.SuggestedReductionPct),
					f.Currency(reduction.ReducedAmount))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\nTargets: %s/day, %s/week, %s/month\n",
				f.Currency(advice.Targets.Daily),
				f.Currency(advice.Targets.Weekly),
				f.Currency(advice.Targets.Monthly))
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", "month", "named period")
	return cmd
}

func newBehaviorsCommand(s *shell) *cobra.Command {
	var dates api.DateRange
	cmd := &cobra.Command{
		Use:   "behaviors",
		Short: "Spending behavior narrative for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.deps.Store.FetchBehaviors(cmd.Context(), dates); err != nil {
				return err
			}
			report := s.deps.Store.Behaviors()
			if report == nil {
				return nil
			}
			sentences := metrics.Narrative(*report, s.deps.Formatter)
			if len(sentences) == 0 {
				fmt.Println("No spending signals for this range.")
				return nil
			}
			for _, sentence := range sentences {
				fmt.Println(sentence)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dates.Start, "start", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dates.End, "end", "", "range end (YYYY-MM-DD)")
	return cmd
}
