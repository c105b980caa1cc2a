package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/finsight/finsight/pkg/api"
	"github.com/finsight/finsight/pkg/format"
	"github.com/finsight/finsight/pkg/metrics"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newBudgetsCommand(s *shell) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "List, set, and review budgets",
	}
	cmd.AddCommand(newBudgetsListCommand(s))
	cmd.AddCommand(newBudgetsSetCommand(s))
	cmd.AddCommand(newBudgetsSummaryCommand(s))
	return cmd
}

func newBudgetsListCommand(s *shell) *cobra.Command {
	var filter api.BudgetFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.deps.Store.FetchBudgets(cmd.Context(), filter); err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tCATEGORY\tAMOUNT")
			for _, b := range s.deps.Store.Budgets() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.Month, b.Category, s.deps.Formatter.Currency(b.Amount))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&filter.Period, "period", "", "named period")
	cmd.Flags().StringVar(&filter.Start, "start", "", "first month to include (YYYY-MM)")
	return cmd
}

func newBudgetsSetCommand(s *shell) *cobra.Command {
	var budget api.Budget
	var amount string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or replace the budget for a month and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			budget.Amount = parsed
			return s.deps.Store.UpsertBudget(cmd.Context(), budget)
		},
	}
	cmd.Flags().StringVar(&budget.Month, "month", "", "month (YYYY-MM)")
	cmd.Flags().StringVar(&budget.Category, "category", "", "category label")
	cmd.Flags().StringVar(&amount, "amount", "", "budgeted amount")
	return cmd
}

func newBudgetsSummaryCommand(s *shell) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show utilization per budgeted category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.deps.Store.FetchBudgetSummary(cmd.Context(), month); err != nil {
				return err
			}
			rows := s.deps.Store.BudgetSummary()
			widths := metrics.BudgetBarWidths(rows)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tSPENT\tBUDGET\tUSED\tTIER\t")
			for i, row := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s%%\t%s\t%s\n",
					row.Category,
					s.deps.Formatter.Currency(row.Spent),
					s.deps.Formatter.Currency(row.Budget),
					format.Percent(row.UtilizationPct),
					metrics.UtilizationTier(row.UtilizationPct),
					bar(widths[i]))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month (YYYY-MM), defaults to current")
	return cmd
}
