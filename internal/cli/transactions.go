package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/finsight/finsight/pkg/api"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newTransactionsCommand(s *shell) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List and edit transactions",
	}
	cmd.AddCommand(newTransactionsListCommand(s))
	cmd.AddCommand(newTransactionsAddCommand(s))
	cmd.AddCommand(newTransactionsUpdateCommand(s))
	cmd.AddCommand(newTransactionsRemoveCommand(s))
	return cmd
}

func newTransactionsListCommand(s *shell) *cobra.Command {
	var filter api.TransactionFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions for a date range or period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.deps.Store.FetchTransactions(cmd.Context(), filter); err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tTYPE\tAMOUNT\tDESCRIPTION")
			for _, tx := range s.deps.Store.Transactions() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					tx.Id, tx.Date, tx.Category, tx.Type, s.deps.Formatter.Currency(tx.Amount), tx.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&filter.Start, "start", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.End, "end", "", "range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.Category, "category", "", "category filter")
	cmd.Flags().StringVar(&filter.Period, "period", "", "named period (week, month, year)")
	cmd.Flags().StringVar(&filter.Type, "type", "", "income or expense")
	return cmd
}

func transactionFlags(cmd *cobra.Command, tx *api.Transaction, amount *string) {
	cmd.Flags().StringVar(&tx.Date, "date", "", "calendar day (YYYY-MM-DD)")
	cmd.Flags().StringVar(amount, "amount", "", "signed decimal amount")
	cmd.Flags().StringVar(&tx.Category, "category", "", "category label")
	cmd.Flags().StringVar(&tx.Type, "type", "expense", "income or expense")
	cmd.Flags().StringVar(&tx.Description, "description", "", "free text")
}

func newTransactionsAddCommand(s *shell) *cobra.Command {
	var tx api.Transaction
	var amount string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			tx.Amount = parsed
			return s.deps.Store.CreateTransaction(cmd.Context(), tx)
		},
	}
	transactionFlags(cmd, &tx, &amount)
	return cmd
}

func newTransactionsUpdateCommand(s *shell) *cobra.Command {
	var tx api.Transaction
	var amount string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			tx.Id = args[0]
			tx.Amount = parsed
			return s.deps.Store.UpdateTransaction(cmd.Context(), tx)
		},
	}
	transactionFlags(cmd, &tx, &amount)
	return cmd
}

func newTransactionsRemoveCommand(s *shell) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.deps.Store.DeleteTransaction(cmd.Context(), args[0])
		},
	}
}
