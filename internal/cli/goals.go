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

func newGoalsCommand(s *shell) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "List and edit savings goals",
	}
	cmd.AddCommand(newGoalsListCommand(s))
	cmd.AddCommand(newGoalsAddCommand(s))
	cmd.AddCommand(newGoalsUpdateCommand(s))
	cmd.AddCommand(newGoalsRemoveCommand(s))
	return cmd
}

func newGoalsListCommand(s *shell) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with progress and projections",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.deps.Store.FetchGoals(cmd.Context()); err != nil {
				return err
			}
			if err := s.deps.Store.FetchGoalsPlan(cmd.Context()); err != nil {
				return err
			}
			joined := metrics.JoinGoalsWithPlan(s.deps.Store.Goals(), s.deps.Store.GoalsPlan())
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSAVED\tTARGET\tPROGRESS\tSTATUS\tPROJECTED")
			for _, entry := range joined {
				status := format.Placeholder
				projected := format.Placeholder
				if entry.Plan != nil {
					status = metrics.StatusLabel(entry.Plan.Status)
					if entry.Plan.ProjectedCompletion != nil {
						projected = *entry.Plan.ProjectedCompletion
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%%\t%s\t%s\n",
					entry.Goal.Id,
					entry.Goal.Name,
					s.deps.Formatter.Currency(entry.Goal.CurrentAmount),
					s.deps.Formatter.Currency(entry.Goal.TargetAmount),
					format.Percent(metrics.GoalProgress(entry.Goal)),
					status,
					projected)
			}
			return w.Flush()
		},
	}
}

func goalFlags(cmd *cobra.Command, goal *api.Goal, target, current *string) {
	cmd.Flags().StringVar(&goal.Name, "name", "", "goal name")
	cmd.Flags().StringVar(target, "target", "", "target amount")
	cmd.Flags().StringVar(current, "current", "0", "amount saved so far")
	cmd.Flags().StringVar(&goal.TargetDate, "target-date", "", "optional deadline (YYYY-MM-DD)")
}

func parseGoalAmounts(goal *api.Goal, target, current string) error {
	parsedTarget, err := decimal.NewFromString(target)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}
	parsedCurrent, err := decimal.NewFromString(current)
	if err != nil {
		return fmt.Errorf("invalid current %q: %w", current, err)
	}
	goal.TargetAmount = parsedTarget
	goal.CurrentAmount = parsedCurrent
	return nil
}

func newGoalsAddCommand(s *shell) *cobra.Command {
	var goal api.Goal
	var target, current string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseGoalAmounts(&goal, target, current); err != nil {
				return err
			}
			return s.deps.Store.CreateGoal(cmd.Context(), goal)
		},
	}
	goalFlags(cmd, &goal, &target, &current)
	return cmd
}

func newGoalsUpdateCommand(s *shell) *cobra.Command {
	var goal api.Goal
	var target, current string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseGoalAmounts(&goal, target, current); err != nil {
				return err
			}
			goal.Id = args[0]
			return s.deps.Store.UpdateGoal(cmd.Context(), goal)
		},
	}
	goalFlags(cmd, &goal, &target, &current)
	return cmd
}

func newGoalsRemoveCommand(s *shell) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.deps.Store.DeleteGoal(cmd.Context(), args[0])
		},
	}
}

// bar renders a 0-100 width as a ten-slot gauge.
func bar(width float64) string {
	filled := int(width / 10)
	if filled > 10 {
		filled = 10
	}
	out := ""
	for i := 0; i < 10; i++ {
		if i < filled {
			out += "#"
		} else {
			out += "."
		}
	}
	return out
}
