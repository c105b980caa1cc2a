// Package metrics derives presentation values from cached server data.
// Every function is pure: no I/O, deterministic on its input.
package metrics

import (
	"math"
	"sort"

	"github.com/finsight/finsight/pkg/api"
	"github.com/shopspring/decimal"
)

// Tier classifies a utilization percentage for display.
type Tier string

const (
	TierDanger  Tier = "danger"
	TierWarn    Tier = "warn"
	TierSuccess Tier = "success"
)

// UtilizationTier maps a utilization percentage to its display tier:
// danger above 90, warn from 70 through 90, success below 70.
func UtilizationTier(pct float64) Tier {
	switch {
	case pct > 90:
		return TierDanger
	case pct >= 70:
		return TierWarn
	default:
		return TierSuccess
	}
}

// BudgetBarWidths scales each row's spent amount against the largest
// spent or budget figure in the table (at least 1), as a 0-100 width.
func BudgetBarWidths(rows []api.BudgetSummaryItem) []float64 {
	max := decimal.NewFromInt(1)
	for _, row := range rows {
		if row.Spent.GreaterThan(max) {
			max = row.Spent
		}
		if row.Budget.GreaterThan(max) {
			max = row.Budget
		}
	}
	widths := make([]float64, len(rows))
	for i, row := range rows {
		width, _ := row.Spent.Div(max).Mul(decimal.NewFromInt(100)).Float64()
		widths[i] = clamp(width, 0, 100)
	}
	return widths
}

// GoalProgress returns completion of a goal as a percentage in [0, 100]
// with one decimal, 0 when the goal has no positive target. The result
// is 100 only when the target is actually reached.
func GoalProgress(goal api.Goal) float64 {
	if !goal.TargetAmount.IsPositive() {
		return 0
	}
	pct, _ := goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	pct = math.Round(clamp(pct, 0, 100)*10) / 10
	if pct >= 100 && goal.CurrentAmount.LessThan(goal.TargetAmount) {
		pct = 99.9
	}
	return pct
}

// GoalWithPlan pairs a goal with its server projection. Plan is nil when
// the server reported none; a missing projection is never synthesized.
type GoalWithPlan struct {
	Goal api.Goal
	Plan *api.GoalPlanItem
}

// JoinGoalsWithPlan attaches plan items to goals by exact id match,
// preserving goal order.
func JoinGoalsWithPlan(goals []api.Goal, plan []api.GoalPlanItem) []GoalWithPlan {
	byId := make(map[string]api.GoalPlanItem, len(plan))
	for _, item := range plan {
		byId[item.Id] = item
	}
	joined := make([]GoalWithPlan, len(goals))
	for i, goal := range goals {
		joined[i] = GoalWithPlan{Goal: goal}
		if item, ok := byId[goal.Id]; ok {
			joined[i].Plan = &item
		}
	}
	return joined
}

var statusLabels = map[string]string{
	api.PlanAhead:   "Ahead",
	api.PlanOnTrack: "On track",
	api.PlanBehind:  "Behind",
	api.PlanNoNet:   "No net savings",
}

// StatusLabel renders a plan status for display. Unknown statuses pass
// through unchanged so new server values still render.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// RankedCategory is one category breakdown entry with its bar width.
type RankedCategory struct {
	Category string
	Amount   decimal.Decimal
	BarWidth float64
}

// RankCategories orders a category breakdown by descending amount (name
// ascending on ties, keeping the ordering deterministic) and scales bars
// against the largest amount. All-zero or empty breakdowns get 0 widths.
func RankCategories(breakdown map[string]decimal.Decimal) []RankedCategory {
	ranked := make([]RankedCategory, 0, len(breakdown))
	for category, amount := range breakdown {
		ranked = append(ranked, RankedCategory{Category: category, Amount: amount})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Amount.Equal(ranked[j].Amount) {
			return ranked[i].Amount.GreaterThan(ranked[j].Amount)
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) == 0 || !ranked[0].Amount.IsPositive() {
		return ranked
	}
	max := ranked[0].Amount
	for i := range ranked {
		width, _ := ranked[i].Amount.Div(max).Mul(decimal.NewFromInt(100)).Float64()
		ranked[i].BarWidth = clamp(width, 0, 100)
	}
	return ranked
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
