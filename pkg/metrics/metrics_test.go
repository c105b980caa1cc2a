package metrics

import (
	"testing"

	"github.com/finsight/finsight/pkg/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilizationTier(t *testing.T) {
	assert.Equal(t, TierDanger, UtilizationTier(95))
	assert.Equal(t, TierDanger, UtilizationTier(90.1))
	assert.Equal(t, TierWarn, UtilizationTier(90))
	assert.Equal(t, TierWarn, UtilizationTier(70))
	assert.Equal(t, TierSuccess, UtilizationTier(69.9))
	assert.Equal(t, TierSuccess, UtilizationTier(0))
}

func TestBudgetBarWidths(t *testing.T) {
	rows := []api.BudgetSummaryItem{
		{Category: "Groceries", Spent: decimal.NewFromInt(50), Budget: decimal.NewFromInt(100)},
		{Category: "Rent", Spent: decimal.NewFromInt(200), Budget: decimal.NewFromInt(150)},
	}

	widths := BudgetBarWidths(rows)

	// the largest figure in the table (spent 200) sets the scale
	require.Len(t, widths, 2)
	assert.InDelta(t, 25, widths[0], 0.001)
	assert.InDelta(t, 100, widths[1], 0.001)
}

func TestBudgetBarWidths_ZeroRows(t *testing.T) {
	widths := BudgetBarWidths([]api.BudgetSummaryItem{
		{Category: "Fun", Spent: decimal.Zero, Budget: decimal.Zero},
	})
	assert.Equal(t, []float64{0}, widths)
}

func TestGoalProgress(t *testing.T) {
	g := func(current, target int64) api.Goal {
		return api.Goal{CurrentAmount: decimal.NewFromInt(current), TargetAmount: decimal.NewFromInt(target)}
	}

	assert.Equal(t, 25.0, GoalProgress(g(250, 1000)))
	assert.Equal(t, 100.0, GoalProgress(g(1000, 1000)))
	assert.Equal(t, 100.0, GoalProgress(g(1500, 1000))) // clamped
	assert.Equal(t, 0.0, GoalProgress(g(250, 0)))       // no positive target
	assert.Equal(t, 33.3, GoalProgress(g(1, 3)))        // one decimal
}

func TestGoalProgress_OnlyFullWhenTargetReached(t *testing.T) {
	// 999.6 / 1000 would round to 100.0; it must not display as complete
	goal := api.Goal{
		CurrentAmount: decimal.NewFromFloat(999.6),
		TargetAmount:  decimal.NewFromInt(1000),
	}
	assert.Equal(t, 99.9, GoalProgress(goal))
}

func TestJoinGoalsWithPlan(t *testing.T) {
	goals := []api.Goal{
		{Id: "g1", Name: "Emergency fund", CurrentAmount: decimal.NewFromInt(250), TargetAmount: decimal.NewFromInt(1000)},
		{Id: "g2", Name: "Vacation"},
	}
	plan := []api.GoalPlanItem{{Id: "g2", Name: "Vacation", Status: api.PlanAhead}}

	joined := JoinGoalsWithPlan(goals, plan)

	require.Len(t, joined, 2)
	// an unmatched goal keeps nil projection, never a synthesized one,
	// and still renders its own progress
	assert.Nil(t, joined[0].Plan)
	assert.Equal(t, 25.0, GoalProgress(joined[0].Goal))
	require.NotNil(t, joined[1].Plan)
	assert.Equal(t, api.PlanAhead, joined[1].Plan.Status)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Ahead", StatusLabel(api.PlanAhead))
	assert.Equal(t, "On track", StatusLabel(api.PlanOnTrack))
	assert.Equal(t, "Behind", StatusLabel(api.PlanBehind))
	assert.Equal(t, "No net savings", StatusLabel(api.PlanNoNet))
	// unknown server statuses pass through unchanged
	assert.Equal(t, "paused", StatusLabel("paused"))
}

func TestRankCategories(t *testing.T) {
	breakdown := map[string]decimal.Decimal{
		"Groceries": decimal.NewFromInt(300),
		"Rent":      decimal.NewFromInt(1200),
		"Fun":       decimal.NewFromInt(100),
	}

	ranked := RankCategories(breakdown)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Rent", ranked[0].Category)
	assert.Equal(t, "Groceries", ranked[1].Category)
	assert.Equal(t, "Fun", ranked[2].Category)
	assert.InDelta(t, 100, ranked[0].BarWidth, 0.001)
	assert.InDelta(t, 25, ranked[1].BarWidth, 0.001)
	assert.InDelta(t, 8.3, ranked[2].BarWidth, 0.05)
}

func TestRankCategories_Idempotent(t *testing.T) {
	breakdown := map[string]decimal.Decimal{
		"A": decimal.NewFromInt(10),
		"B": decimal.NewFromInt(10),
		"C": decimal.NewFromInt(5),
	}

	first := RankCategories(breakdown)
	second := RankCategories(breakdown)

	assert.Equal(t, first, second)
	// equal amounts order by name for determinism
	assert.Equal(t, "A", first[0].Category)
	assert.Equal(t, "B", first[1].Category)
}

func TestRankCategories_EmptyAndAllZero(t *testing.T) {
	assert.Empty(t, RankCategories(nil))

	ranked := RankCategories(map[string]decimal.Decimal{"Fun": decimal.Zero})
	require.Len(t, ranked, 1)
	assert.Equal(t, 0.0, ranked[0].BarWidth)
}
