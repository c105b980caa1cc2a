package api

import (
	"context"
	"net/http"
)

// Health probes GET / and returns whatever payload the server reports.
func (c *ClientImpl) Health(ctx context.Context) (any, error) {
	return c.Request(ctx, "/", RequestOptions{})
}

// ListTransactions fetches transactions for the given filter. The Type
// field is intentionally not sent; type filtering happens client-side.
func (c *ClientImpl) ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error) {
	query := map[string]string{
		"start":    filter.Start,
		"end":      filter.End,
		"category": filter.Category,
		"period":   filter.Period,
	}
	var out []Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClientImpl) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	var out Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions/"+id, nil, nil, &out); err != nil {
		return Transaction{}, err
	}
	return out, nil
}

func (c *ClientImpl) CreateTransaction(ctx context.Context, tx Transaction) (Transaction, error) {
	var out Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, tx, &out); err != nil {
		return Transaction{}, err
	}
	return out, nil
}

func (c *ClientImpl) UpdateTransaction(ctx context.Context, tx Transaction) (Transaction, error) {
	var out Transaction
	if err := c.do(ctx, http.MethodPut, "/transactions/"+tx.Id, nil, tx, &out); err != nil {
		return Transaction{}, err
	}
	return out, nil
}

func (c *ClientImpl) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+id, nil, nil, nil)
}

func (c *ClientImpl) ListBudgets(ctx context.Context, filter BudgetFilter) ([]Budget, error) {
	query := map[string]string{
		"period": filter.Period,
		"start":  filter.Start,
	}
	var out []Budget
	if err := c.do(ctx, http.MethodGet, "/budgets", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertBudget creates or replaces the budget for (month, category).
func (c *ClientImpl) UpsertBudget(ctx context.Context, budget Budget) (Budget, error) {
	var out Budget
	if err := c.do(ctx, http.MethodPost, "/budgets", nil, budget, &out); err != nil {
		return Budget{}, err
	}
	return out, nil
}

func (c *ClientImpl) BudgetSummary(ctx context.Context, month string) ([]BudgetSummaryItem, error) {
	var out []BudgetSummaryItem
	if err := c.do(ctx, http.MethodGet, "/budgets/summary", map[string]string{"month": month}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClientImpl) ListGoals(ctx context.Context) ([]Goal, error) {
	var out []Goal
	if err := c.do(ctx, http.MethodGet, "/goals", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClientImpl) GetGoal(ctx context.Context, id string) (Goal, error) {
	var out Goal
	if err := c.do(ctx, http.MethodGet, "/goals/"+id, nil, nil, &out); err != nil {
		return Goal{}, err
	}
	return out, nil
}

func (c *ClientImpl) CreateGoal(ctx context.Context, goal Goal) (Goal, error) {
	var out Goal
	if err := c.do(ctx, http.MethodPost, "/goals", nil, goal, &out); err != nil {
		return Goal{}, err
	}
	return out, nil
}

func (c *ClientImpl) UpdateGoal(ctx context.Context, goal Goal) (Goal, error) {
	var out Goal
	if err := c.do(ctx, http.MethodPut, "/goals/"+goal.Id, nil, goal, &out); err != nil {
		return Goal{}, err
	}
	return out, nil
}

func (c *ClientImpl) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/goals/"+id, nil, nil, nil)
}

func (c *ClientImpl) Summary(ctx context.Context, query SummaryQuery) (*AnalyticsSummary, error) {
	params := map[string]string{
		"period": query.Period,
		"start":  query.Start,
		"end":    query.End,
	}
	var out AnalyticsSummary
	if err := c.do(ctx, http.MethodGet, "/analytics/summary", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ClientImpl) Behaviors(ctx context.Context, dates DateRange) (*BehaviorsReport, error) {
	params := map[string]string{
		"start": dates.Start,
		"end":   dates.End,
	}
	var out BehaviorsReport
	if err := c.do(ctx, http.MethodGet, "/analytics/behaviors", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ClientImpl) OverspendingAlerts(ctx context.Context, month string) ([]OverspendingAlert, error) {
	var out []OverspendingAlert
	if err := c.do(ctx, http.MethodGet, "/alerts/overspending", map[string]string{"month": month}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClientImpl) SavingsAdvice(ctx context.Context, period string) (*SavingsAdvice, error) {
	var out SavingsAdvice
	if err := c.do(ctx, http.MethodGet, "/advice/savings", map[string]string{"period": period}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ClientImpl) GoalsPlan(ctx context.Context) ([]GoalPlanItem, error) {
	var out []GoalPlanItem
	if err := c.do(ctx, http.MethodGet, "/advice/goals-plan", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClientImpl) SeedDemoLoad(ctx context.Context, opts SeedOptions) error {
	return c.do(ctx, http.MethodPost, "/seed/demo/load", nil, opts, nil)
}

func (c *ClientImpl) SeedDemoClear(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/seed/demo/clear", nil, nil, nil)
}
