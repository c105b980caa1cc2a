package store

import (
	"context"
	"sync"

	"github.com/finsight/finsight/pkg/api"
)

// stubClient is an in-package api.Client for tests: each endpoint
// delegates to an optional function field and records its calls.
type stubClient struct {
	listTransactionsFn  func(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error)
	createTransactionFn func(ctx context.Context, tx api.Transaction) (api.Transaction, error)
	updateTransactionFn func(ctx context.Context, tx api.Transaction) (api.Transaction, error)
	deleteTransactionFn func(ctx context.Context, id string) error
	listBudgetsFn       func(ctx context.Context, filter api.BudgetFilter) ([]api.Budget, error)
	upsertBudgetFn      func(ctx context.Context, budget api.Budget) (api.Budget, error)
	budgetSummaryFn     func(ctx context.Context, month string) ([]api.BudgetSummaryItem, error)
	listGoalsFn         func(ctx context.Context) ([]api.Goal, error)
	getGoalFn           func(ctx context.Context, id string) (api.Goal, error)
	createGoalFn        func(ctx context.Context, goal api.Goal) (api.Goal, error)
	updateGoalFn        func(ctx context.Context, goal api.Goal) (api.Goal, error)
	deleteGoalFn        func(ctx context.Context, id string) error
	summaryFn           func(ctx context.Context, query api.SummaryQuery) (*api.AnalyticsSummary, error)
	behaviorsFn         func(ctx context.Context, dates api.DateRange) (*api.BehaviorsReport, error)
	alertsFn            func(ctx context.Context, month string) ([]api.OverspendingAlert, error)
	savingsAdviceFn     func(ctx context.Context, period string) (*api.SavingsAdvice, error)
	goalsPlanFn         func(ctx context.Context) ([]api.GoalPlanItem, error)
	seedLoadFn          func(ctx context.Context, opts api.SeedOptions) error
	seedClearFn         func(ctx context.Context) error

	mu          sync.Mutex
	listFilters []api.TransactionFilter
}

func newStubClient() *stubClient {
	return &stubClient{}
}

func (c *stubClient) filters() []api.TransactionFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.TransactionFilter{}, c.listFilters...)
}

func (c *stubClient) Health(ctx context.Context) (any, error) {
	return map[string]any{"status": "ok"}, nil
}

func (c *stubClient) ListTransactions(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error) {
	c.mu.Lock()
	c.listFilters = append(c.listFilters, filter)
	c.mu.Unlock()
	if c.listTransactionsFn != nil {
		return c.listTransactionsFn(ctx, filter)
	}
	return nil, nil
}

func (c *stubClient) GetTransaction(ctx context.Context, id string) (api.Transaction, error) {
	return api.Transaction{}, nil
}

func (c *stubClient) CreateTransaction(ctx context.Context, tx api.Transaction) (api.Transaction, error) {
	if c.createTransactionFn != nil {
		return c.createTransactionFn(ctx, tx)
	}
	return tx, nil
}

func (c *stubClient) UpdateTransaction(ctx context.Context, tx api.Transaction) (api.Transaction, error) {
	if c.updateTransactionFn != nil {
		return c.updateTransactionFn(ctx, tx)
	}
	return tx, nil
}

func (c *stubClient) DeleteTransaction(ctx context.Context, id string) error {
	if c.deleteTransactionFn != nil {
		return c.deleteTransactionFn(ctx, id)
	}
	return nil
}

func (c *stubClient) ListBudgets(ctx context.Context, filter api.BudgetFilter) ([]api.Budget, error) {
	if c.listBudgetsFn != nil {
		return c.listBudgetsFn(ctx, filter)
	}
	return nil, nil
}

func (c *stubClient) UpsertBudget(ctx context.Context, budget api.Budget) (api.Budget, error) {
	if c.upsertBudgetFn != nil {
		return c.upsertBudgetFn(ctx, budget)
	}
	return budget, nil
}

func (c *stubClient) BudgetSummary(ctx context.Context, month string) ([]api.BudgetSummaryItem, error) {
	if c.budgetSummaryFn != nil {
		return c.budgetSummaryFn(ctx, month)
	}
	return nil, nil
}

func (c *stubClient) ListGoals(ctx context.Context) ([]api.Goal, error) {
	if c.listGoalsFn != nil {
		return c.listGoalsFn(ctx)
	}
	return nil, nil
}

func (c *stubClient) GetGoal(ctx context.Context, id string) (api.Goal, error) {
	if c.getGoalFn != nil {
		return c.getGoalFn(ctx, id)
	}
	return api.Goal{}, nil
}

func (c *stubClient) CreateGoal(ctx context.Context, goal api.Goal) (api.Goal, error) {
	if c.createGoalFn != nil {
		return c.createGoalFn(ctx, goal)
	}
	return goal, nil
}

func (c *stubClient) UpdateGoal(ctx context.Context, goal api.Goal) (api.Goal, error) {
	if c.updateGoalFn != nil {
		return c.updateGoalFn(ctx, goal)
	}
	return goal, nil
}

func (c *stubClient) DeleteGoal(ctx context.Context, id string) error {
	if c.deleteGoalFn != nil {
		return c.deleteGoalFn(ctx, id)
	}
	return nil
}

func (c *stubClient) Summary(ctx context.Context, query api.SummaryQuery) (*api.AnalyticsSummary, error) {
	if c.summaryFn != nil {
		return c.summaryFn(ctx, query)
	}
	return &api.AnalyticsSummary{}, nil
}

func (c *stubClient) Behaviors(ctx context.Context, dates api.DateRange) (*api.BehaviorsReport, error) {
	if c.behaviorsFn != nil {
		return c.behaviorsFn(ctx, dates)
	}
	return &api.BehaviorsReport{}, nil
}

func (c *stubClient) OverspendingAlerts(ctx context.Context, month string) ([]api.OverspendingAlert, error) {
	if c.alertsFn != nil {
		return c.alertsFn(ctx, month)
	}
	return nil, nil
}

func (c *stubClient) SavingsAdvice(ctx context.Context, period string) (*api.SavingsAdvice, error) {
	if c.savingsAdviceFn != nil {
		return c.savingsAdviceFn(ctx, period)
	}
	return &api.SavingsAdvice{}, nil
}

func (c *stubClient) GoalsPlan(ctx context.Context) ([]api.GoalPlanItem, error) {
	if c.goalsPlanFn != nil {
		return c.goalsPlanFn(ctx)
	}
	return nil, nil
}

func (c *stubClient) SeedDemoLoad(ctx context.Context, opts api.SeedOptions) error {
	if c.seedLoadFn != nil {
		return c.seedLoadFn(ctx, opts)
	}
	return nil
}

func (c *stubClient) SeedDemoClear(ctx context.Context) error {
	if c.seedClearFn != nil {
		return c.seedClearFn(ctx)
	}
	return nil
}
