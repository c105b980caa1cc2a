package store

import (
	"context"

	"github.com/finsight/finsight/pkg/api"
	log "github.com/sirupsen/logrus"
)

// FetchTransactions replaces the transactions slice with the server's
// result for filter. Type is filtered locally; the server does not
// accept a type parameter yet.
func (s *Store) FetchTransactions(ctx context.Context, filter api.TransactionFilter) error {
	seq := s.begin(DomainTransactions)
	list, err := s.client.ListTransactions(ctx, filter)
	if err != nil {
		return s.fail(DomainTransactions, seq, err)
	}
	return s.finish(DomainTransactions, seq, func() {
		if list == nil {
			list = []api.Transaction{}
		}
		if filter.Type != "" {
			list = filterTransactionsByType(list, filter.Type)
		}
		s.transactions = list
		s.txFilter = filter
	})
}

func (s *Store) CreateTransaction(ctx context.Context, tx api.Transaction) error {
	seq := s.begin(DomainTransactions)
	if _, err := s.client.CreateTransaction(ctx, tx); err != nil {
		return s.fail(DomainTransactions, seq, err)
	}
	return s.FetchTransactions(ctx, s.TransactionFilter())
}

func (s *Store) UpdateTransaction(ctx context.Context, tx api.Transaction) error {
	seq := s.begin(DomainTransactions)
	if _, err := s.client.UpdateTransaction(ctx, tx); err != nil {
		return s.fail(DomainTransactions, seq, err)
	}
	return s.FetchTransactions(ctx, s.TransactionFilter())
}

// DeleteTransaction removes the entity and re-fetches with the last
// applied filter, so an active view is not reset by the delete.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	seq := s.begin(DomainTransactions)
	if err := s.client.DeleteTransaction(ctx, id); err != nil {
		return s.fail(DomainTransactions, seq, err)
	}
	return s.FetchTransactions(ctx, s.TransactionFilter())
}

func (s *Store) FetchBudgets(ctx context.Context, filter api.BudgetFilter) error {
	seq := s.begin(DomainBudgets)
	list, err := s.client.ListBudgets(ctx, filter)
	if err != nil {
		return s.fail(DomainBudgets, seq, err)
	}
	return s.finish(DomainBudgets, seq, func() {
		if list == nil {
			list = []api.Budget{}
		}
		s.budgets = list
		s.budgetFilter = filter
	})
}

// UpsertBudget creates or replaces one (month, category) budget, then
// re-fetches the collection. A previously loaded summary month is
// refreshed best-effort since its utilization is now stale.
func (s *Store) UpsertBudget(ctx context.Context, budget api.Budget) error {
	seq := s.begin(DomainBudgets)
	if _, err := s.client.UpsertBudget(ctx, budget); err != nil {
		return s.fail(DomainBudgets, seq, err)
	}
	if err := s.FetchBudgets(ctx, s.BudgetFilter()); err != nil {
		return err
	}
	s.mu.Lock()
	month := s.budgetSummaryMonth
	s.mu.Unlock()
	if month != "" {
		if err := s.FetchBudgetSummary(ctx, month); err != nil {
			log.Warnf("store: budget summary refresh failed after upsert: %v", err)
		}
	}
	return nil
}

func (s *Store) FetchBudgetSummary(ctx context.Context, month string) error {
	seq := s.begin(DomainBudgetSummary)
	list, err := s.client.BudgetSummary(ctx, month)
	if err != nil {
		return s.fail(DomainBudgetSummary, seq, err)
	}
	return s.finish(DomainBudgetSummary, seq, func() {
		if list == nil {
			list = []api.BudgetSummaryItem{}
		}
		s.budgetSummary = list
		s.budgetSummaryMonth = month
	})
}

func (s *Store) FetchGoals(ctx context.Context) error {
	seq := s.begin(DomainGoals)
	list, err := s.client.ListGoals(ctx)
	if err != nil {
		return s.fail(DomainGoals, seq, err)
	}
	return s.finish(DomainGoals, seq, func() {
		if list == nil {
			list = []api.Goal{}
		}
		s.goals = list
	})
}

func (s *Store) CreateGoal(ctx context.Context, goal api.Goal) error {
	seq := s.begin(DomainGoals)
	if _, err := s.client.CreateGoal(ctx, goal); err != nil {
		return s.fail(DomainGoals, seq, err)
	}
	if err := s.FetchGoals(ctx); err != nil {
		return err
	}
	s.refreshGoalsPlan(ctx)
	return nil
}

func (s *Store) UpdateGoal(ctx context.Context, goal api.Goal) error {
	seq := s.begin(DomainGoals)
	if _, err := s.client.UpdateGoal(ctx, goal); err != nil {
		return s.fail(DomainGoals, seq, err)
	}
	if err := s.FetchGoals(ctx); err != nil {
		return err
	}
	s.refreshGoalsPlan(ctx)
	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	seq := s.begin(DomainGoals)
	if err := s.client.DeleteGoal(ctx, id); err != nil {
		return s.fail(DomainGoals, seq, err)
	}
	if err := s.FetchGoals(ctx); err != nil {
		return err
	}
	s.refreshGoalsPlan(ctx)
	return nil
}

// refreshGoalsPlan re-fetches the server projections after a goal
// mutation so the plan join never pairs against stale ids. A failure is
// recorded on the goalsPlan slot but never fails the goal write.
func (s *Store) refreshGoalsPlan(ctx context.Context) {
	if err := s.FetchGoalsPlan(ctx); err != nil {
		log.Warnf("store: goals plan refresh failed after goal change: %v", err)
	}
}

func (s *Store) FetchGoalsPlan(ctx context.Context) error {
	seq := s.begin(DomainGoalsPlan)
	list, err := s.client.GoalsPlan(ctx)
	if err != nil {
		return s.fail(DomainGoalsPlan, seq, err)
	}
	return s.finish(DomainGoalsPlan, seq, func() {
		if list == nil {
			list = []api.GoalPlanItem{}
		}
		s.goalsPlan = list
	})
}

func (s *Store) FetchSummary(ctx context.Context, query api.SummaryQuery) error {
	seq := s.begin(DomainSummary)
	summary, err := s.client.Summary(ctx, query)
	if err != nil {
		return s.fail(DomainSummary, seq, err)
	}
	return s.finish(DomainSummary, seq, func() {
		s.summary = summary
	})
}

func (s *Store) FetchBehaviors(ctx context.Context, dates api.DateRange) error {
	seq := s.begin(DomainBehaviors)
	report, err := s.client.Behaviors(ctx, dates)
	if err != nil {
		return s.fail(DomainBehaviors, seq, err)
	}
	return s.finish(DomainBehaviors, seq, func() {
		s.behaviors = report
	})
}

func (s *Store) FetchAlerts(ctx context.Context, month string) error {
	seq := s.begin(DomainAlerts)
	list, err := s.client.OverspendingAlerts(ctx, month)
	if err != nil {
		return s.fail(DomainAlerts, seq, err)
	}
	return s.finish(DomainAlerts, seq, func() {
		if list == nil {
			list = []api.OverspendingAlert{}
		}
		s.alerts = list
	})
}

func (s *Store) FetchSavingsAdvice(ctx context.Context, period string) error {
	seq := s.begin(DomainSavingsAdvice)
	advice, err := s.client.SavingsAdvice(ctx, period)
	if err != nil {
		return s.fail(DomainSavingsAdvice, seq, err)
	}
	return s.finish(DomainSavingsAdvice, seq, func() {
		s.savingsAdvice = advice
	})
}

// SeedDemoLoad populates the server with demo data, then refreshes the
// views the seed touches. Refresh failures are logged, not surfaced; the
// seed itself succeeded.
func (s *Store) SeedDemoLoad(ctx context.Context, opts api.SeedOptions) error {
	seq := s.begin(DomainSeed)
	if err := s.client.SeedDemoLoad(ctx, opts); err != nil {
		return s.fail(DomainSeed, seq, err)
	}
	if err := s.finish(DomainSeed, seq, func() {}); err != nil {
		return err
	}
	if err := s.FetchTransactions(ctx, s.TransactionFilter()); err != nil {
		log.Warnf("store: transactions refresh failed after seed load: %v", err)
	}
	if err := s.FetchGoals(ctx); err != nil {
		log.Warnf("store: goals refresh failed after seed load: %v", err)
	}
	return nil
}

// SeedDemoClear wipes the demo dataset and empties the local
// transactions slice without waiting for a re-fetch.
func (s *Store) SeedDemoClear(ctx context.Context) error {
	seq := s.begin(DomainSeed)
	if err := s.client.SeedDemoClear(ctx); err != nil {
		return s.fail(DomainSeed, seq, err)
	}
	return s.finish(DomainSeed, seq, func() {
		s.transactions = []api.Transaction{}
	})
}

func filterTransactionsByType(list []api.Transaction, txType string) []api.Transaction {
	filtered := make([]api.Transaction, 0, len(list))
	for _, tx := range list {
		if tx.Type == txType {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}
