package store

import (
	"context"
	"sync"
	"testing"

	"github.com/finsight/finsight/pkg/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id, date, category, txType string, amount int64) api.Transaction {
	return api.Transaction{
		Id:       id,
		Date:     date,
		Category: category,
		Type:     txType,
		Amount:   decimal.NewFromInt(amount),
	}
}

func TestStore_FetchTransactions(t *testing.T) {
	// given
	client := newStubClient()
	client.listTransactionsFn = func(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error) {
		return []api.Transaction{tx("t1", "2024-05-01", "Groceries", api.TypeExpense, 40)}, nil
	}
	s := New(client)

	// when
	err := s.FetchTransactions(context.Background(), api.TransactionFilter{Start: "2024-05-01"})

	// then
	require.NoError(t, err)
	assert.Len(t, s.Transactions(), 1)
	assert.False(t, s.Loading(DomainTransactions))
	assert.Nil(t, s.Err(DomainTransactions))
}

func TestStore_FetchTransactions_AbsentPayloadBecomesEmptySlice(t *testing.T) {
	s := New(newStubClient()) // stub returns nil, nil

	err := s.FetchTransactions(context.Background(), api.TransactionFilter{})

	require.NoError(t, err)
	assert.NotNil(t, s.Transactions())
	assert.Empty(t, s.Transactions())
}

func TestStore_FetchTransactions_TypeFilteredLocally(t *testing.T) {
	client := newStubClient()
	client.listTransactionsFn = func(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error) {
		return []api.Transaction{
			tx("t1", "2024-05-01", "Groceries", api.TypeExpense, 40),
			tx("t2", "2024-05-02", "Salary", api.TypeIncome, 3000),
		}, nil
	}
	s := New(client)

	err := s.FetchTransactions(context.Background(), api.TransactionFilter{Type: api.TypeIncome})

	require.NoError(t, err)
	require.Len(t, s.Transactions(), 1)
	assert.Equal(t, "t2", s.Transactions()[0].Id)
}

func TestStore_FetchFailureStoresAndReturnsError(t *testing.T) {
	// given
	client := newStubClient()
	serverErr := &api.APIError{Message: "db down", Status: 500, Details: map[string]any{"message": "db down"}}
	client.listTransactionsFn = func(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error) {
		return nil, serverErr
	}
	s := New(client)

	// when
	err := s.FetchTransactions(context.Background(), api.TransactionFilter{})

	// then
	assert.Equal(t, serverErr, err)
	assert.Equal(t, serverErr, s.Err(DomainTransactions))
	assert.False(t, s.Loading(DomainTransactions))
}

func TestStore_NewFetchClearsPreviousError(t *testing.T) {
	client := newStubClient()
	failing := true
	client.listTransactionsFn = func(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error) {
		if failing {
			return nil, &api.APIError{Message: "boom", Status: 500}
		}
		return []api.Transaction{}, nil
	}
	s := New(client)
	_ = s.FetchTransactions(context.Background(), api.TransactionFilter{})
	require.NotNil(t, s.Err(DomainTransactions))

	failing = false
	err := s.FetchTransactions(context.Background(), api.TransactionFilter{})

	require.NoError(t, err)
	assert.Nil(t, s.Err(DomainTransactions))
}

func TestStore_CreateTransaction_RefetchesWithLastFilter(t *testing.T) {
	// given an active filter
	client := newStubClient()
	client.listTransactionsFn = func(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error) {
		return []api.Transaction{tx("t1", "2024-05-01", "Groceries", api.TypeExpense, 40)}, nil
	}
	s := New(client)
	activeFilter := api.TransactionFilter{Start: "2024-05-01", Category: "Groceries"}
	require.NoError(t, s.FetchTransactions(context.Background(), activeFilter))

	// when
	err := s.CreateTransaction(context.Background(), tx("", "2024-05-03", "Groceries", api.TypeExpense, 12))

	// then the re-fetch reuses the active filter instead of resetting it
	require.NoError(t, err)
	filters := client.filters()
	require.Len(t, filters, 2)
	assert.Equal(t, activeFilter, filters[1])
}

func TestStore_DeleteTransaction_KeepsActiveFilter(t *testing.T) {
	client := newStubClient()
	s := New(client)
	activeFilter := api.TransactionFilter{Period: "month", Category: "Fun"}
	require.NoError(t, s.FetchTransactions(context.Background(), activeFilter))

	err := s.DeleteTransaction(context.Background(), "t1")

	require.NoError(t, err)
	filters := client.filters()
	require.Len(t, filters, 2)
	assert.Equal(t, activeFilter, filters[1])
}

func TestStore_WriteFailureDoesNotRefetch(t *testing.T) {
	client := newStubClient()
	writeErr := &api.APIError{Message: "invalid", Status: 422}
	client.createTransactionFn = func(ctx context.Context, tx api.Transaction) (api.Transaction, error) {
		return api.Transaction{}, writeErr
	}
	s := New(client)

	err := s.CreateTransaction(context.Background(), api.Transaction{})

	assert.Equal(t, writeErr, err)
	assert.Equal(t, writeErr, s.Err(DomainTransactions))
	assert.Empty(t, client.filters())
}

func TestStore_StaleResponseIsDiscarded(t *testing.T) {
	// given a first fetch that blocks until released,
	// and a second fetch that completes immediately
	client := newStubClient()
	firstStarted := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	client.listTransactionsFn = func(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(firstStarted)
			<-release
			return []api.Transaction{tx("stale", "2024-01-01", "Old", api.TypeExpense, 1)}, nil
		}
		return []api.Transaction{tx("fresh", "2024-05-01", "New", api.TypeExpense, 2)}, nil
	}
	s := New(client)

	done := make(chan error, 1)
	go func() {
		done <- s.FetchTransactions(context.Background(), api.TransactionFilter{Category: "Old"})
	}()
	<-firstStarted

	// when a newer fetch completes while the first is still in flight
	require.NoError(t, s.FetchTransactions(context.Background(), api.TransactionFilter{Category: "New"}))
	close(release)
	require.NoError(t, <-done)

	// then the stale response did not overwrite the fresh one
	require.Len(t, s.Transactions(), 1)
	assert.Equal(t, "fresh", s.Transactions()[0].Id)
	assert.Equal(t, api.TransactionFilter{Category: "New"}, s.TransactionFilter())
	assert.False(t, s.Loading(DomainTransactions))
}

func TestStore_GoalWriteRefreshesGoalsAndPlan(t *testing.T) {
	client := newStubClient()
	var listedGoals, listedPlan bool
	client.listGoalsFn = func(ctx context.Context) ([]api.Goal, error) {
		listedGoals = true
		return []api.Goal{{Id: "g1", Name: "Emergency fund"}}, nil
	}
	client.goalsPlanFn = func(ctx context.Context) ([]api.GoalPlanItem, error) {
		listedPlan = true
		return []api.GoalPlanItem{{Id: "g1", Name: "Emergency fund", Status: api.PlanOnTrack}}, nil
	}
	s := New(client)

	err := s.CreateGoal(context.Background(), api.Goal{Name: "Emergency fund"})

	require.NoError(t, err)
	assert.True(t, listedGoals)
	assert.True(t, listedPlan)
	assert.Len(t, s.Goals(), 1)
	assert.Len(t, s.GoalsPlan(), 1)
}

func TestStore_GoalWriteSucceedsWhenPlanRefreshFails(t *testing.T) {
	client := newStubClient()
	client.goalsPlanFn = func(ctx context.Context) ([]api.GoalPlanItem, error) {
		return nil, &api.APIError{Message: "plan exploded", Status: 500}
	}
	s := New(client)

	err := s.DeleteGoal(context.Background(), "g1")

	// the primary write path is unaffected; the failure is visible on
	// the goalsPlan slot only
	require.NoError(t, err)
	assert.Nil(t, s.Err(DomainGoals))
	require.NotNil(t, s.Err(DomainGoalsPlan))
	assert.Equal(t, "plan exploded", s.Err(DomainGoalsPlan).Message)
}

func TestStore_SeedLoadRefreshesBestEffort(t *testing.T) {
	// given a seed that succeeds but a goals refresh that fails
	client := newStubClient()
	client.listGoalsFn = func(ctx context.Context) ([]api.Goal, error) {
		return nil, &api.APIError{Message: "goals down", Status: 503}
	}
	s := New(client)

	err := s.SeedDemoLoad(context.Background(), api.SeedOptions{MonthsBack: 2})

	// then the seed itself is not failed by the secondary refresh
	require.NoError(t, err)
	assert.Nil(t, s.Err(DomainSeed))
	assert.False(t, s.Loading(DomainSeed))
	assert.Len(t, client.filters(), 1)
	require.NotNil(t, s.Err(DomainGoals))
	assert.Equal(t, "goals down", s.Err(DomainGoals).Message)
}

func TestStore_SeedClearEmptiesTransactionsLocally(t *testing.T) {
	client := newStubClient()
	client.listTransactionsFn = func(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error) {
		return []api.Transaction{tx("t1", "2024-05-01", "Groceries", api.TypeExpense, 40)}, nil
	}
	s := New(client)
	require.NoError(t, s.FetchTransactions(context.Background(), api.TransactionFilter{}))
	require.Len(t, s.Transactions(), 1)

	err := s.SeedDemoClear(context.Background())

	require.NoError(t, err)
	assert.Empty(t, s.Transactions())
	// no re-fetch happened; the slice was emptied locally
	assert.Len(t, client.filters(), 1)
}

func TestStore_UpsertBudgetRefreshesSummaryWhenLoaded(t *testing.T) {
	client := newStubClient()
	var summaryMonths []string
	client.budgetSummaryFn = func(ctx context.Context, month string) ([]api.BudgetSummaryItem, error) {
		summaryMonths = append(summaryMonths, month)
		return []api.BudgetSummaryItem{}, nil
	}
	s := New(client)
	require.NoError(t, s.FetchBudgetSummary(context.Background(), "2024-05"))

	err := s.UpsertBudget(context.Background(), api.Budget{Month: "2024-05", Category: "Fun", Amount: decimal.NewFromInt(100)})

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05", "2024-05"}, summaryMonths)
}

func TestStore_LoadingFlagDuringFetch(t *testing.T) {
	client := newStubClient()
	started := make(chan struct{})
	release := make(chan struct{})
	client.listGoalsFn = func(ctx context.Context) ([]api.Goal, error) {
		close(started)
		<-release
		return nil, nil
	}
	s := New(client)

	done := make(chan error, 1)
	go func() { done <- s.FetchGoals(context.Background()) }()
	<-started

	assert.True(t, s.Loading(DomainGoals))
	assert.Nil(t, s.Err(DomainGoals))

	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.Loading(DomainGoals))
}
