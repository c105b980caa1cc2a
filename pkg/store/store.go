// Package store caches the latest server-confirmed snapshot of every
// financial domain and keeps per-domain loading and error status. Writes
// never patch the cache locally; each mutation is followed by a re-fetch
// of the owning collection so reads always reflect server truth.
package store

import (
	"sync"

	"github.com/finsight/finsight/pkg/api"
	log "github.com/sirupsen/logrus"
)

// Domain names one cached slice with its own loading/error slot.
type Domain string

const (
	DomainTransactions  Domain = "transactions"
	DomainBudgets       Domain = "budgets"
	DomainBudgetSummary Domain = "budgetSummary"
	DomainGoals         Domain = "goals"
	DomainGoalsPlan     Domain = "goalsPlan"
	DomainSummary       Domain = "summary"
	DomainBehaviors     Domain = "behaviors"
	DomainAlerts        Domain = "alerts"
	DomainSavingsAdvice Domain = "savingsAdvice"
	DomainSeed          Domain = "seed"
)

type Store struct {
	client api.Client

	mu sync.Mutex

	transactions []api.Transaction
	txFilter     api.TransactionFilter

	budgets      []api.Budget
	budgetFilter api.BudgetFilter

	budgetSummary      []api.BudgetSummaryItem
	budgetSummaryMonth string

	goals     []api.Goal
	goalsPlan []api.GoalPlanItem

	summary       *api.AnalyticsSummary
	behaviors     *api.BehaviorsReport
	alerts        []api.OverspendingAlert
	savingsAdvice *api.SavingsAdvice

	loading map[Domain]bool
	errors  map[Domain]*api.APIError

	// issued is a per-domain monotonic sequence; a completing fetch is
	// applied only if it is still the latest issued for its domain.
	issued map[Domain]uint64
}

func New(client api.Client) *Store {
	return &Store{
		client:  client,
		loading: make(map[Domain]bool),
		errors:  make(map[Domain]*api.APIError),
		issued:  make(map[Domain]uint64),
	}
}

// begin marks a domain loading, clears its error, and issues the next
// fetch sequence number. Issuing also invalidates any response still in
// flight for the same domain.
func (s *Store) begin(d Domain) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading[d] = true
	delete(s.errors, d)
	s.issued[d]++
	return s.issued[d]
}

// finish applies a successful response unless a newer fetch has been
// issued for the domain, in which case the response is dropped.
func (s *Store) finish(d Domain, seq uint64, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.issued[d] {
		log.Debugf("store: dropping stale %s response (seq %d, latest %d)", d, seq, s.issued[d])
		return nil
	}
	apply()
	s.loading[d] = false
	delete(s.errors, d)
	return nil
}

// fail records a failure for the domain and re-raises it. Stale failures
// are re-raised but not recorded; a newer fetch owns the status slot.
func (s *Store) fail(d Domain, seq uint64, err error) error {
	apiErr := api.AsAPIError(err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.issued[d] {
		log.Debugf("store: dropping stale %s failure (seq %d, latest %d): %v", d, seq, s.issued[d], apiErr)
		return apiErr
	}
	s.errors[d] = apiErr
	s.loading[d] = false
	return apiErr
}

// Loading reports whether a fetch for the domain is in flight.
func (s *Store) Loading(d Domain) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[d]
}

// Err returns the domain's last recorded failure, nil while loading or
// after a successful fetch.
func (s *Store) Err(d Domain) *api.APIError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[d]
}

// Cached slices are replaced wholesale and never mutated in place, so
// accessors hand out the current snapshot directly.

func (s *Store) Transactions() []api.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions
}

func (s *Store) Budgets() []api.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgets
}

func (s *Store) BudgetSummary() []api.BudgetSummaryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgetSummary
}

func (s *Store) Goals() []api.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goals
}

func (s *Store) GoalsPlan() []api.GoalPlanItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goalsPlan
}

func (s *Store) Summary() *api.AnalyticsSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func (s *Store) Behaviors() *api.BehaviorsReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.behaviors
}

func (s *Store) Alerts() []api.OverspendingAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alerts
}

func (s *Store) SavingsAdvice() *api.SavingsAdvice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savingsAdvice
}

// TransactionFilter returns the filter of the last applied transaction
// fetch; write operations re-fetch with it so edits never reset the view.
func (s *Store) TransactionFilter() api.TransactionFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txFilter
}

func (s *Store) BudgetFilter() api.BudgetFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgetFilter
}
