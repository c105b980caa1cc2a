package api

import "github.com/shopspring/decimal"

// Transaction types as the server reports them.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Transaction struct {
	Id          string          `json:"id,omitempty"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Type        string          `json:"type"`
}

// TransactionFilter narrows a transaction listing. Type is applied
// client-side after fetching; the server does not accept it yet.
type TransactionFilter struct {
	Start    string
	End      string
	Category string
	Period   string
	Type     string
}

// Budget is keyed by (Month, Category); creating one for an existing key
// replaces the previous amount.
type Budget struct {
	Month    string          `json:"month"` // YYYY-MM
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type BudgetFilter struct {
	Period string
	Start  string
}

// BudgetSummaryItem is a server-derived utilization row for one month.
type BudgetSummaryItem struct {
	Category       string          `json:"category"`
	Spent          decimal.Decimal `json:"spent"`
	Budget         decimal.Decimal `json:"budget"`
	UtilizationPct float64         `json:"utilization_pct"`
}

type Goal struct {
	Id            string          `json:"id,omitempty"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date,omitempty"`
}

// Goal plan statuses as the server reports them. Unknown values are
// passed through for forward compatibility.
const (
	PlanAhead   = "ahead"
	PlanOnTrack = "on_track"
	PlanBehind  = "behind"
	PlanNoNet   = "no_net"
)

// GoalPlanItem is the server-computed projection for one goal. Id matches
// the goal it was derived from.
type GoalPlanItem struct {
	Id                  string          `json:"id"`
	Name                string          `json:"name"`
	Remaining           decimal.Decimal `json:"remaining"`
	MonthsToTarget      *int            `json:"months_to_target"`
	ProjectedCompletion *string         `json:"projected_completion"` // YYYY-MM-DD
	Status              string          `json:"status"`
}

type Totals struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetCashFlow decimal.Decimal `json:"net_cash_flow"`
}

type AnalyticsSummary struct {
	Totals            Totals                     `json:"totals"`
	CategoryBreakdown map[string]decimal.Decimal `json:"category_breakdown"`
	SavingsRate       float64                    `json:"savings_rate"`
	AvgDailySpend     decimal.Decimal            `json:"avg_daily_spend"`
}

type SummaryQuery struct {
	Period string
	Start  string
	End    string
}

type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type ExpensiveDay struct {
	Date       string          `json:"date"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// BehaviorsReport carries optional spending signals; absent signals are
// nil, never zero values.
type BehaviorsReport struct {
	TopSpendingCategories []CategoryAmount `json:"top_spending_categories"`
	MostExpensiveDay      *ExpensiveDay    `json:"most_expensive_day,omitempty"`
	IncomeDaysCount       *int             `json:"income_days_count,omitempty"`
}

type DateRange struct {
	Start string
	End   string
}

// Alert severities as the server reports them.
const (
	SeverityNormal   = "normal"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

type OverspendingAlert struct {
	Category       string          `json:"category"`
	Month          string          `json:"month"`
	Budget         decimal.Decimal `json:"budget"`
	Spent          decimal.Decimal `json:"spent"`
	UtilizationPct float64         `json:"utilization_pct"`
	Severity       string          `json:"severity"`
}

type CategoryReduction struct {
	Category              string          `json:"category"`
	Current               decimal.Decimal `json:"current"`
	SuggestedReductionPct float64         `json:"suggested_reduction_pct"`
	ReducedAmount         decimal.Decimal `json:"reduced_amount"`
}

type SavingsTargets struct {
	Daily   decimal.Decimal `json:"daily"`
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
}

type SavingsAdvice struct {
	CategoryReductions []CategoryReduction `json:"category_reductions"`
	Targets            SavingsTargets      `json:"targets"`
}

type SeedOptions struct {
	MonthsBack  int     `json:"months_back,omitempty"`
	ApproxTotal float64 `json:"approx_total,omitempty"`
	RandomSeed  *int64  `json:"random_seed,omitempty"`
}
