package mockserver

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/finsight/finsight/pkg/api"
	"github.com/shopspring/decimal"
)

const (
	dayFormat   = "2006-01-02"
	monthFormat = "2006-01"
)

// resolveRange turns explicit start/end dates or a named period into a
// concrete [start, end] day range. Unknown periods leave the range open.
func (s *Server) resolveRange(start, end, period string) (string, string) {
	if start != "" || end != "" {
		return start, end
	}
	now := s.clock.Now()
	switch period {
	case "month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first.Format(dayFormat), now.Format(dayFormat)
	case "week":
		return now.AddDate(0, 0, -6).Format(dayFormat), now.Format(dayFormat)
	case "year":
		first := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return first.Format(dayFormat), now.Format(dayFormat)
	}
	return "", ""
}

func (s *Server) inRange(tx api.Transaction, start, end string) bool {
	if start != "" && tx.Date < start {
		return false
	}
	if end != "" && tx.Date > end {
		return false
	}
	return true
}

func (s *Server) budgetSummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = s.clock.Now().Format(monthFormat)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spentByCategory := make(map[string]decimal.Decimal)
	for _, tx := range s.transactions {
		if tx.Type != api.TypeExpense || len(tx.Date) < len(month) || tx.Date[:len(month)] != month {
			continue
		}
		spentByCategory[tx.Category] = spentByCategory[tx.Category].Add(tx.Amount.Abs())
	}

	rows := make([]api.BudgetSummaryItem, 0)
	for _, budget := range s.budgets {
		if budget.Month != month {
			continue
		}
		spent := spentByCategory[budget.Category]
		utilization := 0.0
		if budget.Amount.IsPositive() {
			utilization, _ = spent.Div(budget.Amount).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		}
		rows = append(rows, api.BudgetSummaryItem{
			Category:       budget.Category,
			Spent:          spent,
			Budget:         budget.Amount,
			UtilizationPct: utilization,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) analyticsSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, end := s.resolveRange(query.Get("start"), query.Get("end"), query.Get("period"))

	s.mu.Lock()
	defer s.mu.Unlock()

	income := decimal.Zero
	expenses := decimal.Zero
	breakdown := make(map[string]decimal.Decimal)
	for _, tx := range s.transactions {
		if !s.inRange(tx, start, end) {
			continue
		}
		if tx.Type == api.TypeIncome {
			income = income.Add(tx.Amount.Abs())
		} else {
			spent := tx.Amount.Abs()
			expenses = expenses.Add(spent)
			breakdown[tx.Category] = breakdown[tx.Category].Add(spent)
		}
	}

	net := income.Sub(expenses)
	savingsRate := 0.0
	if income.IsPositive() {
		savingsRate, _ = net.Div(income).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	}
	days := rangeDays(start, end, s.clock.Now())
	avgDaily := decimal.Zero
	if days > 0 {
		avgDaily = expenses.Div(decimal.NewFromInt(int64(days))).Round(2)
	}

	writeJSON(w, http.StatusOK, api.AnalyticsSummary{
		Totals: api.Totals{
			Income:      income,
			Expenses:    expenses,
			NetCashFlow: net,
		},
		CategoryBreakdown: breakdown,
		SavingsRate:       savingsRate,
		AvgDailySpend:     avgDaily,
	})
}

func rangeDays(start, end string, now time.Time) int {
	from, err := time.Parse(dayFormat, start)
	if err != nil {
		return 30
	}
	to := now
	if parsed, err := time.Parse(dayFormat, end); err == nil {
		to = parsed
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

func (s *Server) behaviors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, end := query.Get("start"), query.Get("end")

	s.mu.Lock()
	defer s.mu.Unlock()

	spentByCategory := make(map[string]decimal.Decimal)
	spentByDay := make(map[string]decimal.Decimal)
	incomeDays := make(map[string]bool)
	for _, tx := range s.transactions {
		if !s.inRange(tx, start, end) {
			continue
		}
		if tx.Type == api.TypeIncome {
			incomeDays[tx.Date] = true
			continue
		}
		spent := tx.Amount.Abs()
		spentByCategory[tx.Category] = spentByCategory[tx.Category].Add(spent)
		spentByDay[tx.Date] = spentByDay[tx.Date].Add(spent)
	}

	report := api.BehaviorsReport{TopSpendingCategories: []api.CategoryAmount{}}
	for category, amount := range spentByCategory {
		report.TopSpendingCategories = append(report.TopSpendingCategories, api.CategoryAmount{
			Category: category,
			Amount:   amount,
		})
	}
	sort.Slice(report.TopSpendingCategories, func(i, j int) bool {
		a, b := report.TopSpendingCategories[i], report.TopSpendingCategories[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})
	if len(report.TopSpendingCategories) > 3 {
		report.TopSpendingCategories = report.TopSpendingCategories[:3]
	}

	for day, total := range spentByDay {
		if report.MostExpensiveDay == nil || total.GreaterThan(report.MostExpensiveDay.TotalSpent) {
			report.MostExpensiveDay = &api.ExpensiveDay{Date: day, TotalSpent: total}
		}
	}
	if len(incomeDays) > 0 {
		count := len(incomeDays)
		report.IncomeDaysCount = &count
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) overspendingAlerts(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = s.clock.Now().Format(monthFormat)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spentByCategory := make(map[string]decimal.Decimal)
	for _, tx := range s.transactions {
		if tx.Type != api.TypeExpense || len(tx.Date) < len(month) || tx.Date[:len(month)] != month {
			continue
		}
		spentByCategory[tx.Category] = spentByCategory[tx.Category].Add(tx.Amount.Abs())
	}

	alerts := make([]api.OverspendingAlert, 0)
	for _, budget := range s.budgets {
		if budget.Month != month || !budget.Amount.IsPositive() {
			continue
		}
		spent := spentByCategory[budget.Category]
		utilization, _ := spent.Div(budget.Amount).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		if utilization < 70 {
			continue
		}
		severity := api.SeverityNormal
		if utilization > 100 {
			severity = api.SeverityCritical
		} else if utilization > 90 {
			severity = api.SeverityWarning
		}
		alerts = append(alerts, api.OverspendingAlert{
			Category:       budget.Category,
			Month:          month,
			Budget:         budget.Amount,
			Spent:          spent,
			UtilizationPct: utilization,
			Severity:       severity,
		})
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].UtilizationPct > alerts[j].UtilizationPct })
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) savingsAdvice(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, end := s.resolveRange("", "", orDefault(query.Get("period"), "month"))

	s.mu.Lock()
	defer s.mu.Unlock()

	spentByCategory := make(map[string]decimal.Decimal)
	for _, tx := range s.transactions {
		if tx.Type != api.TypeExpense || !s.inRange(tx, start, end) {
			continue
		}
		spentByCategory[tx.Category] = spentByCategory[tx.Category].Add(tx.Amount.Abs())
	}

	ranked := make([]api.CategoryAmount, 0, len(spentByCategory))
	for category, amount := range spentByCategory {
		ranked = append(ranked, api.CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Amount.Equal(ranked[j].Amount) {
			return ranked[i].Amount.GreaterThan(ranked[j].Amount)
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	const reductionPct = 10.0
	reductionFactor := decimal.NewFromFloat(reductionPct / 100)
	reductions := make([]api.CategoryReduction, 0, len(ranked))
	monthly := decimal.Zero
	for _, entry := range ranked {
		saved := entry.Amount.Mul(reductionFactor).Round(2)
		monthly = monthly.Add(saved)
		reductions = append(reductions, api.CategoryReduction{
			Category:              entry.Category,
			Current:               entry.Amount,
			SuggestedReductionPct: reductionPct,
			ReducedAmount:         entry.Amount.Sub(saved),
		})
	}

	writeJSON(w, http.StatusOK, api.SavingsAdvice{
		CategoryReductions: reductions,
		Targets: api.SavingsTargets{
			Daily:   monthly.Div(decimal.NewFromInt(30)).Round(2),
			Weekly:  monthly.Div(decimal.NewFromInt(4)).Round(2),
			Monthly: monthly,
		},
	})
}

// goalsPlan projects each goal from the average monthly net cash flow of
// the last three months of transactions.
func (s *Server) goalsPlan(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	start := now.AddDate(0, -3, 0).Format(dayFormat)
	net := decimal.Zero
	for _, tx := range s.transactions {
		if tx.Date < start {
			continue
		}
		if tx.Type == api.TypeIncome {
			net = net.Add(tx.Amount.Abs())
		} else {
			net = net.Sub(tx.Amount.Abs())
		}
	}
	monthlyNet := net.Div(decimal.NewFromInt(3))

	plan := make([]api.GoalPlanItem, 0, len(s.goals))
	for _, goal := range s.goals {
		remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		item := api.GoalPlanItem{
			Id:        goal.Id,
			Name:      goal.Name,
			Remaining: remaining,
		}
		if !monthlyNet.IsPositive() {
			item.Status = api.PlanNoNet
			plan = append(plan, item)
			continue
		}
		ratio, _ := remaining.Div(monthlyNet).Float64()
		months := int(math.Ceil(ratio))
		if months < 0 {
			months = 0
		}
		projected := now.AddDate(0, months, 0).Format(dayFormat)
		item.MonthsToTarget = &months
		item.ProjectedCompletion = &projected

		item.Status = api.PlanOnTrack
		if goal.TargetDate != "" {
			if target, err := time.Parse(dayFormat, goal.TargetDate); err == nil {
				projectedAt := now.AddDate(0, months, 0)
				switch {
				case projectedAt.After(target):
					item.Status = api.PlanBehind
				case projectedAt.AddDate(0, 1, 0).Before(target):
					item.Status = api.PlanAhead
				}
			}
		}
		plan = append(plan, item)
	}
	writeJSON(w, http.StatusOK, plan)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
