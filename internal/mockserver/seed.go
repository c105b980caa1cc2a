package mockserver

import (
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"

	"github.com/finsight/finsight/pkg/api"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var seedCategories = []string{"Groceries", "Rent", "Transport", "Dining", "Utilities", "Fun"}

// seedLoad replaces the dataset with generated demo transactions, a set
// of monthly budgets, and two goals. The same random_seed reproduces the
// same dataset.
func (s *Server) seedLoad(w http.ResponseWriter, r *http.Request) {
	var opts api.SeedOptions
	if r.Body != nil {
		// All knobs are optional; an empty body means defaults.
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if opts.MonthsBack <= 0 {
		opts.MonthsBack = 3
	}
	if opts.ApproxTotal <= 0 {
		opts.ApproxTotal = 2500
	}
	seed := int64(42)
	if opts.RandomSeed != nil {
		seed = *opts.RandomSeed
	}
	rng := rand.New(rand.NewSource(seed))

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.transactions = nil
	s.budgets = nil
	for back := 0; back < opts.MonthsBack; back++ {
		monthStart := now.AddDate(0, -back, 0)
		month := monthStart.Format(monthFormat)

		s.transactions = append(s.transactions, api.Transaction{
			Id:          uuid.NewString(),
			Date:        monthStart.AddDate(0, 0, -monthStart.Day()+1).Format(dayFormat),
			Amount:      decimal.NewFromFloat(opts.ApproxTotal * 1.4).Round(2),
			Category:    "Salary",
			Description: "Monthly salary",
			Type:        api.TypeIncome,
		})

		perCategory := opts.ApproxTotal / float64(len(seedCategories))
		for _, category := range seedCategories {
			count := 1 + rng.Intn(4)
			for i := 0; i < count; i++ {
				day := 1 + rng.Intn(28)
				amount := perCategory / float64(count) * (0.6 + rng.Float64()*0.8)
				s.transactions = append(s.transactions, api.Transaction{
					Id:          uuid.NewString(),
					Date:        monthStart.AddDate(0, 0, -monthStart.Day()+day).Format(dayFormat),
					Amount:      decimal.NewFromFloat(amount).Round(2),
					Category:    category,
					Description: "Demo " + category,
					Type:        api.TypeExpense,
				})
			}
			s.budgets = append(s.budgets, api.Budget{
				Month:    month,
				Category: category,
				Amount:   decimal.NewFromFloat(perCategory).Round(2),
			})
		}
	}

	s.goals = []api.Goal{
		{
			Id:            uuid.NewString(),
			Name:          "Emergency fund",
			TargetAmount:  decimal.NewFromInt(5000),
			CurrentAmount: decimal.NewFromInt(1250),
		},
		{
			Id:            uuid.NewString(),
			Name:          "Vacation",
			TargetAmount:  decimal.NewFromInt(1800),
			CurrentAmount: decimal.NewFromInt(400),
			TargetDate:    now.AddDate(1, 0, 0).Format(dayFormat),
		},
	}

	log.Infof("mockserver: seeded %d transactions over %d months", len(s.transactions), opts.MonthsBack)
	writeJSON(w, http.StatusOK, map[string]int{"transactions": len(s.transactions)})
}

func (s *Server) seedClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.transactions = nil
	s.mu.Unlock()
	log.Info("mockserver: demo transactions cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
