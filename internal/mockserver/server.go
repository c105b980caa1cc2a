// Package mockserver is an in-memory implementation of the finance API
// used for local development and integration tests. Derived payloads
// (summary, behaviors, alerts, advice, goals plan) are reference math,
// not a production backend.
package mockserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	"github.com/finsight/finsight/pkg/api"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	mu    sync.Mutex
	clock Clock

	transactions []api.Transaction
	budgets      []api.Budget
	goals        []api.Goal
}

func New(clock Clock) *Server {
	return &Server{clock: clock}
}

// Router builds the full route table for the API surface.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", s.health).Methods("GET")

	r.HandleFunc("/transactions", s.listTransactions).Methods("GET")
	r.HandleFunc("/transactions", s.createTransaction).Methods("POST")
	r.HandleFunc("/transactions/{id}", s.getTransaction).Methods("GET")
	r.HandleFunc("/transactions/{id}", s.updateTransaction).Methods("PUT")
	r.HandleFunc("/transactions/{id}", s.deleteTransaction).Methods("DELETE")

	r.HandleFunc("/budgets", s.listBudgets).Methods("GET")
	r.HandleFunc("/budgets", s.upsertBudget).Methods("POST")
	r.HandleFunc("/budgets/summary", s.budgetSummary).Methods("GET")

	r.HandleFunc("/goals", s.listGoals).Methods("GET")
	r.HandleFunc("/goals", s.createGoal).Methods("POST")
	r.HandleFunc("/goals/{id}", s.getGoal).Methods("GET")
	r.HandleFunc("/goals/{id}", s.updateGoal).Methods("PUT")
	r.HandleFunc("/goals/{id}", s.deleteGoal).Methods("DELETE")

	r.HandleFunc("/analytics/summary", s.analyticsSummary).Methods("GET")
	r.HandleFunc("/analytics/behaviors", s.behaviors).Methods("GET")
	r.HandleFunc("/alerts/overspending", s.overspendingAlerts).Methods("GET")
	r.HandleFunc("/advice/savings", s.savingsAdvice).Methods("GET")
	r.HandleFunc("/advice/goals-plan", s.goalsPlan).Methods("GET")

	r.HandleFunc("/seed/demo/load", s.seedLoad).Methods("POST")
	r.HandleFunc("/seed/demo/clear", s.seedClear).Methods("DELETE")

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("mockserver: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, end := s.resolveRange(query.Get("start"), query.Get("end"), query.Get("period"))
	category := query.Get("category")

	s.mu.Lock()
	defer s.mu.Unlock()
	matched := make([]api.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if start != "" && tx.Date < start {
			continue
		}
		if end != "" && tx.Date > end {
			continue
		}
		if category != "" && tx.Category != category {
			continue
		}
		matched = append(matched, tx)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date > matched[j].Date })
	writeJSON(w, http.StatusOK, matched)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions {
		if tx.Id == id {
			writeJSON(w, http.StatusOK, tx)
			return
		}
	}
	writeError(w, http.StatusNotFound, "transaction not found")
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var tx api.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if tx.Type != api.TypeIncome && tx.Type != api.TypeExpense {
		writeError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	tx.Id = uuid.NewString()

	s.mu.Lock()
	s.transactions = append(s.transactions, tx)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var tx api.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx.Id = id

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].Id == id {
			s.transactions[i] = tx
			writeJSON(w, http.StatusOK, tx)
			return
		}
	}
	writeError(w, http.StatusNotFound, "transaction not found")
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].Id == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "transaction not found")
}

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := make([]api.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		if start != "" && b.Month < start {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Month != matched[j].Month {
			return matched[i].Month < matched[j].Month
		}
		return matched[i].Category < matched[j].Category
	})
	writeJSON(w, http.StatusOK, matched)
}

func (s *Server) upsertBudget(w http.ResponseWriter, r *http.Request) {
	var budget api.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if budget.Month == "" || budget.Category == "" {
		writeError(w, http.StatusBadRequest, "month and category are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		if s.budgets[i].Month == budget.Month && s.budgets[i].Category == budget.Category {
			s.budgets[i].Amount = budget.Amount
			writeJSON(w, http.StatusOK, s.budgets[i])
			return
		}
	}
	s.budgets = append(s.budgets, budget)
	writeJSON(w, http.StatusCreated, budget)
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.goals)
}

func (s *Server) getGoal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, goal := range s.goals {
		if goal.Id == id {
			writeJSON(w, http.StatusOK, goal)
			return
		}
	}
	writeError(w, http.StatusNotFound, "goal not found")
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	var goal api.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if goal.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	goal.Id = uuid.NewString()

	s.mu.Lock()
	s.goals = append(s.goals, goal)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var goal api.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal.Id = id

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].Id == id {
			s.goals[i] = goal
			writeJSON(w, http.StatusOK, goal)
			return
		}
	}
	writeError(w, http.StatusNotFound, "goal not found")
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].Id == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "goal not found")
}
