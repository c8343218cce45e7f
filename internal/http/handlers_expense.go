package http

import (
	"net/http"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

type expenseRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Category    string `json:"category"`
}

type expenseResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Category    string `json:"category"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Date:        e.Date.String(),
		Description: e.Description,
		AmountCents: e.Amount.Cents,
		Category:    e.Category,
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	created, err := s.expenses.CreateExpense(r.Context(), core.Expense{
		OwnerID:     s.ownerID(r),
		Date:        date,
		Description: sanitizeInput(req.Description),
		Amount:      core.Money{Cents: req.AmountCents},
		Category:    sanitizeInput(req.Category),
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard(s.ownerID(r))
	writeJSON(w, http.StatusCreated, toExpenseResponse(created))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	owner := s.ownerID(r)

	var (
		list []core.Expense
		err  error
	)
	if r.URL.Query().Has("year") || r.URL.Query().Has("month") {
		year, month := parseYearMonth(r)
		list, err = s.expenses.ListExpensesByMonth(r.Context(), owner, year, month)
	} else {
		list, err = s.expenses.ListExpenses(r.Context(), owner)
	}
	if err != nil {
		writeStorageError(w, err)
		return
	}

	out := make([]expenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := s.expenses.GetExpense(r.Context(), s.ownerID(r), r.PathValue("id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteExpense(r.Context(), s.ownerID(r), r.PathValue("id")); err != nil {
		writeStorageError(w, err)
		return
	}
	s.invalidateDashboard(s.ownerID(r))
	w.WriteHeader(http.StatusNoContent)
}
