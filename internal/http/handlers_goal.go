package http

import (
	"net/http"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

type goalRequest struct {
	Title              string `json:"title"`
	TargetAmountCents  int64  `json:"target_amount_cents"`
	CurrentAmountCents int64  `json:"current_amount_cents"`
	Category           string `json:"category"`
	Deadline           string `json:"deadline,omitempty"`
	Color              string `json:"color,omitempty"`
}

type goalResponse struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	TargetAmountCents  int64  `json:"target_amount_cents"`
	CurrentAmountCents int64  `json:"current_amount_cents"`
	Category           string `json:"category"`
	Deadline           string `json:"deadline,omitempty"`
	Color              string `json:"color,omitempty"`
	Percent            int    `json:"percent"`
}

func toGoalResponse(g core.Goal) goalResponse {
	resp := goalResponse{
		ID:                 g.ID,
		Title:              g.Title,
		TargetAmountCents:  g.TargetAmount.Cents,
		CurrentAmountCents: g.CurrentAmount.Cents,
		Category:           g.Category,
		Color:              g.Color,
		Percent:            core.Progress(g),
	}
	if !g.Deadline.IsEmpty() {
		resp.Deadline = g.Deadline.String()
	}
	return resp
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal := core.Goal{
		OwnerID:       s.ownerID(r),
		Title:         sanitizeInput(req.Title),
		TargetAmount:  core.Money{Cents: req.TargetAmountCents},
		CurrentAmount: core.Money{Cents: req.CurrentAmountCents},
		Category:      sanitizeInput(req.Category),
		Color:         sanitizeInput(req.Color),
	}
	if req.Deadline != "" {
		deadline, err := parseDate(req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, "deadline must be YYYY-MM-DD")
			return
		}
		goal.Deadline = deadline
	}

	created, err := s.storage.CreateGoal(r.Context(), goal)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard(s.ownerID(r))
	writeJSON(w, http.StatusCreated, toGoalResponse(created))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.storage.ListGoals(r.Context(), s.ownerID(r))
	if err != nil {
		writeStorageError(w, err)
		return
	}

	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := s.storage.GetGoal(r.Context(), s.ownerID(r), r.PathValue("id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleUpdateGoalAmount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentAmountCents int64 `json:"current_amount_cents"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentAmountCents < 0 {
		writeError(w, http.StatusBadRequest, "amount cannot be negative")
		return
	}

	owner := s.ownerID(r)
	id := r.PathValue("id")
	if err := s.storage.UpdateGoalAmount(r.Context(), owner, id, core.Money{Cents: req.CurrentAmountCents}); err != nil {
		writeStorageError(w, err)
		return
	}

	g, err := s.storage.GetGoal(r.Context(), owner, id)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard(owner)
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.DeleteGoal(r.Context(), s.ownerID(r), r.PathValue("id")); err != nil {
		writeStorageError(w, err)
		return
	}
	s.invalidateDashboard(s.ownerID(r))
	w.WriteHeader(http.StatusNoContent)
}
