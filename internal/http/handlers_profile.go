package http

import (
	"net/http"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

type profileRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type profileResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Currency string `json:"currency"`
}

func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	currency := sanitizeInput(req.Currency)
	if currency == "" {
		currency = "BRL"
	}

	profile := core.Profile{
		ID:       s.ownerID(r),
		Email:    sanitizeInput(req.Email),
		FullName: sanitizeInput(req.FullName),
		Currency: currency,
	}
	if err := profile.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.storage.UpsertProfile(r.Context(), profile); err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ID:       profile.ID,
		Email:    profile.Email,
		FullName: profile.FullName,
		Currency: profile.Currency,
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.storage.GetProfile(r.Context(), s.ownerID(r))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		ID:       p.ID,
		Email:    p.Email,
		FullName: p.FullName,
		Currency: p.Currency,
	})
}
