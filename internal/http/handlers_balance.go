package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

type assetRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	ValueCents  int64  `json:"value_cents"`
	Description string `json:"description,omitempty"`
}

type assetResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	ValueCents  int64  `json:"value_cents"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.storage.CreateAsset(r.Context(), core.Asset{
		OwnerID:     s.ownerID(r),
		Name:        sanitizeInput(req.Name),
		Type:        sanitizeInput(req.Type),
		Value:       core.Money{Cents: req.ValueCents},
		Description: sanitizeInput(req.Description),
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard(s.ownerID(r))
	writeJSON(w, http.StatusCreated, assetResponse{
		ID:          created.ID,
		Name:        created.Name,
		Type:        created.Type,
		ValueCents:  created.Value.Cents,
		Description: created.Description,
	})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.storage.ListAssets(r.Context(), s.ownerID(r))
	if err != nil {
		writeStorageError(w, err)
		return
	}

	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, assetResponse{
			ID:          a.ID,
			Name:        a.Name,
			Type:        a.Type,
			ValueCents:  a.Value.Cents,
			Description: a.Description,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.DeleteAsset(r.Context(), s.ownerID(r), r.PathValue("id")); err != nil {
		writeStorageError(w, err)
		return
	}
	s.invalidateDashboard(s.ownerID(r))
	w.WriteHeader(http.StatusNoContent)
}

type liabilityRequest struct {
	Name                string `json:"name"`
	Type                string `json:"type"`
	BalanceCents        int64  `json:"balance_cents"`
	InterestRate        string `json:"interest_rate,omitempty"`
	MonthlyPaymentCents int64  `json:"monthly_payment_cents,omitempty"`
}

type liabilityResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Type                string `json:"type"`
	BalanceCents        int64  `json:"balance_cents"`
	InterestRate        string `json:"interest_rate,omitempty"`
	MonthlyPaymentCents int64  `json:"monthly_payment_cents,omitempty"`
}

func (s *Server) handleCreateLiability(w http.ResponseWriter, r *http.Request) {
	var req liabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	liability := core.Liability{
		OwnerID:        s.ownerID(r),
		Name:           sanitizeInput(req.Name),
		Type:           sanitizeInput(req.Type),
		Balance:        core.Money{Cents: req.BalanceCents},
		MonthlyPayment: core.Money{Cents: req.MonthlyPaymentCents},
	}
	if req.InterestRate != "" {
		rate, err := decimal.NewFromString(req.InterestRate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "interest_rate must be a decimal number")
			return
		}
		liability.InterestRate = rate
	}

	created, err := s.storage.CreateLiability(r.Context(), liability)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard(s.ownerID(r))
	writeJSON(w, http.StatusCreated, toLiabilityResponse(created))
}

func toLiabilityResponse(l core.Liability) liabilityResponse {
	resp := liabilityResponse{
		ID:                  l.ID,
		Name:                l.Name,
		Type:                l.Type,
		BalanceCents:        l.Balance.Cents,
		MonthlyPaymentCents: l.MonthlyPayment.Cents,
	}
	if !l.InterestRate.IsZero() {
		resp.InterestRate = l.InterestRate.String()
	}
	return resp
}

func (s *Server) handleListLiabilities(w http.ResponseWriter, r *http.Request) {
	liabilities, err := s.storage.ListLiabilities(r.Context(), s.ownerID(r))
	if err != nil {
		writeStorageError(w, err)
		return
	}

	out := make([]liabilityResponse, 0, len(liabilities))
	for _, l := range liabilities {
		out = append(out, toLiabilityResponse(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteLiability(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.DeleteLiability(r.Context(), s.ownerID(r), r.PathValue("id")); err != nil {
		writeStorageError(w, err)
		return
	}
	s.invalidateDashboard(s.ownerID(r))
	w.WriteHeader(http.StatusNoContent)
}
