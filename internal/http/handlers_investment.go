package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

type investmentRequest struct {
	Ticker       string `json:"ticker"`
	Name         string `json:"name"`
	Shares       string `json:"shares"`
	Price        string `json:"price"`
	Sector       string `json:"sector,omitempty"`
	PurchaseDate string `json:"purchase_date"`
}

type investmentResponse struct {
	ID           string `json:"id"`
	Ticker       string `json:"ticker"`
	Name         string `json:"name"`
	Shares       string `json:"shares"`
	Price        string `json:"price"`
	MarketValue  string `json:"market_value"`
	Sector       string `json:"sector,omitempty"`
	PurchaseDate string `json:"purchase_date"`
}

func toInvestmentResponse(inv core.Investment) investmentResponse {
	return investmentResponse{
		ID:           inv.ID,
		Ticker:       inv.Ticker,
		Name:         inv.Name,
		Shares:       inv.Shares.String(),
		Price:        inv.Price.String(),
		MarketValue:  inv.MarketValue().String(),
		Sector:       inv.Sector,
		PurchaseDate: inv.PurchaseDate.String(),
	}
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	shares, err := decimal.NewFromString(req.Shares)
	if err != nil {
		writeError(w, http.StatusBadRequest, "shares must be a decimal number")
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "price must be a decimal number")
		return
	}
	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "purchase_date must be YYYY-MM-DD")
		return
	}

	created, err := s.storage.CreateInvestment(r.Context(), core.Investment{
		OwnerID:      s.ownerID(r),
		Ticker:       sanitizeInput(req.Ticker),
		Name:         sanitizeInput(req.Name),
		Shares:       shares,
		Price:        price,
		Sector:       sanitizeInput(req.Sector),
		PurchaseDate: purchaseDate,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard(s.ownerID(r))
	writeJSON(w, http.StatusCreated, toInvestmentResponse(created))
}

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	investments, err := s.storage.ListInvestments(r.Context(), s.ownerID(r))
	if err != nil {
		writeStorageError(w, err)
		return
	}

	out := make([]investmentResponse, 0, len(investments))
	for _, inv := range investments {
		out = append(out, toInvestmentResponse(inv))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.DeleteInvestment(r.Context(), s.ownerID(r), r.PathValue("id")); err != nil {
		writeStorageError(w, err)
		return
	}
	s.invalidateDashboard(s.ownerID(r))
	w.WriteHeader(http.StatusNoContent)
}
