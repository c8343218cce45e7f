package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/services"
)

type dashboardResponse struct {
	Year       int                     `json:"year"`
	Month      int                     `json:"month"`
	TotalCents int64                   `json:"total_cents"`
	ByCategory []categoryTotalResponse `json:"by_category"`
	Goals      []goalResponse          `json:"goals"`
	NetWorth   netWorthResponse        `json:"net_worth"`
}

type categoryTotalResponse struct {
	Name       string `json:"name"`
	TotalCents int64  `json:"total_cents"`
}

type netWorthResponse struct {
	AssetsCents      int64  `json:"assets_cents"`
	LiabilitiesCents int64  `json:"liabilities_cents"`
	Portfolio        string `json:"portfolio"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	owner := s.ownerID(r)
	year, month := parseYearMonth(r)

	key := dashboardCacheKey(owner, year, month)
	d, ok := s.dashboardCache.Get(key)
	if !ok {
		var err error
		d, err = s.dashboard.Build(r.Context(), owner, year, month)
		if err != nil {
			writeStorageError(w, err)
			return
		}
		s.dashboardCache.Set(key, d)
	}

	writeJSON(w, http.StatusOK, toDashboardResponse(d))
}

func toDashboardResponse(d services.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		Year:       d.Month.Year,
		Month:      d.Month.Month,
		TotalCents: d.Month.Total.Cents,
		ByCategory: make([]categoryTotalResponse, 0, len(d.Month.ByCategory)),
		Goals:      make([]goalResponse, 0, len(d.Goals)),
		NetWorth: netWorthResponse{
			AssetsCents:      d.NetWorth.Assets.Cents,
			LiabilitiesCents: d.NetWorth.Liabilities.Cents,
			Portfolio:        d.NetWorth.Portfolio.String(),
		},
	}
	for _, ca := range d.Month.ByCategory {
		resp.ByCategory = append(resp.ByCategory, categoryTotalResponse{
			Name:       ca.Name,
			TotalCents: ca.Amount.Cents,
		})
	}
	for _, gp := range d.Goals {
		resp.Goals = append(resp.Goals, toGoalResponse(gp.Goal))
	}
	return resp
}

func dashboardCacheKey(owner string, year, month int) string {
	return fmt.Sprintf("%s:%04d-%02d", owner, year, month)
}

// invalidateDashboard drops the current month's cached dashboard for an
// owner. Writes to other months are served stale until the TTL expires.
func (s *Server) invalidateDashboard(owner string) {
	now := time.Now()
	s.dashboardCache.Delete(dashboardCacheKey(owner, now.Year(), int(now.Month())))
}
