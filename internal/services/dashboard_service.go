package services

import (
	"context"
	"fmt"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/storage"
)

// Dashboard is the single-screen summary: this month's spending, goal
// progress, and the owner's balance sheet.
type Dashboard struct {
	Month    core.MonthOverview
	Goals    []core.GoalProgress
	NetWorth core.NetWorth
}

// DashboardService aggregates storage reads into one dashboard view.
type DashboardService struct {
	expenses *ExpenseService
	storage  *storage.SQLiteRepository
}

func NewDashboardService(expenses *ExpenseService, storage *storage.SQLiteRepository) *DashboardService {
	return &DashboardService{
		expenses: expenses,
		storage:  storage,
	}
}

// Build assembles the dashboard for one owner and month.
func (s *DashboardService) Build(ctx context.Context, ownerID string, year, month int) (Dashboard, error) {
	var d Dashboard

	overview, err := s.expenses.MonthOverview(ctx, ownerID, year, month)
	if err != nil {
		return Dashboard{}, fmt.Errorf("month overview: %w", err)
	}
	d.Month = overview

	goals, err := s.storage.ListGoals(ctx, ownerID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list goals: %w", err)
	}
	for _, g := range goals {
		d.Goals = append(d.Goals, core.GoalProgress{Goal: g, Percent: core.Progress(g)})
	}

	nw, err := s.netWorth(ctx, ownerID)
	if err != nil {
		return Dashboard{}, err
	}
	d.NetWorth = nw

	return d, nil
}

func (s *DashboardService) netWorth(ctx context.Context, ownerID string) (core.NetWorth, error) {
	var nw core.NetWorth

	assets, err := s.storage.ListAssets(ctx, ownerID)
	if err != nil {
		return nw, fmt.Errorf("list assets: %w", err)
	}
	for _, a := range assets {
		nw.Assets.Cents += a.Value.Cents
	}

	liabilities, err := s.storage.ListLiabilities(ctx, ownerID)
	if err != nil {
		return nw, fmt.Errorf("list liabilities: %w", err)
	}
	for _, l := range liabilities {
		nw.Liabilities.Cents += l.Balance.Cents
	}

	investments, err := s.storage.ListInvestments(ctx, ownerID)
	if err != nil {
		return nw, fmt.Errorf("list investments: %w", err)
	}
	for _, inv := range investments {
		nw.Portfolio = nw.Portfolio.Add(inv.MarketValue())
	}

	return nw, nil
}
