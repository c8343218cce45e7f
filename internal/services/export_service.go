package services

import (
	"context"
	"fmt"
	"time"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/storage"
)

// Snapshot is the portable JSON form of one owner's data.
type Snapshot struct {
	ExportedAt  time.Time         `json:"exported_at"`
	OwnerID     string            `json:"owner_id"`
	Profile     *core.Profile     `json:"profile,omitempty"`
	Expenses    []core.Expense    `json:"expenses"`
	Goals       []core.Goal       `json:"goals"`
	Investments []core.Investment `json:"investments"`
	Assets      []core.Asset      `json:"assets"`
	Liabilities []core.Liability  `json:"liabilities"`
}

// ImportResult counts what an import actually wrote.
type ImportResult struct {
	Expenses    int `json:"expenses"`
	Goals       int `json:"goals"`
	Investments int `json:"investments"`
	Assets      int `json:"assets"`
	Liabilities int `json:"liabilities"`
}

// ExportService moves whole-owner snapshots in and out of storage.
type ExportService struct {
	storage *storage.SQLiteRepository
}

func NewExportService(storage *storage.SQLiteRepository) *ExportService {
	return &ExportService{storage: storage}
}

// Export collects everything an owner has into one snapshot.
func (s *ExportService) Export(ctx context.Context, ownerID string) (Snapshot, error) {
	snap := Snapshot{
		ExportedAt: time.Now().UTC(),
		OwnerID:    ownerID,
	}

	var err error
	if snap.Expenses, err = s.storage.ListExpenses(ctx, ownerID); err != nil {
		return Snapshot{}, fmt.Errorf("export expenses: %w", err)
	}
	if snap.Goals, err = s.storage.ListGoals(ctx, ownerID); err != nil {
		return Snapshot{}, fmt.Errorf("export goals: %w", err)
	}
	if snap.Investments, err = s.storage.ListInvestments(ctx, ownerID); err != nil {
		return Snapshot{}, fmt.Errorf("export investments: %w", err)
	}
	if snap.Assets, err = s.storage.ListAssets(ctx, ownerID); err != nil {
		return Snapshot{}, fmt.Errorf("export assets: %w", err)
	}
	if snap.Liabilities, err = s.storage.ListLiabilities(ctx, ownerID); err != nil {
		return Snapshot{}, fmt.Errorf("export liabilities: %w", err)
	}

	if profile, err := s.storage.GetProfile(ctx, ownerID); err == nil {
		snap.Profile = &profile
	}

	return snap, nil
}

// Import writes a snapshot into storage for the given owner. Records get
// fresh IDs; the snapshot's owner field is overridden so an exported file
// can be imported under a different owner.
func (s *ExportService) Import(ctx context.Context, ownerID string, snap Snapshot) (ImportResult, error) {
	var res ImportResult

	for _, e := range snap.Expenses {
		e.OwnerID = ownerID
		if _, err := s.storage.CreateExpense(ctx, e); err != nil {
			return res, fmt.Errorf("import expense %q: %w", e.Description, err)
		}
		res.Expenses++
	}
	for _, g := range snap.Goals {
		g.OwnerID = ownerID
		if _, err := s.storage.CreateGoal(ctx, g); err != nil {
			return res, fmt.Errorf("import goal %q: %w", g.Title, err)
		}
		res.Goals++
	}
	for _, inv := range snap.Investments {
		inv.OwnerID = ownerID
		if _, err := s.storage.CreateInvestment(ctx, inv); err != nil {
			return res, fmt.Errorf("import investment %q: %w", inv.Ticker, err)
		}
		res.Investments++
	}
	for _, a := range snap.Assets {
		a.OwnerID = ownerID
		if _, err := s.storage.CreateAsset(ctx, a); err != nil {
			return res, fmt.Errorf("import asset %q: %w", a.Name, err)
		}
		res.Assets++
	}
	for _, l := range snap.Liabilities {
		l.OwnerID = ownerID
		if _, err := s.storage.CreateLiability(ctx, l); err != nil {
			return res, fmt.Errorf("import liability %q: %w", l.Name, err)
		}
		res.Liabilities++
	}

	if snap.Profile != nil {
		p := *snap.Profile
		p.ID = ownerID
		if err := s.storage.UpsertProfile(ctx, p); err != nil {
			return res, fmt.Errorf("import profile: %w", err)
		}
	}

	return res, nil
}
