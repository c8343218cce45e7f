package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/storage"
)

// SyncPublisher enqueues expense backup requests.
type SyncPublisher interface {
	PublishExpenseSync(ctx context.Context, id string, version int64) error
}

// ExpenseService orchestrates expense operations across SQLite and AMQP.
// SQLite is the source of truth; the queue publish is best effort and a
// broker outage never fails the request.
type ExpenseService struct {
	storage   *storage.SQLiteRepository
	publisher SyncPublisher
}

func NewExpenseService(storage *storage.SQLiteRepository, publisher SyncPublisher) *ExpenseService {
	return &ExpenseService{
		storage:   storage,
		publisher: publisher,
	}
}

// CreateExpense saves an expense locally and publishes a sync message.
func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	created, err := s.storage.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	// Version 1 for a new expense.
	if err := s.publishSyncMessage(ctx, created.ID, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", created.ID, "error", err)
		// Don't fail the request - expense is saved locally
	}

	return created, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, ownerID, id string) (core.Expense, error) {
	return s.storage.GetExpense(ctx, ownerID, id)
}

func (s *ExpenseService) ListExpenses(ctx context.Context, ownerID string) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx, ownerID)
}

func (s *ExpenseService) ListExpensesByMonth(ctx context.Context, ownerID string, year, month int) ([]core.Expense, error) {
	return s.storage.ListExpensesByMonth(ctx, ownerID, year, month)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, ownerID, id string) error {
	return s.storage.DeleteExpense(ctx, ownerID, id)
}

// MonthOverview aggregates one calendar month of spending.
func (s *ExpenseService) MonthOverview(ctx context.Context, ownerID string, year, month int) (core.MonthOverview, error) {
	overview := core.MonthOverview{
		Year:  year,
		Month: month,
	}

	total, err := s.storage.GetMonthTotal(ctx, ownerID, year, month)
	if err != nil {
		return overview, fmt.Errorf("get month total: %w", err)
	}
	overview.Total = total

	sums, err := s.storage.GetCategorySums(ctx, ownerID, year, month)
	if err != nil {
		return overview, fmt.Errorf("get category sums: %w", err)
	}
	overview.ByCategory = sums

	return overview, nil
}

func (s *ExpenseService) publishSyncMessage(ctx context.Context, id string, version int64) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping sync message")
		return nil
	}

	return s.publisher.PublishExpenseSync(ctx, id, version)
}

// Close closes the underlying storage.
func (s *ExpenseService) Close() error {
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			return fmt.Errorf("close expense service: %w", err)
		}
	}
	return nil
}
