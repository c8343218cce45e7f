package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

// Sync states an expense row moves through on its way to the backup sheet.
const (
	SyncPending = "pending"
	SyncSynced  = "synced"
	SyncError   = "error"
)

// PendingSyncExpense carries the minimal data needed for sync queue messages.
type PendingSyncExpense struct {
	ID        string
	Version   int64
	CreatedAt time.Time
}

// CreateExpense inserts a new expense with sync_status 'pending' and returns
// it with its generated ID.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	e.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, owner_id, date, description, amount_cents, category)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.OwnerID, e.Date.String(), e.Description, e.Amount.Cents, e.Category)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return e, nil
}

// GetExpense retrieves a single expense by ID.
func (r *SQLiteRepository) GetExpense(ctx context.Context, ownerID, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, date, description, amount_cents, category
		FROM expenses WHERE id = ? AND owner_id = ?`, id, ownerID)
	e, err := scanExpense(row)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense by id: %w", err)
	}
	return e, nil
}

// ListExpenses returns all expenses for an owner, newest first.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, ownerID string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, date, description, amount_cents, category
		FROM expenses WHERE owner_id = ?
		ORDER BY date DESC, created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

// ListExpensesByMonth returns expenses within a calendar month, newest first.
func (r *SQLiteRepository) ListExpensesByMonth(ctx context.Context, ownerID string, year, month int) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, date, description, amount_cents, category
		FROM expenses
		WHERE owner_id = ? AND strftime('%Y', date) = ? AND strftime('%m', date) = ?
		ORDER BY date DESC, created_at DESC`,
		ownerID, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
	if err != nil {
		return nil, fmt.Errorf("list expenses by month: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

// DeleteExpense removes an expense. Missing rows report ErrNotFound.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetMonthTotal sums expense amounts over one calendar month.
func (r *SQLiteRepository) GetMonthTotal(ctx context.Context, ownerID string, year, month int) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0) FROM expenses
		WHERE owner_id = ? AND strftime('%Y', date) = ? AND strftime('%m', date) = ?`,
		ownerID, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month)).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("get month total: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// GetCategorySums breaks a month's total down per category, largest first.
func (r *SQLiteRepository) GetCategorySums(ctx context.Context, ownerID string, year, month int) ([]core.CategoryAmount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents) AS total FROM expenses
		WHERE owner_id = ? AND strftime('%Y', date) = ? AND strftime('%m', date) = ?
		GROUP BY category ORDER BY total DESC`,
		ownerID, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
	if err != nil {
		return nil, fmt.Errorf("get category sums: %w", err)
	}
	defer rows.Close()

	var sums []core.CategoryAmount
	for rows.Next() {
		var ca core.CategoryAmount
		if err := rows.Scan(&ca.Name, &ca.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		sums = append(sums, ca)
	}
	return sums, rows.Err()
}

// GetPendingSyncExpenses returns expenses that still need to reach the backup
// sheet, oldest first.
func (r *SQLiteRepository) GetPendingSyncExpenses(ctx context.Context, limit int) ([]PendingSyncExpense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, version, created_at FROM expenses
		WHERE sync_status IN (?, ?)
		ORDER BY created_at ASC LIMIT ?`,
		SyncPending, SyncError, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync expenses: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncExpense
	for rows.Next() {
		var p PendingSyncExpense
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Version, &createdAt); err != nil {
			return nil, fmt.Errorf("scan pending sync expense: %w", err)
		}
		p.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// GetExpenseForSync loads an expense regardless of owner; the sync worker
// operates on IDs from the queue, not on request-scoped owners.
func (r *SQLiteRepository) GetExpenseForSync(ctx context.Context, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, date, description, amount_cents, category
		FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense for sync: %w", err)
	}
	return e, nil
}

// MarkExpenseSynced marks an expense as successfully backed up.
func (r *SQLiteRepository) MarkExpenseSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET sync_status = ?, updated_at = datetime('now')
		WHERE id = ?`, SyncSynced, id)
	if err != nil {
		return fmt.Errorf("mark expense synced: %w", err)
	}

	slog.InfoContext(ctx, "Expense marked as synced", "id", id)
	return nil
}

// MarkExpenseSyncError marks an expense as having failed backup.
func (r *SQLiteRepository) MarkExpenseSyncError(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET sync_status = ?, updated_at = datetime('now')
		WHERE id = ?`, SyncError, id)
	if err != nil {
		return fmt.Errorf("mark expense sync error: %w", err)
	}

	slog.WarnContext(ctx, "Expense marked with sync error", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	var date string
	err := row.Scan(&e.ID, &e.OwnerID, &date, &e.Description, &e.Amount.Cents, &e.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, err
	}
	e.Date, err = parseDate(date)
	if err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func collectExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse stored date %q: %w", s, err)
	}
	return core.Today(t), nil
}
