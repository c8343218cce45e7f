package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

// CreateGoal inserts a new savings goal and returns it with its generated ID.
func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	g.ID = uuid.NewString()
	var deadline any
	if !g.Deadline.IsEmpty() {
		deadline = g.Deadline.String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, owner_id, title, target_amount_cents, current_amount_cents, category, deadline, color)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.OwnerID, g.Title, g.TargetAmount.Cents, g.CurrentAmount.Cents, g.Category, deadline, g.Color)
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return g, nil
}

// GetGoal retrieves a single goal by ID.
func (r *SQLiteRepository) GetGoal(ctx context.Context, ownerID, id string) (core.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, target_amount_cents, current_amount_cents, category, deadline, color
		FROM goals WHERE id = ? AND owner_id = ?`, id, ownerID)
	g, err := scanGoal(row)
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal by id: %w", err)
	}
	return g, nil
}

// ListGoals returns all goals for an owner, newest first.
func (r *SQLiteRepository) ListGoals(ctx context.Context, ownerID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, target_amount_cents, current_amount_cents, category, deadline, color
		FROM goals WHERE owner_id = ?
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateGoalAmount sets the saved-so-far amount on a goal.
func (r *SQLiteRepository) UpdateGoalAmount(ctx context.Context, ownerID, id string, current core.Money) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals SET current_amount_cents = ?, updated_at = datetime('now')
		WHERE id = ? AND owner_id = ?`, current.Cents, id, ownerID)
	if err != nil {
		return fmt.Errorf("update goal amount: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update goal rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGoal removes a goal. Missing rows report ErrNotFound.
func (r *SQLiteRepository) DeleteGoal(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete goal rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanGoal(row rowScanner) (core.Goal, error) {
	var g core.Goal
	var deadline sql.NullString
	var color sql.NullString
	err := row.Scan(&g.ID, &g.OwnerID, &g.Title, &g.TargetAmount.Cents, &g.CurrentAmount.Cents, &g.Category, &deadline, &color)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, ErrNotFound
	}
	if err != nil {
		return core.Goal{}, err
	}
	if deadline.Valid && deadline.String != "" {
		g.Deadline, err = parseDate(deadline.String)
		if err != nil {
			return core.Goal{}, err
		}
	}
	g.Color = color.String
	return g, nil
}
