package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

// UpsertProfile creates the profile row or updates it in place. The profile
// ID doubles as the owner ID everywhere else.
func (r *SQLiteRepository) UpsertProfile(ctx context.Context, p core.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, full_name, currency)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			full_name = excluded.full_name,
			currency = excluded.currency,
			updated_at = datetime('now')`,
		p.ID, p.Email, p.FullName, p.Currency)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by its owner ID.
func (r *SQLiteRepository) GetProfile(ctx context.Context, id string) (core.Profile, error) {
	var p core.Profile
	var fullName sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, currency FROM profiles WHERE id = ?`, id).
		Scan(&p.ID, &p.Email, &fullName, &p.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Profile{}, ErrNotFound
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	p.FullName = fullName.String
	return p, nil
}
