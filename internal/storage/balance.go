package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

// CreateAsset inserts a new asset and returns it with its generated ID.
func (r *SQLiteRepository) CreateAsset(ctx context.Context, a core.Asset) (core.Asset, error) {
	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}

	a.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assets (id, owner_id, name, type, value_cents, description)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.OwnerID, a.Name, a.Type, a.Value.Cents, a.Description)
	if err != nil {
		return core.Asset{}, fmt.Errorf("create asset: %w", err)
	}
	return a, nil
}

// ListAssets returns all assets for an owner.
func (r *SQLiteRepository) ListAssets(ctx context.Context, ownerID string) ([]core.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, type, value_cents, description
		FROM assets WHERE owner_id = ?
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []core.Asset
	for rows.Next() {
		var a core.Asset
		var desc sql.NullString
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Type, &a.Value.Cents, &desc); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a.Description = desc.String
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// DeleteAsset removes an asset. Missing rows report ErrNotFound.
func (r *SQLiteRepository) DeleteAsset(ctx context.Context, ownerID, id string) error {
	return r.deleteOwned(ctx, "assets", ownerID, id)
}

// CreateLiability inserts a new liability and returns it with its generated ID.
func (r *SQLiteRepository) CreateLiability(ctx context.Context, l core.Liability) (core.Liability, error) {
	if err := l.Validate(); err != nil {
		return core.Liability{}, err
	}

	l.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO liabilities (id, owner_id, name, type, balance_cents, interest_rate, monthly_payment_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.OwnerID, l.Name, l.Type, l.Balance.Cents, l.InterestRate.String(), l.MonthlyPayment.Cents)
	if err != nil {
		return core.Liability{}, fmt.Errorf("create liability: %w", err)
	}
	return l, nil
}

// ListLiabilities returns all liabilities for an owner.
func (r *SQLiteRepository) ListLiabilities(ctx context.Context, ownerID string) ([]core.Liability, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, type, balance_cents, interest_rate, monthly_payment_cents
		FROM liabilities WHERE owner_id = ?
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list liabilities: %w", err)
	}
	defer rows.Close()

	var liabilities []core.Liability
	for rows.Next() {
		var l core.Liability
		var rate sql.NullString
		var monthly sql.NullInt64
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Name, &l.Type, &l.Balance.Cents, &rate, &monthly); err != nil {
			return nil, fmt.Errorf("scan liability: %w", err)
		}
		if rate.Valid && rate.String != "" {
			l.InterestRate, err = decimal.NewFromString(rate.String)
			if err != nil {
				return nil, fmt.Errorf("parse stored interest rate %q: %w", rate.String, err)
			}
		}
		l.MonthlyPayment = core.Money{Cents: monthly.Int64}
		liabilities = append(liabilities, l)
	}
	return liabilities, rows.Err()
}

// DeleteLiability removes a liability. Missing rows report ErrNotFound.
func (r *SQLiteRepository) DeleteLiability(ctx context.Context, ownerID, id string) error {
	return r.deleteOwned(ctx, "liabilities", ownerID, id)
}

func (r *SQLiteRepository) deleteOwned(ctx context.Context, table, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND owner_id = ?`, table), id, ownerID)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s rows affected: %w", table, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
