package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

// Share quantities and prices are stored as decimal strings, never as floats,
// so fractional positions round-trip exactly.

// CreateInvestment inserts a new position and returns it with its generated ID.
func (r *SQLiteRepository) CreateInvestment(ctx context.Context, inv core.Investment) (core.Investment, error) {
	if err := inv.Validate(); err != nil {
		return core.Investment{}, err
	}

	inv.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO investments (id, owner_id, ticker, name, shares, price, sector, purchase_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.OwnerID, inv.Ticker, inv.Name,
		inv.Shares.String(), inv.Price.String(), inv.Sector, inv.PurchaseDate.String())
	if err != nil {
		return core.Investment{}, fmt.Errorf("create investment: %w", err)
	}
	return inv, nil
}

// GetInvestment retrieves a single position by ID.
func (r *SQLiteRepository) GetInvestment(ctx context.Context, ownerID, id string) (core.Investment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, ticker, name, shares, price, sector, purchase_date
		FROM investments WHERE id = ? AND owner_id = ?`, id, ownerID)
	inv, err := scanInvestment(row)
	if err != nil {
		return core.Investment{}, fmt.Errorf("get investment by id: %w", err)
	}
	return inv, nil
}

// ListInvestments returns all positions for an owner, newest first.
func (r *SQLiteRepository) ListInvestments(ctx context.Context, ownerID string) ([]core.Investment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, ticker, name, shares, price, sector, purchase_date
		FROM investments WHERE owner_id = ?
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var investments []core.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

// DeleteInvestment removes a position. Missing rows report ErrNotFound.
func (r *SQLiteRepository) DeleteInvestment(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM investments WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete investment rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInvestment(row rowScanner) (core.Investment, error) {
	var inv core.Investment
	var shares, price, purchaseDate string
	var sector sql.NullString
	err := row.Scan(&inv.ID, &inv.OwnerID, &inv.Ticker, &inv.Name, &shares, &price, &sector, &purchaseDate)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Investment{}, ErrNotFound
	}
	if err != nil {
		return core.Investment{}, err
	}
	if inv.Shares, err = decimal.NewFromString(shares); err != nil {
		return core.Investment{}, fmt.Errorf("parse stored shares %q: %w", shares, err)
	}
	if inv.Price, err = decimal.NewFromString(price); err != nil {
		return core.Investment{}, fmt.Errorf("parse stored price %q: %w", price, err)
	}
	inv.Sector = sector.String
	if inv.PurchaseDate, err = parseDate(purchaseDate); err != nil {
		return core.Investment{}, err
	}
	return inv, nil
}
