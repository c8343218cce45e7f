package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

// AppendChatEntry records one assistant exchange.
func (r *SQLiteRepository) AppendChatEntry(ctx context.Context, entry core.ChatEntry) (core.ChatEntry, error) {
	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_history (id, owner_id, message, response, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.OwnerID, entry.Message, entry.Response,
		entry.CreatedAt.Format("2006-01-02 15:04:05"))
	if err != nil {
		return core.ChatEntry{}, fmt.Errorf("append chat entry: %w", err)
	}
	return entry, nil
}

// ListChatEntries returns the most recent exchanges for an owner, newest
// first, capped at limit.
func (r *SQLiteRepository) ListChatEntries(ctx context.Context, ownerID string, limit int) ([]core.ChatEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, message, response, created_at
		FROM chat_history WHERE owner_id = ?
		ORDER BY created_at DESC LIMIT ?`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat entries: %w", err)
	}
	defer rows.Close()

	var entries []core.ChatEntry
	for rows.Next() {
		var e core.ChatEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Message, &e.Response, &createdAt); err != nil {
			return nil, fmt.Errorf("scan chat entry: %w", err)
		}
		e.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
