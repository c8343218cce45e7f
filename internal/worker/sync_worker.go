package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/amqp"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/sheets"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/storage"
)

// Consumer delivers expense sync messages until ctx is cancelled.
type Consumer interface {
	ConsumeExpenseSync(ctx context.Context, handler func(*amqp.ExpenseSyncMessage) error) error
}

// SyncWorker copies expenses from SQLite to the backup sheet. It consumes
// queue messages for fast-path syncs and periodically sweeps the pending
// backlog to recover from lost messages or downtime.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	backup    sheets.BackupWriter
	consumer  Consumer
	batchSize int
	interval  time.Duration
}

func NewSyncWorker(storage *storage.SQLiteRepository, backup sheets.BackupWriter, consumer Consumer, batchSize int, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		backup:    backup,
		consumer:  consumer,
		batchSize: batchSize,
		interval:  interval,
	}
}

// Run blocks until ctx is cancelled, driving the consumer and the periodic
// backlog sweep concurrently.
func (w *SyncWorker) Run(ctx context.Context) error {
	if err := w.StartupSyncCheck(ctx); err != nil {
		slog.WarnContext(ctx, "Startup sync check failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if w.consumer != nil {
		g.Go(func() error {
			err := w.consumer.ConsumeExpenseSync(ctx, func(msg *amqp.ExpenseSyncMessage) error {
				return w.HandleSyncMessage(ctx, msg)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := w.ProcessPendingBacklog(ctx); err != nil {
					slog.ErrorContext(ctx, "Backlog sweep failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

// HandleSyncMessage processes one expense sync message from the queue.
// A returned error requeues the message.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.ExpenseSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	expense, err := w.storage.GetExpenseForSync(ctx, msg.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted before the worker got to it; nothing to back up.
			slog.WarnContext(ctx, "Expense gone before sync, dropping message", "id", msg.ID)
			return nil
		}
		return fmt.Errorf("get expense from storage: %w", err)
	}

	if err := w.syncExpense(ctx, expense.ID, expense); err != nil {
		return fmt.Errorf("sync expense to backup: %w", err)
	}

	return nil
}

// ProcessPendingBacklog syncs expenses the queue path missed. This is the
// recovery mechanism for lost messages.
func (w *SyncWorker) ProcessPendingBacklog(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncExpenses(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending expenses: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending expenses", "count", len(pending))

	for _, p := range pending {
		expense, err := w.storage.GetExpenseForSync(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get expense", "id", p.ID, "error", err)
			if err := w.storage.MarkExpenseSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.syncExpense(ctx, p.ID, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to sync expense", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck flushes pending expenses accumulated while the worker was
// down. It uses a larger batch than the periodic sweep.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncExpenses(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending expenses for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending expenses found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending expenses on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		expense, err := w.storage.GetExpenseForSync(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get expense for startup sync",
				"id", p.ID, "error", err)
			if err := w.storage.MarkExpenseSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			errorCount++
			continue
		}

		if err := w.syncExpense(ctx, p.ID, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to sync expense during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}

		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) syncExpense(ctx context.Context, id string, expense core.Expense) error {
	ref, err := w.backup.Append(ctx, expense)
	if err != nil {
		if markErr := w.storage.MarkExpenseSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to backup: %w", err)
	}

	if err := w.storage.MarkExpenseSynced(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
		// Don't return error here - the sync actually worked
	}

	slog.InfoContext(ctx, "Successfully synced expense",
		"id", id,
		"sheets_ref", ref,
		"description", expense.Description,
		"amount_cents", expense.Amount.Cents)

	return nil
}
