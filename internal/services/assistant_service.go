package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/assistant"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/storage"
)

// AssistantService runs the chat assistant: it interprets each message,
// persists the exchange, and returns the reply.
type AssistantService struct {
	expenses *ExpenseService
	storage  *storage.SQLiteRepository
	complete assistant.Completer
}

func NewAssistantService(expenses *ExpenseService, storage *storage.SQLiteRepository, complete assistant.Completer) *AssistantService {
	return &AssistantService{
		expenses: expenses,
		storage:  storage,
		complete: complete,
	}
}

// HandleMessage interprets one chat message for an owner and records the
// exchange in chat history. The reply is always non-empty; interpretation
// never surfaces errors to the caller.
func (s *AssistantService) HandleMessage(ctx context.Context, ownerID, message string) (string, error) {
	interp := assistant.New(s.expenses, s.storage, s.complete, ownerID)
	reply := interp.Interpret(ctx, message)

	if _, err := s.storage.AppendChatEntry(ctx, core.ChatEntry{
		OwnerID:  ownerID,
		Message:  message,
		Response: reply,
	}); err != nil {
		// History is best effort; the user still gets their reply.
		slog.ErrorContext(ctx, "Failed to record chat entry",
			"owner_id", ownerID, "error", err)
	}

	return reply, nil
}

// History returns the most recent exchanges for an owner.
func (s *AssistantService) History(ctx context.Context, ownerID string, limit int) ([]core.ChatEntry, error) {
	entries, err := s.storage.ListChatEntries(ctx, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}
	return entries, nil
}
