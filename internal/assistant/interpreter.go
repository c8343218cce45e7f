package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

// Ports to the two external capabilities. The interpreter issues at most one
// outbound call per utterance: a single creation or a single completion.
type (
	ExpenseCreator interface {
		CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	}

	GoalCreator interface {
		CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	}

	Completer interface {
		Complete(ctx context.Context, prompt, contextTag string) (string, error)
	}
)

// completionContextTag accompanies every delegated utterance.
const completionContextTag = "financial_assistant"

// Reply strings. Failure paths always resolve to one of the fixed strings;
// tests assert on them verbatim.
const (
	replyExpenseCreated  = "✅ Gasto adicionado com sucesso! $%s em %s - %s"
	replyExpenseFailed   = "❌ Erro ao adicionar gasto. Tente novamente."
	replyGoalCreated     = "✅ Meta criada com sucesso! Objetivo de economizar $%s"
	replyGoalFailed      = "❌ Erro ao criar meta. Tente novamente."
	replyFallback        = "Desculpe, ocorreu um erro. Tente novamente ou use comandos simples como 'adicionar 50 reais em gastos médicos'."
	replyEmptyCompletion = "Desculpe, não consegui processar sua solicitação."
)

// goalTitleFormat embeds the extracted amount in the generated goal title.
const goalTitleFormat = "Meta de economia de $%s"

// Interpreter classifies utterances and dispatches the resulting action.
// It never returns an error: creation and completion failures are converted
// to user-facing replies. Calls are independent; there is no shared state,
// no retry, and no deduplication of repeated commands.
type Interpreter struct {
	expenses ExpenseCreator
	goals    GoalCreator
	complete Completer
	ownerID  string
	now      func() core.Date
}

func New(expenses ExpenseCreator, goals GoalCreator, complete Completer, ownerID string) *Interpreter {
	return &Interpreter{
		expenses: expenses,
		goals:    goals,
		complete: complete,
		ownerID:  ownerID,
		now:      core.TodayNow,
	}
}

// Interpret handles one utterance end to end and returns the assistant's
// reply text.
func (i *Interpreter) Interpret(ctx context.Context, utterance string) string {
	action := Classify(utterance)
	slog.DebugContext(ctx, "Utterance classified",
		"action", action.Kind.String(),
		"utterance_len", len(utterance))

	switch action.Kind {
	case ActionCreateExpense:
		return i.createExpense(ctx, action)
	case ActionCreateGoal:
		return i.createGoal(ctx, action)
	default:
		return i.delegate(ctx, utterance)
	}
}

func (i *Interpreter) createExpense(ctx context.Context, action Action) string {
	expense := core.Expense{
		OwnerID:     i.ownerID,
		Date:        i.now(),
		Description: action.Description,
		Amount:      core.Money{Cents: action.AmountCents},
		Category:    action.Category,
	}
	if _, err := i.expenses.CreateExpense(ctx, expense); err != nil {
		slog.WarnContext(ctx, "Assistant expense creation failed",
			"error", err,
			"amount_cents", action.AmountCents,
			"category", action.Category)
		return replyExpenseFailed
	}
	return fmt.Sprintf(replyExpenseCreated,
		formatAmount(action.AmountCents), action.Category, action.Description)
}

func (i *Interpreter) createGoal(ctx context.Context, action Action) string {
	amount := formatAmount(action.AmountCents)
	goal := core.Goal{
		OwnerID:       i.ownerID,
		Title:         fmt.Sprintf(goalTitleFormat, amount),
		TargetAmount:  core.Money{Cents: action.AmountCents},
		CurrentAmount: core.Money{Cents: 0},
		Category:      GoalCategory,
		Deadline:      core.Date{Time: i.now().AddDate(0, 0, GoalDeadlineDays)},
	}
	if _, err := i.goals.CreateGoal(ctx, goal); err != nil {
		slog.WarnContext(ctx, "Assistant goal creation failed",
			"error", err,
			"target_cents", action.AmountCents)
		return replyGoalFailed
	}
	return fmt.Sprintf(replyGoalCreated, amount)
}

func (i *Interpreter) delegate(ctx context.Context, utterance string) string {
	text, err := i.complete.Complete(ctx, utterance, completionContextTag)
	if err != nil {
		slog.WarnContext(ctx, "Completion service failed", "error", err)
		return replyFallback
	}
	if strings.TrimSpace(text) == "" {
		return replyEmptyCompletion
	}
	return text
}

// formatAmount renders cents the way the assistant quotes them back:
// a plain decimal with no trailing zeros ("50", "12.5").
func formatAmount(cents int64) string {
	if cents%100 == 0 {
		return strconv.FormatInt(cents/100, 10)
	}
	return strconv.FormatFloat(float64(cents)/100, 'f', -1, 64)
}
