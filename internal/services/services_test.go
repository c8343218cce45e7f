package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/storage"
)

type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) PublishExpenseSync(_ context.Context, id string, _ int64) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, id)
	return nil
}

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func newTestStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testExpense(owner string) core.Expense {
	return core.Expense{
		OwnerID:     owner,
		Date:        core.NewDate(2026, 9, 1),
		Description: "farmácia",
		Amount:      core.Money{Cents: 5000},
		Category:    core.CategorySaude,
	}
}

func TestExpenseServiceCreatePublishes(t *testing.T) {
	repo := newTestStorage(t)
	pub := &fakePublisher{}
	svc := NewExpenseService(repo, pub)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, testExpense("o"))
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}
	if len(pub.published) != 1 || pub.published[0] != created.ID {
		t.Errorf("published = %v, want [%s]", pub.published, created.ID)
	}
}

func TestExpenseServiceCreateSurvivesPublishFailure(t *testing.T) {
	repo := newTestStorage(t)
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewExpenseService(repo, pub)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, testExpense("o"))
	if err != nil {
		t.Fatalf("CreateExpense() should not fail when publish fails, got %v", err)
	}

	// The expense must still be in storage.
	if _, err := repo.GetExpense(ctx, "o", created.ID); err != nil {
		t.Errorf("expense missing from storage after publish failure: %v", err)
	}
}

func TestExpenseServiceCreateWithoutPublisher(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewExpenseService(repo, nil)

	if _, err := svc.CreateExpense(context.Background(), testExpense("o")); err != nil {
		t.Fatalf("CreateExpense() without publisher error = %v", err)
	}
}

func TestExpenseServiceMonthOverview(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewExpenseService(repo, &fakePublisher{})
	ctx := context.Background()

	for _, e := range []core.Expense{
		{OwnerID: "o", Date: core.NewDate(2026, 9, 3), Description: "mercado", Amount: core.Money{Cents: 8000}, Category: core.CategoryAlimentacao},
		{OwnerID: "o", Date: core.NewDate(2026, 9, 10), Description: "uber", Amount: core.Money{Cents: 2500}, Category: core.CategoryTransporte},
	} {
		if _, err := svc.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense() error = %v", err)
		}
	}

	overview, err := svc.MonthOverview(ctx, "o", 2026, 9)
	if err != nil {
		t.Fatalf("MonthOverview() error = %v", err)
	}
	if overview.Total.Cents != 10500 {
		t.Errorf("Total = %d, want 10500", overview.Total.Cents)
	}
	if len(overview.ByCategory) != 2 {
		t.Errorf("ByCategory = %v, want 2 entries", overview.ByCategory)
	}
}

func TestAssistantServiceCreatesExpenseAndRecordsHistory(t *testing.T) {
	repo := newTestStorage(t)
	expenses := NewExpenseService(repo, &fakePublisher{})
	completer := &fakeCompleter{}
	svc := NewAssistantService(expenses, repo, completer)
	ctx := context.Background()

	reply, err := svc.HandleMessage(ctx, "o", "adicionar 50 reais em gastos médicos")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if reply == "" {
		t.Fatal("HandleMessage() returned empty reply")
	}
	if completer.calls != 0 {
		t.Errorf("completion called %d times for a strict command, want 0", completer.calls)
	}

	list, err := repo.ListExpenses(ctx, "o")
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(list) != 1 || list[0].Amount.Cents != 5000 || list[0].Category != core.CategorySaude {
		t.Errorf("stored expense = %+v, want 5000 cents in Saúde", list)
	}

	history, err := svc.History(ctx, "o", 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 || history[0].Message != "adicionar 50 reais em gastos médicos" || history[0].Response != reply {
		t.Errorf("history = %+v", history)
	}
}

func TestAssistantServiceRejectsOverlongDescription(t *testing.T) {
	repo := newTestStorage(t)
	expenses := NewExpenseService(repo, &fakePublisher{})
	svc := NewAssistantService(expenses, repo, &fakeCompleter{})
	ctx := context.Background()

	// Trailing descriptions run through Expense.Validate like any other
	// write, so past 200 characters the command fails instead of inserting.
	msg := "adicionar 50 reais em " + strings.Repeat("x", 201)
	reply, err := svc.HandleMessage(ctx, "o", msg)
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if !strings.Contains(reply, "Erro ao adicionar gasto") {
		t.Errorf("reply = %q, want the expense failure reply", reply)
	}

	list, err := repo.ListExpenses(ctx, "o")
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("stored expenses = %d, want 0", len(list))
	}
}

func TestAssistantServiceDelegates(t *testing.T) {
	repo := newTestStorage(t)
	expenses := NewExpenseService(repo, &fakePublisher{})
	completer := &fakeCompleter{reply: "Sugiro a regra 50/30/20."}
	svc := NewAssistantService(expenses, repo, completer)

	reply, err := svc.HandleMessage(context.Background(), "o", "como organizo meu orçamento?")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if reply != "Sugiro a regra 50/30/20." {
		t.Errorf("reply = %q, want the completion verbatim", reply)
	}
	if completer.calls != 1 {
		t.Errorf("completion calls = %d, want 1", completer.calls)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStorage(t)
	ctx := context.Background()

	if _, err := src.CreateExpense(ctx, testExpense("o")); err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}
	if _, err := src.CreateGoal(ctx, core.Goal{
		OwnerID:      "o",
		Title:        "Meta de economia de $500",
		TargetAmount: core.Money{Cents: 50000},
		Category:     core.CategoryPoupanca,
	}); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}
	if _, err := src.CreateInvestment(ctx, core.Investment{
		OwnerID:      "o",
		Ticker:       "VALE3",
		Name:         "Vale ON",
		Shares:       decimal.RequireFromString("3"),
		Price:        decimal.RequireFromString("61.20"),
		PurchaseDate: core.NewDate(2026, 2, 2),
	}); err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}
	if err := src.UpsertProfile(ctx, core.Profile{ID: "o", Email: "o@example.com", Currency: "BRL"}); err != nil {
		t.Fatalf("UpsertProfile() error = %v", err)
	}

	snap, err := NewExportService(src).Export(ctx, "o")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(snap.Expenses) != 1 || len(snap.Goals) != 1 || len(snap.Investments) != 1 || snap.Profile == nil {
		t.Fatalf("incomplete snapshot: %+v", snap)
	}

	dst := newTestStorage(t)
	res, err := NewExportService(dst).Import(ctx, "other-owner", snap)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.Expenses != 1 || res.Goals != 1 || res.Investments != 1 {
		t.Errorf("ImportResult = %+v", res)
	}

	imported, err := dst.ListExpenses(ctx, "other-owner")
	if err != nil {
		t.Fatalf("ListExpenses() after import error = %v", err)
	}
	if len(imported) != 1 || imported[0].Description != "farmácia" {
		t.Errorf("imported expenses = %+v", imported)
	}
}

func TestDashboardBuild(t *testing.T) {
	repo := newTestStorage(t)
	expenses := NewExpenseService(repo, &fakePublisher{})
	svc := NewDashboardService(expenses, repo)
	ctx := context.Background()

	if _, err := expenses.CreateExpense(ctx, testExpense("o")); err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}
	if _, err := repo.CreateGoal(ctx, core.Goal{
		OwnerID:       "o",
		Title:         "Reserva",
		TargetAmount:  core.Money{Cents: 100000},
		CurrentAmount: core.Money{Cents: 25000},
		Category:      core.CategoryPoupanca,
	}); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}
	if _, err := repo.CreateAsset(ctx, core.Asset{OwnerID: "o", Name: "Carro", Type: "veículo", Value: core.Money{Cents: 4500000}}); err != nil {
		t.Fatalf("CreateAsset() error = %v", err)
	}
	if _, err := repo.CreateLiability(ctx, core.Liability{OwnerID: "o", Name: "Cartão", Type: "rotativo", Balance: core.Money{Cents: 120000}}); err != nil {
		t.Fatalf("CreateLiability() error = %v", err)
	}
	if _, err := repo.CreateInvestment(ctx, core.Investment{
		OwnerID:      "o",
		Ticker:       "ITUB4",
		Name:         "Itaú PN",
		Shares:       decimal.RequireFromString("10"),
		Price:        decimal.RequireFromString("30.50"),
		PurchaseDate: core.NewDate(2026, 1, 1),
	}); err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}

	d, err := svc.Build(ctx, "o", 2026, 9)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if d.Month.Total.Cents != 5000 {
		t.Errorf("month total = %d, want 5000", d.Month.Total.Cents)
	}
	if len(d.Goals) != 1 || d.Goals[0].Percent != 25 {
		t.Errorf("goals = %+v, want one at 25%%", d.Goals)
	}
	if d.NetWorth.Assets.Cents != 4500000 || d.NetWorth.Liabilities.Cents != 120000 {
		t.Errorf("net worth = %+v", d.NetWorth)
	}
	if want := decimal.RequireFromString("305"); !d.NetWorth.Portfolio.Equal(want) {
		t.Errorf("portfolio = %s, want %s", d.NetWorth.Portfolio, want)
	}
}
