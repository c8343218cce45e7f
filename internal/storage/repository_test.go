package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
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
		Description: "gastos médicos",
		Amount:      core.Money{Cents: 5000},
		Category:    core.CategorySaude,
	}
}

func TestCreateAndGetExpense(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateExpense(ctx, testExpense("owner-a"))
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("CreateExpense() returned empty ID")
	}

	got, err := repo.GetExpense(ctx, "owner-a", created.ID)
	if err != nil {
		t.Fatalf("GetExpense() error = %v", err)
	}
	if got.Description != created.Description || got.Amount.Cents != created.Amount.Cents {
		t.Errorf("GetExpense() = %+v, want %+v", got, created)
	}
	if got.Date.String() != "2026-09-01" {
		t.Errorf("Date = %s, want 2026-09-01", got.Date)
	}
}

func TestGetExpenseWrongOwner(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateExpense(ctx, testExpense("owner-a"))
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	if _, err := repo.GetExpense(ctx, "owner-b", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetExpense() with foreign owner error = %v, want ErrNotFound", err)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	repo := newTestRepository(t)

	bad := testExpense("owner-a")
	bad.Amount.Cents = 0
	if _, err := repo.CreateExpense(context.Background(), bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("CreateExpense() error = %v, want ErrInvalidAmount", err)
	}
}

func TestMonthTotalAndCategorySums(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	inserts := []core.Expense{
		{OwnerID: "o", Date: core.NewDate(2026, 9, 1), Description: "farmácia", Amount: core.Money{Cents: 3000}, Category: core.CategorySaude},
		{OwnerID: "o", Date: core.NewDate(2026, 9, 15), Description: "mercado", Amount: core.Money{Cents: 12000}, Category: core.CategoryAlimentacao},
		{OwnerID: "o", Date: core.NewDate(2026, 9, 20), Description: "consulta", Amount: core.Money{Cents: 2000}, Category: core.CategorySaude},
		{OwnerID: "o", Date: core.NewDate(2026, 8, 1), Description: "mês anterior", Amount: core.Money{Cents: 999}, Category: core.CategoryOutros},
		{OwnerID: "other", Date: core.NewDate(2026, 9, 5), Description: "de outro dono", Amount: core.Money{Cents: 777}, Category: core.CategoryOutros},
	}
	for _, e := range inserts {
		if _, err := repo.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense() error = %v", err)
		}
	}

	total, err := repo.GetMonthTotal(ctx, "o", 2026, 9)
	if err != nil {
		t.Fatalf("GetMonthTotal() error = %v", err)
	}
	if total.Cents != 17000 {
		t.Errorf("GetMonthTotal() = %d, want 17000", total.Cents)
	}

	sums, err := repo.GetCategorySums(ctx, "o", 2026, 9)
	if err != nil {
		t.Fatalf("GetCategorySums() error = %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("GetCategorySums() returned %d categories, want 2", len(sums))
	}
	if sums[0].Name != core.CategoryAlimentacao || sums[0].Amount.Cents != 12000 {
		t.Errorf("largest category = %+v, want Alimentação 12000", sums[0])
	}
	if sums[1].Name != core.CategorySaude || sums[1].Amount.Cents != 5000 {
		t.Errorf("second category = %+v, want Saúde 5000", sums[1])
	}

	byMonth, err := repo.ListExpensesByMonth(ctx, "o", 2026, 9)
	if err != nil {
		t.Fatalf("ListExpensesByMonth() error = %v", err)
	}
	if len(byMonth) != 3 {
		t.Errorf("ListExpensesByMonth() returned %d expenses, want 3", len(byMonth))
	}
}

func TestExpenseSyncLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateExpense(ctx, testExpense("o"))
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	pending, err := repo.GetPendingSyncExpenses(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncExpenses() error = %v", err)
	}
	if len(pending) != 1 || pending[0].ID != created.ID {
		t.Fatalf("GetPendingSyncExpenses() = %+v, want the new expense", pending)
	}
	if pending[0].Version != 1 {
		t.Errorf("pending version = %d, want 1", pending[0].Version)
	}

	if err := repo.MarkExpenseSynced(ctx, created.ID); err != nil {
		t.Fatalf("MarkExpenseSynced() error = %v", err)
	}
	pending, err = repo.GetPendingSyncExpenses(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncExpenses() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("after sync, pending = %d, want 0", len(pending))
	}

	// Errored rows go back into the pending pool for the periodic sweep.
	if err := repo.MarkExpenseSyncError(ctx, created.ID); err != nil {
		t.Fatalf("MarkExpenseSyncError() error = %v", err)
	}
	pending, err = repo.GetPendingSyncExpenses(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncExpenses() error = %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("after sync error, pending = %d, want 1", len(pending))
	}
}

func TestDeleteExpense(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateExpense(ctx, testExpense("o"))
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	if err := repo.DeleteExpense(ctx, "o", created.ID); err != nil {
		t.Fatalf("DeleteExpense() error = %v", err)
	}
	if err := repo.DeleteExpense(ctx, "o", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteExpense() error = %v, want ErrNotFound", err)
	}
}

func TestGoalLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	goal := core.Goal{
		OwnerID:      "o",
		Title:        "Meta de economia de $1000",
		TargetAmount: core.Money{Cents: 100000},
		Category:     core.CategoryPoupanca,
		Deadline:     core.NewDate(2027, 9, 1),
	}
	created, err := repo.CreateGoal(ctx, goal)
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	got, err := repo.GetGoal(ctx, "o", created.ID)
	if err != nil {
		t.Fatalf("GetGoal() error = %v", err)
	}
	if got.Deadline.String() != "2027-09-01" {
		t.Errorf("Deadline = %s, want 2027-09-01", got.Deadline)
	}
	if got.CurrentAmount.Cents != 0 {
		t.Errorf("CurrentAmount = %d, want 0", got.CurrentAmount.Cents)
	}

	if err := repo.UpdateGoalAmount(ctx, "o", created.ID, core.Money{Cents: 25000}); err != nil {
		t.Fatalf("UpdateGoalAmount() error = %v", err)
	}
	got, err = repo.GetGoal(ctx, "o", created.ID)
	if err != nil {
		t.Fatalf("GetGoal() error = %v", err)
	}
	if got.CurrentAmount.Cents != 25000 {
		t.Errorf("CurrentAmount after update = %d, want 25000", got.CurrentAmount.Cents)
	}

	goals, err := repo.ListGoals(ctx, "o")
	if err != nil {
		t.Fatalf("ListGoals() error = %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("ListGoals() returned %d goals, want 1", len(goals))
	}

	if err := repo.DeleteGoal(ctx, "o", created.ID); err != nil {
		t.Fatalf("DeleteGoal() error = %v", err)
	}
	if err := repo.UpdateGoalAmount(ctx, "o", created.ID, core.Money{Cents: 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateGoalAmount() on deleted goal error = %v, want ErrNotFound", err)
	}
}

func TestInvestmentRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	inv := core.Investment{
		OwnerID:      "o",
		Ticker:       "PETR4",
		Name:         "Petrobras PN",
		Shares:       decimal.RequireFromString("10.5"),
		Price:        decimal.RequireFromString("38.42"),
		Sector:       "Energia",
		PurchaseDate: core.NewDate(2026, 1, 15),
	}
	created, err := repo.CreateInvestment(ctx, inv)
	if err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}

	got, err := repo.GetInvestment(ctx, "o", created.ID)
	if err != nil {
		t.Fatalf("GetInvestment() error = %v", err)
	}
	if !got.Shares.Equal(inv.Shares) || !got.Price.Equal(inv.Price) {
		t.Errorf("round-trip shares/price = %s/%s, want %s/%s",
			got.Shares, got.Price, inv.Shares, inv.Price)
	}
	if want := decimal.RequireFromString("403.41"); !got.MarketValue().Equal(want) {
		t.Errorf("MarketValue() = %s, want %s", got.MarketValue(), want)
	}
}

func TestAssetsAndLiabilities(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	asset := core.Asset{OwnerID: "o", Name: "Apartamento", Type: "imóvel", Value: core.Money{Cents: 35000000}}
	if _, err := repo.CreateAsset(ctx, asset); err != nil {
		t.Fatalf("CreateAsset() error = %v", err)
	}

	liability := core.Liability{
		OwnerID:        "o",
		Name:           "Financiamento",
		Type:           "imobiliário",
		Balance:        core.Money{Cents: 20000000},
		InterestRate:   decimal.RequireFromString("9.75"),
		MonthlyPayment: core.Money{Cents: 180000},
	}
	if _, err := repo.CreateLiability(ctx, liability); err != nil {
		t.Fatalf("CreateLiability() error = %v", err)
	}

	assets, err := repo.ListAssets(ctx, "o")
	if err != nil {
		t.Fatalf("ListAssets() error = %v", err)
	}
	if len(assets) != 1 || assets[0].Value.Cents != 35000000 {
		t.Errorf("ListAssets() = %+v", assets)
	}

	liabilities, err := repo.ListLiabilities(ctx, "o")
	if err != nil {
		t.Fatalf("ListLiabilities() error = %v", err)
	}
	if len(liabilities) != 1 {
		t.Fatalf("ListLiabilities() returned %d, want 1", len(liabilities))
	}
	if !liabilities[0].InterestRate.Equal(liability.InterestRate) {
		t.Errorf("InterestRate = %s, want %s", liabilities[0].InterestRate, liability.InterestRate)
	}
}

func TestProfileUpsert(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	p := core.Profile{ID: "owner-local", Email: "felipe@example.com", FullName: "Felipe", Currency: "BRL"}
	if err := repo.UpsertProfile(ctx, p); err != nil {
		t.Fatalf("UpsertProfile() error = %v", err)
	}

	p.FullName = "Felipe M."
	if err := repo.UpsertProfile(ctx, p); err != nil {
		t.Fatalf("UpsertProfile() update error = %v", err)
	}

	got, err := repo.GetProfile(ctx, "owner-local")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.FullName != "Felipe M." {
		t.Errorf("FullName = %q, want %q", got.FullName, "Felipe M.")
	}

	if _, err := repo.GetProfile(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProfile() for missing owner error = %v, want ErrNotFound", err)
	}
}

func TestChatHistory(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i, msg := range []string{"olá", "adicionar 50 reais em gastos médicos", "quanto gastei?"} {
		entry := core.ChatEntry{OwnerID: "o", Message: msg, Response: "resposta"}
		if _, err := repo.AppendChatEntry(ctx, entry); err != nil {
			t.Fatalf("AppendChatEntry(%d) error = %v", i, err)
		}
	}

	entries, err := repo.ListChatEntries(ctx, "o", 2)
	if err != nil {
		t.Fatalf("ListChatEntries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("ListChatEntries() returned %d entries, want 2", len(entries))
	}
}
