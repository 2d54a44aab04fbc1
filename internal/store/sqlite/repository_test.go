package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"bolso/internal/core"
	"bolso/internal/seed"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "bolso.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestTransactionRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	in := core.Transaction{
		OwnerID:     "u1",
		Kind:        core.Expense,
		Amount:      core.Money{Cents: 12345},
		Description: "supermercado",
		Category:    "Alimentação",
		Date:        core.NewDate(2024, 1, 10),
		ReceiptRef:  "receipts/abc.jpg",
	}
	saved, err := repo.InsertTransaction(ctx, in)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected store-assigned ID")
	}

	got, err := repo.FetchTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(got))
	}
	out := got[0]
	if out.ID != saved.ID || out.Kind != core.Expense || out.Amount.Cents != 12345 ||
		out.Description != "supermercado" || out.Category != "Alimentação" ||
		out.ReceiptRef != "receipts/abc.jpg" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if out.Date.Year() != 2024 || out.Date.Month() != 1 || out.Date.Day() != 10 {
		t.Fatalf("date mismatch: %v", out.Date)
	}
}

func TestReceiptRefOptional(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	in := core.Transaction{
		OwnerID:     "u1",
		Kind:        core.Income,
		Amount:      core.Money{Cents: 100},
		Description: "salário",
		Category:    "Salário",
		Date:        core.NewDate(2024, 2, 1),
	}
	if _, err := repo.InsertTransaction(ctx, in); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := repo.FetchTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got[0].ReceiptRef != "" {
		t.Fatalf("expected empty receipt ref, got %q", got[0].ReceiptRef)
	}
}

func TestFetchTransactionsScopedToOwner(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, owner := range []string{"u1", "u2"} {
		_, err := repo.InsertTransaction(ctx, core.Transaction{
			OwnerID:     owner,
			Kind:        core.Expense,
			Amount:      core.Money{Cents: 100},
			Description: "x",
			Category:    "Outros",
			Date:        core.NewDate(2024, 1, 1),
		})
		if err != nil {
			t.Fatalf("insert for %s: %v", owner, err)
		}
	}

	got, err := repo.FetchTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].OwnerID != "u1" {
		t.Fatalf("expected only u1's records, got %+v", got)
	}
}

func TestDeleteTransaction(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	saved, err := repo.InsertTransaction(ctx, core.Transaction{
		OwnerID:     "u1",
		Kind:        core.Expense,
		Amount:      core.Money{Cents: 100},
		Description: "x",
		Category:    "Outros",
		Date:        core.NewDate(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.DeleteTransaction(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteTransaction(ctx, saved.ID); err == nil {
		t.Fatalf("expected error for missing transaction")
	}
}

func TestSeedAndFetchCategories(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := seed.Defaults(ctx, repo, "u1"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, err := repo.FetchCategories(ctx, "u1", core.KindAny)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(all) != 13 {
		t.Fatalf("expected 13 categories, got %d", len(all))
	}

	income, err := repo.FetchCategories(ctx, "u1", core.Income)
	if err != nil {
		t.Fatalf("fetch income: %v", err)
	}
	if len(income) != 5 {
		t.Fatalf("expected 5 income categories, got %d", len(income))
	}

	// Second seeding duplicates the whole set; the store has no
	// uniqueness constraint on names.
	if err := seed.Defaults(ctx, repo, "u1"); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	all, _ = repo.FetchCategories(ctx, "u1", core.KindAny)
	if len(all) != 26 {
		t.Fatalf("expected 26 categories, got %d", len(all))
	}
}

func TestDeleteCategory(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.InsertCategories(ctx, []core.Category{
		{OwnerID: "u1", Name: "Lazer", Kind: core.Expense},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	cats, _ := repo.FetchCategories(ctx, "u1", core.KindAny)
	if len(cats) != 1 {
		t.Fatalf("expected 1 category, got %d", len(cats))
	}

	if err := repo.DeleteCategory(ctx, cats[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	cats, _ = repo.FetchCategories(ctx, "u1", core.KindAny)
	if len(cats) != 0 {
		t.Fatalf("expected no categories after delete, got %d", len(cats))
	}
}
