package memory

import (
	"context"
	"testing"

	"bolso/internal/core"
)

func tx(owner, desc string) core.Transaction {
	return core.Transaction{
		OwnerID:     owner,
		Kind:        core.Expense,
		Amount:      core.Money{Cents: 100},
		Description: desc,
		Category:    "Outros",
		Date:        core.NewDate(2024, 1, 1),
	}
}

func TestInsertAndFetchScopedToOwner(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.InsertTransaction(ctx, tx("u1", "a")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.InsertTransaction(ctx, tx("u2", "b")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.FetchTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].Description != "a" {
		t.Fatalf("expected only u1's transaction, got %+v", got)
	}
	if got[0].ID == "" {
		t.Fatalf("store must assign an ID on insert")
	}
}

func TestInsertTransactionValidates(t *testing.T) {
	s := New()
	bad := tx("u1", "a")
	bad.Amount.Cents = 0
	if _, err := s.InsertTransaction(context.Background(), bad); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestDeleteTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()
	saved, err := s.InsertTransaction(ctx, tx("u1", "a"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := s.DeleteTransaction(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := s.FetchTransactions(ctx, "u1")
	if len(got) != 0 {
		t.Fatalf("expected empty store after delete, got %d", len(got))
	}
	if err := s.DeleteTransaction(ctx, saved.ID); err == nil {
		t.Fatalf("expected error deleting a missing transaction")
	}
}

func TestCategoriesFilteredByKind(t *testing.T) {
	s := New()
	ctx := context.Background()
	cats := []core.Category{
		{OwnerID: "u1", Name: "Lazer", Kind: core.Expense},
		{OwnerID: "u1", Name: "Salário", Kind: core.Income},
		{OwnerID: "u2", Name: "Compras", Kind: core.Expense},
	}
	if err := s.InsertCategories(ctx, cats); err != nil {
		t.Fatalf("insert: %v", err)
	}

	expense, err := s.FetchCategories(ctx, "u1", core.Expense)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(expense) != 1 || expense[0].Name != "Lazer" {
		t.Fatalf("expected only u1's expense category, got %+v", expense)
	}

	all, _ := s.FetchCategories(ctx, "u1", core.KindAny)
	if len(all) != 2 {
		t.Fatalf("KindAny must return both kinds, got %d", len(all))
	}
}

func TestDeleteCategoryLeavesTransactionsAlone(t *testing.T) {
	s := New()
	ctx := context.Background()
	if err := s.InsertCategories(ctx, []core.Category{{OwnerID: "u1", Name: "Food", Kind: core.Expense}}); err != nil {
		t.Fatalf("insert categories: %v", err)
	}
	withCat := tx("u1", "lunch")
	withCat.Category = "Food"
	if _, err := s.InsertTransaction(ctx, withCat); err != nil {
		t.Fatalf("insert tx: %v", err)
	}

	cats, _ := s.FetchCategories(ctx, "u1", core.KindAny)
	if err := s.DeleteCategory(ctx, cats[0].ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	// No cascade: the transaction keeps its orphaned category string.
	txs, _ := s.FetchTransactions(ctx, "u1")
	if len(txs) != 1 || txs[0].Category != "Food" {
		t.Fatalf("deleting a category must not touch transactions, got %+v", txs)
	}
}
