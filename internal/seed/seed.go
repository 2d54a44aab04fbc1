// Package seed bootstraps a new account's default category set.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"bolso/internal/core"
	"bolso/internal/store"
)

var defaultExpense = []string{
	"Alimentação",
	"Transporte",
	"Moradia",
	"Saúde",
	"Educação",
	"Lazer",
	"Compras",
	"Outros",
}

var defaultIncome = []string{
	"Salário",
	"Freelance",
	"Investimentos",
	"Presentes",
	"Outros",
}

// DefaultCategories returns the fixed default set for ownerID: eight
// expense and five income categories, IDs left for the store to assign.
func DefaultCategories(ownerID string) []core.Category {
	out := make([]core.Category, 0, len(defaultExpense)+len(defaultIncome))
	for _, name := range defaultExpense {
		out = append(out, core.Category{OwnerID: ownerID, Name: name, Kind: core.Expense})
	}
	for _, name := range defaultIncome {
		out = append(out, core.Category{OwnerID: ownerID, Name: name, Kind: core.Income})
	}
	return out
}

// Defaults inserts the default set for ownerID in one batched insert.
// It performs no duplicate check: calling it twice creates a second
// full set. The calling layer is responsible for invoking it at most
// once per new account.
func Defaults(ctx context.Context, w store.CategoryWriter, ownerID string) error {
	cats := DefaultCategories(ownerID)
	if err := w.InsertCategories(ctx, cats); err != nil {
		slog.ErrorContext(ctx, "Default category seeding failed",
			"owner_id", ownerID, "count", len(cats), "error", err)
		return fmt.Errorf("seed default categories: %w", err)
	}
	slog.InfoContext(ctx, "Seeded default categories",
		"owner_id", ownerID, "count", len(cats))
	return nil
}
