package seed

import (
	"context"
	"errors"
	"testing"

	"bolso/internal/core"
	"bolso/internal/store/memory"
)

func TestDefaultCategoriesShape(t *testing.T) {
	cats := DefaultCategories("user1")
	if len(cats) != 13 {
		t.Fatalf("expected 13 defaults, got %d", len(cats))
	}

	var expense, income int
	for _, c := range cats {
		if c.OwnerID != "user1" {
			t.Fatalf("category %q has owner %q", c.Name, c.OwnerID)
		}
		switch c.Kind {
		case core.Expense:
			expense++
		case core.Income:
			income++
		}
	}
	if expense != 8 || income != 5 {
		t.Fatalf("expected 8 expense + 5 income, got %d/%d", expense, income)
	}
}

func TestDefaultsSeedsOnce(t *testing.T) {
	s := memory.New()
	if err := Defaults(context.Background(), s, "user1"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cats, _ := s.FetchCategories(context.Background(), "user1", core.KindAny)
	if len(cats) != 13 {
		t.Fatalf("expected 13 categories, got %d", len(cats))
	}
}

// Seeding is intentionally not idempotent: it performs no duplicate
// check, so a double invocation creates the full set twice. This is
// accepted behavior, not a bug.
func TestDefaultsCalledTwiceDuplicates(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	if err := Defaults(ctx, s, "user1"); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := Defaults(ctx, s, "user1"); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	cats, _ := s.FetchCategories(ctx, "user1", core.KindAny)
	if len(cats) != 26 {
		t.Fatalf("expected 26 categories after double seeding, got %d", len(cats))
	}
}

type failingWriter struct{}

func (failingWriter) InsertCategories(context.Context, []core.Category) error {
	return errors.New("store unavailable")
}

func (failingWriter) DeleteCategory(context.Context, string) error {
	return errors.New("store unavailable")
}

func TestDefaultsSurfacesStoreError(t *testing.T) {
	err := Defaults(context.Background(), failingWriter{}, "user1")
	if err == nil {
		t.Fatalf("store errors must be reported to the caller")
	}
}
