// Package services orchestrates the engines and the store behind the
// screens of the tracker.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"bolso/internal/cache"
	"bolso/internal/core"
	"bolso/internal/seed"
	"bolso/internal/store"
)

// NewAccountWindow is the account-age threshold under which SeedIfNew
// treats an account as freshly created and seeds default categories.
const NewAccountWindow = 5 * time.Minute

const (
	dashboardCacheSize = 128
	dashboardCacheTTL  = 30 * time.Second
)

// DashboardSummary is everything the dashboard screen renders.
type DashboardSummary struct {
	Balance    core.Money
	Monthly    []core.MonthBucket
	Highlights core.Highlights
	Categories []core.Category
}

// Tracker wires the pure engines to a Store. Mutations invalidate the
// owner's cached dashboard so the next read observes a consistent view.
type Tracker struct {
	store store.Store
	cache *cache.LRU[DashboardSummary]
	now   func() time.Time
}

func NewTracker(st store.Store) *Tracker {
	return &Tracker{
		store: st,
		cache: cache.NewLRU[DashboardSummary](dashboardCacheSize, dashboardCacheTTL),
		now:   time.Now,
	}
}

// AddExpense records an expense. The kind is fixed by the entry point;
// whatever the caller put in t.Kind is overwritten.
func (s *Tracker) AddExpense(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.Kind = core.Expense
	return s.add(ctx, t)
}

// AddIncome records an income entry.
func (s *Tracker) AddIncome(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.Kind = core.Income
	return s.add(ctx, t)
}

func (s *Tracker) add(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	// Validation failures never reach the store.
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	saved, err := s.store.InsertTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	s.cache.Delete(saved.OwnerID)
	slog.InfoContext(ctx, "Transaction recorded",
		"transaction_id", saved.ID,
		"owner_id", saved.OwnerID,
		"kind", string(saved.Kind),
		"amount_cents", saved.Amount.Cents)
	return saved, nil
}

// Delete permanently removes a transaction after the user confirmed.
func (s *Tracker) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.cache.Delete(ownerID)
	slog.InfoContext(ctx, "Transaction deleted", "transaction_id", id, "owner_id", ownerID)
	return nil
}

// List returns the owner's transactions matching spec, in store order.
func (s *Tracker) List(ctx context.Context, ownerID string, spec core.FilterSpec) ([]core.Transaction, error) {
	txs, err := s.store.FetchTransactions(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	return core.ApplyFilters(txs, spec), nil
}

// Dashboard computes the owner's summary, loading transactions and
// categories concurrently. Summaries are cached briefly per owner;
// any mutation through this service invalidates the entry.
func (s *Tracker) Dashboard(ctx context.Context, ownerID string) (DashboardSummary, error) {
	if cached, ok := s.cache.Get(ownerID); ok {
		return cached, nil
	}

	var (
		txs  []core.Transaction
		cats []core.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.store.FetchTransactions(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cats, err = s.store.FetchCategories(gctx, ownerID, core.KindAny)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return DashboardSummary{}, err
	}

	summary := DashboardSummary{
		Balance:    core.Balance(txs),
		Monthly:    core.MonthlySeries(txs),
		Highlights: core.ComputeHighlights(txs),
		Categories: cats,
	}
	s.cache.Set(ownerID, summary)
	return summary, nil
}

// AddCategory creates a single user-defined category.
func (s *Tracker) AddCategory(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.store.InsertCategories(ctx, []core.Category{c}); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	s.cache.Delete(c.OwnerID)
	return nil
}

// DeleteCategory removes a category. Transactions that reference its
// name keep the orphaned string; the engines treat categories as
// opaque names and never assume referential integrity.
func (s *Tracker) DeleteCategory(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.cache.Delete(ownerID)
	return nil
}

// SeedDefaults seeds the default category set right after account
// creation succeeded. Errors are reported but callers treat them as
// non-fatal: the account exists whether or not seeding worked.
func (s *Tracker) SeedDefaults(ctx context.Context, ownerID string) error {
	return seed.Defaults(ctx, s.store, ownerID)
}

// SeedIfNew seeds default categories when the account is younger than
// NewAccountWindow. Both this heuristic and the direct SeedDefaults
// call may fire for the same user; the seeding itself performs no
// duplicate check, so a double invocation creates a second full set.
func (s *Tracker) SeedIfNew(ctx context.Context, ownerID string, createdAt time.Time) error {
	if s.now().Sub(createdAt) >= NewAccountWindow {
		return nil
	}
	return seed.Defaults(ctx, s.store, ownerID)
}
