// Package store defines the outbound ports to the datastore holding a
// user's transactions and categories. Every operation is scoped to one
// owner; implementations own the persistence format entirely.
package store

import (
	"context"

	"bolso/internal/core"
)

type (
	TransactionFetcher interface {
		// FetchTransactions returns every transaction owned by ownerID.
		FetchTransactions(ctx context.Context, ownerID string) ([]core.Transaction, error)
	}

	TransactionWriter interface {
		// InsertTransaction persists t and returns it with the
		// store-assigned ID filled in.
		InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		// DeleteTransaction permanently removes the transaction.
		DeleteTransaction(ctx context.Context, id string) error
	}

	CategoryFetcher interface {
		// FetchCategories returns ownerID's categories of the given
		// kind; core.KindAny returns both kinds.
		FetchCategories(ctx context.Context, ownerID string, kind core.Kind) ([]core.Category, error)
	}

	CategoryWriter interface {
		// InsertCategories persists the batch in one operation.
		InsertCategories(ctx context.Context, cats []core.Category) error
		// DeleteCategory permanently removes the category. Transactions
		// referencing its name are left untouched.
		DeleteCategory(ctx context.Context, id string) error
	}

	// Store is the full surface the services layer works against.
	Store interface {
		TransactionFetcher
		TransactionWriter
		CategoryFetcher
		CategoryWriter
	}
)
