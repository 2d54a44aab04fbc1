// Package memory provides an in-memory Store used by tests and as the
// default backend when nothing else is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"bolso/internal/core"
	"bolso/internal/store"
)

// Ensure interface conformance
var _ store.Store = (*Store)(nil)

type Store struct {
	mu   sync.Mutex
	txs  []core.Transaction
	cats []core.Category
}

func New() *Store {
	return &Store{}
}

func (s *Store) FetchTransactions(_ context.Context, ownerID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(s.txs))
	for _, t := range s.txs {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) InsertTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.txs = append(s.txs, t)
	return t, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.txs {
		if t.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %s not found", id)
}

func (s *Store) FetchCategories(_ context.Context, ownerID string, kind core.Kind) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, 0, len(s.cats))
	for _, c := range s.cats {
		if c.OwnerID != ownerID {
			continue
		}
		if kind != core.KindAny && c.Kind != kind {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) InsertCategories(_ context.Context, cats []core.Category) error {
	for _, c := range cats {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cats {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		s.cats = append(s.cats, c)
	}
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.cats {
		if c.ID == id {
			s.cats = append(s.cats[:i], s.cats[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %s not found", id)
}
