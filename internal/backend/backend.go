// Package backend selects and builds a Store implementation from the
// application configuration.
package backend

import (
	"context"
	"fmt"

	"bolso/internal/config"
	"bolso/internal/log"
	"bolso/internal/store"
	"bolso/internal/store/memory"
	"bolso/internal/store/sheets"
	"bolso/internal/store/sqlite"
)

// Type identifies a Store implementation.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
	Sheets Type = "sheets"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite, Sheets:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources; nil when nothing to release.
type CleanupFunc func() error

// Result holds the built store and its optional cleanup.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Build constructs the Store named by cfg.DataBackend.
func Build(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentBackend)

	switch Type(cfg.DataBackend) {
	case Memory:
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil

	case SQLite:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case Sheets:
		cli, err := sheets.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets backend: %w", err)
		}
		logger.Info("Initialized Google Sheets backend",
			"spreadsheet_id", cfg.SheetsSpreadsheetID)
		return &Result{Store: cli}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}
