package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid memory backend",
			config: Config{
				DataBackend: "memory",
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend",
			config: Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: "./test.db",
			},
			wantErr: false,
		},
		{
			name: "valid sheets backend",
			config: Config{
				DataBackend:             "sheets",
				SheetsSpreadsheetID:     "sheet-id",
				SheetsTransactionsSheet: "Transactions",
				SheetsCategoriesSheet:   "Categories",
			},
			wantErr: false,
		},
		{
			name: "unknown backend",
			config: Config{
				DataBackend: "dynamo",
			},
			wantErr:     true,
			errorString: "invalid data backend 'dynamo'",
		},
		{
			name: "sqlite without path",
			config: Config{
				DataBackend: "sqlite",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "sheets without spreadsheet id",
			config: Config{
				DataBackend:             "sheets",
				SheetsTransactionsSheet: "Transactions",
				SheetsCategoriesSheet:   "Categories",
			},
			wantErr:     true,
			errorString: "spreadsheet ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("SHEETS_TRANSACTIONS_SHEET", "")
	t.Setenv("SHEETS_CATEGORIES_SHEET", "")
	cfg := Load()
	if cfg.DataBackend != "memory" {
		t.Fatalf("default backend should be memory, got %q", cfg.DataBackend)
	}
	if cfg.SheetsTransactionsSheet != "Transactions" || cfg.SheetsCategoriesSheet != "Categories" {
		t.Fatalf("unexpected sheet name defaults: %q/%q", cfg.SheetsTransactionsSheet, cfg.SheetsCategoriesSheet)
	}
}
