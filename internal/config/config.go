package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Backend selection
	DataBackend string

	// SQLite
	SQLiteDBPath string

	// Google Sheets
	SheetsSpreadsheetID     string
	SheetsTransactionsSheet string
	SheetsCategoriesSheet   string

	// Owner the CLI acts as
	OwnerID string
}

func Load() *Config {
	return &Config{
		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/bolso.db"),

		SheetsSpreadsheetID:     getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsTransactionsSheet: getEnv("SHEETS_TRANSACTIONS_SHEET", "Transactions"),
		SheetsCategoriesSheet:   getEnv("SHEETS_CATEGORIES_SHEET", "Categories"),

		OwnerID: getEnv("BOLSO_OWNER", ""),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	validBackends := []string{"memory", "sqlite", "sheets"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.DataBackend == "sheets" {
		if c.SheetsSpreadsheetID == "" {
			errs = append(errs, "spreadsheet ID is required when using sheets backend")
		}
		if c.SheetsTransactionsSheet == "" {
			errs = append(errs, "transactions sheet name cannot be empty when using sheets backend")
		}
		if c.SheetsCategoriesSheet == "" {
			errs = append(errs, "categories sheet name cannot be empty when using sheets backend")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
