// Package sqlite implements the Store ports on an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"bolso/internal/core"
	"bolso/internal/store"
)

// Ensure interface conformance
var _ store.Store = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) FetchTransactions(ctx context.Context, ownerID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, kind, amount_cents, description, category, date, receipt_ref
		FROM transactions
		WHERE owner_id = ?
		ORDER BY date DESC, created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t          core.Transaction
			kind, date string
			receipt    sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.OwnerID, &kind, &t.Amount.Cents,
			&t.Description, &t.Category, &date, &receipt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Kind = core.Kind(kind)
		t.Date, err = parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		t.ReceiptRef = receipt.String
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *Repository) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	var receipt any
	if t.ReceiptRef != "" {
		receipt = t.ReceiptRef
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, owner_id, kind, amount_cents, description, category, date, receipt_ref)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, string(t.Kind), t.Amount.Cents,
		t.Description, t.Category, formatDate(t.Date), receipt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"owner_id", t.OwnerID,
		"kind", string(t.Kind),
		"amount_cents", t.Amount.Cents)
	return t, nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}
	return nil
}

func (r *Repository) FetchCategories(ctx context.Context, ownerID string, kind core.Kind) ([]core.Category, error) {
	query := `SELECT id, owner_id, name, kind FROM categories WHERE owner_id = ?`
	args := []any{ownerID}
	if kind != core.KindAny {
		query += ` AND kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var (
			c core.Category
			k string
		)
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &k); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Kind = core.Kind(k)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

// InsertCategories writes the whole batch in a single transaction so a
// partial seed never survives a failure.
func (r *Repository) InsertCategories(ctx context.Context, cats []core.Category) error {
	for _, c := range cats {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert categories: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (id, owner_id, name, kind) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert category: %w", err)
	}
	defer stmt.Close()

	for _, c := range cats {
		id := c.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx, id, c.OwnerID, c.Name, string(c.Kind)); err != nil {
			return fmt.Errorf("insert category %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert categories: %w", err)
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("category %s not found", id)
	}
	return nil
}

func formatDate(d core.Date) string {
	return d.Truncated().Format("2006-01-02")
}

func parseDate(s string) (core.Date, error) {
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}
