// Package sheets implements the Store ports on a Google Spreadsheet,
// playing the role of the hosted remote datastore.
//
// Layout: one sheet per collection. Transactions occupy columns A:H
// (id, owner, kind, amount, description, category, date, receipt ref),
// categories columns A:D (id, owner, name, kind), both with a header
// row. Deletes clear the row in place; readers skip blank rows.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"bolso/internal/core"
	"bolso/internal/store"
)

// Ensure interface conformance
var _ store.Store = (*Client)(nil)

type Client struct {
	svc               *gsheet.Service
	spreadsheetID     string
	transactionsSheet string
	categoriesSheet   string
}

// NewFromEnv creates a Sheets client using environment variables.
// Required: SHEETS_SPREADSHEET_ID. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS, or from an OAuth user token written
// by the oauth-init command (GOOGLE_OAUTH_CLIENT_JSON or
// GOOGLE_OAUTH_CLIENT_FILE plus GOOGLE_OAUTH_TOKEN_FILE). Optional
// sheet names: SHEETS_TRANSACTIONS_SHEET (default "Transactions") and
// SHEETS_CATEGORIES_SHEET (default "Categories").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("SHEETS_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing SHEETS_SPREADSHEET_ID")
	}

	txSheet := strings.TrimSpace(os.Getenv("SHEETS_TRANSACTIONS_SHEET"))
	if txSheet == "" {
		txSheet = "Transactions"
	}
	catSheet := strings.TrimSpace(os.Getenv("SHEETS_CATEGORIES_SHEET"))
	if catSheet == "" {
		catSheet = "Categories"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:               svc,
		spreadsheetID:     spreadsheetID,
		transactionsSheet: txSheet,
		categoriesSheet:   catSheet,
	}, nil
}

// newSheetsService initializes a Sheets Service with credentials
// resolved from the environment.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	credOpt, _, err := resolveCredentials(ctx)
	if err != nil {
		return nil, err
	}

	service, err := gsheet.NewService(ctx,
		credOpt,
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

type credentialSource int

const (
	credNone credentialSource = iota
	credServiceAccount
	credOAuthToken
)

// resolveCredentials picks the credential the Sheets service will
// authenticate with. Service account credentials take precedence; a
// saved OAuth user token from oauth-init is the fallback.
func resolveCredentials(ctx context.Context) (goption.ClientOption, credentialSource, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		return goption.WithCredentialsJSON([]byte(serviceAccountJSON)), credServiceAccount, nil
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, credNone, fmt.Errorf("read service account file: %w", err)
		}
		return goption.WithCredentialsJSON(b), credServiceAccount, nil
	}

	ts, err := oauthTokenSource(ctx)
	if err != nil {
		return nil, credNone, err
	}
	if ts != nil {
		return goption.WithTokenSource(ts), credOAuthToken, nil
	}
	return nil, credNone, errors.New("missing credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS, or configure GOOGLE_OAUTH_CLIENT_JSON/GOOGLE_OAUTH_CLIENT_FILE and run oauth-init)")
}

// oauthTokenSource loads the user token written by the oauth-init
// command. Returns (nil, nil) when no OAuth client is configured.
func oauthTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	clientJSON := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_JSON"))
	clientFile := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_FILE"))

	var b []byte
	var err error
	switch {
	case clientJSON != "":
		b = []byte(clientJSON)
	case clientFile != "":
		b, err = os.ReadFile(clientFile)
		if err != nil {
			return nil, fmt.Errorf("read oauth client file: %w", err)
		}
	default:
		return nil, nil
	}

	cfg, err := google.ConfigFromJSON(b, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client config: %w", err)
	}

	tokenFile := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_TOKEN_FILE"))
	if tokenFile == "" {
		tokenFile = "token.json"
	}
	raw, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth token file (run oauth-init first): %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("parse oauth token file %s: %w", tokenFile, err)
	}
	return cfg.TokenSource(ctx, &tok), nil
}

func (c *Client) FetchTransactions(ctx context.Context, ownerID string) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A2:H", c.transactionsSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	var out []core.Transaction
	for i, row := range resp.Values {
		t, ok, err := parseTransactionRow(row)
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed transaction row",
				"sheet", c.transactionsSheet, "row", i+2, "error", err)
			continue
		}
		if !ok || t.OwnerID != ownerID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (c *Client) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if c.svc == nil {
		return core.Transaction{}, errors.New("sheets service not initialized")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	vr := &gsheet.ValueRange{Values: [][]any{transactionRow(t)}}
	rng := fmt.Sprintf("%s!A:H", c.transactionsSheet)
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("append to sheet %s: %w", c.transactionsSheet, err)
	}
	return t, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.clearRowByID(ctx, c.transactionsSheet, "H", id)
}

func (c *Client) FetchCategories(ctx context.Context, ownerID string, kind core.Kind) ([]core.Category, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A2:D", c.categoriesSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	var out []core.Category
	for _, row := range resp.Values {
		if len(row) < 4 {
			continue
		}
		cat := core.Category{
			ID:      cellString(row, 0),
			OwnerID: cellString(row, 1),
			Name:    cellString(row, 2),
			Kind:    core.Kind(cellString(row, 3)),
		}
		if cat.ID == "" || cat.OwnerID != ownerID {
			continue
		}
		if kind != core.KindAny && cat.Kind != kind {
			continue
		}
		out = append(out, cat)
	}
	return out, nil
}

// InsertCategories appends the whole batch in a single Append call.
func (c *Client) InsertCategories(ctx context.Context, cats []core.Category) error {
	for _, cat := range cats {
		if err := cat.Validate(); err != nil {
			return err
		}
	}
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rows := make([][]any, 0, len(cats))
	for _, cat := range cats {
		id := cat.ID
		if id == "" {
			id = uuid.NewString()
		}
		rows = append(rows, []any{id, cat.OwnerID, cat.Name, string(cat.Kind)})
	}

	vr := &gsheet.ValueRange{Values: rows}
	rng := fmt.Sprintf("%s!A:D", c.categoriesSheet)
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", c.categoriesSheet, err)
	}
	return nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.clearRowByID(ctx, c.categoriesSheet, "D", id)
}

// clearRowByID locates the row whose first column equals id and clears
// it. Cleared rows stay blank until the next append reuses them.
func (c *Client) clearRowByID(ctx context.Context, sheet, lastCol, id string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A2:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read %s: %w", rng, err)
	}
	for i, row := range resp.Values {
		if cellString(row, 0) != id {
			continue
		}
		rowNum := i + 2
		clearRng := fmt.Sprintf("%s!A%d:%s%d", sheet, rowNum, lastCol, rowNum)
		_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRng, &gsheet.ClearValuesRequest{}).
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("clear %s: %w", clearRng, err)
		}
		return nil
	}
	return fmt.Errorf("row %s not found in sheet %s", id, sheet)
}

func transactionRow(t core.Transaction) []any {
	return []any{
		t.ID,
		t.OwnerID,
		string(t.Kind),
		t.Amount.String(),
		t.Description,
		t.Category,
		t.Date.Truncated().Format("2006-01-02"),
		t.ReceiptRef,
	}
}

// parseTransactionRow converts a sheet row back into a Transaction.
// The second return is false for blank (cleared) rows.
func parseTransactionRow(row []any) (core.Transaction, bool, error) {
	if cellString(row, 0) == "" {
		return core.Transaction{}, false, nil
	}
	if len(row) < 7 {
		return core.Transaction{}, false, fmt.Errorf("short row (%d columns)", len(row))
	}

	cents, err := core.ParseDecimalToCents(cellString(row, 3))
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("amount %q: %w", cellString(row, 3), err)
	}
	date, err := core.ParseDate(cellString(row, 6))
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("date %q: %w", cellString(row, 6), err)
	}

	return core.Transaction{
		ID:          cellString(row, 0),
		OwnerID:     cellString(row, 1),
		Kind:        core.Kind(cellString(row, 2)),
		Amount:      core.Money{Cents: cents},
		Description: cellString(row, 4),
		Category:    cellString(row, 5),
		Date:        date,
		ReceiptRef:  cellString(row, 7),
	}, true, nil
}

func cellString(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}
