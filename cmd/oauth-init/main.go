// Command oauth-init runs the one-time browser authorization for the
// sheets backend. It exchanges the authorization code for a user token
// and saves it where the sheets store looks for it
// (GOOGLE_OAUTH_TOKEN_FILE, default token.json). When
// SHEETS_SPREADSHEET_ID is set the token is verified against the
// spreadsheet before the command exits.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"bolso/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "oauth-init:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadClientConfig()
	if err != nil {
		return err
	}

	port := os.Getenv("OAUTH_REDIRECT_PORT")
	if port == "" {
		port = "8085"
	}
	// The OAuth client must list this URI among its authorized
	// redirect URIs.
	cfg.RedirectURL = "http://localhost:" + port + "/callback"

	code, err := waitForCode(ctx, cfg, port)
	if err != nil {
		return err
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("token exchange: %w", err)
	}

	path := tokenPath()
	if err := saveToken(path, tok); err != nil {
		return err
	}
	fmt.Printf("Saved token to %s\n", path)

	if id := os.Getenv("SHEETS_SPREADSHEET_ID"); id != "" {
		if err := verifyAccess(ctx, cfg, tok, id); err != nil {
			return fmt.Errorf("token saved, but spreadsheet check failed: %w", err)
		}
		fmt.Println("Verified access to spreadsheet", id)
	}
	return nil
}

func loadClientConfig() (*oauth2.Config, error) {
	clientJSON := os.Getenv("GOOGLE_OAUTH_CLIENT_JSON")
	clientFile := os.Getenv("GOOGLE_OAUTH_CLIENT_FILE")

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
		return nil, fmt.Errorf("set GOOGLE_OAUTH_CLIENT_JSON or GOOGLE_OAUTH_CLIENT_FILE")
	}

	cfg, err := google.ConfigFromJSON(b, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client config: %w", err)
	}
	return cfg, nil
}

// waitForCode serves the redirect endpoint until the browser delivers
// an authorization code, the context expires, or the user interrupts.
func waitForCode(ctx context.Context, cfg *oauth2.Config, port string) (string, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if e := r.URL.Query().Get("error"); e != "" {
			http.Error(w, "authorization failed: "+e, http.StatusBadRequest)
			errCh <- fmt.Errorf("authorization denied: %s", e)
			return
		}
		fmt.Fprintln(w, "Authorized. You can close this window.")
		codeCh <- r.URL.Query().Get("code")
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("redirect server: %w", err)
		}
	}()
	defer srv.Close()

	fmt.Printf("Open this URL to authorize:\n%s\n", cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("authorization not completed: %w", ctx.Err())
	}
}

func tokenPath() string {
	if p := os.Getenv("GOOGLE_OAUTH_TOKEN_FILE"); p != "" {
		return p
	}
	return "token.json"
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// verifyAccess fetches spreadsheet metadata with the fresh token so a
// misconfigured scope or spreadsheet ID surfaces now rather than on
// first use of the sheets backend.
func verifyAccess(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token, spreadsheetID string) error {
	svc, err := gsheet.NewService(ctx, goption.WithTokenSource(cfg.TokenSource(ctx, tok)))
	if err != nil {
		return fmt.Errorf("create sheets service: %w", err)
	}
	_, err = svc.Spreadsheets.Get(spreadsheetID).Fields("properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet %s: %w", spreadsheetID, err)
	}
	return nil
}
