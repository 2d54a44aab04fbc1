package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"bolso/internal/backend"
	"bolso/internal/cli"
	"bolso/internal/core"
	"bolso/internal/services"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: bolso <command> [args]

commands:
  report                                     dashboard summary
  list [search-text]                         current-month transactions
  add-expense <amount> <description> <category> [date]
  add-income  <amount> <description> <category> [date]
  delete <transaction-id>
  seed                                       seed default categories

The acting owner comes from BOLSO_OWNER; the backend from DATA_BACKEND
(memory, sqlite or sheets).`)
	os.Exit(2)
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if len(os.Args) < 2 {
		usage()
	}
	if cfg.OwnerID == "" {
		logger.Error("BOLSO_OWNER is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := backend.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to build backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	tracker := services.NewTracker(result.Store)

	switch os.Args[1] {
	case "report":
		err = runReport(ctx, tracker, cfg.OwnerID)
	case "list":
		search := ""
		if len(os.Args) > 2 {
			search = os.Args[2]
		}
		err = runList(ctx, tracker, cfg.OwnerID, search)
	case "add-expense":
		err = runAdd(ctx, tracker, cfg.OwnerID, core.Expense, os.Args[2:])
	case "add-income":
		err = runAdd(ctx, tracker, cfg.OwnerID, core.Income, os.Args[2:])
	case "delete":
		if len(os.Args) < 3 {
			usage()
		}
		err = tracker.Delete(ctx, cfg.OwnerID, os.Args[2])
	case "seed":
		err = tracker.SeedDefaults(ctx, cfg.OwnerID)
	default:
		usage()
	}

	if err != nil {
		logger.Error("Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func runReport(ctx context.Context, tracker *services.Tracker, owner string) error {
	summary, err := tracker.Dashboard(ctx, owner)
	if err != nil {
		return err
	}

	fmt.Printf("Balance: %s\n", summary.Balance)

	// The engine leaves bucket order unspecified; the report sorts
	// chronologically.
	monthly := append([]core.MonthBucket(nil), summary.Monthly...)
	sort.Slice(monthly, func(i, j int) bool {
		if monthly[i].Year != monthly[j].Year {
			return monthly[i].Year < monthly[j].Year
		}
		return monthly[i].Month < monthly[j].Month
	})
	for _, b := range monthly {
		fmt.Printf("%04d-%02d  income %10s  expenses %10s\n",
			b.Year, b.Month, b.Income, b.Expenses)
	}

	if summary.Highlights.LargestExpense != nil {
		le := summary.Highlights.LargestExpense
		fmt.Printf("Largest expense: %s (%s, %s)\n", le.Amount, le.Description, le.Category)
	}
	fmt.Printf("Most frequent category: %s\n", summary.Highlights.MostFrequentCategory)
	return nil
}

func runList(ctx context.Context, tracker *services.Tracker, owner, search string) error {
	spec := core.DefaultSpec(time.Now())
	spec.SearchText = search

	txs, err := tracker.List(ctx, owner, spec)
	if err != nil {
		return err
	}
	for _, t := range txs {
		sign := "-"
		if t.Kind == core.Income {
			sign = "+"
		}
		fmt.Printf("%s  %s  %s%10s  %-12s  %s\n",
			t.ID, t.Date.Truncated().Format("2006-01-02"), sign, t.Amount, t.Category, t.Description)
	}
	return nil
}

func runAdd(ctx context.Context, tracker *services.Tracker, owner string, kind core.Kind, args []string) error {
	if len(args) < 3 {
		usage()
	}
	cents, err := core.ParseDecimalToCents(args[0])
	if err != nil {
		return fmt.Errorf("amount %q: %w", args[0], err)
	}
	date := core.DateOf(time.Now())
	if len(args) > 3 {
		date, err = core.ParseDate(args[3])
		if err != nil {
			return fmt.Errorf("date %q: %w", args[3], err)
		}
	}

	t := core.Transaction{
		OwnerID:     owner,
		Amount:      core.Money{Cents: cents},
		Description: args[1],
		Category:    args[2],
		Date:        date,
	}

	var saved core.Transaction
	if kind == core.Income {
		saved, err = tracker.AddIncome(ctx, t)
	} else {
		saved, err = tracker.AddExpense(ctx, t)
	}
	if err != nil {
		return err
	}
	fmt.Println(saved.ID)
	return nil
}
