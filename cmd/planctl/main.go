// planctl runs the planner against a local SQLite database.
// Usage: planctl --user NAME daily-plan generate
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"lg/fitplan-go-api/internal/cli"
	"lg/fitplan-go-api/internal/planner"
	"lg/fitplan-go-api/internal/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// PLANCTL_DB or ~/.fitplan/fitplan.db
	dbPath := os.Getenv("PLANCTL_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".fitplan", "fitplan.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	database, err := sqlite.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observers []planner.UseCaseObserver
	if os.Getenv("LOG_USE_CASES") == "true" {
		observers = append(observers, planner.NewLogUseCaseObserver(os.Stderr))
	}

	app := cli.NewApp(sqlite.New(database), observers...)
	app.IsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
