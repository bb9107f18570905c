// CLI tool to apply pending Postgres migrations from db/.
// Files run in name order; each file and its record in the migrations table
// commit together. The SQLite store migrates itself on open and does not use
// this tool.
// Usage: go run ./cmd/migrate [-dir db] [-status] (from the repo root)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
)

// migration is one db/*.sql file.
type migration struct {
	Name        string
	Path        string
	Description string
}

func main() {
	dir := flag.String("dir", "db", "directory holding the *.sql migrations")
	status := flag.Bool("status", false, "list applied and pending migrations without running any")
	flag.Parse()

	if err := run(*dir, *status); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string, statusOnly bool) error {
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	all, err := loadMigrations(dir)
	if err != nil {
		return err
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer conn.Close(ctx)

	applied, err := appliedMigrations(ctx, conn)
	if err != nil {
		return err
	}
	pending := pendingMigrations(all, applied)

	if statusOnly {
		for _, m := range all {
			state := "pending"
			if applied[m.Name] {
				state = "applied"
			}
			fmt.Printf("  %-8s %s\n", state, m.Name)
		}
		fmt.Printf("\n%d applied, %d pending.\n", len(all)-len(pending), len(pending))
		return nil
	}

	for _, m := range pending {
		if err := apply(ctx, conn, m); err != nil {
			return err
		}
		fmt.Printf("  applied: %s (%s)\n", m.Name, m.Description)
	}
	if len(pending) == 0 {
		fmt.Println("No pending migrations.")
	} else {
		fmt.Printf("\n%d migration(s) applied.\n", len(pending))
	}
	return nil
}

// loadMigrations lists dir/*.sql sorted by file name.
func loadMigrations(dir string) ([]migration, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migration files found in %s", dir)
	}
	sort.Strings(files)

	out := make([]migration, len(files))
	for i, f := range files {
		name := filepath.Base(f)
		out[i] = migration{Name: name, Path: f, Description: descriptionFromFilename(name)}
	}
	return out, nil
}

// appliedMigrations reads the migrations table. A missing table means
// nothing has been applied yet.
func appliedMigrations(ctx context.Context, conn *pgx.Conn) (map[string]bool, error) {
	rows, err := conn.Query(ctx, "SELECT migration FROM migrations")
	var names []string
	if err == nil {
		names, err = pgx.CollectRows(rows, pgx.RowTo[string])
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42P01" { // undefined_table
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("reading migrations table: %w", err)
	}

	applied := make(map[string]bool, len(names))
	for _, n := range names {
		applied[n] = true
	}
	return applied, nil
}

func pendingMigrations(all []migration, applied map[string]bool) []migration {
	var out []migration
	for _, m := range all {
		if !applied[m.Name] {
			out = append(out, m)
		}
	}
	return out
}

func apply(ctx context.Context, conn *pgx.Conn, m migration) error {
	content, err := os.ReadFile(m.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", m.Name, err)
	}
	return pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("running %s: %w", m.Name, err)
		}
		_, err := tx.Exec(ctx,
			"INSERT INTO migrations (migration, description) VALUES (@migration, @description)",
			pgx.NamedArgs{"migration": m.Name, "description": m.Description})
		if err != nil {
			return fmt.Errorf("recording %s: %w", m.Name, err)
		}
		return nil
	})
}

var migrationPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{3}-`)

// descriptionFromFilename strips the YYYY-MM-DD-NNN- prefix and .sql suffix.
func descriptionFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".sql")
	name = migrationPrefix.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "-", " ")
}
