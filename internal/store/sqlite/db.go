// Package sqlite implements the store contracts on an embedded SQLite
// database (modernc.org/sqlite). It backs the CLI and the test suites.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"lg/fitplan-go-api/internal/store"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// OpenDB opens the database at path (":memory:" for an in-memory one),
// enables WAL and foreign keys, and applies migrations.
// The pool is limited to one connection: SQLite has a single writer and
// in-memory databases are per-connection.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// New returns a Store backed by db.
func New(db *sql.DB) store.Store {
	return store.Store{
		Repos: reposFor(db),
		UoW:   &unitOfWork{db: db},
	}
}

func reposFor(q DBTX) store.Repos {
	return store.Repos{
		Users:      &userRepo{db: q},
		Settings:   &settingsRepo{db: q},
		Exercises:  &exerciseRepo{db: q},
		MealPlans:  &mealPlanRepo{db: q},
		Programs:   &programRepo{db: q},
		DailyPlans: &dailyPlanRepo{db: q},
	}
}

type unitOfWork struct {
	db *sql.DB
}

func (u *unitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, r store.Repos) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, reposFor(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
