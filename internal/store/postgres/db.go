// Package postgres implements the store contracts on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lg/fitplan-go-api/internal/store"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ DBTX = (*pgxpool.Pool)(nil)
	_ DBTX = (pgx.Tx)(nil)
)

// Connect creates a connection pool. A pool (not a single conn) survives
// providers that close idle connections after a few minutes.
func Connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parsing DB URL: %w", err)
	}
	// Simple protocol avoids "cached plan must not change result type" errors
	// from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return pool, nil
}

// New returns a Store backed by pool.
func New(pool *pgxpool.Pool) store.Store {
	return store.Store{
		Repos: reposFor(pool),
		UoW:   &unitOfWork{pool: pool},
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
	pool *pgxpool.Pool
}

// WithinTx commits when fn returns nil and rolls back otherwise.
func (u *unitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, r store.Repos) error) error {
	return pgx.BeginFunc(ctx, u.pool, func(tx pgx.Tx) error {
		return fn(ctx, reposFor(tx))
	})
}

/* ─── Query helpers ───────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Missing rows come back as pgx.ErrNoRows.
func queryOne[T any](ctx context.Context, db DBTX, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := db.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](ctx context.Context, db DBTX, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := db.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

func notFound(err error, entity string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, store.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", entity, err)
}
