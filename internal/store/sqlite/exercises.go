package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store"
)

type exerciseRepo struct {
	db DBTX
}

func (r *exerciseRepo) Create(ctx context.Context, e *domain.Exercise) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO exercises (name, category, description) VALUES (?, ?, ?)`,
		e.Name, e.Category, e.Description)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading exercise id: %w", err)
	}
	return nil
}

func (r *exerciseRepo) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var e domain.Exercise
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, category, description FROM exercises WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Category, &e.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}
	return &e, nil
}

func (r *exerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	return r.query(ctx, `SELECT id, name, category, description FROM exercises ORDER BY id`)
}

func (r *exerciseRepo) FindByCategory(ctx context.Context, substr string) ([]domain.Exercise, error) {
	return r.query(ctx, `SELECT id, name, category, description FROM exercises
		WHERE instr(lower(category), lower(?)) > 0 ORDER BY id`, substr)
}

func (r *exerciseRepo) query(ctx context.Context, query string, args ...any) ([]domain.Exercise, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var out []domain.Exercise
	for rows.Next() {
		var e domain.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Description); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
