package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lg/fitplan-go-api/internal/domain"
)

type exerciseRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Category    string `db:"category"`
	Description string `db:"description"`
}

func (r exerciseRow) toDomain() domain.Exercise {
	return domain.Exercise{ID: r.ID, Name: r.Name, Category: r.Category, Description: r.Description}
}

type exerciseRepo struct {
	db DBTX
}

func (r *exerciseRepo) Create(ctx context.Context, e *domain.Exercise) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO exercises (name, category, description) VALUES (@name, @category, @description) RETURNING id`,
		pgx.NamedArgs{"name": e.Name, "category": e.Category, "description": e.Description}).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

func (r *exerciseRepo) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	row, err := queryOne[exerciseRow](ctx, r.db, "SELECT * FROM exercises WHERE id = @id", pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, notFound(err, "exercise")
	}
	e := row.toDomain()
	return &e, nil
}

func (r *exerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	return r.many(ctx, "SELECT * FROM exercises ORDER BY id", pgx.NamedArgs{})
}

func (r *exerciseRepo) FindByCategory(ctx context.Context, substr string) ([]domain.Exercise, error) {
	return r.many(ctx,
		"SELECT * FROM exercises WHERE strpos(lower(category), lower(@q)) > 0 ORDER BY id",
		pgx.NamedArgs{"q": substr})
}

func (r *exerciseRepo) many(ctx context.Context, sql string, args pgx.NamedArgs) ([]domain.Exercise, error) {
	rows, err := queryMany[exerciseRow](ctx, r.db, sql, args)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	out := make([]domain.Exercise, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}
