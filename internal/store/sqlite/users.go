package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store"
)

type userRepo struct {
	db DBTX
}

const userColumns = `id, username, email, auth_token, password, created_at`

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = store.Now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, auth_token, password, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.AuthToken, u.Password, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	u.ID = id
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *userRepo) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE auth_token = ?`, token)
}

// Lock checks the user exists. Writers are already serialised by SQLite.
func (r *userRepo) Lock(ctx context.Context, id int64) error {
	var found int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM users WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("user %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("locking user: %w", err)
	}
	return nil
}

func (r *userRepo) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.AuthToken, &u.Password, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing user created_at: %w", err)
	}
	return &u, nil
}
