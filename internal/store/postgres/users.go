package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"lg/fitplan-go-api/internal/domain"
)

// userRow maps to the users table.
type userRow struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	AuthToken string    `db:"auth_token"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		AuthToken: r.AuthToken,
		Password:  r.Password,
		CreatedAt: r.CreatedAt,
	}
}

type userRepo struct {
	db DBTX
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES (@username, @email, @password, @authToken) RETURNING id, created_at`,
		pgx.NamedArgs{
			"username":  u.Username,
			"email":     u.Email,
			"password":  u.Password,
			"authToken": u.AuthToken,
		}).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return notFound(err, "inserting user")
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "SELECT * FROM users WHERE id = @id", pgx.NamedArgs{"id": id})
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "SELECT * FROM users WHERE username = @username", pgx.NamedArgs{"username": username})
}

func (r *userRepo) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getOne(ctx, "SELECT * FROM users WHERE auth_token = @token", pgx.NamedArgs{"token": token})
}

// Lock takes a row lock on the user until the surrounding transaction ends.
func (r *userRepo) Lock(ctx context.Context, id int64) error {
	var locked int64
	err := r.db.QueryRow(ctx, "SELECT id FROM users WHERE id = @id FOR UPDATE", pgx.NamedArgs{"id": id}).Scan(&locked)
	if err != nil {
		return notFound(err, "locking user")
	}
	return nil
}

func (r *userRepo) getOne(ctx context.Context, sql string, args pgx.NamedArgs) (*domain.User, error) {
	row, err := queryOne[userRow](ctx, r.db, sql, args)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return row.toDomain(), nil
}
