// Package store defines persistence contracts for users, settings, the
// exercise catalogue and generated plans. Implementations live in the
// postgres and sqlite subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"lg/fitplan-go-api/internal/domain"
)

// ErrNotFound is returned (wrapped) when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	// Lock serialises plan writes for a user for the rest of the transaction.
	Lock(ctx context.Context, id int64) error
}

type SettingsRepo interface {
	Get(ctx context.Context, userID int64) (*domain.PersonalSettings, error)
	Upsert(ctx context.Context, s *domain.PersonalSettings) error
}

type ExerciseRepo interface {
	Create(ctx context.Context, e *domain.Exercise) error
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
	// List returns the whole catalogue ordered by ID.
	List(ctx context.Context) ([]domain.Exercise, error)
	// FindByCategory matches a case-insensitive substring of the category, ordered by ID.
	FindByCategory(ctx context.Context, substr string) ([]domain.Exercise, error)
}

type MealPlanRepo interface {
	Create(ctx context.Context, p *domain.MealPlan) error
	GetByID(ctx context.Context, id int64) (*domain.MealPlan, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.MealPlan, error)
}

type ProgramRepo interface {
	Create(ctx context.Context, p *domain.TrainingProgram) error
	GetByID(ctx context.Context, id int64) (*domain.TrainingProgram, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.TrainingProgram, error)
}

type DailyPlanRepo interface {
	Create(ctx context.Context, p *domain.DailyPlan) error
	Update(ctx context.Context, p *domain.DailyPlan) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.DailyPlan, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.DailyPlan, error)
	GetActiveByUser(ctx context.Context, userID int64) (*domain.DailyPlan, error)
	DeactivateAllByUser(ctx context.Context, userID int64) (int64, error)
	// DeactivateExpired deactivates active plans that ended before today.
	DeactivateExpired(ctx context.Context, today domain.Date) (int64, error)
}

// Repos groups the repositories bound to one connection or transaction.
type Repos struct {
	Users      UserRepo
	Settings   SettingsRepo
	Exercises  ExerciseRepo
	MealPlans  MealPlanRepo
	Programs   ProgramRepo
	DailyPlans DailyPlanRepo
}

// UnitOfWork runs fn inside a transaction. fn receives repositories bound to
// the transaction; returning an error (or panicking) rolls it back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// Store is a complete backend: repositories plus a transaction boundary.
type Store struct {
	Repos
	UoW UnitOfWork
}

// Now is the clock used for created/updated timestamps.
var Now = func() time.Time { return time.Now().UTC() }
