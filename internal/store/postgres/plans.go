package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"lg/fitplan-go-api/internal/domain"
)

/* ─── Meal plans ──────────────────────────────────────────────────────── */

// mealPlanRow maps to meal_plans. Days and macros are JSONB documents.
type mealPlanRow struct {
	ID             int64       `db:"id"`
	UserID         int64       `db:"user_id"`
	Name           string      `db:"name"`
	Description    string      `db:"description"`
	StartDate      domain.Date `db:"start_date"`
	EndDate        domain.Date `db:"end_date"`
	Goal           string      `db:"goal"`
	TargetCalories float64     `db:"target_calories"`
	Macros         []byte      `db:"macros"`
	MealsPerDay    int         `db:"meals_per_day"`
	Days           []byte      `db:"days"`
	CreatedAt      time.Time   `db:"created_at"`
}

func (r mealPlanRow) toDomain() (*domain.MealPlan, error) {
	p := &domain.MealPlan{
		ID:             r.ID,
		UserID:         r.UserID,
		Name:           r.Name,
		Description:    r.Description,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Goal:           domain.Goal(r.Goal),
		TargetCalories: r.TargetCalories,
		MealsPerDay:    r.MealsPerDay,
		CreatedAt:      r.CreatedAt,
	}
	if err := json.Unmarshal(r.Macros, &p.Macros); err != nil {
		return nil, fmt.Errorf("decoding macros: %w", err)
	}
	if err := json.Unmarshal(r.Days, &p.Days); err != nil {
		return nil, fmt.Errorf("decoding days: %w", err)
	}
	return p, nil
}

type mealPlanRepo struct {
	db DBTX
}

func (r *mealPlanRepo) Create(ctx context.Context, p *domain.MealPlan) error {
	macros, err := json.Marshal(p.Macros)
	if err != nil {
		return fmt.Errorf("encoding macros: %w", err)
	}
	days, err := json.Marshal(p.Days)
	if err != nil {
		return fmt.Errorf("encoding days: %w", err)
	}
	err = r.db.QueryRow(ctx, `INSERT INTO meal_plans (user_id, name, description, start_date, end_date,
		goal, target_calories, macros, meals_per_day, days)
		VALUES (@userID, @name, @description, @startDate::date, @endDate::date, @goal, @targetCalories,
		@macros::jsonb, @mealsPerDay, @days::jsonb)
		RETURNING id, created_at`,
		pgx.NamedArgs{
			"userID":         p.UserID,
			"name":           p.Name,
			"description":    p.Description,
			"startDate":      p.StartDate.String(),
			"endDate":        p.EndDate.String(),
			"goal":           string(p.Goal),
			"targetCalories": p.TargetCalories,
			"macros":         string(macros),
			"mealsPerDay":    p.MealsPerDay,
			"days":           string(days),
		}).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting meal plan: %w", err)
	}
	return nil
}

func (r *mealPlanRepo) GetByID(ctx context.Context, id int64) (*domain.MealPlan, error) {
	row, err := queryOne[mealPlanRow](ctx, r.db, "SELECT * FROM meal_plans WHERE id = @id", pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, notFound(err, "meal plan")
	}
	return row.toDomain()
}

func (r *mealPlanRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.MealPlan, error) {
	rows, err := queryMany[mealPlanRow](ctx, r.db,
		"SELECT * FROM meal_plans WHERE user_id = @userID ORDER BY id DESC",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("listing meal plans: %w", err)
	}
	out := make([]*domain.MealPlan, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

/* ─── Training programs ───────────────────────────────────────────────── */

type programRow struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Goal        string    `db:"goal"`
	WorkoutDays int       `db:"workout_days"`
	Exercises   []byte    `db:"exercises"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r programRow) toDomain() (*domain.TrainingProgram, error) {
	p := &domain.TrainingProgram{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Description: r.Description,
		Goal:        domain.ProgramGoal(r.Goal),
		WorkoutDays: r.WorkoutDays,
		CreatedAt:   r.CreatedAt,
	}
	if err := json.Unmarshal(r.Exercises, &p.Exercises); err != nil {
		return nil, fmt.Errorf("decoding program exercises: %w", err)
	}
	return p, nil
}

type programRepo struct {
	db DBTX
}

func (r *programRepo) Create(ctx context.Context, p *domain.TrainingProgram) error {
	exercises, err := json.Marshal(p.Exercises)
	if err != nil {
		return fmt.Errorf("encoding program exercises: %w", err)
	}
	err = r.db.QueryRow(ctx, `INSERT INTO training_programs (user_id, name, description, goal,
		workout_days, exercises)
		VALUES (@userID, @name, @description, @goal, @workoutDays, @exercises::jsonb)
		RETURNING id, created_at`,
		pgx.NamedArgs{
			"userID":      p.UserID,
			"name":        p.Name,
			"description": p.Description,
			"goal":        string(p.Goal),
			"workoutDays": p.WorkoutDays,
			"exercises":   string(exercises),
		}).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting training program: %w", err)
	}
	return nil
}

func (r *programRepo) GetByID(ctx context.Context, id int64) (*domain.TrainingProgram, error) {
	row, err := queryOne[programRow](ctx, r.db,
		"SELECT * FROM training_programs WHERE id = @id", pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, notFound(err, "training program")
	}
	return row.toDomain()
}

func (r *programRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.TrainingProgram, error) {
	rows, err := queryMany[programRow](ctx, r.db,
		"SELECT * FROM training_programs WHERE user_id = @userID ORDER BY id DESC",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("listing training programs: %w", err)
	}
	out := make([]*domain.TrainingProgram, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
