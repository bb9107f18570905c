package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store"
)

/* ─── Meal plans ──────────────────────────────────────────────────────── */

type mealPlanRepo struct {
	db DBTX
}

const mealPlanColumns = `id, user_id, name, description, start_date, end_date, goal,
	target_calories, macros, meals_per_day, days, created_at`

func (r *mealPlanRepo) Create(ctx context.Context, p *domain.MealPlan) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = store.Now()
	}
	macros, err := json.Marshal(p.Macros)
	if err != nil {
		return fmt.Errorf("encoding macros: %w", err)
	}
	days, err := json.Marshal(p.Days)
	if err != nil {
		return fmt.Errorf("encoding days: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO meal_plans (user_id, name, description, start_date,
		end_date, goal, target_calories, macros, meals_per_day, days, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.Description, p.StartDate.String(), p.EndDate.String(), string(p.Goal),
		p.TargetCalories, string(macros), p.MealsPerDay, string(days), p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting meal plan: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading meal plan id: %w", err)
	}
	return nil
}

func (r *mealPlanRepo) GetByID(ctx context.Context, id int64) (*domain.MealPlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mealPlanColumns+` FROM meal_plans WHERE id = ?`, id)
	p, err := scanMealPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("meal plan %d: %w", id, store.ErrNotFound)
	}
	return p, err
}

func (r *mealPlanRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.MealPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+mealPlanColumns+` FROM meal_plans WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing meal plans: %w", err)
	}
	defer rows.Close()

	var out []*domain.MealPlan
	for rows.Next() {
		p, err := scanMealPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanMealPlan(s scanner) (*domain.MealPlan, error) {
	var (
		p                       domain.MealPlan
		start, end, goal        string
		macros, days, createdAt string
	)
	err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &start, &end, &goal,
		&p.TargetCalories, &macros, &p.MealsPerDay, &days, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning meal plan: %w", err)
	}
	p.Goal = domain.Goal(goal)
	if p.StartDate, err = domain.ParseDate(start); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.EndDate, err = domain.ParseDate(end); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if err := json.Unmarshal([]byte(macros), &p.Macros); err != nil {
		return nil, fmt.Errorf("decoding macros: %w", err)
	}
	if err := json.Unmarshal([]byte(days), &p.Days); err != nil {
		return nil, fmt.Errorf("decoding days: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}

/* ─── Training programs ───────────────────────────────────────────────── */

type programRepo struct {
	db DBTX
}

const programColumns = `id, user_id, name, description, goal, workout_days, exercises, created_at`

func (r *programRepo) Create(ctx context.Context, p *domain.TrainingProgram) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = store.Now()
	}
	exercises, err := json.Marshal(p.Exercises)
	if err != nil {
		return fmt.Errorf("encoding program exercises: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO training_programs (user_id, name, description, goal,
		workout_days, exercises, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.Description, string(p.Goal), p.WorkoutDays, string(exercises),
		p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting training program: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading training program id: %w", err)
	}
	return nil
}

func (r *programRepo) GetByID(ctx context.Context, id int64) (*domain.TrainingProgram, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+programColumns+` FROM training_programs WHERE id = ?`, id)
	p, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("training program %d: %w", id, store.ErrNotFound)
	}
	return p, err
}

func (r *programRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.TrainingProgram, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+programColumns+` FROM training_programs WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing training programs: %w", err)
	}
	defer rows.Close()

	var out []*domain.TrainingProgram
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProgram(s scanner) (*domain.TrainingProgram, error) {
	var (
		p                          domain.TrainingProgram
		goal, exercises, createdAt string
	)
	err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &goal, &p.WorkoutDays, &exercises, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning training program: %w", err)
	}
	p.Goal = domain.ProgramGoal(goal)
	if err := json.Unmarshal([]byte(exercises), &p.Exercises); err != nil {
		return nil, fmt.Errorf("decoding program exercises: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}
