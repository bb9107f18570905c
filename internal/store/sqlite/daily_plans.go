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

type dailyPlanRepo struct {
	db DBTX
}

const dailyPlanColumns = `id, user_id, name, description, start_date, end_date, active,
	meal_plan_id, training_program_id, created_at, updated_at`

func (r *dailyPlanRepo) Create(ctx context.Context, p *domain.DailyPlan) error {
	now := store.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	res, err := r.db.ExecContext(ctx, `INSERT INTO daily_plans (user_id, name, description, start_date,
		end_date, active, meal_plan_id, training_program_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.Description, p.StartDate.String(), p.EndDate.String(), boolToInt(p.Active),
		nullableInt64(p.MealPlanID), nullableInt64(p.TrainingProgramID),
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting daily plan: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading daily plan id: %w", err)
	}
	return nil
}

func (r *dailyPlanRepo) Update(ctx context.Context, p *domain.DailyPlan) error {
	p.UpdatedAt = store.Now()
	res, err := r.db.ExecContext(ctx, `UPDATE daily_plans SET name = ?, description = ?, start_date = ?,
		end_date = ?, active = ?, meal_plan_id = ?, training_program_id = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.StartDate.String(), p.EndDate.String(), boolToInt(p.Active),
		nullableInt64(p.MealPlanID), nullableInt64(p.TrainingProgramID),
		p.UpdatedAt.Format(time.RFC3339), p.ID)
	if err != nil {
		return fmt.Errorf("updating daily plan: %w", err)
	}
	return requireRow(res, "daily plan", p.ID)
}

func (r *dailyPlanRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting daily plan: %w", err)
	}
	return requireRow(res, "daily plan", id)
}

func (r *dailyPlanRepo) GetByID(ctx context.Context, id int64) (*domain.DailyPlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dailyPlanColumns+` FROM daily_plans WHERE id = ?`, id)
	p, err := scanDailyPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("daily plan %d: %w", id, store.ErrNotFound)
	}
	return p, err
}

func (r *dailyPlanRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.DailyPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dailyPlanColumns+` FROM daily_plans WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing daily plans: %w", err)
	}
	defer rows.Close()

	var out []*domain.DailyPlan
	for rows.Next() {
		p, err := scanDailyPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *dailyPlanRepo) GetActiveByUser(ctx context.Context, userID int64) (*domain.DailyPlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dailyPlanColumns+` FROM daily_plans
		WHERE user_id = ? AND active = 1 ORDER BY id DESC LIMIT 1`, userID)
	p, err := scanDailyPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active daily plan for user %d: %w", userID, store.ErrNotFound)
	}
	return p, err
}

func (r *dailyPlanRepo) DeactivateAllByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE daily_plans SET active = 0, updated_at = ?
		WHERE user_id = ? AND active = 1`, store.Now().Format(time.RFC3339), userID)
	if err != nil {
		return 0, fmt.Errorf("deactivating daily plans: %w", err)
	}
	return res.RowsAffected()
}

func (r *dailyPlanRepo) DeactivateExpired(ctx context.Context, today domain.Date) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE daily_plans SET active = 0, updated_at = ?
		WHERE active = 1 AND end_date < ?`, store.Now().Format(time.RFC3339), today.String())
	if err != nil {
		return 0, fmt.Errorf("deactivating expired daily plans: %w", err)
	}
	return res.RowsAffected()
}

func scanDailyPlan(s scanner) (*domain.DailyPlan, error) {
	var (
		p                    domain.DailyPlan
		start, end           string
		active               int
		mealPlanID, progID   sql.NullInt64
		createdAt, updatedAt string
	)
	err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &start, &end, &active,
		&mealPlanID, &progID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning daily plan: %w", err)
	}
	p.Active = active == 1
	p.MealPlanID = int64Ptr(mealPlanID)
	p.TrainingProgramID = int64Ptr(progID)
	if p.StartDate, err = domain.ParseDate(start); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.EndDate, err = domain.ParseDate(end); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func requireRow(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, store.ErrNotFound)
	}
	return nil
}
