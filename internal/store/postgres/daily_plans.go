package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store"
)

type dailyPlanRow struct {
	ID                int64       `db:"id"`
	UserID            int64       `db:"user_id"`
	Name              string      `db:"name"`
	Description       string      `db:"description"`
	StartDate         domain.Date `db:"start_date"`
	EndDate           domain.Date `db:"end_date"`
	Active            bool        `db:"active"`
	MealPlanID        *int64      `db:"meal_plan_id"`
	TrainingProgramID *int64      `db:"training_program_id"`
	CreatedAt         time.Time   `db:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at"`
}

func (r dailyPlanRow) toDomain() *domain.DailyPlan {
	return &domain.DailyPlan{
		ID:                r.ID,
		UserID:            r.UserID,
		Name:              r.Name,
		Description:       r.Description,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		Active:            r.Active,
		MealPlanID:        r.MealPlanID,
		TrainingProgramID: r.TrainingProgramID,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type dailyPlanRepo struct {
	db DBTX
}

func planArgs(p *domain.DailyPlan) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                p.ID,
		"userID":            p.UserID,
		"name":              p.Name,
		"description":       p.Description,
		"startDate":         p.StartDate.String(),
		"endDate":           p.EndDate.String(),
		"active":            p.Active,
		"mealPlanID":        p.MealPlanID,
		"trainingProgramID": p.TrainingProgramID,
	}
}

func (r *dailyPlanRepo) Create(ctx context.Context, p *domain.DailyPlan) error {
	err := r.db.QueryRow(ctx, `INSERT INTO daily_plans (user_id, name, description, start_date,
		end_date, active, meal_plan_id, training_program_id)
		VALUES (@userID, @name, @description, @startDate::date, @endDate::date, @active,
		@mealPlanID, @trainingProgramID)
		RETURNING id, created_at, updated_at`, planArgs(p)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting daily plan: %w", err)
	}
	return nil
}

func (r *dailyPlanRepo) Update(ctx context.Context, p *domain.DailyPlan) error {
	err := r.db.QueryRow(ctx, `UPDATE daily_plans SET name = @name, description = @description,
		start_date = @startDate::date, end_date = @endDate::date, active = @active,
		meal_plan_id = @mealPlanID, training_program_id = @trainingProgramID, updated_at = NOW()
		WHERE id = @id RETURNING updated_at`, planArgs(p)).Scan(&p.UpdatedAt)
	if err != nil {
		return notFound(err, "daily plan")
	}
	return nil
}

func (r *dailyPlanRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM daily_plans WHERE id = @id", pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("deleting daily plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("daily plan %d: %w", id, store.ErrNotFound)
	}
	return nil
}

func (r *dailyPlanRepo) GetByID(ctx context.Context, id int64) (*domain.DailyPlan, error) {
	row, err := queryOne[dailyPlanRow](ctx, r.db, "SELECT * FROM daily_plans WHERE id = @id", pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, notFound(err, "daily plan")
	}
	return row.toDomain(), nil
}

func (r *dailyPlanRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.DailyPlan, error) {
	rows, err := queryMany[dailyPlanRow](ctx, r.db,
		"SELECT * FROM daily_plans WHERE user_id = @userID ORDER BY id DESC",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("listing daily plans: %w", err)
	}
	out := make([]*domain.DailyPlan, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *dailyPlanRepo) GetActiveByUser(ctx context.Context, userID int64) (*domain.DailyPlan, error) {
	row, err := queryOne[dailyPlanRow](ctx, r.db,
		"SELECT * FROM daily_plans WHERE user_id = @userID AND active ORDER BY id DESC LIMIT 1",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, notFound(err, "active daily plan")
	}
	return row.toDomain(), nil
}

func (r *dailyPlanRepo) DeactivateAllByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE daily_plans SET active = FALSE, updated_at = NOW() WHERE user_id = @userID AND active",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return 0, fmt.Errorf("deactivating daily plans: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *dailyPlanRepo) DeactivateExpired(ctx context.Context, today domain.Date) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE daily_plans SET active = FALSE, updated_at = NOW() WHERE active AND end_date < @today::date",
		pgx.NamedArgs{"today": today.String()})
	if err != nil {
		return 0, fmt.Errorf("deactivating expired daily plans: %w", err)
	}
	return tag.RowsAffected(), nil
}
