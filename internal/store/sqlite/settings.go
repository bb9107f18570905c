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

type settingsRepo struct {
	db DBTX
}

func (r *settingsRepo) Get(ctx context.Context, userID int64) (*domain.PersonalSettings, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, current_weight_kg, target_weight_kg, height_cm, age,
		sex, activity_level, goal, bmr, tdee, daily_calories, protein_g, fat_g, carbs_g,
		last_calculation, updated_at
		FROM personal_settings WHERE user_id = ?`, userID)

	var (
		s                                  domain.PersonalSettings
		weight, target, height             sql.NullFloat64
		bmr, tdee, daily, protein, fat, cb sql.NullFloat64
		age                                sql.NullInt64
		sex, activity, goal, lastCalc      sql.NullString
		updatedAt                          string
	)
	err := row.Scan(&s.UserID, &weight, &target, &height, &age, &sex, &activity, &goal,
		&bmr, &tdee, &daily, &protein, &fat, &cb, &lastCalc, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("personal settings for user %d: %w", userID, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning personal settings: %w", err)
	}

	s.CurrentWeightKG = floatPtr(weight)
	s.TargetWeightKG = floatPtr(target)
	s.HeightCM = floatPtr(height)
	s.Age = intPtr(age)
	s.Sex = stringPtr[domain.Sex](sex)
	s.ActivityLevel = stringPtr[domain.ActivityLevel](activity)
	s.Goal = stringPtr[domain.Goal](goal)
	s.BMR = floatPtr(bmr)
	s.TDEE = floatPtr(tdee)
	s.DailyCalories = floatPtr(daily)
	s.ProteinG = floatPtr(protein)
	s.FatG = floatPtr(fat)
	s.CarbsG = floatPtr(cb)
	if s.LastCalculation, err = timePtr(lastCalc); err != nil {
		return nil, fmt.Errorf("parsing last_calculation: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, s *domain.PersonalSettings) error {
	s.UpdatedAt = store.Now()
	_, err := r.db.ExecContext(ctx, `INSERT INTO personal_settings (user_id, current_weight_kg,
		target_weight_kg, height_cm, age, sex, activity_level, goal, bmr, tdee, daily_calories,
		protein_g, fat_g, carbs_g, last_calculation, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			current_weight_kg = excluded.current_weight_kg,
			target_weight_kg  = excluded.target_weight_kg,
			height_cm         = excluded.height_cm,
			age               = excluded.age,
			sex               = excluded.sex,
			activity_level    = excluded.activity_level,
			goal              = excluded.goal,
			bmr               = excluded.bmr,
			tdee              = excluded.tdee,
			daily_calories    = excluded.daily_calories,
			protein_g         = excluded.protein_g,
			fat_g             = excluded.fat_g,
			carbs_g           = excluded.carbs_g,
			last_calculation  = excluded.last_calculation,
			updated_at        = excluded.updated_at`,
		s.UserID,
		nullableFloat(s.CurrentWeightKG),
		nullableFloat(s.TargetWeightKG),
		nullableFloat(s.HeightCM),
		nullableInt(s.Age),
		nullableString(s.Sex),
		nullableString(s.ActivityLevel),
		nullableString(s.Goal),
		nullableFloat(s.BMR),
		nullableFloat(s.TDEE),
		nullableFloat(s.DailyCalories),
		nullableFloat(s.ProteinG),
		nullableFloat(s.FatG),
		nullableFloat(s.CarbsG),
		nullableTime(s.LastCalculation),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting personal settings: %w", err)
	}
	return nil
}
