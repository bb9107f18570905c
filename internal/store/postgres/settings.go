package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"lg/fitplan-go-api/internal/domain"
)

// settingsRow maps to personal_settings. Nullable columns use pointers so
// pgx can scan NULLs.
type settingsRow struct {
	UserID          int64      `db:"user_id"`
	CurrentWeightKG *float64   `db:"current_weight_kg"`
	TargetWeightKG  *float64   `db:"target_weight_kg"`
	HeightCM        *float64   `db:"height_cm"`
	Age             *int       `db:"age"`
	Sex             *string    `db:"sex"`
	ActivityLevel   *string    `db:"activity_level"`
	Goal            *string    `db:"goal"`
	BMR             *float64   `db:"bmr"`
	TDEE            *float64   `db:"tdee"`
	DailyCalories   *float64   `db:"daily_calories"`
	ProteinG        *float64   `db:"protein_g"`
	FatG            *float64   `db:"fat_g"`
	CarbsG          *float64   `db:"carbs_g"`
	LastCalculation *time.Time `db:"last_calculation"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func convertPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

func stringArg[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func (r settingsRow) toDomain() *domain.PersonalSettings {
	return &domain.PersonalSettings{
		UserID:          r.UserID,
		CurrentWeightKG: r.CurrentWeightKG,
		TargetWeightKG:  r.TargetWeightKG,
		HeightCM:        r.HeightCM,
		Age:             r.Age,
		Sex:             convertPtr[domain.Sex](r.Sex),
		ActivityLevel:   convertPtr[domain.ActivityLevel](r.ActivityLevel),
		Goal:            convertPtr[domain.Goal](r.Goal),
		BMR:             r.BMR,
		TDEE:            r.TDEE,
		DailyCalories:   r.DailyCalories,
		ProteinG:        r.ProteinG,
		FatG:            r.FatG,
		CarbsG:          r.CarbsG,
		LastCalculation: r.LastCalculation,
		UpdatedAt:       r.UpdatedAt,
	}
}

type settingsRepo struct {
	db DBTX
}

func (r *settingsRepo) Get(ctx context.Context, userID int64) (*domain.PersonalSettings, error) {
	row, err := queryOne[settingsRow](ctx, r.db,
		"SELECT * FROM personal_settings WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, notFound(err, "personal settings")
	}
	return row.toDomain(), nil
}

func (r *settingsRepo) Upsert(ctx context.Context, s *domain.PersonalSettings) error {
	err := r.db.QueryRow(ctx, `INSERT INTO personal_settings (user_id, current_weight_kg,
		target_weight_kg, height_cm, age, sex, activity_level, goal, bmr, tdee, daily_calories,
		protein_g, fat_g, carbs_g, last_calculation, updated_at)
		VALUES (@userID, @weight, @targetWeight, @height, @age, @sex, @activity, @goal, @bmr, @tdee,
		@daily, @protein, @fat, @carbs, @lastCalculation, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			current_weight_kg = EXCLUDED.current_weight_kg,
			target_weight_kg  = EXCLUDED.target_weight_kg,
			height_cm         = EXCLUDED.height_cm,
			age               = EXCLUDED.age,
			sex               = EXCLUDED.sex,
			activity_level    = EXCLUDED.activity_level,
			goal              = EXCLUDED.goal,
			bmr               = EXCLUDED.bmr,
			tdee              = EXCLUDED.tdee,
			daily_calories    = EXCLUDED.daily_calories,
			protein_g         = EXCLUDED.protein_g,
			fat_g             = EXCLUDED.fat_g,
			carbs_g           = EXCLUDED.carbs_g,
			last_calculation  = EXCLUDED.last_calculation,
			updated_at        = NOW()
		RETURNING updated_at`,
		pgx.NamedArgs{
			"userID":          s.UserID,
			"weight":          s.CurrentWeightKG,
			"targetWeight":    s.TargetWeightKG,
			"height":          s.HeightCM,
			"age":             s.Age,
			"sex":             stringArg(s.Sex),
			"activity":        stringArg(s.ActivityLevel),
			"goal":            stringArg(s.Goal),
			"bmr":             s.BMR,
			"tdee":            s.TDEE,
			"daily":           s.DailyCalories,
			"protein":         s.ProteinG,
			"fat":             s.FatG,
			"carbs":           s.CarbsG,
			"lastCalculation": s.LastCalculation,
		}).Scan(&s.UpdatedAt)
	if err != nil {
		return notFound(err, "upserting personal settings")
	}
	return nil
}
