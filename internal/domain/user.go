package domain

import "time"

// User is an account. AuthToken and Password never leave the server.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AuthToken string    `json:"-"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// PersonalSettings is the per-user profile plus the last computed targets.
// Measurement fields are nullable until the user fills them in.
type PersonalSettings struct {
	UserID          int64          `json:"user_id"`
	CurrentWeightKG *float64       `json:"current_weight_kg"`
	TargetWeightKG  *float64       `json:"target_weight_kg"`
	HeightCM        *float64       `json:"height_cm"`
	Age             *int           `json:"age"`
	Sex             *Sex           `json:"sex"`
	ActivityLevel   *ActivityLevel `json:"activity_level"`
	Goal            *Goal          `json:"goal"`

	BMR             *float64   `json:"bmr"`
	TDEE            *float64   `json:"tdee"`
	DailyCalories   *float64   `json:"daily_calories"`
	ProteinG        *float64   `json:"protein_g"`
	FatG            *float64   `json:"fat_g"`
	CarbsG          *float64   `json:"carbs_g"`
	LastCalculation *time.Time `json:"last_calculation"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Biometrics returns the energy-model inputs, or ok=false when any required
// field is missing.
func (s *PersonalSettings) Biometrics() (Biometrics, bool) {
	if s.CurrentWeightKG == nil || s.HeightCM == nil || s.Age == nil ||
		s.Sex == nil || s.ActivityLevel == nil || s.Goal == nil {
		return Biometrics{}, false
	}
	return Biometrics{
		WeightKG:      *s.CurrentWeightKG,
		HeightCM:      *s.HeightCM,
		Age:           *s.Age,
		Sex:           *s.Sex,
		ActivityLevel: *s.ActivityLevel,
		Goal:          *s.Goal,
	}, true
}

// ApplyCalculation records biometrics and their computed targets.
func (s *PersonalSettings) ApplyCalculation(b Biometrics, r EnergyResult, at time.Time) {
	s.CurrentWeightKG = &b.WeightKG
	s.HeightCM = &b.HeightCM
	s.Age = &b.Age
	s.Sex = &b.Sex
	s.ActivityLevel = &b.ActivityLevel
	s.Goal = &b.Goal
	s.BMR = &r.BMR
	s.TDEE = &r.TDEE
	s.DailyCalories = &r.DailyCalories
	s.ProteinG = &r.Macros.ProteinG
	s.FatG = &r.Macros.FatG
	s.CarbsG = &r.Macros.CarbsG
	s.LastCalculation = &at
}

// MacroSplit derives fractional shares from the stored gram targets.
// ok is false when no grams are stored.
func (s *PersonalSettings) MacroSplit() (MacroSplit, bool) {
	if s.ProteinG == nil || s.FatG == nil || s.CarbsG == nil {
		return MacroSplit{}, false
	}
	total := *s.ProteinG + *s.FatG + *s.CarbsG
	if total <= 0 {
		return MacroSplit{}, false
	}
	return MacroSplit{
		Protein: *s.ProteinG / total,
		Carbs:   *s.CarbsG / total,
		Fats:    *s.FatG / total,
	}, true
}
