package engine

import (
	"fmt"
	"math"

	"lg/fitplan-go-api/internal/domain"
)

// activityMultipliers maps activity levels to their TDEE multiplier. This is
// the single source of truth for valid levels; settings validation uses it too.
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:        1.2,
	domain.ActivityLightlyActive:    1.375,
	domain.ActivityModeratelyActive: 1.55,
	domain.ActivityVeryActive:       1.725,
	domain.ActivityExtraActive:      1.9,
}

type goalParams struct {
	calorieAdjustment float64
	proteinPerKG      float64
	fatRatio          float64
	description       string
}

var goalTable = map[domain.Goal]goalParams{
	domain.GoalLoseWeight:     {calorieAdjustment: -500, proteinPerKG: 2.2, fatRatio: 0.25, description: "Weight Loss"},
	domain.GoalMaintainWeight: {calorieAdjustment: 0, proteinPerKG: 2.0, fatRatio: 0.25, description: "Maintenance"},
	domain.GoalGainWeight:     {calorieAdjustment: 300, proteinPerKG: 2.4, fatRatio: 0.25, description: "Muscle Gain"},
}

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// Biometric bounds accepted by Validate.
const (
	MaxWeightKG = 300
	MaxHeightCM = 250
	MinAge      = 18
	MaxAge      = 100
)

// ActivityMultiplier returns the TDEE multiplier for level.
func ActivityMultiplier(level domain.ActivityLevel) (float64, bool) {
	m, ok := activityMultipliers[level]
	return m, ok
}

// ValidActivityLevel reports whether level is a known activity level.
func ValidActivityLevel(level domain.ActivityLevel) bool {
	_, ok := activityMultipliers[level]
	return ok
}

// ValidGoal reports whether g is a known nutrition goal.
func ValidGoal(g domain.Goal) bool {
	_, ok := goalTable[g]
	return ok
}

// GoalDescription returns the display name of a goal ("Weight Loss", ...).
func GoalDescription(g domain.Goal) string {
	return goalTable[g].description
}

// Validate checks biometrics against the accepted ranges and enum values.
func Validate(b domain.Biometrics) error {
	switch {
	case !(b.WeightKG > 0 && b.WeightKG <= MaxWeightKG):
		return fmt.Errorf("weight must be in (0, %d] kg: %w", MaxWeightKG, ErrInvalidMeasurement)
	case !(b.HeightCM > 0 && b.HeightCM <= MaxHeightCM):
		return fmt.Errorf("height must be in (0, %d] cm: %w", MaxHeightCM, ErrInvalidMeasurement)
	case b.Age < MinAge || b.Age > MaxAge:
		return fmt.Errorf("age must be between %d and %d: %w", MinAge, MaxAge, ErrInvalidMeasurement)
	case !b.Sex.Valid():
		return fmt.Errorf("unknown sex %q: %w", b.Sex, ErrInvalidMeasurement)
	case !ValidActivityLevel(b.ActivityLevel):
		return fmt.Errorf("unknown activity level %q: %w", b.ActivityLevel, ErrInvalidMeasurement)
	case !ValidGoal(b.Goal):
		return fmt.Errorf("unknown goal %q: %w", b.Goal, ErrInvalidMeasurement)
	}
	return nil
}

// ComputeBMR returns basal metabolic rate (kcal/day) via Mifflin–St Jeor.
func ComputeBMR(weightKG, heightCM float64, age int, sex domain.Sex) (float64, error) {
	if !(weightKG > 0) || !(heightCM > 0) || age <= 0 {
		return 0, fmt.Errorf("weight, height and age must be positive: %w", ErrInvalidMeasurement)
	}
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	switch sex {
	case domain.SexMale:
		bmr += 5
	case domain.SexFemale:
		bmr -= 161
	default:
		return 0, fmt.Errorf("unknown sex %q: %w", sex, ErrInvalidMeasurement)
	}
	return bmr, nil
}

// ComputeTDEE scales BMR by the activity multiplier. Unknown levels use the
// sedentary multiplier.
func ComputeTDEE(bmr float64, level domain.ActivityLevel) float64 {
	m, ok := activityMultipliers[level]
	if !ok {
		m = activityMultipliers[domain.ActivitySedentary]
	}
	return bmr * m
}

// AdjustForGoal applies the goal's fixed calorie adjustment to TDEE.
func AdjustForGoal(tdee float64, goal domain.Goal) float64 {
	return tdee + goalTable[goal].calorieAdjustment
}

// ComputeMacros splits dailyCalories using the goal's protein-per-kg and fat
// ratio. Carbs take the remainder, which may be negative for extreme inputs.
func ComputeMacros(dailyCalories, weightKG float64, goal domain.Goal) domain.MacroDistribution {
	p := goalTable[goal]
	proteinG := weightKG * p.proteinPerKG
	proteinKcal := proteinG * kcalPerGramProtein
	fatKcal := dailyCalories * p.fatRatio
	fatG := fatKcal / kcalPerGramFat
	carbsKcal := dailyCalories - proteinKcal - fatKcal
	carbsG := carbsKcal / kcalPerGramCarbs

	return domain.MacroDistribution{
		TotalCalories: dailyCalories,
		ProteinG:      proteinG,
		FatG:          fatG,
		CarbsG:        carbsG,
		ProteinKcal:   proteinKcal,
		FatKcal:       fatKcal,
		CarbsKcal:     carbsKcal,
		ProteinPct:    proteinKcal / dailyCalories * 100,
		FatPct:        fatKcal / dailyCalories * 100,
		CarbsPct:      carbsKcal / dailyCalories * 100,
	}
}

// ComputeMacrosFromSplit derives macros from configured fractional shares.
// Protein grams are weight × (share/100) × 4 while fats and carbs are
// calorie-based; the two bases do not agree and the formula is kept as is.
func ComputeMacrosFromSplit(dailyCalories, weightKG float64, split domain.MacroSplit) domain.MacroDistribution {
	proteinG := weightKG * (split.Protein / 100) * kcalPerGramProtein
	fatG := dailyCalories * split.Fats / kcalPerGramFat
	carbsG := dailyCalories * split.Carbs / kcalPerGramCarbs

	return domain.MacroDistribution{
		TotalCalories: dailyCalories,
		ProteinG:      proteinG,
		FatG:          fatG,
		CarbsG:        carbsG,
		ProteinKcal:   proteinG * kcalPerGramProtein,
		FatKcal:       fatG * kcalPerGramFat,
		CarbsKcal:     carbsG * kcalPerGramCarbs,
		ProteinPct:    split.Protein * 100,
		FatPct:        split.Fats * 100,
		CarbsPct:      split.Carbs * 100,
	}
}

// ValidateMacroSplit rejects shares outside [0, 1]. The shares need not sum to 1.
func ValidateMacroSplit(s domain.MacroSplit) error {
	shares := []struct {
		name string
		v    float64
	}{{"protein", s.Protein}, {"carbs", s.Carbs}, {"fats", s.Fats}}
	for _, sh := range shares {
		if !validShare(sh.v) {
			return fmt.Errorf("%s share %v outside [0, 1]: %w", sh.name, sh.v, ErrInvalidMeasurement)
		}
	}
	return nil
}

// Calculate runs the full chain: validate, BMR, TDEE, goal adjustment, macros.
func Calculate(b domain.Biometrics) (domain.EnergyResult, error) {
	if err := Validate(b); err != nil {
		return domain.EnergyResult{}, err
	}
	bmr, err := ComputeBMR(b.WeightKG, b.HeightCM, b.Age, b.Sex)
	if err != nil {
		return domain.EnergyResult{}, err
	}
	tdee := ComputeTDEE(bmr, b.ActivityLevel)
	daily := AdjustForGoal(tdee, b.Goal)
	if !usableCalories(bmr) || !usableCalories(daily) {
		return domain.EnergyResult{}, fmt.Errorf("daily calories %.1f from bmr %.1f: %w", daily, bmr, ErrComputation)
	}

	return domain.EnergyResult{
		BMR:             bmr,
		TDEE:            tdee,
		DailyCalories:   daily,
		Goal:            b.Goal,
		GoalDescription: GoalDescription(b.Goal),
		Macros:          ComputeMacros(daily, b.WeightKG, b.Goal),
	}, nil
}

func validShare(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

func usableCalories(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
