package engine

import (
	"fmt"
	"math"

	"lg/fitplan-go-api/internal/domain"
)

const daysPerWeek = 7

// IsWorkoutDay reports whether a 1-based plan day is a training day. The
// pattern repeats weekly: days 1, 3 and 5 of every week.
func IsWorkoutDay(day int) bool {
	switch day % daysPerWeek {
	case 1, 3, 5:
		return true
	}
	return false
}

// NewMeal creates a meal slot with its calorie target. Foods are not chosen.
func NewMeal(t domain.MealType, targetCalories float64) domain.Meal {
	return domain.Meal{Type: t, TargetCalories: targetCalories}
}

// ValidateMealPlanConfig rejects configurations the assembler cannot use.
func ValidateMealPlanConfig(cfg domain.MealPlanConfig) error {
	if cfg.DurationWeeks < 1 {
		return fmt.Errorf("duration must be at least 1 week, got %d: %w", cfg.DurationWeeks, ErrInvalidMeasurement)
	}
	if cfg.MealsPerDay < 1 {
		return fmt.Errorf("meals per day must be at least 1, got %d: %w", cfg.MealsPerDay, ErrInvalidMeasurement)
	}
	if cfg.WorkoutDifferentiation() {
		m := cfg.WorkoutDayMultiplier
		if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
			return fmt.Errorf("workout day multiplier must be positive, got %v: %w", m, ErrInvalidMeasurement)
		}
	}
	if err := validateDistribution("normal", cfg.NormalDistribution); err != nil {
		return err
	}
	if err := validateDistribution("workout", cfg.WorkoutDistribution); err != nil {
		return err
	}
	if cfg.Macros != nil {
		return ValidateMacroSplit(*cfg.Macros)
	}
	return nil
}

func validateDistribution(name string, d domain.MealDistribution) error {
	for t, share := range d {
		if !validShare(share) {
			return fmt.Errorf("%s distribution share for %s is %v: %w", name, t, share, ErrInvalidMeasurement)
		}
	}
	return nil
}

// AssembleDays builds DurationWeeks×7 days from cfg, dated from cfg.StartDate.
// Empty distributions fall back to the defaults. cfg must have passed
// ValidateMealPlanConfig.
func AssembleDays(result domain.EnergyResult, cfg domain.MealPlanConfig) []domain.MealPlanDay {
	normal := cfg.NormalDistribution
	if len(normal) == 0 {
		normal = domain.DefaultNormalDistribution()
	}
	workout := cfg.WorkoutDistribution
	if len(workout) == 0 {
		workout = domain.DefaultWorkoutDistribution()
	}

	total := cfg.DurationWeeks * daysPerWeek
	days := make([]domain.MealPlanDay, 0, total)
	for d := 1; d <= total; d++ {
		day := assembleDay(d, result.DailyCalories, cfg.WorkoutDifferentiation(), cfg.WorkoutDayMultiplier,
			normal, workout, cfg.IncludeSnacks)
		day.Date = cfg.StartDate.AddDays(d - 1)
		days = append(days, day)
	}
	return days
}

func assembleDay(day int, baseCalories float64, workoutDays bool, multiplier float64,
	normal, workout domain.MealDistribution, snacks bool) domain.MealPlanDay {

	isWorkout := workoutDays && IsWorkoutDay(day)
	calories := baseCalories
	split := normal
	if isWorkout {
		calories = baseCalories * multiplier
		split = workout
	}

	out := domain.MealPlanDay{
		DayIndex:       day,
		WorkoutDay:     isWorkout,
		TargetCalories: calories,
	}
	for _, t := range domain.MealTypes {
		share, ok := split[t]
		if !ok || (t == domain.MealSnack && !snacks) {
			continue
		}
		out.Meals = append(out.Meals, NewMeal(t, calories*share))
	}
	return out
}

// PlanMacros returns the macro targets for a meal plan. A configured split
// takes precedence over the goal-derived distribution.
func PlanMacros(result domain.EnergyResult, weightKG float64, split *domain.MacroSplit) domain.MacroDistribution {
	if split != nil {
		return ComputeMacrosFromSplit(result.DailyCalories, weightKG, *split)
	}
	return result.Macros
}
