package domain

import "time"

const (
	DefaultWorkoutDayMultiplier = 1.1
	DefaultMealsPerDay          = 3
)

// DefaultNormalDistribution is the meal split on rest days.
func DefaultNormalDistribution() MealDistribution {
	return MealDistribution{MealBreakfast: 0.30, MealLunch: 0.40, MealDinner: 0.30}
}

// DefaultWorkoutDistribution shifts calories toward dinner on training days.
func DefaultWorkoutDistribution() MealDistribution {
	return MealDistribution{MealBreakfast: 0.25, MealLunch: 0.35, MealDinner: 0.40}
}

// DefaultMacroSplit is 25% protein, 45% carbs, 30% fats.
func DefaultMacroSplit() MacroSplit {
	return MacroSplit{Protein: 0.25, Carbs: 0.45, Fats: 0.30}
}

// MealPlanConfig controls config-mode meal plan generation.
// Zero values are not defaults; start from DefaultMealPlanConfig.
type MealPlanConfig struct {
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	StartDate            Date             `json:"start_date"`
	DurationWeeks        int              `json:"duration_weeks"`
	Goal                 *Goal            `json:"goal,omitempty"`
	IncludeWorkoutDays   bool             `json:"include_workout_days"`
	WorkoutDayMultiplier float64          `json:"workout_day_multiplier"`
	UseSmartGeneration   bool             `json:"use_smart_generation"`
	IncludeSnacks        bool             `json:"include_snacks"`
	MealsPerDay          int              `json:"meals_per_day"`
	NormalDistribution   MealDistribution `json:"normal_distribution"`
	WorkoutDistribution  MealDistribution `json:"workout_distribution"`
	// Macros overrides the goal-derived macro distribution when set.
	Macros *MacroSplit `json:"macros,omitempty"`
}

func DefaultMealPlanConfig(now time.Time) MealPlanConfig {
	split := DefaultMacroSplit()
	return MealPlanConfig{
		Name:                 "Generated Meal Plan",
		Description:          "Automatically generated based on your goals",
		StartDate:            NewDate(now),
		DurationWeeks:        1,
		IncludeWorkoutDays:   true,
		WorkoutDayMultiplier: DefaultWorkoutDayMultiplier,
		UseSmartGeneration:   true,
		IncludeSnacks:        false,
		MealsPerDay:          DefaultMealsPerDay,
		NormalDistribution:   DefaultNormalDistribution(),
		WorkoutDistribution:  DefaultWorkoutDistribution(),
		Macros:               &split,
	}
}

// WorkoutDifferentiation reports whether workout days get the uplift and
// the workout split.
func (c MealPlanConfig) WorkoutDifferentiation() bool {
	return c.UseSmartGeneration && c.IncludeWorkoutDays
}

// DailyPlanConfig controls daily plan generation.
type DailyPlanConfig struct {
	Name                         string         `json:"name"`
	Description                  string         `json:"description"`
	StartDate                    Date           `json:"start_date"`
	DurationWeeks                int            `json:"duration_weeks"`
	IncludeMealPlan              bool           `json:"include_meal_plan"`
	IncludeTrainingProgram       bool           `json:"include_training_program"`
	ActivatePlan                 bool           `json:"activate_plan"`
	UsePersonalSettingsForMacros bool           `json:"use_personal_settings_for_macros"`
	DeactivateExistingPlans      bool           `json:"deactivate_existing_plans"`
	MealPlan                     MealPlanConfig `json:"meal_plan"`
}

func DefaultDailyPlanConfig(now time.Time) DailyPlanConfig {
	return DailyPlanConfig{
		Name:                         "Automatic Daily Plan",
		Description:                  "Automatically generated daily plan based on your goals and preferences",
		StartDate:                    NewDate(now),
		DurationWeeks:                4,
		IncludeMealPlan:              true,
		IncludeTrainingProgram:       true,
		ActivatePlan:                 true,
		UsePersonalSettingsForMacros: true,
		DeactivateExistingPlans:      true,
		MealPlan:                     DefaultMealPlanConfig(now),
	}
}
