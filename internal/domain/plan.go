package domain

import "time"

// Exercise is a catalogue entry. Category is a free-form name such as
// "Chest" or "Cardio HIIT"; selection matches on substrings of it.
type Exercise struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// Meal is a slot in a day with a calorie target. Food selection is not
// performed; the slot carries only its target.
type Meal struct {
	Type           MealType `json:"type"`
	TargetCalories float64  `json:"target_calories"`
}

// MealPlanDay is one day of a meal plan. DayIndex is 1-based.
type MealPlanDay struct {
	DayIndex       int     `json:"day_index"`
	Date           Date    `json:"date"`
	WorkoutDay     bool    `json:"workout_day"`
	TargetCalories float64 `json:"target_calories"`
	Meals          []Meal  `json:"meals"`
}

type MealPlan struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	StartDate      Date              `json:"start_date"`
	EndDate        Date              `json:"end_date"`
	Goal           Goal              `json:"goal"`
	TargetCalories float64           `json:"target_calories"`
	Macros         MacroDistribution `json:"macros"`
	MealsPerDay    int               `json:"meals_per_day"`
	Days           []MealPlanDay     `json:"days"`
	CreatedAt      time.Time         `json:"created_at"`
}

// ProgramExercise places an exercise on a program day. OrderInDay is 1-based.
type ProgramExercise struct {
	ExerciseID   int64  `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	Category     string `json:"category"`
	Day          int    `json:"day"`
	Sets         int    `json:"sets"`
	Reps         int    `json:"reps"`
	OrderInDay   int    `json:"order_in_day"`
}

type TrainingProgram struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Goal        ProgramGoal       `json:"goal"`
	WorkoutDays int               `json:"workout_days"`
	Exercises   []ProgramExercise `json:"exercises"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ExercisesForDay returns the program's entries for one day in order.
func (p *TrainingProgram) ExercisesForDay(day int) []ProgramExercise {
	var out []ProgramExercise
	for _, e := range p.Exercises {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}

// DailyPlan bundles a meal plan and a training program over a date range.
// At most one plan per user is active.
type DailyPlan struct {
	ID                int64            `json:"id"`
	UserID            int64            `json:"user_id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	StartDate         Date             `json:"start_date"`
	EndDate           Date             `json:"end_date"`
	Active            bool             `json:"active"`
	MealPlanID        *int64           `json:"meal_plan_id"`
	TrainingProgramID *int64           `json:"training_program_id"`
	MealPlan          *MealPlan        `json:"meal_plan,omitempty"`
	TrainingProgram   *TrainingProgram `json:"training_program,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
