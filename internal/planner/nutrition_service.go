// Package planner runs the nutrition and training use cases on top of the
// pure engine and persists what they produce.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/engine"
	"lg/fitplan-go-api/internal/store"
)

type NutritionService struct {
	st       store.Store
	observer UseCaseObserver
	now      func() time.Time
}

func NewNutritionService(st store.Store, observers ...UseCaseObserver) *NutritionService {
	return &NutritionService{
		st:       st,
		observer: useCaseObserverOrNoop(observers),
		now:      store.Now,
	}
}

// CalculateNutrition computes energy targets without touching storage.
func (s *NutritionService) CalculateNutrition(b domain.Biometrics) (domain.EnergyResult, error) {
	return engine.Calculate(b)
}

// CalculateAndPersonalize computes targets and stores them, with the inputs,
// on the user's personal settings.
func (s *NutritionService) CalculateAndPersonalize(ctx context.Context, userID int64, b domain.Biometrics) (result domain.EnergyResult, err error) {
	defer observe(ctx, s.observer, "calculate-and-personalize", time.Now(), map[string]any{"user_id": userID}, &err)

	if _, err = s.st.Users.GetByID(ctx, userID); err != nil {
		return domain.EnergyResult{}, err
	}
	if result, err = engine.Calculate(b); err != nil {
		return domain.EnergyResult{}, err
	}

	settings, err := s.st.Settings.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		settings, err = &domain.PersonalSettings{UserID: userID}, nil
	}
	if err != nil {
		return domain.EnergyResult{}, err
	}
	settings.ApplyCalculation(b, result, s.now())
	if err = s.st.Settings.Upsert(ctx, settings); err != nil {
		return domain.EnergyResult{}, err
	}
	return result, nil
}

// GenerateMealPlan builds and stores a one-week plan with identical days.
func (s *NutritionService) GenerateMealPlan(ctx context.Context, userID int64, b domain.Biometrics) (*domain.MealPlan, error) {
	cfg := domain.DefaultMealPlanConfig(s.now())
	cfg.UseSmartGeneration = false
	cfg.IncludeWorkoutDays = false
	cfg.Macros = nil
	return s.generateMealPlan(ctx, "generate-meal-plan", userID, b, cfg)
}

// GenerateSmartMealPlan builds and stores a one-week plan. When
// includeWorkoutDays is set, workout days get more calories and the
// workout meal split.
func (s *NutritionService) GenerateSmartMealPlan(ctx context.Context, userID int64, b domain.Biometrics, includeWorkoutDays bool) (*domain.MealPlan, error) {
	cfg := domain.DefaultMealPlanConfig(s.now())
	cfg.Name = "Smart Meal Plan"
	cfg.Description = "Intelligently generated meal plan considering workout days"
	cfg.IncludeWorkoutDays = includeWorkoutDays
	cfg.Macros = nil
	return s.generateMealPlan(ctx, "generate-smart-meal-plan", userID, b, cfg)
}

// GenerateMealPlanWithConfig builds and stores a plan shaped by cfg.
func (s *NutritionService) GenerateMealPlanWithConfig(ctx context.Context, userID int64, b domain.Biometrics, cfg domain.MealPlanConfig) (*domain.MealPlan, error) {
	return s.generateMealPlan(ctx, "generate-meal-plan-with-config", userID, b, cfg)
}

func (s *NutritionService) generateMealPlan(ctx context.Context, name string, userID int64, b domain.Biometrics, cfg domain.MealPlanConfig) (plan *domain.MealPlan, err error) {
	fields := map[string]any{"user_id": userID, "weeks": cfg.DurationWeeks}
	defer observe(ctx, s.observer, name, time.Now(), fields, &err)

	if _, err = s.st.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	var result domain.EnergyResult
	if result, err = engine.Calculate(b); err != nil {
		return nil, err
	}
	if plan, err = buildMealPlan(userID, b, result, cfg); err != nil {
		return nil, err
	}
	plan.CreatedAt = s.now()
	if err = s.st.MealPlans.Create(ctx, plan); err != nil {
		return nil, err
	}
	fields["meal_plan_id"] = plan.ID
	return plan, nil
}

// GenerateTrainingProgram picks a program goal from the nutrition goal and
// stores a program drawn from the exercise catalogue.
func (s *NutritionService) GenerateTrainingProgram(ctx context.Context, userID int64, b domain.Biometrics) (program *domain.TrainingProgram, err error) {
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.observer, "generate-training-program", time.Now(), fields, &err)

	if _, err = s.st.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err = engine.Validate(b); err != nil {
		return nil, err
	}
	if program, err = buildProgram(ctx, s.st.Exercises, userID, engine.ProgramGoalFor(b.Goal)); err != nil {
		return nil, err
	}
	program.CreatedAt = s.now()
	if err = s.st.Programs.Create(ctx, program); err != nil {
		return nil, err
	}
	fields["program_id"] = program.ID
	fields["exercises"] = len(program.Exercises)
	return program, nil
}

// GetMealPlan returns a plan owned by userID.
func (s *NutritionService) GetMealPlan(ctx context.Context, userID, id int64) (*domain.MealPlan, error) {
	p, err := s.st.MealPlans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("meal plan %d: %w", id, store.ErrNotFound)
	}
	return p, nil
}

// GetTrainingProgram returns a program owned by userID.
func (s *NutritionService) GetTrainingProgram(ctx context.Context, userID, id int64) (*domain.TrainingProgram, error) {
	p, err := s.st.Programs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("training program %d: %w", id, store.ErrNotFound)
	}
	return p, nil
}

// ListExercises returns the catalogue, filtered by a category substring
// when one is given.
func (s *NutritionService) ListExercises(ctx context.Context, category string) ([]domain.Exercise, error) {
	if category == "" {
		return s.st.Exercises.List(ctx)
	}
	return s.st.Exercises.FindByCategory(ctx, category)
}

// buildMealPlan assembles an unsaved meal plan. A goal on cfg labels the
// plan; calories always follow the biometrics goal.
func buildMealPlan(userID int64, b domain.Biometrics, result domain.EnergyResult, cfg domain.MealPlanConfig) (*domain.MealPlan, error) {
	if err := engine.ValidateMealPlanConfig(cfg); err != nil {
		return nil, err
	}
	goal := b.Goal
	if cfg.Goal != nil {
		goal = *cfg.Goal
	}
	return &domain.MealPlan{
		UserID:         userID,
		Name:           cfg.Name,
		Description:    cfg.Description,
		StartDate:      cfg.StartDate,
		EndDate:        cfg.StartDate.AddDays(7 * cfg.DurationWeeks),
		Goal:           goal,
		TargetCalories: result.DailyCalories,
		Macros:         engine.PlanMacros(result, b.WeightKG, cfg.Macros),
		MealsPerDay:    cfg.MealsPerDay,
		Days:           engine.AssembleDays(result, cfg),
	}, nil
}

// buildProgram assembles an unsaved program from a snapshot of the catalogue.
func buildProgram(ctx context.Context, exercises store.ExerciseRepo, userID int64, goal domain.ProgramGoal) (*domain.TrainingProgram, error) {
	all, err := exercises.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := engine.AssembleProgram(goal, engine.NewCatalog(all))
	if err != nil {
		return nil, err
	}
	return &domain.TrainingProgram{
		UserID:      userID,
		Name:        "Generated Training Program",
		Description: "Automatically generated based on your goals and fitness level",
		Goal:        goal,
		WorkoutDays: engine.WorkoutDays(goal),
		Exercises:   entries,
	}, nil
}
