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

// DailyPlanPatch holds the editable fields of a daily plan. Nil fields are
// left unchanged.
type DailyPlanPatch struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	StartDate   *domain.Date `json:"start_date"`
	EndDate     *domain.Date `json:"end_date"`
	Active      *bool        `json:"active"`
}

type DailyPlanService struct {
	st       store.Store
	observer UseCaseObserver
	now      func() time.Time
}

func NewDailyPlanService(st store.Store, observers ...UseCaseObserver) *DailyPlanService {
	return &DailyPlanService{
		st:       st,
		observer: useCaseObserverOrNoop(observers),
		now:      store.Now,
	}
}

// Generate builds a daily plan for userID from their stored settings and
// persists it together with its meal plan and training program. Existing
// plans are deactivated first when cfg asks for it.
func (s *DailyPlanService) Generate(ctx context.Context, userID int64, cfg domain.DailyPlanConfig) (plan *domain.DailyPlan, err error) {
	fields := map[string]any{"user_id": userID, "weeks": cfg.DurationWeeks}
	defer observe(ctx, s.observer, "generate-daily-plan", time.Now(), fields, &err)

	if _, err = s.st.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if cfg.DurationWeeks < 1 {
		return nil, fmt.Errorf("duration must be at least 1 week, got %d: %w", cfg.DurationWeeks, engine.ErrInvalidMeasurement)
	}
	settings, err := s.st.Settings.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("user %d has no personal settings: %w", userID, engine.ErrInvalidMeasurement)
	}
	if err != nil {
		return nil, err
	}
	b, ok := settings.Biometrics()
	if !ok {
		return nil, fmt.Errorf("personal settings for user %d are incomplete: %w", userID, engine.ErrInvalidMeasurement)
	}
	result, err := engine.Calculate(b)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var mealPlan *domain.MealPlan
	if cfg.IncludeMealPlan {
		mcfg := cfg.MealPlan
		mcfg.Name = cfg.Name + " - Meal Plan"
		mcfg.StartDate = cfg.StartDate
		mcfg.DurationWeeks = cfg.DurationWeeks
		mcfg.Goal = &b.Goal
		if cfg.UsePersonalSettingsForMacros {
			if split, ok := settings.MacroSplit(); ok {
				mcfg.Macros = &split
			}
		}
		if mealPlan, err = buildMealPlan(userID, b, result, mcfg); err != nil {
			return nil, err
		}
		mealPlan.CreatedAt = now
	}

	var program *domain.TrainingProgram
	if cfg.IncludeTrainingProgram {
		if program, err = buildProgram(ctx, s.st.Exercises, userID, engine.ProgramGoalFor(b.Goal)); err != nil {
			return nil, err
		}
		program.Name = cfg.Name + " - Training Program"
		program.CreatedAt = now
	}

	plan = &domain.DailyPlan{
		UserID:          userID,
		Name:            cfg.Name,
		Description:     cfg.Description,
		StartDate:       cfg.StartDate,
		EndDate:         cfg.StartDate.AddDays(7 * cfg.DurationWeeks),
		Active:          cfg.ActivatePlan,
		MealPlan:        mealPlan,
		TrainingProgram: program,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.st.UoW.WithinTx(ctx, func(ctx context.Context, r store.Repos) error {
		if err := r.Users.Lock(ctx, userID); err != nil {
			return err
		}
		if mealPlan != nil {
			if err := r.MealPlans.Create(ctx, mealPlan); err != nil {
				return err
			}
			plan.MealPlanID = &mealPlan.ID
		}
		if program != nil {
			if err := r.Programs.Create(ctx, program); err != nil {
				return err
			}
			plan.TrainingProgramID = &program.ID
		}
		if cfg.DeactivateExistingPlans {
			n, err := r.DailyPlans.DeactivateAllByUser(ctx, userID)
			if err != nil {
				return err
			}
			fields["deactivated"] = n
		}
		return r.DailyPlans.Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	fields["daily_plan_id"] = plan.ID
	return plan, nil
}

// GenerateAutomatic generates a plan with the default configuration.
func (s *DailyPlanService) GenerateAutomatic(ctx context.Context, userID int64) (*domain.DailyPlan, error) {
	return s.Generate(ctx, userID, domain.DefaultDailyPlanConfig(s.now()))
}

// Get returns a plan owned by userID with its meal plan and program attached.
func (s *DailyPlanService) Get(ctx context.Context, userID, id int64) (*domain.DailyPlan, error) {
	p, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *DailyPlanService) ListByUser(ctx context.Context, userID int64) ([]*domain.DailyPlan, error) {
	plans, err := s.st.DailyPlans.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if err := s.hydrate(ctx, p); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

// GetActive returns the user's active plan, or store.ErrNotFound.
func (s *DailyPlanService) GetActive(ctx context.Context, userID int64) (*domain.DailyPlan, error) {
	p, err := s.st.DailyPlans.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies patch. Activating a plan deactivates the user's other plans
// in the same transaction.
func (s *DailyPlanService) Update(ctx context.Context, userID, id int64, patch DailyPlanPatch) (plan *domain.DailyPlan, err error) {
	defer observe(ctx, s.observer, "update-daily-plan", time.Now(), map[string]any{"user_id": userID, "daily_plan_id": id}, &err)

	err = s.st.UoW.WithinTx(ctx, func(ctx context.Context, r store.Repos) error {
		if err := r.Users.Lock(ctx, userID); err != nil {
			return err
		}
		p, err := r.DailyPlans.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.UserID != userID {
			return fmt.Errorf("daily plan %d: %w", id, store.ErrNotFound)
		}
		activating := patch.Active != nil && *patch.Active && !p.Active
		applyPatch(p, patch)
		if p.EndDate.Before(p.StartDate.Time) {
			return fmt.Errorf("end date %s is before start date %s: %w", p.EndDate, p.StartDate, engine.ErrInvalidMeasurement)
		}
		p.UpdatedAt = s.now()
		if activating {
			if _, err := r.DailyPlans.DeactivateAllByUser(ctx, userID); err != nil {
				return err
			}
		}
		if err := r.DailyPlans.Update(ctx, p); err != nil {
			return err
		}
		plan = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err = s.hydrate(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func applyPatch(p *domain.DailyPlan, patch DailyPlanPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = *patch.EndDate
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
}

func (s *DailyPlanService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.st.DailyPlans.Delete(ctx, id)
}

// DeactivateAll deactivates every plan of the user and returns how many
// were active.
func (s *DailyPlanService) DeactivateAll(ctx context.Context, userID int64) (int64, error) {
	return s.st.DailyPlans.DeactivateAllByUser(ctx, userID)
}

// ExpirePlans deactivates plans whose end date has passed.
func (s *DailyPlanService) ExpirePlans(ctx context.Context) (n int64, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "expire-daily-plans", time.Now(), fields, &err)

	n, err = s.st.DailyPlans.DeactivateExpired(ctx, domain.NewDate(s.now()))
	fields["expired"] = n
	return n, err
}

func (s *DailyPlanService) owned(ctx context.Context, userID, id int64) (*domain.DailyPlan, error) {
	p, err := s.st.DailyPlans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("daily plan %d: %w", id, store.ErrNotFound)
	}
	return p, nil
}

func (s *DailyPlanService) hydrate(ctx context.Context, p *domain.DailyPlan) error {
	if p.MealPlanID != nil {
		mp, err := s.st.MealPlans.GetByID(ctx, *p.MealPlanID)
		if err != nil {
			return err
		}
		p.MealPlan = mp
	}
	if p.TrainingProgramID != nil {
		tp, err := s.st.Programs.GetByID(ctx, *p.TrainingProgramID)
		if err != nil {
			return err
		}
		p.TrainingProgram = tp
	}
	return nil
}
