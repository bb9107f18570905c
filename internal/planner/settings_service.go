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

type SettingsService struct {
	st       store.Store
	observer UseCaseObserver
	now      func() time.Time
}

func NewSettingsService(st store.Store, observers ...UseCaseObserver) *SettingsService {
	return &SettingsService{
		st:       st,
		observer: useCaseObserverOrNoop(observers),
		now:      store.Now,
	}
}

// Get returns the user's settings. A user without a settings row gets an
// empty one.
func (s *SettingsService) Get(ctx context.Context, userID int64) (*domain.PersonalSettings, error) {
	settings, err := s.st.Settings.Get(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if _, err := s.st.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return &domain.PersonalSettings{UserID: userID}, nil
}

// Save validates the fields that are set and stores the settings.
func (s *SettingsService) Save(ctx context.Context, settings *domain.PersonalSettings) (err error) {
	defer observe(ctx, s.observer, "save-settings", time.Now(), map[string]any{"user_id": settings.UserID}, &err)

	if err = validateSettings(settings); err != nil {
		return err
	}
	if _, err = s.st.Users.GetByID(ctx, settings.UserID); err != nil {
		return err
	}
	return s.st.Settings.Upsert(ctx, settings)
}

func validateSettings(s *domain.PersonalSettings) error {
	if s.CurrentWeightKG != nil && !validWeight(*s.CurrentWeightKG) {
		return fmt.Errorf("current weight must be in (0, %d] kg: %w", engine.MaxWeightKG, engine.ErrInvalidMeasurement)
	}
	if s.TargetWeightKG != nil && !validWeight(*s.TargetWeightKG) {
		return fmt.Errorf("target weight must be in (0, %d] kg: %w", engine.MaxWeightKG, engine.ErrInvalidMeasurement)
	}
	if s.HeightCM != nil && !(*s.HeightCM > 0 && *s.HeightCM <= engine.MaxHeightCM) {
		return fmt.Errorf("height must be in (0, %d] cm: %w", engine.MaxHeightCM, engine.ErrInvalidMeasurement)
	}
	if s.Age != nil && (*s.Age < engine.MinAge || *s.Age > engine.MaxAge) {
		return fmt.Errorf("age must be between %d and %d: %w", engine.MinAge, engine.MaxAge, engine.ErrInvalidMeasurement)
	}
	if s.Sex != nil && !s.Sex.Valid() {
		return fmt.Errorf("unknown sex %q: %w", *s.Sex, engine.ErrInvalidMeasurement)
	}
	if s.ActivityLevel != nil && !engine.ValidActivityLevel(*s.ActivityLevel) {
		return fmt.Errorf("unknown activity level %q: %w", *s.ActivityLevel, engine.ErrInvalidMeasurement)
	}
	if s.Goal != nil && !engine.ValidGoal(*s.Goal) {
		return fmt.Errorf("unknown goal %q: %w", *s.Goal, engine.ErrInvalidMeasurement)
	}
	return nil
}

func validWeight(kg float64) bool {
	return kg > 0 && kg <= engine.MaxWeightKG
}
