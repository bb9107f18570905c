package main

import (
	"lg/fitplan-go-api/internal/domain"
)

/* ─── Request bodies ─────────────────────────────────────────────────── */

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// mealPlanWithConfigRequest carries biometrics plus a meal plan config.
// Config is pre-filled with defaults before binding so omitted fields keep them.
// A distribution in the body replaces the default split as a whole.
type mealPlanWithConfigRequest struct {
	Biometrics domain.Biometrics     `json:"biometrics"`
	Config     domain.MealPlanConfig `json:"config"`
}

// patchSettingsRequest uses pointer fields to distinguish "not provided" from
// zero; only non-nil fields get updated.
type patchSettingsRequest struct {
	CurrentWeightKG *float64              `json:"current_weight_kg"`
	TargetWeightKG  *float64              `json:"target_weight_kg"`
	HeightCM        *float64              `json:"height_cm"`
	Age             *int                  `json:"age"`
	Sex             *domain.Sex           `json:"sex"`
	ActivityLevel   *domain.ActivityLevel `json:"activity_level"`
	Goal            *domain.Goal          `json:"goal"`
}

func (r patchSettingsRequest) empty() bool {
	return r.CurrentWeightKG == nil && r.TargetWeightKG == nil && r.HeightCM == nil &&
		r.Age == nil && r.Sex == nil && r.ActivityLevel == nil && r.Goal == nil
}

func (r patchSettingsRequest) applyTo(s *domain.PersonalSettings) {
	if r.CurrentWeightKG != nil {
		s.CurrentWeightKG = r.CurrentWeightKG
	}
	if r.TargetWeightKG != nil {
		s.TargetWeightKG = r.TargetWeightKG
	}
	if r.HeightCM != nil {
		s.HeightCM = r.HeightCM
	}
	if r.Age != nil {
		s.Age = r.Age
	}
	if r.Sex != nil {
		s.Sex = r.Sex
	}
	if r.ActivityLevel != nil {
		s.ActivityLevel = r.ActivityLevel
	}
	if r.Goal != nil {
		s.Goal = r.Goal
	}
}
