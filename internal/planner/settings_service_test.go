package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/engine"
	"lg/fitplan-go-api/internal/planner"
	"lg/fitplan-go-api/internal/store"
	"lg/fitplan-go-api/internal/testutil"
)

func TestSettings_GetEmptyForNewUser(t *testing.T) {
	st := testutil.NewTestStore(t)
	svc := planner.NewSettingsService(st)
	u := testutil.CreateUser(t, st)

	s, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, s.UserID)
	assert.Nil(t, s.CurrentWeightKG)

	_, err = svc.Get(ctx, 404)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSettings_SaveValidatesSetFields(t *testing.T) {
	st := testutil.NewTestStore(t)
	svc := planner.NewSettingsService(st)
	u := testutil.CreateUser(t, st)

	target := 72.5
	level := domain.ActivityLightlyActive
	require.NoError(t, svc.Save(ctx, &domain.PersonalSettings{UserID: u.ID, TargetWeightKG: &target, ActivityLevel: &level}))

	s, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, s.TargetWeightKG)
	assert.InDelta(t, 72.5, *s.TargetWeightKG, 1e-9)
	assert.Equal(t, domain.ActivityLightlyActive, *s.ActivityLevel)

	tooOld := 120
	bogus := domain.ActivityLevel("COUCH")
	heavy := 301.0
	for name, bad := range map[string]*domain.PersonalSettings{
		"age":      {UserID: u.ID, Age: &tooOld},
		"activity": {UserID: u.ID, ActivityLevel: &bogus},
		"weight":   {UserID: u.ID, CurrentWeightKG: &heavy},
	} {
		err := svc.Save(ctx, bad)
		assert.ErrorIs(t, err, engine.ErrInvalidMeasurement, name)
	}

	require.ErrorIs(t, svc.Save(ctx, &domain.PersonalSettings{UserID: 404}), store.ErrNotFound)
}
