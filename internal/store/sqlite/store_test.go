package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store"
	"lg/fitplan-go-api/internal/testutil"
)

var ctx = context.Background()

func day(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUsers(t *testing.T) {
	st := testutil.NewTestStore(t)
	u := testutil.CreateUser(t, st)
	require.NotZero(t, u.ID)

	byID, err := st.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, byID.Username)

	byToken, err := st.Users.GetByToken(ctx, u.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byToken.ID)

	byName, err := st.Users.GetByUsername(ctx, u.Username)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = st.Users.GetByID(ctx, 9999)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, st.Users.Lock(ctx, 9999), store.ErrNotFound)
	require.NoError(t, st.Users.Lock(ctx, u.ID))
}

func TestSettings_UpsertAndGet(t *testing.T) {
	st := testutil.NewTestStore(t)
	u := testutil.CreateUser(t, st)

	_, err := st.Settings.Get(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	b := testutil.Biometrics()
	testutil.SaveSettings(t, st, u.ID, b)

	got, err := st.Settings.Get(ctx, u.ID)
	require.NoError(t, err)
	gotB, ok := got.Biometrics()
	require.True(t, ok)
	assert.Equal(t, b, gotB)
	assert.Nil(t, got.BMR)
	assert.Nil(t, got.LastCalculation)

	r := domain.EnergyResult{BMR: 1780, TDEE: 2759, DailyCalories: 2759,
		Macros: domain.MacroDistribution{ProteinG: 160, FatG: 76.6, CarbsG: 357.3}}
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	got.ApplyCalculation(b, r, at)
	require.NoError(t, st.Settings.Upsert(ctx, got))

	again, err := st.Settings.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, again.BMR)
	assert.InDelta(t, 1780, *again.BMR, 1e-9)
	assert.InDelta(t, 357.3, *again.CarbsG, 1e-9)
	require.NotNil(t, again.LastCalculation)
	assert.True(t, at.Equal(*again.LastCalculation))
}

func TestExercises_FindByCategory(t *testing.T) {
	st := testutil.NewTestStore(t)
	for _, e := range []domain.Exercise{
		{Name: "Bench", Category: "Chest"},
		{Name: "Run", Category: "Cardio"},
		{Name: "Intervals", Category: "HIIT Cardio"},
	} {
		require.NoError(t, st.Exercises.Create(ctx, &e))
	}

	got, err := st.Exercises.FindByCategory(ctx, "cardio")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Run", got[0].Name)
	assert.Equal(t, "Intervals", got[1].Name)

	all, err := st.Exercises.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = st.Exercises.GetByID(ctx, 42)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestExercises_SeedOnlyWhenEmpty(t *testing.T) {
	st := testutil.NewTestStore(t)
	n := testutil.SeedExercises(t, st)
	assert.Greater(t, n, 40)
	assert.Zero(t, testutil.SeedExercises(t, st))
}

func TestMealPlans_RoundTrip(t *testing.T) {
	st := testutil.NewTestStore(t)
	u := testutil.CreateUser(t, st)

	p := &domain.MealPlan{
		UserID:         u.ID,
		Name:           "Plan",
		StartDate:      day("2026-03-02"),
		EndDate:        day("2026-03-09"),
		Goal:           domain.GoalLoseWeight,
		TargetCalories: 2000,
		Macros:         domain.MacroDistribution{ProteinG: 150},
		MealsPerDay:    3,
		Days: []domain.MealPlanDay{{
			DayIndex:       1,
			Date:           day("2026-03-02"),
			WorkoutDay:     true,
			TargetCalories: 2200,
			Meals:          []domain.Meal{{Type: domain.MealBreakfast, TargetCalories: 550}},
		}},
	}
	require.NoError(t, st.MealPlans.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := st.MealPlans.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Days, got.Days)
	assert.Equal(t, p.StartDate, got.StartDate)
	assert.InDelta(t, 150, got.Macros.ProteinG, 1e-9)

	list, err := st.MealPlans.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPrograms_RoundTrip(t *testing.T) {
	st := testutil.NewTestStore(t)
	u := testutil.CreateUser(t, st)

	p := &domain.TrainingProgram{
		UserID:      u.ID,
		Name:        "Program",
		Goal:        domain.ProgramStrength,
		WorkoutDays: 4,
		Exercises: []domain.ProgramExercise{
			{ExerciseID: 1, ExerciseName: "Bench", Day: 1, Sets: 5, Reps: 5, OrderInDay: 1},
		},
	}
	require.NoError(t, st.Programs.Create(ctx, p))

	got, err := st.Programs.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Exercises, got.Exercises)
	assert.Equal(t, domain.ProgramStrength, got.Goal)

	_, err = st.Programs.GetByID(ctx, p.ID+1)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func newDailyPlan(userID int64, active bool, end string) *domain.DailyPlan {
	return &domain.DailyPlan{
		UserID:    userID,
		Name:      "Daily",
		StartDate: day("2026-03-02"),
		EndDate:   day(end),
		Active:    active,
	}
}

func TestDailyPlans_Lifecycle(t *testing.T) {
	st := testutil.NewTestStore(t)
	u := testutil.CreateUser(t, st)

	_, err := st.DailyPlans.GetActiveByUser(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	first := newDailyPlan(u.ID, true, "2026-03-30")
	require.NoError(t, st.DailyPlans.Create(ctx, first))
	second := newDailyPlan(u.ID, false, "2026-03-30")
	require.NoError(t, st.DailyPlans.Create(ctx, second))

	active, err := st.DailyPlans.GetActiveByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	second.Name = "Renamed"
	require.NoError(t, st.DailyPlans.Update(ctx, second))
	got, err := st.DailyPlans.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Nil(t, got.MealPlanID)

	n, err := st.DailyPlans.DeactivateAllByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, err = st.DailyPlans.GetActiveByUser(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.DailyPlans.Delete(ctx, first.ID))
	require.ErrorIs(t, st.DailyPlans.Delete(ctx, first.ID), store.ErrNotFound)

	list, err := st.DailyPlans.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	missing := newDailyPlan(u.ID, false, "2026-03-30")
	missing.ID = 777
	require.ErrorIs(t, st.DailyPlans.Update(ctx, missing), store.ErrNotFound)
}

func TestDailyPlans_DeactivateExpired(t *testing.T) {
	st := testutil.NewTestStore(t)
	a := testutil.CreateUser(t, st)
	b := testutil.CreateUser(t, st)

	require.NoError(t, st.DailyPlans.Create(ctx, newDailyPlan(a.ID, true, "2026-03-10")))
	require.NoError(t, st.DailyPlans.Create(ctx, newDailyPlan(b.ID, true, "2026-03-20")))

	n, err := st.DailyPlans.DeactivateExpired(ctx, day("2026-03-15"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = st.DailyPlans.GetActiveByUser(ctx, a.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.DailyPlans.GetActiveByUser(ctx, b.ID)
	require.NoError(t, err)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	st := testutil.NewTestStore(t)
	u := testutil.CreateUser(t, st)
	boom := errors.New("boom")

	err := st.UoW.WithinTx(ctx, func(ctx context.Context, r store.Repos) error {
		if err := r.DailyPlans.Create(ctx, newDailyPlan(u.ID, true, "2026-03-30")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := st.DailyPlans.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUnitOfWork_Commits(t *testing.T) {
	st := testutil.NewTestStore(t)
	u := testutil.CreateUser(t, st)

	err := st.UoW.WithinTx(ctx, func(ctx context.Context, r store.Repos) error {
		if err := r.Users.Lock(ctx, u.ID); err != nil {
			return err
		}
		return r.DailyPlans.Create(ctx, newDailyPlan(u.ID, true, "2026-03-30"))
	})
	require.NoError(t, err)

	_, err = st.DailyPlans.GetActiveByUser(ctx, u.ID)
	require.NoError(t, err)
}
