package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store"
	"lg/fitplan-go-api/internal/testutil"
)

var bioArgs = []string{
	"--weight", "80", "--height", "180", "--age", "30",
	"--sex", "male", "--activity", "MODERATELY_ACTIVE", "--goal", "MAINTAIN_WEIGHT",
}

// testApp wires an App over an in-memory store with a seeded catalogue.
// Output is JSON because IsTerminal is unset.
func testApp(t *testing.T) (*App, store.Store) {
	t.Helper()
	st := testutil.NewTestStore(t)
	testutil.SeedExercises(t, st)
	return NewApp(st), st
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func decodeOutput[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), "output: %s", out)
	return v
}

func TestCalc_FromFlags(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, append([]string{"calc"}, bioArgs...)...)
	require.NoError(t, err)

	r := decodeOutput[domain.EnergyResult](t, out)
	assert.InDelta(t, 1780, r.BMR, 1e-9)
	assert.InDelta(t, 2759, r.DailyCalories, 1e-9)
	assert.Equal(t, domain.GoalMaintainWeight, r.Goal)
}

func TestCalc_SaveStoresSettings(t *testing.T) {
	app, st := testApp(t)
	u := testutil.CreateUser(t, st)

	_, err := executeCmd(t, app, append([]string{"calc", "--save"}, bioArgs...)...)
	require.Error(t, err, "--save without --user")

	_, err = executeCmd(t, app, append([]string{"--user", u.Username, "calc", "--save"}, bioArgs...)...)
	require.NoError(t, err)

	s, err := st.Settings.Get(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, s.DailyCalories)
	assert.InDelta(t, 2759, *s.DailyCalories, 1e-9)
}

func TestCalc_UsesStoredSettingsWhenNoFlags(t *testing.T) {
	app, st := testApp(t)
	u := testutil.CreateUser(t, st)

	_, err := executeCmd(t, app, "--user", u.Username, "calc")
	assert.ErrorIs(t, err, errNoBiometrics)

	testutil.SaveSettings(t, st, u.ID, testutil.Biometrics(testutil.WithGoal(domain.GoalLoseWeight)))
	out, err := executeCmd(t, app, "--user", u.Username, "calc")
	require.NoError(t, err)
	assert.InDelta(t, 2259, decodeOutput[domain.EnergyResult](t, out).DailyCalories, 1e-9)
}

func TestCalc_InvalidBiometrics(t *testing.T) {
	app, _ := testApp(t)

	args := append([]string{"calc"}, bioArgs...)
	args = append(args, "--age", "12")
	_, err := executeCmd(t, app, args...)
	assert.Error(t, err)
}

func TestUnknownUser(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "--user", "ghost", "daily-plan", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMealPlanGenerate(t *testing.T) {
	app, st := testApp(t)
	u := testutil.CreateUser(t, st)

	out, err := executeCmd(t, app, append([]string{"-u", u.Username, "meal-plan", "generate", "--smart"}, bioArgs...)...)
	require.NoError(t, err)
	smart := decodeOutput[domain.MealPlan](t, out)
	require.Len(t, smart.Days, 7)
	assert.Equal(t, "Smart Meal Plan", smart.Name)

	out, err = executeCmd(t, app, append([]string{
		"-u", u.Username, "meal-plan", "generate",
		"--weeks", "2", "--snacks", "--start", "2026-03-02", "--name", "Fortnight",
	}, bioArgs...)...)
	require.NoError(t, err)
	configured := decodeOutput[domain.MealPlan](t, out)
	assert.Equal(t, "Fortnight", configured.Name)
	require.Len(t, configured.Days, 14)
	assert.Len(t, configured.Days[0].Meals, 4)
	assert.Equal(t, "2026-03-16", configured.EndDate.String())

	out, err = executeCmd(t, app, "-u", u.Username, "meal-plan", "show", itoa(configured.ID))
	require.NoError(t, err)
	assert.Equal(t, configured.ID, decodeOutput[domain.MealPlan](t, out).ID)
}

func TestProgramGenerate_FromStoredSettings(t *testing.T) {
	app, st := testApp(t)
	u := testutil.CreateUser(t, st)
	testutil.SaveSettings(t, st, u.ID, testutil.Biometrics(testutil.WithGoal(domain.GoalLoseWeight)))

	out, err := executeCmd(t, app, "-u", u.Username, "program", "generate")
	require.NoError(t, err)
	program := decodeOutput[domain.TrainingProgram](t, out)
	assert.Equal(t, domain.ProgramWeightLoss, program.Goal)
	assert.NotEmpty(t, program.Exercises)

	other := testutil.CreateUser(t, st)
	_, err = executeCmd(t, app, "-u", other.Username, "program", "show", itoa(program.ID))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDailyPlanCommands(t *testing.T) {
	app, st := testApp(t)
	u := testutil.CreateUser(t, st)
	testutil.SaveSettings(t, st, u.ID, testutil.Biometrics())

	out, err := executeCmd(t, app, "-u", u.Username, "daily-plan", "generate", "--start", "2020-03-02", "--weeks", "1")
	require.NoError(t, err)
	first := decodeOutput[domain.DailyPlan](t, out)
	assert.True(t, first.Active)
	assert.Equal(t, "2020-03-09", first.EndDate.String())
	require.NotNil(t, first.MealPlan)
	require.NotNil(t, first.TrainingProgram)

	out, err = executeCmd(t, app, "-u", u.Username, "plan", "generate", "--name", "Cut", "--no-training")
	require.NoError(t, err)
	second := decodeOutput[domain.DailyPlan](t, out)
	assert.Nil(t, second.TrainingProgramID)

	out, err = executeCmd(t, app, "-u", u.Username, "daily-plan", "show")
	require.NoError(t, err)
	assert.Equal(t, second.ID, decodeOutput[domain.DailyPlan](t, out).ID)

	_, err = executeCmd(t, app, "-u", u.Username, "daily-plan", "activate", itoa(first.ID))
	require.NoError(t, err)

	out, err = executeCmd(t, app, "-u", u.Username, "daily-plan", "list")
	require.NoError(t, err)
	plans := decodeOutput[[]domain.DailyPlan](t, out)
	require.Len(t, plans, 2)
	for _, p := range plans {
		assert.Equal(t, p.ID == first.ID, p.Active, "plan %d", p.ID)
	}

	out, err = executeCmd(t, app, "-u", u.Username, "daily-plan", "export", itoa(first.ID), "--format", "ics", "--out", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 3, strings.Count(out, "BEGIN:VEVENT"))

	_, err = executeCmd(t, app, "-u", u.Username, "daily-plan", "export", itoa(first.ID), "--format", "pdf")
	assert.Error(t, err)

	// the first plan ended in the past
	out, err = executeCmd(t, app, "daily-plan", "expire")
	require.NoError(t, err)
	assert.Equal(t, int64(1), decodeOutput[map[string]int64](t, out)["deactivated"])

	_, err = executeCmd(t, app, "-u", u.Username, "daily-plan", "rm", itoa(second.ID))
	require.NoError(t, err)
	_, err = executeCmd(t, app, "-u", u.Username, "daily-plan", "show", itoa(second.ID))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestExercisesCommands(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "exercises", "seed")
	require.NoError(t, err)
	assert.Equal(t, 0, decodeOutput[map[string]int](t, out)["inserted"], "catalogue was already seeded")

	out, err = executeCmd(t, app, "exercises", "list", "--category", "CHEST")
	require.NoError(t, err)
	exercises := decodeOutput[[]domain.Exercise](t, out)
	require.NotEmpty(t, exercises)
	for _, e := range exercises {
		assert.Contains(t, strings.ToLower(e.Category), "chest")
	}

	out, err = executeCmd(t, app, "exercises", "list", "-c", "no-such-category")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestUserAdd(t *testing.T) {
	app, st := testApp(t)

	out, err := executeCmd(t, app, "user", "add", "--username", "lyle", "--email", "lyle@example.com", "--password", "hunter2")
	require.NoError(t, err)
	view := decodeOutput[map[string]any](t, out)
	assert.Equal(t, "lyle", view["username"])

	u, err := st.Users.GetByUsername(context.Background(), "lyle")
	require.NoError(t, err)
	assert.Equal(t, view["auth_token"], u.AuthToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("hunter2")))

	_, err = st.Settings.Get(context.Background(), u.ID)
	assert.NoError(t, err, "settings row created with the user")

	_, err = executeCmd(t, app, "user", "add", "--username", "lyle", "--password", "x")
	assert.Error(t, err, "duplicate username")
}

func TestTerminalOutputIsRendered(t *testing.T) {
	app, _ := testApp(t)
	app.IsTerminal = func() bool { return true }

	out, err := executeCmd(t, app, append([]string{"calc"}, bioArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "ENERGY")
	assert.Contains(t, out, "2759")

	out, err = executeCmd(t, app, append([]string{"--json", "calc"}, bioArgs...)...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
