package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/fitplan-go-api/internal/domain"
)

func male80() domain.Biometrics {
	return domain.Biometrics{
		WeightKG:      80,
		HeightCM:      180,
		Age:           30,
		Sex:           domain.SexMale,
		ActivityLevel: domain.ActivityModeratelyActive,
		Goal:          domain.GoalMaintainWeight,
	}
}

/* ─── BMR ─────────────────────────────────────────────────────────────── */

func TestComputeBMR(t *testing.T) {
	cases := []struct {
		name   string
		weight float64
		height float64
		age    int
		sex    domain.Sex
		want   float64
	}{
		{"male", 80, 180, 30, domain.SexMale, 1780},
		{"female", 60, 165, 25, domain.SexFemale, 1345.25},
		{"male older", 95, 175, 60, domain.SexMale, 1748.75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeBMR(tc.weight, tc.height, tc.age, tc.sex)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

// Non-positive inputs are rejected rather than producing a nonsense BMR.
func TestComputeBMR_RejectsNonPositiveInputs(t *testing.T) {
	cases := []struct {
		name   string
		weight float64
		height float64
		age    int
	}{
		{"zero weight", 0, 180, 30},
		{"negative height", 80, -1, 30},
		{"zero age", 80, 180, 0},
		{"NaN weight", math.NaN(), 180, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeBMR(tc.weight, tc.height, tc.age, domain.SexMale)
			require.ErrorIs(t, err, ErrInvalidMeasurement)
		})
	}
}

func TestComputeBMR_MaleMinusFemaleIs166(t *testing.T) {
	m, err := ComputeBMR(70, 170, 40, domain.SexMale)
	require.NoError(t, err)
	f, err := ComputeBMR(70, 170, 40, domain.SexFemale)
	require.NoError(t, err)
	assert.InDelta(t, 166, m-f, 1e-9)
}

/* ─── TDEE / goal adjustment ─────────────────────────────────────────── */

func TestComputeTDEE_Multipliers(t *testing.T) {
	want := map[domain.ActivityLevel]float64{
		domain.ActivitySedentary:        1.2,
		domain.ActivityLightlyActive:    1.375,
		domain.ActivityModeratelyActive: 1.55,
		domain.ActivityVeryActive:       1.725,
		domain.ActivityExtraActive:      1.9,
	}
	for level, m := range want {
		assert.InDelta(t, 1000*m, ComputeTDEE(1000, level), 1e-9, string(level))
	}
}

// TDEE is monotonic in activity level for a fixed BMR.
func TestComputeTDEE_Monotonic(t *testing.T) {
	prev := 0.0
	for _, level := range domain.ActivityLevels {
		got := ComputeTDEE(1500, level)
		assert.Greater(t, got, prev, string(level))
		prev = got
	}
}

func TestAdjustForGoal(t *testing.T) {
	assert.InDelta(t, 1500, AdjustForGoal(2000, domain.GoalLoseWeight), 1e-9)
	assert.InDelta(t, 2000, AdjustForGoal(2000, domain.GoalMaintainWeight), 1e-9)
	assert.InDelta(t, 2300, AdjustForGoal(2000, domain.GoalGainWeight), 1e-9)
}

/* ─── Full chain ─────────────────────────────────────────────────────── */

// Male, 80kg, 180cm, 30y, moderately active, maintain.
func TestCalculate_MaleMaintain(t *testing.T) {
	r, err := Calculate(male80())
	require.NoError(t, err)

	assert.InDelta(t, 1780, r.BMR, 1e-9)
	assert.InDelta(t, 2759, r.TDEE, 1e-6)
	assert.InDelta(t, 2759, r.DailyCalories, 1e-6)
	assert.Equal(t, "Maintenance", r.GoalDescription)

	m := r.Macros
	assert.InDelta(t, 160, m.ProteinG, 1e-9)
	assert.InDelta(t, 640, m.ProteinKcal, 1e-9)
	assert.InDelta(t, 76.64, m.FatG, 0.01)
	assert.InDelta(t, 689.75, m.FatKcal, 1e-6)
	assert.InDelta(t, 1429.25, m.CarbsKcal, 1e-6)
	assert.InDelta(t, 357.31, m.CarbsG, 0.01)
	assert.InDelta(t, 25, m.FatPct, 1e-9)
}

func TestCalculate_MaleLose(t *testing.T) {
	b := male80()
	b.Goal = domain.GoalLoseWeight
	r, err := Calculate(b)
	require.NoError(t, err)

	assert.InDelta(t, 2259, r.DailyCalories, 1e-6)
	assert.Equal(t, "Weight Loss", r.GoalDescription)

	m := r.Macros
	assert.InDelta(t, 176, m.ProteinG, 1e-9)
	assert.InDelta(t, 704, m.ProteinKcal, 1e-9)
	assert.InDelta(t, 62.75, m.FatG, 0.01)
	assert.InDelta(t, 564.75, m.FatKcal, 1e-6)
	assert.InDelta(t, 990.25, m.CarbsKcal, 1e-6)
	assert.InDelta(t, 247.56, m.CarbsG, 0.01)
}

// Female, 60kg, 165cm, 25y, sedentary, lose weight.
func TestCalculate_FemaleLose(t *testing.T) {
	r, err := Calculate(domain.Biometrics{
		WeightKG:      60,
		HeightCM:      165,
		Age:           25,
		Sex:           domain.SexFemale,
		ActivityLevel: domain.ActivitySedentary,
		Goal:          domain.GoalLoseWeight,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1345.25, r.BMR, 1e-9)
	assert.InDelta(t, 1614.3, r.TDEE, 1e-6)
	assert.InDelta(t, 1114.3, r.DailyCalories, 1e-6)
	assert.InDelta(t, 132, r.Macros.ProteinG, 1e-9)
	assert.Equal(t, "Weight Loss", r.GoalDescription)
}

func TestCalculate_ValidatesRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Biometrics)
	}{
		{"weight over max", func(b *domain.Biometrics) { b.WeightKG = 301 }},
		{"height over max", func(b *domain.Biometrics) { b.HeightCM = 251 }},
		{"too young", func(b *domain.Biometrics) { b.Age = 17 }},
		{"too old", func(b *domain.Biometrics) { b.Age = 101 }},
		{"unknown sex", func(b *domain.Biometrics) { b.Sex = "OTHER" }},
		{"unknown activity", func(b *domain.Biometrics) { b.ActivityLevel = "COUCH" }},
		{"unknown goal", func(b *domain.Biometrics) { b.Goal = "BULK" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := male80()
			tc.mutate(&b)
			_, err := Calculate(b)
			require.ErrorIs(t, err, ErrInvalidMeasurement)
		})
	}
}

// A tiny, old, sedentary female cutting ends up below zero calories.
func TestCalculate_NonPositiveCaloriesIsComputationError(t *testing.T) {
	_, err := Calculate(domain.Biometrics{
		WeightKG:      1,
		HeightCM:      1,
		Age:           100,
		Sex:           domain.SexFemale,
		ActivityLevel: domain.ActivitySedentary,
		Goal:          domain.GoalLoseWeight,
	})
	require.ErrorIs(t, err, ErrComputation)
}

/* ─── Properties ─────────────────────────────────────────────────────── */

func randomBiometrics(rng *rand.Rand) domain.Biometrics {
	sexes := []domain.Sex{domain.SexMale, domain.SexFemale}
	return domain.Biometrics{
		WeightKG:      45 + rng.Float64()*105,
		HeightCM:      150 + rng.Float64()*50,
		Age:           18 + rng.Intn(63),
		Sex:           sexes[rng.Intn(2)],
		ActivityLevel: domain.ActivityLevels[rng.Intn(len(domain.ActivityLevels))],
		Goal:          domain.Goals[rng.Intn(len(domain.Goals))],
	}
}

// For realistic adults: BMR is positive, TDEE >= BMR, the goal adjustment
// is exact, macros reconcile to daily calories and fat is always 25%.
func TestCalculate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		b := randomBiometrics(rng)
		r, err := Calculate(b)
		require.NoError(t, err, "%+v", b)

		assert.Greater(t, r.BMR, 0.0)
		assert.GreaterOrEqual(t, r.TDEE, r.BMR)
		assert.InDelta(t, goalTable[b.Goal].calorieAdjustment, r.DailyCalories-r.TDEE, 1e-9)

		m := r.Macros
		assert.InDelta(t, r.DailyCalories, m.ProteinKcal+m.FatKcal+m.CarbsKcal, 1e-6)
		assert.InDelta(t, 100, m.ProteinPct+m.FatPct+m.CarbsPct, 1e-6)
		assert.InDelta(t, 25, m.FatPct, 1e-9)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		b := randomBiometrics(rng)
		first, err := Calculate(b)
		require.NoError(t, err)
		second, err := Calculate(b)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

/* ─── Configured split ──────────────────────────────────────────────── */

// The configured split keeps its historical formula: protein grams scale
// with weight × share / 100, the other macros with calories.
func TestComputeMacrosFromSplit(t *testing.T) {
	m := ComputeMacrosFromSplit(2000, 80, domain.MacroSplit{Protein: 0.25, Carbs: 0.45, Fats: 0.30})

	assert.InDelta(t, 0.8, m.ProteinG, 1e-9)
	assert.InDelta(t, 2000*0.30/9, m.FatG, 1e-9)
	assert.InDelta(t, 2000*0.45/4, m.CarbsG, 1e-9)
	assert.InDelta(t, 3.2, m.ProteinKcal, 1e-9)
	assert.InDelta(t, 600, m.FatKcal, 1e-9)
	assert.InDelta(t, 900, m.CarbsKcal, 1e-9)
	assert.InDelta(t, 25, m.ProteinPct, 1e-9)
	assert.InDelta(t, 45, m.CarbsPct, 1e-9)
	assert.InDelta(t, 30, m.FatPct, 1e-9)
}

func TestValidateMacroSplit(t *testing.T) {
	require.NoError(t, ValidateMacroSplit(domain.DefaultMacroSplit()))
	require.NoError(t, ValidateMacroSplit(domain.MacroSplit{Protein: 0.5, Carbs: 0.5, Fats: 0.5}))
	require.ErrorIs(t, ValidateMacroSplit(domain.MacroSplit{Protein: -0.1}), ErrInvalidMeasurement)
	require.ErrorIs(t, ValidateMacroSplit(domain.MacroSplit{Fats: 1.2}), ErrInvalidMeasurement)
	require.ErrorIs(t, ValidateMacroSplit(domain.MacroSplit{Carbs: math.NaN()}), ErrInvalidMeasurement)
}
