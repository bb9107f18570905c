package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/engine"
)

func day(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func samplePlan() *domain.DailyPlan {
	result := domain.EnergyResult{DailyCalories: 2000}
	cfg := domain.DefaultMealPlanConfig(day("2026-03-02").Time)
	cfg.DurationWeeks = 2
	return &domain.DailyPlan{
		ID:        7,
		Name:      "Spring, cut",
		StartDate: day("2026-03-02"),
		EndDate:   day("2026-03-16"),
		Active:    true,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		MealPlan: &domain.MealPlan{
			Name:           "Spring - Meal Plan",
			Goal:           domain.GoalLoseWeight,
			TargetCalories: 2000,
			Days:           engine.AssembleDays(result, cfg),
		},
		TrainingProgram: &domain.TrainingProgram{
			Goal:        domain.ProgramStrength,
			WorkoutDays: 2,
			Exercises: []domain.ProgramExercise{
				{ExerciseName: "Squat", Category: "Legs", Day: 1, Sets: 5, Reps: 5, OrderInDay: 1},
				{ExerciseName: "Bench", Category: "Chest", Day: 1, Sets: 5, Reps: 5, OrderInDay: 2},
				{ExerciseName: "Deadlift", Category: "Back", Day: 2, Sets: 5, Reps: 5, OrderInDay: 1},
			},
		},
	}
}

func TestWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, samplePlan()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetOverview, SheetMealPlan, SheetTraining}, f.GetSheetList())

	name, err := f.GetCellValue(SheetOverview, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Spring, cut", name)

	rows, err := f.GetRows(SheetMealPlan)
	require.NoError(t, err)
	require.Len(t, rows, 15)
	assert.Equal(t, mealHeaders[:7], rows[0][:7])
	assert.Equal(t, "2026-03-02", rows[1][1])
	assert.Equal(t, "yes", rows[1][2])
	assert.Equal(t, "2200", rows[1][3])

	rows, err = f.GetRows(SheetTraining)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Deadlift", rows[3][2])
}

func TestWorkbook_WithoutComponents(t *testing.T) {
	p := samplePlan()
	p.MealPlan = nil
	p.TrainingProgram = nil

	f, err := Workbook(p)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetOverview}, f.GetSheetList())
}

func TestSessions(t *testing.T) {
	sessions := Sessions(samplePlan())

	var dates []string
	for _, s := range sessions {
		dates = append(dates, s.Date.String())
	}
	assert.Equal(t, []string{
		"2026-03-02", "2026-03-04", "2026-03-06",
		"2026-03-09", "2026-03-11", "2026-03-13",
	}, dates)

	assert.Equal(t, 1, sessions[0].ProgramDay)
	assert.Equal(t, 2, sessions[1].ProgramDay)
	assert.Equal(t, 1, sessions[2].ProgramDay)
	require.Len(t, sessions[0].Exercises, 2)
	assert.Equal(t, "Squat", sessions[0].Exercises[0].ExerciseName)
}

func TestWriteICS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, samplePlan()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Equal(t, 6, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "X-WR-CALNAME:Spring\\, cut\r\n")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260302\r\n")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20260303\r\n")
	assert.Contains(t, out, "UID:plan-7-day-1@fitplan\r\n")
	assert.Contains(t, out, "DTSTAMP:20260301T120000Z\r\n")
	assert.Contains(t, out, "1. Squat 5x5\\n2. Bench 5x5")
}

func TestLineFolding(t *testing.T) {
	var b strings.Builder
	line(&b, "DESCRIPTION:"+strings.Repeat("é", 60))
	for _, l := range strings.Split(strings.TrimSuffix(b.String(), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(l), 76)
	}
	assert.Contains(t, b.String(), "\r\n ")
}
