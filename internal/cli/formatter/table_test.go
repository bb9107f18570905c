package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/fitplan-go-api/internal/domain"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "Name"},
		[][]string{{"1", "Squat"}, {"12", StyleGreen.Render("Deadlift")}},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	// second column starts at the same visible offset on every line
	for _, l := range lines[2:] {
		assert.Equal(t, lipgloss.Width("12")+colGap, strings.IndexFunc(l, func(r rune) bool {
			return r != ' ' && (r < '0' || r > '9')
		}))
	}
	assert.Contains(t, lines[1], "──")
}

func TestRenderTable_ShortRowsArePadded(t *testing.T) {
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"x"}})
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestFormatMealPlan_MissingMealsShowDash(t *testing.T) {
	start, err := domain.ParseDate("2026-03-02")
	require.NoError(t, err)
	p := &domain.MealPlan{
		ID:        3,
		Name:      "Week",
		StartDate: start,
		EndDate:   start.AddDays(1),
		Days: []domain.MealPlanDay{{
			DayIndex:       1,
			Date:           start,
			TargetCalories: 2000,
			Meals:          []domain.Meal{{Type: domain.MealBreakfast, TargetCalories: 600}},
		}},
	}
	out := FormatMealPlan(p)
	assert.Contains(t, out, "WEEK (#3)")
	assert.Contains(t, out, "2026-03-02")
	assert.Contains(t, out, "600")
	assert.Contains(t, out, "-")
}
