package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"lg/fitplan-go-api/internal/domain"
)

func kcal(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func grams(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "g"
}

// FormatEnergy renders the energy chain and macro targets.
func FormatEnergy(r domain.EnergyResult) string {
	var b strings.Builder
	b.WriteString(Header("Energy") + "\n")
	b.WriteString(RenderTable(
		[]string{"BMR", "TDEE", "Daily kcal", "Goal"},
		[][]string{{kcal(r.BMR), kcal(r.TDEE), kcal(r.DailyCalories), string(r.Goal)}},
	))
	b.WriteString(Dim(r.GoalDescription) + "\n\n")
	b.WriteString(FormatMacros(r.Macros))
	return b.String()
}

func FormatMacros(m domain.MacroDistribution) string {
	return Header("Macros") + "\n" + RenderTable(
		[]string{"Macro", "Grams", "kcal", "Share"},
		[][]string{
			{"Protein", grams(m.ProteinG), kcal(m.ProteinKcal), fmt.Sprintf("%.0f%%", m.ProteinPct)},
			{"Carbs", grams(m.CarbsG), kcal(m.CarbsKcal), fmt.Sprintf("%.0f%%", m.CarbsPct)},
			{"Fat", grams(m.FatG), kcal(m.FatKcal), fmt.Sprintf("%.0f%%", m.FatPct)},
		},
	)
}

// FormatMealPlan lists each day with its per-meal targets.
func FormatMealPlan(p *domain.MealPlan) string {
	headers := []string{"Day", "Date", "Workout", "kcal"}
	for _, t := range domain.MealTypes {
		headers = append(headers, strings.ToLower(string(t)))
	}

	rows := make([][]string, 0, len(p.Days))
	for _, d := range p.Days {
		workout := ""
		if d.WorkoutDay {
			workout = StyleGreen.Render("yes")
		}
		row := []string{strconv.Itoa(d.DayIndex), d.Date.String(), workout, kcal(d.TargetCalories)}
		for _, t := range domain.MealTypes {
			row = append(row, mealTarget(d.Meals, t))
		}
		rows = append(rows, row)
	}

	title := fmt.Sprintf("%s (#%d)", p.Name, p.ID)
	return Header(title) + "\n" +
		Dim(fmt.Sprintf("%s to %s, %s kcal/day, goal %s", p.StartDate, p.EndDate, kcal(p.TargetCalories), p.Goal)) + "\n" +
		RenderTable(headers, rows)
}

func mealTarget(meals []domain.Meal, t domain.MealType) string {
	for _, m := range meals {
		if m.Type == t {
			return kcal(m.TargetCalories)
		}
	}
	return "-"
}

// FormatProgram lists exercises grouped by day.
func FormatProgram(p *domain.TrainingProgram) string {
	rows := make([][]string, 0, len(p.Exercises))
	for day := 1; day <= p.WorkoutDays; day++ {
		for _, e := range p.ExercisesForDay(day) {
			rows = append(rows, []string{
				strconv.Itoa(e.Day),
				strconv.Itoa(e.OrderInDay),
				e.ExerciseName,
				e.Category,
				fmt.Sprintf("%dx%d", e.Sets, e.Reps),
			})
		}
	}
	title := fmt.Sprintf("%s (#%d)", p.Name, p.ID)
	return Header(title) + "\n" +
		Dim(fmt.Sprintf("goal %s, %d workout days", p.Goal, p.WorkoutDays)) + "\n" +
		RenderTable([]string{"Day", "#", "Exercise", "Category", "Volume"}, rows)
}

// FormatDailyPlans renders one line per plan, newest first as given.
func FormatDailyPlans(plans []*domain.DailyPlan) string {
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		active := ""
		if p.Active {
			active = StyleGreen.Render("●")
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			active,
			p.Name,
			p.StartDate.String(),
			p.EndDate.String(),
			optionalID(p.MealPlanID),
			optionalID(p.TrainingProgramID),
		})
	}
	return RenderTable([]string{"ID", "Active", "Name", "Start", "End", "Meal plan", "Program"}, rows)
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return "#" + strconv.FormatInt(*id, 10)
}

func FormatExercises(exercises []domain.Exercise) string {
	rows := make([][]string, 0, len(exercises))
	for _, e := range exercises {
		rows = append(rows, []string{strconv.FormatInt(e.ID, 10), e.Name, e.Category})
	}
	return RenderTable([]string{"ID", "Name", "Category"}, rows)
}
