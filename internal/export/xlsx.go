// Package export renders daily plans as spreadsheets and calendars.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"lg/fitplan-go-api/internal/domain"
)

// Sheet names
const (
	SheetOverview = "Overview"
	SheetMealPlan = "Meal Plan"
	SheetTraining = "Training"
)

var (
	mealHeaders     = []string{"Day", "Date", "Workout", "Target kcal", "Breakfast", "Lunch", "Dinner", "Snack"}
	trainingHeaders = []string{"Day", "Order", "Exercise", "Category", "Sets", "Reps"}
)

// Workbook builds a workbook with an overview sheet plus one sheet each for
// the meal plan and the training program when the plan has them.
func Workbook(p *domain.DailyPlan) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming default sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	if err := writeOverview(f, p); err != nil {
		f.Close()
		return nil, err
	}
	if p.MealPlan != nil {
		if err := writeMealPlan(f, p.MealPlan, header); err != nil {
			f.Close()
			return nil, err
		}
	}
	if p.TrainingProgram != nil {
		if err := writeTraining(f, p.TrainingProgram, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteXLSX writes the plan's workbook to w.
func WriteXLSX(w io.Writer, p *domain.DailyPlan) error {
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeOverview(f *excelize.File, p *domain.DailyPlan) error {
	rows := [][]any{
		{"Plan", p.Name},
		{"Description", p.Description},
		{"Start", p.StartDate.String()},
		{"End", p.EndDate.String()},
		{"Active", p.Active},
	}
	if mp := p.MealPlan; mp != nil {
		rows = append(rows,
			[]any{"Goal", string(mp.Goal)},
			[]any{"Daily kcal", round1(mp.TargetCalories)},
			[]any{"Protein g", round1(mp.Macros.ProteinG)},
			[]any{"Carbs g", round1(mp.Macros.CarbsG)},
			[]any{"Fat g", round1(mp.Macros.FatG)},
		)
	}
	if tp := p.TrainingProgram; tp != nil {
		rows = append(rows,
			[]any{"Program goal", string(tp.Goal)},
			[]any{"Workout days", tp.WorkoutDays},
		)
	}
	for i, row := range rows {
		if err := setRow(f, SheetOverview, i+1, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetOverview, "A", "A", 16)
}

func writeMealPlan(f *excelize.File, mp *domain.MealPlan, header int) error {
	if _, err := f.NewSheet(SheetMealPlan); err != nil {
		return fmt.Errorf("creating meal plan sheet: %w", err)
	}
	if err := writeHeader(f, SheetMealPlan, mealHeaders, header); err != nil {
		return err
	}
	for i, d := range mp.Days {
		row := []any{d.DayIndex, d.Date.String(), yesNo(d.WorkoutDay), round1(d.TargetCalories)}
		byType := make(map[domain.MealType]float64, len(d.Meals))
		for _, m := range d.Meals {
			byType[m.Type] = m.TargetCalories
		}
		for _, t := range domain.MealTypes {
			if kcal, ok := byType[t]; ok {
				row = append(row, round1(kcal))
			} else {
				row = append(row, nil)
			}
		}
		if err := setRow(f, SheetMealPlan, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetMealPlan, "B", "B", 12)
}

func writeTraining(f *excelize.File, tp *domain.TrainingProgram, header int) error {
	if _, err := f.NewSheet(SheetTraining); err != nil {
		return fmt.Errorf("creating training sheet: %w", err)
	}
	if err := writeHeader(f, SheetTraining, trainingHeaders, header); err != nil {
		return err
	}
	for i, e := range tp.Exercises {
		row := []any{e.Day, e.OrderInDay, e.ExerciseName, e.Category, e.Sets, e.Reps}
		if err := setRow(f, SheetTraining, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetTraining, "C", "D", 24)
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := setRow(f, sheet, 1, cells); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
