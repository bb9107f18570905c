package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/fitplan-go-api/internal/domain"
)

func TestProgramGoalFor(t *testing.T) {
	assert.Equal(t, domain.ProgramEndurance, ProgramGoalFor(domain.GoalLoseWeight))
	assert.Equal(t, domain.ProgramMuscleGain, ProgramGoalFor(domain.GoalGainWeight))
	assert.Equal(t, domain.ProgramStrength, ProgramGoalFor(domain.GoalMaintainWeight))
}

func bigPool() *Catalog {
	var es []domain.Exercise
	id := int64(1)
	for _, c := range categories {
		for i := 0; i < 5; i++ {
			es = append(es, ex(id, c))
			id++
		}
	}
	return NewCatalog(es)
}

// Every goal produces workoutDays × count entries on a large pool, with
// 1-based order per day and the goal's sets and reps.
func TestAssembleProgram(t *testing.T) {
	pool := bigPool()
	for _, goal := range domain.ProgramGoals {
		t.Run(string(goal), func(t *testing.T) {
			got, err := AssembleProgram(goal, pool)
			require.NoError(t, err)
			require.Len(t, got, WorkoutDays(goal)*ExerciseCount(goal))

			sets, reps := SetsAndReps(goal)
			order := map[int]int{}
			for _, pe := range got {
				order[pe.Day]++
				assert.Equal(t, order[pe.Day], pe.OrderInDay)
				assert.Equal(t, sets, pe.Sets)
				assert.Equal(t, reps, pe.Reps)
				assert.NotEmpty(t, pe.ExerciseName)
			}
			assert.Len(t, order, WorkoutDays(goal))
		})
	}
}

// Strength day 1 opens with the two lowest-ID chest exercises.
func TestAssembleProgram_StrengthDayOne(t *testing.T) {
	got, err := AssembleProgram(domain.ProgramStrength, bigPool())
	require.NoError(t, err)

	p := domain.TrainingProgram{Exercises: got}
	day1 := p.ExercisesForDay(1)
	require.Len(t, day1, 4)
	assert.Equal(t, "Chest", day1[0].Category)
	assert.Equal(t, "Chest", day1[1].Category)
	assert.Equal(t, "Triceps", day1[2].Category)
	assert.Equal(t, "Compound", day1[3].Category)
}

func TestAssembleProgram_UnknownGoal(t *testing.T) {
	_, err := AssembleProgram("POWERLIFTING", bigPool())
	require.ErrorIs(t, err, ErrInvalidMeasurement)
}

func TestAssembleProgram_EmptyPool(t *testing.T) {
	got, err := AssembleProgram(domain.ProgramStrength, NewCatalog(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}
