package engine

import (
	"fmt"

	"lg/fitplan-go-api/internal/domain"
)

// ProgramGoalFor maps a nutrition goal onto the training focus that suits it.
func ProgramGoalFor(g domain.Goal) domain.ProgramGoal {
	switch g {
	case domain.GoalLoseWeight:
		return domain.ProgramEndurance
	case domain.GoalGainWeight:
		return domain.ProgramMuscleGain
	default:
		return domain.ProgramStrength
	}
}

// AssembleProgram selects exercises for every workout day of goal and
// prescribes the goal's sets and reps.
func AssembleProgram(goal domain.ProgramGoal, pool ExercisePool) ([]domain.ProgramExercise, error) {
	if !ValidProgramGoal(goal) {
		return nil, fmt.Errorf("unknown program goal %q: %w", goal, ErrInvalidMeasurement)
	}
	sets, reps := SetsAndReps(goal)

	var out []domain.ProgramExercise
	for day := 1; day <= WorkoutDays(goal); day++ {
		for i, e := range SelectExercises(goal, day, pool) {
			out = append(out, domain.ProgramExercise{
				ExerciseID:   e.ID,
				ExerciseName: e.Name,
				Category:     e.Category,
				Day:          day,
				Sets:         sets,
				Reps:         reps,
				OrderInDay:   i + 1,
			})
		}
	}
	return out, nil
}
