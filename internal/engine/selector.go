package engine

import (
	"sort"
	"strings"

	"lg/fitplan-go-api/internal/domain"
)

// ExercisePool is a read-only view of the exercise catalogue.
// Both lookups must return exercises in a stable order.
type ExercisePool interface {
	// FindByCategory returns exercises whose category name contains substr,
	// ignoring case.
	FindByCategory(substr string) []domain.Exercise
	All() []domain.Exercise
}

// Catalog is an in-memory ExercisePool over a snapshot, ordered by ID.
type Catalog struct {
	exercises []domain.Exercise
}

// NewCatalog copies exercises and sorts them by ID.
func NewCatalog(exercises []domain.Exercise) *Catalog {
	cp := make([]domain.Exercise, len(exercises))
	copy(cp, exercises)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].ID < cp[j].ID })
	return &Catalog{exercises: cp}
}

func (c *Catalog) FindByCategory(substr string) []domain.Exercise {
	needle := strings.ToLower(substr)
	var out []domain.Exercise
	for _, e := range c.exercises {
		if strings.Contains(strings.ToLower(e.Category), needle) {
			out = append(out, e)
		}
	}
	return out
}

func (c *Catalog) All() []domain.Exercise {
	out := make([]domain.Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

/* ─── Goal tables ─────────────────────────────────────────────────────── */

type goalPlan struct {
	exercisesPerDay int
	workoutDays     int
	sets, reps      int
}

var programGoalTable = map[domain.ProgramGoal]goalPlan{
	domain.ProgramMuscleGain:  {exercisesPerDay: 6, workoutDays: 5, sets: 4, reps: 8},
	domain.ProgramWeightLoss:  {exercisesPerDay: 8, workoutDays: 4, sets: 3, reps: 15},
	domain.ProgramEndurance:   {exercisesPerDay: 5, workoutDays: 6, sets: 3, reps: 20},
	domain.ProgramStrength:    {exercisesPerDay: 4, workoutDays: 4, sets: 5, reps: 5},
	domain.ProgramFlexibility: {exercisesPerDay: 6, workoutDays: 3, sets: 1, reps: 1},
}

// categoryQuota draws at most limit exercises whose category contains category.
type categoryQuota struct {
	category string
	limit    int
}

// dayCategories lists, per goal and 1-based day, the category draws in order.
var dayCategories = map[domain.ProgramGoal]map[int][]categoryQuota{
	domain.ProgramMuscleGain: {
		1: {{"chest", 3}, {"triceps", 2}, {"abs", 1}},
		2: {{"back", 3}, {"biceps", 2}, {"abs", 1}},
		3: {{"legs", 4}, {"calves", 2}},
		4: {{"shoulders", 4}, {"abs", 2}},
		5: {{"compound", 3}, {"cardio", 3}},
	},
	domain.ProgramWeightLoss: {
		1: {{"cardio", 3}, {"chest", 2}, {"back", 2}, {"abs", 1}},
		2: {{"cardio", 3}, {"legs", 3}, {"calves", 2}},
		3: {{"hiit", 4}, {"cardio", 2}, {"abs", 2}},
		4: {{"compound", 4}, {"shoulders", 2}, {"arms", 2}},
	},
	domain.ProgramEndurance: {
		1: {{"cardio", 3}, {"legs", 2}},
		2: {{"chest", 2}, {"back", 2}, {"shoulders", 1}},
		3: {{"legs", 3}, {"calves", 2}},
		4: {{"compound", 3}, {"cardio", 2}},
		5: {{"cardio", 4}, {"abs", 1}},
		6: {{"cardio", 2}, {"flexibility", 3}},
	},
	domain.ProgramStrength: {
		1: {{"chest", 2}, {"triceps", 1}, {"compound", 1}},
		2: {{"back", 2}, {"biceps", 1}, {"compound", 1}},
		3: {{"legs", 3}, {"compound", 1}},
		4: {{"shoulders", 3}, {"compound", 1}},
	},
	domain.ProgramFlexibility: {
		1: {{"flexibility", 3}, {"yoga", 2}, {"stretching", 1}},
		2: {{"flexibility", 2}, {"yoga", 2}, {"stretching", 2}},
		3: {{"yoga", 3}, {"flexibility", 2}, {"pilates", 1}},
	},
}

// ValidProgramGoal reports whether g has selection tables.
func ValidProgramGoal(g domain.ProgramGoal) bool {
	_, ok := programGoalTable[g]
	return ok
}

// ExerciseCount is the number of exercises per workout day for goal.
func ExerciseCount(goal domain.ProgramGoal) int {
	return programGoalTable[goal].exercisesPerDay
}

// WorkoutDays is the number of training days per week for goal.
func WorkoutDays(goal domain.ProgramGoal) int {
	return programGoalTable[goal].workoutDays
}

// SetsAndReps returns the prescription applied to every exercise for goal.
func SetsAndReps(goal domain.ProgramGoal) (sets, reps int) {
	p := programGoalTable[goal]
	return p.sets, p.reps
}

// SelectExercises picks the exercises for one program day. Category draws
// come first in table order, then the day is padded from the whole pool in
// pool order. No exercise appears twice. The result has
// min(ExerciseCount(goal), distinct pool size) entries.
func SelectExercises(goal domain.ProgramGoal, day int, pool ExercisePool) []domain.Exercise {
	count := ExerciseCount(goal)
	if count == 0 {
		return nil
	}

	selected := make([]domain.Exercise, 0, count)
	seen := make(map[int64]bool)
	add := func(e domain.Exercise) {
		if seen[e.ID] {
			return
		}
		seen[e.ID] = true
		selected = append(selected, e)
	}

	for _, q := range dayCategories[goal][day] {
		matches := pool.FindByCategory(q.category)
		taken := 0
		for _, e := range matches {
			if taken == q.limit {
				break
			}
			if seen[e.ID] {
				continue
			}
			add(e)
			taken++
		}
	}

	if len(selected) < count {
		for _, e := range pool.All() {
			if len(selected) >= count {
				break
			}
			add(e)
		}
	}

	if len(selected) > count {
		selected = selected[:count]
	}
	return selected
}
