// Package seed ships the default exercise catalogue.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store"
)

//go:embed exercises.json
var exercisesJSON []byte

// Exercises returns the embedded catalogue. IDs are unset.
func Exercises() ([]domain.Exercise, error) {
	var out []domain.Exercise
	if err := json.Unmarshal(exercisesJSON, &out); err != nil {
		return nil, fmt.Errorf("decoding embedded exercises: %w", err)
	}
	return out, nil
}

// LoadExercises inserts exercises when the catalogue is empty and returns
// how many were inserted.
func LoadExercises(ctx context.Context, repo store.ExerciseRepo, exercises []domain.Exercise) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i := range exercises {
		if err := repo.Create(ctx, &exercises[i]); err != nil {
			return i, fmt.Errorf("seeding %q: %w", exercises[i].Name, err)
		}
	}
	return len(exercises), nil
}

// LoadDefaults seeds the embedded catalogue into an empty repo.
func LoadDefaults(ctx context.Context, repo store.ExerciseRepo) (int, error) {
	exercises, err := Exercises()
	if err != nil {
		return 0, err
	}
	return LoadExercises(ctx, repo, exercises)
}
