package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store"
	"lg/fitplan-go-api/internal/store/seed"
)

var userCounter atomic.Int64

// Biometrics for an 80kg, 180cm, 30-year-old moderately active man.
func Biometrics(opts ...BiometricsOption) domain.Biometrics {
	b := domain.Biometrics{
		WeightKG:      80,
		HeightCM:      180,
		Age:           30,
		Sex:           domain.SexMale,
		ActivityLevel: domain.ActivityModeratelyActive,
		Goal:          domain.GoalMaintainWeight,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type BiometricsOption func(*domain.Biometrics)

func WithGoal(g domain.Goal) BiometricsOption {
	return func(b *domain.Biometrics) {
		b.Goal = g
	}
}

func WithWeight(kg float64) BiometricsOption {
	return func(b *domain.Biometrics) {
		b.WeightKG = kg
	}
}

// User options
type UserOption func(*domain.User)

func WithPassword(password string) UserOption {
	return func(u *domain.User) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		u.Password = string(hash)
	}
}

func WithUsername(name string) UserOption {
	return func(u *domain.User) {
		u.Username = name
	}
}

// CreateUser inserts a user with a unique username and auth token.
func CreateUser(t *testing.T, st store.Store, opts ...UserOption) *domain.User {
	t.Helper()
	n := userCounter.Add(1)
	u := &domain.User{
		Username:  fmt.Sprintf("user%d", n),
		Email:     fmt.Sprintf("user%d@example.com", n),
		AuthToken: uuid.New().String(),
		Password:  "x",
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	if err := st.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return u
}

// SaveSettings stores complete personal settings for userID from b.
func SaveSettings(t *testing.T, st store.Store, userID int64, b domain.Biometrics) *domain.PersonalSettings {
	t.Helper()
	s := &domain.PersonalSettings{
		UserID:          userID,
		CurrentWeightKG: &b.WeightKG,
		HeightCM:        &b.HeightCM,
		Age:             &b.Age,
		Sex:             &b.Sex,
		ActivityLevel:   &b.ActivityLevel,
		Goal:            &b.Goal,
	}
	if err := st.Settings.Upsert(context.Background(), s); err != nil {
		t.Fatalf("saving settings: %v", err)
	}
	return s
}

// SeedExercises loads the embedded catalogue.
func SeedExercises(t *testing.T, st store.Store) int {
	t.Helper()
	n, err := seed.LoadDefaults(context.Background(), st.Exercises)
	if err != nil {
		t.Fatalf("seeding exercises: %v", err)
	}
	return n
}
