// CLI tool to create a user with a bcrypt-hashed password and an empty
// personal settings row.
// Usage: go run ./cmd/create-user (from the repo root)
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store"
	"lg/fitplan-go-api/internal/store/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	st := postgres.New(pool)

	reader := bufio.NewReader(os.Stdin)
	username := prompt(reader, "Username: ")
	email := prompt(reader, "Email: ")
	password := prompt(reader, "Password: ")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	u := &domain.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		AuthToken: uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
	err = st.UoW.WithinTx(ctx, func(ctx context.Context, r store.Repos) error {
		if err := r.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		if err := r.Settings.Upsert(ctx, &domain.PersonalSettings{UserID: u.ID}); err != nil {
			return fmt.Errorf("creating personal settings: %w", err)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %d\n", u.ID)
	fmt.Printf("  Username:   %s\n", u.Username)
	fmt.Printf("  Auth Token: %s\n", u.AuthToken)
}

func prompt(r *bufio.Reader, label string) string {
	fmt.Print(label)
	s, _ := r.ReadString('\n')
	return strings.TrimSpace(s)
}
