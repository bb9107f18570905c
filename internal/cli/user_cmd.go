package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store"
)

func newUserCmd(app *App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage local accounts",
	}

	var username, email, password string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an account with an empty settings row",
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}
			u := &domain.User{
				Username:  username,
				Email:     email,
				Password:  string(hash),
				AuthToken: uuid.New().String(),
				CreatedAt: time.Now().UTC(),
			}
			err = app.Store.UoW.WithinTx(context.Background(), func(ctx context.Context, r store.Repos) error {
				if err := r.Users.Create(ctx, u); err != nil {
					return fmt.Errorf("creating user: %w", err)
				}
				return r.Settings.Upsert(ctx, &domain.PersonalSettings{UserID: u.ID})
			})
			if err != nil {
				return err
			}

			// the token is only shown here; User hides it from JSON
			view := map[string]any{"id": u.ID, "username": u.Username, "auth_token": u.AuthToken}
			return emit(cmd, app, opts, view, func() string {
				return fmt.Sprintf("Created user %s (#%d)\n  Auth token: %s\n", u.Username, u.ID, u.AuthToken)
			})
		},
	}
	add.Flags().StringVar(&username, "username", "", "Login name")
	add.Flags().StringVar(&email, "email", "", "Email address")
	add.Flags().StringVar(&password, "password", "", "Password")
	_ = add.MarkFlagRequired("username")
	_ = add.MarkFlagRequired("password")

	cmd.AddCommand(add)
	return cmd
}
