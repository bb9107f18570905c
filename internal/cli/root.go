// Package cli implements planctl, a local command-line front end over the
// planner services.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/planner"
	"lg/fitplan-go-api/internal/store"
)

// App holds the store and services used by commands.
type App struct {
	Store     store.Store
	Nutrition *planner.NutritionService
	Settings  *planner.SettingsService
	Plans     *planner.DailyPlanService

	// IsTerminal reports whether stdout is a terminal. Non-terminal output
	// is JSON.
	IsTerminal func() bool
}

// NewApp wires the services over st.
func NewApp(st store.Store, observers ...planner.UseCaseObserver) *App {
	return &App{
		Store:     st,
		Nutrition: planner.NewNutritionService(st, observers...),
		Settings:  planner.NewSettingsService(st, observers...),
		Plans:     planner.NewDailyPlanService(st, observers...),
	}
}

type rootOptions struct {
	user string
	json bool
}

// NewRootCmd creates the top-level "planctl" command.
func NewRootCmd(app *App) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "planctl",
		Short:         "Nutrition targets, meal plans and training programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.user, "user", "u", "", "Username to act as")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print JSON even on a terminal")

	root.AddCommand(
		newCalcCmd(app, opts),
		newMealPlanCmd(app, opts),
		newProgramCmd(app, opts),
		newDailyPlanCmd(app, opts),
		newExercisesCmd(app, opts),
		newUserCmd(app, opts),
	)
	return root
}

// resolveUser looks up the --user account.
func resolveUser(ctx context.Context, app *App, opts *rootOptions) (*domain.User, error) {
	if opts.user == "" {
		return nil, fmt.Errorf("--user is required")
	}
	u, err := app.Store.Users.GetByUsername(ctx, opts.user)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", opts.user, err)
	}
	return u, nil
}

// emit writes v as indented JSON when output is not a terminal or --json
// was given, and the rendered text otherwise.
func emit(cmd *cobra.Command, app *App, opts *rootOptions, v any, render func() string) error {
	out := cmd.OutOrStdout()
	if opts.json || app.IsTerminal == nil || !app.IsTerminal() {
		return writeJSON(out, v)
	}
	_, err := fmt.Fprint(out, render())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
