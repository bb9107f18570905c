package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lg/fitplan-go-api/internal/cli/formatter"
	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/store/seed"
)

func newExercisesCmd(app *App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "Inspect and seed the exercise catalogue",
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in catalogue into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := seed.LoadDefaults(context.Background(), app.Store.Exercises)
			if err != nil {
				return err
			}
			return emit(cmd, app, opts, map[string]int{"inserted": n}, func() string {
				if n == 0 {
					return "Catalogue already populated.\n"
				}
				return fmt.Sprintf("Inserted %d exercises\n", n)
			})
		},
	}

	var category string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises, optionally filtered by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			exercises, err := app.Nutrition.ListExercises(context.Background(), category)
			if err != nil {
				return err
			}
			if exercises == nil {
				exercises = []domain.Exercise{}
			}
			return emit(cmd, app, opts, exercises, func() string {
				if len(exercises) == 0 {
					return "No exercises found.\n"
				}
				return formatter.FormatExercises(exercises)
			})
		},
	}
	listCmd.Flags().StringVarP(&category, "category", "c", "", "Case-insensitive category substring")

	cmd.AddCommand(seedCmd, listCmd)
	return cmd
}
