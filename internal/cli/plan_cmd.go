package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lg/fitplan-go-api/internal/cli/formatter"
	"lg/fitplan-go-api/internal/domain"
)

func newMealPlanCmd(app *App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal-plan",
		Short: "Generate and show meal plans",
	}
	cmd.AddCommand(
		newMealPlanGenerateCmd(app, opts),
		newMealPlanShowCmd(app, opts),
	)
	return cmd
}

func newMealPlanGenerateCmd(app *App, opts *rootOptions) *cobra.Command {
	var (
		bio         biometricsFlags
		smart       bool
		restOnly    bool
		weeks       int
		snacks      bool
		snackShare  float64
		name, start string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a meal plan",
		Long: "Without --weeks, --snacks, --name or --start this produces a one-week plan " +
			"(flat with the default mode, workout-aware with --smart). Any of those flags " +
			"switches to the configurable generator.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, opts)
			if err != nil {
				return err
			}
			b, err := resolveBiometrics(ctx, cmd, app, &bio, u)
			if err != nil {
				return err
			}

			var plan *domain.MealPlan
			configured := cmd.Flags().Changed("weeks") || snacks || name != "" || start != ""
			switch {
			case configured:
				cfg := domain.DefaultMealPlanConfig(time.Now().UTC())
				cfg.DurationWeeks = weeks
				cfg.IncludeSnacks = snacks
				if snacks {
					cfg.NormalDistribution[domain.MealSnack] = snackShare
					cfg.WorkoutDistribution[domain.MealSnack] = snackShare
				}
				cfg.UseSmartGeneration = smart
				cfg.IncludeWorkoutDays = !restOnly
				if name != "" {
					cfg.Name = name
				}
				if start != "" {
					if cfg.StartDate, err = domain.ParseDate(start); err != nil {
						return fmt.Errorf("invalid start date %q: %w", start, err)
					}
				}
				plan, err = app.Nutrition.GenerateMealPlanWithConfig(ctx, u.ID, b, cfg)
			case smart:
				plan, err = app.Nutrition.GenerateSmartMealPlan(ctx, u.ID, b, !restOnly)
			default:
				plan, err = app.Nutrition.GenerateMealPlan(ctx, u.ID, b)
			}
			if err != nil {
				return err
			}

			return emit(cmd, app, opts, plan, func() string {
				return formatter.FormatMealPlan(plan)
			})
		},
	}

	bio.register(cmd)
	cmd.Flags().BoolVar(&smart, "smart", false, "Raise calories and shift the split on workout days")
	cmd.Flags().BoolVar(&restOnly, "no-workout-days", false, "Treat every day as a rest day")
	cmd.Flags().IntVar(&weeks, "weeks", 1, "Plan length in weeks")
	cmd.Flags().BoolVar(&snacks, "snacks", false, "Add a snack slot to each day")
	cmd.Flags().Float64Var(&snackShare, "snack-share", 0.1, "Share of the day's calories given to the snack")
	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	return cmd
}

func newMealPlanShowCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a stored meal plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, opts)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			plan, err := app.Nutrition.GetMealPlan(ctx, u.ID, id)
			if err != nil {
				return err
			}
			return emit(cmd, app, opts, plan, func() string {
				return formatter.FormatMealPlan(plan)
			})
		},
	}
}

func newProgramCmd(app *App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "program",
		Short: "Generate and show training programs",
	}

	var bio biometricsFlags
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a training program for the goal in the biometrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, opts)
			if err != nil {
				return err
			}
			b, err := resolveBiometrics(ctx, cmd, app, &bio, u)
			if err != nil {
				return err
			}
			program, err := app.Nutrition.GenerateTrainingProgram(ctx, u.ID, b)
			if err != nil {
				return err
			}
			return emit(cmd, app, opts, program, func() string {
				return formatter.FormatProgram(program)
			})
		},
	}
	bio.register(generate)

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show a stored training program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, opts)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			program, err := app.Nutrition.GetTrainingProgram(ctx, u.ID, id)
			if err != nil {
				return err
			}
			return emit(cmd, app, opts, program, func() string {
				return formatter.FormatProgram(program)
			})
		},
	}

	cmd.AddCommand(generate, show)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}
