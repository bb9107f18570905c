package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"lg/fitplan-go-api/internal/cli/formatter"
	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/export"
	"lg/fitplan-go-api/internal/planner"
)

func newDailyPlanCmd(app *App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "daily-plan",
		Aliases: []string{"plan"},
		Short:   "Manage daily plans (meal plan plus training program)",
	}
	cmd.AddCommand(
		newDailyPlanGenerateCmd(app, opts),
		newDailyPlanListCmd(app, opts),
		newDailyPlanShowCmd(app, opts),
		newDailyPlanActivateCmd(app, opts),
		newDailyPlanRemoveCmd(app, opts),
		newDailyPlanExpireCmd(app, opts),
		newDailyPlanExportCmd(app, opts),
	)
	return cmd
}

func newDailyPlanGenerateCmd(app *App, opts *rootOptions) *cobra.Command {
	var (
		name, description, start string
		weeks                    int
		noMeals, noTraining      bool
		inactive, keepExisting   bool
		goalMacros               bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a daily plan from the user's saved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, opts)
			if err != nil {
				return err
			}

			cfg := domain.DefaultDailyPlanConfig(time.Now().UTC())
			if name != "" {
				cfg.Name = name
			}
			if description != "" {
				cfg.Description = description
			}
			if start != "" {
				if cfg.StartDate, err = domain.ParseDate(start); err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
			}
			cfg.DurationWeeks = weeks
			cfg.IncludeMealPlan = !noMeals
			cfg.IncludeTrainingProgram = !noTraining
			cfg.ActivatePlan = !inactive
			cfg.DeactivateExistingPlans = !keepExisting
			cfg.UsePersonalSettingsForMacros = !goalMacros

			plan, err := app.Plans.Generate(ctx, u.ID, cfg)
			if err != nil {
				return err
			}
			return emit(cmd, app, opts, plan, func() string {
				return formatDailyPlan(plan)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&description, "description", "", "Plan description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&weeks, "weeks", 4, "Plan length in weeks")
	cmd.Flags().BoolVar(&noMeals, "no-meals", false, "Skip the meal plan")
	cmd.Flags().BoolVar(&noTraining, "no-training", false, "Skip the training program")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Store the plan without activating it")
	cmd.Flags().BoolVar(&keepExisting, "keep-existing", false, "Leave other plans active")
	cmd.Flags().BoolVar(&goalMacros, "goal-macros", false, "Use goal-derived macros instead of the saved split")
	return cmd
}

func newDailyPlanListCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List daily plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, opts)
			if err != nil {
				return err
			}
			plans, err := app.Plans.ListByUser(ctx, u.ID)
			if err != nil {
				return err
			}
			if plans == nil {
				plans = []*domain.DailyPlan{}
			}
			return emit(cmd, app, opts, plans, func() string {
				if len(plans) == 0 {
					return "No daily plans found.\n"
				}
				return formatter.FormatDailyPlans(plans)
			})
		},
	}
}

func newDailyPlanShowCmd(app *App, opts *rootOptions) *cobra.Command {
	var active bool

	cmd := &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a daily plan with its meal plan and program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, opts)
			if err != nil {
				return err
			}

			var plan *domain.DailyPlan
			switch {
			case active || len(args) == 0:
				plan, err = app.Plans.GetActive(ctx, u.ID)
			default:
				id, perr := parseID(args[0])
				if perr != nil {
					return perr
				}
				plan, err = app.Plans.Get(ctx, u.ID, id)
			}
			if err != nil {
				return err
			}
			return emit(cmd, app, opts, plan, func() string {
				return formatDailyPlan(plan)
			})
		},
	}
	cmd.Flags().BoolVar(&active, "active", false, "Show the active plan")
	return cmd
}

func newDailyPlanActivateCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "activate ID",
		Short: "Make a plan the active one",
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
			on := true
			plan, err := app.Plans.Update(ctx, u.ID, id, planner.DailyPlanPatch{Active: &on})
			if err != nil {
				return err
			}
			return emit(cmd, app, opts, plan, func() string {
				return fmt.Sprintf("Activated plan %s (#%d)\n", plan.Name, plan.ID)
			})
		},
	}
}

func newDailyPlanRemoveCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a daily plan",
		Args:    cobra.ExactArgs(1),
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
			if err := app.Plans.Delete(ctx, u.ID, id); err != nil {
				return err
			}
			return emit(cmd, app, opts, map[string]int64{"deleted": id}, func() string {
				return fmt.Sprintf("Deleted plan #%d\n", id)
			})
		},
	}
}

func newDailyPlanExpireCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Deactivate every plan whose end date has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Plans.ExpirePlans(context.Background())
			if err != nil {
				return err
			}
			return emit(cmd, app, opts, map[string]int64{"deactivated": n}, func() string {
				return fmt.Sprintf("Deactivated %d expired plan(s)\n", n)
			})
		},
	}
}

func newDailyPlanExportCmd(app *App, opts *rootOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a plan as an xlsx workbook or an iCalendar file",
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

			var write func(io.Writer, *domain.DailyPlan) error
			switch format {
			case "xlsx":
				write = export.WriteXLSX
			case "ics":
				write = export.WriteICS
			default:
				return fmt.Errorf("unknown format %q (want xlsx or ics)", format)
			}

			plan, err := app.Plans.Get(ctx, u.ID, id)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("daily-plan-%d.%s", plan.ID, format)
			}
			if out == "-" {
				return write(cmd.OutOrStdout(), plan)
			}

			f, err := os.Create(filepath.Clean(out))
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := write(f, plan); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "Export format: xlsx or ics")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (\"-\" for stdout)")
	return cmd
}

func formatDailyPlan(p *domain.DailyPlan) string {
	out := formatter.FormatDailyPlans([]*domain.DailyPlan{p})
	if p.MealPlan != nil {
		out += "\n" + formatter.FormatMealPlan(p.MealPlan)
	}
	if p.TrainingProgram != nil {
		out += "\n" + formatter.FormatProgram(p.TrainingProgram)
	}
	return out
}
