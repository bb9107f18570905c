package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lg/fitplan-go-api/internal/cli/formatter"
	"lg/fitplan-go-api/internal/domain"
)

var errNoBiometrics = errors.New("no biometrics: pass --weight, --height, --age, --sex, --activity and --goal, use --interactive, or save settings for --user")

// resolveBiometrics picks the energy-model inputs for a command. u may be nil
// for anonymous calculations.
func resolveBiometrics(ctx context.Context, cmd *cobra.Command, app *App, f *biometricsFlags, u *domain.User) (domain.Biometrics, error) {
	var stored *domain.PersonalSettings
	if u != nil {
		s, err := app.Settings.Get(ctx, u.ID)
		if err != nil {
			return domain.Biometrics{}, err
		}
		stored = s
	}

	switch {
	case f.interactive:
		f.prefill(stored)
		if err := f.ask(); err != nil {
			return domain.Biometrics{}, err
		}
		return f.biometrics(), nil
	case f.provided(cmd):
		return f.biometrics(), nil
	case stored != nil:
		if b, ok := stored.Biometrics(); ok {
			return b, nil
		}
	}
	return domain.Biometrics{}, errNoBiometrics
}

func newCalcCmd(app *App, opts *rootOptions) *cobra.Command {
	var (
		bio  biometricsFlags
		save bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate BMR, TDEE, daily calories and macros",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var u *domain.User
			if save || opts.user != "" {
				var err error
				if u, err = resolveUser(ctx, app, opts); err != nil {
					return err
				}
			}

			b, err := resolveBiometrics(ctx, cmd, app, &bio, u)
			if err != nil {
				return err
			}

			var result domain.EnergyResult
			if save {
				result, err = app.Nutrition.CalculateAndPersonalize(ctx, u.ID, b)
			} else {
				result, err = app.Nutrition.CalculateNutrition(b)
			}
			if err != nil {
				return err
			}

			return emit(cmd, app, opts, result, func() string {
				out := formatter.FormatEnergy(result)
				if save {
					out += formatter.Dim(fmt.Sprintf("Saved to %s's settings.", u.Username)) + "\n"
				}
				return out
			})
		},
	}

	bio.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "Store biometrics and results in the user's settings")
	return cmd
}
