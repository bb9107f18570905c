package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/engine"
)

// biometricsFlags collects energy-model inputs from flags, an interactive
// form, or the user's stored settings, in that order of precedence.
type biometricsFlags struct {
	weight      float64
	height      float64
	age         int
	sex         string
	activity    string
	goal        string
	interactive bool
}

func (f *biometricsFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.weight, "weight", 0, "Body weight in kg")
	cmd.Flags().Float64Var(&f.height, "height", 0, "Height in cm")
	cmd.Flags().IntVar(&f.age, "age", 0, "Age in years")
	cmd.Flags().StringVar(&f.sex, "sex", "", "MALE or FEMALE")
	cmd.Flags().StringVar(&f.activity, "activity", "", "Activity level (SEDENTARY ... EXTRA_ACTIVE)")
	cmd.Flags().StringVar(&f.goal, "goal", "", "LOSE_WEIGHT, MAINTAIN_WEIGHT or GAIN_WEIGHT")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "Prompt for biometrics")
}

// provided reports whether any biometric flag was set on cmd.
func (f *biometricsFlags) provided(cmd *cobra.Command) bool {
	for _, name := range []string{"weight", "height", "age", "sex", "activity", "goal"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func (f *biometricsFlags) biometrics() domain.Biometrics {
	return domain.Biometrics{
		WeightKG:      f.weight,
		HeightCM:      f.height,
		Age:           f.age,
		Sex:           domain.Sex(strings.ToUpper(f.sex)),
		ActivityLevel: domain.ActivityLevel(strings.ToUpper(f.activity)),
		Goal:          domain.Goal(strings.ToUpper(f.goal)),
	}
}

// prefill copies stored settings into unset flags so the form starts from
// what the user saved last.
func (f *biometricsFlags) prefill(s *domain.PersonalSettings) {
	if s == nil {
		return
	}
	if f.weight == 0 && s.CurrentWeightKG != nil {
		f.weight = *s.CurrentWeightKG
	}
	if f.height == 0 && s.HeightCM != nil {
		f.height = *s.HeightCM
	}
	if f.age == 0 && s.Age != nil {
		f.age = *s.Age
	}
	if f.sex == "" && s.Sex != nil {
		f.sex = string(*s.Sex)
	}
	if f.activity == "" && s.ActivityLevel != nil {
		f.activity = string(*s.ActivityLevel)
	}
	if f.goal == "" && s.Goal != nil {
		f.goal = string(*s.Goal)
	}
}

// ask runs a huh form over the current values.
func (f *biometricsFlags) ask() error {
	weight := formatOptional(f.weight)
	height := formatOptional(f.height)
	age := ""
	if f.age > 0 {
		age = strconv.Itoa(f.age)
	}
	if f.sex == "" {
		f.sex = string(domain.SexMale)
	}
	if f.activity == "" {
		f.activity = string(domain.ActivityModeratelyActive)
	}
	if f.goal == "" {
		f.goal = string(domain.GoalMaintainWeight)
	}

	form := huh.NewForm(
		huh.NewGroup(
			numberInput("Weight (kg)", "80", &weight, engine.MaxWeightKG),
			numberInput("Height (cm)", "180", &height, engine.MaxHeightCM),
			huh.NewInput().
				Title("Age").
				Placeholder("30").
				Value(&age).
				Validate(validateAge),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sex").
				Options(huh.NewOptions(string(domain.SexMale), string(domain.SexFemale))...).
				Value(&f.sex),
			huh.NewSelect[string]().
				Title("Activity level").
				Options(stringOptions(domain.ActivityLevels)...).
				Value(&f.activity),
			huh.NewSelect[string]().
				Title("Goal").
				Options(stringOptions(domain.Goals)...).
				Value(&f.goal),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return err
	}

	// validated by the form
	f.weight, _ = strconv.ParseFloat(strings.TrimSpace(weight), 64)
	f.height, _ = strconv.ParseFloat(strings.TrimSpace(height), 64)
	f.age, _ = strconv.Atoi(strings.TrimSpace(age))
	return nil
}

func formatOptional(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numberInput(title, placeholder string, value *string, limit float64) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(func(s string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil || v <= 0 || v > limit {
				return fmt.Errorf("enter a number between 0 and %g", limit)
			}
			return nil
		})
}

func validateAge(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < engine.MinAge || v > engine.MaxAge {
		return fmt.Errorf("age must be between %d and %d", engine.MinAge, engine.MaxAge)
	}
	return nil
}

func stringOptions[T ~string](values []T) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), string(v))
	}
	return opts
}
