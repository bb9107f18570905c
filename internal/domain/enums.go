package domain

// Sex selects the Mifflin–St Jeor constant.
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// ActivityLevel scales BMR into TDEE.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "SEDENTARY"
	ActivityLightlyActive    ActivityLevel = "LIGHTLY_ACTIVE"
	ActivityModeratelyActive ActivityLevel = "MODERATELY_ACTIVE"
	ActivityVeryActive       ActivityLevel = "VERY_ACTIVE"
	ActivityExtraActive      ActivityLevel = "EXTRA_ACTIVE"
)

// ActivityLevels lists every level in ascending order of activity.
var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLightlyActive,
	ActivityModeratelyActive,
	ActivityVeryActive,
	ActivityExtraActive,
}

// Goal is the user's nutrition goal.
type Goal string

const (
	GoalLoseWeight     Goal = "LOSE_WEIGHT"
	GoalMaintainWeight Goal = "MAINTAIN_WEIGHT"
	GoalGainWeight     Goal = "GAIN_WEIGHT"
)

var Goals = []Goal{GoalLoseWeight, GoalMaintainWeight, GoalGainWeight}

// ProgramGoal is the training focus a program is assembled for.
type ProgramGoal string

const (
	ProgramMuscleGain  ProgramGoal = "MUSCLE_GAIN"
	ProgramWeightLoss  ProgramGoal = "WEIGHT_LOSS"
	ProgramEndurance   ProgramGoal = "ENDURANCE"
	ProgramStrength    ProgramGoal = "STRENGTH"
	ProgramFlexibility ProgramGoal = "FLEXIBILITY"
)

var ProgramGoals = []ProgramGoal{
	ProgramMuscleGain,
	ProgramWeightLoss,
	ProgramEndurance,
	ProgramStrength,
	ProgramFlexibility,
}

// MealType identifies a meal slot within a day.
type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
	MealSnack     MealType = "SNACK"
)

// MealTypes is the canonical in-day meal order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}
