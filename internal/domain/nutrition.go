package domain

import "encoding/json"

// Biometrics is the input to the energy model.
type Biometrics struct {
	WeightKG      float64       `json:"weight_kg"`
	HeightCM      float64       `json:"height_cm"`
	Age           int           `json:"age"`
	Sex           Sex           `json:"sex"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Goal          Goal          `json:"goal"`
}

// MacroDistribution is the macronutrient breakdown of a calorie target.
// Percentages are 0–100.
type MacroDistribution struct {
	TotalCalories float64 `json:"total_calories"`
	ProteinG      float64 `json:"protein_g"`
	FatG          float64 `json:"fat_g"`
	CarbsG        float64 `json:"carbs_g"`
	ProteinKcal   float64 `json:"protein_kcal"`
	FatKcal       float64 `json:"fat_kcal"`
	CarbsKcal     float64 `json:"carbs_kcal"`
	ProteinPct    float64 `json:"protein_pct"`
	FatPct        float64 `json:"fat_pct"`
	CarbsPct      float64 `json:"carbs_pct"`
}

// EnergyResult is the output of the full energy chain.
type EnergyResult struct {
	BMR             float64           `json:"bmr"`
	TDEE            float64           `json:"tdee"`
	DailyCalories   float64           `json:"daily_calories"`
	Goal            Goal              `json:"goal"`
	GoalDescription string            `json:"goal_description"`
	Macros          MacroDistribution `json:"macros"`
}

// MacroSplit holds macro shares as fractions of 1 (0.25 = 25%).
type MacroSplit struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

// MealDistribution maps each meal slot to its share of the day's calories.
type MealDistribution map[MealType]float64

// UnmarshalJSON replaces the receiver rather than merging into it, so a
// decoded split never keeps meal slots from a pre-filled default. A JSON
// null leaves the receiver unchanged.
func (d *MealDistribution) UnmarshalJSON(data []byte) error {
	var m map[MealType]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m != nil {
		*d = m
	}
	return nil
}
