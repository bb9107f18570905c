package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lg/fitplan-go-api/internal/domain"
)

// calculateNutrition returns BMR, TDEE, daily calories and macros.
// POST /api/nutrition/calculate (public).
func (h *Handler) calculateNutrition(c *gin.Context) {
	var b domain.Biometrics
	if err := c.ShouldBindJSON(&b); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.nutrition.CalculateNutrition(b)
	if err != nil {
		writeServiceError(c, "calculateNutrition", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// calculateAndSave computes targets and stores them on the user's settings.
// POST /api/nutrition/calculate-and-save.
func (h *Handler) calculateAndSave(c *gin.Context) {
	var b domain.Biometrics
	if err := c.ShouldBindJSON(&b); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.nutrition.CalculateAndPersonalize(c, currentUser(c), b)
	if err != nil {
		writeServiceError(c, "calculateAndSave", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/meal-plans/generate.
func (h *Handler) generateMealPlan(c *gin.Context) {
	var b domain.Biometrics
	if err := c.ShouldBindJSON(&b); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	plan, err := h.nutrition.GenerateMealPlan(c, currentUser(c), b)
	if err != nil {
		writeServiceError(c, "generateMealPlan", err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// POST /api/meal-plans/generate-smart?workout_days=true. workout_days
// defaults to true.
func (h *Handler) generateSmartMealPlan(c *gin.Context) {
	workoutDays, err := strconv.ParseBool(c.DefaultQuery("workout_days", "true"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "workout_days must be true or false")
		return
	}
	var b domain.Biometrics
	if err := c.ShouldBindJSON(&b); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	plan, err := h.nutrition.GenerateSmartMealPlan(c, currentUser(c), b, workoutDays)
	if err != nil {
		writeServiceError(c, "generateSmartMealPlan", err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// POST /api/meal-plans/generate-with-config.
func (h *Handler) generateMealPlanWithConfig(c *gin.Context) {
	body := mealPlanWithConfigRequest{Config: domain.DefaultMealPlanConfig(time.Now().UTC())}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	plan, err := h.nutrition.GenerateMealPlanWithConfig(c, currentUser(c), body.Biometrics, body.Config)
	if err != nil {
		writeServiceError(c, "generateMealPlanWithConfig", err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GET /api/meal-plans/:id.
func (h *Handler) getMealPlan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	plan, err := h.nutrition.GetMealPlan(c, currentUser(c), id)
	if err != nil {
		writeServiceError(c, "getMealPlan", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// POST /api/training-programs/generate.
func (h *Handler) generateTrainingProgram(c *gin.Context) {
	var b domain.Biometrics
	if err := c.ShouldBindJSON(&b); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	program, err := h.nutrition.GenerateTrainingProgram(c, currentUser(c), b)
	if err != nil {
		writeServiceError(c, "generateTrainingProgram", err)
		return
	}
	c.JSON(http.StatusCreated, program)
}

// GET /api/training-programs/:id.
func (h *Handler) getTrainingProgram(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	program, err := h.nutrition.GetTrainingProgram(c, currentUser(c), id)
	if err != nil {
		writeServiceError(c, "getTrainingProgram", err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// listExercises returns the catalogue, optionally filtered by ?category=.
// GET /api/exercises.
func (h *Handler) listExercises(c *gin.Context) {
	exercises, err := h.nutrition.ListExercises(c, c.Query("category"))
	if err != nil {
		writeServiceError(c, "listExercises", err)
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}
