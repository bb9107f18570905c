package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lg/fitplan-go-api/internal/engine"
	"lg/fitplan-go-api/internal/planner"
	"lg/fitplan-go-api/internal/store"
)

// Handler holds shared dependencies (store, services) for all route handlers.
type Handler struct {
	users     store.UserRepo
	nutrition *planner.NutritionService
	plans     *planner.DailyPlanService
	settings  *planner.SettingsService
}

func newHandler(st store.Store, observers ...planner.UseCaseObserver) *Handler {
	return &Handler{
		users:     st.Users,
		nutrition: planner.NewNutritionService(st, observers...),
		plans:     planner.NewDailyPlanService(st, observers...),
		settings:  planner.NewSettingsService(st, observers...),
	}
}

/* ─── Response helpers ────────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// writeServiceError maps service errors onto status codes. Unexpected errors
// are logged and reported without detail.
func writeServiceError(c *gin.Context, fn string, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidMeasurement):
		apiError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		apiError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrComputation):
		apiError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("[%s] %v", fn, err)
		apiError(c, http.StatusInternalServerError, "internal error")
	}
}

// currentUser returns the user id set by authMiddleware.
func currentUser(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

// pathID parses the :id route parameter, writing a 400 when it is malformed.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)
	router.POST("/api/nutrition/calculate", h.calculateNutrition)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.POST("/nutrition/calculate-and-save", h.calculateAndSave)

	api.POST("/meal-plans/generate", h.generateMealPlan)
	api.POST("/meal-plans/generate-smart", h.generateSmartMealPlan)
	api.POST("/meal-plans/generate-with-config", h.generateMealPlanWithConfig)
	api.GET("/meal-plans/:id", h.getMealPlan)

	api.POST("/training-programs/generate", h.generateTrainingProgram)
	api.GET("/training-programs/:id", h.getTrainingProgram)

	api.GET("/personal-settings", h.getPersonalSettings)
	api.PATCH("/personal-settings", h.patchPersonalSettings)

	api.GET("/exercises", h.listExercises)

	api.GET("/daily-plans", h.listDailyPlans)
	api.GET("/daily-plans/active", h.getActiveDailyPlan)
	api.POST("/daily-plans/generate", h.generateDailyPlan)
	api.POST("/daily-plans/generate-with-config", h.generateDailyPlanWithConfig)
	api.POST("/daily-plans/deactivate-all", h.deactivateAllDailyPlans)
	api.GET("/daily-plans/:id", h.getDailyPlan)
	api.PUT("/daily-plans/:id", h.updateDailyPlan)
	api.DELETE("/daily-plans/:id", h.deleteDailyPlan)
	api.GET("/daily-plans/:id/export.xlsx", h.exportDailyPlanXLSX)
	api.GET("/daily-plans/:id/calendar.ics", h.exportDailyPlanICS)
}
