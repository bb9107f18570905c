package main

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/export"
	"lg/fitplan-go-api/internal/planner"
)

// GET /api/daily-plans.
func (h *Handler) listDailyPlans(c *gin.Context) {
	plans, err := h.plans.ListByUser(c, currentUser(c))
	if err != nil {
		writeServiceError(c, "listDailyPlans", err)
		return
	}
	if plans == nil {
		plans = []*domain.DailyPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// GET /api/daily-plans/active. 404 when the user has no active plan.
func (h *Handler) getActiveDailyPlan(c *gin.Context) {
	plan, err := h.plans.GetActive(c, currentUser(c))
	if err != nil {
		writeServiceError(c, "getActiveDailyPlan", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// generateDailyPlan builds a plan from the user's settings with default options.
// POST /api/daily-plans/generate.
func (h *Handler) generateDailyPlan(c *gin.Context) {
	plan, err := h.plans.GenerateAutomatic(c, currentUser(c))
	if err != nil {
		writeServiceError(c, "generateDailyPlan", err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// generateDailyPlanWithConfig accepts a partial config; omitted fields keep
// their defaults.
// POST /api/daily-plans/generate-with-config.
func (h *Handler) generateDailyPlanWithConfig(c *gin.Context) {
	cfg := domain.DefaultDailyPlanConfig(time.Now().UTC())
	if err := c.ShouldBindJSON(&cfg); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	plan, err := h.plans.Generate(c, currentUser(c), cfg)
	if err != nil {
		writeServiceError(c, "generateDailyPlanWithConfig", err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// POST /api/daily-plans/deactivate-all.
func (h *Handler) deactivateAllDailyPlans(c *gin.Context) {
	n, err := h.plans.DeactivateAll(c, currentUser(c))
	if err != nil {
		writeServiceError(c, "deactivateAllDailyPlans", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deactivated": n})
}

// GET /api/daily-plans/:id.
func (h *Handler) getDailyPlan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	plan, err := h.plans.Get(c, currentUser(c), id)
	if err != nil {
		writeServiceError(c, "getDailyPlan", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// updateDailyPlan edits name, description, dates or the active flag.
// Activating a plan deactivates the user's others.
// PUT /api/daily-plans/:id.
func (h *Handler) updateDailyPlan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body planner.DailyPlanPatch
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	plan, err := h.plans.Update(c, currentUser(c), id, body)
	if err != nil {
		writeServiceError(c, "updateDailyPlan", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DELETE /api/daily-plans/:id.
func (h *Handler) deleteDailyPlan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.plans.Delete(c, currentUser(c), id); err != nil {
		writeServiceError(c, "deleteDailyPlan", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/daily-plans/:id/export.xlsx.
func (h *Handler) exportDailyPlanXLSX(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	plan, err := h.plans.Get(c, currentUser(c), id)
	if err != nil {
		writeServiceError(c, "exportDailyPlanXLSX", err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, plan); err != nil {
		writeServiceError(c, "exportDailyPlanXLSX", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="daily-plan-%d.xlsx"`, id))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GET /api/daily-plans/:id/calendar.ics.
func (h *Handler) exportDailyPlanICS(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	plan, err := h.plans.Get(c, currentUser(c), id)
	if err != nil {
		writeServiceError(c, "exportDailyPlanICS", err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteICS(&buf, plan); err != nil {
		writeServiceError(c, "exportDailyPlanICS", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="daily-plan-%d.ics"`, id))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
