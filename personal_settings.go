package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/fitplan-go-api/internal/engine"
)

// getPersonalSettings returns the authenticated user's settings. Users who
// never saved any get an empty object.
// GET /api/personal-settings.
func (h *Handler) getPersonalSettings(c *gin.Context) {
	s, err := h.settings.Get(c, currentUser(c))
	if err != nil {
		writeServiceError(c, "getPersonalSettings", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// patchPersonalSettings updates only the provided fields.
// PATCH /api/personal-settings.
func (h *Handler) patchPersonalSettings(c *gin.Context) {
	var body patchSettingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.empty() {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	// Reject unknown levels up front with the list of accepted values.
	if body.ActivityLevel != nil && !engine.ValidActivityLevel(*body.ActivityLevel) {
		apiError(c, http.StatusBadRequest,
			"activity_level must be one of: SEDENTARY, LIGHTLY_ACTIVE, MODERATELY_ACTIVE, VERY_ACTIVE, EXTRA_ACTIVE")
		return
	}

	s, err := h.settings.Get(c, currentUser(c))
	if err != nil {
		writeServiceError(c, "patchPersonalSettings", err)
		return
	}
	body.applyTo(s)
	if err := h.settings.Save(c, s); err != nil {
		writeServiceError(c, "patchPersonalSettings", err)
		return
	}

	c.JSON(http.StatusOK, s)
}
