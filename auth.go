package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"lg/fitplan-go-api/internal/store"
)

// dummyHash is compared against when the username is unknown so both paths
// cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// login exchanges a username and password for the user's API token.
// POST /api/login (public, no auth required).
func (h *Handler) login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.GetByUsername(c, body.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		writeServiceError(c, "login", err)
		return
	}

	hash := dummyHash
	if u != nil {
		hash = []byte(u.Password)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(body.Password)) != nil || u == nil {
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": u.AuthToken, "user_id": u.ID})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// authMiddleware resolves the bearer token to a user and stores the id under
// "user_id" (int64) for currentUser.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		u, err := h.users.GetByToken(c, token)
		switch {
		case errors.Is(err, store.ErrNotFound):
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		case err != nil:
			writeServiceError(c, "authMiddleware", err)
			c.Abort()
			return
		}

		c.Set("user_id", u.ID)
		c.Next()
	}
}
