package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nfu-im/internship-service/internal/models"
)

// RequireAuth rejects requests whose session never completed a login.
func RequireAuth(sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Load(c)
		if !sess.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "login required",
			})
			return
		}
		c.Next()
	}
}

// RequireRoles rejects sessions whose confirmed role is not in the
// allowed set. An ambiguous session (role pending) never passes.
func RequireRoles(sessions *SessionStore, allowed ...models.UserRole) gin.HandlerFunc {
	allowedSet := make(map[models.UserRole]bool, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = true
	}

	return func(c *gin.Context) {
		sess := sessions.Load(c)
		if !sess.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "login required",
			})
			return
		}
		if sess.Role == "" || !allowedSet[sess.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
