package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"winx/internal/session"
)

// RequireSession rejects requests while nobody is signed in.
func RequireSession(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsAuthenticated() {
			Error(c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admin sessions. Unauthenticated callers get 401
// so the front-end can open the login modal instead of a permissions page.
func RequireAdmin(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsAuthenticated() {
			Error(c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}
		if !sessions.IsAdmin() {
			Error(c, http.StatusForbidden, "admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
