package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"winx/internal/events"
	"winx/internal/session"
)

type AuthHandler struct {
	Sessions *session.Store
	Hub      *events.Hub
	Logger   *zap.Logger
}

func (h *AuthHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/auth")
	group.POST("/login", h.login)
	group.POST("/register", h.register)
	group.POST("/logout", h.logout)
	group.GET("/me", h.me)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user, err := h.Sessions.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, session.ErrValidation) {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	h.Hub.Publish(events.Event{Type: events.TypeSessionStarted, ID: user.ID})
	Ok(c, user, nil)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user, err := h.Sessions.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, session.ErrValidation) {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	h.Hub.Publish(events.Event{Type: events.TypeSessionStarted, ID: user.ID})
	Ok(c, user, nil)
}

func (h *AuthHandler) logout(c *gin.Context) {
	h.Sessions.Logout(c.Request.Context())
	h.Hub.Publish(events.Event{Type: events.TypeSessionEnded})
	Ok(c, gin.H{"loggedOut": true}, nil)
}

func (h *AuthHandler) me(c *gin.Context) {
	user, ok := h.Sessions.Current()
	if !ok {
		Error(c, http.StatusUnauthorized, "no active session", nil)
		return
	}
	Ok(c, user, nil)
}
