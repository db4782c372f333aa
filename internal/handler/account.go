package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"winx/internal/events"
	"winx/internal/models"
	"winx/internal/prefs"
	"winx/internal/session"
)

// AccountHandler serves the preference blobs and the ad-reward flow.
type AccountHandler struct {
	Prefs    *prefs.Store
	Ads      *prefs.AdWatcher
	Sessions *session.Store
	Hub      *events.Hub
}

func (h *AccountHandler) Register(r *gin.Engine) {
	account := r.Group("/api/v1/account")
	account.POST("/ads/watch", RequireSession(h.Sessions), h.watchAd)
	account.GET("/profile-image", h.getProfileImage)
	account.PUT("/profile-image", RequireSession(h.Sessions), h.putProfileImage)

	group := r.Group("/api/v1/prefs")
	group.GET("/theme", h.getTheme)
	group.PUT("/theme", h.putTheme)
	group.GET("/team-logos", h.getTeamLogos)
	group.PUT("/team-logos", RequireAdmin(h.Sessions), h.putTeamLogos)
}

func (h *AccountHandler) watchAd(c *gin.Context) {
	state, balance, err := h.Ads.Watch(c.Request.Context())
	switch {
	case errors.Is(err, prefs.ErrAdCooldown):
		Error(c, http.StatusTooManyRequests, "please wait before watching another ad", nil)
		return
	case errors.Is(err, session.ErrNoSession):
		Error(c, http.StatusUnauthorized, "authentication required", nil)
		return
	case err != nil:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	h.Hub.Publish(events.Event{Type: events.TypeBalanceChanged})
	Ok(c, gin.H{"adState": state, "balance": balance}, nil)
}

func (h *AccountHandler) getProfileImage(c *gin.Context) {
	image, err := h.Prefs.ProfileImage(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"image": image}, nil)
}

type profileImageRequest struct {
	Image string `json:"image"` // data URL
}

func (h *AccountHandler) putProfileImage(c *gin.Context) {
	var req profileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Prefs.SetProfileImage(c.Request.Context(), req.Image); err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"image": req.Image}, nil)
}

func (h *AccountHandler) getTheme(c *gin.Context) {
	dark, err := h.Prefs.DarkMode(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"darkMode": dark}, nil)
}

type themeRequest struct {
	DarkMode bool `json:"darkMode"`
}

func (h *AccountHandler) putTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Prefs.SetDarkMode(c.Request.Context(), req.DarkMode); err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"darkMode": req.DarkMode}, nil)
}

func (h *AccountHandler) getTeamLogos(c *gin.Context) {
	logos, err := h.Prefs.TeamLogos(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, logos, nil)
}

func (h *AccountHandler) putTeamLogos(c *gin.Context) {
	var logos models.TeamLogos
	if err := c.ShouldBindJSON(&logos); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Prefs.SetTeamLogos(c.Request.Context(), logos); err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, logos, nil)
}
