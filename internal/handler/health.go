package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is implemented by substrates that can verify their backing store.
type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	// Storage is nil for the in-memory driver, which is always ready.
	Storage Pinger
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) ready(c *gin.Context) {
	if h.Storage != nil {
		if err := h.Storage.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "storage_unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
