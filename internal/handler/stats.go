package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"winx/internal/stats"
)

type StatsHandler struct {
	Stats *stats.Service
}

func (h *StatsHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/stats", h.live)
	r.GET("/api/v1/stats/snapshot", h.snapshot)
}

func (h *StatsHandler) live(c *gin.Context) {
	Ok(c, h.Stats.Compute(), nil)
}

func (h *StatsHandler) snapshot(c *gin.Context) {
	snap, found, err := h.Stats.Last(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if !found {
		Error(c, http.StatusNotFound, "no snapshot yet", nil)
		return
	}
	Ok(c, snap, nil)
}
