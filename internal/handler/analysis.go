package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"winx/internal/analysis"
	"winx/internal/models"
	"winx/internal/session"
)

type AnalysisHandler struct {
	Generator *analysis.Generator
	Sessions  *session.Store
}

func (h *AnalysisHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/analysis", RequireAdmin(h.Sessions), h.generate)
}

type analysisRequest struct {
	TeamA   string         `json:"teamA"`
	TeamB   string         `json:"teamB"`
	League  string         `json:"league"`
	BetType models.BetType `json:"betType"`
}

func (h *AnalysisHandler) generate(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if strings.TrimSpace(req.TeamA) == "" || strings.TrimSpace(req.TeamB) == "" {
		Error(c, http.StatusBadRequest, "both team names are required", nil)
		return
	}
	text, err := h.Generator.Generate(c.Request.Context(), req.TeamA, req.TeamB, req.League, req.BetType)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"analysis": text}, nil)
}
