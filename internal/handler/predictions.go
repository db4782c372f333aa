package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"winx/internal/catalog"
	"winx/internal/events"
	"winx/internal/models"
	"winx/internal/session"
)

type PredictionHandler struct {
	Catalog  *catalog.Store
	Sessions *session.Store
	Hub      *events.Hub
	Logger   *zap.Logger
}

func (h *PredictionHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/predictions")
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.POST("/:id/unlock", RequireSession(h.Sessions), h.unlock)

	admin := group.Group("", RequireAdmin(h.Sessions))
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *PredictionHandler) list(c *gin.Context) {
	category := models.Category(strings.TrimSpace(c.Query("category")))
	if category == "" {
		category = models.CategoryAll
	}
	items := h.Catalog.Filter(category)
	Ok(c, items, map[string]any{"count": len(items)})
}

func (h *PredictionHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.Catalog.Get(id)
	if errors.Is(err, catalog.ErrNotFound) {
		Error(c, http.StatusNotFound, "prediction not found", nil)
		return
	}
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *PredictionHandler) create(c *gin.Context) {
	var input models.Prediction
	if err := c.ShouldBindJSON(&input); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item, err := h.Catalog.Create(c.Request.Context(), input)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	h.Hub.Publish(events.Event{Type: events.TypePredictionCreated, ID: item.ID})
	Ok(c, item, nil)
}

func (h *PredictionHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.PredictionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item, err := h.Catalog.Update(c.Request.Context(), id, patch)
	if errors.Is(err, catalog.ErrNotFound) {
		Error(c, http.StatusNotFound, "prediction not found", nil)
		return
	}
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	h.Hub.Publish(events.Event{Type: events.TypePredictionUpdated, ID: id})
	Ok(c, item, nil)
}

func (h *PredictionHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Catalog.Delete(c.Request.Context(), id); err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	h.Hub.Publish(events.Event{Type: events.TypePredictionDeleted, ID: id})
	Ok(c, gin.H{"deleted": id}, nil)
}

// unlock debits the record's gem cost from the current session and flips the
// record visible. Re-unlocking an unlocked record succeeds without a charge.
func (h *PredictionHandler) unlock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.Catalog.Get(id)
	if errors.Is(err, catalog.ErrNotFound) {
		Error(c, http.StatusNotFound, "prediction not found", nil)
		return
	}
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	if item.Unlocked {
		Ok(c, item, map[string]any{"charged": false})
		return
	}

	cost := item.GemCost
	balance, err := h.Sessions.Debit(c.Request.Context(), cost)
	switch {
	case errors.Is(err, session.ErrNoSession):
		Error(c, http.StatusUnauthorized, "authentication required", nil)
		return
	case errors.Is(err, session.ErrInsufficientBalance):
		Error(c, http.StatusPaymentRequired, "insufficient gems", map[string]any{
			"required": cost,
			"balance":  balance,
		})
		return
	case err != nil:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	unlocked, err := h.Catalog.Unlock(c.Request.Context(), id)
	if err != nil {
		// The debit went through but the record vanished; refund so the
		// balance matches what the user can see.
		if _, creditErr := h.Sessions.Credit(c.Request.Context(), cost); creditErr != nil && h.Logger != nil {
			h.Logger.Error("refund after failed unlock", zap.Int64("id", id), zap.Error(creditErr))
		}
		Error(c, http.StatusNotFound, "prediction not found", nil)
		return
	}

	h.Hub.Publish(events.Event{Type: events.TypePredictionUnlocked, ID: id})
	h.Hub.Publish(events.Event{Type: events.TypeBalanceChanged})
	Ok(c, unlocked, map[string]any{"charged": true, "balance": balance})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
