package handler

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"winx/internal/events"
)

// EventsHandler streams store mutations over a websocket so the front-end
// can re-render after every write.
type EventsHandler struct {
	Hub    *events.Hub
	Logger *zap.Logger
}

func (h *EventsHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/events", h.stream)
}

func (h *EventsHandler) stream(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // same-host UI; no origin allowlist yet
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	ctx := c.Request.Context()
	sub, cancel := h.Hub.Subscribe(32)
	defer cancel()

	// Reads are discarded but must be drained for control frames; CloseRead
	// also surfaces client disconnects through the returned context.
	ctx = conn.CloseRead(ctx)

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "bye")
			return
		case event, ok := <-sub:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "bye")
				return
			}
			if err := h.write(ctx, conn, event); err != nil {
				return
			}
		}
	}
}

func (h *EventsHandler) write(ctx context.Context, conn *websocket.Conn, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, payload)
}
