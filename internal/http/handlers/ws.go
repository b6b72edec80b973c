package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"placenet/internal/observability"
	"placenet/internal/realtime"
)

type WSHandler struct {
	hub    *realtime.Hub
	logger *observability.Logger
	up     websocket.Upgrader
}

func NewWSHandler(hub *realtime.Hub, logger *observability.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		logger: logger,
		up: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Token auth happens at the application level; browser clients
			// connect from arbitrary origins during demos.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed: " + err.Error())
		return
	}
	// Attach blocks in the read loop until the peer disconnects.
	h.hub.Attach(conn)
}
