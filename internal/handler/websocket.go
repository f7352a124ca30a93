package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/queueless/queueless-api/internal/websocket"
)

// WebSocketHandler handles WebSocket-related HTTP requests
type WebSocketHandler struct {
	hub *websocket.Hub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// HandleConnection handles WebSocket connection upgrades
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	h.hub.ServeWS(c)
}

// GetConnectionStats returns WebSocket connection statistics
func (h *WebSocketHandler) GetConnectionStats(c *gin.Context) {
	stats := map[string]interface{}{
		"total_connections": h.hub.GetConnectionCount(),
		"watched_offices":   h.hub.GetWatchedOffices(),
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
