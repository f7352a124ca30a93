package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/metrics"
)

// ServeWS handles websocket requests from the peer. The office to watch
// comes from the office_id query parameter; the session id is set by the
// session middleware.
func (h *Hub) ServeWS(c *gin.Context) {
	officeID := c.Query("office_id")
	if officeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "office_id query parameter is required",
			"code":    "OFFICE_ID_REQUIRED",
		})
		return
	}

	sessionID := logger.GetSessionID(c.Request.Context())

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("office_id", officeID).
			Msg("Failed to upgrade WebSocket connection")
		return
	}

	logger.AuditWebSocket(c.Request.Context(), logger.AuditActionWSConnect, officeID, c.ClientIP(), map[string]interface{}{
		"session_id": sessionID,
	})

	client := &Client{
		conn:        conn,
		Send:        make(chan []byte, 256),
		OfficeID:    officeID,
		SessionID:   sessionID,
		Hub:         h,
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}

	client.Hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines
	go client.writePump()
	go client.readPump()
}

// readPump pumps messages from the websocket connection to the hub
//
// The application runs readPump in a per-connection goroutine. The application
// ensures that there is at most one reader on a connection by executing all
// reads from this goroutine.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.LastPing = time.Now()
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Error().
					Err(err).
					Str("office_id", c.OfficeID).
					Msg("WebSocket connection closed unexpectedly")
			}
			break
		}

		metrics.Get().IncrementWSMessageIn()
		c.handleMessage(message)
	}
}

// writePump pumps messages from the hub to the websocket connection
//
// A goroutine running writePump is started for each connection. The
// application ensures that there is at most one writer to a connection by
// executing all writes from this goroutine.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Drain any queued updates into the same websocket frame
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Client) handleMessage(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.Hub.logger.Error().
			Err(err).
			Str("office_id", c.OfficeID).
			Msg("Failed to unmarshal client message")
		return
	}

	switch msg.Type {
	case "ping":
		// Respond to ping with pong
		pong := Message{
			Type:      "pong",
			Timestamp: time.Now(),
		}
		c.SendMessage(pong)

	default:
		c.Hub.logger.Debug().
			Str("office_id", c.OfficeID).
			Str("message_type", msg.Type).
			Msg("Unknown message type received from client")
	}
}

// SendMessage sends a message to this specific client
func (c *Client) SendMessage(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		c.Hub.logger.Error().
			Err(err).
			Str("office_id", c.OfficeID).
			Msg("Failed to marshal message for client")
		return
	}

	select {
	case c.Send <- data:
	default:
		c.Hub.logger.Warn().
			Str("office_id", c.OfficeID).
			Msg("Client send channel is full, closing connection")
		close(c.Send)
	}
}

// IsConnected returns true if the client connection is still active
func (c *Client) IsConnected() bool {
	return c.conn != nil
}

// GetConnectionInfo returns information about this client connection
func (c *Client) GetConnectionInfo() map[string]interface{} {
	return map[string]interface{}{
		"office_id":    c.OfficeID,
		"session_id":   c.SessionID,
		"connected_at": c.ConnectedAt,
		"last_ping":    c.LastPing,
	}
}
