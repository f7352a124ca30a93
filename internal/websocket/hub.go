package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/metrics"
)

// Hub maintains the set of active clients, keyed by the office they watch,
// and pushes live pulse updates to them
type Hub struct {
	// Registered clients by office ID
	clients map[string]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for thread-safe operations
	mutex sync.RWMutex

	// Logger
	logger *zerolog.Logger
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	// The websocket connection
	conn *websocket.Conn

	// Buffered channel of outbound messages
	Send chan []byte

	// Office this client subscribed to
	OfficeID string

	// Session that opened the connection
	SessionID string

	// Hub reference
	Hub *Hub

	// Connection metadata
	ConnectedAt time.Time
	LastPing    time.Time
}

// PulseUpdate carries the live-window counts of one office
type PulseUpdate struct {
	Type       string    `json:"type"`
	OfficeID   string    `json:"office_id"`
	Entered    int       `json:"entered"`
	Completed  int       `json:"completed"`
	SampleSize int       `json:"sample_size"`
	Timestamp  time.Time `json:"timestamp"`
}

// Message represents a generic WebSocket message
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin for now
		// In production, you should validate the origin
		return true
	},
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.Global(),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// registerClient registers a new client
func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.clients[client.OfficeID] == nil {
		h.clients[client.OfficeID] = make(map[*Client]bool)
	}
	h.clients[client.OfficeID][client] = true

	// Track metrics
	metrics.Get().IncrementWSConnection()

	h.logger.Info().
		Str("office_id", client.OfficeID).
		Str("session_id", client.SessionID).
		Int("office_connections", len(h.clients[client.OfficeID])).
		Msg("WebSocket client registered")

	// Send welcome message
	welcome := Message{
		Type:      "connection",
		Data:      map[string]string{"status": "connected", "office_id": client.OfficeID},
		Timestamp: time.Now(),
	}
	client.SendMessage(welcome)
}

// unregisterClient unregisters a client
func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if clients, ok := h.clients[client.OfficeID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.Send)

			// Track metrics
			metrics.Get().DecrementWSConnection()

			// Remove office entry if no more clients
			if len(clients) == 0 {
				delete(h.clients, client.OfficeID)
			}

			h.logger.Info().
				Str("office_id", client.OfficeID).
				Str("session_id", client.SessionID).
				Int("remaining_connections", len(clients)).
				Msg("WebSocket client unregistered")
		}
	}
}

// SendToOffice sends a message to all connections watching a specific office
func (h *Hub) SendToOffice(officeID string, message interface{}) {
	h.mutex.RLock()
	clients, exists := h.clients[officeID]
	h.mutex.RUnlock()

	if !exists {
		h.logger.Debug().
			Str("office_id", officeID).
			Msg("No WebSocket connections found for office")
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("office_id", officeID).
			Msg("Failed to marshal message for office")
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range clients {
		select {
		case client.Send <- data:
			// Track outgoing message
			metrics.Get().IncrementWSMessageOut()
		default:
			h.logger.Warn().
				Str("office_id", officeID).
				Msg("Failed to send message to client, closing connection")
			close(client.Send)
			delete(clients, client)
			metrics.Get().DecrementWSConnection()
		}
	}

	// Clean up empty office entry
	if len(clients) == 0 {
		delete(h.clients, officeID)
	}
}

// BroadcastPulse pushes the refreshed live-window counts of an office to
// every subscriber
func (h *Hub) BroadcastPulse(officeID string, entered, completed, sampleSize int) {
	update := PulseUpdate{
		Type:       "pulse",
		OfficeID:   officeID,
		Entered:    entered,
		Completed:  completed,
		SampleSize: sampleSize,
		Timestamp:  time.Now(),
	}

	h.SendToOffice(officeID, update)
}

// GetWatchedOffices returns the IDs of offices with at least one subscriber
func (h *Hub) GetWatchedOffices() []string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	offices := make([]string, 0, len(h.clients))
	for officeID := range h.clients {
		offices = append(offices, officeID)
	}
	return offices
}

// GetConnectionCount returns the total number of active connections
func (h *Hub) GetConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}

// GetOfficeConnectionCount returns the number of connections for a specific office
func (h *Hub) GetOfficeConnectionCount(officeID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if clients, exists := h.clients[officeID]; exists {
		return len(clients)
	}
	return 0
}

// RegisterClient is a public method to register a client (for testing)
func (h *Hub) RegisterClient(client *Client) {
	h.registerClient(client)
}

// UnregisterClient is a public method to unregister a client (for testing)
func (h *Hub) UnregisterClient(client *Client) {
	h.unregisterClient(client)
}
