package handlers

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/davidkwan/streakmates-api/internal/logger"
	"github.com/davidkwan/streakmates-api/internal/middleware"
)

// Event types sent over WebSocket
const (
	EventMemberJoined   = "member_joined"
	EventMemberLeft     = "member_left"
	EventCheckInLogged  = "checkin_logged"
	EventGroupUpdated   = "group_updated"
	EventStreakAdvanced = "streak_advanced"
)

// WSEvent is the JSON message sent to connected clients
type WSEvent struct {
	Type    string      `json:"type"`
	GroupID string      `json:"groupId"`
	UserID  string      `json:"userId"`
	Data    interface{} `json:"data,omitempty"`
}

// connection wraps a websocket connection with its user ID
type connection struct {
	conn   *websocket.Conn
	userID uuid.UUID
}

// Hub manages WebSocket connections per group
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*connection]bool // groupID -> set of connections
}

// Global hub instance
var WS = &Hub{
	rooms: make(map[uuid.UUID]map[*connection]bool),
}

// register adds a connection to a group room
func (h *Hub) register(groupID uuid.UUID, conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[groupID] == nil {
		h.rooms[groupID] = make(map[*connection]bool)
	}
	h.rooms[groupID][conn] = true
	logger.Sugar.Debugw("ws register", "user", conn.userID, "group", groupID, "total", len(h.rooms[groupID]))
}

// unregister removes a connection from a group room
func (h *Hub) unregister(groupID uuid.UUID, conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[groupID]; ok {
		delete(conns, conn)
		logger.Sugar.Debugw("ws unregister", "user", conn.userID, "group", groupID, "remaining", len(conns))
		if len(conns) == 0 {
			delete(h.rooms, groupID)
		}
	}
}

// Broadcast sends an event to all connections in a group room, excluding the sender
func (h *Hub) Broadcast(groupID uuid.UUID, excludeUserID uuid.UUID, event WSEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.rooms[groupID]
	if !ok {
		return
	}

	msg, err := json.Marshal(event)
	if err != nil {
		logger.Sugar.Errorw("ws broadcast marshal failed", "error", err)
		return
	}

	for c := range conns {
		// Don't send to the user who triggered the event
		if c.userID == excludeUserID {
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Sugar.Warnw("ws write failed", "user", c.userID, "error", err)
		}
	}
}

// WebSocketUpgrade is the middleware that checks the upgrade request and validates JWT
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Authenticate via query param: ?token=<jwt>
		tokenString := c.Query("token")
		if tokenString == "" {
			// Also check Authorization header for non-browser clients
			authHeader := c.Get("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				tokenString = ""
			}
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authentication token",
			})
		}

		claims, err := middleware.ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("userId", claims.UserID)
		return c.Next()
	}
}

// HandleWebSocket handles a WebSocket connection for a specific group
func HandleWebSocket(c *websocket.Conn) {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		c.Close()
		return
	}

	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		c.Close()
		return
	}

	conn := &connection{conn: c, userID: userID}
	WS.register(groupID, conn)
	defer WS.unregister(groupID, conn)

	// Keep connection alive — read messages (client sends pings/keepalives)
	for {
		_, _, err := c.ReadMessage()
		if err != nil {
			break
		}
	}
}
