package handler

import (
	"context"
	"os"

	"studybuddy-be/internal/pkg/logger"
	internalWS "studybuddy-be/internal/websocket"
	"studybuddy-be/pkg/events"
	pktNats "studybuddy-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ProgressHandler bridges domain events to websocket pushes so the UI
// can show indexing and review activity live.
type ProgressHandler struct {
	subscriber *pktNats.Subscriber
	hub        *internalWS.Hub
	logger     logger.ILogger
}

func NewProgressHandler(sub *pktNats.Subscriber, hub *internalWS.Hub, log logger.ILogger) *ProgressHandler {
	return &ProgressHandler{
		subscriber: sub,
		hub:        hub,
		logger:     log,
	}
}

// Start consumes domain events off the bus and forwards each to the
// owning user's open connections. Safe to skip entirely when NATS is
// not configured.
func (h *ProgressHandler) Start() {
	if h.subscriber == nil {
		return
	}

	err := h.subscriber.Subscribe("events.>", "progress-push", func(ctx context.Context, event events.Event) error {
		payload := event.Payload()
		userIDStr, ok := payload["user_id"].(string)
		if !ok {
			// Event without a target user; nothing to push.
			return nil
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil
		}

		h.hub.Send(userID, event.EventType(), payload)
		return nil
	})
	if err != nil {
		h.logger.Error("ProgressHandler", "Failed to subscribe to events", map[string]interface{}{"error": err.Error()})
	}
}

// ServeWs upgrades the connection after validating the JWT carried in
// the query string or Authorization header.
func (h *ProgressHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("ProgressHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ProgressHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("ProgressHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
