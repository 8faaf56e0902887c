package ws

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentboard/internal/domain"
	"talentboard/internal/service/auth"
)

const (
	localUserID = "ws_user_id"
	localRole   = "ws_role"
)

// Upgrade authenticates the connection before the websocket handshake.
// Browsers cannot set headers on websocket requests, so the same JWT the
// REST API uses is passed as a query parameter.
func Upgrade(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		token := c.Query("token")
		if token == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localRole, claims.Role)
		return c.Next()
	}
}

// Handler registers the connection with the hub and keeps it open until
// the client goes away. Inbound frames are discarded: the socket is a
// push channel, commands go through the REST API.
func Handler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals(localUserID).(uuid.UUID)
		if !ok {
			conn.Close()
			return
		}
		role, ok := conn.Locals(localRole).(domain.UserRole)
		if !ok {
			conn.Close()
			return
		}

		client := hub.Register(userID, role, conn)
		defer hub.Unregister(userID, role, conn)

		log.Printf("ws: user %s connected", userID)
		go client.WritePump()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		log.Printf("ws: user %s disconnected", userID)
	})
}
