package websocket

import (
	"log/slog"
	"net/http"
	"net/url"

	"churchhub/internal/apperror"
	"churchhub/internal/microservices/http-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// HTTP upgrade handler to WebSocket connections

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed["*"] || allowed[origin] {
				return true
			}
			// same-host requests are always fine
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
}

// WSHandler upgrades an authenticated request and streams the caller's notifications.
func WSHandler(hub *Hub, allowedOrigins []string, logger *slog.Logger) gin.HandlerFunc {
	upgrader := newUpgrader(allowedOrigins)

	return func(c *gin.Context) {
		// get user info from auth middleware
		principal, ok := middleware.CurrentPrincipal(c)
		if !ok {
			c.Error(apperror.Unauthorized("Authentication required"))
			return
		}

		// upgrade HTTP connection to WebSocket; the upgrader writes its own error response
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "user_id", principal.UserID, "error", err)
			return
		}

		client := NewClient(uuid.NewString(), principal.UserID, conn, hub, logger)
		if hello, err := NewSystemMessage("connected").ToJSON(); err == nil {
			client.SendChannel <- hello
		}
		if !hub.register(client) {
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			conn.Close()
			return
		}

		// start goroutines for read and write pumps
		go client.ReadPump()
		go client.WritePump()
	}
}
