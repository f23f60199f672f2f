package ws

import (
	"net/http"

	"pixel_plaza/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is public and read-only; origin checks add nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades the connection and subscribes it to the feed.
func Handler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := newClient(hub, conn)
		hub.register(client)

		go client.writePump()
		go client.readPump()
	}
}
