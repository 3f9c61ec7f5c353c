package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/food-order-bot/feed"
	"github.com/yeremiapane/food-order-bot/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard internal, origin dibatasi lewat reverse proxy
	},
}

// FeedWebSocket meng-upgrade koneksi dashboard ke feed order live.
// Role diambil dari middleware auth sebelum upgrade.
func FeedWebSocket(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("role not found in context"))
		return
	}
	role, _ := roleInterface.(string)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	feed.RegisterClient(conn, role)
	utils.InfoLogger.Printf("Feed client connected (role=%s)", role)

	defer func() {
		feed.UnregisterClient(conn)
		utils.InfoLogger.Printf("Feed client disconnected (role=%s)", role)
	}()

	// Read loop hanya untuk mendeteksi close; feed bersifat satu arah.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
