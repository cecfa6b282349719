package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"

	ws "github.com/yourusername/quizzify-api/internal/websocket"
)

// WSHandler апгрейдит соединения подписчиков лидерборда
type WSHandler struct {
	hub      *ws.Hub
	upgrader gorilla.Upgrader
}

// NewWSHandler создает новый WebSocket-обработчик.
// CheckOrigin отдан CORS-слою: API работает за единой CORS-конфигурацией.
func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// SubscribeLeaderboard подписывает соединение на события лидерборда викторины.
// Ключ передается параметром quiz: "quiz:{id}" или "code:{CODE}".
func (h *WSHandler) SubscribeLeaderboard(c *gin.Context) {
	quizKey := c.Query("quiz")
	if quizKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quiz query parameter is required"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WSHandler] Ошибка апгрейда соединения: %v", err)
		return
	}

	client := ws.NewClient(h.hub, conn, "leaderboard:"+quizKey)
	client.Serve()
}
