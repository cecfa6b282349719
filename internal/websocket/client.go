package websocket

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время, которое разрешено писать сообщение клиенту
	writeWait = 10 * time.Second

	// Время ожидания pong-ответа от клиента
	pongWait = 60 * time.Second

	// Периодичность отправки ping-сообщений клиенту
	pingPeriod = (pongWait * 9) / 10

	// Размер буфера исходящих сообщений клиента
	clientBufferSize = 16
)

// Client — одно WebSocket-соединение, подписанное на лидерборд викторины
type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	quizKey      string
	connectionID string
	send         chan []byte
}

// NewClient оборачивает установленное соединение и регистрирует его в хабе
func NewClient(hub *Hub, conn *websocket.Conn, quizKey string) *Client {
	client := &Client{
		hub:          hub,
		conn:         conn,
		quizKey:      quizKey,
		connectionID: uuid.New().String(),
		send:         make(chan []byte, clientBufferSize),
	}
	hub.register <- client
	return client
}

// Serve запускает обе насосные горутины соединения
func (c *Client) Serve() {
	go c.writePump()
	go c.readPump()
}

// readPump читает входящие сообщения. Подписчики лидерборда ничего не
// присылают, но чтение нужно для обработки pong и закрытия соединения.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WSClient] Неожиданное закрытие %s: %v", c.connectionID, err)
			}
			return
		}
	}
}

// writePump пишет события из канала send и поддерживает соединение ping-ами
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
