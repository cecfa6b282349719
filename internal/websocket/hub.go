// Package websocket реализует push-уведомления об обновлениях лидерборда.
// Клиент подписывается на конкретную викторину; после каждой зафиксированной
// сдачи подписчикам рассылается событие leaderboard:updated, по которому
// клиент перезапрашивает лидерборд по HTTP.
package websocket

import (
	"encoding/json"
	"log"
	"time"
)

// Event — сообщение, отправляемое подписчикам
type Event struct {
	Type    string `json:"type"`
	QuizKey string `json:"quiz_key"`
	At      string `json:"at"`
}

// EventLeaderboardUpdated — тип события об изменении лидерборда
const EventLeaderboardUpdated = "leaderboard:updated"

type broadcast struct {
	quizKey string
	payload []byte
}

// Hub ведет реестр подписчиков по ключам викторин и рассылает события.
// Все операции с картой клиентов выполняются в одной горутине Run.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcasts chan broadcast
	done       chan struct{}
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcasts: make(chan broadcast, 64),
		done:       make(chan struct{}),
	}
}

// Run обрабатывает регистрацию, отключение и рассылку. Запускается
// в отдельной горутине из main.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.clients[client.quizKey] == nil {
				h.clients[client.quizKey] = make(map[*Client]bool)
			}
			h.clients[client.quizKey][client] = true
			log.Printf("[WSHub] Клиент %s подписан на %s (всего: %d)",
				client.connectionID, client.quizKey, len(h.clients[client.quizKey]))

		case client := <-h.unregister:
			if set, ok := h.clients[client.quizKey]; ok {
				if set[client] {
					delete(set, client)
					close(client.send)
					if len(set) == 0 {
						delete(h.clients, client.quizKey)
					}
				}
			}

		case msg := <-h.broadcasts:
			for client := range h.clients[msg.quizKey] {
				select {
				case client.send <- msg.payload:
				default:
					// Медленный клиент: буфер полон, отключаем
					delete(h.clients[msg.quizKey], client)
					close(client.send)
				}
			}

		case <-h.done:
			for _, set := range h.clients {
				for client := range set {
					close(client.send)
				}
			}
			return
		}
	}
}

// Stop останавливает хаб и закрывает все соединения
func (h *Hub) Stop() {
	close(h.done)
}

// NotifyLeaderboardUpdated отправляет событие всем подписчикам викторины.
// Реализует service.LeaderboardNotifier.
func (h *Hub) NotifyLeaderboardUpdated(quizKey string) {
	payload, err := json.Marshal(Event{
		Type:    EventLeaderboardUpdated,
		QuizKey: quizKey,
		At:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	select {
	case h.broadcasts <- broadcast{quizKey: quizKey, payload: payload}:
	default:
		log.Printf("[WSHub] Очередь рассылки переполнена, событие %s отброшено", quizKey)
	}
}
