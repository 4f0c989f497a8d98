package ws

import (
	"log"
	"sync"
)

// Hub fans match events out to connected clients. Clients subscribe under
// their user id; an event for a user reaches every connection that user has
// open.
type Hub struct {
	rooms      map[string]map[*Client]struct{}
	broadcast  chan targetedMessage
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

type targetedMessage struct {
	userID  string
	payload []byte
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		broadcast:  make(chan targetedMessage, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			room, ok := h.rooms[client.userID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.userID] = room
			}
			room[client] = struct{}{}
			h.mutex.Unlock()
			h.logger.Printf("WS connected | user_id=%s", client.userID)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if room, ok := h.rooms[client.userID]; ok {
				if _, member := room[client]; member {
					delete(room, client)
					close(client.send)
				}
				if len(room) == 0 {
					delete(h.rooms, client.userID)
				}
			}
			h.mutex.Unlock()
			h.logger.Printf("WS disconnected | user_id=%s", client.userID)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.rooms[msg.userID]))
			for c := range h.rooms[msg.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Broadcast queues a payload for every connection of the given user; it drops
// the event instead of blocking when the buffer is full.
func (h *Hub) Broadcast(userID string, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- targetedMessage{userID: userID, payload: payload}:
	default:
		h.logger.Printf("WS broadcast dropped | reason=buffer_full user_id=%s", userID)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	total := 0
	for _, room := range h.rooms {
		total += len(room)
	}
	return total
}
