package ws

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Envelope is the wire framing for every message in both directions.
type Envelope struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

// Hub tracks which connections are associated with which room and fans
// broadcasts out to them. It implements room.Broadcaster.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Join associates the client with a room's broadcast set. It reports
// whether the client was newly added.
func (h *Hub) Join(roomID string, c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	if _, ok := h.rooms[roomID][c]; ok {
		return false
	}
	h.rooms[roomID][c] = struct{}{}
	c.joined[roomID] = struct{}{}
	return true
}

// Leave removes the client from one room's broadcast set.
func (h *Hub) Leave(roomID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomID][c]; !ok {
		return
	}
	delete(h.rooms[roomID], c)
	if len(h.rooms[roomID]) == 0 {
		delete(h.rooms, roomID)
	}
	delete(c.joined, roomID)
}

// Drop removes the client from every room set it joined.
func (h *Hub) Drop(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for roomID := range c.joined {
		delete(h.rooms[roomID], c)
		if len(h.rooms[roomID]) == 0 {
			delete(h.rooms, roomID)
		}
	}
	c.joined = make(map[string]struct{})
}

// Broadcast queues a message for every connection in the room. Slow
// clients are skipped rather than allowed to stall the room.
func (h *Hub) Broadcast(roomID string, action string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomID] {
		if !c.send(Envelope{Action: action, Data: data}) {
			log.Warn().Str("room_id", roomID).Str("conn_id", c.id).Msg("send buffer full, message dropped")
		}
	}
}
