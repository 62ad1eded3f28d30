package store

import (
	"sync"

	"wordlink/internal/room"
)

// MemoryStore is the in-process room registry. Rooms are independent:
// the map lock guards only registration and lookup, never a room's own
// state transitions.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*room.Room{},
	}
}

// CreateRoom registers r under its id, enforcing create-once semantics.
func (m *MemoryStore) CreateRoom(r *room.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[r.ID()]; ok {
		return room.ErrRoomExists
	}
	m.rooms[r.ID()] = r
	return nil
}

func (m *MemoryStore) GetRoom(id string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

func (m *MemoryStore) DeleteRoom(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, id)
}

// ForEachRoom visits every registered room under the read lock.
func (m *MemoryStore) ForEachRoom(fn func(*room.Room)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		fn(r)
	}
}

// Len reports the number of registered rooms.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
