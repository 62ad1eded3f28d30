package room

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"wordlink/internal/game"
)

// Store owns the roomId -> Room mapping. CreateRoom must fail with
// ErrRoomExists when the id is already registered.
type Store interface {
	CreateRoom(r *Room) error
	GetRoom(id string) (*Room, bool)
	DeleteRoom(id string)
	ForEachRoom(fn func(*Room))
}

// Manager applies state-machine transitions to rooms and broadcasts the
// public projection after every accepted mutation. Each operation takes
// the target room's lock for the whole transition, and broadcasts are
// queued before the lock is released so every connection observes a
// room's frames in mutation order. Hub sends never block, so no I/O
// happens under the lock.
type Manager struct {
	store  Store
	hub    Broadcaster
	corpus []string
	clock  clockwork.Clock

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewManager(store Store, hub Broadcaster, corpus []string, clock clockwork.Clock, rng *rand.Rand) *Manager {
	return &Manager{store: store, hub: hub, corpus: corpus, clock: clock, rng: rng}
}

// CreateRoom registers a new room and returns its initial public state
// together with the host secret. The secret goes to the creator only.
func (m *Manager) CreateRoom(roomID string, mode game.Mode, maxTime int) (*PublicState, string, error) {
	m.rngMu.Lock()
	state, err := game.NewState(roomID, mode, maxTime, m.corpus, m.rng)
	m.rngMu.Unlock()
	if err != nil {
		return nil, "", err
	}

	r := &Room{
		state:      state,
		hostSecret: newHostSecret(),
		lastActive: m.clock.Now(),
	}
	if err := m.store.CreateRoom(r); err != nil {
		return nil, "", err
	}

	log.Info().Str("room_id", roomID).Str("mode", string(mode)).Msg("room created")
	r.mu.Lock()
	pub := r.publicStateLocked()
	secret := r.hostSecret
	r.mu.Unlock()
	return pub, secret, nil
}

// Join records the connection's role in the room. A connection holds at
// most one role: taking a new one drops the old one first. A spymaster
// slot admits a single occupant; joining an occupied slot is refused.
func (m *Manager) Join(roomID, connID string, role Role, nickname string) (*PublicState, error) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	if slot := r.slotLocked(role); slot != nil {
		for _, taken := range *slot {
			if taken.ConnID != connID {
				r.mu.Unlock()
				return nil, ErrRoleTaken
			}
		}
	}
	r.removeConnLocked(connID)
	if slot := r.slotLocked(role); slot != nil {
		*slot = append(*slot, Member{ConnID: connID, Nickname: nickname})
	}
	r.lastActive = m.clock.Now()
	pub := r.publicStateLocked()
	m.hub.Broadcast(roomID, ActionNotification, gin.H{"nickname": nickname, "role": role})
	m.hub.Broadcast(roomID, ActionGameUpdate, pub)
	r.mu.Unlock()
	return pub, nil
}

// State returns the public projection for the caller only.
func (m *Manager) State(roomID string) (*PublicState, error) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	r.mu.Lock()
	r.lastActive = m.clock.Now()
	pub := r.publicStateLocked()
	r.mu.Unlock()
	return pub, nil
}

// GiveClue applies a clue submission and broadcasts on success.
func (m *Manager) GiveClue(roomID string, number int) error {
	return m.mutate(roomID, func(s *game.State) error { return s.GiveClue(number) })
}

// FlipCard reveals a card and broadcasts on success.
func (m *Manager) FlipCard(roomID string, cardID int) error {
	return m.mutate(roomID, func(s *game.State) error { return s.FlipCard(cardID) })
}

// EndTurn stops the guessing phase and broadcasts on success.
func (m *Manager) EndTurn(roomID string) error {
	return m.mutate(roomID, func(s *game.State) error { return s.EndTurn() })
}

// mutate runs one state-machine transition under the room lock and
// broadcasts the new public state if the transition was accepted.
func (m *Manager) mutate(roomID string, op func(*game.State) error) error {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	err := op(r.state)
	if err == nil {
		r.lastActive = m.clock.Now()
		m.hub.Broadcast(roomID, ActionGameUpdate, r.publicStateLocked())
	}
	r.mu.Unlock()
	return err
}

// Reset regenerates the room's board. The host secret must match exactly;
// a mismatch mutates nothing and broadcasts nothing.
func (m *Manager) Reset(roomID, hostSecret string) error {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	if r.hostSecret != hostSecret {
		r.mu.Unlock()
		return ErrBadSecret
	}
	m.rngMu.Lock()
	err := r.state.Reset(m.corpus, m.rng)
	m.rngMu.Unlock()
	if err == nil {
		r.lastActive = m.clock.Now()
		m.hub.Broadcast(roomID, ActionGameUpdate, r.publicStateLocked())
	}
	r.mu.Unlock()

	if err != nil {
		return err
	}
	log.Info().Str("room_id", roomID).Msg("room reset")
	return nil
}

// ChangeMaxTime reconfigures the countdown. A refusal because the clock is
// running still broadcasts: the failure note appended to the log is part
// of the public state.
func (m *Manager) ChangeMaxTime(roomID string, maxTime int) error {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	err := r.state.SetMaxTime(maxTime)
	if err == nil || errors.Is(err, game.ErrTimerRunning) {
		r.lastActive = m.clock.Now()
		m.hub.Broadcast(roomID, ActionGameUpdate, r.publicStateLocked())
	}
	r.mu.Unlock()

	if errors.Is(err, game.ErrTimerRunning) {
		return nil
	}
	return err
}

// Leave drops whatever role the connection holds in the room.
func (m *Manager) Leave(roomID, connID string) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return
	}
	r.mu.Lock()
	if r.removeConnLocked(connID) {
		m.hub.Broadcast(roomID, ActionGameUpdate, r.publicStateLocked())
	}
	r.mu.Unlock()
}

// Disconnect purges the connection from every room's role lists and
// rebroadcasts each room that changed.
func (m *Manager) Disconnect(connID string) {
	m.store.ForEachRoom(func(r *Room) {
		r.mu.Lock()
		if r.removeConnLocked(connID) {
			m.hub.Broadcast(r.ID(), ActionGameUpdate, r.publicStateLocked())
		}
		r.mu.Unlock()
	})
}

// TickTimers advances every running countdown by one second. Expiry ends
// the game with a full-state broadcast; an ordinary tick sends only the
// remaining seconds. Rooms without a running countdown are skipped.
func (m *Manager) TickTimers() {
	m.store.ForEachRoom(func(r *Room) {
		r.mu.Lock()
		switch r.state.TickSecond() {
		case game.TickExpired:
			log.Info().Str("room_id", r.ID()).Msg("countdown expired")
			m.hub.Broadcast(r.ID(), ActionGameUpdate, r.publicStateLocked())
		case game.TickRunning:
			m.hub.Broadcast(r.ID(), ActionTimerUpdate, r.state.Timer)
		}
		r.mu.Unlock()
	})
}

// EvictIdle removes rooms whose last accepted command is older than ttl
// and returns how many were dropped.
func (m *Manager) EvictIdle(ttl time.Duration) int {
	cutoff := m.clock.Now().Add(-ttl)
	var stale []string
	m.store.ForEachRoom(func(r *Room) {
		r.mu.Lock()
		if r.lastActive.Before(cutoff) {
			stale = append(stale, r.ID())
		}
		r.mu.Unlock()
	})
	for _, id := range stale {
		m.store.DeleteRoom(id)
		log.Info().Str("room_id", id).Msg("idle room evicted")
	}
	return len(stale)
}
