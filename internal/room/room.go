package room

import (
	crand "crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"wordlink/internal/game"
)

// Role is what a connection signs up as inside a room. Table members act
// on the board; spymasters are attached to one side and give clues. Only
// spymaster roles are recorded in membership.
type Role string

const (
	RoleTable         Role = "TABLE"
	RoleSpymasterRed  Role = "SPYMASTER_RED"
	RoleSpymasterBlue Role = "SPYMASTER_BLUE"
)

// Valid reports whether r is one of the three joinable roles.
func (r Role) Valid() bool {
	return r == RoleTable || r == RoleSpymasterRed || r == RoleSpymasterBlue
}

// Member is one connection holding a spymaster slot.
type Member struct {
	ConnID   string `json:"id"`
	Nickname string `json:"name"`
}

// RoleMembers lists the spymaster slots per side.
type RoleMembers struct {
	Red  []Member `json:"RED"`
	Blue []Member `json:"BLUE"`
}

// PublicState is the projection broadcast to every connection in a room.
// The host secret never appears here.
type PublicState struct {
	*game.State
	Spymasters RoleMembers `json:"spymasters"`
}

// Room is one isolated game instance. All mutation happens under mu, held
// for the duration of a single state-machine transition, so commands and
// scheduler ticks on the same room never interleave.
type Room struct {
	mu         sync.Mutex
	state      *game.State
	hostSecret string
	spymasters RoleMembers
	lastActive time.Time
}

// ID returns the room identifier. It is immutable after creation.
func (r *Room) ID() string {
	return r.state.RoomID
}

// publicStateLocked snapshots the broadcastable state. Callers hold r.mu.
func (r *Room) publicStateLocked() *PublicState {
	return &PublicState{
		State: r.state.Clone(),
		Spymasters: RoleMembers{
			Red:  append(make([]Member, 0, len(r.spymasters.Red)), r.spymasters.Red...),
			Blue: append(make([]Member, 0, len(r.spymasters.Blue)), r.spymasters.Blue...),
		},
	}
}

// removeConnLocked drops connID from both slot lists. Callers hold r.mu.
func (r *Room) removeConnLocked(connID string) bool {
	changed := false
	r.spymasters.Red, changed = removeMember(r.spymasters.Red, connID, changed)
	r.spymasters.Blue, changed = removeMember(r.spymasters.Blue, connID, changed)
	return changed
}

func removeMember(list []Member, connID string, changed bool) ([]Member, bool) {
	for i, m := range list {
		if m.ConnID == connID {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, changed
}

// slotLocked returns the membership list for a spymaster role, or nil for
// the table role. Callers hold r.mu.
func (r *Room) slotLocked(role Role) *[]Member {
	switch role {
	case RoleSpymasterRed:
		return &r.spymasters.Red
	case RoleSpymasterBlue:
		return &r.spymasters.Blue
	}
	return nil
}

func newHostSecret() string {
	b := make([]byte, 16)
	if _, err := crand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
