package room

// Server-originated event names pushed to room members.
const (
	ActionGameUpdate   = "game_update"
	ActionTimerUpdate  = "timer_update"
	ActionNotification = "notification"
)

// Broadcaster fans a message out to every connection currently associated
// with a room. Implemented by the websocket hub.
type Broadcaster interface {
	Broadcast(roomID string, action string, data interface{})
}
