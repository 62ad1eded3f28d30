package ws

import (
	"wordlink/internal/game"
	"wordlink/internal/room"
)

// RoomService is the slice of the room manager the gateway depends on.
type RoomService interface {
	CreateRoom(roomID string, mode game.Mode, maxTime int) (*room.PublicState, string, error)
	Join(roomID, connID string, role room.Role, nickname string) (*room.PublicState, error)
	State(roomID string) (*room.PublicState, error)
	GiveClue(roomID string, number int) error
	FlipCard(roomID string, cardID int) error
	EndTurn(roomID string) error
	Reset(roomID, hostSecret string) error
	ChangeMaxTime(roomID string, maxTime int) error
	Leave(roomID, connID string)
	Disconnect(connID string)
}
