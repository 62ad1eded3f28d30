package ws

import (
	"errors"

	"wordlink/internal/game"
	"wordlink/internal/room"
)

// Caller-only acknowledgment actions. Broadcast actions live with the
// room package next to the Broadcaster interface.
const (
	ActionRoomCreated = "room_created"
	ActionRoomJoined  = "room_joined"
	ActionRoomState   = "room_state"
	ActionError       = "error"
)

// Error codes surfaced to the originating connection.
const (
	CodeInvalidPayload = "invalid_payload"
	CodeRateLimited    = "rate_limited"
	CodeRoomExists     = "room_exists"
	CodeRoomNotFound   = "room_not_found"
	CodeRoleTaken      = "role_taken"
	CodeUnknownAction  = "unknown_action"
)

func validateRoomID(id string) error {
	if len(id) < 1 || len(id) > 20 {
		return errors.New("roomId must be 1-20 characters")
	}
	return nil
}

func validateNickname(name string) error {
	if len(name) < 1 || len(name) > 20 {
		return errors.New("nickname must be 1-20 characters")
	}
	return nil
}

func validateMaxTime(seconds int) error {
	if seconds < 60 || seconds > 600 {
		return errors.New("maxTime must be between 60 and 600 seconds")
	}
	return nil
}

type createRoomPayload struct {
	RoomID  string    `json:"roomId"`
	Mode    game.Mode `json:"mode"`
	MaxTime int       `json:"maxTime"`
}

func (p *createRoomPayload) validate() error {
	if err := validateRoomID(p.RoomID); err != nil {
		return err
	}
	if p.Mode != game.ModeStandard && p.Mode != game.ModeTimed {
		return errors.New("mode must be STANDARD or TIMED")
	}
	return validateMaxTime(p.MaxTime)
}

type joinRoomPayload struct {
	RoomID   string    `json:"roomId"`
	Role     room.Role `json:"role"`
	Nickname string    `json:"nickname"`
}

func (p *joinRoomPayload) validate() error {
	if err := validateRoomID(p.RoomID); err != nil {
		return err
	}
	if !p.Role.Valid() {
		return errors.New("role must be TABLE, SPYMASTER_RED or SPYMASTER_BLUE")
	}
	return validateNickname(p.Nickname)
}

type roomOnlyPayload struct {
	RoomID string `json:"roomId"`
}

func (p *roomOnlyPayload) validate() error {
	return validateRoomID(p.RoomID)
}

type giveCluePayload struct {
	RoomID string `json:"roomId"`
	Number int    `json:"number"`
}

func (p *giveCluePayload) validate() error {
	if err := validateRoomID(p.RoomID); err != nil {
		return err
	}
	if p.Number < -1 || p.Number > 9 {
		return errors.New("number must be -1 (unlimited) or 0-9")
	}
	return nil
}

type flipCardPayload struct {
	RoomID string `json:"roomId"`
	CardID int    `json:"cardId"`
}

func (p *flipCardPayload) validate() error {
	if err := validateRoomID(p.RoomID); err != nil {
		return err
	}
	if p.CardID < 0 {
		return errors.New("cardId must be non-negative")
	}
	return nil
}

type resetGamePayload struct {
	RoomID     string `json:"roomId"`
	HostSecret string `json:"hostSecret"`
}

func (p *resetGamePayload) validate() error {
	if err := validateRoomID(p.RoomID); err != nil {
		return err
	}
	if p.HostSecret == "" {
		return errors.New("hostSecret is required")
	}
	return nil
}

type changeMaxTimePayload struct {
	RoomID  string `json:"roomId"`
	MaxTime int    `json:"maxTime"`
}

func (p *changeMaxTimePayload) validate() error {
	if err := validateRoomID(p.RoomID); err != nil {
		return err
	}
	return validateMaxTime(p.MaxTime)
}
