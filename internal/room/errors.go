package room

import "errors"

var (
	ErrRoomExists   = errors.New("room already exists")
	ErrRoomNotFound = errors.New("room not found")
	ErrBadSecret    = errors.New("host secret mismatch")
	ErrRoleTaken    = errors.New("spymaster slot already taken")
)
