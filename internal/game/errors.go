package game

import "errors"

var (
	ErrWrongPhase     = errors.New("action not valid in current phase")
	ErrGameOver       = errors.New("game already has a winner")
	ErrUnknownCard    = errors.New("unknown card")
	ErrCardRevealed   = errors.New("card already revealed")
	ErrClueOutOfRange = errors.New("clue number out of range")
	ErrWrongMode      = errors.New("action not valid in this game mode")
	ErrTimerRunning   = errors.New("countdown is running")
	ErrCorpusTooSmall = errors.New("word corpus smaller than board")
)
