package game

// CardType is the hidden affiliation of a board card.
type CardType string

const (
	CardRed      CardType = "RED"
	CardBlue     CardType = "BLUE"
	CardNeutral  CardType = "NEUTRAL"
	CardAssassin CardType = "ASSASSIN"
)

// Team is one of the two playing sides.
type Team string

const (
	TeamRed  Team = "RED"
	TeamBlue Team = "BLUE"
)

// Opponent returns the other side.
func (t Team) Opponent() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// Mode selects the ruleset variant for a room.
type Mode string

const (
	// ModeStandard is the alternating-turn two-team game.
	ModeStandard Mode = "STANDARD"
	// ModeTimed is the single-side speed-run variant played against a countdown.
	ModeTimed Mode = "TIMED"
)

// Phase is the step of a turn the room currently sits in.
type Phase string

const (
	PhaseClue     Phase = "CLUE"
	PhaseGuessing Phase = "GUESSING"
)

// In timed mode the human-controlled side and its adversary are fixed.
const (
	TimedPlayerSide = TeamRed
	TimedAdversary  = TeamBlue
)

const (
	// BoardSize is the number of cards on every board.
	BoardSize = 25

	startingSideCards = 9
	secondSideCards   = 8
	neutralCards      = 7

	// Timed-mode penalties, in seconds of countdown lost.
	NeutralPenaltySeconds  = 30
	OpponentPenaltySeconds = 60
)

// Card is a single board position. Once Revealed flips to true it never
// reverts except through a full Reset, which replaces the whole board.
type Card struct {
	ID       int      `json:"id"`
	Word     string   `json:"word"`
	Type     CardType `json:"type"`
	Revealed bool     `json:"revealed"`
}

// State is the full mutable game state of one room, minus membership and
// the host secret (those live with the room). JSON field names follow the
// wire protocol, so a State marshals directly into a game_update payload.
type State struct {
	RoomID      string `json:"roomId"`
	Board       []Card `json:"board"`
	Turn        Team   `json:"turn"`
	Phase       Phase  `json:"phase"`
	ClueNumber  *int   `json:"currentClueNumber"`
	GuessesMade int    `json:"currentGuessesCount"`

	// RedScore and BlueScore are the unrevealed card counts per side.
	// They are always recomputed from the board, never mutated directly.
	RedScore  int `json:"redScore"`
	BlueScore int `json:"blueScore"`

	Winner *Team    `json:"winner"`
	Log    []string `json:"log"`

	Mode        Mode `json:"gameMode"`
	Timer       int  `json:"timer"`
	TimerActive bool `json:"timerActive"`
	MaxTime     int  `json:"maxTime"`
}

// TickResult reports what a one-second countdown tick did to a state.
type TickResult int

const (
	// TickIdle means the room is not counting down; nothing changed.
	TickIdle TickResult = iota
	// TickRunning means one second was consumed and the game continues.
	TickRunning
	// TickExpired means the countdown hit zero and the adversary won.
	TickExpired
)
