package game

import (
	"fmt"
	"math/rand"
)

// NewState generates a board and returns the initial state for a room.
func NewState(roomID string, mode Mode, maxTime int, corpus []string, rng *rand.Rand) (*State, error) {
	board, start, err := GenerateBoard(mode, corpus, rng)
	if err != nil {
		return nil, err
	}
	s := &State{
		RoomID:  roomID,
		Board:   board,
		Turn:    start,
		Phase:   PhaseClue,
		Log:     []string{fmt.Sprintf("Game started! Team %s starts.", start)},
		Mode:    mode,
		MaxTime: maxTime,
	}
	if mode == ModeTimed {
		s.Timer = maxTime
	}
	s.recountScores()
	return s, nil
}

// GiveClue records the clue number and moves the room into the guessing
// phase. number is -1 for an unlimited clue, otherwise 0-9. In timed mode
// the first clue of the game arms the countdown; a clue never re-arms a
// countdown that already stopped.
func (s *State) GiveClue(number int) error {
	if number < -1 || number > 9 {
		return ErrClueOutOfRange
	}
	if s.Winner != nil {
		return ErrGameOver
	}
	if s.Phase != PhaseClue {
		return ErrWrongPhase
	}

	n := number
	s.ClueNumber = &n
	s.GuessesMade = 0
	s.Phase = PhaseGuessing
	if number == -1 {
		s.Log = append(s.Log, "Clue given! Unlimited guesses.")
	} else {
		s.Log = append(s.Log, fmt.Sprintf("Clue given! Max words: %d", number))
	}

	if s.Mode == ModeTimed && !s.TimerActive {
		s.TimerActive = true
		s.Log = append(s.Log, "Countdown started.")
	}
	return nil
}

// FlipCard reveals a card and resolves the consequences for the acting
// side. Revealing an already-revealed or unknown card is rejected without
// touching the state.
func (s *State) FlipCard(cardID int) error {
	if s.Winner != nil {
		return ErrGameOver
	}
	if s.Phase != PhaseGuessing {
		return ErrWrongPhase
	}
	if cardID < 0 || cardID >= len(s.Board) {
		return ErrUnknownCard
	}
	card := &s.Board[cardID]
	if card.Revealed {
		return ErrCardRevealed
	}

	card.Revealed = true
	s.Log = append(s.Log, fmt.Sprintf("Card %q revealed: %s", card.Word, card.Type))
	s.recountScores()

	turnEnded := false
	switch {
	case card.Type == CardAssassin:
		w := s.Turn.Opponent()
		if s.Mode == ModeTimed {
			w = TimedAdversary
		}
		s.Winner = &w
		s.TimerActive = false
		s.Log = append(s.Log, fmt.Sprintf("Assassin revealed! Team %s wins.", w))
		turnEnded = true

	case s.Mode == ModeTimed:
		// No turn or side changes in timed mode: misses only cost time.
		switch {
		case card.Type == CardNeutral:
			s.applyPenalty(NeutralPenaltySeconds, "Neutral card")
		case card.Type != CardType(s.Turn):
			s.applyPenalty(OpponentPenaltySeconds, "Enemy card")
		default:
			s.GuessesMade++
			if w := s.checkWin(); w != nil {
				s.Winner = w
				s.TimerActive = false
				s.Log = append(s.Log, fmt.Sprintf("Team %s wins!", *w))
			}
		}

	default: // standard mode
		switch {
		case card.Type == CardNeutral:
			s.Turn = s.Turn.Opponent()
			s.Log = append(s.Log, fmt.Sprintf("Neutral card. Turn passes to %s.", s.Turn))
			turnEnded = true
		case card.Type != CardType(s.Turn):
			// The reveal may have completed the opponent's set for them.
			s.Turn = s.Turn.Opponent()
			s.Log = append(s.Log, fmt.Sprintf("Opponent's card! Turn passes to %s.", s.Turn))
			if w := s.checkWin(); w != nil {
				s.Winner = w
				s.Log = append(s.Log, fmt.Sprintf("Team %s wins!", *w))
			}
			turnEnded = true
		default:
			s.GuessesMade++
			if w := s.checkWin(); w != nil {
				s.Winner = w
				s.Log = append(s.Log, fmt.Sprintf("Team %s wins!", *w))
				turnEnded = true
			} else if s.ClueNumber != nil && *s.ClueNumber > 0 && s.GuessesMade >= *s.ClueNumber {
				s.Turn = s.Turn.Opponent()
				s.Log = append(s.Log, fmt.Sprintf("Max guesses reached (%d). Turn passes.", *s.ClueNumber))
				turnEnded = true
			}
		}
	}

	if turnEnded && s.Winner == nil {
		s.Phase = PhaseClue
		s.ClueNumber = nil
		s.GuessesMade = 0
	}
	return nil
}

// EndTurn stops guessing early. Standard mode hands the turn to the other
// side; timed mode keeps the single active side and just asks for a new clue.
func (s *State) EndTurn() error {
	if s.Winner != nil {
		return ErrGameOver
	}
	if s.Phase != PhaseGuessing {
		return ErrWrongPhase
	}

	if s.Mode == ModeTimed {
		s.Log = append(s.Log, "Guessing stopped. New clue required.")
	} else {
		s.Turn = s.Turn.Opponent()
		s.Log = append(s.Log, fmt.Sprintf("Turn ended. Now it's %s's turn.", s.Turn))
	}
	s.Phase = PhaseClue
	s.ClueNumber = nil
	s.GuessesMade = 0
	return nil
}

// Reset replaces the board and restores every field to its initial value.
// Card ids on the old board are never reused: the new board is a fresh deal.
func (s *State) Reset(corpus []string, rng *rand.Rand) error {
	board, start, err := GenerateBoard(s.Mode, corpus, rng)
	if err != nil {
		return err
	}
	s.Board = board
	s.Turn = start
	s.Phase = PhaseClue
	s.ClueNumber = nil
	s.GuessesMade = 0
	s.Winner = nil
	s.Log = []string{fmt.Sprintf("Game reset. Team %s starts.", start)}
	s.Timer = 0
	s.TimerActive = false
	if s.Mode == ModeTimed {
		s.Timer = s.MaxTime
	}
	s.recountScores()
	return nil
}

// SetMaxTime reconfigures the countdown length. It is refused while the
// countdown is running; the refusal leaves a note in the log but changes
// nothing else.
func (s *State) SetMaxTime(seconds int) error {
	if s.Mode != ModeTimed {
		return ErrWrongMode
	}
	if s.TimerActive {
		s.Log = append(s.Log, "Cannot change the clock while the countdown is running.")
		return ErrTimerRunning
	}
	s.MaxTime = seconds
	s.Timer = seconds
	s.Log = append(s.Log, fmt.Sprintf("Countdown set to %ds.", seconds))
	return nil
}

// TickSecond consumes one second of the countdown. Rooms that are not in
// timed mode, not armed, or already decided are untouched.
func (s *State) TickSecond() TickResult {
	if s.Mode != ModeTimed || !s.TimerActive || s.Winner != nil {
		return TickIdle
	}
	s.Timer--
	if s.Timer <= 0 {
		s.Timer = 0
		s.TimerActive = false
		w := TimedAdversary
		s.Winner = &w
		s.Log = append(s.Log, fmt.Sprintf("Time over! Team %s wins.", w))
		return TickExpired
	}
	return TickRunning
}

func (s *State) applyPenalty(seconds int, cause string) {
	s.Timer -= seconds
	if s.Timer < 0 {
		s.Timer = 0
	}
	s.Log = append(s.Log, fmt.Sprintf("%s! Time penalty: -%ds", cause, seconds))
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s *State) Clone() *State {
	cp := *s
	cp.Board = append([]Card(nil), s.Board...)
	cp.Log = append([]string(nil), s.Log...)
	if s.ClueNumber != nil {
		n := *s.ClueNumber
		cp.ClueNumber = &n
	}
	if s.Winner != nil {
		w := *s.Winner
		cp.Winner = &w
	}
	return &cp
}
