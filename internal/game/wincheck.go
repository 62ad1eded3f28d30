package game

// checkWin returns the side that has revealed its full set, or nil.
// Assassin reveals are resolved before this is consulted.
func (s *State) checkWin() *Team {
	redLeft, blueLeft := s.unrevealedCounts()
	if redLeft == 0 {
		t := TeamRed
		return &t
	}
	if blueLeft == 0 {
		t := TeamBlue
		return &t
	}
	return nil
}

// recountScores derives the per-side remaining counts from the board.
func (s *State) recountScores() {
	s.RedScore, s.BlueScore = s.unrevealedCounts()
}

func (s *State) unrevealedCounts() (red, blue int) {
	for _, c := range s.Board {
		if c.Revealed {
			continue
		}
		switch c.Type {
		case CardRed:
			red++
		case CardBlue:
			blue++
		}
	}
	return red, blue
}
