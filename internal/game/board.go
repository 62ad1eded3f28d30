package game

import "math/rand"

// GenerateBoard draws 25 distinct words from corpus and deals them into a
// fresh board. Standard mode flips a coin for the starting side and gives
// it the 9-card allotment (the other side gets 8, plus 7 neutrals and one
// assassin). Timed mode always starts the fixed player side and gives it
// the 9 cards. The word draw and the type assignment are shuffled
// independently, both from rng, so generation is deterministic per seed.
func GenerateBoard(mode Mode, corpus []string, rng *rand.Rand) ([]Card, Team, error) {
	if len(corpus) < BoardSize {
		return nil, "", ErrCorpusTooSmall
	}

	picks := rng.Perm(len(corpus))[:BoardSize]

	start := TeamRed
	if mode == ModeTimed {
		start = TimedPlayerSide
	} else if rng.Intn(2) == 1 {
		start = TeamBlue
	}
	second := start.Opponent()

	types := make([]CardType, 0, BoardSize)
	for i := 0; i < startingSideCards; i++ {
		types = append(types, CardType(start))
	}
	for i := 0; i < secondSideCards; i++ {
		types = append(types, CardType(second))
	}
	for i := 0; i < neutralCards; i++ {
		types = append(types, CardNeutral)
	}
	types = append(types, CardAssassin)
	rng.Shuffle(len(types), func(i, j int) {
		types[i], types[j] = types[j], types[i]
	})

	board := make([]Card, BoardSize)
	for i, pick := range picks {
		board[i] = Card{ID: i, Word: corpus[pick], Type: types[i]}
	}
	return board, start, nil
}
