// Hot-seat demo: plays a standard game in the terminal with both sides
// sharing one keyboard. Useful for trying the rules without a client.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"wordlink/internal/game"
	"wordlink/internal/words"
)

func main() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	state, err := game.NewState("hotseat", game.ModeStandard, 0, words.Default(), rng)
	if err != nil {
		fmt.Fprintln(os.Stderr, "setup failed:", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	for state.Winner == nil {
		printBoard(state)
		fmt.Printf("\nTeam %s, phase %s\n", state.Turn, state.Phase)

		if state.Phase == game.PhaseClue {
			fmt.Print("clue number (-1 for unlimited, 0-9): ")
			line, _ := reader.ReadString('\n')
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				fmt.Println("not a number")
				continue
			}
			if err := state.GiveClue(n); err != nil {
				fmt.Println("rejected:", err)
			}
			continue
		}

		fmt.Print("card id to flip (or 'end'): ")
		line, _ := reader.ReadString('\n')
		input := strings.TrimSpace(line)
		if input == "end" {
			if err := state.EndTurn(); err != nil {
				fmt.Println("rejected:", err)
			}
			continue
		}
		id, err := strconv.Atoi(input)
		if err != nil {
			fmt.Println("not a card id")
			continue
		}
		if err := state.FlipCard(id); err != nil {
			fmt.Println("rejected:", err)
			continue
		}
		fmt.Println(state.Log[len(state.Log)-1])
	}

	printBoard(state)
	fmt.Printf("\nTeam %s wins!\n", *state.Winner)
}

func printBoard(s *game.State) {
	fmt.Printf("\nRED left: %d  BLUE left: %d\n", s.RedScore, s.BlueScore)
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			c := s.Board[row*5+col]
			label := c.Word
			if c.Revealed {
				label = "[" + string(c.Type) + "]"
			}
			fmt.Printf("%2d:%-12s", c.ID, label)
		}
		fmt.Println()
	}
}
