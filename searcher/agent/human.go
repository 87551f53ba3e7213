package agent

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"othello/game"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// HumanAgent asks for moves on a text stream. The legal moves are listed
// with letters; either the letter or the move itself ("d3") is accepted, and
// "exit" resigns.
type HumanAgent struct {
	Base
	in  *bufio.Scanner
	out io.Writer
}

func NewHumanAgent(role game.Color, in io.Reader, out io.Writer) *HumanAgent {
	checkRole(role)
	return &HumanAgent{
		Base: NewBase(role),
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

func (a *HumanAgent) Play(b *game.Board) (game.Move, error) {
	moves := b.FeasiblePos(a.role)
	if len(moves) == 0 {
		return game.Move{}, ErrNoMoves
	}

	fmt.Fprintf(a.out, "%s\n", b)
	options := lo.Map(moves, func(m game.Move, i int) string {
		if i < 26 {
			return fmt.Sprintf("%c:%s", 'a'+rune(i), m)
		}
		return m.String()
	})
	fmt.Fprintf(a.out, "%s to move: %s\n", a.role, strings.Join(options, ", "))

	for {
		fmt.Fprint(a.out, "Enter your choice: ")
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return game.Move{}, errors.Wrap(err, "failed to read move")
			}
			return game.Move{}, errors.Wrap(io.EOF, "input closed")
		}
		line := strings.ToLower(strings.TrimSpace(a.in.Text()))
		if line == "exit" {
			return game.Move{}, ErrResigned
		}
		if m, ok := choose(line, moves); ok {
			return m, nil
		}
		fmt.Fprintf(a.out, "%q is not a legal move\n", line)
	}
}

func (a *HumanAgent) TellResult(b *game.Board) {
	fmt.Fprintf(a.out, "%s\ngame over: black %d, white %d\n", b, b.Score(game.Black), b.Score(game.White))
}

func choose(line string, moves []game.Move) (game.Move, bool) {
	if len(line) == 1 {
		i := int(line[0] - 'a')
		if i >= 0 && i < len(moves) && i < 26 {
			return moves[i], true
		}
		return game.Move{}, false
	}
	m, err := game.ParseMove(line)
	if err != nil {
		return game.Move{}, false
	}
	return m, lo.Contains(moves, m)
}
