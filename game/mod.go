package game

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Color is the content of a single cell, and doubles as the side to move.
type Color int8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other side. Empty has no opponent and maps to itself.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Move is a 0-indexed (row, column) coordinate. Its colour comes from context.
type Move struct {
	Row int
	Col int
}

// String renders the move as column letter plus 1-based row, e.g. "d3".
func (m Move) String() string {
	return fmt.Sprintf("%c%d", 'a'+rune(m.Col), m.Row+1)
}

// ParseMove is the inverse of Move.String.
func ParseMove(s string) (Move, error) {
	if len(s) < 2 {
		return Move{}, errors.Errorf("invalid move %q", s)
	}
	col := int(s[0]) - 'a'
	if col < 0 || col >= 26 {
		return Move{}, errors.Errorf("invalid column in move %q", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return Move{}, errors.Errorf("invalid row in move %q", s)
	}
	return Move{Row: row - 1, Col: col}, nil
}

// Ply is a move together with the side that played it.
type Ply struct {
	Player Color
	Move   Move
}

// Evaluator scores a board from the perspective fixed at its construction.
// Implementations must not mutate the board.
type Evaluator interface {
	Evaluate(b *Board) float64
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(b *Board) float64

func (f EvaluatorFunc) Evaluate(b *Board) float64 {
	return f(b)
}
