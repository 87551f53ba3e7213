package searcher

import (
	"math"

	"othello/game"

	"github.com/pkg/errors"
)

// Bounds used to seed the search window.
var (
	MaxValue = math.Inf(1)
	MinValue = math.Inf(-1)
)

// ErrInvalidEvaluation is returned when an evaluator yields NaN or an
// infinite value at a leaf. Such values break alpha-beta comparisons, so the
// search stops instead of propagating them.
var ErrInvalidEvaluation = errors.New("evaluator returned a non-finite value")

// MoveGenerator supplies the rules queries the search depends on. The board
// itself is the reference implementation; Positions memoizes it.
type MoveGenerator interface {
	FeasiblePos(b *game.Board, player game.Color) []game.Move
	IsTerminalState(b *game.Board) bool
}

type boardRules struct{}

func (boardRules) FeasiblePos(b *game.Board, player game.Color) []game.Move {
	return b.FeasiblePos(player)
}

func (boardRules) IsTerminalState(b *game.Board) bool {
	return b.IsTerminalState()
}

// BoardRules answers every query directly from the board.
var BoardRules MoveGenerator = boardRules{}
