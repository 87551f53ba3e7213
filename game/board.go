package game

import (
	"strings"

	"github.com/pkg/errors"
)

// StandardSize is the side length of a regular Othello board.
const StandardSize = 8

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrBoardSize   = errors.New("board size must be even and at least 4")
)

// directions lists the 8 compass steps (dr, dc) scanned from a cell.
var directions = [8][2]int{
	{1, 0}, {-1, 0},
	{0, 1}, {0, -1},
	{1, 1}, {-1, -1},
	{-1, 1}, {1, -1},
}

// Board is a dense n×n grid of cells. It is not safe for concurrent use;
// give each goroutine its own Copy.
type Board struct {
	size  int
	cells []Color
}

// NewBoard creates a board with the standard four-centre opening layout.
func NewBoard(size int) (*Board, error) {
	if size < 4 || size%2 != 0 {
		return nil, errors.Wrapf(ErrBoardSize, "got %d", size)
	}
	b := &Board{size: size, cells: make([]Color, size*size)}
	b.Reset()
	return b, nil
}

// NewStandardBoard creates an 8×8 board in the opening position.
func NewStandardBoard() *Board {
	b, _ := NewBoard(StandardSize)
	return b
}

// Reset restores the opening position.
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	h := b.size / 2
	b.cells[b.index(h-1, h-1)] = White
	b.cells[b.index(h-1, h)] = Black
	b.cells[b.index(h, h)] = White
	b.cells[b.index(h, h-1)] = Black
}

func (b *Board) Size() int { return b.size }

// At returns the colour at (r, c). The coordinate must be on the board.
func (b *Board) At(r, c int) Color { return b.cells[b.index(r, c)] }

// Set overwrites a single cell without applying any rule. It exists for
// building positions in setup code and tests.
func (b *Board) Set(r, c int, color Color) { b.cells[b.index(r, c)] = color }

// Cells returns a row-major copy of the grid.
func (b *Board) Cells() []Color {
	out := make([]Color, len(b.cells))
	copy(out, b.cells)
	return out
}

func (b *Board) Copy() *Board {
	return &Board{size: b.size, cells: b.Cells()}
}

// Equal reports whether both boards have the same size and cell contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, c := range b.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// Contains reports whether (r, c) lies on the board.
func (b *Board) Contains(r, c int) bool {
	return r >= 0 && r < b.size && c >= 0 && c < b.size
}

// Blanks counts the empty cells.
func (b *Board) Blanks() int { return b.Score(Empty) }

// Score counts the cells equal to player.
func (b *Board) Score(player Color) int {
	n := 0
	for _, c := range b.cells {
		if c == player {
			n++
		}
	}
	return n
}

// Winner returns the colour with more discs, or Empty on a tie.
func (b *Board) Winner() Color {
	black, white := b.Score(Black), b.Score(White)
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Empty
	}
}

// IsFeasible reports whether player may place a disc at (r, c).
func (b *Board) IsFeasible(r, c int, player Color) bool {
	if player != Black && player != White {
		return false
	}
	if !b.Contains(r, c) || b.At(r, c) != Empty {
		return false
	}
	for _, d := range directions {
		if b.run(r, c, d[0], d[1], player) > 0 {
			return true
		}
	}
	return false
}

// FeasiblePos lists the legal moves of player in row-major order. An empty
// result means player must pass.
func (b *Board) FeasiblePos(player Color) []Move {
	var moves []Move
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.IsFeasible(r, c, player) {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// HasMoves is FeasiblePos without the allocation.
func (b *Board) HasMoves(player Color) bool {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.IsFeasible(r, c, player) {
				return true
			}
		}
	}
	return false
}

// IsTerminalState reports whether neither side has a legal move.
func (b *Board) IsTerminalState() bool {
	return !b.HasMoves(Black) && !b.HasMoves(White)
}

// Flip plays a legal move for player. An illegal move leaves the board
// untouched and returns ErrIllegalMove.
func (b *Board) Flip(r, c int, player Color) error {
	if !b.IsFeasible(r, c, player) {
		return errors.Wrapf(ErrIllegalMove, "%s at %s", player, Move{Row: r, Col: c})
	}
	b.apply(r, c, player, nil)
	return nil
}

// MustFlip is Flip for callers that already validated the move.
func (b *Board) MustFlip(r, c int, player Color) {
	if err := b.Flip(r, c, player); err != nil {
		panic(err)
	}
}

// TryFlip plays a legal move, hands the resulting board to fn and restores
// the previous position when fn returns, errors or panics. fn must not keep
// a reference to the board.
func (b *Board) TryFlip(r, c int, player Color, fn func(*Board) error) error {
	if !b.IsFeasible(r, c, player) {
		return errors.Wrapf(ErrIllegalMove, "%s at %s", player, Move{Row: r, Col: c})
	}
	target := b.index(r, c)
	flipped := make([]int, 0, 2*b.size)
	b.apply(r, c, player, &flipped)
	// Every converted cell held an opponent disc before the move.
	defer func() {
		opponent := player.Opponent()
		for _, i := range flipped {
			b.cells[i] = opponent
		}
		b.cells[target] = Empty
	}()
	return fn(b)
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			switch b.At(r, c) {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) index(r, c int) int { return r*b.size + c }

// run counts the opponent discs between (r, c) and the nearest own disc in
// direction (dr, dc). It is 0 when the run is not closed by an own disc.
func (b *Board) run(r, c, dr, dc int, player Color) int {
	opponent := player.Opponent()
	n := 0
	for rr, cc := r+dr, c+dc; b.Contains(rr, cc); rr, cc = rr+dr, cc+dc {
		switch b.At(rr, cc) {
		case opponent:
			n++
		case player:
			return n
		default:
			return 0
		}
	}
	return 0
}

// apply places the disc and converts every closed opponent run. The indices
// of converted cells are appended to flipped when it is non-nil.
func (b *Board) apply(r, c int, player Color, flipped *[]int) {
	runs := [8]int{}
	for i, d := range directions {
		runs[i] = b.run(r, c, d[0], d[1], player)
	}
	b.cells[b.index(r, c)] = player
	for i, d := range directions {
		for k := 1; k <= runs[i]; k++ {
			idx := b.index(r+d[0]*k, c+d[1]*k)
			b.cells[idx] = player
			if flipped != nil {
				*flipped = append(*flipped, idx)
			}
		}
	}
}
