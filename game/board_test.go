package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func emptyBoard(t *testing.T, size int) *Board {
	t.Helper()
	b, err := NewBoard(size)
	require.NoError(t, err)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			b.Set(r, c, Empty)
		}
	}
	return b
}

// randomPosition plays up to plies random legal moves from the opening,
// passing when needed, and returns the board with the side to move.
func randomPosition(rng *rand.Rand, plies int) (*Board, Color) {
	b := NewStandardBoard()
	player := Black
	for i := 0; i < plies && !b.IsTerminalState(); i++ {
		moves := b.FeasiblePos(player)
		if len(moves) == 0 {
			player = player.Opponent()
			moves = b.FeasiblePos(player)
		}
		m := moves[rng.Intn(len(moves))]
		b.MustFlip(m.Row, m.Col, player)
		player = player.Opponent()
	}
	return b, player
}

func TestNewBoard(t *testing.T) {
	t.Run("standard opening layout", func(t *testing.T) {
		b := NewStandardBoard()

		require.Equal(t, 8, b.Size())
		require.Equal(t, 2, b.Score(Black))
		require.Equal(t, 2, b.Score(White))
		require.Equal(t, 60, b.Blanks())
		require.Equal(t, White, b.At(3, 3))
		require.Equal(t, Black, b.At(3, 4))
		require.Equal(t, White, b.At(4, 4))
		require.Equal(t, Black, b.At(4, 3))
	})

	t.Run("black has four opening moves in row-major order", func(t *testing.T) {
		b := NewStandardBoard()

		require.Equal(t, []Move{{2, 3}, {3, 2}, {4, 5}, {5, 4}}, b.FeasiblePos(Black))
		require.Equal(t, []Move{{2, 4}, {3, 5}, {4, 2}, {5, 3}}, b.FeasiblePos(White))
	})

	t.Run("rejects odd and tiny sizes", func(t *testing.T) {
		for _, size := range []int{0, 2, 5, 7} {
			_, err := NewBoard(size)
			require.True(t, errors.Is(err, ErrBoardSize), "Size %d should be rejected", size)
		}
	})

	t.Run("other even sizes centre the opening", func(t *testing.T) {
		b, err := NewBoard(6)
		require.NoError(t, err)
		require.Equal(t, White, b.At(2, 2))
		require.Equal(t, Black, b.At(2, 3))
		require.Len(t, b.FeasiblePos(Black), 4)
	})

	t.Run("reset restores the opening", func(t *testing.T) {
		b := NewStandardBoard()
		b.MustFlip(2, 3, Black)
		b.Reset()
		require.True(t, b.Equal(NewStandardBoard()))
	})
}

func TestIsFeasible(t *testing.T) {
	b := NewStandardBoard()

	require.True(t, b.IsFeasible(2, 3, Black))
	require.False(t, b.IsFeasible(3, 3, Black), "Occupied cell is never feasible")
	require.False(t, b.IsFeasible(0, 0, Black), "Cell without adjacent run is not feasible")
	require.False(t, b.IsFeasible(-1, 3, Black), "Off-board cell is not feasible")
	require.False(t, b.IsFeasible(2, 3, Empty), "Empty cannot move")
}

func TestFlip(t *testing.T) {
	t.Run("opening move flips one disc", func(t *testing.T) {
		b := NewStandardBoard()

		require.NoError(t, b.Flip(2, 3, Black))

		require.Equal(t, Black, b.At(2, 3))
		require.Equal(t, Black, b.At(3, 3))
		require.Equal(t, 4, b.Score(Black))
		require.Equal(t, 1, b.Score(White))
	})

	t.Run("flips only runs closed by an own disc", func(t *testing.T) {
		b := emptyBoard(t, 8)
		// Row: closed run of two, then an extra white disc beyond the anchor.
		b.Set(0, 1, White)
		b.Set(0, 2, White)
		b.Set(0, 3, Black)
		b.Set(0, 4, White)
		b.Set(0, 5, Black)
		// Column: open run that reaches an empty cell.
		b.Set(1, 0, White)
		// Diagonal: closed run of one.
		b.Set(1, 1, White)
		b.Set(2, 2, Black)

		require.NoError(t, b.Flip(0, 0, Black))

		require.Equal(t, Black, b.At(0, 0))
		require.Equal(t, Black, b.At(0, 1))
		require.Equal(t, Black, b.At(0, 2))
		require.Equal(t, White, b.At(0, 4), "Discs beyond the anchor must not change")
		require.Equal(t, White, b.At(1, 0), "Runs without anchor must not change")
		require.Equal(t, Black, b.At(1, 1))
		require.Equal(t, Black, b.At(2, 2))
	})

	t.Run("run reaching the edge is not flipped", func(t *testing.T) {
		b := emptyBoard(t, 8)
		b.Set(7, 6, White)
		b.Set(7, 7, White)
		b.Set(6, 5, White)
		b.Set(6, 4, White)
		b.Set(5, 3, Black)

		require.NoError(t, b.Flip(7, 5, Black))
		require.Equal(t, Black, b.At(6, 4))
		require.Equal(t, White, b.At(7, 6))
		require.Equal(t, White, b.At(7, 7))
		require.Equal(t, White, b.At(6, 5), "Open vertical run must not change")
	})

	t.Run("illegal move fails without mutation", func(t *testing.T) {
		b := NewStandardBoard()
		before := b.Copy()

		err := b.Flip(0, 0, Black)
		require.True(t, errors.Is(err, ErrIllegalMove))
		err = b.Flip(3, 3, Black)
		require.True(t, errors.Is(err, ErrIllegalMove))
		require.True(t, b.Equal(before), "Board should be untouched")
	})

	t.Run("must flip panics on illegal move", func(t *testing.T) {
		b := NewStandardBoard()
		require.Panics(t, func() { b.MustFlip(0, 0, White) })
	})

	t.Run("disc count never decreases and own discs stay", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		for i := 0; i < 50; i++ {
			b, player := randomPosition(rng, rng.Intn(40))
			for _, m := range b.FeasiblePos(player) {
				before := b.Copy()
				b.MustFlip(m.Row, m.Col, player)
				require.Equal(t, before.Blanks()-1, b.Blanks())
				for r := 0; r < b.Size(); r++ {
					for c := 0; c < b.Size(); c++ {
						if before.At(r, c) == player {
							require.Equal(t, player, b.At(r, c))
						}
					}
				}
				b = before
			}
		}
	})
}

func TestTryFlip(t *testing.T) {
	t.Run("round trip restores every reachable position", func(t *testing.T) {
		var walk func(b *Board, player Color, plies int)
		walk = func(b *Board, player Color, plies int) {
			if plies == 0 {
				return
			}
			before := b.Copy()
			for _, m := range b.FeasiblePos(player) {
				err := b.TryFlip(m.Row, m.Col, player, func(inner *Board) error {
					require.Equal(t, player, inner.At(m.Row, m.Col))
					walk(inner, player.Opponent(), plies-1)
					return nil
				})
				require.NoError(t, err)
				require.True(t, b.Equal(before), "TryFlip should restore %s", m)
			}
		}
		walk(NewStandardBoard(), Black, 4)
	})

	t.Run("restores when the callback fails", func(t *testing.T) {
		b := NewStandardBoard()
		before := b.Copy()
		boom := errors.New("boom")

		err := b.TryFlip(2, 3, Black, func(*Board) error { return boom })

		require.Equal(t, boom, err)
		require.True(t, b.Equal(before))
	})

	t.Run("restores when the callback panics", func(t *testing.T) {
		b := NewStandardBoard()
		before := b.Copy()

		require.Panics(t, func() {
			_ = b.TryFlip(2, 3, Black, func(*Board) error { panic("boom") })
		})
		require.True(t, b.Equal(before))
	})

	t.Run("rejects an illegal move without calling back", func(t *testing.T) {
		b := NewStandardBoard()
		called := false

		err := b.TryFlip(0, 0, Black, func(*Board) error {
			called = true
			return nil
		})

		require.True(t, errors.Is(err, ErrIllegalMove))
		require.False(t, called)
	})
}

func TestIsTerminalState(t *testing.T) {
	t.Run("agrees with both move lists on random positions", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		terminal := 0
		for i := 0; i < 1000; i++ {
			b, _ := randomPosition(rng, rng.Intn(70))
			want := len(b.FeasiblePos(Black)) == 0 && len(b.FeasiblePos(White)) == 0
			require.Equal(t, want, b.IsTerminalState())
			if want {
				terminal++
			}
		}
		require.Positive(t, terminal, "Sample should reach some finished games")
	})

	t.Run("full board is terminal", func(t *testing.T) {
		b := emptyBoard(t, 4)
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				b.Set(r, c, Black)
			}
		}
		require.True(t, b.IsTerminalState())
		require.Equal(t, Black, b.Winner())
	})

	t.Run("one side passing is not terminal", func(t *testing.T) {
		b := emptyBoard(t, 8)
		b.Set(0, 0, White)
		b.Set(0, 1, Black)
		// White captures at (0,2); Black has no move.
		require.Empty(t, b.FeasiblePos(Black))
		require.NotEmpty(t, b.FeasiblePos(White))
		require.False(t, b.IsTerminalState())
	})
}

func TestScoreAndWinner(t *testing.T) {
	b := NewStandardBoard()
	require.Equal(t, Empty, b.Winner())

	b.MustFlip(2, 3, Black)
	require.Equal(t, Black, b.Winner())
	require.Equal(t, 4, b.Score(Black))
}

func TestMoveNotation(t *testing.T) {
	m := Move{Row: 2, Col: 3}
	require.Equal(t, "d3", m.String())

	parsed, err := ParseMove("d3")
	require.NoError(t, err)
	require.Equal(t, m, parsed)

	for _, bad := range []string{"", "d", "3d", "d0", "dx"} {
		_, err := ParseMove(bad)
		require.Error(t, err, "%q should not parse", bad)
	}
}

func TestColor(t *testing.T) {
	require.Equal(t, White, Black.Opponent())
	require.Equal(t, Black, White.Opponent())
	require.Equal(t, Empty, Empty.Opponent())
	require.Equal(t, "black", Black.String())
}
