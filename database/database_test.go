package database

import (
	"bytes"
	"path/filepath"
	"testing"

	"othello/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// randomGame plays a complete random game and records it with its margin.
func randomGame(rng *rand.Rand) (Game, *game.Board) {
	b := game.NewStandardBoard()
	player := game.Black
	var g Game
	for !b.IsTerminalState() {
		moves := b.FeasiblePos(player)
		if len(moves) > 0 {
			m := moves[rng.Intn(len(moves))]
			b.MustFlip(m.Row, m.Col, player)
			g.Plies = append(g.Plies, game.Ply{Player: player, Move: m})
		}
		player = player.Opponent()
	}
	g.Result = b.Score(game.Black) - b.Score(game.White)
	return g, b
}

func TestParse(t *testing.T) {
	t.Run("reads sides, moves and result", func(t *testing.T) {
		g, err := Parse("+d3-c5:-4\n")

		require.NoError(t, err)
		require.Equal(t, []game.Ply{
			{Player: game.Black, Move: game.Move{Row: 2, Col: 3}},
			{Player: game.White, Move: game.Move{Row: 4, Col: 2}},
		}, g.Plies)
		require.Equal(t, -4, g.Result)
	})

	t.Run("rejects malformed records", func(t *testing.T) {
		for _, line := range []string{"+d3-c5", "+d3-c:0", "*d3:0", "+d3:x", "+d0:0"} {
			_, err := Parse(line)
			require.Error(t, err, "%q should not parse", line)
		}
	})

	t.Run("format is the inverse", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 20; i++ {
			g, _ := randomGame(rng)
			line := Format(g)
			parsed, err := Parse(line)
			require.NoError(t, err)
			require.Equal(t, g, parsed)
			require.Equal(t, line, Format(parsed))
		}
	})
}

func TestReplayAndValidate(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	t.Run("replay reaches the final board", func(t *testing.T) {
		g, want := randomGame(rng)
		b, err := Replay(g)
		require.NoError(t, err)
		require.True(t, b.Equal(want))
	})

	t.Run("replay rejects illegal moves", func(t *testing.T) {
		_, err := Replay(Game{Plies: []game.Ply{{Player: game.Black, Move: game.Move{Row: 0, Col: 0}}}})
		require.True(t, errors.Is(err, game.ErrIllegalMove))
	})

	t.Run("accepts both result conventions", func(t *testing.T) {
		g, b := randomGame(rng)
		require.NoError(t, Validate(g))

		black := b.Score(game.Black)
		if black > b.Score(game.White) {
			black += b.Blanks()
		}
		g.Result = 2*black - 64
		require.NoError(t, Validate(g))
	})

	t.Run("flags a wrong result", func(t *testing.T) {
		g, _ := randomGame(rng)
		g.Result += 100
		require.True(t, errors.Is(Validate(g), ErrInconsistent))
	})
}

func TestMirror(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		g, _ := randomGame(rng)
		for _, flags := range [][2]bool{{true, false}, {false, true}, {true, true}} {
			mirrored := Mirror(g, flags[0], flags[1])
			require.NoError(t, Validate(mirrored), "Mirrored game %v should stay legal", flags)
			require.Equal(t, g, Mirror(mirrored, flags[0], flags[1]), "Mirroring twice is the identity")
		}
		require.Equal(t, g, Mirror(g, false, false))
	}
}

func TestStats(t *testing.T) {
	games := []Game{{Result: 10}, {Result: -2}, {Result: 0}, {Result: 64}}
	black, white, ties := Stats(games)
	require.Equal(t, 2, black)
	require.Equal(t, 1, white)
	require.Equal(t, 1, ties)
}

func TestReadFile(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	var games []Game
	for i := 0; i < 6; i++ {
		g, _ := randomGame(rng)
		games = append(games, g)
	}
	dir := t.TempDir()
	plain := filepath.Join(dir, "games.txt")
	packed := filepath.Join(dir, "games.txt.gz")
	require.NoError(t, WriteFile(plain, games[:3]))
	require.NoError(t, WriteFile(packed, games[3:]))

	got, err := ReadFile(plain, packed)

	require.NoError(t, err)
	require.Equal(t, games, got)

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(dir, "missing.txt"))
		require.Error(t, err)
	})

	t.Run("reports the bad line", func(t *testing.T) {
		_, err := Read(bytes.NewBufferString("+d3:2\n\nnonsense\n"))
		require.ErrorContains(t, err, "line 3")
	})
}

func TestReadThor(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	data := make([]byte, thorFileHeader)
	data[thorBoardSize] = 8

	var want []Game
	for i := 0; i < 3; i++ {
		g, b := randomGame(rng)
		record := make([]byte, thorRecordSize)
		black := b.Score(game.Black)
		if black > b.Score(game.White) {
			black += b.Blanks()
		}
		record[thorBlackScore] = byte(black)
		if i == 1 {
			record[thorBlackScore]++ // Corrupt one game
		} else {
			g.Result = 2*black - 64
			want = append(want, g)
		}
		for j, p := range g.Plies {
			record[thorRecordHeader+j] = byte((p.Move.Row+1)*10 + p.Move.Col + 1)
		}
		data = append(data, record...)
	}

	got, inconsistent, err := ReadThor(bytes.NewReader(data))

	require.NoError(t, err)
	require.Equal(t, 1, inconsistent)
	require.Equal(t, want, got)

	t.Run("rejects other board sizes", func(t *testing.T) {
		bad := make([]byte, thorFileHeader)
		bad[thorBoardSize] = 10
		_, _, err := ReadThor(bytes.NewReader(bad))
		require.Error(t, err)
	})
}
