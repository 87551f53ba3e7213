package engine

import (
	"context"
	"testing"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher/agent"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// recorder counts lifecycle calls around a real agent.
type recorder struct {
	agent.Agent
	begins, ends, results int
}

func (r *recorder) BeginOfGame(b *game.Board) { r.begins++ }
func (r *recorder) EndOfGame(b *game.Board)   { r.ends++ }
func (r *recorder) TellResult(b *game.Board)  { r.results++ }

// scripted plays a fixed move or fails.
type scripted struct {
	agent.Base
	move game.Move
	err  error
}

func (s *scripted) Play(*game.Board) (game.Move, error) { return s.move, s.err }

func randomPair(seed uint64) (agent.Agent, agent.Agent) {
	rng := rand.New(rand.NewSource(seed))
	return agent.NewRandomAgent(game.Black, 0, rng), agent.NewRandomAgent(game.White, 0, rng)
}

func TestRun(t *testing.T) {
	t.Run("plays a full game", func(t *testing.T) {
		black, white := randomPair(1)
		e := LocalEngine(black, white)

		outcome, err := e.Run(context.Background())

		require.NoError(t, err)
		require.True(t, outcome.Board.IsTerminalState())
		require.Equal(t, outcome.Board.Winner(), outcome.Winner)
		require.Equal(t, outcome.Black+outcome.White+outcome.Board.Blanks(), 64)
		require.Len(t, outcome.Moves, len(outcome.Plies)+outcome.Passes)
		require.Equal(t, len(outcome.Plies), outcome.Game.TotalMoves)
		require.Equal(t, outcome.Black-outcome.White, outcome.Margin())
	})

	t.Run("recorded plies replay to the final board", func(t *testing.T) {
		black, white := randomPair(2)
		outcome, err := LocalEngine(black, white).Run(context.Background())
		require.NoError(t, err)

		b := game.NewStandardBoard()
		for _, ply := range outcome.Plies {
			require.NoError(t, b.Flip(ply.Move.Row, ply.Move.Col, ply.Player))
		}
		require.True(t, b.Equal(outcome.Board))
	})

	t.Run("calls every hook once", func(t *testing.T) {
		black, white := randomPair(3)
		rb, rw := &recorder{Agent: black}, &recorder{Agent: white}

		_, err := LocalEngine(rb, rw).Run(context.Background())

		require.NoError(t, err)
		for _, r := range []*recorder{rb, rw} {
			require.Equal(t, 1, r.begins)
			require.Equal(t, 1, r.ends)
			require.Equal(t, 1, r.results)
		}
	})

	t.Run("binds roles", func(t *testing.T) {
		black, white := randomPair(4)
		LocalEngine(white, black)
		require.Equal(t, game.Black, white.Role(), "First agent plays black")
		require.Equal(t, game.White, black.Role())
	})

	t.Run("rejects an illegal move", func(t *testing.T) {
		_, white := randomPair(5)
		cheat := &scripted{move: game.Move{Row: 0, Col: 0}}

		_, err := LocalEngine(cheat, white).Run(context.Background())

		require.True(t, errors.Is(err, game.ErrIllegalMove))
	})

	t.Run("agent errors end the game", func(t *testing.T) {
		black, _ := randomPair(6)
		quitter := &scripted{err: agent.ErrResigned}

		_, err := LocalEngine(black, quitter).Run(context.Background())

		require.True(t, errors.Is(err, agent.ErrResigned))
	})

	t.Run("stops on a cancelled context", func(t *testing.T) {
		black, white := randomPair(7)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := LocalEngine(black, white).Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("smaller boards", func(t *testing.T) {
		black, white := randomPair(8)
		outcome, err := LocalEngine(black, white, WithBoardSize(6)).Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 6, outcome.Board.Size())

		_, err = LocalEngine(black, white, WithBoardSize(5)).Run(context.Background())
		require.True(t, errors.Is(err, game.ErrBoardSize))
	})

	t.Run("search agents finish a game", func(t *testing.T) {
		black := agent.NewSearchAgent(game.PositionalEvaluator(game.Black, 6), 2, 6, game.Black,
			agent.WithMetrics(metrics.NewCollector()))
		white := agent.NewSearchAgent(game.PositionalEvaluator(game.White, 6), 1, 4, game.White)

		outcome, err := LocalEngine(black, white, WithBoardSize(6), WithPrint()).Run(context.Background())

		require.NoError(t, err)
		require.True(t, outcome.Board.IsTerminalState())
		require.Positive(t, outcome.Moves[0].Nodes, "Search metrics should be recorded per move")
	})
}

func TestTally(t *testing.T) {
	var tally Tally
	require.Equal(t, "total games: 0", tally.String())

	tally.Add(Outcome{Winner: game.Black})
	tally.Add(Outcome{Winner: game.Black})
	tally.Add(Outcome{Winner: game.White})
	tally.Add(Outcome{Winner: game.Empty})

	require.Equal(t, Tally{BlackWins: 2, WhiteWins: 1, Ties: 1}, tally)
	require.Equal(t, 4, tally.Games())
	require.Equal(t, "total games: 4, black wins: 2 0.500, white wins: 1 0.250, ties: 1", tally.String())
}

func TestRunSeries(t *testing.T) {
	t.Run("tallies every game", func(t *testing.T) {
		black, white := randomPair(9)
		observed := 0

		tally, err := RunSeries(context.Background(), LocalEngine(black, white), 5, func(Outcome) error {
			observed++
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 5, tally.Games())
		require.Equal(t, 5, observed)
	})

	t.Run("observer errors stop the series", func(t *testing.T) {
		black, white := randomPair(10)
		stop := errors.New("stop")

		tally, err := RunSeries(context.Background(), LocalEngine(black, white), 5, func(Outcome) error { return stop })

		require.Equal(t, stop, err)
		require.Equal(t, 1, tally.Games())
	})
}
