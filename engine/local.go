package engine

import (
	"context"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// WithBoardSize plays on a size×size board instead of the standard 8×8.
func WithBoardSize(size int) Option {
	return func(e *Engine) {
		e.size = size
	}
}

// WithPrint logs the board after every ply at debug level.
func WithPrint() Option {
	return func(e *Engine) {
		e.print = true
	}
}

// Engine referees games between two agents on a board it owns. Agents only
// ever see copies of it.
type Engine struct {
	agents [2]agent.Agent // Indexed by Color-1
	size   int
	print  bool
}

// LocalEngine binds black and white to their sides for every game run.
func LocalEngine(black, white agent.Agent, options ...Option) *Engine {
	if black == nil || white == nil {
		panic("engine needs two agents")
	}
	black.SetRole(game.Black)
	white.SetRole(game.White)
	e := &Engine{
		agents: [2]agent.Agent{black, white},
		size:   game.StandardSize,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) agent(c game.Color) agent.Agent {
	return e.agents[c-1]
}

// Run plays one game from the opening to the end. A player with no legal
// move passes; any error from an agent, or a move the rules reject, ends
// the game with an error.
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	b, err := game.NewBoard(e.size)
	if err != nil {
		return Outcome{}, err
	}
	for _, a := range e.agents {
		a.BeginOfGame(b.Copy())
	}

	start := time.Now()
	turn := game.Black
	step := 1
	var (
		plies  []game.Ply
		moves  []metrics.MoveMetric
		passes int
	)

	for !b.IsTerminalState() {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}

		if !b.HasMoves(turn) {
			log.Debug().Msgf("%s has no legal move and passes", turn)
			moves = append(moves, metrics.MoveMetric{Step: step, Player: turn.String()})
			passes++
			step++
			turn = turn.Opponent()
			continue
		}

		current := e.agent(turn)
		moveStart := time.Now()
		m, err := current.Play(b.Copy())
		if err != nil {
			return Outcome{}, errors.Wrapf(err, "%s failed to play at step %d", turn, step)
		}
		if !b.IsFeasible(m.Row, m.Col, turn) {
			return Outcome{}, errors.Wrapf(game.ErrIllegalMove, "%s played %s at step %d", turn, m, step)
		}
		b.MustFlip(m.Row, m.Col, turn)

		metric := metrics.MoveMetric{Step: step, Player: turn.String(), Move: m.String()}
		if r, ok := current.(agent.Reporter); ok {
			metric.SearchMetric = r.LastSearch()
		}
		metric.Duration = time.Since(moveStart)
		moves = append(moves, metric)
		plies = append(plies, game.Ply{Player: turn, Move: m})

		if e.print {
			log.Debug().Msgf("step %d: %s plays %s\n%s", step, turn, m, b)
		}
		step++
		turn = turn.Opponent()
	}

	for _, a := range e.agents {
		a.EndOfGame(b.Copy())
	}
	for _, a := range e.agents {
		a.TellResult(b.Copy())
	}

	end := time.Now()
	outcome := Outcome{
		Black:  b.Score(game.Black),
		White:  b.Score(game.White),
		Winner: b.Winner(),
		Plies:  plies,
		Moves:  moves,
		Passes: passes,
		Board:  b,
	}
	outcome.Game = metrics.GameMetric{
		Winner:     outcome.Winner.String(),
		BlackScore: outcome.Black,
		WhiteScore: outcome.White,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: len(plies),
		Passes:     passes,
	}
	log.Debug().Msgf("game over after %d moves: black %d, white %d", len(plies), outcome.Black, outcome.White)
	return outcome, nil
}
