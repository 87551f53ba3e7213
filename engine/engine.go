package engine

import (
	"context"
	"fmt"

	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Outcome is the result of a finished game.
type Outcome struct {
	Black  int // Final disc counts
	White  int
	Winner game.Color // Empty for a tie
	Plies  []game.Ply
	Moves  []metrics.MoveMetric // One per ply, passes included
	Passes int
	Board  *game.Board // Final position
	Game   metrics.GameMetric
}

// Margin is the final Black-minus-White disc difference.
func (o Outcome) Margin() int {
	return o.Black - o.White
}

// Tally counts results over a series of games.
type Tally struct {
	BlackWins int
	WhiteWins int
	Ties      int
}

func (t *Tally) Add(o Outcome) {
	switch o.Winner {
	case game.Black:
		t.BlackWins++
	case game.White:
		t.WhiteWins++
	default:
		t.Ties++
	}
}

func (t Tally) Games() int {
	return t.BlackWins + t.WhiteWins + t.Ties
}

func (t Tally) String() string {
	n := t.Games()
	if n == 0 {
		return "total games: 0"
	}
	return fmt.Sprintf("total games: %d, black wins: %d %.3f, white wins: %d %.3f, ties: %d",
		n, t.BlackWins, float64(t.BlackWins)/float64(n), t.WhiteWins, float64(t.WhiteWins)/float64(n), t.Ties)
}

// RunSeries plays games on e and tallies the results. The tally is logged
// every meta.STAT_INTERVAL games and once at the end. Each finished game is
// passed to observe when it is not nil.
func RunSeries(ctx context.Context, e *Engine, games int, observe func(Outcome) error) (Tally, error) {
	var tally Tally
	for i := 1; i <= games; i++ {
		outcome, err := e.Run(ctx)
		if err != nil {
			return tally, errors.Wrapf(err, "game %d failed", i)
		}
		tally.Add(outcome)
		if observe != nil {
			if err := observe(outcome); err != nil {
				return tally, err
			}
		}
		if i%meta.STAT_INTERVAL == 0 {
			log.Info().Msg(tally.String())
		}
	}
	log.Info().Msg(tally.String())
	return tally, nil
}
