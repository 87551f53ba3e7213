package searcher

import (
	"context"

	"othello/game"

	"golang.org/x/sync/errgroup"
)

// SearchParallel splits the root moves over workers goroutines. Each worker
// searches its own copy of the board with a full window, so the result is
// the same value and move Search would return, at the cost of less pruning.
// The context only stops root moves that have not started yet. The evaluator
// and move generator are shared between workers and must be safe for
// concurrent use.
func (s *AlphaBeta) SearchParallel(ctx context.Context, b *game.Board, player game.Color, workers int) (Result, error) {
	if workers < 1 {
		workers = 1
	}
	if s.depth == 0 || s.moves.IsTerminalState(b) || len(s.moves.FeasiblePos(b, player)) == 0 {
		return s.Search(b, player)
	}

	depth := s.depth
	s.metrics.Start(depth, workers)
	actions := s.moves.FeasiblePos(b, player)
	values := make([]float64, len(actions))
	opponent := player.Opponent()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range actions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child := b.Copy()
			child.MustFlip(m.Row, m.Col, player)
			v, _, _, err := s.alphaBeta(child, opponent, MinValue, MaxValue, depth-1, false)
			values[i] = v
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.Complete()
		return Result{}, err
	}

	s.metrics.AddNode()
	best, act := values[0], actions[0]
	for i, v := range values[1:] {
		if v > best {
			best, act = v, actions[i+1]
		}
	}
	return Result{Value: best, Move: act, HasMove: true, Metric: s.metrics.Complete()}, nil
}
