package searcher

import (
	"math"

	"othello/experiments/metrics"
	"othello/game"

	"github.com/pkg/errors"
)

type Option func(s *AlphaBeta)

// WithMoveGenerator replaces direct board queries, typically with a
// *Positions cache.
func WithMoveGenerator(g MoveGenerator) Option {
	return func(s *AlphaBeta) {
		if g != nil {
			s.moves = g
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *AlphaBeta) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// Result is the outcome of a search. HasMove is false only when the side to
// move had no legal move at the root (or the root was already a leaf).
type Result struct {
	Value   float64
	Move    game.Move
	HasMove bool
	Metric  metrics.SearchMetric
}

// AlphaBeta is a depth-limited minimax search with alpha-beta pruning.
// https://en.wikipedia.org/wiki/Alpha-beta_pruning
//
// The evaluator scores leaves from the perspective fixed at its construction;
// the root player is always the maximizing side. An AlphaBeta is not safe for
// concurrent Search calls on the same board.
type AlphaBeta struct {
	evaluator game.Evaluator
	depth     int
	moves     MoveGenerator
	metrics   metrics.Collector
}

func NewAlphaBeta(evaluator game.Evaluator, depth int, options ...Option) *AlphaBeta {
	if evaluator == nil {
		panic("alpha-beta search needs an evaluator")
	}
	s := &AlphaBeta{ // Default values
		evaluator: evaluator,
		moves:     BoardRules,
		metrics:   metrics.NewDummyCollector(),
	}
	s.SetDepth(depth)
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *AlphaBeta) Depth() int { return s.depth }

// SetDepth changes the remaining-ply budget of later searches.
func (s *AlphaBeta) SetDepth(depth int) {
	if depth < 0 {
		panic("search depth cannot be negative")
	}
	s.depth = depth
}

// Search returns the value of b for player and the move reaching it. The
// board is restored before Search returns.
func (s *AlphaBeta) Search(b *game.Board, player game.Color) (Result, error) {
	return s.SearchAs(b, player, true)
}

// SearchAs is Search with an explicit root role; a minimizing root picks the
// move with the lowest evaluation.
func (s *AlphaBeta) SearchAs(b *game.Board, player game.Color, maximizing bool) (Result, error) {
	s.metrics.Start(s.depth, 1)
	value, move, ok, err := s.alphaBeta(b, player, MinValue, MaxValue, s.depth, maximizing)
	metric := s.metrics.Complete()
	if err != nil {
		return Result{}, err
	}
	return Result{Value: value, Move: move, HasMove: ok, Metric: metric}, nil
}

func (s *AlphaBeta) alphaBeta(b *game.Board, player game.Color, alpha, beta float64, depth int, maximizing bool) (float64, game.Move, bool, error) {
	s.metrics.AddNode()

	if depth == 0 || s.moves.IsTerminalState(b) {
		s.metrics.AddLeaf()
		v, err := s.evaluate(b)
		return v, game.Move{}, false, err
	}

	opponent := player.Opponent()
	actions := s.moves.FeasiblePos(b, player)
	if len(actions) == 0 {
		// Forced pass: same board, same depth, other side.
		s.metrics.AddPass()
		v, _, _, err := s.alphaBeta(b, opponent, alpha, beta, depth, !maximizing)
		return v, game.Move{}, false, err
	}

	best := MaxValue
	if maximizing {
		best = MinValue
	}
	var act game.Move
	found := false

	for _, m := range actions {
		var v float64
		err := b.TryFlip(m.Row, m.Col, player, func(child *game.Board) error {
			var err error
			v, _, _, err = s.alphaBeta(child, opponent, alpha, beta, depth-1, !maximizing)
			return err
		})
		if err != nil {
			return 0, game.Move{}, false, err
		}

		// Strict comparison keeps the first move among equals.
		if maximizing {
			if v > best {
				best, act, found = v, m, true
			}
			alpha = math.Max(alpha, best)
		} else {
			if v < best {
				best, act, found = v, m, true
			}
			beta = math.Min(beta, best)
		}

		if alpha >= beta {
			s.metrics.AddCutoff()
			break
		}
	}
	return best, act, found, nil
}

func (s *AlphaBeta) evaluate(b *game.Board) (float64, error) {
	v := s.evaluator.Evaluate(b)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrInvalidEvaluation, "got %v", v)
	}
	return v, nil
}
