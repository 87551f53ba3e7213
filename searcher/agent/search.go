package agent

import (
	"context"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"

	"github.com/pkg/errors"
)

type Option func(a *SearchAgent)

// WithPositions shares a move-list cache between the agent's searchers.
func WithPositions(p *searcher.Positions) Option {
	return func(a *SearchAgent) {
		a.positions = p
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(a *SearchAgent) {
		a.collector = collector
	}
}

// WithWorkers spreads the root moves of every search over n goroutines.
func WithWorkers(n int) Option {
	return func(a *SearchAgent) {
		a.workers = n
	}
}

// SearchAgent plays the best move found by a fixed-depth alpha-beta search.
// Once at most finalDepth empty cells are left it solves the game to the end
// on the exact disc margin instead.
//
// The mid-game evaluator must score from the perspective of role. It keeps
// that perspective after SetRole; only the endgame evaluator follows the role.
type SearchAgent struct {
	Base
	depth      int
	finalDepth int
	positions  *searcher.Positions
	collector  metrics.Collector
	workers    int
	mid        *searcher.AlphaBeta
	end        *searcher.AlphaBeta
	last       metrics.SearchMetric
}

func NewSearchAgent(evaluator game.Evaluator, depth, finalDepth int, role game.Color, options ...Option) *SearchAgent {
	checkRole(role)
	if depth < 1 {
		panic("search agent depth must be at least 1")
	}
	a := &SearchAgent{
		Base:       NewBase(role),
		depth:      depth,
		finalDepth: finalDepth,
		collector:  metrics.NewDummyCollector(),
		workers:    1,
	}
	for _, option := range options {
		option(a)
	}
	a.mid = searcher.NewAlphaBeta(evaluator, depth, a.searchOptions()...)
	a.end = a.newEndgame()
	return a
}

func (a *SearchAgent) SetRole(role game.Color) {
	checkRole(role)
	a.Base.SetRole(role)
	a.end = a.newEndgame()
}

func (a *SearchAgent) Play(b *game.Board) (game.Move, error) {
	if !b.HasMoves(a.role) {
		return game.Move{}, ErrNoMoves
	}

	s := a.mid
	if blanks := b.Blanks(); blanks <= a.finalDepth {
		s = a.end
		s.SetDepth(blanks)
	}

	var (
		result searcher.Result
		err    error
	)
	if a.workers > 1 {
		result, err = s.SearchParallel(context.Background(), b, a.role, a.workers)
	} else {
		result, err = s.Search(b, a.role)
	}
	if err != nil {
		return game.Move{}, errors.Wrapf(err, "%s search at depth %d failed", a.role, s.Depth())
	}
	if !result.HasMove {
		return game.Move{}, ErrNoMoves
	}
	a.last = result.Metric
	return result.Move, nil
}

func (a *SearchAgent) LastSearch() metrics.SearchMetric { return a.last }

func (a *SearchAgent) Depth() int      { return a.depth }
func (a *SearchAgent) FinalDepth() int { return a.finalDepth }

func (a *SearchAgent) newEndgame() *searcher.AlphaBeta {
	return searcher.NewAlphaBeta(game.DifferenceEvaluator(a.role), 0, a.searchOptions()...)
}

func (a *SearchAgent) searchOptions() []searcher.Option {
	options := []searcher.Option{searcher.WithMetrics(a.collector)}
	if a.positions != nil {
		options = append(options, searcher.WithMoveGenerator(a.positions))
	}
	return options
}
