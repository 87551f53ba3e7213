package searcher

import (
	"math"

	"othello/game"
)

// Minimax is the unpruned search AlphaBeta must agree with. It follows the
// same conventions (forced passes keep the depth) and is only meant for
// checking results on small trees.
func Minimax(evaluator game.Evaluator, b *game.Board, player game.Color, depth int, maximizing bool) float64 {
	if depth == 0 || b.IsTerminalState() {
		return evaluator.Evaluate(b)
	}
	actions := b.FeasiblePos(player)
	if len(actions) == 0 {
		return Minimax(evaluator, b, player.Opponent(), depth, !maximizing)
	}
	best := MaxValue
	if maximizing {
		best = MinValue
	}
	for _, m := range actions {
		child := b.Copy()
		child.MustFlip(m.Row, m.Col, player)
		v := Minimax(evaluator, child, player.Opponent(), depth-1, !maximizing)
		if maximizing {
			best = math.Max(best, v)
		} else {
			best = math.Min(best, v)
		}
	}
	return best
}
