package game

import (
	"othello/cache"
)

// ScoreEvaluator counts the discs of role. It is exact at terminal positions
// and is what the endgame solvers maximize.
func ScoreEvaluator(role Color) Evaluator {
	return EvaluatorFunc(func(b *Board) float64 {
		return float64(b.Score(role))
	})
}

// DifferenceEvaluator is the disc margin of role over its opponent.
func DifferenceEvaluator(role Color) Evaluator {
	opponent := role.Opponent()
	return EvaluatorFunc(func(b *Board) float64 {
		return float64(b.Score(role) - b.Score(opponent))
	})
}

// PositionalEvaluator sums a static square table over the discs of role:
// corners are worth a lot, the squares next to them are dangerous, the rest
// barely matter.
func PositionalEvaluator(role Color, size int) Evaluator {
	weights := PositionalWeights(size)
	return EvaluatorFunc(func(b *Board) float64 {
		if b.size != size {
			panic("positional evaluator used on a board of another size")
		}
		sum := 0.0
		for i, c := range b.cells {
			if c == role {
				sum += weights[i]
			}
		}
		return sum
	})
}

// PositionalWeights returns the row-major square table used by
// PositionalEvaluator for a size×size board.
func PositionalWeights(size int) []float64 {
	w := make([]float64, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			dr := min(r, size-1-r)
			dc := min(c, size-1-c)
			near, far := min(dr, dc), max(dr, dc)
			var v float64
			switch near {
			case 0:
				switch far {
				case 0:
					v = 100
				case 1:
					v = -20
				case 2:
					v = 10
				default:
					v = 5
				}
			case 1:
				if far == 1 {
					v = -50
				} else {
					v = -2
				}
			default:
				v = -1
			}
			w[r*size+c] = v
		}
	}
	return w
}

// Negate flips the perspective of e, turning a score for one side into a
// score for the other.
func Negate(e Evaluator) Evaluator {
	return EvaluatorFunc(func(b *Board) float64 {
		return -e.Evaluate(b)
	})
}

// Memoize caches the values of e keyed by the Zobrist hash of the board.
// The wrapped evaluator must depend on the cell contents only.
func Memoize(e Evaluator, z *Zobrist, capacity int) (Evaluator, error) {
	memo, err := cache.NewLRU[uint64, float64](capacity)
	if err != nil {
		return nil, err
	}
	return EvaluatorFunc(func(b *Board) float64 {
		h := z.Hash(b)
		if v, ok := memo.Get(h); ok {
			return v
		}
		v := e.Evaluate(b)
		memo.Put(h, v)
		return v
	}), nil
}
