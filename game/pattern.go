package game

import (
	"othello/cache"

	"github.com/pkg/errors"
)

// pairStates is the number of (colour, colour) combinations of a cell pair.
const pairStates = 9

// patternDirections are the adjacent-pair shapes: horizontal and diagonal.
// Vertical and anti-diagonal pairs are covered by the board symmetries.
var patternDirections = [2][2]int{{0, 1}, {1, 1}}

// Pattern is a linear value model over adjacent cell pairs. Every pair shape
// is folded under the 8 symmetries of the square, so each weight is shared
// by all symmetric images of a pair. The value is from Black's perspective;
// wrap it with Negate for White.
//
// Weights are supplied by the caller. Active feature indices are memoized
// per position when a Zobrist table is given.
type Pattern struct {
	size     int
	pairs    [][8][2]int // [pattern][symmetry] -> (cell, cell)
	weights  []float64
	zobrist  *Zobrist
	features *cache.LRU[uint64, []int32]
}

// NumPatternFeatures is the weight vector length expected for a board size.
func NumPatternFeatures(size int) int {
	return len(patternPairs(size)) * pairStates
}

// NewPattern builds the model. A nil z disables the feature cache.
func NewPattern(size int, weights []float64, z *Zobrist, cacheSize int) (*Pattern, error) {
	pairs := patternPairs(size)
	if len(weights) != len(pairs)*pairStates {
		return nil, errors.Errorf("pattern model for size %d needs %d weights, got %d",
			size, len(pairs)*pairStates, len(weights))
	}
	p := &Pattern{
		size:    size,
		pairs:   pairs,
		weights: append([]float64(nil), weights...),
	}
	if z != nil {
		if z.Size() != size {
			return nil, errors.Errorf("zobrist table size %d does not match board size %d", z.Size(), size)
		}
		features, err := cache.NewLRU[uint64, []int32](cacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create feature cache")
		}
		p.zobrist, p.features = z, features
	}
	return p, nil
}

func (p *Pattern) Evaluate(b *Board) float64 {
	sum := 0.0
	for _, f := range p.active(b) {
		sum += p.weights[f]
	}
	return sum
}

// Features returns the dense feature vector of b: the count of each
// (pattern, pair state) combination.
func (p *Pattern) Features(b *Board) []float64 {
	out := make([]float64, len(p.weights))
	for _, f := range p.active(b) {
		out[f]++
	}
	return out
}

// CacheStats reports the feature cache counters, zero when caching is off.
func (p *Pattern) CacheStats() cache.Stats {
	if p.features == nil {
		return cache.Stats{}
	}
	return p.features.Stats()
}

func (p *Pattern) active(b *Board) []int32 {
	if b.size != p.size {
		panic("pattern model used on a board of another size")
	}
	var h uint64
	if p.features != nil {
		h = p.zobrist.Hash(b)
		if f, ok := p.features.Get(h); ok {
			return f
		}
	}
	f := make([]int32, 0, len(p.pairs)*8)
	for idx, images := range p.pairs {
		for _, cells := range images {
			v0 := cellCode(b.cells[cells[0]])
			v1 := cellCode(b.cells[cells[1]])
			f = append(f, int32(idx*pairStates+v0*3+v1))
		}
	}
	if p.features != nil {
		p.features.Put(h, f)
	}
	return f
}

// cellCode is the numeric cell encoding the feature layout is built on.
func cellCode(c Color) int {
	switch c {
	case Black:
		return 1
	case White:
		return 2
	default:
		return 0
	}
}

// symmetries returns the 8 images of (r, c) under rotations and reflections.
func symmetries(size, r, c int) [8][2]int {
	s := size - 1
	return [8][2]int{
		{r, c}, {r, s - c}, {c, r}, {c, s - r},
		{s - r, c}, {s - r, s - c}, {s - c, r}, {s - c, s - r},
	}
}

// patternPairs enumerates one representative per symmetry class of adjacent
// pairs, together with the cell indices of all its images.
func patternPairs(size int) [][8][2]int {
	type pair struct{ a, b [2]int }
	seen := make(map[pair]bool)
	var out [][8][2]int
	for _, d := range patternDirections {
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				r1, c1 := r+d[0], c+d[1]
				if r1 >= size || c1 >= size {
					continue
				}
				from, to := [2]int{r, c}, [2]int{r1, c1}
				if seen[pair{from, to}] || seen[pair{to, from}] {
					continue
				}
				imgA, imgB := symmetries(size, r, c), symmetries(size, r1, c1)
				var images [8][2]int
				for m := range imgA {
					seen[pair{imgA[m], imgB[m]}] = true
					images[m] = [2]int{
						imgA[m][0]*size + imgA[m][1],
						imgB[m][0]*size + imgB[m][1],
					}
				}
				out = append(out, images)
			}
		}
	}
	return out
}
