package agent

import (
	"math"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// newRand returns rng, or a freshly seeded generator when rng is nil.
func newRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
}

// RandomAgent plays uniformly at random until at most depth empty cells are
// left, then solves the rest exactly on its own disc count.
type RandomAgent struct {
	Base
	depth int
	rng   *rand.Rand
	end   *searcher.AlphaBeta
}

func NewRandomAgent(role game.Color, depth int, rng *rand.Rand) *RandomAgent {
	checkRole(role)
	if depth < 0 {
		panic("random agent depth cannot be negative")
	}
	return &RandomAgent{
		Base:  NewBase(role),
		depth: depth,
		rng:   newRand(rng),
		end:   searcher.NewAlphaBeta(game.ScoreEvaluator(role), depth),
	}
}

func (a *RandomAgent) SetRole(role game.Color) {
	checkRole(role)
	a.Base.SetRole(role)
	a.end = searcher.NewAlphaBeta(game.ScoreEvaluator(role), a.depth)
}

func (a *RandomAgent) Play(b *game.Board) (game.Move, error) {
	moves := b.FeasiblePos(a.role)
	if len(moves) == 0 {
		return game.Move{}, ErrNoMoves
	}
	if blanks := b.Blanks(); blanks <= a.depth {
		a.end.SetDepth(blanks)
		result, err := a.end.Search(b, a.role)
		if err != nil {
			return game.Move{}, errors.Wrap(err, "endgame search failed")
		}
		if result.HasMove {
			return result.Move, nil
		}
	}
	return moves[a.rng.Intn(len(moves))], nil
}

// HybridAgent delegates every move to one of its members, drawn with
// probability proportional to the member's weight.
type HybridAgent struct {
	Base
	agents []Agent
	probs  []float64
	rng    *rand.Rand
	last   Agent
}

// NewHybridAgent checks that every member plays role and every weight is
// positive.
func NewHybridAgent(role game.Color, agents []Agent, weights []float64, rng *rand.Rand) (*HybridAgent, error) {
	checkRole(role)
	if len(agents) == 0 {
		return nil, errors.New("hybrid agent needs at least one member")
	}
	if len(agents) != len(weights) {
		return nil, errors.Errorf("got %d members but %d weights", len(agents), len(weights))
	}
	for i, a := range agents {
		if a.Role() != role {
			return nil, errors.Errorf("member %d plays %s, want %s", i, a.Role(), role)
		}
		if !(weights[i] > 0) || math.IsInf(weights[i], 0) {
			return nil, errors.Errorf("member %d has weight %v, want a positive finite weight", i, weights[i])
		}
	}
	sum := lo.Sum(weights)
	return &HybridAgent{
		Base:   NewBase(role),
		agents: agents,
		probs:  lo.Map(weights, func(w float64, _ int) float64 { return w / sum }),
		rng:    newRand(rng),
	}, nil
}

func (a *HybridAgent) SetRole(role game.Color) {
	a.Base.SetRole(role)
	for _, member := range a.agents {
		member.SetRole(role)
	}
}

func (a *HybridAgent) Play(b *game.Board) (game.Move, error) {
	a.last = a.choose()
	return a.last.Play(b)
}

// choose returns the first member whose cumulative probability reaches the
// draw.
func (a *HybridAgent) choose() Agent {
	sampled := a.rng.Float64()
	cumulative := 0.0
	for i, p := range a.probs {
		cumulative += p
		if cumulative >= sampled {
			return a.agents[i]
		}
	}
	return a.agents[len(a.agents)-1] // Rounding
}

func (a *HybridAgent) BeginOfGame(b *game.Board) {
	for _, member := range a.agents {
		member.BeginOfGame(b)
	}
}

func (a *HybridAgent) EndOfGame(b *game.Board) {
	for _, member := range a.agents {
		member.EndOfGame(b)
	}
}

func (a *HybridAgent) TellResult(b *game.Board) {
	for _, member := range a.agents {
		member.TellResult(b)
	}
}

// LastSearch reports the metric of the member that made the last move, if
// it searched.
func (a *HybridAgent) LastSearch() metrics.SearchMetric {
	if r, ok := a.last.(Reporter); ok {
		return r.LastSearch()
	}
	return metrics.SearchMetric{}
}
