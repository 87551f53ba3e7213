package config

import (
	"io"

	"othello/game"
	"othello/searcher"
	"othello/searcher/agent"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// resources are shared by every agent built from one Config.
type resources struct {
	zobrist   *game.Zobrist
	positions *searcher.Positions
}

func (c *Config) sharedResources() (*resources, error) {
	if c.shared != nil {
		return c.shared, nil
	}
	r := &resources{zobrist: game.NewZobrist(c.BoardSize, c.ZobristSeed)}
	if c.CacheSize > 0 {
		positions, err := searcher.NewPositions(r.zobrist, c.CacheSize)
		if err != nil {
			return nil, err
		}
		r.positions = positions
	}
	c.shared = r
	return r, nil
}

// BuildAgent constructs the agent configured for role. Human players read
// moves from in and write prompts to out.
func (c *Config) BuildAgent(role game.Color, in io.Reader, out io.Writer) (agent.Agent, error) {
	var p Player
	switch role {
	case game.Black:
		p = c.Black
	case game.White:
		p = c.White
	default:
		return nil, errors.Errorf("no player for role %s", role)
	}
	a, err := c.build(p, role, in, out)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s player", role)
	}
	return a, nil
}

func (c *Config) build(p Player, role game.Color, in io.Reader, out io.Writer) (agent.Agent, error) {
	switch p.Type {
	case Bot:
		evaluator, err := c.evaluator(p, role)
		if err != nil {
			return nil, err
		}
		r, err := c.sharedResources()
		if err != nil {
			return nil, err
		}
		options := []agent.Option{agent.WithWorkers(p.Workers)}
		if r.positions != nil {
			options = append(options, agent.WithPositions(r.positions))
		}
		return agent.NewSearchAgent(evaluator, p.Depth, finalDepth(p), role, options...), nil
	case Random:
		return agent.NewRandomAgent(role, finalDepth(p), seeded(p.Seed)), nil
	case Hybrid:
		members := make([]agent.Agent, 0, len(p.Members))
		for i, m := range p.Members {
			a, err := c.build(m, role, in, out)
			if err != nil {
				return nil, errors.Wrapf(err, "member %d", i)
			}
			members = append(members, a)
		}
		return agent.NewHybridAgent(role, members, p.Mix, seeded(p.Seed))
	case Human:
		return agent.NewHumanAgent(role, in, out), nil
	default:
		return nil, errors.Errorf("unknown player type %q", p.Type)
	}
}

// evaluator returns the evaluator named by p, scoring from role's side.
func (c *Config) evaluator(p Player, role game.Color) (game.Evaluator, error) {
	switch p.Evaluator {
	case Score:
		return game.ScoreEvaluator(role), nil
	case Difference:
		return game.DifferenceEvaluator(role), nil
	case Positional:
		return game.PositionalEvaluator(role, c.BoardSize), nil
	case Pattern:
		r, err := c.sharedResources()
		if err != nil {
			return nil, err
		}
		var z *game.Zobrist
		if c.CacheSize > 0 {
			z = r.zobrist
		}
		model, err := game.NewPattern(c.BoardSize, p.Weights, z, c.CacheSize)
		if err != nil {
			return nil, err
		}
		if role == game.White {
			return game.Negate(model), nil
		}
		return model, nil
	default:
		return nil, errors.Errorf("unknown evaluator %q", p.Evaluator)
	}
}

func finalDepth(p Player) int {
	if p.FinalDepth == nil {
		return 0
	}
	return *p.FinalDepth
}

// seeded returns nil for seed 0, letting the agent draw its own seed.
func seeded(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}
