package config

import (
	"bytes"
	"io"
	"os"

	"othello/meta"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Player types.
const (
	Bot    = "bot"
	Random = "random"
	Hybrid = "hybrid"
	Human  = "human"
)

// Evaluator names.
const (
	Score      = "score"
	Difference = "difference"
	Positional = "positional"
	Pattern    = "pattern"
)

var (
	playerTypes = []string{Bot, Random, Hybrid, Human}
	evaluators  = []string{Score, Difference, Positional, Pattern}
)

// Player describes one side. Which fields apply depends on Type.
type Player struct {
	Type       string    `yaml:"type"`
	Evaluator  string    `yaml:"evaluator,omitempty"`   // bot
	Depth      int       `yaml:"depth,omitempty"`       // bot
	FinalDepth *int      `yaml:"final_depth,omitempty"` // bot, random
	Workers    int       `yaml:"workers,omitempty"`     // bot
	Weights    []float64 `yaml:"weights,omitempty"`     // bot with the pattern evaluator
	Seed       uint64    `yaml:"seed,omitempty"`        // random, hybrid; 0 draws a fresh seed
	Members    []Player  `yaml:"members,omitempty"`     // hybrid
	Mix        []float64 `yaml:"mix,omitempty"`         // hybrid, one weight per member
}

// Config is a match setup: both players and the shared search resources.
type Config struct {
	Black       Player `yaml:"black"`
	White       Player `yaml:"white"`
	Games       int    `yaml:"games,omitempty"`
	BoardSize   int    `yaml:"board_size,omitempty"`
	CacheSize   int    `yaml:"cache_size,omitempty"` // Negative disables the caches
	ZobristSeed uint64 `yaml:"zobrist_seed,omitempty"`

	shared *resources
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return c, nil
}

// Parse decodes a YAML document, fills in defaults and validates the
// result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// New builds a config for two players, with defaults for everything else.
func New(black, white Player) (*Config, error) {
	c := &Config{Black: black, White: white}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal renders c back to YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) setDefaults() {
	if c.Games == 0 {
		c.Games = meta.GAMES
	}
	if c.BoardSize == 0 {
		c.BoardSize = 8
	}
	if c.CacheSize == 0 {
		c.CacheSize = meta.CACHE_SIZE
	}
	if c.ZobristSeed == 0 {
		c.ZobristSeed = meta.ZOBRIST_SEED
	}
	c.Black.setDefaults()
	c.White.setDefaults()
}

func (p *Player) setDefaults() {
	switch p.Type {
	case Bot:
		if p.Depth == 0 {
			p.Depth = meta.DEPTH
		}
		if p.FinalDepth == nil {
			p.FinalDepth = lo.ToPtr(meta.FINAL_DEPTH)
		}
		if p.Workers == 0 {
			p.Workers = 1
		}
	case Random:
		if p.FinalDepth == nil {
			p.FinalDepth = lo.ToPtr(meta.RANDOM_FINAL_DEPTH)
		}
	case Hybrid:
		for i := range p.Members {
			p.Members[i].setDefaults()
		}
	}
}

func (c *Config) Validate() error {
	if c.Games < 1 {
		return errors.Errorf("games must be positive, got %d", c.Games)
	}
	if c.BoardSize < 4 || c.BoardSize%2 != 0 {
		return errors.Errorf("board_size must be even and at least 4, got %d", c.BoardSize)
	}
	if err := c.Black.Validate(); err != nil {
		return errors.Wrap(err, "black")
	}
	if err := c.White.Validate(); err != nil {
		return errors.Wrap(err, "white")
	}
	return nil
}

func (p *Player) Validate() error {
	if !lo.Contains(playerTypes, p.Type) {
		return errors.Errorf("unknown player type %q, want one of %v", p.Type, playerTypes)
	}
	if p.FinalDepth != nil && *p.FinalDepth < 0 {
		return errors.Errorf("final_depth cannot be negative, got %d", *p.FinalDepth)
	}

	switch p.Type {
	case Bot:
		if !lo.Contains(evaluators, p.Evaluator) {
			return errors.Errorf("unknown evaluator %q, want one of %v", p.Evaluator, evaluators)
		}
		if p.Depth < 1 {
			return errors.Errorf("depth must be at least 1, got %d", p.Depth)
		}
		if p.Workers < 1 {
			return errors.Errorf("workers must be at least 1, got %d", p.Workers)
		}
		if p.Evaluator == Pattern && len(p.Weights) == 0 {
			return errors.New("the pattern evaluator needs weights")
		}
	case Hybrid:
		if len(p.Members) == 0 {
			return errors.New("hybrid player needs members")
		}
		if len(p.Members) != len(p.Mix) {
			return errors.Errorf("hybrid player has %d members but %d mix weights", len(p.Members), len(p.Mix))
		}
		for i := range p.Members {
			if p.Mix[i] <= 0 {
				return errors.Errorf("mix weight %d must be positive, got %v", i, p.Mix[i])
			}
			if err := p.Members[i].Validate(); err != nil {
				return errors.Wrapf(err, "member %d", i)
			}
		}
	}
	return nil
}
