package searcher

import (
	"othello/cache"
	"othello/game"

	"github.com/pkg/errors"
)

type positionKey struct {
	hash   uint64
	player game.Color
}

// Positions memoizes legal-move lists and terminal checks by Zobrist hash.
// It is a pure speed-up: a search returns the same result with or without
// it. Safe for concurrent use.
type Positions struct {
	zobrist  *game.Zobrist
	feasible *cache.LRU[positionKey, []game.Move]
	terminal *cache.LRU[uint64, bool]
}

// NewPositions creates both caches with the given capacity each.
func NewPositions(z *game.Zobrist, capacity int) (*Positions, error) {
	if z == nil {
		return nil, errors.New("position cache needs a zobrist table")
	}
	feasible, err := cache.NewLRU[positionKey, []game.Move](capacity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create move cache")
	}
	terminal, err := cache.NewLRU[uint64, bool](capacity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create terminal cache")
	}
	return &Positions{zobrist: z, feasible: feasible, terminal: terminal}, nil
}

// FeasiblePos returns a copy of the cached move list, computing it on a miss.
func (p *Positions) FeasiblePos(b *game.Board, player game.Color) []game.Move {
	key := positionKey{hash: p.zobrist.Hash(b), player: player}
	moves, ok := p.feasible.Get(key)
	if !ok {
		moves = b.FeasiblePos(player)
		p.feasible.Put(key, moves)
	}
	if moves == nil {
		return nil
	}
	return append([]game.Move(nil), moves...)
}

func (p *Positions) IsTerminalState(b *game.Board) bool {
	h := p.zobrist.Hash(b)
	if terminal, ok := p.terminal.Get(h); ok {
		return terminal
	}
	terminal := b.IsTerminalState()
	p.terminal.Put(h, terminal)
	return terminal
}

// Stats reports the move-list and terminal cache counters.
func (p *Positions) Stats() (feasible, terminal cache.Stats) {
	return p.feasible.Stats(), p.terminal.Stats()
}
