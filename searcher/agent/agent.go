package agent

import (
	"othello/experiments/metrics"
	"othello/game"

	"github.com/pkg/errors"
)

var (
	// ErrNoMoves is returned by Play when the agent's side has no legal move.
	// The game driver handles passes itself and never asks in that case.
	ErrNoMoves = errors.New("no legal move to play")
	// ErrResigned is returned when a player gives up the game.
	ErrResigned = errors.New("player resigned")
)

type Agent interface {
	Role() game.Color
	SetRole(role game.Color)
	// Play returns the move to make on b. The board must be left as it was.
	Play(b *game.Board) (game.Move, error)
	BeginOfGame(b *game.Board)
	EndOfGame(b *game.Board)
	TellResult(b *game.Board)
}

// Reporter is implemented by agents that search and can describe their
// last decision.
type Reporter interface {
	LastSearch() metrics.SearchMetric
}

// Base holds the role and provides no-op lifecycle hooks. Embed it and
// implement Play.
type Base struct {
	role game.Color
}

func NewBase(role game.Color) Base {
	return Base{role: role}
}

func (a *Base) Role() game.Color          { return a.role }
func (a *Base) SetRole(role game.Color)   { a.role = role }
func (a *Base) BeginOfGame(b *game.Board) {}
func (a *Base) EndOfGame(b *game.Board)   {}
func (a *Base) TellResult(b *game.Board)  {}

func checkRole(role game.Color) {
	if role != game.Black && role != game.White {
		panic("agent role must be black or white")
	}
}
