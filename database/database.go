package database

import (
	"strconv"
	"strings"

	"othello/game"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrInconsistent marks a game whose stored result does not match its moves.
var ErrInconsistent = errors.New("game result does not match the moves")

// Game is a recorded game: the moves in order and the final result as the
// Black-minus-White disc margin.
type Game struct {
	Plies  []game.Ply
	Result int
}

// Parse reads one text record, e.g. "+f5-d6+c3:12". Each ply is a side
// marker ('+' Black, '-' White), a column letter and a 1-based row digit.
func Parse(line string) (Game, error) {
	moves, result, ok := strings.Cut(strings.TrimSpace(line), ":")
	if !ok {
		return Game{}, errors.Errorf("record %q has no result", line)
	}
	if len(moves)%3 != 0 {
		return Game{}, errors.Errorf("record %q has a truncated move list", line)
	}

	g := Game{Plies: make([]game.Ply, 0, len(moves)/3)}
	for i := 0; i < len(moves); i += 3 {
		var player game.Color
		switch moves[i] {
		case '+':
			player = game.Black
		case '-':
			player = game.White
		default:
			return Game{}, errors.Errorf("record %q: bad side marker %q at ply %d", line, moves[i], i/3+1)
		}
		m, err := game.ParseMove(moves[i+1 : i+3])
		if err != nil {
			return Game{}, errors.Wrapf(err, "record %q: ply %d", line, i/3+1)
		}
		g.Plies = append(g.Plies, game.Ply{Player: player, Move: m})
	}

	r, err := strconv.Atoi(result)
	if err != nil {
		return Game{}, errors.Wrapf(err, "record %q: bad result", line)
	}
	g.Result = r
	return g, nil
}

// Format is the inverse of Parse.
func Format(g Game) string {
	var sb strings.Builder
	for _, p := range g.Plies {
		if p.Player == game.Black {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('-')
		}
		sb.WriteString(p.Move.String())
	}
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(g.Result))
	return sb.String()
}

// Replay plays g on a standard board and returns the final position. Every
// move is checked against the rules.
func Replay(g Game) (*game.Board, error) {
	b := game.NewStandardBoard()
	for i, p := range g.Plies {
		if err := b.Flip(p.Move.Row, p.Move.Col, p.Player); err != nil {
			return nil, errors.Wrapf(err, "ply %d", i+1)
		}
	}
	return b, nil
}

// Validate replays g and checks its result. Both conventions found in
// recorded games are accepted: the plain disc margin, and the margin with
// the empty cells awarded to the winner.
func Validate(g Game) error {
	b, err := Replay(g)
	if err != nil {
		return err
	}
	black, white := b.Score(game.Black), b.Score(game.White)
	score := black
	if black > white {
		score += b.Blanks()
	}
	full := b.Size() * b.Size()
	if g.Result != black-white && g.Result != 2*score-full {
		return errors.Wrapf(ErrInconsistent, "recorded %d, board gives black %d white %d", g.Result, black, white)
	}
	return nil
}

// Mirror maps every move of g through the diagonal reflection (r, c) ->
// (c, r) when diag is set, then the anti-diagonal reflection (r, c) ->
// (n-1-c, n-1-r) when anti is set. Both keep the opening position fixed, so
// the mirrored game is legal whenever g is.
func Mirror(g Game, diag, anti bool) Game {
	const n = game.StandardSize
	return Game{
		Plies: lo.Map(g.Plies, func(p game.Ply, _ int) game.Ply {
			r, c := p.Move.Row, p.Move.Col
			if diag {
				r, c = c, r
			}
			if anti {
				r, c = n-1-c, n-1-r
			}
			return game.Ply{Player: p.Player, Move: game.Move{Row: r, Col: c}}
		}),
		Result: g.Result,
	}
}

// Stats counts Black wins, White wins and ties by the sign of the result.
func Stats(games []Game) (black, white, ties int) {
	black = lo.CountBy(games, func(g Game) bool { return g.Result > 0 })
	white = lo.CountBy(games, func(g Game) bool { return g.Result < 0 })
	return black, white, len(games) - black - white
}
