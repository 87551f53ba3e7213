package database

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"othello/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ReadFile loads text records from each path in turn. Files ending in .gz
// are decompressed on the fly; blank lines are skipped.
func ReadFile(paths ...string) ([]Game, error) {
	var games []Game
	for _, path := range paths {
		g, err := readFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug().Msgf("read %d games from %s", len(g), path)
		games = append(games, g...)
	}
	return games, nil
}

func readFile(path string) ([]Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open game file")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decompress %s", path)
		}
		defer zr.Close()
		r = zr
	}
	return Read(r)
}

// Read parses one text record per line.
func Read(r io.Reader) ([]Game, error) {
	var games []Game
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		g, err := Parse(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		games = append(games, g)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read games")
	}
	return games, nil
}

// WriteFile stores games as text records, gzip-compressed when path ends
// in .gz.
func WriteFile(path string, games []Game) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create game file")
	}
	defer f.Close()

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}
	if err := Write(w, games); err != nil {
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return errors.Wrap(err, "failed to flush compressed games")
		}
	}
	return f.Close()
}

func Write(w io.Writer, games []Game) error {
	bw := bufio.NewWriter(w)
	for _, g := range games {
		if _, err := bw.WriteString(Format(g) + "\n"); err != nil {
			return errors.Wrap(err, "failed to write game")
		}
	}
	return errors.Wrap(bw.Flush(), "failed to write games")
}

// WTHOR layout, see http://cassio.free.fr/cassio/custom_install/database/FORMAT_WTHOR.TXT
const (
	thorFileHeader   = 16
	thorRecordHeader = 8
	thorRecordSize   = 68
	thorBoardSize    = 12 // Offset of the board size byte in the file header
	thorBlackScore   = 6  // Offset of the theoretical Black score in a record
)

// ReadThor decodes a WTHOR game archive. Moves are stored without side, so
// a move that is illegal for the side to move is given to the other side.
// Games whose stored score disagrees with the replay are skipped and
// counted in inconsistent.
func ReadThor(r io.Reader) (games []Game, inconsistent int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to read wthor data")
	}
	if len(data) < thorFileHeader {
		return nil, 0, errors.New("wthor data shorter than its header")
	}
	if size := data[thorBoardSize]; size != 0 && size != game.StandardSize {
		return nil, 0, errors.Errorf("wthor board size %d is not supported", size)
	}

	for i := thorFileHeader; i+thorRecordSize <= len(data); i += thorRecordSize {
		record := data[i : i+thorRecordSize]
		g, ok := thorGame(record)
		if !ok {
			inconsistent++
			continue
		}
		games = append(games, g)
	}
	if inconsistent > 0 {
		log.Warn().Msgf("skipped %d inconsistent wthor games", inconsistent)
	}
	return games, inconsistent, nil
}

func thorGame(record []byte) (Game, bool) {
	b := game.NewStandardBoard()
	player := game.Black
	var g Game
	for _, play := range record[thorRecordHeader:] {
		if play == 0 {
			continue
		}
		m := game.Move{Row: int(play/10) - 1, Col: int(play%10) - 1}
		if !b.IsFeasible(m.Row, m.Col, player) {
			player = player.Opponent()
		}
		if err := b.Flip(m.Row, m.Col, player); err != nil {
			return Game{}, false
		}
		g.Plies = append(g.Plies, game.Ply{Player: player, Move: m})
		player = player.Opponent()
	}

	black, white := b.Score(game.Black), b.Score(game.White)
	score := black
	if black > white {
		score += b.Blanks()
	}
	if score != int(record[thorBlackScore]) {
		return Game{}, false
	}
	g.Result = 2*score - game.StandardSize*game.StandardSize
	return g, true
}
