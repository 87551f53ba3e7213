package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"othello/config"
	"othello/database"
	"othello/engine"
	"othello/experiments"
	"othello/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	conf := flag.String("conf", "./config/config.yaml", "player config")
	games := flag.Int("games", 0, "number of games to play, 0 uses the config")
	verbose := flag.Int("verbose", 1, "verbose level: 0 warnings, 1 progress, 2 every move")
	record := flag.String("record", "", "write played games to this game file (.gz to compress)")
	db := flag.String("db", "", "comma-separated game files to validate instead of playing")
	experiment := flag.String("experiment", "", "run an experiment: depth, evaluator or throughput")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch {
	case *verbose <= 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case *verbose == 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case *db != "":
		err = validate(strings.Split(*db, ","))
	case *experiment != "":
		err = runExperiment(ctx, *experiment, *games)
	default:
		err = play(ctx, *conf, *games, *record, *verbose > 1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("othello failed")
	}
}

func play(ctx context.Context, path string, games int, record string, printMoves bool) error {
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if games > 0 {
		c.Games = games
	}
	if record != "" && c.BoardSize != game.StandardSize {
		return errors.Errorf("game files hold %dx%d games only", game.StandardSize, game.StandardSize)
	}
	out, _ := c.Marshal()
	log.Info().Msgf("config:\n%s", out)

	black, err := c.BuildAgent(game.Black, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	white, err := c.BuildAgent(game.White, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	options := []engine.Option{engine.WithBoardSize(c.BoardSize)}
	if printMoves {
		options = append(options, engine.WithPrint())
	}
	e := engine.LocalEngine(black, white, options...)

	var played []database.Game
	_, err = engine.RunSeries(ctx, e, c.Games, func(o engine.Outcome) error {
		played = append(played, database.Game{Plies: o.Plies, Result: o.Margin()})
		return nil
	})
	if record != "" && len(played) > 0 {
		if werr := database.WriteFile(record, played); werr != nil {
			return werr
		}
		log.Info().Msgf("recorded %d games to %s", len(played), record)
	}
	return err
}

func validate(paths []string) error {
	games, err := database.ReadFile(paths...)
	if err != nil {
		return err
	}
	invalid := 0
	for i, g := range games {
		if err := database.Validate(g); err != nil {
			invalid++
			log.Warn().Err(err).Msgf("game %d", i+1)
		}
	}
	black, white, ties := database.Stats(games)
	log.Info().Msgf("total games: %d, black wins: %d, white wins: %d, ties: %d, invalid: %d",
		len(games), black, white, ties, invalid)
	return nil
}

func runExperiment(ctx context.Context, name string, games int) error {
	if games <= 0 {
		games = experiments.NumGames
	}
	switch name {
	case "depth":
		return experiments.RunDepthExperiment(ctx, games)
	case "evaluator":
		return experiments.RunEvaluatorExperiment(ctx, games)
	case "throughput":
		return experiments.RunThroughputExperiment(ctx, games)
	default:
		return errors.Errorf("unknown experiment %q", name)
	}
}
