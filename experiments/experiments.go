package experiments

import (
	"context"
	"fmt"

	"othello/config"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const NumGames = 20 // Per match up

// Dir is where experiment results are written.
var Dir = "experiments"

var baseline = metrics.AgentConfig{ID: 0, Type: config.Random, FinalDepth: 6}

var depthConfigs = []metrics.AgentConfig{
	{ID: 1, Type: config.Bot, Evaluator: config.Positional, Depth: 1, FinalDepth: 6, Workers: 1},
	{ID: 2, Type: config.Bot, Evaluator: config.Positional, Depth: 2, FinalDepth: 6, Workers: 1},
	{ID: 3, Type: config.Bot, Evaluator: config.Positional, Depth: 3, FinalDepth: 6, Workers: 1},
	{ID: 4, Type: config.Bot, Evaluator: config.Positional, Depth: 4, FinalDepth: 6, Workers: 1},
}

var evaluatorConfigs = []metrics.AgentConfig{
	{ID: 1, Type: config.Bot, Evaluator: config.Score, Depth: 3, FinalDepth: 8, Workers: 1},
	{ID: 2, Type: config.Bot, Evaluator: config.Difference, Depth: 3, FinalDepth: 8, Workers: 1},
	{ID: 3, Type: config.Bot, Evaluator: config.Positional, Depth: 3, FinalDepth: 8, Workers: 1},
}

// RunDepthExperiment pairs search agents of growing depth against the
// random baseline.
func RunDepthExperiment(ctx context.Context, numGames int) error {
	matchUps := [][2]metrics.AgentConfig{}
	for _, cfg := range depthConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, cfg})
	}
	return runExperiment(ctx, "depth", append(depthConfigs, baseline), matchUps, numGames)
}

// RunEvaluatorExperiment plays every evaluator against every other one at
// equal depth.
func RunEvaluatorExperiment(ctx context.Context, numGames int) error {
	matchUps := [][2]metrics.AgentConfig{}
	for i, first := range evaluatorConfigs {
		for _, second := range evaluatorConfigs[i+1:] {
			matchUps = append(matchUps, [2]metrics.AgentConfig{first, second})
		}
	}
	return runExperiment(ctx, "evaluator", evaluatorConfigs, matchUps, numGames)
}

func runExperiment(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, numGames int) error {
	writer, err := metrics.NewWriter(Dir, name)
	if err != nil {
		return errors.Wrap(err, "failed to create experiment writer")
	}
	return Run(ctx, name, configs, matchUps, numGames, writer)
}

// Run plays numGames games for each matchup and stores the configs, games
// and moves through writer. The two agents swap colours after every game.
func Run(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, numGames int, writer *metrics.Writer) error {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		var tally engine.Tally
		for i := 0; i < numGames; i++ {
			black, white := matchup[0], matchup[1]
			if i%2 == 1 {
				black, white = white, black
			}

			outcome, err := runGame(ctx, black, white)
			if err != nil {
				return errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}
			tally.Add(outcome)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Black:      black.ID,
				White:      white.ID,
				GameMetric: outcome.Game,
			})
			for _, mm := range outcome.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Debug().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, outcome.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d: %s", mi+1, len(matchUps), tally)
	}

	log.Info().Msgf("completed %s experiment", name)

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return errors.Wrap(err, "failed to store agent configs")
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return errors.Wrap(err, "failed to write game records")
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return errors.Wrap(err, "failed to write move records")
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return nil
}

// runGame plays a single game between two configured agents.
func runGame(ctx context.Context, black, white metrics.AgentConfig) (engine.Outcome, error) {
	c, err := config.New(player(black), player(white))
	if err != nil {
		return engine.Outcome{}, err
	}
	agents := make([]agent.Agent, 0, 2)
	for _, role := range []game.Color{game.Black, game.White} {
		a, err := c.BuildAgent(role, nil, nil)
		if err != nil {
			return engine.Outcome{}, err
		}
		agents = append(agents, a)
	}

	e := engine.LocalEngine(agents[0], agents[1])
	outcome, err := e.Run(ctx)
	if err != nil {
		return engine.Outcome{}, err
	}
	outcome.Game.Black = agentName(black)
	outcome.Game.White = agentName(white)
	return outcome, nil
}

func player(cfg metrics.AgentConfig) config.Player {
	finalDepth := cfg.FinalDepth
	return config.Player{
		Type:       cfg.Type,
		Evaluator:  cfg.Evaluator,
		Depth:      cfg.Depth,
		FinalDepth: &finalDepth,
		Workers:    cfg.Workers,
	}
}

func agentName(cfg metrics.AgentConfig) string {
	return fmt.Sprintf("agent%d", cfg.ID)
}
