package experiments

import (
	"context"

	"othello/config"
	"othello/experiments/metrics"
)

var throughputConfigs = []metrics.AgentConfig{
	{ID: 1, Type: config.Bot, Evaluator: config.Positional, Depth: 5, FinalDepth: 10, Workers: 1},
	{ID: 2, Type: config.Bot, Evaluator: config.Positional, Depth: 5, FinalDepth: 10, Workers: 2},
	{ID: 3, Type: config.Bot, Evaluator: config.Positional, Depth: 5, FinalDepth: 10, Workers: 4},
	{ID: 4, Type: config.Bot, Evaluator: config.Positional, Depth: 5, FinalDepth: 10, Workers: 8},
}

// RunThroughputExperiment measures parallel root search. Each matchup uses
// the same config for both players, so the games are identical and only
// the move durations differ.
func RunThroughputExperiment(ctx context.Context, numGames int) error {
	matchUps := [][2]metrics.AgentConfig{}
	for _, cfg := range throughputConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{cfg, cfg})
	}
	return runExperiment(ctx, "throughput", throughputConfigs, matchUps, numGames)
}
