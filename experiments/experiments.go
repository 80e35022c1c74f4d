package experiments

import (
	"context"
	"fmt"
	"isolation/engine"
	"isolation/experiments/metrics"
	"isolation/searcher/agent"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// Settings are shared by every match up of an experiment.
type Settings struct {
	Games       int // Per match up
	Concurrency int
	TimeLimit   time.Duration
	Seed        uint64
	Dir         string // Root of the experiments output folder
}

// Experiment runs a set of match ups and stores their records.
type Experiment func(ctx context.Context, settings Settings) error

var Experiments = map[string]Experiment{
	"baseline":   RunBaselineExperiment,
	"evaluators": RunEvaluatorExperiment,
	"mcts":       RunMCTSExperiment,
	"table":      RunTableExperiment,
	"throughput": RunThroughputExperiment,
}

// Names returns the registered experiment names in order.
func Names() []string {
	names := make([]string, 0, len(Experiments))
	for name := range Experiments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunBaselineExperiment pairs the deepening agent against the greedy and random agents.
func RunBaselineExperiment(ctx context.Context, settings Settings) error {
	deepening := metrics.AgentConfig{ID: 0, Kind: agent.ALPHABETA, Evaluator: "mobility", Seed: settings.Seed}
	baselines := []metrics.AgentConfig{
		{ID: 1, Kind: agent.GREEDY, Evaluator: "mobility", Seed: settings.Seed},
		{ID: 2, Kind: agent.RANDOM, Seed: settings.Seed},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range baselines {
		matchUps = append(matchUps, [2]metrics.AgentConfig{deepening, config})
	}

	return runExperiment(ctx, "baseline", settings, append(baselines, deepening), matchUps)
}

// RunEvaluatorExperiment pairs every registered evaluator against the others.
func RunEvaluatorExperiment(ctx context.Context, settings Settings) error {
	configs := []metrics.AgentConfig{
		{ID: 0, Kind: agent.ALPHABETA, Evaluator: "mobility", Seed: settings.Seed},
		{ID: 1, Kind: agent.ALPHABETA, Evaluator: "aggressive", Seed: settings.Seed},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			matchUps = append(matchUps, [2]metrics.AgentConfig{configs[i], configs[j]})
		}
	}

	return runExperiment(ctx, "evaluators", settings, configs, matchUps)
}

// RunTableExperiment pairs the deepening agent with and without a transposition table.
func RunTableExperiment(ctx context.Context, settings Settings) error {
	baseline := metrics.AgentConfig{ID: 0, Kind: agent.ALPHABETA, Evaluator: "mobility", Seed: settings.Seed}
	table := baseline
	table.ID = 1
	table.Table = true

	matchUps := [][2]metrics.AgentConfig{{baseline, table}}

	return runExperiment(ctx, "table", settings, []metrics.AgentConfig{baseline, table}, matchUps)
}

// RunMCTSExperiment pairs the deepening agent against tree search with a growing
// number of goroutines.
func RunMCTSExperiment(ctx context.Context, settings Settings) error {
	deepening := metrics.AgentConfig{ID: 0, Kind: agent.ALPHABETA, Evaluator: "mobility", Seed: settings.Seed}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: agent.MCTS, Goroutines: 1, Seed: settings.Seed},
		{ID: 2, Kind: agent.MCTS, Goroutines: 4, Seed: settings.Seed},
		{ID: 3, Kind: agent.MCTS, Goroutines: 16, Seed: settings.Seed},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{deepening, config})
	}

	return runExperiment(ctx, "mcts", settings, append(configs, deepening), matchUps)
}

func runExperiment(ctx context.Context, name string, settings Settings, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) error {
	start := time.Now()
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		result, err := engine.Match(ctx, matchUp, settings.Games, settings.Concurrency, len(gameRecords)+1,
			engine.WithTimeLimit(settings.TimeLimit))
		if err != nil {
			return fmt.Errorf("matchup %d of %s experiment: %w", mi+1, name, err)
		}
		gameRecords = append(gameRecords, result.Games...)
		moveRecords = append(moveRecords, result.Moves...)

		log.Info().Msgf("completed matchup %d of %d: agent %d won %d, agent %d won %d",
			mi+1, len(matchUps), matchUp[0].ID, result.Wins[0], matchUp[1].ID, result.Wins[1])
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata
	writer, err := metrics.NewWriter(settings.Dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	pairs := make([][2]int, len(matchUps))
	for i, matchUp := range matchUps {
		pairs[i] = [2]int{matchUp[0].ID, matchUp[1].ID}
	}
	err = writer.WriteSetup(metrics.Setup{
		Name:      name,
		Matchups:  pairs,
		NumGames:  settings.Games,
		TimeLimit: settings.TimeLimit,
		StartTime: start,
		EndTime:   time.Now(),
	})
	if err != nil {
		return err
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
