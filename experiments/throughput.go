package experiments

import (
	"context"
	"fmt"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	ThroughputPositions = 20
	ThroughputMaxDepth  = 6
	ThroughputPlies     = 8 // Random plies played before measuring
)

// RunThroughputExperiment measures nodes searched per second by fixed-depth searches
// over random midgame positions.
func RunThroughputExperiment(ctx context.Context, settings Settings) error {
	log.Info().Msg("starting throughput experiment...")

	positions := randomPositions(ThroughputPositions, ThroughputPlies, settings.Seed)
	records, err := measureThroughput(ctx, positions, ThroughputMaxDepth)
	if err != nil {
		return err
	}

	log.Info().Msg("completed throughput experiment")

	writer, err := metrics.NewWriter(settings.Dir, "throughput")
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WriteThroughput(records)
	if err != nil {
		return fmt.Errorf("failed to write throughput records: %w", err)
	}
	log.Info().Msgf("stored throughput records in %s", writer.Dir())
	return nil
}

func measureThroughput(ctx context.Context, positions []game.State, maxDepth int) ([]metrics.ThroughputRecord, error) {
	records := make([]metrics.ThroughputRecord, 0, maxDepth)
	for depth := 1; depth <= maxDepth; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ab := searcher.NewAlphaBeta(searcher.WithSeed(uint64(depth)), searcher.WithMetrics())
		start := time.Now()
		for _, state := range positions {
			ab.Search(state, depth)
		}
		record := metrics.ThroughputRecord{
			Depth:     depth,
			Positions: len(positions),
			Nodes:     ab.Metrics().Nodes,
			Duration:  time.Since(start),
		}
		records = append(records, record)

		log.Info().Msgf("depth %d: %d nodes in %s (%.0f nodes/s)", depth, record.Nodes, record.Duration, record.NodesPerSecond())
	}
	return records, nil
}

// randomPositions plays plies random moves from the empty board, restarting games that end early.
func randomPositions(n, plies int, seed uint64) []game.State {
	rng := rand.New(rand.NewSource(seed))
	positions := make([]game.State, 0, n)
	for len(positions) < n {
		state := game.NewState()
		for i := 0; i < plies && !state.Terminal(); i++ {
			actions := state.Actions()
			next, err := state.Result(actions[rng.Intn(len(actions))])
			if err != nil {
				panic(err)
			}
			state = next
		}
		if !state.Terminal() {
			positions = append(positions, state)
		}
	}
	return positions
}
