package engine

import (
	"context"
	"fmt"
	"isolation/experiments/metrics"
	"isolation/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type MatchResult struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Wins  [2]int // Per agent index
}

// Match plays games between the agents described by configs, at most concurrency at a
// time. The starting agent alternates; agents are rebuilt for every game with the
// configured seed offset by the game number. IDs of the returned records start at firstID.
func Match(ctx context.Context, configs [2]metrics.AgentConfig, games, concurrency, firstID int, options ...Option) (MatchResult, error) {
	if games < 1 {
		panic("need at least one game")
	}
	if concurrency < 1 {
		concurrency = 1
	}

	records := make([]metrics.GameRecord, games)
	moves := make([][]metrics.MoveMetric, games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := 0; i < games; i++ {
		i := i
		g.Go(func() error {
			starting := i % 2
			var agents [2]agent.Agent
			for player := range agents {
				config := configs[player^starting]
				config.Seed += uint64(i)
				agents[player] = agent.New(config)
			}

			startTime := time.Now()
			result, err := New(agents, options...).Run(ctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", firstID+i, err)
			}
			endTime := time.Now()

			winner := result.Winner ^ starting
			records[i] = metrics.GameRecord{
				ID:     firstID + i,
				Agent1: configs[0].ID,
				Agent2: configs[1].ID,
				GameMetric: metrics.GameMetric{
					StartingAgent: starting,
					Winner:        winner,
					Reason:        result.Reason(),
					StartTime:     startTime,
					EndTime:       endTime,
					Duration:      endTime.Sub(startTime),
					TotalMoves:    len(result.Moves),
				},
			}
			moves[i] = result.Moves

			log.Info().Msgf("completed game %d of %d with winner: agent %d (%s)", i+1, games, configs[winner].ID, result.Reason())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MatchResult{}, err
	}

	var result MatchResult
	result.Games = records
	for i, record := range records {
		result.Wins[record.Winner]++
		for _, m := range moves[i] {
			result.Moves = append(result.Moves, metrics.MoveRecord{Game: record.ID, MoveMetric: m})
		}
	}
	return result, nil
}
