package main

import (
	"context"
	"flag"
	"fmt"
	"isolation/engine"
	"isolation/experiments"
	"isolation/experiments/metrics"
	"isolation/meta"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	agent1 := flag.String("agent1", "alphabeta", "Kind of the first agent: alphabeta, greedy, random or mcts")
	agent2 := flag.String("agent2", "greedy", "Kind of the second agent: alphabeta, greedy, random or mcts")
	eval1 := flag.String("eval1", "mobility", "Evaluator of the first agent")
	eval2 := flag.String("eval2", "mobility", "Evaluator of the second agent")
	table := flag.Bool("tt", false, "Give alpha-beta agents a transposition table")
	maxDepth := flag.Int("max-depth", 0, "Stop deepening after this depth (0 deepens until the time limit)")
	goroutines := flag.Int("goroutines", meta.GOROUTINES, "Number of tree search goroutines of MCTS agents")
	timeLimit := flag.Duration("time-limit", meta.TIME_LIMIT, "Time limit per move")
	games := flag.Int("games", meta.GAMES, "Number of games per match up")
	concurrency := flag.Int("concurrency", meta.CONCURRENCY, "Number of games played at the same time")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed of the agents' random sources")
	experiment := flag.String("experiment", "", "Run a named experiment instead of a single match: "+strings.Join(experiments.Names(), ", "))
	out := flag.String("out", ".", "Folder to store experiment records in")
	level := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	logLevel, err := zerolog.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *level)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(logLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *experiment != "" {
		run, ok := experiments.Experiments[*experiment]
		if !ok {
			log.Fatal().Msgf("unknown experiment %q", *experiment)
		}
		settings := experiments.Settings{
			Games:       *games,
			Concurrency: *concurrency,
			TimeLimit:   *timeLimit,
			Seed:        *seed,
			Dir:         *out,
		}
		if err := run(ctx, settings); err != nil {
			log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
		}
		return
	}

	configs := [2]metrics.AgentConfig{
		{ID: 1, Kind: *agent1, Evaluator: *eval1, Table: *table, MaxDepth: *maxDepth, Goroutines: *goroutines, Seed: *seed},
		{ID: 2, Kind: *agent2, Evaluator: *eval2, Table: *table, MaxDepth: *maxDepth, Goroutines: *goroutines, Seed: *seed + 1},
	}
	log.Info().Msgf("starting match of %d games between agent1=%+v and agent2=%+v...", *games, configs[0], configs[1])

	result, err := engine.Match(ctx, configs, *games, *concurrency, 1, engine.WithTimeLimit(*timeLimit))
	if err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}

	plies := 0
	for _, g := range result.Games {
		plies += g.TotalMoves
	}
	log.Info().
		Int("agent1", result.Wins[0]).
		Int("agent2", result.Wins[1]).
		Float64("avg_plies", float64(plies)/float64(len(result.Games))).
		Msg("completed match")
}
