package main

import (
	"bufio"
	"connect4/engine"
	"connect4/experiments"
	"connect4/game"
	"connect4/meta"
	"connect4/render"
	"connect4/searcher"
	"connect4/searcher/agent"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "play", "play (human vs engine), watch (engine vs engine) or experiment")
	first := flag.String("first", "", "Who moves first in play mode: human or engine (asked when empty)")
	iterations := flag.Int("iterations", meta.Iterations, "Number of search iterations per engine move")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the engine's rollouts")
	experimentName := flag.String("experiment", "baseline", "Experiment to run: baseline or budget")
	games := flag.Int("games", meta.GAMES, "Games per matchup in experiment mode")
	out := flag.String("out", "experiments", "Directory for experiment records")
	level := flag.String("log-level", meta.LOG_LEVEL, "Log level (debug, info, warn, error)")
	flag.Parse()

	setupLogging(*level)
	if *iterations < 0 {
		log.Fatal().Int("iterations", *iterations).Msg("iterations must not be negative")
	}

	var err error
	switch *mode {
	case "play":
		err = play(*first, *iterations, *seed)
	case "watch":
		err = watch(*iterations, *seed)
	case "experiment":
		err = experiment(*experimentName, *out, *games, *iterations, *seed)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("failed")
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func play(firstFlag string, iterations int, seed uint64) error {
	stdin := bufio.NewReader(os.Stdin)

	var first engine.FirstMover
	var err error
	if firstFlag == "" {
		first, err = engine.AskFirstMover(stdin, os.Stdout)
	} else {
		first, err = engine.ParseFirstMover(firstFlag)
	}
	if err != nil {
		return err
	}

	human := agent.NewHumanAgent(stdin, os.Stdout)
	bot := agent.NewEvaluationAgent(searcher.NewMCTS(
		searcher.WithIterations(iterations),
		searcher.WithSeed(seed),
	))
	r := render.New(os.Stdout)

	e := engine.StartGame(first, human, bot, engine.WithObserver(draw(r)))
	return finish(r, e)
}

func watch(iterations int, seed uint64) error {
	players := []string{"engine (yellow)", "engine (red)"}
	agents := []agent.Agent{
		agent.NewEvaluationAgent(searcher.NewMCTS(searcher.WithIterations(iterations), searcher.WithSeed(seed))),
		agent.NewEvaluationAgent(searcher.NewMCTS(searcher.WithIterations(iterations), searcher.WithSeed(seed+1))),
	}
	r := render.New(os.Stdout)

	e := engine.LocalEngine(players, agents, engine.WithObserver(draw(r)))
	return finish(r, e)
}

func experiment(name, out string, games, iterations int, seed uint64) error {
	var summary experiments.Summary
	var err error
	switch name {
	case "baseline":
		summary, err = experiments.RunBaseline(out, games, iterations, seed)
	case "budget":
		summary, err = experiments.RunBudgetExperiment(out, games, seed)
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}
	if err != nil {
		return err
	}

	log.Info().
		Int("games", summary.Games).
		Interface("wins", summary.Wins).
		Int("draws", summary.Draws).
		Str("dir", summary.Dir).
		Msgf("%s experiment done", name)
	return nil
}

func draw(r *render.Renderer) engine.Observer {
	return func(turn int, state game.State) {
		fmt.Println()
		if err := r.Draw(state); err != nil {
			log.Error().Err(err).Int("turn", turn).Msg("failed to draw board")
		}
	}
}

func finish(r *render.Renderer, e *engine.Engine) error {
	gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}
	return r.Outcome(gameMetric.Status, gameMetric.Winner)
}
