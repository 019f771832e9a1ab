package experiments

import (
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/meta"
	"connect4/searcher"
	"connect4/searcher/agent"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Summary counts the games of an experiment by outcome.
type Summary struct {
	Dir   string      // Where the records were written
	Games int         // Games played
	Wins  map[int]int // AgentConfig.ID -> games won
	Draws int
}

// RunBaseline pits the search engine against the uniformly random baseline.
func RunBaseline(root string, games, iterations int, seed uint64) (Summary, error) {
	mcts := metrics.AgentConfig{ID: 1, Iterations: iterations, Seed: seed}
	random := metrics.AgentConfig{ID: 2, Random: true, Seed: seed + 1}
	configs := []metrics.AgentConfig{mcts, random}
	return runExperiment(root, "baseline", configs, [][]metrics.AgentConfig{{mcts, random}}, games)
}

// RunBudgetExperiment plays agents with growing iteration budgets against a
// baseline using the default budget.
func RunBudgetExperiment(root string, games int, seed uint64) (Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Iterations: meta.Iterations, Seed: seed}
	budgetConfigs := []metrics.AgentConfig{
		{ID: 1, Iterations: meta.Iterations / 10, Seed: seed + 1},
		{ID: 2, Iterations: meta.Iterations / 2, Seed: seed + 2},
		{ID: 3, Iterations: meta.Iterations, Seed: seed + 3}, // Baseline equivalent
		{ID: 4, Iterations: meta.Iterations * 2, Seed: seed + 4},
		{ID: 5, Iterations: meta.Iterations, Seed: seed + 5, Temperature: 1},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(root, "budget", append(budgetConfigs, baseline), matchUps, games)
}

func runExperiment(root, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, games int) (Summary, error) {
	summary := Summary{Wins: map[int]int{}}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < games; i++ {
			// Alternate colors so neither agent always moves first
			yellow, red := matchup[0], matchup[1]
			if i%2 == 1 {
				yellow, red = red, yellow
			}

			id := uuid.NewString()
			gameMetric, moveMetrics, err := runGame(yellow, red, uint64(i))
			if err != nil {
				return summary, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			summary.Games++
			switch gameMetric.Winner {
			case playerName(yellow):
				summary.Wins[yellow.ID]++
			case playerName(red):
				summary.Wins[red.ID]++
			default:
				summary.Draws++
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         id,
				Agent1:     yellow.ID,
				Agent2:     red.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       id,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d (%v)", mi+1, len(matchUps), i+1, gameMetric.Status)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.Dir = writer.Dir()

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return summary, fmt.Errorf("failed to store game records: %w", err)
	}
	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return summary, fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Str("dir", summary.Dir).Msg("stored experiment records")

	return summary, nil
}

// runGame plays one game; offset shifts both seeds so repeated games differ.
func runGame(yellow, red metrics.AgentConfig, offset uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	players := []string{playerName(yellow), playerName(red)}
	agents := []agent.Agent{createAgent(yellow, offset), createAgent(red, offset)}
	e := engine.LocalEngine(players, agents)
	return e.Run()
}

func playerName(config metrics.AgentConfig) string {
	return fmt.Sprintf("agent%d", config.ID)
}

func createAgent(config metrics.AgentConfig, offset uint64) agent.Agent {
	seed := config.Seed + offset
	if config.Random {
		return agent.NewRandomAgent(seed)
	}

	mcts := searcher.NewMCTS(
		searcher.WithIterations(config.Iterations),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	)
	if config.Temperature > 0 {
		return agent.NewTrainingAgent(mcts, config.Temperature, seed)
	}
	return agent.NewEvaluationAgent(mcts)
}
