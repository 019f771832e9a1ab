package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
	"math"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that samples its move from
// the root visit counts instead of always taking the best one.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a trainingAgent) FindMove(state game.State) (game.State, metrics.SearchMetric, error) {
	best, ok, metric := a.mcts.Simulate(state)
	if !ok {
		return game.State{}, metric, ErrNoMove
	}

	children := state.LegalMoves()
	visits := make([]float64, len(children))
	total := 0.0
	for i, child := range children {
		n, _, _ := a.mcts.Stats(child)
		visits[i] = float64(n)
		total += visits[i]
	}
	if total == 0 { // Nothing searched, keep the engine's pick
		return best, metric, nil
	}

	policy := adjustTemperature(visits, a.temperature)
	return children[sample(policy, a.rng.Float64())], metric, nil
}

func adjustTemperature(visits []float64, temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(visits))
	for i, visit := range visits {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[i] = prob
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(policy []float64, sampled float64) int {
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // Fallback in case of rounding errors
}
