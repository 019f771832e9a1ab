package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline that plays like a rollout.
func NewRandomAgent(seed uint64) Agent {
	return randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a randomAgent) FindMove(state game.State) (game.State, metrics.SearchMetric, error) {
	if state.Status().Terminal() {
		return game.State{}, metrics.SearchMetric{}, ErrNoMove
	}
	moves := state.LegalMoves()
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
