package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that always plays the move MCTS picks.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State) (game.State, metrics.SearchMetric, error) {
	next, ok, metric := a.mcts.Simulate(state)
	if !ok {
		return game.State{}, metric, ErrNoMove
	}
	return next, metric, nil
}
