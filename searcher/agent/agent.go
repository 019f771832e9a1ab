package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"errors"
)

// ErrNoMove is returned when an agent is asked to move in a finished game.
var ErrNoMove = errors.New("game is over - no moves allowed")

type Agent interface {
	// FindMove returns the state to move to and performance metrics (if collected) from the search
	FindMove(state game.State) (game.State, metrics.SearchMetric, error)
}
