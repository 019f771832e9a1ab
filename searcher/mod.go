package searcher

import "connect4/game"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Rollout outcomes are scored from Yellow's side at every depth
const Win = 1.0   // Yellow wins
const Loss = -Win // Red wins
const Tie = 0.0

// sign of the exploration term for the player choosing among children:
// Yellow maximizes an optimistic bound, Red minimizes a pessimistic one.
func sign(mover game.Piece) float64 {
	if mover == game.Red {
		return -1
	}
	return 1
}

// better reports whether value beats best for the player choosing. Ties keep
// the earlier child, so equal values resolve to the lowest column.
func better(mover game.Piece, value, best float64) bool {
	if mover == game.Red {
		return value < best
	}
	return value > best
}
