package searcher

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS picks moves by sampling a fresh game tree on every call. Statistics
// are scored from Yellow's side: Yellow maximizes and Red minimizes at every
// level of the tree.
type MCTS struct {
	iterations int
	rng        *rand.Rand
	stats      store // Statistics of the most recent search
	metrics    metrics.Collector
}

// WithIterations sets the number of select/rollout/backup cycles per search.
// Zero is allowed and makes the search return the first child.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

// WithSeed makes rollouts reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSource shares an existing random source with the search.
func WithSource(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations: meta.Iterations,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations < 0 {
		panic("Search iterations cannot be negative")
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// Search runs the configured number of iterations from root and returns
// the state to move to. It returns false when root is already over.
func Search(root game.State, iterations int, rng *rand.Rand) (game.State, bool) {
	return NewMCTS(WithIterations(iterations), WithSource(rng)).Search(root)
}

func (m *MCTS) Search(root game.State) (game.State, bool) {
	next, ok, _ := m.Simulate(root)
	return next, ok
}

// Simulate is Search plus the metrics collected along the way.
func (m *MCTS) Simulate(root game.State) (game.State, bool, metrics.SearchMetric) {
	if root.Status().Terminal() {
		return game.State{}, false, metrics.SearchMetric{}
	}

	m.stats = newStore()
	m.stats.register(root)
	for _, child := range root.LegalMoves() {
		m.stats.register(child)
	}

	m.metrics.Start(m.iterations)
	for i := 0; i < m.iterations; i++ {
		path, _ := m.iterate(root)
		m.metrics.AddEpisode(len(path))
	}
	m.metrics.SetTreeSize(len(m.stats))
	metric := m.metrics.Complete()

	next := m.bestChild(root)
	if col, ok := root.Column(next); ok {
		entry := m.stats[next]
		log.Debug().
			Int("iterations", m.iterations).
			Int("tree", len(m.stats)).
			Int("column", col).
			Int("visits", entry.visits).
			Float64("rewards", entry.rewards).
			Msg("search complete")
	}
	return next, true, metric
}

// Stats returns the visits and cumulative reward recorded for state by the
// most recent search.
func (m *MCTS) Stats(state game.State) (visits int, rewards float64, ok bool) {
	entry, ok := m.stats[state]
	if !ok {
		return 0, 0, false
	}
	return entry.visits, entry.rewards, true
}

// iterate runs one select, rollout and backup cycle and returns the path it
// updated together with the rollout reward.
func (m *MCTS) iterate(root game.State) ([]game.State, float64) {
	path := m.selectThenExpand(root)
	status, moves := rollout(path[len(path)-1], m.rng)
	m.metrics.AddPlayout(moves)
	reward := status.Reward()
	m.stats.backup(path, reward)
	return path, reward
}

func (m *MCTS) selectThenExpand(root game.State) []game.State {
	path := []game.State{}
	node := root
	for {
		path = append(path, node)
		if node.Status().Terminal() {
			return path
		}

		children := node.LegalMoves()
		if !m.stats.expanded(children) {
			// Children are only added on a node's second visit
			if m.stats[node].visits == 0 {
				return path
			}
			for _, child := range children {
				m.stats.register(child)
			}
			return append(path, children[0])
		}

		child, unvisited := m.pickChild(node, children)
		if unvisited {
			return append(path, child)
		}
		node = child
	}
}

// pickChild returns the first unvisited child if there is one, otherwise the
// child with the best UCT bound for the node's mover.
func (m *MCTS) pickChild(node game.State, children []game.State) (game.State, bool) {
	for _, child := range children {
		if m.stats[child].visits == 0 {
			return child, true
		}
	}

	mover := node.Mover()
	policy := newUCT(CSquared, m.stats[node].visits)
	bestIndex := 0
	bestScore := 0.0
	for i, child := range children {
		entry := m.stats[child]
		score := policy.evaluate(entry.rewards, entry.visits, sign(mover))
		if i == 0 || better(mover, score, bestScore) {
			bestIndex = i
			bestScore = score
		}
	}
	return children[bestIndex], false
}

// bestChild picks the move to play once the budget is spent: an unvisited
// child right away, otherwise the best mean reward for root's mover.
func (m *MCTS) bestChild(root game.State) game.State {
	children := root.LegalMoves()
	mover := root.Mover()

	bestIndex := -1
	bestMean := 0.0
	for i, child := range children {
		entry := m.stats[child]
		if entry.visits == 0 {
			return child
		}
		if mean := entry.mean(); bestIndex < 0 || better(mover, mean, bestMean) {
			bestIndex = i
			bestMean = mean
		}
	}
	return children[bestIndex]
}

// rollout plays uniformly random moves until the game ends and reports the
// outcome and the number of moves played.
func rollout(state game.State, rng *rand.Rand) (game.Status, int) {
	depth := 0
	status := state.Status()
	for !status.Terminal() {
		moves := state.LegalMoves()
		state = moves[rng.Intn(len(moves))] // Random rollout policy
		status = state.Status()
		depth++
	}
	return status, depth
}
