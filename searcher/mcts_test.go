package searcher

import (
	"connect4/game"
	"testing"

	"github.com/stretchr/testify/require"
)

/**
Tests the sequential MCTS over a value keyed stats store
- selection:
	- unvisited leaf by incompleteness -> stop without expanding
	- visited leaf by incompleteness -> register children, take the first
	- fully registered node -> first unvisited child, else max (yellow) / min (red) bound
- rollout: terminal state -> same outcome, no moves
- backup: every path state gets one visit and the unmodified reward
- move choice: unvisited child first, else best mean for the mover, ties to the lowest column
*/

func mustRows(t *testing.T, mover game.Piece, rows ...string) game.State {
	t.Helper()
	s, err := game.FromRows(rows, mover)
	require.NoError(t, err)
	return s
}

func mustDrop(t *testing.T, s game.State, col int) game.State {
	t.Helper()
	next, err := s.Drop(col)
	require.NoError(t, err)
	return next
}

func snapshot(s store) map[game.State]stats {
	copied := make(map[game.State]stats, len(s))
	for state, entry := range s {
		copied[state] = *entry
	}
	return copied
}

func TestSearchTerminalRoot(t *testing.T) {
	root := mustRows(t, game.Red,
		".......",
		".......",
		".......",
		".......",
		"RRR....",
		"YYYY...",
	)

	next, ok := NewMCTS(WithSeed(1)).Search(root)

	require.False(t, ok, "Terminal root should have no move")
	require.Equal(t, game.State{}, next, "No state should be returned")
}

func TestSearchZeroIterations(t *testing.T) {
	root := game.NewState(game.Yellow)
	m := NewMCTS(WithIterations(0), WithSeed(1))

	next, ok := m.Search(root)

	require.True(t, ok, "Ongoing root should produce a move")
	require.Equal(t, mustDrop(t, root, 0), next, "First unvisited child should be chosen")
	require.Len(t, m.stats, 1+game.Columns, "Root and its children should be registered")
	for state := range m.stats {
		visits, rewards, ok := m.Stats(state)
		require.True(t, ok)
		require.Zero(t, visits, "Registered states should start unvisited")
		require.Zero(t, rewards, "Registered states should start without rewards")
	}
}

func TestSearchPackageFunction(t *testing.T) {
	root := game.NewState(game.Yellow)

	next, ok := Search(root, 0, nil)

	require.True(t, ok)
	require.Equal(t, mustDrop(t, root, 0), next, "First unvisited child should be chosen")
}

func TestNewMCTSPanicsOnNegativeIterations(t *testing.T) {
	require.Panics(t, func() {
		NewMCTS(WithIterations(-1))
	}, "Negative budget is a precondition violation")
}

func TestIterate(t *testing.T) {
	t.Run("one iteration updates exactly the path", func(t *testing.T) {
		root := game.NewState(game.Yellow)
		m := NewMCTS(WithIterations(0), WithSeed(7))
		_, ok := m.Search(root)
		require.True(t, ok)
		before := snapshot(m.stats)

		path, reward := m.iterate(root)

		require.Equal(t, []game.State{root, mustDrop(t, root, 0)}, path,
			"First iteration should descend into the first unvisited child")
		require.Contains(t, []float64{Win, Loss, Tie}, reward, "Reward should be a rollout outcome")
		onPath := map[game.State]bool{}
		for _, state := range path {
			onPath[state] = true
		}
		for state, entry := range m.stats {
			old := before[state]
			if onPath[state] {
				require.Equal(t, old.visits+1, entry.visits, "Path state should gain one visit")
				require.Equal(t, old.rewards+reward, entry.rewards, "Path state should gain the rollout reward")
			} else {
				require.Equal(t, old, *entry, "States off the path should not change")
			}
		}
		require.Equal(t, 1, m.stats[root].visits, "Root should gain exactly one visit")
	})

	t.Run("children are added on the second visit", func(t *testing.T) {
		root := game.NewState(game.Yellow)
		m := NewMCTS(WithIterations(0), WithSeed(7))
		_, ok := m.Search(root)
		require.True(t, ok)

		// Each child of the root is visited once before any of them expands
		for col := 0; col < game.Columns; col++ {
			path, _ := m.iterate(root)
			require.Equal(t, []game.State{root, mustDrop(t, root, col)}, path,
				"Unvisited children should be tried in column order")
		}
		require.Len(t, m.stats, 1+game.Columns, "No grandchild should be registered yet")

		path, _ := m.iterate(root)

		require.Len(t, path, 3, "Selected child should expand into its first child")
		require.Equal(t, mustDrop(t, path[1], 0), path[2], "Expansion should take the first column")
		require.Len(t, m.stats, 1+2*game.Columns, "Selected child should register all its children")
	})
}

func TestSelectThenExpand(t *testing.T) {
	t.Run("stopping on an unvisited leaf", func(t *testing.T) {
		root := game.NewState(game.Yellow)
		m := NewMCTS(WithSeed(1))
		m.stats = newStore()
		m.stats.register(root)

		path := m.selectThenExpand(root)

		require.Equal(t, []game.State{root}, path, "Unvisited leaf should be the rollout point")
		require.Len(t, m.stats, 1, "No child should be registered")
	})

	t.Run("expanding a visited leaf", func(t *testing.T) {
		root := game.NewState(game.Yellow)
		m := NewMCTS(WithSeed(1))
		m.stats = newStore()
		m.stats.register(root).visits = 1

		path := m.selectThenExpand(root)

		require.Equal(t, []game.State{root, mustDrop(t, root, 0)}, path, "First child should be appended")
		require.Len(t, m.stats, 1+game.Columns, "All children should be registered")
	})

	t.Run("stopping on a terminal node", func(t *testing.T) {
		root := mustRows(t, game.Red,
			".......",
			".......",
			".......",
			".......",
			"RRR....",
			"YYYY...",
		)
		m := NewMCTS(WithSeed(1))
		m.stats = newStore()
		m.stats.register(root).visits = 3

		path := m.selectThenExpand(root)

		require.Equal(t, []game.State{root}, path, "Terminal node should be the leaf")
	})
}

func TestPickChild(t *testing.T) {
	setup := func(mover game.Piece) (*MCTS, game.State, []game.State) {
		root := game.NewState(mover)
		m := NewMCTS(WithSeed(1))
		m.stats = newStore()
		m.stats.register(root).visits = 5 * game.Columns
		children := root.LegalMoves()
		for _, child := range children {
			*m.stats.register(child) = stats{visits: 5, rewards: 0}
		}
		m.stats[children[2]].rewards = 5
		m.stats[children[4]].rewards = -5
		return m, root, children
	}

	t.Run("yellow maximizes the upper bound", func(t *testing.T) {
		m, root, children := setup(game.Yellow)

		child, unvisited := m.pickChild(root, children)

		require.False(t, unvisited)
		require.Equal(t, children[2], child, "Yellow should pick the highest bound")
	})

	t.Run("red minimizes the lower bound", func(t *testing.T) {
		m, root, children := setup(game.Red)

		child, unvisited := m.pickChild(root, children)

		require.False(t, unvisited)
		require.Equal(t, children[4], child, "Red should pick the lowest bound")
	})

	t.Run("ties resolve to the lowest column", func(t *testing.T) {
		m, root, children := setup(game.Yellow)
		m.stats[children[4]].rewards = 5

		child, _ := m.pickChild(root, children)

		require.Equal(t, children[2], child, "Equal bounds should keep the first child")
	})

	t.Run("unvisited children come first", func(t *testing.T) {
		m, root, children := setup(game.Yellow)
		m.stats[children[5]].visits = 0

		child, unvisited := m.pickChild(root, children)

		require.True(t, unvisited)
		require.Equal(t, children[5], child, "Unvisited child should be chosen unconditionally")
	})
}

func TestBestChild(t *testing.T) {
	setup := func(mover game.Piece) (*MCTS, game.State, []game.State) {
		root := game.NewState(mover)
		m := NewMCTS(WithSeed(1))
		m.stats = newStore()
		m.stats.register(root)
		children := root.LegalMoves()
		for _, child := range children {
			*m.stats.register(child) = stats{visits: 2, rewards: 0}
		}
		m.stats[children[1]].rewards = 2
		m.stats[children[3]] = &stats{visits: 4, rewards: 4}
		m.stats[children[5]].rewards = -2
		m.stats[children[6]] = &stats{visits: 8, rewards: -8}
		return m, root, children
	}

	t.Run("yellow takes the highest mean, first on ties", func(t *testing.T) {
		m, root, children := setup(game.Yellow)

		require.Equal(t, children[1], m.bestChild(root), "Yellow should take the first max mean")
	})

	t.Run("red takes the lowest mean, first on ties", func(t *testing.T) {
		m, root, children := setup(game.Red)

		require.Equal(t, children[5], m.bestChild(root), "Red should take the first min mean")
	})

	t.Run("unvisited child is returned immediately", func(t *testing.T) {
		m, root, children := setup(game.Yellow)
		m.stats[children[4]].visits = 0

		require.Equal(t, children[4], m.bestChild(root), "Unvisited child should be returned")
	})
}

func TestRollout(t *testing.T) {
	t.Run("terminal state returns its outcome", func(t *testing.T) {
		s := mustRows(t, game.Red,
			".......",
			".......",
			".......",
			".......",
			"RRR....",
			"YYYY...",
		)

		status, moves := rollout(s, NewMCTS(WithSeed(1)).rng)

		require.Equal(t, game.YellowWon, status)
		require.Zero(t, moves, "No move should be played from a terminal state")
	})

	t.Run("plays to the end of the game", func(t *testing.T) {
		s := game.NewState(game.Yellow)

		status, moves := rollout(s, NewMCTS(WithSeed(3)).rng)

		require.True(t, status.Terminal(), "Rollout should end on a terminal state")
		require.GreaterOrEqual(t, moves, 2*game.Connect-1, "A game needs at least seven drops")
		require.LessOrEqual(t, moves, game.Rows*game.Columns)
	})
}

func TestStoreTranspositions(t *testing.T) {
	root := game.NewState(game.Yellow)
	a := mustDrop(t, mustDrop(t, mustDrop(t, root, 0), 1), 2)
	b := mustDrop(t, mustDrop(t, mustDrop(t, root, 2), 1), 0)
	s := newStore()

	first := s.register(a)
	first.visits = 3
	second := s.register(b)

	require.Same(t, first, second, "Transposed positions should share one entry")
	require.Equal(t, 3, second.visits, "Registering again should keep the statistics")
	require.True(t, s.expanded([]game.State{b}))
}

func TestSearchDeterminism(t *testing.T) {
	root := mustDrop(t, mustDrop(t, game.NewState(game.Yellow), 3), 3)

	first, ok1 := NewMCTS(WithIterations(400), WithSeed(42)).Search(root)
	second, ok2 := NewMCTS(WithIterations(400), WithSeed(42)).Search(root)

	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, first, second, "Same seed and budget should pick the same move")
}

func TestSearchMetrics(t *testing.T) {
	root := game.NewState(game.Yellow)
	m := NewMCTS(WithIterations(50), WithSeed(5), WithMetrics())

	_, ok, metric := m.Simulate(root)

	require.True(t, ok)
	require.Equal(t, 50, metric.Iterations)
	require.Equal(t, 50, metric.Episodes, "Every iteration should be counted")
	require.Equal(t, len(m.stats), metric.TreeSize, "Tree size should match the store")
	require.GreaterOrEqual(t, metric.MaxDepth, 3, "Some child should have expanded")
	require.Positive(t, metric.Playouts)
}

func TestSearchFindsImmediateWin(t *testing.T) {
	t.Run("yellow completes a row", func(t *testing.T) {
		root := mustRows(t, game.Yellow,
			".......",
			".......",
			".......",
			".......",
			"RRR....",
			"YYY....",
		)
		win := mustDrop(t, root, 3)

		found := 0
		for seed := uint64(1); seed <= 10; seed++ {
			next, ok := NewMCTS(WithIterations(1000), WithSeed(seed)).Search(root)
			require.True(t, ok)
			if next == win {
				found++
			}
		}

		require.GreaterOrEqual(t, found, 9, "Winning column should be chosen in most trials")
	})

	t.Run("red completes a row", func(t *testing.T) {
		root := mustRows(t, game.Red,
			".......",
			".......",
			".......",
			".......",
			"YY.....",
			"RRR.YY.",
		)
		win := mustDrop(t, root, 3)

		found := 0
		for seed := uint64(1); seed <= 10; seed++ {
			next, ok := NewMCTS(WithIterations(1000), WithSeed(seed)).Search(root)
			require.True(t, ok)
			if next == win {
				found++
			}
		}

		require.GreaterOrEqual(t, found, 9, "Winning column should be chosen in most trials")
	})
}
