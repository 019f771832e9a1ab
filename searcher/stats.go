package searcher

import "connect4/game"

type stats struct {
	visits  int
	rewards float64
}

func (s *stats) mean() float64 {
	return s.rewards / float64(s.visits)
}

// store holds the statistics of one search. States are compared by value,
// so a position reached through different move orders shares one entry.
type store map[game.State]*stats

func newStore() store {
	return make(store)
}

// register adds a zeroed entry for state unless it already has one.
func (s store) register(state game.State) *stats {
	entry, ok := s[state]
	if !ok {
		entry = &stats{}
		s[state] = entry
	}
	return entry
}

// expanded reports whether every child already has an entry.
func (s store) expanded(children []game.State) bool {
	for _, child := range children {
		if _, ok := s[child]; !ok {
			return false
		}
	}
	return true
}

func (s store) backup(path []game.State, reward float64) {
	for _, state := range path {
		entry := s[state]
		entry.visits++
		entry.rewards += reward
	}
}
