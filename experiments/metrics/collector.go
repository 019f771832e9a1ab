package metrics

import (
	"connect4/game"
	"time"
)

type SearchMetric struct {
	Iterations int
	Duration   time.Duration
	Episodes   int // Completed select/rollout/backup cycles
	Playouts   int // Total random moves played during rollouts
	MaxDepth   int // Longest selection path, root included
	TreeSize   int // Distinct states holding statistics
}

type MoveMetric struct {
	Step   int
	Player string
	Column int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "" for a draw or an unfinished game
	Status         game.Status
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(iterations int)
	AddEpisode(depth int)
	AddPlayout(moves int)
	SetTreeSize(size int)
	Complete() SearchMetric
}

type collector struct {
	iterations int
	startTime  time.Time
	episodes   int
	playouts   int
	maxDepth   int
	treeSize   int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(iterations int) {
	*m = collector{iterations: iterations, startTime: time.Now()}
}

func (m *collector) AddEpisode(depth int) {
	m.episodes++
	m.maxDepth = max(m.maxDepth, depth)
}

func (m *collector) AddPlayout(moves int) {
	m.playouts += moves
}

func (m *collector) SetTreeSize(size int) {
	m.treeSize = size
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Iterations: m.iterations,
		Duration:   time.Since(m.startTime),
		Episodes:   m.episodes,
		Playouts:   m.playouts,
		MaxDepth:   m.maxDepth,
		TreeSize:   m.treeSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations int)   {}
func (m *dummyCollector) AddEpisode(depth int)   {}
func (m *dummyCollector) AddPlayout(moves int)   {}
func (m *dummyCollector) SetTreeSize(size int)   {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
