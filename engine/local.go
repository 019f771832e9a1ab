package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"connect4/searcher/agent"
	"connect4/utils"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

var _ Runner = (*Engine)(nil)

type Engine struct {
	State    game.State
	players  []string
	agents   []agent.Agent
	maxTurns int
	observer Observer
}

// WithState starts the game from a given position instead of an empty board.
func WithState(state game.State) Option {
	return func(e *Engine) {
		e.State = state
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// StartGame sets up a human against the engine. Whoever moves first plays
// yellow.
func StartGame(first FirstMover, human, bot agent.Agent, options ...Option) *Engine {
	if first == EngineFirst {
		return LocalEngine([]string{"engine", "human"}, []agent.Agent{bot, human}, options...)
	}
	return LocalEngine([]string{"human", "engine"}, []agent.Agent{human, bot}, options...)
}

// LocalEngine runs a game between two agents; the first one plays yellow.
func LocalEngine(players []string, agents []agent.Agent, options ...Option) *Engine {
	if len(players) != len(agents) {
		panic("number of players does not match number of agents")
	}
	if len(players) != 2 {
		panic("need exactly two players")
	}

	e := &Engine{
		State:    game.NewState(game.Yellow),
		players:  players,
		agents:   agents,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Player returns the name of the player owning piece.
func (e *Engine) Player(piece game.Piece) string {
	switch piece {
	case game.Yellow:
		return e.players[0]
	case game.Red:
		return e.players[1]
	default:
		return ""
	}
}

func (e *Engine) index(piece game.Piece) int {
	if piece == game.Red {
		return 1
	}
	return 0
}

// Run executes the game loop until the game is over.
func (e *Engine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Player(e.State.Mover()),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", gameMetric.StartingPlayer)
	e.notify(0, e.State)

	turn := 1
	for !e.State.Status().Terminal() && turn <= e.maxTurns {
		mover := e.State.Mover()
		player := e.Player(mover)

		next, searchMetric, err := e.agents[e.index(mover)].FindMove(e.State)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("turn %d (%s): %w", turn, player, err)
		}

		legal := e.State.LegalMoves()
		if utils.FindIndex(legal, next) < 0 {
			log.Warn().Msgf("%s returned an illegal move, forcing the first legal move", player)
			next = legal[0]
		}

		col, _ := e.State.Column(next)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			Column:       col,
			SearchMetric: searchMetric,
		})
		log.Debug().Int("turn", turn).Str("player", player).Int("column", col).Msg("move played")

		e.State = next
		e.notify(turn, e.State)
		turn++
	}

	status := e.State.Status()
	gameMetric.Status = status
	gameMetric.Winner = e.Player(status.Winner())
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if status.Terminal() {
		log.Info().Msgf("game over after %d moves: %v", gameMetric.TotalMoves, status)
	} else {
		log.Info().Msgf("stopped after %d turns (no winner yet)", e.maxTurns)
	}
	return gameMetric, moveMetrics, nil
}

func (e *Engine) notify(turn int, state game.State) {
	if e.observer != nil {
		e.observer(turn, state)
	}
}
