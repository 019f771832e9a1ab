package engine

import (
	"bufio"
	"connect4/experiments/metrics"
	"connect4/game"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnknownFirstMover = errors.New("first mover must be human or engine")

// FirstMover is the single startup choice of an interactive game.
type FirstMover int

const (
	HumanFirst FirstMover = iota
	EngineFirst
)

func (f FirstMover) String() string {
	if f == EngineFirst {
		return "engine"
	}
	return "human"
}

// ParseFirstMover accepts "human" or "engine" (or their first letter), ignoring case.
func ParseFirstMover(text string) (FirstMover, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "human", "h":
		return HumanFirst, nil
	case "engine", "e":
		return EngineFirst, nil
	default:
		return HumanFirst, fmt.Errorf("%q: %w", text, ErrUnknownFirstMover)
	}
}

// AskFirstMover prompts on out until in yields a valid answer.
func AskFirstMover(in *bufio.Reader, out io.Writer) (FirstMover, error) {
	for {
		fmt.Fprint(out, "Who moves first, human or engine? ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return HumanFirst, fmt.Errorf("failed to read first mover: %w", err)
		}
		first, perr := ParseFirstMover(line)
		if perr == nil {
			return first, nil
		}
		fmt.Fprintln(out, perr)
	}
}

// Observer is told about the starting position (turn 0) and every state after a move.
type Observer func(turn int, state game.State)

type Runner interface {
	// Run plays until the game is over or a max number of turns is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
