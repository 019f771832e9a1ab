package agent

import (
	"bufio"
	"connect4/experiments/metrics"
	"connect4/game"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type humanAgent struct {
	in  *bufio.Reader
	out io.Writer
}

// NewHumanAgent returns an agent that reads one column per line from in.
// Bad input is reported on out and asked for again. A *bufio.Reader is used
// as is, so callers can share it with other prompts.
func NewHumanAgent(in io.Reader, out io.Writer) Agent {
	return humanAgent{in: bufio.NewReader(in), out: out}
}

func (a humanAgent) FindMove(state game.State) (game.State, metrics.SearchMetric, error) {
	if state.Status().Terminal() {
		return game.State{}, metrics.SearchMetric{}, ErrNoMove
	}

	for {
		fmt.Fprintf(a.out, "%v to move, pick a column (0-%d): ", state.Mover(), game.Columns-1)
		line, err := a.in.ReadString('\n')
		if err != nil && line == "" {
			return game.State{}, metrics.SearchMetric{}, fmt.Errorf("failed to read column: %w", err)
		}

		text := strings.TrimSpace(line)
		col, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintf(a.out, "invalid move: %q is not a column\n", text)
			continue
		}

		next, err := state.Drop(col)
		if err != nil {
			fmt.Fprintf(a.out, "invalid move: %v\n", err)
			continue
		}
		return next, metrics.SearchMetric{}, nil
	}
}
