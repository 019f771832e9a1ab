package render

import (
	"connect4/game"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Piece colors, ANSI palette indices so they survive 16 color terminals.
const (
	yellowColor = "11"
	redColor    = "9"
	frameColor  = "12"
)

// Renderer prints boards as a grid of '.', 'Y' and 'R', coloring pieces when
// the output supports it.
type Renderer struct {
	out *termenv.Output
}

func New(w io.Writer, options ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, options...)}
}

func (r *Renderer) piece(p game.Piece) string {
	symbol := string(p.Symbol())
	switch p {
	case game.Yellow:
		return r.out.String(symbol).Foreground(r.out.Color(yellowColor)).Bold().String()
	case game.Red:
		return r.out.String(symbol).Foreground(r.out.Color(redColor)).Bold().String()
	default:
		return r.out.String(symbol).Faint().String()
	}
}

// Draw prints the board with column numbers underneath and the mover.
func (r *Renderer) Draw(state game.State) error {
	var b strings.Builder
	edge := r.out.String("|").Foreground(r.out.Color(frameColor)).String()
	for row := 0; row < game.Rows; row++ {
		b.WriteString(edge)
		for col := 0; col < game.Columns; col++ {
			b.WriteByte(' ')
			b.WriteString(r.piece(state.At(row, col)))
		}
		b.WriteByte(' ')
		b.WriteString(edge)
		b.WriteByte('\n')
	}
	b.WriteByte(' ')
	for col := 0; col < game.Columns; col++ {
		fmt.Fprintf(&b, " %d", col)
	}
	b.WriteByte('\n')
	if !state.Status().Terminal() {
		fmt.Fprintf(&b, "%s to move\n", state.Mover())
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

// Outcome prints the result of a game, naming the winning player.
func (r *Renderer) Outcome(status game.Status, winner string) error {
	var text string
	switch {
	case status == game.Draw:
		text = "Draw!"
	case status.Terminal():
		text = fmt.Sprintf("%s won! (%v)", winner, status.Winner())
	default:
		text = "Game stopped before the end."
	}
	_, err := fmt.Fprintln(r.out, r.out.String(text).Bold().String())
	return err
}
