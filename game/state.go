package game

import (
	"fmt"
	"strings"
)

// State is an immutable board position together with the player to move.
// It is a comparable value: two states are equal iff every cell and the
// mover match, so a State can be used directly as a map key. Every method
// takes a value receiver and returns a new value, nothing ever mutates a
// State after it has been built.
type State struct {
	cells [Rows][Columns]Piece // Row 0 is the top of the board
	mover Piece
}

// direction is a (row, column) step used to walk a run of cells.
type direction struct {
	dr, dc int
}

// Runs ending at a cell towards the left, up-left, up and up-right. Scanning
// every cell in these four directions sees each possible run exactly once,
// the mirrored directions are covered from the run's other endpoint.
var directions = [...]direction{
	{dr: 0, dc: -1},
	{dr: -1, dc: -1},
	{dr: -1, dc: 0},
	{dr: -1, dc: 1},
}

// NewState returns an empty board with first to move.
func NewState(first Piece) State {
	if first != Yellow && first != Red {
		panic(fmt.Sprintf("invalid first mover %v", first))
	}
	return State{mover: first}
}

// FromRows builds a position from printed rows, top row first, using '.' for
// empty cells, 'Y' for yellow and 'R' for red. Pieces must rest on the bottom
// row or on another piece.
func FromRows(rows []string, mover Piece) (State, error) {
	if mover != Yellow && mover != Red {
		return State{}, fmt.Errorf("mover %v: %w", mover, ErrInvalidBoard)
	}
	if len(rows) != Rows {
		return State{}, fmt.Errorf("got %d rows, want %d: %w", len(rows), Rows, ErrInvalidBoard)
	}

	s := State{mover: mover}
	for r, line := range rows {
		if len(line) != Columns {
			return State{}, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(line), Columns, ErrInvalidBoard)
		}
		for c := 0; c < Columns; c++ {
			switch line[c] {
			case '.':
				s.cells[r][c] = Empty
			case 'Y':
				s.cells[r][c] = Yellow
			case 'R':
				s.cells[r][c] = Red
			default:
				return State{}, fmt.Errorf("row %d column %d: unknown symbol %q: %w", r, c, line[c], ErrInvalidBoard)
			}
		}
	}
	for r := 0; r < Rows-1; r++ {
		for c := 0; c < Columns; c++ {
			if s.cells[r][c] != Empty && s.cells[r+1][c] == Empty {
				return State{}, fmt.Errorf("row %d column %d: piece floats above an empty cell: %w", r, c, ErrInvalidBoard)
			}
		}
	}
	return s, nil
}

func (s State) Mover() Piece {
	return s.mover
}

// At returns the piece at the given cell, row 0 being the top row.
func (s State) At(row, col int) Piece {
	return s.cells[row][col]
}

// Playable reports whether a piece can be dropped into col.
func (s State) Playable(col int) bool {
	return col >= 0 && col < Columns && s.cells[0][col] == Empty
}

// Drop plays the mover's piece into col, landing in the lowest empty row.
func (s State) Drop(col int) (State, error) {
	if col < 0 || col >= Columns {
		return State{}, fmt.Errorf("column %d: %w", col, ErrColumnOutOfRange)
	}
	if s.cells[0][col] != Empty {
		return State{}, fmt.Errorf("column %d: %w", col, ErrColumnFull)
	}
	return s.play(col), nil
}

// play assumes col is playable. The cell array is copied with the value.
func (s State) play(col int) State {
	next := s
	for row := Rows - 1; row >= 0; row-- {
		if next.cells[row][col] == Empty {
			next.cells[row][col] = s.mover
			break
		}
	}
	next.mover = s.mover.Opponent()
	return next
}

// LegalMoves returns the successor of every playable column, in ascending
// column order. Full columns are skipped, a full board has no successors.
func (s State) LegalMoves() []State {
	moves := make([]State, 0, Columns)
	for col := 0; col < Columns; col++ {
		if s.cells[0][col] == Empty {
			moves = append(moves, s.play(col))
		}
	}
	return moves
}

// Column returns the column whose drop turns s into next.
func (s State) Column(next State) (int, bool) {
	for col := 0; col < Columns; col++ {
		if s.cells[0][col] == Empty && s.play(col) == next {
			return col, true
		}
	}
	return -1, false
}

// Status reports whether the game is over and who won. The first complete
// run found in row-major order decides the winner.
func (s State) Status() Status {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			piece := s.cells[row][col]
			if piece == Empty {
				continue
			}
			for _, d := range directions {
				if s.runFrom(row, col, d, piece) {
					if piece == Yellow {
						return YellowWon
					}
					return RedWon
				}
			}
		}
	}

	if s.Occupied() == Rows*Columns {
		return Draw
	}
	return Ongoing
}

func (s State) runFrom(row, col int, d direction, piece Piece) bool {
	endRow := row + d.dr*(Connect-1)
	endCol := col + d.dc*(Connect-1)
	if endRow < 0 || endRow >= Rows || endCol < 0 || endCol >= Columns {
		return false
	}
	for k := 1; k < Connect; k++ {
		if s.cells[row+d.dr*k][col+d.dc*k] != piece {
			return false
		}
	}
	return true
}

// Occupied counts the non-empty cells.
func (s State) Occupied() int {
	n := 0
	for row := range s.cells {
		for _, piece := range s.cells[row] {
			if piece != Empty {
				n++
			}
		}
	}
	return n
}

func (s State) Winner() Piece {
	return s.Status().Winner()
}

// Rows returns the board as printed rows, the inverse of FromRows.
func (s State) Rows() []string {
	rows := make([]string, Rows)
	line := make([]byte, Columns)
	for r := range s.cells {
		for c, piece := range s.cells[r] {
			line[c] = piece.Symbol()
		}
		rows[r] = string(line)
	}
	return rows
}

func (s State) String() string {
	var b strings.Builder
	for _, row := range s.Rows() {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "to move: %v", s.mover)
	return b.String()
}
