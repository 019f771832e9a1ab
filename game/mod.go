package game

// Board dimensions and the run length that wins the game.
const (
	Rows    = 6
	Columns = 7
	Connect = 4
)

// Piece is the content of a single cell, and also identifies the player to move.
type Piece int8

const (
	Empty Piece = iota
	Yellow      // Moves first, rewards are scored from Yellow's side
	Red
)

func (p Piece) String() string {
	switch p {
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	default:
		return "empty"
	}
}

// Symbol is the single character used when a board is printed or parsed.
func (p Piece) Symbol() byte {
	switch p {
	case Yellow:
		return 'Y'
	case Red:
		return 'R'
	default:
		return '.'
	}
}

// Opponent returns the other player. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case Yellow:
		return Red
	case Red:
		return Yellow
	default:
		return Empty
	}
}

type Status int

const (
	Ongoing Status = iota
	YellowWon
	RedWon
	Draw
)

func (s Status) String() string {
	switch s {
	case YellowWon:
		return "yellow won"
	case RedWon:
		return "red won"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

func (s Status) Terminal() bool {
	return s != Ongoing
}

// Reward maps a terminal outcome to a score in Yellow's frame: +1 for a
// Yellow win, -1 for a Red win and 0 otherwise. The sign never depends on
// whose turn it was.
func (s Status) Reward() float64 {
	switch s {
	case YellowWon:
		return 1
	case RedWon:
		return -1
	default:
		return 0
	}
}

// Winner returns the piece that won, or Empty for draws and ongoing games.
func (s Status) Winner() Piece {
	switch s {
	case YellowWon:
		return Yellow
	case RedWon:
		return Red
	default:
		return Empty
	}
}
