// meta/meta.go
package meta

// Iterations is the default search budget per engine move.
const Iterations = 1000

// MAX_TURNS caps a game loop; a 6x7 board is full after 42 drops.
const MAX_TURNS = 42

// GAMES is the default number of games per experiment matchup.
const GAMES = 20

// LOG_LEVEL is the default zerolog level name for the command line.
const LOG_LEVEL = "info"
