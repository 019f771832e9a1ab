package game

// Error is a constant error value returned by board operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrColumnOutOfRange Error = "column out of range"
	ErrColumnFull       Error = "column is full"
	ErrInvalidBoard     Error = "invalid board"
)
