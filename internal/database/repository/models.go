package repository

import "time"

// Snapshot represents a stored key-value snapshot row.
type Snapshot struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// FinishedGame represents an archived game.
type FinishedGame struct {
	ID         string
	Players    []string
	Scores     [][]int
	FinishedAt time.Time
}

// Rounds is the number of rounds recorded for the game.
func (g FinishedGame) Rounds() int { return len(g.Scores) }
