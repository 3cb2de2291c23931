package score

import (
	"time"

	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/input"
)

// Store keeps the input of played sessions so they can be scored again.
type Store interface {
	// Save the input of this performance
	Save(chart *game.Chart, events []input.Event, rate float64, result Result) error

	// Load up previous sessions for the chart, oldest first
	Load(chart *game.Chart) ([]History, error)

	Close() error
}

type History struct {
	ID       int64
	Sum      string
	Rate     float64
	PlayedAt time.Time
	Score    float64 // As recorded when played
	Grade    string
	Events   []input.Event
}

// Counts is indexed by verdict.
type Counts [game.Passed + 1]int

// Snapshot is the live state of a session's statistics.
type Snapshot struct {
	Combo    int
	MaxCombo int
	Score    float64
	Accuracy float64
	Counts   Counts
	Judged   int
	Total    int

	MeanErrorMs  float64
	StdevErrorMs float64
}

type Result struct {
	Snapshot
	Grade      string
	FullCombo  bool
	AllPerfect bool
}
