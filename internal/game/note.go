package game

import "fmt"

type NoteKind uint8

const (
	Tap NoteKind = iota
	Drag
	Flick
	Hold
)

func (k NoteKind) String() string {
	switch k {
	case Tap:
		return "tap"
	case Drag:
		return "drag"
	case Flick:
		return "flick"
	case Hold:
		return "hold"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Priority orders notes that share a start beat. Holds go first so their body
// checks see the same pointers as the drags evaluated after them.
func (k NoteKind) Priority() int {
	switch k {
	case Hold:
		return 0
	case Tap:
		return 1
	case Flick:
		return 2
	default:
		return 3
	}
}

// Side is the side of its line a note falls from.
type Side int8

const (
	Above Side = 1
	Below Side = -1
)

type Note struct {
	ID         int
	LineIndex  int // Index into Chart.Lines
	Kind       NoteKind
	StartBeat  float64
	EndBeat    float64 // Equal to StartBeat unless Kind is Hold
	LaneOffset float64 // Position along the judgment line, in chart units
	Speed      float64
	Size       float64
	IsFake     bool // Visual only, never scored
	Side       Side
	Highlight  bool // Shares its start beat with another scorable note
}

// JudgeBeat is the beat a fake note passes at.
func (n *Note) JudgeBeat() float64 {
	if n.Kind == Hold {
		return n.EndBeat
	}
	return n.StartBeat
}

// Before is the evaluation order of notes within a tick.
func (n *Note) Before(o *Note) bool {
	if n.StartBeat != o.StartBeat {
		return n.StartBeat < o.StartBeat
	}
	if pn, po := n.Kind.Priority(), o.Kind.Priority(); pn != po {
		return pn < po
	}
	if n.LineIndex != o.LineIndex {
		return n.LineIndex < o.LineIndex
	}
	return n.ID < o.ID
}
