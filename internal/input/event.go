package input

type Action uint8

const (
	Press Action = iota
	Move
	Release
)

func (a Action) String() string {
	switch a {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	}
	return "unknown"
}

// Event is one pointer or key event, timestamped in song time and placed in
// chart space.
type Event struct {
	Pointer    int
	Action     Action
	TimeSec    float64
	X, Y       float64
	Positional bool // False for keys, which are not tied to a place and reach every note
}
