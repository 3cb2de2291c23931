package game

// BPMChange is a tempo change as written in a chart.
type BPMChange struct {
	StartBeat float64
	BPM       float64
}

// TempoSegment is a BPMChange with its start time integrated from the
// segments before it.
type TempoSegment struct {
	StartBeat    float64
	StartTimeSec float64
	BPM          float64
}
