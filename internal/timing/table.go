package timing

import (
	"fmt"
	"math"
	"sort"

	"git.lost.host/meutraa/eotj/internal/game"
)

// Table is the tempo map of a chart: every BPM change with the song time it
// starts at. It never changes once built.
type Table struct {
	segments []game.TempoSegment
}

// NewTable integrates the start time of each change from the ones before it.
func NewTable(changes []game.BPMChange) (*Table, error) {
	var errs game.ValidationErrors
	add := func(i int, msg string) {
		errs = append(errs, game.ValidationError{Field: field(i), Message: msg})
	}

	if len(changes) == 0 {
		return nil, game.ValidationErrors{{Field: "bpms", Message: "chart has no tempo"}}
	}
	if changes[0].StartBeat != 0 {
		add(0, "first tempo must start at beat 0")
	}

	segments := make([]game.TempoSegment, len(changes))
	for i, c := range changes {
		if math.IsNaN(c.BPM) || math.IsInf(c.BPM, 0) || c.BPM <= 0 {
			add(i, "bpm must be a positive number")
			continue
		}
		if math.IsNaN(c.StartBeat) || math.IsInf(c.StartBeat, 0) {
			add(i, "start beat must be a number")
			continue
		}
		seg := game.TempoSegment{StartBeat: c.StartBeat, BPM: c.BPM}
		if i > 0 {
			prev := segments[i-1]
			if c.StartBeat < prev.StartBeat {
				add(i, "tempo changes must not go back in beats")
				continue
			}
			seg.StartTimeSec = prev.StartTimeSec + (c.StartBeat-prev.StartBeat)/prev.BPM*60
		}
		segments[i] = seg
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &Table{segments: segments}, nil
}

func field(i int) string {
	return fmt.Sprintf("bpms[%d]", i)
}

// Segments returns a copy of the tempo segments.
func (t *Table) Segments() []game.TempoSegment {
	out := make([]game.TempoSegment, len(t.segments))
	copy(out, t.segments)
	return out
}

// TimeAt returns the song time of beat. Beats before the first segment use its
// tempo, beats after the last extrapolate with the last tempo.
func (t *Table) TimeAt(beat float64) float64 {
	i := sort.Search(len(t.segments), func(i int) bool {
		return t.segments[i].StartBeat > beat
	}) - 1
	if i < 0 {
		i = 0
	}
	s := t.segments[i]
	return s.StartTimeSec + (beat-s.StartBeat)/s.BPM*60
}

// BPMAt returns the tempo in effect at beat.
func (t *Table) BPMAt(beat float64) float64 {
	i := sort.Search(len(t.segments), func(i int) bool {
		return t.segments[i].StartBeat > beat
	}) - 1
	if i < 0 {
		i = 0
	}
	return t.segments[i].BPM
}

// NewClock returns a clock with its own cursor over this table.
func (t *Table) NewClock() *Clock {
	return &Clock{table: t}
}
