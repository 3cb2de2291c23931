package game

import (
	"math"

	"golang.org/x/exp/slices"
)

type Chart struct {
	Meta  Meta
	BPMs  []BPMChange
	Lines []Line
	Notes []*Note // Sorted by Sort, in evaluation order

	NoteCount int64 // Scorable notes
	HoldCount int64
	FakeCount int64
}

// Sort puts the notes in evaluation order and refreshes the counts and
// highlights.
func (c *Chart) Sort() {
	slices.SortStableFunc(c.Notes, func(a, b *Note) bool { return a.Before(b) })
	c.NoteCount, c.HoldCount, c.FakeCount = 0, 0, 0
	starts := map[float64]int{}
	for _, n := range c.Notes {
		if n.IsFake {
			c.FakeCount++
			continue
		}
		c.NoteCount++
		starts[n.StartBeat]++
		if n.Kind == Hold {
			c.HoldCount++
		}
	}
	for _, n := range c.Notes {
		n.Highlight = !n.IsFake && starts[n.StartBeat] > 1
	}
}

// LastBeat is the beat the last note resolves at.
func (c *Chart) LastBeat() float64 {
	last := 0.0
	for _, n := range c.Notes {
		if n.EndBeat > last {
			last = n.EndBeat
		}
	}
	return last
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks the chart for problems that would leave the engine in an
// inconsistent state. Tempo problems are reported by the tempo table.
func (c *Chart) Validate() error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if len(c.Lines) == 0 && len(c.Notes) > 0 {
		add("lines", "notes exist but no judgment line does")
	}
	if _, err := LineOrder(c.Lines); err != nil {
		if ve, ok := err.(ValidationErrors); ok {
			errs = append(errs, ve...)
		} else {
			add("lines", err.Error())
		}
	}
	for i, l := range c.Lines {
		if l.Index != i {
			add(fieldf("lines[%d].index", i), fieldf("index %d does not match position", l.Index))
		}
		if !finite(l.X) || !finite(l.Y) || !finite(l.Rotation) {
			add(fieldf("lines[%d]", i), "non-finite position or rotation")
		}
	}

	ids := make(map[int]struct{}, len(c.Notes))
	for i, n := range c.Notes {
		field := fieldf("notes[%d]", i)
		if n == nil {
			add(field, "missing note")
			continue
		}
		if _, dup := ids[n.ID]; dup {
			add(field+".id", fieldf("duplicate note id %d", n.ID))
		}
		ids[n.ID] = struct{}{}
		if n.LineIndex < 0 || n.LineIndex >= len(c.Lines) {
			add(field+".line", fieldf("references missing line %d", n.LineIndex))
		}
		if n.Kind > Hold {
			add(field+".kind", "unknown note kind")
		}
		if !finite(n.StartBeat) || !finite(n.EndBeat) || !finite(n.LaneOffset) {
			add(field, "non-finite beat or position")
			continue
		}
		if n.Kind == Hold && n.EndBeat < n.StartBeat {
			add(field+".endBeat", fieldf("hold ends at beat %v before it starts at %v", n.EndBeat, n.StartBeat))
		}
		if n.Kind != Hold && n.EndBeat != n.StartBeat {
			add(field+".endBeat", "only holds may end after they start")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
