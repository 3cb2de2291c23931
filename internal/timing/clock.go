package timing

// Clock converts song time to beats. It keeps a cursor into the tempo table so
// forward playback costs O(1) per call, and resets it when time goes back.
// A Clock belongs to one playback session; sessions never share one.
type Clock struct {
	table  *Table
	cursor int
}

// Beat returns the beat at songTimeSec.
func (c *Clock) Beat(songTimeSec float64) float64 {
	segs := c.table.segments
	if c.cursor > 0 && songTimeSec < segs[c.cursor].StartTimeSec {
		c.cursor = 0
	}
	for c.cursor < len(segs)-1 && songTimeSec >= segs[c.cursor+1].StartTimeSec {
		c.cursor++
	}
	s := segs[c.cursor]
	return s.StartBeat + (songTimeSec-s.StartTimeSec)/60*s.BPM
}

// BPM is the tempo at the cursor, as of the last call to Beat.
func (c *Clock) BPM() float64 {
	return c.table.segments[c.cursor].BPM
}

// Reset moves the cursor back to the first segment.
func (c *Clock) Reset() {
	c.cursor = 0
}
