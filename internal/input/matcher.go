package input

import (
	"math"
	"sort"

	"git.lost.host/meutraa/eotj/internal/game"
	"golang.org/x/exp/slices"
)

const noConsumer = -1

type press struct {
	Event
	consumer int // Note ID that claimed this press, noConsumer when free
}

type pointer struct {
	x, y       float64
	positional bool
	lastSec    float64
	swipeSec   float64 // Start of the current swipe
	velocity   float64 // Chart units per second over the last move
	flicked    bool    // The current swipe already satisfied a flick
}

// spend is a swipe used up by a flick note.
type spend struct {
	pointer int
	sec     float64 // Time of the pointer's last event when it was spent
	noteID  int
}

// Matcher pairs input with notes. Presses are edge triggered and claimed by at
// most one note, pointer presence is level triggered and never claimed.
type Matcher struct {
	distance      float64
	flickVelocity float64

	poses    []game.Pose
	pointers map[int]*pointer
	ids      []int   // Active pointer IDs, ascending
	presses  []press // Ascending by time
	history  []Event // Every event applied, ascending by time
	spends   []spend
}

func NewMatcher(distanceThreshold, flickVelocity float64) *Matcher {
	return &Matcher{
		distance:      distanceThreshold,
		flickVelocity: flickVelocity,
		pointers:      map[int]*pointer{},
	}
}

// SetPoses sets the line poses spatial checks use until the next call.
func (m *Matcher) SetPoses(poses []game.Pose) {
	m.poses = poses
}

// Apply takes the events captured since the last tick.
func (m *Matcher) Apply(events []Event) {
	if len(events) == 0 {
		return
	}
	slices.SortStableFunc(events, func(a, b Event) bool { return a.TimeSec < b.TimeSec })

	sorted := true
	if n := len(m.history); n > 0 && m.history[n-1].TimeSec > events[0].TimeSec {
		sorted = false
	}
	for _, e := range events {
		m.step(e)
		if e.Action == Press {
			m.presses = append(m.presses, press{Event: e, consumer: noConsumer})
		}
	}
	m.history = append(m.history, events...)
	if !sorted {
		slices.SortStableFunc(m.presses, func(a, b press) bool { return a.TimeSec < b.TimeSec })
		slices.SortStableFunc(m.history, func(a, b Event) bool { return a.TimeSec < b.TimeSec })
	}
	m.refreshIDs()
}

// step moves the pointer state forward by one event.
func (m *Matcher) step(e Event) {
	switch e.Action {
	case Press:
		m.pointers[e.Pointer] = &pointer{
			x:          e.X,
			y:          e.Y,
			positional: e.Positional,
			lastSec:    e.TimeSec,
			swipeSec:   e.TimeSec,
		}
	case Move:
		p, ok := m.pointers[e.Pointer]
		if !ok {
			return
		}
		if dt := e.TimeSec - p.lastSec; dt > 0 {
			p.velocity = math.Hypot(e.X-p.x, e.Y-p.y) / dt
			p.lastSec = e.TimeSec
		}
		p.x, p.y = e.X, e.Y
		if p.velocity <= m.flickVelocity {
			p.flicked = false
			p.swipeSec = e.TimeSec
		}
	case Release:
		delete(m.pointers, e.Pointer)
	}
}

func (m *Matcher) refreshIDs() {
	m.ids = m.ids[:0]
	for id := range m.pointers {
		m.ids = append(m.ids, id)
	}
	slices.Sort(m.ids)
}

// near reports whether (x, y) projects onto the note's line within the
// judgment distance of the note.
func (m *Matcher) near(n *game.Note, x, y float64, positional bool) bool {
	if !positional {
		return true
	}
	var pose game.Pose
	if n.LineIndex >= 0 && n.LineIndex < len(m.poses) {
		pose = m.poses[n.LineIndex]
	}
	return math.Abs(pose.Project(x, y)-n.LaneOffset) <= m.distance
}

// FindTap claims the earliest free press in [tMinSec, tMaxSec] close enough to
// the note and returns its time.
func (m *Matcher) FindTap(n *game.Note, tMinSec, tMaxSec float64) (float64, bool) {
	i := sort.Search(len(m.presses), func(i int) bool { return m.presses[i].TimeSec >= tMinSec })
	for ; i < len(m.presses) && m.presses[i].TimeSec <= tMaxSec; i++ {
		p := &m.presses[i]
		if p.consumer != noConsumer || !m.near(n, p.X, p.Y, p.Positional) {
			continue
		}
		p.consumer = n.ID
		return p.TimeSec, true
	}
	return 0, false
}

// FindDrag reports whether any pointer that is down lies over the note.
func (m *Matcher) FindDrag(n *game.Note) bool {
	for _, id := range m.ids {
		p := m.pointers[id]
		if m.near(n, p.x, p.y, p.positional) {
			return true
		}
	}
	return false
}

// FindFlick spends the swipe of a pointer over the note that moves faster
// than the flick velocity. Keys flick once per press.
func (m *Matcher) FindFlick(n *game.Note) bool {
	for _, id := range m.ids {
		p := m.pointers[id]
		if p.flicked || !m.near(n, p.x, p.y, p.positional) {
			continue
		}
		if p.positional && p.velocity <= m.flickVelocity {
			continue
		}
		p.flicked = true
		m.spends = append(m.spends, spend{pointer: id, sec: p.lastSec, noteID: n.ID})
		return true
	}
	return false
}

// Rewind forgets input from after timeSec and frees presses and swipes claimed
// by notes that released reports as rolled back. Pointers are put back where
// they were at timeSec, including ones lifted since.
func (m *Matcher) Rewind(timeSec float64, released func(noteID int) bool) {
	keep := sort.Search(len(m.presses), func(i int) bool { return m.presses[i].TimeSec > timeSec })
	m.presses = m.presses[:keep]
	for i := range m.presses {
		p := &m.presses[i]
		if p.consumer != noConsumer && released(p.consumer) {
			p.consumer = noConsumer
		}
	}

	keep = sort.Search(len(m.history), func(i int) bool { return m.history[i].TimeSec > timeSec })
	m.history = m.history[:keep]
	m.pointers = map[int]*pointer{}
	for _, e := range m.history {
		m.step(e)
	}

	spends := m.spends[:0]
	for _, s := range m.spends {
		if s.sec > timeSec || released(s.noteID) {
			continue
		}
		spends = append(spends, s)
		if p, ok := m.pointers[s.pointer]; ok && s.sec >= p.swipeSec {
			p.flicked = true
		}
	}
	m.spends = spends
	m.refreshIDs()
}

// Claimed returns the note that claimed the press at index i, for tests and
// debugging.
func (m *Matcher) Claimed(i int) (int, bool) {
	if i < 0 || i >= len(m.presses) || m.presses[i].consumer == noConsumer {
		return 0, false
	}
	return m.presses[i].consumer, true
}

// Pending returns how many presses are remembered.
func (m *Matcher) Pending() int {
	return len(m.presses)
}

// Active returns how many pointers are down.
func (m *Matcher) Active() int {
	return len(m.ids)
}

// Reset forgets every pointer and press.
func (m *Matcher) Reset() {
	m.pointers = map[int]*pointer{}
	m.ids = m.ids[:0]
	m.presses = m.presses[:0]
	m.history = m.history[:0]
	m.spends = m.spends[:0]
}
