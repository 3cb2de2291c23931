// Package engine drives a chart through time. Each Tick maps song time to a
// beat, undoes judgments after a backward seek, hands captured input to the
// matcher and advances every note's judgment in a fixed order.
package engine

import (
	"math"
	"time"

	"git.lost.host/meutraa/eotj/internal/config"
	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/input"
	"git.lost.host/meutraa/eotj/internal/judge"
	"git.lost.host/meutraa/eotj/internal/logger"
	"git.lost.host/meutraa/eotj/internal/score"
	"git.lost.host/meutraa/eotj/internal/timing"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

type Status uint8

const (
	Ready Status = iota
	Playing
	Finished
	Closed
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	case Closed:
		return "closed"
	}
	return "unknown"
}

type Option func(*Engine)

// WithSink sets where verdicts, statistics and progress go.
func WithSink(s Sink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithGeometry replaces the static line placement.
func WithGeometry(g Geometry) Option {
	return func(e *Engine) {
		e.geometry = g
	}
}

// WithClock sets the wall clock progress is throttled by.
func WithClock(c clock.PassiveClock) Option {
	return func(e *Engine) {
		e.progress.clock = c
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

type Engine struct {
	chart    *game.Chart
	cfg      config.Config
	table    *timing.Table
	clock    *timing.Clock
	seek     SeekController
	matcher  *input.Matcher
	env      *judge.Env
	acc      *score.Accumulator
	geometry Geometry
	sink     Sink
	progress throttle
	logger   *logrus.Entry

	states   []judge.State
	expected []float64 // Song time each note is due, indexed like the notes
	byID     map[int]int
	order    []int
	poses    []game.Pose
	lead     float64 // Seconds before its time a note can first be judged
	endTime  float64

	log        []judge.Transition // Every verdict since the last restart
	queue      []input.Event
	buf        []judge.Transition
	cursor     int // Notes before it are resolved
	status     Status
	statsDirty bool
}

// New checks the settings and the chart and prepares an engine for it. The
// chart's notes are put in evaluation order.
func New(chart *game.Chart, cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var errs game.ValidationErrors
	collect := func(err error) {
		if err == nil {
			return
		}
		if ve, ok := err.(game.ValidationErrors); ok {
			errs = append(errs, ve...)
			return
		}
		errs = append(errs, game.ValidationError{Field: "chart", Message: err.Error()})
	}
	table, err := timing.NewTable(chart.BPMs)
	collect(err)
	collect(chart.Validate())
	if len(errs) > 0 {
		return nil, errs
	}
	chart.Sort()
	order, _ := game.LineOrder(chart.Lines)

	acc, err := score.NewAccumulator(cfg.Score, int(chart.NoteCount))
	if err != nil {
		return nil, err
	}

	j := cfg.Judgement
	matcher := input.NewMatcher(j.Distance, j.FlickVelocity)
	e := &Engine{
		chart:   chart,
		cfg:     cfg,
		table:   table,
		clock:   table.NewClock(),
		matcher: matcher,
		env: &judge.Env{
			Windows: judge.Windows{
				PerfectMs:  j.PerfectMs,
				GoodMs:     j.GoodMs,
				BadMs:      j.BadMs,
				HoldBodyMs: j.HoldBodyMs,
				HoldTailMs: j.HoldTailMs,
			},
			Autoplay: j.Autoplay,
			Timeline: table,
			Inputs:   matcher,
		},
		acc:      acc,
		geometry: StaticGeometry{Lines: chart.Lines},
		sink:     SinkFuncs{},
		progress: throttle{
			clock:    clock.RealClock{},
			interval: time.Duration(cfg.Player.ProgressIntervalMs * float64(time.Millisecond)),
		},
		logger:   logger.GetProjectLogger(),
		states:   make([]judge.State, len(chart.Notes)),
		expected: make([]float64, len(chart.Notes)),
		byID:     make(map[int]int, len(chart.Notes)),
		order:    order,
		poses:    make([]game.Pose, len(chart.Lines)),
		lead:     math.Max(j.GoodMs, j.BadMs) / 1000,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithField("chart", chart.Meta.Name)

	for i, n := range chart.Notes {
		e.expected[i] = table.TimeAt(n.StartBeat)
		e.byID[n.ID] = i
	}
	e.endTime = math.Max(chart.Meta.DurationSec, table.TimeAt(chart.LastBeat()))

	e.logger.WithFields(logrus.Fields{
		"notes": chart.NoteCount,
		"fakes": chart.FakeCount,
		"lines": len(chart.Lines),
	}).Debug("engine ready")
	return e, nil
}

// SongTime converts a playback position into song time by removing the chart
// offset and the player's global offset.
func (e *Engine) SongTime(playbackSec float64) float64 {
	return playbackSec - e.chart.Meta.OffsetMs/1000 - e.cfg.Player.OffsetMs/1000
}

// EndTime is the song time the chart is over at.
func (e *Engine) EndTime() float64 {
	return e.endTime
}

func (e *Engine) Chart() *game.Chart {
	return e.chart
}

// NoteTime is the song time the note at index i of Chart().Notes is due.
func (e *Engine) NoteTime(i int) float64 {
	return e.expected[i]
}

// Feed queues input captured since the last tick. Event times are song time.
func (e *Engine) Feed(events ...input.Event) {
	if e.status == Closed {
		return
	}
	e.queue = append(e.queue, events...)
}

// Tick advances the engine to songTimeSec.
func (e *Engine) Tick(songTimeSec float64) {
	if e.status == Closed {
		return
	}
	if e.status == Ready {
		e.status = Playing
	}

	beat := e.clock.Beat(songTimeSec)
	if e.seek.Observe(beat) {
		e.rollback(beat, songTimeSec)
	}

	e.matcher.Apply(e.queue)
	e.queue = e.queue[:0]

	e.poses = game.ResolvePoses(e.chart.Lines, e.order, func(i int) game.Pose {
		return e.geometry.Local(i, beat)
	}, e.poses)
	e.matcher.SetPoses(e.poses)

	e.evaluate(judge.Frame{Beat: beat, TimeSec: songTimeSec})

	if e.statsDirty {
		e.statsDirty = false
		e.sink.OnStats(e.acc.Snapshot())
	}
	if e.progress.ready() {
		e.sink.OnProgress(Progress{
			SongTimeSec: songTimeSec,
			Beat:        beat,
			Fraction:    e.fraction(songTimeSec),
		})
	}
	if e.status == Playing && e.cursor == len(e.chart.Notes) && songTimeSec >= e.endTime {
		e.finish()
	}
}

func (e *Engine) evaluate(f judge.Frame) {
	notes := e.chart.Notes
	for e.cursor < len(notes) && e.states[e.cursor].Judged() {
		e.cursor++
	}
	for i := e.cursor; i < len(notes); i++ {
		if e.expected[i]-e.lead > f.TimeSec {
			break
		}
		st := &e.states[i]
		if st.Judged() {
			continue
		}
		e.buf = judge.Evaluate(e.buf[:0], notes[i], st, f, e.env)
		for _, t := range e.buf {
			e.log = append(e.log, t)
			if !t.Temp && !notes[i].IsFake {
				e.acc.Apply(t.Verdict, t.DeltaMs)
				e.statsDirty = true
			}
			e.sink.OnVerdict(t)
		}
	}
	for e.cursor < len(notes) && e.states[e.cursor].Judged() {
		e.cursor++
	}
}

func (e *Engine) fraction(songTimeSec float64) float64 {
	if e.endTime <= 0 {
		return 1
	}
	return math.Min(math.Max(songTimeSec/e.endTime, 0), 1)
}

func (e *Engine) finish() {
	e.status = Finished
	r := e.acc.Result()
	e.logger.WithFields(logrus.Fields{
		"score":    r.Score,
		"accuracy": r.Accuracy,
		"grade":    r.Grade,
	}).Info("chart finished")
	e.sink.OnFinish(r)
}

func (e *Engine) Snapshot() score.Snapshot {
	if e.acc == nil {
		return score.Snapshot{}
	}
	return e.acc.Snapshot()
}

func (e *Engine) Result() score.Result {
	if e.acc == nil {
		return score.Result{}
	}
	return e.acc.Result()
}

// Verdict returns the judgment state of a note.
func (e *Engine) Verdict(noteID int) (judge.State, bool) {
	i, ok := e.byID[noteID]
	if !ok || e.status == Closed {
		return judge.State{}, false
	}
	return e.states[i], true
}

// Log returns the verdict transitions that stand, in the order they happened.
func (e *Engine) Log() []judge.Transition {
	return append([]judge.Transition(nil), e.log...)
}

func (e *Engine) Status() Status {
	return e.status
}

// Restart returns every note to Unjudged and forgets all input.
func (e *Engine) Restart() {
	if e.status == Closed {
		return
	}
	for i := range e.states {
		e.states[i].Reset()
	}
	e.matcher.Reset()
	e.acc.Reset()
	e.clock.Reset()
	e.seek.Reset()
	e.progress.reset()
	e.log = e.log[:0]
	e.queue = e.queue[:0]
	e.cursor = 0
	e.status = Ready
	e.statsDirty = false
	e.logger.Debug("restarted")
}

// Close releases the chart and all judgment state. The engine does nothing
// afterwards.
func (e *Engine) Close() {
	e.status = Closed
	e.chart = nil
	e.states = nil
	e.expected = nil
	e.acc = nil
	e.log = nil
	e.queue = nil
	e.matcher = nil
	e.env = nil
}
