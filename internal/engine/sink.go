package engine

import (
	"git.lost.host/meutraa/eotj/internal/judge"
	"git.lost.host/meutraa/eotj/internal/score"
)

// Progress is the playback position published at most once per progress
// interval.
type Progress struct {
	SongTimeSec float64
	Beat        float64
	Fraction    float64 // Of the chart's end time, between 0 and 1
}

// Sink receives everything the engine publishes. Calls happen on the goroutine
// that calls Tick.
type Sink interface {
	OnVerdict(t judge.Transition)
	OnStats(s score.Snapshot)
	OnProgress(p Progress)
	OnFinish(r score.Result)
}

// SinkFuncs adapts plain functions to a Sink. Nil functions are skipped.
type SinkFuncs struct {
	Verdict  func(judge.Transition)
	Stats    func(score.Snapshot)
	Progress func(Progress)
	Finish   func(score.Result)
}

func (s SinkFuncs) OnVerdict(t judge.Transition) {
	if s.Verdict != nil {
		s.Verdict(t)
	}
}

func (s SinkFuncs) OnStats(snap score.Snapshot) {
	if s.Stats != nil {
		s.Stats(snap)
	}
}

func (s SinkFuncs) OnProgress(p Progress) {
	if s.Progress != nil {
		s.Progress(p)
	}
}

func (s SinkFuncs) OnFinish(r score.Result) {
	if s.Finish != nil {
		s.Finish(r)
	}
}
