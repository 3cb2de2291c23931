// Package judge holds the per-note judgment state machines. Evaluation is a
// plain function of the note, its state, the current frame and the input
// matcher, selected by note kind.
package judge

import (
	"math"

	"git.lost.host/meutraa/eotj/internal/game"
)

// Inputs is the part of the input matcher the state machines use.
type Inputs interface {
	FindTap(n *game.Note, tMinSec, tMaxSec float64) (float64, bool)
	FindDrag(n *game.Note) bool
	FindFlick(n *game.Note) bool
}

// Timeline maps beats to song time.
type Timeline interface {
	TimeAt(beat float64) float64
}

// Windows are the judgment tolerances, in milliseconds.
type Windows struct {
	PerfectMs  float64
	GoodMs     float64
	BadMs      float64 // Early taps between GoodMs and BadMs are Bad, disabled when not above GoodMs
	HoldBodyMs float64
	HoldTailMs float64
}

type Env struct {
	Windows  Windows
	Autoplay bool
	Timeline Timeline
	Inputs   Inputs
}

// Frame is the playback position of one tick.
type Frame struct {
	Beat    float64
	TimeSec float64
}

// Transition is a change of a note's verdict.
type Transition struct {
	NoteID  int
	Verdict game.Verdict
	Beat    float64
	DeltaMs float64 // Hit error, negative when early
	Temp    bool    // A hold head result that still waits for the tail
}

// Evaluate advances the note's state for one frame and appends the
// transitions it produced to dst.
func Evaluate(dst []Transition, n *game.Note, s *State, f Frame, env *Env) []Transition {
	if s.Final != game.Unjudged {
		return dst
	}
	switch n.Kind {
	case game.Hold:
		return evaluateHold(dst, n, s, f, env)
	default:
		return evaluateInstant(dst, n, s, f, env)
	}
}

// grade turns a hit error into a verdict.
func grade(deltaMs float64, w Windows) game.Verdict {
	switch {
	case math.Abs(deltaMs) <= w.PerfectMs:
		return game.Perfect
	case deltaMs < -w.GoodMs:
		return game.Bad
	case deltaMs < 0:
		return game.GoodEarly
	default:
		return game.GoodLate
	}
}

// Expected returns the time the note should be hit at.
func Expected(n *game.Note, tl Timeline) float64 {
	return tl.TimeAt(n.StartBeat)
}

// Delta returns the hit error in milliseconds of hitting n at songTimeSec.
func Delta(n *game.Note, tl Timeline, songTimeSec float64) float64 {
	return (songTimeSec - Expected(n, tl)) * 1000
}
