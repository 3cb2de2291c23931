package judge

import "git.lost.host/meutraa/eotj/internal/game"

// State is the mutable judgment of one note. Final is assigned once, and only
// goes back to Unjudged through Rollback.
type State struct {
	Final      game.Verdict
	BeatJudged float64

	// Hold notes only.
	Temp           game.Verdict
	BeatTempJudged float64
	LastInputBeat  float64

	// Drags and flicks caught before their time.
	Pending     bool
	BeatPending float64

	DeltaMs float64 // Hit error of the head or the instant
}

func (s *State) judge(v game.Verdict, beat float64) {
	s.Final = v
	s.BeatJudged = beat
}

func (s *State) hold(v game.Verdict, beat, deltaMs float64) {
	s.Temp = v
	s.BeatTempJudged = beat
	s.DeltaMs = deltaMs
	s.LastInputBeat = beat
}

// Judged reports whether the note has its final verdict.
func (s *State) Judged() bool {
	return s.Final != game.Unjudged
}

// Rollback undoes every part of the judgment made at or after beat and
// reports whether anything changed.
func (s *State) Rollback(beat float64) bool {
	if s.Temp != game.Unjudged && beat <= s.BeatTempJudged {
		*s = State{}
		return true
	}
	changed := false
	if s.Final != game.Unjudged && beat <= s.BeatJudged {
		s.Final = game.Unjudged
		s.BeatJudged = 0
		if s.LastInputBeat > beat {
			s.LastInputBeat = beat
		}
		changed = true
	}
	if s.Pending && beat <= s.BeatPending {
		s.Pending = false
		s.BeatPending = 0
		changed = true
	}
	return changed
}

// Reset returns the state to its loaded form.
func (s *State) Reset() {
	*s = State{}
}
