package engine

import (
	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/judge"
	"git.lost.host/meutraa/eotj/internal/score"
	"github.com/sirupsen/logrus"
)

// SeekController notices playback moving backwards.
type SeekController struct {
	previous float64
	started  bool
}

// Observe records beat and reports whether it is behind the previous one.
func (s *SeekController) Observe(beat float64) bool {
	rewound := s.started && beat < s.previous
	s.previous = beat
	s.started = true
	return rewound
}

func (s *SeekController) Reset() {
	*s = SeekController{}
}

// rollback undoes every judgment made at or after beat, gives rolled back
// notes their input back and rebuilds the statistics from what is left.
func (e *Engine) rollback(beat, songTimeSec float64) {
	released := map[int]bool{}
	reset := 0
	for i, n := range e.chart.Notes {
		st := &e.states[i]
		if !st.Rollback(beat) {
			continue
		}
		reset++
		if st.Temp == game.Unjudged {
			released[n.ID] = true
		}
		if i < e.cursor {
			e.cursor = i
		}
		e.sink.OnVerdict(judge.Transition{NoteID: n.ID, Verdict: game.Unjudged, Beat: beat})
	}
	e.matcher.Rewind(songTimeSec, func(id int) bool { return released[id] })

	kept := e.log[:0]
	for _, t := range e.log {
		if t.Beat < beat {
			kept = append(kept, t)
		}
	}
	e.log = kept
	score.Fold(e.acc, e.log)

	if e.status == Finished {
		e.status = Playing
	}
	e.statsDirty = true
	e.logger.WithFields(logrus.Fields{
		"beat":  beat,
		"notes": reset,
	}).Debug("rolled back")
}
