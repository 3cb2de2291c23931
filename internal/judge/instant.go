package judge

import "git.lost.host/meutraa/eotj/internal/game"

func evaluateInstant(dst []Transition, n *game.Note, s *State, f Frame, env *Env) []Transition {
	final := func(v game.Verdict, deltaMs float64) []Transition {
		s.DeltaMs = deltaMs
		s.judge(v, f.Beat)
		return append(dst, Transition{NoteID: n.ID, Verdict: v, Beat: f.Beat, DeltaMs: deltaMs})
	}

	if n.IsFake {
		if f.Beat >= n.StartBeat {
			return final(game.Passed, 0)
		}
		return dst
	}

	w := env.Windows
	expected := Expected(n, env.Timeline)
	deltaMs := Delta(n, env.Timeline, f.TimeSec)

	if env.Autoplay || s.Pending {
		if deltaMs >= 0 {
			return final(game.Perfect, 0)
		}
		return dst
	}

	early := w.GoodMs
	if n.Kind == game.Tap && w.BadMs > w.GoodMs {
		early = w.BadMs
	}
	if deltaMs < -early {
		return dst
	}

	switch n.Kind {
	case game.Tap:
		// Presses carry their own time, so one that arrived inside the window
		// still counts on the tick that closes it.
		if at, ok := env.Inputs.FindTap(n, expected-early/1000, expected+w.GoodMs/1000); ok {
			d := Delta(n, env.Timeline, at)
			return final(grade(d, w), d)
		}
	case game.Drag, game.Flick:
		if deltaMs <= w.GoodMs && deltaMs >= -w.GoodMs && caught(n, env.Inputs) {
			if deltaMs < 0 {
				s.Pending = true
				s.BeatPending = f.Beat
				return dst
			}
			return final(grade(deltaMs, w), deltaMs)
		}
	}

	if deltaMs > w.GoodMs {
		return final(game.Miss, deltaMs)
	}
	return dst
}

func caught(n *game.Note, in Inputs) bool {
	if n.Kind == game.Flick {
		return in.FindFlick(n)
	}
	return in.FindDrag(n)
}
