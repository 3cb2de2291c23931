package judge

import "git.lost.host/meutraa/eotj/internal/game"

func evaluateHold(dst []Transition, n *game.Note, s *State, f Frame, env *Env) []Transition {
	final := func(v game.Verdict, deltaMs float64) []Transition {
		if s.Temp == game.Unjudged {
			s.hold(v, f.Beat, deltaMs)
		}
		s.judge(v, f.Beat)
		return append(dst, Transition{NoteID: n.ID, Verdict: v, Beat: f.Beat, DeltaMs: deltaMs})
	}
	temp := func(v game.Verdict, deltaMs float64) []Transition {
		s.hold(v, f.Beat, deltaMs)
		return append(dst, Transition{NoteID: n.ID, Verdict: v, Beat: f.Beat, DeltaMs: deltaMs, Temp: true})
	}

	if n.IsFake {
		if f.Beat >= n.EndBeat {
			return final(game.Passed, 0)
		}
		return dst
	}

	w := env.Windows
	tl := env.Timeline

	// Head: the same window as a tap. A missed head fails the whole hold.
	if s.Temp == game.Unjudged {
		expected := Expected(n, tl)
		deltaMs := Delta(n, tl, f.TimeSec)
		if env.Autoplay {
			if deltaMs >= 0 {
				return temp(game.Perfect, 0)
			}
			return dst
		}
		if deltaMs >= -w.GoodMs {
			if at, ok := env.Inputs.FindTap(n, expected-w.GoodMs/1000, expected+w.GoodMs/1000); ok {
				d := Delta(n, tl, at)
				return temp(grade(d, w), d)
			}
		}
		if deltaMs > w.GoodMs {
			return final(game.Miss, deltaMs)
		}
		return dst
	}

	// Body and tail.
	now := tl.TimeAt(f.Beat)
	if !env.Autoplay {
		if env.Inputs.FindDrag(n) {
			s.LastInputBeat = f.Beat
		} else if now-tl.TimeAt(s.LastInputBeat) > w.HoldBodyMs/1000 {
			return final(game.Miss, s.DeltaMs)
		}
	}
	if tl.TimeAt(n.EndBeat)-now < w.HoldTailMs/1000 {
		return final(s.Temp, s.DeltaMs)
	}
	return dst
}
