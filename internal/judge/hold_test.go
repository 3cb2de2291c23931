package judge

import (
	"testing"

	"git.lost.host/meutraa/eotj/internal/game"
	"github.com/stretchr/testify/require"
)

// holdNote runs from 1.0s to 3.0s at 120 bpm.
func holdNote() *game.Note {
	return &game.Note{ID: 1, Kind: game.Hold, StartBeat: 2, EndBeat: 6, Size: 1}
}

func finals(out []Transition) []Transition {
	var f []Transition
	for _, tr := range out {
		if !tr.Temp {
			f = append(f, tr)
		}
	}
	return f
}

func TestHoldHeldToTheEnd(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	r.feed(press(0.95), release(3.2))
	var s State
	out := r.play(holdNote(), &s, 0, 3500, 10)

	require.Len(t, out, 2)
	require.True(t, out[0].Temp)
	require.Equal(t, game.Perfect, out[0].Verdict)
	require.False(t, out[1].Temp)
	require.Equal(t, game.Perfect, out[1].Verdict)
	// The tail resolves within the tail tolerance of the end.
	require.InDelta(t, 5.8, out[1].Beat, 0.05)
}

func TestHoldBodyTimeout(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	r.feed(press(1.1), release(2.0))
	var s State
	out := r.play(holdNote(), &s, 0, 3500, 10)

	require.Equal(t, game.GoodLate, out[0].Verdict)
	require.True(t, out[0].Temp)
	f := finals(out)
	require.Len(t, f, 1)
	require.Equal(t, game.Miss, f[0].Verdict)
	require.Equal(t, game.Miss, s.Final)
	require.Equal(t, game.GoodLate, s.Temp)
	// Let go at 2.0s, missed once more than 100ms passed without contact.
	require.InDelta(t, r.clock.Beat(2.11), f[0].Beat, 0.03)
}

func TestHoldHeadMissFailsTheHold(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	var s State
	out := r.play(holdNote(), &s, 0, 3500, 10)

	require.Len(t, out, 1)
	require.False(t, out[0].Temp)
	require.Equal(t, game.Miss, out[0].Verdict)
	require.Equal(t, game.Miss, s.Temp)
	require.Equal(t, s.BeatTempJudged, s.BeatJudged)
}

func TestHoldAutoplay(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	r.env.Autoplay = true
	var s State
	out := r.play(holdNote(), &s, 0, 3500, 10)
	require.Len(t, out, 2)
	require.Equal(t, game.Perfect, out[1].Verdict)
	require.InDelta(t, 0, out[1].DeltaMs, 1e-9)
}

func TestFakeHoldPassesAtItsEnd(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	n := holdNote()
	n.IsFake = true
	var s State
	require.Empty(t, r.play(n, &s, 0, 2990, 10))
	out := r.tick(n, &s, 3.0)
	require.Len(t, out, 1)
	require.Equal(t, game.Passed, out[0].Verdict)
}

func TestHoldRollbackBeforeHeadResetsEverything(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	r.feed(press(1.0), release(3.2))
	var s State
	r.play(holdNote(), &s, 0, 3500, 10)
	require.True(t, s.Judged())

	// Back into the body: only the final verdict goes.
	require.True(t, s.Rollback(r.clock.Beat(2.0)))
	require.False(t, s.Judged())
	require.Equal(t, game.Perfect, s.Temp)
	require.LessOrEqual(t, s.LastInputBeat, r.clock.Beat(2.0))

	// Before the head: the temp verdict goes with it.
	require.True(t, s.Rollback(r.clock.Beat(0.5)))
	require.Equal(t, State{}, s)
}
