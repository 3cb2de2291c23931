package timing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBeatIsIncreasingAndContinuous(t *testing.T) {
	t.Parallel()

	clock := variableTempo(t).NewClock()
	prev := clock.Beat(-1)
	for sec := -1.0 + 0.001; sec < 12; sec += 0.001 {
		beat := clock.Beat(sec)
		require.Greater(t, beat, prev, "at %v", sec)
		// 240 bpm is the fastest segment: 4 beats per second.
		require.LessOrEqual(t, beat-prev, 0.004+1e-9, "jump at %v", sec)
		prev = beat
	}
}

func TestBeatAcrossBoundaries(t *testing.T) {
	t.Parallel()

	clock := variableTempo(t).NewClock()
	require.InDelta(t, 8, clock.Beat(4), 1e-12)
	require.InDelta(t, 16, clock.Beat(6), 1e-12)
	require.InDelta(t, 18, clock.Beat(8), 1e-12)
	require.Equal(t, 60.0, clock.BPM())
	require.InDelta(t, -2, clock.Beat(-1), 1e-12)
	require.Equal(t, 120.0, clock.BPM())
}

func TestBeatSurvivesSeeking(t *testing.T) {
	t.Parallel()

	table := variableTempo(t)
	seeking := table.NewClock()
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		sec := r.Float64()*20 - 2
		fresh := table.NewClock()
		require.Equal(t, fresh.Beat(sec), seeking.Beat(sec), "at %v", sec)
	}
}

func TestClocksAreIndependent(t *testing.T) {
	t.Parallel()

	table := variableTempo(t)
	main, preview := table.NewClock(), table.NewClock()
	main.Beat(7)
	require.Equal(t, 60.0, main.BPM())
	require.InDelta(t, 2, preview.Beat(1), 1e-12)
	require.Equal(t, 120.0, preview.BPM())
}
