package score

import (
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/input"
	"github.com/stretchr/testify/require"
)

func storeChart(beat float64) *game.Chart {
	return &game.Chart{
		BPMs:  []game.BPMChange{{StartBeat: 0, BPM: 120}},
		Lines: []game.Line{{Index: 0, Parent: -1}},
		Notes: []*game.Note{{ID: 1, Kind: game.Tap, StartBeat: beat, EndBeat: beat, Size: 1}},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer s.Close()

	chart := storeChart(2)
	other := storeChart(3)
	events := []input.Event{
		{Pointer: 1 << 16, Action: input.Press, TimeSec: 1.0},
		{Pointer: 1 << 16, Action: input.Release, TimeSec: 1.1},
	}
	result := Result{Snapshot: Snapshot{Score: 1000000}, Grade: "φ"}

	require.NoError(t, s.Save(chart, events, 1, result))
	require.NoError(t, s.Save(chart, events[:1], 1.5, Result{Grade: "F"}))

	histories, err := s.Load(chart)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	require.Equal(t, events, histories[0].Events)
	require.Equal(t, "φ", histories[0].Grade)
	require.Equal(t, 1000000.0, histories[0].Score)
	require.Equal(t, 1.5, histories[1].Rate)
	require.Equal(t, HashChart(chart), histories[1].Sum)

	none, err := s.Load(other)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestHashChartFollowsContent(t *testing.T) {
	t.Parallel()

	require.Equal(t, HashChart(storeChart(2)), HashChart(storeChart(2)))
	require.NotEqual(t, HashChart(storeChart(2)), HashChart(storeChart(2.5)))
}
