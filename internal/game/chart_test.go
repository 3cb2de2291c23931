package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func validChart() *Chart {
	return &Chart{
		BPMs:  []BPMChange{{StartBeat: 0, BPM: 120}},
		Lines: []Line{{Index: 0, Parent: -1}},
		Notes: []*Note{
			{ID: 1, Kind: Hold, StartBeat: 2, EndBeat: 4, Size: 1},
			{ID: 2, Kind: Tap, StartBeat: 1, EndBeat: 1, Size: 1},
			{ID: 3, Kind: Drag, StartBeat: 2, EndBeat: 2, Size: 1},
			{ID: 4, Kind: Tap, StartBeat: 2, EndBeat: 2, Size: 1, IsFake: true},
		},
	}
}

func TestValidateAcceptsConsistentChart(t *testing.T) {
	t.Parallel()

	require.NoError(t, validChart().Validate())
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	t.Parallel()

	c := validChart()
	c.Notes[0].EndBeat = 1           // hold ending before it starts
	c.Notes[1].LineIndex = 7         // dangling line
	c.Notes[2].ID = 1                // duplicate id
	c.Notes[3].StartBeat = math.NaN() // not a beat

	err := c.Validate()
	require.Error(t, err)
	errs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, errs, 4)
	require.Contains(t, err.Error(), "notes[0].endBeat")
	require.Contains(t, err.Error(), "notes[1].line")
	require.Contains(t, err.Error(), "duplicate note id 1")
}

func TestSortOrdersByBeatThenKind(t *testing.T) {
	t.Parallel()

	c := validChart()
	c.Sort()

	ids := []int{}
	for _, n := range c.Notes {
		ids = append(ids, n.ID)
	}
	require.Equal(t, []int{2, 1, 4, 3}, ids)
	require.EqualValues(t, 3, c.NoteCount)
	require.EqualValues(t, 1, c.HoldCount)
	require.EqualValues(t, 1, c.FakeCount)
	require.Equal(t, 4.0, c.LastBeat())
}

func TestSortHighlightsSimultaneousNotes(t *testing.T) {
	t.Parallel()

	c := validChart()
	c.Sort()

	highlighted := map[int]bool{}
	for _, n := range c.Notes {
		highlighted[n.ID] = n.Highlight
	}
	// The hold and the drag share beat 2, the fake note does not count.
	require.Equal(t, map[int]bool{1: true, 2: false, 3: true, 4: false}, highlighted)
}

func TestVerdictClasses(t *testing.T) {
	t.Parallel()

	require.False(t, Unjudged.Terminal())
	for _, v := range Verdicts {
		require.True(t, v.Terminal(), v.String())
	}
	require.True(t, GoodLate.Hit())
	require.True(t, Bad.Breaks())
	require.False(t, Passed.Hit())
	require.False(t, Passed.Breaks())
}
