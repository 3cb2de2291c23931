package parser

import (
	"os"
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/testdata"
	"github.com/stretchr/testify/require"
)

func TestParseFixture(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chart.json")
	require.NoError(t, os.WriteFile(path, []byte(testdata.ChartJSON), 0o644))

	var p Parser = &DefaultParser{}
	chart, err := p.Parse(path)
	require.NoError(t, err)
	require.Equal(t, testdata.GetChart(), chart)
	require.NoError(t, chart.Validate())
	require.EqualValues(t, 7, chart.NoteCount)
	require.EqualValues(t, 1, chart.FakeCount)
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	data := `
META:
  name: Short
  offset: 25
BPMList:
  - {startTime: 0, bpm: 150}
judgeLineList:
  - notes:
      - {type: 2, startTime: [1, 1, 2], endTime: [3, 0, 1], positionX: 40}
      - {type: 3, startTime: 4}
`
	chart, err := (&DefaultParser{}).Decode([]byte(data), ".yaml")
	require.NoError(t, err)
	require.Equal(t, "Short", chart.Meta.Name)
	require.Equal(t, 25.0, chart.Meta.OffsetMs)
	require.Equal(t, []game.BPMChange{{StartBeat: 0, BPM: 150}}, chart.BPMs)
	require.Equal(t, -1, chart.Lines[0].Parent, "a line without a father is a root")

	hold := chart.Notes[0]
	require.Equal(t, game.Hold, hold.Kind)
	require.Equal(t, 1.5, hold.StartBeat)
	require.Equal(t, 3.0, hold.EndBeat)
	require.Equal(t, game.Below, hold.Side)
	require.Equal(t, 1.0, hold.Size)

	flick := chart.Notes[1]
	require.Equal(t, game.Flick, flick.Kind)
	require.Equal(t, 4.0, flick.EndBeat)
}

func TestDecodeCollectsBadNotes(t *testing.T) {
	t.Parallel()

	data := `{
  "BPMList": [{"startTime": [0, 0, 1], "bpm": 120}],
  "judgeLineList": [{"notes": [
    {"type": 9, "startTime": 1},
    {"type": 1, "startTime": [1, 1, 0]}
  ]}]
}`
	_, err := (&DefaultParser{}).Decode([]byte(data), ".json")
	require.Error(t, err)
	var ve game.ValidationErrors
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve, 2)
	require.Contains(t, err.Error(), "unknown note type 9")
	require.Contains(t, err.Error(), "zero denominator")
}

func TestParseMissingFile(t *testing.T) {
	t.Parallel()

	_, err := (&DefaultParser{}).Parse(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
