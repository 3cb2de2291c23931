package testdata

import (
	"math"

	"git.lost.host/meutraa/eotj/internal/game"
)

// ChartJSON is the chart GetChart returns, as a chart file.
const ChartJSON = `{
  "META": {"name": "Fixture", "composer": "Nobody", "charter": "eotj", "level": "IN 12", "offset": 0, "duration": 5},
  "BPMList": [
    {"startTime": [0, 0, 1], "bpm": 120},
    {"startTime": [8, 0, 1], "bpm": 240}
  ],
  "judgeLineList": [
    {
      "father": -1, "x": 0, "y": 0, "rotate": 0,
      "notes": [
        {"type": 1, "startTime": [2, 0, 1], "endTime": [2, 0, 1], "positionX": 0, "above": 1},
        {"type": 4, "startTime": [3, 0, 1], "endTime": [3, 0, 1], "positionX": 100, "above": 1},
        {"type": 3, "startTime": [4, 0, 1], "endTime": [4, 0, 1], "positionX": -100, "above": 1},
        {"type": 2, "startTime": [5, 0, 1], "endTime": [7, 0, 1], "positionX": 0, "above": 1},
        {"type": 1, "startTime": [6, 0, 1], "endTime": [6, 0, 1], "positionX": 0, "above": 1, "isFake": 1}
      ]
    },
    {
      "father": 0, "x": 0, "y": 300, "rotate": 90,
      "notes": [
        {"type": 1, "startTime": [8, 0, 1], "endTime": [8, 0, 1], "positionX": 0, "above": 1},
        {"type": 1, "startTime": [8, 0, 1], "endTime": [8, 0, 1], "positionX": 150, "above": 1},
        {"type": 2, "startTime": [9, 0, 1], "endTime": [10, 0, 1], "positionX": 0, "above": 2, "speed": 2, "size": 1.5}
      ]
    }
  ]
}`

// GetChart returns a two line chart with every note kind, a fake note, two
// simultaneous notes and a tempo change at beat 8 (4s).
func GetChart() *game.Chart {
	note := func(id, line int, kind game.NoteKind, start, end, x float64) *game.Note {
		return &game.Note{
			ID:         id,
			LineIndex:  line,
			Kind:       kind,
			StartBeat:  start,
			EndBeat:    end,
			LaneOffset: x,
			Speed:      1,
			Size:       1,
			Side:       game.Above,
		}
	}

	rotate := 90.0
	fake := note(4, 0, game.Tap, 6, 6, 0)
	fake.IsFake = true
	below := note(7, 1, game.Hold, 9, 10, 0)
	below.Side = game.Below
	below.Speed = 2
	below.Size = 1.5

	chart := &game.Chart{
		Meta: game.Meta{
			Name:        "Fixture",
			Composer:    "Nobody",
			Charter:     "eotj",
			Level:       "IN 12",
			DurationSec: 5,
		},
		BPMs: []game.BPMChange{{StartBeat: 0, BPM: 120}, {StartBeat: 8, BPM: 240}},
		Lines: []game.Line{
			{Index: 0, Parent: -1},
			{Index: 1, Parent: 0, Y: 300, Rotation: rotate * math.Pi / 180},
		},
		Notes: []*game.Note{
			note(0, 0, game.Tap, 2, 2, 0),
			note(1, 0, game.Drag, 3, 3, 100),
			note(2, 0, game.Flick, 4, 4, -100),
			note(3, 0, game.Hold, 5, 7, 0),
			fake,
			note(5, 1, game.Tap, 8, 8, 0),
			note(6, 1, game.Tap, 8, 8, 150),
			below,
		},
	}
	chart.Sort()
	return chart
}
