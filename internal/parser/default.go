package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"git.lost.host/meutraa/eotj/internal/game"
	"github.com/gruntwork-io/go-commons/errors"
	"gopkg.in/yaml.v3"
)

type chartFile struct {
	Meta  metaFile   `json:"META" yaml:"META"`
	BPMs  []bpmFile  `json:"BPMList" yaml:"BPMList"`
	Lines []lineFile `json:"judgeLineList" yaml:"judgeLineList"`
}

type metaFile struct {
	Name     string  `json:"name" yaml:"name"`
	Composer string  `json:"composer" yaml:"composer"`
	Charter  string  `json:"charter" yaml:"charter"`
	Level    string  `json:"level" yaml:"level"`
	Offset   float64 `json:"offset" yaml:"offset"`     // Milliseconds
	Duration float64 `json:"duration" yaml:"duration"` // Seconds, 0 when unknown
}

type bpmFile struct {
	StartTime beat    `json:"startTime" yaml:"startTime"`
	BPM       float64 `json:"bpm" yaml:"bpm"`
}

type lineFile struct {
	Father *int       `json:"father" yaml:"father"`
	X      float64    `json:"x" yaml:"x"`
	Y      float64    `json:"y" yaml:"y"`
	Rotate float64    `json:"rotate" yaml:"rotate"` // Degrees
	Notes  []noteFile `json:"notes" yaml:"notes"`
}

type noteFile struct {
	Type      int      `json:"type" yaml:"type"`
	StartTime beat     `json:"startTime" yaml:"startTime"`
	EndTime   beat     `json:"endTime" yaml:"endTime"`
	PositionX float64  `json:"positionX" yaml:"positionX"`
	Speed     *float64 `json:"speed" yaml:"speed"`
	Size      *float64 `json:"size" yaml:"size"`
	IsFake    int      `json:"isFake" yaml:"isFake"`
	Above     int      `json:"above" yaml:"above"`
}

var kinds = map[int]game.NoteKind{
	1: game.Tap,
	2: game.Hold,
	3: game.Flick,
	4: game.Drag,
}

type DefaultParser struct{}

// Parse reads a chart file. The format follows the extension, .yaml and .yml
// are YAML and everything else is JSON.
func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, errors.WithStackTrace(fmt.Errorf("read chart: %w", err))
	}
	chart, err := p.Decode(data, filepath.Ext(file))
	if nil != err {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return chart, nil
}

// Decode builds a sorted chart from file contents. Beat fields that cannot be
// converted are reported together as game.ValidationErrors.
func (p *DefaultParser) Decode(data []byte, ext string) (*game.Chart, error) {
	var f chartFile
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); nil != err {
			return nil, fmt.Errorf("decode YAML chart: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &f); nil != err {
			return nil, fmt.Errorf("decode JSON chart: %w", err)
		}
	}
	return build(&f)
}

func build(f *chartFile) (*game.Chart, error) {
	var errs game.ValidationErrors
	toBeat := func(field string, b beat) float64 {
		v, err := b.value()
		if nil != err {
			errs = append(errs, game.ValidationError{Field: field, Message: err.Error()})
		}
		return v
	}

	chart := &game.Chart{
		Meta: game.Meta{
			Name:        f.Meta.Name,
			Composer:    f.Meta.Composer,
			Charter:     f.Meta.Charter,
			Level:       f.Meta.Level,
			OffsetMs:    f.Meta.Offset,
			DurationSec: f.Meta.Duration,
		},
	}

	for i, b := range f.BPMs {
		chart.BPMs = append(chart.BPMs, game.BPMChange{
			StartBeat: toBeat(fmt.Sprintf("BPMList[%d].startTime", i), b.StartTime),
			BPM:       b.BPM,
		})
	}

	id := 0
	for i, l := range f.Lines {
		parent := -1
		if l.Father != nil {
			parent = *l.Father
		}
		chart.Lines = append(chart.Lines, game.Line{
			Index:    i,
			Parent:   parent,
			X:        l.X,
			Y:        l.Y,
			Rotation: l.Rotate * math.Pi / 180,
		})
		for j, n := range l.Notes {
			field := fmt.Sprintf("judgeLineList[%d].notes[%d]", i, j)
			kind, ok := kinds[n.Type]
			if !ok {
				errs = append(errs, game.ValidationError{Field: field + ".type", Message: fmt.Sprintf("unknown note type %d", n.Type)})
				continue
			}
			note := &game.Note{
				ID:         id,
				LineIndex:  i,
				Kind:       kind,
				StartBeat:  toBeat(field+".startTime", n.StartTime),
				LaneOffset: n.PositionX,
				Speed:      1,
				Size:       1,
				IsFake:     n.IsFake != 0,
				Side:       game.Below,
			}
			note.EndBeat = note.StartBeat
			if kind == game.Hold {
				note.EndBeat = toBeat(field+".endTime", n.EndTime)
			}
			if n.Speed != nil {
				note.Speed = *n.Speed
			}
			if n.Size != nil {
				note.Size = *n.Size
			}
			if n.Above == 1 {
				note.Side = game.Above
			}
			chart.Notes = append(chart.Notes, note)
			id++
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	chart.Sort()
	return chart, nil
}
