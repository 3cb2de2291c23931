package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"git.lost.host/meutraa/eotj/internal/audio"
	"git.lost.host/meutraa/eotj/internal/config"
	"git.lost.host/meutraa/eotj/internal/engine"
	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/input"
	"git.lost.host/meutraa/eotj/internal/judge"
	"git.lost.host/meutraa/eotj/internal/parser"
	"git.lost.host/meutraa/eotj/internal/render"
	"git.lost.host/meutraa/eotj/internal/score"
	"git.lost.host/meutraa/eotj/internal/theme"
	"git.lost.host/meutraa/eotj/internal/timing"
	"github.com/eiannone/keyboard"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

const (
	rowsPerSecond = 12.0 // Scroll speed of a note with speed 1
	laneUnit      = 25.0 // Chart units per terminal column
	verdictFrames = 300
	lingerSec     = 2.0 // Time the final screen stays up after the chart ends
	seekSec       = 5.0
)

// playback is a song time source that can be moved.
type playback interface {
	audio.Clock
	Seek(sec float64) error
}

// Program is an interactive terminal session of one chart.
type Program struct {
	Parser   parser.Parser
	Renderer render.Renderer
	Theme    theme.Theme
	Store    score.Store // Nil when history is disabled

	cfg    config.Config
	logger *logrus.Entry

	engine *engine.Engine
	table  *timing.Table
	keys   *input.KeySource
	clock  playback
	events []input.Event // Everything fed to the engine, saved with the score

	columns, rows  int
	middle, hitRow int
	sideCol        int

	snapshot score.Snapshot
	progress engine.Progress
	result   *score.Result
}

func NewProgram(cfg config.Config, store score.Store, log *logrus.Entry) *Program {
	return &Program{
		Parser:   &parser.DefaultParser{},
		Renderer: &render.DefaultRenderer{},
		Theme:    &theme.DefaultTheme{},
		Store:    store,
		cfg:      cfg,
		logger:   log,
	}
}

func (p *Program) Resize() {
	p.columns, p.rows = p.Renderer.Size()
	p.middle = p.columns >> 1
	p.hitRow = p.rows - 5
	p.sideCol = p.middle - 60
	if p.sideCol < 2 {
		p.sideCol = 2
	}
}

func (p *Program) sink() engine.Sink {
	return engine.SinkFuncs{
		Verdict: func(t judge.Transition) {
			if t.Verdict == game.Unjudged || t.Verdict == game.Passed {
				return
			}
			msg := p.Theme.RenderVerdict(t.Verdict)
			if t.Verdict.Hit() {
				msg += fmt.Sprintf(" %+4.0fms", t.DeltaMs)
			}
			p.Renderer.AddDecoration(p.middle-6, p.hitRow+2, fmt.Sprintf("%-24s", msg), verdictFrames)
		},
		Stats:    func(s score.Snapshot) { p.snapshot = s },
		Progress: func(pr engine.Progress) { p.progress = pr },
		Finish:   func(r score.Result) { p.result = &r },
	}
}

// Run plays the chart at chartFile, with the song at audioFile when it is not
// empty. The session is saved to the store once the chart is finished.
func (p *Program) Run(chartFile, audioFile string) (*score.Result, error) {
	chart, err := p.Parser.Parse(chartFile)
	if nil != err {
		return nil, err
	}
	e, err := engine.New(chart, p.cfg, engine.WithSink(p.sink()), engine.WithLogger(p.logger))
	if nil != err {
		return nil, err
	}
	defer e.Close()
	p.engine = e
	if p.table, err = timing.NewTable(chart.BPMs); nil != err {
		return nil, err
	}
	p.keys = input.NewKeySource(p.cfg.Player.Keys, p.cfg.Player.KeyReleaseMs/1000)

	keyChannel, closeKeys, err := input.OpenKeyboard(128)
	if nil != err {
		return nil, err
	}
	defer func() {
		if err := closeKeys(); nil != err {
			p.logger.WithError(err).Warn("unable to close keyboard")
		}
	}()

	delay := time.Duration(p.cfg.Player.DelayMs * float64(time.Millisecond))
	if audioFile != "" {
		player, err := audio.Open(audioFile)
		if nil != err {
			return nil, err
		}
		defer player.Close()
		if err := player.Start(p.cfg.Player.Rate, delay); nil != err {
			return nil, err
		}
		p.clock = player
	} else {
		p.clock = audio.NewWallClock(clock.RealClock{}, p.cfg.Player.Rate, delay)
	}

	if err := p.Renderer.Init(); nil != err {
		return nil, err
	}
	p.Resize()

	framePeriod := time.Duration(p.cfg.Player.FramePeriodMs * float64(time.Millisecond))
	p.Renderer.RenderLoop(0, framePeriod, func(time.Duration) bool {
		t, ok := p.Update(keyChannel, e.SongTime(p.clock.Position()))
		if !ok {
			return false
		}
		p.Render(t)
		return e.Status() != engine.Finished || t < e.EndTime()+lingerSec
	})
	if err := p.Renderer.Deinit(); nil != err {
		p.logger.WithError(err).Warn("unable to restore terminal")
	}

	if p.result != nil && p.Store != nil {
		if err := p.Store.Save(chart, p.events, p.cfg.Player.Rate, *p.result); nil != err {
			return p.result, err
		}
	}
	return p.result, nil
}

// Update feeds the keys pressed since the last frame and advances the engine
// to song time t. It returns the song time it advanced to, which differs from
// t after a seek, and false when the player quit.
func (p *Program) Update(keyChannel <-chan keyboard.KeyEvent, t float64) (float64, bool) {
	var events []input.Event
	for i := len(keyChannel); i > 0; i-- {
		key := <-keyChannel
		if nil != key.Err {
			p.logger.WithError(key.Err).Warn("keyboard error")
			continue
		}
		switch key.Key {
		case keyboard.KeyEsc:
			return t, false
		case keyboard.KeyArrowLeft, keyboard.KeyArrowRight:
			p.advance(events, t)
			return p.seek(key.Key == keyboard.KeyArrowLeft, t), true
		}
		r := key.Rune
		if key.Key == keyboard.KeySpace {
			r = ' '
		}
		events = append(events, p.keys.Press(r, t)...)
	}
	p.advance(append(events, p.keys.Expire(t)...), t)
	return t, true
}

func (p *Program) advance(events []input.Event, t float64) {
	p.events = append(p.events, events...)
	p.engine.Feed(events...)
	p.engine.Tick(t)
}

// seek moves playback back or forward, lifts held keys and advances the engine
// to the new song time. Input recorded past that time is dropped with the
// judgments it made, so the saved session plays back in one pass.
func (p *Program) seek(back bool, t float64) float64 {
	to := p.clock.Position() + seekSec
	if back {
		to = math.Max(p.clock.Position()-seekSec, 0)
	}
	if err := p.clock.Seek(to); nil != err {
		p.logger.WithError(err).Warn("unable to seek")
		return t
	}
	now := p.engine.SongTime(p.clock.Position())
	p.events = eventsUntil(p.events, now)
	p.logger.WithField("position", to).Debug("seeked")
	p.advance(p.keys.ReleaseAll(now), now)
	return now
}

// eventsUntil drops the events later than sec.
func eventsUntil(events []input.Event, sec float64) []input.Event {
	kept := events[:0]
	for _, e := range events {
		if e.TimeSec <= sec {
			kept = append(kept, e)
		}
	}
	return kept
}

func (p *Program) noteRow(due, speed, t float64) int {
	return p.hitRow - int(math.Round((due-t)*rowsPerSecond*speed))
}

func (p *Program) Render(t float64) {
	blank := strings.Repeat(" ", p.columns)
	for row := 1; row < p.hitRow; row++ {
		p.Renderer.Fill(row, 1, blank)
	}

	for i, n := range p.engine.Chart().Notes {
		if s, ok := p.engine.Verdict(n.ID); ok && s.Judged() {
			continue
		}
		speed := n.Speed
		if speed <= 0 {
			speed = 1
		}
		row := p.noteRow(p.engine.NoteTime(i), speed, t)
		if row < 1 {
			// Later notes are further up the screen, but speeds differ.
			continue
		}
		col := p.middle + int(math.Round(n.LaneOffset/laneUnit))
		if col < 1 || col > p.columns {
			continue
		}
		if n.Kind == game.Hold {
			tail := p.noteRow(p.table.TimeAt(n.EndBeat), speed, t)
			for r := max(tail, 1); r < row && r < p.hitRow; r++ {
				p.Renderer.Fill(r, col, p.Theme.RenderNote(n.Kind, false))
			}
		}
		if row < p.hitRow {
			p.Renderer.Fill(row, col, p.Theme.RenderNote(n.Kind, n.Highlight))
		}
	}
	p.Renderer.Fill(p.hitRow, 1, strings.Repeat(p.Theme.RenderLine(), p.columns))

	p.RenderStatic()
	p.RenderStats()
	p.RenderProgress()
}

func (p *Program) RenderStats() {
	s := p.snapshot
	row := 3
	line := func(format string, args ...interface{}) {
		p.Renderer.Fill(row, p.sideCol, fmt.Sprintf("%-28s", fmt.Sprintf(format, args...)))
		row++
	}
	line("score    %07.0f", s.Score)
	line("combo    %d (%d)", s.Combo, s.MaxCombo)
	line("accuracy %.2f%%", s.Accuracy*100)
	line("judged   %d/%d", s.Judged, s.Total)
	line("mean     %+.1fms", s.MeanErrorMs)
	line("stdev    %.1fms", s.StdevErrorMs)
	row++
	for _, v := range game.Verdicts {
		p.Renderer.Fill(row, p.sideCol, fmt.Sprintf("%s %5d   ", p.Theme.RenderVerdict(v), s.Counts[v]))
		row++
	}
	if p.result != nil {
		row++
		p.Renderer.Fill(row, p.sideCol, "grade    "+p.Theme.RenderGrade(p.result.Grade))
	}
}

func (p *Program) RenderProgress() {
	width := p.columns - 2
	if width < 1 {
		return
	}
	filled := int(math.Round(p.progress.Fraction * float64(width)))
	p.Renderer.Fill(p.rows, 2, strings.Repeat("━", filled)+strings.Repeat("─", width-filled))
}

// RenderStatic draws the chart title and the key help.
func (p *Program) RenderStatic() {
	m := p.engine.Chart().Meta
	p.Renderer.Fill(1, p.sideCol, fmt.Sprintf("%s - %s [%s]", m.Composer, m.Name, m.Level))
	p.Renderer.Fill(p.rows-1, p.sideCol, "keys "+p.cfg.Player.Keys+"  ←/→ seek  esc quits")
}
