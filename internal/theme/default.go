package theme

import (
	"fmt"

	"git.lost.host/meutraa/eotj/internal/game"
	"github.com/lucasb-eyer/go-colorful"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(kind game.NoteKind, highlight bool) string {
	c := NoteColor(kind)
	if highlight {
		c = c.BlendLab(highlightColor, 0.5).Clamped()
	}
	return paint(c, syms[kind])
}

func (t *DefaultTheme) RenderVerdict(v game.Verdict) string {
	return paint(VerdictColor(v), fmt.Sprintf("%12v", v))
}

func (t *DefaultTheme) RenderGrade(grade string) string {
	c, ok := gradeColors[grade]
	if !ok {
		c = white
	}
	return paint(c, grade)
}

func (t *DefaultTheme) RenderLine() string {
	return paint(lineColor, lineSym)
}

const (
	lineSym = "─"
)

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

var (
	syms = [...]string{
		game.Tap:   "▬",
		game.Drag:  "▭",
		game.Flick: "▲",
		game.Hold:  "█",
	}
	noteColors = [...]colorful.Color{
		game.Tap:   rgb(10, 195, 255),
		game.Drag:  rgb(240, 237, 105),
		game.Flick: rgb(254, 67, 101),
		game.Hold:  rgb(10, 195, 255),
	}
	verdictColors = map[game.Verdict]colorful.Color{
		game.Perfect:   rgb(255, 236, 159),
		game.GoodEarly: rgb(180, 225, 255),
		game.GoodLate:  rgb(180, 225, 255),
		game.Bad:       rgb(236, 30, 0),
		game.Miss:      rgb(106, 106, 106),
		game.Passed:    rgb(60, 60, 60),
	}
	gradeColors = map[string]colorful.Color{
		"φ":    rgb(255, 236, 159),
		"V-FC": rgb(180, 225, 255),
		"V":    rgb(236, 195, 0),
		"S":    rgb(236, 128, 0),
		"A":    rgb(0, 236, 128),
		"B":    rgb(0, 118, 236),
		"C":    rgb(106, 0, 236),
		"F":    rgb(106, 106, 106),
	}
	highlightColor = rgb(255, 236, 159)
	lineColor      = rgb(254, 255, 169)
	white          = rgb(255, 255, 255)
)

// NoteColor is the base color of a note kind.
func NoteColor(kind game.NoteKind) colorful.Color {
	if int(kind) >= len(noteColors) {
		return white
	}
	return noteColors[kind]
}

// VerdictColor is the color a verdict is shown in, white when unjudged.
func VerdictColor(v game.Verdict) colorful.Color {
	c, ok := verdictColors[v]
	if !ok {
		return white
	}
	return c
}

func paint(c colorful.Color, s string) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", r, g, b, s)
}
