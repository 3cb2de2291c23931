package theme

import "git.lost.host/meutraa/eotj/internal/game"

type Theme interface {
	RenderNote(kind game.NoteKind, highlight bool) string
	RenderVerdict(v game.Verdict) string
	RenderGrade(grade string) string
	RenderLine() string
}
