package render

import "time"

type Renderer interface {
	Init() error
	Deinit() error
	Size() (columns, rows int)
	AddDecoration(col, row int, content string, frames int)
	RenderLoop(delay, framePeriod time.Duration, render func(elapsed time.Duration) bool)
	Fill(row, column int, message string)
}
