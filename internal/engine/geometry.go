package engine

import "git.lost.host/meutraa/eotj/internal/game"

// Geometry gives the pose of a line relative to its parent at a beat.
type Geometry interface {
	Local(line int, beat float64) game.Pose
}

// StaticGeometry keeps every line where the chart places it.
type StaticGeometry struct {
	Lines []game.Line
}

func (g StaticGeometry) Local(line int, _ float64) game.Pose {
	l := g.Lines[line]
	return game.Pose{X: l.X, Y: l.Y, Rotation: l.Rotation}
}
