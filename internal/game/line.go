package game

import "math"

// Line is a judgment line. Parent is an index into the same collection, -1 for
// a root line.
type Line struct {
	Index    int
	Parent   int
	X, Y     float64
	Rotation float64 // Radians
}

// Pose is where a line is in chart space.
type Pose struct {
	X, Y     float64
	Rotation float64
}

// Project returns the distance of (x, y) along the line from its origin.
func (p Pose) Project(x, y float64) float64 {
	return (x-p.X)*math.Cos(p.Rotation) + (y-p.Y)*math.Sin(p.Rotation)
}

// Compose places a child pose relative to its parent. Only the position is
// inherited, a child keeps its own rotation.
func (p Pose) Compose(child Pose) Pose {
	sin, cos := math.Sincos(p.Rotation)
	return Pose{
		X:        p.X + child.X*cos - child.Y*sin,
		Y:        p.Y + child.X*sin + child.Y*cos,
		Rotation: child.Rotation,
	}
}

// LineOrder returns the line indexes with every parent before its children.
func LineOrder(lines []Line) ([]int, error) {
	var errs ValidationErrors
	children := make([][]int, len(lines))
	roots := []int{}
	for i, l := range lines {
		switch {
		case l.Parent < 0:
			roots = append(roots, i)
		case l.Parent >= len(lines):
			errs = append(errs, ValidationError{
				Field:   fieldf("lines[%d].parent", i),
				Message: fieldf("references missing line %d", l.Parent),
			})
		case l.Parent == i:
			errs = append(errs, ValidationError{
				Field:   fieldf("lines[%d].parent", i),
				Message: "line is its own parent",
			})
		default:
			children[l.Parent] = append(children[l.Parent], i)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	order := make([]int, 0, len(lines))
	for q := roots; len(q) > 0; {
		i := q[0]
		q = q[1:]
		order = append(order, i)
		q = append(q, children[i]...)
	}
	if len(order) != len(lines) {
		seen := make([]bool, len(lines))
		for _, i := range order {
			seen[i] = true
		}
		for i := range lines {
			if !seen[i] {
				errs = append(errs, ValidationError{
					Field:   fieldf("lines[%d].parent", i),
					Message: "line is part of a parent cycle",
				})
			}
		}
		return nil, errs
	}
	return order, nil
}

// ResolvePoses turns per-line local poses into chart space poses, walking
// lines in order. dst is reused when large enough.
func ResolvePoses(lines []Line, order []int, local func(i int) Pose, dst []Pose) []Pose {
	if cap(dst) < len(lines) {
		dst = make([]Pose, len(lines))
	}
	dst = dst[:len(lines)]
	for _, i := range order {
		p := local(i)
		if parent := lines[i].Parent; parent >= 0 {
			p = dst[parent].Compose(p)
		}
		dst[i] = p
	}
	return dst
}
