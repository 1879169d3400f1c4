package canvas

import (
	"honnef.co/go/curve"
)

// Sink receives path segments in device space.
type Sink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// Discard is a Sink that drops every segment.
var Discard Sink = discard{}

type discard struct{}

func (discard) MoveTo(x, y float64) {}
func (discard) LineTo(x, y float64) {}
func (discard) CubicTo(x1, y1, x2, y2, x3, y3 float64) {}
func (discard) ClosePath() {}

// Op is a single Canvas2D path operation: ["M", x, y], ["L", x, y],
// ["C", x1, y1, x2, y2, x, y] or ["Z"].
type Op []any

// Recorder is a Sink that records segments as Canvas2D operations.
type Recorder struct {
	ops []Op
}

// Ops returns the recorded operations.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Reset discards the recorded operations.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

func (r *Recorder) MoveTo(x, y float64) {
	r.ops = append(r.ops, Op{"M", x, y})
}

func (r *Recorder) LineTo(x, y float64) {
	r.ops = append(r.ops, Op{"L", x, y})
}

func (r *Recorder) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	r.ops = append(r.ops, Op{"C", x1, y1, x2, y2, x3, y3})
}

func (r *Recorder) ClosePath() {
	r.ops = append(r.ops, Op{"Z"})
}

// PathBuilder is a Sink that accumulates segments into a curve.BezPath.
type PathBuilder struct {
	Path curve.BezPath
}

func (b *PathBuilder) MoveTo(x, y float64) {
	b.Path.MoveTo(pt(x, y))
}

func (b *PathBuilder) LineTo(x, y float64) {
	b.Path.LineTo(pt(x, y))
}

func (b *PathBuilder) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	b.Path.CubicTo(pt(x1, y1), pt(x2, y2), pt(x3, y3))
}

func (b *PathBuilder) ClosePath() {
	b.Path.ClosePath()
}

// Bounds returns the tight bounding box of the accumulated path. ok is
// false when the path has no segments.
func (b *PathBuilder) Bounds() (x0, y0, x1, y1 float64, ok bool) {
	if !b.Path.HasSegments() {
		return 0, 0, 0, 0, false
	}
	r := b.Path.BoundingBox()
	return r.X0, r.Y0, r.X1, r.Y1, true
}

type tee []Sink

// Tee returns a Sink that forwards every segment to each of sinks.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) MoveTo(x, y float64) {
	for _, s := range t {
		s.MoveTo(x, y)
	}
}

func (t tee) LineTo(x, y float64) {
	for _, s := range t {
		s.LineTo(x, y)
	}
}

func (t tee) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	for _, s := range t {
		s.CubicTo(x1, y1, x2, y2, x3, y3)
	}
}

func (t tee) ClosePath() {
	for _, s := range t {
		s.ClosePath()
	}
}

func pt(x, y float64) curve.Point {
	return curve.Point{X: x, Y: y}
}
