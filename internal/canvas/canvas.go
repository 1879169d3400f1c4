// Package canvas implements a vector drawing context with a current
// transformation matrix, a current point and sticky error status. Path
// segments are emitted in device space to a Sink.
package canvas

import (
	"errors"
	"math"

	"github.com/inamate/svgpath/internal/geom"
)

var (
	ErrInvalidCoordinate = errors.New("canvas: non-finite coordinate")
	ErrInvalidMatrix     = errors.New("canvas: matrix is not invertible")
	ErrInvalidRestore    = errors.New("canvas: restore without matching save")
)

// Context is a drawing context. The zero value is not usable; call New.
//
// Only the transform is saved and restored. The current point and the
// emitted path are not part of the saved state.
type Context struct {
	sink  Sink
	ctm   geom.Matrix
	stack []geom.Matrix

	// current point and sub-path start, in device space
	curX, curY     float64
	startX, startY float64
	hasCur         bool

	err error
}

// New returns a context with an identity transform writing to sink. A nil
// sink discards all segments.
func New(sink Sink) *Context {
	if sink == nil {
		sink = Discard
	}
	return &Context{sink: sink, ctm: geom.Identity()}
}

// Err returns the first error encountered, if any.
func (c *Context) Err() error {
	return c.err
}

func (c *Context) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// check reports whether drawing may continue with the given arguments.
func (c *Context) check(vs ...float64) bool {
	if c.err != nil {
		return false
	}
	if !finite(vs...) {
		c.setErr(ErrInvalidCoordinate)
		return false
	}
	return true
}

// Matrix returns the current transformation matrix.
func (c *Context) Matrix() geom.Matrix {
	return c.ctm
}

// SetMatrix replaces the current transformation matrix.
func (c *Context) SetMatrix(m geom.Matrix) {
	if !c.check(m[:]...) {
		return
	}
	if !m.Invertible() {
		c.setErr(ErrInvalidMatrix)
		return
	}
	c.ctm = m
}

// Transform applies m before the current transformation.
func (c *Context) Transform(m geom.Matrix) {
	c.SetMatrix(c.ctm.Multiply(m))
}

// Save pushes the current transformation matrix.
func (c *Context) Save() {
	if c.err != nil {
		return
	}
	c.stack = append(c.stack, c.ctm)
}

// Restore pops the transformation matrix pushed by the matching Save.
func (c *Context) Restore() {
	if c.err != nil {
		return
	}
	if len(c.stack) == 0 {
		c.setErr(ErrInvalidRestore)
		return
	}
	c.ctm = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// HasCurrentPoint reports whether a current point is defined.
func (c *Context) HasCurrentPoint() bool {
	return c.hasCur
}

// CurrentPoint returns the current point in user space, or (0, 0) when
// there is no current point.
func (c *Context) CurrentPoint() (float64, float64) {
	if !c.hasCur {
		return 0, 0
	}
	inv, _ := c.ctm.Invert()
	return inv.TransformPoint(c.curX, c.curY)
}

// relBase returns the device-space point that relative operations start
// from. Without a current point that is the user-space origin.
func (c *Context) relBase() (float64, float64) {
	if c.hasCur {
		return c.curX, c.curY
	}
	return c.ctm.TransformPoint(0, 0)
}

func (c *Context) moveDevice(x, y float64) {
	c.sink.MoveTo(x, y)
	c.curX, c.curY = x, y
	c.startX, c.startY = x, y
	c.hasCur = true
}

func (c *Context) lineDevice(x, y float64) {
	if !c.hasCur {
		c.moveDevice(x, y)
		return
	}
	c.sink.LineTo(x, y)
	c.curX, c.curY = x, y
}

func (c *Context) curveDevice(x1, y1, x2, y2, x3, y3 float64) {
	if !c.hasCur {
		c.moveDevice(x1, y1)
	}
	c.sink.CubicTo(x1, y1, x2, y2, x3, y3)
	c.curX, c.curY = x3, y3
}

// MoveTo begins a new sub-path at (x, y).
func (c *Context) MoveTo(x, y float64) {
	if !c.check(x, y) {
		return
	}
	c.moveDevice(c.ctm.TransformPoint(x, y))
}

// RelMoveTo begins a new sub-path offset from the current point.
func (c *Context) RelMoveTo(dx, dy float64) {
	if !c.check(dx, dy) {
		return
	}
	bx, by := c.relBase()
	vx, vy := c.ctm.TransformVector(dx, dy)
	c.moveDevice(bx+vx, by+vy)
}

// LineTo adds a line to (x, y). Without a current point it acts as MoveTo.
func (c *Context) LineTo(x, y float64) {
	if !c.check(x, y) {
		return
	}
	c.lineDevice(c.ctm.TransformPoint(x, y))
}

// RelLineTo adds a line offset from the current point.
func (c *Context) RelLineTo(dx, dy float64) {
	if !c.check(dx, dy) {
		return
	}
	bx, by := c.relBase()
	vx, vy := c.ctm.TransformVector(dx, dy)
	if !c.hasCur {
		c.moveDevice(bx, by)
	}
	c.lineDevice(bx+vx, by+vy)
}

// CurveTo adds a cubic Bézier curve from the current point.
func (c *Context) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !c.check(x1, y1, x2, y2, x3, y3) {
		return
	}
	dx1, dy1 := c.ctm.TransformPoint(x1, y1)
	dx2, dy2 := c.ctm.TransformPoint(x2, y2)
	dx3, dy3 := c.ctm.TransformPoint(x3, y3)
	c.curveDevice(dx1, dy1, dx2, dy2, dx3, dy3)
}

// RelCurveTo adds a cubic Bézier curve with all points offset from the
// current point.
func (c *Context) RelCurveTo(dx1, dy1, dx2, dy2, dx3, dy3 float64) {
	if !c.check(dx1, dy1, dx2, dy2, dx3, dy3) {
		return
	}
	bx, by := c.relBase()
	if !c.hasCur {
		c.moveDevice(bx, by)
	}
	v1x, v1y := c.ctm.TransformVector(dx1, dy1)
	v2x, v2y := c.ctm.TransformVector(dx2, dy2)
	v3x, v3y := c.ctm.TransformVector(dx3, dy3)
	c.curveDevice(bx+v1x, by+v1y, bx+v2x, by+v2y, bx+v3x, by+v3y)
}

// NewSubPath clears the current point without emitting anything, so the
// next drawing operation does not connect to the previous one.
func (c *Context) NewSubPath() {
	if c.err != nil {
		return
	}
	c.hasCur = false
}

// ClosePath closes the current sub-path and moves the current point to its
// start.
func (c *Context) ClosePath() {
	if c.err != nil || !c.hasCur {
		return
	}
	c.sink.ClosePath()
	c.curX, c.curY = c.startX, c.startY
}
