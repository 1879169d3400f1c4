// Package render replays parsed path commands onto a drawing canvas.
package render

import (
	"errors"
	"fmt"

	"github.com/inamate/svgpath/internal/geom"
	"github.com/inamate/svgpath/internal/pathdata"
)

// ErrUnknownCommand is returned for a command kind the replayer does not handle.
var ErrUnknownCommand = errors.New("unknown path command")

// Canvas is the drawing surface a path is replayed onto. Coordinates are in
// user space, mapped through the canvas transform. Errors are sticky: once
// Err returns non-nil every later call is ignored.
type Canvas interface {
	MoveTo(x, y float64)
	RelMoveTo(dx, dy float64)
	LineTo(x, y float64)
	RelLineTo(dx, dy float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	RelCurveTo(dx1, dy1, dx2, dy2, dx3, dy3 float64)
	Arc(xc, yc, r, a1, a2 float64, dir geom.ArcDirection)
	NewSubPath()
	ClosePath()
	Save()
	Restore()
	Transform(m geom.Matrix)
	// CurrentPoint returns the current point in user space, or (0, 0) if
	// there is none.
	CurrentPoint() (x, y float64)
	Err() error
}

// Context executes commands against a canvas. It remembers the last
// control point of a curve so that smooth curves can reflect it.
type Context struct {
	canvas Canvas

	ctrlX, ctrlY float64
	hasCtrl      bool
}

// NewContext returns a context drawing onto c.
func NewContext(c Canvas) *Context {
	return &Context{canvas: c}
}

// Replay executes every command of path on c in order and stops at the
// first canvas error.
func Replay(path pathdata.Path, c Canvas) error {
	return NewContext(c).Run(path)
}

// Run executes every command of path in order. A canvas error aborts the
// run and is returned wrapped with the index and kind of the command.
func (ctx *Context) Run(path pathdata.Path) error {
	for i, cmd := range path {
		if err := ctx.Execute(cmd); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Kind, err)
		}
		if err := ctx.canvas.Err(); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Kind, err)
		}
	}
	return nil
}

// Execute issues the canvas calls for a single command.
func (ctx *Context) Execute(cmd pathdata.Command) error {
	c := ctx.canvas
	switch cmd.Kind {
	case pathdata.MoveTo:
		if cmd.Absolute {
			c.MoveTo(cmd.X, cmd.Y)
		} else {
			c.RelMoveTo(cmd.X, cmd.Y)
		}
		ctx.clearControl()

	case pathdata.LineTo:
		if cmd.Absolute {
			c.LineTo(cmd.X, cmd.Y)
		} else {
			c.RelLineTo(cmd.X, cmd.Y)
		}
		ctx.clearControl()

	case pathdata.LineToHorizontal:
		// The control point survives a horizontal line.
		if cmd.Absolute {
			_, y := c.CurrentPoint()
			c.LineTo(cmd.X, y)
		} else {
			c.RelLineTo(cmd.X, 0)
		}

	case pathdata.LineToVertical:
		if cmd.Absolute {
			x, _ := c.CurrentPoint()
			c.LineTo(x, cmd.Y)
		} else {
			c.RelLineTo(0, cmd.Y)
		}
		ctx.clearControl()

	case pathdata.ClosePath:
		c.ClosePath()
		ctx.clearControl()

	case pathdata.CubicBezier:
		ctx.cubic(cmd)

	case pathdata.QuadraticBezier:
		ctx.quadratic(cmd)

	case pathdata.EllipticalArc:
		ctx.arc(cmd)
		ctx.clearControl()

	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
	}
	return nil
}

func (ctx *Context) cubic(cmd pathdata.Command) {
	c := ctx.canvas
	cx, cy := c.CurrentPoint()

	x1, y1 := cmd.CP1X, cmd.CP1Y
	if cmd.Smooth {
		x1, y1 = ctx.reflectControl(cx, cy)
		if !cmd.Absolute {
			x1 -= cx
			y1 -= cy
		}
	}

	if cmd.Absolute {
		c.CurveTo(x1, y1, cmd.CP2X, cmd.CP2Y, cmd.X, cmd.Y)
		ctx.setControl(cmd.CP2X, cmd.CP2Y)
	} else {
		c.RelCurveTo(x1, y1, cmd.CP2X, cmd.CP2Y, cmd.X, cmd.Y)
		ctx.setControl(cx+cmd.CP2X, cy+cmd.CP2Y)
	}
}

// quadratic draws the curve as the equivalent cubic, always in absolute
// coordinates.
func (ctx *Context) quadratic(cmd pathdata.Command) {
	c := ctx.canvas
	cx, cy := c.CurrentPoint()

	var qx, qy float64
	if cmd.Smooth {
		qx, qy = ctx.reflectControl(cx, cy)
	} else {
		qx, qy = cmd.CP1X, cmd.CP1Y
		if !cmd.Absolute {
			qx += cx
			qy += cy
		}
	}

	ex, ey := cmd.X, cmd.Y
	if !cmd.Absolute {
		ex += cx
		ey += cy
	}

	c.CurveTo(
		cx+2.0/3.0*(qx-cx), cy+2.0/3.0*(qy-cy),
		ex+2.0/3.0*(qx-ex), ey+2.0/3.0*(qy-ey),
		ex, ey,
	)
	ctx.setControl(qx, qy)
}

// reflectControl reflects the last control point about the current point.
// Without a remembered control point the current point itself is used.
func (ctx *Context) reflectControl(cx, cy float64) (float64, float64) {
	px, py := cx, cy
	if ctx.hasCtrl {
		px, py = ctx.ctrlX, ctx.ctrlY
	}
	return 2*cx - px, 2*cy - py
}

func (ctx *Context) setControl(x, y float64) {
	ctx.ctrlX, ctx.ctrlY = x, y
	ctx.hasCtrl = true
}

func (ctx *Context) clearControl() {
	ctx.ctrlX, ctx.ctrlY = 0, 0
	ctx.hasCtrl = false
}

// Control returns the remembered control point in absolute coordinates.
func (ctx *Context) Control() (x, y float64, ok bool) {
	return ctx.ctrlX, ctx.ctrlY, ctx.hasCtrl
}
