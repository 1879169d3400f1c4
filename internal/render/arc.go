package render

import (
	"math"

	"github.com/inamate/svgpath/internal/geom"
	"github.com/inamate/svgpath/internal/pathdata"
)

// ArcGeometry is the unit-circle arc that, drawn under
// Translate(OriginX, OriginY) * Rotate(rotation) * Scale(A, B), approximates
// an SVG elliptical arc.
type ArcGeometry struct {
	// A and B are the semi-axes, A >= B, after radii correction.
	A, B float64
	// CX, CY is the computed centre.
	CX, CY float64
	// OriginX, OriginY is the translation applied before rotating.
	OriginX, OriginY float64
	// Start and End are unit-circle angles in radians.
	Start, End float64
	Dir        geom.ArcDirection
}

// ResolveArc computes the arc parameters for an arc from (x1, y1) to
// (x2, y2) with radii rx, ry (both > 0). Radii too small to span the
// endpoints are scaled up uniformly.
func ResolveArc(x1, y1, rx, ry, x2, y2 float64, largeArc, sweep bool) ArcGeometry {
	if rx < ry {
		rx, ry = ry, rx
	}
	a, b := rx, ry

	r1 := (x1 - x2) / (2 * a)
	r2 := (y2 - y1) / (2 * b)
	if lambda := math.Hypot(r1, r2); lambda > 1 {
		a *= lambda
		b *= lambda
		r1 /= lambda
		r2 /= lambda
	}

	a1 := math.Atan2(r1, r2)
	a2 := math.Asin(math.Min(1, math.Hypot(r1, r2)))
	t1 := a1 + a2
	t2 := a1 - a2

	g := ArcGeometry{
		A:  a,
		B:  b,
		CX: x1 + a*math.Cos(t1),
		CY: y1 + b*math.Sin(t1),
	}

	if largeArc == sweep {
		g.OriginX, g.OriginY = g.CX, g.CY
	} else {
		g.OriginX, g.OriginY = g.CX-a, g.CY+b
	}

	switch {
	case largeArc && sweep:
		g.Start, g.End, g.Dir = math.Pi/2-t1, math.Pi/2-t2, geom.ArcNegative
	case largeArc && !sweep:
		g.Start, g.End, g.Dir = t1, t2, geom.ArcPositive
	case !largeArc && sweep:
		g.Start, g.End, g.Dir = t1, t2, geom.ArcNegative
	default:
		g.Start, g.End, g.Dir = math.Pi/2-t1, math.Pi/2-t2, geom.ArcPositive
	}
	return g
}

// arc draws an elliptical arc command. The arc is drawn as its own
// sub-path under a temporary transform, after which the current point is
// moved to the exact endpoint.
func (ctx *Context) arc(cmd pathdata.Command) {
	c := ctx.canvas
	x1, y1 := c.CurrentPoint()
	x2, y2 := cmd.X, cmd.Y
	if !cmd.Absolute {
		x2 += x1
		y2 += y1
	}

	if x1 == x2 && y1 == y2 {
		return
	}
	if cmd.RX == 0 || cmd.RY == 0 {
		c.LineTo(x2, y2)
		return
	}

	g := ResolveArc(x1, y1, cmd.RX, cmd.RY, x2, y2, cmd.LargeArc, cmd.Sweep)

	c.Save()
	c.NewSubPath()
	c.Transform(geom.Translate(g.OriginX, g.OriginY))
	c.Transform(geom.Rotate(cmd.Rotation))
	c.Transform(geom.Scale(g.A, g.B))
	c.Arc(0, 0, 1, g.Start, g.End, g.Dir)
	c.Restore()
	c.MoveTo(x2, y2)
}
