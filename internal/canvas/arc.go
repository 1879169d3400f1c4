package canvas

import (
	"math"

	"github.com/inamate/svgpath/internal/geom"
)

// maxArcSweep bounds the angular extent of a single arc call.
const maxArcSweep = 4 * math.Pi

// Arc adds a circular arc of radius r centred on (xc, yc), from angle a1 to
// a2 in the given direction. For ArcPositive a2 is advanced by whole turns
// until a2 >= a1; for ArcNegative it is reduced until a2 <= a1. When there
// is a current point a line is added to the start of the arc.
func (c *Context) Arc(xc, yc, r, a1, a2 float64, dir geom.ArcDirection) {
	if !c.check(xc, yc, r, a1, a2) {
		return
	}

	const turn = 2 * math.Pi
	if dir == geom.ArcNegative {
		if a2 > a1 {
			a2 -= math.Ceil((a2-a1)/turn) * turn
		}
		if a1-a2 > maxArcSweep {
			a2 = a1 - math.Mod(a1-a2, turn) - turn
		}
	} else {
		if a2 < a1 {
			a2 += math.Ceil((a1-a2)/turn) * turn
		}
		if a2-a1 > maxArcSweep {
			a2 = a1 + math.Mod(a2-a1, turn) + turn
		}
	}

	c.LineTo(xc+r*math.Cos(a1), yc+r*math.Sin(a1))
	if r == 0 || a1 == a2 {
		return
	}

	sweep := a2 - a1
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	a := a1
	for i := 0; i < n; i++ {
		b := a + step
		if i == n-1 {
			b = a2
		}
		cosA, sinA := math.Cos(a), math.Sin(a)
		cosB, sinB := math.Cos(b), math.Sin(b)
		c.CurveTo(
			xc+r*(cosA-k*sinA), yc+r*(sinA+k*cosA),
			xc+r*(cosB+k*sinB), yc+r*(sinB-k*cosB),
			xc+r*cosB, yc+r*sinB,
		)
		a = b
	}
}
