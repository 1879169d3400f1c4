package canvas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/svgpath/internal/geom"
)

func TestRecorderLines(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	c.MoveTo(1, 2)
	c.LineTo(3, 4)
	c.RelLineTo(1, 1)
	c.ClosePath()

	require.NoError(t, c.Err())
	assert.Equal(t, []Op{
		{"M", 1.0, 2.0},
		{"L", 3.0, 4.0},
		{"L", 4.0, 5.0},
		{"Z"},
	}, rec.Ops())

	x, y := c.CurrentPoint()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 2.0, y)
}

func TestLineToWithoutCurrentPointMoves(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	assert.False(t, c.HasCurrentPoint())
	c.LineTo(5, 5)
	assert.Equal(t, []Op{{"M", 5.0, 5.0}}, rec.Ops())
	assert.True(t, c.HasCurrentPoint())
}

func TestRelativeWithoutCurrentPointStartsAtOrigin(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	c.RelMoveTo(2, 3)
	c.RelCurveTo(1, 0, 1, 1, 0, 1)
	assert.Equal(t, []Op{
		{"M", 2.0, 3.0},
		{"C", 3.0, 3.0, 3.0, 4.0, 2.0, 4.0},
	}, rec.Ops())
}

func TestCurrentPointIsInUserSpace(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	c.Transform(geom.Translate(10, 20))
	c.Transform(geom.Scale(2, 2))
	c.MoveTo(1, 1)

	assert.Equal(t, []Op{{"M", 12.0, 22.0}}, rec.Ops())
	x, y := c.CurrentPoint()
	assert.InDelta(t, 1, x, 1e-12)
	assert.InDelta(t, 1, y, 1e-12)

	c.RelLineTo(1, 0)
	assert.Equal(t, Op{"L", 14.0, 22.0}, rec.Ops()[1])
}

func TestSaveRestore(t *testing.T) {
	c := New(nil)
	c.Save()
	c.Transform(geom.Scale(3, 3))
	c.MoveTo(1, 1)
	c.Restore()

	require.NoError(t, c.Err())
	assert.True(t, c.Matrix().IsIdentity())
	x, y := c.CurrentPoint()
	assert.InDelta(t, 3, x, 1e-12)
	assert.InDelta(t, 3, y, 1e-12)
}

func TestNewSubPathClearsCurrentPoint(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	c.MoveTo(1, 1)
	c.NewSubPath()
	assert.False(t, c.HasCurrentPoint())
	x, y := c.CurrentPoint()
	assert.Zero(t, x)
	assert.Zero(t, y)
	c.ClosePath()
	assert.Len(t, rec.Ops(), 1)
}

func TestErrorsAreSticky(t *testing.T) {
	tests := []struct {
		name string
		do   func(c *Context)
		want error
	}{
		{"nan coordinate", func(c *Context) { c.LineTo(math.NaN(), 0) }, ErrInvalidCoordinate},
		{"infinite curve", func(c *Context) { c.CurveTo(0, 0, 0, 0, math.Inf(1), 0) }, ErrInvalidCoordinate},
		{"singular matrix", func(c *Context) { c.Transform(geom.Scale(0, 1)) }, ErrInvalidMatrix},
		{"unbalanced restore", func(c *Context) { c.Restore() }, ErrInvalidRestore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Recorder{}
			c := New(rec)
			c.MoveTo(0, 0)
			tt.do(c)
			require.ErrorIs(t, c.Err(), tt.want)

			c.LineTo(1, 1)
			c.Restore()
			assert.ErrorIs(t, c.Err(), tt.want)
			assert.Len(t, rec.Ops(), 1)
		})
	}
}

func endPoint(op Op) (float64, float64) {
	return op[len(op)-2].(float64), op[len(op)-1].(float64)
}

func TestArcQuarter(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	c.Arc(0, 0, 10, 0, math.Pi/2, geom.ArcPositive)

	ops := rec.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, "M", ops[0][0])
	assert.Equal(t, "C", ops[1][0])
	x, y := endPoint(ops[1])
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)

	k := 4.0 / 3.0 * math.Tan(math.Pi/8) * 10
	assert.InDelta(t, 10, ops[1][1], 1e-9)
	assert.InDelta(t, k, ops[1][2], 1e-9)
}

func TestArcNormalisesAngles(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	// a2 < a1 with a positive sweep goes the long way round.
	c.Arc(0, 0, 1, math.Pi/2, 0, geom.ArcPositive)
	ops := rec.Ops()
	assert.Len(t, ops, 4)
	x, y := endPoint(ops[len(ops)-1])
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	rec.Reset()
	c.NewSubPath()
	c.Arc(0, 0, 1, 0, math.Pi/2, geom.ArcNegative)
	ops = rec.Ops()
	assert.Len(t, ops, 4)
	x, y = endPoint(ops[len(ops)-1])
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)
}

func TestArcConnectsToCurrentPoint(t *testing.T) {
	rec := &Recorder{}
	c := New(rec)
	c.MoveTo(-5, 0)
	c.Arc(0, 0, 1, 0, math.Pi, geom.ArcPositive)
	ops := rec.Ops()
	assert.Equal(t, Op{"L", 1.0, 0.0}, ops[1])
}

func TestPathBuilderBounds(t *testing.T) {
	b := &PathBuilder{}
	c := New(b)
	_, _, _, _, ok := b.Bounds()
	assert.False(t, ok)

	c.Transform(geom.Translate(5, 5))
	c.Arc(0, 0, 2, 0, 2*math.Pi, geom.ArcPositive)
	c.ClosePath()
	require.NoError(t, c.Err())

	x0, y0, x1, y1, ok := b.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 3, x0, 1e-3)
	assert.InDelta(t, 3, y0, 1e-3)
	assert.InDelta(t, 7, x1, 1e-3)
	assert.InDelta(t, 7, y1, 1e-3)
}

func TestTee(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	c := New(Tee(a, b))
	c.MoveTo(0, 0)
	c.CurveTo(1, 1, 2, 2, 3, 3)
	assert.Equal(t, a.Ops(), b.Ops())
	assert.Len(t, a.Ops(), 2)
}
