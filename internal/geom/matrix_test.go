package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplyAppliesRightFirst(t *testing.T) {
	m := Translate(10, 0).Multiply(Scale(2, 2))
	x, y := m.TransformPoint(1, 1)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 2.0, y)
}

func TestInvert(t *testing.T) {
	m := Translate(3, 4).Multiply(Rotate(math.Pi / 3)).Multiply(Scale(2, 5))
	inv, ok := m.Invert()
	require.True(t, ok)

	x, y := m.TransformPoint(7, -2)
	x, y = inv.TransformPoint(x, y)
	assert.InDelta(t, 7, x, 1e-9)
	assert.InDelta(t, -2, y, 1e-9)
	assert.True(t, m.Multiply(inv).IsIdentity())

	_, ok = Scale(0, 1).Invert()
	assert.False(t, ok)
}

func TestTransformVectorIgnoresTranslation(t *testing.T) {
	m := Translate(100, 100).Multiply(Scale(2, 3))
	dx, dy := m.TransformVector(1, 1)
	assert.Equal(t, 2.0, dx)
	assert.Equal(t, 3.0, dy)
}

func TestRotateDegrees(t *testing.T) {
	x, y := RotateDegrees(90).TransformPoint(1, 0)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 1, y, 1e-12)
}

func TestTransformRect(t *testing.T) {
	r := Rotate(math.Pi/2).TransformRect(Rect{X: 0, Y: 0, Width: 2, Height: 1})
	assert.InDelta(t, -1, r.X, 1e-12)
	assert.InDelta(t, 0, r.Y, 1e-12)
	assert.InDelta(t, 1, r.Width, 1e-12)
	assert.InDelta(t, 2, r.Height, 1e-12)
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 1, Height: 1}
	b := Rect{X: 2, Y: -1, Width: 1, Height: 1}
	assert.Equal(t, Rect{X: 0, Y: -1, Width: 3, Height: 2}, a.Union(b))
	assert.Equal(t, a, Rect{}.Union(a))
	assert.True(t, a.Contains(0.5, 0.5))
	assert.False(t, a.Contains(1.5, 0.5))
	assert.Equal(t, Rect{X: 1, Y: 2, Width: 3, Height: 4}, RectFromPoints(4, 6, 1, 2))
}
