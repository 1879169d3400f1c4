// Package raster paints compiled draw commands into an RGBA image.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"iter"
	"math"

	"golang.org/x/image/vector"
	"honnef.co/go/curve"

	"github.com/inamate/svgpath/internal/canvas"
	"github.com/inamate/svgpath/internal/engine"
	"github.com/inamate/svgpath/internal/geom"
)

const (
	// tolerance is the maximum distance, in user units, between a curve
	// and its stroke outline approximation.
	tolerance = 0.05

	defaultMiterLimit = 4
)

var ErrInvalidSize = errors.New("raster: invalid image size")

// Options configures a render.
type Options struct {
	Width, Height int
	// Background is painted before any command. Empty means transparent.
	Background string
	// Transform maps draw-command world space onto the image. The zero
	// value is treated as the identity.
	Transform geom.Matrix
	// MaxSize bounds Width and Height. Zero means no limit.
	MaxSize int
}

// Render paints cmds in order onto a new image.
func Render(cmds []engine.DrawCommand, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	if opts.MaxSize > 0 && (opts.Width > opts.MaxSize || opts.Height > opts.MaxSize) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidSize, opts.Width, opts.Height, opts.MaxSize)
	}

	view := opts.Transform
	if view == (geom.Matrix{}) {
		view = geom.Identity()
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	if bg, ok := ParseColor(opts.Background); ok {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	p := &painter{dst: dst, z: vector.NewRasterizer(opts.Width, opts.Height)}
	for _, cmd := range cmds {
		if cmd.Op != "path" || len(cmd.Path) == 0 {
			continue
		}
		m := view
		if len(cmd.Transform) == 6 {
			m = view.Multiply(geom.Matrix(cmd.Transform))
		}
		local := toBezPath(cmd.Path)

		if fill, ok := ParseColor(cmd.Fill); ok {
			p.fill(local.PathElements(tolerance), m, withOpacity(fill, cmd.Opacity))
		}
		if stroke, ok := ParseColor(cmd.Stroke); ok && cmd.StrokeWidth > 0 {
			outline := curve.StrokePath(
				local.PathElements(tolerance),
				curve.Stroke{
					Width:      cmd.StrokeWidth,
					Join:       curve.MiterJoin,
					MiterLimit: defaultMiterLimit,
					StartCap:   curve.ButtCap,
					EndCap:     curve.ButtCap,
				},
				curve.StrokeOpts{},
				tolerance,
			)
			p.fill(outline, m, withOpacity(stroke, cmd.Opacity))
		}
	}
	return dst, nil
}

// EncodePNG writes img as a PNG image.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}

// toBezPath converts recorded Canvas2D operations back into a path.
func toBezPath(ops []canvas.Op) curve.BezPath {
	b := &canvas.PathBuilder{}
	for _, op := range ops {
		if len(op) == 0 {
			continue
		}
		name, _ := op[0].(string)
		args := make([]float64, 0, len(op)-1)
		for _, v := range op[1:] {
			f, _ := v.(float64)
			args = append(args, f)
		}
		switch {
		case name == "M" && len(args) == 2:
			b.MoveTo(args[0], args[1])
		case name == "L" && len(args) == 2:
			b.LineTo(args[0], args[1])
		case name == "C" && len(args) == 6:
			b.CubicTo(args[0], args[1], args[2], args[3], args[4], args[5])
		case name == "Z":
			b.ClosePath()
		}
	}
	return b.Path
}

type painter struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

// fill rasterizes the elements, transformed by m, with the nonzero rule.
func (p *painter) fill(els iter.Seq[curve.PathElement], m geom.Matrix, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	b := p.dst.Bounds()
	p.z.Reset(b.Dx(), b.Dy())

	tp := func(pt curve.Point) (float32, float32) {
		x, y := m.TransformPoint(pt.X, pt.Y)
		return float32(x), float32(y)
	}

	open := false
	for el := range els {
		switch el.Kind {
		case curve.MoveToKind:
			if open {
				p.z.ClosePath()
			}
			p.z.MoveTo(tp(el.P0))
			open = true
		case curve.LineToKind:
			p.z.LineTo(tp(el.P0))
		case curve.QuadToKind:
			x1, y1 := tp(el.P0)
			x2, y2 := tp(el.P1)
			p.z.QuadTo(x1, y1, x2, y2)
		case curve.CubicToKind:
			x1, y1 := tp(el.P0)
			x2, y2 := tp(el.P1)
			x3, y3 := tp(el.P2)
			p.z.CubeTo(x1, y1, x2, y2, x3, y3)
		case curve.ClosePathKind:
			p.z.ClosePath()
			open = false
		}
	}
	if open {
		p.z.ClosePath()
	}

	p.z.DrawOp = draw.Over
	p.z.Draw(p.dst, b, image.NewUniform(c), image.Point{})
}
