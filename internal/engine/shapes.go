package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/inamate/svgpath/internal/pathdata"
)

// ErrInvalidPoints is returned for a points list that is empty, malformed
// or holds an odd number of coordinates.
var ErrInvalidPoints = errors.New("invalid points")

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RectPathData returns path data for a w by h rectangle with its top-left
// corner at the origin.
func RectPathData(w, h float64) string {
	return "M0 0 H" + num(w) + " V" + num(h) + " H0 Z"
}

// EllipsePathData returns path data for an ellipse centred on the origin,
// approximated by one cubic and three smooth cubic Bézier curves.
func EllipsePathData(rx, ry float64) string {
	return ellipseAt(0, 0, rx, ry)
}

// CirclePathData returns path data for a circle of radius r centred on
// (cx, cy).
func CirclePathData(cx, cy, r float64) string {
	return ellipseAt(cx, cy, r, r)
}

func ellipseAt(cx, cy, rx, ry float64) string {
	// k = 4 * (sqrt(2) - 1) / 3
	const k = 0.5522847498
	kx, ky := rx*k, ry*k
	return fmt.Sprintf("M%s %s C%s %s %s %s %s %s S%s %s %s %s S%s %s %s %s S%s %s %s %s Z",
		num(cx+rx), num(cy),
		num(cx+rx), num(cy+ky), num(cx+kx), num(cy+ry), num(cx), num(cy+ry),
		num(cx-rx), num(cy+ky), num(cx-rx), num(cy),
		num(cx-kx), num(cy-ry), num(cx), num(cy-ry),
		num(cx+rx), num(cy-ky), num(cx+rx), num(cy),
	)
}

// LinePathData returns path data for a single segment.
func LinePathData(x1, y1, x2, y2 float64) string {
	return "M" + num(x1) + " " + num(y1) + " L" + num(x2) + " " + num(y2)
}

// PointsPathData returns path data joining the coordinate pairs in points
// with lines. A closed list ends with a close path.
func PointsPathData(points string, closed bool) (string, error) {
	coords, err := ParsePoints(points)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 0; i < len(coords); i += 2 {
		switch i {
		case 0:
			b.WriteString("M")
		case 2:
			b.WriteString(" L")
		default:
			b.WriteString(" ")
		}
		b.WriteString(num(coords[i]))
		b.WriteString(" ")
		b.WriteString(num(coords[i+1]))
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String(), nil
}

// ParsePoints lexes a points list: numbers separated by whitespace and at
// most one comma. It returns the coordinates in order.
func ParsePoints(points string) ([]float64, error) {
	s := pathdata.NewScanner(points)
	s.SkipWsp()

	var coords []float64
	for !s.Done() {
		v, ok, err := s.MatchNumber()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPoints, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidPoints, s.Rest(), s.Offset())
		}
		coords = append(coords, v)
		s.MatchCommaWsp()
	}

	switch {
	case len(coords) == 0:
		return nil, fmt.Errorf("%w: no coordinates", ErrInvalidPoints)
	case len(coords)%2 != 0:
		return nil, fmt.Errorf("%w: odd number of coordinates (%d)", ErrInvalidPoints, len(coords))
	}
	return coords, nil
}
