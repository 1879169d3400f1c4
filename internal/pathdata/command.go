// Package pathdata parses SVG path data ("d" attribute values) into an
// immutable list of path commands.
package pathdata

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Command.
type Kind int

const (
	MoveTo Kind = iota
	LineTo
	ClosePath
	LineToHorizontal
	LineToVertical
	CubicBezier
	QuadraticBezier
	EllipticalArc
)

var kindNames = [...]string{
	MoveTo:           "MoveTo",
	LineTo:           "LineTo",
	ClosePath:        "ClosePath",
	LineToHorizontal: "LineToHorizontal",
	LineToVertical:   "LineToVertical",
	CubicBezier:      "CubicBezier",
	QuadraticBezier:  "QuadraticBezier",
	EllipticalArc:    "EllipticalArc",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown command kind %q", text)
}

// Command is a single path command. Only the fields relevant to Kind are
// meaningful; the rest are zero.
//
//   - MoveTo, LineTo: X, Y
//   - LineToHorizontal: X
//   - LineToVertical: Y
//   - CubicBezier: CP1X, CP1Y (zero and recomputed when Smooth), CP2X, CP2Y, X, Y
//   - QuadraticBezier: CP1X, CP1Y (zero and recomputed when Smooth), X, Y
//   - EllipticalArc: RX, RY, Rotation, LargeArc, Sweep, X, Y
//
// Rotation holds the number exactly as written in the path data.
type Command struct {
	Kind     Kind    `json:"kind"`
	Absolute bool    `json:"absolute"`
	Smooth   bool    `json:"smooth,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	CP1X     float64 `json:"cp1x,omitempty"`
	CP1Y     float64 `json:"cp1y,omitempty"`
	CP2X     float64 `json:"cp2x,omitempty"`
	CP2Y     float64 `json:"cp2y,omitempty"`
	RX       float64 `json:"rx,omitempty"`
	RY       float64 `json:"ry,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	LargeArc bool    `json:"largeArc,omitempty"`
	Sweep    bool    `json:"sweep,omitempty"`
}

// Letter returns the path-data command letter for c, upper case when
// absolute.
func (c Command) Letter() byte {
	var l byte
	switch c.Kind {
	case MoveTo:
		l = 'm'
	case LineTo:
		l = 'l'
	case ClosePath:
		return 'Z'
	case LineToHorizontal:
		l = 'h'
	case LineToVertical:
		l = 'v'
	case CubicBezier:
		l = 'c'
		if c.Smooth {
			l = 's'
		}
	case QuadraticBezier:
		l = 'q'
		if c.Smooth {
			l = 't'
		}
	case EllipticalArc:
		l = 'a'
	default:
		return '?'
	}
	if c.Absolute {
		l -= 'a' - 'A'
	}
	return l
}

// Args returns the numeric arguments of c in path-data order.
func (c Command) Args() []float64 {
	switch c.Kind {
	case MoveTo, LineTo:
		return []float64{c.X, c.Y}
	case LineToHorizontal:
		return []float64{c.X}
	case LineToVertical:
		return []float64{c.Y}
	case CubicBezier:
		if c.Smooth {
			return []float64{c.CP2X, c.CP2Y, c.X, c.Y}
		}
		return []float64{c.CP1X, c.CP1Y, c.CP2X, c.CP2Y, c.X, c.Y}
	case QuadraticBezier:
		if c.Smooth {
			return []float64{c.X, c.Y}
		}
		return []float64{c.CP1X, c.CP1Y, c.X, c.Y}
	case EllipticalArc:
		return []float64{c.RX, c.RY, c.Rotation, flag(c.LargeArc), flag(c.Sweep), c.X, c.Y}
	}
	return nil
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// String formats c as path data, e.g. "C10 0 10 10 0 10".
func (c Command) String() string {
	var sb strings.Builder
	c.appendTo(&sb)
	return sb.String()
}

func (c Command) appendTo(sb *strings.Builder) {
	sb.WriteByte(c.Letter())
	for i, v := range c.Args() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}

// Path is an ordered list of commands produced by Parse. It is never
// modified after parsing.
type Path []Command

// String formats the path as canonical path data. Parsing the result yields
// a Path equal to p.
func (p Path) String() string {
	var sb strings.Builder
	for i, c := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		c.appendTo(&sb)
	}
	return sb.String()
}

// Equal reports whether p and q hold the same commands with the same values.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Counts tallies the commands of p by kind name.
func (p Path) Counts() map[string]int {
	counts := make(map[string]int)
	for _, c := range p {
		counts[c.Kind.String()]++
	}
	return counts
}
