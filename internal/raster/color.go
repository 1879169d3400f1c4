package raster

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a paint value: #rgb, #rgba, #rrggbb, #rrggbbaa or an
// SVG color keyword. ok is false for "", "none", "transparent" and
// anything unrecognised, meaning nothing should be painted.
func ParseColor(s string) (c color.NRGBA, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "transparent":
		return color.NRGBA{}, false
	}

	if hex, found := strings.CutPrefix(s, "#"); found {
		return parseHex(hex)
	}

	named, found := colornames.Map[s]
	if !found {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, true
}

func parseHex(hex string) (color.NRGBA, bool) {
	switch len(hex) {
	case 3, 4:
		// Expand #rgb(a) to #rrggbb(aa).
		var sb strings.Builder
		for i := 0; i < len(hex); i++ {
			sb.WriteByte(hex[i])
			sb.WriteByte(hex[i])
		}
		hex = sb.String()
	case 6, 8:
	default:
		return color.NRGBA{}, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}
