package pathdata

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Path
	}{
		{
			name:  "moveto lineto",
			input: "M0,0L10,10",
			want: Path{
				{Kind: MoveTo, Absolute: true},
				{Kind: LineTo, Absolute: true, X: 10, Y: 10},
			},
		},
		{
			name:  "implicit lineto after moveto",
			input: "M0,0 10,10 20,20",
			want: Path{
				{Kind: MoveTo, Absolute: true},
				{Kind: LineTo, Absolute: true, X: 10, Y: 10},
				{Kind: LineTo, Absolute: true, X: 20, Y: 20},
			},
		},
		{
			name:  "relative implicit lineto",
			input: "m1 2 3 4",
			want: Path{
				{Kind: MoveTo, X: 1, Y: 2},
				{Kind: LineTo, X: 3, Y: 4},
			},
		},
		{
			name:  "horizontal vertical close",
			input: "  M 1 1 H 5 v 3 z  ",
			want: Path{
				{Kind: MoveTo, Absolute: true, X: 1, Y: 1},
				{Kind: LineToHorizontal, Absolute: true, X: 5},
				{Kind: LineToVertical, Y: 3},
				{Kind: ClosePath, Absolute: true},
			},
		},
		{
			name:  "cubic and smooth cubic",
			input: "M0,0 C10,0 10,10 0,10 S-10,20 0,20",
			want: Path{
				{Kind: MoveTo, Absolute: true},
				{Kind: CubicBezier, Absolute: true, CP1X: 10, CP2X: 10, CP2Y: 10, Y: 10},
				{Kind: CubicBezier, Absolute: true, Smooth: true, CP2X: -10, CP2Y: 20, Y: 20},
			},
		},
		{
			name:  "quadratic and smooth quadratic",
			input: "M0 0q5 5 10 0t10 0",
			want: Path{
				{Kind: MoveTo, Absolute: true},
				{Kind: QuadraticBezier, CP1X: 5, CP1Y: 5, X: 10},
				{Kind: QuadraticBezier, Smooth: true, X: 10},
			},
		},
		{
			name:  "arc",
			input: "M0,0 A5,5 0 0,1 5,5",
			want: Path{
				{Kind: MoveTo, Absolute: true},
				{Kind: EllipticalArc, Absolute: true, RX: 5, RY: 5, Sweep: true, X: 5, Y: 5},
			},
		},
		{
			name:  "arc flags are any nonzero number",
			input: "M0 0 a1 2 30 2 -1 3 4",
			want: Path{
				{Kind: MoveTo, Absolute: true},
				{Kind: EllipticalArc, RX: 1, RY: 2, Rotation: 30, LargeArc: true, Sweep: true, X: 3, Y: 4},
			},
		},
		{
			name:  "repeated argument groups",
			input: "M0 0 L1 1 2 2,3 3",
			want: Path{
				{Kind: MoveTo, Absolute: true},
				{Kind: LineTo, Absolute: true, X: 1, Y: 1},
				{Kind: LineTo, Absolute: true, X: 2, Y: 2},
				{Kind: LineTo, Absolute: true, X: 3, Y: 3},
			},
		},
		{
			name:  "minus sign and dot separate numbers",
			input: "M10-5L.5.5",
			want: Path{
				{Kind: MoveTo, Absolute: true, X: 10, Y: -5},
				{Kind: LineTo, Absolute: true, X: 0.5, Y: 0.5},
			},
		},
		{
			name:  "multiple subpaths",
			input: "M0 0 L1 0 Z m5 5 l1 0 z",
			want: Path{
				{Kind: MoveTo, Absolute: true},
				{Kind: LineTo, Absolute: true, X: 1},
				{Kind: ClosePath, Absolute: true},
				{Kind: MoveTo, X: 5, Y: 5},
				{Kind: LineTo, X: 1},
				{Kind: ClosePath, Absolute: true},
			},
		},
		{
			name:  "moveto only",
			input: "M3 4",
			want:  Path{{Kind: MoveTo, Absolute: true, X: 3, Y: 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    error
		message string
	}{
		{"empty", "", ErrEmpty, "empty"},
		{"whitespace only", " \t\n ", ErrEmpty, "empty"},
		{"must start with moveto", "L0 0", ErrSyntax, "'M' or 'm'"},
		{"moveto without coordinates", "M", ErrSyntax, "coordinate pair"},
		{"dangling command", "M1,1L", ErrSyntax, "'L'"},
		{"half coordinate pair", "M1,1L5", ErrSyntax, "second coordinate"},
		{"incomplete cubic", "M0 0 C1 1 2 2", ErrSyntax, "end point"},
		{"negative rx", "M0,0 A-5,5 0 0,1 5,5", ErrSyntax, "negative rx"},
		{"negative ry", "M0,0 A5,-5 0 0,1 5,5", ErrSyntax, "negative ry"},
		{"missing arc flag", "M0,0 A5,5 0 0", ErrSyntax, "sweep-flag"},
		{"unknown command", "M0 0 X1 1", ErrSyntax, "'X'"},
		{"leftover input", "M0 0 Z 5", ErrSyntax, "left after parsing"},
		{"out of range", "M1e999 0", ErrRange, "out of range"},
		{"out of range exponent", "M1e99999999999999999999 0", ErrRange, "out of range"},
		{"out of range horizontal", "M0 0 H1e99999999999999999999", ErrRange, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.message)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
		})
	}
}

func TestParseErrorReportsRemainder(t *testing.T) {
	_, err := Parse("M0 0 Z 5 6")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "5 6", perr.Remaining)
	assert.Equal(t, 7, perr.Offset)
}

func TestParseIdempotent(t *testing.T) {
	const d = "M10 10 c 5 0 5 5 0 5 s -5 5 0 5 Q 1 2 3 4 T 5 6 a 3 4 10 1 0 7 8 h 2 V 9 z"
	a, err := Parse(d)
	require.NoError(t, err)
	b, err := Parse(d)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestPathStringRoundTrip(t *testing.T) {
	for _, d := range []string{
		"M0,0L10,10",
		"m1 2 3 4 5 6",
		"M10 10 c 5 0 5 5 0 5 s -5 5 0 5 Q 1 2 3 4 T 5 6 a 3 4 10 1 0 7 8 h 2 V 9 z",
		"M.5.5l-1e-3-2E2",
	} {
		p := MustParse(d)
		q, err := Parse(p.String())
		require.NoError(t, err, d)
		assert.True(t, p.Equal(q), "%s -> %s", d, p.String())
	}
}

func TestParseLongInput(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("M0 0 L")
	const n = 200000
	for i := 0; i < n; i++ {
		sb.WriteString(" 1 1")
	}
	p, err := Parse(sb.String())
	require.NoError(t, err)
	assert.Len(t, p, n+1)
}

func TestCounts(t *testing.T) {
	p := MustParse("M0 0 L1 1 2 2 Z")
	assert.Equal(t, map[string]int{"MoveTo": 1, "LineTo": 2, "ClosePath": 1}, p.Counts())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "S-10 20 0 20", Command{Kind: CubicBezier, Absolute: true, Smooth: true, CP2X: -10, CP2Y: 20, Y: 20}.String())
	assert.Equal(t, "a5 5 0 0 1 5 5", Command{Kind: EllipticalArc, RX: 5, RY: 5, Sweep: true, X: 5, Y: 5}.String())
	assert.Equal(t, "Z", Command{Kind: ClosePath}.String())
}

func TestPathJSON(t *testing.T) {
	p := MustParse("M0 0 a5 5 0 1 0 10 0 t4 4")
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"EllipticalArc"`)

	var back Path
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, p.Equal(back))

	assert.Error(t, json.Unmarshal([]byte(`[{"kind":"Spline"}]`), &back))
}
