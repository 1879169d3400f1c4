package pathdata

import (
	"errors"
	"fmt"
	"strconv"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// Scanner is a cursor over the unparsed remainder of a path-data string.
type Scanner struct {
	buf []byte
	pos int
}

// NewScanner returns a scanner positioned at the start of s.
func NewScanner(s string) *Scanner {
	return &Scanner{buf: []byte(s)}
}

// Done reports whether all input has been consumed.
func (s *Scanner) Done() bool {
	return s.pos >= len(s.buf)
}

// Offset returns the number of bytes consumed so far.
func (s *Scanner) Offset() int {
	return s.pos
}

// Rest returns the unconsumed input.
func (s *Scanner) Rest() string {
	return string(s.buf[s.pos:])
}

// peek returns the next byte without consuming it, or 0 at end of input.
func (s *Scanner) peek() byte {
	if s.Done() {
		return 0
	}
	return s.buf[s.pos]
}

// next consumes and returns the next byte, or 0 at end of input.
func (s *Scanner) next() byte {
	if s.Done() {
		return 0
	}
	c := s.buf[s.pos]
	s.pos++
	return c
}

// match consumes c if it is the next byte.
func (s *Scanner) match(c byte) bool {
	if s.Done() || s.buf[s.pos] != c {
		return false
	}
	s.pos++
	return true
}

func isWsp(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// matchWsp consumes a single whitespace byte if present.
func (s *Scanner) matchWsp() bool {
	if s.Done() || !isWsp(s.buf[s.pos]) {
		return false
	}
	s.pos++
	return true
}

// SkipWsp consumes any run of whitespace and reports whether any was found.
func (s *Scanner) SkipWsp() bool {
	start := s.pos
	for s.matchWsp() {
	}
	return s.pos > start
}

// MatchCommaWsp consumes the optional argument separator: whitespace, at
// most one comma, whitespace. It reports whether anything was consumed.
func (s *Scanner) MatchCommaWsp() bool {
	start := s.pos
	s.SkipWsp()
	if s.match(',') {
		s.SkipWsp()
	}
	return s.pos > start
}

// MatchNumber consumes a floating point number if one starts at the cursor.
// The grammar is that of a C-locale strtod restricted to decimal notation:
// optional sign, digits, optional decimal point, optional exponent.
//
// ok is false, with a nil error, when no number starts at the cursor. A
// number that overflows float64 returns an error wrapping ErrRange and leaves
// the cursor where it was.
func (s *Scanner) MatchNumber() (v float64, ok bool, err error) {
	_, n := pstrconv.ParseFloat(s.buf[s.pos:])
	if n == 0 {
		return 0, false, nil
	}
	n = exponentEnd(s.buf[s.pos:], n)
	lexeme := string(s.buf[s.pos : s.pos+n])
	v, err = strconv.ParseFloat(lexeme, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, false, s.errorf(ErrRange, "numeric value %s out of range", lexeme)
		}
		return 0, false, s.errorf(ErrSyntax, "malformed number %s", lexeme)
	}
	s.pos += n
	return v, true, nil
}

// exponentEnd extends a lexeme of length n over an exponent the lexer
// declined to consume. pstrconv stops before an exponent too large to
// represent; strtod consumes it and reports the overflow.
func exponentEnd(b []byte, n int) int {
	i := n
	if i >= len(b) || (b[i] != 'e' && b[i] != 'E') {
		return n
	}
	i++
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}
	if i >= len(b) || !isDigit(b[i]) {
		return n
	}
	for i < len(b) && isDigit(b[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (s *Scanner) errorf(kind error, msg string, args ...any) *ParseError {
	return &ParseError{
		Kind:      kind,
		Msg:       fmt.Sprintf(msg, args...),
		Offset:    s.pos,
		Remaining: s.Rest(),
	}
}
