package pathdata

// Parse parses SVG path data into a Path. Parsing is all or nothing: on
// failure the returned Path is nil and the error is a *ParseError.
func Parse(d string) (Path, error) {
	p := &parser{s: NewScanner(d)}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.cmds, nil
}

// MustParse is like Parse but panics if d is malformed. It is intended for
// path data known at compile time.
func MustParse(d string) Path {
	path, err := Parse(d)
	if err != nil {
		panic("pathdata: MustParse(" + d + "): " + err.Error())
	}
	return path
}

type parser struct {
	s    *Scanner
	cmds Path
}

func (p *parser) emit(c Command) {
	p.cmds = append(p.cmds, c)
}

// parse matches: wsp* moveto-drawto-command-groups wsp*
func (p *parser) parse() error {
	p.s.SkipWsp()
	if p.s.Done() {
		return p.s.errorf(ErrEmpty, "found empty path data")
	}
	if c := p.s.peek(); c != 'M' && c != 'm' {
		return p.s.errorf(ErrSyntax, "path data must begin with 'M' or 'm'")
	}
	for !p.s.Done() {
		c := p.s.peek()
		if c != 'M' && c != 'm' {
			return p.s.errorf(ErrSyntax, "input data left after parsing")
		}
		if err := p.moveToDrawToGroup(); err != nil {
			return err
		}
		p.s.SkipWsp()
	}
	return nil
}

// moveToDrawToGroup matches: moveto wsp* drawto-commands?
func (p *parser) moveToDrawToGroup() error {
	c := p.s.next()
	abs := c == 'M'
	p.s.SkipWsp()

	x, y, ok, err := p.coordinatePair()
	if err != nil {
		return err
	}
	if !ok {
		return p.s.errorf(ErrSyntax, "expected coordinate pair after '%c'", c)
	}
	p.emit(Command{Kind: MoveTo, Absolute: abs, X: x, Y: y})
	p.s.MatchCommaWsp()

	// Additional moveto pairs are implicit lineto commands.
	for {
		x, y, ok, err := p.coordinatePair()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		p.emit(Command{Kind: LineTo, Absolute: abs, X: x, Y: y})
		p.s.MatchCommaWsp()
	}

	p.s.SkipWsp()
	return p.drawToCommands()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// drawToCommands matches drawto-command (wsp* drawto-command)* and stops
// before a moveto, the end of input, or anything that is not a letter.
func (p *parser) drawToCommands() error {
	for !p.s.Done() {
		c := p.s.peek()
		if c == 'M' || c == 'm' || !isLetter(c) {
			return nil
		}
		if c == 'Z' || c == 'z' {
			p.s.next()
			p.emit(Command{Kind: ClosePath, Absolute: true})
			p.s.SkipWsp()
			continue
		}
		if !isCommand(c) {
			return p.s.errorf(ErrSyntax, "unrecognized draw-to command '%c'", c)
		}
		p.s.next()
		abs := c >= 'A' && c <= 'Z'
		p.s.SkipWsp()

		n := 0
		for {
			cmd, ok, err := p.argument(c|0x20, abs)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			p.emit(cmd)
			n++
			p.s.MatchCommaWsp()
		}
		if n == 0 {
			return p.s.errorf(ErrSyntax, "missing arguments for command '%c'", c)
		}
		p.s.SkipWsp()
	}
	return nil
}

func isCommand(c byte) bool {
	switch c | 0x20 {
	case 'l', 'h', 'v', 'c', 's', 'q', 't', 'a':
		return true
	}
	return false
}

// argument matches one argument group for the lower-case command letter c.
// ok is false when no group starts at the cursor; an error is returned when
// a group starts but is incomplete.
func (p *parser) argument(c byte, abs bool) (cmd Command, ok bool, err error) {
	cmd.Absolute = abs
	switch c {
	case 'l':
		cmd.Kind = LineTo
		cmd.X, cmd.Y, ok, err = p.coordinatePair()
		return cmd, ok, err

	case 'h':
		cmd.Kind = LineToHorizontal
		cmd.X, ok, err = p.s.MatchNumber()
		return cmd, ok, err

	case 'v':
		cmd.Kind = LineToVertical
		cmd.Y, ok, err = p.s.MatchNumber()
		return cmd, ok, err

	case 'c':
		cmd.Kind = CubicBezier
		if cmd.CP1X, cmd.CP1Y, ok, err = p.coordinatePair(); !ok || err != nil {
			return cmd, ok, err
		}
		p.s.MatchCommaWsp()
		if err = p.requirePair(&cmd.CP2X, &cmd.CP2Y, "second control point in curve"); err != nil {
			return cmd, false, err
		}
		p.s.MatchCommaWsp()
		if err = p.requirePair(&cmd.X, &cmd.Y, "end point in curve"); err != nil {
			return cmd, false, err
		}
		return cmd, true, nil

	case 's':
		cmd.Kind = CubicBezier
		cmd.Smooth = true
		if cmd.CP2X, cmd.CP2Y, ok, err = p.coordinatePair(); !ok || err != nil {
			return cmd, ok, err
		}
		p.s.MatchCommaWsp()
		if err = p.requirePair(&cmd.X, &cmd.Y, "end point in curve"); err != nil {
			return cmd, false, err
		}
		return cmd, true, nil

	case 'q':
		cmd.Kind = QuadraticBezier
		if cmd.CP1X, cmd.CP1Y, ok, err = p.coordinatePair(); !ok || err != nil {
			return cmd, ok, err
		}
		p.s.MatchCommaWsp()
		if err = p.requirePair(&cmd.X, &cmd.Y, "end point in curve"); err != nil {
			return cmd, false, err
		}
		return cmd, true, nil

	case 't':
		cmd.Kind = QuadraticBezier
		cmd.Smooth = true
		cmd.X, cmd.Y, ok, err = p.coordinatePair()
		return cmd, ok, err

	case 'a':
		cmd.Kind = EllipticalArc
		return p.arcArgument(cmd)
	}
	return cmd, false, p.s.errorf(ErrSyntax, "unrecognized draw-to command '%c'", c)
}

// arcArgument matches: rx comma-wsp? ry comma-wsp? x-axis-rotation comma-wsp
// large-arc-flag comma-wsp? sweep-flag comma-wsp? coordinate-pair
func (p *parser) arcArgument(cmd Command) (Command, bool, error) {
	rx, ok, err := p.s.MatchNumber()
	if !ok || err != nil {
		return cmd, ok, err
	}
	if rx < 0 {
		return cmd, false, p.s.errorf(ErrSyntax, "negative rx value %g in elliptical arc", rx)
	}
	p.s.MatchCommaWsp()
	ry, err := p.requireNumber("ry value in elliptical arc")
	if err != nil {
		return cmd, false, err
	}
	if ry < 0 {
		return cmd, false, p.s.errorf(ErrSyntax, "negative ry value %g in elliptical arc", ry)
	}
	p.s.MatchCommaWsp()
	rot, err := p.requireNumber("x-axis-rotation value in elliptical arc")
	if err != nil {
		return cmd, false, err
	}
	p.s.MatchCommaWsp()
	large, err := p.requireNumber("large-arc-flag in elliptical arc")
	if err != nil {
		return cmd, false, err
	}
	p.s.MatchCommaWsp()
	sweep, err := p.requireNumber("sweep-flag in elliptical arc")
	if err != nil {
		return cmd, false, err
	}
	p.s.MatchCommaWsp()
	if err := p.requirePair(&cmd.X, &cmd.Y, "end point in elliptical arc"); err != nil {
		return cmd, false, err
	}

	cmd.RX, cmd.RY = rx, ry
	cmd.Rotation = rot
	cmd.LargeArc = large != 0
	cmd.Sweep = sweep != 0
	return cmd, true, nil
}

// coordinatePair matches: coordinate comma-wsp? coordinate
func (p *parser) coordinatePair() (x, y float64, ok bool, err error) {
	x, ok, err = p.s.MatchNumber()
	if !ok || err != nil {
		return 0, 0, ok, err
	}
	p.s.MatchCommaWsp()
	y, ok, err = p.s.MatchNumber()
	if err != nil {
		return 0, 0, false, err
	}
	if !ok {
		return 0, 0, false, p.s.errorf(ErrSyntax, "expected a second coordinate")
	}
	return x, y, true, nil
}

func (p *parser) requirePair(x, y *float64, what string) error {
	var ok bool
	var err error
	*x, *y, ok, err = p.coordinatePair()
	if err != nil {
		return err
	}
	if !ok {
		return p.s.errorf(ErrSyntax, "expected %s", what)
	}
	return nil
}

func (p *parser) requireNumber(what string) (float64, error) {
	v, ok, err := p.s.MatchNumber()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, p.s.errorf(ErrSyntax, "expected %s", what)
	}
	return v, nil
}
