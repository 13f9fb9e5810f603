package svgpath

import (
	"fmt"
	"strconv"
)

// MalformedPathError reports path data the interpreter cannot consume:
// an unparsable number, or too few coordinates for the arity of the
// active command.
type MalformedPathError struct {
	Reason string
	Data   string
}

func (e MalformedPathError) Error() string {
	data := e.Data
	if len(data) > 40 {
		data = data[:40] + "..."
	}
	return fmt.Sprintf("malformed path data %q: %s", data, e.Reason)
}

// token is either a command letter (cmd != 0) or a number.
type token struct {
	cmd byte
	num float64
}

// tokenize scans path data left to right into command letters and
// signed decimal numbers. Whitespace and commas separate tokens and
// are not emitted; unrecognized characters are dropped, matching the
// tolerance of the mini-language's common readers.
func tokenize(data string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case c == 'M' || c == 'm' || c == 'L' || c == 'l' ||
			c == 'C' || c == 'c' || c == 'Z' || c == 'z':
			tokens = append(tokens, token{cmd: c})
			i++
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			start := i
			i = scanNumber(data, i)
			f, err := strconv.ParseFloat(data[start:i], 64)
			if err != nil {
				return nil, MalformedPathError{Reason: fmt.Sprintf("bad number %q", data[start:i]), Data: data}
			}
			tokens = append(tokens, token{num: f})
		default:
			i++
		}
	}
	return tokens, nil
}

// scanNumber advances past one signed decimal number with an optional
// exponent, starting at i, and returns the index one past its end.
func scanNumber(data string, i int) int {
	if data[i] == '+' || data[i] == '-' {
		i++
	}
	seenDot := false
	for i < len(data) {
		c := data[i]
		if c >= '0' && c <= '9' {
			i++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			i++
			continue
		}
		break
	}
	if i < len(data) && (data[i] == 'e' || data[i] == 'E') {
		j := i + 1
		if j < len(data) && (data[j] == '+' || data[j] == '-') {
			j++
		}
		if j < len(data) && data[j] >= '0' && data[j] <= '9' {
			for j < len(data) && data[j] >= '0' && data[j] <= '9' {
				j++
			}
			i = j
		}
	}
	return i
}

// cursor is the transient interpreter state for one path string.
// It is created per call and discarded on completion or error.
type cursor struct {
	tokens []token
	pos    int
	data   string

	x, y           float64 // current point
	startX, startY float64 // start of the current subpath
	active         byte    // active command, 0 when none
	path           Path
}

// Interpret compiles path data into a sequence of absolute-coordinate
// primitives.
func Interpret(data string) (Path, error) {
	tokens, err := tokenize(data)
	if err != nil {
		return nil, err
	}
	c := cursor{tokens: tokens, data: data}
	if err := c.run(); err != nil {
		return nil, err
	}
	return c.path, nil
}

func (c *cursor) run() error {
	for c.pos < len(c.tokens) {
		t := c.tokens[c.pos]
		if t.cmd != 0 {
			c.pos++
			if t.cmd == 'Z' || t.cmd == 'z' {
				c.path = append(c.path, Close{})
				// Close returns to the subpath start and leaves no
				// active command, so stray numbers cannot loop.
				c.x, c.y = c.startX, c.startY
				c.active = 0
				continue
			}
			c.active = t.cmd
			continue
		}
		switch c.active {
		case 'M', 'm':
			x, y, err := c.readPair()
			if err != nil {
				return err
			}
			if c.active == 'm' {
				x += c.x
				y += c.y
			}
			c.x, c.y = x, y
			c.startX, c.startY = x, y
			c.path = append(c.path, MoveTo{X: x, Y: y})
			// Further bare pairs are implicit linetos.
			if c.active == 'M' {
				c.active = 'L'
			} else {
				c.active = 'l'
			}
		case 'L', 'l':
			x, y, err := c.readPair()
			if err != nil {
				return err
			}
			if c.active == 'l' {
				x += c.x
				y += c.y
			}
			c.x, c.y = x, y
			c.path = append(c.path, LineTo{X: x, Y: y})
		case 'C', 'c':
			x1, y1, err := c.readPair()
			if err != nil {
				return err
			}
			x2, y2, err := c.readPair()
			if err != nil {
				return err
			}
			x, y, err := c.readPair()
			if err != nil {
				return err
			}
			if c.active == 'c' {
				// Relative control points are offsets from the
				// pre-curve current point.
				x1 += c.x
				y1 += c.y
				x2 += c.x
				y2 += c.y
				x += c.x
				y += c.y
			}
			c.x, c.y = x, y
			c.path = append(c.path, CurveTo{X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
		default:
			// Number with no active command: skip it.
			c.pos++
		}
	}
	return nil
}

// readPair consumes one coordinate pair, failing when the token stream
// runs out or a command letter sits where a coordinate belongs.
func (c *cursor) readPair() (x, y float64, err error) {
	if c.pos+1 >= len(c.tokens) || c.tokens[c.pos].cmd != 0 || c.tokens[c.pos+1].cmd != 0 {
		return 0, 0, MalformedPathError{
			Reason: fmt.Sprintf("insufficient coordinates for command %q", string(c.active)),
			Data:   c.data,
		}
	}
	x = c.tokens[c.pos].num
	y = c.tokens[c.pos+1].num
	c.pos += 2
	return x, y, nil
}
