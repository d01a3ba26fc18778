// This helper library has been graciously donated by @shabbyrobe; cut down to the bits we use.

// Not-at-all novel terminal style copypasta, originally from
// https://raw.githubusercontent.com/shabbyrobe/golib/master/termfmt/termfmt.go
// Provided under an MIT license.
package termfmt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type Escape interface {
	Wrap(out string) string
}

func With(escs ...Escape) Style { return (Style{}).With(escs...) }
func Bold() Style               { return (Style{}).Bold() }
func C16(name C16Name) Style    { return (Style{}).C16(name) }

type Style struct {
	escapes []Escape
	v       any
}

var _ fmt.Formatter = Style{}

func (c Style) With(escs ...Escape) Style {
	c.escapes = append(c.escapes, escs...)
	return c
}

func (c Style) Bold() Style            { return c.With(BoldEscape{}) }
func (c Style) C16(name C16Name) Style { return c.With(C16Color{Name: name}) }

func (c Style) V(v any) Style {
	c.v = v
	return c
}

func (c Style) Format(f fmt.State, verb rune) {
	v := printable(fmt.Sprintf(buildValueFormat(f, verb), c.v))
	for i := len(c.escapes) - 1; i >= 0; i-- {
		v = c.escapes[i].Wrap(v)
	}
	f.Write([]byte(v))
}

func buildValueFormat(f fmt.State, verb rune) string {
	s := "%"
	if f.Flag(' ') {
		s += " "
	}
	if f.Flag('+') {
		s += "+"
	}
	if f.Flag('-') {
		s += "-"
	}
	if f.Flag('0') {
		s += "0"
	}
	if f.Flag('#') {
		s += "#"
	}
	width, ok := f.Width()
	if ok {
		s += strconv.Itoa(width)
	}
	prec, ok := f.Precision()
	if ok {
		s += "." + strconv.Itoa(prec)
	}
	s += string(verb)
	return s
}

type BoldEscape struct{}

func (b BoldEscape) Wrap(v string) string { return fmt.Sprintf("\x1b[1m%s\x1b[0m", v) }

type C16Name uint8

const (
	DefaultColor C16Name = iota

	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	LightGrey

	DarkGrey
	LightRed
	LightGreen
	LightYellow
	LightBlue
	LightMagenta
	LightCyan
	White
)

type C16Color struct {
	Name C16Name
	Bg   bool
}

func (c C16Color) Background() C16Color {
	c.Bg = true
	return c
}

func (c C16Color) Wrap(out string) string {
	var cv uint8
	if c.Name == DefaultColor {
		cv = 39
	} else {
		// Our enum starts at one, adjust so it starts at 0:
		cv = uint8(c.Name) - 1

		// If fg, the lower 8 colours run from 30 to 37, the upper 8 from 90 to 97.
		// We take care of bg later.
		if c.Name < DarkGrey {
			cv += 30
		} else {
			cv += 90
		}
	}

	if c.Bg {
		cv += 10
	}

	return fmt.Sprintf("\x1b[%dm"+"%s"+"\x1b[0m", cv, out)
}

func mapPrintable(r rune) rune {
	if unicode.IsGraphic(r) {
		return r
	}
	return -1
}

func printable(v string) string {
	return strings.Map(mapPrintable, v)
}
