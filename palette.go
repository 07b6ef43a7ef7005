package reqtrace

import (
	"fmt"
	"regexp"
)

// Color is an ANSI foreground color code. Background rendering uses the
// same code shifted by 10.
type Color int

// The standard ANSI colors, minus black (illegible on dark terminals).
const (
	Red Color = iota + 31
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

const ansiReset = "\x1b[0m"

// Palette is an immutable ordered set of colors used to decorate
// request ids. It is shared for the process lifetime.
type Palette struct {
	colors []Color
}

// DefaultPalette holds the seven standard colors in ANSI order.
var DefaultPalette = MustPalette(Red, Green, Yellow, Blue, Magenta, Cyan, White)

// NewPalette builds a palette from the given colors. A palette needs at
// least two entries so that a foreground can always be paired with a
// distinct background.
func NewPalette(colors ...Color) (*Palette, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("palette needs at least 2 colors, got %d", len(colors))
	}
	return &Palette{colors: append([]Color(nil), colors...)}, nil
}

// MustPalette is NewPalette that panics on error. For package-level
// palette variables; a degenerate palette is a configuration bug.
func MustPalette(colors ...Color) *Palette {
	p, err := NewPalette(colors...)
	if err != nil {
		panic(err)
	}
	return p
}

// ColorPair is an ordered foreground/background combination. Pairs
// produced by a Palette never have matching components.
type ColorPair struct {
	Foreground Color
	Background Color
}

// Pair maps an id onto a legible color pair. Pure and deterministic:
// the same id always yields the same pair. The foreground is chosen by
// id mod N; the background by id mod N-1 over the palette with the
// foreground entry removed, so it can never equal the foreground.
func (p *Palette) Pair(id RequestID) ColorPair {
	n := len(p.colors)
	fi := int(id) % n
	bi := int(id) % (n - 1)
	if bi >= fi {
		bi++
	}
	return ColorPair{Foreground: p.colors[fi], Background: p.colors[bi]}
}

// decorate wraps s in the pair's escape sequence with the bold
// attribute set.
func (cp ColorPair) decorate(s string) string {
	return fmt.Sprintf("\x1b[1;%d;%dm%s%s", cp.Foreground, cp.Background+10, s, ansiReset)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes every ANSI SGR escape sequence from s, leaving the
// bare text. It is the single transform behind all plain-output
// variants, so colored and plain lines cannot diverge in content.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
