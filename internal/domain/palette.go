package domain

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPaletteSize is the number of swatches extracted when none is configured
const DefaultPaletteSize = 5

// ColorSwatch is a representative RGB colour of one pixel cluster
type ColorSwatch struct {
	R          uint8 `json:"r"`
	G          uint8 `json:"g"`
	B          uint8 `json:"b"`
	Population int   `json:"population"` // source pixels represented
}

// Hex returns the uppercase hexadecimal form, e.g. "#FF0000"
func (c ColorSwatch) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGB returns the channels as a triple
func (c ColorSwatch) RGB() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

// IsLight reports whether dark text reads better on top of this colour
func (c ColorSwatch) IsLight() bool {
	col := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	l, _, _ := col.Lab()
	return l > 0.6
}

// Palette is ordered by descending dominance (pixel population).
// An empty palette means extraction failed or no usable pixels existed.
type Palette []ColorSwatch

// IsEmpty returns true when no palette is available
func (p Palette) IsEmpty() bool { return len(p) == 0 }

// Primary returns the most dominant swatch. Index 0 is always primary.
func (p Palette) Primary() (ColorSwatch, bool) {
	if len(p) == 0 {
		return ColorSwatch{}, false
	}
	return p[0], true
}

// Accent returns the second most dominant swatch, or the primary for
// single-colour palettes.
func (p Palette) Accent() (ColorSwatch, bool) {
	if len(p) > 1 {
		return p[1], true
	}
	return p.Primary()
}

// Hexes returns the hex strings in dominance order
func (p Palette) Hexes() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}
