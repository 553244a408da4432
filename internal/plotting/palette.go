// Package plotting draws reduced Franck–Hertz curves: static PNG charts
// with gonum/plot and interactive HTML charts with go-echarts.
package plotting

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/banshee-data/franckhertz/internal/extrema"
)

// ErrPaletteExhausted is returned when an overlay has more runs than the
// palette has colours.
var ErrPaletteExhausted = errors.New("more runs than palette colours")

// Style holds chart geometry and the run palette.
type Style struct {
	WidthIn      float64
	HeightIn     float64
	MarkerRadius float64 // points
	Palette      []string
}

// DefaultStyle returns an 8x5 inch chart with the standard seven-colour palette.
func DefaultStyle() Style {
	return Style{
		WidthIn:      8,
		HeightIn:     5,
		MarkerRadius: 2,
		Palette:      []string{"k", "m", "y", "c", "r", "g", "b"},
	}
}

type swatch struct {
	rgba color.RGBA
	hex  string
}

// Single-letter colour codes as the lab's earlier matplotlib scripts used them.
var swatches = map[string]swatch{
	"b": {color.RGBA{R: 0, G: 0, B: 255, A: 255}, "#0000ff"},
	"g": {color.RGBA{R: 0, G: 128, B: 0, A: 255}, "#008000"},
	"r": {color.RGBA{R: 255, G: 0, B: 0, A: 255}, "#ff0000"},
	"c": {color.RGBA{R: 0, G: 191, B: 191, A: 255}, "#00bfbf"},
	"m": {color.RGBA{R: 191, G: 0, B: 191, A: 255}, "#bf00bf"},
	"y": {color.RGBA{R: 191, G: 191, B: 0, A: 255}, "#bfbf00"},
	"k": {color.RGBA{R: 0, G: 0, B: 0, A: 255}, "#000000"},
}

func lookup(code string) (swatch, error) {
	s, ok := swatches[code]
	if !ok {
		return swatch{}, fmt.Errorf("unknown colour code %q", code)
	}
	return s, nil
}

// runColours assigns colours to n runs, taking them from the end of the
// palette.
func runColours(palette []string, n int) ([]swatch, error) {
	if n > len(palette) {
		return nil, fmt.Errorf("%w: %d runs, %d colours", ErrPaletteExhausted, n, len(palette))
	}
	out := make([]swatch, n)
	for i := range out {
		s, err := lookup(palette[len(palette)-1-i])
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// roleSwatch colours maxima red, minima green and everything else blue.
func roleSwatch(r extrema.Role) swatch {
	switch r {
	case extrema.Maximum:
		return swatches["r"]
	case extrema.Minimum:
		return swatches["g"]
	default:
		return swatches["b"]
	}
}

const (
	xLabel       = "Input Voltage (V)"
	yLabel       = "Output Voltage (V)"
	overlayTitle = "Input and Output Voltages for All Temperatures"
)
