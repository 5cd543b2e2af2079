// Package layout generates the "leds" section of a Hyperion server
// configuration for LED matrices.
//
// Each LED is assigned the fraction of the captured image it samples, as
// horizontal and vertical scan ranges.  Matrices are assumed to be wired in a
// serpentine: the first row runs right to left, the next left to right, and so
// on.
package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Single row layouts sample the bottom tenth of the image
const (
	singleRowMinimum = 0.9
	singleRowMaximum = 1.0
)

// Scan is a range of the image, as fractions of its width or height
type Scan struct {
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
}

// LED maps one LED to the area of the image it samples
type LED struct {
	Index int  `json:"index"`
	HScan Scan `json:"hscan"`
	VScan Scan `json:"vscan"`
}

// Layout is the leds section of a server configuration
type Layout struct {
	LEDs []LED `json:"leds"`
}

// Matrix returns the layout of a matrix horizontal LEDs wide and vertical LEDs
// high.  A vertical count of zero describes a single strip sampling the bottom
// of the image.
func Matrix(horizontal, vertical int) (*Layout, error) {
	if horizontal <= 0 {
		return nil, fmt.Errorf("horizontal LED count must be positive, got %d", horizontal)
	}
	if vertical < 0 {
		return nil, fmt.Errorf("vertical LED count must not be negative, got %d", vertical)
	}

	hstep := 1 / float64(horizontal)
	if vertical == 0 {
		l := &Layout{LEDs: make([]LED, 0, horizontal)}
		vscan := Scan{Minimum: singleRowMinimum, Maximum: singleRowMaximum}
		for h := 0; h < horizontal; h++ {
			l.LEDs = append(l.LEDs, LED{
				Index: h,
				HScan: span(float64(h)*hstep, hstep),
				VScan: vscan,
			})
		}
		return l, nil
	}

	vstep := 1 / float64(vertical)
	l := &Layout{LEDs: make([]LED, 0, horizontal*vertical)}
	for v := 0; v < vertical; v++ {
		vscan := span(float64(v)*vstep, vstep)
		for h := 0; h < horizontal; h++ {
			column := h
			if v%2 == 0 {
				column = horizontal - 1 - h
			}
			l.LEDs = append(l.LEDs, LED{
				Index: len(l.LEDs),
				HScan: span(float64(column)*hstep, hstep),
				VScan: vscan,
			})
		}
	}
	return l, nil
}

// WriteJSON writes the layout as an indented JSON object
func (l *Layout) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent(``, `    `)
	return enc.Encode(l)
}

func span(start, step float64) Scan {
	return Scan{Minimum: round(start), Maximum: round(start + step)}
}

func round(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
