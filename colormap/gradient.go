// Package colormap maps scalar values onto piecewise-linear color gradients.
package colormap

import (
	"errors"
	"fmt"
	"math"
)

// RGB is a color with 8-bit channels
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CSS returns the color as rgb() or, for alpha below 1, rgba()
func (c RGB) CSS(alpha float64) string {
	if alpha <= 0 || alpha >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, alpha)
}

// Stop is a color pinned at a normalized position in [0, 1]
type Stop struct {
	Pos   float64 `json:"pos"`
	Color RGB     `json:"color"`
}

// Gradient is an ordered list of stops plus the colors used when no
// position on the gradient applies.
type Gradient struct {
	Name         string  `json:"name"`
	Stops        []Stop  `json:"stops"`
	Fallback     RGB     `json:"fallback"` // degenerate range (min == max)
	Missing      RGB     `json:"missing"`  // no data for the value at all
	Alpha        float64 `json:"alpha"`
	MissingAlpha float64 `json:"missingAlpha"`
}

var (
	ErrNoStops        = errors.New("gradient needs at least one stop")
	ErrStopOutOfRange = errors.New("gradient stop position outside [0, 1]")
	ErrStopsUnordered = errors.New("gradient stop positions must be strictly increasing")
)

// Validate checks the stops are inside [0, 1] and strictly increasing
func (g Gradient) Validate() error {
	if len(g.Stops) == 0 {
		return ErrNoStops
	}
	for i, s := range g.Stops {
		if math.IsNaN(s.Pos) || s.Pos < 0 || s.Pos > 1 {
			return fmt.Errorf("%w: stop %d at %v", ErrStopOutOfRange, i, s.Pos)
		}
		if i > 0 && s.Pos <= g.Stops[i-1].Pos {
			return fmt.Errorf("%w: stop %d at %v", ErrStopsUnordered, i, s.Pos)
		}
	}
	return nil
}

// Normalize maps value into [0, 1] relative to [min, max].
// ok is false for a degenerate range.
func Normalize(value, min, max float64) (t float64, ok bool) {
	if min == max {
		return 0, false
	}
	t = (value - min) / (max - min)
	switch {
	case math.IsNaN(t):
		return 0, true
	case t < 0:
		return 0, true
	case t > 1:
		return 1, true
	}
	return t, true
}

// At returns the color at normalized position t, clamping t into [0, 1].
// Positions before the first stop take its color, after the last stop
// the last color.
func (g Gradient) At(t float64) RGB {
	if len(g.Stops) == 0 {
		return g.Fallback
	}
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Pos {
		return first.Color
	}
	if t >= last.Pos {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		hi := g.Stops[i]
		if t > hi.Pos {
			continue
		}
		lo := g.Stops[i-1]
		u := (t - lo.Pos) / (hi.Pos - lo.Pos)
		return RGB{
			R: lerp(lo.Color.R, hi.Color.R, u),
			G: lerp(lo.Color.G, hi.Color.G, u),
			B: lerp(lo.Color.B, hi.Color.B, u),
		}
	}
	return last.Color
}

func lerp(a, b uint8, u float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*u)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ColorFor maps value within [min, max] onto the gradient.
// A degenerate range returns the gradient's fallback color.
func ColorFor(value, min, max float64, g Gradient) RGB {
	t, ok := Normalize(value, min, max)
	if !ok {
		return FallbackColor(g)
	}
	return g.At(t)
}

// FallbackColor is the color used when every value is the same
func FallbackColor(g Gradient) RGB {
	return g.Fallback
}

// MissingColor is the color used when there is no value at all
func MissingColor(g Gradient) RGB {
	return g.Missing
}

// CSSFor is ColorFor formatted with the gradient's alpha
func CSSFor(value, min, max float64, g Gradient) string {
	return ColorFor(value, min, max, g).CSS(g.Alpha)
}

// MissingCSS is MissingColor formatted with the gradient's missing alpha
func MissingCSS(g Gradient) string {
	return g.Missing.CSS(g.MissingAlpha)
}
