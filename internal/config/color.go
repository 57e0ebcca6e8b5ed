package config

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// ParseColor accepts any CSS color: hex, rgb()/rgba(), hsl() and the named
// colors.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := csscolorparser.Parse(strings.TrimSpace(strings.ToLower(s)))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}, nil
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
