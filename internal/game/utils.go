package game

import (
	"fmt"
	"image/color"
	"math"
	"time"
	"unicode/utf8"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// withAlpha scales c's alpha by a, like canvas globalAlpha.
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * clamp01(a)))
	return c
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// centerX is the x that centers s on a screen w pixels wide in the debug
// font, whose glyphs are a fixed 6 pixels.
func centerX(w int, s string) int {
	return (w - utf8.RuneCountInString(s)*6) / 2
}
