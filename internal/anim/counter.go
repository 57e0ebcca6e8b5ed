package anim

import (
	"math"
	"strconv"
	"time"
)

// Counter eases a number from zero to End over Duration using easeOutQuart.
type Counter struct {
	End      float64
	Duration time.Duration
	Prefix   string
	Suffix   string
	Decimals int

	elapsed time.Duration
}

func (c *Counter) Advance(dt time.Duration) {
	if dt > 0 && c.elapsed < c.Duration {
		c.elapsed += dt
	}
}

// Reset starts the count again from zero.
func (c *Counter) Reset() { c.elapsed = 0 }

// Value is the current eased value; it equals End once Duration has passed.
func (c *Counter) Value() float64 {
	if c.Duration <= 0 || c.elapsed >= c.Duration {
		return c.End
	}
	progress := float64(c.elapsed) / float64(c.Duration)
	return c.End * easeOutQuart(progress)
}

func (c *Counter) String() string {
	return c.Prefix + strconv.FormatFloat(c.Value(), 'f', c.Decimals, 64) + c.Suffix
}

func easeOutQuart(p float64) float64 {
	return 1 - math.Pow(1-p, 4)
}
