// Package particle holds the particle field model: the particle store,
// the per-frame simulation step and the frame renderer.
package particle

import (
	"math"
	"math/rand"
)

// Vec is a 2D point or vector in canvas units.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Particle is one point of the field. Vel is fixed at creation; only Pos
// changes while the field runs.
type Particle struct {
	Pos    Vec
	Vel    Vec
	Radius float64
}

// Initialize creates count particles spread uniformly over
// [0,width) x [0,height) with velocity components drawn from
// [-0.5,0.5) * speed. A count of zero or less yields no particles.
func Initialize(rng *rand.Rand, count int, width, height, speed, radius float64) []Particle {
	if count <= 0 {
		return []Particle{}
	}
	ps := make([]Particle, count)
	for i := range ps {
		ps[i] = Particle{
			Pos: Vec{
				X: rng.Float64() * width,
				Y: rng.Float64() * height,
			},
			Vel: Vec{
				X: (rng.Float64() - 0.5) * speed,
				Y: (rng.Float64() - 0.5) * speed,
			},
			Radius: radius,
		}
	}
	return ps
}
