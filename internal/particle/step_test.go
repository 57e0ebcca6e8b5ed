package particle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceRepulsionScenario(t *testing.T) {
	ps := []Particle{{Pos: Vec{0, 0}}}
	Advance(ps, 800, 600, Vec{5, 0}, DefaultRepulsion)

	// distance 5, force 0.95, pushed by 1.9 away from the pointer;
	// the wrap already ran so the particle stays left of the origin.
	assert.InDelta(t, -1.9, ps[0].Pos.X, 1e-9)
	assert.InDelta(t, 0, ps[0].Pos.Y, 1e-9)
}

func TestAdvanceStationaryParticlesFarPointer(t *testing.T) {
	ps := []Particle{
		{Pos: Vec{0, 0}},
		{Pos: Vec{10, 0}},
	}
	Advance(ps, 800, 600, Vec{500, 500}, DefaultRepulsion)

	assert.Equal(t, Vec{0, 0}, ps[0].Pos)
	assert.Equal(t, Vec{10, 0}, ps[1].Pos)
}

func TestAdvanceFarPointerEqualsIntegration(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ps := Initialize(rng, 50, 400, 300, 0.5, 2)
	want := make([]Particle, len(ps))
	copy(want, ps)

	// Pointer far outside the canvas so nothing is within the radius.
	pointer := Vec{-10000, -10000}
	Advance(ps, 400, 300, pointer, DefaultRepulsion)

	for i := range want {
		want[i].step(400, 300, Vec{}, Repulsion{})
		assert.Equal(t, want[i].Pos, ps[i].Pos)
	}
}

func TestAdvanceRepulsionBoundary(t *testing.T) {
	ps := []Particle{{Pos: Vec{200, 200}}}
	Advance(ps, 800, 600, Vec{300, 200}, DefaultRepulsion)
	assert.Equal(t, Vec{200, 200}, ps[0].Pos, "distance equal to the radius applies no force")
}

func TestAdvancePointerOnParticle(t *testing.T) {
	ps := []Particle{{Pos: Vec{50, 50}}}
	assert.NotPanics(t, func() {
		Advance(ps, 800, 600, Vec{50, 50}, DefaultRepulsion)
	})
	assert.Equal(t, Vec{50, 50}, ps[0].Pos)
}

func TestAdvanceWrap(t *testing.T) {
	tests := []struct {
		name string
		in   Particle
		want Vec
	}{
		{"left edge lands on width", Particle{Pos: Vec{0.2, 50}, Vel: Vec{-0.5, 0}}, Vec{100, 50}},
		{"right edge lands on zero", Particle{Pos: Vec{99.8, 50}, Vel: Vec{0.5, 0}}, Vec{0, 50}},
		{"exactly width stays", Particle{Pos: Vec{99.5, 50}, Vel: Vec{0.5, 0}}, Vec{100, 50}},
		{"top edge lands on height", Particle{Pos: Vec{50, 0.1}, Vel: Vec{0, -0.2}}, Vec{50, 100}},
		{"bottom edge lands on zero", Particle{Pos: Vec{50, 99.9}, Vel: Vec{0, 0.2}}, Vec{50, 0}},
	}
	far := Vec{-1e6, -1e6}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := []Particle{tt.in}
			Advance(ps, 100, 100, far, DefaultRepulsion)
			assert.InDelta(t, tt.want.X, ps[0].Pos.X, 1e-9)
			assert.InDelta(t, tt.want.Y, ps[0].Pos.Y, 1e-9)
		})
	}
}

func TestAdvanceStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const w, h = 320.0, 240.0
	ps := Initialize(rng, 100, w, h, 8, 2)
	far := Vec{-1e6, -1e6}

	for tick := 0; tick < 2000; tick++ {
		Advance(ps, w, h, far, DefaultRepulsion)
		for _, p := range ps {
			if p.Pos.X < 0 || p.Pos.X > w || p.Pos.Y < 0 || p.Pos.Y > h {
				t.Fatalf("tick %d: particle escaped to %+v", tick, p.Pos)
			}
		}
	}
}

func TestAdvanceShrinkingCanvas(t *testing.T) {
	ps := []Particle{{Pos: Vec{700, 500}}}
	Advance(ps, 400, 300, Vec{-1e6, -1e6}, DefaultRepulsion)
	assert.Equal(t, Vec{0, 0}, ps[0].Pos)
}
