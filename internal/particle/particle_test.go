package particle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ps := Initialize(rng, 500, 640, 480, 0.5, 2)
	require.Len(t, ps, 500)

	for _, p := range ps {
		assert.GreaterOrEqual(t, p.Pos.X, 0.0)
		assert.Less(t, p.Pos.X, 640.0)
		assert.GreaterOrEqual(t, p.Pos.Y, 0.0)
		assert.Less(t, p.Pos.Y, 480.0)
		assert.GreaterOrEqual(t, p.Vel.X, -0.25)
		assert.Less(t, p.Vel.X, 0.25)
		assert.GreaterOrEqual(t, p.Vel.Y, -0.25)
		assert.Less(t, p.Vel.Y, 0.25)
		assert.Equal(t, 2.0, p.Radius)
	}
}

func TestInitializeNonPositiveCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Empty(t, Initialize(rng, 0, 100, 100, 1, 1))
	assert.Empty(t, Initialize(rng, -5, 100, 100, 1, 1))
}

func TestInitializeDeterministicForSeed(t *testing.T) {
	a := Initialize(rand.New(rand.NewSource(42)), 10, 300, 200, 0.5, 2)
	b := Initialize(rand.New(rand.NewSource(42)), 10, 300, 200, 0.5, 2)
	assert.Equal(t, a, b)
}
