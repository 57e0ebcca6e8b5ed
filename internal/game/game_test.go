package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
)

func TestNewBuildsCaption(t *testing.T) {
	g, err := New(config.Default(), nil, zap.NewNop())
	require.NoError(t, err)

	require.NotNil(t, g.counter)
	assert.Equal(t, 138.0, g.counter.End)
	assert.Equal(t, "", g.hero.Visible())
	// No canvas before the first Layout, so nothing is mounted yet.
	assert.Equal(t, field.Unmounted, g.field.State())
}

func TestNewWithoutValidROIHidesCounter(t *testing.T) {
	cfg := config.Default()
	cfg.Hero.ROI.Employees = 0
	g, err := New(cfg, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, g.counter)
}

func TestNewRejectsBadField(t *testing.T) {
	cfg := config.Default()
	cfg.Field.LineColor = "nope"
	_, err := New(cfg, nil, zap.NewNop())
	assert.ErrorIs(t, err, config.ErrInvalidField)
}

func TestDrainReloadsSwapsField(t *testing.T) {
	reloads := make(chan config.Config, 1)
	g, err := New(config.Default(), reloads, zap.NewNop())
	require.NoError(t, err)
	before := g.field

	next := config.Default()
	next.Field.ParticleCount = 5
	reloads <- next
	g.drainReloads()

	assert.NotSame(t, before, g.field)
	assert.Equal(t, 5, g.field.Config().ParticleCount)
	assert.NoError(t, g.lastErr)

	bad := config.Default()
	bad.Field.ParticleColor = "???"
	reloads <- bad
	g.drainReloads()
	assert.Error(t, g.lastErr)
	assert.Equal(t, 5, g.field.Config().ParticleCount, "rejected reload keeps the running field")

	g.drainReloads() // nothing pending
}
