package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "field.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	f := cfg.Field
	assert.Equal(t, 80, f.ParticleCount)
	assert.Equal(t, 150.0, f.MaxLinkDistance)
	assert.Equal(t, 0.5, f.Speed)
	assert.Equal(t, 100.0, f.RepulsionRadius)
	assert.Equal(t, 2.0, f.RepulsionStrength)
	assert.Equal(t, 2.0, f.ParticleRadius)
	assert.Equal(t, 1.0, f.LineWidth)

	pc, lc := f.Colors()
	assert.Equal(t, color.NRGBA{255, 255, 255, 204}, pc)
	assert.Equal(t, color.NRGBA{255, 255, 255, 51}, lc)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
field:
  particle_count: 120
  particle_color: "#3b82f6"
  max_link_distance: 90
hero:
  lines: ["One", "Two"]
  loop: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Field.ParticleCount)
	assert.Equal(t, 90.0, cfg.Field.MaxLinkDistance)
	assert.Equal(t, 0.5, cfg.Field.Speed, "unset keys keep defaults")
	pc, _ := cfg.Field.Colors()
	assert.Equal(t, color.NRGBA{0x3b, 0x82, 0xf6, 255}, pc)
	assert.Equal(t, []string{"One", "Two"}, cfg.Hero.Lines)
	assert.False(t, cfg.Hero.Loop)
	assert.Equal(t, WindowWidth, cfg.Window.Width)
}

func TestLoadNegativeCountClamps(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "field:\n  particle_count: -4\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Field.ParticleCount)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, dir, "field: [not, a, map]\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, dir, "field:\n  line_color: not-a-color\n"))
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = Load(writeConfig(t, dir, "field:\n  speed: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidField)

	for _, body := range []string{
		"field:\n  speed: .nan\n",
		"field:\n  max_link_distance: .inf\n",
		"field:\n  particle_radius: -.inf\n",
		"field:\n  repulsion_strength: .nan\n",
	} {
		_, err = Load(writeConfig(t, dir, body))
		assert.ErrorIs(t, err, ErrInvalidField, body)
	}

	_, err = Load(writeConfig(t, dir, "window:\n  width: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	cfg := Default()
	cfg.Field.Seed = 99
	data, err := cfg.Marshal()
	require.NoError(t, err)

	loaded, err := Load(writeConfig(t, t.TempDir(), string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 255}},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 255}},
		{"RGBA(255,255,255,0.2)", color.NRGBA{255, 255, 255, 51}},
		{"  rgba(0, 0, 0, 0)  ", color.NRGBA{0, 0, 0, 0}},
		{"white", color.NRGBA{255, 255, 255, 255}},
		{"hsl(0, 100%, 50%)", color.NRGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "nope", "#12", "rgb(1,2)", "rgba(a,b,c,d)"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestShippedPresetsLoad(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "presets", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, p := range paths {
		_, err := Load(p)
		assert.NoError(t, err, p)
	}
}
