package game

import (
	"image/color"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
)

// headlessHost never allocates GPU images, so no canvas ever exists.
func headlessHost() *host {
	h := newHost()
	h.newImage = func(int, int) *ebiten.Image { return nil }
	return h
}

func TestHostWithoutCanvasDoesNotMount(t *testing.T) {
	h := headlessHost()
	assert.Nil(t, h.Surface())

	f, err := field.New(config.DefaultField(), zap.NewNop())
	require.NoError(t, err)
	assert.False(t, f.Mount(h))
	assert.Zero(t, h.resize.Len())
	assert.Zero(t, h.pointer.Len())
	assert.Zero(t, h.frames.Pending())
}

func TestHostLayoutNotifiesResize(t *testing.T) {
	h := headlessHost()
	var got [][2]int
	cancel := h.OnResize(func(w, ht int) { got = append(got, [2]int{w, ht}) })

	h.layout(640, 480)
	h.layout(0, 480)
	h.layout(800, 600)
	assert.Equal(t, [][2]int{{640, 480}, {800, 600}}, got)
	w, ht := h.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, ht)

	cancel()
	h.layout(1024, 768)
	assert.Len(t, got, 2)
}

func TestHostCursorDeduplicates(t *testing.T) {
	h := headlessHost()
	var got [][2]float64
	h.OnPointerMove(func(x, y float64) { got = append(got, [2]float64{x, y}) })

	h.moveCursor(0, 0)
	h.moveCursor(0, 0)
	h.moveCursor(5, 7)
	assert.Equal(t, [][2]float64{{0, 0}, {5, 7}}, got)
}

func TestHostFrames(t *testing.T) {
	h := headlessHost()
	ran := 0
	h.RequestFrame(func() { ran++ })
	cancel := h.RequestFrame(func() { ran += 100 })
	cancel()
	assert.Equal(t, 1, h.frames.Run())
	assert.Equal(t, 1, ran)
}

func TestWithAlpha(t *testing.T) {
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	assert.Equal(t, uint8(100), withAlpha(c, 0.5).A)
	assert.Equal(t, uint8(0), withAlpha(c, -1).A)
	assert.Equal(t, uint8(200), withAlpha(c, 3).A)
	assert.Equal(t, uint8(255), withAlpha(c, 0.5).R)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", formatDuration(0))
	assert.Equal(t, "01:05", formatDuration(65*time.Second))
	assert.Equal(t, "61:01", formatDuration(61*time.Minute+time.Second))
}

func TestCenterXCountsRunes(t *testing.T) {
	assert.Equal(t, 97, centerX(200, "abc"))
	assert.Equal(t, 97, centerX(200, "übe"))
	assert.Equal(t, centerX(200, "abcd"), centerX(200, "ERP█"))
}
