package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/particle"
)

// host adapts the ebiten game loop to field.Host. The canvas is an
// offscreen image kept at the window's layout size; frame callbacks run
// from Update and draw into it, and Draw composites it onto the screen.
type host struct {
	canvas        *ebiten.Image
	width, height int
	newImage      func(w, h int) *ebiten.Image

	resize  field.Listeners[func(int, int)]
	pointer field.Listeners[func(float64, float64)]
	frames  field.FrameQueue

	cursorX, cursorY int
	cursorSeen       bool
}

func newHost() *host {
	return &host{newImage: ebiten.NewImage}
}

func (h *host) Surface() particle.Surface {
	if h.canvas == nil {
		return nil
	}
	return surface{h: h}
}

func (h *host) Size() (int, int) { return h.width, h.height }

func (h *host) OnResize(fn func(int, int)) field.Cancel { return h.resize.Add(fn) }

func (h *host) OnPointerMove(fn func(float64, float64)) field.Cancel { return h.pointer.Add(fn) }

func (h *host) RequestFrame(fn func()) field.Cancel { return h.frames.Request(fn) }

// layout matches the canvas buffer to the window size and tells listeners.
func (h *host) layout(w, ht int) {
	if w <= 0 || ht <= 0 {
		return
	}
	if w == h.width && ht == h.height && h.canvas != nil {
		return
	}
	h.width, h.height = w, ht
	if h.canvas != nil {
		h.canvas.Deallocate()
	}
	h.canvas = h.newImage(w, ht)
	h.resize.Each(func(fn func(int, int)) { fn(w, ht) })
}

// moveCursor forwards cursor movement. The last position is kept when the
// cursor leaves the window.
func (h *host) moveCursor(x, y int) {
	if h.cursorSeen && x == h.cursorX && y == h.cursorY {
		return
	}
	h.cursorX, h.cursorY, h.cursorSeen = x, y, true
	h.pointer.Each(func(fn func(float64, float64)) { fn(float64(x), float64(y)) })
}

// surface draws on the host's current canvas, so it survives reallocation
// on resize.
type surface struct {
	h *host
}

func (s surface) Clear() {
	if s.h.canvas != nil {
		s.h.canvas.Clear()
	}
}

func (s surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if s.h.canvas == nil {
		return
	}
	vector.DrawFilledCircle(s.h.canvas, float32(cx), float32(cy), float32(r), c, true)
}

func (s surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA, alpha float64) {
	if s.h.canvas == nil {
		return
	}
	vector.StrokeLine(s.h.canvas, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), withAlpha(c, alpha), true)
}
