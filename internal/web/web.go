//go:build js && wasm

// Package web hosts the particle field on an HTML canvas.
package web

import (
	"fmt"
	"image/color"
	"math"
	"syscall/js"

	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/particle"
)

// Host implements field.Host with window listeners and
// requestAnimationFrame. Every js.Func it creates is released by the
// matching Cancel.
type Host struct {
	win    js.Value
	canvas js.Value
	ctx    js.Value
}

// New attaches to the canvas with the given id, creating a full-window
// canvas when none exists. A host without a 2D context has no surface.
func New(canvasID string) *Host {
	win := js.Global()
	doc := win.Get("document")

	canvas := doc.Call("getElementById", canvasID)
	if !canvas.Truthy() {
		canvas = doc.Call("createElement", "canvas")
		canvas.Set("id", canvasID)
		style := canvas.Get("style")
		style.Set("position", "fixed")
		style.Set("inset", "0")
		style.Set("width", "100%")
		style.Set("height", "100%")
		style.Set("pointerEvents", "none")
		doc.Get("body").Call("appendChild", canvas)
	}

	h := &Host{win: win, canvas: canvas, ctx: canvas.Call("getContext", "2d")}
	h.matchWindow()
	return h
}

func (h *Host) Surface() particle.Surface {
	if !h.ctx.Truthy() {
		return nil
	}
	return surface{ctx: h.ctx, canvas: h.canvas}
}

func (h *Host) Size() (int, int) {
	return h.canvas.Get("width").Int(), h.canvas.Get("height").Int()
}

// matchWindow sizes the canvas buffer to the window.
func (h *Host) matchWindow() {
	h.canvas.Set("width", h.win.Get("innerWidth").Int())
	h.canvas.Set("height", h.win.Get("innerHeight").Int())
}

func (h *Host) OnResize(fn func(int, int)) field.Cancel {
	return h.listen("resize", func(js.Value) {
		h.matchWindow()
		fn(h.Size())
	})
}

func (h *Host) OnPointerMove(fn func(float64, float64)) field.Cancel {
	return h.listen("mousemove", func(ev js.Value) {
		fn(ev.Get("clientX").Float(), ev.Get("clientY").Float())
	})
}

func (h *Host) listen(event string, handle func(js.Value)) field.Cancel {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		handle(args[0])
		return nil
	})
	h.win.Call("addEventListener", event, cb)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		h.win.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

func (h *Host) RequestFrame(fn func()) field.Cancel {
	var cb js.Func
	done := false
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		if !done {
			done = true
			cb.Release()
			fn()
		}
		return nil
	})
	id := h.win.Call("requestAnimationFrame", cb)

	return func() {
		if done {
			return
		}
		done = true
		h.win.Call("cancelAnimationFrame", id)
		cb.Release()
	}
}

type surface struct {
	ctx    js.Value
	canvas js.Value
}

func (s surface) Clear() {
	s.ctx.Call("clearRect", 0, 0, s.canvas.Get("width").Int(), s.canvas.Get("height").Int())
}

func (s surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	s.ctx.Set("fillStyle", cssColor(c))
	s.ctx.Call("beginPath")
	s.ctx.Call("arc", cx, cy, r, 0, 2*math.Pi)
	s.ctx.Call("fill")
}

func (s surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA, alpha float64) {
	s.ctx.Set("strokeStyle", cssColor(c))
	s.ctx.Set("lineWidth", width)
	s.ctx.Set("globalAlpha", alpha)
	s.ctx.Call("beginPath")
	s.ctx.Call("moveTo", x0, y0)
	s.ctx.Call("lineTo", x1, y1)
	s.ctx.Call("stroke")
	s.ctx.Set("globalAlpha", 1)
}

func cssColor(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", c.R, c.G, c.B, float64(c.A)/255)
}
