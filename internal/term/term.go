// Package term hosts the particle field in a terminal through tcell.
package term

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/particle"
)

const (
	// Canvas units covered by one terminal cell, so link distances keep
	// roughly their pixel meaning.
	CellWidth  = 8
	CellHeight = 16

	frameInterval = 16 * time.Millisecond // ~60 FPS
)

// Host implements field.Host on a tcell screen. All callbacks run on the
// goroutine executing Run.
type Host struct {
	screen tcell.Screen
	log    *zap.Logger
	buf    *buffer

	resize  field.Listeners[func(int, int)]
	pointer field.Listeners[func(float64, float64)]
	frames  field.FrameQueue
}

// New wraps an initialized screen. Run finalizes it.
func New(screen tcell.Screen, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	cols, rows := screen.Size()
	return &Host{
		screen: screen,
		log:    log.Named("term"),
		buf:    newBuffer(cols, rows, CellWidth, CellHeight),
	}
}

func (h *Host) Surface() particle.Surface {
	if h.screen == nil {
		return nil
	}
	return h.buf
}

func (h *Host) Size() (int, int) {
	return h.buf.cols * CellWidth, h.buf.rows * CellHeight
}

func (h *Host) OnResize(fn func(int, int)) field.Cancel { return h.resize.Add(fn) }

func (h *Host) OnPointerMove(fn func(float64, float64)) field.Cancel { return h.pointer.Add(fn) }

func (h *Host) RequestFrame(fn func()) field.Cancel { return h.frames.Request(fn) }

// Run mounts f and animates it until ctx is done or the user quits. Each
// config received on reloads replaces the field. On return the field is
// disposed, the screen finalized and the event poller has exited.
func (h *Host) Run(ctx context.Context, f *field.Field, reloads <-chan config.Config) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	cur := f
	defer func() {
		cur.Dispose()
		close(quit)
		h.screen.Fini()
		wg.Wait()
	}()

	cur.Mount(h)
	h.present()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch h.handleEvent(ev) {
			case actionQuit:
				return nil
			case actionRemount:
				cur.Dispose()
				cur.Mount(h)
			}

		case cfg := <-reloads:
			next, err := field.New(cfg.Field, h.log)
			if err != nil {
				h.log.Warn("reload rejected", zap.Error(err))
				continue
			}
			cur.Dispose()
			cur = next
			cur.Mount(h)

		case <-ticker.C:
			if h.frames.Run() > 0 {
				h.present()
			}
		}
	}
}

type action int

const (
	actionNone action = iota
	actionQuit
	actionRemount
)

func (h *Host) handleEvent(ev tcell.Event) action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return actionQuit
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return actionQuit
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			return actionRemount
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		px := float64(x*CellWidth) + CellWidth/2
		py := float64(y*CellHeight) + CellHeight/2
		h.pointer.Each(func(fn func(float64, float64)) { fn(px, py) })

	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.buf.resize(cols, rows)
		h.screen.Sync()
		w, ht := h.Size()
		h.log.Debug("resize", zap.Int("cols", cols), zap.Int("rows", rows))
		h.resize.Each(func(fn func(int, int)) { fn(w, ht) })
	}
	return actionNone
}

func (h *Host) present() {
	h.buf.flush(h.screen)
	h.screen.Show()
}
