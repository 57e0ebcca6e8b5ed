// Package field runs a particle field inside a host: it owns the particle
// store, the pointer and canvas state fed by the host's listeners, and the
// mount/teardown lifecycle of the animation loop.
//
// A Field is not safe for concurrent use. Hosts must deliver listener and
// frame callbacks on the goroutine that calls Mount and Dispose.
package field

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/particle"
)

// Cancel releases a listener registration or a pending frame request.
type Cancel func()

// Host is the environment a field mounts into.
type Host interface {
	// Surface returns the drawing target, or nil when none is available.
	Surface() particle.Surface
	// Size is the current canvas buffer size.
	Size() (width, height int)
	OnResize(fn func(width, height int)) Cancel
	OnPointerMove(fn func(x, y float64)) Cancel
	// RequestFrame schedules fn once, before the next repaint.
	RequestFrame(fn func()) Cancel
}

type State int

const (
	Unmounted State = iota
	Mounted
)

func (s State) String() string {
	if s == Mounted {
		return "mounted"
	}
	return "unmounted"
}

// Stats describes the running field.
type Stats struct {
	Frames    uint64
	Links     int
	Particles int
	Width     int
	Height    int
}

type Field struct {
	cfg       config.FieldConfig
	style     particle.Style
	repulsion particle.Repulsion
	log       *zap.Logger
	id        string

	state   State
	host    Host
	surface particle.Surface

	particles     []particle.Particle
	pointer       particle.Vec
	width, height int

	releases    []Cancel
	cancelFrame Cancel

	frames uint64
	links  int
}

// New validates cfg and returns an unmounted field.
func New(cfg config.FieldConfig, log *zap.Logger) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	pc, lc := cfg.Colors()
	id := uuid.NewString()
	return &Field{
		cfg: cfg,
		style: particle.Style{
			ParticleColor:   pc,
			LineColor:       lc,
			LineWidth:       cfg.LineWidth,
			MaxLinkDistance: cfg.MaxLinkDistance,
			IndexThreshold:  cfg.IndexThreshold,
		},
		repulsion: particle.Repulsion{
			Radius:   cfg.RepulsionRadius,
			Strength: cfg.RepulsionStrength,
		},
		log: log.Named("field").With(zap.String("field_id", id)),
		id:  id,
	}, nil
}

func (f *Field) ID() string { return f.id }

func (f *Field) State() State { return f.state }

// Config returns the validated configuration the field was built with.
func (f *Field) Config() config.FieldConfig { return f.cfg }

// Mount starts the animation in h. It reports false and does nothing when
// h has no surface. Mounting a mounted field is a no-op.
func (f *Field) Mount(h Host) bool {
	if f.state == Mounted {
		return true
	}
	surface := h.Surface()
	if surface == nil {
		f.log.Debug("no drawing surface, not mounting")
		return false
	}

	f.host = h
	f.surface = surface
	f.width, f.height = h.Size()
	f.pointer = particle.Vec{}
	f.frames, f.links = 0, 0

	seed := f.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	f.particles = particle.Initialize(rng, f.cfg.ParticleCount,
		float64(f.width), float64(f.height), f.cfg.Speed, f.cfg.ParticleRadius)

	f.releases = append(f.releases,
		h.OnResize(f.handleResize),
		h.OnPointerMove(f.handlePointer),
	)
	f.state = Mounted

	f.log.Info("mounted",
		zap.Int("particles", len(f.particles)),
		zap.Int("width", f.width),
		zap.Int("height", f.height))

	f.tick()
	return true
}

// Dispose stops the animation and releases every listener and the pending
// frame request. Calling it on an unmounted field does nothing.
func (f *Field) Dispose() {
	if f.state != Mounted {
		return
	}
	f.state = Unmounted

	for i := len(f.releases) - 1; i >= 0; i-- {
		if cancel := f.releases[i]; cancel != nil {
			cancel()
		}
	}
	f.releases = nil

	if f.cancelFrame != nil {
		f.cancelFrame()
		f.cancelFrame = nil
	}

	f.host = nil
	f.surface = nil
	f.log.Info("disposed", zap.Uint64("frames", f.frames))
}

// Stats returns counters for the current or last mount.
func (f *Field) Stats() Stats {
	return Stats{
		Frames:    f.frames,
		Links:     f.links,
		Particles: len(f.particles),
		Width:     f.width,
		Height:    f.height,
	}
}

// Particles exposes the live particle slice. Callers must not retain it
// across frames.
func (f *Field) Particles() []particle.Particle { return f.particles }

func (f *Field) Pointer() particle.Vec { return f.pointer }

func (f *Field) handleResize(width, height int) {
	f.width, f.height = width, height
	f.log.Debug("resize", zap.Int("width", width), zap.Int("height", height))
}

func (f *Field) handlePointer(x, y float64) {
	f.pointer = particle.Vec{X: x, Y: y}
}

// tick advances and draws one frame, then asks the host for the next one.
func (f *Field) tick() {
	f.cancelFrame = nil
	if f.state != Mounted {
		return
	}

	w, h := float64(f.width), float64(f.height)
	particle.Advance(f.particles, w, h, f.pointer, f.repulsion)
	stats := particle.DrawFrame(f.surface, f.particles, f.style)
	f.links = stats.Links
	f.frames++

	if f.state == Mounted {
		f.cancelFrame = f.host.RequestFrame(f.tick)
	}
}
