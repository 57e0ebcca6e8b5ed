// Package game hosts the particle field in a desktop window.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/anim"
	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/roi"
)

type Game struct {
	log     *zap.Logger
	host    *host
	field   *field.Field
	reloads <-chan config.Config

	// hero caption
	hero    *anim.Typewriter
	counter *anim.Counter

	// input edge detection
	prevKey map[ebiten.Key]bool

	// state
	time    float64
	started time.Time
	paused  bool
	showHUD bool
	lastErr error
}

// New builds a game for cfg. reloads may be nil; otherwise every config
// received on it replaces the running field.
func New(cfg config.Config, reloads <-chan config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		log:     log.Named("game"),
		host:    newHost(),
		reloads: reloads,
		prevKey: map[ebiten.Key]bool{},
		started: time.Now(),
		showHUD: true,
	}
	if err := g.apply(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg config.Config, reloads <-chan config.Config, log *zap.Logger) error {
	g, err := New(cfg, reloads, log)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	err = ebiten.RunGame(g)
	g.field.Dispose()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// apply swaps in a field and caption built from cfg, disposing the old
// field first so its listeners and frame request are released.
func (g *Game) apply(cfg config.Config) error {
	f, err := field.New(cfg.Field, g.log)
	if err != nil {
		return err
	}
	if g.field != nil {
		g.field.Dispose()
	}
	g.field = f
	g.field.Mount(g.host)

	hc := cfg.Hero
	g.hero = anim.NewTypewriter(hc.Lines, anim.TypewriterOptions{
		TypingSpeed:   time.Duration(hc.TypingSpeedMs) * time.Millisecond,
		DeletingSpeed: time.Duration(hc.DeletingSpeedMs) * time.Millisecond,
		Delay:         time.Duration(hc.DelayMs) * time.Millisecond,
		CursorBlink:   config.CursorBlink * time.Millisecond,
		Loop:          hc.Loop,
		Cursor:        hc.Cursor,
	})

	g.counter = nil
	est, err := roi.Calculate(roi.Inputs{
		Employees:   hc.ROI.Employees,
		AvgSalary:   hc.ROI.AvgSalary,
		ManualHours: hc.ROI.ManualHours,
		ErrorRate:   hc.ROI.ErrorRate,
	})
	if err != nil {
		g.log.Warn("hero roi disabled", zap.Error(err))
		return nil
	}
	prefix := ""
	if est.AnnualROI > 0 {
		prefix = "+"
	}
	g.counter = &anim.Counter{
		End:      math.Round(est.AnnualROI),
		Duration: time.Duration(hc.CounterDurationMs) * time.Millisecond,
		Prefix:   "Estimated annual ERP ROI: " + prefix,
		Suffix:   "%",
	}
	return nil
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if justPressed(ebiten.KeyH) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.showHUD = !g.showHUD
	}
	if justPressed(ebiten.KeyR) {
		g.remount()
	}
	if justPressed(ebiten.KeyO) {
		if err := g.openPresetDialog(); err != nil {
			g.lastErr = err
		}
	}
	g.drainReloads()

	// Retried each tick: the canvas only exists after the first Layout.
	if g.field.State() != field.Mounted {
		g.field.Mount(g.host)
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.host.moveCursor(mouseX, mouseY)

	dt := time.Second / time.Duration(ebiten.TPS())
	if !g.paused {
		g.host.frames.Run()
		g.time += dt.Seconds()
	}
	g.hero.Advance(dt)
	if g.counter != nil {
		g.counter.Advance(dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)

	if g.host.canvas != nil {
		screen.DrawImage(g.host.canvas, nil)
	}

	g.drawHero(screen)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.host.layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) remount() {
	g.field.Dispose()
	g.field.Mount(g.host)
	if g.counter != nil {
		g.counter.Reset()
	}
}

func (g *Game) drainReloads() {
	if g.reloads == nil {
		return
	}
	select {
	case cfg := <-g.reloads:
		if err := g.apply(cfg); err != nil {
			g.lastErr = err
			return
		}
		g.lastErr = nil
	default:
	}
}

func (g *Game) openPresetDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Particle Preset"),
		zenity.FileFilters{{
			Name:     "YAML",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(filename)
	if err != nil {
		return err
	}
	g.log.Info("preset loaded", zap.String("path", filename))
	g.lastErr = nil
	return g.apply(cfg)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for y := 0; y < h; y++ {
		ratio := float64(y) / float64(h)
		r := uint8(12 + 10*math.Sin(g.time*0.2+ratio*math.Pi))
		gv := uint8(20 + 12*math.Cos(g.time*0.15+ratio*math.Pi))
		b := uint8(48 + 20*math.Sin(g.time*0.1+ratio*math.Pi))
		ebitenutil.DrawLine(screen, 0, float64(y), float64(w), float64(y), color.RGBA{R: r, G: gv, B: b, A: 255})
	}
}

func (g *Game) drawHero(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	ebitenutil.DebugPrintAt(screen, g.hero.Text(), centerX(w, g.hero.Visible()), h/2-16)

	if g.counter != nil {
		line := g.counter.String()
		ebitenutil.DebugPrintAt(screen, line, centerX(w, line), h/2+8)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.field.Stats()
	status := fmt.Sprintf("particles %d  links %d  frames %d  %dx%d  up %s  %.0f fps",
		st.Particles, st.Links, st.Frames, st.Width, st.Height,
		formatDuration(time.Since(g.started)), ebiten.ActualFPS())
	if g.paused {
		status += "  [paused]"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}
