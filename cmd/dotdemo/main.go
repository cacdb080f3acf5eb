// Dotdemo is an interactive showcase for the dotfield engine. The run
// command opens a window with three draggable effect sources over a dot
// lattice; the bench command drives the same pipeline headless and reports
// frame timings.
package main

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spf13/cobra"

	"github.com/phanxgames/dotfield"
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func execute() error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "dotdemo",
		Short:        "Dotdemo showcases the dotfield field effect engine",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "engine config TOML file")

	logger := func() *charmlog.Logger {
		level := charmlog.InfoLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		return newLogger(os.Stderr, level)
	}

	root.AddCommand(newRunCmd(logger, &configPath))
	root.AddCommand(newBenchCmd(logger, &configPath))
	return root.Execute()
}

// newLogger creates a stderr logger with millisecond timestamps.
func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// loadConfig reads the engine configuration, falling back to defaults when
// no file is given.
func loadConfig(path string, logger *charmlog.Logger) (dotfield.EngineConfig, error) {
	if path == "" {
		logger.Debug("no config file, using defaults")
		return dotfield.DefaultEngineConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return dotfield.EngineConfig{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := dotfield.LoadEngineConfig(data)
	if err != nil {
		return dotfield.EngineConfig{}, err
	}
	logger.Debug("loaded config", "path", path, "grid", fmt.Sprintf("%dx%d", cfg.Rows, cfg.Cols))
	return cfg, nil
}

func newRunCmd(logger func() *charmlog.Logger, configPath *string) *cobra.Command {
	var (
		showFPS bool
		debug   bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive demo window",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := logger()
			cfg, err := loadConfig(*configPath, l)
			if err != nil {
				return err
			}

			g := newGame(cfg, l)
			g.showFPS = showFPS
			g.engine.SetDebugMode(debug)

			w := int(cfg.Viewport.Width)
			h := int(cfg.Viewport.Height)
			ebiten.SetWindowSize(w, h)
			ebiten.SetWindowTitle("Dotfield — drag the outlined sources")
			l.Info("starting demo", "window", fmt.Sprintf("%dx%d", w, h),
				"dots", cfg.Rows*cfg.Cols)
			return ebiten.RunGame(g)
		},
	}
	cmd.Flags().BoolVar(&showFPS, "fps", true, "draw the FPS counter")
	cmd.Flags().BoolVar(&debug, "debug", false, "log per-frame engine stats to stderr")
	return cmd
}

// dragSource is a movable rectangle bound to one effect.
type dragSource struct {
	pos, size dotfield.Vec2
	outline   dotfield.Color
	label     string
}

func (s *dragSource) Position() dotfield.Vec2 { return s.pos }
func (s *dragSource) Size() dotfield.Vec2     { return s.size }

func (s *dragSource) rect() dotfield.Rect {
	return dotfield.Rect{X: s.pos.X, Y: s.pos.Y, Width: s.size.X, Height: s.size.Y}
}

func (s *dragSource) contains(x, y float64) bool {
	return s.rect().Contains(x, y)
}

// game drives the engine from an ebiten loop. Dots render into a persistent
// offscreen image so only dirty regions repaint; source outlines and the FPS
// counter draw directly on the screen every frame.
type game struct {
	engine   *dotfield.Engine
	bindings *dotfield.SourceBindings
	sources  []*dragSource

	offscreen *ebiten.Image
	surface   *dotfield.ImageSurface

	dragging   *dragSource
	dragOffset dotfield.Vec2

	showFPS bool
	logger  *charmlog.Logger
}

func newGame(cfg dotfield.EngineConfig, logger *charmlog.Logger) *game {
	cfg.FadeInDuration = 0.4
	eng := dotfield.NewEngine(cfg)
	g := &game{
		engine:   eng,
		bindings: dotfield.NewSourceBindings(eng),
		logger:   logger,
	}

	vw, vh := cfg.Viewport.Width, cfg.Viewport.Height

	repel := &dragSource{
		pos:     dotfield.Vec2{X: vw * 0.2, Y: vh * 0.3},
		size:    dotfield.Vec2{X: 120, Y: 70},
		outline: dotfield.Color{R: 0.9, G: 0.4, B: 0.3, A: 1},
		label:   "repulsion",
	}
	attract := &dragSource{
		pos:     dotfield.Vec2{X: vw * 0.6, Y: vh * 0.3},
		size:    dotfield.Vec2{X: 90, Y: 90},
		outline: dotfield.Color{R: 0.3, G: 0.7, B: 0.9, A: 1},
		label:   "attraction",
	}
	ripple := &dragSource{
		pos:     dotfield.Vec2{X: vw * 0.4, Y: vh * 0.65},
		size:    dotfield.Vec2{X: 60, Y: 60},
		outline: dotfield.Color{R: 0.3, G: 0.9, B: 0.5, A: 1},
		label:   "ripple",
	}
	lens := &dragSource{
		pos:     dotfield.Vec2{X: vw * 0.7, Y: vh * 0.65},
		size:    dotfield.Vec2{X: 70, Y: 70},
		outline: dotfield.Color{R: 0.8, G: 0.7, B: 0.3, A: 1},
		label:   "lens",
	}

	pulse := dotfield.NewAttractionEffect(attract.pos, attract.size, 1.0, 4)
	pulse.PulseFrequency = 0.5

	g.bind(repel, dotfield.NewRepulsionEffect(repel.pos, repel.size, 1.4))
	g.bind(attract, pulse)
	g.bind(ripple, dotfield.NewRippleEffect(ripple.pos, ripple.size, 1.0, 5))
	g.bind(lens, dotfield.NewCompositeEffect(lens.pos, lens.size, 1.0, 3,
		dotfield.MagnifyBehavior{Scale: 0.8},
		dotfield.GrayscaleBehavior{Tint: cfg.DotColor},
	))
	return g
}

func (g *game) bind(src *dragSource, eff dotfield.Effect) {
	id := g.engine.RegisterEffect(eff)
	g.bindings.Bind(id, src)
	g.sources = append(g.sources, src)
	g.logger.Debug("registered effect", "label", src.label, "id", id)
}

func (g *game) Update() error {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		// Topmost source wins, so scan in reverse bind order.
		for i := len(g.sources) - 1; i >= 0; i-- {
			if s := g.sources[i]; s.contains(x, y) {
				g.dragging = s
				g.dragOffset = dotfield.Vec2{X: x - s.pos.X, Y: y - s.pos.Y}
				break
			}
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = nil
	}
	if s := g.dragging; s != nil {
		old := s.rect()
		s.pos = dotfield.Vec2{X: x - g.dragOffset.X, Y: y - g.dragOffset.Y}
		// The outline itself is not engine state; repaint the cells it
		// vacated and entered.
		g.engine.MarkDirty(old.Union(s.rect()).Inflate(2))
	}

	g.bindings.Sync()
	g.engine.Tick(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.offscreen == nil {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		g.offscreen = ebiten.NewImage(w, h)
		g.surface = dotfield.NewImageSurface(g.offscreen)
		g.engine.MarkAllDirty()
	}
	g.engine.Render(g.surface)
	screen.DrawImage(g.offscreen, nil)

	for _, s := range g.sources {
		r := s.rect()
		vector.StrokeRect(screen,
			float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
			1.5, toRGBA(s.outline), true)
	}
	if g.showFPS {
		dotfield.DrawFPS(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := g.engine.Config().Viewport
	return int(vp.Width), int(vp.Height)
}

// toRGBA converts a dotfield color for ebiten vector submission.
func toRGBA(c dotfield.Color) color.RGBA {
	return color.RGBA{
		R: uint8(c.R * c.A * 255),
		G: uint8(c.G * c.A * 255),
		B: uint8(c.B * c.A * 255),
		A: uint8(c.A * 255),
	}
}

func newBenchCmd(logger func() *charmlog.Logger, configPath *string) *cobra.Command {
	var frames int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the frame pipeline headless and report timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := logger()
			cfg, err := loadConfig(*configPath, l)
			if err != nil {
				return err
			}
			return runBench(cfg, frames, l)
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 600, "number of frames to simulate")
	return cmd
}

// countSurface discards draws, counting them. It deliberately omits FillRect
// so the engine skips region clearing, keeping the bench about dot work.
type countSurface struct {
	circles int
}

func (s *countSurface) DrawCircle(dotfield.Vec2, float64, dotfield.Color) {
	s.circles++
}

// runBench spins one orbiting repulsion source plus a stationary ripple for
// the given number of simulated 60 Hz frames.
func runBench(cfg dotfield.EngineConfig, frames int, l *charmlog.Logger) error {
	eng := dotfield.NewEngine(cfg)
	center := cfg.Viewport.Center()

	orbit := eng.RegisterEffect(dotfield.NewRepulsionEffect(center, dotfield.Vec2{X: 80, Y: 80}, 1.5))
	eng.RegisterEffect(dotfield.NewRippleEffect(center, dotfield.Vec2{X: 40, Y: 40}, 1.0, 5))

	const dt = 1.0 / 60.0
	radius := math.Min(cfg.Viewport.Width, cfg.Viewport.Height) * 0.25
	surface := &countSurface{}

	var tickTotal, renderTotal time.Duration
	start := time.Now()
	for i := 0; i < frames; i++ {
		angle := float64(i) * dt * math.Pi / 2
		pos := dotfield.Vec2{
			X: center.X + radius*math.Cos(angle) - 40,
			Y: center.Y + radius*math.Sin(angle) - 40,
		}
		eng.UpdateEffectGeometry(orbit, pos, dotfield.Vec2{X: 80, Y: 80})

		t0 := time.Now()
		eng.Tick(dt)
		tickTotal += time.Since(t0)

		t0 = time.Now()
		eng.Render(surface)
		renderTotal += time.Since(t0)
	}
	elapsed := time.Since(start)

	perFrame := elapsed / time.Duration(frames)
	l.Info("bench complete",
		"frames", frames,
		"elapsed", elapsed.Round(time.Millisecond),
		"per_frame", perFrame.Round(time.Microsecond),
		"tick", (tickTotal / time.Duration(frames)).Round(time.Microsecond),
		"render", (renderTotal / time.Duration(frames)).Round(time.Microsecond),
		"dots_drawn", surface.circles)
	if perFrame > 16670*time.Microsecond {
		l.Warn("pipeline slower than 60 Hz budget", "per_frame", perFrame.Round(time.Microsecond))
	}
	return nil
}
