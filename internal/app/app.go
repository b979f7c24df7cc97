package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/scene"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/tui"
	"github.com/san-kum/rigidsim/internal/viz"
)

// LiveRunner shows the live view around a run. viz.Run in production.
type LiveRunner func(ctx context.Context, scene string, steps int, run viz.RunFunc, opts ...tea.ProgramOption) error

// App ties a config to a scene, a presentation, the metrics and storage.
type App struct {
	log      *slog.Logger
	registry *scene.Registry
	store    *storage.Store
	out      io.Writer
	live     LiveRunner
	sleep    func(time.Duration)
}

// New builds an App writing reports to out. A nil store disables saving.
func New(log *slog.Logger, store *storage.Store, out io.Writer) *App {
	return &App{
		log:      log,
		registry: scene.NewRegistry(),
		store:    store,
		out:      out,
		live:     viz.Run,
		sleep:    time.Sleep,
	}
}

func (a *App) Registry() *scene.Registry { return a.registry }

// SetLiveRunner replaces the Bubble Tea program used for the live display.
func (a *App) SetLiveRunner(fn LiveRunner) { a.live = fn }

// SetSleeper replaces time.Sleep for paced screen output.
func (a *App) SetSleeper(fn func(time.Duration)) { a.sleep = fn }

type Options struct {
	Config *config.Config
	Preset string
	Save   bool
}

type Result struct {
	RunID     string
	Scene     string
	Steps     int
	Elapsed   time.Duration
	Cancelled bool
	Metrics   map[string]float64
	Recording *metrics.Recording
}

// Run builds the configured scene and drives it to completion. A run stopped
// through ctx is not an error: the result is marked cancelled and still
// saved if requested.
func (a *App) Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("%w: no config", config.ErrInvalid)
	}

	s, err := a.registry.Build(cfg.Scene, cfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	a.log.Debug("scene built",
		"scene", s.Name,
		"bodies", len(s.Bodies),
		"geoms", len(s.Geoms),
		"joints", len(s.Joints),
	)

	bodies := make([]metrics.Body, len(s.Bodies))
	positioners := make([]tui.Positioner, len(s.Bodies))
	for i, b := range s.Bodies {
		bodies[i] = b
		positioners[i] = b
	}

	set := metrics.ForScene(cfg.Scene, mgl64.Vec3(cfg.Gravity), bodies)
	recorder := metrics.NewRecorder(bodies, cfg.Steps)
	completed := 0
	counter := dynamo.ObserverFunc(func(sc dynamo.StepContext) { completed = sc.Step + 1 })

	newDriver := func(render dynamo.RenderFunc) *dynamo.Driver {
		d := s.Driver(render)
		d.AddObserver(set)
		d.AddObserver(recorder)
		d.AddObserver(counter)
		return d
	}

	runCfg := dynamo.Config{Steps: cfg.Steps, Dt: cfg.Dt}
	a.log.Info("run started", "scene", cfg.Scene, "steps", cfg.Steps, "dt", cfg.Dt, "display", cfg.Display.Mode)
	start := time.Now()

	switch cfg.Display.Mode {
	case config.ModeLive:
		scr := a.newScreen(io.Discard, cfg)
		err = a.live(ctx, cfg.Scene, cfg.Steps, func(ctx context.Context, send func(tea.Msg)) error {
			render := viz.FrameRenderer(send, scr, LayoutFor(cfg), positioners...)
			return newDriver(render).Run(ctx, runCfg)
		})
	case config.ModeScreen:
		scr := a.newScreen(a.out, cfg)
		if err := scr.Start(); err != nil {
			return nil, err
		}
		err = newDriver(tui.Renderer(scr, LayoutFor(cfg), positioners...)).Run(ctx, runCfg)
		if stopErr := scr.Stop(); err == nil {
			err = stopErr
		}
	default:
		err = newDriver(tui.NewText(a.out, positioners...).Render).Run(ctx, runCfg)
	}

	cancelled := errors.Is(err, context.Canceled)
	if err != nil && !cancelled {
		a.log.Error("run failed", "scene", cfg.Scene, "step", completed, "err", err)
		return nil, err
	}

	res := &Result{
		Scene:     cfg.Scene,
		Steps:     completed,
		Elapsed:   time.Since(start),
		Cancelled: cancelled,
		Metrics:   set.Values(),
		Recording: recorder.Recording(),
	}
	a.log.Info("run finished", "scene", res.Scene, "steps", res.Steps, "elapsed", res.Elapsed, "cancelled", cancelled)

	if opts.Save && a.store != nil {
		if err := a.save(res, cfg, opts.Preset); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (a *App) newScreen(out io.Writer, cfg *config.Config) *tui.Screen {
	scr := tui.NewScreen(out, tui.DefaultRows, tui.DefaultCols)
	scr.SetPace(time.Duration(cfg.Display.PaceMS) * time.Millisecond)
	scr.SetSleeper(a.sleep)
	return scr
}

func (a *App) save(res *Result, cfg *config.Config, preset string) error {
	if err := a.store.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	id, err := a.store.Save(storage.RunMetadata{
		Scene:     cfg.Scene,
		Preset:    preset,
		Steps:     res.Steps,
		Dt:        cfg.Dt,
		Gravity:   cfg.Gravity,
		Cancelled: res.Cancelled,
		Metrics:   res.Metrics,
	}, res.Recording)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	res.RunID = id
	a.log.Info("run saved", "id", id, "dir", a.store.Dir())
	return nil
}

// LayoutFor picks the screen layout of a scene: the chain layout for the
// hinge chain and the single-ball layout otherwise.
func LayoutFor(cfg *config.Config) tui.Layout {
	if cfg.Scene == "chain" {
		return tui.ChainLayout{GroundRow: cfg.Display.GroundRow, OriginCol: cfg.Display.OriginCol}
	}
	return tui.BounceLayout{GroundRow: cfg.Display.GroundRow, Col: cfg.Display.OriginCol}
}
