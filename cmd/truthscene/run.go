package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/truthscene/pkg/chime"
	"github.com/taigrr/truthscene/pkg/config"
	"github.com/taigrr/truthscene/pkg/models"
	"github.com/taigrr/truthscene/pkg/render"
	"github.com/taigrr/truthscene/pkg/scene"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errQuit = errors.New("quit")

type size struct{ width, height int }

// sceneOptions returns the scene options shared by every command.
func sceneOptions(cfg *config.Config) ([]scene.Option, error) {
	opts := []scene.Option{scene.WithLogger(logger)}
	if cfg.Render.CoreModel == "" {
		return opts, nil
	}
	mesh, err := models.LoadGLB(cfg.Render.CoreModel)
	if err != nil {
		return nil, fmt.Errorf("load core model: %w", err)
	}
	logger.Info("loaded core model",
		zap.String("path", cfg.Render.CoreModel),
		zap.String("layer", cfg.Render.CoreLayer),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("edges", mesh.EdgeCount()),
	)
	return append(opts, scene.WithLayerMesh(cfg.Render.CoreLayer, mesh)), nil
}

func runInteractive(ctx context.Context, cfg *config.Config) error {
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}
	opts, err := sceneOptions(cfg)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	page := scene.NewVirtualPage(cfg.Page.Viewports*float64(height), float64(height), cfg.Render.FPS)
	state := scene.NewState()
	sc, err := scene.New(state, cfg.Scene, append(opts, scene.WithSurface(page))...)
	if err != nil {
		return err
	}
	defer sc.Close()

	player := chime.New(cfg.Sound.Enabled, cfg.Sound.Tone, logger)
	if err := player.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
	}
	player.Attach(sc.Intro())
	defer player.Close()

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	fmt.Fprint(os.Stdout, "\x1b[?1000h") // mouse button and wheel tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1000l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	logger.Info("interactive session started",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("fps", cfg.Render.FPS),
	)

	var showHUD atomic.Bool
	showHUD.Store(cfg.Render.ShowHUD)
	resized := make(chan size, 1)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w, err := config.NewWatcher(configPath, func(c *config.Config) {
			sc.SetTuning(c.Scene)
		}, logger)
		if err != nil {
			logger.Warn("config hot reload disabled", zap.Error(err))
			return nil
		}
		if err := w.Run(gctx); err != nil {
			logger.Warn("config hot reload disabled", zap.Error(err))
			w.Stop()
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev, ok := <-term.Events():
				if !ok {
					return errQuit
				}
				if quit := handleEvent(ev, sc, page, cfg, &showHUD, resized); quit {
					return errQuit
				}
			}
		}
	})

	g.Go(func() error {
		return frameLoop(gctx, term, sc, page, cfg, palette, &showHUD, resized, size{width, height})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	built, skipped := sc.Frames()
	logger.Info("interactive session ended", zap.Uint64("frames", built), zap.Uint64("skipped", skipped))
	return nil
}

// handleEvent applies one terminal event and reports whether to quit.
func handleEvent(ev uv.Event, sc *scene.Scene, page *scene.VirtualPage, cfg *config.Config, showHUD *atomic.Bool, resized chan size) bool {
	nav := sc.Navigator()
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		select {
		case <-resized:
		default:
		}
		resized <- size{ev.Width, ev.Height}

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("q", "ctrl+c"):
			return true
		case ev.MatchString("j", "down"):
			page.ScrollBy(cfg.Page.WheelStep)
		case ev.MatchString("k", "up"):
			page.ScrollBy(-cfg.Page.WheelStep)
		case ev.MatchString("pgdown", "space"):
			page.ScrollBy(page.ViewportHeight())
		case ev.MatchString("pgup"):
			page.ScrollBy(-page.ViewportHeight())
		case ev.MatchString("enter", "d"):
			if !nav.EnterDashboard() {
				logger.Debug("dashboard request ignored", zap.Stringer("mode", sc.State().Mode()))
			}
		case ev.MatchString("esc", "l"):
			nav.EnterLanding()
		case ev.MatchString("?", "shift+/"):
			showHUD.Store(!showHUD.Load())
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			page.ScrollBy(-cfg.Page.WheelStep)
		case uv.MouseWheelDown:
			page.ScrollBy(cfg.Page.WheelStep)
		}
	}
	return false
}

func frameLoop(ctx context.Context, term *uv.Terminal, sc *scene.Scene, page *scene.VirtualPage, cfg *config.Config, palette render.Palette, showHUD *atomic.Bool, resized chan size, sz size) error {
	fb := render.NewFramebuffer(sz.width, sz.height*2)
	renderer := render.NewSceneRenderer(fb)
	renderer.Palette = palette
	hud := NewHUD(palette)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Render.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case sz = <-resized:
			term.Erase()
			term.Resize(sz.width, sz.height)
			fb = render.NewFramebuffer(sz.width, sz.height*2)
			renderer.SetFramebuffer(fb)
			page.Resize(float64(sz.height))
			logger.Debug("resized", zap.Int("width", sz.width), zap.Int("height", sz.height))
			continue
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now

			page.Update()
			graph := sc.Update(dt)
			stats := renderer.Render(graph)

			area := uv.Rect(0, 0, sz.width, sz.height)
			fb.Draw(term, area)
			hud.UpdateFPS(now)
			if showHUD.Load() && sz.height > 2 {
				uv.NewStyledString(hud.Top(sz.width, graph.Frame)).Draw(term, uv.Rect(0, 0, sz.width, 1))
				uv.NewStyledString(hud.Bottom(sz.width, stats)).Draw(term, uv.Rect(0, sz.height-1, sz.width, 1))
			}
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
