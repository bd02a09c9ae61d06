package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/truthscene/pkg/config"
	"github.com/taigrr/truthscene/pkg/render"
	"github.com/taigrr/truthscene/pkg/scene"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	renderFrames    int
	renderOut       string
	renderSchedule  string
	renderScroll    float64
	renderEvery     int
	renderSkipIntro bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render scene frames to PNG files without a terminal",
	Long: `Runs the scene headless at a fixed time step and writes frames as PNG.

The landing page scrolls from top to bottom over --scroll seconds once the
intro clears. --schedule switches pages at given times, for example:

  truthscene render --frames 600 --schedule "4=dashboard,8=landing"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if logger, err = newLogger(cfg, false); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		sched, err := parseSchedule(renderSchedule)
		if err != nil {
			return err
		}
		n, err := renderHeadless(cmd.Context(), cfg, renderJob{
			Frames:    renderFrames,
			Out:       renderOut,
			Schedule:  sched,
			Scroll:    renderScroll,
			Every:     renderEvery,
			SkipIntro: renderSkipIntro,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", n, renderOut)
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVarP(&renderFrames, "frames", "n", 300, "Number of frames to simulate")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "frames", "Output directory")
	renderCmd.Flags().StringVar(&renderSchedule, "schedule", "", "Page switches as time=page pairs, comma separated")
	renderCmd.Flags().Float64Var(&renderScroll, "scroll", 3, "Seconds to scroll the landing page end to end (0 to stay at the top)")
	renderCmd.Flags().IntVar(&renderEvery, "every", 1, "Write every Nth frame")
	renderCmd.Flags().BoolVar(&renderSkipIntro, "skip-intro", false, "Start with the intro already finished")
}

// cue switches page at a point in scene time.
type cue struct {
	At   float64
	Mode scene.Mode
}

// parseSchedule parses "t=page,t=page". Only landing and dashboard can
// be requested; the transition is entered on the way to the dashboard.
func parseSchedule(s string) ([]cue, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var cues []cue
	for part := range strings.SplitSeq(s, ",") {
		at, name, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("schedule entry %q: want time=page", part)
		}
		t, err := strconv.ParseFloat(at, 64)
		if err != nil || t < 0 {
			return nil, fmt.Errorf("schedule entry %q: bad time", part)
		}
		m, err := scene.ParseMode(name)
		if err != nil {
			return nil, fmt.Errorf("schedule entry %q: %w", part, err)
		}
		if m == scene.ModeTransitioning {
			return nil, fmt.Errorf("schedule entry %q: transitioning cannot be requested", part)
		}
		cues = append(cues, cue{At: t, Mode: m})
	}
	slices.SortStableFunc(cues, func(a, b cue) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})
	return cues, nil
}

type renderJob struct {
	Frames    int
	Out       string
	Schedule  []cue
	Scroll    float64
	Every     int
	SkipIntro bool
}

// renderHeadless simulates job.Frames frames and writes every job.Every-th
// one. PNG encoding runs on a bounded pool of goroutines.
func renderHeadless(ctx context.Context, cfg *config.Config, job renderJob) (int, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return 0, err
	}
	opts, err := sceneOptions(cfg)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(job.Out, 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	viewport := float64(cfg.Render.Height)
	page := scene.NewVirtualPage(cfg.Page.Viewports*viewport, viewport, cfg.Render.FPS)
	state := scene.NewState()
	if job.SkipIntro {
		state.SetLoading(false)
	}
	sc, err := scene.New(state, cfg.Scene, append(opts, scene.WithSurface(page))...)
	if err != nil {
		return 0, err
	}
	defer sc.Close()

	fb := render.NewFramebuffer(cfg.Render.Width, cfg.Render.Height)
	renderer := render.NewSceneRenderer(fb)
	renderer.Palette = palette

	dt := 1 / float64(cfg.Render.FPS)
	every := max(job.Every, 1)
	scrollStep := 0.0
	if job.Scroll > 0 {
		scrollStep = (page.ScrollHeight() - page.ViewportHeight()) * dt / job.Scroll
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	written := 0
	next := 0
	for i := range job.Frames {
		if err := gctx.Err(); err != nil {
			break
		}
		t := float64(i) * dt
		for next < len(job.Schedule) && job.Schedule[next].At <= t {
			applyCue(sc, job.Schedule[next])
			next++
		}

		page.ScrollBy(scrollStep)
		page.Update()
		graph := sc.Update(dt)
		renderer.Render(graph)

		if i%every != 0 {
			continue
		}
		img := fb.ToImage()
		path := filepath.Join(job.Out, fmt.Sprintf("frame_%05d.png", i))
		g.Go(func() error { return render.WritePNG(path, img) })
		written++
	}

	if err := g.Wait(); err != nil {
		return written, err
	}
	if err := ctx.Err(); err != nil {
		return written, err
	}
	built, skipped := sc.Frames()
	logger.Info("render finished",
		zap.Int("written", written),
		zap.Uint64("frames", built),
		zap.Uint64("skipped", skipped),
		zap.String("out", job.Out),
	)
	return written, nil
}

func applyCue(sc *scene.Scene, c cue) {
	nav := sc.Navigator()
	switch c.Mode {
	case scene.ModeDashboard:
		if !nav.EnterDashboard() {
			logger.Warn("dashboard cue ignored", zap.Float64("at", c.At), zap.Stringer("mode", sc.State().Mode()))
		}
	case scene.ModeLanding:
		nav.EnterLanding()
	}
}
