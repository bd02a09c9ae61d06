package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/truthscene/pkg/render"
	"github.com/taigrr/truthscene/pkg/scene"
)

const progressWidth = 20

// HUD renders the status lines drawn over the scene.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time

	base   lipgloss.Style
	accent lipgloss.Style
	dim    lipgloss.Style
}

// NewHUD creates a HUD styled with the palette.
func NewHUD(p render.Palette) *HUD {
	bg := lipgloss.Color(hexColor(p.Background))
	base := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#e6e6e6")).Padding(0, 1)
	return &HUD{
		fpsTime: time.Now(),
		base:    base,
		accent:  base.Foreground(lipgloss.Color(hexColor(p.Accent))).Bold(true),
		dim:     base.Faint(true),
	}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// Top returns the header line: frame rate, mode and scroll progress.
func (h *HUD) Top(width int, f scene.Frame) string {
	left := h.base.Render(fmt.Sprintf("%.0f FPS", h.fps))
	mid := h.accent.Render(modeLabel(f))
	right := h.base.Render(progressBar(f.Progress, progressWidth))
	return spread(width, left, mid, right)
}

// Bottom returns the footer line: draw counts and key hints.
func (h *HUD) Bottom(width int, st render.Stats) string {
	left := h.dim.Render(fmt.Sprintf("%d nodes  %d culled  %d points", st.Nodes, st.Culled, st.Points))
	right := h.dim.Render("scroll  enter: dashboard  esc: landing  q: quit")
	return spread(width, left, "", right)
}

func modeLabel(f scene.Frame) string {
	if f.Loading {
		return "loading"
	}
	return f.Mode.String()
}

func progressBar(p float64, width int) string {
	filled := int(p*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %3.0f%%", p*100)
}

// spread lays out left, mid and right across width, dropping the middle
// when it does not fit.
func spread(width int, left, mid, right string) string {
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	if lw+mw+rw > width {
		mid, mw = "", 0
	}
	gap := max(width-lw-mw-rw, 0)
	return left + strings.Repeat(" ", gap/2) + mid + strings.Repeat(" ", gap-gap/2) + right
}

func hexColor(c render.Color) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
