package render

import (
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/lucasb-eyer/go-colorful"
)

// Draw converts the internal framebuffer to terminal cells and draws them on
// the screen.
// The framebuffer height should be 2x the terminal height.
func (r *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < r.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(r.GetPixel(x, topY)),
					Bg: rgbaToColor(r.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// ParseHex parses a "#rrggbb" color.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// Palette is the set of colors a SceneRenderer draws with.
type Palette struct {
	Background color.RGBA
	Accent     color.RGBA
	Glow       color.RGBA
	Shadow     color.RGBA
}

// DefaultPalette is warm gold on near black.
var DefaultPalette = Palette{
	Background: RGB(10, 10, 12),
	Accent:     RGB(212, 165, 116),
	Glow:       RGB(255, 214, 160),
	Shadow:     RGB(139, 69, 19),
}

// ParsePalette builds a palette from hex strings. Empty strings keep the
// default.
func ParsePalette(background, accent, glow, shadow string) (Palette, error) {
	p := DefaultPalette
	for _, f := range []struct {
		hex string
		dst *color.RGBA
	}{
		{background, &p.Background},
		{accent, &p.Accent},
		{glow, &p.Glow},
		{shadow, &p.Shadow},
	} {
		if f.hex == "" {
			continue
		}
		c, err := ParseHex(f.hex)
		if err != nil {
			return DefaultPalette, err
		}
		*f.dst = c
	}
	return p, nil
}
