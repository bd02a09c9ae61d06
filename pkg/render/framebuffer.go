// Package render draws scene graphs as glowing wireframes into a pixel
// buffer that can be shown in a terminal or saved as an image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Framebuffer is a 2D array of pixels that can be rendered to the terminal.
// We use double vertical resolution by using half-block characters (▀▄).
type Framebuffer struct {
	Width  int          // Width in "pixels" (same as terminal columns)
	Height int          // Height in "pixels" (2x terminal rows due to half-blocks)
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Height should be 2x the desired terminal rows for half-block rendering.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Blend mixes c over the pixel at (x, y) with the given opacity.
func (fb *Framebuffer) Blend(x, y int, c color.RGBA, alpha float64) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height || alpha <= 0 {
		return
	}
	alpha = min(alpha, 1)
	i := y*fb.Width + x
	dst := fb.Pixels[i]
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d) + (float64(s)-float64(d))*alpha))
	}
	fb.Pixels[i] = color.RGBA{mix(dst.R, c.R), mix(dst.G, c.G), mix(dst.B, c.B), max(dst.A, c.A)}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	line(x0, y0, x1, y1, func(x, y int) { fb.SetPixel(x, y, c) })
}

// BlendLine draws a line with the given opacity.
func (fb *Framebuffer) BlendLine(x0, y0, x1, y1 int, c color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	line(x0, y0, x1, y1, func(x, y int) { fb.Blend(x, y, c, alpha) })
}

func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillDisc blends a filled circle centred on (cx, cy). Opacity falls off
// toward the rim when soft is set.
func (fb *Framebuffer) FillDisc(cx, cy, r float64, c color.RGBA, alpha float64, soft bool) {
	if r <= 0 || alpha <= 0 {
		return
	}
	minX := max(int(math.Floor(cx-r)), 0)
	maxX := min(int(math.Ceil(cx+r)), fb.Width-1)
	minY := max(int(math.Floor(cy-r)), 0)
	maxY := min(int(math.Ceil(cy+r)), fb.Height-1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			d := math.Hypot(dx, dy)
			if d > r {
				continue
			}
			a := alpha
			if soft {
				a *= 1 - d/r
			}
			fb.Blend(x, y, c, a)
		}
	}
}

// Fade blends every pixel toward c.
func (fb *Framebuffer) Fade(c color.RGBA, alpha float64) {
	for y := range fb.Height {
		for x := range fb.Width {
			fb.Blend(x, y, c, alpha)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
