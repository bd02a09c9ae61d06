package scene

import (
	"math"
	"sync"

	"github.com/charmbracelet/harmonica"
)

// VirtualPage is a ScrollSurface for hosts without a real document. Input
// moves a scroll target and a critically damped spring carries the offset
// toward it.
type VirtualPage struct {
	mu       sync.Mutex
	y        float64
	vel      float64
	target   float64
	height   float64
	viewport float64
	locked   bool
	spring   harmonica.Spring

	subs   map[int]func()
	nextID int
}

// NewVirtualPage creates a page of the given content height shown through
// a viewport, stepped fps times per second.
func NewVirtualPage(height, viewport float64, fps int) *VirtualPage {
	return &VirtualPage{
		height:   height,
		viewport: viewport,
		spring:   harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 1.0),
		subs:     make(map[int]func()),
	}
}

func (p *VirtualPage) ScrollY() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.y
}

func (p *VirtualPage) ScrollHeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.height
}

func (p *VirtualPage) ViewportHeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewport
}

func (p *VirtualPage) maxY() float64 {
	return max(0, p.height-p.viewport)
}

// ScrollTo jumps to y without momentum.
func (p *VirtualPage) ScrollTo(y float64) {
	p.mu.Lock()
	y = min(max(y, 0), p.maxY())
	p.y, p.target, p.vel = y, y, 0
	p.mu.Unlock()
	p.notify()
}

// ScrollBy moves the scroll target by dy. It is ignored while locked.
func (p *VirtualPage) ScrollBy(dy float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.locked {
		return
	}
	p.target = min(max(p.target+dy, 0), p.maxY())
}

// SetLocked suppresses or restores scroll input.
func (p *VirtualPage) SetLocked(locked bool) {
	p.mu.Lock()
	p.locked = locked
	if locked {
		p.target = p.y
	}
	p.mu.Unlock()
}

// isLocked reports whether scroll input is suppressed.
func (p *VirtualPage) isLocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locked
}

// Resize changes the viewport height, keeping the offset in range.
func (p *VirtualPage) Resize(viewport float64) {
	p.mu.Lock()
	p.viewport = viewport
	p.target = min(p.target, p.maxY())
	p.y = min(p.y, p.maxY())
	p.mu.Unlock()
	p.notify()
}

// Update steps the spring one frame and notifies subscribers when the
// offset moved.
func (p *VirtualPage) Update() {
	p.mu.Lock()
	before := p.y
	p.y, p.vel = p.spring.Update(p.y, p.vel, p.target)
	if math.Abs(p.target-p.y) < 0.01 && math.Abs(p.vel) < 0.01 {
		p.y, p.vel = p.target, 0
	}
	moved := p.y != before
	p.mu.Unlock()
	if moved {
		p.notify()
	}
}

// Subscribe registers fn to run after every offset change.
func (p *VirtualPage) Subscribe(fn func()) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// subscribers returns the number of registered callbacks.
func (p *VirtualPage) subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

func (p *VirtualPage) notify() {
	p.mu.Lock()
	fns := make([]func(), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
