// Package host owns the render surface size, the animation clock input and
// pointer capture, and turns them into per-frame renderer uniforms.
package host

import (
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/user/kaleido/internal/scene"
)

// PixelRatio clamps the platform device pixel ratio to bound GPU cost on
// high-density displays.
func PixelRatio(platform float64) float64 {
	return math.Max(0.5, 0.25*platform)
}

// Driver is the host side of the renderer. Window backends report resize and
// pointer events to it and ask it for the uniforms of every frame.
// It is safe for concurrent use.
type Driver struct {
	mu sync.Mutex

	input *InputState

	logicalW, logicalH int
	dpr                float64
	width, height      int
}

// NewDriver creates a driver for a logical surface and sizes it immediately.
func NewDriver(logicalW, logicalH int, platformRatio float64) *Driver {
	d := &Driver{input: NewInputState()}
	d.Resize(logicalW, logicalH, platformRatio)
	return d
}

// Resize recomputes the device-pixel viewport as logical size × clamped ratio.
func (d *Driver) Resize(logicalW, logicalH int, platformRatio float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.logicalW, d.logicalH = logicalW, logicalH
	d.dpr = PixelRatio(platformRatio)
	d.width = int(float64(logicalW) * d.dpr)
	d.height = int(float64(logicalH) * d.dpr)
}

// Viewport returns the render target size in device pixels.
func (d *Driver) Viewport() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

// DevicePixelRatio returns the clamped ratio applied on the last resize.
func (d *Driver) DevicePixelRatio() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dpr
}

// PointerDown records pointer id at a logical position.
func (d *Driver) PointerDown(id int, x, y float64) {
	d.mu.Lock()
	d.input.Down(id, x, y)
	d.mu.Unlock()
}

// PointerMove records pointer id while a touch is in progress.
func (d *Driver) PointerMove(id int, x, y float64) {
	d.mu.Lock()
	d.input.Move(id, x, y)
	d.mu.Unlock()
}

// PointerUp ends the touch and clears every pointer.
func (d *Driver) PointerUp(id int) {
	d.mu.Lock()
	d.input.Up(id)
	d.mu.Unlock()
}

// PointerLeave ends the touch and clears every pointer.
func (d *Driver) PointerLeave() {
	d.mu.Lock()
	d.input.Leave()
	d.mu.Unlock()
}

// Uniforms builds the renderer input for a frame drawn elapsed after the
// loop started.
func (d *Driver) Uniforms(elapsed time.Duration) scene.Uniforms {
	d.mu.Lock()
	defer d.mu.Unlock()

	u := scene.Uniforms{
		Time:         float32(elapsed.Seconds()),
		Resolution:   mgl32.Vec2{float32(d.width), float32(d.height)},
		PointerCount: int32(d.input.Count()),
	}
	if p, ok := d.input.Active(); ok {
		u.Touch = mgl32.Vec2{
			float32(d.dpr * p.X),
			float32(d.dpr * (float64(d.logicalH) - p.Y)),
		}
	}
	return u
}
