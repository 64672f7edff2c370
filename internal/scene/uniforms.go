package scene

import "github.com/go-gl/mathgl/mgl32"

// Uniform names shared by the GLSL program and the host upload.
const (
	UniformTime         = "time"
	UniformResolution   = "resolution"
	UniformTouch        = "touch"
	UniformPointerCount = "pointerCount"
)

// Uniforms is the per-frame input of the fractal renderer.
// Both the CPU and the GPU backends consume exactly these four values.
type Uniforms struct {
	// Time is seconds elapsed since the loop started.
	Time float32
	// Resolution is the render target size in device pixels.
	Resolution mgl32.Vec2
	// Touch is the active pointer in device pixels, Y measured from the bottom.
	Touch mgl32.Vec2
	// PointerCount is the number of active pointers. Renderers only test it for > 0.
	PointerCount int32
}

// PointerActive reports whether at least one pointer is down.
func (u Uniforms) PointerActive() bool {
	return u.PointerCount > 0
}

// Empty reports whether the render target has no pixels, as happens while
// a window is minimized.
func (u Uniforms) Empty() bool {
	w, h := u.Size()
	return w <= 0 || h <= 0
}

// Size returns the resolution as integer pixel dimensions.
func (u Uniforms) Size() (int, int) {
	return int(u.Resolution.X()), int(u.Resolution.Y())
}
