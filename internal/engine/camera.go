package engine

import "github.com/go-gl/mathgl/mgl32"

// camera is the fixed pinhole the fractal is viewed through.
type camera struct {
	origin mgl32.Vec3
	width  float32
	height float32
	// shorter screen side
	min float32
}

func newCamera(resolution mgl32.Vec2) camera {
	w, h := resolution.X(), resolution.Y()
	mn := w
	if h < mn {
		mn = h
	}
	return camera{
		origin: v3(.7, .9, 3),
		width:  w,
		height: h,
		min:    mn,
	}
}

// screen maps a fragment coordinate to the centred, aspect-preserving plane
// where the shorter side spans [-0.5, 0.5].
func (c camera) screen(fragX, fragY float32) mgl32.Vec2 {
	return mgl32.Vec2{
		(fragX - .5*c.width) / c.min,
		(fragY - .5*c.height) / c.min,
	}
}

// getRay returns the view direction through a screen point.
func (c camera) getRay(uv mgl32.Vec2) mgl32.Vec3 {
	return v3(uv[0], uv[1], 1).Normalize()
}
