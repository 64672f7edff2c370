package engine

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/user/kaleido/internal/scene"
)

// Tuned visual parameters. They must match the fragment program bit for bit.
const (
	pi    = 3.14159
	tau   = 6.28318
	theta = 1.57079

	// clock offset added to the uniform time
	timeOffset = 17

	marchSteps = 39
	foldSteps  = 16

	foldScale   = 9
	foldClamp   = 16
	scaleGrowth = 1.01
	surfaceEps  = 3e-4
	stepFactor  = .5
	glowGain    = 5e-5
	paletteMix  = .75
)

var (
	foldLeft  = v3(9, 5, 2)
	foldRight = v3(9, 6, 7)

	idleAxis    = v3(8, -3, -5).Normalize()
	pointerAxis = v3(1, -5, 5).Normalize()
)

// FoldAxis returns the axis and angle the ray is folded around before the
// KIFS iterations. With no pointer down it animates with time; with a
// pointer down the pointer position drives it.
func FoldAxis(u scene.Uniforms) (mgl32.Vec3, float32) {
	if u.PointerActive() {
		mx := u.Touch.X() / u.Resolution.X()
		my := u.Touch.Y() / u.Resolution.Y()
		return rotateXZ(pointerAxis, mx*tau), my * pi
	}
	t := timeOffset + u.Time
	return rotateXZ(idleAxis, t*.05), math32.Sin(t*.1) * pi
}

// Shade computes the colour of the fragment at (fragX, fragY), measured in
// device pixels from the bottom-left corner. Pixel centres sit at +0.5.
func Shade(u scene.Uniforms, fragX, fragY float32) mgl32.Vec4 {
	cam := newCamera(u.Resolution)
	return shade(cam, u, fragX, fragY)
}

func shade(cam camera, u scene.Uniforms, fragX, fragY float32) mgl32.Vec4 {
	uv := cam.screen(fragX, fragY)
	rd := cam.getRay(uv)
	ax, angle := FoldAxis(u)
	cosAngle := math32.Cos(angle)

	var col mgl32.Vec3
	var g float32
	for i := 1; i <= marchSteps; i++ {
		p := rd.Mul(g).Sub(cam.origin)
		p = mix(ax.Mul(p.Dot(ax)), p, cosAngle).Mul(theta).Sub(p.Cross(ax))

		d, e := kifs(p)

		g += e * stepFactor
		glow := mix(splat(1), hue(-math32.Log(d)*.25), paletteMix)
		col = col.Add(mgl32.Vec3{
			glow[0] / e * glowGain,
			glow[1] / e * glowGain,
			glow[2] / e * glowGain,
		})
	}

	col = postProcess(col, uv)
	return mgl32.Vec4{col[0], col[1], col[2], 1}
}

// kifs folds p through the kaleidoscopic IFS and returns the accumulated
// scale d and the local surface estimate e.
func kifs(p mgl32.Vec3) (d, e float32) {
	d = 1
	for j := 0; j < foldSteps; j++ {
		p = foldLeft.Sub(absVec(p.Sub(foldRight)))
		e = foldScale / clamp(p.Dot(p), 0, foldClamp)
		d *= e * scaleGrowth
		p = absVec(p).Mul(e)
	}
	e = p[1]/d + surfaceEps
	return d, e
}
