package engine

import "github.com/go-gl/mathgl/mgl32"

var huePhase = v3(0, 83, 21)

// hue is a cyclic palette: .25 + .4*cos(a*11.3 + (0,83,21)).
func hue(a float32) mgl32.Vec3 {
	return splat(.25).Add(cosVec(splat(a * 11.3).Add(huePhase)).Mul(.4))
}

const (
	exposure = 1.8
	gamma    = 1.45
)

// postProcess tone maps, gamma adjusts and vignettes the accumulated glow.
func postProcess(col mgl32.Vec3, z mgl32.Vec2) mgl32.Vec3 {
	col = splat(1).Sub(expVec(col.Mul(-exposure)))
	col = powVec(col, gamma)
	return col.Mul(Vignette(z))
}

// Vignette is the radial attenuation at a centred screen point:
// 1 at the centre, falling with the squared distance.
func Vignette(z mgl32.Vec2) float32 {
	return 1 - z.Dot(z)
}
