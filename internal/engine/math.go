package engine

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// GLSL-style helpers over mgl32 vectors. All arithmetic is float32 so the
// CPU renderer follows the precision of the fragment program.

func v3(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }

func splat(s float32) mgl32.Vec3 { return mgl32.Vec3{s, s, s} }

func absVec(a mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Abs(a[0]), math32.Abs(a[1]), math32.Abs(a[2])}
}

func cosVec(a mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Cos(a[0]), math32.Cos(a[1]), math32.Cos(a[2])}
}

func expVec(a mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Exp(a[0]), math32.Exp(a[1]), math32.Exp(a[2])}
}

func powVec(a mgl32.Vec3, e float32) mgl32.Vec3 {
	return mgl32.Vec3{math32.Pow(a[0], e), math32.Pow(a[1], e), math32.Pow(a[2], e)}
}

// mix is GLSL mix(a, b, t) = a*(1-t) + b*t.
func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// rotateXZ applies GLSL `v.xz *= mat2(cos(a),-sin(a),sin(a),cos(a))`.
func rotateXZ(v mgl32.Vec3, a float32) mgl32.Vec3 {
	c, s := math32.Cos(a), math32.Sin(a)
	x, z := v[0], v[2]
	return mgl32.Vec3{x*c - z*s, v[1], x*s + z*c}
}
