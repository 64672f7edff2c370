package engine

import (
	"context"
	"image"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/kaleido/internal/scene"
)

func uniforms(t float32, w, h float32) scene.Uniforms {
	return scene.Uniforms{Time: t, Resolution: mgl32.Vec2{w, h}}
}

func assertFiniteOpaque(t *testing.T, c mgl32.Vec4) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.False(t, math32.IsNaN(c[i]), "channel %d is NaN", i)
		assert.False(t, math32.IsInf(c[i], 0), "channel %d is Inf", i)
	}
	assert.Equal(t, float32(1), c[3])
}

func TestShadeFiniteAndOpaque(t *testing.T) {
	for _, res := range [][2]float32{{1, 1}, {16, 9}} {
		for _, tm := range []float32{0, 1.5, 60, 3600} {
			u := uniforms(tm, res[0], res[1])
			for y := float32(0); y < res[1]; y++ {
				for x := float32(0); x < res[0]; x++ {
					assertFiniteOpaque(t, Shade(u, x+.5, y+.5))
				}
			}
		}
	}
}

func TestShadeFiniteFullHDSample(t *testing.T) {
	u := uniforms(12.25, 1920, 1080)
	for y := float32(0); y < 1080; y += 135 {
		for x := float32(0); x < 1920; x += 240 {
			assertFiniteOpaque(t, Shade(u, x+.5, y+.5))
		}
	}
	assertFiniteOpaque(t, Shade(u, .5, .5))
	assertFiniteOpaque(t, Shade(u, 1919.5, 1079.5))
}

func TestShadeDeterministic(t *testing.T) {
	u := scene.Uniforms{
		Time:         3.7,
		Resolution:   mgl32.Vec2{800, 600},
		Touch:        mgl32.Vec2{120, 450},
		PointerCount: 1,
	}
	first := Shade(u, 400.5, 300.5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Shade(u, 400.5, 300.5))
	}
}

func TestCentreReferencePixelStable(t *testing.T) {
	u := uniforms(0, 800, 600)
	ref := Shade(u, 400.5, 300.5)
	assertFiniteOpaque(t, ref)
	for i := 0; i < 3; i++ {
		assert.GreaterOrEqual(t, ref[i], float32(0))
		assert.LessOrEqual(t, ref[i], float32(1))
	}

	img, err := RenderFrame(context.Background(), u)
	require.NoError(t, err)
	// pixel (400,300) from the bottom is row 600-1-300 from the top
	got := img.RGBAAt(400, 299)
	assert.Equal(t, toByte(ref[0]), got.R)
	assert.Equal(t, toByte(ref[1]), got.G)
	assert.Equal(t, toByte(ref[2]), got.B)
	assert.Equal(t, uint8(255), got.A)
}

// Reference colours from an independent float64 evaluation of the same
// formula. Pixels were chosen where the fractal is locally smooth.
func TestShadeReferenceColours(t *testing.T) {
	pointer := func(u scene.Uniforms) scene.Uniforms {
		u.Touch = mgl32.Vec2{200, 450}
		u.PointerCount = 1
		return u
	}
	tests := []struct {
		name string
		u    scene.Uniforms
		x, y float32
		want [3]float32
	}{
		{"idle centre", uniforms(0, 800, 600), 400.5, 300.5, [3]float32{0.0095387, 0.0133774, 0.0113882}},
		{"idle lower left", uniforms(0, 800, 600), 200.5, 150.5, [3]float32{0.0057310, 0.0155545, 0.0325015}},
		{"pointer right edge", pointer(uniforms(0, 800, 600)), 775.5, 400.5, [3]float32{0.1655584, 0.1093739, 0.0530816}},
		{"pointer left edge", pointer(uniforms(0, 800, 600)), 25.5, 175.5, [3]float32{0.3140677, 0.1099521, 0.0770014}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shade(tt.u, tt.x, tt.y)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, tt.want[i], got[i], 1e-4, "channel %d", i)
			}
			assert.Equal(t, float32(1), got[3])
		})
	}
}

func TestFoldAxisIdleAnimatesWithTime(t *testing.T) {
	ax0, angle0 := FoldAxis(uniforms(0, 800, 600))
	ax1, angle1 := FoldAxis(uniforms(10, 800, 600))

	assert.InDelta(t, 1, ax0.Len(), 1e-5)
	assert.NotEqual(t, ax0, ax1)
	assert.NotEqual(t, angle0, angle1)
	assert.InDelta(t, math32.Sin(1.7)*pi, angle0, 1e-6)
	// rotation is in the XZ plane only
	assert.InDelta(t, idleAxis[1], ax0[1], 1e-6)
}

func TestFoldAxisPointerBranch(t *testing.T) {
	u := uniforms(5, 800, 600)
	u.Touch = mgl32.Vec2{200, 150}

	idleAx, idleAngle := FoldAxis(u)

	u.PointerCount = 1
	ax, angle := FoldAxis(u)

	assert.NotEqual(t, idleAx, ax)
	assert.NotEqual(t, idleAngle, angle)
	assert.InDelta(t, pi*150/600, angle, 1e-6)
	assert.InDelta(t, pointerAxis[1], ax[1], 1e-6)
	assert.InDelta(t, 1, ax.Len(), 1e-5)

	// pointer-driven axis ignores the clock
	u.Time = 99
	ax2, angle2 := FoldAxis(u)
	assert.Equal(t, ax, ax2)
	assert.Equal(t, angle, angle2)

	// count is a boolean switch
	u.PointerCount = 4
	ax4, angle4 := FoldAxis(u)
	assert.Equal(t, ax, ax4)
	assert.Equal(t, angle, angle4)
}

func TestRotateXZ(t *testing.T) {
	r := rotateXZ(v3(1, 2, 0), math32.Pi/2)
	assert.InDelta(t, 0, r[0], 1e-6)
	assert.Equal(t, float32(2), r[1])
	assert.InDelta(t, 1, r[2], 1e-6)
}

func TestVignette(t *testing.T) {
	assert.Equal(t, float32(1), Vignette(mgl32.Vec2{0, 0}))

	cam := newCamera(mgl32.Vec2{1600, 900})
	centre := Vignette(cam.screen(800, 450))
	assert.Equal(t, float32(1), centre)

	corners := []mgl32.Vec2{
		cam.screen(0, 0), cam.screen(1600, 0), cam.screen(0, 900), cam.screen(1600, 900),
	}
	for _, c := range corners {
		corner := Vignette(c)
		assert.Less(t, corner, centre)
		for _, z := range []mgl32.Vec2{cam.screen(800, 0), cam.screen(0, 450), cam.screen(400, 700)} {
			assert.LessOrEqual(t, corner, Vignette(z))
		}
	}
}

func TestHuePalette(t *testing.T) {
	h := hue(0)
	assert.InDelta(t, .65, h[0], 1e-6)
	for a := float32(-5); a < 5; a += .37 {
		c := hue(a)
		for i := 0; i < 3; i++ {
			assert.GreaterOrEqual(t, c[i], float32(-.15)-1e-6)
			assert.LessOrEqual(t, c[i], float32(.65)+1e-6)
		}
	}
}

func TestRenderIntoSizeMismatch(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	err := RenderInto(context.Background(), uniforms(0, 8, 8), img, nil)
	assert.Error(t, err)
}

func TestRenderIntoCoversEveryPixel(t *testing.T) {
	t.Setenv("KALEIDO_WORKERS", "3")
	u := uniforms(2, 70, 40)
	img := image.NewRGBA(image.Rect(0, 0, 70, 40))

	tiles := 0
	require.NoError(t, RenderInto(context.Background(), u, img, func() { tiles++ }))
	assert.Equal(t, 3*2, tiles)

	for y := 0; y < 40; y++ {
		for x := 0; x < 70; x++ {
			assert.Equal(t, uint8(255), img.RGBAAt(x, y).A)
		}
	}
	c := Shade(u, 10.5, float32(40-1-5)+.5)
	assert.Equal(t, toByte(c[1]), img.RGBAAt(10, 5).G)
}

func TestRenderIntoCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	err := RenderInto(ctx, uniforms(0, 64, 64), img, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToByte(t *testing.T) {
	assert.Equal(t, uint8(0), toByte(-.3))
	assert.Equal(t, uint8(255), toByte(1.7))
	assert.Equal(t, uint8(128), toByte(.5))
	assert.Equal(t, uint8(0), toByte(math32.NaN()))
	assert.Equal(t, uint8(0), toByte(math32.Inf(1)))
}

func TestUpscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	dst := Upscale(src, 8, 6)
	assert.Equal(t, image.Rect(0, 0, 8, 6), dst.Bounds())
}

func TestWorkerCountEnv(t *testing.T) {
	t.Setenv("KALEIDO_WORKERS", "5")
	assert.Equal(t, 5, workerCount())
	t.Setenv("KALEIDO_WORKERS", "bogus")
	assert.GreaterOrEqual(t, workerCount(), 1)
	t.Setenv("KALEIDO_WORKERS", "1000")
	assert.NotEqual(t, 1000, workerCount())
}

func TestRenderFrameEmptySurface(t *testing.T) {
	for _, res := range [][2]float32{{0, 0}, {0, 9}, {16, 0}} {
		img, err := RenderFrame(context.Background(), uniforms(1, res[0], res[1]))
		require.NoError(t, err)
		assert.True(t, img.Bounds().Empty())
	}
}
