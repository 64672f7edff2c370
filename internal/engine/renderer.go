package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"

	"github.com/user/kaleido/internal/scene"
)

const tileSize = 32

type tile struct {
	x0, y0, x1, y1 int
}

// workerCount defaults to one worker per CPU and can be overridden with
// KALEIDO_WORKERS.
func workerCount() int {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	if env := os.Getenv("KALEIDO_WORKERS"); env != "" {
		if custom, err := strconv.Atoi(env); err == nil && custom > 0 && custom <= 128 {
			n = custom
		}
	}
	return n
}

// renderCPU shades every pixel of img on the CPU. Image row 0 is the top of
// the frame, so it maps to fragment y = height-1+0.5.
// If progress is not nil it is called after each finished tile.
func renderCPU(ctx context.Context, u scene.Uniforms, img *image.RGBA, progress func()) error {
	b := img.Bounds()
	width, height := u.Size()
	if b.Dx() != width || b.Dy() != height {
		return fmt.Errorf("image %dx%d does not match resolution %dx%d", b.Dx(), b.Dy(), width, height)
	}
	if u.Empty() {
		return nil
	}

	cam := newCamera(u.Resolution)
	pix := img.Pix
	stride := img.Stride

	tiles := make(chan tile, ((width+tileSize-1)/tileSize)*((height+tileSize-1)/tileSize))
	for ty := 0; ty < height; ty += tileSize {
		for tx := 0; tx < width; tx += tileSize {
			tiles <- tile{
				x0: tx,
				y0: ty,
				x1: min(tx+tileSize, width),
				y1: min(ty+tileSize, height),
			}
		}
	}
	close(tiles)

	var progressMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	workers := workerCount()
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for t := range tiles {
				if err := ctx.Err(); err != nil {
					return err
				}
				for y := t.y0; y < t.y1; y++ {
					row := y * stride
					fragY := float32(height-1-y) + .5
					for x := t.x0; x < t.x1; x++ {
						c := shade(cam, u, float32(x)+.5, fragY)
						idx := row + x*4
						pix[idx] = toByte(c[0])
						pix[idx+1] = toByte(c[1])
						pix[idx+2] = toByte(c[2])
						pix[idx+3] = 255
					}
				}
				if progress != nil {
					progressMu.Lock()
					progress()
					progressMu.Unlock()
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// toByte quantizes a colour channel the way a UNORM8 framebuffer does.
// Non-finite channels are written as black.
func toByte(c float32) uint8 {
	if math32.IsNaN(c) || math32.IsInf(c, 0) {
		return 0
	}
	return uint8(clamp(c, 0, 1)*255 + .5)
}
