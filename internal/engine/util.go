package engine

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/user/kaleido/internal/engine/gpu"
	"github.com/user/kaleido/internal/scene"
)

// RenderInto renders one frame into img on the active backend.
// img must have the size given by u.Resolution.
func RenderInto(ctx context.Context, u scene.Uniforms, img *image.RGBA, progress func()) error {
	if GetBackend() == BackendGPU {
		if err := gpu.Render(u, img); err != nil {
			return fmt.Errorf("gpu render: %w", err)
		}
		if progress != nil {
			progress()
		}
		return nil
	}
	return renderCPU(ctx, u, img, progress)
}

// RenderFrame allocates an image of the uniform resolution and renders into it.
func RenderFrame(ctx context.Context, u scene.Uniforms) (*image.RGBA, error) {
	w, h := u.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := RenderInto(ctx, u, img, nil); err != nil {
		return nil, err
	}
	return img, nil
}

// Upscale stretches a device-pixel frame to the logical surface size.
func Upscale(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SavePNG writes an image to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
