package ui

import (
	"bytes"
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/kaleido/internal/host"
)

func TestLogFilter(t *testing.T) {
	var buf bytes.Buffer
	f := &logFilter{original: &buf}

	n, err := f.Write([]byte("glfw: Invalid scancode -1\n"))
	require.NoError(t, err)
	assert.Equal(t, 26, n)
	assert.Empty(t, buf.String())

	_, err = f.Write([]byte("ui: frame\n"))
	require.NoError(t, err)
	assert.Equal(t, "ui: frame\n", buf.String())
}

func TestRenderLoopShowsFramesUntilCancelled(t *testing.T) {
	driver := host.NewDriver(8, 6, 4)
	ctx, cancel := context.WithCancel(context.Background())

	var frames []image.Image
	err := renderLoop(ctx, driver, func(img image.Image, _ time.Duration) {
		frames = append(frames, img)
		if len(frames) == 2 {
			cancel()
		}
	})

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, frames, 2)
	assert.Equal(t, image.Rect(0, 0, 8, 6), frames[0].Bounds())
}

func TestRenderLoopFollowsResize(t *testing.T) {
	driver := host.NewDriver(8, 6, 4)
	ctx, cancel := context.WithCancel(context.Background())

	var sizes []image.Rectangle
	err := renderLoop(ctx, driver, func(img image.Image, _ time.Duration) {
		sizes = append(sizes, img.Bounds())
		driver.Resize(20, 10, 2)
		if len(sizes) == 2 {
			cancel()
		}
	})

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, sizes, 2)
	assert.Equal(t, image.Rect(0, 0, 10, 5), sizes[1])
}

func TestRenderLoopWaitsOnEmptySurface(t *testing.T) {
	driver := host.NewDriver(0, 0, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 3*idleDelay)
	defer cancel()

	called := false
	err := renderLoop(ctx, driver, func(image.Image, time.Duration) { called = true })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)
}
