package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/kaleido/internal/scene"
)

func TestFramePath(t *testing.T) {
	assert.Equal(t, "out.png", framePath("out.png", 0, 1))
	assert.Equal(t, "out_0003.png", framePath("out.png", 3, 10))
	assert.Equal(t, "f-7.png", framePath("f-%d.png", 7, 10))
	assert.Equal(t, "frames_0002", framePath("frames", 2, 5))
}

func TestParsePointer(t *testing.T) {
	p, err := parsePointer("12.5, 40")
	require.NoError(t, err)
	assert.Equal(t, scene.Pointer{X: 12.5, Y: 40}, p)

	_, err = parsePointer("12")
	assert.Error(t, err)
	_, err = parsePointer("a,1")
	assert.Error(t, err)
}

func TestRenderHeadlessWritesFrames(t *testing.T) {
	dir := t.TempDir()
	settings := scene.Settings{
		Width:      12,
		Height:     8,
		PixelRatio: 2,
		Frames:     3,
		FPS:        30,
		Pointer:    &scene.Pointer{X: 3, Y: 2},
		Upscale:    true,
	}.Normalize()

	require.NoError(t, renderHeadless(context.Background(), settings, filepath.Join(dir, "f.png")))

	for _, name := range []string{"f_0000.png", "f_0001.png", "f_0002.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
