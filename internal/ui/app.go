// Package ui is the CPU preview window: the fractal is shaded on the CPU
// frame after frame and shown in a fyne canvas.
package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/user/kaleido/internal/engine"
	"github.com/user/kaleido/internal/host"
)

// logFilter drops harmless GLFW noise from the log.
type logFilter struct {
	original io.Writer
}

func (f *logFilter) Write(p []byte) (n int, err error) {
	// Invalid scancode errors come from non-standard keys on Windows and are harmless.
	if strings.Contains(string(p), "Invalid scancode") {
		return len(p), nil
	}
	return f.original.Write(p)
}

// Config describes the preview window.
type Config struct {
	Title  string
	Width  int
	Height int
}

// Run opens the preview window and blocks until it is closed.
func Run(ctx context.Context, cfg Config) error {
	log.Printf("ui: starting %dx%d preview on %s backend\n", cfg.Width, cfg.Height, engine.GetBackend())

	originalLogWriter := log.Writer()
	log.SetOutput(&logFilter{original: originalLogWriter})
	defer log.SetOutput(originalLogWriter)

	a := app.New()
	w := a.NewWindow(cfg.Title)

	driver := host.NewDriver(cfg.Width, cfg.Height, 1)
	view := newSurface(driver, func() float32 { return w.Canvas().Scale() })
	fpsLabel := widget.NewLabel("FPS: -")

	w.SetContent(container.NewBorder(nil, fpsLabel, nil, nil, view))
	w.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.SetOnClosed(cancel)

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- renderLoop(ctx, driver, func(img image.Image, frame time.Duration) {
			view.image.Image = img
			view.image.Refresh()
			fpsLabel.SetText(fmt.Sprintf("FPS: %.2f", 1/frame.Seconds()))
		})
	}()
	go func() {
		<-ctx.Done()
		a.Quit()
	}()

	w.ShowAndRun()
	cancel()

	if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// idleDelay is how long the loop waits while the surface has no pixels.
const idleDelay = 16 * time.Millisecond

// renderLoop renders frames back to back until ctx is done. Each frame
// completes before the next one starts.
func renderLoop(ctx context.Context, driver *host.Driver, show func(image.Image, time.Duration)) error {
	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if w, h := driver.Viewport(); w == 0 || h == 0 {
			time.Sleep(idleDelay)
			continue
		}
		frameStart := time.Now()
		img, err := engine.RenderFrame(ctx, driver.Uniforms(frameStart.Sub(start)))
		if err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		show(img, time.Since(frameStart))
	}
}
