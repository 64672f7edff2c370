package gpu

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/user/kaleido/internal/host"
)

// WindowConfig describes the interactive window.
type WindowConfig struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// emptyWait is how long the loop blocks for events, in seconds, while the
// surface has no pixels.
const emptyWait = 0.1

// Run opens a window and draws the fractal once per display refresh until
// the window is closed or ctx is cancelled. It must be called from the main
// goroutine.
func Run(ctx context.Context, cfg WindowConfig) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	setContextHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	window, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		return fmt.Errorf("glfw create window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Printf("gpu: OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	driver := host.NewDriver(logicalSize(window))
	logViewport(driver)
	bindInput(window, driver)

	pipe := newPipeline()
	defer pipe.delete()

	start := time.Now()
	for !window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		u := driver.Uniforms(time.Since(start))
		if u.Empty() {
			glfw.WaitEventsTimeout(emptyWait)
			continue
		}
		if err := pipe.renderFrame(u); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		pipe.present(window.GetFramebufferSize())

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// logicalSize returns the window size in screen coordinates and the
// platform pixel ratio.
func logicalSize(w *glfw.Window) (int, int, float64) {
	width, height := w.GetSize()
	sx, _ := w.GetContentScale()
	return width, height, float64(sx)
}

func logViewport(driver *host.Driver) {
	w, h := driver.Viewport()
	log.Printf("gpu: viewport %dx%d (pixel ratio %.2f)", w, h, driver.DevicePixelRatio())
}

// bindInput forwards GLFW window events to the driver. The mouse is
// pointer 0.
func bindInput(window *glfw.Window, driver *host.Driver) {
	const mousePointer = 0

	resize := func(w *glfw.Window) {
		driver.Resize(logicalSize(w))
		logViewport(driver)
	}
	window.SetSizeCallback(func(w *glfw.Window, _, _ int) { resize(w) })
	window.SetContentScaleCallback(func(w *glfw.Window, _, _ float32) { resize(w) })

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			x, y := w.GetCursorPos()
			driver.PointerDown(mousePointer, x, y)
		case glfw.Release:
			driver.PointerUp(mousePointer)
		}
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		driver.PointerMove(mousePointer, x, y)
	})
	window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			driver.PointerLeave()
		}
	})
}
