package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/user/kaleido/internal/engine"
	"github.com/user/kaleido/internal/engine/gpu"
	"github.com/user/kaleido/internal/host"
	"github.com/user/kaleido/internal/scene"
	"github.com/user/kaleido/internal/ui"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	log.Println("kaleido: starting main()")

	settingsPath := flag.String("settings", "", "optional JSON settings file")
	savePath := flag.String("save-settings", "", "write the effective settings to a JSON file and exit")
	mode := flag.String("mode", "preview", "settings preset: preview or final")
	useGPU := flag.Bool("gpu", false, "render on the GPU (OpenGL window, or hidden context when headless)")
	headless := flag.Bool("headless", false, "render without a window and save PNG frames")
	fullscreen := flag.Bool("fullscreen", false, "open the GPU window fullscreen")
	output := flag.String("out", "frame.png", "output PNG file; use a %d verb for multiple frames")
	frames := flag.Int("frames", 0, "number of frames to export in headless mode (0 = settings)")
	startTime := flag.Float64("time", -1, "clock value of the first frame in seconds (-1 = settings)")
	touch := flag.String("touch", "", "hold a pointer down at logical x,y")

	flag.Parse()
	log.Printf("flags: settings=%q mode=%s gpu=%v headless=%v out=%s\n", *settingsPath, *mode, *useGPU, *headless, *output)

	settings := scene.SettingsForMode(*mode)
	if *settingsPath != "" {
		var err error
		if settings, err = scene.Load(*settingsPath, settings); err != nil {
			log.Println("settings error:", err)
			os.Exit(1)
		}
	}
	if *frames > 0 {
		settings.Frames = *frames
	}
	if *startTime >= 0 {
		settings.Time = *startTime
	}
	if *touch != "" {
		p, err := parsePointer(*touch)
		if err != nil {
			log.Println("touch flag:", err)
			os.Exit(2)
		}
		settings.Pointer = &p
	}
	settings = settings.Normalize()

	if *savePath != "" {
		if err := scene.Save(*savePath, settings); err != nil {
			log.Println("settings error:", err)
			os.Exit(1)
		}
		log.Printf("kaleido: wrote settings to %s\n", *savePath)
		return
	}

	if *useGPU {
		engine.SetBackend(engine.BackendGPU)
	} else {
		engine.SetBackend(engine.BackendCPU)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case *headless:
		err = renderHeadless(ctx, settings, *output)
	case *useGPU:
		err = gpu.Run(ctx, gpu.WindowConfig{
			Title:      "kaleido",
			Width:      settings.Width,
			Height:     settings.Height,
			Fullscreen: *fullscreen,
		})
	default:
		err = ui.Run(ctx, ui.Config{Title: "kaleido", Width: settings.Width, Height: settings.Height})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Println("kaleido error:", err)
		os.Exit(1)
	}
}

// renderHeadless exports settings.Frames frames. CPU frames render
// concurrently; the GPU worker serializes them itself.
func renderHeadless(ctx context.Context, settings scene.Settings, outPattern string) error {
	driver := host.NewDriver(settings.Width, settings.Height, settings.PixelRatio)
	if settings.Pointer != nil {
		driver.PointerDown(0, settings.Pointer.X, settings.Pointer.Y)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(2)
	for i := 0; i < settings.Frames; i++ {
		u := driver.Uniforms(settings.FrameTime(i))
		path := framePath(outPattern, i, settings.Frames)
		g.Go(func() error {
			img, err := engine.RenderFrame(ctx, u)
			if err != nil {
				return fmt.Errorf("render frame %d: %w", i, err)
			}
			var out image.Image = img
			if settings.Upscale {
				out = engine.Upscale(img, settings.Width, settings.Height)
			}
			if err := engine.SavePNG(path, out); err != nil {
				return fmt.Errorf("save frame %d: %w", i, err)
			}
			log.Printf("kaleido: wrote %s (t=%.3fs)\n", path, u.Time)
			return nil
		})
	}
	return g.Wait()
}

// framePath expands a %d verb in pattern. Without one, multi-frame exports
// get the index inserted before the extension.
func framePath(pattern string, i, total int) string {
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, i)
	}
	if total == 1 {
		return pattern
	}
	dot := strings.LastIndex(pattern, ".")
	if dot < 0 {
		return fmt.Sprintf("%s_%04d", pattern, i)
	}
	return fmt.Sprintf("%s_%04d%s", pattern[:dot], i, pattern[dot:])
}

func parsePointer(s string) (scene.Pointer, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return scene.Pointer{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return scene.Pointer{}, fmt.Errorf("parse x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return scene.Pointer{}, fmt.Errorf("parse y: %w", err)
	}
	return scene.Pointer{X: x, Y: y}, nil
}
