// Package gpu draws the fractal with OpenGL: an interactive GLFW window and
// a hidden-context worker for offline frames.
package gpu

import (
	"fmt"
	"image"
	"log"
	"runtime"
	"sync"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/user/kaleido/internal/scene"
)

// offscreen owns a hidden GLFW window whose context renders offline frames.
type offscreen struct {
	initOnce sync.Once
	initErr  error
	window   *glfw.Window
	pipe     *pipeline
}

// renderRequest is sent from callers to the dedicated GL worker goroutine.
type renderRequest struct {
	u    scene.Uniforms
	img  *image.RGBA
	done chan error
}

var (
	worker     offscreen
	renderCh   chan renderRequest
	workerOnce sync.Once
)

// ensureWorker starts the dedicated GL worker goroutine exactly once.
func ensureWorker() {
	workerOnce.Do(func() {
		renderCh = make(chan renderRequest)
		go renderWorker()
	})
}

// renderWorker owns the GL context and processes all offline render requests.
// It always runs on a single locked OS thread, which is required by OpenGL.
func renderWorker() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := worker.initGL(); err != nil {
		log.Printf("gpu: initialization failed: %v", err)
		for req := range renderCh {
			req.done <- err
		}
		return
	}
	log.Println("gpu: offscreen renderer initialized")

	for req := range renderCh {
		err := worker.pipe.renderFrame(req.u)
		if err == nil {
			err = worker.pipe.readInto(req.img)
		}
		if err != nil {
			log.Printf("gpu: render error: %v", err)
		}
		req.done <- err
	}
}

// initGL must be called from the GL worker goroutine (locked OS thread).
func (o *offscreen) initGL() error {
	o.initOnce.Do(func() {
		if err := glfw.Init(); err != nil {
			o.initErr = fmt.Errorf("glfw init: %w", err)
			return
		}

		glfw.WindowHint(glfw.Visible, glfw.False)
		setContextHints()

		w, err := glfw.CreateWindow(1, 1, "kaleido-offscreen", nil, nil)
		if err != nil {
			o.initErr = fmt.Errorf("glfw create window: %w", err)
			return
		}
		o.window = w
		w.MakeContextCurrent()

		if err := gl.Init(); err != nil {
			o.initErr = fmt.Errorf("gl init: %w", err)
			return
		}
		o.pipe = newPipeline()
	})
	return o.initErr
}

func setContextHints() {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
}

// Render draws one frame for u into img on the GPU and waits for completion.
// img must have the size given by u.Resolution.
func Render(u scene.Uniforms, img *image.RGBA) error {
	ensureWorker()
	done := make(chan error, 1)
	renderCh <- renderRequest{u: u, img: img, done: done}
	return <-done
}
