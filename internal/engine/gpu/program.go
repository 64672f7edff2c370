package gpu

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/user/kaleido/internal/scene"
)

// pipeline holds the GL objects needed to draw the fractal: the program,
// the full-screen quad and an offscreen colour target in device pixels.
// All methods must run on the thread that owns the GL context.
type pipeline struct {
	program uint32
	vao     uint32
	vbo     uint32

	fbo     uint32
	texture uint32
	width   int
	height  int

	locTime         int32
	locResolution   int32
	locTouch        int32
	locPointerCount int32
}

// newPipeline builds the program and the quad. Shader build failures are
// logged and the pipeline keeps whatever program resulted.
func newPipeline() *pipeline {
	p := &pipeline{program: buildProgram(vertexSource, fragmentSource)}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(QuadVertices)*4, gl.Ptr(QuadVertices), gl.STATIC_DRAW)

	position := gl.GetAttribLocation(p.program, gl.Str("position\x00"))
	if position >= 0 {
		gl.EnableVertexAttribArray(uint32(position))
		gl.VertexAttribPointer(uint32(position), 2, gl.FLOAT, false, 0, nil)
	}

	p.locTime = uniformLocation(p.program, scene.UniformTime)
	p.locResolution = uniformLocation(p.program, scene.UniformResolution)
	p.locTouch = uniformLocation(p.program, scene.UniformTouch)
	p.locPointerCount = uniformLocation(p.program, scene.UniformPointerCount)

	gl.GenFramebuffers(1, &p.fbo)
	gl.GenTextures(1, &p.texture)
	return p
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// resize reallocates the offscreen target when the viewport changes.
func (p *pipeline) resize(width, height int) error {
	if width == p.width && height == p.height {
		return nil
	}
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.BindFramebuffer(gl.FRAMEBUFFER, p.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, p.texture, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("offscreen target %dx%d incomplete: 0x%x", width, height, status)
	}

	p.width, p.height = width, height
	return nil
}

// renderFrame draws one frame of the fractal into the offscreen target.
// An empty target draws nothing.
func (p *pipeline) renderFrame(u scene.Uniforms) error {
	if u.Empty() {
		return nil
	}
	w, h := u.Size()
	if err := p.resize(w, h); err != nil {
		return err
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, p.fbo)
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(p.program)
	gl.BindVertexArray(p.vao)

	gl.Uniform1f(p.locTime, u.Time)
	gl.Uniform2f(p.locTouch, u.Touch.X(), u.Touch.Y())
	gl.Uniform1i(p.locPointerCount, u.PointerCount)
	gl.Uniform2f(p.locResolution, u.Resolution.X(), u.Resolution.Y())
	gl.DrawArrays(gl.TRIANGLES, 0, quadVertexCount)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// present stretches the offscreen target over the default framebuffer.
func (p *pipeline) present(fbWidth, fbHeight int) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BlitFramebuffer(
		0, 0, int32(p.width), int32(p.height),
		0, 0, int32(fbWidth), int32(fbHeight),
		gl.COLOR_BUFFER_BIT, gl.LINEAR,
	)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// readInto copies the offscreen target into img, flipping GL's bottom-up
// rows into image order.
func (p *pipeline) readInto(img *image.RGBA) error {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	if b.Dx() != p.width || b.Dy() != p.height {
		return fmt.Errorf("image %dx%d does not match target %dx%d", b.Dx(), b.Dy(), p.width, p.height)
	}

	tmp := make([]uint8, p.width*p.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(p.width), int32(p.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tmp))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	rowLen := p.width * 4
	for y := 0; y < p.height; y++ {
		src := tmp[(p.height-1-y)*rowLen : (p.height-y)*rowLen]
		copy(img.Pix[y*img.Stride:y*img.Stride+rowLen], src)
	}
	return nil
}

func (p *pipeline) delete() {
	gl.DeleteTextures(1, &p.texture)
	gl.DeleteFramebuffers(1, &p.fbo)
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.program)
}

// buildProgram compiles and links the shader pair. Failures are reported to
// the log and do not stop the caller.
func buildProgram(vertexSrc, fragmentSrc string) uint32 {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		log.Printf("gpu: vertex shader: %v", err)
	}
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		log.Printf("gpu: fragment shader: %v", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		info := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &info[0])
		log.Printf("gpu: link program: %s", strings.TrimRight(string(info), "\x00"))
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program
}

// compileShader returns the shader object even on failure so the program can
// still be linked; the error carries the info log.
func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		info := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &info[0])
		return shader, fmt.Errorf("shader compile: %s", strings.TrimRight(string(info), "\x00"))
	}
	return shader, nil
}
