// Package renderer draws one static triangle over a cycling grey background.
package renderer

import (
	"errors"
	"fmt"

	"github.com/richinsley/gl2jni/gles"
	"github.com/richinsley/gl2jni/logging"
	"github.com/richinsley/gl2jni/shader"
)

var (
	// ErrNotReady is returned by frame operations before Setup has succeeded.
	ErrNotReady = errors.New("renderer is not set up")
	// ErrNoAttribute means the linked program has no position input.
	ErrNoAttribute = errors.New("attribute not found in program")
)

// triangleVertices holds three tightly packed (x, y) pairs in normalized
// device coordinates.
var triangleVertices = []float32{
	0.0, 0.5,
	-0.5, -0.5,
	0.5, -0.5,
}

const (
	coordsPerVertex     = 2
	triangleVertexCount = 3
)

// Vertices returns a copy of the triangle drawn every frame.
func Vertices() []float32 {
	return append([]float32(nil), triangleVertices...)
}

// Renderer draws the triangle. It must only be used from the thread that
// owns the GL context.
type Renderer struct {
	gl     gles.Functions
	pass   *RenderPass
	grey   Grey
	width  int
	height int
}

func New(f gles.Functions) *Renderer {
	return &Renderer{gl: f}
}

// Setup builds the program, resolves the position attribute and sets the
// viewport to the whole surface. Calling it again rebuilds everything and
// releases the previous program.
func (r *Renderer) Setup(width, height int) error {
	gles.LogString(r.gl, "Version", gles.VERSION)
	gles.LogString(r.gl, "Vendor", gles.VENDOR)
	gles.LogString(r.gl, "Renderer", gles.RENDERER)
	gles.LogString(r.gl, "Extensions", gles.EXTENSIONS)

	logging.Info("setupGraphics(%d, %d)", width, height)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	r.release()

	program, err := shader.NewBuilder(r.gl).BuildProgram(shader.VertexSource, shader.FragmentSource)
	if err != nil {
		logging.Error("Could not create program.")
		return fmt.Errorf("failed to create shader program: %w", err)
	}

	position := r.gl.GetAttribLocation(program, shader.PositionAttrib)
	gles.CheckError(r.gl, "glGetAttribLocation")
	logging.Info("glGetAttribLocation(%q) = %d", shader.PositionAttrib, position)
	if position < 0 {
		r.gl.DeleteProgram(program)
		return fmt.Errorf("%w: %s", ErrNoAttribute, shader.PositionAttrib)
	}

	r.pass = &RenderPass{Program: program, Position: position}
	r.setViewport(width, height)
	return nil
}

// Resize points the viewport at a new surface size without rebuilding the
// program.
func (r *Renderer) Resize(width, height int) error {
	if r.pass == nil {
		return ErrNotReady
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	r.setViewport(width, height)
	return nil
}

func (r *Renderer) setViewport(width, height int) {
	r.width, r.height = width, height
	r.gl.Viewport(0, 0, width, height)
	gles.CheckError(r.gl, "glViewport")
}

// RenderFrame advances the background, clears, and draws the triangle with
// a single draw call.
func (r *Renderer) RenderFrame() error {
	if r.pass == nil {
		return ErrNotReady
	}
	grey := r.grey.Advance()
	r.gl.ClearColor(grey, grey, grey, 1.0)
	gles.CheckError(r.gl, "glClearColor")
	r.gl.Clear(gles.DEPTH_BUFFER_BIT | gles.COLOR_BUFFER_BIT)
	gles.CheckError(r.gl, "glClear")

	r.gl.UseProgram(r.pass.Program)
	gles.CheckError(r.gl, "glUseProgram")

	r.gl.VertexAttribPointer(r.pass.Position, coordsPerVertex, gles.FLOAT, false, 0, triangleVertices)
	gles.CheckError(r.gl, "glVertexAttribPointer")
	r.gl.EnableVertexAttribArray(r.pass.Position)
	gles.CheckError(r.gl, "glEnableVertexAttribArray")
	r.gl.DrawArrays(gles.TRIANGLES, 0, triangleVertexCount)
	gles.CheckError(r.gl, "glDrawArrays")
	return nil
}

// ReadPixels returns the current viewport as bottom-up RGBA8 rows.
func (r *Renderer) ReadPixels() ([]byte, error) {
	if r.pass == nil {
		return nil, ErrNotReady
	}
	pixels := make([]byte, r.width*r.height*4)
	r.gl.ReadPixels(pixels, 0, 0, r.width, r.height, gles.RGBA, gles.UNSIGNED_BYTE)
	gles.CheckError(r.gl, "glReadPixels")
	return pixels, nil
}

// Ready reports whether Setup has succeeded.
func (r *Renderer) Ready() bool {
	return r.pass != nil
}

// Pass returns the program in use, or nil before Setup.
func (r *Renderer) Pass() *RenderPass {
	return r.pass
}

// Size is the viewport size set by the last Setup or Resize.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Grey is the luminance used for the most recent clear.
func (r *Renderer) Grey() float32 {
	return r.grey.Value()
}

// Shutdown deletes the program. The context must still be current.
func (r *Renderer) Shutdown() {
	r.release()
}

func (r *Renderer) release() {
	if r.pass == nil {
		return
	}
	r.gl.DeleteProgram(r.pass.Program)
	r.pass = nil
}
