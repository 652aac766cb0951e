// Package native implements gles.Functions on the GLES 2 driver through
// go-gl. Importing it links against libGLESv2.
package native

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/richinsley/gl2jni/gles"
)

var glInitOnce sync.Once

// Native calls straight into the GLES 2 driver.
type Native struct{}

var _ gles.Functions = (*Native)(nil)

// New loads the GLES 2 entry points. A context must be current on the
// calling thread.
func New() (*Native, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL ES: %w", initErr)
	}
	return &Native{}, nil
}

func (*Native) GetString(name gles.Enum) string {
	return gl.GoStr(gl.GetString(uint32(name)))
}

func (*Native) GetError() gles.Enum {
	return gles.Enum(gl.GetError())
}

func (*Native) CreateShader(ty gles.Enum) gles.Shader {
	return gles.Shader(gl.CreateShader(uint32(ty)))
}

func (*Native) ShaderSource(s gles.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (*Native) CompileShader(s gles.Shader) {
	gl.CompileShader(uint32(s))
}

func (*Native) GetShaderi(s gles.Shader, pname gles.Enum) int {
	var v int32
	gl.GetShaderiv(uint32(s), uint32(pname), &v)
	return int(v)
}

func (*Native) GetShaderInfoLog(s gles.Shader, length int) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	gl.GetShaderInfoLog(uint32(s), int32(length), nil, &buf[0])
	return trimLog(buf)
}

func (*Native) DeleteShader(s gles.Shader) {
	gl.DeleteShader(uint32(s))
}

func (*Native) CreateProgram() gles.Program {
	return gles.Program(gl.CreateProgram())
}

func (*Native) AttachShader(p gles.Program, s gles.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (*Native) LinkProgram(p gles.Program) {
	gl.LinkProgram(uint32(p))
}

func (*Native) GetProgrami(p gles.Program, pname gles.Enum) int {
	var v int32
	gl.GetProgramiv(uint32(p), uint32(pname), &v)
	return int(v)
}

func (*Native) GetProgramInfoLog(p gles.Program, length int) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	gl.GetProgramInfoLog(uint32(p), int32(length), nil, &buf[0])
	return trimLog(buf)
}

func (*Native) DeleteProgram(p gles.Program) {
	gl.DeleteProgram(uint32(p))
}

func (*Native) UseProgram(p gles.Program) {
	gl.UseProgram(uint32(p))
}

func (*Native) GetAttribLocation(p gles.Program, name string) gles.Attrib {
	return gles.Attrib(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (*Native) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (*Native) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (*Native) Clear(mask gles.Enum) {
	gl.Clear(uint32(mask))
}

func (*Native) VertexAttribPointer(a gles.Attrib, size int, ty gles.Enum, normalized bool, stride int, data []float32) {
	gl.VertexAttribPointer(uint32(a), int32(size), uint32(ty), normalized, int32(stride), gl.Ptr(data))
}

func (*Native) EnableVertexAttribArray(a gles.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (*Native) DrawArrays(mode gles.Enum, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (*Native) ReadPixels(dst []byte, x, y, width, height int, format, ty gles.Enum) {
	if len(dst) == 0 {
		return
	}
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), gl.Ptr(dst))
}

// trimLog drops the terminating NUL the driver writes into the log buffer.
func trimLog(buf []byte) string {
	return strings.TrimRight(string(buf), "\x00")
}
