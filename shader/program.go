// Package shader compiles and links the triangle's GLSL ES program.
package shader

import (
	"errors"
	"fmt"

	"github.com/richinsley/gl2jni/gles"
	"github.com/richinsley/gl2jni/logging"
)

// CompileError reports a stage that failed to compile.
type CompileError struct {
	Stage gles.Enum
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("could not compile %s shader: %s", gles.StageName(e.Stage), e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("could not link program: %s", e.Log)
}

var (
	errCreateShader  = errors.New("glCreateShader returned 0")
	errCreateProgram = errors.New("glCreateProgram returned 0")
)

// Builder turns shader sources into a linked program on one driver.
type Builder struct {
	gl gles.Functions
}

func NewBuilder(f gles.Functions) *Builder {
	return &Builder{gl: f}
}

// CompileShader compiles source as the given stage. On failure the compiler
// log is logged, the shader object is deleted and a zero handle is returned
// with a *CompileError.
func (b *Builder) CompileShader(stage gles.Enum, source string) (gles.Shader, error) {
	s := b.gl.CreateShader(stage)
	if s == 0 {
		gles.CheckError(b.gl, "glCreateShader")
		return 0, errCreateShader
	}
	b.gl.ShaderSource(s, source)
	b.gl.CompileShader(s)

	if b.gl.GetShaderi(s, gles.COMPILE_STATUS) != gles.FALSE {
		return s, nil
	}

	infoLen := b.gl.GetShaderi(s, gles.INFO_LOG_LENGTH)
	logText := b.gl.GetShaderInfoLog(s, infoLen)
	logging.Error("Could not compile shader %d:\n%s", uint32(stage), logText)
	b.gl.DeleteShader(s)
	return 0, &CompileError{Stage: stage, Log: logText}
}

// BuildProgram compiles both stages and links them. Whatever happens, no
// shader object outlives the call on its own: on success the shaders are
// flagged for deletion and live only as long as the program, on failure
// everything created here is deleted.
func (b *Builder) BuildProgram(vertexSource, fragmentSource string) (gles.Program, error) {
	vs, err := b.CompileShader(gles.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, err
	}
	defer b.gl.DeleteShader(vs)

	fs, err := b.CompileShader(gles.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, err
	}
	defer b.gl.DeleteShader(fs)

	program := b.gl.CreateProgram()
	if program == 0 {
		gles.CheckError(b.gl, "glCreateProgram")
		return 0, errCreateProgram
	}
	b.gl.AttachShader(program, vs)
	gles.CheckError(b.gl, "glAttachShader")
	b.gl.AttachShader(program, fs)
	gles.CheckError(b.gl, "glAttachShader")
	b.gl.LinkProgram(program)

	if b.gl.GetProgrami(program, gles.LINK_STATUS) == gles.TRUE {
		return program, nil
	}

	bufLength := b.gl.GetProgrami(program, gles.INFO_LOG_LENGTH)
	logText := b.gl.GetProgramInfoLog(program, bufLength)
	logging.Error("Could not link program:\n%s", logText)
	b.gl.DeleteProgram(program)
	return 0, &LinkError{Log: logText}
}
