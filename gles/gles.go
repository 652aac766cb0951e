// Package gles is the slice of the OpenGL ES 2.0 API the renderer drives.
// Functions is implemented by native.Native over the real driver and by
// glestest.Recorder in tests.
package gles

type (
	Enum    uint32
	Shader  uint32
	Program uint32
	Attrib  int32
)

const (
	FALSE = 0
	TRUE  = 1

	NO_ERROR          Enum = 0x0
	INVALID_ENUM      Enum = 0x0500
	INVALID_VALUE     Enum = 0x0501
	INVALID_OPERATION Enum = 0x0502
	OUT_OF_MEMORY     Enum = 0x0505

	VENDOR     Enum = 0x1F00
	RENDERER   Enum = 0x1F01
	VERSION    Enum = 0x1F02
	EXTENSIONS Enum = 0x1F03

	FRAGMENT_SHADER Enum = 0x8B30
	VERTEX_SHADER   Enum = 0x8B31
	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82
	INFO_LOG_LENGTH Enum = 0x8B84

	DEPTH_BUFFER_BIT Enum = 0x00000100
	COLOR_BUFFER_BIT Enum = 0x00004000

	TRIANGLES     Enum = 0x0004
	FLOAT         Enum = 0x1406
	UNSIGNED_BYTE Enum = 0x1401
	RGBA          Enum = 0x1908
)

// Functions is the driver surface. All calls must happen on the thread that
// owns the current context.
type Functions interface {
	GetString(name Enum) string
	GetError() Enum

	CreateShader(ty Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	// GetShaderInfoLog returns at most length bytes of the info log.
	GetShaderInfoLog(s Shader, length int) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program, length int) string
	DeleteProgram(p Program)
	UseProgram(p Program)
	GetAttribLocation(p Program, name string) Attrib

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	// VertexAttribPointer reads client-side data; no buffer object is bound.
	VertexAttribPointer(a Attrib, size int, ty Enum, normalized bool, stride int, data []float32)
	EnableVertexAttribArray(a Attrib)
	DrawArrays(mode Enum, first, count int)
	ReadPixels(dst []byte, x, y, width, height int, format, ty Enum)
}

// StageName is the human readable name of a shader type.
func StageName(ty Enum) string {
	switch ty {
	case VERTEX_SHADER:
		return "vertex"
	case FRAGMENT_SHADER:
		return "fragment"
	}
	return "unknown"
}
