package shader

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/gl2jni/gles"
	"github.com/richinsley/gl2jni/gles/glestest"
	"github.com/richinsley/gl2jni/logging"
)

// missing semicolon after the assignment
const brokenVertexSource = "attribute vec4 vPosition;\n" +
	"void main() {\n" +
	"  gl_Position = vPosition\n" +
	"}\n"

const brokenLog = "ERROR: 0:4: '}' : syntax error"

// varying read by the fragment stage but never written by the vertex stage
const varyingFragmentSource = "precision mediump float;\n" +
	"varying vec4 vColor;\n" +
	"void main() {\n" +
	"  gl_FragColor = vColor;\n" +
	"}\n"

const linkLog = "error: varying vColor not written by vertex shader"

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })
	return &buf
}

func fakeDriver() *glestest.Recorder {
	f := glestest.New()
	f.Compile = func(_ gles.Enum, source string) (bool, string) {
		if source == brokenVertexSource {
			return false, brokenLog
		}
		return true, ""
	}
	f.Link = func(vertex, fragment string) (bool, string) {
		if strings.Contains(fragment, "varying vec4 vColor") && !strings.Contains(vertex, "vColor") {
			return false, linkLog
		}
		return true, ""
	}
	return f
}

func TestBuildProgram(t *testing.T) {
	captureLog(t)
	f := fakeDriver()

	program, err := NewBuilder(f).BuildProgram(VertexSource, FragmentSource)
	require.NoError(t, err)
	assert.NotZero(t, program)
	assert.GreaterOrEqual(t, int(f.GetAttribLocation(program, PositionAttrib)), 0)
	assert.Equal(t, 2, f.Count("AttachShader"))
	// attached shaders are only flagged for deletion
	assert.Equal(t, 2, f.Count("DeleteShader"))
	assert.Zero(t, f.LiveShaders())
	assert.Equal(t, 1, f.LivePrograms())
}

func TestCompileShaderFailure(t *testing.T) {
	buf := captureLog(t)
	f := fakeDriver()

	s, err := NewBuilder(f).CompileShader(gles.VERTEX_SHADER, brokenVertexSource)
	assert.Zero(t, s)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, gles.VERTEX_SHADER, ce.Stage)
	assert.Equal(t, brokenLog, ce.Log)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "Could not compile shader 35633")
	assert.Contains(t, buf.String(), brokenLog)
	assert.Zero(t, f.LiveShaders())
}

func TestCompileShaderQueriesLogLength(t *testing.T) {
	captureLog(t)
	f := fakeDriver()

	_, err := NewBuilder(f).CompileShader(gles.VERTEX_SHADER, brokenVertexSource)
	require.Error(t, err)

	for _, c := range f.Calls {
		if c.Name == "GetShaderInfoLog" {
			assert.Equal(t, len(brokenLog)+1, c.Args[1])
			return
		}
	}
	t.Fatal("GetShaderInfoLog was never called")
}

func TestCompileFailureWithoutLog(t *testing.T) {
	captureLog(t)
	f := glestest.New()
	f.Compile = func(gles.Enum, string) (bool, string) { return false, "" }

	s, err := NewBuilder(f).CompileShader(gles.FRAGMENT_SHADER, FragmentSource)
	assert.Zero(t, s)
	assert.Error(t, err)
	assert.Zero(t, f.LiveShaders())
}

func TestBuildProgramVertexFailure(t *testing.T) {
	captureLog(t)
	f := fakeDriver()

	program, err := NewBuilder(f).BuildProgram(brokenVertexSource, FragmentSource)
	assert.Zero(t, program)
	assert.Error(t, err)
	assert.Zero(t, f.Count("CreateProgram"))
	// the fragment stage is never attempted
	assert.Equal(t, 1, f.Count("CreateShader"))
}

func TestBuildProgramFragmentFailureReleasesVertex(t *testing.T) {
	captureLog(t)
	f := fakeDriver()
	f.Compile = func(ty gles.Enum, _ string) (bool, string) {
		if ty == gles.FRAGMENT_SHADER {
			return false, "ERROR: 0:1: 'precision' : syntax error"
		}
		return true, ""
	}

	program, err := NewBuilder(f).BuildProgram(VertexSource, FragmentSource)
	assert.Zero(t, program)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, gles.FRAGMENT_SHADER, ce.Stage)
	assert.Zero(t, f.LiveShaders())
	assert.Zero(t, f.Count("CreateProgram"))
}

func TestBuildProgramLinkFailure(t *testing.T) {
	buf := captureLog(t)
	f := fakeDriver()

	program, err := NewBuilder(f).BuildProgram(VertexSource, varyingFragmentSource)
	assert.Zero(t, program)

	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, linkLog, le.Log)
	// both stages compiled before the link was attempted
	assert.Equal(t, 2, f.Count("CompileShader"))
	assert.Contains(t, buf.String(), "Could not link program")
	assert.Contains(t, buf.String(), linkLog)
	assert.Zero(t, f.LivePrograms())
	assert.Zero(t, f.LiveShaders())
}

func TestBuildProgramLogsAttachErrors(t *testing.T) {
	buf := captureLog(t)
	f := fakeDriver()
	f.PushError(gles.INVALID_OPERATION)

	program, err := NewBuilder(f).BuildProgram(VertexSource, FragmentSource)
	require.NoError(t, err)
	assert.NotZero(t, program)
	assert.Contains(t, buf.String(), "after glAttachShader() glError (0x502)")
}

func TestSource(t *testing.T) {
	assert.Equal(t, VertexSource, Source(gles.VERTEX_SHADER))
	assert.Equal(t, FragmentSource, Source(gles.FRAGMENT_SHADER))
	assert.Contains(t, VertexSource, "attribute vec4 "+PositionAttrib+";")
}
