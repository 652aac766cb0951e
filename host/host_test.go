package host

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/gl2jni/gles"
	"github.com/richinsley/gl2jni/gles/glestest"
	"github.com/richinsley/gl2jni/logging"
	"github.com/richinsley/gl2jni/shader"
)

func quiet(t *testing.T) {
	logging.SetOutput(io.Discard)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })
}

// fakeContext closes after a fixed number of frames and can change size
// part way through.
type fakeContext struct {
	width, height int
	resizeAt      int
	newW, newH    int
	closeAfter    int
	frames        int
	clock         float64
}

func (c *fakeContext) MakeCurrent() {}
func (c *fakeContext) Shutdown()    {}
func (c *fakeContext) ShouldClose() bool {
	return c.frames >= c.closeAfter
}
func (c *fakeContext) EndFrame() {
	c.frames++
	c.clock += 1.0 / 60
	if c.resizeAt > 0 && c.frames == c.resizeAt {
		c.width, c.height = c.newW, c.newH
	}
}
func (c *fakeContext) GetFramebufferSize() (int, int) { return c.width, c.height }
func (c *fakeContext) Time() float64                  { return c.clock }

type sink struct {
	frames [][]byte
	err    error
}

func (s *sink) WriteFrame(p []byte) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, p)
	return nil
}

func TestInitAndStep(t *testing.T) {
	quiet(t)
	f := glestest.New()
	lib := NewLib(f)

	require.NoError(t, lib.Init(800, 600))
	require.NoError(t, lib.Step())
	assert.Len(t, f.Draws, 1)
	assert.Equal(t, glestest.Viewport{Width: 800, Height: 600}, f.View)
}

func TestStepBeforeInit(t *testing.T) {
	quiet(t)
	f := glestest.New()
	lib := NewLib(f)

	err := lib.Step()
	assert.True(t, IsNotReady(err))
	assert.Empty(t, f.Draws)
}

func TestInitFailureMustBeInspected(t *testing.T) {
	quiet(t)
	f := glestest.New()
	f.Compile = func(gles.Enum, string) (bool, string) { return false, "ERROR: 0:1: syntax error" }
	lib := NewLib(f)

	err := lib.Init(800, 600)
	var ce *shader.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, err.Error(), "init(800, 600)")
	assert.True(t, IsNotReady(lib.Step()))
}

func TestRunWindowFollowsResize(t *testing.T) {
	quiet(t)
	f := glestest.New()
	lib := NewLib(f)
	ctx := &fakeContext{width: 800, height: 600, closeAfter: 5, resizeAt: 2, newW: 1024, newH: 768}
	require.NoError(t, lib.Init(ctx.GetFramebufferSize()))

	require.NoError(t, RunWindow(ctx, lib))
	assert.Equal(t, 5, ctx.frames)
	assert.Len(t, f.Draws, 5)
	assert.Equal(t, glestest.Viewport{Width: 1024, Height: 768}, f.View)
	assert.Equal(t, 1, f.Count("CreateProgram"))
}

func TestRunWindowBeforeInit(t *testing.T) {
	quiet(t)
	lib := NewLib(glestest.New())
	err := RunWindow(&fakeContext{width: 10, height: 10, closeAfter: 3}, lib)
	assert.True(t, IsNotReady(err))
}

func TestRunFramesToSink(t *testing.T) {
	quiet(t)
	f := glestest.New()
	lib := NewLib(f)
	require.NoError(t, lib.Init(4, 4))

	s := &sink{}
	ctx := &fakeContext{width: 4, height: 4}
	require.NoError(t, RunFrames(ctx, lib, 3, s))
	require.Len(t, s.frames, 3)
	for _, fr := range s.frames {
		assert.Len(t, fr, 4*4*4)
	}
	assert.Equal(t, 3, ctx.frames)
}

func TestRunFramesWithoutSink(t *testing.T) {
	quiet(t)
	f := glestest.New()
	lib := NewLib(f)
	require.NoError(t, lib.Init(4, 4))

	require.NoError(t, RunFrames(&fakeContext{width: 4, height: 4}, lib, 2, nil))
	assert.Zero(t, f.Count("ReadPixels"))
	assert.Len(t, f.Draws, 2)
}

func TestRunFramesSinkError(t *testing.T) {
	quiet(t)
	lib := NewLib(glestest.New())
	require.NoError(t, lib.Init(4, 4))

	boom := errors.New("pipe closed")
	err := RunFrames(&fakeContext{width: 4, height: 4}, lib, 3, &sink{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestClose(t *testing.T) {
	quiet(t)
	f := glestest.New()
	lib := NewLib(f)
	require.NoError(t, lib.Init(4, 4))

	lib.Close()
	assert.Zero(t, f.LivePrograms())
	assert.True(t, IsNotReady(lib.Step()))
}
