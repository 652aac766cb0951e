// Package host is the boundary the platform drives: one Init when the
// surface exists, then one Step per frame on the context's thread.
package host

import (
	"errors"
	"fmt"

	"github.com/richinsley/gl2jni/gles"
	"github.com/richinsley/gl2jni/graphics"
	"github.com/richinsley/gl2jni/logging"
	"github.com/richinsley/gl2jni/renderer"
)

// FrameSink receives read-back frames, bottom row first.
type FrameSink interface {
	WriteFrame(pixels []byte) error
}

// Lib owns the renderer for one GL context.
type Lib struct {
	renderer *renderer.Renderer
}

func NewLib(f gles.Functions) *Lib {
	return &Lib{renderer: renderer.New(f)}
}

// Init sets up the renderer for a width x height surface. The caller must
// not start stepping when it fails.
func (l *Lib) Init(width, height int) error {
	if err := l.renderer.Setup(width, height); err != nil {
		return fmt.Errorf("init(%d, %d): %w", width, height, err)
	}
	return nil
}

// Step renders one frame. Before a successful Init it draws nothing and
// returns renderer.ErrNotReady.
func (l *Lib) Step() error {
	return l.renderer.RenderFrame()
}

// Resize follows a surface size change after Init.
func (l *Lib) Resize(width, height int) error {
	return l.renderer.Resize(width, height)
}

// Frame reads back the last rendered frame.
func (l *Lib) Frame() ([]byte, error) {
	return l.renderer.ReadPixels()
}

// Close releases GL objects. The context must still be current.
func (l *Lib) Close() {
	l.renderer.Shutdown()
}

// RunWindow steps until the context asks to close, following framebuffer
// size changes.
func RunWindow(ctx graphics.Context, lib *Lib) error {
	width, height := ctx.GetFramebufferSize()
	for !ctx.ShouldClose() {
		if w, h := ctx.GetFramebufferSize(); w != width || h != height {
			width, height = w, h
			if w > 0 && h > 0 {
				if err := lib.Resize(w, h); err != nil {
					return err
				}
			}
		}
		if err := lib.Step(); err != nil {
			return err
		}
		ctx.EndFrame()
	}
	return nil
}

// RunFrames renders n frames, handing each to sink when it is not nil.
func RunFrames(ctx graphics.Context, lib *Lib, n int, sink FrameSink) error {
	start := ctx.Time()
	for i := 0; i < n; i++ {
		if err := lib.Step(); err != nil {
			return err
		}
		if sink != nil {
			pixels, err := lib.Frame()
			if err != nil {
				return err
			}
			if err := sink.WriteFrame(pixels); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}
		ctx.EndFrame()
	}
	if elapsed := ctx.Time() - start; elapsed > 0 && n > 0 {
		logging.Info("Rendered %d frames in %.3fs (%.1f fps)", n, elapsed, float64(n)/elapsed)
	}
	return nil
}

// IsNotReady reports whether err comes from stepping before Init.
func IsNotReady(err error) bool {
	return errors.Is(err, renderer.ErrNotReady)
}
