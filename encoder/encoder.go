// Package encoder pipes rendered RGBA frames into an ffmpeg process.
package encoder

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/richinsley/gl2jni/logging"
	"github.com/richinsley/gl2jni/options"
)

const bytesPerPixel = 4

// Encoder consumes raw frames on the render thread while ffmpeg runs in its
// own goroutine on the other end of a pipe.
type Encoder struct {
	pipeWriter *io.PipeWriter
	errc       chan error
	frameSize  int
	frames     int64
	closed     bool
}

// Args builds the ffmpeg input and output arguments for raw RGBA frames
// read back bottom-up from GL.
func Args(opts *options.Options) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", *opts.Width, *opts.Height),
		"framerate": *opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	switch runtime.GOOS {
	case "darwin":
		if *opts.Codec == "hevc" {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
	default:
		if *opts.Codec == "hevc" {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
	}
	if *opts.Codec == "hevc" && strings.HasSuffix(*opts.OutputFile, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

func command(opts *options.Options, input io.Reader) *ffmpeg.Stream {
	inputArgs, outputArgs := Args(opts)
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(input).ErrorToStdOut()
	if *opts.FFMPEGPath != "" {
		cmd = cmd.SetFfmpegPath(*opts.FFMPEGPath)
	}
	return cmd
}

// New starts ffmpeg writing to opts.OutputFile.
func New(opts *options.Options) (*Encoder, error) {
	if *opts.OutputFile == "" {
		return nil, fmt.Errorf("no output file")
	}
	pipeReader, pipeWriter := io.Pipe()
	cmd := command(opts, pipeReader)

	e := &Encoder{
		pipeWriter: pipeWriter,
		errc:       make(chan error, 1),
		frameSize:  *opts.Width * *opts.Height * bytesPerPixel,
	}
	logging.Info("Starting ffmpeg: %s", strings.Join(cmd.GetArgs(), " "))
	go func() {
		err := cmd.Run()
		// unblock a writer stuck on a dead process
		pipeReader.CloseWithError(io.ErrClosedPipe)
		e.errc <- err
	}()
	return e, nil
}

// WriteFrame hands one frame to ffmpeg. It blocks while ffmpeg catches up.
func (e *Encoder) WriteFrame(pixels []byte) error {
	if e.closed {
		return io.ErrClosedPipe
	}
	if len(pixels) != e.frameSize {
		return fmt.Errorf("frame is %d bytes, want %d", len(pixels), e.frameSize)
	}
	if _, err := e.pipeWriter.Write(pixels); err != nil {
		return fmt.Errorf("failed to write frame %d to ffmpeg: %w", e.frames, err)
	}
	e.frames++
	return nil
}

// Frames is the number of frames written so far.
func (e *Encoder) Frames() int64 {
	return e.frames
}

// Close ends the stream and waits for ffmpeg to exit.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.pipeWriter.Close()
	if err := <-e.errc; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	logging.Info("Encoded %d frames", e.frames)
	return nil
}
