package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/richinsley/gl2jni/encoder"
	"github.com/richinsley/gl2jni/gles/native"
	"github.com/richinsley/gl2jni/glfwcontext"
	"github.com/richinsley/gl2jni/graphics"
	"github.com/richinsley/gl2jni/headless"
	"github.com/richinsley/gl2jni/host"
	"github.com/richinsley/gl2jni/logging"
	"github.com/richinsley/gl2jni/options"
	"github.com/richinsley/gl2jni/shader"
)

func init() {
	runtime.LockOSThread()
}

// start loads the driver on the current context and initializes the
// renderer at the surface size.
func start(ctx graphics.Context) (*host.Lib, error) {
	ctx.MakeCurrent()
	f, err := native.New()
	if err != nil {
		return nil, err
	}
	lib := host.NewLib(f)
	if err := lib.Init(ctx.GetFramebufferSize()); err != nil {
		return nil, err
	}
	return lib, nil
}

func runWindow(opts *options.Options) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer ctx.Shutdown()

	lib, err := start(ctx)
	if err != nil {
		return err
	}
	defer lib.Close()

	logging.Info("Starting interactive render loop...")
	return host.RunWindow(ctx, lib)
}

func runHeadless(opts *options.Options) error {
	ctx, err := headless.NewHeadless(*opts.Width, *opts.Height)
	if err != nil {
		return fmt.Errorf("failed to create headless context: %w", err)
	}
	defer ctx.Shutdown()

	lib, err := start(ctx)
	if err != nil {
		return err
	}
	defer lib.Close()

	if *opts.Mode != options.ModeRecord {
		logging.Info("Rendering %d frames offscreen...", *opts.Frames)
		return host.RunFrames(ctx, lib, *opts.Frames, nil)
	}

	enc, err := encoder.New(opts)
	if err != nil {
		return fmt.Errorf("failed to start encoder: %w", err)
	}
	logging.Info("Recording %d frames to %s...", *opts.Frames, *opts.OutputFile)
	runErr := host.RunFrames(ctx, lib, *opts.Frames, enc)
	return errors.Join(runErr, enc.Close())
}

func main() {
	opts, err := options.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		logging.Error("Invalid options: %v", err)
		os.Exit(2)
	}
	if *opts.Help {
		fmt.Println("OpenGL ES 2.0 triangle renderer")
		flag.PrintDefaults()
		return
	}

	if *opts.Validate {
		if err := shader.ValidateAll(context.Background()); err != nil {
			logging.Error("Shader validation failed: %v", err)
			os.Exit(1)
		}
	}

	switch *opts.Mode {
	case options.ModeWindow:
		err = runWindow(opts)
	default:
		err = runHeadless(opts)
	}
	if err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
}
