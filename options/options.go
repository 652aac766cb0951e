// Package options holds the command line and config file settings.
package options

import (
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	ModeWindow   = "window"
	ModeHeadless = "headless"
	ModeRecord   = "record"
)

type Options struct {
	Help       *bool
	Mode       *string
	Width      *int
	Height     *int
	Frames     *int
	FPS        *int
	Title      *string
	OutputFile *string
	FFMPEGPath *string
	Codec      *string
	ConfigFile *string
	Validate   *bool
}

// fileConfig mirrors Options for the TOML config file. Unset keys stay nil.
type fileConfig struct {
	Mode       *string `toml:"mode"`
	Width      *int    `toml:"width"`
	Height     *int    `toml:"height"`
	Frames     *int    `toml:"frames"`
	FPS        *int    `toml:"fps"`
	Title      *string `toml:"title"`
	OutputFile *string `toml:"output"`
	FFMPEGPath *string `toml:"ffmpeg"`
	Codec      *string `toml:"codec"`
	Validate   *bool   `toml:"validate"`
}

// Register defines every flag on fs and returns the bound options.
func Register(fs *flag.FlagSet) *Options {
	return &Options{
		Help:       fs.Bool("help", false, "Show help message"),
		Mode:       fs.String("mode", ModeWindow, "Run mode: window, headless or record"),
		Width:      fs.Int("width", 800, "Surface width"),
		Height:     fs.Int("height", 600, "Surface height"),
		Frames:     fs.Int("frames", 300, "Frames to render in headless and record modes"),
		FPS:        fs.Int("fps", 60, "Frames per second of the recording"),
		Title:      fs.String("title", "gl2jni", "Window title"),
		OutputFile: fs.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      fs.String("codec", "h264", "Video codec for recording (h264, hevc)"),
		ConfigFile: fs.String("config", "", "TOML file with default settings"),
		Validate:   fs.Bool("validate", false, "Validate the shader sources before creating a context"),
	}
}

// Parse registers the flags on fs, parses args, overlays the config file
// for flags not given on the command line, and validates the result.
func Parse(fs *flag.FlagSet, args []string) (*Options, error) {
	opts := Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *opts.ConfigFile != "" {
		data, err := os.ReadFile(*opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if err := opts.apply(data, set); err != nil {
			return nil, err
		}
	}
	if err := opts.Check(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *Options) apply(data []byte, set map[string]bool) error {
	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	overlay(o.Mode, cfg.Mode, set["mode"])
	overlay(o.Width, cfg.Width, set["width"])
	overlay(o.Height, cfg.Height, set["height"])
	overlay(o.Frames, cfg.Frames, set["frames"])
	overlay(o.FPS, cfg.FPS, set["fps"])
	overlay(o.Title, cfg.Title, set["title"])
	overlay(o.OutputFile, cfg.OutputFile, set["output"])
	overlay(o.FFMPEGPath, cfg.FFMPEGPath, set["ffmpeg"])
	overlay(o.Codec, cfg.Codec, set["codec"])
	overlay(o.Validate, cfg.Validate, set["validate"])
	return nil
}

func overlay[T any](dst, src *T, fromFlag bool) {
	if src != nil && !fromFlag {
		*dst = *src
	}
}

// Check rejects settings no run mode can use.
func (o *Options) Check() error {
	switch *o.Mode {
	case ModeWindow, ModeHeadless, ModeRecord:
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if *o.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", *o.Frames)
	}
	if *o.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", *o.FPS)
	}
	if *o.Mode == ModeRecord && *o.OutputFile == "" {
		return fmt.Errorf("record mode needs an output file")
	}
	switch *o.Codec {
	case "h264", "hevc":
	default:
		return fmt.Errorf("unknown codec %q", *o.Codec)
	}
	return nil
}
