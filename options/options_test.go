package options

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("gl2jni", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gl2jni.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	opts, err := Parse(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, ModeWindow, *opts.Mode)
	assert.Equal(t, 800, *opts.Width)
	assert.Equal(t, 600, *opts.Height)
	assert.Equal(t, 60, *opts.FPS)
	assert.False(t, *opts.Validate)
}

func TestFlags(t *testing.T) {
	opts, err := Parse(newFlagSet(), []string{"-mode", "headless", "-width", "320", "-height", "200", "-frames", "5"})
	require.NoError(t, err)
	assert.Equal(t, ModeHeadless, *opts.Mode)
	assert.Equal(t, 320, *opts.Width)
	assert.Equal(t, 200, *opts.Height)
	assert.Equal(t, 5, *opts.Frames)
}

func TestConfigFile(t *testing.T) {
	path := writeConfig(t, `
mode = "record"
width = 1280
height = 720
output = "triangle.mp4"
codec = "hevc"
validate = true
`)
	opts, err := Parse(newFlagSet(), []string{"-config", path, "-width", "640"})
	require.NoError(t, err)
	assert.Equal(t, ModeRecord, *opts.Mode)
	// the command line wins over the file
	assert.Equal(t, 640, *opts.Width)
	assert.Equal(t, 720, *opts.Height)
	assert.Equal(t, "triangle.mp4", *opts.OutputFile)
	assert.Equal(t, "hevc", *opts.Codec)
	assert.True(t, *opts.Validate)
	// keys missing from the file keep their defaults
	assert.Equal(t, 60, *opts.FPS)
}

func TestConfigFileErrors(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-config", filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, err)

	_, err = Parse(newFlagSet(), []string{"-config", writeConfig(t, "width = ")})
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	cases := map[string][]string{
		"mode":   {"-mode", "fullscreen"},
		"width":  {"-width", "0"},
		"height": {"-height", "-5"},
		"frames": {"-frames", "-1"},
		"fps":    {"-fps", "0"},
		"output": {"-mode", "record", "-output", ""},
		"codec":  {"-codec", "vp9"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(newFlagSet(), args)
			assert.Error(t, err)
		})
	}
}
