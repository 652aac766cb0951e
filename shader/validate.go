package shader

import (
	"context"
	"fmt"

	"github.com/richinsley/gl2jni/gles"
	"github.com/richinsley/gl2jni/logging"
	"github.com/richinsley/gl2jni/translator"
	gst "github.com/richinsley/goshadertranslator"
)

// Validate runs source through the ANGLE front end without a GL context.
// GLSL ES 1.00 sources are accepted under WebGL2 rules.
func Validate(ctx context.Context, stage gles.Enum, source string) error {
	t, err := translator.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to create shader translator: %w", err)
	}
	out, err := t.TranslateShader(source, gles.StageName(stage), gst.ShaderSpecWebGL2, gst.OutputFormatESSL)
	if err != nil {
		return &CompileError{Stage: stage, Log: err.Error()}
	}
	logging.Info("validated %s shader (%d bytes translated)", gles.StageName(stage), len(out.Code))
	return nil
}

// ValidateAll validates the fixed vertex and fragment sources.
func ValidateAll(ctx context.Context) error {
	if err := Validate(ctx, gles.VERTEX_SHADER, VertexSource); err != nil {
		return err
	}
	return Validate(ctx, gles.FRAGMENT_SHADER, FragmentSource)
}
