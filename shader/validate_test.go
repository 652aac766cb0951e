package shader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/gl2jni/gles"
	"github.com/richinsley/gl2jni/translator"
)

func requireTranslator(t *testing.T) {
	t.Helper()
	if _, err := translator.Get(context.Background()); err != nil {
		t.Skipf("shader translator unavailable: %v", err)
	}
}

func TestValidateFixedSources(t *testing.T) {
	requireTranslator(t)
	captureLog(t)
	assert.NoError(t, ValidateAll(context.Background()))
}

func TestValidateRejectsMalformedSource(t *testing.T) {
	requireTranslator(t)
	captureLog(t)

	err := Validate(context.Background(), gles.VERTEX_SHADER, brokenVertexSource)
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, gles.VERTEX_SHADER, ce.Stage)
	assert.NotEmpty(t, ce.Log)
}
