// Package translator holds the process-wide ANGLE shader translator.
package translator

import (
	"context"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// Get returns the shared translator, creating it on first use. Creation
// instantiates the translator's wasm module, so it happens at most once.
func Get(ctx context.Context) (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(ctx)
	})
	return translator, initErr
}
