package renderer

import "github.com/richinsley/gl2jni/gles"

// RenderPass is the linked program and the attribute it reads positions
// from.
type RenderPass struct {
	Program  gles.Program
	Position gles.Attrib
}
