package shader

import "github.com/richinsley/gl2jni/gles"

// VertexSource passes vPosition through unchanged.
const VertexSource = "attribute vec4 vPosition;\n" +
	"void main() {\n" +
	"  gl_Position = vPosition;\n" +
	"}\n"

// FragmentSource paints every fragment opaque green.
const FragmentSource = "precision mediump float;\n" +
	"void main() {\n" +
	"  gl_FragColor = vec4(0.0, 1.0, 0.0, 1.0);\n" +
	"}\n"

// PositionAttrib is the vertex input VertexSource reads positions from.
const PositionAttrib = "vPosition"

// Source returns the fixed source for a stage.
func Source(stage gles.Enum) string {
	if stage == gles.VERTEX_SHADER {
		return VertexSource
	}
	return FragmentSource
}
