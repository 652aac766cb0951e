// Package glestest provides a recording gles.Functions for tests that run
// without a GPU.
package glestest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/richinsley/gl2jni/gles"
)

// Call is one recorded driver call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Draw captures the state a DrawArrays call consumed.
type Draw struct {
	Program gles.Program
	Mode    gles.Enum
	First   int
	Count   int
	// Attribute state of the attribute pointer in effect.
	Attrib     gles.Attrib
	Size       int
	Type       gles.Enum
	Normalized bool
	Stride     int
	Enabled    bool
	Vertices   []float32
}

// Viewport is the last rectangle set.
type Viewport struct {
	X, Y, Width, Height int
}

type shaderObj struct {
	ty       gles.Enum
	source   string
	compiled bool
	log      string
	deleted  bool
}

type programObj struct {
	shaders []gles.Shader
	linked  bool
	log     string
	attribs map[string]gles.Attrib
	deleted bool
}

type pointer struct {
	size       int
	ty         gles.Enum
	normalized bool
	stride     int
	data       []float32
}

// Recorder is a fake driver. Objects get increasing non-zero handles.
// Compilation succeeds unless Compile says otherwise; linking succeeds
// unless Link says otherwise.
type Recorder struct {
	// Compile decides the result of CompileShader.
	Compile func(ty gles.Enum, source string) (ok bool, log string)
	// Link decides the result of LinkProgram given both sources.
	Link func(vertex, fragment string) (ok bool, log string)
	// Strings answers GetString.
	Strings map[gles.Enum]string

	Calls     []Call
	Draws     []Draw
	View      Viewport
	ClearRGBA [4]float32
	Current   gles.Program

	next     uint32
	errors   []gles.Enum
	shaders  map[gles.Shader]*shaderObj
	programs map[gles.Program]*programObj
	pointers map[gles.Attrib]pointer
	enabled  map[gles.Attrib]bool
}

var _ gles.Functions = (*Recorder)(nil)

// New returns a Recorder with default identification strings.
func New() *Recorder {
	return &Recorder{
		Strings: map[gles.Enum]string{
			gles.VERSION:    "OpenGL ES 2.0 glestest",
			gles.VENDOR:     "glestest",
			gles.RENDERER:   "recorder",
			gles.EXTENSIONS: "",
		},
		shaders:  make(map[gles.Shader]*shaderObj),
		programs: make(map[gles.Program]*programObj),
		pointers: make(map[gles.Attrib]pointer),
		enabled:  make(map[gles.Attrib]bool),
	}
}

// PushError queues a driver error for GetError to report.
func (r *Recorder) PushError(e gles.Enum) {
	r.errors = append(r.errors, e)
}

// LiveShaders counts shader objects that were created and never deleted.
func (r *Recorder) LiveShaders() int {
	n := 0
	for _, s := range r.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

// LivePrograms counts program objects that were created and never deleted.
func (r *Recorder) LivePrograms() int {
	n := 0
	for _, p := range r.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}

// Count returns how many times the named call was made.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls and draws but keeps object state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) GetString(name gles.Enum) string {
	r.record("GetString", name)
	return r.Strings[name]
}

func (r *Recorder) GetError() gles.Enum {
	if len(r.errors) == 0 {
		return gles.NO_ERROR
	}
	e := r.errors[0]
	r.errors = r.errors[1:]
	return e
}

func (r *Recorder) CreateShader(ty gles.Enum) gles.Shader {
	r.record("CreateShader", ty)
	if ty != gles.VERTEX_SHADER && ty != gles.FRAGMENT_SHADER {
		r.PushError(gles.INVALID_ENUM)
		return 0
	}
	s := gles.Shader(r.handle())
	r.shaders[s] = &shaderObj{ty: ty}
	return s
}

func (r *Recorder) ShaderSource(s gles.Shader, src string) {
	r.record("ShaderSource", s)
	if obj, ok := r.shaders[s]; ok {
		obj.source = src
		return
	}
	r.PushError(gles.INVALID_VALUE)
}

func (r *Recorder) CompileShader(s gles.Shader) {
	r.record("CompileShader", s)
	obj, ok := r.shaders[s]
	if !ok {
		r.PushError(gles.INVALID_VALUE)
		return
	}
	obj.compiled, obj.log = true, ""
	if r.Compile != nil {
		obj.compiled, obj.log = r.Compile(obj.ty, obj.source)
	}
}

func (r *Recorder) GetShaderi(s gles.Shader, pname gles.Enum) int {
	r.record("GetShaderi", s, pname)
	obj, ok := r.shaders[s]
	if !ok {
		r.PushError(gles.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gles.COMPILE_STATUS:
		if obj.compiled {
			return gles.TRUE
		}
		return gles.FALSE
	case gles.INFO_LOG_LENGTH:
		return logLength(obj.log)
	}
	r.PushError(gles.INVALID_ENUM)
	return 0
}

func (r *Recorder) GetShaderInfoLog(s gles.Shader, length int) string {
	r.record("GetShaderInfoLog", s, length)
	obj, ok := r.shaders[s]
	if !ok {
		return ""
	}
	return truncateLog(obj.log, length)
}

func (r *Recorder) DeleteShader(s gles.Shader) {
	r.record("DeleteShader", s)
	if s == 0 {
		return
	}
	if obj, ok := r.shaders[s]; ok {
		obj.deleted = true
	}
}

func (r *Recorder) CreateProgram() gles.Program {
	r.record("CreateProgram")
	p := gles.Program(r.handle())
	r.programs[p] = &programObj{attribs: make(map[string]gles.Attrib)}
	return p
}

func (r *Recorder) AttachShader(p gles.Program, s gles.Shader) {
	r.record("AttachShader", p, s)
	prog, ok := r.programs[p]
	if !ok || r.shaders[s] == nil {
		r.PushError(gles.INVALID_VALUE)
		return
	}
	prog.shaders = append(prog.shaders, s)
}

var attributeDecl = regexp.MustCompile(`(?m)^\s*attribute\s+\w+\s+(\w+)\s*;`)

func (r *Recorder) LinkProgram(p gles.Program) {
	r.record("LinkProgram", p)
	prog, ok := r.programs[p]
	if !ok {
		r.PushError(gles.INVALID_VALUE)
		return
	}
	var vertex, fragment string
	for _, s := range prog.shaders {
		obj := r.shaders[s]
		switch obj.ty {
		case gles.VERTEX_SHADER:
			vertex = obj.source
		case gles.FRAGMENT_SHADER:
			fragment = obj.source
		}
	}
	prog.linked, prog.log = true, ""
	if vertex == "" || fragment == "" {
		prog.linked, prog.log = false, "error: program must have a vertex and a fragment shader attached"
	} else if r.Link != nil {
		prog.linked, prog.log = r.Link(vertex, fragment)
	}
	if !prog.linked {
		return
	}
	for i, m := range attributeDecl.FindAllStringSubmatch(vertex, -1) {
		prog.attribs[m[1]] = gles.Attrib(i)
	}
}

func (r *Recorder) GetProgrami(p gles.Program, pname gles.Enum) int {
	r.record("GetProgrami", p, pname)
	prog, ok := r.programs[p]
	if !ok {
		r.PushError(gles.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gles.LINK_STATUS:
		if prog.linked {
			return gles.TRUE
		}
		return gles.FALSE
	case gles.INFO_LOG_LENGTH:
		return logLength(prog.log)
	}
	r.PushError(gles.INVALID_ENUM)
	return 0
}

func (r *Recorder) GetProgramInfoLog(p gles.Program, length int) string {
	r.record("GetProgramInfoLog", p, length)
	prog, ok := r.programs[p]
	if !ok {
		return ""
	}
	return truncateLog(prog.log, length)
}

func (r *Recorder) DeleteProgram(p gles.Program) {
	r.record("DeleteProgram", p)
	if p == 0 {
		return
	}
	if prog, ok := r.programs[p]; ok {
		prog.deleted = true
	}
	if r.Current == p {
		r.Current = 0
	}
}

func (r *Recorder) UseProgram(p gles.Program) {
	r.record("UseProgram", p)
	if p != 0 {
		if prog, ok := r.programs[p]; !ok || !prog.linked {
			r.PushError(gles.INVALID_OPERATION)
			return
		}
	}
	r.Current = p
}

func (r *Recorder) GetAttribLocation(p gles.Program, name string) gles.Attrib {
	r.record("GetAttribLocation", p, name)
	prog, ok := r.programs[p]
	if !ok || !prog.linked {
		r.PushError(gles.INVALID_OPERATION)
		return -1
	}
	if a, ok := prog.attribs[name]; ok {
		return a
	}
	return -1
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
	if width < 0 || height < 0 {
		r.PushError(gles.INVALID_VALUE)
		return
	}
	r.View = Viewport{X: x, Y: y, Width: width, Height: height}
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
	r.ClearRGBA = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear(mask gles.Enum) {
	r.record("Clear", mask)
}

func (r *Recorder) VertexAttribPointer(a gles.Attrib, size int, ty gles.Enum, normalized bool, stride int, data []float32) {
	r.record("VertexAttribPointer", a, size, ty, normalized, stride)
	if a < 0 {
		r.PushError(gles.INVALID_VALUE)
		return
	}
	r.pointers[a] = pointer{size: size, ty: ty, normalized: normalized, stride: stride, data: data}
}

func (r *Recorder) EnableVertexAttribArray(a gles.Attrib) {
	r.record("EnableVertexAttribArray", a)
	if a < 0 {
		r.PushError(gles.INVALID_VALUE)
		return
	}
	r.enabled[a] = true
}

func (r *Recorder) DrawArrays(mode gles.Enum, first, count int) {
	r.record("DrawArrays", mode, first, count)
	d := Draw{Program: r.Current, Mode: mode, First: first, Count: count, Attrib: -1}
	for a, ptr := range r.pointers {
		if !r.enabled[a] {
			continue
		}
		d.Attrib, d.Size, d.Type, d.Normalized, d.Stride, d.Enabled = a, ptr.size, ptr.ty, ptr.normalized, ptr.stride, true
		d.Vertices = append([]float32(nil), ptr.data...)
		break
	}
	r.Draws = append(r.Draws, d)
}

// ReadPixels fills dst with the clear color.
func (r *Recorder) ReadPixels(dst []byte, x, y, width, height int, format, ty gles.Enum) {
	r.record("ReadPixels", x, y, width, height, format, ty)
	var px [4]byte
	for i, c := range r.ClearRGBA {
		px[i] = byte(c*255 + 0.5)
	}
	for i := 0; i+4 <= len(dst) && i < width*height*4; i += 4 {
		copy(dst[i:i+4], px[:])
	}
}

// logLength mirrors INFO_LOG_LENGTH: the log plus its NUL, or 0 when empty.
func logLength(log string) int {
	if log == "" {
		return 0
	}
	return len(log) + 1
}

func truncateLog(log string, length int) string {
	if length <= 0 {
		return ""
	}
	if n := length - 1; n < len(log) {
		log = log[:n]
	}
	return strings.Clone(log)
}
