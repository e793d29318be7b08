// Package gfxtest provides an in-memory gfx.Driver for tests. It keeps GL-like
// object tables, compiles shaders with a pluggable rule, resolves uniforms from
// the declarations in the sources and records every call it receives.
package gfxtest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/kjkrol/mandelgl/pkg/gfx"
)

// Call is one recorded driver invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Attrib is the state of one vertex attribute slot.
type Attrib struct {
	Buffer     uint32
	Size       int32
	Type       gfx.Enum
	Normalized bool
	Stride     int32
	Offset     int
	Enabled    bool
}

// UniformValue holds the last upload to a uniform location.
type UniformValue struct {
	Ints   []int32
	Floats []float32
}

// TextureState is the state of one texture object.
type TextureState struct {
	Width, Height  int32
	InternalFormat int32
	Format         gfx.Enum
	Pixels         []byte
	Params         map[gfx.Enum]int32
	Mipmaps        bool
	// UnpackAlignment in effect when the image was uploaded.
	UnpackAlignment int32
}

// Draw is one recorded draw call with the bindings it read.
type Draw struct {
	Mode          gfx.Enum
	Count         int32
	Type          gfx.Enum
	Program       uint32
	VertexArray   uint32
	ElementBuffer uint32
	Textures      map[int32]uint32
}

// CompileFunc decides whether a stage compiles; log is returned through the
// info log.
type CompileFunc func(stage gfx.Enum, source string) (ok bool, log string)

// LinkFunc decides whether a program links.
type LinkFunc func(vertex, fragment string) (ok bool, log string)

type vertexArray struct {
	element uint32
	attribs map[uint32]*Attrib
}

type shader struct {
	stage    gfx.Enum
	source   string
	compiled bool
	log      string
}

type program struct {
	shaders  []uint32
	linked   bool
	log      string
	uniforms map[string]int32
	values   map[int32]UniformValue
}

// names hands out GL-style object names, reusing released ones lowest first.
type names struct {
	next uint32
	free []uint32
}

func (n *names) alloc() uint32 {
	if len(n.free) > 0 {
		slices.Sort(n.free)
		h := n.free[0]
		n.free = n.free[1:]
		return h
	}
	n.next++
	return n.next
}

func (n *names) release(h uint32) {
	n.free = append(n.free, h)
}

// Driver is a gfx.Driver that simulates a GL 3.3 context in memory.
type Driver struct {
	Calls []Call
	Draws []Draw

	// Compile defaults to DefaultCompile; Link defaults to always succeeding.
	Compile CompileFunc
	Link    LinkFunc
	// FailAllocations makes every Gen*/Create* call return 0.
	FailAllocations bool

	arrayNames, bufferNames, shaderNames, programNames, textureNames names

	arrays   map[uint32]*vertexArray
	buffers  map[uint32][]byte
	shaders  map[uint32]*shader
	programs map[uint32]*program
	textures map[uint32]*TextureState

	defaultArray vertexArray
	boundArray   uint32
	arrayBuffer  uint32
	current      uint32
	activeUnit   int32
	units        map[int32]uint32
	unpack       int32

	clearColor [4]float32
	viewport   [4]int32
}

var _ gfx.Driver = (*Driver)(nil)

func NewDriver() *Driver {
	return &Driver{
		arrays:       make(map[uint32]*vertexArray),
		buffers:      make(map[uint32][]byte),
		shaders:      make(map[uint32]*shader),
		programs:     make(map[uint32]*program),
		textures:     make(map[uint32]*TextureState),
		units:        make(map[int32]uint32),
		unpack:       4,
		defaultArray: vertexArray{attribs: make(map[uint32]*Attrib)},
	}
}

// DefaultCompile rejects sources without a main function and sources
// containing "#error".
func DefaultCompile(_ gfx.Enum, source string) (bool, string) {
	if strings.Contains(source, "#error") {
		return false, "0:1(1): error: #error directive"
	}
	if !strings.Contains(source, "void main") {
		return false, "0:1(1): error: syntax error, missing main"
	}
	return true, ""
}

func (d *Driver) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

// Count returns how many times the named call was recorded.
func (d *Driver) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order.
func (d *Driver) Names() []string {
	out := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		out[i] = c.Name
	}
	return out
}

// Reset forgets recorded calls and draws but keeps object state.
func (d *Driver) Reset() {
	d.Calls = nil
	d.Draws = nil
}

func (d *Driver) IsVertexArray(h uint32) bool { _, ok := d.arrays[h]; return ok }
func (d *Driver) IsBuffer(h uint32) bool      { _, ok := d.buffers[h]; return ok }
func (d *Driver) IsShader(h uint32) bool      { _, ok := d.shaders[h]; return ok }
func (d *Driver) IsProgram(h uint32) bool     { _, ok := d.programs[h]; return ok }
func (d *Driver) IsTexture(h uint32) bool     { _, ok := d.textures[h]; return ok }

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Driver) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Driver) LivePrograms() int { return len(d.programs) }

func (d *Driver) BoundVertexArray() uint32 { return d.boundArray }
func (d *Driver) BoundArrayBuffer() uint32 { return d.arrayBuffer }
func (d *Driver) CurrentProgram() uint32   { return d.current }
func (d *Driver) ActiveUnit() int32        { return d.activeUnit }

// BoundElementBuffer returns the element buffer recorded in vertex array h.
func (d *Driver) BoundElementBuffer(h uint32) uint32 {
	if h == 0 {
		return d.defaultArray.element
	}
	if va := d.arrays[h]; va != nil {
		return va.element
	}
	return 0
}

// BoundTexture returns the texture bound on unit.
func (d *Driver) BoundTexture(unit int32) uint32 { return d.units[unit] }

// BufferContents returns a copy of buffer h's data store.
func (d *Driver) BufferContents(h uint32) []byte {
	return slices.Clone(d.buffers[h])
}

// Attrib returns the state of slot in vertex array h.
func (d *Driver) Attrib(h uint32, slot uint32) (Attrib, bool) {
	va := d.arrays[h]
	if h == 0 {
		va = &d.defaultArray
	}
	if va == nil {
		return Attrib{}, false
	}
	a, ok := va.attribs[slot]
	if !ok {
		return Attrib{}, false
	}
	return *a, true
}

// Uniform returns the last value uploaded to name in program h.
func (d *Driver) Uniform(h uint32, name string) (UniformValue, bool) {
	p := d.programs[h]
	if p == nil {
		return UniformValue{}, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return UniformValue{}, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// UniformCount returns how many uniform locations of program h hold a value.
func (d *Driver) UniformCount(h uint32) int {
	if p := d.programs[h]; p != nil {
		return len(p.values)
	}
	return 0
}

// Texture returns the state of texture h.
func (d *Driver) Texture(h uint32) (TextureState, bool) {
	t := d.textures[h]
	if t == nil {
		return TextureState{}, false
	}
	return *t, true
}

func (d *Driver) ClearColorValue() [4]float32 { return d.clearColor }
func (d *Driver) ViewportValue() [4]int32     { return d.viewport }

func (d *Driver) currentArray() *vertexArray {
	if d.boundArray == 0 {
		return &d.defaultArray
	}
	return d.arrays[d.boundArray]
}

// Vertex arrays

func (d *Driver) GenVertexArray() uint32 {
	d.record("GenVertexArray")
	if d.FailAllocations {
		return 0
	}
	h := d.arrayNames.alloc()
	d.arrays[h] = &vertexArray{attribs: make(map[uint32]*Attrib)}
	return h
}

func (d *Driver) DeleteVertexArray(h uint32) {
	d.record("DeleteVertexArray", h)
	if _, ok := d.arrays[h]; !ok {
		return
	}
	delete(d.arrays, h)
	d.arrayNames.release(h)
	if d.boundArray == h {
		d.boundArray = 0
	}
}

func (d *Driver) BindVertexArray(h uint32) {
	d.record("BindVertexArray", h)
	d.boundArray = h
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype gfx.Enum, normalized bool, stride int32, offset int) {
	d.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
	va := d.currentArray()
	if va == nil {
		return
	}
	a := va.attribs[index]
	if a == nil {
		a = &Attrib{}
		va.attribs[index] = a
	}
	a.Buffer = d.arrayBuffer
	a.Size = size
	a.Type = xtype
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
	va := d.currentArray()
	if va == nil {
		return
	}
	a := va.attribs[index]
	if a == nil {
		a = &Attrib{}
		va.attribs[index] = a
	}
	a.Enabled = true
}

// Buffers

func (d *Driver) GenBuffer() uint32 {
	d.record("GenBuffer")
	if d.FailAllocations {
		return 0
	}
	h := d.bufferNames.alloc()
	d.buffers[h] = nil
	return h
}

func (d *Driver) DeleteBuffer(h uint32) {
	d.record("DeleteBuffer", h)
	if _, ok := d.buffers[h]; !ok {
		return
	}
	delete(d.buffers, h)
	d.bufferNames.release(h)
	if d.arrayBuffer == h {
		d.arrayBuffer = 0
	}
	if va := d.currentArray(); va != nil && va.element == h {
		va.element = 0
	}
}

func (d *Driver) BindBuffer(target gfx.Enum, h uint32) {
	d.record("BindBuffer", target, h)
	switch target {
	case gfx.ArrayBuffer:
		d.arrayBuffer = h
	case gfx.ElementArrayBuffer:
		if va := d.currentArray(); va != nil {
			va.element = h
		}
	}
}

func (d *Driver) boundBuffer(target gfx.Enum) uint32 {
	switch target {
	case gfx.ArrayBuffer:
		return d.arrayBuffer
	case gfx.ElementArrayBuffer:
		if va := d.currentArray(); va != nil {
			return va.element
		}
	}
	return 0
}

func (d *Driver) BufferData(target gfx.Enum, data []byte, usage gfx.Enum) {
	d.record("BufferData", target, len(data), usage)
	h := d.boundBuffer(target)
	if _, ok := d.buffers[h]; !ok || h == 0 {
		return
	}
	d.buffers[h] = slices.Clone(data)
}

func (d *Driver) GetBufferSubData(target gfx.Enum, offset int, dst []byte) {
	d.record("GetBufferSubData", target, offset, len(dst))
	data := d.buffers[d.boundBuffer(target)]
	if offset >= len(data) {
		return
	}
	copy(dst, data[offset:])
}

// Shaders and programs

func (d *Driver) CreateShader(xtype gfx.Enum) uint32 {
	d.record("CreateShader", xtype)
	if d.FailAllocations {
		return 0
	}
	h := d.shaderNames.alloc()
	d.shaders[h] = &shader{stage: xtype}
	return h
}

func (d *Driver) ShaderSource(h uint32, source string) {
	d.record("ShaderSource", h)
	if s := d.shaders[h]; s != nil {
		s.source = source
	}
}

func (d *Driver) CompileShader(h uint32) {
	d.record("CompileShader", h)
	s := d.shaders[h]
	if s == nil {
		return
	}
	compile := d.Compile
	if compile == nil {
		compile = DefaultCompile
	}
	s.compiled, s.log = compile(s.stage, s.source)
}

func (d *Driver) GetShaderi(h uint32, pname gfx.Enum) int32 {
	d.record("GetShaderi", h, pname)
	s := d.shaders[h]
	if s == nil {
		return 0
	}
	switch pname {
	case gfx.CompileStatus:
		if s.compiled {
			return gfx.True
		}
		return gfx.False
	case gfx.InfoLogLength:
		return int32(len(s.log))
	}
	return 0
}

func (d *Driver) GetShaderInfoLog(h uint32) string {
	d.record("GetShaderInfoLog", h)
	if s := d.shaders[h]; s != nil {
		return s.log
	}
	return ""
}

func (d *Driver) DeleteShader(h uint32) {
	d.record("DeleteShader", h)
	if _, ok := d.shaders[h]; !ok {
		return
	}
	delete(d.shaders, h)
	d.shaderNames.release(h)
}

func (d *Driver) CreateProgram() uint32 {
	d.record("CreateProgram")
	if d.FailAllocations {
		return 0
	}
	h := d.programNames.alloc()
	d.programs[h] = &program{
		uniforms: make(map[string]int32),
		values:   make(map[int32]UniformValue),
	}
	return h
}

func (d *Driver) AttachShader(p, s uint32) {
	d.record("AttachShader", p, s)
	if prog := d.programs[p]; prog != nil {
		prog.shaders = append(prog.shaders, s)
	}
}

var uniformDecl = regexp.MustCompile(`\buniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

func (d *Driver) LinkProgram(h uint32) {
	d.record("LinkProgram", h)
	p := d.programs[h]
	if p == nil {
		return
	}
	var vertex, fragment string
	for _, sh := range p.shaders {
		s := d.shaders[sh]
		if s == nil || !s.compiled {
			p.linked, p.log = false, "error: attached shader not compiled"
			return
		}
		if s.stage == gfx.VertexShader {
			vertex = s.source
		} else {
			fragment = s.source
		}
	}
	p.linked, p.log = true, ""
	if d.Link != nil {
		p.linked, p.log = d.Link(vertex, fragment)
	}
	if !p.linked {
		return
	}
	clear(p.uniforms)
	clear(p.values)
	for _, src := range []string{vertex, fragment} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, ok := p.uniforms[m[1]]; !ok {
				p.uniforms[m[1]] = int32(len(p.uniforms))
			}
		}
	}
}

func (d *Driver) GetProgrami(h uint32, pname gfx.Enum) int32 {
	d.record("GetProgrami", h, pname)
	p := d.programs[h]
	if p == nil {
		return 0
	}
	switch pname {
	case gfx.LinkStatus:
		if p.linked {
			return gfx.True
		}
		return gfx.False
	case gfx.InfoLogLength:
		return int32(len(p.log))
	}
	return 0
}

func (d *Driver) GetProgramInfoLog(h uint32) string {
	d.record("GetProgramInfoLog", h)
	if p := d.programs[h]; p != nil {
		return p.log
	}
	return ""
}

func (d *Driver) UseProgram(h uint32) {
	d.record("UseProgram", h)
	d.current = h
}

func (d *Driver) DeleteProgram(h uint32) {
	d.record("DeleteProgram", h)
	if _, ok := d.programs[h]; !ok {
		return
	}
	delete(d.programs, h)
	d.programNames.release(h)
}

// Uniforms

func (d *Driver) GetUniformLocation(h uint32, name string) int32 {
	d.record("GetUniformLocation", h, name)
	p := d.programs[h]
	if p == nil || !p.linked {
		return gfx.NotFound
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return gfx.NotFound
}

func (d *Driver) setUniform(name string, loc int32, v UniformValue) {
	d.record(name, loc, v)
	if loc == gfx.NotFound {
		return
	}
	p := d.programs[d.current]
	if p == nil {
		return
	}
	p.values[loc] = v
}

func (d *Driver) Uniform1f(loc int32, v float32) {
	d.setUniform("Uniform1f", loc, UniformValue{Floats: []float32{v}})
}

func (d *Driver) Uniform1i(loc int32, v int32) {
	d.setUniform("Uniform1i", loc, UniformValue{Ints: []int32{v}})
}

func (d *Driver) Uniform2f(loc int32, v0, v1 float32) {
	d.setUniform("Uniform2f", loc, UniformValue{Floats: []float32{v0, v1}})
}

func (d *Driver) Uniform3f(loc int32, v0, v1, v2 float32) {
	d.setUniform("Uniform3f", loc, UniformValue{Floats: []float32{v0, v1, v2}})
}

func (d *Driver) Uniform4f(loc int32, v0, v1, v2, v3 float32) {
	d.setUniform("Uniform4f", loc, UniformValue{Floats: []float32{v0, v1, v2, v3}})
}

func (d *Driver) UniformMatrix2fv(loc int32, transpose bool, value []float32) {
	d.setUniform("UniformMatrix2fv", loc, UniformValue{Floats: slices.Clone(value)})
}

func (d *Driver) UniformMatrix3fv(loc int32, transpose bool, value []float32) {
	d.setUniform("UniformMatrix3fv", loc, UniformValue{Floats: slices.Clone(value)})
}

func (d *Driver) UniformMatrix4fv(loc int32, transpose bool, value []float32) {
	d.setUniform("UniformMatrix4fv", loc, UniformValue{Floats: slices.Clone(value)})
}

// Textures

func (d *Driver) GenTexture() uint32 {
	d.record("GenTexture")
	if d.FailAllocations {
		return 0
	}
	h := d.textureNames.alloc()
	d.textures[h] = &TextureState{Params: make(map[gfx.Enum]int32)}
	return h
}

func (d *Driver) DeleteTexture(h uint32) {
	d.record("DeleteTexture", h)
	if _, ok := d.textures[h]; !ok {
		return
	}
	delete(d.textures, h)
	d.textureNames.release(h)
	for unit, t := range d.units {
		if t == h {
			delete(d.units, unit)
		}
	}
}

func (d *Driver) ActiveTexture(unit gfx.Enum) {
	d.record("ActiveTexture", unit)
	d.activeUnit = int32(unit - gfx.Texture0)
}

func (d *Driver) BindTexture(target gfx.Enum, h uint32) {
	d.record("BindTexture", target, h)
	if h == 0 {
		delete(d.units, d.activeUnit)
		return
	}
	d.units[d.activeUnit] = h
}

func (d *Driver) boundTexture() *TextureState {
	return d.textures[d.units[d.activeUnit]]
}

func (d *Driver) TexImage2D(target gfx.Enum, level, internalFormat, width, height int32, format, xtype gfx.Enum, pixels []byte) {
	d.record("TexImage2D", target, level, internalFormat, width, height, format, xtype, len(pixels))
	t := d.boundTexture()
	if t == nil || level != 0 {
		return
	}
	t.Width, t.Height = width, height
	t.InternalFormat = internalFormat
	t.Format = format
	t.Pixels = slices.Clone(pixels)
	t.UnpackAlignment = d.unpack
}

func (d *Driver) TexParameteri(target, pname gfx.Enum, param int32) {
	d.record("TexParameteri", target, pname, param)
	if t := d.boundTexture(); t != nil {
		t.Params[pname] = param
	}
}

func (d *Driver) GenerateMipmap(target gfx.Enum) {
	d.record("GenerateMipmap", target)
	if t := d.boundTexture(); t != nil {
		t.Mipmaps = true
	}
}

func (d *Driver) PixelStorei(pname gfx.Enum, param int32) {
	d.record("PixelStorei", pname, param)
	if pname == gfx.UnpackAlignment {
		d.unpack = param
	}
}

// Frame

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.record("ClearColor", r, g, b, a)
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *Driver) Clear(mask gfx.Enum) {
	d.record("Clear", mask)
}

func (d *Driver) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
	d.viewport = [4]int32{x, y, width, height}
}

func (d *Driver) DrawElements(mode gfx.Enum, count int32, xtype gfx.Enum, offset int) {
	d.record("DrawElements", mode, count, xtype, offset)
	textures := make(map[int32]uint32, len(d.units))
	for k, v := range d.units {
		textures[k] = v
	}
	d.Draws = append(d.Draws, Draw{
		Mode:          mode,
		Count:         count,
		Type:          xtype,
		Program:       d.current,
		VertexArray:   d.boundArray,
		ElementBuffer: d.BoundElementBuffer(d.boundArray),
		Textures:      textures,
	})
}
