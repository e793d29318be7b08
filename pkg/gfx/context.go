package gfx

import "log/slog"

// ObjectKind identifies a GL object namespace.
type ObjectKind int

const (
	KindVertexArray ObjectKind = iota
	KindBuffer
	KindShader
	KindProgram
	KindTexture
)

func (k ObjectKind) String() string {
	switch k {
	case KindVertexArray:
		return "vertex array"
	case KindBuffer:
		return "buffer"
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	case KindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// Context owns the binding table of one GL context. Every wrapper in this
// package binds and unbinds through it, so the answer to "is X bound" comes
// from a single place instead of per-object flags that can drift apart.
//
// A Context is not safe for concurrent use; it must stay on the thread that
// owns the GL context.
type Context struct {
	driver Driver

	vertexArray uint32
	arrayBuffer uint32
	// element array buffer binding is vertex array state
	elements map[uint32]uint32

	program    uint32
	activeUnit int32
	textures   map[int32]uint32

	live map[ObjectKind]int
}

func NewContext(driver Driver) *Context {
	return &Context{
		driver:   driver,
		elements: make(map[uint32]uint32),
		textures: make(map[int32]uint32),
		live:     make(map[ObjectKind]int),
	}
}

func (c *Context) Driver() Driver {
	return c.driver
}

// Live reports how many objects of the given kind were allocated through this
// context and not yet released.
func (c *Context) Live(kind ObjectKind) int {
	return c.live[kind]
}

// Stats returns a snapshot of live object counts keyed by kind.
func (c *Context) Stats() map[ObjectKind]int {
	out := make(map[ObjectKind]int, len(c.live))
	for k, v := range c.live {
		out[k] = v
	}
	return out
}

func (c *Context) allocated(kind ObjectKind, handle uint32) error {
	if handle == 0 {
		return allocationError(kind)
	}
	c.live[kind]++
	slog.Debug("gfx: allocated", "kind", kind, "handle", handle)
	return nil
}

func (c *Context) released(kind ObjectKind, handle uint32) {
	c.live[kind]--
	slog.Debug("gfx: released", "kind", kind, "handle", handle)
}

func (c *Context) bindVertexArray(array uint32) {
	if c.vertexArray == array {
		return
	}
	c.driver.BindVertexArray(array)
	c.vertexArray = array
}

func (c *Context) bindArrayBuffer(buffer uint32) {
	if c.arrayBuffer == buffer {
		return
	}
	c.driver.BindBuffer(ArrayBuffer, buffer)
	c.arrayBuffer = buffer
}

func (c *Context) bindElementBuffer(buffer uint32) {
	if c.elements[c.vertexArray] == buffer {
		return
	}
	c.driver.BindBuffer(ElementArrayBuffer, buffer)
	if buffer == 0 {
		delete(c.elements, c.vertexArray)
		return
	}
	c.elements[c.vertexArray] = buffer
}

func (c *Context) useProgram(program uint32) {
	if c.program == program {
		return
	}
	c.driver.UseProgram(program)
	c.program = program
}

func (c *Context) activeTexture(unit int32) {
	if c.activeUnit == unit {
		return
	}
	c.driver.ActiveTexture(Texture0 + Enum(unit))
	c.activeUnit = unit
}

func (c *Context) bindTexture(texture uint32) {
	if c.textures[c.activeUnit] == texture {
		return
	}
	c.driver.BindTexture(Texture2D, texture)
	if texture == 0 {
		delete(c.textures, c.activeUnit)
		return
	}
	c.textures[c.activeUnit] = texture
}

// forget* mirror GL dropping bindings of a deleted object, so a recycled
// name never inherits a stale binding.

func (c *Context) forgetVertexArray(array uint32) {
	if c.vertexArray == array {
		c.vertexArray = 0
	}
	delete(c.elements, array)
}

func (c *Context) forgetBuffer(buffer uint32) {
	if c.arrayBuffer == buffer {
		c.arrayBuffer = 0
	}
	for array, b := range c.elements {
		if b == buffer {
			delete(c.elements, array)
		}
	}
}

func (c *Context) forgetProgram(program uint32) {
	if c.program == program {
		c.program = 0
	}
}

func (c *Context) forgetTexture(texture uint32) {
	for unit, t := range c.textures {
		if t == texture {
			delete(c.textures, unit)
		}
	}
}
