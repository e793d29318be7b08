package gfx

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Numeric is the set of element types a buffer can be filled from.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// byteView reinterprets data as its backing bytes without copying.
func byteView[T Numeric](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
}

// VertexArray records vertex attribute layout and the element buffer
// attached to it.
type VertexArray struct {
	ctx    *Context
	handle uint32
}

func NewVertexArray(ctx *Context) (*VertexArray, error) {
	handle := ctx.driver.GenVertexArray()
	if err := ctx.allocated(KindVertexArray, handle); err != nil {
		return nil, err
	}
	return &VertexArray{ctx: ctx, handle: handle}, nil
}

func (va *VertexArray) Handle() uint32 { return va.handle }

func (va *VertexArray) Bound() bool {
	return va.handle != 0 && va.ctx.vertexArray == va.handle
}

func (va *VertexArray) Bind() {
	if va.handle == 0 {
		return
	}
	va.ctx.bindVertexArray(va.handle)
}

func (va *VertexArray) Unbind() {
	if !va.Bound() {
		return
	}
	va.ctx.bindVertexArray(0)
}

// LinkAttribute binds the array and vb, then describes attribute slot as
// count components of xtype, stride bytes apart, starting offset bytes into
// each vertex record, and enables the slot.
func (va *VertexArray) LinkAttribute(vb *VertexBuffer, slot uint32, count int32, xtype Enum, stride int32, offset int) {
	va.Bind()
	vb.Bind()
	va.ctx.driver.VertexAttribPointer(slot, count, xtype, false, stride, offset)
	va.ctx.driver.EnableVertexAttribArray(slot)
}

// Close unbinds the array if it is current and deletes it. Further calls are
// no-ops.
func (va *VertexArray) Close() {
	if va.handle == 0 {
		return
	}
	va.Unbind()
	va.ctx.driver.DeleteVertexArray(va.handle)
	va.ctx.forgetVertexArray(va.handle)
	va.ctx.released(KindVertexArray, va.handle)
	va.handle = 0
}

// VertexBuffer holds interleaved vertex records on the GPU.
type VertexBuffer struct {
	ctx    *Context
	handle uint32
	size   int
}

// NewVertexBuffer binds va and allocates a buffer to be used with it.
func NewVertexBuffer(va *VertexArray) (*VertexBuffer, error) {
	va.Bind()
	ctx := va.ctx
	handle := ctx.driver.GenBuffer()
	if err := ctx.allocated(KindBuffer, handle); err != nil {
		return nil, err
	}
	return &VertexBuffer{ctx: ctx, handle: handle}, nil
}

func (vb *VertexBuffer) Handle() uint32 { return vb.handle }

// Size returns the byte size of the last upload.
func (vb *VertexBuffer) Size() int { return vb.size }

func (vb *VertexBuffer) Bound() bool {
	return vb.handle != 0 && vb.ctx.arrayBuffer == vb.handle
}

func (vb *VertexBuffer) Bind() {
	if vb.handle == 0 {
		return
	}
	vb.ctx.bindArrayBuffer(vb.handle)
}

func (vb *VertexBuffer) Unbind() {
	if !vb.Bound() {
		return
	}
	vb.ctx.bindArrayBuffer(0)
}

// SetData binds the buffer and replaces its whole store with data.
func (vb *VertexBuffer) SetData(data []float32) {
	UploadVertices(vb, data)
}

// ReadData copies the buffer contents into dst and returns the number of
// bytes copied.
func (vb *VertexBuffer) ReadData(dst []byte) int {
	if vb.handle == 0 {
		return 0
	}
	vb.Bind()
	n := min(len(dst), vb.size)
	vb.ctx.driver.GetBufferSubData(ArrayBuffer, 0, dst[:n])
	return n
}

func (vb *VertexBuffer) Close() {
	if vb.handle == 0 {
		return
	}
	vb.Unbind()
	vb.ctx.driver.DeleteBuffer(vb.handle)
	vb.ctx.forgetBuffer(vb.handle)
	vb.ctx.released(KindBuffer, vb.handle)
	vb.handle = 0
}

// UploadVertices binds vb and replaces its whole store with data of any numeric
// element type, for layouts that mix integer and float attributes.
func UploadVertices[T Numeric](vb *VertexBuffer, data []T) {
	if vb.handle == 0 {
		return
	}
	vb.Bind()
	raw := byteView(data)
	vb.ctx.driver.BufferData(ArrayBuffer, raw, StaticDraw)
	vb.size = len(raw)
}

// ElementBuffer holds triangle indices. Its binding lives inside the owning
// vertex array, so every bind or unbind goes through that array first.
type ElementBuffer struct {
	ctx    *Context
	array  *VertexArray
	handle uint32
	count  int
	size   int
}

// NewElementBuffer binds va, allocates an index buffer and binds it into va.
func NewElementBuffer(va *VertexArray) (*ElementBuffer, error) {
	va.Bind()
	ctx := va.ctx
	handle := ctx.driver.GenBuffer()
	if err := ctx.allocated(KindBuffer, handle); err != nil {
		return nil, err
	}
	eb := &ElementBuffer{ctx: ctx, array: va, handle: handle}
	eb.Bind()
	return eb, nil
}

func (eb *ElementBuffer) Handle() uint32 { return eb.handle }

// attached reports whether both the buffer and its owning array are live.
// Once the array is closed the buffer has no array to bind into.
func (eb *ElementBuffer) attached() bool {
	return eb.handle != 0 && eb.array.handle != 0
}

// Count returns the number of indices from the last upload.
func (eb *ElementBuffer) Count() int { return eb.count }

func (eb *ElementBuffer) Bound() bool {
	return eb.handle != 0 && eb.array.Bound() && eb.ctx.elements[eb.ctx.vertexArray] == eb.handle
}

func (eb *ElementBuffer) Bind() {
	if !eb.attached() {
		return
	}
	eb.array.Bind()
	eb.ctx.bindElementBuffer(eb.handle)
}

func (eb *ElementBuffer) Unbind() {
	eb.array.Unbind()
	if !eb.Bound() {
		return
	}
	eb.ctx.bindElementBuffer(0)
}

// SetData binds the buffer and replaces its whole store with indices. It does
// nothing once the owning array is closed.
func (eb *ElementBuffer) SetData(indices []uint32) {
	if !eb.attached() {
		return
	}
	eb.Bind()
	raw := byteView(indices)
	eb.ctx.driver.BufferData(ElementArrayBuffer, raw, StaticDraw)
	eb.count = len(indices)
	eb.size = len(raw)
}

// ReadData copies the buffer contents into dst and returns the number of
// bytes copied.
func (eb *ElementBuffer) ReadData(dst []byte) int {
	if !eb.attached() {
		return 0
	}
	eb.Bind()
	n := min(len(dst), eb.size)
	eb.ctx.driver.GetBufferSubData(ElementArrayBuffer, 0, dst[:n])
	return n
}

func (eb *ElementBuffer) Close() {
	if eb.handle == 0 {
		return
	}
	if eb.Bound() {
		eb.ctx.bindElementBuffer(0)
	}
	eb.ctx.driver.DeleteBuffer(eb.handle)
	eb.ctx.forgetBuffer(eb.handle)
	eb.ctx.released(KindBuffer, eb.handle)
	eb.handle = 0
}
