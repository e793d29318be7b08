package gfx

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// ComponentType is the scalar type of one vertex attribute component.
type ComponentType uint8

const (
	FloatComponent ComponentType = iota
	IntegerComponent
)

// LayoutItem describes one attribute of an interleaved vertex record.
type LayoutItem struct {
	Type  ComponentType
	Count uint8
}

// Float is an attribute of n 32-bit float components.
func Float(n uint8) LayoutItem { return LayoutItem{Type: FloatComponent, Count: n} }

// Integer is an attribute of n 32-bit integer components.
func Integer(n uint8) LayoutItem { return LayoutItem{Type: IntegerComponent, Count: n} }

// Size returns the byte size of the attribute.
func (it LayoutItem) Size() int {
	return int(it.Count) * 4
}

func (it LayoutItem) glType() Enum {
	if it.Type == IntegerComponent {
		return Int
	}
	return FloatType
}

// AttribBinding is a resolved attribute: its slot, layout and byte offset
// inside the vertex record.
type AttribBinding struct {
	Slot   uint8
	Item   LayoutItem
	Offset int
}

// VertexAttribDescriptor maps attribute slots to layout items. Slots are kept
// in ascending order; that order defines the byte offsets inside a record.
type VertexAttribDescriptor struct {
	items *treemap.Map
}

func NewVertexAttribDescriptor() *VertexAttribDescriptor {
	return &VertexAttribDescriptor{items: treemap.NewWith(utils.UInt8Comparator)}
}

// Layout sets the item for slot, replacing any previous one.
func (d *VertexAttribDescriptor) Layout(slot uint8, item LayoutItem) *VertexAttribDescriptor {
	d.items.Put(slot, item)
	return d
}

func (d *VertexAttribDescriptor) Len() int {
	return d.items.Size()
}

// Stride returns the byte size of one vertex record.
func (d *VertexAttribDescriptor) Stride() int {
	stride := 0
	it := d.items.Iterator()
	for it.Next() {
		stride += it.Value().(LayoutItem).Size()
	}
	return stride
}

// Bindings returns the attributes in slot order with their byte offsets.
func (d *VertexAttribDescriptor) Bindings() []AttribBinding {
	out := make([]AttribBinding, 0, d.items.Size())
	offset := 0
	it := d.items.Iterator()
	for it.Next() {
		item := it.Value().(LayoutItem)
		out = append(out, AttribBinding{Slot: it.Key().(uint8), Item: item, Offset: offset})
		offset += item.Size()
	}
	return out
}

// Link configures every slot of va to read from vb.
func (d *VertexAttribDescriptor) Link(va *VertexArray, vb *VertexBuffer) {
	stride := int32(d.Stride())
	for _, b := range d.Bindings() {
		va.LinkAttribute(vb, uint32(b.Slot), int32(b.Item.Count), b.Item.glType(), stride, b.Offset)
	}
}
