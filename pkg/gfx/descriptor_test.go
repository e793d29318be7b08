package gfx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/mandelgl/pkg/gfx"
)

func TestVertexAttribDescriptor_QuadLayout(t *testing.T) {
	desc := quadLayout()

	assert.Equal(t, 2, desc.Len())
	assert.Equal(t, 16, desc.Stride())
	assert.Equal(t, []gfx.AttribBinding{
		{Slot: 0, Item: gfx.Float(2), Offset: 0},
		{Slot: 1, Item: gfx.Float(2), Offset: 8},
	}, desc.Bindings())
}

func TestVertexAttribDescriptor_OffsetsFollowSlotOrder(t *testing.T) {
	tests := []struct {
		name    string
		layout  func(*gfx.VertexAttribDescriptor)
		stride  int
		offsets map[uint8]int
	}{
		{
			name:    "empty",
			layout:  func(*gfx.VertexAttribDescriptor) {},
			stride:  0,
			offsets: map[uint8]int{},
		},
		{
			name: "declared out of order",
			layout: func(d *gfx.VertexAttribDescriptor) {
				d.Layout(2, gfx.Float(4)).Layout(0, gfx.Float(3)).Layout(1, gfx.Float(2))
			},
			stride:  36,
			offsets: map[uint8]int{0: 0, 1: 12, 2: 20},
		},
		{
			name: "mixed component types",
			layout: func(d *gfx.VertexAttribDescriptor) {
				d.Layout(0, gfx.Float(3)).Layout(1, gfx.Integer(1)).Layout(2, gfx.Float(2))
			},
			stride:  24,
			offsets: map[uint8]int{0: 0, 1: 12, 2: 16},
		},
		{
			name: "slot replaced",
			layout: func(d *gfx.VertexAttribDescriptor) {
				d.Layout(0, gfx.Float(4)).Layout(1, gfx.Float(1)).Layout(0, gfx.Float(2))
			},
			stride:  12,
			offsets: map[uint8]int{0: 0, 1: 8},
		},
		{
			name: "sparse slots",
			layout: func(d *gfx.VertexAttribDescriptor) {
				d.Layout(5, gfx.Float(1)).Layout(3, gfx.Integer(2))
			},
			stride:  12,
			offsets: map[uint8]int{3: 0, 5: 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := gfx.NewVertexAttribDescriptor()
			tt.layout(desc)

			assert.Equal(t, tt.stride, desc.Stride())
			got := make(map[uint8]int)
			for _, b := range desc.Bindings() {
				got[b.Slot] = b.Offset
			}
			assert.Equal(t, tt.offsets, got)
		})
	}
}

func TestVertexAttribDescriptor_Link(t *testing.T) {
	ctx, d := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	vb, err := gfx.NewVertexBuffer(va)
	require.NoError(t, err)

	desc := gfx.NewVertexAttribDescriptor().
		Layout(0, gfx.Float(2)).
		Layout(1, gfx.Integer(1))
	desc.Link(va, vb)

	pos, ok := d.Attrib(va.Handle(), 0)
	require.True(t, ok)
	assert.Equal(t, gfxtestAttrib(vb.Handle(), 2, gfx.FloatType, 12, 0), pos)

	id, ok := d.Attrib(va.Handle(), 1)
	require.True(t, ok)
	assert.Equal(t, gfxtestAttrib(vb.Handle(), 1, gfx.Int, 12, 8), id)

	assert.Equal(t, 2, d.Count("EnableVertexAttribArray"))
	assert.Equal(t, 1, d.Count("BindVertexArray"))
	assert.Equal(t, 1, d.Count("BindBuffer"))
}

func TestVertexAttribDescriptor_EmptyLinksNothing(t *testing.T) {
	ctx, d := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	vb, err := gfx.NewVertexBuffer(va)
	require.NoError(t, err)
	d.Reset()

	gfx.NewVertexAttribDescriptor().Link(va, vb)

	assert.Zero(t, d.Count("VertexAttribPointer"))
	assert.Zero(t, d.Count("EnableVertexAttribArray"))
	assert.Empty(t, d.Calls)
}
