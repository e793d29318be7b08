package gfx_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/mandelgl/pkg/gfx"
)

func floatBytes(data []float32) []byte {
	out := make([]byte, 0, 4*len(data))
	for _, v := range data {
		out = binary.NativeEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

func TestVertexArray_BindTwiceIssuesOneCall(t *testing.T) {
	ctx, d := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)

	va.Bind()
	va.Bind()

	assert.True(t, va.Bound())
	assert.Equal(t, 1, d.Count("BindVertexArray"))
	assert.Equal(t, va.Handle(), d.BoundVertexArray())
}

func TestVertexArray_BindingIsExclusive(t *testing.T) {
	ctx, d := newContext(t)
	a, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	b, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)

	a.Bind()
	b.Bind()
	assert.False(t, a.Bound())
	assert.True(t, b.Bound())

	// unbinding something that is not current must not disturb the slot
	a.Unbind()
	assert.True(t, b.Bound())
	assert.Equal(t, b.Handle(), d.BoundVertexArray())
}

func TestVertexArray_CloseReleasesHandle(t *testing.T) {
	ctx, d := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	first := va.Handle()
	va.Bind()

	va.Close()
	assert.False(t, d.IsVertexArray(first), "handle must be invalid before the next allocation")
	assert.Zero(t, va.Handle())
	assert.False(t, va.Bound())
	assert.Zero(t, d.BoundVertexArray())
	assert.Zero(t, ctx.Live(gfx.KindVertexArray))

	next, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	assert.False(t, next.Bound(), "a recycled name must not inherit the old binding")

	va.Close()
	assert.Equal(t, 1, d.Count("DeleteVertexArray"))
}

func TestVertexBuffer_UploadRoundTrip(t *testing.T) {
	ctx, d := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	vb, err := gfx.NewVertexBuffer(va)
	require.NoError(t, err)
	assert.True(t, va.Bound())

	vb.SetData(quadVertices)
	assert.True(t, vb.Bound())
	assert.Equal(t, 4*len(quadVertices), vb.Size())

	want := floatBytes(quadVertices)
	got := make([]byte, len(want))
	n := vb.ReadData(got)
	assert.Equal(t, len(want), n)
	assert.Equal(t, want, got)
	assert.Equal(t, want, d.BufferContents(vb.Handle()))
}

func TestUploadVertices_IntegerData(t *testing.T) {
	ctx, d := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	vb, err := gfx.NewVertexBuffer(va)
	require.NoError(t, err)

	gfx.UploadVertices(vb, []int32{1, -1, 7})

	want := binary.NativeEndian.AppendUint32(nil, 1)
	want = binary.NativeEndian.AppendUint32(want, math.MaxUint32)
	want = binary.NativeEndian.AppendUint32(want, 7)
	assert.Equal(t, want, d.BufferContents(vb.Handle()))
	assert.Equal(t, 12, vb.Size())
}

func TestVertexBuffer_ReadDataIsBoundedBySize(t *testing.T) {
	ctx, _ := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	vb, err := gfx.NewVertexBuffer(va)
	require.NoError(t, err)
	vb.SetData([]float32{1, 2})

	dst := make([]byte, 64)
	assert.Equal(t, 8, vb.ReadData(dst))
	assert.Equal(t, floatBytes([]float32{1, 2}), dst[:8])
}

func TestVertexBuffer_CloseClearsBinding(t *testing.T) {
	ctx, d := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	vb, err := gfx.NewVertexBuffer(va)
	require.NoError(t, err)
	vb.SetData(quadVertices)
	first := vb.Handle()

	vb.Close()
	assert.False(t, d.IsBuffer(first))
	assert.Zero(t, d.BoundArrayBuffer())
	assert.Zero(t, ctx.Live(gfx.KindBuffer))
	assert.Zero(t, vb.ReadData(make([]byte, 4)))

	again, err := gfx.NewVertexBuffer(va)
	require.NoError(t, err)
	assert.False(t, again.Bound())
}

func TestElementBuffer_BindingLivesInVertexArray(t *testing.T) {
	ctx, d := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	eb, err := gfx.NewElementBuffer(va)
	require.NoError(t, err)

	assert.True(t, va.Bound())
	assert.True(t, eb.Bound())
	assert.Equal(t, eb.Handle(), d.BoundElementBuffer(va.Handle()))

	eb.SetData(quadIndices)
	assert.Equal(t, len(quadIndices), eb.Count())

	eb.Unbind()
	assert.False(t, va.Bound())
	assert.False(t, eb.Bound())
	// the array keeps its element buffer while unbound
	assert.Equal(t, eb.Handle(), d.BoundElementBuffer(va.Handle()))

	binds := d.Count("BindBuffer")
	eb.Bind()
	eb.Bind()
	assert.True(t, eb.Bound())
	assert.Equal(t, binds, d.Count("BindBuffer"), "rebinding the array restores its element buffer")
}

func TestNewElementBuffer_BindsArrayBeforeAllocating(t *testing.T) {
	ctx, d := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	d.Reset()

	eb, err := gfx.NewElementBuffer(va)
	require.NoError(t, err)
	assert.Equal(t, []string{"BindVertexArray", "GenBuffer", "BindBuffer"}, d.Names())
	assert.Equal(t, eb.Handle(), d.BoundElementBuffer(va.Handle()))
}

func TestElementBuffer_ClosedArrayLeavesOtherArraysAlone(t *testing.T) {
	ctx, d := newContext(t)
	a, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	ebA, err := gfx.NewElementBuffer(a)
	require.NoError(t, err)
	b, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	ebB, err := gfx.NewElementBuffer(b)
	require.NoError(t, err)
	ebB.SetData(quadIndices)

	a.Close()
	b.Bind()
	d.Reset()

	ebA.SetData([]uint32{0, 1, 2})
	ebA.Bind()
	assert.Zero(t, ebA.ReadData(make([]byte, 12)))
	assert.Empty(t, d.Calls)
	assert.False(t, ebA.Bound())
	assert.Zero(t, ebA.Count())

	assert.True(t, ebB.Bound())
	assert.Equal(t, ebB.Handle(), d.BoundElementBuffer(b.Handle()))
	got := make([]byte, 4*len(quadIndices))
	assert.Equal(t, len(got), ebB.ReadData(got))

	h := ebA.Handle()
	ebA.Close()
	assert.False(t, d.IsBuffer(h))
	assert.True(t, ebB.Bound())
}

func TestElementBuffer_UploadRoundTrip(t *testing.T) {
	ctx, _ := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	eb, err := gfx.NewElementBuffer(va)
	require.NoError(t, err)
	eb.SetData(quadIndices)

	want := make([]byte, 0, 4*len(quadIndices))
	for _, i := range quadIndices {
		want = binary.NativeEndian.AppendUint32(want, i)
	}
	got := make([]byte, len(want))
	assert.Equal(t, len(want), eb.ReadData(got))
	assert.Equal(t, want, got)
}

func TestElementBuffer_Close(t *testing.T) {
	ctx, d := newContext(t)
	va, err := gfx.NewVertexArray(ctx)
	require.NoError(t, err)
	eb, err := gfx.NewElementBuffer(va)
	require.NoError(t, err)
	h := eb.Handle()

	eb.Close()
	eb.Close()
	assert.False(t, d.IsBuffer(h))
	assert.Zero(t, d.BoundElementBuffer(va.Handle()))
	assert.False(t, eb.Bound())
	assert.Equal(t, 1, d.Count("DeleteBuffer"))
}

func TestNewVertexArray_AllocationFailure(t *testing.T) {
	ctx, d := newContext(t)
	d.FailAllocations = true

	va, err := gfx.NewVertexArray(ctx)
	assert.Nil(t, va)
	require.ErrorIs(t, err, gfx.ErrAllocation)
	assert.Contains(t, err.Error(), "vertex array")
	assert.Zero(t, ctx.Live(gfx.KindVertexArray))
}
