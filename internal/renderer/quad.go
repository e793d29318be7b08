package renderer

import (
	"image/color"

	"github.com/kjkrol/mandelgl/pkg/gfx"
)

// The fullscreen quad: clip-space position followed by the texture
// coordinate the vertex shader maps onto the complex plane.
var (
	quadVertices = []float32{
		-1, -1, -1, -1,
		1, -1, 1, -1,
		1, 1, 1, 1,
		-1, 1, -1, 1,
	}
	quadIndices = []uint32{
		0, 1, 2,
		0, 2, 3,
	}
)

const (
	positionSlot = 0
	texCoordSlot = 1
)

func quadLayout() *gfx.VertexAttribDescriptor {
	return gfx.NewVertexAttribDescriptor().
		Layout(positionSlot, gfx.Float(2)).
		Layout(texCoordSlot, gfx.Float(2))
}

func colorToFloat(c color.Color) [4]float32 {
	if c == nil {
		return [4]float32{}
	}
	r, g, b, a := c.RGBA()
	const inv = 1.0 / 65535.0
	return [4]float32{
		float32(r) * inv,
		float32(g) * inv,
		float32(b) * inv,
		float32(a) * inv,
	}
}
