package gfx_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjkrol/mandelgl/pkg/gfx"
	"github.com/kjkrol/mandelgl/pkg/gfx/gfxtest"
)

const vertexSource = `#version 330 core
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;
uniform mat3 mvp;
out vec2 uv;
void main() {
	uv = (mvp * vec3(in_uv, 1.0)).xy;
	gl_Position = vec4(in_pos, 0.0, 1.0);
}
`

const fragmentSource = `#version 330 core
in vec2 uv;
out vec4 color;
uniform int max_iter;
uniform sampler2D tex0;
void main() {
	color = texture(tex0, uv) * float(max_iter);
}
`

var (
	quadVertices = []float32{
		-1, -1, -1, -1,
		1, -1, 1, -1,
		1, 1, 1, 1,
		-1, 1, -1, 1,
	}
	quadIndices = []uint32{0, 1, 2, 0, 2, 3}
)

func newContext(t *testing.T) (*gfx.Context, *gfxtest.Driver) {
	t.Helper()
	d := gfxtest.NewDriver()
	return gfx.NewContext(d), d
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newProgram(t *testing.T, ctx *gfx.Context) *gfx.ShaderProgram {
	t.Helper()
	p, err := gfx.NewShaderProgramFromSources(ctx,
		gfx.ShaderSource{Name: "quad.vert", Code: vertexSource},
		gfx.ShaderSource{Name: "quad.frag", Code: fragmentSource},
	)
	require.NoError(t, err)
	return p
}

func quadLayout() *gfx.VertexAttribDescriptor {
	return gfx.NewVertexAttribDescriptor().
		Layout(0, gfx.Float(2)).
		Layout(1, gfx.Float(2))
}

func gfxtestAttrib(buffer uint32, size int32, xtype gfx.Enum, stride int32, offset int) gfxtest.Attrib {
	return gfxtest.Attrib{
		Buffer:  buffer,
		Size:    size,
		Type:    xtype,
		Stride:  stride,
		Offset:  offset,
		Enabled: true,
	}
}
