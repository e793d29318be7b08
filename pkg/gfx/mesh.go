package gfx

// DefaultSampler is the sampler uniform a mesh texture is linked to when
// MeshConfig.Sampler is empty.
const DefaultSampler = "tex0"

// MeshConfig lists what a Mesh is built from. Program, Vertices, Indices and
// Layout are required. NewMesh takes ownership of Program and Texture and
// clears those fields; the caller must not close them afterwards.
type MeshConfig struct {
	Program  *ShaderProgram
	Vertices []float32
	Indices  []uint32
	Layout   *VertexAttribDescriptor

	Texture *Texture
	Sampler string
}

func (c *MeshConfig) missing() []string {
	var fields []string
	if c.Program == nil {
		fields = append(fields, "Program")
	}
	if len(c.Vertices) == 0 {
		fields = append(fields, "Vertices")
	}
	if len(c.Indices) == 0 {
		fields = append(fields, "Indices")
	}
	if c.Layout == nil {
		fields = append(fields, "Layout")
	}
	return fields
}

// Mesh is an indexed triangle list drawn with one program and an optional
// texture.
type Mesh struct {
	ctx      *Context
	array    *VertexArray
	vertices *VertexBuffer
	elements *ElementBuffer
	program  *ShaderProgram
	texture  *Texture
	sampler  string
}

// NewMesh validates cfg, reporting every missing required field at once, then
// uploads the geometry and links the layout. On failure nothing is leaked and
// cfg keeps ownership of its program and texture.
func NewMesh(ctx *Context, cfg *MeshConfig) (*Mesh, error) {
	if fields := cfg.missing(); len(fields) > 0 {
		return nil, &MissingFieldsError{Fields: fields}
	}

	m := &Mesh{ctx: ctx, sampler: cfg.Sampler}
	if m.sampler == "" {
		m.sampler = DefaultSampler
	}
	if err := m.upload(cfg); err != nil {
		m.releaseGeometry()
		return nil, err
	}

	m.program, cfg.Program = cfg.Program, nil
	m.texture, cfg.Texture = cfg.Texture, nil
	if m.texture != nil {
		m.texture.BindToUnit(m.program, m.sampler)
	}
	return m, nil
}

func (m *Mesh) upload(cfg *MeshConfig) error {
	var err error
	if m.array, err = NewVertexArray(m.ctx); err != nil {
		return err
	}
	if m.vertices, err = NewVertexBuffer(m.array); err != nil {
		return err
	}
	m.vertices.SetData(cfg.Vertices)
	if m.elements, err = NewElementBuffer(m.array); err != nil {
		return err
	}
	m.elements.SetData(cfg.Indices)
	cfg.Layout.Link(m.array, m.vertices)

	m.vertices.Unbind()
	m.array.Unbind()
	m.elements.Unbind()
	return nil
}

func (m *Mesh) Program() *ShaderProgram { return m.program }

func (m *Mesh) Texture() *Texture { return m.texture }

// IndexCount returns the number of indices drawn per Draw call.
func (m *Mesh) IndexCount() int {
	if m.elements == nil {
		return 0
	}
	return m.elements.Count()
}

// SwapProgram moves p into the mesh and hands the previous program back to
// the caller, who becomes responsible for closing it. The texture, if any, is
// linked to the new program.
func (m *Mesh) SwapProgram(p *ShaderProgram) *ShaderProgram {
	old := m.program
	m.program = p
	if m.texture != nil && p != nil {
		m.texture.BindToUnit(p, m.sampler)
	}
	return old
}

// Draw binds the program, texture and vertex array and issues one indexed
// draw call.
func (m *Mesh) Draw() error {
	if m.array == nil || m.program == nil || m.program.handle == 0 {
		return ErrReleased
	}
	m.program.Bind()
	if m.texture != nil {
		m.texture.Bind()
	}
	m.array.Bind()
	m.ctx.driver.DrawElements(Triangles, int32(m.elements.Count()), UnsignedInt, 0)
	return nil
}

// Close releases everything the mesh owns. Further calls are no-ops.
func (m *Mesh) Close() {
	m.releaseGeometry()
	if m.program != nil {
		m.program.Close()
		m.program = nil
	}
	if m.texture != nil {
		m.texture.Close()
		m.texture = nil
	}
}

func (m *Mesh) releaseGeometry() {
	if m.elements != nil {
		m.elements.Close()
		m.elements = nil
	}
	if m.vertices != nil {
		m.vertices.Close()
		m.vertices = nil
	}
	if m.array != nil {
		m.array.Close()
		m.array = nil
	}
}
