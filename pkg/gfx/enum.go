package gfx

// Enum is a GL enumerant. Values match the OpenGL 3.3 core headers so a
// Driver backed by real bindings can pass them through unchanged.
type Enum uint32

const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4

	UnsignedByte   Enum = 0x1401
	Int            Enum = 0x1404
	UnsignedInt    Enum = 0x1405
	FloatType      Enum = 0x1406
	Triangles      Enum = 0x0004
	ColorBufferBit Enum = 0x4000

	VertexShader   Enum = 0x8B31
	FragmentShader Enum = 0x8B30
	CompileStatus  Enum = 0x8B81
	LinkStatus     Enum = 0x8B82
	InfoLogLength  Enum = 0x8B84

	Texture2D        Enum = 0x0DE1
	Texture0         Enum = 0x84C0
	TextureMinFilter Enum = 0x2801
	TextureMagFilter Enum = 0x2800
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803
	UnpackAlignment  Enum = 0x0CF5

	NearestFilter Enum = 0x2600
	LinearFilter  Enum = 0x2601
	RepeatWrap    Enum = 0x2901
	MirroredWrap  Enum = 0x8370
	ClampWrap     Enum = 0x812F

	RGBFormat  Enum = 0x1907
	RGBAFormat Enum = 0x1908

	False = 0
	True  = 1
)
