package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// PrimitiveShaderSource is the WGSL module every primitive pipeline is built from.
// Its VertexInput struct matches GPUVertex exactly.
//
//go:embed assets/primitive.wgsl
var PrimitiveShaderSource string

// GPUVertex is the GPU-aligned representation of a submitted vertex.
// Size: 40 bytes.
type GPUVertex struct {
	Position [4]float32 // offset  0: clip-space position (vec4<f32>)
	Color    [4]float32 // offset 16: tinted RGBA color (vec4<f32>)
	UV       [2]float32 // offset 32: texture coordinate (vec2<f32>)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (40)
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalVertices serializes vertices into a byte buffer suitable for GPU upload.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: the serialized byte buffer
func MarshalVertices(vertices []GPUVertex) []byte {
	const stride = 40
	buf := make([]byte, len(vertices)*stride)
	for i, v := range vertices {
		base := i * stride
		for j := range 4 {
			binary.LittleEndian.PutUint32(buf[base+j*4:], math.Float32bits(v.Position[j]))
		}
		for j := range 4 {
			binary.LittleEndian.PutUint32(buf[base+16+j*4:], math.Float32bits(v.Color[j]))
		}
		for j := range 2 {
			binary.LittleEndian.PutUint32(buf[base+32+j*4:], math.Float32bits(v.UV[j]))
		}
	}
	return buf
}

// GPUVertexLayout is the vertex buffer layout matching GPUVertex.
var GPUVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: 40,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 32, ShaderLocation: 2},
	},
}
