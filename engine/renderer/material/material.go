package material

import "github.com/Carmen-Shannon/legion/common"

const (
	// NameWhite is the flat untextured material used by 2D overlays.
	NameWhite = "vgui/white"

	// NameTerrain is the material world terrain is drawn with.
	NameTerrain = "world/terrain"

	// NameDefault is used when an unknown material is bound.
	NameDefault = "__default"
)

// material is the implementation of the Material interface.
type material struct {
	name       string
	baseColor  [4]float32
	depthTest  bool
	depthWrite bool
	blend      bool
}

// Material describes how bound primitives are shaded and composited.
// Vertex colors are multiplied by the base color before submission.
type Material interface {
	// Name returns the name the material is bound by.
	//
	// Returns:
	//   - string: the material name
	Name() string

	// BaseColor returns the RGBA tint applied to every vertex color.
	//
	// Returns:
	//   - [4]float32: the tint in [0,1]
	BaseColor() [4]float32

	// DepthTest reports whether primitives are tested against the depth buffer.
	DepthTest() bool

	// DepthWrite reports whether primitives write to the depth buffer.
	DepthWrite() bool

	// Blend reports whether primitives are alpha blended.
	Blend() bool

	// Tint multiplies c by the base color.
	//
	// Parameters:
	//   - c: the vertex color
	//
	// Returns:
	//   - [4]float32: the tinted color in [0,1]
	Tint(c common.Color) [4]float32
}

var _ Material = &material{}

// NewMaterial creates a Material. Materials depth test and depth write by default.
//
// Parameters:
//   - name: the name the material is bound by
//   - options: a variadic list of MaterialBuilderOption functions
//
// Returns:
//   - Material: the material
func NewMaterial(name string, options ...MaterialBuilderOption) Material {
	m := &material{
		name:       name,
		baseColor:  [4]float32{1, 1, 1, 1},
		depthTest:  true,
		depthWrite: true,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Builtins returns the materials every renderer starts with.
//
// Returns:
//   - []Material: the default, white overlay and terrain materials
func Builtins() []Material {
	return []Material{
		NewMaterial(NameDefault),
		NewMaterial(NameWhite, WithDepthTest(false), WithDepthWrite(false), WithBlend(true)),
		NewMaterial(NameTerrain),
	}
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) DepthTest() bool {
	return m.depthTest
}

func (m *material) DepthWrite() bool {
	return m.depthWrite
}

func (m *material) Blend() bool {
	return m.blend
}

func (m *material) Tint(c common.Color) [4]float32 {
	f := c.Floats()
	return [4]float32{f[0] * m.baseColor[0], f[1] * m.baseColor[1], f[2] * m.baseColor[2], f[3] * m.baseColor[3]}
}
