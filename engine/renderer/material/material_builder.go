package material

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithBaseColor is an option builder that sets the RGBA tint of the material.
//
// Parameters:
//   - color: the tint as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithDepthTest sets whether primitives drawn with the material are depth tested.
//
// Parameters:
//   - enabled: true to depth test
//
// Returns:
//   - MaterialBuilderOption: a function that applies the depth test option to a material
func WithDepthTest(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.depthTest = enabled
	}
}

// WithDepthWrite sets whether primitives drawn with the material write depth.
func WithDepthWrite(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.depthWrite = enabled
	}
}

// WithBlend sets whether primitives drawn with the material are alpha blended.
//
// Parameters:
//   - enabled: true to alpha blend
//
// Returns:
//   - MaterialBuilderOption: a function that applies the blend option to a material
func WithBlend(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.blend = enabled
	}
}
