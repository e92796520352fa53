package projection

// BuilderOption is a functional option for configuring a projection Builder.
type BuilderOption func(*builderImpl)

// WithNear sets the near clip distance. Non-positive values are ignored.
//
// Parameters:
//   - near: the near plane distance
//
// Returns:
//   - BuilderOption: option function to apply
func WithNear(near float32) BuilderOption {
	return func(b *builderImpl) {
		if near > 0 {
			b.near = near
		}
	}
}

// WithFar sets the far clip distance. Non-positive values are ignored.
//
// Parameters:
//   - far: the far plane distance
//
// Returns:
//   - BuilderOption: option function to apply
func WithFar(far float32) BuilderOption {
	return func(b *builderImpl) {
		if far > 0 {
			b.far = far
		}
	}
}
