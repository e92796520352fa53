package overlay

// ProjectorBuilderOption is a functional option for configuring a Projector.
type ProjectorBuilderOption func(*projectorImpl)

// WithFOV overrides the projection field of view in degrees. Values outside (0, 180) are ignored.
//
// Parameters:
//   - fov: the field of view in degrees
//
// Returns:
//   - ProjectorBuilderOption: option function to apply
func WithFOV(fov float32) ProjectorBuilderOption {
	return func(p *projectorImpl) {
		if fov > 0 && fov < 180 {
			p.fov = fov
		}
	}
}
