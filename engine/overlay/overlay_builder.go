package overlay

import "github.com/Carmen-Shannon/legion/engine/config"

// RendererBuilderOption is a functional option for configuring an overlay Renderer.
type RendererBuilderOption func(*rendererImpl)

// WithConfigSource sets where the overlay reads its toggles and box size from.
//
// Parameters:
//   - source: the configuration source
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithConfigSource(source config.Source) RendererBuilderOption {
	return func(r *rendererImpl) {
		if source != nil {
			r.source = source
		}
	}
}

// WithProjector replaces the default projector.
//
// Parameters:
//   - projector: the projector used to place markers
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithProjector(projector Projector) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.projector = projector
	}
}

// WithMaterial overrides the material bound before the overlay is drawn.
func WithMaterial(name string) RendererBuilderOption {
	return func(r *rendererImpl) {
		if name != "" {
			r.material = name
		}
	}
}
