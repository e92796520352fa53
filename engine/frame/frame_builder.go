package frame

import (
	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/camera"
	"github.com/Carmen-Shannon/legion/engine/config"
	"github.com/Carmen-Shannon/legion/engine/overlay"
	"github.com/Carmen-Shannon/legion/engine/projection"
	"github.com/Carmen-Shannon/legion/engine/transform"
)

// OrchestratorBuilderOption is a functional option for configuring an Orchestrator.
type OrchestratorBuilderOption func(*orchestrator)

// WithConfigSource sets where the FOV and, unless WithOverlay is given, the overlay toggles are read from.
//
// Parameters:
//   - source: the configuration source
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithConfigSource(source config.Source) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		if source != nil {
			o.source = source
		}
	}
}

// WithOverlay sets the overlay renderer run inside the world pass.
//
// Parameters:
//   - r: the overlay renderer
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithOverlay(r overlay.Renderer) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		o.overlay = r
	}
}

// WithIntegrator replaces the camera integrator.
//
// Parameters:
//   - integrator: the integrator advancing the player camera every in-level frame
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithIntegrator(integrator camera.Integrator) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		o.integrator = integrator
	}
}

// WithProjectionBuilder sets the builder used for the world pass perspective and the UI projection.
//
// Parameters:
//   - builder: the projection builder
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithProjectionBuilder(builder projection.Builder) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		o.projector = builder
	}
}

// WithStack sets the transform stack. The stack should forward loaded matrices to the device.
//
// Parameters:
//   - stack: the transform stack
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithStack(stack transform.Stack) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		o.stack = stack
	}
}

// WithUI sets the UI pass drawn last in every frame.
//
// Parameters:
//   - ui: the UI
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithUI(ui UI) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		o.ui = ui
	}
}

// WithViewportRect starts the world pass confined to rect instead of fullscreen.
//
// Parameters:
//   - rect: the viewport rectangle in pixels
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithViewportRect(rect common.Rect) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		o.viewport = common.Viewport{Rect: rect}
	}
}
