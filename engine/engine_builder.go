package engine

import (
	"time"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/renderer"
	"github.com/Carmen-Shannon/legion/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfileInterval sets how often the profiler logs a report.
//
// Parameters:
//   - interval: the reporting interval (default 1s)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfileInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler.SetInterval(interval)
	}
}

// WithManagers appends managers to the ordered manager list.
// Registration order is init, level init and update order; shutdown runs in reverse.
//
// Parameters:
//   - managers: the managers to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithManagers(managers ...common.Manager) EngineBuilderOption {
	return func(e *engine) {
		e.managers = append(e.managers, managers...)
	}
}

// WithWindow sets the window frames are presented to. Without one the engine runs headless.
//
// Parameters:
//   - w: a created Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer resized when the window's framebuffer changes size.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the frame loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithLevelPollInterval sets the pause between level init and shutdown polls.
//
// Parameters:
//   - interval: the pause; non-positive values keep the default
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLevelPollInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		if interval > 0 {
			e.levelPollInterval = interval
		}
	}
}
