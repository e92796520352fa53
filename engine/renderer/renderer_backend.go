package renderer

import (
	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/renderer/material"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless selects a backend that accepts frames without a GPU.
	BackendTypeHeadless
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// Batch is a run of primitives sharing topology, material, viewport and depth range.
// Quads have already been split into triangles.
type Batch struct {
	Topology   common.PrimitiveType
	Triangles  bool
	Material   material.Material
	Viewport   common.Rect
	DepthRange [2]float32
	Vertices   []GPUVertex
}

// Frame is everything recorded between BeginFrame and EndFrame.
type Frame struct {
	Width, Height int
	Clear         bool
	ClearColor    common.Color
	Batches       []Batch
}

// VertexCount returns the number of vertices across all batches.
func (f Frame) VertexCount() int {
	n := 0
	for i := range f.Batches {
		n += len(f.Batches[i].Vertices)
	}
	return n
}

// RendererBackend turns recorded frames into presented images.
type RendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when the surface size changes,
	// such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Submit encodes and submits a recorded frame.
	// The frame is not presented until Present is called.
	//
	// Parameters:
	//   - frame: the recorded frame
	//
	// Returns:
	//   - error: an error if the frame could not be encoded or submitted
	Submit(frame *Frame) error

	// Present presents the last submitted frame to the display.
	Present()
}
