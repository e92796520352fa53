package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNoFrame is returned when drawing outside BeginFrame/EndFrame.
	ErrNoFrame = errors.New("renderer: no frame in progress")

	// ErrFrameInProgress is returned by BeginFrame when the previous frame was not ended.
	ErrFrameInProgress = errors.New("renderer: frame already in progress")

	// ErrVertexCount is returned when a primitive batch has a vertex count its primitive type cannot use.
	ErrVertexCount = errors.New("renderer: vertex count does not match primitive type")
)

// Surface is the presentation target a Renderer is created for. window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	materials map[string]material.Material
	warned    map[string]bool

	width, height int
	matrices      [common.MatrixModeCount]mgl32.Mat4

	viewport   common.Rect
	depthRange [2]float32
	clearColor common.Color
	bound      material.Material

	inFrame bool
	frame   Frame
	stats   FrameStats

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingMaterials     []material.Material
}

// FrameStats summarizes the last ended frame.
type FrameStats struct {
	Batches  int
	Vertices int
}

// Renderer is the immediate-mode draw API the frame orchestrator, world and overlay draw through.
//
// Primitives are transformed by projection * view * model, as last loaded through LoadMatrix,
// at the time they are submitted. They are batched per material, viewport and depth range and
// handed to the backend when the frame ends.
type Renderer interface {
	// BeginFrame starts recording a frame.
	//
	// Returns:
	//   - error: ErrFrameInProgress if the previous frame was not ended
	BeginFrame() error

	// EndFrame submits the recorded frame to the backend.
	//
	// Returns:
	//   - error: ErrNoFrame outside a frame, or a backend submission error
	EndFrame() error

	// ClearColor sets the color the next ClearBuffers clears to.
	//
	// Parameters:
	//   - c: the clear color
	ClearColor(c common.Color)

	// ClearBuffers clears the color and depth buffers of the current frame.
	ClearBuffers()

	// Viewport sets the pixel rectangle subsequent primitives are drawn into, origin top-left.
	//
	// Parameters:
	//   - x: left edge in pixels
	//   - y: top edge in pixels
	//   - width: width in pixels
	//   - height: height in pixels
	Viewport(x, y, width, height int)

	// DepthRange maps normalized device depth onto [near, far] of the depth buffer.
	//
	// Parameters:
	//   - near: depth for NDC z = 0
	//   - far: depth for NDC z = 1
	DepthRange(near, far float32)

	// RenderTargetDimensions returns the size of the current render target in pixels.
	//
	// Returns:
	//   - int: the width
	//   - int: the height
	RenderTargetDimensions() (int, int)

	// LoadMatrix replaces the matrix used for one transform channel.
	//
	// Parameters:
	//   - mode: the channel
	//   - m: the matrix
	LoadMatrix(mode common.MatrixMode, m mgl32.Mat4)

	// BindMaterial selects the material for subsequent primitives. Unknown names bind the default material.
	//
	// Parameters:
	//   - name: the material name
	BindMaterial(name string)

	// DrawPrimitives submits a batch of lines (2 vertices each) or quads (4 vertices each).
	//
	// Parameters:
	//   - kind: the primitive type
	//   - vertices: the vertices in model space
	//
	// Returns:
	//   - error: ErrNoFrame outside a frame, ErrVertexCount for a partial primitive
	DrawPrimitives(kind common.PrimitiveType, vertices []common.Vertex) error

	// SwapBuffers presents the last submitted frame.
	SwapBuffers()

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Stats returns the batch and vertex counts of the last ended frame.
	//
	// Returns:
	//   - FrameStats: the statistics
	Stats() FrameStats
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given backend type and surface.
// For BackendTypeWGPU the surface descriptor is typically obtained from window.Window.
// For BackendTypeHeadless only the surface size is used; see NewHeadlessSurface.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - surface: the presentation target
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		materials:   make(map[string]material.Material),
		warned:      make(map[string]bool),
		depthRange:  [2]float32{0, 1},
		clearColor:  common.ColorBlack,
	}
	for i := range r.matrices {
		r.matrices[i] = mgl32.Ident4()
	}
	for _, m := range material.Builtins() {
		r.materials[m.Name()] = m
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	for _, m := range r.pendingMaterials {
		r.materials[m.Name()] = m
	}
	r.bound = r.materials[material.NameDefault]

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeHeadless:
			r.backend = NewHeadlessBackend()
		case BackendTypeWGPU:
			fallthrough
		default:
			r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		}
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.width, r.height = surface.Width(), surface.Height()
	r.viewport = common.Rect{Width: r.width, Height: r.height}
	r.backend.ConfigureSurface(r.width, r.height)
	return r
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inFrame {
		return ErrFrameInProgress
	}
	r.inFrame = true
	r.frame = Frame{Width: r.width, Height: r.height, ClearColor: r.clearColor}
	return nil
}

func (r *renderer) EndFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return ErrNoFrame
	}
	r.inFrame = false
	r.stats = FrameStats{Batches: len(r.frame.Batches), Vertices: r.frame.VertexCount()}
	if err := r.backend.Submit(&r.frame); err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}
	return nil
}

func (r *renderer) ClearColor(c common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) ClearBuffers() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return
	}
	// Clearing discards everything recorded so far this frame.
	r.frame.Clear = true
	r.frame.ClearColor = r.clearColor
	r.frame.Batches = r.frame.Batches[:0]
}

func (r *renderer) Viewport(x, y, width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = common.Rect{X: x, Y: y, Width: width, Height: height}
}

func (r *renderer) DepthRange(near, far float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.depthRange = [2]float32{near, far}
}

func (r *renderer) RenderTargetDimensions() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) LoadMatrix(mode common.MatrixMode, m mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mode >= 0 && mode < common.MatrixModeCount {
		r.matrices[mode] = m
	}
}

func (r *renderer) BindMaterial(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.materials[name]
	if !ok {
		if !r.warned[name] {
			log.Printf("[Renderer] unknown material %q, using default", name)
			r.warned[name] = true
		}
		m = r.materials[material.NameDefault]
	}
	r.bound = m
}

func (r *renderer) DrawPrimitives(kind common.PrimitiveType, vertices []common.Vertex) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return ErrNoFrame
	}
	per := 2
	if kind == common.PrimitiveQuads {
		per = 4
	}
	if len(vertices)%per != 0 {
		return fmt.Errorf("%w: %d vertices for %s", ErrVertexCount, len(vertices), kind)
	}
	if len(vertices) == 0 {
		return nil
	}

	mvp := r.matrices[common.MatrixProjection].
		Mul4(r.matrices[common.MatrixView]).
		Mul4(r.matrices[common.MatrixModel])

	batch := r.batchFor(kind)
	convert := func(v common.Vertex) GPUVertex {
		return GPUVertex{
			Position: mvp.Mul4x1(v.Position.Vec4(1)),
			Color:    r.bound.Tint(v.Color),
			UV:       v.TexCoord,
		}
	}
	if kind == common.PrimitiveQuads {
		for i := 0; i < len(vertices); i += 4 {
			a, b, c, d := convert(vertices[i]), convert(vertices[i+1]), convert(vertices[i+2]), convert(vertices[i+3])
			batch.Vertices = append(batch.Vertices, a, b, c, a, c, d)
		}
		return nil
	}
	for _, v := range vertices {
		batch.Vertices = append(batch.Vertices, convert(v))
	}
	return nil
}

// batchFor returns the open batch matching the current state, starting a new one when any state changed.
func (r *renderer) batchFor(kind common.PrimitiveType) *Batch {
	if n := len(r.frame.Batches); n > 0 {
		last := &r.frame.Batches[n-1]
		if last.Topology == kind && last.Material == r.bound && last.Viewport == r.viewport && last.DepthRange == r.depthRange {
			return last
		}
	}
	r.frame.Batches = append(r.frame.Batches, Batch{
		Topology:   kind,
		Triangles:  kind == common.PrimitiveQuads,
		Material:   r.bound,
		Viewport:   r.viewport,
		DepthRange: r.depthRange,
	})
	return &r.frame.Batches[len(r.frame.Batches)-1]
}

func (r *renderer) SwapBuffers() {
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// headlessSurface is a Surface with a size and no native window.
type headlessSurface struct {
	width, height int
}

// NewHeadlessSurface creates a Surface for BackendTypeHeadless renderers.
//
// Parameters:
//   - width: the render target width in pixels
//   - height: the render target height in pixels
//
// Returns:
//   - Surface: the surface
func NewHeadlessSurface(width, height int) Surface {
	return headlessSurface{width: width, height: height}
}

func (s headlessSurface) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (s headlessSurface) Width() int { return s.width }
func (s headlessSurface) Height() int { return s.height }
