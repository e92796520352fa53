package renderer

import "sync"

// HeadlessBackend accepts frames without a GPU. It keeps the last submitted frame
// and running totals so callers can inspect what would have been drawn.
type HeadlessBackend struct {
	mu *sync.Mutex

	width, height int
	presentMode   PresentMode

	last      Frame
	submitted int
	presented int
	vertices  int
}

var _ RendererBackend = &HeadlessBackend{}

// NewHeadlessBackend creates a HeadlessBackend.
//
// Returns:
//   - *HeadlessBackend: the backend
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{mu: &sync.Mutex{}}
}

func (h *HeadlessBackend) ConfigureSurface(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height = width, height
}

func (h *HeadlessBackend) SetPresentMode(mode PresentMode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.presentMode = mode
}

func (h *HeadlessBackend) Submit(frame *Frame) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = *frame
	h.last.Batches = append([]Batch(nil), frame.Batches...)
	h.submitted++
	h.vertices += frame.VertexCount()
	return nil
}

func (h *HeadlessBackend) Present() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.presented++
}

// LastFrame returns a copy of the most recently submitted frame.
//
// Returns:
//   - Frame: the frame
func (h *HeadlessBackend) LastFrame() Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	f := h.last
	f.Batches = append([]Batch(nil), h.last.Batches...)
	return f
}

// Counts returns how many frames were submitted and presented and the total vertices submitted.
func (h *HeadlessBackend) Counts() (submitted, presented, vertices int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.submitted, h.presented, h.vertices
}

// SurfaceSize returns the size last passed to ConfigureSurface.
func (h *HeadlessBackend) SurfaceSize() (width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}
