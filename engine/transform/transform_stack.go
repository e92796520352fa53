package transform

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl32/matstack"
)

var (
	// ErrStackUnderflow is raised when Pop is called at a channel's minimum depth.
	ErrStackUnderflow = errors.New("transform: pop at minimum depth")

	// ErrStackOverflow is raised when Push would exceed the maximum depth.
	ErrStackOverflow = errors.New("transform: push past maximum depth")

	// ErrUnbalanced is raised when a pass leaves a channel at a different depth than it started.
	ErrUnbalanced = errors.New("transform: unbalanced stack")
)

// AllChannels lists every channel in push order.
var AllChannels = []common.MatrixMode{common.MatrixProjection, common.MatrixView, common.MatrixModel}

// Depths records the depth of every channel, indexed by common.MatrixMode.
type Depths [common.MatrixModeCount]int

// Sink receives the new top of a channel whenever it changes.
type Sink interface {
	// LoadMatrix replaces the sink's current matrix for a channel.
	//
	// Parameters:
	//   - mode: the channel that changed
	//   - m: the channel's new top matrix
	LoadMatrix(mode common.MatrixMode, m mgl32.Mat4)
}

// Stack is a save/restore stack of 4x4 transforms per channel (projection, view, model).
// Each channel starts with a single identity entry. Unbalanced use panics: a stack left at the
// wrong depth would silently corrupt every later frame.
type Stack interface {
	// Push duplicates the top of a channel.
	//
	// Parameters:
	//   - mode: the channel
	Push(mode common.MatrixMode)

	// Pop discards the top of a channel, making the previous entry current.
	// Popping the last entry panics with ErrStackUnderflow.
	//
	// Parameters:
	//   - mode: the channel
	Pop(mode common.MatrixMode)

	// LoadIdentity replaces the top of a channel with the identity.
	//
	// Parameters:
	//   - mode: the channel
	LoadIdentity(mode common.MatrixMode)

	// LoadMatrix replaces the top of a channel with m.
	//
	// Parameters:
	//   - mode: the channel
	//   - m: the new matrix
	LoadMatrix(mode common.MatrixMode, m mgl32.Mat4)

	// Top returns the current matrix of a channel.
	//
	// Parameters:
	//   - mode: the channel
	//
	// Returns:
	//   - mgl32.Mat4: the top entry
	Top(mode common.MatrixMode) mgl32.Mat4

	// Depth returns the number of entries on a channel (at least 1).
	//
	// Parameters:
	//   - mode: the channel
	//
	// Returns:
	//   - int: the depth
	Depth(mode common.MatrixMode) int

	// Depths returns the depth of every channel.
	//
	// Returns:
	//   - Depths: per-channel depths
	Depths() Depths

	// Scope pushes each channel and returns a release function that pops them in reverse order.
	// Defer the release so early returns and panics restore the depth. Calling it twice is a no-op.
	//
	// Parameters:
	//   - modes: the channels to save
	//
	// Returns:
	//   - func(): the release function
	Scope(modes ...common.MatrixMode) func()

	// Check panics with ErrUnbalanced if any channel's depth differs from expected.
	//
	// Parameters:
	//   - expected: the depths recorded before the pass
	Check(expected Depths)

	// Combined returns projection * view * model.
	//
	// Returns:
	//   - mgl32.Mat4: the concatenated transform
	Combined() mgl32.Mat4

	// PeakDepth returns the largest channel depth seen since the last ResetPeak.
	//
	// Returns:
	//   - int: the peak depth
	PeakDepth() int

	// ResetPeak clears the peak depth to the current maximum depth.
	ResetPeak()
}

// stackImpl is the implementation of Stack.
type stackImpl struct {
	channels [common.MatrixModeCount]*matstack.MatStack
	sink     Sink
	maxDepth int
	peak     int
}

var _ Stack = &stackImpl{}

// NewStack creates a Stack with identity on every channel.
//
// Parameters:
//   - options: functional options to configure the stack
//
// Returns:
//   - Stack: the new stack
func NewStack(options ...StackBuilderOption) Stack {
	s := &stackImpl{
		maxDepth: 32,
		peak:     1,
	}
	for i := range s.channels {
		s.channels[i] = matstack.NewMatStack()
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *stackImpl) Push(mode common.MatrixMode) {
	ms := s.channel(mode)
	if len(*ms) >= s.maxDepth {
		panic(fmt.Errorf("push %s at depth %d: %w", mode, len(*ms), ErrStackOverflow))
	}
	ms.Push()
	s.peak = max(s.peak, len(*ms))
}

func (s *stackImpl) Pop(mode common.MatrixMode) {
	ms := s.channel(mode)
	if err := ms.Pop(); err != nil {
		panic(fmt.Errorf("pop %s: %w", mode, ErrStackUnderflow))
	}
	s.forward(mode)
}

func (s *stackImpl) LoadIdentity(mode common.MatrixMode) {
	s.channel(mode).LoadIdent()
	s.forward(mode)
}

func (s *stackImpl) LoadMatrix(mode common.MatrixMode, m mgl32.Mat4) {
	s.channel(mode).Load(m)
	s.forward(mode)
}

func (s *stackImpl) Top(mode common.MatrixMode) mgl32.Mat4 {
	return s.channel(mode).Peek()
}

func (s *stackImpl) Depth(mode common.MatrixMode) int {
	return len(*s.channel(mode))
}

func (s *stackImpl) Depths() Depths {
	var d Depths
	for i, ms := range s.channels {
		d[i] = len(*ms)
	}
	return d
}

func (s *stackImpl) Scope(modes ...common.MatrixMode) func() {
	pushed := make([]common.MatrixMode, 0, len(modes))
	for _, mode := range modes {
		s.Push(mode)
		pushed = append(pushed, mode)
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		for i := len(pushed) - 1; i >= 0; i-- {
			s.Pop(pushed[i])
		}
	}
}

func (s *stackImpl) Check(expected Depths) {
	if got := s.Depths(); got != expected {
		panic(fmt.Errorf("depths %v, expected %v: %w", got, expected, ErrUnbalanced))
	}
}

func (s *stackImpl) Combined() mgl32.Mat4 {
	return s.Top(common.MatrixProjection).
		Mul4(s.Top(common.MatrixView)).
		Mul4(s.Top(common.MatrixModel))
}

func (s *stackImpl) PeakDepth() int {
	return s.peak
}

func (s *stackImpl) ResetPeak() {
	s.peak = 1
	for _, ms := range s.channels {
		s.peak = max(s.peak, len(*ms))
	}
}

// channel returns the matrix stack for mode, panicking on an invalid channel.
func (s *stackImpl) channel(mode common.MatrixMode) *matstack.MatStack {
	if mode < 0 || mode >= common.MatrixModeCount {
		panic(fmt.Errorf("transform: invalid channel %d", mode))
	}
	return s.channels[mode]
}

// forward sends the current top of mode to the sink, if one is attached.
func (s *stackImpl) forward(mode common.MatrixMode) {
	if s.sink != nil {
		s.sink.LoadMatrix(mode, s.channels[mode].Peek())
	}
}
