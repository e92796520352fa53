package transform

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/go-gl/mathgl/mgl32"
)

type recordingSink struct {
	loads []common.MatrixMode
	last  [common.MatrixModeCount]mgl32.Mat4
}

func (r *recordingSink) LoadMatrix(mode common.MatrixMode, m mgl32.Mat4) {
	r.loads = append(r.loads, mode)
	r.last[mode] = m
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("recovered %v, want %v", r, target)
		}
	}()
	fn()
}

func TestPushPopRestoresExactMatrix(t *testing.T) {
	s := NewStack()
	base := mgl32.Translate3D(1.25, -7, 3).Mul4(mgl32.HomogRotate3DZ(0.3))

	for _, mode := range AllChannels {
		s.LoadMatrix(mode, base)
		s.Push(mode)
		s.LoadMatrix(mode, mgl32.Scale3D(2, 2, 2).Mul4(mgl32.Translate3D(5, 5, 5)))
		s.Pop(mode)
		if got := s.Top(mode); got != base {
			t.Fatalf("%s: top after pop = %v, want %v", mode, got, base)
		}
	}
}

func TestNewStackStartsAtIdentity(t *testing.T) {
	s := NewStack()
	for _, mode := range AllChannels {
		if s.Depth(mode) != 1 {
			t.Fatalf("%s depth = %d, want 1", mode, s.Depth(mode))
		}
		if s.Top(mode) != mgl32.Ident4() {
			t.Fatalf("%s top is not identity", mode)
		}
	}
}

func TestPopUnderflowPanics(t *testing.T) {
	s := NewStack()
	expectPanic(t, ErrStackUnderflow, func() { s.Pop(common.MatrixModel) })
}

func TestPushOverflowPanics(t *testing.T) {
	s := NewStack(WithMaxDepth(3))
	s.Push(common.MatrixView)
	s.Push(common.MatrixView)
	expectPanic(t, ErrStackOverflow, func() { s.Push(common.MatrixView) })
}

func TestScopeReleasesInReverse(t *testing.T) {
	sink := &recordingSink{}
	s := NewStack(WithSink(sink))
	before := s.Depths()

	release := s.Scope(AllChannels...)
	if got := s.Depths(); got != (Depths{2, 2, 2}) {
		t.Fatalf("depths inside scope = %v", got)
	}
	s.LoadIdentity(common.MatrixModel)
	sink.loads = nil

	release()
	release()

	if got := s.Depths(); got != before {
		t.Fatalf("depths after release = %v, want %v", got, before)
	}
	want := []common.MatrixMode{common.MatrixModel, common.MatrixView, common.MatrixProjection}
	if len(sink.loads) != len(want) {
		t.Fatalf("sink saw %v, want %v", sink.loads, want)
	}
	for i := range want {
		if sink.loads[i] != want[i] {
			t.Fatalf("sink saw %v, want %v", sink.loads, want)
		}
	}
}

func TestScopeRestoresDepthOnPanic(t *testing.T) {
	s := NewStack()
	before := s.Depths()

	func() {
		defer func() { _ = recover() }()
		release := s.Scope(common.MatrixProjection, common.MatrixView)
		defer release()
		panic("draw failed")
	}()

	if got := s.Depths(); got != before {
		t.Fatalf("depths after panic = %v, want %v", got, before)
	}
}

func TestCheck(t *testing.T) {
	s := NewStack()
	start := s.Depths()
	s.Check(start)

	s.Push(common.MatrixModel)
	expectPanic(t, ErrUnbalanced, func() { s.Check(start) })
}

func TestSinkReceivesLoads(t *testing.T) {
	sink := &recordingSink{}
	s := NewStack(WithSink(sink))

	m := mgl32.Translate3D(1, 2, 3)
	s.LoadMatrix(common.MatrixView, m)
	if sink.last[common.MatrixView] != m {
		t.Fatalf("sink view = %v, want %v", sink.last[common.MatrixView], m)
	}
	s.Push(common.MatrixView)
	s.LoadIdentity(common.MatrixView)
	s.Pop(common.MatrixView)
	if sink.last[common.MatrixView] != m {
		t.Fatalf("sink was not given the restored matrix after pop")
	}
}

func TestCombined(t *testing.T) {
	s := NewStack()
	p := mgl32.Scale3D(2, 2, 1)
	v := mgl32.Translate3D(0, 0, -5)
	m := mgl32.HomogRotate3DY(0.5)
	s.LoadMatrix(common.MatrixProjection, p)
	s.LoadMatrix(common.MatrixView, v)
	s.LoadMatrix(common.MatrixModel, m)

	if got, want := s.Combined(), p.Mul4(v).Mul4(m); got != want {
		t.Fatalf("Combined = %v, want %v", got, want)
	}
}

func TestPeakDepth(t *testing.T) {
	s := NewStack()
	release := s.Scope(common.MatrixModel)
	inner := s.Scope(common.MatrixModel)
	inner()
	release()

	if s.PeakDepth() != 3 {
		t.Fatalf("PeakDepth = %d, want 3", s.PeakDepth())
	}
	s.ResetPeak()
	if s.PeakDepth() != 1 {
		t.Fatalf("PeakDepth after reset = %d, want 1", s.PeakDepth())
	}
}
