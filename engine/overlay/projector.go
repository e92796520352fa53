package overlay

import (
	"github.com/Carmen-Shannon/legion/engine/camera"
	"github.com/Carmen-Shannon/legion/engine/projection"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MinProjectDistance is the closest a point may be to the camera and still be projected.
const MinProjectDistance float32 = 1.0

// Projector maps world points to viewport pixels from the camera basis alone,
// without going through the transform stack.
type Projector interface {
	// Project maps worldPoint to pixel coordinates with (0,0) at the top-left of the viewport.
	// Points closer than MinProjectDistance or behind the camera are rejected.
	//
	// Parameters:
	//   - state: the camera
	//   - worldPoint: the point to project
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	//
	// Returns:
	//   - mgl32.Vec2: the screen point (x right, y down)
	//   - bool: false if the point cannot be drawn
	Project(state *camera.State, worldPoint mgl32.Vec3, width, height int) (mgl32.Vec2, bool)

	// FOV returns the field of view in degrees used for projection.
	FOV() float32
}

// projectorImpl is the implementation of Projector.
type projectorImpl struct {
	fov        float32
	tanHalfFov float32
}

var _ Projector = &projectorImpl{}

// NewProjector creates a Projector using projection.DefaultFOV, the same field of view as the world pass.
//
// Parameters:
//   - options: functional options to configure the projector
//
// Returns:
//   - Projector: the projector
func NewProjector(options ...ProjectorBuilderOption) Projector {
	p := &projectorImpl{fov: projection.DefaultFOV}
	for _, opt := range options {
		opt(p)
	}
	p.tanHalfFov = math32.Tan(p.fov * math32.Pi / 360)
	return p
}

func (p *projectorImpl) Project(state *camera.State, worldPoint mgl32.Vec3, width, height int) (mgl32.Vec2, bool) {
	if state == nil {
		panic(camera.ErrNoCamera)
	}

	toPoint := worldPoint.Sub(state.Origin)
	dist := toPoint.Len()
	if dist < MinProjectDistance {
		return mgl32.Vec2{}, false
	}

	forward, right, up := state.Basis()
	if forward.Dot(toPoint) < 0 {
		return mgl32.Vec2{}, false
	}

	scale := dist * p.tanHalfFov
	x := right.Dot(toPoint) / scale
	y := up.Dot(toPoint) / scale

	return mgl32.Vec2{
		(x*0.5 + 0.5) * float32(width),
		(0.5 - y*0.5) * float32(height),
	}, true
}

func (p *projectorImpl) FOV() float32 {
	return p.fov
}
