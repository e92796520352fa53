package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/legion/common"
)

// Integrator advances camera state through time.
type Integrator interface {
	// Advance applies origin += velocity*dt and angles += angularVelocity*dt in place.
	// Both updates use fused multiply-adds. A dt of zero leaves the state untouched.
	// Call at most once per frame, after that frame's movement commands.
	//
	// Parameters:
	//   - state: the camera to advance; nil is a fatal error
	//   - dt: elapsed frame time in seconds
	Advance(state *State, dt float32)
}

// eulerIntegrator is a semi-implicit Euler step with constant velocity over the frame.
type eulerIntegrator struct{}

var _ Integrator = &eulerIntegrator{}

// NewIntegrator creates the default camera Integrator.
//
// Returns:
//   - Integrator: the integrator
func NewIntegrator() Integrator {
	return &eulerIntegrator{}
}

func (e *eulerIntegrator) Advance(state *State, dt float32) {
	if state == nil {
		panic(fmt.Errorf("advance: %w", ErrNoCamera))
	}
	if dt <= 0 {
		return
	}

	state.Origin = common.FMAVec3(state.Velocity, dt, state.Origin)
	state.Angles = common.AnglesFromVec3(common.FMAVec3(state.AngularVelocity.Vec3(), dt, state.Angles.Vec3()))
}
