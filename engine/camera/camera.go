package camera

import (
	"errors"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoCamera is raised when a camera-bearing entity has no camera state.
var ErrNoCamera = errors.New("camera: entity has no camera")

// State is one camera's kinematic state.
// Angles and AngularVelocity are in degrees and degrees per second.
// Angles may drift outside (-180, 180]; they are normalized wherever a basis is derived.
type State struct {
	Origin          mgl32.Vec3
	Angles          common.Angles
	Velocity        mgl32.Vec3
	AngularVelocity common.Angles
}

// NewState creates a camera State at the world origin facing +X and applies the options in order.
//
// Parameters:
//   - options: functional options to configure the state
//
// Returns:
//   - *State: the new camera state
func NewState(options ...StateBuilderOption) *State {
	s := &State{}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Forward returns the unit vector the camera looks along.
//
// Returns:
//   - mgl32.Vec3: the forward direction in world space
func (s *State) Forward() mgl32.Vec3 {
	forward, _, _ := common.AngleVectors(s.Angles)
	return forward
}

// Basis returns the camera's forward, right and up unit vectors.
//
// Returns:
//   - forward, right, up: the basis in world space
func (s *State) Basis() (forward, right, up mgl32.Vec3) {
	return common.AngleVectors(s.Angles)
}
