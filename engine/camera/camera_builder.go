package camera

import (
	"github.com/Carmen-Shannon/legion/common"
	"github.com/go-gl/mathgl/mgl32"
)

// StateBuilderOption is a functional option for configuring a camera State.
type StateBuilderOption func(*State)

// WithOrigin sets the camera's world-space position.
//
// Parameters:
//   - origin: the position
//
// Returns:
//   - StateBuilderOption: a function that sets the origin
func WithOrigin(origin mgl32.Vec3) StateBuilderOption {
	return func(s *State) {
		s.Origin = origin
	}
}

// WithAngles sets the camera's orientation in degrees.
//
// Parameters:
//   - angles: pitch, yaw and roll
//
// Returns:
//   - StateBuilderOption: a function that sets the orientation
func WithAngles(angles common.Angles) StateBuilderOption {
	return func(s *State) {
		s.Angles = angles
	}
}

// WithVelocity sets the initial linear velocity in units per second.
//
// Parameters:
//   - v: the velocity
//
// Returns:
//   - StateBuilderOption: a function that sets the velocity
func WithVelocity(v mgl32.Vec3) StateBuilderOption {
	return func(s *State) {
		s.Velocity = v
	}
}

// WithAngularVelocity sets the initial angular velocity in degrees per second.
//
// Parameters:
//   - w: the angular velocity
//
// Returns:
//   - StateBuilderOption: a function that sets the angular velocity
func WithAngularVelocity(w common.Angles) StateBuilderOption {
	return func(s *State) {
		s.AngularVelocity = w
	}
}

// WithLookAt places the camera distance units back from target along dir, facing along dir.
//
// Parameters:
//   - target: the point to look at
//   - dir: the viewing direction (need not be normalized)
//   - distance: how far behind target the camera sits
//
// Returns:
//   - StateBuilderOption: a function that sets origin and orientation
func WithLookAt(target, dir mgl32.Vec3, distance float32) StateBuilderOption {
	return func(s *State) {
		d := dir.Normalize()
		s.Origin = target.Sub(d.Mul(distance))
		s.Angles = common.VectorAngles(d)
	}
}
