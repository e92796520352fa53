package projection

import (
	"github.com/Carmen-Shannon/legion/common"
	"github.com/Carmen-Shannon/legion/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	axisUp      = mgl32.Vec3{0, 0, 1}
	axisForward = mgl32.Vec3{1, 0, 0}

	// axisRemap turns the camera's (forward, left, up) frame into the renderer's
	// (right, up, back) frame so the view looks down -Z.
	axisRemap = common.RotationAboutAxis(axisUp, -90).Mul4(common.RotationAboutAxis(axisForward, 90))
)

// CameraToWorld returns the camera-to-world transform of state in renderer axes:
// the angle matrix at the camera origin followed by the fixed axis remap.
//
// Parameters:
//   - state: the camera
//
// Returns:
//   - mgl32.Mat4: the camera-to-world transform
func CameraToWorld(state *camera.State) mgl32.Mat4 {
	if state == nil {
		panic(camera.ErrNoCamera)
	}
	return common.AngleMatrix(state.Angles, state.Origin).Mul4(axisRemap)
}

// BuildView returns the world-to-camera matrix for state.
//
// Parameters:
//   - state: the camera
//
// Returns:
//   - mgl32.Mat4: the view matrix
func BuildView(state *camera.State) mgl32.Mat4 {
	return common.InvertOrthonormal(CameraToWorld(state))
}
