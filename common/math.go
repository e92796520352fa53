package common

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FMA32 computes a*b+c without rounding the product. The sum is rounded to float64 and then
// to float32, so a result that lands exactly halfway between two float32 values can differ from
// a native float32 fused multiply-add in the last bit.
//
// Parameters:
//   - a, b: the factors
//   - c: the addend
//
// Returns:
//   - float32: the fused result
func FMA32(a, b, c float32) float32 {
	return float32(math.FMA(float64(a), float64(b), float64(c)))
}

// FMAVec3 computes a*s+c component-wise with fused multiply-adds.
//
// Parameters:
//   - a: the vector to scale
//   - s: the scale factor
//   - c: the vector to add
//
// Returns:
//   - mgl32.Vec3: the fused result
func FMAVec3(a mgl32.Vec3, s float32, c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		FMA32(a[0], s, c[0]),
		FMA32(a[1], s, c[1]),
		FMA32(a[2], s, c[2]),
	}
}

// NormalizeAngle wraps an angle in degrees into the range (-180, 180].
//
// Parameters:
//   - deg: the angle in degrees
//
// Returns:
//   - float32: the wrapped angle
func NormalizeAngle(deg float32) float32 {
	a := math32.Mod(deg, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}

// AngleVectors derives the forward, right and up basis vectors for an orientation.
// At zero angles forward is +X, right is -Y and up is +Z.
//
// Parameters:
//   - a: the orientation in degrees
//
// Returns:
//   - forward, right, up: unit basis vectors in world space
func AngleVectors(a Angles) (forward, right, up mgl32.Vec3) {
	a = a.Normalized()
	sp, cp := math32.Sincos(mgl32.DegToRad(a.Pitch))
	sy, cy := math32.Sincos(mgl32.DegToRad(a.Yaw))
	sr, cr := math32.Sincos(mgl32.DegToRad(a.Roll))

	forward = mgl32.Vec3{cp * cy, cp * sy, -sp}
	right = mgl32.Vec3{
		-sr*sp*cy + cr*sy,
		-sr*sp*sy - cr*cy,
		-sr * cp,
	}
	up = mgl32.Vec3{
		cr*sp*cy + sr*sy,
		cr*sp*sy - sr*cy,
		cr * cp,
	}
	return forward, right, up
}

// AngleMatrix builds the object-to-world transform for an orientation and origin.
// The columns are forward, left and up followed by the origin.
//
// Parameters:
//   - a: the orientation in degrees
//   - origin: the translation
//
// Returns:
//   - mgl32.Mat4: the column-major transform
func AngleMatrix(a Angles, origin mgl32.Vec3) mgl32.Mat4 {
	forward, right, up := AngleVectors(a)
	left := right.Mul(-1)
	return mgl32.Mat4{
		forward[0], forward[1], forward[2], 0,
		left[0], left[1], left[2], 0,
		up[0], up[1], up[2], 0,
		origin[0], origin[1], origin[2], 1,
	}
}

// VectorAngles returns the pitch and yaw that point forward along dir. Roll is zero.
//
// Parameters:
//   - dir: the direction to face (need not be normalized)
//
// Returns:
//   - Angles: the orientation in degrees
func VectorAngles(dir mgl32.Vec3) Angles {
	if dir[0] == 0 && dir[1] == 0 {
		if dir[2] > 0 {
			return Angles{Pitch: 270}
		}
		return Angles{Pitch: 90}
	}

	yaw := mgl32.RadToDeg(math32.Atan2(dir[1], dir[0]))
	if yaw < 0 {
		yaw += 360
	}
	horizontal := math32.Hypot(dir[0], dir[1])
	pitch := mgl32.RadToDeg(math32.Atan2(-dir[2], horizontal))
	if pitch < 0 {
		pitch += 360
	}
	return Angles{Pitch: pitch, Yaw: yaw}
}

// RotationAboutAxis returns a rotation of deg degrees about a unit axis.
//
// Parameters:
//   - axis: the unit rotation axis
//   - deg: the angle in degrees (counter-clockwise looking down the axis)
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func RotationAboutAxis(axis mgl32.Vec3, deg float32) mgl32.Mat4 {
	return mgl32.HomogRotate3D(mgl32.DegToRad(deg), axis)
}

// InvertOrthonormal inverts a rigid transform (rotation plus translation).
// The rotation block is transposed and the translation is rotated back and negated.
//
// Parameters:
//   - m: a transform whose upper 3x3 block is orthonormal
//
// Returns:
//   - mgl32.Mat4: the inverse transform
func InvertOrthonormal(m mgl32.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for col := range 3 {
		for row := range 3 {
			out[col*4+row] = m[row*4+col]
		}
	}
	t := mgl32.Vec3{m[12], m[13], m[14]}
	for row := range 3 {
		out[12+row] = -(out[row]*t[0] + out[4+row]*t[1] + out[8+row]*t[2])
	}
	out[15] = 1
	return out
}
