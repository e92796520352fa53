package projection

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultNear is the near clip distance of the world pass.
	DefaultNear float32 = 0.1

	// DefaultFar is the far clip distance of the world pass.
	DefaultFar float32 = 10000.0

	// DegenerateAspect replaces width/height when the height is zero.
	DegenerateAspect float32 = 100.0

	// DefaultFOV is the horizontal field of view in degrees shared by the world pass and the overlay.
	DefaultFOV float32 = 90.0
)

// Builder derives projection matrices for the world and overlay passes.
// Matrices are column-major, look down -Z in view space and map depth to [0, 1].
type Builder interface {
	// Perspective returns the world pass projection.
	// aspect = width/height, or DegenerateAspect when height is zero;
	// halfWidth = tan(fov/2) and halfHeight = halfWidth/aspect.
	//
	// Parameters:
	//   - width: render target width in pixels
	//   - height: render target height in pixels
	//   - fovDegrees: horizontal field of view in degrees
	//
	// Returns:
	//   - mgl32.Mat4: the perspective matrix
	Perspective(width, height int, fovDegrees float32) mgl32.Mat4

	// Orthographic returns the overlay projection mapping [0,width]x[0,height] pixels
	// (y down) to clip space with near -1 and far 1.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	//
	// Returns:
	//   - mgl32.Mat4: the orthographic matrix
	Orthographic(width, height int) mgl32.Mat4

	// Near returns the near clip distance.
	Near() float32

	// Far returns the far clip distance.
	Far() float32
}

// builderImpl is the implementation of Builder.
type builderImpl struct {
	near float32
	far  float32
}

var _ Builder = &builderImpl{}

// NewBuilder creates a projection Builder using DefaultNear and DefaultFar unless overridden.
//
// Parameters:
//   - options: functional options to configure the builder
//
// Returns:
//   - Builder: the builder
func NewBuilder(options ...BuilderOption) Builder {
	b := &builderImpl{
		near: DefaultNear,
		far:  DefaultFar,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *builderImpl) Perspective(width, height int, fovDegrees float32) mgl32.Mat4 {
	aspect := DegenerateAspect
	if height != 0 {
		aspect = float32(width) / float32(height)
	}
	halfWidth := math32.Tan(fovDegrees * math32.Pi / 360)
	halfHeight := halfWidth / aspect

	var m mgl32.Mat4
	m[0] = 1 / halfWidth
	m[5] = 1 / halfHeight
	m[10] = b.far / (b.near - b.far)
	m[11] = -1
	m[14] = b.near * b.far / (b.near - b.far)
	return m
}

func (b *builderImpl) Orthographic(width, height int) mgl32.Mat4 {
	return mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

func (b *builderImpl) Near() float32 {
	return b.near
}

func (b *builderImpl) Far() float32 {
	return b.far
}

var defaultBuilder = NewBuilder()

// BuildPerspective is Perspective on a Builder with the default clip planes.
func BuildPerspective(width, height int, fovDegrees float32) mgl32.Mat4 {
	return defaultBuilder.Perspective(width, height, fovDegrees)
}

// BuildOrthographic is Orthographic on a Builder with the default clip planes.
func BuildOrthographic(width, height int) mgl32.Mat4 {
	return defaultBuilder.Orthographic(width, height)
}
