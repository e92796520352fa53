package common

import "github.com/go-gl/mathgl/mgl32"

// Angles is an orientation in degrees: pitch about the left axis, yaw about up and roll about forward.
type Angles struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

// Vec3 returns the angles as (pitch, yaw, roll).
func (a Angles) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{a.Pitch, a.Yaw, a.Roll}
}

// Normalized returns a copy with every component wrapped into (-180, 180].
func (a Angles) Normalized() Angles {
	return Angles{
		Pitch: NormalizeAngle(a.Pitch),
		Yaw:   NormalizeAngle(a.Yaw),
		Roll:  NormalizeAngle(a.Roll),
	}
}

// AnglesFromVec3 builds Angles from a (pitch, yaw, roll) vector.
func AnglesFromVec3(v mgl32.Vec3) Angles {
	return Angles{Pitch: v[0], Yaw: v[1], Roll: v[2]}
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Floats returns the color as normalized float components.
func (c Color) Floats() [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

var (
	ColorBlack = Color{0, 0, 0, 255}
	ColorRed   = Color{255, 0, 0, 255}
	ColorGreen = Color{0, 255, 0, 255}
	ColorWhite = Color{255, 255, 255, 255}
)

// Rect is an integer pixel rectangle with its origin at the top-left.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Center returns the rectangle's center point in pixels.
func (r Rect) Center() mgl32.Vec2 {
	return mgl32.Vec2{float32(r.X) + float32(r.Width)/2, float32(r.Y) + float32(r.Height)/2}
}

// Viewport is the rectangle the world pass renders into.
// When Fullscreen is set the rectangle tracks the render target every frame.
type Viewport struct {
	Rect
	Fullscreen bool
}

// PrimitiveType selects how a batch of vertices is assembled.
type PrimitiveType int

const (
	// PrimitiveLines draws independent segments, two vertices each.
	PrimitiveLines PrimitiveType = iota

	// PrimitiveQuads draws filled quads, four vertices each in winding order.
	PrimitiveQuads
)

// String returns a readable primitive name.
func (p PrimitiveType) String() string {
	switch p {
	case PrimitiveLines:
		return "lines"
	case PrimitiveQuads:
		return "quads"
	default:
		return "unknown"
	}
}

// Vertex is a single submitted vertex.
type Vertex struct {
	Position mgl32.Vec3
	Color    Color
	TexCoord mgl32.Vec2
}

// MatrixMode names one transform channel.
type MatrixMode int

const (
	MatrixProjection MatrixMode = iota
	MatrixView
	MatrixModel

	// MatrixModeCount is the number of channels.
	MatrixModeCount
)

// String returns a readable channel name.
func (m MatrixMode) String() string {
	switch m {
	case MatrixProjection:
		return "projection"
	case MatrixView:
		return "view"
	case MatrixModel:
		return "model"
	default:
		return "unknown"
	}
}

// AnnotatedEntity is a world entity the overlay may mark.
type AnnotatedEntity struct {
	ID      int
	Origin  mgl32.Vec3
	Name    string
	Hostile bool
}
