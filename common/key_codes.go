package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW = 87 // W key (ASCII)
	KeyS = 83 // S key (ASCII)
	KeyE = 69 // E key (ASCII)
	KeyB = 66 // B key (ASCII)
	KeyL = 76 // L key (ASCII)
	KeyR = 82 // R key (ASCII)

	KeyEsc = 256 // Escape key (GLFW)
)

// Arrow keys
const (
	KeyUp   = 265 // Up arrow (GLFW)
	KeyDown = 264 // Down arrow (GLFW)
)
