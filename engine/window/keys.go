package window

import "github.com/go-gl/glfw/v3.3/glfw"

// Key codes carried by KeyPressed.
const (
	KeySpace  = uint32(glfw.KeySpace)
	KeyEscape = uint32(glfw.KeyEscape)
	KeyW      = uint32(glfw.KeyW)
	KeyA      = uint32(glfw.KeyA)
	KeyS      = uint32(glfw.KeyS)
	KeyD      = uint32(glfw.KeyD)
	KeyQ      = uint32(glfw.KeyQ)
	KeyE      = uint32(glfw.KeyE)
)
