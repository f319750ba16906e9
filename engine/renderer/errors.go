package renderer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSurfaceLost is returned by Draw when the surface is lost or outdated and must be
	// reconfigured before the next frame.
	ErrSurfaceLost = errors.New("surface lost")

	// ErrSurfaceOutOfMemory is returned by Draw when the GPU could not allocate the next frame.
	ErrSurfaceOutOfMemory = errors.New("surface out of memory")

	// ErrSurfaceOther wraps any other frame acquisition or submission failure. The frame is dropped.
	ErrSurfaceOther = errors.New("surface error")

	// ErrCameraDisabled is returned by camera operations on a renderer built without a camera.
	ErrCameraDisabled = errors.New("camera disabled")

	// ErrInvalidFov is returned by SetCameraFov for angles outside (0, 180) degrees.
	ErrInvalidFov = errors.New("field of view must be in (0, 180) degrees")

	// ErrRendererReleased is returned by operations called after Release.
	ErrRendererReleased = errors.New("renderer released")
)

// StartupError reports a failure while acquiring or configuring the GPU.
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("renderer startup failed at %s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// classifySurfaceError maps a surface texture acquisition failure onto the surface error kinds.
// The native layer only reports the status as text.
func classifySurfaceError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "lost"), strings.Contains(msg, "outdated"):
		return ErrSurfaceLost
	case strings.Contains(msg, "memory"):
		return ErrSurfaceOutOfMemory
	default:
		return fmt.Errorf("%w: %w", ErrSurfaceOther, err)
	}
}
