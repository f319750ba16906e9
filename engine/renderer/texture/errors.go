package texture

import "fmt"

// DecodeError reports that source bytes could not be turned into an RGBA8 pixel buffer.
type DecodeError struct {
	// Source identifies the image (usually its path).
	Source string
	// Err is the underlying read or decode failure.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("texture: failed to decode %q: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InvalidDimensionsError reports a pixel buffer whose size cannot back a GPU texture,
// such as a zero width or height, or a byte count that disagrees with width*height*4.
type InvalidDimensionsError struct {
	Source string
	Width  uint32
	Height uint32
	Bytes  int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("texture: %q has invalid dimensions %dx%d (%d bytes)", e.Source, e.Width, e.Height, e.Bytes)
}
