package window

// EventCategory groups window events by the part of the engine that handles them.
type EventCategory int

const (
	// CategoryLifecycle covers events that start or stop the application.
	CategoryLifecycle EventCategory = iota
	// CategoryResize covers events that change the drawable size.
	CategoryResize
	// CategoryInput covers keyboard input.
	CategoryInput
)

// Event is a window event. The set of variants is closed: CloseRequested, Resized,
// ScaleFactorChanged and KeyPressed.
type Event interface {
	// Category returns the handler category of the event.
	//
	// Returns:
	//   - EventCategory: the category
	Category() EventCategory

	isEvent()
}

// CloseRequested is emitted when the user asks to close the window.
type CloseRequested struct{}

// Resized is emitted when the framebuffer size changes. Sizes are in pixels.
type Resized struct {
	Width  int
	Height int
}

// ScaleFactorChanged is emitted when the window moves to a display with a different content
// scale. Width and Height are the new framebuffer size in pixels.
type ScaleFactorChanged struct {
	Scale  float32
	Width  int
	Height int
}

// KeyPressed is emitted when a key goes down, and again on key repeat with Repeat set.
type KeyPressed struct {
	Key    uint32
	Repeat bool
}

func (CloseRequested) Category() EventCategory     { return CategoryLifecycle }
func (Resized) Category() EventCategory            { return CategoryResize }
func (ScaleFactorChanged) Category() EventCategory { return CategoryResize }
func (KeyPressed) Category() EventCategory         { return CategoryInput }

func (CloseRequested) isEvent()     {}
func (Resized) isEvent()            {}
func (ScaleFactorChanged) isEvent() {}
func (KeyPressed) isEvent()         {}
