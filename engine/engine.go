package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/Carmen-Shannon/oxy-quad/engine/profiler"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer"
	"github.com/Carmen-Shannon/oxy-quad/engine/window"
)

// FrameRenderer is the part of renderer.Renderer the event loop drives.
type FrameRenderer interface {
	// Size returns the current surface size in pixels.
	Size() (int, int)

	// Resize reconfigures the surface. Non-positive sizes are ignored.
	Resize(width, height int)

	// SetTexture makes the identified image the active texture.
	SetTexture(identifier string) error

	// MoveCamera translates the camera eye.
	MoveCamera(dx, dy, dz float32) error

	// Draw renders and presents one frame.
	Draw() error
}

// Invalidator forgets cached texture decodes.
type Invalidator interface {
	Invalidate(identifier string)
}

// engine implements the Engine interface.
// It owns the event loop: one Draw per window loop iteration, with window events dispatched
// per category on the same thread.
type engine struct {
	window   window.Window
	renderer FrameRenderer

	cycle      *TextureCycle
	cache      Invalidator
	cameraStep float32
	watch      bool

	wg          sync.WaitGroup
	quitChannel chan struct{}
	quitOnce    sync.Once
	exitCode    atomic.Int32

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool
}

// Engine runs the viewer's event loop.
type Engine interface {
	// Window returns the window the engine drives.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Cycle returns the texture cycle stepped by the Space key.
	//
	// Returns:
	//   - *TextureCycle: the cycle
	Cycle() *TextureCycle

	// EnableProfiler enables periodic frame rate and memory logging.
	EnableProfiler()

	// DisableProfiler disables profiling output.
	DisableProfiler()

	// HandleEvent dispatches one window event to the handler of its category.
	//
	// Parameters:
	//   - ev: the event
	HandleEvent(ev window.Event)

	// Frame draws one frame and applies the surface error policy: a lost surface is
	// reconfigured at the current size, out of memory quits with status 1, anything else
	// drops the frame.
	Frame()

	// Run starts the texture watcher when enabled and blocks in the window loop until Quit is
	// called or the window stops.
	//
	// Returns:
	//   - int: the process exit status
	Run() int

	// Quit stops the event loop with the given exit status. Only the first call has effect.
	//
	// Parameters:
	//   - code: the exit status
	Quit(code int)

	// ExitCode returns the status passed to the first Quit, or 0.
	//
	// Returns:
	//   - int: the exit status
	ExitCode() int

	// Done is closed once Quit has been called.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

var _ Engine = &engine{}

// NewEngine creates an engine driving r inside w.
//
// Parameters:
//   - w: the window providing events and the loop
//   - r: the renderer to draw with
//   - options: functional options for the texture cycle, camera step, watcher and profiling
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w window.Window, r FrameRenderer, options ...EngineBuilderOption) Engine {
	e := &engine{
		window:      w,
		renderer:    r,
		cycle:       NewTextureCycle(nil),
		cameraStep:  0.1,
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(time.Second),
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Cycle() *TextureCycle {
	return e.cycle
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) Run() int {
	e.window.SetEventHandler(e.HandleEvent)
	e.window.SetUpdateCallback(e.Frame)

	if e.watch {
		if err := e.startWatcher(); err != nil {
			common.Logger().Warn("texture watcher disabled", "error", err)
		}
	}

	e.window.ProcessMessages()
	e.Quit(0)
	e.wg.Wait()
	return e.ExitCode()
}

func (e *engine) Quit(code int) {
	e.quitOnce.Do(func() {
		e.exitCode.Store(int32(code))
		close(e.quitChannel)
		e.window.RequestClose()
		common.Logger().Info("quit", "code", code)
	})
}

func (e *engine) ExitCode() int {
	return int(e.exitCode.Load())
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

func (e *engine) Frame() {
	select {
	case <-e.quitChannel:
		return
	default:
	}

	err := e.renderer.Draw()
	switch {
	case err == nil:
		if e.profilingEnabled.Load() {
			e.profiler.Tick()
		}
		return
	case errors.Is(err, renderer.ErrSurfaceLost):
		w, h := e.renderer.Size()
		common.Logger().Debug("surface lost, reconfiguring", "width", w, "height", h)
		e.renderer.Resize(w, h)
	case errors.Is(err, renderer.ErrSurfaceOutOfMemory):
		common.Logger().Error("surface out of memory", "error", err)
		e.Quit(1)
	default:
		common.Logger().Warn("frame dropped", "error", err)
	}
	e.profiler.Drop()
}

func (e *engine) HandleEvent(ev window.Event) {
	switch ev.Category() {
	case window.CategoryLifecycle:
		e.handleLifecycle(ev)
	case window.CategoryResize:
		e.handleResize(ev)
	case window.CategoryInput:
		e.handleInput(ev)
	}
}

func (e *engine) handleLifecycle(ev window.Event) {
	switch ev.(type) {
	case window.CloseRequested:
		e.Quit(0)
	}
}

func (e *engine) handleResize(ev window.Event) {
	switch v := ev.(type) {
	case window.Resized:
		e.renderer.Resize(v.Width, v.Height)
	case window.ScaleFactorChanged:
		e.renderer.Resize(v.Width, v.Height)
	}
}

func (e *engine) handleInput(ev window.Event) {
	key, ok := ev.(window.KeyPressed)
	if !ok {
		return
	}

	step := e.cameraStep
	switch key.Key {
	case window.KeySpace:
		if !key.Repeat {
			e.advanceTexture()
		}
	case window.KeyEscape:
		e.Quit(0)
	case window.KeyW:
		e.moveCamera(0, 0, -step)
	case window.KeyS:
		e.moveCamera(0, 0, step)
	case window.KeyA:
		e.moveCamera(-step, 0, 0)
	case window.KeyD:
		e.moveCamera(step, 0, 0)
	case window.KeyQ:
		e.moveCamera(0, -step, 0)
	case window.KeyE:
		e.moveCamera(0, step, 0)
	}
}

func (e *engine) advanceTexture() {
	next := e.cycle.Advance()
	if next == "" {
		return
	}
	if err := e.renderer.SetTexture(next); err != nil {
		common.Logger().Warn("texture rejected", "texture", next, "error", err)
	}
}

func (e *engine) moveCamera(dx, dy, dz float32) {
	err := e.renderer.MoveCamera(dx, dy, dz)
	switch {
	case err == nil:
	case errors.Is(err, renderer.ErrCameraDisabled):
		common.Logger().Debug("camera move ignored", "error", err)
	default:
		common.Logger().Warn("camera move failed", "error", err)
	}
}
