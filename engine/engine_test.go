package engine

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-quad/engine/renderer"
	"github.com/Carmen-Shannon/oxy-quad/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	mu       sync.Mutex
	closed   bool
	onUpdate func()
	onEvent  func(window.Event)
	maxLoops int
}

func (w *fakeWindow) SetUpdateCallback(callback func())          { w.onUpdate = callback }
func (w *fakeWindow) SetEventHandler(handler func(window.Event)) { w.onEvent = handler }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) Close() error                               { w.RequestClose(); return nil }
func (w *fakeWindow) Width() int                                 { return 800 }
func (w *fakeWindow) Height() int                                { return 600 }

func (w *fakeWindow) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed
}

func (w *fakeWindow) RequestClose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

func (w *fakeWindow) ProcessMessages() {
	for i := 0; w.IsRunning() && i < w.maxLoops; i++ {
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

type fakeRenderer struct {
	mu       sync.Mutex
	width    int
	height   int
	resizes  [][2]int
	textures []string
	moves    [][3]float32
	draws    int

	drawErrs   []error
	textureErr error
	moveErr    error
}

func (r *fakeRenderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *fakeRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resizes = append(r.resizes, [2]int{width, height})
}

func (r *fakeRenderer) SetTexture(identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textures = append(r.textures, identifier)
	return r.textureErr
}

func (r *fakeRenderer) MoveCamera(dx, dy, dz float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.moveErr != nil {
		return r.moveErr
	}
	r.moves = append(r.moves, [3]float32{dx, dy, dz})
	return nil
}

func (r *fakeRenderer) Draw() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws++
	if len(r.drawErrs) == 0 {
		return nil
	}
	err := r.drawErrs[0]
	r.drawErrs = r.drawErrs[1:]
	return err
}

func (r *fakeRenderer) textureCalls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.textures...)
}

type recordingCache struct {
	invalidated []string
}

func (c *recordingCache) Invalidate(identifier string) {
	c.invalidated = append(c.invalidated, identifier)
}

func newTestEngine(r *fakeRenderer, options ...EngineBuilderOption) (*engine, *fakeWindow) {
	w := &fakeWindow{maxLoops: 100}
	return NewEngine(w, r, options...).(*engine), w
}

func TestSpaceAdvancesTextureWithWrap(t *testing.T) {
	r := &fakeRenderer{}
	e, _ := newTestEngine(r, WithTextureCycle(NewTextureCycle([]string{"a.png", "b.png", "c.png"})))

	for range 4 {
		e.HandleEvent(window.KeyPressed{Key: window.KeySpace})
	}
	e.HandleEvent(window.KeyPressed{Key: window.KeySpace, Repeat: true})

	assert.Equal(t, []string{"b.png", "c.png", "a.png", "b.png"}, r.textures)
	assert.Equal(t, 1, e.Cycle().Index())
}

func TestRejectedTextureStillAdvances(t *testing.T) {
	r := &fakeRenderer{textureErr: errors.New("decode")}
	e, _ := newTestEngine(r, WithTextureCycle(NewTextureCycle([]string{"a.png", "b.png"})))

	e.HandleEvent(window.KeyPressed{Key: window.KeySpace})
	assert.Equal(t, "b.png", e.Cycle().Current())
	assert.Zero(t, e.ExitCode())
}

func TestResizeEvents(t *testing.T) {
	r := &fakeRenderer{}
	e, _ := newTestEngine(r)

	e.HandleEvent(window.Resized{Width: 1024, Height: 768})
	e.HandleEvent(window.ScaleFactorChanged{Scale: 2, Width: 2048, Height: 1536})

	assert.Equal(t, [][2]int{{1024, 768}, {2048, 1536}}, r.resizes)
}

func TestCameraKeys(t *testing.T) {
	r := &fakeRenderer{}
	e, _ := newTestEngine(r, WithCameraStep(0.5))

	for _, k := range []uint32{window.KeyW, window.KeyS, window.KeyA, window.KeyD, window.KeyQ, window.KeyE} {
		e.HandleEvent(window.KeyPressed{Key: k})
	}
	e.HandleEvent(window.KeyPressed{Key: window.KeyW, Repeat: true})

	assert.Equal(t, [][3]float32{
		{0, 0, -0.5},
		{0, 0, 0.5},
		{-0.5, 0, 0},
		{0.5, 0, 0},
		{0, -0.5, 0},
		{0, 0.5, 0},
		{0, 0, -0.5},
	}, r.moves)
}

func TestCameraKeysWithoutCamera(t *testing.T) {
	r := &fakeRenderer{moveErr: renderer.ErrCameraDisabled}
	e, _ := newTestEngine(r)

	e.HandleEvent(window.KeyPressed{Key: window.KeyW})
	assert.Empty(t, r.moves)
	assert.Zero(t, e.ExitCode())
}

func TestQuitEvents(t *testing.T) {
	tests := []struct {
		name  string
		event window.Event
	}{
		{"close requested", window.CloseRequested{}},
		{"escape", window.KeyPressed{Key: window.KeyEscape}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, w := newTestEngine(&fakeRenderer{})
			e.HandleEvent(tt.event)

			assert.False(t, w.IsRunning())
			assert.Equal(t, 0, e.ExitCode())
			select {
			case <-e.Done():
			default:
				t.Fatal("quit channel not closed")
			}
		})
	}
}

func TestQuitKeepsFirstCode(t *testing.T) {
	e, _ := newTestEngine(&fakeRenderer{})
	e.Quit(1)
	e.Quit(0)
	assert.Equal(t, 1, e.ExitCode())
}

func TestFrameErrorPolicy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		resizes  [][2]int
		exitCode int
		quit     bool
	}{
		{"ok", nil, nil, 0, false},
		{"surface lost", renderer.ErrSurfaceLost, [][2]int{{640, 480}}, 0, false},
		{"out of memory", renderer.ErrSurfaceOutOfMemory, nil, 1, true},
		{"other", errors.Join(renderer.ErrSurfaceOther, errors.New("timeout")), nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRenderer{width: 640, height: 480, drawErrs: []error{tt.err}}
			e, w := newTestEngine(r)

			e.Frame()
			assert.Equal(t, tt.resizes, r.resizes)
			assert.Equal(t, tt.exitCode, e.ExitCode())
			assert.Equal(t, tt.quit, !w.IsRunning())
		})
	}
}

func TestFrameAfterQuitDoesNotDraw(t *testing.T) {
	r := &fakeRenderer{}
	e, _ := newTestEngine(r)
	e.Quit(0)
	e.Frame()
	assert.Zero(t, r.draws)
}

func TestRunDrawsUntilOutOfMemory(t *testing.T) {
	r := &fakeRenderer{drawErrs: []error{nil, nil, renderer.ErrSurfaceOutOfMemory}}
	e, _ := newTestEngine(r, WithProfiling(true))

	assert.Equal(t, 1, e.Run())
	assert.Equal(t, 3, r.draws)
}

func TestRunReturnsZeroWhenLoopEnds(t *testing.T) {
	r := &fakeRenderer{}
	e, w := newTestEngine(r)
	w.maxLoops = 5

	assert.Equal(t, 0, e.Run())
	assert.Equal(t, 5, r.draws)
}

func TestFileEventReloadsActiveTexture(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	r := &fakeRenderer{}
	cache := &recordingCache{}
	e, _ := newTestEngine(r, WithTextureCycle(NewTextureCycle([]string{a, b})), WithTextureCache(cache))

	e.handleFileEvent(fsnotify.Event{Name: b, Op: fsnotify.Write})
	assert.Equal(t, []string{b}, cache.invalidated)
	assert.Empty(t, r.textures, "inactive texture is not re-applied")

	e.handleFileEvent(fsnotify.Event{Name: a, Op: fsnotify.Chmod})
	assert.Len(t, cache.invalidated, 1)

	e.handleFileEvent(fsnotify.Event{Name: a, Op: fsnotify.Write})
	assert.Equal(t, []string{b, a}, cache.invalidated)
	assert.Equal(t, []string{a}, r.textures)

	e.handleFileEvent(fsnotify.Event{Name: filepath.Join(dir, "other.png"), Op: fsnotify.Create})
	assert.Len(t, cache.invalidated, 2)
}

func TestWatcherPicksUpWrites(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(a, []byte("v1"), 0o600))

	r := &fakeRenderer{}
	e, _ := newTestEngine(r, WithTextureCycle(NewTextureCycle([]string{a})))
	require.NoError(t, e.startWatcher())

	require.NoError(t, os.WriteFile(a, []byte("v2"), 0o600))
	assert.Eventually(t, func() bool { return len(r.textureCalls()) > 0 }, 2*time.Second, 10*time.Millisecond)

	e.Quit(0)
	e.wg.Wait()
}

func TestStartWatcherMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone", "a.png")
	e, _ := newTestEngine(&fakeRenderer{}, WithTextureCycle(NewTextureCycle([]string{missing})))
	assert.Error(t, e.startWatcher())
}
