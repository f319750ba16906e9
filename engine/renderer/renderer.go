package renderer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/Carmen-Shannon/oxy-quad/engine/camera"
	"github.com/Carmen-Shannon/oxy-quad/engine/model"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineKey is the key of the quad render pipeline and its shader.
const PipelineKey = "quad"

// diffuseCount is an atomic counter used to generate unique diffuse provider labels.
var diffuseCount atomic.Uint64

// SurfaceTarget is the window the renderer draws into.
type SurfaceTarget interface {
	// SurfaceDescriptor returns the platform-specific descriptor used to create the surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the drawable width in pixels.
	//
	// Returns:
	//   - int: the width
	Width() int

	// Height returns the drawable height in pixels.
	//
	// Returns:
	//   - int: the height
	Height() int
}

// SurfaceConfig is a snapshot of the surface configuration.
type SurfaceConfig struct {
	Width       int
	Height      int
	Format      wgpu.TextureFormat
	PresentMode PresentMode
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width       int
	height      int
	presentMode PresentMode
	background  wgpu.Color

	pipeline pipeline.Pipeline
	mesh     model.Model
	diffuse  bind_group_provider.BindGroupProvider
	camera   camera.Camera
	loader   texture.Loader

	released bool

	// stale marks a surface that must be configured again before the next frame.
	stale bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	shaderSource         *string
}

// Renderer draws one textured quad into a window surface.
//
// The Renderer owns the GPU backend, the quad pipeline, the static mesh buffers, the active diffuse
// texture group and the optional camera uniform. Every operation is serialized by a single mutex,
// so the event loop, the console and the texture watcher may call it from different goroutines.
type Renderer interface {
	// Size returns the current surface size in pixels.
	//
	// Returns:
	//   - int: the width
	//   - int: the height
	Size() (int, int)

	// SurfaceConfig returns a snapshot of the surface configuration.
	//
	// Returns:
	//   - SurfaceConfig: the size, format and present mode of the surface
	SurfaceConfig() SurfaceConfig

	// Resize reconfigures the surface for a new size and updates the camera aspect ratio.
	// A zero width or height keeps the current size and schedules a reconfiguration at that
	// size before the next frame, as does a failed reconfiguration.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetTexture loads the identified image and makes it the active diffuse texture.
	// On failure the previous texture stays active.
	//
	// Parameters:
	//   - identifier: the texture identifier understood by the configured loader (usually a path)
	//
	// Returns:
	//   - error: a texture decode or dimension error, a GPU error, or ErrRendererReleased
	SetTexture(identifier string) error

	// SetBackgroundColor sets the clear color of subsequent frames. Alpha is forced to 1.
	//
	// Parameters:
	//   - c: the clear color
	SetBackgroundColor(c wgpu.Color)

	// BackgroundColor returns the current clear color.
	//
	// Returns:
	//   - wgpu.Color: the clear color
	BackgroundColor() wgpu.Color

	// MoveCamera translates the camera eye and uploads the new view-projection matrix.
	//
	// Parameters:
	//   - dx, dy, dz: the translation
	//
	// Returns:
	//   - error: ErrCameraDisabled without a camera, ErrRendererReleased after Release
	MoveCamera(dx, dy, dz float32) error

	// SetCameraEye places the camera eye and uploads the new view-projection matrix.
	//
	// Parameters:
	//   - x, y, z: the eye position
	//
	// Returns:
	//   - error: ErrCameraDisabled without a camera, ErrRendererReleased after Release
	SetCameraEye(x, y, z float32) error

	// SetCameraTarget points the camera at a position and uploads the new view-projection matrix.
	//
	// Parameters:
	//   - x, y, z: the target position
	//
	// Returns:
	//   - error: ErrCameraDisabled without a camera, ErrRendererReleased after Release
	SetCameraTarget(x, y, z float32) error

	// SetCameraFov sets the vertical field of view and uploads the new view-projection matrix.
	//
	// Parameters:
	//   - degrees: the field of view in degrees, in (0, 180)
	//
	// Returns:
	//   - error: ErrInvalidFov for an out of range angle, ErrCameraDisabled without a camera,
	//     ErrRendererReleased after Release
	SetCameraFov(degrees float32) error

	// Draw renders and presents one frame. A surface left stale by a minimize, a failed resize
	// or a lost frame is configured again first.
	//
	// Returns:
	//   - error: ErrSurfaceLost, ErrSurfaceOutOfMemory, an error wrapping ErrSurfaceOther, or ErrRendererReleased
	Draw() error

	// DiffuseProvider returns the provider holding the active texture bind group.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the active diffuse provider, nil after Release
	DiffuseProvider() bind_group_provider.BindGroupProvider

	// DiffuseBindGroup returns the active texture bind group.
	//
	// Returns:
	//   - *wgpu.BindGroup: the active bind group, nil after Release
	DiffuseBindGroup() *wgpu.BindGroup

	// TextureExtent returns the dimensions of the active texture.
	//
	// Returns:
	//   - wgpu.Extent3D: the texture extent
	//   - bool: false when no texture is active
	TextureExtent() (wgpu.Extent3D, bool)

	// Camera returns the camera, or nil when the renderer was built without one.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Pipeline returns the quad render pipeline.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline
	Pipeline() pipeline.Pipeline

	// Release frees every GPU object owned by the renderer. Later calls are no-ops and
	// other operations return ErrRendererReleased.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer acquires the GPU for target and builds everything needed to draw the quad: the
// surface configuration, the diffuse texture group from texturePath, the optional camera group,
// the quad pipeline from the WGSL shader at shaderPath and the static mesh buffers.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - target: the window providing the surface descriptor and initial size
//   - texturePath: the identifier of the initial texture
//   - shaderPath: the WGSL shader file
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: a *StartupError, a *shader.CompileError, or a texture error
func NewRenderer(backendType RendererBackendType, target SurfaceTarget, texturePath, shaderPath string, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		width:       target.Width(),
		height:      target.Height(),
		presentMode: PresentModeVSync,
		background:  wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
		loader:      texture.NewFileLoader(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	r.background.A = 1.0

	if r.backend == nil {
		switch backendType {
		case BackendTypeWGPU:
			b, err := newWGPURendererBackend(target.SurfaceDescriptor(), r.forceFallbackAdapter)
			if err != nil {
				return nil, err
			}
			r.backend = b
		default:
			return nil, &StartupError{Stage: "backend", Err: fmt.Errorf("unsupported backend type %d", backendType)}
		}
	}

	if err := r.build(texturePath, shaderPath); err != nil {
		r.Release()
		return nil, err
	}

	common.Logger().Info("renderer ready",
		"width", r.width,
		"height", r.height,
		"format", r.backend.SurfaceFormat(),
		"present_mode", r.presentMode.String(),
		"camera", r.camera != nil,
	)
	return r, nil
}

// build runs the construction steps after the device has been acquired.
func (r *renderer) build(texturePath, shaderPath string) error {
	r.backend.SetPresentMode(r.presentMode)
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		return &StartupError{Stage: "configure surface", Err: err}
	}

	staging, err := r.loadTexture(texturePath)
	if err != nil {
		return fmt.Errorf("initial texture: %w", err)
	}
	r.diffuse, err = r.buildDiffuse(staging)
	if err != nil {
		return fmt.Errorf("initial texture: %w", err)
	}

	layouts := []*wgpu.BindGroupLayout{r.diffuse.BindGroupLayout()}
	if r.camera != nil {
		if err := r.initCamera(); err != nil {
			return fmt.Errorf("camera uniform: %w", err)
		}
		layouts = append(layouts, r.camera.BindGroupProvider().BindGroupLayout())
	}

	s, err := r.compileShader(shaderPath)
	if err != nil {
		return err
	}
	r.pipeline = pipeline.NewPipeline(PipelineKey,
		pipeline.WithShader(s),
		pipeline.WithVertexLayout(model.VertexLayout()),
		pipeline.WithCullMode(wgpu.CullModeBack),
		pipeline.WithFrontFace(wgpu.FrontFaceCCW),
		pipeline.WithBlendState(pipeline.ReplaceBlendState()),
	)
	if err := r.backend.RegisterRenderPipeline(r.pipeline, layouts); err != nil {
		return err
	}

	r.mesh = model.Quad()
	mesh := bind_group_provider.NewBindGroupProvider(r.mesh.Name()+"_mesh", bind_group_provider.WithIndexCount(r.mesh.IndexCount()))
	r.mesh.SetMeshProvider(mesh)
	if err := r.backend.InitMeshBuffers(mesh, r.mesh.VertexData(), r.mesh.IndexData(), r.mesh.IndexCount()); err != nil {
		return fmt.Errorf("mesh buffers: %w", err)
	}
	return nil
}

func (r *renderer) initCamera() error {
	if r.width > 0 && r.height > 0 {
		r.camera.SetAspect(float32(r.width) / float32(r.height))
	}
	provider := r.camera.BindGroupProvider()
	sizes := map[int]uint64{bind_group_provider.UniformBinding: camera.UniformSize}
	if err := r.backend.InitBindGroup(provider, bind_group_provider.UniformLayoutDescriptor(), sizes); err != nil {
		return err
	}
	r.uploadCamera()
	return nil
}

// compileShader validates the shader against the layouts the pipeline binds.
func (r *renderer) compileShader(shaderPath string) (shader.Shader, error) {
	opts := []shader.ShaderBuilderOption{
		shader.WithExpectedBindGroup(0, bind_group_provider.TextureLayoutDescriptor()),
		shader.WithExpectedVertexLayout(model.VertexLayout()),
	}
	if r.camera != nil {
		uniform := bind_group_provider.UniformLayoutDescriptor()
		uniform.Entries[0].Buffer.MinBindingSize = camera.UniformSize
		opts = append(opts, shader.WithExpectedBindGroup(1, uniform))
	}

	var (
		s   shader.Shader
		err error
	)
	if r.shaderSource != nil {
		s, err = shader.NewShader(PipelineKey, *r.shaderSource, opts...)
	} else {
		s, err = shader.LoadShader(PipelineKey, shaderPath, opts...)
	}
	if err != nil {
		return nil, err
	}

	for group := range s.BindGroupLayoutDescriptors() {
		if group > 1 || (group == 1 && r.camera == nil) {
			return nil, &shader.CompileError{
				Key:    PipelineKey,
				Reason: "bind group layout",
				Err:    fmt.Errorf("@group(%d) has no matching bind group", group),
			}
		}
	}
	return s, nil
}

// loadTexture loads and validates staging data without holding the mutex.
func (r *renderer) loadTexture(identifier string) (common.TextureStagingData, error) {
	staging, err := r.loader.Load(identifier)
	if err != nil {
		return common.TextureStagingData{}, err
	}
	if err := texture.Validate(staging); err != nil {
		return common.TextureStagingData{}, err
	}
	return staging, nil
}

// buildDiffuse creates a complete diffuse provider. Caller must hold the mutex or be constructing.
func (r *renderer) buildDiffuse(staging common.TextureStagingData) (bind_group_provider.BindGroupProvider, error) {
	label := "diffuse_" + strconv.FormatUint(diffuseCount.Add(1)-1, 10)
	if staging.Source != "" {
		label += "_" + filepath.Base(staging.Source)
	}
	provider := bind_group_provider.NewBindGroupProvider(label)

	if err := r.backend.InitTextureView(provider, bind_group_provider.TextureBinding, staging); err != nil {
		provider.Release()
		return nil, err
	}
	if err := r.backend.InitSampler(provider, bind_group_provider.SamplerBinding, texture.DiffuseSampler()); err != nil {
		provider.Release()
		return nil, err
	}
	if err := r.backend.InitBindGroup(provider, bind_group_provider.TextureLayoutDescriptor(), nil); err != nil {
		provider.Release()
		return nil, err
	}
	return provider, nil
}

// uploadCamera writes the camera uniform. Caller must hold the mutex or be constructing.
func (r *renderer) uploadCamera() {
	u := r.camera.Uniform()
	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{
		{
			Provider: r.camera.BindGroupProvider(),
			Binding:  bind_group_provider.UniformBinding,
			Offset:   0,
			Data:     u.Marshal(),
		},
	})
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SurfaceConfig() SurfaceConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return SurfaceConfig{
		Width:       r.width,
		Height:      r.height,
		Format:      r.backend.SurfaceFormat(),
		PresentMode: r.presentMode,
	}
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	if width <= 0 || height <= 0 {
		// Minimized: keep the applied size, but the surface may be outdated on restore.
		r.stale = true
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		common.Logger().Error("surface reconfiguration failed", "width", width, "height", height, "error", err)
		r.stale = true
		return
	}
	r.width = width
	r.height = height
	r.stale = false
	if r.camera != nil {
		r.camera.SetAspect(float32(width) / float32(height))
		r.uploadCamera()
	}
}

func (r *renderer) SetTexture(identifier string) error {
	staging, err := r.loadTexture(identifier)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrRendererReleased
	}
	provider, err := r.buildDiffuse(staging)
	if err != nil {
		return err
	}

	old := r.diffuse
	r.diffuse = provider
	old.Release()

	common.Logger().Info("texture swapped",
		"source", identifier,
		"width", staging.Width,
		"height", staging.Height,
	)
	return nil
}

func (r *renderer) SetBackgroundColor(c wgpu.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.A = 1.0
	r.background = c
}

func (r *renderer) BackgroundColor() wgpu.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.background
}

func (r *renderer) MoveCamera(dx, dy, dz float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrRendererReleased
	}
	if r.camera == nil {
		return ErrCameraDisabled
	}
	r.camera.Move(dx, dy, dz)
	r.uploadCamera()
	return nil
}

func (r *renderer) SetCameraEye(x, y, z float32) error {
	return r.updateCamera(func(c camera.Camera) { c.SetEye(x, y, z) })
}

func (r *renderer) SetCameraTarget(x, y, z float32) error {
	return r.updateCamera(func(c camera.Camera) { c.SetTarget(x, y, z) })
}

func (r *renderer) SetCameraFov(degrees float32) error {
	if degrees <= 0 || degrees >= 180 {
		return fmt.Errorf("%w: %v", ErrInvalidFov, degrees)
	}
	return r.updateCamera(func(c camera.Camera) { c.SetFov(common.Radians(degrees)) })
}

// updateCamera applies fn to the camera under the renderer lock and uploads the result.
func (r *renderer) updateCamera(fn func(camera.Camera)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrRendererReleased
	}
	if r.camera == nil {
		return ErrCameraDisabled
	}
	fn(r.camera)
	r.uploadCamera()
	return nil
}

func (r *renderer) Draw() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrRendererReleased
	}

	if r.stale {
		if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
			return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
		}
		r.stale = false
	}

	if err := r.backend.BeginFrame(r.background); err != nil {
		if errors.Is(err, ErrSurfaceLost) {
			r.stale = true
		}
		return err
	}

	groups := []bind_group_provider.BindGroupProvider{r.diffuse}
	if r.camera != nil {
		groups = append(groups, r.camera.BindGroupProvider())
	}
	r.backend.DrawCall(r.pipeline, r.mesh.MeshProvider(), groups)

	if err := r.backend.EndFrame(); err != nil {
		r.backend.Present()
		return fmt.Errorf("%w: %w", ErrSurfaceOther, err)
	}
	r.backend.Present()
	return nil
}

func (r *renderer) DiffuseProvider() bind_group_provider.BindGroupProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.diffuse
}

func (r *renderer) DiffuseBindGroup() *wgpu.BindGroup {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.diffuse == nil {
		return nil
	}
	return r.diffuse.BindGroup()
}

func (r *renderer) TextureExtent() (wgpu.Extent3D, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.diffuse == nil {
		return wgpu.Extent3D{}, false
	}
	return r.diffuse.TextureExtent(bind_group_provider.TextureBinding)
}

func (r *renderer) Camera() camera.Camera {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.camera
}

func (r *renderer) Pipeline() pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipeline
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true

	if r.mesh != nil {
		r.mesh.Release()
	}
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.diffuse != nil {
		r.diffuse.Release()
		r.diffuse = nil
	}
	if r.camera != nil {
		r.camera.BindGroupProvider().Release()
	}
	if r.backend != nil {
		r.backend.Release()
	}
}
