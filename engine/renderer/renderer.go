package renderer

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewpoint is anything with a facing direction, typically a camera.Camera.
type Viewpoint interface {
	Forward() mgl32.Vec3
}

// Surface supplies what the WebGPU backend needs from a window.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	frames     uint64
	lastClear  wgpu.Color
	brightness float64

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer presents one frame per call, cleared to a color derived from the viewpoint's
// forward vector so camera moves are visible without any scene geometry.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode and reconfigures on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RenderFrame clears the surface to ClearColorFor(view.Forward()) and presents it.
	//
	// Parameters:
	//   - view: the viewpoint to visualise
	//
	// Returns:
	//   - error: if the surface texture could not be acquired
	RenderFrame(view Viewpoint) error

	// Frames returns the number of frames presented so far.
	Frames() uint64

	// LastClearColor returns the clear color of the most recent frame.
	LastClearColor() wgpu.Color

	// Release frees the backend's GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with the specified backend.
//
// Parameters:
//   - backendType: BackendTypeWGPU or BackendTypeHeadless
//   - surface: the window to present to; ignored by the headless backend
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the renderer, with its surface configured
//   - error: if the GPU adapter or device cannot be created
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		brightness:  0.4,
	}

	for _, opt := range options {
		opt(r)
	}

	width, height := 0, 0
	switch backendType {
	case BackendTypeHeadless:
		r.backend = newHeadlessRendererBackend()
	case BackendTypeWGPU:
		if surface == nil {
			return nil, fmt.Errorf("wgpu renderer requires a surface")
		}
		backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = backend
		width, height = surface.Width(), surface.Height()
	default:
		return nil, fmt.Errorf("unknown renderer backend type %d", backendType)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(width, height)
	return r, nil
}

// ClearColorFor maps a unit forward vector to an opaque color. Each axis in [-1, 1] becomes
// one channel centred on 0.5 (X to red, Y to green, Z to blue).
//
// Parameters:
//   - forward: the facing direction, normalized
//   - brightness: channel swing in [0, 0.5]
//
// Returns:
//   - wgpu.Color: the clear color
func ClearColorFor(forward mgl32.Vec3, brightness float64) wgpu.Color {
	channel := func(v float32) float64 {
		return float64(mgl32.Clamp(0.5+float32(brightness)*v, 0, 1))
	}
	return wgpu.Color{
		R: channel(forward.X()),
		G: channel(forward.Y()),
		B: channel(forward.Z()),
		A: 1.0,
	}
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) RenderFrame(view Viewpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	color := ClearColorFor(view.Forward(), r.brightness)
	if err := r.backend.BeginFrame(color); err != nil {
		return err
	}
	r.backend.EndFrame()
	r.backend.Present()

	r.frames++
	r.lastClear = color
	return nil
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) LastClearColor() wgpu.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastClear
}

func (r *renderer) Release() {
	r.backend.Release()
}
