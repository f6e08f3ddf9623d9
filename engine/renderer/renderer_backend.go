package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based backend presenting to a window surface.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless records frames in memory without a GPU, for tests and terminal hosts.
	BackendTypeHeadless
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// RendererBackend is the per-API half of the Renderer: one clear pass per frame.
type RendererBackend interface {
	// ConfigureSurface (re)creates the surface for a new size.
	ConfigureSurface(width, height int)

	// SetPresentMode takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the next surface texture and starts a pass cleared to color.
	BeginFrame(color wgpu.Color) error

	// EndFrame ends the pass and submits it.
	EndFrame()

	// Present displays the submitted frame and releases the surface texture.
	Present()

	// Release frees every GPU object held by the backend.
	Release()
}
