package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearColorFor(t *testing.T) {
	tests := []struct {
		name    string
		forward mgl32.Vec3
		want    wgpu.Color
	}{
		{"looking down -Z", mgl32.Vec3{0, 0, -1}, wgpu.Color{R: 0.5, G: 0.5, B: 0.1, A: 1}},
		{"looking up", mgl32.Vec3{0, 1, 0}, wgpu.Color{R: 0.5, G: 0.9, B: 0.5, A: 1}},
		{"looking right", mgl32.Vec3{1, 0, 0}, wgpu.Color{R: 0.9, G: 0.5, B: 0.5, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClearColorFor(tt.forward, 0.4)
			assert.InDelta(t, tt.want.R, got.R, 1e-6)
			assert.InDelta(t, tt.want.G, got.G, 1e-6)
			assert.InDelta(t, tt.want.B, got.B, 1e-6)
			assert.Equal(t, 1.0, got.A)
		})
	}
}

func TestClearColorForClampsChannels(t *testing.T) {
	got := ClearColorFor(mgl32.Vec3{10, -10, 0}, 0.5)
	assert.Equal(t, 1.0, got.R)
	assert.Equal(t, 0.0, got.G)
}

func TestHeadlessRenderFrameFollowsCamera(t *testing.T) {
	r, err := NewRenderer(BackendTypeHeadless, nil, WithPresentMode(PresentModeVSync))
	require.NoError(t, err)

	cam := camera.NewCamera()
	require.NoError(t, r.RenderFrame(cam))
	first := r.LastClearColor()

	cam.SetOrientation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}))
	require.NoError(t, r.RenderFrame(cam))
	second := r.LastClearColor()

	assert.Equal(t, uint64(2), r.Frames())
	assert.NotEqual(t, first, second)

	backend := r.(*renderer).backend.(*headlessRendererBackend)
	assert.Equal(t, []wgpu.Color{first, second}, backend.Presented())
	assert.Equal(t, PresentModeVSync, backend.presentMode)
}

func TestHeadlessRejectsOverlappingFrames(t *testing.T) {
	b := newHeadlessRendererBackend()
	require.NoError(t, b.BeginFrame(wgpu.Color{}))
	assert.Error(t, b.BeginFrame(wgpu.Color{}))
	b.EndFrame()
	b.Present()
	assert.NoError(t, b.BeginFrame(wgpu.Color{}))
}

func TestReleasedRendererFails(t *testing.T) {
	r, err := NewRenderer(BackendTypeHeadless, nil)
	require.NoError(t, err)
	r.Release()
	assert.Error(t, r.RenderFrame(camera.NewCamera()))
	assert.Equal(t, uint64(0), r.Frames())
}

func TestWGPURendererRequiresSurface(t *testing.T) {
	_, err := NewRenderer(BackendTypeWGPU, nil)
	assert.ErrorContains(t, err, "requires a surface")
}

func TestWithBrightnessClamps(t *testing.T) {
	r, err := NewRenderer(BackendTypeHeadless, nil, WithBrightness(3))
	require.NoError(t, err)
	assert.Equal(t, 0.5, r.(*renderer).brightness)
}
