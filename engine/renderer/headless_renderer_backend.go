package renderer

import (
	"errors"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// headlessRendererBackend follows the same frame protocol as the WebGPU backend but only
// records what would have been drawn.
type headlessRendererBackend struct {
	mu *sync.Mutex

	width, height int
	presentMode   PresentMode

	inFrame  bool
	pending  bool
	color    wgpu.Color
	released bool

	presented []wgpu.Color
}

var _ RendererBackend = &headlessRendererBackend{}

func newHeadlessRendererBackend() *headlessRendererBackend {
	return &headlessRendererBackend{mu: &sync.Mutex{}}
}

func (b *headlessRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
}

func (b *headlessRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *headlessRendererBackend) BeginFrame(color wgpu.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return errors.New("renderer released")
	}
	if b.inFrame || b.pending {
		return errors.New("previous frame surface not yet presented")
	}
	b.inFrame = true
	b.color = color
	return nil
}

func (b *headlessRendererBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inFrame {
		return
	}
	b.inFrame = false
	b.pending = true
}

func (b *headlessRendererBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.pending {
		return
	}
	b.pending = false
	b.presented = append(b.presented, b.color)
}

func (b *headlessRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.released = true
}

// Presented returns a copy of every presented clear color.
func (b *headlessRendererBackend) Presented() []wgpu.Color {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]wgpu.Color(nil), b.presented...)
}
