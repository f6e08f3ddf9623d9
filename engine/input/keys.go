package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

// KeyEventSource is the slice of a host window that reports key presses and releases.
// window.Window satisfies it.
type KeyEventSource interface {
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
}

// KeyBindings maps virtual key codes to the directional vector they emit.
type KeyBindings map[uint32]mgl32.Vec2

// DefaultKeyBindings binds the arrow keys and WASD to unit directions.
//
// Returns:
//   - KeyBindings: a fresh bindings map
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		common.KeyUp:    {0, 1},
		common.KeyDown:  {0, -1},
		common.KeyLeft:  {-1, 0},
		common.KeyRight: {1, 0},
		common.KeyW:     {0, 1},
		common.KeyS:     {0, -1},
		common.KeyA:     {-1, 0},
		common.KeyD:     {1, 0},
	}
}

// KeyBinder forwards bound key presses from a KeyEventSource to a Dispatcher.
// Only the press edge emits; auto-repeat reports for a held key are dropped until it is released.
type KeyBinder struct {
	mu *sync.Mutex

	keys       KeyEventSource
	dispatcher *Dispatcher
	bindings   KeyBindings
	held       map[uint32]bool
}

// BindKeys installs key callbacks on keys that emit bound directions into d.
// Any callbacks previously set on keys are replaced.
//
// Parameters:
//   - keys: the key event source, typically a window.Window
//   - d: the dispatcher to emit into
//   - bindings: key to direction map, or nil for DefaultKeyBindings
//
// Returns:
//   - *KeyBinder: the binder, used to Unbind later
func BindKeys(keys KeyEventSource, d *Dispatcher, bindings KeyBindings) *KeyBinder {
	if bindings == nil {
		bindings = DefaultKeyBindings()
	}
	kb := &KeyBinder{
		mu:         &sync.Mutex{},
		keys:       keys,
		dispatcher: d,
		bindings:   bindings,
		held:       make(map[uint32]bool),
	}
	keys.SetKeyDownCallback(kb.keyDown)
	keys.SetKeyUpCallback(kb.keyUp)
	return kb
}

// Unbind clears the callbacks installed by BindKeys.
func (kb *KeyBinder) Unbind() {
	kb.keys.SetKeyDownCallback(nil)
	kb.keys.SetKeyUpCallback(nil)
}

func (kb *KeyBinder) keyDown(keyCode uint32) {
	kb.mu.Lock()
	dir, ok := kb.bindings[keyCode]
	if !ok || kb.held[keyCode] {
		kb.mu.Unlock()
		return
	}
	kb.held[keyCode] = true
	kb.mu.Unlock()

	kb.dispatcher.Emit(dir)
}

func (kb *KeyBinder) keyUp(keyCode uint32) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	delete(kb.held, keyCode)
}
