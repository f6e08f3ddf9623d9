package terminal

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// KeyMap maps bubbletea key strings (tea.KeyMsg.String()) to directional input.
type KeyMap map[string]mgl32.Vec2

// DefaultKeyMap binds the arrow keys, WASD and vi-style HJKL.
//
// Returns:
//   - KeyMap: a fresh map safe to modify
func DefaultKeyMap() KeyMap {
	up, down := mgl32.Vec2{0, 1}, mgl32.Vec2{0, -1}
	left, right := mgl32.Vec2{-1, 0}, mgl32.Vec2{1, 0}
	return KeyMap{
		"up": up, "down": down, "left": left, "right": right,
		"w": up, "s": down, "a": left, "d": right,
		"k": up, "j": down, "h": left, "l": right,
	}
}

// ModelOption is a functional option for configuring a terminal Model.
type ModelOption func(*Model)

// WithTickInterval sets how often the rig is ticked.
//
// Parameters:
//   - interval: tick period, ignored if not positive
//
// Returns:
//   - ModelOption: option function to apply
func WithTickInterval(interval time.Duration) ModelOption {
	return func(m *Model) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

// WithKeyMap replaces the default key bindings.
//
// Parameters:
//   - keyMap: key string to direction vector
//
// Returns:
//   - ModelOption: option function to apply
func WithKeyMap(keyMap KeyMap) ModelOption {
	return func(m *Model) {
		if keyMap != nil {
			m.keyMap = keyMap
		}
	}
}
