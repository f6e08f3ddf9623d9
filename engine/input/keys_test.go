package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKeys stands in for a window and lets tests press keys directly.
type fakeKeys struct {
	down func(uint32)
	up   func(uint32)
}

func (k *fakeKeys) SetKeyDownCallback(callback func(keyCode uint32)) { k.down = callback }
func (k *fakeKeys) SetKeyUpCallback(callback func(keyCode uint32))   { k.up = callback }

func collect(d *Dispatcher) *[]mgl32.Vec2 {
	var events []mgl32.Vec2
	d.Subscribe(func(v mgl32.Vec2) { events = append(events, v) })
	return &events
}

func TestBindKeysDefaultBindings(t *testing.T) {
	keys := &fakeKeys{}
	d := NewDispatcher()
	events := collect(d)
	BindKeys(keys, d, nil)
	require.NotNil(t, keys.down)
	require.NotNil(t, keys.up)

	for _, code := range []uint32{common.KeyUp, common.KeyDown, common.KeyLeft, common.KeyRight} {
		keys.down(code)
		keys.up(code)
	}
	assert.Equal(t, []mgl32.Vec2{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}, *events)
}

func TestBindKeysSuppressesRepeat(t *testing.T) {
	keys := &fakeKeys{}
	d := NewDispatcher()
	events := collect(d)
	BindKeys(keys, d, nil)

	keys.down(common.KeyD)
	keys.down(common.KeyD)
	keys.down(common.KeyD)
	assert.Len(t, *events, 1)

	keys.up(common.KeyD)
	keys.down(common.KeyD)
	assert.Len(t, *events, 2)
}

func TestBindKeysIgnoresUnboundKeys(t *testing.T) {
	keys := &fakeKeys{}
	d := NewDispatcher()
	events := collect(d)
	BindKeys(keys, d, KeyBindings{common.KeySpace: {0, 1}})

	keys.down(common.KeyUp)
	keys.down(common.KeyQ)
	assert.Empty(t, *events)

	keys.down(common.KeySpace)
	assert.Equal(t, []mgl32.Vec2{{0, 1}}, *events)
}

func TestUnbind(t *testing.T) {
	keys := &fakeKeys{}
	kb := BindKeys(keys, NewDispatcher(), nil)
	kb.Unbind()
	assert.Nil(t, keys.down)
	assert.Nil(t, keys.up)
}
