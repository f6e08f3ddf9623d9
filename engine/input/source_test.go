package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDispatcherFansOutInOrder(t *testing.T) {
	d := NewDispatcher()
	var got []string
	d.Subscribe(func(v mgl32.Vec2) { got = append(got, "first") })
	d.Subscribe(func(v mgl32.Vec2) { got = append(got, "second") })

	d.Emit(mgl32.Vec2{1, 0})
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestDispatcherUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	sub := d.Subscribe(func(v mgl32.Vec2) { calls++ })
	assert.Equal(t, 1, d.HandlerCount())

	d.Unsubscribe(sub)
	d.Unsubscribe(sub)
	d.Unsubscribe(Subscription(999))
	assert.Equal(t, 0, d.HandlerCount())

	d.Emit(mgl32.Vec2{0, 1})
	assert.Equal(t, 0, calls)
}

func TestDispatcherHandlerMayUnsubscribeItself(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	var sub Subscription
	sub = d.Subscribe(func(v mgl32.Vec2) {
		calls++
		d.Unsubscribe(sub)
	})

	d.Emit(mgl32.Vec2{0, 1})
	d.Emit(mgl32.Vec2{0, 1})
	assert.Equal(t, 1, calls)
}

func TestDispatcherPassesVector(t *testing.T) {
	d := NewDispatcher()
	var got mgl32.Vec2
	d.Subscribe(func(v mgl32.Vec2) { got = v })
	d.Emit(mgl32.Vec2{0.25, -0.75})
	assert.Equal(t, mgl32.Vec2{0.25, -0.75}, got)
}
