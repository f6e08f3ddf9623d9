package engine

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlessRunTicksAndRendersUntilQuit(t *testing.T) {
	r, err := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
	require.NoError(t, err)

	var e Engine
	var ticks atomic.Int32
	var total atomic.Value
	total.Store(float32(0))

	e = NewEngine(
		WithTickRate(200),
		WithRenderer(r, camera.NewCamera()),
		WithRenderFrameLimit(200),
		WithTickCallback(func(dt float32) {
			assert.GreaterOrEqual(t, dt, float32(0))
			total.Store(total.Load().(float32) + dt)
			if ticks.Add(1) == 5 {
				e.Quit()
			}
		}),
	)
	assert.Nil(t, e.Window())
	assert.Same(t, r, e.Renderer())

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop after Quit")
	}

	assert.GreaterOrEqual(t, ticks.Load(), int32(5))
	assert.Greater(t, total.Load().(float32), float32(0))
	assert.False(t, e.Running())
}

func TestTickCallbacksRunInOrder(t *testing.T) {
	var e Engine
	var mu sync.Mutex
	var order []string
	record := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, name)
	}

	e = NewEngine(WithTickRate(500))
	e.AddTickCallback(func(float32) { record("rig") })
	e.AddTickCallback(func(float32) {
		record("status")
		e.Quit()
	})
	e.AddTickCallback(nil)

	e.Run()

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(order), 2)
	assert.Equal(t, []string{"rig", "status"}, order[:2])
}

func TestQuitBeforeRunIsSafe(t *testing.T) {
	e := NewEngine()
	e.Quit()
	e.Quit()

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run blocked after Quit")
	}
}

func TestRenderLoopNeedsViewpoint(t *testing.T) {
	r, err := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
	require.NoError(t, err)

	var e Engine
	e = NewEngine(WithTickRate(500), WithRenderer(r, nil), WithTickCallback(func(float32) { e.Quit() }))
	e.Run()

	assert.Equal(t, uint64(0), r.Frames())
}
