package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rig/engine/window"
)

// engine is the implementation of the Engine interface.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration

	callbackMu     *sync.Mutex
	tickCallbacks  []func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderer  renderer.Renderer
	viewpoint renderer.Viewpoint

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine runs a fixed-rate tick loop for logic (the camera rig) and a render loop that
// presents the current viewpoint, optionally inside a window message loop.
type Engine interface {
	// Window returns the window the engine drives, or nil when running headless.
	Window() window.Window

	// Renderer returns the renderer, or nil if none was configured.
	Renderer() renderer.Renderer

	// EnableProfiler turns on periodic frame statistics logging.
	EnableProfiler()

	// DisableProfiler turns off frame statistics logging.
	DisableProfiler()

	// SetTickRate changes the tick loop frequency, also while running.
	//
	// Parameters:
	//   - fps: ticks per second; values <= 0 select 60
	SetTickRate(fps float64)

	// AddTickCallback registers a function called on every tick, in registration order.
	//
	// Parameters:
	//   - callback: receives the seconds elapsed since the previous tick
	AddTickCallback(callback func(deltaTime float32))

	// SetRenderCallback sets the function called after each rendered frame.
	//
	// Parameters:
	//   - callback: receives the seconds elapsed since the previous frame
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit caps the render loop.
	//
	// Parameters:
	//   - fps: maximum frames per second; 0 uncaps
	SetRenderFrameLimit(fps float64)

	// Run starts the loops and blocks. With a window it runs the window message loop on the
	// calling goroutine until the window closes; headless it blocks until Quit.
	Run()

	// Quit stops both loops. Safe to call more than once and from any goroutine.
	Quit()

	// Running reports whether Run is active.
	Running() bool
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the specified options.
//
// Parameters:
//   - options: functional options to configure the engine
//
// Returns:
//   - Engine: the configured engine, not yet running
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(profiler.WithName("render")),
		engineTickRate:   time.Second / 60,
		callbackMu:       &sync.Mutex{},
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil && e.renderer != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.renderer.Resize(width, height)
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
	e.running.Store(false)
}

func (e *engine) Running() bool {
	return e.running.Load()
}

func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

func (e *engine) handle() {
	e.wg.Add(1)
	go e.handleEngine()

	if e.renderer != nil && e.viewpoint != nil {
		e.wg.Add(1)
		go e.handleRender()
	}
}

func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.callbackMu.Lock()
			callbacks := e.tickCallbacks
			e.callbackMu.Unlock()
			for _, callback := range callbacks {
				callback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			if err := e.renderer.RenderFrame(e.viewpoint); err != nil {
				log.Printf("[Engine] frame skipped: %v", err)
			}

			e.callbackMu.Lock()
			renderCallback := e.renderCallback
			e.callbackMu.Unlock()
			if renderCallback != nil {
				renderCallback(dt)
			}

			if e.profilingEnabled.Load() && e.profiler != nil {
				e.profiler.Tick()
			}

			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Replace any rate that the tick loop has not picked up yet.
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

func (e *engine) AddTickCallback(callback func(deltaTime float32)) {
	if callback == nil {
		return
	}
	e.callbackMu.Lock()
	defer e.callbackMu.Unlock()
	// copy on write so the tick loop can iterate its snapshot unlocked
	next := make([]func(float32), len(e.tickCallbacks), len(e.tickCallbacks)+1)
	copy(next, e.tickCallbacks)
	e.tickCallbacks = append(next, callback)
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.callbackMu.Lock()
	defer e.callbackMu.Unlock()
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
