package rig

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMoveDuration is the transition duration used when none is configured, in seconds.
const DefaultMoveDuration float32 = 0.3

// rigControllerImpl is the single implementation of RigController.
// Input callbacks and ticks may arrive on different goroutines (the engine ticks on its own
// goroutine while GLFW delivers keys on the main thread), so every entry point takes mu.
type rigControllerImpl struct {
	mu *sync.Mutex

	graph *PresetGraph
	sink  PoseSink

	currentIndex  int
	isMoving      bool
	isInitialized bool
	disabled      bool

	// active is the in-flight transition; nil while idle.
	active *transition

	moveDuration float32
	easing       Easing
	diagnostics  Diagnostics
	onArrive     func(index int)

	source       input.Source
	subscription input.Subscription
}

// Compile-time interface compliance check
var _ RigController = &rigControllerImpl{}

// NewRigController creates an uninitialized controller.
// Defaults: 0.3s transitions, Linear easing, diagnostics logged through the standard logger.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - RigController: the newly created controller
func NewRigController(options ...RigControllerOption) RigController {
	rc := &rigControllerImpl{
		mu:           &sync.Mutex{},
		currentIndex: NoNeighbor,
		moveDuration: DefaultMoveDuration,
		easing:       Linear,
		diagnostics:  NewLogDiagnostics(nil),
	}
	for _, option := range options {
		option(rc)
	}
	return rc
}

func (rc *rigControllerImpl) Initialize(graph *PresetGraph, startIndex int, sink PoseSink) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.disabled {
		return ErrControllerDisabled
	}
	if rc.isInitialized {
		return ErrAlreadyInitialized
	}

	if sink == nil {
		return rc.disable(NewConfigurationError(SeverityFatal, ErrNoPoseSink, ""))
	}
	if err := graph.Validate(); err != nil {
		return rc.disable(err)
	}

	if !common.InRange(startIndex, graph.Count()) {
		rc.diagnostics.Report(SeverityWarning, NewConfigurationError(SeverityWarning, ErrStartIndexOutOfRange,
			"start index %d not in [0, %d), using 0", startIndex, graph.Count()))
		startIndex = 0
	}

	rc.graph = graph
	rc.sink = sink
	rc.currentIndex = startIndex
	rc.writePose(graph.PresetAt(startIndex).Pose())
	rc.isInitialized = true
	return nil
}

// disable reports a fatal error and makes the controller inert.
// Caller must hold the mutex.
func (rc *rigControllerImpl) disable(err error) error {
	rc.disabled = true
	rc.active = nil
	rc.isMoving = false
	rc.diagnostics.Report(SeverityFatal, err)
	return err
}

func (rc *rigControllerImpl) Fail(err error) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if !IsFatal(err) {
		err = NewConfigurationError(SeverityFatal, err, "")
	}
	return rc.disable(err)
}

func (rc *rigControllerImpl) Start(source input.Source) error {
	if source == nil {
		return ErrNoInputSource
	}

	// subscribe outside the lock: the source may deliver into this controller while we wait on it
	sub := source.Subscribe(rc.OnDirectionalInput)

	rc.mu.Lock()
	prevSource, prevSub := rc.source, rc.subscription
	rc.source = source
	rc.subscription = sub
	rc.mu.Unlock()

	if prevSource != nil {
		prevSource.Unsubscribe(prevSub)
	}
	return nil
}

func (rc *rigControllerImpl) Stop() {
	rc.mu.Lock()
	source, sub := rc.source, rc.subscription
	rc.source = nil
	rc.subscription = 0
	rc.mu.Unlock()

	// unsubscribe outside the lock: the source may be mid-Emit into this controller
	if source != nil {
		source.Unsubscribe(sub)
	}
}

func (rc *rigControllerImpl) OnDirectionalInput(direction mgl32.Vec2) {
	rc.Move(ResolveDirection(direction))
}

func (rc *rigControllerImpl) Move(dir Direction) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if !rc.isInitialized || rc.disabled || rc.isMoving {
		return false
	}
	target, ok := rc.graph.Neighbor(rc.currentIndex, dir)
	if !ok {
		return false
	}
	rc.beginTransition(target)
	return true
}

func (rc *rigControllerImpl) TransitionTo(index int) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.disabled {
		return ErrControllerDisabled
	}
	if !rc.isInitialized {
		return ErrNotInitialized
	}
	if !common.InRange(index, rc.graph.Count()) {
		return ErrPresetOutOfRange
	}
	rc.beginTransition(index)
	return nil
}

// beginTransition replaces any in-flight transition with one from the sink's live pose to target.
// Caller must hold the mutex.
func (rc *rigControllerImpl) beginTransition(target int) {
	start := common.Pose{
		Position:    rc.sink.Position(),
		Orientation: rc.sink.Orientation(),
	}
	rc.active = newTransition(target, start, rc.graph.PresetAt(target).Pose())
	rc.isMoving = true
}

func (rc *rigControllerImpl) Tick(deltaTime float32) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if !rc.isInitialized || rc.disabled || rc.active == nil {
		return
	}

	pose, arrived := rc.active.advance(deltaTime, rc.moveDuration, rc.easing)
	rc.writePose(pose)
	if !arrived {
		return
	}

	rc.currentIndex = rc.active.target
	rc.active = nil
	rc.isMoving = false
	if rc.onArrive != nil {
		rc.onArrive(rc.currentIndex)
	}
}

// writePose pushes a pose to the sink.
// Caller must hold the mutex.
func (rc *rigControllerImpl) writePose(pose common.Pose) {
	rc.sink.SetPosition(pose.Position)
	rc.sink.SetOrientation(pose.Orientation)
}

func (rc *rigControllerImpl) CurrentIndex() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.currentIndex
}

func (rc *rigControllerImpl) CurrentPreset() (Preset, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if !rc.isInitialized {
		return Preset{}, false
	}
	return rc.graph.PresetAt(rc.currentIndex), true
}

func (rc *rigControllerImpl) Target() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.active == nil {
		return NoNeighbor
	}
	return rc.active.target
}

func (rc *rigControllerImpl) State() State {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.active == nil {
		return StateIdle
	}
	return StateTransitioning
}

func (rc *rigControllerImpl) Progress() float32 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.active == nil {
		return 0
	}
	return rc.active.t
}

func (rc *rigControllerImpl) IsMoving() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.isMoving
}

func (rc *rigControllerImpl) IsInitialized() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.isInitialized
}

func (rc *rigControllerImpl) Disabled() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.disabled
}

func (rc *rigControllerImpl) MoveDuration() float32 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.moveDuration
}

func (rc *rigControllerImpl) Graph() *PresetGraph {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.graph
}
