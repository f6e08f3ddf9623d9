package rig

import (
	"github.com/go-gl/mathgl/mgl32"
)

// fakeSink records every write the controller makes.
type fakeSink struct {
	position    mgl32.Vec3
	orientation mgl32.Quat
	writes      int
}

func newFakeSink() *fakeSink {
	return &fakeSink{orientation: mgl32.QuatIdent()}
}

func (s *fakeSink) Position() mgl32.Vec3 { return s.position }
func (s *fakeSink) Orientation() mgl32.Quat {
	return s.orientation
}

func (s *fakeSink) SetPosition(position mgl32.Vec3) {
	s.position = position
	s.writes++
}

func (s *fakeSink) SetOrientation(orientation mgl32.Quat) {
	s.orientation = orientation
	s.writes++
}

type report struct {
	severity Severity
	err      error
}

// recordingDiagnostics collects reports instead of logging them.
type recordingDiagnostics struct {
	reports []report
}

func (d *recordingDiagnostics) Report(severity Severity, err error) {
	d.reports = append(d.reports, report{severity: severity, err: err})
}

// lineGraph builds A <-> B along x with A at the origin and B at (5, 0, 0) turned 90 degrees.
func lineGraph() []Preset {
	a := NewPreset("A", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 0}).WithNeighbor(DirectionRight, 1)
	b := NewPreset("B", mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 90, 0}).WithNeighbor(DirectionLeft, 0)
	return []Preset{a, b}
}

// crossGraph builds a center preset with one neighbor in each direction.
// Only the center links outward; the outer presets are dead ends except for a link back down from top.
func crossGraph() []Preset {
	center := NewPreset("center", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 0})
	center.Up, center.Down, center.Left, center.Right = 1, 2, 3, 4
	top := NewPreset("top", mgl32.Vec3{0, 5, 0}, mgl32.Vec3{-30, 0, 0}).WithNeighbor(DirectionDown, 0)
	bottom := NewPreset("bottom", mgl32.Vec3{0, -5, 0}, mgl32.Vec3{30, 0, 0})
	left := NewPreset("left", mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{0, -45, 0})
	right := NewPreset("right", mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 45, 0})
	return []Preset{center, top, bottom, left, right}
}
