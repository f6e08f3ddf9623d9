package rig

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

// NoNeighbor marks a direction with no adjacent preset.
const NoNeighbor = -1

// Direction is one of the four links a preset can have to another preset.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// Directions lists every Direction in declaration order.
var Directions = [...]Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps a lowercase direction name to its Direction.
//
// Parameters:
//   - name: one of "up", "down", "left", "right"
//
// Returns:
//   - Direction: the parsed direction
//   - bool: false if the name is not a direction
func ParseDirection(name string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == name {
			return d, true
		}
	}
	return 0, false
}

// Preset is a camera pose authored by a designer plus its links to neighboring presets.
// Presets are static configuration and are never mutated once placed in a PresetGraph.
type Preset struct {
	// Name is an optional label shown by hosts and used to reference presets from config files.
	Name string

	// Position is the world-space target position.
	Position mgl32.Vec3

	// Rotation is the target orientation as Euler angles in degrees (see common.EulerToQuat).
	Rotation mgl32.Vec3

	// Up, Down, Left and Right hold neighbor indices into the owning graph, or NoNeighbor.
	Up, Down, Left, Right int
}

// NewPreset creates a preset with no neighbors.
//
// Parameters:
//   - name: display name
//   - position: world-space position
//   - rotation: Euler angles in degrees
//
// Returns:
//   - Preset: the preset with every neighbor set to NoNeighbor
func NewPreset(name string, position, rotation mgl32.Vec3) Preset {
	return Preset{
		Name:     name,
		Position: position,
		Rotation: rotation,
		Up:       NoNeighbor,
		Down:     NoNeighbor,
		Left:     NoNeighbor,
		Right:    NoNeighbor,
	}
}

// Neighbor returns the neighbor index stored for dir.
// Unknown directions report NoNeighbor.
func (p Preset) Neighbor(dir Direction) int {
	switch dir {
	case DirectionUp:
		return p.Up
	case DirectionDown:
		return p.Down
	case DirectionLeft:
		return p.Left
	case DirectionRight:
		return p.Right
	default:
		return NoNeighbor
	}
}

// WithNeighbor returns a copy of p with the link for dir set to index.
//
// Parameters:
//   - dir: the direction to link
//   - index: neighbor index or NoNeighbor
//
// Returns:
//   - Preset: the updated copy
func (p Preset) WithNeighbor(dir Direction, index int) Preset {
	switch dir {
	case DirectionUp:
		p.Up = index
	case DirectionDown:
		p.Down = index
	case DirectionLeft:
		p.Left = index
	case DirectionRight:
		p.Right = index
	}
	return p
}

// Pose converts the preset's position and Euler rotation into a camera pose.
func (p Preset) Pose() common.Pose {
	return common.NewPose(p.Position, p.Rotation)
}

func (p Preset) label(index int) string {
	if p.Name != "" {
		return fmt.Sprintf("preset %d (%q)", index, p.Name)
	}
	return fmt.Sprintf("preset %d", index)
}
