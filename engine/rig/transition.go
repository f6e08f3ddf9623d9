package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
)

// State is the phase of the rig's transition state machine.
type State int

const (
	StateIdle State = iota
	StateTransitioning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// completionTolerance absorbs float32 rounding in summed frame deltas: progress this close to 1
// counts as arrived, so three 0.1s ticks over a 0.3s move finish on the third tick.
const completionTolerance = 1e-6

// transition is a single in-flight move from a captured start pose to a preset's pose.
type transition struct {
	target  int
	start   common.Pose
	end     common.Pose
	elapsed float64
	t       float32
}

func newTransition(target int, start, end common.Pose) *transition {
	return &transition{
		target: target,
		start:  start,
		end:    end,
	}
}

// advance moves the transition forward by deltaTime seconds and returns the pose to write.
// The returned bool is true once the transition has arrived, in which case the pose is exactly
// the end pose.
func (tr *transition) advance(deltaTime, duration float32, easing Easing) (common.Pose, bool) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	tr.elapsed += float64(deltaTime)

	if duration <= 0 {
		tr.t = 1
	} else {
		progress := tr.elapsed / float64(duration)
		if progress >= 1-completionTolerance {
			progress = 1
		}
		tr.t = common.Clamp01(float32(progress))
	}

	if tr.t >= 1 {
		return tr.end, true
	}

	// one clamped fraction for both channels, even if a custom curve overshoots
	eased := common.Clamp01(easing.Evaluate(tr.t))
	return common.Pose{
		Position:    common.LerpVec3(tr.start.Position, tr.end.Position, eased),
		Orientation: common.SlerpShortest(tr.start.Orientation, tr.end.Orientation, eased),
	}, false
}
