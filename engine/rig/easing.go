package rig

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-rig/common"
)

// Easing shapes transition progress. Implementations map [0, 1] monotonically onto [0, 1]
// with Evaluate(0) == 0 and Evaluate(1) == 1. The controller clamps results outside [0, 1].
type Easing interface {
	// Evaluate maps normalized progress to the eased fraction.
	//
	// Parameters:
	//   - t: normalized progress in [0, 1]
	//
	// Returns:
	//   - float32: the eased fraction
	Evaluate(t float32) float32
}

// EasingFunc adapts a plain function to the Easing interface.
type EasingFunc func(t float32) float32

func (f EasingFunc) Evaluate(t float32) float32 {
	return f(t)
}

// Built-in curves.
var (
	Linear Easing = EasingFunc(func(t float32) float32 {
		return t
	})

	EaseInOutCubic Easing = EasingFunc(func(t float32) float32 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	})

	SmoothStep Easing = EasingFunc(func(t float32) float32 {
		return t * t * (3 - 2*t)
	})

	EaseOutQuad Easing = EasingFunc(func(t float32) float32 {
		return 1 - (1-t)*(1-t)
	})
)

var easingsByName = map[string]Easing{
	"linear":            Linear,
	"ease_in_out_cubic": EaseInOutCubic,
	"smooth_step":       SmoothStep,
	"ease_out_quad":     EaseOutQuad,
}

// EasingByName looks up a built-in curve. Names are case-insensitive and accept '-' for '_'.
//
// Parameters:
//   - name: curve name such as "linear" or "ease_in_out_cubic"; empty selects Linear
//
// Returns:
//   - Easing: the curve
//   - error: if the name is unknown
func EasingByName(name string) (Easing, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if key == "" {
		return Linear, nil
	}
	e, ok := easingsByName[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return e, nil
}

// EasingNames returns the names accepted by EasingByName, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easingsByName))
	for name := range easingsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CurveKey is a single authored point of a KeyframeCurve.
type CurveKey struct {
	Time  float32
	Value float32
}

// KeyframeCurve is a piecewise-linear easing curve through authored keys.
// Progress before the first key evaluates to the first value, after the last key to the last value.
type KeyframeCurve struct {
	keys []CurveKey
}

var _ Easing = &KeyframeCurve{}

// NewKeyframeCurve validates keys and builds a curve from them.
// Keys must be strictly increasing in time and non-decreasing in value, with every
// time and value inside [0, 1].
//
// Parameters:
//   - keys: the curve points in time order
//
// Returns:
//   - *KeyframeCurve: the curve
//   - error: if there are fewer than two keys or they violate the rules above
func NewKeyframeCurve(keys ...CurveKey) (*KeyframeCurve, error) {
	if len(keys) < 2 {
		return nil, fmt.Errorf("keyframe curve needs at least 2 keys, got %d", len(keys))
	}
	for i, k := range keys {
		if k.Time < 0 || k.Time > 1 || k.Value < 0 || k.Value > 1 {
			return nil, fmt.Errorf("keyframe %d (%g, %g) is outside the unit square", i, k.Time, k.Value)
		}
		if i == 0 {
			continue
		}
		prev := keys[i-1]
		if k.Time <= prev.Time {
			return nil, fmt.Errorf("keyframe %d time %g does not follow %g", i, k.Time, prev.Time)
		}
		if k.Value < prev.Value {
			return nil, fmt.Errorf("keyframe %d value %g decreases from %g", i, k.Value, prev.Value)
		}
	}
	c := &KeyframeCurve{keys: make([]CurveKey, len(keys))}
	copy(c.keys, keys)
	return c, nil
}

func (c *KeyframeCurve) Evaluate(t float32) float32 {
	t = common.Clamp01(t)
	first, last := c.keys[0], c.keys[len(c.keys)-1]
	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}
	// first index whose time is >= t; guaranteed to be in [1, len-1]
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time >= t })
	a, b := c.keys[i-1], c.keys[i]
	f := (t - a.Time) / (b.Time - a.Time)
	return a.Value + (b.Value-a.Value)*f
}

// Keys returns a copy of the curve's keys.
func (c *KeyframeCurve) Keys() []CurveKey {
	out := make([]CurveKey, len(c.keys))
	copy(out, c.keys)
	return out
}
