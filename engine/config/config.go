// Package config reads and writes rig description files.
//
// A rig file is YAML:
//
//	start: front            # preset name; or start_index: 0
//	move_duration: 0.3      # seconds, default 0.3
//	easing: linear          # built-in curve name, ignored when curve is set
//	curve:                  # optional keyframes, see rig.NewKeyframeCurve
//	  - {time: 0, value: 0}
//	  - {time: 1, value: 1}
//	gltf: stations.glb      # optional, relative to this file
//	presets:
//	  - name: front
//	    position: [0, 2, 8]
//	    rotation: [-10, 0, 0]   # Euler degrees
//	    neighbors: {left: 1, right: back}   # index or preset name; omitted means none
//	  - name: top
//	    camera: TopCam          # pose taken from this camera node of the gltf file
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/loader"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// DefaultRigSource is the built-in five-station rig used when no file is given.
//
//go:embed default_rig.yaml
var DefaultRigSource []byte

// RigConfig is the on-disk description of a rig.
type RigConfig struct {
	Start        string      `yaml:"start,omitempty"`
	StartIndex   *int        `yaml:"start_index,omitempty"`
	MoveDuration *float32    `yaml:"move_duration,omitempty"`
	Easing       string      `yaml:"easing,omitempty"`
	Curve        []CurveKey  `yaml:"curve,omitempty"`
	GLTF         string      `yaml:"gltf,omitempty"`
	Presets      []PresetDef `yaml:"presets"`

	// baseDir resolves a relative GLTF path; set by Load.
	baseDir string
	loader  loader.Loader
}

// CurveKey is one keyframe of a custom easing curve.
type CurveKey struct {
	Time  float32 `yaml:"time"`
	Value float32 `yaml:"value"`
}

// PresetDef describes one preset.
type PresetDef struct {
	Name      string     `yaml:"name,omitempty"`
	Camera    string     `yaml:"camera,omitempty"`
	Position  [3]float32 `yaml:"position,flow"`
	Rotation  [3]float32 `yaml:"rotation,flow"`
	Neighbors Neighbors  `yaml:"neighbors,omitempty,flow"`
}

// Neighbors holds the four directional links of a preset. Nil links mean no neighbor.
type Neighbors struct {
	Up    *NeighborRef `yaml:"up,omitempty"`
	Down  *NeighborRef `yaml:"down,omitempty"`
	Left  *NeighborRef `yaml:"left,omitempty"`
	Right *NeighborRef `yaml:"right,omitempty"`
}

func (n Neighbors) get(dir rig.Direction) *NeighborRef {
	switch dir {
	case rig.DirectionUp:
		return n.Up
	case rig.DirectionDown:
		return n.Down
	case rig.DirectionLeft:
		return n.Left
	case rig.DirectionRight:
		return n.Right
	default:
		return nil
	}
}

// NeighborRef points at another preset by index or, when Name is set, by name.
type NeighborRef struct {
	Index int
	Name  string
}

// UnmarshalYAML accepts an integer index, a preset name, or null for no neighbor.
func (r *NeighborRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: neighbor must be an index or a preset name", value.Line)
	}
	switch value.ShortTag() {
	case "!!null":
		r.Index, r.Name = rig.NoNeighbor, ""
		return nil
	case "!!int":
		r.Name = ""
		return value.Decode(&r.Index)
	default:
		r.Index, r.Name = rig.NoNeighbor, value.Value
		return nil
	}
}

// MarshalYAML writes the name when present, otherwise the index.
func (r NeighborRef) MarshalYAML() (any, error) {
	if r.Name != "" {
		return r.Name, nil
	}
	return r.Index, nil
}

// Index returns a NeighborRef pointing at a preset index.
func Index(i int) *NeighborRef {
	return &NeighborRef{Index: i}
}

// Named returns a NeighborRef pointing at a preset by name.
func Named(name string) *NeighborRef {
	return &NeighborRef{Index: rig.NoNeighbor, Name: name}
}

// Load reads and parses a rig file.
//
// Parameters:
//   - path: file path
//
// Returns:
//   - *RigConfig: the parsed config
//   - error: if the file cannot be read or parsed
func Load(path string) (*RigConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rig file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rig file %s: %w", path, err)
	}
	cfg.baseDir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes rig YAML. Unknown fields are rejected.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *RigConfig: the parsed config
//   - error: if decoding fails
func Parse(data []byte) (*RigConfig, error) {
	var cfg RigConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// Default parses the embedded default rig.
//
// Returns:
//   - *RigConfig: the default config
//   - error: only if the embedded file is broken
func Default() (*RigConfig, error) {
	return Parse(DefaultRigSource)
}

// Save writes the config to path as YAML.
//
// Parameters:
//   - path: destination file
//
// Returns:
//   - error: if encoding or writing fails
func (c *RigConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ErrDuplicatePresetName is returned when two presets share a name.
var ErrDuplicatePresetName = errors.New("duplicate preset name")

// Graph resolves neighbor names and builds the validated preset graph.
// Every failure is a fatal *rig.ConfigurationError.
//
// Returns:
//   - *rig.PresetGraph: the graph
//   - error: rig configuration errors; an unknown neighbor name wraps rig.ErrInvalidNeighbor
func (c *RigConfig) Graph() (*rig.PresetGraph, error) {
	names := make(map[string]int, len(c.Presets))
	for i, p := range c.Presets {
		name := common.Coalesce(p.Name, p.Camera)
		if name == "" {
			continue
		}
		if _, dup := names[name]; dup {
			return nil, rig.NewConfigurationError(rig.SeverityFatal, ErrDuplicatePresetName, "%q", name)
		}
		names[name] = i
	}

	presets := make([]rig.Preset, len(c.Presets))
	for i, def := range c.Presets {
		p := rig.NewPreset(def.Name, mgl32.Vec3(def.Position), mgl32.Vec3(def.Rotation))
		if def.Camera != "" {
			station, err := c.station(def.Camera)
			if err != nil {
				return nil, rig.NewConfigurationError(rig.SeverityFatal, err, "preset %d", i)
			}
			p = rig.NewPreset(common.Coalesce(def.Name, station.Name), station.Position, common.QuatToEuler(station.Orientation))
		}
		for _, dir := range rig.Directions {
			ref := def.Neighbors.get(dir)
			if ref == nil {
				continue
			}
			index := ref.Index
			if ref.Name != "" {
				n, ok := names[ref.Name]
				if !ok {
					return nil, rig.NewConfigurationError(rig.SeverityFatal, rig.ErrInvalidNeighbor,
						"preset %d links %s to unknown preset %q", i, dir, ref.Name)
				}
				index = n
			}
			p = p.WithNeighbor(dir, index)
		}
		presets[i] = p
	}
	return rig.NewPresetGraph(presets)
}

// station looks up a camera node in the config's glTF file.
func (c *RigConfig) station(name string) (loader.CameraStation, error) {
	if c.GLTF == "" {
		return loader.CameraStation{}, fmt.Errorf("camera %q referenced but no gltf file is set", name)
	}
	path := c.GLTF
	if !filepath.IsAbs(path) && c.baseDir != "" {
		path = filepath.Join(c.baseDir, path)
	}
	if c.loader == nil {
		c.loader = loader.NewLoader()
	}
	return c.loader.Station(path, name)
}

// ResolveStartIndex picks the start preset: the named Start preset, else StartIndex, else 0.
// An unknown start name resolves to NoNeighbor so the controller reports it and falls back to 0.
//
// Parameters:
//   - graph: the graph built from this config
//
// Returns:
//   - int: the start index, possibly out of range
func (c *RigConfig) ResolveStartIndex(graph *rig.PresetGraph) int {
	if c.Start != "" {
		i, _ := graph.IndexOf(c.Start)
		return i
	}
	if c.StartIndex != nil {
		return *c.StartIndex
	}
	return 0
}

// ControllerOptions converts the timing and easing settings into controller options.
//
// Returns:
//   - []rig.RigControllerOption: duration and easing options
//   - error: if the easing name or curve is invalid
func (c *RigConfig) ControllerOptions() ([]rig.RigControllerOption, error) {
	duration := rig.DefaultMoveDuration
	if c.MoveDuration != nil {
		duration = *c.MoveDuration
	}

	var easing rig.Easing
	if len(c.Curve) > 0 {
		keys := make([]rig.CurveKey, len(c.Curve))
		for i, k := range c.Curve {
			keys[i] = rig.CurveKey{Time: k.Time, Value: k.Value}
		}
		curve, err := rig.NewKeyframeCurve(keys...)
		if err != nil {
			return nil, fmt.Errorf("invalid curve: %w", err)
		}
		easing = curve
	} else {
		e, err := rig.EasingByName(common.Coalesce(c.Easing, "linear"))
		if err != nil {
			return nil, err
		}
		easing = e
	}

	return []rig.RigControllerOption{
		rig.WithMoveDuration(duration),
		rig.WithEasing(easing),
	}, nil
}

// NewRigController builds a controller from cfg and initializes it against sink.
// Options in extra are applied after the config's own options. A controller is returned even on
// failure: config problems are reported to its diagnostics as fatal and leave it disabled.
//
// Parameters:
//   - cfg: the rig description
//   - sink: the camera to drive
//   - extra: additional controller options (diagnostics, callbacks)
//
// Returns:
//   - rig.RigController: the controller, disabled if err is non-nil
//   - error: a fatal *rig.ConfigurationError
func NewRigController(cfg *RigConfig, sink rig.PoseSink, extra ...rig.RigControllerOption) (rig.RigController, error) {
	options, err := cfg.ControllerOptions()
	if err != nil {
		rc := rig.NewRigController(extra...)
		return rc, rc.Fail(err)
	}
	rc := rig.NewRigController(append(options, extra...)...)

	graph, err := cfg.Graph()
	if err != nil {
		return rc, rc.Fail(err)
	}
	if err := rc.Initialize(graph, cfg.ResolveStartIndex(graph), sink); err != nil {
		return rc, err
	}
	return rc, nil
}
