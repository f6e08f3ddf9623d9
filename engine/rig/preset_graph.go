package rig

// PresetGraph is the ordered, read-only collection of presets a rig navigates.
// Indices are stable for the lifetime of the graph. Links are designer-authored and need not
// be symmetric: up from A reaching B says nothing about down from B.
type PresetGraph struct {
	presets []Preset
}

// NewPresetGraph copies presets into a new graph and validates it.
//
// Parameters:
//   - presets: the presets in index order
//
// Returns:
//   - *PresetGraph: the validated graph, or nil on error
//   - error: a fatal *ConfigurationError wrapping ErrNoPresets or ErrInvalidNeighbor
func NewPresetGraph(presets []Preset) (*PresetGraph, error) {
	g := &PresetGraph{presets: make([]Preset, len(presets))}
	copy(g.presets, presets)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks that the graph is non-empty and that every link is NoNeighbor or in range.
// A nil graph is reported as empty.
//
// Returns:
//   - error: a fatal *ConfigurationError, or nil if the graph is well formed
func (g *PresetGraph) Validate() error {
	if g.Count() == 0 {
		return NewConfigurationError(SeverityFatal, ErrNoPresets, "")
	}
	for i, p := range g.presets {
		for _, dir := range Directions {
			n := p.Neighbor(dir)
			if n == NoNeighbor || (n >= 0 && n < len(g.presets)) {
				continue
			}
			return NewConfigurationError(SeverityFatal, ErrInvalidNeighbor,
				"%s links %s to %d, graph has %d presets", p.label(i), dir, n, len(g.presets))
		}
	}
	return nil
}

// Count returns the number of presets. A nil graph has none.
func (g *PresetGraph) Count() int {
	if g == nil {
		return 0
	}
	return len(g.presets)
}

// PresetAt returns the preset stored at index.
// Panics if index is out of range, like a slice access.
func (g *PresetGraph) PresetAt(index int) Preset {
	return g.presets[index]
}

// Neighbor resolves the link leaving index in direction dir.
//
// Parameters:
//   - index: the preset to start from
//   - dir: the direction to follow
//
// Returns:
//   - int: the neighbor index, or NoNeighbor
//   - bool: true if the link points at a preset in this graph
func (g *PresetGraph) Neighbor(index int, dir Direction) (int, bool) {
	if index < 0 || index >= g.Count() {
		return NoNeighbor, false
	}
	n := g.presets[index].Neighbor(dir)
	if n < 0 || n >= len(g.presets) {
		return NoNeighbor, false
	}
	return n, true
}

// IndexOf finds the first preset with the given name.
//
// Parameters:
//   - name: the preset name
//
// Returns:
//   - int: the preset index, or NoNeighbor
//   - bool: true if a preset was found
func (g *PresetGraph) IndexOf(name string) (int, bool) {
	for i := 0; i < g.Count(); i++ {
		if g.presets[i].Name == name {
			return i, true
		}
	}
	return NoNeighbor, false
}

// Presets returns a copy of all presets in index order.
func (g *PresetGraph) Presets() []Preset {
	out := make([]Preset, g.Count())
	if g != nil {
		copy(out, g.presets)
	}
	return out
}
