// Package loader imports camera stations from glTF/GLB scenes so preset poses can be
// placed in a modelling tool instead of typed in by hand.
package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrStationNotFound is returned when no camera node has the requested name.
var ErrStationNotFound = errors.New("camera station not found")

// CameraStation is a camera node of a glTF scene with its world transform resolved.
type CameraStation struct {
	// Name is the node name, falling back to the camera name.
	Name string

	// Node is the index of the node in the glTF document.
	Node int

	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// Preset converts the station to a rig preset without neighbors.
//
// Returns:
//   - rig.Preset: a preset at the station's pose
func (s CameraStation) Preset() rig.Preset {
	return rig.NewPreset(s.Name, s.Position, common.QuatToEuler(s.Orientation))
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	cache map[string][]CameraStation
}

// Loader reads camera stations from glTF files and caches them by path.
type Loader interface {
	// Load imports the camera nodes of a .gltf or .glb file, in depth-first scene order.
	// A cached result is returned for a path already loaded.
	//
	// Parameters:
	//   - path: the file path to the glTF file
	//
	// Returns:
	//   - []CameraStation: the stations, possibly empty
	//   - error: if the file cannot be read or parsed
	Load(path string) ([]CameraStation, error)

	// LoadReader imports camera nodes from a stream and caches them under name.
	//
	// Parameters:
	//   - name: the cache key
	//   - r: the reader providing glTF data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - []CameraStation: the stations
	//   - error: if parsing fails
	LoadReader(name string, r io.Reader, isGLB bool) ([]CameraStation, error)

	// Station finds one station by name in a file.
	//
	// Parameters:
	//   - path: the glTF file
	//   - name: the node (or camera) name
	//
	// Returns:
	//   - CameraStation: the station
	//   - error: ErrStationNotFound, or a load error
	Station(path, name string) (CameraStation, error)

	// Evict removes a cached file so the next Load re-reads it.
	//
	// Parameters:
	//   - path: the cache key
	Evict(path string)
}

var _ Loader = &loader{}

// NewLoader creates a Loader with an empty cache.
//
// Returns:
//   - Loader: the loader
func NewLoader() Loader {
	return &loader{cache: make(map[string][]CameraStation)}
}

func (l *loader) Load(path string) ([]CameraStation, error) {
	key := filepath.Clean(path)
	if stations, ok := l.cached(key); ok {
		return stations, nil
	}

	p := newGLTFParser()
	if err := p.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return l.store(key, p.Document())
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) ([]CameraStation, error) {
	if stations, ok := l.cached(name); ok {
		return stations, nil
	}

	p := newGLTFParser()
	if err := p.ParseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return l.store(name, p.Document())
}

func (l *loader) Station(path, name string) (CameraStation, error) {
	stations, err := l.Load(path)
	if err != nil {
		return CameraStation{}, err
	}
	for _, s := range stations {
		if s.Name == name {
			return s, nil
		}
	}
	return CameraStation{}, fmt.Errorf("%s in %s: %w", name, path, ErrStationNotFound)
}

func (l *loader) Evict(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, filepath.Clean(path))
	delete(l.cache, path)
}

func (l *loader) cached(key string) ([]CameraStation, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stations, ok := l.cache[key]
	return stations, ok
}

func (l *loader) store(key string, doc *gltfDocument) ([]CameraStation, error) {
	stations, err := extractStations(doc)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache[key] = stations
	return stations, nil
}

// extractStations walks the default scene (or every root node when the document has no
// scenes) and collects nodes with a camera attached.
func extractStations(doc *gltfDocument) ([]CameraStation, error) {
	roots, err := sceneRoots(doc)
	if err != nil {
		return nil, err
	}

	var stations []CameraStation
	visited := make([]bool, len(doc.Nodes))

	var walk func(index int, parent mgl32.Mat4) error
	walk = func(index int, parent mgl32.Mat4) error {
		if index < 0 || index >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", index)
		}
		if visited[index] {
			return fmt.Errorf("node %d appears twice in the hierarchy", index)
		}
		visited[index] = true

		node := doc.Nodes[index]
		world := parent.Mul4(localTransform(node))

		if node.Camera != nil {
			if *node.Camera < 0 || *node.Camera >= len(doc.Cameras) {
				return fmt.Errorf("node %d: camera index %d out of range", index, *node.Camera)
			}
			name := node.Name
			if name == "" {
				name = doc.Cameras[*node.Camera].Name
			}
			stations = append(stations, CameraStation{
				Name:        name,
				Node:        index,
				Position:    world.Col(3).Vec3(),
				Orientation: rotationOf(world),
			})
		}

		for _, child := range node.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := walk(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return stations, nil
}

func sceneRoots(doc *gltfDocument) ([]int, error) {
	if len(doc.Scenes) == 0 {
		// No scenes: every node that is nobody's child is a root.
		isChild := make([]bool, len(doc.Nodes))
		for _, n := range doc.Nodes {
			for _, c := range n.Children {
				if c >= 0 && c < len(isChild) {
					isChild[c] = true
				}
			}
		}
		var roots []int
		for i := range doc.Nodes {
			if !isChild[i] {
				roots = append(roots, i)
			}
		}
		return roots, nil
	}

	scene := 0
	if doc.Scene != nil {
		scene = *doc.Scene
	}
	if scene < 0 || scene >= len(doc.Scenes) {
		return nil, fmt.Errorf("default scene %d out of range", scene)
	}
	return doc.Scenes[scene].Nodes, nil
}

// localTransform returns the node matrix, or T * R * S when the node uses TRS properties.
func localTransform(node gltfNode) mgl32.Mat4 {
	if node.Matrix != nil {
		return mgl32.Mat4(*node.Matrix)
	}

	m := mgl32.Ident4()
	if t := node.Translation; t != nil {
		m = mgl32.Translate3D(t[0], t[1], t[2])
	}
	if r := node.Rotation; r != nil {
		// glTF stores quaternions as (x, y, z, w)
		q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}.Normalize()
		m = m.Mul4(q.Mat4())
	}
	if s := node.Scale; s != nil {
		m = m.Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	}
	return m
}

// rotationOf strips scale from the upper 3x3 of m and returns its rotation.
func rotationOf(m mgl32.Mat4) mgl32.Quat {
	x := m.Col(0).Vec3().Normalize()
	y := m.Col(1).Vec3().Normalize()
	z := m.Col(2).Vec3().Normalize()
	basis := mgl32.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	return mgl32.Mat4ToQuat(basis).Normalize()
}

// IsGLTFPath reports whether path has a .gltf or .glb extension.
//
// Parameters:
//   - path: a file path
//
// Returns:
//   - bool: true for glTF files
func IsGLTFPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return true
	default:
		return false
	}
}
