package loader

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stationsGLTF = `{
  "asset": {"version": "2.0", "generator": "test"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"name": "Rig", "translation": [0, 2, 0], "children": [1, 2]},
    {"name": "CamFront", "camera": 0, "translation": [0, 0, 5]},
    {"camera": 1, "translation": [1, 0, 0], "rotation": [0, 0.7071068, 0, 0.7071068], "scale": [2, 2, 2]},
    {"name": "Orphan", "camera": 0}
  ],
  "cameras": [
    {"name": "front", "type": "perspective"},
    {"name": "Side", "type": "perspective"}
  ]
}`

// toGLB wraps a JSON document in a GLB container with a 4-byte aligned JSON chunk.
func toGLB(t *testing.T, doc string) []byte {
	t.Helper()
	jsonChunk := []byte(doc)
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}

	var buf bytes.Buffer
	header := gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(12 + 8 + len(jsonChunk))}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, header))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(jsonChunk)), ChunkType: gltfGLBChunkJSON}))
	buf.Write(jsonChunk)
	return buf.Bytes()
}

func assertStations(t *testing.T, stations []CameraStation) {
	t.Helper()
	require.Len(t, stations, 2, "orphan node outside the scene is skipped")

	front := stations[0]
	assert.Equal(t, "CamFront", front.Name)
	assert.Equal(t, 1, front.Node)
	assert.True(t, mgl32.Vec3{0, 2, 5}.ApproxEqual(front.Position))
	assert.InDelta(t, 1, front.Orientation.W, 1e-6)

	side := stations[1]
	assert.Equal(t, "Side", side.Name, "unnamed node takes the camera name")
	assert.True(t, mgl32.Vec3{1, 2, 0}.ApproxEqualThreshold(side.Position, 1e-5))

	preset := side.Preset()
	assert.Equal(t, "Side", preset.Name)
	assert.True(t, mgl32.Vec3{0, 90, 0}.ApproxEqualThreshold(preset.Rotation, 1e-2), "got %v", preset.Rotation)
}

func TestLoadReaderGLTF(t *testing.T) {
	stations, err := NewLoader().LoadReader("stations", strings.NewReader(stationsGLTF), false)
	require.NoError(t, err)
	assertStations(t, stations)
}

func TestLoadReaderGLB(t *testing.T) {
	stations, err := NewLoader().LoadReader("stations.glb", bytes.NewReader(toGLB(t, stationsGLTF)), true)
	require.NoError(t, err)
	assertStations(t, stations)
}

func TestLoadFileCachesAndEvicts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.glb")
	require.NoError(t, os.WriteFile(path, toGLB(t, stationsGLTF), 0644))

	l := NewLoader()
	stations, err := l.Load(path)
	require.NoError(t, err)
	assertStations(t, stations)

	// cached: the file is no longer needed
	require.NoError(t, os.Remove(path))
	_, err = l.Load(path)
	assert.NoError(t, err)

	l.Evict(path)
	_, err = l.Load(path)
	assert.Error(t, err)
}

func TestStationByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.gltf")
	require.NoError(t, os.WriteFile(path, []byte(stationsGLTF), 0644))

	l := NewLoader()
	s, err := l.Station(path, "CamFront")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Node)

	_, err = l.Station(path, "Orphan")
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestNoScenesUsesRootNodes(t *testing.T) {
	doc := `{"asset": {"version": "2.0"},
	  "nodes": [{"name": "a", "camera": 0, "children": [1]}, {"name": "b", "camera": 0}],
	  "cameras": [{"type": "perspective"}]}`
	stations, err := NewLoader().LoadReader("roots", strings.NewReader(doc), false)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "a", stations[0].Name)
	assert.Equal(t, "b", stations[1].Name)
}

func TestMatrixNode(t *testing.T) {
	doc := `{"asset": {"version": "2.0"},
	  "nodes": [{"name": "m", "camera": 0, "matrix": [1,0,0,0, 0,1,0,0, 0,0,1,0, 3,4,5,1]}],
	  "cameras": [{"type": "perspective"}]}`
	stations, err := NewLoader().LoadReader("matrix", strings.NewReader(doc), false)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, mgl32.Vec3{3, 4, 5}, stations[0].Position)
}

func TestMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"wrong version", `{"asset": {"version": "1.0"}}`},
		{"not json", `camera`},
		{"cycle", `{"asset": {"version": "2.0"}, "scenes": [{"nodes": [0]}], "nodes": [{"children": [0]}]}`},
		{"bad child", `{"asset": {"version": "2.0"}, "scenes": [{"nodes": [0]}], "nodes": [{"children": [7]}]}`},
		{"bad camera", `{"asset": {"version": "2.0"}, "scenes": [{"nodes": [0]}], "nodes": [{"camera": 2}]}`},
		{"bad scene", `{"asset": {"version": "2.0"}, "scene": 3, "scenes": [{"nodes": []}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().LoadReader(tt.name, strings.NewReader(tt.doc), false)
			assert.Error(t, err)
		})
	}
}

func TestBadGLB(t *testing.T) {
	_, err := NewLoader().LoadReader("short", bytes.NewReader([]byte("glTF")), true)
	assert.Error(t, err)

	data := toGLB(t, stationsGLTF)
	binary.LittleEndian.PutUint32(data[0:4], 0xdeadbeef)
	_, err = NewLoader().LoadReader("magic", bytes.NewReader(data), true)
	assert.ErrorIs(t, err, errInvalidGLBMagic)
}

func TestIsGLTFPath(t *testing.T) {
	assert.True(t, IsGLTFPath("scene.GLB"))
	assert.True(t, IsGLTFPath("dir/scene.gltf"))
	assert.False(t, IsGLTFPath("rig.yaml"))
}
