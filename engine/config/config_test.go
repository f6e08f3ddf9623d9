package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoStations = `
move_duration: 0.5
presets:
  - name: a
    position: [0, 0, 0]
    rotation: [0, 0, 0]
    neighbors: {right: 1, left: null}
  - name: b
    position: [5, 0, 0]
    rotation: [0, 90, 0]
    neighbors: {left: a}
`

func TestParseNeighborsByIndexAndName(t *testing.T) {
	cfg, err := Parse([]byte(twoStations))
	require.NoError(t, err)

	graph, err := cfg.Graph()
	require.NoError(t, err)
	require.Equal(t, 2, graph.Count())

	a := graph.PresetAt(0)
	assert.Equal(t, 1, a.Right)
	assert.Equal(t, rig.NoNeighbor, a.Left)
	assert.Equal(t, rig.NoNeighbor, a.Up)
	assert.Equal(t, rig.NoNeighbor, a.Down)

	b := graph.PresetAt(1)
	assert.Equal(t, 0, b.Left)
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, b.Position)
	assert.Equal(t, mgl32.Vec3{0, 90, 0}, b.Rotation)
}

func TestUnknownNeighborName(t *testing.T) {
	cfg, err := Parse([]byte(`
presets:
  - name: a
    neighbors: {up: nowhere}
`))
	require.NoError(t, err)

	_, err = cfg.Graph()
	assert.ErrorIs(t, err, rig.ErrInvalidNeighbor)
	assert.True(t, rig.IsFatal(err))
	assert.Contains(t, err.Error(), "nowhere")
}

func TestOutOfRangeNeighborIndexIsFatal(t *testing.T) {
	cfg, err := Parse([]byte(`
presets:
  - name: a
    neighbors: {down: 3}
`))
	require.NoError(t, err)

	_, err = cfg.Graph()
	assert.ErrorIs(t, err, rig.ErrInvalidNeighbor)
	assert.True(t, rig.IsFatal(err))
}

func TestEmptyPresetList(t *testing.T) {
	cfg, err := Parse([]byte("presets: []\n"))
	require.NoError(t, err)

	_, err = cfg.Graph()
	assert.ErrorIs(t, err, rig.ErrNoPresets)
}

func TestDuplicatePresetName(t *testing.T) {
	cfg, err := Parse([]byte(`
presets:
  - name: a
  - name: a
`))
	require.NoError(t, err)

	_, err = cfg.Graph()
	assert.ErrorContains(t, err, "duplicate preset name")
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("presets: []\nfov: 60\n"))
	assert.Error(t, err)
}

func TestParseRejectsStructuredNeighbor(t *testing.T) {
	_, err := Parse([]byte(`
presets:
  - name: a
    neighbors: {up: [1, 2]}
`))
	assert.Error(t, err)
}

func TestControllerOptionsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("presets: [{name: only}]\n"))
	require.NoError(t, err)

	options, err := cfg.ControllerOptions()
	require.NoError(t, err)

	rc := rig.NewRigController(options...)
	assert.Equal(t, rig.DefaultMoveDuration, rc.MoveDuration())
}

func TestControllerOptionsExplicitZeroDuration(t *testing.T) {
	cfg, err := Parse([]byte("move_duration: 0\npresets: [{name: only}]\n"))
	require.NoError(t, err)

	options, err := cfg.ControllerOptions()
	require.NoError(t, err)

	rc := rig.NewRigController(options...)
	assert.Equal(t, float32(0), rc.MoveDuration())
}

func TestControllerOptionsUnknownEasing(t *testing.T) {
	cfg, err := Parse([]byte("easing: bouncy\npresets: [{name: only}]\n"))
	require.NoError(t, err)

	_, err = cfg.ControllerOptions()
	assert.ErrorContains(t, err, "bouncy")
}

func TestControllerOptionsInvalidCurve(t *testing.T) {
	cfg, err := Parse([]byte(`
curve:
  - {time: 1, value: 1}
  - {time: 0, value: 0}
presets: [{name: only}]
`))
	require.NoError(t, err)

	_, err = cfg.ControllerOptions()
	assert.ErrorContains(t, err, "invalid curve")
}

func TestDefaultRig(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	graph, err := cfg.Graph()
	require.NoError(t, err)
	assert.Equal(t, 5, graph.Count())
	assert.Equal(t, 0, cfg.ResolveStartIndex(graph))

	front := graph.PresetAt(0)
	assert.Equal(t, "front", front.Name)
	assert.Equal(t, 1, front.Left)
	assert.Equal(t, 2, front.Right)
	assert.Equal(t, 4, front.Up)
	assert.Equal(t, rig.NoNeighbor, front.Down)
}

func TestResolveStartIndex(t *testing.T) {
	cfg, err := Parse([]byte(twoStations))
	require.NoError(t, err)
	graph, err := cfg.Graph()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.ResolveStartIndex(graph))

	one := 1
	cfg.StartIndex = &one
	assert.Equal(t, 1, cfg.ResolveStartIndex(graph))

	cfg.Start = "a"
	assert.Equal(t, 0, cfg.ResolveStartIndex(graph), "start name wins over start_index")

	cfg.Start = "missing"
	assert.Equal(t, rig.NoNeighbor, cfg.ResolveStartIndex(graph))
}

func TestSaveAndLoad(t *testing.T) {
	cfg, err := Parse([]byte(twoStations))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rig.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	graph, err := loaded.Graph()
	require.NoError(t, err)
	assert.Equal(t, 1, graph.PresetAt(0).Right)
	assert.Equal(t, 0, graph.PresetAt(1).Left)
	require.NotNil(t, loaded.MoveDuration)
	assert.Equal(t, float32(0.5), *loaded.MoveDuration)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read rig file")
}

func TestNewRigControllerDrivesCamera(t *testing.T) {
	cfg, err := Parse([]byte(twoStations))
	require.NoError(t, err)

	cam := camera.NewCamera()
	rc, err := NewRigController(cfg, cam)
	require.NoError(t, err)

	assert.True(t, rc.IsInitialized())
	assert.Equal(t, float32(0.5), rc.MoveDuration())

	assert.True(t, rc.Move(rig.DirectionRight))
	rc.Tick(0.5)
	assert.Equal(t, 1, rc.CurrentIndex())
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, cam.Position())
}

func TestNewRigControllerUnknownStartFallsBack(t *testing.T) {
	cfg, err := Parse([]byte(twoStations))
	require.NoError(t, err)
	cfg.Start = "missing"

	var severities []rig.Severity
	diagnostics := rig.DiagnosticsFunc(func(severity rig.Severity, err error) {
		severities = append(severities, severity)
	})

	rc, err := NewRigController(cfg, camera.NewCamera(), rig.WithDiagnostics(diagnostics))
	require.NoError(t, err)
	assert.Equal(t, 0, rc.CurrentIndex())
	assert.Equal(t, []rig.Severity{rig.SeverityWarning}, severities)
}

func TestNewRigControllerNilSink(t *testing.T) {
	cfg, err := Parse([]byte(twoStations))
	require.NoError(t, err)

	rc, err := NewRigController(cfg, nil, rig.WithDiagnostics(rig.DiagnosticsFunc(func(rig.Severity, error) {})))
	assert.ErrorIs(t, err, rig.ErrNoPoseSink)
	require.NotNil(t, rc)
	assert.True(t, rc.Disabled())
}

func TestNewRigControllerReportsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{name: "no presets", yaml: "presets: []\n", want: rig.ErrNoPresets},
		{name: "out of range neighbor", yaml: "presets:\n  - name: a\n    neighbors: {down: 3}\n", want: rig.ErrInvalidNeighbor},
		{name: "unknown neighbor name", yaml: "presets:\n  - name: a\n    neighbors: {up: nowhere}\n", want: rig.ErrInvalidNeighbor},
		{name: "duplicate name", yaml: "presets:\n  - name: a\n  - name: a\n", want: ErrDuplicatePresetName},
		{name: "unknown easing", yaml: "easing: wobble\npresets:\n  - name: a\n", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			var severities []rig.Severity
			diagnostics := rig.DiagnosticsFunc(func(severity rig.Severity, err error) {
				severities = append(severities, severity)
			})
			cam := camera.NewCamera()
			before := cam.Position()

			rc, err := NewRigController(cfg, cam, rig.WithDiagnostics(diagnostics))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.True(t, rig.IsFatal(err))
			require.NotNil(t, rc)
			assert.True(t, rc.Disabled())
			assert.False(t, rc.IsInitialized())
			assert.Equal(t, []rig.Severity{rig.SeverityFatal}, severities)
			assert.Equal(t, before, cam.Position())
		})
	}
}

func TestGalleryAsset(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "assets", "gallery.yaml"))
	require.NoError(t, err)

	graph, err := cfg.Graph()
	require.NoError(t, err)
	assert.Equal(t, 4, graph.Count())
	assert.Equal(t, 1, cfg.ResolveStartIndex(graph))

	options, err := cfg.ControllerOptions()
	require.NoError(t, err)
	rc := rig.NewRigController(options...)
	assert.Equal(t, float32(0.6), rc.MoveDuration())
}

const stationsGLTF = `{
  "asset": {"version": "2.0"},
  "scenes": [{"nodes": [0, 1]}],
  "nodes": [
    {"name": "FrontCam", "camera": 0, "translation": [0, 2, 8]},
    {"name": "SideCam", "camera": 0, "translation": [8, 2, 0], "rotation": [0, 0.7071068, 0, 0.7071068]}
  ],
  "cameras": [{"type": "perspective"}]
}`

func TestPresetsFromGLTFCameras(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stations.gltf"), []byte(stationsGLTF), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rig.yaml"), []byte(`
gltf: stations.gltf
start: SideCam
presets:
  - name: front
    camera: FrontCam
    neighbors: {right: SideCam}
  - camera: SideCam
    neighbors: {left: front}
`), 0644))

	cfg, err := Load(filepath.Join(dir, "rig.yaml"))
	require.NoError(t, err)

	graph, err := cfg.Graph()
	require.NoError(t, err)
	require.Equal(t, 2, graph.Count())

	front := graph.PresetAt(0)
	assert.Equal(t, "front", front.Name)
	assert.Equal(t, mgl32.Vec3{0, 2, 8}, front.Position)
	assert.Equal(t, 1, front.Right)

	side := graph.PresetAt(1)
	assert.Equal(t, "SideCam", side.Name)
	assert.True(t, mgl32.Vec3{0, 90, 0}.ApproxEqualThreshold(side.Rotation, 1e-2), "got %v", side.Rotation)
	assert.Equal(t, 0, side.Left)

	assert.Equal(t, 1, cfg.ResolveStartIndex(graph))
}

func TestCameraWithoutGLTF(t *testing.T) {
	cfg, err := Parse([]byte("presets: [{camera: Nowhere}]\n"))
	require.NoError(t, err)

	_, err = cfg.Graph()
	assert.ErrorContains(t, err, "no gltf file")
}
