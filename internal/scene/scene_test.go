package scene

import (
	stdmath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/meshcap/meshcap/internal/logger"
	"github.com/meshcap/meshcap/pkg/math"
)

func TestMain(m *testing.M) {
	// Quiet logger for tests
	logger.InitWithFileConfig("error", logger.FileConfig{}, false)
	os.Exit(m.Run())
}

const triangleOBJ = `o tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func writeScene(t *testing.T, sceneYAML string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(triangleOBJ), 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(sceneYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScene(t *testing.T) {
	path := writeScene(t, `
objects:
  - name: room_floor
    mesh: tri.obj
    position: [1, 2, 3]
  - name: body
    mesh: tri.obj
    animation:
      - time: 0
        position: [0, 0, 0]
      - time: 1
        position: [2, 0, 0]
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(s.Objects()) != 2 {
		t.Fatalf("objects: got %d, want 2", len(s.Objects()))
	}

	floor := s.Objects()[0]
	if floor.Name != "room_floor" {
		t.Errorf("name: got %q", floor.Name)
	}
	if floor.Animated() {
		t.Error("floor should not be animated")
	}
	if got := floor.Transform().TransformPoint(math.Vec3{}); got != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("floor origin: got %v", got)
	}
	if floor.Mesh.TriangleCount() != 1 {
		t.Errorf("triangle count: got %d", floor.Mesh.TriangleCount())
	}
	if floor.Texture != nil {
		t.Error("floor should have no texture")
	}

	if !s.Objects()[1].Animated() {
		t.Error("body should be animated")
	}
}

func TestSceneSetTime(t *testing.T) {
	path := writeScene(t, `
objects:
  - name: body
    mesh: tri.obj
    animation:
      - time: 0
        position: [0, 0, 0]
      - time: 2
        position: [4, 0, 0]
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	body := s.Objects()[0]

	s.SetTime(1)
	got := body.Transform().TransformPoint(math.Vec3{})
	if stdmath.Abs(float64(got.X-2)) > 1e-5 {
		t.Errorf("at t=1: origin at %v, want x=2", got)
	}

	// Past the last key the pose clamps.
	s.SetTime(10)
	got = body.Transform().TransformPoint(math.Vec3{})
	if stdmath.Abs(float64(got.X-4)) > 1e-5 {
		t.Errorf("at t=10: origin at %v, want x=4", got)
	}
}

func TestLoadSceneMissingTextureIsNotFatal(t *testing.T) {
	path := writeScene(t, `
objects:
  - name: chair
    mesh: tri.obj
    texture: does-not-exist.png
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load should tolerate a missing texture, got %v", err)
	}
	if s.Objects()[0].Texture != nil {
		t.Error("texture should be nil for an unreadable file")
	}
}

func TestLoadSceneErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing scene file")
	}

	path := writeScene(t, `objects: []`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for empty scene")
	}

	path = writeScene(t, `
objects:
  - name: ghost
    mesh: missing.obj
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for missing mesh file")
	}

	path = writeScene(t, `
objects:
  - mesh: tri.obj
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for unnamed object")
	}
}

func TestTrackEvaluateRotation(t *testing.T) {
	tr := &Track{Keys: []Keyframe{
		{Time: 0, Rotation: math.QuatIdentity(), Scale: math.Vec3{X: 1, Y: 1, Z: 1}},
		{Time: 2, Rotation: math.QuatFromEuler(0, 180, 0), Scale: math.Vec3{X: 1, Y: 1, Z: 1}},
	}}

	// Halfway: 90 degrees around Y maps +X to -Z.
	got := tr.Evaluate(1).TransformPoint(math.Vec3{X: 1})
	if stdmath.Abs(float64(got.Z+1)) > 1e-4 || stdmath.Abs(float64(got.X)) > 1e-4 {
		t.Errorf("halfway rotation: +X mapped to %v, want (0,0,-1)", got)
	}
}

func TestTrackEmpty(t *testing.T) {
	tr := &Track{}
	if tr.Evaluate(5) != math.Identity() {
		t.Error("empty track should evaluate to identity")
	}
}
