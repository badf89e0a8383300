package formats

import (
	"strings"
	"testing"
)

const quadOBJ = `# unit quad on the XZ plane
o Floor
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vn 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	obj, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if obj.Name != "Floor" {
		t.Errorf("name: got %q, want %q", obj.Name, "Floor")
	}
	// Quad fan-triangulates into 2 triangles
	if len(obj.Indices) != 6 {
		t.Fatalf("indices: got %d, want 6", len(obj.Indices))
	}
	if len(obj.Positions) != 4 {
		t.Errorf("positions: got %d, want 4 (corners should be merged)", len(obj.Positions))
	}
	if len(obj.Normals) != len(obj.Positions) {
		t.Errorf("normals not parallel to positions: %d vs %d", len(obj.Normals), len(obj.Positions))
	}
	if len(obj.UVs) != len(obj.Positions) {
		t.Errorf("UVs not parallel to positions: %d vs %d", len(obj.UVs), len(obj.Positions))
	}

	for _, idx := range obj.Indices {
		if int(idx) >= len(obj.Positions) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	for _, n := range obj.Normals {
		if n != (obj.Normals[0]) {
			t.Errorf("expected uniform normal, got %v", n)
		}
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Indices) != 3 {
		t.Fatalf("indices: got %d, want 3", len(obj.Indices))
	}
	if obj.Positions[obj.Indices[0]].X != 0 || obj.Positions[obj.Indices[1]].X != 1 {
		t.Error("negative indices resolved to wrong vertices")
	}
}

func TestParseOBJNoNormalsNoUVs(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Normals) != 0 {
		t.Errorf("expected no normals, got %d", len(obj.Normals))
	}
	if len(obj.UVs) != 0 {
		t.Errorf("expected no UVs, got %d", len(obj.UVs))
	}
}

func TestParseOBJIndexOutOfRange(t *testing.T) {
	src := `v 0 0 0
f 1 2 3
`
	if _, err := ParseOBJ([]byte(src)); err == nil {
		t.Fatal("expected error for out-of-range face index")
	} else if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("unexpected error: %v", err)
	}
}
