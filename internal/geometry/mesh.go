// Package geometry holds triangle-mesh storage and world-space
// extraction for surface sampling.
package geometry

import (
	"errors"
	"fmt"

	"github.com/meshcap/meshcap/pkg/formats"
	"github.com/meshcap/meshcap/pkg/math"
)

// Mesh errors.
var (
	ErrIndexCount = errors.New("triangle index count is not a multiple of 3")
	ErrIndexRange = errors.New("triangle index out of vertex range")
	ErrAttrLength = errors.New("per-vertex attribute length does not match vertex count")
)

// Mesh is read-only triangle geometry in local space. Normals and UVs
// are optional; when present they are parallel to Vertices.
type Mesh struct {
	Name      string
	Vertices  []math.Vec3
	Triangles []uint32 // triplets into Vertices
	Normals   []math.Vec3
	UVs       []math.Vec2
}

// FromOBJ wraps a parsed OBJ file as a Mesh. The name argument wins
// over the name embedded in the file so scene objects can relabel
// shared geometry.
func FromOBJ(o *formats.OBJ, name string) *Mesh {
	if name == "" {
		name = o.Name
	}
	return &Mesh{
		Name:      name,
		Vertices:  o.Positions,
		Triangles: o.Indices,
		Normals:   o.Normals,
		UVs:       o.UVs,
	}
}

// Validate checks the mesh invariants: index count divisible by 3,
// every index within vertex bounds, attributes parallel to vertices.
func (m *Mesh) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("%s: %w (%d indices)", m.Name, ErrIndexCount, len(m.Triangles))
	}
	for _, idx := range m.Triangles {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%s: %w (index %d, %d vertices)", m.Name, ErrIndexRange, idx, len(m.Vertices))
		}
	}
	if len(m.Normals) > 0 && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%s normals: %w (%d vs %d)", m.Name, ErrAttrLength, len(m.Normals), len(m.Vertices))
	}
	if len(m.UVs) > 0 && len(m.UVs) != len(m.Vertices) {
		return fmt.Errorf("%s UVs: %w (%d vs %d)", m.Name, ErrAttrLength, len(m.UVs), len(m.Vertices))
	}
	return nil
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// IsEmpty reports whether the mesh has nothing to sample. An empty
// mesh is not an error; it simply contributes zero points.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0 || len(m.Triangles) == 0
}

// HasNormals reports whether per-vertex normals are present.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0
}

// HasUVs reports whether per-vertex texture coordinates are present.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0
}
