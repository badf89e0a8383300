package geometry

import "github.com/meshcap/meshcap/pkg/math"

// Extractor exposes a mesh's triangles in world space. World positions
// are transformed once up front since most vertices are shared by
// several triangles.
type Extractor struct {
	mesh      *Mesh
	transform math.Mat4
	world     []math.Vec3
}

// NewExtractor builds an extractor for mesh under the given
// local-to-world transform.
func NewExtractor(mesh *Mesh, transform math.Mat4) *Extractor {
	e := &Extractor{mesh: mesh, transform: transform}
	e.world = make([]math.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		e.world[i] = transform.TransformPoint(v)
	}
	return e
}

// Mesh returns the underlying mesh.
func (e *Extractor) Mesh() *Mesh {
	return e.mesh
}

// TriangleCount returns the number of triangles.
func (e *Extractor) TriangleCount() int {
	return e.mesh.TriangleCount()
}

// Triangle returns the world-space corner positions of triangle i.
func (e *Extractor) Triangle(i int) (v0, v1, v2 math.Vec3) {
	a, b, c := e.Corners(i)
	return e.world[a], e.world[b], e.world[c]
}

// Corners returns the vertex indices of triangle i, for attribute
// interpolation.
func (e *Extractor) Corners(i int) (a, b, c uint32) {
	return e.mesh.Triangles[i*3], e.mesh.Triangles[i*3+1], e.mesh.Triangles[i*3+2]
}

// Area returns the world-space area of triangle i, computed as half
// the magnitude of the cross product of two edge vectors.
func (e *Extractor) Area(i int) float32 {
	v0, v1, v2 := e.Triangle(i)
	return v1.Sub(v0).Cross(v2.Sub(v0)).Length() * 0.5
}

// NormalDirection transforms a local-space direction to world space
// without renormalizing (rotation part of the transform only).
func (e *Extractor) NormalDirection(n math.Vec3) math.Vec3 {
	return e.transform.TransformDirection(n)
}

// Bounds returns the world-space bounding box of the mesh.
func (e *Extractor) Bounds() math.Box3 {
	b := math.EmptyBox3()
	for _, v := range e.world {
		b = b.Expand(v)
	}
	return b
}
