package math

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox3 returns a box that contains nothing; expanding it by any
// point yields a box containing exactly that point.
func EmptyBox3() Box3 {
	return Box3{
		Min: Vec3{1e10, 1e10, 1e10},
		Max: Vec3{-1e10, -1e10, -1e10},
	}
}

// InfiniteBox3 returns a box large enough to contain any practical
// scene, used when no explicit bounds are available.
func InfiniteBox3() Box3 {
	return Box3{
		Min: Vec3{-1e10, -1e10, -1e10},
		Max: Vec3{1e10, 1e10, 1e10},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Contains reports whether p lies inside the box (bounds inclusive).
func (b Box3) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Expand grows the box to include p.
func (b Box3) Expand(p Vec3) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b Box3) Union(other Box3) Box3 {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return Box3{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the box center.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents along each axis.
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}
