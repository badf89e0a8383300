package sampler

import (
	"math/rand"
	"sort"

	"github.com/chewxy/math32"

	"github.com/meshcap/meshcap/internal/geometry"
	"github.com/meshcap/meshcap/internal/texture"
	"github.com/meshcap/meshcap/pkg/formats"
	"github.com/meshcap/meshcap/pkg/math"
)

// worldUp is the fallback normal for meshes without vertex normals.
var worldUp = math.Vec3{Y: 1}

// Params holds the session-wide sampling inputs. Bounds and Policy are
// read-only and shared; the per-object RNG derived from Seed is not.
type Params struct {
	// Seed is combined with a stable hash of the object name, so the
	// points generated for an object do not depend on processing order
	// or worker count.
	Seed   int64
	Bounds math.Box3
	Policy *DensityPolicy
}

// Sample generates surface points for one mesh instance. Points are
// distributed uniformly per unit of world-space surface area at the
// density the policy assigns to the mesh name, colored from tex (or
// opaque white), and labeled with the mesh name. Samples falling
// outside Params.Bounds are discarded, so the result may hold fewer
// than the requested number of points. An empty mesh yields nil.
//
// For a fixed (seed, name, mesh, transform) the output is
// bit-identical across invocations.
func Sample(e *geometry.Extractor, tex *texture.Texture, p Params) []formats.PCDPoint {
	mesh := e.Mesh()
	if mesh.IsEmpty() {
		return nil
	}

	triCount := e.TriangleCount()

	// Per-triangle areas and cumulative prefix sums for weighted
	// triangle selection.
	cumulative := make([]float32, triCount)
	var totalArea float32
	for i := 0; i < triCount; i++ {
		totalArea += e.Area(i)
		cumulative[i] = totalArea
	}

	density := p.Policy.DensityFor(mesh.Name)
	needed := int(math32.Ceil(totalArea * density))
	if needed <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(p.Seed ^ int64(formats.LabelHash(mesh.Name))))

	useTexture := mesh.HasUVs() && tex.Readable()
	points := make([]formats.PCDPoint, 0, needed)

	for s := 0; s < needed; s++ {
		// Pick a triangle with probability proportional to its area:
		// first cumulative value at or above the draw wins.
		draw := rng.Float32() * totalArea
		tri := sort.Search(triCount, func(i int) bool { return cumulative[i] >= draw })
		if tri == triCount {
			tri = triCount - 1
		}

		// Fold the unit square into the triangle's parametric domain
		// instead of rejection-resampling.
		u := rng.Float32()
		v := rng.Float32()
		if u+v > 1 {
			u = 1 - u
			v = 1 - v
		}

		v0, v1, v2 := e.Triangle(tri)
		pos := v0.Add(v1.Sub(v0).Scale(u)).Add(v2.Sub(v0).Scale(v))

		if !p.Bounds.Contains(pos) {
			continue
		}

		a, b, c := e.Corners(tri)

		point := formats.PCDPoint{
			Position: pos,
			Normal:   worldUp,
			Color:    texture.White,
			Label:    mesh.Name,
		}

		if useTexture {
			uv0, uv1, uv2 := mesh.UVs[a], mesh.UVs[b], mesh.UVs[c]
			uv := uv0.Add(uv1.Sub(uv0).Scale(u)).Add(uv2.Sub(uv0).Scale(v))
			point.Color = tex.Sample(uv.X, uv.Y)
		}

		if mesh.HasNormals() {
			n0, n1, n2 := mesh.Normals[a], mesh.Normals[b], mesh.Normals[c]
			local := n0.Add(n1.Sub(n0).Scale(u)).Add(n2.Sub(n0).Scale(v))
			world := e.NormalDirection(local).Normalize()
			if world != (math.Vec3{}) {
				point.Normal = world
			}
		}

		points = append(points, point)
	}

	return points
}
