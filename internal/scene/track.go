// Package scene loads scene descriptions: objects with OBJ meshes,
// transforms, optional textures, and optional keyframe animation.
package scene

import (
	"github.com/meshcap/meshcap/pkg/math"
)

// Keyframe is one sampled pose on an animation track.
type Keyframe struct {
	Time     float64 // seconds
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// Track is an ordered list of keyframes. Position and scale are
// linearly interpolated, rotation is slerped; time outside the key
// range clamps to the first/last pose.
type Track struct {
	Keys []Keyframe
}

// Evaluate returns the local-to-world transform at time t.
func (tr *Track) Evaluate(t float64) math.Mat4 {
	if len(tr.Keys) == 0 {
		return math.Identity()
	}
	if len(tr.Keys) == 1 || t <= tr.Keys[0].Time {
		return poseMatrix(tr.Keys[0])
	}

	// Find surrounding keyframes (keys are sorted by time)
	prev := 0
	next := 0
	for i := range tr.Keys {
		if tr.Keys[i].Time > t {
			next = i
			break
		}
		prev = i
		next = i
	}

	// At or past the last key
	if prev == next {
		return poseMatrix(tr.Keys[prev])
	}

	k0 := tr.Keys[prev]
	k1 := tr.Keys[next]
	f := float32(0)
	if k1.Time != k0.Time {
		f = float32((t - k0.Time) / (k1.Time - k0.Time))
	}

	return math.TRS(
		k0.Position.Lerp(k1.Position, f),
		k0.Rotation.Slerp(k1.Rotation, f),
		k0.Scale.Lerp(k1.Scale, f),
	)
}

func poseMatrix(k Keyframe) math.Mat4 {
	return math.TRS(k.Position, k.Rotation, k.Scale)
}
