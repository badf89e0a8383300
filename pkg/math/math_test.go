package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", zero)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 6}
	got := a.Lerp(b, 0.5)
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	want := Vec3{11, 22, 33}
	if result != want {
		t.Errorf("TransformPoint: got %v, want %v", result, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformDirection(Vec3{0, 1, 0})

	want := Vec3{0, 1, 0}
	if result != want {
		t.Errorf("TransformDirection: got %v, want %v", result, want)
	}
}

func TestTRSOrder(t *testing.T) {
	// Scale applies before translation: a unit point scaled by 2 and
	// moved by (10,0,0) lands at 12, not 20+2.
	m := TRS(Vec3{10, 0, 0}, QuatIdentity(), Vec3{2, 2, 2})
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{12, 0, 0}
	if math.Abs(float64(got.X-want.X)) > 1e-5 {
		t.Errorf("TRS point: got %v, want %v", got, want)
	}
}

func TestQuatSlerpEndpoints(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))

	result0 := q1.Slerp(q2, 0)
	if math.Abs(float64(result0.W-q1.W)) > 0.001 {
		t.Error("Slerp at t=0 should equal q1")
	}

	result1 := q1.Slerp(q2, 1)
	if math.Abs(float64(result1.W-q2.W)) > 0.001 {
		t.Error("Slerp at t=1 should equal q2")
	}
}

func TestQuatFromEulerYaw(t *testing.T) {
	// 90 degrees around Y maps +X to -Z.
	q := QuatFromEuler(0, 90, 0)
	got := q.ToMat4().TransformPoint(Vec3{1, 0, 0})
	want := Vec3{0, 0, -1}
	if math.Abs(float64(got.X-want.X)) > 1e-4 ||
		math.Abs(float64(got.Y-want.Y)) > 1e-4 ||
		math.Abs(float64(got.Z-want.Z)) > 1e-4 {
		t.Errorf("QuatFromEuler(0,90,0) rotated +X to %v, want %v", got, want)
	}
}

func TestQuatHalfTurnSlerpDirection(t *testing.T) {
	// A half-turn must keep a non-negative scalar part; a float32 pi
	// overshoots slightly and a negative W makes Slerp take the long
	// way around.
	if q := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi)); q.W != 0 {
		t.Errorf("half-turn axis-angle W = %v, want 0", q.W)
	}

	q := QuatFromEuler(0, 180, 0)
	if q.W < 0 {
		t.Errorf("half-turn euler W = %v, want >= 0", q.W)
	}

	// Halfway from identity to a 180-degree yaw is a 90-degree yaw,
	// which maps +X to -Z.
	mid := QuatIdentity().Slerp(q, 0.5)
	got := mid.ToMat4().TransformPoint(Vec3{1, 0, 0})
	want := Vec3{0, 0, -1}
	if math.Abs(float64(got.X-want.X)) > 1e-4 ||
		math.Abs(float64(got.Y-want.Y)) > 1e-4 ||
		math.Abs(float64(got.Z-want.Z)) > 1e-4 {
		t.Errorf("halfway to 180 yaw rotated +X to %v, want %v", got, want)
	}
}

func TestBox3Contains(t *testing.T) {
	b := Box3{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}

	inside := []Vec3{{0.5, 0.5, 0.5}, {0, 0, 0}, {1, 1, 1}}
	for _, p := range inside {
		if !b.Contains(p) {
			t.Errorf("Contains(%v) = false, want true", p)
		}
	}

	outside := []Vec3{{-0.1, 0.5, 0.5}, {0.5, 1.1, 0.5}, {2, 2, 2}}
	for _, p := range outside {
		if b.Contains(p) {
			t.Errorf("Contains(%v) = true, want false", p)
		}
	}
}

func TestBox3Expand(t *testing.T) {
	b := EmptyBox3()
	if !b.IsEmpty() {
		t.Error("EmptyBox3 should be empty")
	}

	b = b.Expand(Vec3{1, 2, 3})
	if b.IsEmpty() {
		t.Error("expanded box should not be empty")
	}
	if !b.Contains(Vec3{1, 2, 3}) {
		t.Error("expanded box should contain its point")
	}

	b = b.Expand(Vec3{-1, 0, 5})
	if b.Min != (Vec3{-1, 0, 3}) || b.Max != (Vec3{1, 2, 5}) {
		t.Errorf("Expand: got min %v max %v", b.Min, b.Max)
	}
}

func TestBox3Union(t *testing.T) {
	a := Box3{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}
	b := Box3{Min: Vec3{2, 2, 2}, Max: Vec3{3, 3, 3}}
	u := a.Union(b)
	if u.Min != (Vec3{0, 0, 0}) || u.Max != (Vec3{3, 3, 3}) {
		t.Errorf("Union: got %v", u)
	}

	if got := a.Union(EmptyBox3()); got != a {
		t.Errorf("Union with empty box should be identity, got %v", got)
	}
}
