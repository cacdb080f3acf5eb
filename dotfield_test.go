package dotfield

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertRect(t *testing.T, name string, got, want Rect) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon ||
		math.Abs(got.Width-want.Width) > epsilon || math.Abs(got.Height-want.Height) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- Vec2 ---

func TestVec2Normalize(t *testing.T) {
	assertVec(t, "unit x", Vec2{3, 0}.Normalize(), Vec2{1, 0})
	assertVec(t, "diagonal", Vec2{3, 4}.Normalize(), Vec2{0.6, 0.8})
}

func TestVec2NormalizeZeroFallback(t *testing.T) {
	// A zero vector must normalize to a usable direction, not NaN.
	assertVec(t, "zero fallback", Vec2{}.Normalize(), Vec2{1, 0})
}

func TestVec2Perp(t *testing.T) {
	got := Vec2{1, 0}.Perp()
	assertVec(t, "perp", got, Vec2{0, 1})
	// Perpendicularity: dot product with the original is zero.
	v := Vec2{3, 4}
	p := v.Perp()
	assertNear(t, "dot product", v.X*p.X+v.Y*p.Y, 0)
}

// --- Rect ---

func TestRectUnion(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{20, 5, 10, 10}
	assertRect(t, "union", a.Union(b), Rect{0, 0, 30, 15})
}

func TestRectUnionEmptyIdentity(t *testing.T) {
	a := Rect{5, 5, 10, 10}
	assertRect(t, "empty left", Rect{}.Union(a), a)
	assertRect(t, "empty right", a.Union(Rect{}), a)
}

func TestRectInflate(t *testing.T) {
	assertRect(t, "inflate", Rect{10, 10, 20, 20}.Inflate(5), Rect{5, 5, 30, 30})
}

func TestRectContainsEdges(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	if !r.Contains(0, 0) || !r.Contains(10, 10) {
		t.Error("edge points should be inside")
	}
	if r.Contains(10.001, 5) {
		t.Error("point past the edge should be outside")
	}
}

func TestRectCenter(t *testing.T) {
	assertVec(t, "center", Rect{100, 100, 150, 80}.Center(), Vec2{175, 140})
}

func TestColorScaleClamps(t *testing.T) {
	c := Color{R: 0.8, G: 0.5, B: 0.1, A: 1}.Scale(2)
	assertNear(t, "R clamped", c.R, 1)
	assertNear(t, "G clamped", c.G, 1)
	assertNear(t, "B", c.B, 0.2)
	assertNear(t, "A untouched", c.A, 1)
}
