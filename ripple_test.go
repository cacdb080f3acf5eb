package dotfield

import (
	"math"
	"testing"
)

func testRipple() *RippleEffect {
	e := NewRippleEffect(Vec2{0, 0}, Vec2{}, 1, 5)
	e.Frequency = 1
	e.Amplitude = 1
	e.WaveSpeed = 1
	e.WaveRings = 5
	e.DistanceFade = false
	return e
}

func TestRippleDisplacementIsTangential(t *testing.T) {
	e := testRipple()
	e.Advance(0.1)
	r := e.Evaluate(Vec2{20, 0}, 10)
	if !r.HasEffect {
		t.Fatal("expected effect")
	}
	// Radius vector is +X; tangential displacement must have no X component.
	assertNear(t, "radial component", r.Displacement.X, 0)
	if r.Displacement.Y == 0 {
		t.Error("expected nonzero tangential displacement")
	}
}

func TestRippleDisplacementCap(t *testing.T) {
	e := testRipple()
	e.SetStrength(10)
	e.Advance(0.23)
	for _, x := range []float64{5, 15, 25, 35, 45} {
		r := e.Evaluate(Vec2{x, 0}, 10)
		if got := r.Displacement.Length(); got > 2+epsilon {
			t.Errorf("magnitude at x=%v is %v, want <= 2 (20%% of spacing)", x, got)
		}
	}
}

func TestRippleEvaluateIsPure(t *testing.T) {
	// Evaluate must not advance the wave; only Advance does.
	e := testRipple()
	e.Advance(0.4)
	a := e.Evaluate(Vec2{20, 0}, 10)
	b := e.Evaluate(Vec2{20, 0}, 10)
	assertVec(t, "repeated evaluate", b.Displacement, a.Displacement)

	e.Advance(0.1)
	c := e.Evaluate(Vec2{20, 0}, 10)
	if c.Displacement == a.Displacement {
		t.Error("advancing time should move the wave")
	}
}

func TestRippleRingBuckets(t *testing.T) {
	e := testRipple() // maxDistance 5, 5 rings → one ring per spacing
	cases := []struct {
		x    float64
		ring int
	}{
		{5, 1},  // d = 0.5
		{15, 2}, // d = 1.5
		{45, 5}, // d = 4.5
	}
	for _, c := range cases {
		r := e.Evaluate(Vec2{c.x, 0}, 10)
		if r.Ring != c.ring {
			t.Errorf("ring at x=%v is %d, want %d", c.x, r.Ring, c.ring)
		}
	}
}

func TestRippleDistanceFade(t *testing.T) {
	e := testRipple()
	e.DistanceFade = true
	// Pick a time where the wave is nonzero near the source.
	e.Advance(0.2)

	near := math.Abs(e.Evaluate(Vec2{5, 0}, 10).Displacement.Length())
	if near == 0 {
		t.Fatal("expected nonzero wave near the source")
	}
	// At the influence edge the fade factor approaches zero.
	far := e.Evaluate(Vec2{49.9, 0}, 10).Displacement.Length()
	if far >= near {
		t.Errorf("far magnitude %v should be below near magnitude %v", far, near)
	}
}

func TestRippleHueCycles(t *testing.T) {
	e := testRipple()
	e.Advance(0.1)
	a := e.Evaluate(Vec2{20, 0}, 10)
	e.Advance(0.3)
	b := e.Evaluate(Vec2{20, 0}, 10)
	if !a.HasColor || !b.HasColor {
		t.Fatal("ripple must carry a color")
	}
	if a.Color == b.Color {
		t.Error("hue should cycle as the phase advances")
	}
}

func TestRippleBoundaryAndInactive(t *testing.T) {
	e := testRipple()
	if e.Evaluate(Vec2{50, 0}, 10).HasEffect {
		t.Error("dot exactly at maxDistance must be excluded")
	}
	e.SetActive(false)
	if e.Evaluate(Vec2{20, 0}, 10).HasEffect {
		t.Error("inactive ripple must not contribute")
	}
}
