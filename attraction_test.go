package dotfield

import (
	"math"
	"testing"
)

func TestAttractionPullsTowardCenter(t *testing.T) {
	// 20x20 source at origin: center (10,10). Radius 4 spacings.
	e := NewAttractionEffect(Vec2{0, 0}, Vec2{20, 20}, 1, 4)
	r := e.Evaluate(Vec2{40, 10}, 10)
	if !r.HasEffect {
		t.Fatal("expected effect")
	}
	if r.Displacement.X >= 0 {
		t.Errorf("displacement X = %v, want negative (toward center)", r.Displacement.X)
	}
	assertNear(t, "displacement Y", r.Displacement.Y, 0)
}

func TestAttractionLinearFalloff(t *testing.T) {
	e := NewAttractionEffect(Vec2{0, 0}, Vec2{}, 1, 4)

	// d = 2 of 4 → strength 0.5 → magnitude 0.5 * 10 * 0.4 = 2.
	r := e.Evaluate(Vec2{20, 0}, 10)
	assertNear(t, "midway magnitude", r.Displacement.Length(), 2)
	assertNear(t, "distance", r.Distance, 2)
}

func TestAttractionDisplacementCap(t *testing.T) {
	// Strength far above 1 still caps displacement at 40% of spacing.
	e := NewAttractionEffect(Vec2{0, 0}, Vec2{}, 5, 4)
	r := e.Evaluate(Vec2{5, 0}, 10)
	if got := r.Displacement.Length(); got > 4+epsilon {
		t.Errorf("magnitude = %v, want <= 4", got)
	}
}

func TestAttractionMaxDistanceBoundary(t *testing.T) {
	e := NewAttractionEffect(Vec2{0, 0}, Vec2{}, 1, 4)
	if e.Evaluate(Vec2{40, 0}, 10).HasEffect {
		t.Error("dot exactly at maxDistance must be excluded")
	}
	if !e.Evaluate(Vec2{40 - 0.001, 0}, 10).HasEffect {
		t.Error("dot just inside maxDistance must be included")
	}
}

func TestAttractionPulseModulation(t *testing.T) {
	e := NewAttractionEffect(Vec2{0, 0}, Vec2{}, 1, 4)
	e.PulseFrequency = 1 // one full cycle per second

	at := func() float64 { return e.Evaluate(Vec2{20, 0}, 10).Displacement.Length() }

	base := at()

	// Quarter cycle: sin peaks at +1 → strength * 1.3.
	e.Advance(0.25)
	assertNear(t, "peak magnitude", at(), base*(1+pulseAmplitude))

	// Three-quarter cycle: sin at -1 → strength * 0.7.
	e.Advance(0.5)
	assertNear(t, "trough magnitude", at(), base*(1-pulseAmplitude))
}

func TestAttractionNoPulseWithoutFrequency(t *testing.T) {
	e := NewAttractionEffect(Vec2{0, 0}, Vec2{}, 1, 4)
	before := e.Evaluate(Vec2{20, 0}, 10)
	e.Advance(0.37)
	after := e.Evaluate(Vec2{20, 0}, 10)
	assertVec(t, "displacement stable", after.Displacement, before.Displacement)
}

func TestAttractionDotOnCenterFallback(t *testing.T) {
	e := NewAttractionEffect(Vec2{0, 0}, Vec2{}, 1, 4)
	r := e.Evaluate(Vec2{0, 0}, 10)
	if !r.HasEffect {
		t.Fatal("dot on center is inside the influence radius")
	}
	if math.IsNaN(r.Displacement.X) || math.IsNaN(r.Displacement.Y) {
		t.Fatal("displacement must not be NaN at distance zero")
	}
}
