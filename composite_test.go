package dotfield

import (
	"math"
	"testing"
)

func TestCompositeZeroBehaviors(t *testing.T) {
	e := NewCompositeEffect(Vec2{0, 0}, Vec2{20, 20}, 1, 4)
	if e.Evaluate(Vec2{15, 10}, 10).HasEffect {
		t.Error("composite with no behaviors must yield no effect")
	}
}

func TestCompositeMagnify(t *testing.T) {
	e := NewCompositeEffect(Vec2{0, 0}, Vec2{}, 1, 4, MagnifyBehavior{Scale: 2})

	// At the center: base strength 1 → size 1 + 2*1 = 3.
	r := e.Evaluate(Vec2{0, 0}, 10)
	if !r.HasEffect {
		t.Fatal("expected effect")
	}
	assertNear(t, "center size", r.SizeMultiplier, 3)

	// Midway: base strength 0.5 → size 2.
	r = e.Evaluate(Vec2{20, 0}, 10)
	assertNear(t, "midway size", r.SizeMultiplier, 2)
}

func TestCompositeGrayscaleOverridesColor(t *testing.T) {
	e := NewCompositeEffect(Vec2{0, 0}, Vec2{}, 1, 4,
		GrayscaleBehavior{Tint: Color{R: 0.2, G: 0.8, B: 0.3, A: 1}})
	r := e.Evaluate(Vec2{10, 0}, 10)
	if !r.HasEffect || !r.HasColor {
		t.Fatal("grayscale must override the color")
	}
	// Gray means near-equal channels. Colorspace round-tripping keeps them
	// within about a percent, not bit-identical.
	if math.Abs(r.Color.R-r.Color.G) > 0.02 || math.Abs(r.Color.G-r.Color.B) > 0.02 {
		t.Errorf("channels not gray: %+v", r.Color)
	}
	if r.OpacityMultiplier >= 1 {
		t.Errorf("opacity multiplier = %v, want < 1", r.OpacityMultiplier)
	}
}

func TestCompositeFoldsLikeCombiner(t *testing.T) {
	// Magnify and ripple under one source: the partial results fold with
	// the whole-effect combination rules (multiplicative size, additive
	// displacement).
	e := NewCompositeEffect(Vec2{0, 0}, Vec2{}, 1, 4,
		MagnifyBehavior{Scale: 1},
		RippleBehavior{Frequency: 1, Amplitude: 1, WaveSpeed: 1},
	)
	e.Advance(0.15)

	pos := Vec2{20, 0}
	r := e.Evaluate(pos, 10)
	if !r.HasEffect {
		t.Fatal("expected effect")
	}

	magnifyOnly := NewCompositeEffect(Vec2{0, 0}, Vec2{}, 1, 4, MagnifyBehavior{Scale: 1})
	rippleOnly := NewCompositeEffect(Vec2{0, 0}, Vec2{}, 1, 4,
		RippleBehavior{Frequency: 1, Amplitude: 1, WaveSpeed: 1})
	rippleOnly.Advance(0.15)

	m := magnifyOnly.Evaluate(pos, 10)
	w := rippleOnly.Evaluate(pos, 10)

	assertNear(t, "size product", r.SizeMultiplier, m.SizeMultiplier*w.SizeMultiplier)
	assertVec(t, "displacement sum", r.Displacement, m.Displacement.Add(w.Displacement))
}

func TestCompositeBoundaryExcluded(t *testing.T) {
	e := NewCompositeEffect(Vec2{0, 0}, Vec2{}, 1, 4, MagnifyBehavior{Scale: 1})
	if e.Evaluate(Vec2{40, 0}, 10).HasEffect {
		t.Error("dot exactly at maxDistance must be excluded")
	}
}

func TestCompositeInactive(t *testing.T) {
	e := NewCompositeEffect(Vec2{0, 0}, Vec2{}, 1, 4, MagnifyBehavior{Scale: 1})
	e.SetActive(false)
	if e.Evaluate(Vec2{10, 0}, 10).HasEffect {
		t.Error("inactive composite must not contribute")
	}
}

func TestCompositeAddBehavior(t *testing.T) {
	e := NewCompositeEffect(Vec2{0, 0}, Vec2{}, 1, 4)
	e.AddBehavior(MagnifyBehavior{Scale: 1})
	if len(e.Behaviors()) != 1 {
		t.Fatalf("behaviors = %d, want 1", len(e.Behaviors()))
	}
	if !e.Evaluate(Vec2{10, 0}, 10).HasEffect {
		t.Error("added behavior should contribute")
	}
}
