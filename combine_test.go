package dotfield

import "testing"

func contribution(disp Vec2, size float64, dist float64, c Color) EffectResult {
	return EffectResult{
		HasEffect:         true,
		Displacement:      disp,
		SizeMultiplier:    size,
		OpacityMultiplier: 1,
		Color:             c,
		HasColor:          true,
		Ring:              1,
		Distance:          dist,
	}
}

func TestCombineEmpty(t *testing.T) {
	got := Combine(nil)
	if got.HasAnyEffect {
		t.Error("no contributors must yield no effect")
	}
	assertNear(t, "size", got.SizeMultiplier, 1)
	assertNear(t, "opacity", got.OpacityMultiplier, 1)
	assertVec(t, "displacement", got.Displacement, Vec2{})
}

func TestCombineMultiplicativeSize(t *testing.T) {
	// Two effects each contributing 1.2 → combined 1.44, not an average.
	a := contribution(Vec2{1, 0}, 1.2, 1, Color{R: 1, A: 1})
	b := contribution(Vec2{0, 1}, 1.2, 2, Color{B: 1, A: 1})
	got := Combine([]EffectResult{a, b})
	assertNear(t, "size product", got.SizeMultiplier, 1.44)
	assertVec(t, "displacement sum", got.Displacement, Vec2{1, 1})
}

func TestCombineCommutative(t *testing.T) {
	a := contribution(Vec2{2, 0}, 1.5, 0.5, Color{R: 1, A: 1})
	b := contribution(Vec2{0, 3}, 0.8, 2.0, Color{G: 1, A: 1})
	ab := Combine([]EffectResult{a, b})
	ba := Combine([]EffectResult{b, a})
	if ab != ba {
		t.Errorf("combine not commutative: %+v vs %+v", ab, ba)
	}
}

func TestCombineClosestColorWins(t *testing.T) {
	near := contribution(Vec2{}, 1, 0.5, Color{R: 1, A: 1})
	far := contribution(Vec2{}, 1, 2.0, Color{B: 1, A: 1})
	got := Combine([]EffectResult{far, near})
	if got.Color != near.Color {
		t.Errorf("color = %+v, want the closer contributor's %+v", got.Color, near.Color)
	}
}

func TestCombineColorTieBreaksByOrder(t *testing.T) {
	first := contribution(Vec2{}, 1, 1.0, Color{R: 1, A: 1})
	second := contribution(Vec2{}, 1, 1.0, Color{B: 1, A: 1})
	got := Combine([]EffectResult{first, second})
	if got.Color != first.Color {
		t.Errorf("tie must break toward registration order, got %+v", got.Color)
	}
}

func TestCombineMaxRing(t *testing.T) {
	a := contribution(Vec2{}, 1, 1, Color{A: 1})
	a.Ring = 1
	b := contribution(Vec2{}, 1, 2, Color{A: 1})
	b.Ring = 3
	got := Combine([]EffectResult{a, b})
	if got.Ring != 3 {
		t.Errorf("ring = %d, want 3", got.Ring)
	}
}

func TestCombineIgnoresNonContributors(t *testing.T) {
	a := contribution(Vec2{1, 1}, 2, 1, Color{R: 1, A: 1})
	got := Combine([]EffectResult{noEffect(), a, noEffect()})
	single := Combine([]EffectResult{a})
	if got != single {
		t.Errorf("no-effect entries must be identity: %+v vs %+v", got, single)
	}
}

func TestCombineSingleEffectSamePath(t *testing.T) {
	// One contributor flows through the same rules as many: the result is
	// exactly the contribution, with multipliers starting at 1.0.
	a := contribution(Vec2{3, -2}, 1.3, 0.7, Color{G: 1, A: 1})
	got := Combine([]EffectResult{a})
	assertVec(t, "displacement", got.Displacement, a.Displacement)
	assertNear(t, "size", got.SizeMultiplier, a.SizeMultiplier)
	if got.Color != a.Color || got.Ring != a.Ring || !got.HasAnyEffect {
		t.Errorf("single contribution mangled: %+v", got)
	}
}

func TestApplyCombinedResetsNeutral(t *testing.T) {
	g := NewGrid(1, 1, 10, 3)
	d, _ := g.Lookup(0, 0)

	applyCombined(d, CombinedResult{
		HasAnyEffect:      true,
		Displacement:      Vec2{2, 2},
		SizeMultiplier:    1.5,
		OpacityMultiplier: 0.8,
		Color:             Color{R: 1, A: 1},
		HasColor:          true,
		Ring:              2,
	})
	if !d.HasEffect || d.Ring != 2 {
		t.Fatal("combined state not applied")
	}
	assertVec(t, "visual pos", d.VisualPos, Vec2{2, 2})

	// A frame with no contributors must restore the full neutral state.
	applyCombined(d, Combine(nil))
	if d.HasEffect || d.HasOverride || d.Ring != 0 {
		t.Error("dot must return to neutral")
	}
	assertVec(t, "reset pos", d.VisualPos, d.OriginalPos)
	assertNear(t, "reset size", d.SizeMultiplier, 1)
	assertNear(t, "reset opacity", d.OpacityMultiplier, 1)
}
