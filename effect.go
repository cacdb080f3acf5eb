package dotfield

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// EffectID identifies a registered effect. IDs are assigned by the Registry
// and are never reused within a Registry's lifetime.
type EffectID uint64

// EffectResult is the contribution of a single effect to a single dot for
// one frame. Transient; never persisted.
type EffectResult struct {
	// HasEffect is false when the dot is outside this effect's influence.
	// All other fields are ignored in that case.
	HasEffect bool

	// Displacement is the positional offset in pixels. Summed across effects.
	Displacement Vec2

	// SizeMultiplier scales the dot size. Multiplied across effects.
	SizeMultiplier float64

	// OpacityMultiplier scales the dot alpha. Multiplied across effects.
	OpacityMultiplier float64

	// Color is an optional override. The combiner picks the color of the
	// contributor with the smallest Distance.
	Color    Color
	HasColor bool

	// Ring is the distance band the dot falls into. Max across effects.
	Ring int

	// Distance is the normalized distance (pixels / spacing) from the dot to
	// this effect's source. Used only for the closest-wins color rule.
	Distance float64
}

// noEffect is the neutral contribution: identity for every combination rule.
func noEffect() EffectResult {
	return EffectResult{SizeMultiplier: 1, OpacityMultiplier: 1}
}

// Effect is a spatial rule producing displacement, size, and color changes
// on nearby dots. Implementations must be pure with respect to Evaluate:
// all animation state advances only through Advance.
type Effect interface {
	// Active reports whether the effect currently contributes. Inactive
	// effects evaluate to no effect and are excluded from combined bounds.
	Active() bool
	SetActive(active bool)

	// Position is the top-left corner of the source footprint.
	Position() Vec2
	// Size is the source footprint extent. A zero size is a point source.
	Size() Vec2
	// SetGeometry moves and resizes the source footprint.
	SetGeometry(pos, size Vec2)

	// MaxDistance is the influence radius in grid-spacing units.
	MaxDistance() float64

	// Strength is the global intensity multiplier (default 1.0).
	Strength() float64
	SetStrength(s float64)

	// AffectedBounds returns the source footprint inflated by
	// MaxDistance()*spacing on all sides. Used only for coarse culling; it
	// must be a conservative superset of every point the effect can touch.
	AffectedBounds(spacing float64) Rect

	// Evaluate computes this effect's contribution at dotPos. Returns a
	// result with HasEffect=false when inactive, when spacing is degenerate,
	// or when the normalized distance reaches MaxDistance.
	Evaluate(dotPos Vec2, spacing float64) EffectResult

	// Advance moves the effect's local animation time forward. Called once
	// per frame by the Registry, never from Evaluate, so that evaluation
	// stays deterministic and testable.
	Advance(dt float64)
}

// effectBase carries the geometry, strength, and fade state shared by every
// built-in effect variant. Variants embed it and implement Evaluate/Advance.
type effectBase struct {
	position    Vec2
	size        Vec2
	maxDistance float64
	strength    float64
	active      bool

	// Registration fade ramp (0 → 1), started by the Registry when
	// FadeInDuration is set. Nil means fully faded in.
	fade      *gween.Tween
	fadeScale float64
}

func newEffectBase(pos, size Vec2, maxDistance float64) effectBase {
	return effectBase{
		position:    pos,
		size:        size,
		maxDistance: maxDistance,
		strength:    1,
		active:      true,
		fadeScale:   1,
	}
}

func (e *effectBase) Active() bool          { return e.active }
func (e *effectBase) SetActive(active bool) { e.active = active }
func (e *effectBase) Position() Vec2        { return e.position }
func (e *effectBase) Size() Vec2            { return e.size }
func (e *effectBase) MaxDistance() float64  { return e.maxDistance }
func (e *effectBase) Strength() float64     { return e.strength }
func (e *effectBase) SetStrength(s float64) { e.strength = s }

// SetGeometry moves and resizes the source footprint.
func (e *effectBase) SetGeometry(pos, size Vec2) {
	e.position = pos
	e.size = size
}

// footprint returns the source rectangle.
func (e *effectBase) footprint() Rect {
	return Rect{X: e.position.X, Y: e.position.Y, Width: e.size.X, Height: e.size.Y}
}

// AffectedBounds returns the footprint inflated by maxDistance*spacing.
func (e *effectBase) AffectedBounds(spacing float64) Rect {
	return e.footprint().Inflate(e.maxDistance * spacing)
}

// effectiveStrength is the user strength scaled by the registration fade.
func (e *effectBase) effectiveStrength() float64 {
	return e.strength * e.fadeScale
}

// beginFade starts the registration fade ramp. No-op for duration <= 0.
func (e *effectBase) beginFade(duration float32) {
	if duration <= 0 {
		e.fade = nil
		e.fadeScale = 1
		return
	}
	e.fadeScale = 0
	e.fade = gween.New(0, 1, duration, ease.OutQuad)
}

// advanceFade updates the fade ramp. Called from Registry.AdvanceTime ahead
// of the variant's own Advance hook.
func (e *effectBase) advanceFade(dt float64) {
	if e.fade == nil {
		return
	}
	val, done := e.fade.Update(float32(dt))
	e.fadeScale = float64(val)
	if done {
		e.fade = nil
		e.fadeScale = 1
	}
}

// nearestOnRect returns the point on r closest to p. A point inside the
// rectangle is its own nearest point (distance zero).
func nearestOnRect(r Rect, p Vec2) Vec2 {
	return Vec2{
		X: clamp(p.X, r.X, r.X+r.Width),
		Y: clamp(p.Y, r.Y, r.Y+r.Height),
	}
}
