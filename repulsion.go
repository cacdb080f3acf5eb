package dotfield

import "github.com/lucasb-eyer/go-colorful"

// Ring boundaries for the repulsion model, in grid-spacing units.
const (
	repulsionInnerRing = 1.5
	repulsionOuterRing = 3.0
)

// Hues for the two repulsion rings (degrees). Intensity scales with the
// ring strength at the evaluated dot.
const (
	repulsionInnerHue = 16.0  // hot orange
	repulsionOuterHue = 210.0 // steel blue
)

// RepulsionEffect pushes dots away from a rectangular source using a
// two-ring falloff model. Distance is measured to the nearest point on the
// source rectangle, so dots hugging a long edge are treated the same as dots
// near a corner. Evaluation is a pure function of distance; Advance is a
// no-op.
type RepulsionEffect struct {
	effectBase
}

// NewRepulsionEffect creates a repulsion effect for a source footprint at
// pos with the given size. Strength is the global intensity multiplier.
func NewRepulsionEffect(pos, size Vec2, strength float64) *RepulsionEffect {
	e := &RepulsionEffect{effectBase: newEffectBase(pos, size, repulsionOuterRing)}
	e.strength = strength
	return e
}

// Evaluate computes the repulsion contribution at dotPos.
func (e *RepulsionEffect) Evaluate(dotPos Vec2, spacing float64) EffectResult {
	if !e.active || spacing <= 0 {
		return noEffect()
	}

	nearest := nearestOnRect(e.footprint(), dotPos)
	dist := dotPos.Sub(nearest).Length() / spacing
	if dist >= e.maxDistance {
		return noEffect()
	}

	// Ring strength: full inside the inner ring with a gentle taper, then a
	// steeper linear falloff across the outer ring.
	base := e.effectiveStrength()
	var strength float64
	var ring int
	if dist <= repulsionInnerRing {
		ring = 1
		progress := clamp01(dist / repulsionInnerRing)
		strength = base * (1 - 0.3*progress)
	} else {
		ring = 2
		progress := clamp01((dist - repulsionInnerRing) / (repulsionOuterRing - repulsionInnerRing))
		strength = 0.7 * base * (1 - progress)
	}

	// Direction away from the source. For a dot inside the rectangle the
	// nearest point is the dot itself, so fall back to the center direction.
	away := dotPos.Sub(nearest)
	if away.X == 0 && away.Y == 0 {
		away = dotPos.Sub(e.footprint().Center())
	}
	dir := away.Normalize()

	// Displacement caps at 30% of spacing regardless of strength.
	mag := clamp(strength, 0, 1) * spacing * 0.3

	hue := repulsionInnerHue
	if ring == 2 {
		hue = repulsionOuterHue
	}

	return EffectResult{
		HasEffect:         true,
		Displacement:      dir.Scale(mag),
		SizeMultiplier:    1 + strength*0.5,
		OpacityMultiplier: 1,
		Color:             FromColorful(colorful.Hsv(hue, 0.85, clamp01(strength)), 1),
		HasColor:          true,
		Ring:              ring,
		Distance:          dist,
	}
}

// Advance is a no-op: repulsion has no animation state.
func (e *RepulsionEffect) Advance(dt float64) {}
