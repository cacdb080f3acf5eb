package dotfield

import "math"

// AttractionEffect pulls dots toward the center of its source footprint with
// a linear falloff, optionally modulated by a sinusoidal pulse. The pulse is
// driven by accumulated local time advanced through the Registry, never by
// the wall clock.
type AttractionEffect struct {
	effectBase

	// PulseFrequency is the pulse rate in Hz. Zero disables pulsing.
	PulseFrequency float64

	elapsed float64
}

// pulseAmplitude is the fraction of strength the pulse swings by.
const pulseAmplitude = 0.3

// NewAttractionEffect creates an attraction effect with the given influence
// radius in grid-spacing units.
func NewAttractionEffect(pos, size Vec2, strength, maxDistance float64) *AttractionEffect {
	e := &AttractionEffect{effectBase: newEffectBase(pos, size, maxDistance)}
	e.strength = strength
	return e
}

// Evaluate computes the attraction contribution at dotPos.
func (e *AttractionEffect) Evaluate(dotPos Vec2, spacing float64) EffectResult {
	if !e.active || spacing <= 0 || e.maxDistance <= 0 {
		return noEffect()
	}

	center := e.footprint().Center()
	dist := dotPos.Sub(center).Length() / spacing
	if dist >= e.maxDistance {
		return noEffect()
	}

	strength := e.effectiveStrength() * (1 - dist/e.maxDistance)
	if e.PulseFrequency > 0 {
		strength *= 1 + pulseAmplitude*math.Sin(2*math.Pi*e.PulseFrequency*e.elapsed)
	}
	if strength <= 0 {
		return noEffect()
	}

	// Toward the center, capped at 40% of spacing.
	dir := center.Sub(dotPos).Normalize()
	mag := clamp(strength, 0, 1) * spacing * 0.4

	return EffectResult{
		HasEffect:         true,
		Displacement:      dir.Scale(mag),
		SizeMultiplier:    1,
		OpacityMultiplier: 1,
		Ring:              1,
		Distance:          dist,
	}
}

// Advance accumulates local pulse time.
func (e *AttractionEffect) Advance(dt float64) {
	e.elapsed += dt
}
