package dotfield

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RippleEffect sends a time-animated wave outward from the center of its
// source. Displacement is tangential (perpendicular to the radius vector),
// which makes the lattice appear to swirl rather than breathe, and the dot
// hue cycles with the wave phase.
type RippleEffect struct {
	effectBase

	// Frequency is the wave oscillation rate in Hz.
	Frequency float64

	// Amplitude scales the wave value in [0, 1].
	Amplitude float64

	// WaveSpeed controls how fast crests travel outward, in radians per
	// grid-spacing unit of distance.
	WaveSpeed float64

	// WaveRings is the number of equal distance bands used for the ring
	// bucket. Values below 1 are treated as 1.
	WaveRings int

	// DistanceFade, when true, scales the wave down linearly with distance.
	DistanceFade bool

	// Saturation is the fixed HSV saturation of the cycling hue.
	Saturation float64

	elapsed float64
}

// NewRippleEffect creates a ripple effect with the given influence radius in
// grid-spacing units and sensible wave defaults.
func NewRippleEffect(pos, size Vec2, strength, maxDistance float64) *RippleEffect {
	e := &RippleEffect{
		effectBase:   newEffectBase(pos, size, maxDistance),
		Frequency:    0.8,
		Amplitude:    1,
		WaveSpeed:    1.2,
		WaveRings:    4,
		DistanceFade: true,
		Saturation:   0.8,
	}
	e.strength = strength
	return e
}

// Evaluate computes the ripple contribution at dotPos.
func (e *RippleEffect) Evaluate(dotPos Vec2, spacing float64) EffectResult {
	if !e.active || spacing <= 0 || e.maxDistance <= 0 {
		return noEffect()
	}

	center := e.footprint().Center()
	radial := dotPos.Sub(center)
	dist := radial.Length() / spacing
	if dist >= e.maxDistance {
		return noEffect()
	}

	phase := 2*math.Pi*e.Frequency*e.elapsed - dist*e.WaveSpeed
	wave := math.Sin(phase) * e.Amplitude * e.effectiveStrength()
	if e.DistanceFade {
		wave *= 1 - dist/e.maxDistance
	}

	// Tangential displacement, capped at 20% of spacing.
	tangent := radial.Normalize().Perp()
	mag := clamp(wave, -1, 1) * spacing * 0.2

	// Hue cycles with phase; value tracks the wave envelope.
	hue := math.Mod(phase, 2*math.Pi)
	if hue < 0 {
		hue += 2 * math.Pi
	}
	value := clamp01(math.Abs(wave))

	rings := e.WaveRings
	if rings < 1 {
		rings = 1
	}
	ring := int(dist/e.maxDistance*float64(rings)) + 1
	if ring > rings {
		ring = rings
	}

	return EffectResult{
		HasEffect:         true,
		Displacement:      tangent.Scale(mag),
		SizeMultiplier:    1,
		OpacityMultiplier: 1,
		Color:             FromColorful(colorful.Hsv(hue*180/math.Pi, e.Saturation, value), 1),
		HasColor:          true,
		Ring:              ring,
		Distance:          dist,
	}
}

// Advance accumulates local wave time.
func (e *RippleEffect) Advance(dt float64) {
	e.elapsed += dt
}
