package dotfield

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// BehaviorContext is the input handed to each behavior of a CompositeEffect
// for one dot.
type BehaviorContext struct {
	DotPos     Vec2
	SourcePos  Vec2 // top-left of the source footprint
	SourceSize Vec2
	Spacing    float64

	// Distance is the normalized distance from the dot to the source center.
	Distance float64

	// BaseStrength is the composite's linear falloff strength at this dot:
	// max(0, 1 - Distance/maxDistance) * strength.
	BaseStrength float64

	// Elapsed is the composite's accumulated local time in seconds.
	Elapsed float64
}

// Behavior is one pluggable piece of a CompositeEffect. Behaviors compute
// partial results independently; the composite folds them with the same
// rules used for whole-effect combination.
type Behavior interface {
	Apply(ctx BehaviorContext) EffectResult
}

// CompositeEffect folds an ordered list of behaviors into one contribution.
// A composite with zero behaviors, or an inactive one, yields no effect.
type CompositeEffect struct {
	effectBase

	behaviors []Behavior
	elapsed   float64
}

// NewCompositeEffect creates a composite effect with the given influence
// radius in grid-spacing units and the behaviors applied in order.
func NewCompositeEffect(pos, size Vec2, strength, maxDistance float64, behaviors ...Behavior) *CompositeEffect {
	e := &CompositeEffect{
		effectBase: newEffectBase(pos, size, maxDistance),
		behaviors:  behaviors,
	}
	e.strength = strength
	return e
}

// AddBehavior appends a behavior to the composite's ordered list.
func (e *CompositeEffect) AddBehavior(b Behavior) {
	e.behaviors = append(e.behaviors, b)
}

// Behaviors returns the ordered behavior list. MUST NOT be mutated.
func (e *CompositeEffect) Behaviors() []Behavior {
	return e.behaviors
}

// Evaluate folds every behavior's partial result at dotPos.
func (e *CompositeEffect) Evaluate(dotPos Vec2, spacing float64) EffectResult {
	if !e.active || spacing <= 0 || e.maxDistance <= 0 || len(e.behaviors) == 0 {
		return noEffect()
	}

	center := e.footprint().Center()
	dist := dotPos.Sub(center).Length() / spacing
	if dist >= e.maxDistance {
		return noEffect()
	}

	ctx := BehaviorContext{
		DotPos:       dotPos,
		SourcePos:    e.position,
		SourceSize:   e.size,
		Spacing:      spacing,
		Distance:     dist,
		BaseStrength: math.Max(0, 1-dist/e.maxDistance) * e.effectiveStrength(),
		Elapsed:      e.elapsed,
	}

	combined := neutralCombined()
	colorDist := 0.0
	for _, b := range e.behaviors {
		combineInto(&combined, &colorDist, b.Apply(ctx))
	}
	if !combined.HasAnyEffect {
		return noEffect()
	}

	return EffectResult{
		HasEffect:         true,
		Displacement:      combined.Displacement,
		SizeMultiplier:    combined.SizeMultiplier,
		OpacityMultiplier: combined.OpacityMultiplier,
		Color:             combined.Color,
		HasColor:          combined.HasColor,
		Ring:              combined.Ring,
		Distance:          dist,
	}
}

// Advance accumulates local time shared by all behaviors.
func (e *CompositeEffect) Advance(dt float64) {
	e.elapsed += dt
}

// --- Built-in behaviors ---

// MagnifyBehavior grows dots near the source center, like a lens passing
// over the lattice.
type MagnifyBehavior struct {
	// Scale is the maximum additional size factor at the source center.
	Scale float64
}

// Apply returns a size bump proportional to the composite's base strength.
func (b MagnifyBehavior) Apply(ctx BehaviorContext) EffectResult {
	if ctx.BaseStrength <= 0 {
		return noEffect()
	}
	r := noEffect()
	r.HasEffect = true
	r.SizeMultiplier = 1 + b.Scale*ctx.BaseStrength
	r.Ring = 1
	r.Distance = ctx.Distance
	return r
}

// GrayscaleBehavior desaturates dots near the source. The override color is
// the dot's default hue collapsed to its luminance, fading with distance.
type GrayscaleBehavior struct {
	// Tint is the color whose luminance anchors the gray level.
	Tint Color
}

// Apply returns a luminance-gray override scaled by the base strength.
func (b GrayscaleBehavior) Apply(ctx BehaviorContext) EffectResult {
	if ctx.BaseStrength <= 0 {
		return noEffect()
	}
	l, _, _ := b.Tint.Colorful().Luv()
	gray := colorful.Luv(clamp01(l), 0, 0).Clamped()
	r := noEffect()
	r.HasEffect = true
	r.Color = FromColorful(gray, 1)
	r.HasColor = true
	r.OpacityMultiplier = 1 - 0.3*clamp01(ctx.BaseStrength)
	r.Ring = 1
	r.Distance = ctx.Distance
	return r
}

// RippleBehavior is the ripple wave packaged as a composite behavior, so it
// can stack with magnification or grayscale under one source.
type RippleBehavior struct {
	Frequency float64
	Amplitude float64
	WaveSpeed float64
}

// Apply returns a tangential wave displacement scaled by the base strength.
func (b RippleBehavior) Apply(ctx BehaviorContext) EffectResult {
	if ctx.BaseStrength <= 0 {
		return noEffect()
	}
	center := Rect{
		X: ctx.SourcePos.X, Y: ctx.SourcePos.Y,
		Width: ctx.SourceSize.X, Height: ctx.SourceSize.Y,
	}.Center()
	phase := 2*math.Pi*b.Frequency*ctx.Elapsed - ctx.Distance*b.WaveSpeed
	wave := math.Sin(phase) * b.Amplitude * ctx.BaseStrength

	tangent := ctx.DotPos.Sub(center).Normalize().Perp()
	r := noEffect()
	r.HasEffect = true
	r.Displacement = tangent.Scale(clamp(wave, -1, 1) * ctx.Spacing * 0.2)
	r.Ring = 1
	r.Distance = ctx.Distance
	return r
}
