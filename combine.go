package dotfield

// CombinedResult is the single merged visual outcome of all effects
// overlapping one dot for one frame.
type CombinedResult struct {
	Displacement      Vec2
	SizeMultiplier    float64
	OpacityMultiplier float64
	Color             Color
	HasColor          bool
	Ring              int
	HasAnyEffect      bool
}

// neutralCombined is the identity outcome applied to dots no effect touches.
func neutralCombined() CombinedResult {
	return CombinedResult{SizeMultiplier: 1, OpacityMultiplier: 1}
}

// Combine folds per-effect results into one CombinedResult:
//
//   - displacement: vector sum (order-independent)
//   - size and opacity multipliers: products, starting at 1.0
//   - color: contributor with the smallest normalized distance wins; ties
//     break toward the earlier entry (registration order)
//   - ring: maximum across contributors
//
// The same path handles one contributor or many; combination is associative
// and commutative apart from the color tie-break.
func Combine(results []EffectResult) CombinedResult {
	out := neutralCombined()
	colorDist := 0.0
	for _, r := range results {
		if !r.HasEffect {
			continue
		}
		out.HasAnyEffect = true
		out.Displacement = out.Displacement.Add(r.Displacement)
		out.SizeMultiplier *= r.SizeMultiplier
		out.OpacityMultiplier *= r.OpacityMultiplier
		if r.HasColor && (!out.HasColor || r.Distance < colorDist) {
			out.Color = r.Color
			out.HasColor = true
			colorDist = r.Distance
		}
		if r.Ring > out.Ring {
			out.Ring = r.Ring
		}
	}
	return out
}

// combineInto is the allocation-free accumulator used on the per-frame hot
// path. It folds r into out with the same rules as Combine. colorDist holds
// the winning color's distance and must start at 0 with out.HasColor false.
func combineInto(out *CombinedResult, colorDist *float64, r EffectResult) {
	if !r.HasEffect {
		return
	}
	out.HasAnyEffect = true
	out.Displacement = out.Displacement.Add(r.Displacement)
	out.SizeMultiplier *= r.SizeMultiplier
	out.OpacityMultiplier *= r.OpacityMultiplier
	if r.HasColor && (!out.HasColor || r.Distance < *colorDist) {
		out.Color = r.Color
		out.HasColor = true
		*colorDist = r.Distance
	}
	if r.Ring > out.Ring {
		out.Ring = r.Ring
	}
}

// applyCombined writes a combined outcome into the dot's visual state.
func applyCombined(d *Dot, c CombinedResult) {
	if !c.HasAnyEffect {
		d.reset()
		return
	}
	d.VisualPos = d.OriginalPos.Add(c.Displacement)
	d.SizeMultiplier = c.SizeMultiplier
	d.OpacityMultiplier = c.OpacityMultiplier
	d.OverrideColor = c.Color
	d.HasOverride = c.HasColor
	d.Ring = c.Ring
	d.HasEffect = true
}
