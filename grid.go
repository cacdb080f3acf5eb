package dotfield

// Dot is one point marker in the lattice. A single flat struct holds both the
// immutable lattice identity and the per-frame visual state mutated by the
// combiner; no interface dispatch on the hot path.
type Dot struct {
	// Identity
	Col, Row int

	// OriginalPos is the lattice position, set at grid build time and never
	// mutated afterwards.
	OriginalPos Vec2

	// VisualPos is OriginalPos plus the combined displacement of all effects
	// touching this dot. Equals OriginalPos whenever HasEffect is false.
	VisualPos Vec2

	// BaseSize is the dot radius at rest, in pixels.
	BaseSize float64

	// SizeMultiplier scales BaseSize. 1.0 when unaffected.
	SizeMultiplier float64

	// OpacityMultiplier scales the dot's alpha. 1.0 when unaffected.
	OpacityMultiplier float64

	// OverrideColor replaces the default dot color when HasOverride is true.
	OverrideColor Color
	HasOverride   bool

	// Ring is the zone indicator of the strongest contributing effect.
	// 0 means unaffected.
	Ring int

	// HasEffect reports whether any effect touched this dot last frame.
	HasEffect bool

	// renderedFrame stamps the last frame this dot was submitted to a
	// Surface; used to de-duplicate dots spanning several dirty regions.
	renderedFrame uint64
}

// Radius returns the effective render radius (BaseSize scaled by the current
// size multiplier).
func (d *Dot) Radius() float64 {
	return d.BaseSize * d.SizeMultiplier
}

// reset restores the dot's neutral visual state. Omitting this when a dot
// leaves all influence areas is a correctness bug: stale displacement would
// linger visually.
func (d *Dot) reset() {
	d.VisualPos = d.OriginalPos
	d.SizeMultiplier = 1
	d.OpacityMultiplier = 1
	d.OverrideColor = Color{}
	d.HasOverride = false
	d.Ring = 0
	d.HasEffect = false
}

// Grid is a fixed 2D lattice of dots addressable by (column, row).
// One dot sits at (col*spacing, row*spacing). Dots are created once at build
// time and mutated in place each frame; Rebuild invalidates all of them.
type Grid struct {
	rows    int
	cols    int
	spacing float64
	dotSize float64
	dots    []Dot // row-major, len = rows*cols
}

// NewGrid builds a grid with one dot per (col, row). Nonpositive dimensions
// yield an empty grid that answers every lookup with "absent".
func NewGrid(rows, cols int, spacing, dotSize float64) *Grid {
	g := &Grid{}
	g.Rebuild(rows, cols, spacing, dotSize)
	return g
}

// Rebuild clears and replaces all dots. Existing *Dot pointers are
// invalidated; callers holding them must re-lookup.
func (g *Grid) Rebuild(rows, cols int, spacing, dotSize float64) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	g.rows = rows
	g.cols = cols
	g.spacing = spacing
	g.dotSize = dotSize
	g.dots = make([]Dot, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			d := &g.dots[row*cols+col]
			d.Col = col
			d.Row = row
			d.OriginalPos = Vec2{X: float64(col) * spacing, Y: float64(row) * spacing}
			d.VisualPos = d.OriginalPos
			d.BaseSize = dotSize
			d.SizeMultiplier = 1
			d.OpacityMultiplier = 1
		}
	}
}

// Rows returns the number of lattice rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of lattice columns.
func (g *Grid) Cols() int { return g.cols }

// Spacing returns the lattice spacing in pixels.
func (g *Grid) Spacing() float64 { return g.spacing }

// Lookup returns the dot at (col, row), or (nil, false) when the address is
// outside the built range. Never panics; callers treat absence as "no effect
// applies".
func (g *Grid) Lookup(col, row int) (*Dot, bool) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil, false
	}
	return &g.dots[row*g.cols+col], true
}

// cellRange clamps a pixel-space rectangle to the lattice index range it
// covers. Returns ok=false when the rectangle misses the grid entirely.
func (g *Grid) cellRange(r Rect) (c0, r0, c1, r1 int, ok bool) {
	if g.spacing <= 0 || g.rows == 0 || g.cols == 0 || r.IsEmpty() {
		return 0, 0, 0, 0, false
	}
	c0 = int(r.X / g.spacing)
	r0 = int(r.Y / g.spacing)
	c1 = int((r.X + r.Width) / g.spacing)
	r1 = int((r.Y + r.Height) / g.spacing)
	if c1 < 0 || r1 < 0 || c0 >= g.cols || r0 >= g.rows {
		return 0, 0, 0, 0, false
	}
	c0 = max(c0, 0)
	r0 = max(r0, 0)
	c1 = min(c1, g.cols-1)
	r1 = min(r1, g.rows-1)
	return c0, r0, c1, r1, true
}

// VisibleSubset returns all dots whose lattice cell intersects the viewport,
// in row-major order. The cost is proportional to the number of visible
// dots, never the total grid size.
func (g *Grid) VisibleSubset(viewport Rect) []*Dot {
	c0, r0, c1, r1, ok := g.cellRange(viewport)
	if !ok {
		return nil
	}
	out := make([]*Dot, 0, (c1-c0+1)*(r1-r0+1))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			out = append(out, &g.dots[row*g.cols+col])
		}
	}
	return out
}

// ForEachIn calls fn for every dot whose lattice cell lies in bounds.
// Allocation-free variant of VisibleSubset used on the per-frame hot path.
func (g *Grid) ForEachIn(bounds Rect, fn func(*Dot)) {
	c0, r0, c1, r1, ok := g.cellRange(bounds)
	if !ok {
		return
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			fn(&g.dots[row*g.cols+col])
		}
	}
}
