package dotfield

// Default dirty partition: a fixed 20x20 grid of regions over the viewport.
// Coarse on purpose; the per-mark scan is O(rows*cols) and both stay small.
const (
	DefaultRegionRows = 20
	DefaultRegionCols = 20
)

// DirtyRegion is one cell of the coarse viewport partition.
type DirtyRegion struct {
	Col, Row int
	Bounds   Rect

	dirty          bool
	lastDirtyFrame uint64
}

// IsDirty reports whether the region needs a redraw.
func (r *DirtyRegion) IsDirty() bool { return r.dirty }

// LastDirtyFrame returns the frame counter recorded the last time this
// region was marked dirty.
func (r *DirtyRegion) LastDirtyFrame() uint64 { return r.lastDirtyFrame }

// DirtyTracker partitions the viewport into a fixed coarse grid of
// rectangles and records which of them were touched by bounds-changing
// events since the last completed render.
type DirtyTracker struct {
	rows, cols int
	viewport   Rect
	regions    []DirtyRegion // row-major
	frame      uint64
}

// NewDirtyTracker creates a tracker partitioning viewport into rows x cols
// regions. Nonpositive counts fall back to the defaults. All regions start
// dirty to force one full initial render.
func NewDirtyTracker(rows, cols int, viewport Rect) *DirtyTracker {
	if rows <= 0 {
		rows = DefaultRegionRows
	}
	if cols <= 0 {
		cols = DefaultRegionCols
	}
	t := &DirtyTracker{rows: rows, cols: cols}
	t.Resize(viewport)
	return t
}

// Resize rebuilds the partition for a new viewport size. All regions start
// dirty.
func (t *DirtyTracker) Resize(viewport Rect) {
	t.viewport = viewport
	t.regions = make([]DirtyRegion, t.rows*t.cols)
	cellW := viewport.Width / float64(t.cols)
	cellH := viewport.Height / float64(t.rows)
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			r := &t.regions[row*t.cols+col]
			r.Col = col
			r.Row = row
			r.Bounds = Rect{
				X:      viewport.X + float64(col)*cellW,
				Y:      viewport.Y + float64(row)*cellH,
				Width:  cellW,
				Height: cellH,
			}
			r.dirty = true
			r.lastDirtyFrame = t.frame
		}
	}
}

// Rows returns the number of partition rows.
func (t *DirtyTracker) Rows() int { return t.rows }

// Cols returns the number of partition columns.
func (t *DirtyTracker) Cols() int { return t.cols }

// Viewport returns the tracked viewport rectangle.
func (t *DirtyTracker) Viewport() Rect { return t.viewport }

// advanceFrame bumps the monotonic frame counter. Called by the engine once
// per completed frame.
func (t *DirtyTracker) advanceFrame() {
	t.frame++
}

// MarkDirty flags every region whose bounds intersect rect and stamps it
// with the current frame counter.
func (t *DirtyTracker) MarkDirty(rect Rect) {
	if rect.IsEmpty() {
		return
	}
	for i := range t.regions {
		r := &t.regions[i]
		if r.Bounds.Intersects(rect) {
			r.dirty = true
			r.lastDirtyFrame = t.frame
		}
	}
}

// MarkAllDirty flags every region. Used after a resize or full grid rebuild.
func (t *DirtyTracker) MarkAllDirty() {
	for i := range t.regions {
		t.regions[i].dirty = true
		t.regions[i].lastDirtyFrame = t.frame
	}
}

// MarkAllClean clears every dirty flag. Called once per completed render.
func (t *DirtyTracker) MarkAllClean() {
	for i := range t.regions {
		t.regions[i].dirty = false
	}
}

// IsDirty reports whether the region at (col, row) is flagged. Out-of-range
// addresses report false.
func (t *DirtyTracker) IsDirty(col, row int) bool {
	r, ok := t.RegionAt(col, row)
	if !ok {
		return false
	}
	return r.IsDirty()
}

// RegionAt returns the region at (col, row), or (nil, false) when the
// address is outside the partition.
func (t *DirtyTracker) RegionAt(col, row int) (*DirtyRegion, bool) {
	if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
		return nil, false
	}
	return &t.regions[row*t.cols+col], true
}

// DirtyCount returns the number of currently flagged regions.
func (t *DirtyTracker) DirtyCount() int {
	n := 0
	for i := range t.regions {
		if t.regions[i].dirty {
			n++
		}
	}
	return n
}

// ConsumeDirty calls fn for every dirty region in row-major order and clears
// each flag after its visit.
func (t *DirtyTracker) ConsumeDirty(fn func(*DirtyRegion)) {
	for i := range t.regions {
		r := &t.regions[i]
		if !r.dirty {
			continue
		}
		fn(r)
		r.dirty = false
	}
}

// forEachDirty calls fn for every dirty region without clearing flags.
func (t *DirtyTracker) forEachDirty(fn func(*DirtyRegion)) {
	for i := range t.regions {
		if t.regions[i].dirty {
			fn(&t.regions[i])
		}
	}
}
