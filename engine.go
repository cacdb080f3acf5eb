package dotfield

import "time"

// effectScratch caches an active effect's bounds for one frame of per-dot
// culling.
type effectScratch struct {
	effect Effect
	bounds Rect
}

// Engine owns the dot grid, the effect registry, and the dirty tracker, and
// drives the per-frame pipeline: advance time, evaluate and combine effects
// per dot, mark dirty regions, render only what changed.
//
// The Engine is exclusively single-threaded: Tick and Render must be called
// from the same frame-driving goroutine, and dot state may only be read
// between those calls, never during them.
type Engine struct {
	cfg      EngineConfig
	grid     *Grid
	registry *Registry
	tracker  *DirtyTracker

	// frame is the monotonic frame counter, advanced at the start of Tick.
	frame uint64

	// renderPass stamps dots during Render for per-pass de-duplication.
	// Separate from frame so a render forced without an intervening Tick
	// (viewport resize, MarkAllDirty) still repaints.
	renderPass uint64

	// prevAffected is last frame's affected dot set. It is reset wholesale
	// before recomputing, so dots that left all influence areas this frame
	// snap back to neutral instead of keeping stale displacement.
	prevAffected []*Dot
	affectedBuf  []*Dot

	scratch []effectScratch

	// prevBounds is last frame's combined affected bounds, marked dirty
	// alongside the current bounds so vacated regions repaint.
	prevBounds Rect

	onBoundsChanged func(Rect)

	debug bool
	stats frameStats
}

// NewEngine creates an engine from cfg. Degenerate configuration values
// degrade to an empty grid rather than failing; use EngineConfig.Validate
// to surface them ahead of time.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{cfg: cfg}
	e.grid = NewGrid(cfg.Rows, cfg.Cols, cfg.Spacing, cfg.DotSize)
	e.registry = NewRegistry()
	e.registry.FadeInDuration = cfg.FadeInDuration
	e.tracker = NewDirtyTracker(cfg.RegionRows, cfg.RegionCols, cfg.Viewport)
	e.registry.OnBoundsChanged(func(r Rect) {
		e.tracker.MarkDirty(r)
		if e.onBoundsChanged != nil {
			e.onBoundsChanged(r)
		}
	})
	return e
}

// Grid returns the engine's dot grid.
func (e *Engine) Grid() *Grid { return e.grid }

// Registry returns the engine's effect registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Tracker returns the engine's dirty region tracker.
func (e *Engine) Tracker() *DirtyTracker { return e.tracker }

// Config returns the engine's configuration snapshot.
func (e *Engine) Config() EngineConfig { return e.cfg }

// SetDebugMode enables per-frame stat logging to stderr.
func (e *Engine) SetDebugMode(enabled bool) { e.debug = enabled }

// --- Grid surface ---

// BuildGrid rebuilds the lattice. All existing dot pointers are invalidated
// and every region is marked dirty for a full repaint.
func (e *Engine) BuildGrid(rows, cols int, spacing, dotSize float64) {
	if e.debug {
		debugWarnGridSize(rows, cols)
	}
	e.grid.Rebuild(rows, cols, spacing, dotSize)
	e.cfg.Rows, e.cfg.Cols = rows, cols
	e.cfg.Spacing, e.cfg.DotSize = spacing, dotSize
	e.prevAffected = nil
	e.prevBounds = Rect{}
	e.tracker.MarkAllDirty()
}

// LookupDot returns the dot at (col, row), or (nil, false) when absent.
func (e *Engine) LookupDot(col, row int) (*Dot, bool) {
	return e.grid.Lookup(col, row)
}

// VisibleDots returns all dots whose lattice cell intersects the viewport.
func (e *Engine) VisibleDots(viewport Rect) []*Dot {
	return e.grid.VisibleSubset(viewport)
}

// SetViewport resizes the dirty partition for a new viewport. All regions
// start dirty.
func (e *Engine) SetViewport(viewport Rect) {
	e.cfg.Viewport = viewport
	e.tracker.Resize(viewport)
}

// --- Effect surface ---

// RegisterEffect adds an effect and returns its id. The region the effect
// covers is marked dirty.
func (e *Engine) RegisterEffect(eff Effect) EffectID {
	return e.registry.Add(eff, e.grid.Spacing())
}

// UnregisterEffect removes the effect with the given id, marking the region
// it covered dirty. Returns false for an unknown id; callers treat that as
// a no-op.
func (e *Engine) UnregisterEffect(id EffectID) bool {
	return e.registry.Remove(id, e.grid.Spacing())
}

// Effect returns the registered effect with the given id.
func (e *Engine) Effect(id EffectID) (Effect, bool) {
	return e.registry.Get(id)
}

// EffectBounds returns the current affected bounds of the effect with the
// given id, or a zero Rect when unknown.
func (e *Engine) EffectBounds(id EffectID) Rect {
	eff, ok := e.registry.Get(id)
	if !ok {
		return Rect{}
	}
	return eff.AffectedBounds(e.grid.Spacing())
}

// UpdateEffectGeometry syncs an effect's source footprint, typically called
// when the bound UI shape moves or resizes. The union of the old and new
// affected bounds is marked dirty. Returns false for an unknown id.
func (e *Engine) UpdateEffectGeometry(id EffectID, pos, size Vec2) bool {
	return e.registry.SetGeometry(id, pos, size, e.grid.Spacing())
}

// OnBoundsChanged sets a callback fired whenever registering, removing, or
// moving an effect changes the combined affected region.
func (e *Engine) OnBoundsChanged(fn func(Rect)) {
	e.onBoundsChanged = fn
}

// --- Dirty surface ---

// MarkDirty flags every region intersecting rect for redraw. Use this for
// bounds the engine cannot see, such as the old+new union of a dragged
// shape's own outline.
func (e *Engine) MarkDirty(rect Rect) {
	e.tracker.MarkDirty(rect)
}

// MarkAllDirty forces a full repaint on the next Render.
func (e *Engine) MarkAllDirty() {
	e.tracker.MarkAllDirty()
}

// IsRegionDirty reports whether the partition cell at (col, row) is flagged.
func (e *Engine) IsRegionDirty(col, row int) bool {
	return e.tracker.IsDirty(col, row)
}

// ConsumeDirtyRegions visits every dirty region and clears its flag. Most
// callers want Render instead; this exists for custom renderers.
func (e *Engine) ConsumeDirtyRegions(fn func(*DirtyRegion)) {
	e.tracker.ConsumeDirty(fn)
}

// --- Frame pipeline ---

// Tick advances animation time by dt seconds and recomputes the visual
// state of every dot inside the combined affected bounds. Returns the
// pixel bounds of dots that changed this frame (zero Rect when nothing
// changed).
//
// Ordering within a frame is fixed: time advance, then bounds computation,
// then the reset pre-pass, then per-dot evaluation, then dirty marking.
func (e *Engine) Tick(dt float64) Rect {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
		e.stats = frameStats{}
	}

	e.frame++
	e.tracker.advanceFrame()
	e.registry.AdvanceTime(dt)

	spacing := e.grid.Spacing()
	bounds := e.registry.CombinedAffectedBounds(spacing)

	// Reset pre-pass: every dot affected last frame returns to neutral
	// before recomputation, so dots that left all influence areas do not
	// keep stale displacement.
	for _, d := range e.prevAffected {
		d.reset()
	}
	if e.debug {
		e.stats.dotsReset = len(e.prevAffected)
	}

	changed := e.prevBounds
	e.prevAffected = e.prevAffected[:0]

	if bounds.IsEmpty() {
		// Nothing active. The vacated region still needs a repaint.
		e.tracker.MarkDirty(changed)
		e.prevBounds = Rect{}
		if e.debug {
			e.stats.tickTime = time.Since(t0)
			e.logTick()
		}
		return changed
	}

	// Cache active effects and their culling bounds for this frame.
	e.scratch = e.scratch[:0]
	e.registry.ForEach(func(_ EffectID, eff Effect) {
		if eff.Active() {
			e.scratch = append(e.scratch, effectScratch{effect: eff, bounds: eff.AffectedBounds(spacing)})
		}
	})

	evaluated := 0
	e.grid.ForEachIn(bounds, func(d *Dot) {
		combined := neutralCombined()
		colorDist := 0.0
		for i := range e.scratch {
			s := &e.scratch[i]
			if !s.bounds.Contains(d.OriginalPos.X, d.OriginalPos.Y) {
				continue
			}
			combineInto(&combined, &colorDist, safeEvaluate(s.effect, d.OriginalPos, spacing))
			evaluated++
		}
		applyCombined(d, combined)
		if d.HasEffect {
			e.prevAffected = append(e.prevAffected, d)
		}
	})

	e.tracker.MarkDirty(changed.Union(bounds))
	e.prevBounds = bounds

	if e.debug {
		e.stats.dotsEvaluated = evaluated
		e.stats.dotsAffected = len(e.prevAffected)
		e.stats.tickTime = time.Since(t0)
		e.logTick()
	}
	return changed.Union(bounds)
}

// safeEvaluate isolates one effect's evaluation: a panicking effect
// degrades to no contribution for that dot instead of aborting the frame
// for every other effect and dot.
func safeEvaluate(eff Effect, dotPos Vec2, spacing float64) (result EffectResult) {
	defer func() {
		if recover() != nil {
			result = noEffect()
		}
	}()
	return eff.Evaluate(dotPos, spacing)
}

// regionClearer is implemented by surfaces that can erase a region before
// its dots are repainted. ImageSurface implements it.
type regionClearer interface {
	FillRect(r Rect, c Color)
}

// Render repaints every dot whose visual position lies inside a dirty
// region, then marks all regions clean. A dot spanning several dirty
// regions is drawn exactly once per frame.
func (e *Engine) Render(surface Surface) {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	e.renderPass++
	clearer, canClear := surface.(regionClearer)
	spacing := e.grid.Spacing()
	rendered := 0
	regions := 0

	e.tracker.forEachDirty(func(r *DirtyRegion) {
		regions++
		if canClear {
			clearer.FillRect(r.Bounds, e.cfg.ClearColor)
		}
		// Displaced dots can stray from their home cell by a fraction of
		// the spacing, so scan one spacing beyond the region on all sides.
		e.grid.ForEachIn(r.Bounds.Inflate(spacing), func(d *Dot) {
			if d.renderedFrame == e.renderPass {
				return
			}
			if !r.Bounds.Contains(d.VisualPos.X, d.VisualPos.Y) {
				return
			}
			d.renderedFrame = e.renderPass
			surface.DrawCircle(d.VisualPos, d.Radius(), e.dotColor(d))
			rendered++
		})
	})
	e.tracker.MarkAllClean()

	if e.debug {
		e.stats.dotsRendered = rendered
		e.stats.dirtyRegions = regions
		e.stats.renderTime = time.Since(t0)
		e.logRender()
	}
}

// dotColor resolves the color a dot renders with this frame.
func (e *Engine) dotColor(d *Dot) Color {
	c := e.cfg.DotColor
	if d.HasOverride {
		c = d.OverrideColor
	}
	c.A *= d.OpacityMultiplier
	return c
}
