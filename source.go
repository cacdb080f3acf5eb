package dotfield

// Source is a movable external shape that anchors a field effect. The engine
// never owns sources; it only reads position/size snapshots. Implementations
// are typically UI shapes (a dragged rectangle, a resizable circle's
// bounding box).
type Source interface {
	Position() Vec2
	Size() Vec2
}

// sourceGeom is the last synced snapshot of a bound source.
type sourceGeom struct {
	pos, size Vec2
}

// SourceBindings keeps effect geometry synced to movable sources. The
// binding is an explicit id-keyed table rather than a back-reference stored
// inside effects, so UI shapes and engine-owned effects never hold pointers
// to each other.
type SourceBindings struct {
	engine *Engine
	bound  map[EffectID]Source
	last   map[EffectID]sourceGeom
}

// NewSourceBindings creates an empty binding table for the given engine.
func NewSourceBindings(eng *Engine) *SourceBindings {
	return &SourceBindings{
		engine: eng,
		bound:  make(map[EffectID]Source),
		last:   make(map[EffectID]sourceGeom),
	}
}

// Bind associates a registered effect with a source. The effect immediately
// adopts the source's current geometry.
func (b *SourceBindings) Bind(id EffectID, src Source) {
	b.bound[id] = src
	geom := sourceGeom{pos: src.Position(), size: src.Size()}
	b.last[id] = geom
	b.engine.UpdateEffectGeometry(id, geom.pos, geom.size)
}

// Unbind removes the association for id. Returns false when id was not
// bound. The effect itself stays registered.
func (b *SourceBindings) Unbind(id EffectID) bool {
	if _, ok := b.bound[id]; !ok {
		return false
	}
	delete(b.bound, id)
	delete(b.last, id)
	return true
}

// Len returns the number of bound sources.
func (b *SourceBindings) Len() int {
	return len(b.bound)
}

// Sync pushes changed source geometry into the bound effects and returns
// the union of the affected bounds that moved (old plus new footprints).
// Bindings whose effect has been unregistered are dropped silently; the UI
// may unbind and unregister in either order.
func (b *SourceBindings) Sync() Rect {
	var changed Rect
	for id, src := range b.bound {
		geom := sourceGeom{pos: src.Position(), size: src.Size()}
		if geom == b.last[id] {
			continue
		}
		old := b.engine.EffectBounds(id)
		if !b.engine.UpdateEffectGeometry(id, geom.pos, geom.size) {
			delete(b.bound, id)
			delete(b.last, id)
			continue
		}
		b.last[id] = geom
		changed = changed.Union(old).Union(b.engine.EffectBounds(id))
	}
	return changed
}
