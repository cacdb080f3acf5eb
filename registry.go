package dotfield

// regEntry pairs a registered effect with its assigned id. Entries keep
// registration order, which the combiner's color tie-break depends on.
type regEntry struct {
	id     EffectID
	effect Effect
}

// Registry owns the set of live effects: it assigns stable identities,
// computes the union of affected bounds, and drives per-frame time advance.
// Effects are owned exclusively by the Registry once added; external code
// tracks them by EffectID.
type Registry struct {
	entries []regEntry
	index   map[EffectID]int

	// nextID is a plain counter (no atomic — dotfield is single-threaded).
	nextID EffectID

	// FadeInDuration, when positive, ramps each newly added effect's
	// strength from zero over this many seconds instead of popping it in at
	// full force. Zero (the default) registers effects at full strength
	// immediately.
	FadeInDuration float32

	onBoundsChanged func(Rect)
}

// NewRegistry creates an empty effect registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[EffectID]int)}
}

// Len returns the number of registered effects.
func (r *Registry) Len() int {
	return len(r.entries)
}

// OnBoundsChanged sets the callback fired whenever adding, removing, or
// moving an effect changes the combined affected region. The rect carries
// exactly the changed effect's own bounds (old plus new for a move), so
// downstream dirty tracking can mark just that region.
func (r *Registry) OnBoundsChanged(fn func(Rect)) {
	r.onBoundsChanged = fn
}

// notifyBounds fires the bounds-changed callback with the given pixel rect.
func (r *Registry) notifyBounds(bounds Rect) {
	if r.onBoundsChanged != nil && !bounds.IsEmpty() {
		r.onBoundsChanged(bounds)
	}
}

// Add registers an effect and returns its assigned id.
// The bounds-changed callback fires with the effect's own affected bounds.
func (r *Registry) Add(e Effect, spacing float64) EffectID {
	r.nextID++
	id := r.nextID
	r.index[id] = len(r.entries)
	r.entries = append(r.entries, regEntry{id: id, effect: e})

	if f, ok := e.(interface{ beginFade(float32) }); ok {
		f.beginFade(r.FadeInDuration)
	}

	r.notifyBounds(e.AffectedBounds(spacing))
	return id
}

// Remove unregisters the effect with the given id. Returns false for an
// unknown or already-removed id; callers treat that as a no-op, since a UI
// can remove effects out of order while a sync is still pending.
func (r *Registry) Remove(id EffectID, spacing float64) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	bounds := r.entries[i].effect.AffectedBounds(spacing)

	copy(r.entries[i:], r.entries[i+1:])
	r.entries = r.entries[:len(r.entries)-1]
	delete(r.index, id)
	for j := i; j < len(r.entries); j++ {
		r.index[r.entries[j].id] = j
	}

	r.notifyBounds(bounds)
	return true
}

// Get returns the effect with the given id, or (nil, false) when unknown.
func (r *Registry) Get(id EffectID) (Effect, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.entries[i].effect, true
}

// SetGeometry moves the source footprint of the effect with the given id.
// The bounds-changed callback fires with the union of the old and new
// affected bounds. Returns false for an unknown id.
func (r *Registry) SetGeometry(id EffectID, pos, size Vec2, spacing float64) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	e := r.entries[i].effect
	old := e.AffectedBounds(spacing)
	e.SetGeometry(pos, size)
	r.notifyBounds(old.Union(e.AffectedBounds(spacing)))
	return true
}

// ForEach calls fn for every registered effect in registration order.
func (r *Registry) ForEach(fn func(EffectID, Effect)) {
	for _, ent := range r.entries {
		fn(ent.id, ent.effect)
	}
}

// AdvanceTime moves every active effect's local animation time forward:
// registration fade ramps first, then the effect's own Advance hook.
func (r *Registry) AdvanceTime(dt float64) {
	for _, ent := range r.entries {
		if !ent.effect.Active() {
			continue
		}
		if f, ok := ent.effect.(interface{ advanceFade(float64) }); ok {
			f.advanceFade(dt)
		}
		ent.effect.Advance(dt)
	}
}

// CombinedAffectedBounds returns the union of affected bounds over all
// active effects, or a zero Rect when none are active.
func (r *Registry) CombinedAffectedBounds(spacing float64) Rect {
	var out Rect
	for _, ent := range r.entries {
		if !ent.effect.Active() {
			continue
		}
		out = out.Union(ent.effect.AffectedBounds(spacing))
	}
	return out
}
