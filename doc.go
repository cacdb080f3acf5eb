// Package dotfield is a field-effect engine for dense dot grids, built on
// [Ebitengine].
//
// Dotfield renders a fixed lattice of point markers ("dots") that deform
// visually under the influence of movable nearby shapes ("sources"). Sources
// emit composable spatial effects (repulsion, attraction, ripple,
// magnification); the engine evaluates the combined result of all
// overlapping effects per dot per frame and tracks exactly which screen
// regions changed so only those are redrawn.
//
// # Quick start
//
// Create an [Engine], register effects, and drive it from an [ebiten.Game]:
//
//	eng := dotfield.NewEngine(dotfield.DefaultEngineConfig())
//	id := eng.RegisterEffect(dotfield.NewRepulsionEffect(
//		dotfield.Vec2{X: 100, Y: 100}, dotfield.Vec2{X: 150, Y: 80}, 1.8))
//
//	func (g *Game) Update() error        { g.eng.Tick(1.0 / float64(ebiten.TPS())); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.eng.Render(dotfield.NewImageSurface(s)) }
//
// When a bound source moves, sync the effect's footprint; the union of the
// old and new affected bounds is marked dirty automatically:
//
//	eng.UpdateEffectGeometry(id, newPos, newSize)
//
// Or let [SourceBindings] keep effect geometry synced to movable sources.
//
// # Effects
//
// Effects implement [Effect]. Built-in variants: [RepulsionEffect] (ring
// falloff), [AttractionEffect] (pulsing pull), [RippleEffect] (time-animated
// tangential wave with hue cycling), and [CompositeEffect] (an ordered list
// of pluggable [Behavior] values such as [MagnifyBehavior] and
// [GrayscaleBehavior]).
//
// All effect evaluation, combination, and dirty-region bookkeeping run on
// one frame-driving goroutine; nothing in this package is safe for
// concurrent use.
//
// [Ebitengine]: https://ebitengine.org
package dotfield
