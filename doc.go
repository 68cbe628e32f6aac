// Package repaint is a partial (incremental) rendering core for retained
// scene trees: it tracks which screen rectangles changed between frames so a
// backend redraws only those instead of the whole surface.
//
// # The three-phase protocol
//
// One [State] lives as long as its window and owns the per-item cache.
// Each frame:
//
//  1. Create a [Renderer] bound to the state and run
//     [Renderer.ComputeDirtyRegions] (usually via [State.ApplyDirtyRegion])
//     over the item trees. Every item is diffed against its cached bounding
//     box and transform; moved items dirty both their old and new screen
//     rectangles, and items whose render tracker fired dirty their current
//     one.
//  2. Drive the draw walk, asking [Renderer.FilterItem] per item whether
//     its clipped screen geometry intersects the dirty region.
//  3. Wrap each concrete paint call in [Renderer.Render], which evaluates
//     it under the item's property tracker so the values it reads re-dirty
//     the item for the next frame.
//
// Phase 1 must complete before phases 2 and 3 start, and a frame's walk
// must not be abandoned after phase 1: the cache has already been
// reconciled as though the frame rendered.
//
// # Quick start
//
// The built-in [Node] tree and [Surface] run the whole protocol against an
// [Ebitengine] image:
//
//	state := repaint.NewState()
//	surface := repaint.NewSurface()
//
//	root := repaint.NewContainer("root")
//	box := repaint.NewBox("box", 64, 64, repaint.Color{R: 1, A: 1})
//	root.AddChild(box)
//
//	// each frame:
//	box.SetPosition(x, y)
//	changed := surface.Repaint(state, root, screen)
//
// Custom trees implement [Item] (plus the optional [ChildTransformer] and
// [UniformEffect] capabilities); custom backends implement [Backend].
//
// # Dirty regions
//
// A [DirtyRegion] stores at most three rectangles. Adding more merges the
// new rectangle into whichever stored one grows the least, so the tracked
// region is always a
// superset of everything added: the cost of bounded memory is occasional
// extra repainting, never a missed one.
//
// # Threading
//
// The package is single-threaded by contract, like the scene trees it
// serves: all state belongs to one window and is mutated within one call
// stack. No operation is safe for concurrent use.
//
// [Ebitengine]: https://ebitengine.org
package repaint
