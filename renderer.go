package repaint

// Renderer drives the per-frame partial rendering protocol for one frame:
//
//  1. ComputeDirtyRegions walks the item trees, diffs every item against its
//     cached snapshot, and accumulates the region that must be repainted.
//  2. The backend's draw walk calls FilterItem per item to decide whether the
//     item overlaps that region.
//  3. The draw walk wraps each actual paint call in Render, which evaluates
//     it under the item's property tracker so paint-affecting reads re-dirty
//     the item for the next frame.
//
// Create one per frame via State.CreateRenderer; phase 1 must finish before
// phases 2 and 3 begin, and none of the phases are re-entrant.
type Renderer struct {
	cache   *renderCache
	region  DirtyRegion
	backend Backend

	// walk state buffer, reused across ComputeDirtyRegions calls
	stack []dirtyWalkFrame
}

func newRenderer(cache *renderCache, initial DirtyRegion, backend Backend) *Renderer {
	return &Renderer{cache: cache, region: initial, backend: backend}
}

// DirtyRegion returns the region accumulated so far this frame.
func (r *Renderer) DirtyRegion() DirtyRegion {
	return r.region
}

// Backend returns the backend the drawing calls are forwarded to.
func (r *Renderer) Backend() Backend {
	return r.backend
}

// dirtyWalkState is the per-branch state carried down the tree during
// ComputeDirtyRegions.
type dirtyWalkState struct {
	// transform and oldTransform map item coordinates to the screen under
	// the current and the previously rendered frame's geometry. They
	// diverge below an item that moved.
	transform    Affine
	oldTransform Affine

	// clip is the accumulated screen-space clip; nothing outside it can
	// need repainting.
	clip Rect

	// mustRefreshChildren forces every descendant dirty, set below a clip
	// or opacity item whose own state changed.
	mustRefreshChildren bool
}

// adjustForChildren maps the state one level down using the child transform
// of the current and the previously cached snapshot.
func (s *dirtyWalkState) adjustForChildren(childTransform, oldChildTransform Affine) {
	s.transform = childTransform.Then(s.transform)
	s.oldTransform = oldChildTransform.Then(s.oldTransform)
}

type dirtyWalkFrame struct {
	item  Item
	state dirtyWalkState
}

// ComputeDirtyRegions visits the tree below root and accumulates the screen
// region that must be repainted, reconciling the cache along the way. origin
// is the screen position of the root's coordinate origin and size the
// logical size of the surface.
//
// The walk is pre-order and back-to-front, driven by an explicit stack so
// deep trees cannot exhaust the goroutine stack.
func (r *Renderer) ComputeDirtyRegions(root Item, origin Vec2, size Vec2) {
	initial := Translation(origin.X, origin.Y)
	r.stack = append(r.stack[:0], dirtyWalkFrame{
		item: root,
		state: dirtyWalkState{
			transform:    initial,
			oldTransform: initial,
			clip:         RectFromSize(size.X, size.Y),
		},
	})

	for len(r.stack) > 0 {
		frame := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]

		childState, visitChildren := r.visitItem(frame.item, frame.state)
		if !visitChildren {
			continue
		}
		// Push in reverse so children pop in back-to-front order.
		for i := frame.item.ChildCount() - 1; i >= 0; i-- {
			r.stack = append(r.stack, dirtyWalkFrame{item: frame.item.Child(i), state: childState})
		}
	}
}

// visitItem reconciles a single item against the cache and returns the state
// for its children plus whether they should be visited at all.
func (r *Renderer) visitItem(item Item, state dirtyWalkState) (dirtyWalkState, bool) {
	newState := state
	data := item.RenderCache()
	entry := data.getEntry(r.cache)

	if entry == nil {
		// First sight of this item: cache it and repaint where it landed.
		snap := newItemSnapshot(item, r.backend)
		data.stamp(r.cache, r.cache.insert(cacheEntry{snapshot: snap}))

		tr := snap.childTransform()
		newState.adjustForChildren(tr, tr)

		if snap.kind == clipItem {
			newState.clip = newState.clip.Intersect(
				state.transform.TransformRect(snap.boundingRect))
		}

		r.markDirtyRect(snap.boundingRect, state.transform, state.clip)
		return newState, !newState.clip.Empty()
	}

	renderingDirty := entry.tracker != nil && entry.tracker.IsDirty()
	oldSnap := entry.snapshot
	newSnap := newItemSnapshot(item, r.backend)
	geometryChanged := oldSnap != newSnap

	if hasUniformEffect(item) {
		// A changed clip or opacity affects all nested content, including
		// content outside the element, regardless of per-item dirtiness.
		newState.mustRefreshChildren = newState.mustRefreshChildren || renderingDirty || geometryChanged
		if renderingDirty {
			// This item may not be rendered again this frame, and a dirty
			// tracker must not linger into the next one.
			entry.tracker = nil
		}
	}

	if geometryChanged {
		// The item moved or reshaped: erase where it was, paint where it is.
		r.markDirtyRect(oldSnap.boundingRect, state.oldTransform, state.clip)
		r.markDirtyRect(newSnap.boundingRect, state.transform, state.clip)
		newState.adjustForChildren(newSnap.childTransform(), oldSnap.childTransform())
		entry.snapshot = newSnap
		return newState, true
	}

	tr := oldSnap.childTransform()
	newState.adjustForChildren(tr, tr)

	if renderingDirty {
		r.markDirtyRect(oldSnap.boundingRect, state.transform, state.clip)
		return newState, true
	}

	if state.mustRefreshChildren || newState.transform != newState.oldTransform {
		// Tainted by an ancestor: the item repaints at both its previous
		// and its current screen position even though it didn't change.
		r.markDirtyRect(oldSnap.boundingRect, state.oldTransform, state.clip)
		r.markDirtyRect(oldSnap.boundingRect, state.transform, state.clip)
	} else if entry.tracker != nil {
		// Clean and untainted: keep the reactive graph aware that future
		// paint-affecting changes must re-trigger this computation.
		entry.tracker.RegisterAsDependencyToCurrentBinding()
	}

	if oldSnap.kind == clipItem {
		// Narrow the clip under both transforms so a clip rect that moved
		// still covers where it used to be.
		geom := oldSnap.boundingRect
		newState.clip = newState.clip.Intersect(
			state.transform.TransformRect(geom).Union(
				state.oldTransform.TransformRect(geom)))
		if newState.clip.Empty() {
			return newState, false
		}
	}
	return newState, true
}

// markDirtyRect adds an item-space rectangle to the dirty region, mapped to
// the screen and clipped. Rectangles with non-finite origins are skipped.
func (r *Renderer) markDirtyRect(rect Rect, transform Affine, clip Rect) {
	if rect.Empty() || !rect.finiteOrigin() {
		return
	}
	clipped := transform.TransformRect(rect).Intersect(clip)
	if !clipped.Empty() {
		r.region.AddRect(clipped)
	}
}

// FilterItem decides, during the draw walk, whether item must be painted
// this frame. It returns the item's geometry alongside so callers don't
// query it twice. A false result only skips this item's own paint; whether
// children are visited stays the caller's decision.
func (r *Renderer) FilterItem(item Item) (bool, Rect) {
	// Query untracked: the dirty-region pass already registered the
	// geometry dependencies.
	geometry := Untracked(item.Geometry)

	var boundingRect Rect
	if entry := item.RenderCache().getEntry(r.cache); entry != nil {
		boundingRect = entry.snapshot.boundingRect
	} else {
		// Item created after ComputeDirtyRegions ran for this frame.
		boundingRect = item.BoundingRect(geometry)
	}

	clipped := r.backend.CurrentClip().Intersect(boundingRect)
	if clipped.Empty() {
		return false, geometry
	}
	clipped = clipped.Translate(r.backend.Translation())
	return r.region.drawIntersects(clipped), geometry
}

// Render wraps item's actual paint call. The paint runs under the item's
// property tracker (created on first render) so that any tracked value it
// reads re-dirties the item next frame. An item with no valid cache entry
// was created between ComputeDirtyRegions and the draw walk; it renders
// untracked this frame, with only a geometry dependency established, and
// self-corrects on the next one.
func (r *Renderer) Render(item Item, renderFn func()) {
	if entry := item.RenderCache().getEntry(r.cache); entry != nil {
		if entry.tracker == nil {
			entry.tracker = NewTracker()
		}
		entry.tracker.Evaluate(renderFn)
		return
	}
	item.Geometry()
	renderFn()
}
