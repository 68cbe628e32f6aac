package repaint

// RepaintBufferType describes which parts of the destination buffer still
// hold previously rendered content, and can therefore be left alone by a
// partial repaint.
type RepaintBufferType uint8

const (
	// NewBuffer means the destination holds nothing useful; the full
	// surface is redrawn every frame and no partial rendering happens.
	NewBuffer RepaintBufferType = iota

	// ReusedBuffer means the same buffer is presented every frame and
	// still contains the previous frame, so only this frame's dirty
	// region needs repainting.
	ReusedBuffer

	// SwappedBuffers means two buffers alternate; the buffer being drawn
	// into lags one frame behind, so the previous frame's dirty region
	// must be repainted in addition to this frame's.
	SwappedBuffers
)

// State holds everything the partial renderer keeps between frames: the
// per-item snapshot cache, externally forced dirty regions, and the
// full-refresh flag. One State per window or surface; it is the only
// persistent object of the package.
type State struct {
	cache *renderCache

	// forceDirty accumulates externally reported invalidation (expose
	// events, overlays) and is drained into the next frame's renderer.
	forceDirty DirtyRegion

	// forceScreenRefresh requests a full repaint next frame regardless of
	// what is dirty. Last resort, consumed by ApplyDirtyRegion.
	forceScreenRefresh bool
}

// NewState returns an empty partial rendering state.
func NewState() *State {
	return &State{cache: newRenderCache()}
}

// CreateRenderer binds a fresh per-frame Renderer to this state's cache,
// seeded with any dirty region accumulated via MarkDirtyRegion since the
// previous frame (which is drained by this call). Call ApplyDirtyRegion
// afterwards to run the dirty-region computation.
func (s *State) CreateRenderer(backend Backend) *Renderer {
	initial := s.forceDirty
	s.forceDirty = DirtyRegion{}
	return newRenderer(s.cache, initial, backend)
}

// ApplyDirtyRegion runs the dirty-region computation for each tree, resolves
// the force-screen-refresh flag, and returns the region that changed this
// frame. The renderer's working region is additionally widened by
// existingBufferDirty, the part of the destination buffer that does not yet
// contain the previous frame (e.g. the lagging buffer under SwappedBuffers).
// That widening is what the draw walk repaints; the returned region is what
// actually changed, which is what callers report to the windowing system.
func (s *State) ApplyDirtyRegion(r *Renderer, trees []TreeAt, size Vec2, existingBufferDirty DirtyRegion) DirtyRegion {
	for _, t := range trees {
		if t.Root != nil {
			r.ComputeDirtyRegions(t.Root, t.Origin, size)
		}
	}

	screen := RectFromSize(size.X, size.Y)
	if s.forceScreenRefresh {
		s.forceScreenRefresh = false
		r.region = RegionFromRect(screen)
	}

	changed := r.region.Intersection(screen)
	r.region = changed.Union(existingBufferDirty).Intersection(screen)
	return changed
}

// MarkDirtyRegion adds region to what the next frame will repaint no matter
// whether any item is dirty. Used by the window layer for invalidation it
// learns about out of band.
func (s *State) MarkDirtyRegion(region DirtyRegion) {
	s.forceDirty = s.forceDirty.Union(region)
}

// FreeGraphicsResources releases the cache entries of destroyed items and
// schedules a full screen refresh: the cached snapshots are relative to
// parents that may themselves be gone, so the destroyed items' last screen
// rectangles cannot be reconstructed after the fact.
func (s *State) FreeGraphicsResources(items []Item) {
	for _, item := range items {
		item.RenderCache().release(s.cache)
	}
	s.forceScreenRefresh = true
}

// ClearCache drops every cached snapshot in O(1) via a generation bump.
// Use when the underlying surface changes wholesale, for example on GPU
// context loss.
func (s *State) ClearCache() {
	s.cache.clear()
}

// ForceScreenRefresh makes the next frame repaint the entire surface.
func (s *State) ForceScreenRefresh() {
	s.forceScreenRefresh = true
}
