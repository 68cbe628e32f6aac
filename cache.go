package repaint

// CachedRenderingData is the per-item cache slot. Embed one per item,
// zero-initialized; the partial renderer stamps it on the item's first visit.
// The generation field ties the index to the cache that issued it: after the
// cache is cleared, stale indices simply stop matching.
type CachedRenderingData struct {
	cacheIndex      int
	cacheGeneration uint64
}

// cacheEntry is one slab slot: the item's last-known snapshot plus the
// property tracker created lazily on first render.
type cacheEntry struct {
	snapshot itemSnapshot
	tracker  *Tracker

	// free-list bookkeeping
	occupied bool
	nextFree int
}

// renderCache maps an item's stable cache index to its entry. Slots are
// reused via a free list; generation bumps invalidate every outstanding
// index in O(1) without visiting the items that hold them.
type renderCache struct {
	entries    []cacheEntry
	firstFree  int // index into entries, or -1
	generation uint64
	len        int
}

// newRenderCache returns an empty cache at generation 1, so that
// zero-initialized CachedRenderingData (generation 0) never matches.
func newRenderCache() *renderCache {
	return &renderCache{firstFree: -1, generation: 1}
}

// insert stores an entry and returns its index.
func (c *renderCache) insert(e cacheEntry) int {
	e.occupied = true
	c.len++
	if c.firstFree >= 0 {
		idx := c.firstFree
		c.firstFree = c.entries[idx].nextFree
		c.entries[idx] = e
		return idx
	}
	c.entries = append(c.entries, e)
	return len(c.entries) - 1
}

// remove frees the slot at idx and returns the entry that was there.
// Panics if the slot is vacant; callers guard with the generation check.
func (c *renderCache) remove(idx int) cacheEntry {
	e := c.entries[idx]
	if !e.occupied {
		panic("repaint: remove of vacant cache slot")
	}
	c.entries[idx] = cacheEntry{nextFree: c.firstFree}
	c.firstFree = idx
	c.len--
	return e
}

// get returns the entry at idx, or nil if the slot is vacant.
func (c *renderCache) get(idx int) *cacheEntry {
	if idx < 0 || idx >= len(c.entries) || !c.entries[idx].occupied {
		return nil
	}
	return &c.entries[idx]
}

// clear drops every entry and bumps the generation. Existing
// CachedRenderingData all over the tree become stale without being touched.
func (c *renderCache) clear() {
	c.entries = c.entries[:0]
	c.firstFree = -1
	c.len = 0
	c.generation++
}

// getEntry returns the item's cache entry, or nil when the item was never
// cached or its entry predates the last clear.
func (d *CachedRenderingData) getEntry(c *renderCache) *cacheEntry {
	if d.cacheGeneration != c.generation {
		return nil
	}
	return c.get(d.cacheIndex)
}

// stamp records a freshly inserted slot on the item.
func (d *CachedRenderingData) stamp(c *renderCache, idx int) {
	d.cacheIndex = idx
	d.cacheGeneration = c.generation
}

// release removes the item's entry from the cache if it has a valid one,
// invalidating the item's slot, and returns the removed snapshot.
func (d *CachedRenderingData) release(c *renderCache) (itemSnapshot, bool) {
	if d.cacheGeneration != c.generation {
		return itemSnapshot{}, false
	}
	idx := d.cacheIndex
	d.cacheGeneration = 0
	return c.remove(idx).snapshot, true
}
