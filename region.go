package repaint

// maxRegionRects is the maximum number of rectangles a DirtyRegion stores.
// Past this the region is simplified by merging, trading some overdraw for
// bounded memory and cheap intersection tests.
const maxRegionRects = 3

// DirtyRegion approximates the screen area that needs to be redrawn as a
// small set of rectangles. The union of the stored rectangles is always a
// superset of every rectangle ever added: simplification may grow the region
// but can never lose any of it, so overdraw is the only failure mode.
type DirtyRegion struct {
	rects [maxRegionRects]Rect
	count int
}

// RegionFromRect returns a region covering the single given rectangle.
func RegionFromRect(r Rect) DirtyRegion {
	var d DirtyRegion
	d.AddRect(r)
	return d
}

// AddRect adds a rectangle to the region.
//
// If the region becomes too complex it is simplified by merging the new
// rectangle into whichever stored rectangle grows the least, so the result
// may be bigger than the exact union.
func (d *DirtyRegion) AddRect(r Rect) {
	if r.Empty() {
		return
	}
	i := 0
	for i < d.count {
		if d.rects[i].Contains(r) {
			// Already covered.
			return
		}
		if r.Contains(d.rects[i]) {
			// The new rectangle absorbs this entry; swap-remove and keep
			// scanning, one add may absorb several entries.
			d.rects[i] = d.rects[d.count-1]
			d.count--
			continue
		}
		i++
	}

	if d.count < maxRegionRects {
		d.rects[d.count] = r
		d.count++
		return
	}

	// At capacity: merge into the entry whose union with r adds the least
	// extra area.
	best := 0
	bestGrowth := d.rects[0].Union(r).Area() - d.rects[0].Area()
	for i := 1; i < d.count; i++ {
		growth := d.rects[i].Union(r).Area() - d.rects[i].Area()
		if growth < bestGrowth {
			best = i
			bestGrowth = growth
		}
	}
	d.rects[best] = d.rects[best].Union(r)
}

// Union returns the combination of d and other. The result may be simplified
// beyond the exact union.
func (d DirtyRegion) Union(other DirtyRegion) DirtyRegion {
	s := d
	for i := 0; i < other.count; i++ {
		s.AddRect(other.rects[i])
	}
	return s
}

// Intersection clips every stored rectangle against bounds, dropping the
// ones that fall entirely outside.
func (d DirtyRegion) Intersection(bounds Rect) DirtyRegion {
	ret := d
	i := 0
	for i < ret.count {
		clipped := ret.rects[i].Intersect(bounds)
		if clipped.Empty() {
			ret.count--
			ret.rects[i] = ret.rects[ret.count]
			continue
		}
		ret.rects[i] = clipped
		i++
	}
	return ret
}

// BoundingRect returns the smallest rectangle covering the whole region,
// or the zero Rect when the region is empty.
func (d DirtyRegion) BoundingRect() Rect {
	if d.count == 0 {
		return Rect{}
	}
	r := d.rects[0]
	for i := 1; i < d.count; i++ {
		r = r.Union(d.rects[i])
	}
	return r
}

// Rects returns the region's rectangles. They may overlap.
func (d DirtyRegion) Rects() []Rect {
	return d.rects[:d.count]
}

// Empty reports whether the region contains no rectangles.
func (d DirtyRegion) Empty() bool {
	return d.count == 0
}

// drawIntersects reports whether the given clipped screen-space geometry
// overlaps the region, i.e. whether an item covering it must be repainted.
func (d *DirtyRegion) drawIntersects(clippedGeom Rect) bool {
	for i := 0; i < d.count; i++ {
		if d.rects[i].Intersects(clippedGeom) {
			return true
		}
	}
	return false
}
