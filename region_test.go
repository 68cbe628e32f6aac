package repaint

import "testing"

// containsAll reports whether every input rect lies inside the region's
// stored rectangles (possibly split across several).
func regionCovers(d DirtyRegion, r Rect) bool {
	// The stored rects may overlap; for the test inputs a single stored
	// rect always covers each original input when the superset invariant
	// holds.
	for i := 0; i < d.count; i++ {
		if d.rects[i].Contains(r) {
			return true
		}
	}
	return false
}

func TestAddRectEmptyIgnored(t *testing.T) {
	var d DirtyRegion
	d.AddRect(Rect{10, 10, 0, 5})
	if !d.Empty() {
		t.Error("empty rect should not be added")
	}
}

func TestAddRectIdempotent(t *testing.T) {
	var d DirtyRegion
	d.AddRect(Rect{0, 0, 10, 10})
	d.AddRect(Rect{0, 0, 10, 10})
	if d.count != 1 {
		t.Errorf("count = %d, want 1", d.count)
	}
	assertRect(t, "bounding", d.BoundingRect(), Rect{0, 0, 10, 10})
}

func TestAddRectSubsumption(t *testing.T) {
	var d DirtyRegion
	d.AddRect(Rect{0, 0, 100, 100})
	d.AddRect(Rect{10, 10, 5, 5})
	if d.count != 1 {
		t.Errorf("count = %d, want 1", d.count)
	}
	assertRect(t, "bounding", d.BoundingRect(), Rect{0, 0, 100, 100})
}

func TestAddRectAbsorbsSeveral(t *testing.T) {
	var d DirtyRegion
	d.AddRect(Rect{0, 0, 10, 10})
	d.AddRect(Rect{20, 0, 10, 10})
	d.AddRect(Rect{40, 0, 10, 10})
	// One big rect containing all three replaces them.
	d.AddRect(Rect{0, 0, 100, 100})
	if d.count != 1 {
		t.Errorf("count = %d, want 1", d.count)
	}
	assertRect(t, "bounding", d.BoundingRect(), Rect{0, 0, 100, 100})
}

func TestAddRectContainedAtCapacity(t *testing.T) {
	var d DirtyRegion
	d.AddRect(Rect{0, 0, 10, 10})
	d.AddRect(Rect{100, 100, 10, 10})
	d.AddRect(Rect{200, 100, 10, 10})
	// Contained in the first: count stays 3, bounding rect unchanged.
	d.AddRect(Rect{5, 5, 2, 2})
	if d.count != 3 {
		t.Errorf("count = %d, want 3", d.count)
	}
	want := Rect{0, 0, 10, 10}.Union(Rect{100, 100, 10, 10}).Union(Rect{200, 100, 10, 10})
	assertRect(t, "bounding", d.BoundingRect(), want)
}

func TestAddRectMergesLeastGrowth(t *testing.T) {
	var d DirtyRegion
	d.AddRect(Rect{0, 0, 10, 10})
	d.AddRect(Rect{100, 100, 10, 10})
	d.AddRect(Rect{200, 100, 10, 10})
	// A 4th disjoint rect just below the first: merging with the first
	// adds the least area.
	d.AddRect(Rect{0, 20, 10, 10})
	if d.count != 3 {
		t.Errorf("count = %d, want 3", d.count)
	}
	for _, in := range []Rect{
		{0, 0, 10, 10}, {100, 100, 10, 10}, {200, 100, 10, 10}, {0, 20, 10, 10},
	} {
		if !regionCovers(d, in) {
			t.Errorf("region does not cover input %+v", in)
		}
	}
	// The merge target was the vertical pair, not the far-away ones.
	if !regionCovers(d, Rect{0, 0, 10, 30}) {
		t.Error("expected the first rect to have absorbed the new one")
	}
}

func TestSupersetInvariantUnderManyAdds(t *testing.T) {
	inputs := []Rect{
		{0, 0, 5, 5}, {50, 0, 5, 5}, {0, 50, 5, 5}, {50, 50, 5, 5},
		{25, 25, 2, 2}, {80, 10, 7, 3}, {10, 80, 3, 7}, {60, 60, 20, 20},
	}
	var d DirtyRegion
	union := Rect{}
	for _, in := range inputs {
		d.AddRect(in)
		union = union.Union(in)
		if d.count > maxRegionRects {
			t.Fatalf("count = %d exceeds max %d", d.count, maxRegionRects)
		}
		if !d.BoundingRect().Contains(union) {
			t.Fatalf("bounding rect %+v lost part of the union %+v", d.BoundingRect(), union)
		}
	}
	for _, in := range inputs {
		covered := false
		for _, r := range d.Rects() {
			if r.Contains(in) {
				covered = true
				break
			}
		}
		if !covered {
			t.Errorf("input %+v no longer covered by a stored rect", in)
		}
	}
}

func TestUnionOfRegions(t *testing.T) {
	a := RegionFromRect(Rect{0, 0, 10, 10})
	var b DirtyRegion
	b.AddRect(Rect{20, 20, 10, 10})
	b.AddRect(Rect{40, 40, 10, 10})
	u := a.Union(b)
	if u.count != 3 {
		t.Errorf("count = %d, want 3", u.count)
	}
	if a.count != 1 {
		t.Error("Union must not mutate the receiver")
	}
}

func TestIntersectionClipsAndDrops(t *testing.T) {
	var d DirtyRegion
	d.AddRect(Rect{10, 10, 16, 16})
	d.AddRect(Rect{100, 100, 16, 16})
	d.AddRect(Rect{200, 100, 16, 16})

	i := d.Intersection(Rect{50, 50, 10, 10})
	if !i.Empty() {
		t.Errorf("no stored rect overlaps the bounds, got %d rects", i.count)
	}

	j := d.Intersection(Rect{0, 0, 20, 20})
	if j.count != 1 {
		t.Fatalf("count = %d, want 1", j.count)
	}
	assertRect(t, "clipped", j.Rects()[0], Rect{10, 10, 10, 10})
}

func TestBoundingRectEmptyRegion(t *testing.T) {
	var d DirtyRegion
	assertRect(t, "empty", d.BoundingRect(), Rect{})
}

func TestDrawIntersects(t *testing.T) {
	var d DirtyRegion
	d.AddRect(Rect{0, 0, 10, 10})
	d.AddRect(Rect{100, 100, 10, 10})
	if !d.drawIntersects(Rect{5, 5, 10, 10}) {
		t.Error("overlapping geometry should need a repaint")
	}
	if d.drawIntersects(Rect{50, 50, 10, 10}) {
		t.Error("geometry between the rects should not need a repaint")
	}
}
