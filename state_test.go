package repaint

import "testing"

func TestMarkDirtyRegionSeedsNextRenderer(t *testing.T) {
	st := NewState()
	st.MarkDirtyRegion(RegionFromRect(Rect{5, 5, 10, 10}))

	r := st.CreateRenderer(&testBackend{})
	if !regionCovers(r.DirtyRegion(), Rect{5, 5, 10, 10}) {
		t.Error("forced region must seed the renderer")
	}

	// The accumulated region is drained by CreateRenderer.
	r2 := st.CreateRenderer(&testBackend{})
	if !r2.DirtyRegion().Empty() {
		t.Error("forced region must not persist past one frame")
	}
}

func TestApplyDirtyRegionReturnsChangedRegion(t *testing.T) {
	st := NewState()
	root := NewContainer("root")
	box := NewBox("box", 20, 20, ColorWhite)
	box.SetPosition(10, 10)
	root.AddChild(box)

	r := st.CreateRenderer(&testBackend{})
	changed := st.ApplyDirtyRegion(r, []TreeAt{{Root: root}}, Vec2{100, 100}, DirtyRegion{})
	if !regionCovers(changed, Rect{10, 10, 20, 20}) {
		t.Errorf("changed region %+v should cover the new box", changed.Rects())
	}
}

func TestApplyDirtyRegionClipsToScreen(t *testing.T) {
	st := NewState()
	root := NewContainer("root")
	box := NewBox("box", 20, 20, ColorWhite)
	box.SetPosition(90, 90) // partly off screen
	root.AddChild(box)

	r := st.CreateRenderer(&testBackend{})
	changed := st.ApplyDirtyRegion(r, []TreeAt{{Root: root}}, Vec2{100, 100}, DirtyRegion{})
	assertRect(t, "changed", changed.BoundingRect(), Rect{90, 90, 10, 10})
}

func TestApplyDirtyRegionTreeOrigin(t *testing.T) {
	st := NewState()
	root := NewContainer("root")
	box := NewBox("box", 20, 20, ColorWhite)
	root.AddChild(box)

	r := st.CreateRenderer(&testBackend{})
	changed := st.ApplyDirtyRegion(r, []TreeAt{{Root: root, Origin: Vec2{50, 60}}}, Vec2{200, 200}, DirtyRegion{})
	if !regionCovers(changed, Rect{50, 60, 20, 20}) {
		t.Errorf("tree origin must offset the marked rects, got %+v", changed.Rects())
	}
}

func TestForceScreenRefresh(t *testing.T) {
	st := NewState()
	root := NewContainer("root")
	box := NewBox("box", 20, 20, ColorWhite)
	root.AddChild(box)

	r := st.CreateRenderer(&testBackend{})
	st.ApplyDirtyRegion(r, []TreeAt{{Root: root}}, Vec2{100, 100}, DirtyRegion{})

	st.ForceScreenRefresh()
	r2 := st.CreateRenderer(&testBackend{})
	changed := st.ApplyDirtyRegion(r2, []TreeAt{{Root: root}}, Vec2{100, 100}, DirtyRegion{})
	assertRect(t, "changed", changed.BoundingRect(), Rect{0, 0, 100, 100})

	// Consumed: the frame after is quiet again.
	r3 := st.CreateRenderer(&testBackend{})
	changed = st.ApplyDirtyRegion(r3, []TreeAt{{Root: root}}, Vec2{100, 100}, DirtyRegion{})
	if !changed.Empty() {
		t.Errorf("force refresh must only apply once, got %+v", changed.Rects())
	}
}

func TestExistingBufferDirtyWidensDrawRegion(t *testing.T) {
	st := NewState()
	root := NewContainer("root")
	box := NewBox("box", 20, 20, ColorWhite)
	box.SetPosition(10, 10)
	root.AddChild(box)

	r := st.CreateRenderer(&testBackend{})
	st.ApplyDirtyRegion(r, []TreeAt{{Root: root}}, Vec2{100, 100}, DirtyRegion{})

	// Quiet frame, but the back buffer is missing the previous frame's
	// content at (10,10): the draw region includes it while the changed
	// region stays empty.
	lag := RegionFromRect(Rect{10, 10, 20, 20})
	r2 := st.CreateRenderer(&testBackend{})
	changed := st.ApplyDirtyRegion(r2, []TreeAt{{Root: root}}, Vec2{100, 100}, lag)
	if !changed.Empty() {
		t.Errorf("nothing changed this frame, got %+v", changed.Rects())
	}
	if !regionCovers(r2.DirtyRegion(), Rect{10, 10, 20, 20}) {
		t.Error("draw region must include the lagging buffer's stale area")
	}
}

func TestFreeGraphicsResources(t *testing.T) {
	st := NewState()
	root := NewContainer("root")
	box := NewBox("box", 20, 20, ColorWhite)
	root.AddChild(box)

	r := st.CreateRenderer(&testBackend{})
	st.ApplyDirtyRegion(r, []TreeAt{{Root: root}}, Vec2{100, 100}, DirtyRegion{})

	items := box.SubtreeItems(nil)
	box.Dispose()
	st.FreeGraphicsResources(items)

	if box.RenderCache().getEntry(st.cache) != nil {
		t.Error("cache entry must be released")
	}

	// Destroyed items cannot report where they last painted, so the whole
	// screen refreshes.
	r2 := st.CreateRenderer(&testBackend{})
	changed := st.ApplyDirtyRegion(r2, []TreeAt{{Root: root}}, Vec2{100, 100}, DirtyRegion{})
	assertRect(t, "changed", changed.BoundingRect(), Rect{0, 0, 100, 100})
}

func TestClearCacheRepaintsEverything(t *testing.T) {
	st := NewState()
	root := NewContainer("root")
	box := NewBox("box", 20, 20, ColorWhite)
	box.SetPosition(10, 10)
	root.AddChild(box)

	r := st.CreateRenderer(&testBackend{})
	st.ApplyDirtyRegion(r, []TreeAt{{Root: root}}, Vec2{100, 100}, DirtyRegion{})

	st.ClearCache()
	r2 := st.CreateRenderer(&testBackend{})
	changed := st.ApplyDirtyRegion(r2, []TreeAt{{Root: root}}, Vec2{100, 100}, DirtyRegion{})
	if !regionCovers(changed, Rect{10, 10, 20, 20}) {
		t.Error("every item looks new after a cache clear")
	}
}

func TestApplyDirtyRegionMultipleTrees(t *testing.T) {
	st := NewState()
	a := NewBox("a", 10, 10, ColorWhite)
	b := NewBox("b", 10, 10, ColorWhite)

	r := st.CreateRenderer(&testBackend{})
	trees := []TreeAt{
		{Root: a, Origin: Vec2{0, 0}},
		{Root: b, Origin: Vec2{50, 0}},
		{Root: nil},
	}
	changed := st.ApplyDirtyRegion(r, trees, Vec2{100, 100}, DirtyRegion{})
	if !regionCovers(changed, Rect{0, 0, 10, 10}) || !regionCovers(changed, Rect{50, 0, 10, 10}) {
		t.Errorf("both trees contribute, got %+v", changed.Rects())
	}
}
