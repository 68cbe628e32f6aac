package repaint

import (
	"math"
	"testing"
)

// testBackend is a minimal Backend for exercising the renderer without a
// real drawing surface.
type testBackend struct {
	clip        Rect
	translation Vec2
	transforms  bool
	scale       float64
}

func (b *testBackend) ScaleFactor() float64 {
	if b.scale == 0 {
		return 1
	}
	return b.scale
}
func (b *testBackend) CurrentClip() Rect             { return b.clip }
func (b *testBackend) Translation() Vec2             { return b.translation }
func (b *testBackend) SupportsTransformations() bool { return b.transforms }

func TestSnapshotRegularItem(t *testing.T) {
	box := NewBox("box", 20, 10, ColorWhite)
	box.SetPosition(5, 7)
	snap := newItemSnapshot(box, &testBackend{})
	if snap.kind != regularItem {
		t.Fatalf("kind = %d, want regularItem", snap.kind)
	}
	assertRect(t, "bounding", snap.boundingRect, Rect{5, 7, 20, 10})
	if snap.offset != (Vec2{5, 7}) {
		t.Errorf("offset = %+v, want {5 7}", snap.offset)
	}
	x, y := snap.childTransform().Apply(1, 1)
	assertNear(t, "child x", x, 6)
	assertNear(t, "child y", y, 8)
}

func TestSnapshotClipItem(t *testing.T) {
	clip := NewClip("clip", 30, 30)
	clip.SetPosition(10, 10)
	snap := newItemSnapshot(clip, &testBackend{})
	if snap.kind != clipItem {
		t.Fatalf("kind = %d, want clipItem", snap.kind)
	}
	assertRect(t, "geometry", snap.boundingRect, Rect{10, 10, 30, 30})
	x, y := snap.childTransform().Apply(0, 0)
	assertNear(t, "child x", x, 10)
	assertNear(t, "child y", y, 10)
}

func TestSnapshotTransformItem(t *testing.T) {
	rot := NewRotate("rot", math.Pi/2)
	rot.SetPosition(100, 0)

	// A transform-capable backend records the full matrix.
	snap := newItemSnapshot(rot, &testBackend{transforms: true})
	if snap.kind != itemWithTransform {
		t.Fatalf("kind = %d, want itemWithTransform", snap.kind)
	}
	x, y := snap.childTransform().Apply(1, 0)
	assertNear(t, "x", x, 100)
	assertNear(t, "y", y, 1)

	// A translate-only backend sees a plain item.
	snap = newItemSnapshot(rot, &testBackend{})
	if snap.kind != regularItem {
		t.Fatalf("kind = %d, want regularItem without transform support", snap.kind)
	}
}

func TestSnapshotIdentityTransformIsRegular(t *testing.T) {
	rot := NewRotate("rot", 0)
	snap := newItemSnapshot(rot, &testBackend{transforms: true})
	if snap.kind != regularItem {
		t.Errorf("kind = %d, want regularItem for identity rotation", snap.kind)
	}
}

func TestSnapshotEqualityDetectsMove(t *testing.T) {
	box := NewBox("box", 10, 10, ColorWhite)
	b := &testBackend{}
	before := newItemSnapshot(box, b)
	same := newItemSnapshot(box, b)
	if before != same {
		t.Fatal("unchanged item should produce equal snapshots")
	}
	box.SetPosition(1, 0)
	after := newItemSnapshot(box, b)
	if before == after {
		t.Error("moved item should produce a different snapshot")
	}
}

func TestSnapshotBoundingRectUntracked(t *testing.T) {
	box := NewBox("box", 10, 10, ColorWhite)
	tr := NewTracker()
	tr.Evaluate(func() {
		newItemSnapshot(box, &testBackend{})
	})
	// Geometry reads are tracked (the dirty pass depends on them)…
	box.SetPosition(50, 50)
	if !tr.IsDirty() {
		t.Error("geometry read during snapshot should register on the binding")
	}
}
