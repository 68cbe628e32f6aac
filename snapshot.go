package repaint

// snapshotKind distinguishes how an itemSnapshot positions its children.
type snapshotKind uint8

const (
	regularItem      snapshotKind = iota // plain translation by offset
	itemWithTransform                    // arbitrary affine transform
	clipItem                             // clip boundary for descendants
)

// itemSnapshot is the per-item record the cache keeps between frames: the
// item's bounding box and the transform it imposes on children, as of the
// last time the item was visited. Comparing snapshots detects moves and
// reshapes. All fields are comparable so == is structural equality.
type itemSnapshot struct {
	kind snapshotKind

	// boundingRect holds the item's bounding rect in parent space for
	// regularItem/itemWithTransform, or the clip geometry for clipItem.
	boundingRect Rect

	// offset is the item's translation, valid for regularItem.
	offset Vec2

	// transform is the children transform, valid for itemWithTransform.
	transform Affine
}

// newItemSnapshot captures the item's current bounding box and child
// transform. The bounding rect is evaluated untracked: the properties it
// reads are tracked at render time, so recording them again here would be
// redundant.
func newItemSnapshot(item Item, backend Backend) itemSnapshot {
	geometry := item.Geometry()

	if item.ClipsChildren() {
		return itemSnapshot{kind: clipItem, boundingRect: geometry}
	}

	boundingRect := Untracked(func() Rect {
		return item.BoundingRect(geometry)
	})

	if backend.SupportsTransformations() {
		if tr, ok := childrenTransformOf(item); ok {
			return itemSnapshot{
				kind:         itemWithTransform,
				boundingRect: boundingRect,
				transform:    tr.ThenTranslate(geometry.Origin()),
			}
		}
	}

	return itemSnapshot{
		kind:         regularItem,
		boundingRect: boundingRect,
		offset:       geometry.Origin(),
	}
}

// childTransform returns the transform this item applies to its children:
// a pure translation except for itemWithTransform.
func (s itemSnapshot) childTransform() Affine {
	switch s.kind {
	case itemWithTransform:
		return s.transform
	case clipItem:
		return Translation(s.boundingRect.X, s.boundingRect.Y)
	default:
		return Translation(s.offset.X, s.offset.Y)
	}
}
