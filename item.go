package repaint

// Item is a node in a retained tree of visual elements. Implementations keep
// a stable identity for as long as they are alive and embed one
// CachedRenderingData, zero-initialized, that the partial renderer owns.
//
// Geometry and BoundingRect may read tracked Values; the renderer decides
// per call site whether those reads are recorded.
type Item interface {
	// Geometry returns the item's rectangle in its parent's coordinate space.
	Geometry() Rect

	// BoundingRect returns the smallest rectangle in parent space enclosing
	// everything the item paints. geometry is the result of a preceding
	// Geometry call; for most items the bounding rect is the geometry
	// itself, but items that paint outside their bounds (shadows, overdrawn
	// strokes) return more.
	BoundingRect(geometry Rect) Rect

	// ClipsChildren reports whether the item confines its descendants'
	// rendering to its own geometry.
	ClipsChildren() bool

	// ChildCount and Child expose the item's children in back-to-front
	// paint order.
	ChildCount() int
	Child(i int) Item

	// RenderCache returns the item's cache slot. The same non-nil pointer
	// must be returned for the item's whole lifetime.
	RenderCache() *CachedRenderingData
}

// ChildTransformer is implemented by items that apply a transform beyond
// plain translation (rotation, scaling) to their children. ChildrenTransform
// returns the matrix and true, or false when the transform is currently
// identity.
type ChildTransformer interface {
	ChildrenTransform() (Affine, bool)
}

// UniformEffect is implemented by items whose own change uniformly affects
// everything nested under them, such as clips and opacity layers. When such
// an item turns dirty, the partial renderer repaints its whole subtree even
// where individual descendants are clean.
type UniformEffect interface {
	UniformEffect() bool
}

// TreeAt pairs a tree root with the screen position its origin maps to.
// Windows composed of several top-level trees (popups, layers) pass one
// TreeAt per tree.
type TreeAt struct {
	Root   Item
	Origin Vec2
}

func childrenTransformOf(item Item) (Affine, bool) {
	if ct, ok := item.(ChildTransformer); ok {
		return ct.ChildrenTransform()
	}
	return IdentityAffine, false
}

func hasUniformEffect(item Item) bool {
	ue, ok := item.(UniformEffect)
	return ok && ue.UniformEffect()
}
