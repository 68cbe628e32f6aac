package repaint

// Backend is the concrete renderer the partial renderer sits in front of.
// It performs the actual pixel operations; the partial renderer only queries
// its drawing state to clip and position dirty rectangles.
type Backend interface {
	// ScaleFactor returns the device pixel ratio of the target surface.
	ScaleFactor() float64

	// CurrentClip returns the clip rectangle of the in-progress draw walk,
	// in the backend's logical coordinates.
	CurrentClip() Rect

	// Translation returns the accumulated translation of the in-progress
	// draw walk.
	Translation() Vec2

	// SupportsTransformations reports whether the backend can render items
	// under arbitrary affine transforms. For backends that cannot (simple
	// blitters), transforming items are diffed as plain translated ones to
	// match what such a backend actually draws.
	SupportsTransformations() bool
}
