package repaint

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default box fill.
var ColorWhite = Color{1, 1, 1, 1}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeContainer NodeType = iota // group node with no visual output
	NodeBox                       // solid color rectangle
	NodeImage                     // draws an ebiten.Image scaled to the geometry
	NodeClip                      // confines descendants to its geometry
	NodeOpacity                   // multiplies descendant alpha
	NodeRotate                    // rotates descendants about its origin
)

// Node is the built-in Item implementation: a flat struct covering all node
// types, with tracked properties so that changes feed the dependency engine
// and show up in the next frame's dirty region. A single flat struct is used
// for all types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	Name string
	Type NodeType

	// Hierarchy. Children are kept in back-to-front paint order.
	Parent   *Node
	children []*Node

	// Tracked properties
	x, y          Value[float64]
	width, height Value[float64]
	color         Value[Color]   // box fill
	opacity       Value[float64] // NodeOpacity factor
	rotation      Value[float64] // NodeRotate angle, radians
	paintEpoch    Value[uint64]  // bumped by MarkPaintDirty

	// Image payload (NodeImage). Mutating its pixels is invisible to the
	// tracker; follow with MarkPaintDirty.
	Image *ebiten.Image

	cache    CachedRenderingData
	disposed bool
}

func newNode(name string, t NodeType) *Node {
	n := &Node{Name: name, Type: t}
	n.color = NewValue(ColorWhite)
	n.opacity = NewValue(1.0)
	return n
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	return newNode(name, NodeContainer)
}

// NewBox creates a solid-color rectangle node.
func NewBox(name string, w, h float64, c Color) *Node {
	n := newNode(name, NodeBox)
	n.width.Set(w)
	n.height.Set(h)
	n.color.Set(c)
	return n
}

// NewImage creates a node that draws img scaled to its geometry.
func NewImage(name string, img *ebiten.Image, w, h float64) *Node {
	n := newNode(name, NodeImage)
	n.Image = img
	n.width.Set(w)
	n.height.Set(h)
	return n
}

// NewClip creates a node that clips its descendants to its geometry.
func NewClip(name string, w, h float64) *Node {
	n := newNode(name, NodeClip)
	n.width.Set(w)
	n.height.Set(h)
	return n
}

// NewOpacity creates a node that multiplies its descendants' alpha.
func NewOpacity(name string, opacity float64) *Node {
	n := newNode(name, NodeOpacity)
	n.opacity.Set(opacity)
	return n
}

// NewRotate creates a node that rotates its descendants about its origin.
func NewRotate(name string, angle float64) *Node {
	n := newNode(name, NodeRotate)
	n.rotation.Set(angle)
	return n
}

// --- Tracked property access ---

// X returns the node's x position. Tracked.
func (n *Node) X() float64 { return n.x.Get() }

// Y returns the node's y position. Tracked.
func (n *Node) Y() float64 { return n.y.Get() }

// Width returns the node's width. Tracked.
func (n *Node) Width() float64 { return n.width.Get() }

// Height returns the node's height. Tracked.
func (n *Node) Height() float64 { return n.height.Get() }

// Color returns the node's fill color. Tracked.
func (n *Node) Color() Color { return n.color.Get() }

// Opacity returns the node's opacity factor. Tracked.
func (n *Node) Opacity() float64 { return n.opacity.Get() }

// Rotation returns the node's rotation angle in radians. Tracked.
func (n *Node) Rotation() float64 { return n.rotation.Get() }

// SetPosition sets the node's x and y position.
func (n *Node) SetPosition(x, y float64) {
	n.x.Set(x)
	n.y.Set(y)
}

// SetSize sets the node's width and height.
func (n *Node) SetSize(w, h float64) {
	n.width.Set(w)
	n.height.Set(h)
}

// SetColor sets the node's fill color.
func (n *Node) SetColor(c Color) { n.color.Set(c) }

// SetOpacity sets the node's opacity factor.
func (n *Node) SetOpacity(o float64) { n.opacity.Set(o) }

// SetRotation sets the node's rotation angle in radians.
func (n *Node) SetRotation(angle float64) { n.rotation.Set(angle) }

// MarkPaintDirty dirties the node's paint without changing any property.
// Call after mutating untracked payload such as the Image pixels; the paint
// routines read the epoch, so every render tracker picks up the bump.
func (n *Node) MarkPaintDirty() {
	n.paintEpoch.Set(n.paintEpoch.v + 1)
}

// --- Item implementation ---

// Geometry returns the node's rectangle in its parent's space. Tracked.
func (n *Node) Geometry() Rect {
	return Rect{X: n.x.Get(), Y: n.y.Get(), Width: n.width.Get(), Height: n.height.Get()}
}

// BoundingRect returns the node's painted bounds; the built-in node types
// all paint within their geometry.
func (n *Node) BoundingRect(geometry Rect) Rect {
	return geometry
}

// ClipsChildren reports whether this node confines descendant rendering.
func (n *Node) ClipsChildren() bool {
	return n.Type == NodeClip
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child in back-to-front paint order.
func (n *Node) Child(i int) Item {
	return n.children[i]
}

// RenderCache returns the node's partial rendering cache slot.
func (n *Node) RenderCache() *CachedRenderingData {
	return &n.cache
}

// ChildrenTransform returns the non-translation transform this node applies
// to children: a rotation for NodeRotate, nothing otherwise.
func (n *Node) ChildrenTransform() (Affine, bool) {
	if n.Type != NodeRotate {
		return IdentityAffine, false
	}
	angle := n.rotation.Get()
	if angle == 0 {
		return IdentityAffine, false
	}
	return Rotation(angle), true
}

// UniformEffect reports whether a change to this node uniformly affects its
// whole subtree.
func (n *Node) UniformEffect() bool {
	return n.Type == NodeClip || n.Type == NodeOpacity
}

// --- Tree manipulation ---

// AddChild appends child on top of this node's existing children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("repaint: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("repaint: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("repaint: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// Dispose detaches this node from its parent and marks it and all its
// descendants disposed. Hand the subtree (SubtreeItems, captured before
// disposing) to State.FreeGraphicsResources so cache entries are released.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Image = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// SubtreeItems appends this node and all its descendants to dst and returns
// the result.
func (n *Node) SubtreeItems(dst []Item) []Item {
	dst = append(dst, n)
	for _, child := range n.children {
		dst = child.SubtreeItems(dst)
	}
	return dst
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
