package repaint

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image used to draw solid color boxes.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// Surface is a software-style ebiten backend for the partial renderer: it
// repaints only the dirty region of a target image, clipping every draw call
// with SubImage. It does not rotate content (SupportsTransformations is
// false), so NodeRotate behaves as a plain container here; transform-capable
// backends can implement Backend themselves.
type Surface struct {
	// Background fills repainted rectangles before items draw over them.
	Background Color

	// BufferType describes what the target image still contains from
	// earlier frames. See RepaintBufferType.
	BufferType RepaintBufferType

	scale float64

	// per-frame draw walk state
	frame       *ebiten.Image
	frameClip   Rect // the dirty rectangle currently being repainted
	clipLocal   Rect // accumulated clip, in the current parent space
	translation Vec2
	prevRegion  DirtyRegion // what the lagging buffer misses (SwappedBuffers)
}

// NewSurface returns a surface that repaints into a reused buffer.
func NewSurface() *Surface {
	return &Surface{Background: Color{0, 0, 0, 1}, BufferType: ReusedBuffer, scale: 1}
}

// SetScaleFactor sets the device pixel ratio reported to the renderer.
func (s *Surface) SetScaleFactor(scale float64) {
	if scale <= 0 {
		panic("repaint: scale factor must be positive")
	}
	s.scale = scale
}

// --- Backend ---

// ScaleFactor returns the device pixel ratio of the target surface.
func (s *Surface) ScaleFactor() float64 { return s.scale }

// CurrentClip returns the accumulated clip in the current parent space.
func (s *Surface) CurrentClip() Rect { return s.clipLocal }

// Translation returns the accumulated translation of the draw walk.
func (s *Surface) Translation() Vec2 { return s.translation }

// SupportsTransformations reports that this surface only translates.
func (s *Surface) SupportsTransformations() bool { return false }

// --- Frame driver ---

// Repaint renders one frame of the tree under root into target, redrawing
// only what changed (subject to BufferType). It returns the region that
// changed this frame, which is what the windowing system should be told to
// present.
func (s *Surface) Repaint(st *State, root *Node, target *ebiten.Image) DirtyRegion {
	bounds := target.Bounds()
	size := Vec2{float64(bounds.Dx()) / s.scale, float64(bounds.Dy()) / s.scale}

	if s.BufferType == NewBuffer {
		st.ForceScreenRefresh()
	}
	var bufferDirty DirtyRegion
	if s.BufferType == SwappedBuffers {
		bufferDirty = s.prevRegion
	}

	r := st.CreateRenderer(s)
	changed := st.ApplyDirtyRegion(r, []TreeAt{{Root: root}}, size, bufferDirty)
	s.prevRegion = changed

	working := r.DirtyRegion()
	for _, rect := range working.Rects() {
		s.frame = target
		s.frameClip = rect
		s.clipLocal = RectFromSize(size.X, size.Y)
		s.translation = Vec2{}

		sub := s.subimage(rect)
		sub.Fill(s.Background.rgba())
		s.drawNode(r, root, 1)
	}
	s.frame = nil
	return changed
}

// drawNode paints one node and recurses into its children, front of the
// child list first (back-to-front).
func (s *Surface) drawNode(r *Renderer, n *Node, alpha float64) {
	switch n.Type {
	case NodeBox, NodeImage:
		draw, geom := r.FilterItem(n)
		if draw {
			r.Render(n, func() {
				s.paintNode(n, geom, alpha)
			})
		}
		s.drawChildren(r, n, geom.Origin(), alpha)

	case NodeClip:
		geom := Untracked(n.Geometry)
		var clipped Rect
		r.Render(n, func() {
			clipped = s.clipLocal.Intersect(n.Geometry())
		})
		if clipped.Empty() {
			return
		}
		saved := s.clipLocal
		s.clipLocal = clipped
		s.drawChildren(r, n, geom.Origin(), alpha)
		s.clipLocal = saved

	case NodeOpacity:
		geom := Untracked(n.Geometry)
		effective := alpha
		r.Render(n, func() {
			effective = alpha * n.Opacity()
		})
		s.drawChildren(r, n, geom.Origin(), effective)

	default: // NodeContainer, NodeRotate (no rotation on this surface)
		geom := Untracked(n.Geometry)
		s.drawChildren(r, n, geom.Origin(), alpha)
	}
}

// drawChildren shifts the walk into n's coordinate space and paints its
// children in order.
func (s *Surface) drawChildren(r *Renderer, n *Node, origin Vec2, alpha float64) {
	if len(n.children) == 0 {
		return
	}
	savedT, savedC := s.translation, s.clipLocal
	s.translation = s.translation.Add(origin)
	s.clipLocal = s.clipLocal.Translate(Vec2{-origin.X, -origin.Y})
	for _, child := range n.children {
		s.drawNode(r, child, alpha)
	}
	s.translation, s.clipLocal = savedT, savedC
}

// paintNode draws a box or image node at its screen position, clipped to
// the current dirty rectangle and accumulated clip. Property reads here run
// under the node's render tracker.
func (s *Surface) paintNode(n *Node, geom Rect, alpha float64) {
	clipScreen := s.clipLocal.Translate(s.translation).Intersect(s.frameClip)
	if clipScreen.Empty() {
		return
	}
	dst := s.subimage(clipScreen)
	pos := geom.Origin().Add(s.translation)

	switch n.Type {
	case NodeBox:
		c := n.Color()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(geom.Width*s.scale, geom.Height*s.scale)
		op.GeoM.Translate(pos.X*s.scale, pos.Y*s.scale)
		op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
		op.ColorScale.ScaleAlpha(float32(c.A * alpha))
		dst.DrawImage(whitePixel, &op)

	case NodeImage:
		n.paintEpoch.Get() // depend on MarkPaintDirty bumps
		if n.Image == nil {
			return
		}
		ib := n.Image.Bounds()
		if ib.Dx() == 0 || ib.Dy() == 0 {
			return
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(geom.Width*s.scale/float64(ib.Dx()), geom.Height*s.scale/float64(ib.Dy()))
		op.GeoM.Translate(pos.X*s.scale, pos.Y*s.scale)
		op.ColorScale.ScaleAlpha(float32(alpha))
		dst.DrawImage(n.Image, &op)
	}
}

// subimage returns the frame restricted to a logical-space rectangle,
// expanded outward to whole pixels.
func (s *Surface) subimage(r Rect) *ebiten.Image {
	x0 := int(math.Floor(r.X * s.scale))
	y0 := int(math.Floor(r.Y * s.scale))
	x1 := int(math.Ceil((r.X + r.Width) * s.scale))
	y1 := int(math.Ceil((r.Y + r.Height) * s.scale))
	return s.frame.SubImage(image.Rect(x0, y0, x1, y1)).(*ebiten.Image)
}

// rgba converts a Color to a premultiplied color.RGBA.
func (c Color) rgba() color.RGBA {
	return color.RGBA{
		R: uint8(c.R * c.A * 255),
		G: uint8(c.G * c.A * 255),
		B: uint8(c.B * c.A * 255),
		A: uint8(c.A * 255),
	}
}
