package repaint

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 tracked properties on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenSize,
// TweenColor, TweenOpacity) and call Update(dt) each frame. Writes go
// through the tracked setters, so every animation step lands in the next
// frame's dirty region with no extra bookkeeping. If the target node is
// disposed, the group stops immediately.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	apply  [4]func(float64)
	count  int
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target's tracked properties. If the target node has been disposed, Done
// is set to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.apply[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that animates the node's position to
// the given coordinates over the specified duration using the easing
// function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X()), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y()), float32(toY), duration, fn)
	g.apply[0] = func(v float64) { node.x.Set(v) }
	g.apply[1] = func(v float64) { node.y.Set(v) }
	return g
}

// TweenSize creates a TweenGroup that animates the node's width and height
// to the given values over the specified duration.
func TweenSize(node *Node, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.Width()), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(node.Height()), float32(toH), duration, fn)
	g.apply[0] = func(v float64) { node.width.Set(v) }
	g.apply[1] = func(v float64) { node.height.Set(v) }
	return g
}

// TweenColor creates a TweenGroup that animates all four components of the
// node's fill color to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Color()
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	set := func(i int, v float64) {
		c := node.color.v
		switch i {
		case 0:
			c.R = v
		case 1:
			c.G = v
		case 2:
			c.B = v
		case 3:
			c.A = v
		}
		node.color.Set(c)
	}
	g.apply[0] = func(v float64) { set(0, v) }
	g.apply[1] = func(v float64) { set(1, v) }
	g.apply[2] = func(v float64) { set(2, v) }
	g.apply[3] = func(v float64) { set(3, v) }
	return g
}

// TweenOpacity creates a TweenGroup that animates the node's opacity factor
// to the target value over the specified duration.
func TweenOpacity(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Opacity()), float32(to), duration, fn)
	g.apply[0] = func(v float64) { node.opacity.Set(v) }
	return g
}

// TweenRotation creates a TweenGroup that animates the node's rotation to
// the target angle (radians) over the specified duration.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Rotation()), float32(to), duration, fn)
	g.apply[0] = func(v float64) { node.rotation.Set(v) }
	return g
}
