package repaint

// Reactive value tracking.
//
// A Tracker evaluates a closure and records every Value read during it. When
// any of those values later changes, the tracker (and any tracker chained to
// it via RegisterAsDependencyToCurrentBinding) becomes dirty. The partial
// renderer uses one tracker per cached item to know whether the item's paint
// output may have changed since it was last rendered.
//
// Like the rest of the package this is single-threaded: the current binding
// is a plain package variable, not a goroutine-local.

// currentBinding is the tracker whose evaluation is in progress, or nil
// outside any evaluation (or inside Untracked).
var currentBinding *Tracker

// Tracker records the Values read during an Evaluate call and turns dirty
// when any of them changes afterwards.
type Tracker struct {
	dirty bool
	// dependents are trackers to notify when this one turns dirty. Cleared
	// on notification; dependents re-register on their next evaluation.
	dependents []*Tracker
}

// NewTracker returns a clean tracker with no recorded dependencies.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Evaluate runs fn as this tracker's dependency root: every tracked Value
// read during fn re-dirties the tracker when it later changes. The tracker
// is reset clean before fn runs. Evaluations may nest; the previous binding
// is restored afterwards.
func (t *Tracker) Evaluate(fn func()) {
	prev := currentBinding
	currentBinding = t
	t.dirty = false
	fn()
	currentBinding = prev
}

// IsDirty reports whether any value read during the last Evaluate has
// changed since.
func (t *Tracker) IsDirty() bool {
	return t.dirty
}

// SetDirty marks the tracker dirty and notifies dependent trackers.
func (t *Tracker) SetDirty() {
	t.markDirty()
}

// RegisterAsDependencyToCurrentBinding chains this tracker to the binding
// currently evaluating: when t turns dirty, so does that binding. No-op
// outside an evaluation or when t is the current binding itself.
func (t *Tracker) RegisterAsDependencyToCurrentBinding() {
	if currentBinding == nil || currentBinding == t {
		return
	}
	t.dependents = appendDependent(t.dependents, currentBinding)
}

func (t *Tracker) markDirty() {
	if t.dirty {
		return
	}
	t.dirty = true
	deps := t.dependents
	t.dependents = nil
	for _, d := range deps {
		d.markDirty()
	}
}

// Untracked runs fn with dependency recording suspended and returns its
// result. Reads inside fn register nothing on the current binding.
func Untracked[T any](fn func() T) T {
	prev := currentBinding
	currentBinding = nil
	v := fn()
	currentBinding = prev
	return v
}

// Value is a reactive cell. Get inside a Tracker.Evaluate records a
// dependency; Set with a different value dirties every recorded dependent.
// The zero Value holds the zero value of T and has no dependents.
type Value[T comparable] struct {
	v          T
	dependents []*Tracker
}

// NewValue returns a Value holding v.
func NewValue[T comparable](v T) Value[T] {
	return Value[T]{v: v}
}

// Get returns the current value, registering the current binding as a
// dependent when one is evaluating.
func (p *Value[T]) Get() T {
	if currentBinding != nil {
		p.dependents = appendDependent(p.dependents, currentBinding)
	}
	return p.v
}

// Set stores v. When v differs from the current value, every tracker that
// read this cell since it last changed is marked dirty.
func (p *Value[T]) Set(v T) {
	if v == p.v {
		return
	}
	p.v = v
	deps := p.dependents
	p.dependents = nil
	for _, d := range deps {
		d.markDirty()
	}
}

// appendDependent adds t to deps unless already present. Lists stay short
// (one tracker per cached item reads any given value), so a linear scan
// beats maintaining a set.
func appendDependent(deps []*Tracker, t *Tracker) []*Tracker {
	for _, d := range deps {
		if d == t {
			return deps
		}
	}
	return append(deps, t)
}
