package gcpool

// Ptr is a reference tracked by the GC through its owner's expansion
// callback. It must be registered on assignment: whenever a
// Ptr is stored into a field after the pool may already be mid-collection,
// the assigning code must call Pool.Protect on the target handle. Ptr
// values live inside other GC objects, not on the host stack.
type Ptr struct {
	h *Handle
}

// NewPtr wraps h as a Ptr. Callers assigning this into a GC object's field
// after construction must call pool.Protect(h) themselves (constructors
// populating a brand-new object's fields before the object itself is
// registered do not need to, since the object cannot yet be reachable by a
// concurrent collection).
func NewPtr(h *Handle) Ptr { return Ptr{h: h} }

// Handle exposes the underlying handle, e.g. to include in an expansion
// callback's neighbour list.
func (p Ptr) Handle() *Handle { return p.h }

func (p Ptr) Expired() bool { return p.h == nil || p.h.expired() }

// ToRoot upgrades a Ptr to a Root, pinning the object for as long as the
// Root lives.
func (p Ptr) ToRoot(pool *Pool) Root { return NewRoot(pool, p.h) }

// Weak is convertible to a Root only if the object is still alive; a weak
// reference never by itself keeps its target from being collected.
type Weak struct {
	h *Handle
}

// NewWeak wraps h as a Weak reference.
func NewWeak(h *Handle) Weak { return Weak{h: h} }

// TryLock attempts to upgrade to a Root; ok is false if the object has
// already been collected.
func (w Weak) TryLock(pool *Pool) (Root, bool) {
	if w.h == nil || w.h.expired() {
		return Root{}, false
	}
	return NewRoot(pool, w.h), true
}
