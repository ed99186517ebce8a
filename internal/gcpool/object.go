// Package gcpool implements the VM's per-pool, incremental, generational
// mark-and-sweep collector: a Pool owns Eden and Survivors generations of
// objects, and exposes Root, Ptr, and Weak handles to its embedder as
// first-class API surface, since relying on Go's own garbage collector
// alone would not let script values participate in explicit roots, write
// barriers, or weak references the way the language's data model needs.
package gcpool

import "sync"

// state tags an object's position in the current (or most recent)
// collection cycle.
type state int

const (
	stateLost state = iota
	stateScheduled
	stateExpanded
)

// ExpandFunc returns the direct GC-visible neighbours of an object's
// payload. It is the only strong reference the pool holds to the payload:
// the closure captures it, and clearing the ExpandFunc (setting it to nil)
// drops the payload.
type ExpandFunc func() []*Handle

// object is the per-allocation metadata node.
// The collector holds only weak references from its object-metadata list;
// expand is the one strong reference, captured in the closure itself.
type object struct {
	mu     sync.Mutex
	expand ExpandFunc
	st     state
	gen    generation
	roots  int // number of live Root handles pinning this object
}

type generation int

const (
	genEden generation = iota
	genSurvivors
)

// Handle is an opaque reference to pool-managed object metadata. Root,
// Ptr, and Weak (see root.go, pointer.go) all wrap a *Handle; the three
// differ only in how they keep (or don't keep) the underlying object
// alive.
type Handle struct {
	obj *object
}

func (h *Handle) expired() bool {
	h.obj.mu.Lock()
	defer h.obj.mu.Unlock()
	return h.obj.expand == nil
}
