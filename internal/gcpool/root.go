package gcpool

// Root keeps its object alive as long as the Root exists. Roots live on
// the host stack: the evaluator holds a Root for every value it is
// currently working with, and the host embedding API hands Roots back
// across the compile/evaluate boundary.
type Root struct {
	pool *Pool
	h    *Handle
}

// NewRoot registers h as rooted in pool. Dropping the returned Root (via
// Drop) releases that pin; the root's lifetime is otherwise managed
// entirely by the caller.
func NewRoot(pool *Pool, h *Handle) Root {
	pool.addRoot(h)
	return Root{pool: pool, h: h}
}

// Drop releases this root's pin on its object. After Drop, the Root must
// not be used again.
func (r Root) Drop() {
	if r.h == nil {
		return
	}
	r.pool.removeRoot(r.h)
}

// Handle returns the underlying handle, for constructing a Ptr or Weak
// from this root.
func (r Root) Handle() *Handle { return r.h }

// Alive reports whether the rooted object's payload has not been
// collected. A Root by construction should always be alive, but the check
// is provided for defensive assertions in host code.
func (r Root) Alive() bool { return r.h != nil && !r.h.expired() }
