package gcpool

import (
	"sync"

	"github.com/afc/edgevm/internal/vmlog"
)

// Pool is the per-program GC arena: every allocated object is registered
// with it. It exposes two independent mutexes so that allocation never
// blocks on a long collection: edenMu guards short critical sections only
// (allocation, root register/deregister, protect); survivorsMu is held by
// Collect for its whole duration. Collect must never acquire edenMu while
// holding survivorsMu except via the brief drain step, which is the
// mandatory lock-ordering rule that avoids deadlock.
type Pool struct {
	edenMu sync.Mutex
	eden   []*object
	// edenNewRoots / edenDeletedRoots accumulate root churn that happened
	// in Eden since the last drain, so a concurrent in-progress Survivors
	// collection can be told about it.
	edenNewRoots     []*object
	edenDeletedRoots []*object
	// edenExpandList is not read or written anywhere: Register places
	// objects allocated during an ongoing collection directly on queue.
	edenExpandList []*object

	survivorsMu sync.Mutex
	survivors   []*object
	queue       []*object
	collecting  bool
}

// New constructs an empty Pool.
func New() *Pool {
	return &Pool{}
}

// Register allocates a new GC object backed by expand, placing it in Eden.
// If a collection is currently draining the Survivors queue, the new
// object is also marked scheduled and appended to that queue so the
// in-flight collection does not miss it.
func (p *Pool) Register(expand ExpandFunc) *Handle {
	o := &object{expand: expand, st: stateLost, gen: genEden}

	p.edenMu.Lock()
	p.eden = append(p.eden, o)
	collecting := p.isCollecting()
	p.edenMu.Unlock()

	if collecting {
		p.survivorsMu.Lock()
		if p.collecting {
			o.st = stateScheduled
			p.queue = append(p.queue, o)
		}
		p.survivorsMu.Unlock()
	}

	return &Handle{obj: o}
}

func (p *Pool) isCollecting() bool {
	p.survivorsMu.Lock()
	defer p.survivorsMu.Unlock()
	return p.collecting
}

// Protect schedules h's object for expansion if a collection is currently
// draining. This must be called whenever a pointer to h is assigned into
// another GC object's field after collection has started expanding but
// before it finishes: otherwise a
// live object can be missed because its new owner was already scanned
// (the classic tri-colour invariant violation).
func (p *Pool) Protect(h *Handle) {
	if h == nil {
		return
	}
	p.survivorsMu.Lock()
	defer p.survivorsMu.Unlock()
	if !p.collecting {
		return
	}
	if h.obj.st == stateLost {
		h.obj.st = stateScheduled
		p.queue = append(p.queue, h.obj)
	}
}

// addRoot / removeRoot are called by Root's constructor/Drop (root.go).
func (p *Pool) addRoot(h *Handle) {
	p.edenMu.Lock()
	defer p.edenMu.Unlock()
	h.obj.roots++
	p.edenNewRoots = append(p.edenNewRoots, h.obj)
}

func (p *Pool) removeRoot(h *Handle) {
	p.edenMu.Lock()
	defer p.edenMu.Unlock()
	h.obj.roots--
	if h.obj.roots <= 0 {
		p.edenDeletedRoots = append(p.edenDeletedRoots, h.obj)
	}
}

// LightCollect processes only Eden: roots added and objects allocated
// since the last drain that have not yet been promoted to Survivors. This
// is cheap and is what most collections should use. Its reachability pass
// takes survivorsMu, so it waits while a Collect call holds that lock.
func (p *Pool) LightCollect() {
	p.edenMu.Lock()
	newEden := p.eden
	p.eden = nil
	newRoots := p.edenNewRoots
	p.edenNewRoots = nil
	deletedRoots := p.edenDeletedRoots
	p.edenDeletedRoots = nil
	p.edenMu.Unlock()

	vmlog.L().Debug("gc: light collect", "eden_objects", len(newEden), "new_roots", len(newRoots))

	p.survivorsMu.Lock()
	defer p.survivorsMu.Unlock()

	for _, o := range deletedRoots {
		// A root deletion recorded against an object not yet promoted out
		// of this batch is resolved in-place below by the reachability
		// scan; nothing to do here but keep the accounting consistent.
		_ = o
	}

	reachable := map[*object]bool{}
	queue := append([]*object{}, newRoots...)
	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]
		if reachable[o] {
			continue
		}
		reachable[o] = true
		for _, h := range o.expand() {
			if h != nil && !h.expired() {
				queue = append(queue, h.obj)
			}
		}
	}

	for _, o := range newEden {
		if o.roots > 0 || reachable[o] {
			o.gen = genSurvivors
			p.survivors = append(p.survivors, o)
		} else {
			// Unreachable straight out of Eden: clear expand, dropping the
			// payload.
			o.mu.Lock()
			o.expand = nil
			o.mu.Unlock()
		}
	}
}

// Collect runs a full, unbounded collection: every unreachable object is
// freed before this returns. It implements the same five-step algorithm as
// CollectIncremental, without the deadline short-circuit.
func (p *Pool) Collect() {
	p.CollectIncremental(nil)
}

// CollectIncremental runs the same algorithm as Collect but stops early if
// deadline (when non-nil) reports true. The next call to CollectIncremental
// (or Collect) resumes draining the same queue.
func (p *Pool) CollectIncremental(deadlineExceeded func() bool) {
	// Step 1: briefly lock Eden, move its objects/roots/deleted-roots into
	// the Survivors workspace.
	p.edenMu.Lock()
	newEden := p.eden
	p.eden = nil
	newRoots := p.edenNewRoots
	p.edenNewRoots = nil
	deletedRoots := p.edenDeletedRoots
	p.edenDeletedRoots = nil
	p.edenMu.Unlock()

	p.survivorsMu.Lock()
	defer p.survivorsMu.Unlock()

	p.survivors = append(p.survivors, newEden...)
	for i := range p.survivors {
		p.survivors[i].gen = genSurvivors
	}
	_ = deletedRoots // accounted for via the roots counter on each object

	if !p.collecting {
		// Fresh cycle: every survivor starts lost, then roots are scheduled.
		for _, o := range p.survivors {
			o.st = stateLost
		}
		p.queue = nil
		for _, o := range p.survivors {
			if o.roots > 0 {
				o.st = stateScheduled
				p.queue = append(p.queue, o)
			}
		}
		for _, o := range newRoots {
			if o.st == stateLost {
				o.st = stateScheduled
				p.queue = append(p.queue, o)
			}
		}
		p.collecting = true
	} else {
		// Resuming an interrupted cycle: newly promoted Eden objects and
		// newly added roots must be scheduled so they survive.
		for _, o := range newEden {
			if o.st == stateLost {
				o.st = stateScheduled
				p.queue = append(p.queue, o)
			}
		}
		for _, o := range newRoots {
			if o.st == stateLost {
				o.st = stateScheduled
				p.queue = append(p.queue, o)
			}
		}
	}

	vmlog.L().Debug("gc: collect begin", "survivors", len(p.survivors), "queue", len(p.queue))

	// Steps 2-3: drain the expansion queue.
	for len(p.queue) > 0 {
		if deadlineExceeded != nil && deadlineExceeded() {
			vmlog.L().Debug("gc: collect paused", "remaining_queue", len(p.queue))
			return
		}
		o := p.queue[0]
		p.queue = p.queue[1:]
		if o.st == stateExpanded {
			continue
		}
		o.st = stateExpanded
		for _, h := range o.expand() {
			if h == nil {
				continue
			}
			if h.obj.st == stateLost {
				h.obj.st = stateScheduled
				p.queue = append(p.queue, h.obj)
			}
		}
	}

	// Step 4: anything still lost is unreachable; clear its expand
	// callback, dropping the payload.
	kept := p.survivors[:0]
	freed := 0
	for _, o := range p.survivors {
		if o.st == stateLost {
			o.mu.Lock()
			o.expand = nil
			o.mu.Unlock()
			freed++
			continue
		}
		kept = append(kept, o)
	}
	p.survivors = kept
	p.collecting = false

	vmlog.L().Debug("gc: collect end", "freed", freed, "survivors", len(p.survivors))
}

// Stats reports coarse pool occupancy, useful for host diagnostics and
// tests; it is not part of the language-visible surface — GC failure
// semantics are never visible to scripts.
type Stats struct {
	EdenObjects      int
	SurvivorsObjects int
	Collecting       bool
}

func (p *Pool) Stats() Stats {
	p.edenMu.Lock()
	eden := len(p.eden)
	p.edenMu.Unlock()
	p.survivorsMu.Lock()
	defer p.survivorsMu.Unlock()
	return Stats{EdenObjects: eden, SurvivorsObjects: len(p.survivors), Collecting: p.collecting}
}
