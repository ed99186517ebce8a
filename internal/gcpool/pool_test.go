package gcpool

import "testing"

func TestRegisterStartsInEdenAlive(t *testing.T) {
	p := New()
	h := p.Register(func() []*Handle { return nil })
	if h.expired() {
		t.Fatal("freshly registered object reports expired")
	}
	stats := p.Stats()
	if stats.EdenObjects != 1 {
		t.Errorf("EdenObjects = %d, want 1", stats.EdenObjects)
	}
}

func TestLightCollectFreesUnrootedEdenObject(t *testing.T) {
	p := New()
	h := p.Register(func() []*Handle { return nil })
	p.LightCollect()
	if !h.expired() {
		t.Error("unrooted Eden object survived LightCollect")
	}
}

func TestLightCollectKeepsRootedObject(t *testing.T) {
	p := New()
	h := p.Register(func() []*Handle { return nil })
	root := NewRoot(p, h)
	defer root.Drop()

	p.LightCollect()
	if h.expired() {
		t.Error("rooted Eden object was freed by LightCollect")
	}
	stats := p.Stats()
	if stats.SurvivorsObjects != 1 {
		t.Errorf("SurvivorsObjects = %d, want 1", stats.SurvivorsObjects)
	}
}

func TestLightCollectKeepsReachableObject(t *testing.T) {
	p := New()
	child := p.Register(func() []*Handle { return nil })
	parent := p.Register(func() []*Handle { return []*Handle{child} })
	root := NewRoot(p, parent)
	defer root.Drop()

	p.LightCollect()
	if parent.expired() {
		t.Fatal("rooted parent was freed")
	}
	if child.expired() {
		t.Error("child reachable from a root was freed")
	}
}

func TestCollectFreesUnreachableChainAfterRootDrop(t *testing.T) {
	p := New()
	child := p.Register(func() []*Handle { return nil })
	parent := p.Register(func() []*Handle { return []*Handle{child} })
	root := NewRoot(p, parent)
	p.LightCollect() // promote both into Survivors

	root.Drop()
	p.Collect()

	if !parent.expired() {
		t.Error("parent survived Collect after its only root was dropped")
	}
	if !child.expired() {
		t.Error("child survived Collect after becoming unreachable")
	}
}

func TestCollectKeepsObjectReachableThroughSurvivorRoot(t *testing.T) {
	p := New()
	leaf := p.Register(func() []*Handle { return nil })
	root := NewRoot(p, leaf)
	defer root.Drop()

	p.LightCollect()
	p.Collect()

	if leaf.expired() {
		t.Error("rooted survivor was freed by a full Collect")
	}
}

func TestCollectIncrementalResumesAfterDeadline(t *testing.T) {
	p := New()
	a := p.Register(func() []*Handle { return nil })
	root := NewRoot(p, a)
	defer root.Drop()

	calls := 0
	p.CollectIncremental(func() bool {
		calls++
		return true // exceed the deadline immediately, every time
	})
	if a.expired() {
		t.Error("object was freed on a paused (never-completed) collection")
	}
	if !p.Stats().Collecting {
		t.Error("Stats().Collecting = false after a paused CollectIncremental")
	}

	p.CollectIncremental(nil) // let it finish
	if p.Stats().Collecting {
		t.Error("Stats().Collecting = true after an unbounded CollectIncremental completed")
	}
	if a.expired() {
		t.Error("rooted object was freed once the resumed collection completed")
	}
}

func TestWeakDoesNotKeepObjectAlive(t *testing.T) {
	p := New()
	h := p.Register(func() []*Handle { return nil })
	weak := NewWeak(h)

	p.LightCollect()
	if !h.expired() {
		t.Fatal("object with only a Weak reference survived LightCollect")
	}
	if _, ok := weak.TryLock(p); ok {
		t.Error("TryLock succeeded on an expired object")
	}
}

func TestWeakTryLockSucceedsWhileRooted(t *testing.T) {
	p := New()
	h := p.Register(func() []*Handle { return nil })
	root := NewRoot(p, h)
	defer root.Drop()
	weak := NewWeak(h)

	upgraded, ok := weak.TryLock(p)
	if !ok {
		t.Fatal("TryLock failed on a live, rooted object")
	}
	defer upgraded.Drop()
	if !upgraded.Alive() {
		t.Error("Root returned by TryLock reports not alive")
	}
}

func TestPtrToRootPinsObject(t *testing.T) {
	p := New()
	h := p.Register(func() []*Handle { return nil })
	ptr := NewPtr(h)

	root := ptr.ToRoot(p)
	defer root.Drop()
	p.LightCollect()
	if ptr.Expired() {
		t.Error("Ptr reports expired after ToRoot pinned its target")
	}
}

func TestStatsReflectsCollectingFlag(t *testing.T) {
	p := New()
	if p.Stats().Collecting {
		t.Fatal("a fresh Pool reports Collecting = true")
	}
	a := p.Register(func() []*Handle { return nil })
	root := NewRoot(p, a)
	defer root.Drop()
	p.CollectIncremental(func() bool { return true })
	if !p.Stats().Collecting {
		t.Error("Stats().Collecting = false mid-collection")
	}
}
