package reap

import "testing"

func TestAllocRelease(t *testing.T) {
	a := &arena{}

	r := a.alloc(&testNode{name: "x"})
	w := weakRef{index: r.index, gen: r.gen}

	if _, ok := a.resolve(w); !ok {
		t.Fatal("fresh slot does not resolve")
	}

	r.Release()
	if _, ok := a.resolve(w); ok {
		t.Error("released slot resolves")
	}

	if a.freed != 1 {
		t.Error("unexpected freed count", a.freed)
	}
}

func TestCloneCoOwns(t *testing.T) {
	a := &arena{}

	r1 := a.alloc(&testNode{name: "x"})
	r2 := r1.Clone()
	w := weakRef{index: r1.index, gen: r1.gen}

	r1.Release()
	if _, ok := a.resolve(w); !ok {
		t.Fatal("node released while a clone exists")
	}

	r2.Release()
	if _, ok := a.resolve(w); ok {
		t.Error("node not released with the last clone")
	}
}

func TestSlotReuse(t *testing.T) {
	a := &arena{}

	r := a.alloc(&testNode{name: "old"})
	w := weakRef{index: r.index, gen: r.gen}
	r.Release()

	r2 := a.alloc(&testNode{name: "new"})
	if r2.index != w.index {
		t.Error("freed slot not reused", r2.index, w.index)
	}

	if r2.gen != w.gen+1 {
		t.Error("generation not bumped on reuse", r2.gen, w.gen)
	}

	// the stale record must not resolve to the new occupant
	if _, ok := a.resolve(w); ok {
		t.Error("stale record resolves after reuse")
	}

	if d := r2.Data().(*testNode); d.name != "new" {
		t.Error("unexpected payload in reused slot", d.name)
	}
}

func TestReleaseCascade(t *testing.T) {
	const chain = 100000

	a := &arena{}

	refs := make([]Ref, chain)
	for i := range refs {
		refs[i] = a.alloc(&testNode{id: i})
	}

	for i := 0; i+1 < chain; i++ {
		refs[i].Data().(*testNode).next = refs[i+1].Clone()
	}

	// every node but the head is owned by its predecessor's edge
	for i := 1; i < chain; i++ {
		refs[i].Release()
	}

	if a.freed != 0 {
		t.Fatal("chain released early", a.freed)
	}

	// releasing the head cascades through the whole chain
	refs[0].Release()
	if a.freed != chain {
		t.Error("cascade incomplete", a.freed)
	}
}

func TestEmptyRef(t *testing.T) {
	var r Ref

	if r.Data() != nil {
		t.Error("empty handle resolves")
	}

	if r.Clone() != (Ref{}) {
		t.Error("clone of empty handle not empty")
	}

	// must be a no-op
	r.Release()
}

func TestFreeCallback(t *testing.T) {
	a := &arena{}

	var calls int
	a.onFree = func() { calls++ }

	r1 := a.alloc(&testNode{})
	r2 := a.alloc(&testNode{})
	r1.Data().(*testNode).next = r2.Clone()
	r2.Release()

	r1.Release()
	if calls != 2 {
		t.Error("free callback not called per slot", calls)
	}
}
