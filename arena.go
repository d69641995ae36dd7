package reap

type slot struct {
	data Data
	refs int

	// gen is bumped when the slot is freed, invalidating every handle and weak record issued for the
	// previous occupant
	gen uint64

	// mark holds the number of the last pass that proved the occupant reachable
	mark uint64
}

// arena is the reference counting substrate: a flat sequence of refcounted slots addressed by stable indices,
// with freed slots kept on a free list for reuse.
type arena struct {
	slots    []slot
	free     []int
	pending  []int
	draining bool
	freed    uint64
	onFree   func()
}

func (a *arena) alloc(d Data) Ref {
	var index int
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		index = len(a.slots) - 1
	}

	s := &a.slots[index]
	s.data = d
	s.refs = 1
	return Ref{arena: a, index: index, gen: s.gen}
}

func (a *arena) valid(index int, gen uint64) bool {
	return index >= 0 && index < len(a.slots) &&
		a.slots[index].gen == gen &&
		a.slots[index].data != nil
}

// resolve yields the slot behind a weak record, or nothing when the occupant is gone.
func (a *arena) resolve(w weakRef) (*slot, bool) {
	if !a.valid(w.index, w.gen) {
		return nil, false
	}

	return &a.slots[w.index], true
}

func (a *arena) retain(index int) {
	a.slots[index].refs++
}

// release drops one strong reference to a slot. When the last reference is gone, the slot is freed and its
// outgoing edges are released, which can cascade. The cascade runs over an explicit pending stack, so that
// releasing the head of an arbitrarily long chain cannot exhaust the control stack.
func (a *arena) release(index int) {
	a.slots[index].refs--
	if a.slots[index].refs > 0 {
		return
	}

	a.pending = append(a.pending, index)
	if a.draining {
		return
	}

	a.draining = true
	for len(a.pending) > 0 {
		next := a.pending[len(a.pending)-1]
		a.pending = a.pending[:len(a.pending)-1]
		a.freeSlot(next)
	}

	a.draining = false
}

func (a *arena) freeSlot(index int) {
	s := &a.slots[index]
	d := s.data

	// the generation is bumped before the edges are released, so a self-referential edge fails the
	// handle check instead of releasing the slot twice
	s.data = nil
	s.gen++
	s.mark = 0
	a.free = append(a.free, index)
	a.freed++

	if a.onFree != nil {
		a.onFree()
	}

	if d != nil {
		d.VisitEdges(releaseEdge)
	}
}
