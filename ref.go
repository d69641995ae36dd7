package reap

// Data is the contract payload types implement to participate in collection.
type Data interface {

	// VisitEdges must call visit once for every field of the payload that can hold a strong handle to
	// another collected node, including fields reachable only through owned sub-objects. The fields are
	// passed by pointer so that the caller may read or clear them. Empty fields must be passed, too.
	VisitEdges(visit func(*Ref))
}

// Ref is a strong, owning handle to a collected node. A node stays allocated exactly as long as at least one
// strong handle to it exists, whether held by the root set, by another node's edge field or by the host. The
// zero Ref is empty, and empty handles are valid inputs to every operation.
type Ref struct {
	arena *arena
	index int
	gen   uint64
}

// Data returns the payload of the referenced node, or nil when the handle is empty or the node has been
// released.
func (r Ref) Data() Data {
	if r.arena == nil || !r.arena.valid(r.index, r.gen) {
		return nil
	}

	return r.arena.slots[r.index].data
}

// Clone returns a new co-owning handle to the same node. Cloning an empty handle returns an empty handle.
// Edges between nodes are assigned from Clone(), so that every edge owns its target.
func (r Ref) Clone() Ref {
	if r.arena == nil || !r.arena.valid(r.index, r.gen) {
		return Ref{}
	}

	r.arena.retain(r.index)
	return r
}

// Release drops the ownership held by the handle and zeroes it. Releasing the last handle of a node frees the
// node and releases its outgoing edges, cascading through everything that only this node kept alive.
// Releasing an empty handle has no effect.
func (r *Ref) Release() {
	if r.arena != nil && r.arena.valid(r.index, r.gen) {
		r.arena.release(r.index)
	}

	*r = Ref{}
}

// releaseEdge is the sweep and cascade visitor: it severs an edge field by releasing and zeroing it.
func releaseEdge(r *Ref) {
	r.Release()
}

// weakRef observes a slot without keeping it alive. A record whose slot was since released simply fails to
// resolve.
type weakRef struct {
	index int
	gen   uint64
}
