package reap

import "go.uber.org/zap"

// Options objects are used to pass in initialization settings to a new collector.
type Options struct {

	// CompactThreshold is the fraction of dead bookkeeping records the pool may accumulate before a
	// collection pass rebuilds it. Lower values compact more eagerly, trading CPU for lower steady-state
	// memory. Values at or below zero mean the default of 0.5. Values at or above one disable compaction.
	CompactThreshold float64

	// Notify, when set, receives events about the collector's internal changes. The events are filtered
	// by NotificationMask. The collector blocks on the channel, so it must be consumed or sufficiently
	// buffered.
	Notify chan<- *Event

	// NotificationMask selects which event types are sent to the Notify channel. The zero value means
	// the Normal mask.
	NotificationMask EventType

	// Logger, when set, receives a debug level summary entry after every collection pass.
	Logger *zap.Logger
}

// Collector manages a graph of reference counted nodes that may contain cycles. It owns the root set, the
// bookkeeping pool and the pass counter. Collectors are not safe for concurrent use.
type Collector struct {
	arena     *arena
	pool      []weakRef
	roots     []Ref
	pass      uint64
	threshold float64
	markStack []int
	notify    *notify
	log       *zap.Logger

	marked      uint64
	swept       uint64
	compactions uint64
}

// New initializes a collector.
func New(o Options) *Collector {
	if o.CompactThreshold <= 0 {
		o.CompactThreshold = 0.5
	}

	c := &Collector{
		arena:     &arena{},
		threshold: o.CompactThreshold,
		log:       o.Logger,
	}

	if c.log == nil {
		c.log = zap.NewNop()
	}

	if o.Notify != nil {
		mask := o.NotificationMask
		if mask == 0 {
			mask = Normal
		}

		c.notify = newNotify(o.Notify, mask)
		c.arena.onFree = c.notifyFreed
	}

	return c
}

// Add registers d as tracked heap data and returns a strong handle to it. The collector keeps only a weak
// bookkeeping record: when the returned handle is released without any other owner referencing the node, the
// node is freed immediately by reference counting and the record becomes a dead entry, pruned lazily.
//
// The same conceptual node must not be registered twice, and strong handles to tracked nodes must not be held
// outside the managed graph across a collection pass. Neither is validated at runtime. Registering a nil
// payload is a no-op returning an empty handle.
func (c *Collector) Add(d Data) Ref {
	if d == nil {
		return Ref{}
	}

	r := c.arena.alloc(d)
	c.pool = append(c.pool, weakRef{index: r.index, gen: r.gen})
	return r
}

// AddRoot registers d as a permanent entry point into the graph and returns a strong handle to it. The root
// set holds its own strong handle, so the node stays alive through any number of collection passes until it
// is removed with RemoveRoot, the caller's handle notwithstanding. Registering a nil payload is a no-op
// returning an empty handle.
func (c *Collector) AddRoot(d Data) Ref {
	if d == nil {
		return Ref{}
	}

	r := c.arena.alloc(d)
	c.roots = append(c.roots, r.Clone())
	return r
}

// RemoveRoot removes the root entry identified by r from the root set and reports whether an entry was
// removed. From that point on the node is subject to the normal reference counting and collection rules.
func (c *Collector) RemoveRoot(r Ref) bool {
	for i := range c.roots {
		if c.roots[i] == r {
			c.roots[i].Release()
			c.roots = append(c.roots[:i], c.roots[i+1:]...)
			return true
		}
	}

	return false
}

// Stats returns a snapshot of the collector's bookkeeping state.
func (c *Collector) Stats() *Stats {
	live := 0
	for _, w := range c.pool {
		if c.arena.valid(w.index, w.gen) {
			live++
		}
	}

	return &Stats{
		TrackedLive: live,
		PoolSize:    len(c.pool),
		Roots:       len(c.roots),
		Passes:      c.pass,
		Marked:      c.marked,
		Swept:       c.swept,
		Freed:       c.arena.freed,
		Compactions: c.compactions,
	}
}
