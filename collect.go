package reap

import (
	"time"

	"go.uber.org/zap"
)

// Collect runs one full collection pass: it increments the pass counter, marks every node reachable from the
// root set, severs the outgoing edges of every still-allocated but unmarked node so that reference counting
// can release the dismantled cycles, and rebuilds the pool when too many of its records are dead. The call is
// synchronous and the pass is not interruptible. The graph must not be mutated while the pass runs.
func (c *Collector) Collect() {
	start := time.Now()
	freedBefore := c.arena.freed

	c.pass++
	marked := c.mark()
	swept := c.sweep()

	dropped := 0
	if dead := c.countDead(); float64(dead) > float64(len(c.pool))*c.threshold {
		dropped = c.compact()
		c.compactions++
		c.notifyCompacted(dropped)
	}

	freed := int(c.arena.freed - freedBefore)
	c.marked += uint64(marked)
	c.swept += uint64(swept)
	c.notifyCollected(marked, swept, freed, dropped)

	c.log.Debug(
		"collection pass complete",
		zap.Uint64("pass", c.pass),
		zap.Int("marked", marked),
		zap.Int("swept", swept),
		zap.Int("freed", freed),
		zap.Int("dropped", dropped),
		zap.Int("pool", len(c.pool)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// mark stamps every node reachable from the root set with the current pass number. The traversal runs over an
// explicit stack instead of recursing, so the depth of the graph is not bounded by the control stack. The
// pass number doubles as the visited set: a stamp equal to the current pass terminates the traversal, which
// also is what terminates it on cycles.
func (c *Collector) mark() int {
	marked := 0
	stack := c.markStack[:0]
	push := func(r *Ref) {
		if r.arena == c.arena && c.arena.valid(r.index, r.gen) {
			stack = append(stack, r.index)
		}
	}

	for i := range c.roots {
		push(&c.roots[i])
	}

	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s := &c.arena.slots[index]
		if s.data == nil || s.mark == c.pass {
			continue
		}

		s.mark = c.pass
		marked++
		s.data.VisitEdges(push)
	}

	c.markStack = stack[:0]
	return marked
}

// sweep scans the pool and severs the outgoing edges of every node that is still allocated but was not marked
// in the current pass. Such a node is unreachable from any root and only alive because of a cycle; clearing
// its edges lets reference counting cascade through the dismantled structure. The node itself is pinned by a
// local strong reference for the duration of the visit and released right after, which frees it unless
// another owner still exists.
func (c *Collector) sweep() int {
	swept := 0
	for _, w := range c.pool {
		s, ok := c.arena.resolve(w)
		if !ok || s.mark == c.pass {
			continue
		}

		swept++
		c.notifySwept()

		c.arena.retain(w.index)
		s.data.VisitEdges(releaseEdge)
		c.arena.release(w.index)
	}

	return swept
}

func (c *Collector) countDead() int {
	dead := 0
	for _, w := range c.pool {
		if !c.arena.valid(w.index, w.gen) {
			dead++
		}
	}

	return dead
}

// compact rebuilds the pool keeping only the records that still resolve, preserving their relative order, and
// returns the number of dropped records. Compaction never affects reachability or liveness.
func (c *Collector) compact() int {
	kept := c.pool[:0]
	for _, w := range c.pool {
		if c.arena.valid(w.index, w.gen) {
			kept = append(kept, w)
		}
	}

	dropped := len(c.pool) - len(kept)
	c.pool = kept
	return dropped
}
