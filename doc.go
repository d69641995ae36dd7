/*
Package reap provides a cycle-breaking mark-and-sweep collector for in-memory data graphs.

Collection

Nodes are kept alive by reference counting: every strong handle (Ref) co-owns its node, and the node is
released the moment its last handle is dropped. Reference counting alone cannot release groups of nodes that
keep each other alive through a cycle. The collector complements it with a synchronous mark-and-sweep pass:
every node reachable from a registered root is stamped with the current pass number, and every still-allocated
but unstamped node has its outgoing edges severed. Severing the edges dismantles the cycle, after which
reference counting finishes the deallocation on its own. A pass never frees anything directly.

Roots and tracked nodes

Nodes enter the collector through one of two registration calls, fixed at creation time. AddRoot() stores a
strong handle in the root set, so the node stays alive until it is explicitly removed with RemoveRoot().
Add() stores only a weak bookkeeping record in the pool; the collector never extends a tracked node's
lifetime, and a tracked node that loses its last handle is released immediately, without waiting for a pass.
Records of nodes that were released by reference counting alone stay in the pool as dead entries and are
pruned lazily by compaction.

The traversal contract

The collector never inspects node payloads. Each payload type implements the Data interface, whose VisitEdges
method must invoke the visitor once per field that can hold a strong handle to another collected node,
including fields reachable only through owned sub-objects. The fields are passed by pointer so that a pass can
clear them. Calling the visitor on an empty handle is valid and has no effect.

Handles

A Ref is an explicit, owning handle: Clone() creates a co-owning copy, Release() drops the ownership and
zeroes the handle. Edges between nodes are ordinary Ref fields in the payloads, assigned from Clone() so that
the edge owns its target. The zero Ref is empty, and empty handles are valid inputs to every operation.

Holding an ad hoc strong handle to a tracked node from outside the managed graph across a pass is a contract
violation: the handle is invisible to the mark phase, so the pass severs the node's edges even though the node
is still externally alive. Violations are not detected at runtime.

Compaction

Records of nodes released purely by reference counting never notify the pool, so dead records accumulate.
After each sweep, if the dead records outnumber the configured fraction of the pool (0.5 by default), the pool
is rebuilt with only the live records, preserving their order. Compaction is pure housekeeping; it never
affects liveness.

Monitoring

Stats() returns a snapshot of the bookkeeping state, including the live tracked count and cumulative pass
counters. When configured with a notification channel, the collector sends events about severed nodes, freed
slots, compactions and completed passes, filtered by an event mask. NewMetrics() adapts a collector to a
prometheus.Collector for scraping the same counters.

The collector is single-threaded and non-reentrant: the graph must not be mutated while a pass runs, and no
internal locking is performed.
*/
package reap
