package reap

import "strings"

// EventType indicates the nature of a notification event. It also is used to mask which events should cause a
// notification.
type EventType int

const (

	// Swept events are sent when a live but unreachable node had its outgoing edges severed.
	Swept EventType = 1 << iota

	// Freed events are sent when a node's slot was released back to the arena, whether by reference
	// counting alone or as the result of a pass.
	Freed

	// Compacted events are sent when dead bookkeeping records were dropped from the pool.
	Compacted

	// Collected events are sent when a full collection pass finished, carrying the pass summary counters.
	Collected

	// Normal mask for receiving moderate level of notifications.
	Normal = Swept | Compacted

	// Verbose mask for receiving verbose level of notifications.
	Verbose = Collected | Normal

	// All mask for receiving all possible notifications.
	All = Freed | Verbose
)

// Event objects describe an internal change in the collector.
type Event struct {

	// Type indicates the reason of the event.
	Type EventType

	// Pass contains the number of the collection pass during which the event happened. It is zero for
	// Freed events caused by reference counting before the first pass.
	Pass uint64

	// Marked contains the number of nodes proven reachable by the pass. Set on Collected events.
	Marked int

	// Swept contains the number of nodes that had their edges severed by the pass. Set on Collected
	// events.
	Swept int

	// Freed contains the number of nodes released during the pass. Set on Collected events.
	Freed int

	// Dropped contains the number of dead records removed from the pool. Set on Compacted and Collected
	// events.
	Dropped int
}

type notify struct {
	mask     EventType
	listener chan<- *Event
}

// Stats objects contain a snapshot of a collector's bookkeeping state.
type Stats struct {

	// TrackedLive indicates how many pool records refer to a still allocated node.
	TrackedLive int

	// PoolSize indicates the total number of pool records, dead ones included.
	PoolSize int

	// Roots indicates the number of registered root entries.
	Roots int

	// Passes indicates how many collection passes ran so far. It also is the current generation stamp:
	// a node marked in the latest pass carries this value.
	Passes uint64

	// Marked indicates the cumulative number of nodes proven reachable across all passes.
	Marked uint64

	// Swept indicates the cumulative number of nodes that had their edges severed.
	Swept uint64

	// Freed indicates the cumulative number of nodes released back to the arena.
	Freed uint64

	// Compactions indicates how many times the pool was rebuilt.
	Compactions uint64
}

// String returns the string representation of an EventType value, listing all the set flags.
func (et EventType) String() string {
	switch et {
	case Swept:
		return "swept"
	case Freed:
		return "freed"
	case Compacted:
		return "compacted"
	case Collected:
		return "collected"
	default:
		var (
			s []string
			p uint
		)

		et &= All
		for et > 0 {
			if et%2 == 1 {
				s = append(s, EventType(1<<p).String())
			}

			et >>= 1
			p++
		}

		return strings.Join(s, "|")
	}
}

// Is checks if one or more EventType flags are set.
func (et EventType) Is(test EventType) bool {
	return et&test != 0
}

func newNotify(listener chan<- *Event, mask EventType) *notify {
	return &notify{
		listener: listener,
		mask:     mask,
	}
}

// forwards an event if it matches the mask
func (n *notify) send(e *Event) {
	if n == nil || !e.Type.Is(n.mask) {
		return
	}

	n.listener <- e
}

func (c *Collector) notifySwept() {
	if c.notify == nil {
		return
	}

	c.notify.send(&Event{Type: Swept, Pass: c.pass})
}

func (c *Collector) notifyFreed() {
	if c.notify == nil {
		return
	}

	c.notify.send(&Event{Type: Freed, Pass: c.pass})
}

func (c *Collector) notifyCompacted(dropped int) {
	if c.notify == nil {
		return
	}

	c.notify.send(&Event{Type: Compacted, Pass: c.pass, Dropped: dropped})
}

func (c *Collector) notifyCollected(marked, swept, freed, dropped int) {
	if c.notify == nil {
		return
	}

	c.notify.send(&Event{
		Type:    Collected,
		Pass:    c.pass,
		Marked:  marked,
		Swept:   swept,
		Freed:   freed,
		Dropped: dropped,
	})
}
