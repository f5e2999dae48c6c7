package congestion

import "golang.org/x/exp/constraints"

// windowedFilterCapacity bounds the number of samples kept per filter.
// Three entries are enough to track the max, the second and the third
// candidate over the window.
const windowedFilterCapacity = 3

type windowedFilterEntry[V constraints.Integer] struct {
	value V
	time  uint64
}

// A WindowedFilter tracks the maximum of a stream of (value, time) samples
// over a bounded window. Samples older than the lifetime are dropped; at most
// windowedFilterCapacity samples are kept.
//
// It is a monotone deque in a fixed-size ring buffer: values strictly decrease
// from head to tail, times strictly increase. Updates and queries are O(1)
// amortized and never allocate. The time axis is an abstract uint64: callers
// use microsecond timestamps or round-trip counts.
type WindowedFilter[V constraints.Integer] struct {
	lifetime uint64
	entries  [windowedFilterCapacity]windowedFilterEntry[V]
	head     int
	size     int
}

// NewWindowedFilter returns a filter whose entries expire after the given
// lifetime. The returned value is meant to be embedded, not referenced.
func NewWindowedFilter[V constraints.Integer](lifetime uint64) WindowedFilter[V] {
	return WindowedFilter[V]{lifetime: lifetime}
}

// Reset empties the window.
func (f *WindowedFilter[V]) Reset() {
	f.head = 0
	f.size = 0
}

// Update inserts a new sample taken at the given time.
// Times must not decrease between calls.
func (f *WindowedFilter[V]) Update(value V, now uint64) {
	if now > f.lifetime {
		f.Expire(now - f.lifetime)
	}
	// Entries superseded by the new sample are dropped from the tail. An
	// equal-valued tail is dropped too, so an unchanged max gets its time
	// refreshed and stays in the window.
	for f.size > 0 {
		tail := f.entries[(f.head+f.size-1)%windowedFilterCapacity]
		if tail.value > value {
			break
		}
		f.size--
	}
	if f.size == windowedFilterCapacity {
		f.head = (f.head + 1) % windowedFilterCapacity
		f.size--
	}
	f.entries[(f.head+f.size)%windowedFilterCapacity] = windowedFilterEntry[V]{value: value, time: now}
	f.size++
}

// Expire drops all entries taken before the given time.
func (f *WindowedFilter[V]) Expire(before uint64) {
	for f.size > 0 && f.entries[f.head].time < before {
		f.head = (f.head + 1) % windowedFilterCapacity
		f.size--
	}
}

// Max returns the largest value in the window.
// ok is false if the window is empty.
func (f *WindowedFilter[V]) Max() (value V, ok bool) {
	if f.size == 0 {
		return value, false
	}
	return f.entries[f.head].value, true
}

// Empty says whether the window holds no samples.
func (f *WindowedFilter[V]) Empty() bool {
	return f.size == 0
}
