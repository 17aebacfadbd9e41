package metric

import "sync/atomic"

var (
	_ Metric = Noop{}
	_ Metric = (*Atomic)(nil)
	_ Metric = (*Resettable)(nil)
)

// Atomic is a lock-free counter safe for concurrent use.
// Zero value is ready to use. Atomic must not be copied after first use.
//
// Reset is a no-op for Atomic, use Resettable if counter must be cleared.
type Atomic struct {
	v atomic.Uint64
}

func NewAtomic(initial uint64) *Atomic {
	a := &Atomic{}
	a.v.Store(initial)

	return a
}

func (a *Atomic) Add(value uint64) {
	a.v.Add(value)
}

func (a *Atomic) Inc() {
	a.v.Add(1)
}

func (a *Atomic) Count() uint64 {
	return a.v.Load()
}

func (a *Atomic) Reset() {}

// Resettable is Atomic with Reset that actually zeroes the counter.
type Resettable struct {
	Atomic
}

func NewResettable(initial uint64) *Resettable {
	r := &Resettable{}
	r.v.Store(initial)

	return r
}

func (r *Resettable) Reset() {
	r.v.Store(0)
}
