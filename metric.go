// Package metric provides a counter abstraction for components
// that want to expose metrics without choosing how they are collected.
//
// A component declares a type parameter constrained by Metric and holds
// values of it as fields. Integrators instantiate it either with Noop,
// which discards everything and occupies no memory, or with a real counter
// such as *Atomic.
//
//	type Conn[M metric.Metric] struct {
//		reads M
//	}
//
//	c := Conn[metric.Noop]{}                            // metrics disabled
//	c := Conn[*metric.Atomic]{reads: metric.NewAtomic(0)} // metrics enabled
//
// Metric operations never fail. Implementations backed by fallible storage
// must handle such failures inside Add and Count. Counter values are
// 64-bit unsigned integers and wrap around modulo 2^64.
package metric

type (
	// Counter is the minimal set of operations a counter implementation
	// has to provide. Extend turns it into a full Metric.
	Counter interface {
		// Add increases counter by value.
		Add(value uint64)
		// Count returns current counter value.
		Count() uint64
	}

	// Metric is the counter capability consumed by host components.
	Metric interface {
		Counter

		// Inc increases counter by one.
		Inc()
		// Reset sets counter back to zero if implementation supports it.
		Reset()
	}

	resetter interface {
		Reset()
	}
)

// Inc increases c by one.
func Inc(c Counter) {
	c.Add(1)
}

// Reset resets c if it has Reset method, otherwise it does nothing.
func Reset(c Counter) {
	if r, ok := c.(resetter); ok {
		r.Reset()
	}
}

// Extended provides default Inc and Reset on top of a Counter.
// Extended is passed by value, so C should be a pointer
// or otherwise reference its state.
type Extended[C Counter] struct {
	c C
}

// Extend wraps minimal counter implementation into a Metric.
func Extend[C Counter](c C) Extended[C] {
	return Extended[C]{c: c}
}

func (e Extended[C]) Add(value uint64) {
	e.c.Add(value)
}

func (e Extended[C]) Count() uint64 {
	return e.c.Count()
}

func (e Extended[C]) Inc() {
	e.c.Add(1)
}

func (e Extended[C]) Reset() {
	Reset(e.c)
}

// Unwrap returns underlying counter.
func (e Extended[C]) Unwrap() C {
	return e.c
}
