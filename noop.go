package metric

// Noop is a Metric that discards all updates and always reports zero.
// It is used to disable metrics in host components.
type Noop struct{}

func (Noop) Add(uint64) {}

func (Noop) Inc() {}

func (Noop) Count() uint64 {
	return 0
}

func (Noop) Reset() {}
