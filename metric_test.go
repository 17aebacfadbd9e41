package metric

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plain implements only the minimal Counter set.
type plain struct {
	mx sync.Mutex
	v  uint64
}

func (p *plain) Add(value uint64) {
	p.mx.Lock()
	defer p.mx.Unlock()

	p.v += value
}

func (p *plain) Count() uint64 {
	p.mx.Lock()
	defer p.mx.Unlock()

	return p.v
}

// clearable additionally supports reset.
type clearable struct {
	plain
}

func (c *clearable) Reset() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.v = 0
}

type host[M Metric] struct {
	events M
	name   string
}

func (h *host[M]) handle() {
	h.events.Inc()
}

func TestInc(t *testing.T) {
	p := &plain{}

	Inc(p)
	Inc(p)
	assert.Equal(t, uint64(2), p.Count())
}

func TestReset(t *testing.T) {
	p := &plain{v: 3}
	Reset(p)
	assert.Equal(t, uint64(3), p.Count(), "counter without Reset must be left untouched")

	c := &clearable{plain: plain{v: 3}}
	Reset(c)
	assert.Equal(t, uint64(0), c.Count())
}

func TestExtend(t *testing.T) {
	m := Extend(&plain{})

	m.Add(5)
	m.Inc()
	m.Add(10)
	assert.Equal(t, uint64(16), m.Count())

	m.Reset()
	assert.Equal(t, uint64(16), m.Count())
	assert.Equal(t, uint64(16), m.Unwrap().Count())
}

func TestExtendResettable(t *testing.T) {
	m := Extend(&clearable{})

	m.Add(gofakeit.Uint64())
	m.Reset()
	assert.Equal(t, uint64(0), m.Count())
}

func TestExtendConcurrent(t *testing.T) {
	m := Extend(&plain{})

	wg := sync.WaitGroup{}
	wg.Add(100)
	for i := 0; i < 100; i++ {
		go func() {
			m.Inc()
			wg.Done()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(100), m.Count())
}

func TestIncEquivalence(t *testing.T) {
	type testCase struct {
		name string
		a, b Metric
	}

	tt := []testCase{
		{name: "noop", a: Noop{}, b: Noop{}},
		{name: "atomic", a: NewAtomic(0), b: NewAtomic(0)},
		{name: "resettable", a: NewResettable(0), b: NewResettable(0)},
		{name: "extended", a: Extend(&plain{}), b: Extend(&plain{})},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			n := gofakeit.Number(1, 100)
			for i := 0; i < n; i++ {
				tc.a.Inc()
				tc.b.Add(1)
			}
			assert.Equal(t, tc.b.Count(), tc.a.Count())
		})
	}
}

func TestHost(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h := host[Noop]{name: gofakeit.Name()}
		for i := 0; i < 10; i++ {
			h.handle()
		}
		assert.Equal(t, uint64(0), h.events.Count())
		assert.Equal(t, uintptr(0), unsafe.Sizeof(h.events))
	})

	t.Run("enabled", func(t *testing.T) {
		h := host[*Atomic]{name: gofakeit.Name(), events: NewAtomic(0)}
		for i := 0; i < 10; i++ {
			h.handle()
		}
		require.NotNil(t, h.events)
		assert.Equal(t, uint64(10), h.events.Count())
	})
}
