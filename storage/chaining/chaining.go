package chaining

import (
	metrics "github.com/armon/go-metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	InitialCapacity = 16
	LoadFactor      = 0.75
)

type listElement[V any] struct {
	key   string
	value V
	next  *listElement[V]
}

// table is the separate-chaining core shared by Map and Set. New elements are
// prepended to their bucket, so a chain reads newest first.
type table[V any] struct {
	buckets  []*listElement[V]
	size     int
	capacity int

	// storesValues is false for sets, where adding a present key is a no-op
	storesValues bool

	growing bool
	logger  log.FieldLogger
}

type Option func(*options)

type options struct {
	logger log.FieldLogger
}

// WithLogger sends resize and clear records to logger at debug level.
func WithLogger(logger log.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newTable[V any](storesValues bool, opts []Option) *table[V] {
	o := options{logger: log.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	t := &table[V]{
		storesValues: storesValues,
		logger:       o.logger,
	}
	t.reset()

	return t
}

func (t *table[V]) reset() {
	t.capacity = InitialCapacity
	t.buckets = make([]*listElement[V], t.capacity)
	t.size = 0
}

func (t *table[V]) locate(key string) int {
	idx := Hash(key, t.capacity)
	if idx < 0 || idx >= len(t.buckets) {
		panic(errors.Wrapf(ErrIndexOutOfRange, "index %d, %d buckets", idx, len(t.buckets)))
	}

	return idx
}

func (t *table[V]) find(key string) *listElement[V] {
	for curr := t.buckets[t.locate(key)]; curr != nil; curr = curr.next {
		if curr.key == key {
			return curr
		}
	}

	return nil
}

// insertOrUpdate reports whether key was new. Only a new key can trigger a
// resize.
func (t *table[V]) insertOrUpdate(key string, value V) bool {
	idx := t.locate(key)

	for curr := t.buckets[idx]; curr != nil; curr = curr.next {
		if curr.key == key {
			if t.storesValues {
				curr.value = value
			}
			return false
		}
	}

	t.buckets[idx] = &listElement[V]{
		key:   key,
		value: value,
		next:  t.buckets[idx],
	}
	t.size++

	if !t.growing && t.overloaded() {
		t.grow()
	}

	return true
}

func (t *table[V]) overloaded() bool {
	return float64(t.size)/float64(t.capacity) > LoadFactor
}

func (t *table[V]) remove(key string) (V, bool) {
	var zero V

	idx := t.locate(key)
	curr := t.buckets[idx]
	if curr == nil {
		return zero, false
	}

	if curr.key == key {
		t.buckets[idx] = curr.next
		t.size--
		return curr.value, true
	}

	for ; curr.next != nil; curr = curr.next {
		if curr.next.key == key {
			removed := curr.next
			curr.next = removed.next
			t.size--
			return removed.value, true
		}
	}

	return zero, false
}

func (t *table[V]) grow() {
	t.growing = true
	defer func() { t.growing = false }()

	old := make([]listElement[V], 0, t.size)
	t.each(func(e *listElement[V]) {
		old = append(old, listElement[V]{key: e.key, value: e.value})
	})

	from := t.capacity
	t.capacity *= 2
	t.buckets = make([]*listElement[V], t.capacity)
	t.size = 0

	for i := range old {
		t.insertOrUpdate(old[i].key, old[i].value)
	}

	metrics.IncrCounter([]string{"chaining", "resize"}, 1)
	metrics.SetGauge([]string{"chaining", "capacity"}, float32(t.capacity))
	t.logger.WithFields(log.Fields{
		"from": from,
		"to":   t.capacity,
		"size": t.size,
	}).Debug("resized table")
}

// each visits elements in bucket order, then head to tail within a bucket.
func (t *table[V]) each(fn func(*listElement[V])) {
	for _, head := range t.buckets {
		for curr := head; curr != nil; curr = curr.next {
			fn(curr)
		}
	}
}

func (t *table[V]) keys() []string {
	result := make([]string, 0, t.size)
	t.each(func(e *listElement[V]) {
		result = append(result, e.key)
	})

	return result
}

func (t *table[V]) clear() {
	t.reset()
	t.logger.Debug("cleared table")
}

type Stats struct {
	Size         int     `json:"size"`
	Capacity     int     `json:"capacity"`
	LoadFactor   float64 `json:"load_factor"`
	LoadLevel    float64 `json:"load_level"`
	UsedBuckets  int     `json:"used_buckets"`
	LongestChain int     `json:"longest_chain"`
}

func (t *table[V]) stats() Stats {
	s := Stats{
		Size:       t.size,
		Capacity:   t.capacity,
		LoadFactor: LoadFactor,
		LoadLevel:  float64(t.size) / float64(t.capacity),
	}

	for _, head := range t.buckets {
		if head == nil {
			continue
		}
		s.UsedBuckets++

		chain := 0
		for curr := head; curr != nil; curr = curr.next {
			chain++
		}
		if chain > s.LongestChain {
			s.LongestChain = chain
		}
	}

	return s
}
