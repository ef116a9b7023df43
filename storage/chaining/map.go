package chaining

// Map is a string-keyed hash map using separate chaining. It is not safe for
// concurrent use.
type Map[V any] struct {
	t *table[V]
}

type Entry[V any] struct {
	Key   string `json:"key"`
	Value V      `json:"value"`
}

func NewMap[V any](opts ...Option) *Map[V] {
	return &Map[V]{t: newTable[V](true, opts)}
}

// Set stores value under key, replacing any previous value. Replacing does
// not count towards the load factor.
func (m *Map[V]) Set(key string, value V) {
	m.t.insertOrUpdate(key, value)
}

func (m *Map[V]) Get(key string) (V, bool) {
	if e := m.t.find(key); e != nil {
		return e.value, true
	}

	var zero V
	return zero, false
}

func (m *Map[V]) Has(key string) bool {
	return m.t.find(key) != nil
}

// Remove deletes key and returns the value it held.
func (m *Map[V]) Remove(key string) (V, bool) {
	return m.t.remove(key)
}

func (m *Map[V]) Keys() []string {
	return m.t.keys()
}

func (m *Map[V]) Values() []V {
	result := make([]V, 0, m.t.size)
	m.t.each(func(e *listElement[V]) {
		result = append(result, e.value)
	})

	return result
}

func (m *Map[V]) Entries() []Entry[V] {
	result := make([]Entry[V], 0, m.t.size)
	m.t.each(func(e *listElement[V]) {
		result = append(result, Entry[V]{Key: e.key, Value: e.value})
	})

	return result
}

// Clear drops every entry and shrinks the map back to InitialCapacity.
func (m *Map[V]) Clear() {
	m.t.clear()
}

func (m *Map[V]) Len() int {
	return m.t.size
}

func (m *Map[V]) Capacity() int {
	return m.t.capacity
}

func (m *Map[V]) LoadFactor() float64 {
	return LoadFactor
}

func (m *Map[V]) Stats() Stats {
	return m.t.stats()
}
