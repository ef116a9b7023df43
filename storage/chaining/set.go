package chaining

// Set is a string set backed by the same table as Map.
type Set struct {
	t *table[struct{}]
}

func NewSet(opts ...Option) *Set {
	return &Set{t: newTable[struct{}](false, opts)}
}

// Add inserts key. Adding a key that is already present does nothing.
func (s *Set) Add(key string) {
	s.t.insertOrUpdate(key, struct{}{})
}

func (s *Set) Has(key string) bool {
	return s.t.find(key) != nil
}

func (s *Set) Remove(key string) (string, bool) {
	if _, ok := s.t.remove(key); !ok {
		return "", false
	}

	return key, true
}

func (s *Set) Keys() []string {
	return s.t.keys()
}

func (s *Set) Clear() {
	s.t.clear()
}

func (s *Set) Len() int {
	return s.t.size
}

func (s *Set) Capacity() int {
	return s.t.capacity
}

func (s *Set) LoadFactor() float64 {
	return LoadFactor
}

func (s *Set) Stats() Stats {
	return s.t.stats()
}
