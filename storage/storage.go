package storage

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Aehsan4004/hashmap/config"
	"github.com/Aehsan4004/hashmap/storage/chaining"
)

type StorageBackend interface {
	Insert(key, value string)
	Retrieve(key string) (string, bool)
	Has(key string) bool
	Remove(key string) (string, bool)
	Keys() []string
	Values() []string
	Entries() []chaining.Entry[string]
	Clear()
	Len() int
	Stats() chaining.Stats
}

// Store serialises access to a chaining map of entries and a chaining set of
// members. The chaining containers themselves are single threaded.
type Store struct {
	mu      sync.RWMutex
	entries *chaining.Map[string]
	members *chaining.Set
}

var _ StorageBackend = (*Store)(nil)

func New(opts ...chaining.Option) *Store {
	return &Store{
		entries: chaining.NewMap[string](opts...),
		members: chaining.NewSet(opts...),
	}
}

func (s *Store) Insert(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Set(key, value)
}

func (s *Store) Retrieve(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries.Get(key)
}

func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries.Has(key)
}

func (s *Store) Remove(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entries.Remove(key)
}

func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries.Keys()
}

func (s *Store) Values() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries.Values()
}

func (s *Store) Entries() []chaining.Entry[string] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries.Entries()
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Clear()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries.Len()
}

func (s *Store) Stats() chaining.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries.Stats()
}

func (s *Store) AddMember(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.members.Add(key)
}

func (s *Store) HasMember(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.members.Has(key)
}

func (s *Store) RemoveMember(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.members.Remove(key)
	return ok
}

func (s *Store) Members() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.members.Keys()
}

func (s *Store) ClearMembers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.members.Clear()
}

func (s *Store) MemberStats() chaining.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.members.Stats()
}

// Seed loads the entries and members listed in a config file. Nothing is
// stored unless every key is a string.
func (s *Store) Seed(seed config.Seed) error {
	entries := make([]chaining.Entry[string], 0, len(seed.Entries))
	for _, item := range seed.Entries {
		key, err := chaining.KeyFromValue(item.Key)
		if err != nil {
			return errors.Wrap(err, "seed entry")
		}

		value := ""
		if item.Value != nil {
			value = fmt.Sprint(item.Value)
		}
		entries = append(entries, chaining.Entry[string]{Key: key, Value: value})
	}

	members := make([]string, 0, len(seed.Members))
	for _, item := range seed.Members {
		key, err := chaining.KeyFromValue(item)
		if err != nil {
			return errors.Wrap(err, "seed member")
		}
		members = append(members, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		s.entries.Set(e.Key, e.Value)
	}
	for _, m := range members {
		s.members.Add(m)
	}

	log.Infof("Seeded %d entries and %d members", len(entries), len(members))
	return nil
}
