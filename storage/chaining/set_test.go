package chaining

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAdd(t *testing.T) {
	s := NewSet()
	s.Add("apple")
	s.Add("banana")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("apple"))
	assert.True(t, s.Has("banana"))
	assert.False(t, s.Has("zebra"))
	assert.Equal(t, []string{"banana", "apple"}, s.Keys())

	s.Add("apple")
	assert.Equal(t, 2, s.Len())
}

func TestSetRemove(t *testing.T) {
	s := NewSet()
	s.Add("apple")
	s.Add("banana")

	key, ok := s.Remove("banana")
	require.True(t, ok)
	assert.Equal(t, "banana", key)
	assert.False(t, s.Has("banana"))

	_, ok = s.Remove("banana")
	assert.False(t, ok)

	assert.Equal(t, []string{"apple"}, s.Keys())
	assert.Equal(t, 1, s.Len())
}

func TestSetResizeAndClear(t *testing.T) {
	s := NewSet()
	for i := 0; i < 13; i++ {
		s.Add(fmt.Sprintf("member-%d", i))
	}

	assert.Equal(t, 32, s.Capacity())
	assert.Equal(t, 13, s.Len())
	for i := 0; i < 13; i++ {
		assert.True(t, s.Has(fmt.Sprintf("member-%d", i)))
	}

	// duplicates never trigger growth
	for i := 0; i < 13; i++ {
		s.Add(fmt.Sprintf("member-%d", i))
	}
	assert.Equal(t, 32, s.Capacity())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, InitialCapacity, s.Capacity())
	assert.False(t, s.Has("member-0"))
}

func TestSetStats(t *testing.T) {
	s := NewSet()
	s.Add("a")
	s.Add("ab")
	s.Add("banana")

	st := s.Stats()
	assert.Equal(t, Stats{
		Size:         3,
		Capacity:     16,
		LoadFactor:   0.75,
		LoadLevel:    3.0 / 16,
		UsedBuckets:  2,
		LongestChain: 2,
	}, st)
	assert.Equal(t, 0.75, s.LoadFactor())
}
