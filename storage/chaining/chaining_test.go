package chaining

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var demoEntries = []Entry[string]{
	{"apple", "red"},
	{"banana", "yellow"},
	{"carrot", "orange"},
	{"dog", "brown"},
	{"elephant", "gray"},
	{"frog", "green"},
	{"grape", "purple"},
	{"hat", "black"},
	{"ice cream", "white"},
	{"jacket", "blue"},
	{"kite", "pink"},
	{"lion", "golden"},
}

func demoMap(t *testing.T) *Map[string] {
	t.Helper()

	m := NewMap[string]()
	for _, e := range demoEntries {
		m.Set(e.Key, e.Value)
	}
	require.Equal(t, len(demoEntries), m.Len())

	return m
}

func TestHash(t *testing.T) {
	cases := []struct {
		key      string
		capacity int
		want     int
	}{
		{"", 16, 0},
		{"a", 16, 1},
		{"ab", 16, 1},
		{"apple", 16, 10},
		{"apple", 32, 26},
		{"ice cream", 16, 13},
		{"ice cream", 1024, 685},
		{"héllo", 1024, 462},
		// long enough to overflow 64 bits
		{"supercalifragilisticexpialidocious", 1 << 20, 1022691},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Hash(c.key, c.capacity), "Hash(%q, %d)", c.key, c.capacity)
	}
}

func TestKeyFromValue(t *testing.T) {
	key, err := KeyFromValue("apple")
	require.NoError(t, err)
	assert.Equal(t, "apple", key)

	for _, v := range []interface{}{42, 3.5, true, nil, []string{"a"}} {
		_, err := KeyFromValue(v)
		assert.True(t, errors.Is(err, ErrInvalidKeyType), "value %v", v)
	}
}

func TestLocateOutOfRange(t *testing.T) {
	tbl := newTable[string](true, nil)
	tbl.buckets = tbl.buckets[:1]

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	}()

	tbl.locate("a")
}

func TestMapChainOrder(t *testing.T) {
	// "a" and "ab" share bucket 1
	m := NewMap[int]()
	m.Set("a", 1)
	m.Set("ab", 2)
	m.Set("abc", 3)

	if diff := cmp.Diff([]string{"ab", "a", "abc"}, m.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, m.Stats().LongestChain)
}

func TestMapRemoveFromChain(t *testing.T) {
	m := NewMap[int]()
	m.Set("a", 1)
	m.Set("ab", 2)
	m.Set("moon", 3)

	// chain in bucket 1 is moon -> ab -> a
	v, ok := m.Remove("ab")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, []string{"moon", "a"}, m.Keys())

	v, ok = m.Remove("moon")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, []string{"a"}, m.Keys())

	_, ok = m.Remove("zebra")
	assert.False(t, ok)
	_, ok = m.Remove("ab")
	assert.False(t, ok)

	assert.Equal(t, 1, m.Len())
	assert.True(t, m.Has("a"))
}

func TestMapGetMissing(t *testing.T) {
	m := demoMap(t)

	v, ok := m.Get("zebra")
	assert.False(t, ok)
	assert.Equal(t, "", v)
	assert.False(t, m.Has("zebra"))
}

func TestMapOverwrite(t *testing.T) {
	m := demoMap(t)

	m.Set("apple", "green")
	m.Set("dog", "black")

	assert.Equal(t, 12, m.Len())
	assert.Equal(t, InitialCapacity, m.Capacity())

	v, ok := m.Get("apple")
	require.True(t, ok)
	assert.Equal(t, "green", v)
}

func TestMapResize(t *testing.T) {
	m := demoMap(t)

	// 12/16 is exactly the load factor, which does not trigger a resize
	assert.Equal(t, 16, m.Capacity())
	assert.Equal(t, 0.75, m.Stats().LoadLevel)

	wantKeys := []string{
		"elephant", "carrot", "frog", "banana", "apple", "hat",
		"grape", "lion", "dog", "ice cream", "jacket", "kite",
	}
	if diff := cmp.Diff(wantKeys, m.Keys()); diff != "" {
		t.Errorf("keys before resize (-want +got):\n%s", diff)
	}

	m.Set("moon", "silver")

	assert.Equal(t, 32, m.Capacity())
	assert.Equal(t, 13, m.Len())
	assert.Equal(t, 0.40625, m.Stats().LoadLevel)

	for _, e := range append(demoEntries, Entry[string]{"moon", "silver"}) {
		v, ok := m.Get(e.Key)
		require.True(t, ok, "key %q lost in resize", e.Key)
		assert.Equal(t, e.Value, v)
	}

	wantKeys = []string{
		"moon", "carrot", "frog", "banana", "grape", "ice cream", "jacket",
		"kite", "elephant", "apple", "hat", "dog", "lion",
	}
	if diff := cmp.Diff(wantKeys, m.Keys()); diff != "" {
		t.Errorf("keys after resize (-want +got):\n%s", diff)
	}
}

func TestMapResizeKeepsBuckets(t *testing.T) {
	m := NewMap[int]()
	for i := 0; i < 1000; i++ {
		m.Set(fmt.Sprintf("key-%d", i), i)
	}

	assert.Equal(t, 1000, m.Len())
	assert.Equal(t, 2048, m.Capacity())

	for idx, head := range m.t.buckets {
		for curr := head; curr != nil; curr = curr.next {
			require.Equal(t, idx, Hash(curr.key, m.Capacity()), "key %q in wrong bucket", curr.key)
		}
	}

	for i := 0; i < 1000; i++ {
		v, ok := m.Get(fmt.Sprintf("key-%d", i))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestMapNoShrinkOnRemove(t *testing.T) {
	m := demoMap(t)
	m.Set("moon", "silver")
	require.Equal(t, 32, m.Capacity())

	for _, k := range m.Keys() {
		m.Remove(k)
	}

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 32, m.Capacity())
}

func TestMapValuesAndEntries(t *testing.T) {
	m := NewMap[string]()
	m.Set("a", "1")
	m.Set("ab", "2")
	m.Set("banana", "3")

	assert.Equal(t, []string{"2", "1", "3"}, m.Values())

	want := []Entry[string]{{"ab", "2"}, {"a", "1"}, {"banana", "3"}}
	if diff := cmp.Diff(want, m.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestMapClear(t *testing.T) {
	m := demoMap(t)
	m.Set("moon", "silver")
	require.Equal(t, 32, m.Capacity())

	m.Clear()

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, InitialCapacity, m.Capacity())
	assert.Empty(t, m.Keys())
	for _, e := range demoEntries {
		assert.False(t, m.Has(e.Key))
	}
}

func TestMapLength(t *testing.T) {
	m := NewMap[int]()
	inserted := map[string]bool{}
	removed := 0

	for i := 0; i < 200; i++ {
		k := fmt.Sprintf("k%d", i%70)
		m.Set(k, i)
		inserted[k] = true
		if i%3 == 0 {
			if _, ok := m.Remove(fmt.Sprintf("k%d", i%50)); ok {
				delete(inserted, fmt.Sprintf("k%d", i%50))
				removed++
			}
		}
		require.Equal(t, len(inserted), m.Len())
	}
	assert.NotZero(t, removed)
}

func TestMapResizeLogs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	m := NewMap[string](WithLogger(logger))
	for _, e := range demoEntries {
		m.Set(e.Key, e.Value)
	}
	assert.Empty(t, hook.AllEntries())

	m.Set("moon", "silver")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "resized table", entry.Message)
	assert.Equal(t, 16, entry.Data["from"])
	assert.Equal(t, 32, entry.Data["to"])
	assert.Equal(t, 13, entry.Data["size"])
}
