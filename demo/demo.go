// Package demo walks a Map and a Set through inserts, overwrites, a resize,
// removal and clearing, printing the state after each step.
package demo

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/Aehsan4004/hashmap/storage/chaining"
)

var fruit = [][2]string{
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

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func formatEntries(entries []chaining.Entry[string]) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("[%q, %q]", e.Key, e.Value)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func (p *printer) state(m *chaining.Map[string]) {
	p.printf("Entries: %s\n", formatEntries(m.Entries()))
	p.printf("Length: %d\n", m.Len())
	p.printf("Capacity: %d\n", m.Capacity())
}

func Run(w io.Writer) error {
	p := &printer{w: w}

	m := chaining.NewMap[string]()
	for _, kv := range fruit {
		m.Set(kv[0], kv[1])
	}

	p.printf("Initial state:\n")
	p.state(m)
	p.printf("Load factor: %g\n", m.LoadFactor())
	p.printf("Load level: %g\n", m.Stats().LoadLevel)

	m.Set("apple", "green")
	m.Set("dog", "black")
	p.printf("\nAfter overwriting 'apple' and 'dog':\n")
	p.state(m)

	m.Set("moon", "silver")
	p.printf("\nAfter adding 'moon':\n")
	p.state(m)
	p.printf("Load level: %g\n", m.Stats().LoadLevel)

	m.Set("banana", "green")
	m.Set("frog", "blue")
	p.printf("\nAfter overwriting 'banana' and 'frog':\n")
	p.state(m)

	carrot, _ := m.Get("carrot")
	grape, _ := m.Remove("grape")
	p.printf("\nGet 'carrot': %s\n", carrot)
	p.printf("Has 'elephant': %t\n", m.Has("elephant"))
	p.printf("Has 'zebra': %t\n", m.Has("zebra"))
	p.printf("Remove 'grape': %s\n", grape)
	p.state(m)
	p.printf("Keys: %q\n", m.Keys())
	p.printf("Values: %q\n", m.Values())

	m.Clear()
	p.printf("\nAfter clear:\n")
	p.state(m)

	s := chaining.NewSet()
	s.Add("apple")
	s.Add("banana")
	p.printf("\nSet keys: %q\n", s.Keys())
	p.printf("Has 'apple': %t\n", s.Has("apple"))
	p.printf("Has 'banana': %t\n", s.Has("banana"))
	banana, _ := s.Remove("banana")
	p.printf("Remove 'banana': %s\n", banana)
	p.printf("After remove: %q\n", s.Keys())
	p.printf("Length: %d\n", s.Len())

	return errors.Wrap(p.err, "write demo output")
}
