package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// Sequence identifies an id sequence: ids are Prefix followed by a counter zero-padded to Width digits.
type Sequence struct {
	Prefix string
	Width  int
}

// SequenceFunc selects the sequence a new record draws its id from.
type SequenceFunc[T any] func(rec T) Sequence

// StaticSequence is a SequenceFunc always returning seq.
func StaticSequence[T any](prefix string, width int) SequenceFunc[T] {
	return func(T) Sequence { return Sequence{Prefix: prefix, Width: width} }
}

func (seq Sequence) format(n int) string {
	return fmt.Sprintf("%s%0*d", seq.Prefix, seq.Width, n)
}

// idGenerator keeps a monotonic counter per prefix and every id ever stored, whatever its sequence.
// Not safe for concurrent use; guarded by the registry.
type idGenerator struct {
	counters map[string]int
	issued   map[string]struct{}
}

func newIDGenerator() *idGenerator {
	return &idGenerator{counters: make(map[string]int), issued: make(map[string]struct{})}
}

// next returns the first id of seq above the counter that was never issued.
func (g *idGenerator) next(seq Sequence) string {
	for {
		g.counters[seq.Prefix]++
		id := seq.format(g.counters[seq.Prefix])
		if _, ok := g.issued[id]; !ok {
			g.issued[id] = struct{}{}
			return id
		}
	}
}

// observe records an explicit id and moves the counter of seq past it.
// The id is recorded even when it belongs to another sequence, so no later generated id reuses it.
func (g *idGenerator) observe(seq Sequence, id string) {
	g.issued[id] = struct{}{}
	if !strings.HasPrefix(id, seq.Prefix) {
		return
	}
	n, err := strconv.Atoi(id[len(seq.Prefix):])
	if err != nil || n <= 0 {
		return
	}
	if n > g.counters[seq.Prefix] {
		g.counters[seq.Prefix] = n
	}
}
