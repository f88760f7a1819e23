// Package match aligns two sequences by repeatedly taking the longest run of
// matching elements and recursing on either side of it.
//
// Elements are compared through one or more key functions. Two elements
// match when any key function maps them to the same key, which lets a
// primary key (full content) be backed by looser secondary keys such as a
// timing signature.
package match

import (
	"container/heap"
	"sort"
)

// KeyFunc derives an equality key from an element.
type KeyFunc[T any] func(T) string

// Run is a block of Len consecutive matching elements starting at A in the
// reference sequence and at B in the other sequence.
type Run struct {
	A, B, Len int
}

// Matcher aligns a reference sequence against another sequence.
type Matcher[T any] struct {
	a, b     []T
	keys     []KeyFunc[T]
	postings []map[string][]int
}

// New indexes b under every key function. At least one key is needed for
// anything to match.
func New[T any](a, b []T, keys ...KeyFunc[T]) *Matcher[T] {
	m := &Matcher[T]{
		a:        a,
		b:        b,
		keys:     keys,
		postings: make([]map[string][]int, len(keys)),
	}
	for k, key := range keys {
		idx := make(map[string][]int)
		for j, el := range b {
			kv := key(el)
			idx[kv] = append(idx[kv], j)
		}
		m.postings[k] = idx
	}
	return m
}

// Runs returns the non-overlapping matching runs, sorted by position in the
// reference sequence. Runs are monotonic in both sequences.
func (m *Matcher[T]) Runs() []Run {
	var runs []Run
	stack := []window{{0, len(m.a), 0, len(m.b)}}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w.aj <= w.ai || w.bj <= w.bi {
			continue
		}

		r := m.longest(w)
		if r.Len == 0 {
			continue
		}
		runs = append(runs, r)
		stack = append(stack,
			window{w.ai, r.A, w.bi, r.B},
			window{r.A + r.Len, w.aj, r.B + r.Len, w.bj},
		)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].A < runs[j].A })
	return runs
}

// Map expands runs into a dense index: result[i] is the position in the other
// sequence matched with reference position i, or -1.
func Map(runs []Run, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = -1
	}
	for _, r := range runs {
		for k := 0; k < r.Len; k++ {
			out[r.A+k] = r.B + k
		}
	}
	return out
}

type window struct {
	ai, aj, bi, bj int
}

// longest finds the longest matching run inside w. Ties keep the first run
// found scanning the reference sequence left to right.
func (m *Matcher[T]) longest(w window) Run {
	best := Run{A: w.ai, B: w.bi}
	lengths := map[int]int{}
	for i := w.ai; i < w.aj; i++ {
		next := make(map[int]int, len(lengths))
		m.candidates(m.a[i], w.bi, w.bj, func(j int) {
			n := lengths[j-1] + 1
			next[j] = n
			if n > best.Len {
				best = Run{A: i - n + 1, B: j - n + 1, Len: n}
			}
		})
		lengths = next
	}
	return best
}

// candidates calls fn, in ascending order, with every position in [lo, hi)
// whose key agrees with el under any key function. A position matching under
// several keys is reported once per key.
func (m *Matcher[T]) candidates(el T, lo, hi int, fn func(int)) {
	h := make(cursorHeap, 0, len(m.keys))
	for k, key := range m.keys {
		list := m.postings[k][key(el)]
		start := sort.SearchInts(list, lo)
		if start < len(list) {
			h = append(h, cursor{list: list, pos: start})
		}
	}
	heap.Init(&h)
	for h.Len() > 0 {
		c := &h[0]
		j := c.list[c.pos]
		if j >= hi {
			return
		}
		fn(j)
		c.pos++
		if c.pos == len(c.list) {
			heap.Pop(&h)
		} else {
			heap.Fix(&h, 0)
		}
	}
}

type cursor struct {
	list []int
	pos  int
}

// cursorHeap is a min-heap of postings cursors ordered by current position.
type cursorHeap []cursor

func (h cursorHeap) Len() int           { return len(h) }
func (h cursorHeap) Less(i, j int) bool { return h[i].list[h[i].pos] < h[j].list[h[j].pos] }
func (h cursorHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *cursorHeap) Push(x any)        { *h = append(*h, x.(cursor)) }
func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
