package datastructures

import (
	"fmt"
	"iter"
	"strings"
	"sync"
	"unicode/utf8"
)

// MaxValueLength is the longest value, in characters, the list accepts.
const MaxValueLength = 1000

const none = -1

type (
	// IndexedList is a doubly linked list of unique strings with an index
	// from value to node, safe for concurrent use.
	//
	// Nodes live in an arena and refer to each other by slot number, so
	// the index and the links never hold pointers into the list.
	IndexedList struct {
		mu      sync.Mutex
		nodes   []node
		free    []int
		head    int
		tail    int
		length  int
		maxSize int
		bounded bool
		index   map[string]int
	}

	node struct {
		value string
		prev  int
		next  int
	}

	// Option configures an IndexedList.
	Option func(*IndexedList)
)

// WithMaxSize bounds the number of values the list holds.
func WithMaxSize(n int) Option {
	if n < 0 {
		panic("max size must not be negative")
	}
	return func(l *IndexedList) {
		l.maxSize = n
		l.bounded = true
	}
}

// New creates an empty list. Without WithMaxSize the list is unbounded.
func New(opts ...Option) *IndexedList {
	l := &IndexedList{
		head:  none,
		tail:  none,
		index: make(map[string]int),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append adds value to the tail of the list.
func (l *IndexedList) Append(value string) error {
	if n := utf8.RuneCountInString(value); n > MaxValueLength {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrValueTooLong, n, MaxValueLength)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bounded && l.length >= l.maxSize {
		return ErrListFull
	}
	if _, exists := l.index[value]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, value)
	}

	h := l.alloc(value)
	if l.tail == none {
		l.head = h
	} else {
		l.nodes[l.tail].next = h
		l.nodes[h].prev = l.tail
	}
	l.tail = h
	l.length++
	l.index[value] = h
	return nil
}

// Remove unlinks the node holding value.
func (l *IndexedList) Remove(value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.length == 0 {
		return ErrEmptyList
	}
	h, ok := l.index[value]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, value)
	}

	n := l.nodes[h]
	if n.prev != none {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != none {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}

	delete(l.index, value)
	l.release(h)
	l.length--
	return nil
}

// alloc places value in a free slot, growing the arena if none is left.
func (l *IndexedList) alloc(value string) int {
	n := node{value: value, prev: none, next: none}
	if last := len(l.free) - 1; last >= 0 {
		h := l.free[last]
		l.free = l.free[:last]
		l.nodes[h] = n
		return h
	}
	l.nodes = append(l.nodes, n)
	return len(l.nodes) - 1
}

func (l *IndexedList) release(h int) {
	l.nodes[h] = node{prev: none, next: none}
	l.free = append(l.free, h)
}

// Forward returns the values from head to tail.
//
// The list stays locked while the loop runs, so the loop body must not
// call other methods on the same list. Use Values to get a copy instead.
func (l *IndexedList) Forward() iter.Seq[string] {
	return func(yield func(string) bool) {
		l.mu.Lock()
		defer l.mu.Unlock()
		for h := l.head; h != none; h = l.nodes[h].next {
			if !yield(l.nodes[h].value) {
				return
			}
		}
	}
}

// Backward returns the values from tail to head, with the same locking
// rules as Forward.
func (l *IndexedList) Backward() iter.Seq[string] {
	return func(yield func(string) bool) {
		l.mu.Lock()
		defer l.mu.Unlock()
		for h := l.tail; h != none; h = l.nodes[h].prev {
			if !yield(l.nodes[h].value) {
				return
			}
		}
	}
}

// Values returns a copy of the values in insertion order.
func (l *IndexedList) Values() []string {
	return collect(l.Len(), l.Forward())
}

// ReverseValues returns a copy of the values in reverse insertion order.
func (l *IndexedList) ReverseValues() []string {
	return collect(l.Len(), l.Backward())
}

func collect(hint int, seq iter.Seq[string]) []string {
	values := make([]string, 0, hint)
	for v := range seq {
		values = append(values, v)
	}
	return values
}

// Contains reports whether value is in the list.
func (l *IndexedList) Contains(value string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.index[value]
	return ok
}

// Len returns the number of values in the list.
func (l *IndexedList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.length
}

// Size is an alias for Len.
func (l *IndexedList) Size() int {
	return l.Len()
}

// MaxSize returns the capacity bound and whether one is set.
func (l *IndexedList) MaxSize() (int, bool) {
	return l.maxSize, l.bounded
}

// Clear removes all values from the list.
func (l *IndexedList) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nodes = nil
	l.free = nil
	l.head = none
	l.tail = none
	l.length = 0
	l.index = make(map[string]int)
}

// String joins the values in insertion order with spaces.
func (l *IndexedList) String() string {
	var b strings.Builder
	first := true
	for v := range l.Forward() {
		if !first {
			b.WriteByte(' ')
		}
		b.WriteString(v)
		first = false
	}
	return b.String()
}
