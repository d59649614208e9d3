package treap

import (
	"cmp"

	"github.com/cockroachdb/errors"
)

// ErrNoLess is returned by NewWithConfig when Config.Less is not set.
var ErrNoLess = errors.New("treap: Config.Less is required")

// Config controls how a tree orders keys and draws node priorities.
type Config[T any] struct {
	// Less reports whether a sorts strictly before b. It must be a strict
	// total order; two keys are equal when neither is less than the other.
	Less func(a, b T) bool

	// Priorities supplies node priorities. Defaults to
	// DefaultPrioritySource(); use NewRandSource for reproducible shapes.
	Priorities PrioritySource
}

// New returns an empty tree ordering keys by their natural order.
func New[T cmp.Ordered]() *Treap[T] {
	return NewFunc(cmp.Less[T])
}

// NewFunc returns an empty tree ordering keys by less.
func NewFunc[T any](less func(a, b T) bool) *Treap[T] {
	t, err := NewWithConfig(Config[T]{Less: less})
	if err != nil {
		panic(err)
	}
	return t
}

// NewWithConfig returns an empty tree configured by cfg.
func NewWithConfig[T any](cfg Config[T]) (*Treap[T], error) {
	if cfg.Less == nil {
		return nil, ErrNoLess
	}
	priorities := cfg.Priorities
	if priorities == nil {
		priorities = DefaultPrioritySource()
	}
	return &Treap[T]{
		less:       cfg.Less,
		priorities: priorities,
	}, nil
}

// Insert adds x to the set. It returns false, leaving the tree unchanged,
// if x was already present.
func (t *Treap[T]) Insert(x T) bool {
	if t.root == nil {
		t.root = newNode(x, t.priorities.Priority())
		t.size++
		return true
	}
	left, right := t.split(t.root, x, splitLessEqual)
	if last := rightmost(left); last != nil && !t.less(last.key, x) {
		t.root = merge(left, right)
		return false
	}
	n := newNode(x, t.priorities.Priority())
	t.root = merge(left, merge(n, right))
	t.size++
	return true
}

// Erase removes x from the set. It returns false if x was not present.
func (t *Treap[T]) Erase(x T) bool {
	if t.root == nil {
		return false
	}
	upTo, greater := t.split(t.root, x, splitLessEqual)
	if upTo == nil {
		t.root = greater
		return false
	}
	smaller, match := t.split(upTo, x, splitLess)
	if match == nil {
		t.root = merge(smaller, greater)
		return false
	}
	match.release()
	t.root = merge(smaller, greater)
	t.size--
	return true
}

// Contains reports whether x is in the set. The key set is unchanged, but
// the nodes along the search path are relinked, so Contains is a write as far
// as concurrent access is concerned.
func (t *Treap[T]) Contains(x T) bool {
	if t.root == nil {
		return false
	}
	upTo, greater := t.split(t.root, x, splitLessEqual)
	smaller, match := t.split(upTo, x, splitLess)
	t.root = merge(merge(smaller, match), greater)
	return match != nil
}

// Size returns the number of keys in the set.
func (t *Treap[T]) Size() int {
	return t.size
}

// Clear removes every key.
func (t *Treap[T]) Clear() {
	t.root = nil
	t.size = 0
}
