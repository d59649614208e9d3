package treap

import (
	"bytes"
	"fmt"
	"strings"
)

type node[T any] struct {
	key      T
	priority uint64
	left     *node[T]
	right    *node[T]
}

func newNode[T any](key T, priority uint64) *node[T] {
	return &node[T]{key: key, priority: priority}
}

// release drops everything the node references. Its former children must
// already be linked elsewhere.
func (n *node[T]) release() {
	var zero T
	n.key = zero
	n.left = nil
	n.right = nil
}

type splitMode uint8

const (
	// splitLessEqual sends keys <= the split key to the left part.
	splitLessEqual splitMode = iota
	// splitLess sends keys < the split key to the left part.
	splitLess
)

func (m splitMode) String() string {
	switch m {
	case splitLessEqual:
		return "<="
	case splitLess:
		return "<"
	}
	return fmt.Sprintf("splitMode(%d)", uint8(m))
}

// goesLeft reports whether k belongs to the left part of a split at key.
func (t *Treap[T]) goesLeft(k, key T, mode splitMode) bool {
	if mode == splitLessEqual {
		return !t.less(key, k)
	}
	return t.less(k, key)
}

// split partitions the subtree rooted at v into a left part, whose keys all
// satisfy the mode's predicate against key, and a right part holding the
// rest. Nodes are relinked in place. The walk is top-down: lslot and rslot
// are the child slots the next node of each part gets attached to.
func (t *Treap[T]) split(v *node[T], key T, mode splitMode) (left, right *node[T]) {
	lslot, rslot := &left, &right
	for v != nil {
		if t.goesLeft(v.key, key, mode) {
			*lslot = v
			lslot = &v.right
			v = v.right
		} else {
			*rslot = v
			rslot = &v.left
			v = v.left
		}
	}
	*lslot = nil
	*rslot = nil
	return left, right
}

// merge joins two trees where every key of left is less than every key of
// right. That ordering is not checked. The root with the higher priority
// wins; on equal priorities the left root wins.
func merge[T any](left, right *node[T]) *node[T] {
	var root *node[T]
	slot := &root
	for left != nil && right != nil {
		if left.priority >= right.priority {
			*slot = left
			slot = &left.right
			left = left.right
		} else {
			*slot = right
			slot = &right.left
			right = right.left
		}
	}
	if left != nil {
		*slot = left
	} else {
		*slot = right
	}
	return root
}

// rightmost returns the node with the greatest key under v, or nil.
func rightmost[T any](v *node[T]) *node[T] {
	if v == nil {
		return nil
	}
	for v.right != nil {
		v = v.right
	}
	return v
}

func (n *node[T]) describe(indent int, buffer *bytes.Buffer) {
	if n == nil {
		return
	}
	n.right.describe(indent+1, buffer)
	fmt.Fprintf(buffer, "%s%v [%d]\n", strings.Repeat("   ", indent), n.key, n.priority)
	n.left.describe(indent+1, buffer)
}
