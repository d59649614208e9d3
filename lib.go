package treap

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/errors"
)

// Treap is an ordered set of unique keys kept as a binary search tree on the
// keys and a max-heap on randomly drawn node priorities. Insert, Erase and
// Contains are built from two primitives, split and merge, and run in
// expected O(log n) time.
//
// A Treap is not safe for concurrent use, including concurrent Contains
// calls.
type Treap[T any] struct {
	root       *node[T]
	size       int
	less       func(a, b T) bool
	priorities PrioritySource
}

// keys returns the keys in order.
func (t *Treap[T]) keys() []T {
	keys := make([]T, 0, t.size)
	var stack []*node[T]
	for n := t.root; n != nil || len(stack) > 0; {
		for ; n != nil; n = n.left {
			stack = append(stack, n)
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		keys = append(keys, n.key)
		n = n.right
	}
	return keys
}

type level[T any] struct {
	n     *node[T]
	depth int
}

// height returns the number of nodes on the longest root-to-leaf path.
func (t *Treap[T]) height() int {
	deepest := 0
	if t.root == nil {
		return 0
	}
	stack := []level[T]{{t.root, 1}}
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if l.depth > deepest {
			deepest = l.depth
		}
		if l.n.left != nil {
			stack = append(stack, level[T]{l.n.left, l.depth + 1})
		}
		if l.n.right != nil {
			stack = append(stack, level[T]{l.n.right, l.depth + 1})
		}
	}
	return deepest
}

// check verifies the ordering, heap and size invariants, returning the first
// violation found.
func (t *Treap[T]) check() error {
	count, err := t.checkNode(t.root, nil, nil)
	if err != nil {
		return err
	}
	if count != t.size {
		return errors.Newf("size is %d but %d nodes are reachable", t.size, count)
	}
	return nil
}

func (t *Treap[T]) checkNode(n *node[T], lo, hi *T) (int, error) {
	if n == nil {
		return 0, nil
	}
	if lo != nil && !t.less(*lo, n.key) {
		return 0, errors.Newf("key %v is not greater than ancestor %v", n.key, *lo)
	}
	if hi != nil && !t.less(n.key, *hi) {
		return 0, errors.Newf("key %v is not less than ancestor %v", n.key, *hi)
	}
	for _, child := range []*node[T]{n.left, n.right} {
		if child != nil && child.priority > n.priority {
			return 0, errors.Newf("child %v priority %d exceeds parent %v priority %d",
				child.key, child.priority, n.key, n.priority)
		}
	}
	left, err := t.checkNode(n.left, lo, &n.key)
	if err != nil {
		return 0, errors.Wrapf(err, "left of %v", n.key)
	}
	right, err := t.checkNode(n.right, &n.key, hi)
	if err != nil {
		return 0, errors.Wrapf(err, "right of %v", n.key)
	}
	return left + right + 1, nil
}

// dump renders the tree sideways, right subtree on top, one "key [priority]"
// per line.
func (t *Treap[T]) dump() string {
	buffer := bytes.NewBufferString(fmt.Sprintf("<Treap Size:%d>\n", t.size))
	t.root.describe(0, buffer)
	return buffer.String()
}
