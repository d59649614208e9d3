// Package bench drives ordered-set implementations through fixed workloads
// and times them.
package bench

import (
	"math/rand/v2"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrMismatch is wrapped by every error reporting that a Set misbehaved.
var ErrMismatch = errors.New("set behaved unexpectedly")

// Set is the surface a workload needs from a container of unique ints.
type Set interface {
	// Insert adds k, returning false if it was already present.
	Insert(k int) bool
	// Erase removes k, returning false if it was absent.
	Erase(k int) bool
	Contains(k int) bool
	Size() int
}

// MapSet is the reference Set, backed by a Go map.
type MapSet map[int]struct{}

// NewMapSet returns an empty MapSet.
func NewMapSet() MapSet {
	return MapSet{}
}

func (m MapSet) Insert(k int) bool {
	if _, ok := m[k]; ok {
		return false
	}
	m[k] = struct{}{}
	return true
}

func (m MapSet) Erase(k int) bool {
	if _, ok := m[k]; !ok {
		return false
	}
	delete(m, k)
	return true
}

func (m MapSet) Contains(k int) bool {
	_, ok := m[k]
	return ok
}

func (m MapSet) Size() int {
	return len(m)
}

// Measure runs four passes over the keys 0..n-1 against s, which must start
// empty: insert each, insert each again, erase each, erase each again. It
// checks the size after every pass and that the repeated passes are no-ops,
// and returns the time taken by all four.
func Measure(s Set, n int) (time.Duration, error) {
	if s.Size() != 0 {
		return 0, errors.Wrapf(ErrMismatch, "set starts with %d keys", s.Size())
	}
	begin := time.Now()
	for i := 0; i < n; i++ {
		s.Insert(i)
	}
	if s.Size() != n {
		return 0, errors.Wrapf(ErrMismatch, "after insert: size %d, want %d", s.Size(), n)
	}
	for i := 0; i < n; i++ {
		if s.Insert(i) {
			return 0, errors.Wrapf(ErrMismatch, "re-insert of %d succeeded", i)
		}
	}
	if s.Size() != n {
		return 0, errors.Wrapf(ErrMismatch, "after re-insert: size %d, want %d", s.Size(), n)
	}
	for i := 0; i < n; i++ {
		s.Erase(i)
	}
	if s.Size() != 0 {
		return 0, errors.Wrapf(ErrMismatch, "after erase: size %d, want 0", s.Size())
	}
	for i := 0; i < n; i++ {
		if s.Erase(i) {
			return 0, errors.Wrapf(ErrMismatch, "re-erase of %d succeeded", i)
		}
	}
	if s.Size() != 0 {
		return 0, errors.Wrapf(ErrMismatch, "after re-erase: size %d, want 0", s.Size())
	}
	return time.Since(begin), nil
}

// CrossCheck applies the same ops random operations, on keys in [0, keyMax),
// to got and want, and reports the first operation whose result or resulting
// size differs. Both sets should start with the same contents.
func CrossCheck(got, want Set, ops, keyMax int, r *rand.Rand) error {
	for i := 0; i < ops; i++ {
		k := r.IntN(keyMax)
		var op string
		var g, w bool
		switch r.IntN(3) {
		case 0:
			op, g, w = "insert", got.Insert(k), want.Insert(k)
		case 1:
			op, g, w = "erase", got.Erase(k), want.Erase(k)
		default:
			op, g, w = "contains", got.Contains(k), want.Contains(k)
		}
		if g != w {
			return errors.Wrapf(ErrMismatch, "op %d: %s(%d) returned %v, want %v", i, op, k, g, w)
		}
		if got.Size() != want.Size() {
			return errors.Wrapf(ErrMismatch, "op %d: %s(%d) left size %d, want %d",
				i, op, k, got.Size(), want.Size())
		}
	}
	for k := 0; k < keyMax; k++ {
		if got.Contains(k) != want.Contains(k) {
			return errors.Wrapf(ErrMismatch, "final contents differ at %d", k)
		}
	}
	return nil
}
