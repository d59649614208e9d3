package treap

import "math/rand/v2"

// PrioritySource supplies the heap priority for each newly created node.
// Priorities only affect the shape (and therefore the speed) of a tree,
// never which keys it contains. A source belongs to a single tree and need
// not be safe for concurrent use.
type PrioritySource interface {
	// Priority returns the priority for the next node.
	Priority() uint64
}

// PriorityFunc adapts an ordinary function to a PrioritySource.
type PriorityFunc func() uint64

// Priority calls f.
func (f PriorityFunc) Priority() uint64 {
	return f()
}

// pcgStream is xored into the seed to pick the PCG stream, so that seed 0
// still yields a well-mixed sequence.
const pcgStream = 0x9e3779b97f4a7c15

type randSource struct {
	r *rand.Rand
}

// NewRandSource returns a PCG-backed PrioritySource. Trees built with
// sources of the same seed, fed the same operations, have the same shape.
func NewRandSource(seed uint64) PrioritySource {
	return &randSource{r: rand.New(rand.NewPCG(seed, seed^pcgStream))}
}

func (s *randSource) Priority() uint64 {
	return s.r.Uint64()
}

// DefaultPrioritySource returns a PrioritySource seeded from the runtime's
// random state. Every call returns an independent sequence.
func DefaultPrioritySource() PrioritySource {
	return NewRandSource(rand.Uint64())
}
