/*
Package treap provides an ordered set of unique keys implemented as a
treap: a binary search tree whose shape is kept balanced by giving every
node a random priority and keeping the tree a max-heap on those
priorities.

Because the priorities are random, the tree has the shape it would have
had if its keys had been inserted in random order, so its expected depth
is logarithmic without any explicit rebalancing.

Split and merge

Every operation is built from two primitives. Split cuts a tree into the
keys up to (or strictly below) a given key and the rest. Merge joins two
trees whose key ranges don't overlap, letting the root with the higher
priority win, and the left root win ties. Insert splits at the new key,
checks the greatest key of the left part for a duplicate, and merges a
fresh node in between. Erase and Contains split twice to isolate the node
for a key, then merge the remaining parts back together.

Both primitives walk top-down without recursion, so a degenerate priority
source (a constant, say) makes the tree slow but never exhausts the stack.

Priorities

Priorities come from a PrioritySource owned by the tree. The default is
seeded from the runtime; NewRandSource makes shapes reproducible, which is
useful for benchmarks and tests. Keys present in the tree never depend on
the source.

Concurrency

A Treap is not safe for concurrent use. Contains relinks the nodes along
its search path, so even concurrent lookups must be serialized.
*/
package treap
