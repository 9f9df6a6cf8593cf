// Package segmenttree provides a read-only balanced binary interval tree
// mapping a monotonically increasing key, such as arc length or time, to the
// data active at that key. Trees are built once from a continuous ascending
// list of ranges and are safe for concurrent reads afterwards.
package segmenttree

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// continuityEpsilon bounds the tolerated mismatch between the end of one
// range and the start of the next.
const continuityEpsilon = 1e-12

// Range is a half-open key interval [Lo, Hi).
type Range struct {
	Lo float64
	Hi float64
}

// Contains reports whether k falls inside the half-open interval.
func (r Range) Contains(k float64) bool {
	return k >= r.Lo && k < r.Hi
}

type node[T any] struct {
	rng   Range
	left  *node[T]
	right *node[T]
	data  T
	leaf  bool
}

// SegmentTree is an immutable balanced binary tree over contiguous ranges.
// Each leaf owns one (range, data) pair; internal nodes own the union of
// their children's ranges and no data.
type SegmentTree[T any] struct {
	root *node[T]
}

// Span returns the full key interval covered by the tree.
func (t *SegmentTree[T]) Span() Range {
	return t.root.rng
}

// Query returns the data of the range containing k, descending the tree in
// O(log n). A key exactly on a shared boundary resolves to the range that
// starts at it; the tree's upper bound resolves to the final range. Keys
// outside the span are an error.
func (t *SegmentTree[T]) Query(k float64) (T, error) {
	var zero T
	if k < t.root.rng.Lo || k > t.root.rng.Hi {
		return zero, errors.Errorf("key %v outside tree span [%v, %v]", k, t.root.rng.Lo, t.root.rng.Hi)
	}
	n := t.root
	for !n.leaf {
		if k < n.left.rng.Hi {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.data, nil
}

type leaf[T any] struct {
	rng  Range
	data T
}

// Builder accumulates (range, data) pairs in ascending key order and builds
// a SegmentTree. The pairs must tile a gap-free interval; all continuity
// violations are reported together at build time.
type Builder[T any] struct {
	leaves []leaf[T]
}

// NewBuilder returns an empty Builder.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{}
}

// Add appends a range with its data. Ranges must be supplied in ascending
// order; validation is deferred to Build.
func (b *Builder[T]) Add(rng Range, data T) {
	b.leaves = append(b.leaves, leaf[T]{rng, data})
}

// Build validates continuity and assembles the balanced tree in O(n log n).
func (b *Builder[T]) Build() (*SegmentTree[T], error) {
	if len(b.leaves) == 0 {
		return nil, errors.New("segment tree requires at least one range")
	}
	var err error
	for i, l := range b.leaves {
		if !(l.rng.Hi > l.rng.Lo) {
			err = multierr.Append(err, errors.Errorf("range %d is empty or inverted: [%v, %v)", i, l.rng.Lo, l.rng.Hi))
		}
		if i > 0 {
			prev := b.leaves[i-1].rng.Hi
			if diff := l.rng.Lo - prev; diff > continuityEpsilon || diff < -continuityEpsilon {
				err = multierr.Append(err, errors.Errorf("range %d starts at %v, expected %v (gap or overlap)", i, l.rng.Lo, prev))
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return &SegmentTree[T]{root: build(b.leaves)}, nil
}

func build[T any](leaves []leaf[T]) *node[T] {
	if len(leaves) == 1 {
		return &node[T]{rng: leaves[0].rng, data: leaves[0].data, leaf: true}
	}
	mid := len(leaves) / 2
	left := build(leaves[:mid])
	right := build(leaves[mid:])
	return &node[T]{
		rng:   Range{Lo: left.rng.Lo, Hi: right.rng.Hi},
		left:  left,
		right: right,
	}
}
