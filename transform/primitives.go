package transform

import (
	"fmt"

	"github.com/arloliu/axmeta/errs"
)

func checkAxis(axis, n int) error {
	if axis < 0 || axis >= n {
		return errs.InvalidAxis(axis, n)
	}

	return nil
}

// Identity returns the identity transform of n dimensions. It panics if n is negative.
func Identity(n int) *Transform {
	if n < 0 {
		panic("transform: negative dimensionality")
	}

	return build(n, n).finish()
}

// HyperSlice returns the transform that fixes source axis d at pos and removes it,
// mapping n source dimensions onto n-1 target dimensions.
func HyperSlice(n, d int, pos int64) (*Transform, error) {
	if err := checkAxis(d, n); err != nil {
		return nil, err
	}

	t := build(n, n-1)
	for tgt := range t.mapping {
		if tgt < d {
			t.mapping[tgt] = tgt
		} else {
			t.mapping[tgt] = tgt + 1
		}
		t.zero[tgt] = false
	}
	t.translation[d] = -pos

	return t.finish(), nil
}

// AddDimension returns the transform that appends one synthetic axis, mapping n
// source dimensions onto n+1 target dimensions. The new axis is fixed at zero and
// has no source counterpart.
func AddDimension(n int) *Transform {
	if n < 0 {
		panic("transform: negative dimensionality")
	}

	return build(n, n+1).finish()
}

// Translate returns the transform that shifts every source axis by offset, so that
// the source position p appears at p+offset.
func Translate(n int, offset ...int64) (*Transform, error) {
	if len(offset) != n {
		return nil, fmt.Errorf("%w: translation of %d axes for %d dimensions", errs.ErrDimensionMismatch, len(offset), n)
	}

	t := build(n, n)
	copy(t.translation, offset)

	return t.finish(), nil
}

// TranslateInverse returns the transform that shifts every source axis by -offset.
func TranslateInverse(n int, offset ...int64) (*Transform, error) {
	if len(offset) != n {
		return nil, fmt.Errorf("%w: translation of %d axes for %d dimensions", errs.ErrDimensionMismatch, len(offset), n)
	}

	t := build(n, n)
	for i, o := range offset {
		t.translation[i] = -o
	}

	return t.finish(), nil
}

// Rotate returns the transform that rotates by 90 degrees in the plane spanned by
// from and to: target axis to shows source axis from, and target axis from shows
// the negated source axis to.
func Rotate(n, from, to int) (*Transform, error) {
	if err := checkAxis(from, n); err != nil {
		return nil, err
	}
	if err := checkAxis(to, n); err != nil {
		return nil, err
	}

	t := build(n, n)
	if from == to {
		return t.finish(), nil
	}
	t.mapping[to] = from
	t.mapping[from] = to
	t.inverted[to] = true

	return t.finish(), nil
}

// Permute returns the transform that swaps axes a and b.
func Permute(n, a, b int) (*Transform, error) {
	if err := checkAxis(a, n); err != nil {
		return nil, err
	}
	if err := checkAxis(b, n); err != nil {
		return nil, err
	}

	t := build(n, n)
	t.mapping[a], t.mapping[b] = b, a

	return t.finish(), nil
}

// MoveAxis returns the transform that moves axis from to position to, shifting the
// axes in between by one.
func MoveAxis(n, from, to int) (*Transform, error) {
	if err := checkAxis(from, n); err != nil {
		return nil, err
	}
	if err := checkAxis(to, n); err != nil {
		return nil, err
	}

	order := make([]int, 0, n)
	for s := range n {
		if s != from {
			order = append(order, s)
		}
	}
	order = append(order[:to], append([]int{from}, order[to:]...)...)

	t := build(n, n)
	copy(t.mapping, order)

	return t.finish(), nil
}

// InvertAxis returns the transform that negates axis d.
func InvertAxis(n, d int) (*Transform, error) {
	if err := checkAxis(d, n); err != nil {
		return nil, err
	}

	t := build(n, n)
	t.inverted[d] = true

	return t.finish(), nil
}
