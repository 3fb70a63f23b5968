package store

import (
	"github.com/arloliu/axmeta/transform"
)

// Slice fixes axis d of s at pos and drops it from the view.
func Slice(s Store, d int, pos int64, opts ...Option) (*TransformView, error) {
	tf, err := transform.HyperSlice(s.NumDimensions(), d, pos)
	if err != nil {
		return nil, err
	}

	return NewView(s, tf, opts...)
}

// Permute swaps axes a and b.
func Permute(s Store, a, b int, opts ...Option) (*TransformView, error) {
	tf, err := transform.Permute(s.NumDimensions(), a, b)
	if err != nil {
		return nil, err
	}

	return NewView(s, tf, opts...)
}

// MoveAxis moves axis from to position to, shifting the axes in between.
func MoveAxis(s Store, from, to int, opts ...Option) (*TransformView, error) {
	tf, err := transform.MoveAxis(s.NumDimensions(), from, to)
	if err != nil {
		return nil, err
	}

	return NewView(s, tf, opts...)
}

// Rotate rotates s by 90 degrees in the plane of axes from and to.
func Rotate(s Store, from, to int, opts ...Option) (*TransformView, error) {
	tf, err := transform.Rotate(s.NumDimensions(), from, to)
	if err != nil {
		return nil, err
	}

	return NewView(s, tf, opts...)
}

// Translate shifts s so that source position p appears at p+offset.
func Translate(s Store, offset []int64, opts ...Option) (*TransformView, error) {
	tf, err := transform.Translate(s.NumDimensions(), offset...)
	if err != nil {
		return nil, err
	}

	return NewView(s, tf, opts...)
}

// TranslateInverse shifts s so that source position p appears at p-offset.
func TranslateInverse(s Store, offset []int64, opts ...Option) (*TransformView, error) {
	tf, err := transform.TranslateInverse(s.NumDimensions(), offset...)
	if err != nil {
		return nil, err
	}

	return NewView(s, tf, opts...)
}

// InvertAxis mirrors axis d.
func InvertAxis(s Store, d int, opts ...Option) (*TransformView, error) {
	tf, err := transform.InvertAxis(s.NumDimensions(), d)
	if err != nil {
		return nil, err
	}

	return NewView(s, tf, opts...)
}

// AddDimension appends a new axis. Nothing is attached to it.
func AddDimension(s Store, opts ...Option) (*TransformView, error) {
	return NewView(s, transform.AddDimension(s.NumDimensions()), opts...)
}

// Subsample keeps every steps[d]-th position along axis d; a single step
// applies to every axis.
func Subsample(s Store, steps []int64, opts ...Option) (*SubsampleView, error) {
	return NewSubsampleView(s, steps, opts...)
}
