// Package axmeta catalogs the metadata of N-dimensional datasets and keeps it
// correct while the data is viewed through coordinate transforms.
//
// A dataset's metadata, such as axis labels, per-channel tables or acquisition
// attributes, lives in a store. Slicing, rotating, permuting or subsampling the
// data derives a view of the store in which every item is re-expressed in the
// new coordinates without copying:
//
//	s, _ := axmeta.NewStore(5)
//	_ = s.Add(meta.MustConstant("axis", "C", 3))
//
//	view, err := axmeta.On(s).Rotate(3, 2).Slice(4, 0).Store()
//	label, _ := axmeta.Get[string](view, "axis", 2)
//	fmt.Println(label.ValueOr("?")) // C
//
// # Package Structure
//
// This package offers top-level shortcuts for the common cases. The building
// blocks live in subpackages:
//
//   - transform: the axis transform algebra (slice, rotate, translate, ...)
//   - meta: items, typed lookup results and item views
//   - store: the store contract, the in-memory store and store views
//   - info: accessor bundles resolved by name
//   - snapshot: a compact binary container for catalogs
//
// # Absent Values
//
// A lookup that finds nothing is not an error. Get returns an absent result
// that yields a default through ValueOr or Or; errors are reserved for invalid
// queries such as an axis outside the store.
package axmeta

import (
	"github.com/arloliu/axmeta/info"
	"github.com/arloliu/axmeta/meta"
	"github.com/arloliu/axmeta/snapshot"
	"github.com/arloliu/axmeta/store"
)

// NewStore creates a writable in-memory store for numDims dimensions.
func NewStore(numDims int, opts ...store.Option) (*store.Memory, error) {
	return store.New(numDims, opts...)
}

// Get looks up the item called name on dims, typed as T.
func Get[T any](s store.Store, name string, dims ...int) (meta.Result[T], error) {
	return store.Get[T](s, name, dims...)
}

// Attributes resolves the attribute bundle of s.
func Attributes(s store.Store) (*info.Attributes, error) {
	return info.As[*info.Attributes](info.KindAttributes, s)
}

// Snapshot encodes s into a snapshot.
func Snapshot(s store.Store, opts ...snapshot.Option) ([]byte, error) {
	return snapshot.Encode(s, opts...)
}

// OpenSnapshot opens a snapshot as a read-only store.
func OpenSnapshot(data []byte, opts ...snapshot.Option) (*snapshot.Reader, error) {
	return snapshot.Open(data, opts...)
}

// Chain derives views step by step. The first failing step is kept and every
// later step is skipped; Store reports it.
type Chain struct {
	s    store.Store
	opts []store.Option
	err  error
}

// On starts a chain of views over s. The options are passed to every view.
func On(s store.Store, opts ...store.Option) *Chain {
	return &Chain{s: s, opts: opts}
}

func (c *Chain) then(next func(store.Store) (store.Store, error)) *Chain {
	if c.err != nil {
		return c
	}
	v, err := next(c.s)
	if err != nil {
		c.err = err
		return c
	}
	c.s = v

	return c
}

// Slice fixes axis d at pos and drops it.
func (c *Chain) Slice(d int, pos int64) *Chain {
	return c.then(func(s store.Store) (store.Store, error) { return store.Slice(s, d, pos, c.opts...) })
}

// Permute swaps axes a and b.
func (c *Chain) Permute(a, b int) *Chain {
	return c.then(func(s store.Store) (store.Store, error) { return store.Permute(s, a, b, c.opts...) })
}

// MoveAxis moves axis from to position to.
func (c *Chain) MoveAxis(from, to int) *Chain {
	return c.then(func(s store.Store) (store.Store, error) { return store.MoveAxis(s, from, to, c.opts...) })
}

// Rotate rotates by 90 degrees in the plane of axes from and to.
func (c *Chain) Rotate(from, to int) *Chain {
	return c.then(func(s store.Store) (store.Store, error) { return store.Rotate(s, from, to, c.opts...) })
}

// Translate shifts every axis by offset.
func (c *Chain) Translate(offset ...int64) *Chain {
	return c.then(func(s store.Store) (store.Store, error) { return store.Translate(s, offset, c.opts...) })
}

// TranslateInverse shifts every axis by -offset.
func (c *Chain) TranslateInverse(offset ...int64) *Chain {
	return c.then(func(s store.Store) (store.Store, error) { return store.TranslateInverse(s, offset, c.opts...) })
}

// InvertAxis mirrors axis d.
func (c *Chain) InvertAxis(d int) *Chain {
	return c.then(func(s store.Store) (store.Store, error) { return store.InvertAxis(s, d, c.opts...) })
}

// AddDimension appends an axis without metadata.
func (c *Chain) AddDimension() *Chain {
	return c.then(func(s store.Store) (store.Store, error) { return store.AddDimension(s, c.opts...) })
}

// Subsample keeps every steps[d]-th position along axis d.
func (c *Chain) Subsample(steps ...int64) *Chain {
	return c.then(func(s store.Store) (store.Store, error) { return store.Subsample(s, steps, c.opts...) })
}

// Store returns the final view, or the error of the first failing step.
func (c *Chain) Store() (store.Store, error) {
	if c.err != nil {
		return nil, c.err
	}

	return c.s, nil
}

// Err returns the error of the first failing step.
func (c *Chain) Err() error {
	return c.err
}
