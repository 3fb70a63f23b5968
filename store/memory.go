package store

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/internal/hash"
	"github.com/arloliu/axmeta/meta"
)

// Memory is a root store holding its items in memory.
//
// Items are identified by (name, attached axes): adding an item under an existing
// key replaces the earlier one in place, keeping its enumeration position.
type Memory struct {
	numDims  int
	items    []meta.Item
	keys     map[uint64][]int // item key hash -> positions in items
	readOnly bool
	logger   *zap.Logger
}

var _ Store = (*Memory)(nil)

// New creates a root store for a space of numDims dimensions.
//
// Parameters:
//   - numDims: Dimensionality of the space (must not be negative)
//   - opts: WithCapacity, WithReadOnly, WithLogger
//
// Returns:
//   - *Memory: The created store, writable unless WithReadOnly was given
//   - error: errs.ErrDimensionMismatch for a negative numDims, or an error for an
//     invalid option or an invalid initial item
func New(numDims int, opts ...Option) (*Memory, error) {
	if numDims < 0 {
		return nil, fmt.Errorf("%w: negative dimensionality %d", errs.ErrDimensionMismatch, numDims)
	}

	cfg, err := newConfig(zap.NewNop(), opts)
	if err != nil {
		return nil, err
	}

	m := &Memory{
		numDims: numDims,
		items:   make([]meta.Item, 0, max(cfg.capacity, len(cfg.initial))),
		keys:    make(map[uint64][]int, max(cfg.capacity, len(cfg.initial))),
		logger:  cfg.logger,
	}
	for _, item := range cfg.initial {
		if err := m.put(item); err != nil {
			return nil, err
		}
	}
	m.readOnly = cfg.readOnly

	return m, nil
}

// NumDimensions implements Store.
func (m *Memory) NumDimensions() int {
	return m.numDims
}

// Writable implements Store.
func (m *Memory) Writable() bool {
	return !m.readOnly
}

// Logger returns the store's logger.
func (m *Memory) Logger() *zap.Logger {
	return m.logger
}

// Len returns the number of items.
func (m *Memory) Len() int {
	return len(m.items)
}

// Add implements Store.
//
// Returns errs.ErrReadOnly for a read-only store, errs.ErrInvalidItem for a nil
// or unnamed item and errs.ErrInvalidAxis for an axis outside the store.
func (m *Memory) Add(item meta.Item) error {
	if m.readOnly {
		return errs.ErrReadOnly
	}

	return m.put(item)
}

func (m *Memory) put(item meta.Item) error {
	if err := checkItem(item, m.numDims); err != nil {
		return err
	}

	key := hash.ItemKey(item.Name(), item.Attached().Slice())
	if pos, ok := m.lookupKey(key, item.Name(), item.Attached()); ok {
		m.items[pos] = item
		return nil
	}

	m.keys[key] = append(m.keys[key], len(m.items))
	m.items = append(m.items, item)

	return nil
}

func (m *Memory) lookupKey(key uint64, name string, attached meta.Axes) (int, bool) {
	for _, pos := range m.keys[key] {
		it := m.items[pos]
		if it.Name() == name && it.Attached().Equal(attached) {
			return pos, true
		}
	}

	return -1, false
}

// Remove deletes the item stored under (name, attached) and reports whether one
// existed.
//
// Returns errs.ErrReadOnly for a read-only store.
func (m *Memory) Remove(name string, attached ...int) (bool, error) {
	if m.readOnly {
		return false, errs.ErrReadOnly
	}
	axes, err := meta.NewAxes(attached...)
	if err != nil {
		return false, err
	}

	pos, ok := m.lookupKey(hash.ItemKey(name, axes.Slice()), name, axes)
	if !ok {
		return false, nil
	}

	m.items = slices.Delete(m.items, pos, pos+1)
	m.reindex()

	return true, nil
}

func (m *Memory) reindex() {
	clear(m.keys)
	for pos, item := range m.items {
		key := hash.ItemKey(item.Name(), item.Attached().Slice())
		m.keys[key] = append(m.keys[key], pos)
	}
}

// Find implements Store.
func (m *Memory) Find(name string, typ reflect.Type, dims ...int) (meta.Item, error) {
	if err := checkDims(dims, m.numDims); err != nil {
		return nil, err
	}

	if want, err := meta.SortedAxes(dims...); err == nil {
		pos, ok := m.lookupKey(hash.ItemKey(name, want.Slice()), name, want)
		if ok && meta.Compatible(m.items[pos], typ) {
			return m.items[pos], nil
		}
	}

	return search(slices.Values(m.items), name, typ, dims), nil
}

// Items implements Store. Items are enumerated in insertion order.
func (m *Memory) Items() iter.Seq[meta.Item] {
	return func(yield func(meta.Item) bool) {
		for _, item := range m.items {
			if !yield(item) {
				return
			}
		}
	}
}
