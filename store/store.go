package store

import (
	"fmt"
	"iter"
	"reflect"

	"go.uber.org/zap"

	"github.com/arloliu/axmeta/errs"
	"github.com/arloliu/axmeta/meta"
)

// Store is a catalog of metadata items for a space of NumDimensions axes.
type Store interface {
	// NumDimensions returns the dimensionality of the store's space.
	NumDimensions() int

	// Find returns the item called name whose attachment includes every axis in
	// dims and whose value type can be used as typ (any type when typ is nil).
	//
	// A missing item is not an error: Find returns a nil item and a nil error.
	// It returns errs.ErrInvalidAxis if a dim lies outside [0, NumDimensions()).
	Find(name string, typ reflect.Type, dims ...int) (meta.Item, error)

	// Items enumerates the catalog.
	Items() iter.Seq[meta.Item]

	// Add stores item. Read-only stores and views return errs.ErrReadOnly;
	// backends that cannot store items return errs.ErrUnsupported.
	Add(item meta.Item) error

	// Writable reports whether Add can succeed. It never changes over the
	// lifetime of a store.
	Writable() bool
}

// checkDims validates dims against a space of n dimensions.
func checkDims(dims []int, n int) error {
	for _, d := range dims {
		if d < 0 || d >= n {
			return errs.InvalidAxis(d, n)
		}
	}

	return nil
}

// checkItem validates that every axis of item lies within a space of n dimensions.
func checkItem(item meta.Item, n int) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", errs.ErrInvalidItem)
	}
	if item.Name() == "" {
		return fmt.Errorf("%w: empty name", errs.ErrInvalidItem)
	}
	if m := item.Attached().Max(); m >= n {
		return fmt.Errorf("item %q attached: %w", item.Name(), errs.InvalidAxis(m, n))
	}
	if m := item.Varying().Max(); m >= n {
		return fmt.Errorf("item %q varying: %w", item.Name(), errs.InvalidAxis(m, n))
	}

	return nil
}

// matches reports whether item answers a query for name on dims with type typ.
func matches(item meta.Item, name string, typ reflect.Type, dims []int) bool {
	return item.Name() == name && item.Attached().ContainsAll(dims...) && meta.Compatible(item, typ)
}

// exact reports whether item is attached to exactly the axes in dims. It
// assumes matches(item, ...) already holds.
func exact(item meta.Item, dims []int) bool {
	want, err := meta.SortedAxes(dims...)

	return err == nil && want.Len() == item.Attached().Len()
}

// search scans items for the best match: an exact attachment match wins over a
// strict superset, ties go to enumeration order.
func search(items iter.Seq[meta.Item], name string, typ reflect.Type, dims []int) meta.Item {
	var first meta.Item
	for item := range items {
		if !matches(item, name, typ, dims) {
			continue
		}
		if exact(item, dims) {
			return item
		}
		if first == nil {
			first = item
		}
	}

	return first
}

// loggerOf returns the logger carried by s, or a no-op logger.
func loggerOf(s Store) *zap.Logger {
	if l, ok := s.(interface{ Logger() *zap.Logger }); ok && l.Logger() != nil {
		return l.Logger()
	}

	return zap.NewNop()
}
