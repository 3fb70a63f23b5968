package store

import (
	"iter"

	"github.com/arloliu/axmeta/meta"
)

// Get looks up the item called name on dims and types it as T.
//
// A missing item, or one whose values cannot be used as T, yields an absent
// result and a nil error. The error is reserved for invalid queries such as an
// out-of-range axis.
func Get[T any](s Store, name string, dims ...int) (meta.Result[T], error) {
	item, err := s.Find(name, meta.TypeOf[T](), dims...)
	if err != nil {
		return meta.Absent[T](name, dims...), err
	}
	if item == nil {
		return meta.Absent[T](name, dims...), nil
	}

	return meta.PresentOf[T](item), nil
}

// Lookup is the untyped form of Get: any value type matches.
func Lookup(s Store, name string, dims ...int) (meta.Result[any], error) {
	item, err := s.Find(name, nil, dims...)
	if err != nil || item == nil {
		return meta.Absent[any](name, dims...), err
	}

	return meta.PresentOf[any](item), nil
}

// ByAxis enumerates the items of s attached to axis d.
func ByAxis(s Store, d int) iter.Seq[meta.Item] {
	return filter(s.Items(), func(item meta.Item) bool {
		return item.Attached().Contains(d)
	})
}

// ByName enumerates the items of s called name, whatever their attachment.
func ByName(s Store, name string) iter.Seq[meta.Item] {
	return filter(s.Items(), func(item meta.Item) bool {
		return item.Name() == name
	})
}

// Collect returns every item of s in enumeration order.
func Collect(s Store) []meta.Item {
	var items []meta.Item
	for item := range s.Items() {
		items = append(items, item)
	}

	return items
}

func filter(seq iter.Seq[meta.Item], keep func(meta.Item) bool) iter.Seq[meta.Item] {
	return func(yield func(meta.Item) bool) {
		for item := range seq {
			if keep(item) && !yield(item) {
				return
			}
		}
	}
}
