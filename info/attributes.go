package info

import (
	"fmt"

	"github.com/arloliu/axmeta/meta"
	"github.com/arloliu/axmeta/store"
)

// KindAttributes is the kind of the built-in Attributes bundle.
const KindAttributes = "attributes"

// Attributes reads the items of a store that are attached to no axis, such as
// a dataset title or an acquisition date.
type Attributes struct {
	s store.Store
}

var _ Info = (*Attributes)(nil)

// NewAttributes binds an Attributes bundle to s. It is the Factory registered
// under KindAttributes.
func NewAttributes(s store.Store) (Info, error) {
	if s == nil {
		return nil, fmt.Errorf("info: %s bundle needs a store", KindAttributes)
	}

	return &Attributes{s: s}, nil
}

func (a *Attributes) Kind() string       { return KindAttributes }
func (a *Attributes) Store() store.Store { return a.s }

// Get returns the attachment-free item called name.
func (a *Attributes) Get(name string) (meta.Item, bool) {
	item, err := a.s.Find(name, nil)
	if err != nil || item == nil || !item.Attached().IsEmpty() {
		return nil, false
	}

	return item, true
}

// String returns the attribute called name if it holds a string.
func (a *Attributes) String(name string) (string, bool) {
	item, ok := a.Get(name)
	if !ok {
		return "", false
	}
	s, ok := item.Value().(string)

	return s, ok
}

// StringOr returns the string attribute called name, or def.
func (a *Attributes) StringOr(name, def string) string {
	if s, ok := a.String(name); ok {
		return s
	}

	return def
}

// Names returns the names of all attributes in enumeration order.
func (a *Attributes) Names() []string {
	var names []string
	for item := range a.s.Items() {
		if item.Attached().IsEmpty() {
			names = append(names, item.Name())
		}
	}

	return names
}

// Map returns every attribute value keyed by name. A later item with the same
// name replaces an earlier one.
func (a *Attributes) Map() map[string]any {
	m := make(map[string]any)
	for item := range a.s.Items() {
		if item.Attached().IsEmpty() {
			m[item.Name()] = item.Value()
		}
	}

	return m
}
