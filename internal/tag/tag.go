// Package tag provides a typed wrapper for values drawn from small enumerated
// label sets. Food groups and freshness states both use it, and a new set only
// needs a type with a DisplayName method and a Domain listing its values.
package tag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Tag is any enumerated value with a stable display name.
type Tag interface {
	comparable
	DisplayName() string
}

// Domain is the closed set of values a tag type can take.
type Domain[T Tag] struct {
	Name   string
	Values []T
}

// UnknownTagError is returned when a display name matches no value in a
// domain. It usually means stored data no longer matches the known labels.
type UnknownTagError struct {
	Domain string
	Name   string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown %s tag %q", e.Domain, e.Name)
}

// Generic holds exactly one value of a tag domain. The zero value is unset.
type Generic[T Tag] struct {
	value T
	set   bool
}

// Wrap returns a Generic holding v.
func Wrap[T Tag](v T) Generic[T] {
	return Generic[T]{value: v, set: true}
}

// Copy returns a copy of other. It reports false, and returns an unset
// Generic, when other is nil or unset.
func Copy[T Tag](other *Generic[T]) (Generic[T], bool) {
	if other == nil || !other.set {
		return Generic[T]{}, false
	}
	return Generic[T]{value: other.value, set: true}, true
}

// Value returns the wrapped value and whether one is set.
func (g Generic[T]) Value() (T, bool) {
	return g.value, g.set
}

// IsSet reports whether g holds a value.
func (g Generic[T]) IsSet() bool {
	return g.set
}

// String returns the wrapped value's display name, or "" when unset.
func (g Generic[T]) String() string {
	if !g.set {
		return ""
	}
	return g.value.DisplayName()
}

// Equal reports whether g and other wrap the same value.
func (g Generic[T]) Equal(other Generic[T]) bool {
	return g.set == other.set && g.value == other.value
}

// Compare orders tags by display name. Unset tags sort first.
func (g Generic[T]) Compare(other Generic[T]) int {
	switch {
	case !g.set && !other.set:
		return 0
	case !g.set:
		return -1
	case !other.set:
		return 1
	}
	return cmp.Compare(g.String(), other.String())
}

// FromDisplayName finds the value in d whose display name matches name,
// ignoring case. It returns *UnknownTagError when nothing matches.
func FromDisplayName[T Tag](d Domain[T], name string) (Generic[T], error) {
	for _, v := range d.Values {
		if strings.EqualFold(v.DisplayName(), name) {
			return Wrap(v), nil
		}
	}
	return Generic[T]{}, &UnknownTagError{Domain: d.Name, Name: name}
}

// Contains reports whether v is one of d's values. Tag types are usually
// string kinds, so a converted string can hold a value outside its domain.
func (d Domain[T]) Contains(v T) bool {
	return slices.Contains(d.Values, v)
}

// Names returns the display names of every value in d, in declaration order.
func (d Domain[T]) Names() []string {
	names := make([]string, len(d.Values))
	for i, v := range d.Values {
		names[i] = v.DisplayName()
	}
	return names
}
