// Package typed provides generic, type-safe views over the untyped
// property values of repository objects.
package typed

import "github.com/aretw0/shale/pkg/core"

// PropertyHolder is anything that exposes typed properties by id. The
// session's Object family satisfies it.
type PropertyHolder interface {
	Property(id string) (*core.Property, bool)
}

// First returns the first value of a property as T. The second result is
// false when the property is absent, unset, or not a T.
func First[T any](holder PropertyHolder, id string) (T, bool) {
	var zero T
	p, ok := holder.Property(id)
	if !ok {
		return zero, false
	}
	v, ok := p.First().(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Values returns all values of a property that are of type T, in order.
// Absent properties yield nil.
func Values[T any](holder PropertyHolder, id string) []T {
	p, ok := holder.Property(id)
	if !ok {
		return nil
	}
	var out []T
	for _, raw := range p.Values() {
		if v, ok := raw.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
