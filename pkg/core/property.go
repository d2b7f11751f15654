package core

import (
	"fmt"
	"time"
)

// Property is a typed property instance bound to one PropertyDefinition.
// It holds zero or more values of the definition's kind. A property on a
// single-cardinality definition never holds more than one value; the
// constructor enforces that, so a Property can be shared freely once built.
type Property struct {
	def    PropertyDefinition
	values []any
}

// NewProperty builds a Property after validating cardinality and value
// kinds against the definition. Values are never coerced: each element
// must already have the Go representation of the definition's kind.
func NewProperty(def PropertyDefinition, values []any) (*Property, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("%w: property definition has no id", ErrInvalidArgument)
	}
	if def.Cardinality == Single && len(values) > 1 {
		return nil, fmt.Errorf("%w: property %q is single-valued but %d values were given",
			ErrInvalidArgument, def.ID, len(values))
	}
	for _, v := range values {
		if v == nil {
			return nil, fmt.Errorf("%w: property %q contains a null value", ErrInvalidArgument, def.ID)
		}
		if err := CheckValue(def.Kind, v); err != nil {
			return nil, fmt.Errorf("property %q: %w", def.ID, err)
		}
	}
	// Copy so later mutation of the caller's slice cannot leak in.
	vals := make([]any, len(values))
	copy(vals, values)
	return &Property{def: def, values: vals}, nil
}

// ID returns the property id.
func (p *Property) ID() string { return p.def.ID }

// Definition returns the definition this property was constructed against.
func (p *Property) Definition() PropertyDefinition { return p.def }

// First returns the first value, or nil when the property is unset.
func (p *Property) First() any {
	if len(p.values) == 0 {
		return nil
	}
	return p.values[0]
}

// Values returns all values. The returned slice must not be mutated.
func (p *Property) Values() []any { return p.values }

// IsSet reports whether the property holds at least one value.
func (p *Property) IsSet() bool { return len(p.values) > 0 }

func (p *Property) String() string {
	return fmt.Sprintf("%s=%v", p.def.ID, p.values)
}

// CheckValue verifies that a raw value has the Go representation expected
// for the given kind: bool, time.Time, float64, int64, or string.
func CheckValue(kind PropertyKind, v any) error {
	ok := false
	switch kind {
	case KindBoolean:
		_, ok = v.(bool)
	case KindDateTime:
		_, ok = v.(time.Time)
	case KindDecimal:
		_, ok = v.(float64)
	case KindInteger:
		_, ok = v.(int64)
	case KindString, KindID, KindHTML, KindURI:
		_, ok = v.(string)
	default:
		return fmt.Errorf("%w: unknown property kind %q", ErrInvalidArgument, kind)
	}
	if !ok {
		return fmt.Errorf("%w: value %v (%T) does not match kind %q", ErrInvalidArgument, v, v, kind)
	}
	return nil
}
