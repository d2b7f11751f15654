// Package convert maps between raw wire property lists and typed,
// validated Property values. Both directions fail fast: malformed input
// aborts the whole conversion rather than producing a partially
// populated result.
package convert

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/shale/pkg/core"
	"github.com/aretw0/shale/pkg/types"
)

// TypeResolver looks a type up by id. *types.Registry satisfies it.
type TypeResolver interface {
	Get(ctx context.Context, typeID string) (types.ObjectType, error)
}

// Properties converts a raw wire property list into typed properties
// validated against t. Every entry must resolve to a property definition
// on the type, and each entry's declared kind must already match the
// definition's kind; values are never coerced across kinds.
func Properties(t types.ObjectType, data []core.PropertyData) (map[string]*core.Property, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: object type is nil", core.ErrInvalidArgument)
	}
	props := make(map[string]*core.Property, len(data))
	for _, pd := range data {
		def, ok := t.PropertyDefinition(pd.ID)
		if !ok {
			return nil, fmt.Errorf("%w: property %q is not defined on type %q",
				core.ErrInvalidArgument, pd.ID, t.ID())
		}
		if pd.Kind != "" && pd.Kind != def.Kind {
			return nil, fmt.Errorf("%w: property %q came over the wire as %q but is defined as %q",
				core.ErrInvalidArgument, pd.ID, pd.Kind, def.Kind)
		}
		p, err := core.NewProperty(def, pd.Values)
		if err != nil {
			return nil, err
		}
		props[pd.ID] = p
	}
	return props, nil
}

// WireProperties converts a caller-supplied property map into a wire
// property list for t, applying the updatability filter: definitions
// whose updatability is not in allowed are silently skipped, so callers
// may pass a superset of what is writable without failing on read-only
// fields. A nil allowed set disables the filter.
//
// Cardinality is enforced strictly: a sequence for a single-valued
// definition or a scalar for a multi-valued one is an error. A nil value
// clears the property (a wire entry with zero values); a sequence holding
// a nil element is an error. When t is nil the type is resolved from the
// cmis:objectTypeId entry of the map.
func WireProperties(ctx context.Context, props map[string]any, t types.ObjectType,
	resolver TypeResolver, allowed []core.Updatability) ([]core.PropertyData, error) {

	if props == nil {
		return nil, fmt.Errorf("%w: properties must not be nil", core.ErrInvalidArgument)
	}
	if t == nil {
		var err error
		t, err = resolveType(ctx, props, resolver)
		if err != nil {
			return nil, err
		}
	}

	// Deterministic output order keeps wire payloads and tests stable.
	ids := make([]string, 0, len(props))
	for id := range props {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []core.PropertyData
	for _, id := range ids {
		def, ok := t.PropertyDefinition(id)
		if !ok {
			return nil, fmt.Errorf("%w: property %q is not defined on type %q",
				core.ErrInvalidArgument, id, t.ID())
		}
		if allowed != nil && !updatabilityAllowed(def.Updatability, allowed) {
			continue
		}
		values, err := wireValues(id, def, props[id])
		if err != nil {
			return nil, err
		}
		out = append(out, core.PropertyData{ID: id, Kind: def.Kind, Values: values})
	}
	return out, nil
}

func resolveType(ctx context.Context, props map[string]any, resolver TypeResolver) (types.ObjectType, error) {
	raw, ok := props[core.PropertyObjectTypeID]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: type could not be resolved, %s is missing",
			core.ErrInvalidArgument, core.PropertyObjectTypeID)
	}
	var typeID string
	switch v := raw.(type) {
	case string:
		typeID = v
	case *core.Property:
		typeID, _ = v.First().(string)
	}
	if typeID == "" {
		return nil, fmt.Errorf("%w: %s is not a string", core.ErrInvalidArgument, core.PropertyObjectTypeID)
	}
	if resolver == nil {
		return nil, fmt.Errorf("%w: no type resolver available", core.ErrInvalidArgument)
	}
	return resolver.Get(ctx, typeID)
}

func updatabilityAllowed(u core.Updatability, allowed []core.Updatability) bool {
	for _, a := range allowed {
		if a == u {
			return true
		}
	}
	return false
}

// wireValues normalizes one caller value into a validated wire value list.
func wireValues(id string, def core.PropertyDefinition, value any) ([]any, error) {
	// nil clears the property rather than omitting it.
	if value == nil {
		return nil, nil
	}

	// An already-typed Property must agree with the key it was filed
	// under; its value list is re-validated against the target definition.
	if p, ok := value.(*core.Property); ok {
		if p.ID() != id {
			return nil, fmt.Errorf("%w: property %q was supplied under key %q",
				core.ErrInvalidArgument, p.ID(), id)
		}
		vals := anySlice(p.Values())
		if def.Cardinality == core.Single && len(vals) > 1 {
			return nil, fmt.Errorf("%w: property %q is single-valued but holds %d values",
				core.ErrInvalidArgument, id, len(vals))
		}
		for _, v := range vals {
			if err := core.CheckValue(def.Kind, v); err != nil {
				return nil, fmt.Errorf("property %q: %w", id, err)
			}
		}
		return vals, nil
	}

	if seq, isSeq := asSequence(value); isSeq {
		if def.Cardinality == core.Single {
			return nil, fmt.Errorf("%w: property %q is single-valued but a sequence was given",
				core.ErrInvalidArgument, id)
		}
		for _, v := range seq {
			if v == nil {
				return nil, fmt.Errorf("%w: property %q sequence contains a null element",
					core.ErrInvalidArgument, id)
			}
			if err := core.CheckValue(def.Kind, v); err != nil {
				return nil, fmt.Errorf("property %q: %w", id, err)
			}
		}
		return seq, nil
	}

	if def.Cardinality == core.Multi {
		return nil, fmt.Errorf("%w: property %q is multi-valued but a scalar was given",
			core.ErrInvalidArgument, id)
	}
	if err := core.CheckValue(def.Kind, value); err != nil {
		return nil, fmt.Errorf("property %q: %w", id, err)
	}
	return []any{value}, nil
}

// asSequence unwraps the slice forms callers commonly pass.
func asSequence(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []int64:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	case []bool:
		out := make([]any, len(v))
		for i, b := range v {
			out[i] = b
		}
		return out, true
	case []float64:
		out := make([]any, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out, true
	case []time.Time:
		out := make([]any, len(v))
		for i, t := range v {
			out[i] = t
		}
		return out, true
	}
	return nil, false
}

func anySlice(values []any) []any {
	out := make([]any, len(values))
	copy(out, values)
	return out
}
