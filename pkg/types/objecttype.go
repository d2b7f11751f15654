// Package types turns repository-supplied type schema into queryable,
// immutable type objects and caches them per session.
package types

import (
	"fmt"

	"github.com/aretw0/shale/pkg/core"
)

// ObjectType is a queryable view of one repository type. Implementations
// are immutable; the registry hands out the same instance for the same
// type id until the registry is cleared.
type ObjectType interface {
	ID() string
	BaseType() core.BaseType
	// ParentID is empty iff this is a base type.
	ParentID() string
	IsBase() bool
	LocalName() string
	DisplayName() string
	QueryName() string
	Description() string

	// PropertyDefinitions returns all definitions in their wire order.
	PropertyDefinitions() []core.PropertyDefinition
	// PropertyDefinition looks one definition up by property id.
	PropertyDefinition(id string) (core.PropertyDefinition, bool)
}

// defMap is an insertion-preserving property-definition map.
type defMap struct {
	order []string
	byID  map[string]core.PropertyDefinition
}

func newDefMap(defs []core.PropertyDefinition) *defMap {
	m := &defMap{byID: make(map[string]core.PropertyDefinition, len(defs))}
	for _, d := range defs {
		if _, dup := m.byID[d.ID]; dup {
			continue
		}
		m.order = append(m.order, d.ID)
		m.byID[d.ID] = d
	}
	return m
}

func (m *defMap) all() []core.PropertyDefinition {
	defs := make([]core.PropertyDefinition, 0, len(m.order))
	for _, id := range m.order {
		defs = append(defs, m.byID[id])
	}
	return defs
}

type objectType struct {
	data core.TypeData
	defs *defMap
}

func (t *objectType) ID() string                { return t.data.ID }
func (t *objectType) BaseType() core.BaseType   { return t.data.BaseType }
func (t *objectType) ParentID() string          { return t.data.ParentID }
func (t *objectType) IsBase() bool              { return t.data.ParentID == "" }
func (t *objectType) LocalName() string         { return t.data.LocalName }
func (t *objectType) DisplayName() string       { return t.data.DisplayName }
func (t *objectType) QueryName() string         { return t.data.QueryName }
func (t *objectType) Description() string       { return t.data.Description }
func (t *objectType) String() string            { return t.data.ID }

func (t *objectType) PropertyDefinitions() []core.PropertyDefinition { return t.defs.all() }

func (t *objectType) PropertyDefinition(id string) (core.PropertyDefinition, bool) {
	d, ok := t.defs.byID[id]
	return d, ok
}

// DocumentType is the typed view of a document type.
type DocumentType struct{ objectType }

// Versionable reports whether documents of this type can be versioned.
func (t *DocumentType) Versionable() bool { return t.data.Versionable }

// ContentStreamAllowed reports whether documents of this type may, must,
// or must not carry a content stream.
func (t *DocumentType) ContentStreamAllowed() core.ContentStreamAllowed {
	if t.data.ContentStreamAllowed == "" {
		return core.ContentStreamAllowedYes
	}
	return t.data.ContentStreamAllowed
}

// FolderType is the typed view of a folder type.
type FolderType struct{ objectType }

// RelationshipType is the typed view of a relationship type.
type RelationshipType struct{ objectType }

// AllowedSourceTypeIDs lists the type ids allowed as relationship sources;
// empty means unrestricted.
func (t *RelationshipType) AllowedSourceTypeIDs() []string { return t.data.AllowedSourceTypeIDs }

// AllowedTargetTypeIDs lists the type ids allowed as relationship targets;
// empty means unrestricted.
func (t *RelationshipType) AllowedTargetTypeIDs() []string { return t.data.AllowedTargetTypeIDs }

// PolicyType is the typed view of a policy type.
type PolicyType struct{ objectType }

// Convert builds the concrete ObjectType for raw type data, dispatching
// on the base-type tag. An unrecognized tag is a hard error, never a
// fallthrough default. Type data that carries property definitions must
// include the mandatory baseline set.
func Convert(data *core.TypeData) (ObjectType, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: type data is nil", core.ErrInvalidArgument)
	}
	if data.ID == "" {
		return nil, fmt.Errorf("%w: type data has no id", core.ErrInvalidArgument)
	}
	if len(data.PropertyDefinitions) > 0 {
		if err := checkBaseline(data); err != nil {
			return nil, err
		}
	}

	base := objectType{data: *data, defs: newDefMap(data.PropertyDefinitions)}
	switch data.BaseType {
	case core.BaseTypeDocument:
		return &DocumentType{base}, nil
	case core.BaseTypeFolder:
		return &FolderType{base}, nil
	case core.BaseTypeRelationship:
		return &RelationshipType{base}, nil
	case core.BaseTypePolicy:
		return &PolicyType{base}, nil
	default:
		return nil, fmt.Errorf("%w: %q (type %q)", core.ErrUnknownType, data.BaseType, data.ID)
	}
}

func checkBaseline(data *core.TypeData) error {
	present := make(map[string]bool, len(data.PropertyDefinitions))
	for _, d := range data.PropertyDefinitions {
		present[d.ID] = true
	}
	for _, id := range core.BaselinePropertyIDs() {
		if !present[id] {
			return fmt.Errorf("%w: type %q is missing baseline property %q",
				core.ErrInvariant, data.ID, id)
		}
	}
	return nil
}
