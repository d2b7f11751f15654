package core

// Wire-level data transfer structures. Both bindings (AtomPub-style and
// SOAP-style) decode their payloads into these; the session layer never
// sees anything closer to the wire. The YAML tags let fixture-backed
// bindings load the same structures straight from files.

// PropertyDefinition describes a single property of a type. Immutable
// once created.
type PropertyDefinition struct {
	ID           string       `yaml:"id"`
	LocalName    string       `yaml:"localName,omitempty"`
	DisplayName  string       `yaml:"displayName,omitempty"`
	QueryName    string       `yaml:"queryName,omitempty"`
	Description  string       `yaml:"description,omitempty"`
	Kind         PropertyKind `yaml:"kind"`
	Cardinality  Cardinality  `yaml:"cardinality"`
	Updatability Updatability `yaml:"updatability"`
	Required     bool         `yaml:"required,omitempty"`
	Queryable    bool         `yaml:"queryable,omitempty"`
	Orderable    bool         `yaml:"orderable,omitempty"`
	Inherited    bool         `yaml:"inherited,omitempty"`
}

// TypeData is the raw type definition as a binding delivers it. The type
// registry converts it into a typed ObjectType; nothing above the
// registry consumes TypeData directly.
type TypeData struct {
	ID          string   `yaml:"id"`
	LocalName   string   `yaml:"localName,omitempty"`
	DisplayName string   `yaml:"displayName,omitempty"`
	QueryName   string   `yaml:"queryName,omitempty"`
	Description string   `yaml:"description,omitempty"`
	BaseType    BaseType `yaml:"baseType"`
	// ParentID is empty iff this is a base type.
	ParentID  string `yaml:"parentType,omitempty"`
	Creatable bool   `yaml:"creatable,omitempty"`
	Fileable  bool   `yaml:"fileable,omitempty"`
	Queryable bool   `yaml:"queryable,omitempty"`

	// Document types only.
	Versionable          bool                 `yaml:"versionable,omitempty"`
	ContentStreamAllowed ContentStreamAllowed `yaml:"contentStreamAllowed,omitempty"`

	// Relationship types only.
	AllowedSourceTypeIDs []string `yaml:"allowedSourceTypes,omitempty"`
	AllowedTargetTypeIDs []string `yaml:"allowedTargetTypes,omitempty"`

	// Ordered; insertion order is preserved all the way into ObjectType.
	PropertyDefinitions []PropertyDefinition `yaml:"propertyDefinitions,omitempty"`
}

// TypeContainer is one node of a type-descendants tree.
type TypeContainer struct {
	Type     *TypeData
	Children []*TypeContainer
}

// TypeList is one page of type definitions.
type TypeList struct {
	Types []*TypeData
	// NumItems is the declared total, or -1 when the repository does not
	// report one.
	NumItems int64
	HasMore  bool
}

// PropertyData is a single raw property entry: id, declared kind, and
// zero or more values. A nil/empty Values list clears the property.
type PropertyData struct {
	ID     string       `yaml:"id"`
	Kind   PropertyKind `yaml:"kind,omitempty"`
	Values []any        `yaml:"values,omitempty"`
}

// ACE is one access-control entry.
type ACE struct {
	Principal   string   `yaml:"principal"`
	Permissions []string `yaml:"permissions"`
	Direct      bool     `yaml:"direct,omitempty"`
}

// ACL is an object's access-control list, passed through untouched.
type ACL struct {
	ACEs  []ACE `yaml:"aces"`
	Exact bool  `yaml:"exact,omitempty"`
}

// Rendition is a rendition descriptor. Shale only carries these; it never
// generates or fetches rendition content.
type Rendition struct {
	StreamID string `yaml:"streamId"`
	Kind     string `yaml:"kind"`
	MimeType string `yaml:"mimeType"`
	Length   int64  `yaml:"length,omitempty"`
	Title    string `yaml:"title,omitempty"`
	Width    int64  `yaml:"width,omitempty"`
	Height   int64  `yaml:"height,omitempty"`
}

// ObjectData is the raw object representation a binding delivers. Which
// of the optional parts are populated depends on the inclusion flags of
// the request.
type ObjectData struct {
	Properties       []PropertyData
	AllowableActions []string
	ACL              *ACL
	Renditions       []Rendition
	PolicyIDs        []string
	Relationships    []*ObjectData
	// PathSegment is set on children listings when path segments were
	// requested.
	PathSegment string
}

// Property returns the raw values for a property id, or nil if absent.
func (d *ObjectData) Property(id string) []any {
	for i := range d.Properties {
		if d.Properties[i].ID == id {
			return d.Properties[i].Values
		}
	}
	return nil
}

// FirstString returns the first value of a property as a string, or ""
// when the property is absent, empty, or not a string.
func (d *ObjectData) FirstString(id string) string {
	values := d.Property(id)
	if len(values) == 0 {
		return ""
	}
	s, _ := values[0].(string)
	return s
}

// ObjectList is one page of objects, e.g. a folder-children slice.
type ObjectList struct {
	Objects []*ObjectData
	// NumItems is the declared total, or -1 when the repository does not
	// report one.
	NumItems int64
	HasMore  bool
}

// RepositoryInfo describes a repository the binding is connected to.
type RepositoryInfo struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name,omitempty"`
	Description  string `yaml:"description,omitempty"`
	RootFolderID string `yaml:"rootFolderId"`
	ProductName  string `yaml:"productName,omitempty"`
	VendorName   string `yaml:"vendorName,omitempty"`
	CMISVersion  string `yaml:"cmisVersion,omitempty"`
}
