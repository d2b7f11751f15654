// Package core holds the domain model shared by every layer of shale:
// the wire-level data structures a binding produces, the typed Property
// model, and the binding contract itself.
package core

// BaseType identifies one of the four root type categories of a
// repository. Base types have no parent type.
type BaseType string

const (
	BaseTypeDocument     BaseType = "cmis:document"
	BaseTypeFolder       BaseType = "cmis:folder"
	BaseTypeRelationship BaseType = "cmis:relationship"
	BaseTypePolicy       BaseType = "cmis:policy"
)

// Valid reports whether the tag names a base type this runtime knows.
func (b BaseType) Valid() bool {
	switch b {
	case BaseTypeDocument, BaseTypeFolder, BaseTypeRelationship, BaseTypePolicy:
		return true
	}
	return false
}

// PropertyKind is the value kind of a property definition.
type PropertyKind string

const (
	KindBoolean  PropertyKind = "boolean"
	KindDateTime PropertyKind = "datetime"
	KindDecimal  PropertyKind = "decimal"
	KindHTML     PropertyKind = "html"
	KindID       PropertyKind = "id"
	KindInteger  PropertyKind = "integer"
	KindString   PropertyKind = "string"
	KindURI      PropertyKind = "uri"
)

// Cardinality says whether a property holds at most one value or any number.
type Cardinality string

const (
	Single Cardinality = "single"
	Multi  Cardinality = "multi"
)

// Updatability says when a property may be written.
type Updatability string

const (
	ReadOnly       Updatability = "readonly"
	ReadWrite      Updatability = "readwrite"
	OnCreate       Updatability = "oncreate"
	WhenCheckedOut Updatability = "whencheckedout"
)

// RelationshipDirection selects which related relationships a fetch includes.
type RelationshipDirection string

const (
	RelationshipsNone   RelationshipDirection = "none"
	RelationshipsSource RelationshipDirection = "source"
	RelationshipsTarget RelationshipDirection = "target"
	RelationshipsBoth   RelationshipDirection = "both"
)

// ContentStreamAllowed describes whether a document type permits a
// content stream.
type ContentStreamAllowed string

const (
	ContentStreamNotAllowed ContentStreamAllowed = "notallowed"
	ContentStreamAllowedYes ContentStreamAllowed = "allowed"
	ContentStreamRequired   ContentStreamAllowed = "required"
)

// Standard property ids. Every concrete type exposes at least the nine
// baseline properties; folders and fileable objects add a few of their own.
const (
	PropertyID                   = "cmis:objectId"
	PropertyBaseTypeID           = "cmis:baseTypeId"
	PropertyObjectTypeID         = "cmis:objectTypeId"
	PropertyName                 = "cmis:name"
	PropertyCreatedBy            = "cmis:createdBy"
	PropertyCreationDate         = "cmis:creationDate"
	PropertyLastModifiedBy       = "cmis:lastModifiedBy"
	PropertyLastModificationDate = "cmis:lastModificationDate"
	PropertyChangeToken          = "cmis:changeToken"
	PropertyPath                 = "cmis:path"
	PropertyParentID             = "cmis:parentId"
)

// BaselinePropertyIDs returns the mandatory property ids every concrete
// type definition must carry.
func BaselinePropertyIDs() []string {
	return []string{
		PropertyID,
		PropertyBaseTypeID,
		PropertyObjectTypeID,
		PropertyName,
		PropertyCreatedBy,
		PropertyCreationDate,
		PropertyLastModifiedBy,
		PropertyLastModificationDate,
		PropertyChangeToken,
	}
}

// Filter terms with special meaning on the wire.
const (
	FilterAll           = "*"
	RenditionFilterNone = "cmis:none"
)
