package memory

import "github.com/aretw0/shale/pkg/core"

// Base type definitions seeded into every repository. Each carries the
// full baseline property set so converted types pass the completeness
// check on the client side.

func baselineDefinitions() []core.PropertyDefinition {
	def := func(id string, kind core.PropertyKind, updatability core.Updatability) core.PropertyDefinition {
		return core.PropertyDefinition{
			ID:           id,
			LocalName:    id,
			DisplayName:  id,
			QueryName:    id,
			Kind:         kind,
			Cardinality:  core.Single,
			Updatability: updatability,
			Queryable:    true,
		}
	}
	return []core.PropertyDefinition{
		def(core.PropertyID, core.KindID, core.ReadOnly),
		def(core.PropertyBaseTypeID, core.KindID, core.ReadOnly),
		def(core.PropertyObjectTypeID, core.KindID, core.OnCreate),
		def(core.PropertyName, core.KindString, core.ReadWrite),
		def(core.PropertyCreatedBy, core.KindString, core.ReadOnly),
		def(core.PropertyCreationDate, core.KindDateTime, core.ReadOnly),
		def(core.PropertyLastModifiedBy, core.KindString, core.ReadOnly),
		def(core.PropertyLastModificationDate, core.KindDateTime, core.ReadOnly),
		def(core.PropertyChangeToken, core.KindString, core.ReadOnly),
	}
}

func documentBaseType() *core.TypeData {
	return &core.TypeData{
		ID:                   string(core.BaseTypeDocument),
		LocalName:            "document",
		DisplayName:          "Document",
		QueryName:            string(core.BaseTypeDocument),
		Description:          "Document base type",
		BaseType:             core.BaseTypeDocument,
		Creatable:            true,
		Fileable:             true,
		Queryable:            true,
		Versionable:          false,
		ContentStreamAllowed: core.ContentStreamAllowedYes,
		PropertyDefinitions: append(baselineDefinitions(),
			core.PropertyDefinition{
				ID: propertyIsVersionSeriesCheckedOut, LocalName: "isVersionSeriesCheckedOut",
				DisplayName: "Is Version Series Checked Out", QueryName: propertyIsVersionSeriesCheckedOut,
				Kind: core.KindBoolean, Cardinality: core.Single, Updatability: core.ReadOnly,
			}),
	}
}

func folderBaseType() *core.TypeData {
	return &core.TypeData{
		ID:          string(core.BaseTypeFolder),
		LocalName:   "folder",
		DisplayName: "Folder",
		QueryName:   string(core.BaseTypeFolder),
		Description: "Folder base type",
		BaseType:    core.BaseTypeFolder,
		Creatable:   true,
		Fileable:    true,
		Queryable:   true,
		PropertyDefinitions: append(baselineDefinitions(),
			core.PropertyDefinition{
				ID: core.PropertyPath, LocalName: "path", DisplayName: "Path",
				QueryName: core.PropertyPath, Kind: core.KindString,
				Cardinality: core.Single, Updatability: core.ReadOnly,
			},
			core.PropertyDefinition{
				ID: core.PropertyParentID, LocalName: "parentId", DisplayName: "Parent Id",
				QueryName: core.PropertyParentID, Kind: core.KindID,
				Cardinality: core.Single, Updatability: core.ReadOnly,
			}),
	}
}

// RelationshipBaseType returns a relationship base type definition
// suitable for RegisterType. It is not seeded by default because most
// repositories do not use relationships.
func RelationshipBaseType() *core.TypeData {
	return &core.TypeData{
		ID:          string(core.BaseTypeRelationship),
		LocalName:   "relationship",
		DisplayName: "Relationship",
		QueryName:   string(core.BaseTypeRelationship),
		Description: "Relationship base type",
		BaseType:    core.BaseTypeRelationship,
		Creatable:   true,
		PropertyDefinitions: append(baselineDefinitions(),
			core.PropertyDefinition{
				ID: propertySourceID, LocalName: "sourceId", DisplayName: "Source Id",
				QueryName: propertySourceID, Kind: core.KindID,
				Cardinality: core.Single, Updatability: core.OnCreate, Required: true,
			},
			core.PropertyDefinition{
				ID: propertyTargetID, LocalName: "targetId", DisplayName: "Target Id",
				QueryName: propertyTargetID, Kind: core.KindID,
				Cardinality: core.Single, Updatability: core.OnCreate, Required: true,
			}),
	}
}

// PolicyBaseType returns a policy base type definition suitable for
// RegisterType.
func PolicyBaseType() *core.TypeData {
	return &core.TypeData{
		ID:          string(core.BaseTypePolicy),
		LocalName:   "policy",
		DisplayName: "Policy",
		QueryName:   string(core.BaseTypePolicy),
		Description: "Policy base type",
		BaseType:    core.BaseTypePolicy,
		Creatable:   true,
		PropertyDefinitions: append(baselineDefinitions(),
			core.PropertyDefinition{
				ID: "cmis:policyText", LocalName: "policyText", DisplayName: "Policy Text",
				QueryName: "cmis:policyText", Kind: core.KindString,
				Cardinality: core.Single, Updatability: core.OnCreate,
			}),
	}
}

const (
	propertyIsVersionSeriesCheckedOut = "cmis:isVersionSeriesCheckedOut"
	propertySourceID                  = "cmis:sourceId"
	propertyTargetID                  = "cmis:targetId"
)
