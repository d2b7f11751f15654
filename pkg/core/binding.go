package core

import "context"

// ObjectParams bundles the retrieval options a single object fetch or
// listing sends over the wire. The session derives it from an
// OperationContext; bindings translate it into their wire format.
type ObjectParams struct {
	// Filter is a comma-separated list of property query names, or "*".
	// An empty filter means the repository default.
	Filter                  string
	IncludeAllowableActions bool
	IncludeRelationships    RelationshipDirection
	RenditionFilter         string
	IncludePolicyIDs        bool
	IncludeACLs             bool
	IncludePathSegments     bool
	OrderBy                 string
}

// Binding is the contract for the wire-level collaborator. Adhering to
// this interface keeps the session independent of the concrete binding
// (AtomPub, SOAP, in-memory). All calls are synchronous and may perform
// network I/O on the calling goroutine; cancellation and timeouts are the
// binding's business, via the context.
type Binding interface {
	// GetRepositoryInfo returns the descriptor of a repository.
	GetRepositoryInfo(ctx context.Context, repositoryID string) (*RepositoryInfo, error)

	// GetTypeDefinition returns the raw definition of a single type.
	GetTypeDefinition(ctx context.Context, repositoryID, typeID string) (*TypeData, error)

	// GetTypeChildren returns one page of child types. An empty typeID
	// asks for the base types.
	GetTypeChildren(ctx context.Context, repositoryID, typeID string,
		includePropertyDefinitions bool, maxItems, skipCount int64) (*TypeList, error)

	// GetTypeDescendants returns the subtree below typeID. Depth -1 means
	// unlimited; bindings may reject other non-positive depths.
	GetTypeDescendants(ctx context.Context, repositoryID, typeID string,
		depth int64, includePropertyDefinitions bool) ([]*TypeContainer, error)

	// GetObject returns the raw data of one object by id.
	GetObject(ctx context.Context, repositoryID, objectID string, params ObjectParams) (*ObjectData, error)

	// GetObjectByPath returns the raw data of one object by absolute path.
	GetObjectByPath(ctx context.Context, repositoryID, path string, params ObjectParams) (*ObjectData, error)

	// GetChildren returns one page of a folder's children, with path
	// segments when params ask for them.
	GetChildren(ctx context.Context, repositoryID, folderID string,
		params ObjectParams, maxItems, skipCount int64) (*ObjectList, error)

	// CreateDocument creates a document in a folder (folderID may be empty
	// for unfiled repositories) and returns the new object id.
	CreateDocument(ctx context.Context, repositoryID string, properties []PropertyData, folderID string) (string, error)

	// CreateFolder creates a folder and returns the new object id.
	CreateFolder(ctx context.Context, repositoryID string, properties []PropertyData, folderID string) (string, error)

	// UpdateProperties updates an object. Repositories that version on
	// update may return a new object id; the change token round-trips.
	UpdateProperties(ctx context.Context, repositoryID, objectID, changeToken string,
		properties []PropertyData) (newObjectID, newChangeToken string, err error)

	// MoveObject moves an object between folders and returns its id.
	MoveObject(ctx context.Context, repositoryID, objectID, sourceFolderID, targetFolderID string) (string, error)

	// DeleteObject removes an object.
	DeleteObject(ctx context.Context, repositoryID, objectID string, allVersions bool) error

	// ClearAllCaches drops every binding-side cache.
	ClearAllCaches()

	// ClearRepositoryCache drops binding-side caches for one repository.
	ClearRepositoryCache(repositoryID string)
}
