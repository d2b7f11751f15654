// Package session is the top-level orchestrator of shale: it owns the
// binding collaborator, the type registry, the object cache and the
// default OperationContext, and turns raw wire data into typed objects.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/shale/pkg/convert"
	"github.com/aretw0/shale/pkg/core"
	"github.com/aretw0/shale/pkg/types"
)

// Config carries everything a session needs at construction time. The
// factory in internal/platform assembles it from functional options.
type Config struct {
	Binding      core.Binding
	RepositoryID string
	// Cache is the object cache; nil means the no-op cache.
	Cache Cache
	// DefaultContext is used whenever a caller passes a nil
	// OperationContext; nil means NewOperationContext().
	DefaultContext *OperationContext
	// PathCacheDisabled turns off path-keyed caching only, for
	// repositories where paths are not stable identifiers. Id-keyed
	// caching is unaffected.
	PathCacheDisabled bool
	Logger            *slog.Logger
}

// Session is a stateful handle on one repository. It is safe for use from
// multiple goroutines; all operations are synchronous, blocking calls.
type Session struct {
	binding core.Binding
	repoID  string
	types   *types.Registry
	logger  *slog.Logger

	mu                sync.Mutex
	objectCache       Cache
	defaultCtx        *OperationContext
	pathCacheDisabled bool

	// now is swappable for tests.
	now func() time.Time
}

// New builds a session. The binding and repository id are required.
func New(cfg Config) (*Session, error) {
	if cfg.Binding == nil {
		return nil, fmt.Errorf("%w: binding is required", core.ErrInvalidArgument)
	}
	if cfg.RepositoryID == "" {
		return nil, fmt.Errorf("%w: repository id is required", core.ErrInvalidArgument)
	}
	defaultCtx := cfg.DefaultContext
	if defaultCtx == nil {
		defaultCtx = NewOperationContext()
	}
	cache := cfg.Cache
	if cache == nil {
		cache = NewNoCache()
	}
	s := &Session{
		binding:           cfg.Binding,
		repoID:            cfg.RepositoryID,
		logger:            cfg.Logger,
		objectCache:       cache,
		defaultCtx:        defaultCtx.Copy(),
		pathCacheDisabled: cfg.PathCacheDisabled,
		now:               time.Now,
	}
	s.types = types.NewRegistry(cfg.Binding, cfg.RepositoryID, defaultCtx.MaxItemsPerPage, cfg.Logger)
	return s, nil
}

// RepositoryID returns the repository this session is bound to.
func (s *Session) RepositoryID() string { return s.repoID }

// Types returns the session's type registry.
func (s *Session) Types() *types.Registry { return s.types }

// RepositoryInfo returns the descriptor of the bound repository.
func (s *Session) RepositoryInfo(ctx context.Context) (*core.RepositoryInfo, error) {
	return s.binding.GetRepositoryInfo(ctx, s.repoID)
}

// NewOperationContext returns a copy of the session's default context for
// the caller to adjust.
func (s *Session) NewOperationContext() *OperationContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultCtx.Copy()
}

// SetDefaultContext replaces the session's default context.
func (s *Session) SetDefaultContext(octx *OperationContext) {
	if octx == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultCtx = octx.Copy()
}

// GetObject fetches one object by id, serving it from the object cache
// when octx enables caching and an entry under the same cache key exists.
func (s *Session) GetObject(ctx context.Context, objectID string, octx *OperationContext) (Object, error) {
	if objectID == "" {
		return nil, fmt.Errorf("%w: object id is empty", core.ErrInvalidArgument)
	}
	octx = s.contextOrDefault(octx)

	if octx.CacheEnabled {
		if obj, ok := s.cache().GetByID(objectID, octx.CacheKey()); ok {
			s.debug("object cache hit", "id", objectID)
			return obj, nil
		}
	}

	data, err := s.binding.GetObject(ctx, s.repoID, objectID, octx.Params())
	if err != nil {
		return nil, err
	}
	obj, err := s.objectFromData(ctx, data, octx)
	if err != nil {
		return nil, err
	}
	s.cachePut(obj, octx)
	return obj, nil
}

// GetObjectByPath fetches one object by absolute path. Path-keyed cache
// lookups honor the session-wide path-cache switch; id-keyed caching of
// the result happens either way.
func (s *Session) GetObjectByPath(ctx context.Context, path string, octx *OperationContext) (Object, error) {
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("%w: %q is not an absolute path", core.ErrInvalidArgument, path)
	}
	octx = s.contextOrDefault(octx)

	usePathCache := octx.CacheEnabled && !s.pathCacheOff()
	if usePathCache {
		if obj, ok := s.cache().GetByPath(path, octx.CacheKey()); ok {
			s.debug("path cache hit", "path", path)
			return obj, nil
		}
	}

	data, err := s.binding.GetObjectByPath(ctx, s.repoID, path, octx.Params())
	if err != nil {
		return nil, err
	}
	obj, err := s.objectFromData(ctx, data, octx)
	if err != nil {
		return nil, err
	}
	if usePathCache {
		s.cache().PutPath(path, obj, octx.CacheKey())
	} else {
		s.cachePut(obj, octx)
	}
	return obj, nil
}

// RootFolder fetches the repository's root folder.
func (s *Session) RootFolder(ctx context.Context, octx *OperationContext) (*Folder, error) {
	info, err := s.binding.GetRepositoryInfo(ctx, s.repoID)
	if err != nil {
		return nil, err
	}
	if info.RootFolderID == "" {
		return nil, fmt.Errorf("%w: repository %q reports no root folder", core.ErrInvariant, s.repoID)
	}
	obj, err := s.GetObject(ctx, info.RootFolderID, octx)
	if err != nil {
		return nil, err
	}
	folder, ok := obj.(*Folder)
	if !ok {
		return nil, fmt.Errorf("%w: root object %q is not a folder", core.ErrInvariant, info.RootFolderID)
	}
	return folder, nil
}

// CreateDocument creates a document and fetches the resulting object.
// Properties pass through the converter with the on-create updatability
// set, so read-only fields in the map are skipped, not rejected.
func (s *Session) CreateDocument(ctx context.Context, properties map[string]any, folderID string, octx *OperationContext) (*Document, error) {
	wire, err := s.wireForCreate(ctx, properties)
	if err != nil {
		return nil, err
	}
	id, err := s.binding.CreateDocument(ctx, s.repoID, wire, folderID)
	if err != nil {
		return nil, err
	}
	obj, err := s.GetObject(ctx, id, octx)
	if err != nil {
		return nil, err
	}
	doc, ok := obj.(*Document)
	if !ok {
		return nil, fmt.Errorf("%w: created object %q is not a document", core.ErrInvariant, id)
	}
	return doc, nil
}

// CreateFolder creates a folder and fetches the resulting object.
func (s *Session) CreateFolder(ctx context.Context, properties map[string]any, parentID string, octx *OperationContext) (*Folder, error) {
	if parentID == "" {
		return nil, fmt.Errorf("%w: parent folder id is required", core.ErrInvalidArgument)
	}
	wire, err := s.wireForCreate(ctx, properties)
	if err != nil {
		return nil, err
	}
	id, err := s.binding.CreateFolder(ctx, s.repoID, wire, parentID)
	if err != nil {
		return nil, err
	}
	obj, err := s.GetObject(ctx, id, octx)
	if err != nil {
		return nil, err
	}
	folder, ok := obj.(*Folder)
	if !ok {
		return nil, fmt.Errorf("%w: created object %q is not a folder", core.ErrInvariant, id)
	}
	return folder, nil
}

// Delete removes an object by id and evicts it from the object cache.
func (s *Session) Delete(ctx context.Context, objectID string) error {
	if objectID == "" {
		return fmt.Errorf("%w: object id is empty", core.ErrInvalidArgument)
	}
	if err := s.binding.DeleteObject(ctx, s.repoID, objectID, true); err != nil {
		return err
	}
	s.cache().Remove(objectID)
	return nil
}

// Clear drops the session's object cache and type registry, and asks the
// binding to drop its own caches for this repository. It is the recovery
// path when the server is known to have newer state than the session.
func (s *Session) Clear() {
	s.cache().Clear()
	s.types.Clear()
	s.binding.ClearRepositoryCache(s.repoID)
	s.debug("session caches cleared")
}

// wireForCreate converts a caller property map for a create call. The
// updatability set covers everything writable at creation time.
func (s *Session) wireForCreate(ctx context.Context, properties map[string]any) ([]core.PropertyData, error) {
	allowed := []core.Updatability{core.ReadWrite, core.OnCreate, core.WhenCheckedOut}
	return convert.WireProperties(ctx, properties, nil, s.types, allowed)
}

// materialize converts raw object data into swap-ready object state plus
// the object id resolved from its own properties.
func (s *Session) materialize(ctx context.Context, data *core.ObjectData, octx *OperationContext) (objectState, string, error) {
	var state objectState
	if data == nil {
		return state, "", fmt.Errorf("%w: binding returned no object data", core.ErrInvariant)
	}

	typeID := data.FirstString(core.PropertyObjectTypeID)
	if typeID == "" {
		return state, "", fmt.Errorf("%w: object type id unresolvable from properties", core.ErrInvariant)
	}
	t, err := s.types.Get(ctx, typeID)
	if err != nil {
		return state, "", err
	}
	props, err := convert.Properties(t, data.Properties)
	if err != nil {
		return state, "", err
	}

	id := ""
	if p, ok := props[core.PropertyID]; ok {
		id, _ = p.First().(string)
	}
	if id == "" {
		return state, "", fmt.Errorf("%w: object id unresolvable from properties", core.ErrInvariant)
	}

	state = objectState{
		objectType: t,
		properties: props,
		actions:    data.AllowableActions,
		acl:        data.ACL,
		renditions: data.Renditions,
		policyIDs:  data.PolicyIDs,
	}
	for _, rel := range data.Relationships {
		obj, err := s.objectFromData(ctx, rel, octx)
		if err != nil {
			return objectState{}, "", err
		}
		state.relationships = append(state.relationships, obj)
	}
	return state, id, nil
}

// objectFromData builds the concrete typed object for raw data,
// dispatching on the base-type tag of the resolved type.
func (s *Session) objectFromData(ctx context.Context, data *core.ObjectData, octx *OperationContext) (Object, error) {
	state, id, err := s.materialize(ctx, data, octx)
	if err != nil {
		return nil, err
	}

	base := func() baseObject {
		return baseObject{
			session:     s,
			id:          id,
			creationCtx: octx.Copy(),
			state:       state,
			refreshedAt: s.now(),
		}
	}

	switch state.objectType.BaseType() {
	case core.BaseTypeDocument:
		doc := &Document{base()}
		doc.self = doc
		return doc, nil
	case core.BaseTypeFolder:
		folder := &Folder{base()}
		folder.self = folder
		return folder, nil
	case core.BaseTypeRelationship:
		rel := &Relationship{base()}
		rel.self = rel
		return rel, nil
	case core.BaseTypePolicy:
		policy := &Policy{base()}
		policy.self = policy
		return policy, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownType, state.objectType.BaseType())
	}
}

// cachePut stores an object when the context allows caching. The cache
// contract has no failure mode, so a successful fetch can never be
// dragged down by cache bookkeeping.
func (s *Session) cachePut(obj Object, octx *OperationContext) {
	if obj == nil || !octx.CacheEnabled {
		return
	}
	s.cache().Put(obj, octx.CacheKey())
}

func (s *Session) cache() Cache {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objectCache
}

// SetCache swaps the object cache implementation.
func (s *Session) SetCache(c Cache) {
	if c == nil {
		c = NewNoCache()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objectCache = c
}

func (s *Session) pathCacheOff() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pathCacheDisabled
}

func (s *Session) contextOrDefault(octx *OperationContext) *OperationContext {
	if octx != nil {
		return octx
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultCtx.Copy()
}

func (s *Session) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
