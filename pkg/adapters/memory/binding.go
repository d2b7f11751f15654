// Package memory implements core.Binding against an in-memory object
// store. It backs the test suites, the examples, and the CLI: fixtures
// can be loaded from YAML files and kept fresh with a filesystem watcher,
// and every binding method is counted so callers can assert on traffic.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/aretw0/shale/pkg/core"
)

// Binding is an in-memory core.Binding holding any number of repositories.
type Binding struct {
	logger *slog.Logger
	user   string
	now    func() time.Time

	mu    sync.RWMutex
	repos map[string]*repository
	calls map[string]int
}

// Option configures a Binding.
type Option func(*Binding)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binding) { b.logger = logger }
}

// WithUser sets the principal recorded as creator/modifier of objects.
func WithUser(name string) Option {
	return func(b *Binding) { b.user = name }
}

// WithClock overrides the time source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(b *Binding) { b.now = now }
}

// NewBinding returns an empty binding.
func NewBinding(opts ...Option) *Binding {
	b := &Binding{
		user:  "system",
		now:   time.Now,
		repos: make(map[string]*repository),
		calls: make(map[string]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// repository is one stored repository: schema, objects, hierarchy.
type repository struct {
	info core.RepositoryInfo
	// types and typeOrder keep registration order for stable listings.
	types     map[string]*core.TypeData
	typeOrder []string
	objects   map[string]*storedObject
	// children maps a folder id to its child object ids.
	children map[string][]string
}

type storedObject struct {
	id          string
	typeID      string
	baseType    core.BaseType
	parentID    string
	name        string
	createdBy   string
	createdAt   time.Time
	modifiedBy  string
	modifiedAt  time.Time
	changeToken int64
	// custom holds non-system properties keyed by property id.
	custom     map[string]core.PropertyData
	actions    []string
	acl        *core.ACL
	renditions []core.Rendition
	policyIDs  []string
}

// AddRepository registers a repository, seeds the document and folder
// base types, and creates the root folder. The info's RootFolderID may be
// empty; a generated id is filled in.
func (b *Binding) AddRepository(info core.RepositoryInfo) error {
	if info.ID == "" {
		return fmt.Errorf("%w: repository id is required", core.ErrInvalidArgument)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.repos[info.ID]; exists {
		return fmt.Errorf("%w: repository %q already exists", core.ErrInvalidArgument, info.ID)
	}

	if info.RootFolderID == "" {
		info.RootFolderID = uuid.NewString()
	}
	if info.ProductName == "" {
		info.ProductName = "shale memory binding"
	}
	if info.CMISVersion == "" {
		info.CMISVersion = "1.1"
	}

	repo := &repository{
		info:     info,
		types:    make(map[string]*core.TypeData),
		objects:  make(map[string]*storedObject),
		children: make(map[string][]string),
	}
	repo.registerType(documentBaseType())
	repo.registerType(folderBaseType())

	now := b.now()
	repo.objects[info.RootFolderID] = &storedObject{
		id:         info.RootFolderID,
		typeID:     string(core.BaseTypeFolder),
		baseType:   core.BaseTypeFolder,
		name:       "",
		createdBy:  b.user,
		createdAt:  now,
		modifiedBy: b.user,
		modifiedAt: now,
		custom:     make(map[string]core.PropertyData),
	}
	b.repos[info.ID] = repo
	b.debug("repository added", "repository", info.ID, "root", info.RootFolderID)
	return nil
}

// RegisterType adds a type definition to a repository's schema. Types
// must be registered parents-first.
func (b *Binding) RegisterType(repositoryID string, data *core.TypeData) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return err
	}
	if data == nil || data.ID == "" {
		return fmt.Errorf("%w: type data is incomplete", core.ErrInvalidArgument)
	}
	if !data.BaseType.Valid() {
		return fmt.Errorf("%w: %q", core.ErrUnknownType, data.BaseType)
	}
	if data.ParentID != "" {
		if _, ok := repo.types[data.ParentID]; !ok {
			return fmt.Errorf("%w: parent type %q", core.ErrNotFound, data.ParentID)
		}
	}
	repo.registerType(data)
	return nil
}

func (r *repository) registerType(data *core.TypeData) {
	if _, exists := r.types[data.ID]; !exists {
		r.typeOrder = append(r.typeOrder, data.ID)
	}
	r.types[data.ID] = data
}

// CallCount returns how often a binding method was invoked, by name
// (e.g. "GetObject"). Tests use it to assert on cache behavior.
func (b *Binding) CallCount(method string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.calls[method]
}

func (b *Binding) count(method string) {
	b.mu.Lock()
	b.calls[method]++
	b.mu.Unlock()
}

// --- core.Binding: repository and types ---

func (b *Binding) GetRepositoryInfo(ctx context.Context, repositoryID string) (*core.RepositoryInfo, error) {
	b.count("GetRepositoryInfo")
	b.mu.RLock()
	defer b.mu.RUnlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return nil, err
	}
	info := repo.info
	return &info, nil
}

func (b *Binding) GetTypeDefinition(ctx context.Context, repositoryID, typeID string) (*core.TypeData, error) {
	b.count("GetTypeDefinition")
	b.mu.RLock()
	defer b.mu.RUnlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return nil, err
	}
	data, ok := repo.types[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: type %q", core.ErrNotFound, typeID)
	}
	return copyType(data, true), nil
}

func (b *Binding) GetTypeChildren(ctx context.Context, repositoryID, typeID string,
	includePropertyDefinitions bool, maxItems, skipCount int64) (*core.TypeList, error) {
	b.count("GetTypeChildren")
	b.mu.RLock()
	defer b.mu.RUnlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return nil, err
	}
	if typeID != "" {
		if _, ok := repo.types[typeID]; !ok {
			return nil, fmt.Errorf("%w: type %q", core.ErrNotFound, typeID)
		}
	}

	var all []*core.TypeData
	for _, id := range repo.typeOrder {
		t := repo.types[id]
		if t.ParentID == typeID {
			all = append(all, t)
		}
	}

	list := &core.TypeList{NumItems: int64(len(all))}
	start, end := pageBounds(int64(len(all)), maxItems, skipCount)
	for _, t := range all[start:end] {
		list.Types = append(list.Types, copyType(t, includePropertyDefinitions))
	}
	list.HasMore = end < int64(len(all))
	return list, nil
}

func (b *Binding) GetTypeDescendants(ctx context.Context, repositoryID, typeID string,
	depth int64, includePropertyDefinitions bool) ([]*core.TypeContainer, error) {
	b.count("GetTypeDescendants")
	if depth == 0 || depth < -1 {
		return nil, fmt.Errorf("%w: depth must be -1 or positive, got %d", core.ErrInvalidArgument, depth)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return nil, err
	}
	if typeID != "" {
		if _, ok := repo.types[typeID]; !ok {
			return nil, fmt.Errorf("%w: type %q", core.ErrNotFound, typeID)
		}
	}
	return repo.descendants(typeID, depth, includePropertyDefinitions), nil
}

func (r *repository) descendants(typeID string, depth int64, includeDefs bool) []*core.TypeContainer {
	if depth == 0 {
		return nil
	}
	next := depth
	if next > 0 {
		next--
	}
	var out []*core.TypeContainer
	for _, id := range r.typeOrder {
		t := r.types[id]
		if t.ParentID != typeID {
			continue
		}
		out = append(out, &core.TypeContainer{
			Type:     copyType(t, includeDefs),
			Children: r.descendants(t.ID, next, includeDefs),
		})
	}
	return out
}

// --- core.Binding: objects ---

func (b *Binding) GetObject(ctx context.Context, repositoryID, objectID string, params core.ObjectParams) (*core.ObjectData, error) {
	b.count("GetObject")
	b.mu.RLock()
	defer b.mu.RUnlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return nil, err
	}
	obj, ok := repo.objects[objectID]
	if !ok {
		return nil, fmt.Errorf("%w: object %q", core.ErrNotFound, objectID)
	}
	return repo.snapshot(obj, params), nil
}

func (b *Binding) GetObjectByPath(ctx context.Context, repositoryID, path string, params core.ObjectParams) (*core.ObjectData, error) {
	b.count("GetObjectByPath")
	b.mu.RLock()
	defer b.mu.RUnlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return nil, err
	}
	obj, err := repo.resolvePath(path)
	if err != nil {
		return nil, err
	}
	return repo.snapshot(obj, params), nil
}

func (b *Binding) GetChildren(ctx context.Context, repositoryID, folderID string,
	params core.ObjectParams, maxItems, skipCount int64) (*core.ObjectList, error) {
	b.count("GetChildren")
	b.mu.RLock()
	defer b.mu.RUnlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return nil, err
	}
	folder, ok := repo.objects[folderID]
	if !ok {
		return nil, fmt.Errorf("%w: folder %q", core.ErrNotFound, folderID)
	}
	if folder.baseType != core.BaseTypeFolder {
		return nil, fmt.Errorf("%w: object %q is not a folder", core.ErrInvalidArgument, folderID)
	}
	if params.OrderBy != "" && params.OrderBy != core.PropertyName {
		return nil, fmt.Errorf("%w: ordering by %q", core.ErrUnsupported, params.OrderBy)
	}

	ids := append([]string(nil), repo.children[folderID]...)
	sort.Slice(ids, func(i, j int) bool {
		return repo.objects[ids[i]].name < repo.objects[ids[j]].name
	})

	list := &core.ObjectList{NumItems: int64(len(ids))}
	start, end := pageBounds(int64(len(ids)), maxItems, skipCount)
	for _, id := range ids[start:end] {
		child := repo.objects[id]
		data := repo.snapshot(child, params)
		if params.IncludePathSegments {
			data.PathSegment = child.name
		}
		list.Objects = append(list.Objects, data)
	}
	list.HasMore = end < int64(len(ids))
	return list, nil
}

func (b *Binding) CreateDocument(ctx context.Context, repositoryID string, properties []core.PropertyData, folderID string) (string, error) {
	b.count("CreateDocument")
	return b.create(repositoryID, properties, folderID, core.BaseTypeDocument, "")
}

func (b *Binding) CreateFolder(ctx context.Context, repositoryID string, properties []core.PropertyData, folderID string) (string, error) {
	b.count("CreateFolder")
	if folderID == "" {
		return "", fmt.Errorf("%w: folders must be filed", core.ErrInvalidArgument)
	}
	return b.create(repositoryID, properties, folderID, core.BaseTypeFolder, "")
}

func (b *Binding) create(repositoryID string, properties []core.PropertyData, folderID string, want core.BaseType, forcedID string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return "", err
	}
	return b.createLocked(repo, properties, folderID, want, forcedID)
}

func (b *Binding) createLocked(repo *repository, properties []core.PropertyData, folderID string, want core.BaseType, forcedID string) (string, error) {
	props := indexProperties(properties)
	typeID := firstString(props, core.PropertyObjectTypeID)
	if typeID == "" {
		return "", fmt.Errorf("%w: %s is required", core.ErrInvalidArgument, core.PropertyObjectTypeID)
	}
	typeData, ok := repo.types[typeID]
	if !ok {
		return "", fmt.Errorf("%w: type %q", core.ErrNotFound, typeID)
	}
	if want != "" && typeData.BaseType != want {
		return "", fmt.Errorf("%w: type %q is not a %s type", core.ErrInvalidArgument, typeID, want)
	}
	name := firstString(props, core.PropertyName)
	if name == "" {
		return "", fmt.Errorf("%w: %s is required", core.ErrInvalidArgument, core.PropertyName)
	}

	if folderID != "" {
		parent, ok := repo.objects[folderID]
		if !ok {
			return "", fmt.Errorf("%w: folder %q", core.ErrNotFound, folderID)
		}
		if parent.baseType != core.BaseTypeFolder {
			return "", fmt.Errorf("%w: parent %q is not a folder", core.ErrInvalidArgument, folderID)
		}
		for _, sibling := range repo.children[folderID] {
			if repo.objects[sibling].name == name {
				return "", fmt.Errorf("%w: %q already exists in folder %q", core.ErrInvalidArgument, name, folderID)
			}
		}
	}

	id := forcedID
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := repo.objects[id]; exists {
		return "", fmt.Errorf("%w: object id %q already exists", core.ErrInvalidArgument, id)
	}

	now := b.now()
	obj := &storedObject{
		id:         id,
		typeID:     typeID,
		baseType:   typeData.BaseType,
		parentID:   folderID,
		name:       name,
		createdBy:  b.user,
		createdAt:  now,
		modifiedBy: b.user,
		modifiedAt: now,
		custom:     make(map[string]core.PropertyData),
	}
	for _, pd := range properties {
		if isSystemProperty(pd.ID) {
			continue
		}
		obj.custom[pd.ID] = pd
	}

	repo.objects[id] = obj
	if folderID != "" {
		repo.children[folderID] = append(repo.children[folderID], id)
	}
	b.debug("object created", "repository", repo.info.ID, "id", id, "type", typeID, "name", name)
	return id, nil
}

func (b *Binding) UpdateProperties(ctx context.Context, repositoryID, objectID, changeToken string,
	properties []core.PropertyData) (string, string, error) {
	b.count("UpdateProperties")
	b.mu.Lock()
	defer b.mu.Unlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return "", "", err
	}
	obj, ok := repo.objects[objectID]
	if !ok {
		return "", "", fmt.Errorf("%w: object %q", core.ErrNotFound, objectID)
	}

	for _, pd := range properties {
		switch pd.ID {
		case core.PropertyName:
			if name := firstStringValue(pd); name != "" {
				obj.name = name
			}
		case core.PropertyID, core.PropertyBaseTypeID, core.PropertyObjectTypeID,
			core.PropertyCreatedBy, core.PropertyCreationDate,
			core.PropertyLastModifiedBy, core.PropertyLastModificationDate,
			core.PropertyChangeToken, core.PropertyPath, core.PropertyParentID:
			// System-maintained; writes are ignored.
		default:
			if len(pd.Values) == 0 {
				delete(obj.custom, pd.ID)
			} else {
				obj.custom[pd.ID] = pd
			}
		}
	}
	obj.changeToken++
	obj.modifiedBy = b.user
	obj.modifiedAt = b.now()
	return objectID, fmt.Sprintf("%d", obj.changeToken), nil
}

func (b *Binding) MoveObject(ctx context.Context, repositoryID, objectID, sourceFolderID, targetFolderID string) (string, error) {
	b.count("MoveObject")
	b.mu.Lock()
	defer b.mu.Unlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return "", err
	}
	obj, ok := repo.objects[objectID]
	if !ok {
		return "", fmt.Errorf("%w: object %q", core.ErrNotFound, objectID)
	}
	if obj.parentID != sourceFolderID {
		return "", fmt.Errorf("%w: object %q is not filed in %q", core.ErrInvalidArgument, objectID, sourceFolderID)
	}
	target, ok := repo.objects[targetFolderID]
	if !ok {
		return "", fmt.Errorf("%w: folder %q", core.ErrNotFound, targetFolderID)
	}
	if target.baseType != core.BaseTypeFolder {
		return "", fmt.Errorf("%w: target %q is not a folder", core.ErrInvalidArgument, targetFolderID)
	}

	repo.children[sourceFolderID] = remove(repo.children[sourceFolderID], objectID)
	repo.children[targetFolderID] = append(repo.children[targetFolderID], objectID)
	obj.parentID = targetFolderID
	obj.changeToken++
	obj.modifiedBy = b.user
	obj.modifiedAt = b.now()
	return objectID, nil
}

func (b *Binding) DeleteObject(ctx context.Context, repositoryID, objectID string, allVersions bool) error {
	b.count("DeleteObject")
	b.mu.Lock()
	defer b.mu.Unlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return err
	}
	obj, ok := repo.objects[objectID]
	if !ok {
		return fmt.Errorf("%w: object %q", core.ErrNotFound, objectID)
	}
	if obj.baseType == core.BaseTypeFolder && len(repo.children[objectID]) > 0 {
		return fmt.Errorf("%w: folder %q is not empty", core.ErrInvalidArgument, objectID)
	}
	if obj.parentID != "" {
		repo.children[obj.parentID] = remove(repo.children[obj.parentID], objectID)
	}
	delete(repo.children, objectID)
	delete(repo.objects, objectID)
	return nil
}

// ClearAllCaches is part of the binding contract. The memory binding's
// store is authoritative, so there is nothing to drop; the call is still
// counted so sessions' Clear can be asserted on.
func (b *Binding) ClearAllCaches() {
	b.count("ClearAllCaches")
}

// ClearRepositoryCache is the per-repository variant of ClearAllCaches.
func (b *Binding) ClearRepositoryCache(repositoryID string) {
	b.count("ClearRepositoryCache")
}

var _ core.Binding = (*Binding)(nil)

// --- internals ---

func (b *Binding) repoLocked(repositoryID string) (*repository, error) {
	repo, ok := b.repos[repositoryID]
	if !ok {
		return nil, fmt.Errorf("%w: repository %q", core.ErrNotFound, repositoryID)
	}
	return repo, nil
}

func (b *Binding) debug(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}

// resolvePath walks a path from the root folder, matching child names
// segment by segment.
func (r *repository) resolvePath(path string) (*storedObject, error) {
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("%w: %q is not an absolute path", core.ErrInvalidArgument, path)
	}
	current, ok := r.objects[r.info.RootFolderID]
	if !ok {
		return nil, fmt.Errorf("%w: root folder", core.ErrNotFound)
	}
	if path == "/" {
		return current, nil
	}
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		next := ""
		for _, childID := range r.children[current.id] {
			if r.objects[childID].name == segment {
				next = childID
				break
			}
		}
		if next == "" {
			return nil, fmt.Errorf("%w: path %q", core.ErrNotFound, path)
		}
		current = r.objects[next]
	}
	return current, nil
}

// path computes a fileable object's absolute path by walking its parents.
func (r *repository) path(obj *storedObject) string {
	if obj.id == r.info.RootFolderID {
		return "/"
	}
	var segments []string
	for cur := obj; cur != nil && cur.id != r.info.RootFolderID; {
		segments = append([]string{cur.name}, segments...)
		cur = r.objects[cur.parentID]
	}
	return "/" + strings.Join(segments, "/")
}

// snapshot renders a stored object into wire data, honoring the filter
// and inclusion settings of the request.
func (r *repository) snapshot(obj *storedObject, params core.ObjectParams) *core.ObjectData {
	data := &core.ObjectData{}

	include := filterSet(params.Filter)
	add := func(id string, kind core.PropertyKind, values ...any) {
		if include != nil && !include[id] {
			return
		}
		data.Properties = append(data.Properties, core.PropertyData{ID: id, Kind: kind, Values: values})
	}

	add(core.PropertyID, core.KindID, obj.id)
	add(core.PropertyBaseTypeID, core.KindID, string(obj.baseType))
	add(core.PropertyObjectTypeID, core.KindID, obj.typeID)
	add(core.PropertyName, core.KindString, obj.name)
	add(core.PropertyCreatedBy, core.KindString, obj.createdBy)
	add(core.PropertyCreationDate, core.KindDateTime, obj.createdAt)
	add(core.PropertyLastModifiedBy, core.KindString, obj.modifiedBy)
	add(core.PropertyLastModificationDate, core.KindDateTime, obj.modifiedAt)
	add(core.PropertyChangeToken, core.KindString, fmt.Sprintf("%d", obj.changeToken))
	if obj.baseType == core.BaseTypeFolder {
		add(core.PropertyPath, core.KindString, r.path(obj))
		if obj.id != r.info.RootFolderID {
			add(core.PropertyParentID, core.KindID, obj.parentID)
		}
	}

	for _, pd := range sortedCustom(obj.custom) {
		if include != nil && !include[pd.ID] {
			continue
		}
		data.Properties = append(data.Properties, pd)
	}

	if params.IncludeAllowableActions {
		data.AllowableActions = allowableActions(obj)
	}
	if params.IncludeACLs {
		data.ACL = obj.acl
	}
	if params.IncludePolicyIDs {
		data.PolicyIDs = obj.policyIDs
	}
	data.Renditions = filterRenditions(obj.renditions, params.RenditionFilter)
	data.Relationships = r.relationshipsOf(obj, params)
	return data
}

// relationshipsOf collects the relationship objects attached to obj in
// the requested direction. The nested snapshots never include further
// relationships.
func (r *repository) relationshipsOf(obj *storedObject, params core.ObjectParams) []*core.ObjectData {
	direction := params.IncludeRelationships
	if direction == "" || direction == core.RelationshipsNone {
		return nil
	}
	if obj.baseType == core.BaseTypeRelationship {
		return nil
	}

	var ids []string
	for id, candidate := range r.objects {
		if candidate.baseType != core.BaseTypeRelationship {
			continue
		}
		source := firstStringValue(candidate.custom[propertySourceID])
		target := firstStringValue(candidate.custom[propertyTargetID])
		switch direction {
		case core.RelationshipsSource:
			if source != obj.id {
				continue
			}
		case core.RelationshipsTarget:
			if target != obj.id {
				continue
			}
		default:
			if source != obj.id && target != obj.id {
				continue
			}
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nested := core.ObjectParams{Filter: params.Filter, IncludeRelationships: core.RelationshipsNone}
	var out []*core.ObjectData
	for _, id := range ids {
		out = append(out, r.snapshot(r.objects[id], nested))
	}
	return out
}

// filterSet parses a comma-separated property filter. nil means "all".
// The three self-describing ids always pass.
func filterSet(filter string) map[string]bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == core.FilterAll {
		return nil
	}
	set := map[string]bool{
		core.PropertyID:           true,
		core.PropertyBaseTypeID:   true,
		core.PropertyObjectTypeID: true,
	}
	for _, id := range strings.Split(filter, ",") {
		id = strings.TrimSpace(id)
		if id == core.FilterAll {
			return nil
		}
		if id != "" {
			set[id] = true
		}
	}
	return set
}

// filterRenditions keeps the renditions whose kind or mimetype matches
// one of the filter patterns. Patterns follow glob syntax, so "image/*"
// selects all image renditions.
func filterRenditions(renditions []core.Rendition, filter string) []core.Rendition {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == core.RenditionFilterNone {
		return nil
	}
	patterns := strings.Split(filter, ",")
	var out []core.Rendition
	for _, rendition := range renditions {
		for _, pattern := range patterns {
			pattern = strings.TrimSpace(pattern)
			if pattern == "" {
				continue
			}
			kindOK, _ := doublestar.Match(pattern, rendition.Kind)
			mimeOK, _ := doublestar.Match(pattern, rendition.MimeType)
			if pattern == core.FilterAll || kindOK || mimeOK {
				out = append(out, rendition)
				break
			}
		}
	}
	return out
}

func allowableActions(obj *storedObject) []string {
	if len(obj.actions) > 0 {
		return obj.actions
	}
	actions := []string{"canGetProperties", "canUpdateProperties", "canDeleteObject"}
	if obj.baseType == core.BaseTypeFolder {
		actions = append(actions, "canGetChildren", "canCreateDocument", "canCreateFolder")
	}
	return actions
}

func pageBounds(total, maxItems, skipCount int64) (int64, int64) {
	if skipCount < 0 {
		skipCount = 0
	}
	if skipCount > total {
		skipCount = total
	}
	end := total
	if maxItems >= 0 && skipCount+maxItems < total {
		end = skipCount + maxItems
	}
	return skipCount, end
}

func indexProperties(properties []core.PropertyData) map[string]core.PropertyData {
	m := make(map[string]core.PropertyData, len(properties))
	for _, pd := range properties {
		m[pd.ID] = pd
	}
	return m
}

func firstString(props map[string]core.PropertyData, id string) string {
	pd, ok := props[id]
	if !ok {
		return ""
	}
	return firstStringValue(pd)
}

func firstStringValue(pd core.PropertyData) string {
	if len(pd.Values) == 0 {
		return ""
	}
	s, _ := pd.Values[0].(string)
	return s
}

func isSystemProperty(id string) bool {
	switch id {
	case core.PropertyID, core.PropertyBaseTypeID, core.PropertyObjectTypeID,
		core.PropertyName, core.PropertyCreatedBy, core.PropertyCreationDate,
		core.PropertyLastModifiedBy, core.PropertyLastModificationDate,
		core.PropertyChangeToken, core.PropertyPath, core.PropertyParentID:
		return true
	}
	return false
}

func sortedCustom(custom map[string]core.PropertyData) []core.PropertyData {
	ids := make([]string, 0, len(custom))
	for id := range custom {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]core.PropertyData, 0, len(ids))
	for _, id := range ids {
		out = append(out, custom[id])
	}
	return out
}

func remove(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func copyType(data *core.TypeData, includeDefs bool) *core.TypeData {
	dup := *data
	dup.PropertyDefinitions = nil
	if includeDefs {
		dup.PropertyDefinitions = append([]core.PropertyDefinition(nil), data.PropertyDefinitions...)
	}
	return &dup
}
