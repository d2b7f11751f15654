package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/shale/pkg/collection"
	"github.com/aretw0/shale/pkg/convert"
	"github.com/aretw0/shale/pkg/core"
	"github.com/aretw0/shale/pkg/types"
)

// Additional well-known property ids used by the typed object family.
const (
	propertyIsVersionSeriesCheckedOut = "cmis:isVersionSeriesCheckedOut"
	propertySourceID                  = "cmis:sourceId"
	propertyTargetID                  = "cmis:targetId"
)

// Object is a typed repository object. Implementations are safe for
// concurrent use: reads take the object's lock, and Refresh holds it for
// the whole fetch-and-swap so readers never observe a half-updated object.
type Object interface {
	// ID returns the object id. It never changes for a given instance.
	ID() string
	ObjectType() types.ObjectType
	BaseType() core.BaseType
	Name() string

	// Property returns one typed property by id.
	Property(id string) (*core.Property, bool)
	// PropertyValue returns the first value of a property, or nil.
	PropertyValue(id string) any
	// PropertyIDs lists the ids of the properties the fetch populated.
	PropertyIDs() []string

	AllowableActions() []string
	Can(action string) bool
	ACL() *core.ACL
	Renditions() []core.Rendition
	PolicyIDs() []string
	Relationships() []Object

	// RefreshedAt is when the object state was last materialized.
	RefreshedAt() time.Time
	// CreationContext returns a copy of the OperationContext the object
	// was fetched under. Refresh reuses it.
	CreationContext() *OperationContext

	// Refresh re-fetches the object by id and swaps its state in place.
	// Id and type identity survive a refresh. A not-found from the
	// binding comes back as ErrObjectGone.
	Refresh(ctx context.Context) error
	// UpdateProperties writes properties through the binding. Read-only
	// properties in the map are silently skipped. The result is the
	// receiver (refreshed in place) unless the repository answered with a
	// new object id, in which case the new object is fetched and returned.
	UpdateProperties(ctx context.Context, properties map[string]any) (Object, error)
	// Move moves the object between folders and refreshes it.
	Move(ctx context.Context, sourceFolderID, targetFolderID string) error
	// Delete removes the object from the repository and evicts it from
	// the session cache.
	Delete(ctx context.Context) error
}

// objectState is everything Refresh swaps atomically.
type objectState struct {
	objectType    types.ObjectType
	properties    map[string]*core.Property
	actions       []string
	acl           *core.ACL
	renditions    []core.Rendition
	policyIDs     []string
	relationships []Object
}

type baseObject struct {
	session     *Session
	id          string
	creationCtx *OperationContext
	// self points at the concrete wrapper so operations can hand the
	// typed object back.
	self Object

	mu          sync.RWMutex
	state       objectState
	refreshedAt time.Time
}

func (o *baseObject) ID() string { return o.id }

func (o *baseObject) ObjectType() types.ObjectType {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.objectType
}

func (o *baseObject) BaseType() core.BaseType {
	return o.ObjectType().BaseType()
}

func (o *baseObject) Name() string {
	s, _ := o.PropertyValue(core.PropertyName).(string)
	return s
}

func (o *baseObject) Property(id string) (*core.Property, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.state.properties[id]
	return p, ok
}

func (o *baseObject) PropertyValue(id string) any {
	p, ok := o.Property(id)
	if !ok {
		return nil
	}
	return p.First()
}

func (o *baseObject) PropertyIDs() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	ids := make([]string, 0, len(o.state.properties))
	for id := range o.state.properties {
		ids = append(ids, id)
	}
	return ids
}

func (o *baseObject) AllowableActions() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.actions
}

func (o *baseObject) Can(action string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, a := range o.state.actions {
		if a == action {
			return true
		}
	}
	return false
}

func (o *baseObject) ACL() *core.ACL {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.acl
}

func (o *baseObject) Renditions() []core.Rendition {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.renditions
}

func (o *baseObject) PolicyIDs() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.policyIDs
}

func (o *baseObject) Relationships() []Object {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.relationships
}

func (o *baseObject) RefreshedAt() time.Time {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.refreshedAt
}

func (o *baseObject) CreationContext() *OperationContext {
	return o.creationCtx.Copy()
}

func (o *baseObject) Refresh(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := o.session
	data, err := s.binding.GetObject(ctx, s.repoID, o.id, o.creationCtx.Params())
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("%w: %s", core.ErrObjectGone, o.id)
		}
		return err
	}
	state, id, err := s.materialize(ctx, data, o.creationCtx)
	if err != nil {
		return err
	}
	if id != o.id {
		return fmt.Errorf("%w: refresh of %q returned object %q", core.ErrInvariant, o.id, id)
	}
	o.state = state
	o.refreshedAt = s.now()
	return nil
}

func (o *baseObject) UpdateProperties(ctx context.Context, properties map[string]any) (Object, error) {
	o.mu.RLock()
	t := o.state.objectType
	token, _ := o.changeTokenLocked()
	checkedOut := o.checkedOutLocked()
	o.mu.RUnlock()

	allowed := []core.Updatability{core.ReadWrite}
	if checkedOut {
		allowed = append(allowed, core.WhenCheckedOut)
	}
	wire, err := convert.WireProperties(ctx, properties, t, o.session.types, allowed)
	if err != nil {
		return nil, err
	}

	s := o.session
	newID, _, err := s.binding.UpdateProperties(ctx, s.repoID, o.id, token, wire)
	if err != nil {
		return nil, err
	}

	if newID == "" || newID == o.id {
		if err := o.Refresh(ctx); err != nil {
			return nil, err
		}
		s.cachePut(o.self, o.creationCtx)
		return o.self, nil
	}

	// Versioning repositories may answer with a different id; the old
	// handle is stale now.
	s.cache().Remove(o.id)
	return s.GetObject(ctx, newID, o.creationCtx)
}

func (o *baseObject) Move(ctx context.Context, sourceFolderID, targetFolderID string) error {
	if sourceFolderID == "" || targetFolderID == "" {
		return fmt.Errorf("%w: source and target folder ids are required", core.ErrInvalidArgument)
	}
	s := o.session
	if _, err := s.binding.MoveObject(ctx, s.repoID, o.id, sourceFolderID, targetFolderID); err != nil {
		return err
	}
	return o.Refresh(ctx)
}

func (o *baseObject) Delete(ctx context.Context) error {
	return o.session.Delete(ctx, o.id)
}

func (o *baseObject) changeTokenLocked() (string, bool) {
	p, ok := o.state.properties[core.PropertyChangeToken]
	if !ok {
		return "", false
	}
	s, _ := p.First().(string)
	return s, s != ""
}

func (o *baseObject) checkedOutLocked() bool {
	p, ok := o.state.properties[propertyIsVersionSeriesCheckedOut]
	if !ok {
		return false
	}
	b, _ := p.First().(bool)
	return b
}

// Document is a typed document object.
type Document struct{ baseObject }

// DocumentType returns the document's type, or nil if the repository
// delivered it under a non-document type.
func (d *Document) DocumentType() *types.DocumentType {
	t, _ := d.ObjectType().(*types.DocumentType)
	return t
}

// IsVersionSeriesCheckedOut reports whether the version series is
// currently checked out, when the repository exposes that property.
func (d *Document) IsVersionSeriesCheckedOut() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.checkedOutLocked()
}

// Folder is a typed folder object.
type Folder struct{ baseObject }

// Path returns the folder's absolute path when the filter included it.
func (f *Folder) Path() string {
	s, _ := f.PropertyValue(core.PropertyPath).(string)
	return s
}

// ParentID returns the parent folder id, empty for the root folder.
func (f *Folder) ParentID() string {
	s, _ := f.PropertyValue(core.PropertyParentID).(string)
	return s
}

// Children returns a lazy collection over the folder's children. Pages
// are fetched as the collection is iterated, using octx (or the session
// default when nil) for page size and inclusion settings. Fetched
// children go through the object cache like any other fetch.
func (f *Folder) Children(ctx context.Context, octx *OperationContext) *collection.Collection[Object] {
	s := f.session
	octx = s.contextOrDefault(octx)
	params := octx.Params()

	fetch := func(maxItems, skipCount int64) (*collection.Page[Object], error) {
		list, err := s.binding.GetChildren(ctx, s.repoID, f.id, params, maxItems, skipCount)
		if err != nil {
			return nil, err
		}
		page := &collection.Page[Object]{NumItems: list.NumItems, HasMore: list.HasMore}
		for _, data := range list.Objects {
			obj, err := s.objectFromData(ctx, data, octx)
			if err != nil {
				return nil, err
			}
			s.cachePut(obj, octx)
			page.Items = append(page.Items, obj)
		}
		return page, nil
	}
	return collection.New(fetch, octx.MaxItemsPerPage)
}

// CreateDocument creates a document inside this folder and returns it.
func (f *Folder) CreateDocument(ctx context.Context, properties map[string]any, octx *OperationContext) (*Document, error) {
	return f.session.CreateDocument(ctx, properties, f.id, octx)
}

// CreateFolder creates a subfolder inside this folder and returns it.
func (f *Folder) CreateFolder(ctx context.Context, properties map[string]any, octx *OperationContext) (*Folder, error) {
	return f.session.CreateFolder(ctx, properties, f.id, octx)
}

// Relationship is a typed relationship object.
type Relationship struct{ baseObject }

// SourceID returns the relationship's source object id.
func (r *Relationship) SourceID() string {
	s, _ := r.PropertyValue(propertySourceID).(string)
	return s
}

// TargetID returns the relationship's target object id.
func (r *Relationship) TargetID() string {
	s, _ := r.PropertyValue(propertyTargetID).(string)
	return s
}

// Policy is a typed policy object.
type Policy struct{ baseObject }

// PolicyText returns the policy text property when present.
func (p *Policy) PolicyText() string {
	s, _ := p.PropertyValue("cmis:policyText").(string)
	return s
}
