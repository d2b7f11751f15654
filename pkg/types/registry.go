package types

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/shale/pkg/collection"
	"github.com/aretw0/shale/pkg/core"
)

// Container is one node of a converted type-descendants tree.
type Container struct {
	Type     ObjectType
	Children []*Container
}

// Registry resolves repository types through the binding and caches each
// converted definition for the lifetime of the session (or until Clear).
type Registry struct {
	binding  core.Binding
	repoID   string
	pageSize int64
	logger   *slog.Logger

	mu   sync.Mutex
	byID map[string]ObjectType
}

// NewRegistry builds a registry for one repository. pageSize controls the
// chunking of Children listings; non-positive falls back to the
// collection default.
func NewRegistry(binding core.Binding, repositoryID string, pageSize int64, logger *slog.Logger) *Registry {
	return &Registry{
		binding:  binding,
		repoID:   repositoryID,
		pageSize: pageSize,
		logger:   logger,
		byID:     make(map[string]ObjectType),
	}
}

// Get returns the type for typeID, fetching and converting it on first
// use. The same instance is returned until Clear.
func (r *Registry) Get(ctx context.Context, typeID string) (ObjectType, error) {
	if typeID == "" {
		return nil, fmt.Errorf("%w: type id is empty", core.ErrInvalidArgument)
	}

	r.mu.Lock()
	if t, ok := r.byID[typeID]; ok {
		r.mu.Unlock()
		return t, nil
	}
	r.mu.Unlock()

	data, err := r.binding.GetTypeDefinition(ctx, r.repoID, typeID)
	if err != nil {
		return nil, err
	}
	t, err := Convert(data)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.byID[typeID] = t
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Debug("type resolved", "repository", r.repoID, "type", typeID)
	}
	return t, nil
}

// Children returns a lazy collection of the direct child types of typeID.
// An empty typeID lists the base types. Fetched definitions with property
// definitions are cached like Get results.
func (r *Registry) Children(ctx context.Context, typeID string, includePropertyDefinitions bool) *collection.Collection[ObjectType] {
	fetch := func(maxItems, skipCount int64) (*collection.Page[ObjectType], error) {
		list, err := r.binding.GetTypeChildren(ctx, r.repoID, typeID, includePropertyDefinitions, maxItems, skipCount)
		if err != nil {
			return nil, err
		}
		page := &collection.Page[ObjectType]{
			NumItems: list.NumItems,
			HasMore:  list.HasMore,
		}
		for _, data := range list.Types {
			t, err := r.convertAndCache(data, includePropertyDefinitions)
			if err != nil {
				return nil, err
			}
			page.Items = append(page.Items, t)
		}
		return page, nil
	}
	return collection.New(fetch, r.pageSize)
}

// Descendants returns the converted subtree below typeID (base types for
// an empty typeID). Depth -1 means unlimited; any other non-positive
// depth is invalid.
func (r *Registry) Descendants(ctx context.Context, typeID string, depth int64, includePropertyDefinitions bool) ([]*Container, error) {
	if depth == 0 || depth < -1 {
		return nil, fmt.Errorf("%w: depth must be -1 or positive, got %d", core.ErrInvalidArgument, depth)
	}
	raw, err := r.binding.GetTypeDescendants(ctx, r.repoID, typeID, depth, includePropertyDefinitions)
	if err != nil {
		return nil, err
	}
	return r.convertTree(raw, includePropertyDefinitions)
}

func (r *Registry) convertTree(raw []*core.TypeContainer, cache bool) ([]*Container, error) {
	containers := make([]*Container, 0, len(raw))
	for _, node := range raw {
		t, err := r.convertAndCache(node.Type, cache)
		if err != nil {
			return nil, err
		}
		children, err := r.convertTree(node.Children, cache)
		if err != nil {
			return nil, err
		}
		containers = append(containers, &Container{Type: t, Children: children})
	}
	return containers, nil
}

// convertAndCache converts raw data and stores it, unless the fetch was
// made without property definitions: such a definition is incomplete and
// must not shadow a full one.
func (r *Registry) convertAndCache(data *core.TypeData, complete bool) (ObjectType, error) {
	t, err := Convert(data)
	if err != nil {
		return nil, err
	}
	if complete {
		r.mu.Lock()
		if cached, ok := r.byID[t.ID()]; ok {
			t = cached
		} else {
			r.byID[t.ID()] = t
		}
		r.mu.Unlock()
	}
	return t, nil
}

// Size returns the number of cached type definitions.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// Clear drops every cached definition; subsequent lookups re-fetch.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]ObjectType)
}
