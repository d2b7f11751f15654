package session

import (
	"github.com/aretw0/introspection"
)

// State exposes internal session state for observability.
type State struct {
	RepositoryID      string `json:"repository_id"`
	ObjectCacheSize   int    `json:"object_cache_size"`
	TypeCacheSize     int    `json:"type_cache_size"`
	PathCacheDisabled bool   `json:"path_cache_disabled"`
	DefaultCacheKey   string `json:"default_cache_key"`
	DefaultPageSize   int64  `json:"default_page_size"`
}

// State implements introspection.Introspectable.
func (s *Session) State() any {
	s.mu.Lock()
	defaultKey := s.defaultCtx.CacheKey()
	pageSize := s.defaultCtx.MaxItemsPerPage
	pathOff := s.pathCacheDisabled
	cache := s.objectCache
	s.mu.Unlock()

	return State{
		RepositoryID:      s.repoID,
		ObjectCacheSize:   cache.Size(),
		TypeCacheSize:     s.types.Size(),
		PathCacheDisabled: pathOff,
		DefaultCacheKey:   defaultKey,
		DefaultPageSize:   pageSize,
	}
}

// ComponentType implements introspection.Component.
func (s *Session) ComponentType() string {
	return "session"
}

var _ introspection.Introspectable = (*Session)(nil)
var _ introspection.Component = (*Session)(nil)
