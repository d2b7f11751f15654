package session

import "sync"

// Cache is the session-scoped object store. Every read and write is keyed
// by both the object identity (id or path) and the cache key derived from
// the OperationContext of the fetch, so the same object fetched under
// different inclusion settings never collides. Entries have no TTL;
// invalidation is explicit. Implementations must be safe for concurrent
// use and must not fail a Put: correctness of the returned object always
// takes priority over caching, which is why the interface has no error
// returns.
type Cache interface {
	ContainsID(objectID, cacheKey string) bool
	ContainsPath(path, cacheKey string) bool
	GetByID(objectID, cacheKey string) (Object, bool)
	GetByPath(path, cacheKey string) (Object, bool)
	Put(obj Object, cacheKey string)
	PutPath(path string, obj Object, cacheKey string)
	// Remove evicts every entry for an object id, across all cache keys.
	Remove(objectID string)
	// RemovePath drops one path mapping.
	RemovePath(path string)
	Clear()
	Size() int
}

// NoCache is the default cache: it stores nothing and always misses.
type NoCache struct{}

// NewNoCache returns the no-op cache.
func NewNoCache() *NoCache { return &NoCache{} }

func (*NoCache) ContainsID(string, string) bool        { return false }
func (*NoCache) ContainsPath(string, string) bool      { return false }
func (*NoCache) GetByID(string, string) (Object, bool) { return nil, false }
func (*NoCache) GetByPath(string, string) (Object, bool) {
	return nil, false
}
func (*NoCache) Put(Object, string)             {}
func (*NoCache) PutPath(string, Object, string) {}
func (*NoCache) Remove(string)                  {}
func (*NoCache) RemovePath(string)              {}
func (*NoCache) Clear()                         {}
func (*NoCache) Size() int                      { return 0 }

// MapCache is an unbounded in-memory cache behind one coarse lock. Cache
// operations are pure map lookups, never I/O, so the coarse lock is cheap.
type MapCache struct {
	mu sync.RWMutex
	// objects: object id -> cache key -> object.
	objects map[string]map[string]Object
	// paths: absolute path -> object id.
	paths map[string]string
}

// NewMapCache returns an empty map-backed cache.
func NewMapCache() *MapCache {
	return &MapCache{
		objects: make(map[string]map[string]Object),
		paths:   make(map[string]string),
	}
}

func (c *MapCache) ContainsID(objectID, cacheKey string) bool {
	_, ok := c.GetByID(objectID, cacheKey)
	return ok
}

func (c *MapCache) ContainsPath(path, cacheKey string) bool {
	_, ok := c.GetByPath(path, cacheKey)
	return ok
}

func (c *MapCache) GetByID(objectID, cacheKey string) (Object, bool) {
	if cacheKey == "" {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	obj, ok := c.objects[objectID][cacheKey]
	return obj, ok
}

func (c *MapCache) GetByPath(path, cacheKey string) (Object, bool) {
	if cacheKey == "" {
		return nil, false
	}
	c.mu.RLock()
	id, ok := c.paths[path]
	if !ok {
		c.mu.RUnlock()
		return nil, false
	}
	obj, ok := c.objects[id][cacheKey]
	c.mu.RUnlock()
	return obj, ok
}

func (c *MapCache) Put(obj Object, cacheKey string) {
	if obj == nil || cacheKey == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := obj.ID()
	byKey, ok := c.objects[id]
	if !ok {
		byKey = make(map[string]Object)
		c.objects[id] = byKey
	}
	byKey[cacheKey] = obj
}

func (c *MapCache) PutPath(path string, obj Object, cacheKey string) {
	if obj == nil || cacheKey == "" {
		return
	}
	c.Put(obj, cacheKey)
	c.mu.Lock()
	c.paths[path] = obj.ID()
	c.mu.Unlock()
}

func (c *MapCache) Remove(objectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.objects, objectID)
	for path, id := range c.paths {
		if id == objectID {
			delete(c.paths, path)
		}
	}
}

func (c *MapCache) RemovePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.paths, path)
}

func (c *MapCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects = make(map[string]map[string]Object)
	c.paths = make(map[string]string)
}

// Size counts distinct (id, cache key) entries.
func (c *MapCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, byKey := range c.objects {
		n += len(byKey)
	}
	return n
}
