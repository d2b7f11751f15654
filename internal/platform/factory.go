package platform

import (
	"fmt"

	"github.com/aretw0/shale/pkg/adapters/memory"
	"github.com/aretw0/shale/pkg/core"
	"github.com/aretw0/shale/pkg/session"
)

// Connect builds a session for one repository.
//
//	s, err := shale.Connect("demo", shale.WithFixtures("./fixtures"))
//
// Without an injected binding, an in-memory binding is created and, when
// WithFixtures is given, loaded from the fixture directory. The fixture
// files must declare the repository (or it can be added to an injected
// binding beforehand).
func Connect(repositoryID string, opts ...Option) (*session.Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	binding := o.binding
	if binding == nil {
		mem := memory.NewBinding(
			memory.WithLogger(o.logger),
			memory.WithUser(o.user),
		)
		if o.fixtureDir != "" {
			if err := mem.LoadDirectory(repositoryID, o.fixtureDir); err != nil {
				return nil, fmt.Errorf("loading fixtures: %w", err)
			}
			if o.watchCtx != nil {
				if err := mem.Watch(o.watchCtx, repositoryID, o.fixtureDir); err != nil {
					return nil, fmt.Errorf("watching fixtures: %w", err)
				}
			}
		} else if err := mem.AddRepository(core.RepositoryInfo{ID: repositoryID}); err != nil {
			return nil, err
		}
		binding = mem
	}

	cache := o.cache
	if cache == nil && !o.cachingDisabled {
		cache = session.NewMapCache()
	}
	if o.cachingDisabled {
		cache = nil
	}

	return session.New(session.Config{
		Binding:           binding,
		RepositoryID:      repositoryID,
		Cache:             cache,
		DefaultContext:    o.defaultContext,
		PathCacheDisabled: o.pathCacheDisabled,
		Logger:            o.logger,
	})
}
