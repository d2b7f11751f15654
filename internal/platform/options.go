package platform

import (
	"context"
	"log/slog"

	"github.com/aretw0/shale/pkg/core"
	"github.com/aretw0/shale/pkg/session"
)

// options holds the internal configuration for connecting a session.
type options struct {
	binding           core.Binding
	logger            *slog.Logger
	cache             session.Cache
	cachingDisabled   bool
	pathCacheDisabled bool
	defaultContext    *session.OperationContext
	fixtureDir        string
	watchCtx          context.Context
	user              string
}

// Option defines a functional option for configuring a session.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		user: "system",
	}
}

// WithBinding injects the binding the session talks to. If provided, the
// default in-memory binding is skipped.
func WithBinding(binding core.Binding) Option {
	return func(o *options) {
		o.binding = binding
	}
}

// WithLogger sets the logger for the session and the default binding.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCache injects a custom object cache implementation.
func WithCache(cache session.Cache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithCaching enables or disables object caching. Enabled by default;
// passing false connects with a pass-through cache.
func WithCaching(enabled bool) Option {
	return func(o *options) {
		o.cachingDisabled = !enabled
	}
}

// WithPathCacheDisabled turns off the path-to-id cache while keeping the
// object cache active.
func WithPathCacheDisabled(disabled bool) Option {
	return func(o *options) {
		o.pathCacheDisabled = disabled
	}
}

// WithDefaultContext sets the operation context applied when a call site
// passes nil.
func WithDefaultContext(octx *session.OperationContext) Option {
	return func(o *options) {
		o.defaultContext = octx
	}
}

// WithFixtures points the default in-memory binding at a directory of
// YAML fixture files. Ignored when a binding is injected.
func WithFixtures(dir string) Option {
	return func(o *options) {
		o.fixtureDir = dir
	}
}

// WithFixtureWatch keeps the fixture directory under a filesystem
// watcher that reloads files as they change. The watcher runs until ctx
// is cancelled. Requires WithFixtures.
func WithFixtureWatch(ctx context.Context) Option {
	return func(o *options) {
		o.watchCtx = ctx
	}
}

// WithUser sets the principal the default in-memory binding records as
// creator and modifier of objects.
func WithUser(name string) Option {
	return func(o *options) {
		o.user = name
	}
}
