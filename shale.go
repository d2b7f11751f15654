package shale

import (
	"context"
	"log/slog"

	"github.com/aretw0/shale/internal/platform"
	"github.com/aretw0/shale/pkg/core"
	"github.com/aretw0/shale/pkg/session"
	"github.com/aretw0/shale/pkg/typed"
	"github.com/aretw0/shale/pkg/types"
)

// Version exposes the version of the library.
const Version = "0.1.0"

// --- Types ---

// Session is a public alias for the repository session.
type Session = session.Session

// Object is a public alias for the typed repository object.
type Object = session.Object

// Document is a public alias for the typed document object.
type Document = session.Document

// Folder is a public alias for the typed folder object.
type Folder = session.Folder

// OperationContext is a public alias for per-call fetch settings.
type OperationContext = session.OperationContext

// ObjectType is a public alias for resolved type definitions.
type ObjectType = types.ObjectType

// --- Configuration ---

// Option defines a functional option for configuring a session.
type Option = platform.Option

// WithBinding injects the binding the session talks to.
func WithBinding(binding core.Binding) Option {
	return platform.WithBinding(binding)
}

// WithLogger sets the logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithCache injects a custom object cache implementation.
func WithCache(cache session.Cache) Option {
	return platform.WithCache(cache)
}

// WithCaching enables or disables object caching. Enabled by default.
func WithCaching(enabled bool) Option {
	return platform.WithCaching(enabled)
}

// WithPathCacheDisabled turns off path-keyed caching only.
func WithPathCacheDisabled(disabled bool) Option {
	return platform.WithPathCacheDisabled(disabled)
}

// WithDefaultContext sets the operation context applied when a call site
// passes nil.
func WithDefaultContext(octx *session.OperationContext) Option {
	return platform.WithDefaultContext(octx)
}

// WithFixtures points the default in-memory binding at a directory of
// YAML fixture files.
func WithFixtures(dir string) Option {
	return platform.WithFixtures(dir)
}

// WithFixtureWatch reloads fixture files as they change on disk, until
// ctx is cancelled.
func WithFixtureWatch(ctx context.Context) Option {
	return platform.WithFixtureWatch(ctx)
}

// WithUser sets the principal recorded by the default in-memory binding.
func WithUser(name string) Option {
	return platform.WithUser(name)
}

// --- Entry point ---

// Connect builds a session for one repository.
func Connect(repositoryID string, opts ...Option) (*Session, error) {
	return platform.Connect(repositoryID, opts...)
}

// --- Typed access ---

// FirstProperty returns the first value of an object property as T.
func FirstProperty[T any](obj Object, id string) (T, bool) {
	return typed.First[T](obj, id)
}

// PropertyValues returns all values of an object property that are of
// type T, in order.
func PropertyValues[T any](obj Object, id string) []T {
	return typed.Values[T](obj, id)
}
