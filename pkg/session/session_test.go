package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/shale/pkg/adapters/memory"
	"github.com/aretw0/shale/pkg/core"
	"github.com/aretw0/shale/pkg/session"
)

func newTestSession(t *testing.T, mutate func(*session.Config)) (*session.Session, *memory.Binding) {
	t.Helper()
	binding := memory.NewBinding()
	require.NoError(t, binding.AddRepository(core.RepositoryInfo{ID: "test", Name: "Test"}))

	cfg := session.Config{
		Binding:      binding,
		RepositoryID: "test",
		Cache:        session.NewMapCache(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := session.New(cfg)
	require.NoError(t, err)
	return s, binding
}

func mustCreateDocument(t *testing.T, s *session.Session, folderID, name string) *session.Document {
	t.Helper()
	doc, err := s.CreateDocument(context.Background(), map[string]any{
		core.PropertyObjectTypeID: string(core.BaseTypeDocument),
		core.PropertyName:         name,
	}, folderID, nil)
	require.NoError(t, err)
	return doc
}

func TestNewValidation(t *testing.T) {
	_, err := session.New(session.Config{RepositoryID: "test"})
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = session.New(session.Config{Binding: memory.NewBinding()})
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestGetObjectServedFromCache(t *testing.T) {
	s, binding := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	fetches := binding.CallCount("GetObject")

	again, err := s.GetObject(ctx, root.ID(), nil)
	require.NoError(t, err)
	require.Same(t, session.Object(root), again, "cache hit must return the same instance")
	require.Equal(t, fetches, binding.CallCount("GetObject"), "second fetch must not reach the binding")
}

func TestGetObjectCacheKeyedByContext(t *testing.T) {
	s, binding := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	fetches := binding.CallCount("GetObject")

	richer := s.NewOperationContext()
	richer.IncludeAllowableActions = true
	enriched, err := s.GetObject(ctx, root.ID(), richer)
	require.NoError(t, err)
	require.Equal(t, fetches+1, binding.CallCount("GetObject"),
		"different inclusion settings must bypass the cached entry")
	require.NotEmpty(t, enriched.AllowableActions())

	// Both flavors are now cached independently.
	_, err = s.GetObject(ctx, root.ID(), richer)
	require.NoError(t, err)
	_, err = s.GetObject(ctx, root.ID(), nil)
	require.NoError(t, err)
	require.Equal(t, fetches+1, binding.CallCount("GetObject"))
}

func TestGetObjectCacheDisabledPerCall(t *testing.T) {
	s, binding := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)

	raw := s.NewOperationContext()
	raw.CacheEnabled = false

	before := binding.CallCount("GetObject")
	_, err = s.GetObject(ctx, root.ID(), raw)
	require.NoError(t, err)
	_, err = s.GetObject(ctx, root.ID(), raw)
	require.NoError(t, err)
	require.Equal(t, before+2, binding.CallCount("GetObject"))
}

func TestCreateDocumentThenDelete(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	doc := mustCreateDocument(t, s, root.ID(), "scratch.md")

	fetched, err := s.GetObject(ctx, doc.ID(), nil)
	require.NoError(t, err)
	require.Equal(t, "scratch.md", fetched.Name())

	require.NoError(t, s.Delete(ctx, doc.ID()))

	_, err = s.GetObject(ctx, doc.ID(), nil)
	require.ErrorIs(t, err, core.ErrNotFound, "deleted object must not be served from cache")
}

func TestGetObjectByPathCaching(t *testing.T) {
	s, binding := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	mustCreateDocument(t, s, root.ID(), "readme.md")

	first, err := s.GetObjectByPath(ctx, "/readme.md", nil)
	require.NoError(t, err)
	calls := binding.CallCount("GetObjectByPath")

	second, err := s.GetObjectByPath(ctx, "/readme.md", nil)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, calls, binding.CallCount("GetObjectByPath"))
}

func TestGetObjectByPathValidation(t *testing.T) {
	s, _ := newTestSession(t, nil)

	_, err := s.GetObjectByPath(context.Background(), "relative/path", nil)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestPathCacheDisabled(t *testing.T) {
	s, binding := newTestSession(t, func(cfg *session.Config) {
		cfg.PathCacheDisabled = true
	})
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	mustCreateDocument(t, s, root.ID(), "readme.md")

	first, err := s.GetObjectByPath(ctx, "/readme.md", nil)
	require.NoError(t, err)
	calls := binding.CallCount("GetObjectByPath")

	_, err = s.GetObjectByPath(ctx, "/readme.md", nil)
	require.NoError(t, err)
	require.Equal(t, calls+1, binding.CallCount("GetObjectByPath"),
		"disabled path cache must re-resolve the path")

	// Id-keyed caching still works.
	again, err := s.GetObject(ctx, first.ID(), nil)
	require.NoError(t, err)
	require.Same(t, first, again)
}

func TestRootFolder(t *testing.T) {
	s, _ := newTestSession(t, nil)

	root, err := s.RootFolder(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "/", root.Path())
	require.Empty(t, root.ParentID())
	require.Equal(t, core.BaseTypeFolder, root.BaseType())
}

func TestClearInvalidatesEverything(t *testing.T) {
	s, binding := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	require.NotZero(t, s.Types().Size())
	fetches := binding.CallCount("GetObject")

	s.Clear()
	require.Zero(t, s.Types().Size())
	require.Equal(t, 1, binding.CallCount("ClearRepositoryCache"))

	_, err = s.GetObject(ctx, root.ID(), nil)
	require.NoError(t, err)
	require.Equal(t, fetches+1, binding.CallCount("GetObject"), "cleared cache must re-fetch")
}

func TestCreateFolderRequiresParent(t *testing.T) {
	s, _ := newTestSession(t, nil)

	_, err := s.CreateFolder(context.Background(), map[string]any{
		core.PropertyObjectTypeID: string(core.BaseTypeFolder),
		core.PropertyName:         "orphan",
	}, "", nil)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestNewOperationContextReturnsCopy(t *testing.T) {
	s, _ := newTestSession(t, nil)

	octx := s.NewOperationContext()
	octx.IncludeACLs = true

	fresh := s.NewOperationContext()
	require.False(t, fresh.IncludeACLs, "mutating a handed-out context must not change the default")
}

func TestSetDefaultContext(t *testing.T) {
	s, _ := newTestSession(t, nil)

	octx := s.NewOperationContext()
	octx.IncludeAllowableActions = true
	s.SetDefaultContext(octx)

	require.True(t, s.NewOperationContext().IncludeAllowableActions)
}

func TestRepositoryInfo(t *testing.T) {
	s, _ := newTestSession(t, nil)

	info, err := s.RepositoryInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "test", info.ID)
	require.NotEmpty(t, info.RootFolderID)
}
