package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/shale/pkg/adapters/memory"
	"github.com/aretw0/shale/pkg/core"
	"github.com/aretw0/shale/pkg/session"
)

func TestRefreshPicksUpChanges(t *testing.T) {
	s, binding := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	doc := mustCreateDocument(t, s, root.ID(), "draft.md")
	before := doc.RefreshedAt()

	// Rename behind the session's back.
	_, _, err = binding.UpdateProperties(ctx, "test", doc.ID(), "", []core.PropertyData{
		{ID: core.PropertyName, Kind: core.KindString, Values: []any{"final.md"}},
	})
	require.NoError(t, err)
	require.Equal(t, "draft.md", doc.Name(), "stale until refreshed")

	id := doc.ID()
	require.NoError(t, doc.Refresh(ctx))
	require.Equal(t, "final.md", doc.Name())
	require.Equal(t, id, doc.ID(), "identity survives refresh")
	require.False(t, doc.RefreshedAt().Before(before))
}

func TestRefreshAfterDeleteReportsGone(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	doc := mustCreateDocument(t, s, root.ID(), "doomed.md")

	require.NoError(t, s.Delete(ctx, doc.ID()))

	err = doc.Refresh(ctx)
	require.ErrorIs(t, err, core.ErrObjectGone)
	require.ErrorIs(t, err, core.ErrNotFound, "gone is a refinement of not found")
}

func TestUpdatePropertiesRefreshesInPlace(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	doc := mustCreateDocument(t, s, root.ID(), "old.md")

	updated, err := doc.UpdateProperties(ctx, map[string]any{
		core.PropertyName: "new.md",
	})
	require.NoError(t, err)
	require.Same(t, session.Object(doc), updated, "same repository id must return the receiver")
	require.Equal(t, "new.md", doc.Name())
}

func TestUpdatePropertiesSkipsReadOnly(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	doc := mustCreateDocument(t, s, root.ID(), "fixed.md")
	created := doc.PropertyValue(core.PropertyCreatedBy)

	// Read-only entries are dropped, not rejected.
	_, err = doc.UpdateProperties(ctx, map[string]any{
		core.PropertyName:      "fixed-2.md",
		core.PropertyCreatedBy: "intruder",
	})
	require.NoError(t, err)
	require.Equal(t, created, doc.PropertyValue(core.PropertyCreatedBy))
	require.Equal(t, "fixed-2.md", doc.Name())
}

func TestUpdatePropertiesRejectsUnknownProperty(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	doc := mustCreateDocument(t, s, root.ID(), "strict.md")

	_, err = doc.UpdateProperties(ctx, map[string]any{"x:ghost": "boo"})
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestMove(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)

	makeFolder := func(name string) *session.Folder {
		f, err := s.CreateFolder(ctx, map[string]any{
			core.PropertyObjectTypeID: string(core.BaseTypeFolder),
			core.PropertyName:         name,
		}, root.ID(), nil)
		require.NoError(t, err)
		return f
	}
	inbox, archive := makeFolder("inbox"), makeFolder("archive")
	doc := mustCreateDocument(t, s, inbox.ID(), "memo.md")

	require.NoError(t, doc.Move(ctx, inbox.ID(), archive.ID()))

	moved, err := s.GetObjectByPath(ctx, "/archive/memo.md", nil)
	require.NoError(t, err)
	require.Equal(t, doc.ID(), moved.ID())

	_, err = s.GetObjectByPath(ctx, "/inbox/memo.md", nil)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestMoveValidatesFolderIDs(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	doc := mustCreateDocument(t, s, root.ID(), "pinned.md")

	require.ErrorIs(t, doc.Move(ctx, "", "somewhere"), core.ErrInvalidArgument)
	require.ErrorIs(t, doc.Move(ctx, root.ID(), ""), core.ErrInvalidArgument)
}

func TestFolderChildrenPagination(t *testing.T) {
	s, binding := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	names := []string{"a.md", "b.md", "c.md", "d.md", "e.md"}
	for _, name := range names {
		mustCreateDocument(t, s, root.ID(), name)
	}

	octx := s.NewOperationContext()
	octx.MaxItemsPerPage = 2

	before := binding.CallCount("GetChildren")
	children, err := root.Children(ctx, octx).All()
	require.NoError(t, err)
	require.Len(t, children, len(names))
	require.Equal(t, before+3, binding.CallCount("GetChildren"), "5 children at page size 2 take 3 fetches")

	// Children come back sorted by name.
	for i, child := range children {
		require.Equal(t, names[i], child.Name())
	}
}

func TestFolderChildrenEarlyStop(t *testing.T) {
	s, binding := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	for _, name := range []string{"a.md", "b.md", "c.md", "d.md"} {
		mustCreateDocument(t, s, root.ID(), name)
	}

	octx := s.NewOperationContext()
	octx.MaxItemsPerPage = 2

	before := binding.CallCount("GetChildren")
	seen := 0
	err = root.Children(ctx, octx).Each(func(session.Object) bool {
		seen++
		return false
	})
	require.NoError(t, err)
	require.Equal(t, 1, seen)
	require.Equal(t, before+1, binding.CallCount("GetChildren"), "early stop must not fetch further pages")
}

func TestFolderChildrenPopulateObjectCache(t *testing.T) {
	s, binding := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	doc := mustCreateDocument(t, s, root.ID(), "warm.md")
	s.Clear()

	children, err := root.Children(ctx, nil).All()
	require.NoError(t, err)
	require.Len(t, children, 1)

	fetches := binding.CallCount("GetObject")
	cached, err := s.GetObject(ctx, doc.ID(), nil)
	require.NoError(t, err)
	require.Same(t, children[0], cached, "listing must warm the object cache")
	require.Equal(t, fetches, binding.CallCount("GetObject"))
}

func TestSkipToTakeWindow(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx := context.Background()

	root, err := s.RootFolder(ctx, nil)
	require.NoError(t, err)
	names := []string{"a.md", "b.md", "c.md", "d.md", "e.md", "f.md"}
	for _, name := range names {
		mustCreateDocument(t, s, root.ID(), name)
	}

	window, err := root.Children(ctx, nil).SkipTo(2).Take(3).All()
	require.NoError(t, err)
	require.Len(t, window, 3)
	require.Equal(t, "c.md", window[0].Name())
	require.Equal(t, "e.md", window[2].Name())
}

func writeRelationshipFixture(t *testing.T, binding *memory.Binding) {
	t.Helper()
	require.NoError(t, binding.RegisterType("test", memory.RelationshipBaseType()))
	require.NoError(t, binding.RegisterType("test", memory.PolicyBaseType()))

	fixture := `objects:
  - id: doc-a
    type: cmis:document
    name: a.md
  - id: doc-b
    type: cmis:document
    name: b.md
  - id: rel-1
    type: cmis:relationship
    name: rel-1
    properties:
      cmis:sourceId: doc-a
      cmis:targetId: doc-b
  - id: pol-1
    type: cmis:policy
    name: retention
    properties:
      cmis:policyText: keep seven years
`
	path := filepath.Join(t.TempDir(), "relations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	require.NoError(t, binding.LoadFile("test", path))
}

func TestRelationshipsInclusion(t *testing.T) {
	s, binding := newTestSession(t, nil)
	ctx := context.Background()
	writeRelationshipFixture(t, binding)

	octx := s.NewOperationContext()
	octx.IncludeRelationships = core.RelationshipsSource

	doc, err := s.GetObject(ctx, "doc-a", octx)
	require.NoError(t, err)
	require.Len(t, doc.Relationships(), 1)

	rel, ok := doc.Relationships()[0].(*session.Relationship)
	require.True(t, ok)
	require.Equal(t, "doc-a", rel.SourceID())
	require.Equal(t, "doc-b", rel.TargetID())

	// doc-a is nobody's target.
	octx.IncludeRelationships = core.RelationshipsTarget
	doc, err = s.GetObject(ctx, "doc-a", octx)
	require.NoError(t, err)
	require.Empty(t, doc.Relationships())

	// Without the flag, relationships stay out of the payload.
	plain, err := s.GetObject(ctx, "doc-a", nil)
	require.NoError(t, err)
	require.Empty(t, plain.Relationships())
}

func TestPolicyObject(t *testing.T) {
	s, binding := newTestSession(t, nil)
	writeRelationshipFixture(t, binding)

	obj, err := s.GetObject(context.Background(), "pol-1", nil)
	require.NoError(t, err)

	policy, ok := obj.(*session.Policy)
	require.True(t, ok)
	require.Equal(t, "keep seven years", policy.PolicyText())
	require.Equal(t, core.BaseTypePolicy, policy.BaseType())
}

func TestCanAndAllowableActions(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx := context.Background()

	octx := s.NewOperationContext()
	octx.IncludeAllowableActions = true
	root, err := s.RootFolder(ctx, octx)
	require.NoError(t, err)

	require.True(t, root.Can("canGetChildren"))
	require.False(t, root.Can("canDoMagic"))

	plain, err := s.GetObject(ctx, root.ID(), nil)
	require.NoError(t, err)
	require.False(t, plain.Can("canGetChildren"), "actions absent when not requested")
}

func TestCreationContextIsCopied(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx := context.Background()

	octx := s.NewOperationContext()
	octx.IncludeAllowableActions = true
	root, err := s.RootFolder(ctx, octx)
	require.NoError(t, err)

	cc := root.CreationContext()
	require.True(t, cc.IncludeAllowableActions)
	cc.IncludeAllowableActions = false
	require.True(t, root.CreationContext().IncludeAllowableActions,
		"mutating the returned context must not affect the object")
}
