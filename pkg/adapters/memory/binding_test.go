package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/shale/pkg/core"
)

func newTestBinding(t *testing.T) *Binding {
	t.Helper()
	b := NewBinding()
	require.NoError(t, b.AddRepository(core.RepositoryInfo{ID: "test", Name: "Test"}))
	return b
}

func rootID(t *testing.T, b *Binding) string {
	t.Helper()
	info, err := b.GetRepositoryInfo(context.Background(), "test")
	require.NoError(t, err)
	return info.RootFolderID
}

func createDoc(t *testing.T, b *Binding, folderID, name string) string {
	t.Helper()
	id, err := b.CreateDocument(context.Background(), "test", []core.PropertyData{
		{ID: core.PropertyObjectTypeID, Kind: core.KindID, Values: []any{string(core.BaseTypeDocument)}},
		{ID: core.PropertyName, Kind: core.KindString, Values: []any{name}},
	}, folderID)
	require.NoError(t, err)
	return id
}

func TestAddRepositoryValidation(t *testing.T) {
	b := NewBinding()
	require.ErrorIs(t, b.AddRepository(core.RepositoryInfo{}), core.ErrInvalidArgument)
	require.NoError(t, b.AddRepository(core.RepositoryInfo{ID: "r"}))
	require.ErrorIs(t, b.AddRepository(core.RepositoryInfo{ID: "r"}), core.ErrInvalidArgument)
}

func TestUnknownRepository(t *testing.T) {
	b := newTestBinding(t)
	_, err := b.GetRepositoryInfo(context.Background(), "ghost")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetObjectIncludesSystemProperties(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	id := createDoc(t, b, rootID(t, b), "readme.md")

	data, err := b.GetObject(ctx, "test", id, core.ObjectParams{Filter: core.FilterAll})
	require.NoError(t, err)
	require.Equal(t, id, data.FirstString(core.PropertyID))
	require.Equal(t, string(core.BaseTypeDocument), data.FirstString(core.PropertyBaseTypeID))
	require.Equal(t, "readme.md", data.FirstString(core.PropertyName))
	require.Equal(t, "0", data.FirstString(core.PropertyChangeToken))
	require.NotEmpty(t, data.FirstString(core.PropertyCreatedBy))
}

func TestPropertyFilterKeepsSelfDescribingIDs(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	id := createDoc(t, b, rootID(t, b), "readme.md")

	data, err := b.GetObject(ctx, "test", id, core.ObjectParams{Filter: "cmis:name"})
	require.NoError(t, err)
	require.Equal(t, "readme.md", data.FirstString(core.PropertyName))
	require.Equal(t, id, data.FirstString(core.PropertyID))
	require.NotEmpty(t, data.FirstString(core.PropertyObjectTypeID))
	require.Empty(t, data.Property(core.PropertyCreatedBy), "unrequested property leaked through the filter")
}

func TestGetObjectByPath(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	root := rootID(t, b)

	folder, err := b.CreateFolder(ctx, "test", []core.PropertyData{
		{ID: core.PropertyObjectTypeID, Values: []any{string(core.BaseTypeFolder)}},
		{ID: core.PropertyName, Values: []any{"docs"}},
	}, root)
	require.NoError(t, err)
	id := createDoc(t, b, folder, "guide.md")

	data, err := b.GetObjectByPath(ctx, "test", "/docs/guide.md", core.ObjectParams{})
	require.NoError(t, err)
	require.Equal(t, id, data.FirstString(core.PropertyID))

	rootData, err := b.GetObjectByPath(ctx, "test", "/", core.ObjectParams{})
	require.NoError(t, err)
	require.Equal(t, root, rootData.FirstString(core.PropertyID))

	_, err = b.GetObjectByPath(ctx, "test", "/docs/missing.md", core.ObjectParams{})
	require.ErrorIs(t, err, core.ErrNotFound)
	_, err = b.GetObjectByPath(ctx, "test", "docs/guide.md", core.ObjectParams{})
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestFolderPathProperty(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()

	outer, err := b.CreateFolder(ctx, "test", []core.PropertyData{
		{ID: core.PropertyObjectTypeID, Values: []any{string(core.BaseTypeFolder)}},
		{ID: core.PropertyName, Values: []any{"a"}},
	}, rootID(t, b))
	require.NoError(t, err)
	inner, err := b.CreateFolder(ctx, "test", []core.PropertyData{
		{ID: core.PropertyObjectTypeID, Values: []any{string(core.BaseTypeFolder)}},
		{ID: core.PropertyName, Values: []any{"b"}},
	}, outer)
	require.NoError(t, err)

	data, err := b.GetObject(ctx, "test", inner, core.ObjectParams{})
	require.NoError(t, err)
	require.Equal(t, "/a/b", data.FirstString(core.PropertyPath))
	require.Equal(t, outer, data.FirstString(core.PropertyParentID))
}

func TestGetChildrenPagination(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	root := rootID(t, b)
	for _, name := range []string{"e", "c", "a", "d", "b"} {
		createDoc(t, b, root, name)
	}

	page, err := b.GetChildren(ctx, "test", root, core.ObjectParams{}, 2, 0)
	require.NoError(t, err)
	require.Len(t, page.Objects, 2)
	require.EqualValues(t, 5, page.NumItems)
	require.True(t, page.HasMore)
	// Sorted by name regardless of creation order.
	require.Equal(t, "a", page.Objects[0].FirstString(core.PropertyName))
	require.Equal(t, "b", page.Objects[1].FirstString(core.PropertyName))

	last, err := b.GetChildren(ctx, "test", root, core.ObjectParams{}, 10, 4)
	require.NoError(t, err)
	require.Len(t, last.Objects, 1)
	require.False(t, last.HasMore)
	require.Equal(t, "e", last.Objects[0].FirstString(core.PropertyName))

	beyond, err := b.GetChildren(ctx, "test", root, core.ObjectParams{}, 10, 99)
	require.NoError(t, err)
	require.Empty(t, beyond.Objects)
	require.False(t, beyond.HasMore)
}

func TestGetChildrenPathSegments(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	root := rootID(t, b)
	createDoc(t, b, root, "seg.md")

	withSegments, err := b.GetChildren(ctx, "test", root, core.ObjectParams{IncludePathSegments: true}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, "seg.md", withSegments.Objects[0].PathSegment)

	without, err := b.GetChildren(ctx, "test", root, core.ObjectParams{}, 10, 0)
	require.NoError(t, err)
	require.Empty(t, without.Objects[0].PathSegment)
}

func TestGetChildrenOrderBy(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	root := rootID(t, b)

	_, err := b.GetChildren(ctx, "test", root, core.ObjectParams{OrderBy: core.PropertyName}, 10, 0)
	require.NoError(t, err)

	_, err = b.GetChildren(ctx, "test", root, core.ObjectParams{OrderBy: "cmis:creationDate"}, 10, 0)
	require.ErrorIs(t, err, core.ErrUnsupported)
}

func TestGetChildrenRejectsNonFolder(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	id := createDoc(t, b, rootID(t, b), "leaf.md")

	_, err := b.GetChildren(ctx, "test", id, core.ObjectParams{}, 10, 0)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestCreateValidation(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	root := rootID(t, b)

	// Missing type.
	_, err := b.CreateDocument(ctx, "test", []core.PropertyData{
		{ID: core.PropertyName, Values: []any{"x"}},
	}, root)
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	// Missing name.
	_, err = b.CreateDocument(ctx, "test", []core.PropertyData{
		{ID: core.PropertyObjectTypeID, Values: []any{string(core.BaseTypeDocument)}},
	}, root)
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	// Folder type for a document create.
	_, err = b.CreateDocument(ctx, "test", []core.PropertyData{
		{ID: core.PropertyObjectTypeID, Values: []any{string(core.BaseTypeFolder)}},
		{ID: core.PropertyName, Values: []any{"x"}},
	}, root)
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	// Duplicate sibling name.
	createDoc(t, b, root, "taken.md")
	_, err = b.CreateDocument(ctx, "test", []core.PropertyData{
		{ID: core.PropertyObjectTypeID, Values: []any{string(core.BaseTypeDocument)}},
		{ID: core.PropertyName, Values: []any{"taken.md"}},
	}, root)
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	// Folders must be filed.
	_, err = b.CreateFolder(ctx, "test", []core.PropertyData{
		{ID: core.PropertyObjectTypeID, Values: []any{string(core.BaseTypeFolder)}},
		{ID: core.PropertyName, Values: []any{"unfiled"}},
	}, "")
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestUpdatePropertiesBumpsChangeToken(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	id := createDoc(t, b, rootID(t, b), "note.md")

	newID, token, err := b.UpdateProperties(ctx, "test", id, "", []core.PropertyData{
		{ID: core.PropertyName, Values: []any{"note-2.md"}},
		{ID: core.PropertyCreatedBy, Values: []any{"intruder"}}, // system: ignored
	})
	require.NoError(t, err)
	require.Equal(t, id, newID)
	require.Equal(t, "1", token)

	data, err := b.GetObject(ctx, "test", id, core.ObjectParams{})
	require.NoError(t, err)
	require.Equal(t, "note-2.md", data.FirstString(core.PropertyName))
	require.NotEqual(t, "intruder", data.FirstString(core.PropertyCreatedBy))
}

func TestUpdatePropertiesClearsOnEmptyValues(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	id := createDoc(t, b, rootID(t, b), "tagged.md")

	_, _, err := b.UpdateProperties(ctx, "test", id, "", []core.PropertyData{
		{ID: "x:color", Kind: core.KindString, Values: []any{"red"}},
	})
	require.NoError(t, err)
	data, err := b.GetObject(ctx, "test", id, core.ObjectParams{})
	require.NoError(t, err)
	require.Equal(t, []any{"red"}, data.Property("x:color"))

	_, _, err = b.UpdateProperties(ctx, "test", id, "", []core.PropertyData{
		{ID: "x:color", Kind: core.KindString},
	})
	require.NoError(t, err)
	data, err = b.GetObject(ctx, "test", id, core.ObjectParams{})
	require.NoError(t, err)
	require.Nil(t, data.Property("x:color"))
}

func TestMoveObject(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	root := rootID(t, b)

	folder := func(name string) string {
		id, err := b.CreateFolder(ctx, "test", []core.PropertyData{
			{ID: core.PropertyObjectTypeID, Values: []any{string(core.BaseTypeFolder)}},
			{ID: core.PropertyName, Values: []any{name}},
		}, root)
		require.NoError(t, err)
		return id
	}
	src, dst := folder("src"), folder("dst")
	id := createDoc(t, b, src, "moving.md")

	// Wrong source folder.
	_, err := b.MoveObject(ctx, "test", id, dst, src)
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = b.MoveObject(ctx, "test", id, src, dst)
	require.NoError(t, err)

	_, err = b.GetObjectByPath(ctx, "test", "/dst/moving.md", core.ObjectParams{})
	require.NoError(t, err)
	_, err = b.GetObjectByPath(ctx, "test", "/src/moving.md", core.ObjectParams{})
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteObject(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	root := rootID(t, b)

	folder, err := b.CreateFolder(ctx, "test", []core.PropertyData{
		{ID: core.PropertyObjectTypeID, Values: []any{string(core.BaseTypeFolder)}},
		{ID: core.PropertyName, Values: []any{"full"}},
	}, root)
	require.NoError(t, err)
	id := createDoc(t, b, folder, "inside.md")

	// Non-empty folders are protected.
	require.ErrorIs(t, b.DeleteObject(ctx, "test", folder, true), core.ErrInvalidArgument)

	require.NoError(t, b.DeleteObject(ctx, "test", id, true))
	require.NoError(t, b.DeleteObject(ctx, "test", folder, true))
	require.ErrorIs(t, b.DeleteObject(ctx, "test", folder, true), core.ErrNotFound)
}

func TestRenditionFiltering(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	id := createDoc(t, b, rootID(t, b), "img.md")

	b.mu.Lock()
	b.repos["test"].objects[id].renditions = []core.Rendition{
		{StreamID: "s1", Kind: "cmis:thumbnail", MimeType: "image/png"},
		{StreamID: "s2", Kind: "cmis:preview", MimeType: "image/jpeg"},
		{StreamID: "s3", Kind: "custom:pdf", MimeType: "application/pdf"},
	}
	b.mu.Unlock()

	get := func(filter string) []core.Rendition {
		data, err := b.GetObject(ctx, "test", id, core.ObjectParams{RenditionFilter: filter})
		require.NoError(t, err)
		return data.Renditions
	}

	require.Empty(t, get(core.RenditionFilterNone))
	require.Empty(t, get(""))
	require.Len(t, get("*"), 3)
	require.Len(t, get("image/*"), 2)
	require.Len(t, get("cmis:thumbnail"), 1)
	require.Len(t, get("cmis:thumbnail,application/pdf"), 2)
	require.Empty(t, get("video/*"))
}

func TestInclusionFlags(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()
	id := createDoc(t, b, rootID(t, b), "secure.md")

	b.mu.Lock()
	obj := b.repos["test"].objects[id]
	obj.acl = &core.ACL{ACEs: []core.ACE{{Principal: "alice", Permissions: []string{"cmis:read"}}}}
	obj.policyIDs = []string{"pol-1"}
	b.mu.Unlock()

	plain, err := b.GetObject(ctx, "test", id, core.ObjectParams{})
	require.NoError(t, err)
	require.Nil(t, plain.ACL)
	require.Empty(t, plain.PolicyIDs)
	require.Empty(t, plain.AllowableActions)

	full, err := b.GetObject(ctx, "test", id, core.ObjectParams{
		IncludeAllowableActions: true,
		IncludeACLs:             true,
		IncludePolicyIDs:        true,
	})
	require.NoError(t, err)
	require.NotNil(t, full.ACL)
	require.Equal(t, []string{"pol-1"}, full.PolicyIDs)
	require.Contains(t, full.AllowableActions, "canUpdateProperties")
}

func TestTypeChildrenAndDescendants(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()

	require.NoError(t, b.RegisterType("test", &core.TypeData{
		ID: "note", BaseType: core.BaseTypeDocument, ParentID: string(core.BaseTypeDocument),
	}))
	require.NoError(t, b.RegisterType("test", &core.TypeData{
		ID: "memo", BaseType: core.BaseTypeDocument, ParentID: "note",
	}))

	base, err := b.GetTypeChildren(ctx, "test", "", true, 10, 0)
	require.NoError(t, err)
	require.Len(t, base.Types, 2)
	require.EqualValues(t, 2, base.NumItems)

	// Paged.
	one, err := b.GetTypeChildren(ctx, "test", "", false, 1, 0)
	require.NoError(t, err)
	require.Len(t, one.Types, 1)
	require.True(t, one.HasMore)
	require.Empty(t, one.Types[0].PropertyDefinitions)

	tree, err := b.GetTypeDescendants(ctx, "test", string(core.BaseTypeDocument), -1, false)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Equal(t, "note", tree[0].Type.ID)
	require.Len(t, tree[0].Children, 1)

	shallow, err := b.GetTypeDescendants(ctx, "test", string(core.BaseTypeDocument), 1, false)
	require.NoError(t, err)
	require.Empty(t, shallow[0].Children)

	_, err = b.GetTypeDescendants(ctx, "test", "", 0, false)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestRegisterTypeValidation(t *testing.T) {
	b := newTestBinding(t)

	require.ErrorIs(t, b.RegisterType("test", &core.TypeData{ID: "x", BaseType: "bogus"}), core.ErrUnknownType)
	require.ErrorIs(t, b.RegisterType("test", &core.TypeData{
		ID: "x", BaseType: core.BaseTypeDocument, ParentID: "missing",
	}), core.ErrNotFound)
}

func TestCallCounters(t *testing.T) {
	b := newTestBinding(t)
	ctx := context.Background()

	require.Zero(t, b.CallCount("GetObject"))
	_, _ = b.GetObject(ctx, "test", "nope", core.ObjectParams{})
	_, _ = b.GetObject(ctx, "test", "nope", core.ObjectParams{})
	require.Equal(t, 2, b.CallCount("GetObject"))

	b.ClearAllCaches()
	b.ClearRepositoryCache("test")
	require.Equal(t, 1, b.CallCount("ClearAllCaches"))
	require.Equal(t, 1, b.CallCount("ClearRepositoryCache"))
}
