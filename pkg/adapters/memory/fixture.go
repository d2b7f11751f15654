package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/shale/pkg/core"
)

// fixtureFile is the on-disk shape of a fixture. A file can declare a
// repository, extra type definitions, and objects, in any combination.
type fixtureFile struct {
	Repository *core.RepositoryInfo `yaml:"repository,omitempty"`
	Types      []*core.TypeData     `yaml:"types,omitempty"`
	Objects    []fixtureObject      `yaml:"objects,omitempty"`
}

type fixtureObject struct {
	// ID pins the object id. Optional; generated when empty.
	ID   string `yaml:"id,omitempty"`
	Type string `yaml:"type"`
	Name string `yaml:"name"`
	// Parent is the absolute path of the containing folder. Defaults to
	// the root folder. Parents must appear before their children, either
	// earlier in the same file or in a file that sorts first.
	Parent     string           `yaml:"parent,omitempty"`
	Properties map[string]any   `yaml:"properties,omitempty"`
	Renditions []core.Rendition `yaml:"renditions,omitempty"`
	Policies   []string         `yaml:"policies,omitempty"`
	ACL        *core.ACL        `yaml:"acl,omitempty"`
}

// LoadDirectory loads every *.yaml and *.yml file in dir into the
// repository, in lexical filename order. Files may declare the
// repository itself; otherwise it must exist already.
func (b *Binding) LoadDirectory(repositoryID, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading fixture directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return fmt.Errorf("%w: no fixture files in %s", core.ErrNotFound, dir)
	}
	for _, name := range names {
		if err := b.LoadFile(repositoryID, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("fixture %s: %w", name, err)
		}
	}
	return nil
}

// LoadFile loads one fixture file. Loading is an upsert: objects that
// already exist (matched by pinned id, or by parent path and name) have
// their properties replaced and their change token bumped, so a file can
// be re-applied after edits.
func (b *Binding) LoadFile(repositoryID, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}

	if file.Repository != nil {
		info := *file.Repository
		if info.ID == "" {
			info.ID = repositoryID
		}
		if !b.hasRepository(info.ID) {
			if err := b.AddRepository(info); err != nil {
				return err
			}
		}
	}

	for _, data := range file.Types {
		if err := b.upsertType(repositoryID, data); err != nil {
			return err
		}
	}
	for i, fo := range file.Objects {
		if err := b.applyObject(repositoryID, fo); err != nil {
			return fmt.Errorf("object %d (%s): %w", i, fo.Name, err)
		}
	}
	b.debug("fixture loaded", "repository", repositoryID, "path", path,
		"types", len(file.Types), "objects", len(file.Objects))
	return nil
}

func (b *Binding) hasRepository(repositoryID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.repos[repositoryID]
	return ok
}

func (b *Binding) upsertType(repositoryID string, data *core.TypeData) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return err
	}
	if data == nil || data.ID == "" {
		return fmt.Errorf("%w: type data is incomplete", core.ErrInvalidArgument)
	}
	if !data.BaseType.Valid() {
		return fmt.Errorf("%w: %q", core.ErrUnknownType, data.BaseType)
	}
	repo.registerType(data)
	return nil
}

func (b *Binding) applyObject(repositoryID string, fo fixtureObject) error {
	if fo.Type == "" || fo.Name == "" {
		return fmt.Errorf("%w: type and name are required", core.ErrInvalidArgument)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	repo, err := b.repoLocked(repositoryID)
	if err != nil {
		return err
	}

	parentPath := fo.Parent
	if parentPath == "" {
		parentPath = "/"
	}
	parent, err := repo.resolvePath(parentPath)
	if err != nil {
		return err
	}
	if parent.baseType != core.BaseTypeFolder {
		return fmt.Errorf("%w: parent %q is not a folder", core.ErrInvalidArgument, parentPath)
	}

	existing := repo.findExisting(fo, parent.id)
	if existing != nil {
		existing.custom = make(map[string]core.PropertyData)
		for id, value := range fo.Properties {
			existing.custom[id] = fixtureProperty(id, value)
		}
		existing.renditions = fo.Renditions
		existing.policyIDs = fo.Policies
		existing.acl = fo.ACL
		existing.changeToken++
		existing.modifiedBy = b.user
		existing.modifiedAt = b.now()
		return nil
	}

	props := []core.PropertyData{
		{ID: core.PropertyObjectTypeID, Kind: core.KindID, Values: []any{fo.Type}},
		{ID: core.PropertyName, Kind: core.KindString, Values: []any{fo.Name}},
	}
	for id, value := range fo.Properties {
		props = append(props, fixtureProperty(id, value))
	}
	id, err := b.createLocked(repo, props, parent.id, "", fo.ID)
	if err != nil {
		return err
	}
	obj := repo.objects[id]
	obj.renditions = fo.Renditions
	obj.policyIDs = fo.Policies
	obj.acl = fo.ACL
	return nil
}

func (r *repository) findExisting(fo fixtureObject, parentID string) *storedObject {
	if fo.ID != "" {
		return r.objects[fo.ID]
	}
	for _, childID := range r.children[parentID] {
		if r.objects[childID].name == fo.Name {
			return r.objects[childID]
		}
	}
	return nil
}

// fixtureProperty converts a YAML value into wire property data. The
// declared kind is inferred from the decoded Go type; string scalars stay
// undeclared because the string-backed kinds (string, id, html, uri)
// cannot be told apart, and an undeclared kind defers to the definition.
func fixtureProperty(id string, value any) core.PropertyData {
	values := asList(value)
	var kind core.PropertyKind
	if len(values) > 0 {
		kind = inferKind(values[0])
	}
	for i, v := range values {
		values[i] = normalizeScalar(v)
	}
	return core.PropertyData{ID: id, Kind: kind, Values: values}
}

func asList(value any) []any {
	if list, ok := value.([]any); ok {
		return append([]any(nil), list...)
	}
	if value == nil {
		return nil
	}
	return []any{value}
}

func inferKind(v any) core.PropertyKind {
	switch v.(type) {
	case bool:
		return core.KindBoolean
	case int, int64:
		return core.KindInteger
	case float64:
		return core.KindDecimal
	case time.Time:
		return core.KindDateTime
	default:
		// String scalars carry no declared kind.
		return ""
	}
}

// normalizeScalar widens YAML's decoded scalars to the value types the
// property model uses.
func normalizeScalar(v any) any {
	if n, ok := v.(int); ok {
		return int64(n)
	}
	return v
}
