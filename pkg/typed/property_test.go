package typed

import (
	"testing"

	"github.com/aretw0/shale/pkg/core"
)

type mapHolder map[string]*core.Property

func (h mapHolder) Property(id string) (*core.Property, bool) {
	p, ok := h[id]
	return p, ok
}

func holder(t *testing.T) mapHolder {
	t.Helper()
	mk := func(id string, kind core.PropertyKind, cardinality core.Cardinality, values ...any) *core.Property {
		p, err := core.NewProperty(core.PropertyDefinition{
			ID: id, Kind: kind, Cardinality: cardinality,
		}, values)
		if err != nil {
			t.Fatalf("building property %s: %v", id, err)
		}
		return p
	}
	return mapHolder{
		"x:title": mk("x:title", core.KindString, core.Single, "hello"),
		"x:pages": mk("x:pages", core.KindInteger, core.Single, int64(42)),
		"x:tags":  mk("x:tags", core.KindString, core.Multi, "a", "b"),
		"x:empty": mk("x:empty", core.KindString, core.Single),
	}
}

func TestFirst(t *testing.T) {
	h := holder(t)

	title, ok := First[string](h, "x:title")
	if !ok || title != "hello" {
		t.Errorf("First[string] = %q, %v", title, ok)
	}
	pages, ok := First[int64](h, "x:pages")
	if !ok || pages != 42 {
		t.Errorf("First[int64] = %d, %v", pages, ok)
	}

	if _, ok := First[string](h, "x:missing"); ok {
		t.Error("First hit on a missing property")
	}
	if _, ok := First[string](h, "x:empty"); ok {
		t.Error("First hit on an unset property")
	}
	if _, ok := First[int64](h, "x:title"); ok {
		t.Error("First returned a value of the wrong type")
	}
}

func TestValues(t *testing.T) {
	h := holder(t)

	tags := Values[string](h, "x:tags")
	if len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Errorf("Values[string] = %v", tags)
	}
	if Values[string](h, "x:missing") != nil {
		t.Error("Values on a missing property must be nil")
	}
	if got := Values[int64](h, "x:tags"); got != nil {
		t.Errorf("Values with a mismatched type = %v, want nil", got)
	}
}
