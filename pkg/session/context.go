package session

import (
	"sort"
	"strings"

	"github.com/aretw0/shale/pkg/core"
)

// OperationContext bundles the retrieval options of a fetch: which
// properties and renditions to ask for, which optional object parts to
// include, paging, ordering, and whether results may be cached. Build one,
// set its fields, then hand it to the session; a context must not be
// mutated once it has been used for a fetch (the session stores a copy as
// each object's creation context, so later mutation cannot corrupt
// refresh behavior).
type OperationContext struct {
	// Filter is the set of property ids to fetch. Empty means "all".
	Filter []string
	// RenditionFilter is the set of rendition kind or mimetype patterns to
	// include (e.g. "cmis:thumbnail", "image/*"). Empty means none.
	RenditionFilter []string

	IncludeAllowableActions bool
	IncludeACLs             bool
	IncludePolicies         bool
	IncludeRelationships    core.RelationshipDirection
	IncludePathSegments     bool

	OrderBy string

	CacheEnabled bool
	// MaxItemsPerPage is the chunk size of lazy listings; non-positive
	// falls back to the collection default.
	MaxItemsPerPage int64
}

// NewOperationContext returns a context with the conservative defaults
// the session uses when the caller passes nil: no optional parts, no
// renditions, caching on.
func NewOperationContext() *OperationContext {
	return &OperationContext{
		IncludeRelationships: core.RelationshipsNone,
		CacheEnabled:         true,
		MaxItemsPerPage:      100,
	}
}

// Copy returns an independent copy of the context.
func (c *OperationContext) Copy() *OperationContext {
	dup := *c
	dup.Filter = append([]string(nil), c.Filter...)
	dup.RenditionFilter = append([]string(nil), c.RenditionFilter...)
	return &dup
}

// FilterString renders the property filter for the wire. The result
// always contains cmis:objectId, cmis:baseTypeId and cmis:objectTypeId,
// even when the caller's filter omits them, so every fetched object is
// self-describing. An empty filter (or one containing "*") renders as "*".
func (c *OperationContext) FilterString() string {
	if len(c.Filter) == 0 {
		return core.FilterAll
	}
	set := make(map[string]bool, len(c.Filter)+3)
	for _, id := range c.Filter {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if id == core.FilterAll {
			return core.FilterAll
		}
		set[id] = true
	}
	set[core.PropertyID] = true
	set[core.PropertyBaseTypeID] = true
	set[core.PropertyObjectTypeID] = true

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// RenditionFilterString renders the rendition filter for the wire;
// "cmis:none" when empty.
func (c *OperationContext) RenditionFilterString() string {
	if len(c.RenditionFilter) == 0 {
		return core.RenditionFilterNone
	}
	filter := append([]string(nil), c.RenditionFilter...)
	sort.Strings(filter)
	return strings.Join(filter, ",")
}

// CacheKey derives the deterministic key this context contributes to
// object-cache lookups. It encodes exactly the fields that affect the
// fetched payload: the inclusion flags, the property filter, the
// relationships direction, and the rendition filter. Path-segment
// inclusion and page size do not change a single object's payload and
// deliberately stay out of the key. Two contexts with equal keys are
// interchangeable for caching.
func (c *OperationContext) CacheKey() string {
	var b strings.Builder
	if c.IncludeAllowableActions {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	if c.IncludeACLs {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	if c.IncludePolicies {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	b.WriteByte('|')
	b.WriteString(c.FilterString())
	b.WriteByte('|')
	b.WriteString(string(c.relationships()))
	b.WriteByte('|')
	b.WriteString(c.RenditionFilterString())
	return b.String()
}

// Params translates the context into the parameter bundle a binding call
// takes.
func (c *OperationContext) Params() core.ObjectParams {
	return core.ObjectParams{
		Filter:                  c.FilterString(),
		IncludeAllowableActions: c.IncludeAllowableActions,
		IncludeRelationships:    c.relationships(),
		RenditionFilter:         c.RenditionFilterString(),
		IncludePolicyIDs:        c.IncludePolicies,
		IncludeACLs:             c.IncludeACLs,
		IncludePathSegments:     c.IncludePathSegments,
		OrderBy:                 c.OrderBy,
	}
}

func (c *OperationContext) relationships() core.RelationshipDirection {
	if c.IncludeRelationships == "" {
		return core.RelationshipsNone
	}
	return c.IncludeRelationships
}
