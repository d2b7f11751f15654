// Package collection provides a generic, lazy, paginated sequence over
// any "fetch a page" operation. Iteration pulls pages of a configured
// size on demand and supports early termination; views created with
// SkipTo and GetPage are independent and re-fetch from the source.
package collection

import "sync"

// Page is one fetched chunk of a paginated result.
type Page[T any] struct {
	Items []T
	// NumItems is the total the repository declared for the whole result,
	// or -1 when it did not declare one.
	NumItems int64
	HasMore  bool
}

// FetchFunc fetches one page of at most maxItems items starting at
// skipCount. Implementations may return fewer items than requested.
type FetchFunc[T any] func(maxItems, skipCount int64) (*Page[T], error)

// Collection is a lazy view over a paginated result. The zero value is
// not usable; build one with New. Views are cheap: SkipTo, GetPage and
// Take return new views sharing the fetch function, and no view triggers
// I/O before it is iterated.
type Collection[T any] struct {
	fetch    FetchFunc[T]
	pageSize int64
	skip     int64
	// limit caps how many items this view yields; -1 means unlimited.
	limit int64

	mu        sync.Mutex
	total     int64
	pageItems int64
	hasMore   bool
}

// New builds a collection over fetch, iterating in chunks of pageSize.
// A non-positive pageSize falls back to DefaultPageSize.
func New[T any](fetch FetchFunc[T], pageSize int64) *Collection[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Collection[T]{fetch: fetch, pageSize: pageSize, limit: -1}
}

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 100

// SkipTo returns a new unlimited view starting at the given absolute
// offset. The receiver is not mutated and no fetch happens until the new
// view is iterated. Negative positions are treated as zero.
func (c *Collection[T]) SkipTo(position int64) *Collection[T] {
	if position < 0 {
		position = 0
	}
	return &Collection[T]{fetch: c.fetch, pageSize: c.pageSize, skip: position, limit: -1}
}

// GetPage returns a view that yields at most one page of the configured
// page size, starting at this view's offset.
func (c *Collection[T]) GetPage() *Collection[T] {
	return c.Take(c.pageSize)
}

// Take returns a view that yields at most maxItems items starting at this
// view's offset. Take(0) is an immediately exhausted view that never
// touches the source. Negative counts are treated as zero.
func (c *Collection[T]) Take(maxItems int64) *Collection[T] {
	if maxItems < 0 {
		maxItems = 0
	}
	return &Collection[T]{fetch: c.fetch, pageSize: c.pageSize, skip: c.skip, limit: maxItems}
}

// Each iterates the view, fetching pages as needed, and calls fn for every
// item. fn returns false to stop early. Fetch errors abort the iteration.
func (c *Collection[T]) Each(fn func(T) bool) error {
	offset := c.skip
	remaining := c.limit
	for {
		if remaining == 0 {
			return nil
		}
		// A page view (Take/GetPage) requests its whole quota at once so
		// the minimal number of fetches satisfies it; unlimited views
		// chunk by the configured page size.
		request := c.pageSize
		if remaining > 0 {
			request = remaining
		}
		page, err := c.fetch(request, offset)
		if err != nil {
			return err
		}
		c.record(page)

		for _, item := range page.Items {
			if !fn(item) {
				return nil
			}
		}

		fetched := int64(len(page.Items))
		offset += fetched
		if remaining > 0 {
			remaining -= fetched
		}
		// Exhausted when the source says so, or when it returned a short
		// (or empty) page.
		if !page.HasMore || fetched < request || fetched == 0 {
			return nil
		}
	}
}

// All drains the view into a slice.
func (c *Collection[T]) All() ([]T, error) {
	var items []T
	err := c.Each(func(item T) bool {
		items = append(items, item)
		return true
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Collection[T]) record(page *Page[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = page.NumItems
	c.pageItems = int64(len(page.Items))
	c.hasMore = page.HasMore
}

// TotalNumItems returns the total the most recently fetched page declared:
// -1 when the repository did not report one, 0 before any fetch.
func (c *Collection[T]) TotalNumItems() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// PageNumItems returns the size of the most recently fetched page, or 0
// before any fetch.
func (c *Collection[T]) PageNumItems() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageItems
}

// HasMoreItems reports whether the most recently fetched page declared
// more data after it; false before any fetch.
func (c *Collection[T]) HasMoreItems() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}
