package canvas

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoMoreItems is returned by Next once the iterator is exhausted.
var ErrNoMoreItems = errors.New("no more items")

// PageFetcher fetches one page of results. The first call receives the list
// endpoint path with the caller's query; subsequent calls receive the Next
// link verbatim as handed back by the server.
type PageFetcher[T any] interface {
	FetchPage(ctx context.Context, pathOrLink string) (*Page[T], error)
}

// PageIterator walks a paginated list one item at a time, fetching pages
// lazily. It follows Link-header cursors sequentially with no concurrency and
// no backoff.
type PageIterator[T any] struct {
	ctx       context.Context
	fetcher   PageFetcher[T]
	nextLink  string
	items     []T
	index     int
	exhausted bool
}

// NewPageIterator creates an iterator starting at the given endpoint path.
func NewPageIterator[T any](ctx context.Context, fetcher PageFetcher[T], path string) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:      ctx,
		fetcher:  fetcher,
		nextLink: path,
	}
}

// HasNext reports whether another item is available, fetching the next page
// if the buffered one is spent.
func (it *PageIterator[T]) HasNext() bool {
	for it.index >= len(it.items) {
		if it.exhausted {
			return false
		}

		if err := it.fetchNext(); err != nil {
			// Surface the failure on the following Next call.
			return true
		}
	}

	return true
}

// Next returns the next item, or ErrNoMoreItems once the list is exhausted.
func (it *PageIterator[T]) Next() (*T, error) {
	for it.index >= len(it.items) {
		if it.exhausted {
			return nil, ErrNoMoreItems
		}

		if err := it.fetchNext(); err != nil {
			return nil, err
		}
	}

	item := it.items[it.index]
	it.index++

	return &item, nil
}

// All drains the iterator, following every pagination link and concatenating
// the hydrated items. This is the eager counterpart to page-at-a-time use.
func (it *PageIterator[T]) All() ([]T, error) {
	var all []T

	for {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return all, nil
		}

		if err != nil {
			return nil, err
		}

		all = append(all, *item)
	}
}

func (it *PageIterator[T]) fetchNext() error {
	if it.nextLink == "" {
		it.exhausted = true

		return nil
	}

	page, err := it.fetcher.FetchPage(it.ctx, it.nextLink)
	if err != nil {
		return fmt.Errorf("fetching page: %w", err)
	}

	it.items = page.Items
	it.index = 0
	it.nextLink = page.Links.Next

	if it.nextLink == "" {
		it.exhausted = true
	}

	return nil
}
